package main

import (
	"github.com/arborlang/tyc/internal/ast"
	"github.com/arborlang/tyc/internal/ident"
	"github.com/arborlang/tyc/internal/typerepr"
)

// sample is one statement sequence the stepper runs through in turn,
// built directly as ast values since lexing and parsing are out of
// scope here.
type sample struct {
	name  string
	stmts []*ast.Stmt
}

func here() ident.Pos { return ident.Pos{Line: 1, Column: 1, File: "<builtin>"} }

func bare(name string) ident.LongIdent { return *ident.NewBare(name, here()) }

func varPat(name string) *ast.Pattern {
	return &ast.Pattern{Pos: here(), Kind: ast.PVar, VarName: name}
}

func variable(name string) *ast.Expr {
	return &ast.Expr{Pos: here(), Kind: ast.EVar, Name: bare(name)}
}

func valueStmt(name string, value *ast.Expr) *ast.Stmt {
	return &ast.Stmt{Pos: here(), Kind: ast.SValue, Pat: varPat(name), Value: value}
}

// samples returns the fixed demo programs, in spec.md §8's order:
// identity-function generalization, pair-constructor generalization,
// record field projection, or-pattern checking, implicit resolution
// (success and failure).
func samples() []sample {
	return []sample{
		identitySample(),
		pairSample(),
		recordProjectionSample(),
		orPatternSample(),
		implicitResolutionSuccessSample(),
		implicitResolutionFailureSample(),
	}
}

// let identity = fun x -> x
func identitySample() sample {
	fn := &ast.Expr{
		Pos:   here(),
		Kind:  ast.EFun,
		Param: varPat("x"),
		Body:  variable("x"),
		Arrow: typerepr.Explicit,
	}
	return sample{name: "identity function generalizes", stmts: []*ast.Stmt{valueStmt("identity", fn)}}
}

// let pair = fun x -> fun y -> (x, y)
func pairSample() sample {
	inner := &ast.Expr{
		Pos:   here(),
		Kind:  ast.EFun,
		Param: varPat("y"),
		Body:  &ast.Expr{Pos: here(), Kind: ast.ETuple, Elems: []*ast.Expr{variable("x"), variable("y")}},
		Arrow: typerepr.Explicit,
	}
	outer := &ast.Expr{Pos: here(), Kind: ast.EFun, Param: varPat("x"), Body: inner, Arrow: typerepr.Explicit}
	return sample{name: "pair constructor generalizes both arguments", stmts: []*ast.Stmt{valueStmt("pair", outer)}}
}

// type Point = { x : int; y : int }
// let getX = fun p -> p.x
func recordProjectionSample() sample {
	decl := &ast.Stmt{
		Pos:  here(),
		Kind: ast.STypeDecl,
		TypeDecl: &ast.TypeDeclSyntax{
			Pos:  here(),
			Name: "Point",
			Kind: ast.BRecord,
			Fields: []ast.RecordFieldSyntax{
				{Name: "x", Type: &ast.TypeExpr{Pos: here(), Kind: ast.TCtor, CtorName: bare("int")}},
				{Name: "y", Type: &ast.TypeExpr{Pos: here(), Kind: ast.TCtor, CtorName: bare("int")}},
			},
		},
	}
	getX := &ast.Expr{
		Pos:   here(),
		Kind:  ast.EFun,
		Param: varPat("p"),
		Body:  &ast.Expr{Pos: here(), Kind: ast.EField, Value: variable("p"), Field: bare("x")},
		Arrow: typerepr.Explicit,
	}
	return sample{name: "record field projection", stmts: []*ast.Stmt{decl, valueStmt("getX", getX)}}
}

// type Shape = Circle(int) | Square(int)
// let area = fun s -> match s with Circle n | Square n -> n
func orPatternSample() sample {
	decl := &ast.Stmt{
		Pos:  here(),
		Kind: ast.STypeDecl,
		TypeDecl: &ast.TypeDeclSyntax{
			Pos:  here(),
			Name: "Shape",
			Kind: ast.BVariant,
			Ctors: []ast.CtorSyntax{
				{Pos: here(), Name: "Circle", Args: &ast.TypeExpr{Pos: here(), Kind: ast.TCtor, CtorName: bare("int")}},
				{Pos: here(), Name: "Square", Args: &ast.TypeExpr{Pos: here(), Kind: ast.TCtor, CtorName: bare("int")}},
			},
		},
	}
	orPat := &ast.Pattern{
		Pos:  here(),
		Kind: ast.POr,
		Left: &ast.Pattern{Pos: here(), Kind: ast.PCtor, CtorName: bare("Circle"), Arg: varPat("n")},
		Right: &ast.Pattern{
			Pos: here(), Kind: ast.PCtor, CtorName: bare("Square"), Arg: varPat("n"),
		},
	}
	area := &ast.Expr{
		Pos:   here(),
		Kind:  ast.EFun,
		Param: varPat("s"),
		Body: &ast.Expr{
			Pos: here(), Kind: ast.EMatch, Scrutinee: variable("s"),
			Arms: []ast.MatchArm{{Pat: orPat, Body: variable("n")}},
		},
		Arrow: typerepr.Explicit,
	}
	return sample{name: "or-pattern unifies both arms' bindings", stmts: []*ast.Stmt{decl, valueStmt("area", area)}}
}

// instance defaultInt = 0
// let askInt = (fun f -> f : {int} -> int)
// let got = askInt   -- peels the implicit int argument; defaultInt supplies it
func implicitResolutionSuccessSample() sample {
	inst := &ast.Stmt{Pos: here(), Kind: ast.SInstance, Name: "defaultInt", Value: &ast.Expr{Pos: here(), Kind: ast.EInt, IntValue: 0}}
	intType := func() *ast.TypeExpr { return &ast.TypeExpr{Pos: here(), Kind: ast.TCtor, CtorName: bare("int")} }
	askIntFn := &ast.Expr{Pos: here(), Kind: ast.EFun, Param: varPat("f"), Body: variable("f"), Arrow: typerepr.Implicit}
	askIntConstrained := &ast.Expr{
		Pos: here(), Kind: ast.EConstraint, Value: askIntFn,
		Type: &ast.TypeExpr{Pos: here(), Kind: ast.TArrow, Dom: intType(), Cod: intType(), Arrow: typerepr.Implicit},
	}
	return sample{
		name: "implicit instance resolves uniquely",
		stmts: []*ast.Stmt{
			inst,
			valueStmt("askInt", askIntConstrained),
			valueStmt("got", variable("askInt")),
		},
	}
}

// type Flag
// let askFlag = (fun f -> f : {Flag} -> Flag)
// let got = askFlag   -- peels the implicit Flag argument; no `instance` supplies one
func implicitResolutionFailureSample() sample {
	flagDecl := &ast.Stmt{
		Pos:  here(),
		Kind: ast.STypeDecl,
		TypeDecl: &ast.TypeDeclSyntax{Pos: here(), Name: "Flag", Kind: ast.BAbstract},
	}
	flagType := func() *ast.TypeExpr { return &ast.TypeExpr{Pos: here(), Kind: ast.TCtor, CtorName: bare("Flag")} }
	askFlagFn := &ast.Expr{Pos: here(), Kind: ast.EFun, Param: varPat("f"), Body: variable("f"), Arrow: typerepr.Implicit}
	askFlagConstrained := &ast.Expr{
		Pos: here(), Kind: ast.EConstraint, Value: askFlagFn,
		Type: &ast.TypeExpr{Pos: here(), Kind: ast.TArrow, Dom: flagType(), Cod: flagType(), Arrow: typerepr.Implicit},
	}
	return sample{
		name: "implicit instance missing fails to resolve",
		stmts: []*ast.Stmt{
			flagDecl,
			valueStmt("askFlag", askFlagConstrained),
			valueStmt("got", variable("askFlag")),
		},
	}
}
