package statement_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arborlang/tyc/internal/ast"
	"github.com/arborlang/tyc/internal/ident"
	"github.com/arborlang/tyc/internal/statement"
	"github.com/arborlang/tyc/internal/tcenv"
	"github.com/arborlang/tyc/internal/typedast"
	"github.com/arborlang/tyc/internal/typerepr"
)

func pos() ident.Pos { return ident.Pos{Line: 1, Column: 1} }

func intLit(n int64) *ast.Expr {
	return &ast.Expr{Pos: pos(), Kind: ast.EInt, IntValue: n}
}

// let identity = fun x -> x
func identityStmt() *ast.Stmt {
	fn := &ast.Expr{
		Pos:  pos(),
		Kind: ast.EFun,
		Param: &ast.Pattern{Pos: pos(), Kind: ast.PVar, VarName: "x"},
		Body: &ast.Expr{Pos: pos(), Kind: ast.EVar, Name: *ident.NewBare("x", pos())},
	}
	return &ast.Stmt{
		Pos:   pos(),
		Kind:  ast.SValue,
		Pat:   &ast.Pattern{Pos: pos(), Kind: ast.PVar, VarName: "identity"},
		Value: fn,
	}
}

func TestDriver_ValueStatement_GeneralizesLetBoundFunction(t *testing.T) {
	env := tcenv.New()
	d := statement.New(env)

	out, err := d.Run([]*ast.Stmt{identityStmt()})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, typedast.SValue, out[0].Kind)

	bound, ok := env.LookupValue("identity")
	require.True(t, ok)
	assert.Equal(t, typerepr.KPoly, bound.Kind)
}

func TestDriver_TypeDeclStatement_BindsCtorsAndFields(t *testing.T) {
	env := tcenv.New()
	d := statement.New(env)

	decl := &ast.Stmt{
		Pos:  pos(),
		Kind: ast.STypeDecl,
		TypeDecl: &ast.TypeDeclSyntax{
			Pos:  pos(),
			Name: "Pair",
			Kind: ast.BRecord,
			Fields: []ast.RecordFieldSyntax{
				{Name: "fst", Type: &ast.TypeExpr{Pos: pos(), Kind: ast.TCtor, CtorName: *ident.NewBare("int", pos())}},
				{Name: "snd", Type: &ast.TypeExpr{Pos: pos(), Kind: ast.TCtor, CtorName: *ident.NewBare("int", pos())}},
			},
		},
	}

	variant := &ast.Stmt{
		Pos:  pos(),
		Kind: ast.STypeDecl,
		TypeDecl: &ast.TypeDeclSyntax{
			Pos:   pos(),
			Name:  "Sign",
			Kind:  ast.BVariant,
			Ctors: []ast.CtorSyntax{{Pos: pos(), Name: "Plus"}, {Pos: pos(), Name: "Minus"}},
		},
	}

	out, err := d.Run([]*ast.Stmt{decl, variant})
	require.NoError(t, err)
	require.Len(t, out, 2)

	_, ok := env.LookupType("Pair")
	assert.True(t, ok)
	_, ok = env.LookupField("fst")
	assert.True(t, ok)
	_, ok = env.LookupField("snd")
	assert.True(t, ok)
	_, ok = env.LookupCtor("Plus")
	assert.True(t, ok)
	_, ok = env.LookupCtor("Minus")
	assert.True(t, ok)
}

func TestDriver_InstanceStatement_RegistersImplicit(t *testing.T) {
	env := tcenv.New()
	d := statement.New(env)

	inst := &ast.Stmt{
		Pos:   pos(),
		Kind:  ast.SInstance,
		Name:  "defaultInt",
		Value: intLit(0),
	}

	out, err := d.Run([]*ast.Stmt{inst})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, typedast.SInstance, out[0].Kind)

	_, ok := env.LookupImplicit("defaultInt")
	assert.True(t, ok)
}

func TestDriver_UnknownStatementKind_Fails(t *testing.T) {
	env := tcenv.New()
	d := statement.New(env)

	_, err := d.Run([]*ast.Stmt{{Pos: pos(), Kind: ast.StmtKind(99)}})
	assert.Error(t, err)
}

func TestDriver_Module_StructureThenOpen_ExposesInnerValue(t *testing.T) {
	env := tcenv.New()
	d := statement.New(env)

	moduleStmt := &ast.Stmt{
		Pos:        pos(),
		Kind:       ast.SModule,
		ModuleName: "M",
		ModuleBody: ast.ModuleBody{
			Kind: ast.ModStructure,
			Statements: []*ast.Stmt{
				{
					Pos:   pos(),
					Kind:  ast.SValue,
					Pat:   &ast.Pattern{Pos: pos(), Kind: ast.PVar, VarName: "answer"},
					Value: intLit(42),
				},
			},
		},
	}
	openStmt := &ast.Stmt{Pos: pos(), Kind: ast.SOpen, Path: *ident.NewBare("M", pos())}

	_, err := d.Run([]*ast.Stmt{moduleStmt, openStmt})
	require.NoError(t, err)

	_, ok := env.LookupValue("answer")
	assert.True(t, ok)
}

func TestDriver_Open_UnknownModule_Fails(t *testing.T) {
	env := tcenv.New()
	d := statement.New(env)

	_, err := d.Run([]*ast.Stmt{{Pos: pos(), Kind: ast.SOpen, Path: *ident.NewBare("NoSuchModule", pos())}})
	assert.Error(t, err)
}
