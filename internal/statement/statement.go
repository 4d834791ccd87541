// Package statement implements the StatementDriver of spec §4.5:
// folding a sequence of top-level statements over the environment.
package statement

import (
	"github.com/arborlang/tyc/internal/ast"
	"github.com/arborlang/tyc/internal/checker"
	"github.com/arborlang/tyc/internal/tcenv"
	"github.com/arborlang/tyc/internal/tcerrors"
	"github.com/arborlang/tyc/internal/typedast"
	"github.com/arborlang/tyc/internal/typerepr"
)

// Driver folds statements over an environment, dispatching each to the
// ExpressionChecker, the type-declaration importer, or module/open
// handling as appropriate.
type Driver struct {
	Env     *tcenv.Env
	Checker *checker.Checker

	modules map[string]*tcenv.Scope
}

// New builds a Driver, and a Checker, over the given environment.
func New(env *tcenv.Env) *Driver {
	return &Driver{Env: env, Checker: checker.New(env), modules: make(map[string]*tcenv.Scope)}
}

// CheckProgram is the external entry point: check every statement of a
// program against a fresh environment, returning the elaborated
// statements alongside the environment they were checked into (so a
// caller can inspect the final bindings) or the first error raised.
func CheckProgram(stmts []*ast.Stmt) ([]*typedast.Stmt, *tcenv.Env, error) {
	env := tcenv.New()
	out, err := New(env).Run(stmts)
	if err != nil {
		return nil, env, err
	}
	return out, env, nil
}

// Run checks every statement in order, threading the environment and
// stopping at the first error (spec §7's "fatal on first occurrence").
func (d *Driver) Run(stmts []*ast.Stmt) ([]*typedast.Stmt, error) {
	out := make([]*typedast.Stmt, 0, len(stmts))
	for _, s := range stmts {
		checked, err := d.runOne(s)
		if err != nil {
			return nil, err
		}
		out = append(out, checked)
	}
	return out, nil
}

func (d *Driver) runOne(s *ast.Stmt) (*typedast.Stmt, error) {
	switch s.Kind {
	case ast.SValue:
		return d.runValue(s)
	case ast.SInstance:
		return d.runInstance(s)
	case ast.STypeDecl:
		return d.runTypeDecl(s)
	case ast.SModule:
		return d.runModule(s)
	case ast.SOpen:
		return d.runOpen(s)
	}
	return nil, tcerrors.WrongTypeDescription(s.Pos)
}

func (d *Driver) runValue(s *ast.Stmt) (*typedast.Stmt, error) {
	elabPat, elabVal, err := d.Checker.CheckBinding(s.Pat, s.Value, true)
	if err != nil {
		return nil, err
	}
	return &typedast.Stmt{Pos: s.Pos, Kind: typedast.SValue, Pat: elabPat, Value: elabVal}, nil
}

func (d *Driver) runInstance(s *ast.Stmt) (*typedast.Stmt, error) {
	pat := &ast.Pattern{Pos: s.Pos, Kind: ast.PVar, VarName: s.Name}
	elabPat, elabVal, err := d.Checker.CheckBinding(pat, s.Value, true)
	if err != nil {
		return nil, err
	}
	d.Env.BindImplicit(s.Name, elabVal.Type)
	return &typedast.Stmt{Pos: s.Pos, Kind: typedast.SInstance, Pat: elabPat, Value: elabVal, Name: s.Name}, nil
}

func (d *Driver) runTypeDecl(s *ast.Stmt) (*typedast.Stmt, error) {
	decl, err := d.Env.ImportTypeDecl(s.TypeDecl)
	if err != nil {
		return nil, err
	}
	d.Env.RegisterDecl(decl)
	d.Env.BindType(decl.Name, decl.ID)

	switch decl.Kind {
	case typerepr.DVariant:
		for i, c := range decl.Ctors {
			d.Env.BindCtor(c.Name, tcenv.CtorRef{Decl: decl.ID, Index: i})
		}
	case typerepr.DRecord:
		for i, f := range decl.Fields {
			d.Env.BindField(f.Name, tcenv.FieldRef{Decl: decl.ID, Index: i})
		}
	}

	return &typedast.Stmt{Pos: s.Pos, Kind: typedast.STypeDecl, DeclID: decl.ID}, nil
}

func (d *Driver) runModule(s *ast.Stmt) (*typedast.Stmt, error) {
	switch s.ModuleBody.Kind {
	case ast.ModRef:
		target, ok := d.modules[s.ModuleBody.Ref]
		if !ok {
			return nil, tcerrors.Unbound(s.Pos, tcerrors.UnboundModule, s.ModuleBody.Ref)
		}
		d.modules[s.ModuleName] = target
		return &typedast.Stmt{Pos: s.Pos, Kind: typedast.SModule, ModuleName: s.ModuleName}, nil

	case ast.ModStructure:
		d.Env.PushScope()
		body, err := d.Run(s.ModuleBody.Statements)
		scope := d.Env.PopScope()
		if err != nil {
			return nil, err
		}
		d.modules[s.ModuleName] = scope
		return &typedast.Stmt{Pos: s.Pos, Kind: typedast.SModule, ModuleName: s.ModuleName, Statements: body}, nil
	}
	return nil, tcerrors.WrongTypeDescription(s.Pos)
}

func (d *Driver) runOpen(s *ast.Stmt) (*typedast.Stmt, error) {
	name := s.Path.Base()
	target, ok := d.modules[name]
	if !ok {
		return nil, tcerrors.Unbound(s.Pos, tcerrors.UnboundModule, name)
	}
	d.Env.Open(target)
	return &typedast.Stmt{Pos: s.Pos, Kind: typedast.SOpen, Path: name}, nil
}
