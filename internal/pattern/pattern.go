// Package pattern implements the PatternChecker of spec §4.2: checking
// a pattern against an expected type and binding the names it
// introduces through a pluggable binder.
package pattern

import (
	"sort"

	"github.com/arborlang/tyc/internal/ast"
	"github.com/arborlang/tyc/internal/ident"
	"github.com/arborlang/tyc/internal/tcenv"
	"github.com/arborlang/tyc/internal/tcerrors"
	"github.com/arborlang/tyc/internal/typedast"
	"github.com/arborlang/tyc/internal/typerepr"
	"github.com/arborlang/tyc/internal/unify"
)

// Binder introduces name at type t into env. Monomorphic binds exactly
// the type it is given, used for function parameters so a lambda's
// argument is never usable polymorphically within its own body.
// Polymorphic closes over any variable in t that is free at a depth at
// or deeper than the current scope depth before binding, used by
// CheckBinding and for match-arm patterns per spec §4.3's "names bound
// in arms may carry quantifiers".
type Binder func(env *tcenv.Env, name string, t typerepr.Type)

func Monomorphic(env *tcenv.Env, name string, t typerepr.Type) {
	env.BindValue(name, t)
}

func Polymorphic(env *tcenv.Env, name string, t typerepr.Type) {
	free := make(map[typerepr.TypeID]typerepr.Type)
	env.FreeVars(t, env.CurrentDepth(), free)
	if len(free) == 0 {
		env.BindValue(name, t)
		return
	}
	vars := make([]typerepr.Type, 0, len(free))
	for _, v := range free {
		vars = append(vars, v)
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].ID < vars[j].ID })
	env.BindValue(name, env.NewPoly(vars, t, t.Pos))
}

// Checker checks patterns against expected types, threading the
// environment and binder through recursive calls.
type Checker struct {
	Env *tcenv.Env
}

func New(env *tcenv.Env) *Checker {
	return &Checker{Env: env}
}

// Check checks p against expected, binding names via add, and returns
// the elaborated pattern.
func (c *Checker) Check(expected typerepr.Type, p *ast.Pattern, add Binder) (*typedast.Pattern, error) {
	switch p.Kind {
	case ast.PAny:
		return &typedast.Pattern{Pos: p.Pos, Kind: typedast.PAny, Type: expected}, nil

	case ast.PVar:
		add(c.Env, p.VarName, expected)
		return &typedast.Pattern{Pos: p.Pos, Kind: typedast.PVar, Type: expected, VarName: p.VarName}, nil

	case ast.PConstraint:
		t, err := c.Env.ImportType(p.Type)
		if err != nil {
			return nil, err
		}
		if err := unify.Unify(c.Env, expected, t, p.Pos); err != nil {
			return nil, err
		}
		return c.Check(t, p.Inner, add)

	case ast.PTuple:
		vars := make([]typerepr.Type, len(p.Elems))
		for i := range p.Elems {
			vars[i] = c.Env.FreshVar(p.Pos)
		}
		if err := unify.Unify(c.Env, expected, c.Env.NewTuple(vars, p.Pos), p.Pos); err != nil {
			return nil, err
		}
		elems := make([]*typedast.Pattern, len(p.Elems))
		for i, sub := range p.Elems {
			te, err := c.Check(vars[i], sub, add)
			if err != nil {
				return nil, err
			}
			elems[i] = te
		}
		return &typedast.Pattern{Pos: p.Pos, Kind: typedast.PTuple, Type: expected, Elems: elems}, nil

	case ast.POr:
		return c.checkOr(expected, p, add)

	case ast.PInt:
		if err := unify.Unify(c.Env, expected, c.Env.IntType(p.Pos), p.Pos); err != nil {
			return nil, err
		}
		return &typedast.Pattern{Pos: p.Pos, Kind: typedast.PInt, Type: expected, IntValue: p.IntValue}, nil

	case ast.PRecord:
		return c.checkRecord(expected, p, add)

	case ast.PCtor:
		return c.checkCtor(expected, p, add)
	}

	return nil, tcerrors.WrongTypeDescription(p.Pos)
}

func (c *Checker) checkOr(expected typerepr.Type, p *ast.Pattern, add Binder) (*typedast.Pattern, error) {
	startDepth := c.Env.CurrentDepth()

	c.Env.PushScope()
	left, err := c.Check(expected, p.Left, add)
	leftScope := c.Env.PopScope()
	if err != nil {
		return nil, err
	}

	c.Env.PushScope()
	right, err := c.Check(expected, p.Right, add)
	rightScope := c.Env.PopScope()
	if err != nil {
		return nil, err
	}

	if err := crossCheck(c.Env, leftScope, rightScope, p.Pos, startDepth); err != nil {
		return nil, err
	}

	// The right arm's bindings are the live ones, per spec §4.2.
	for name, t := range rightScope.Values {
		add(c.Env, name, t)
	}

	return &typedast.Pattern{Pos: p.Pos, Kind: typedast.POr, Type: expected, Left: left, Right: right}, nil
}

// PatternDeclaration errors (spec §4.2's ban on type/field/constructor
// or module declarations inside an or-pattern) never arise from this
// grammar: Pattern has no declaration-introducing form to begin with,
// so the restriction is enforced structurally rather than checked here.

func crossCheck(env *tcenv.Env, left, right *tcenv.Scope, pos ident.Pos, startDepth int) error {
	for name, lt := range left.Values {
		rt, ok := right.Values[name]
		if !ok {
			return tcerrors.VariableOnOneSide(pos, name)
		}
		if err := unify.Unify(env, lt, rt, pos); err != nil {
			return err
		}
	}
	for name := range right.Values {
		if _, ok := left.Values[name]; !ok {
			return tcerrors.VariableOnOneSide(pos, name)
		}
	}
	return nil
}

func (c *Checker) checkRecord(expected typerepr.Type, p *ast.Pattern, add Binder) (*typedast.Pattern, error) {
	if len(p.Fields) == 0 {
		return nil, tcerrors.EmptyRecord(p.Pos)
	}

	decl, err := c.resolveRecordDecl(expected, p.Fields[0].Name, p.Pos)
	if err != nil {
		return nil, err
	}

	fresh := make(map[typerepr.TypeID]typerepr.Type, len(decl.Params))
	params := make([]typerepr.Type, len(decl.Params))
	for i, param := range decl.Params {
		nv := c.Env.FreshVar(p.Pos)
		fresh[param.ID] = nv
		params[i] = nv
	}
	recordType := c.Env.NewCtor(decl.Name, decl.ID, params, p.Pos)
	if err := unify.Unify(c.Env, expected, recordType, p.Pos); err != nil {
		return nil, err
	}

	out := make([]typedast.RecordPatField, 0, len(p.Fields))
	for _, rf := range p.Fields {
		field, ok := decl.FieldByName(rf.Name)
		if !ok {
			return nil, tcerrors.WrongRecordField(p.Pos, rf.Name, recordType)
		}
		fieldType := c.Env.Substitute(fresh, field.Type)
		sub, err := c.Check(fieldType, rf.Pat, add)
		if err != nil {
			return nil, err
		}
		out = append(out, typedast.RecordPatField{Name: rf.Name, Index: field.Index, Pat: sub})
	}

	return &typedast.Pattern{Pos: p.Pos, Kind: typedast.PRecord, Type: expected, Fields: out}, nil
}

// resolveRecordDecl finds the record declaration for a record
// pattern/literal either by unaliasing expected (when it is already
// known) or by looking up the first mentioned field name (spec §4.2).
func (c *Checker) resolveRecordDecl(expected typerepr.Type, firstField string, pos ident.Pos) (*typerepr.Decl, error) {
	resolved := c.Env.Resolve(expected)
	for resolved.Kind == typerepr.KCtor {
		if d, ok := c.Env.DeclByID(resolved.CtorDecl); ok && d.Kind == typerepr.DRecord {
			return d, nil
		}
		unfolded, ok := c.Env.Unalias(resolved)
		if !ok {
			break
		}
		resolved = c.Env.Resolve(unfolded)
	}
	ref, ok := c.Env.LookupField(firstField)
	if !ok {
		return nil, tcerrors.Unbound(pos, tcerrors.UnboundField, firstField)
	}
	decl, ok := c.Env.DeclByID(ref.Decl)
	if !ok {
		return nil, tcerrors.Unbound(pos, tcerrors.UnboundField, firstField)
	}
	return decl, nil
}

func (c *Checker) checkCtor(expected typerepr.Type, p *ast.Pattern, add Binder) (*typedast.Pattern, error) {
	ref, ok := c.Env.LookupCtor(p.CtorName.Base())
	if !ok {
		return nil, tcerrors.Unbound(p.Pos, tcerrors.UnboundCtor, p.CtorName.Base())
	}
	decl, ok := c.Env.DeclByID(ref.Decl)
	if !ok {
		return nil, tcerrors.Unbound(p.Pos, tcerrors.UnboundCtor, p.CtorName.Base())
	}
	def := decl.Ctors[ref.Index]

	fresh := make(map[typerepr.TypeID]typerepr.Type, len(decl.Params))
	for _, param := range decl.Params {
		fresh[param.ID] = c.Env.FreshVar(p.Pos)
	}
	returnType := c.Env.Substitute(fresh, def.Return)
	if err := unify.Unify(c.Env, expected, returnType, p.Pos); err != nil {
		return nil, err
	}

	argType := c.ctorArgType(def, fresh)

	var argPat *typedast.Pattern
	if p.Arg != nil {
		// A single-element-tuple constructor argument may be matched
		// directly against the element, per spec §9's preserved
		// surface behavior.
		target := argType
		if target.Kind == typerepr.KTuple && len(target.Elems) == 1 {
			target = target.Elems[0]
		}
		sub, err := c.Check(target, p.Arg, add)
		if err != nil {
			return nil, err
		}
		argPat = sub
	} else if err := unify.Unify(c.Env, argType, c.Env.UnitType(p.Pos), p.Pos); err != nil {
		return nil, tcerrors.ArgumentExpected(p.Pos, p.CtorName.Base())
	}

	return &typedast.Pattern{
		Pos: p.Pos, Kind: typedast.PCtor, Type: expected,
		CtorName: p.CtorName.Base(), CtorDecl: decl.ID, Arg: argPat,
	}, nil
}

func (c *Checker) ctorArgType(def typerepr.CtorDef, fresh map[typerepr.TypeID]typerepr.Type) typerepr.Type {
	if def.HasRecord {
		if d, ok := c.Env.DeclByID(def.RecordRef); ok {
			params := make([]typerepr.Type, len(d.Params))
			for i, param := range d.Params {
				params[i] = c.Env.FreshVar(def.Return.Pos)
				fresh[param.ID] = params[i]
			}
			return c.Env.NewCtor(d.Name, d.ID, params, def.Return.Pos)
		}
	}
	if def.Args == nil {
		return c.Env.UnitType(def.Return.Pos)
	}
	return c.Env.Substitute(fresh, def.Args)
}
