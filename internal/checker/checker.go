// Package checker implements the ExpressionChecker and ImplicitResolver
// of spec §4.3/§4.4: bidirectional inference and checking of
// expressions against an expected type, and resolution of implicit
// arguments at each binding's generalization boundary.
package checker

import (
	"github.com/arborlang/tyc/internal/ast"
	"github.com/arborlang/tyc/internal/ident"
	"github.com/arborlang/tyc/internal/pattern"
	"github.com/arborlang/tyc/internal/tcenv"
	"github.com/arborlang/tyc/internal/tcerrors"
	"github.com/arborlang/tyc/internal/typedast"
	"github.com/arborlang/tyc/internal/typerepr"
	"github.com/arborlang/tyc/internal/unify"
)

// Placeholder stands for an implicit argument materialized at a
// Variable occurrence (spec §4.3) whose instance has not yet been
// decided. It is collected into the enclosing binding's pending list
// rather than resolved eagerly, since resolution depends on which type
// variables end up generalized once the whole binding has been
// checked (spec §4.4).
type Placeholder struct {
	ID   int
	Type typerepr.Type
	Pos  ident.Pos
}

// Checker holds the environment and pattern sub-checker threaded
// through expression checking.
type Checker struct {
	Env     *tcenv.Env
	Pattern *pattern.Checker

	nextPlaceholder int

	// MaxImplicitChain bounds the implicit-generation loop in
	// checkVariable. Zero (the default) means unbounded — the core
	// checker itself never imposes this limit; cmd/typecheck sets it
	// from tcconfig as a safety valve against a malformed environment
	// producing an infinite chain of implicit arrows.
	MaxImplicitChain int
}

func New(env *tcenv.Env) *Checker {
	return &Checker{Env: env, Pattern: pattern.New(env)}
}

func (c *Checker) newPlaceholder(t typerepr.Type, pos ident.Pos) *Placeholder {
	c.nextPlaceholder++
	return &Placeholder{ID: c.nextPlaceholder, Type: t, Pos: pos}
}

// CheckExpr bidirectionally checks e against expected, appending any
// implicit placeholders materialized along the way to implicits. The
// caller is responsible for giving every distinct binding its own
// implicits slice — see CheckBinding, the only place that should start
// one from scratch.
func (c *Checker) CheckExpr(expected typerepr.Type, e *ast.Expr, implicits *[]*Placeholder) (*typedast.Expr, error) {
	switch e.Kind {
	case ast.EVar:
		return c.checkVariable(expected, e, implicits)
	case ast.EInt:
		return c.checkInt(expected, e)
	case ast.EApply:
		return c.checkApply(expected, e, implicits)
	case ast.EFun:
		return c.checkFun(expected, e, implicits)
	case ast.ESeq:
		return c.checkSeq(expected, e, implicits)
	case ast.ELet:
		return c.checkLet(expected, e, implicits)
	case ast.EConstraint:
		return c.checkConstraint(expected, e, implicits)
	case ast.ETuple:
		return c.checkTuple(expected, e, implicits)
	case ast.EMatch:
		return c.checkMatch(expected, e, implicits)
	case ast.EField:
		return c.checkField(expected, e, implicits)
	case ast.ERecord:
		return c.checkRecord(expected, e, implicits)
	case ast.ECtor:
		return c.checkCtor(expected, e, implicits)
	}
	return nil, tcerrors.WrongTypeDescription(e.Pos)
}

func (c *Checker) checkVariable(expected typerepr.Type, e *ast.Expr, implicits *[]*Placeholder) (*typedast.Expr, error) {
	scheme, ok := c.Env.LookupValue(e.Name.Base())
	if !ok {
		return nil, tcerrors.Unbound(e.Pos, tcerrors.UnboundValue, e.Name.Base())
	}

	head := c.Env.Instantiate(scheme, e.Pos)
	elaborated := &typedast.Expr{Pos: e.Pos, Kind: typedast.EVar, Name: e.Name.Base(), Type: head}

	for chain := 0; ; chain++ {
		resolved := c.Env.Resolve(head)
		if resolved.Kind != typerepr.KArrow || resolved.Arrow != typerepr.Implicit {
			break
		}
		if c.MaxImplicitChain > 0 && chain >= c.MaxImplicitChain {
			return nil, tcerrors.ImplicitChainTooLong(e.Pos, c.MaxImplicitChain)
		}
		ph := c.newPlaceholder(resolved.Dom, e.Pos)
		*implicits = append(*implicits, ph)
		arg := &typedast.Expr{Pos: e.Pos, Kind: typedast.EPlaceholder, Type: resolved.Dom, PlaceholderID: ph.ID}
		elaborated = &typedast.Expr{Pos: e.Pos, Kind: typedast.EApply, Fn: elaborated, Args: []*typedast.Expr{arg}, Type: resolved.Cod}
		head = resolved.Cod
	}

	if err := unify.Unify(c.Env, head, expected, e.Pos); err != nil {
		return nil, err
	}
	return elaborated, nil
}

func (c *Checker) checkInt(expected typerepr.Type, e *ast.Expr) (*typedast.Expr, error) {
	if err := unify.Unify(c.Env, expected, c.Env.IntType(e.Pos), e.Pos); err != nil {
		return nil, err
	}
	return &typedast.Expr{Pos: e.Pos, Kind: typedast.EInt, Type: expected, IntValue: e.IntValue}, nil
}

func (c *Checker) checkApply(expected typerepr.Type, e *ast.Expr, implicits *[]*Placeholder) (*typedast.Expr, error) {
	fnVar := c.Env.FreshVar(e.Pos)
	fn, err := c.CheckExpr(fnVar, e.Fn, implicits)
	if err != nil {
		return nil, err
	}

	cur := fnVar
	args := make([]*typedast.Expr, len(e.Args))
	for i, a := range e.Args {
		argVar := c.Env.FreshVar(a.Pos)
		resultVar := c.Env.FreshVar(e.Pos)
		if err := unify.Unify(c.Env, cur, c.Env.NewArrow(argVar, resultVar, typerepr.Explicit, e.Pos), a.Pos); err != nil {
			return nil, err
		}
		elabArg, err := c.CheckExpr(argVar, a, implicits)
		if err != nil {
			return nil, err
		}
		args[i] = elabArg
		cur = resultVar
	}

	if err := unify.Unify(c.Env, cur, expected, e.Pos); err != nil {
		return nil, err
	}
	return &typedast.Expr{Pos: e.Pos, Kind: typedast.EApply, Fn: fn, Args: args, Type: expected}, nil
}

func (c *Checker) checkFun(expected typerepr.Type, e *ast.Expr, implicits *[]*Placeholder) (*typedast.Expr, error) {
	paramVar := c.Env.FreshVar(e.Pos)
	bodyVar := c.Env.FreshVar(e.Pos)
	if err := unify.Unify(c.Env, expected, c.Env.NewArrow(paramVar, bodyVar, e.Arrow, e.Pos), e.Pos); err != nil {
		return nil, err
	}

	c.Env.PushScope()
	elabParam, err := c.Pattern.Check(paramVar, e.Param, pattern.Monomorphic)
	if err != nil {
		c.Env.PopScope()
		return nil, err
	}
	elabBody, err := c.CheckExpr(bodyVar, e.Body, implicits)
	c.Env.PopScope()
	if err != nil {
		return nil, err
	}

	return &typedast.Expr{Pos: e.Pos, Kind: typedast.EFun, Param: elabParam, Body: elabBody, Arrow: e.Arrow, Type: expected}, nil
}

func (c *Checker) checkSeq(expected typerepr.Type, e *ast.Expr, implicits *[]*Placeholder) (*typedast.Expr, error) {
	first, err := c.CheckExpr(c.Env.UnitType(e.Pos), e.First, implicits)
	if err != nil {
		return nil, err
	}
	second, err := c.CheckExpr(expected, e.Second, implicits)
	if err != nil {
		return nil, err
	}
	return &typedast.Expr{Pos: e.Pos, Kind: typedast.ESeq, First: first, Second: second, Type: expected}, nil
}

func (c *Checker) checkLet(expected typerepr.Type, e *ast.Expr, implicits *[]*Placeholder) (*typedast.Expr, error) {
	c.Env.PushScope()
	elabPat, elabVal, err := c.CheckBinding(e.Pat, e.Value, false)
	if err != nil {
		c.Env.PopScope()
		return nil, err
	}
	elabBody, err := c.CheckExpr(expected, e.Body, implicits)
	c.Env.PopScope()
	if err != nil {
		return nil, err
	}
	return &typedast.Expr{Pos: e.Pos, Kind: typedast.ELet, Pat: elabPat, Value: elabVal, Body: elabBody, Type: expected}, nil
}

func (c *Checker) checkConstraint(expected typerepr.Type, e *ast.Expr, implicits *[]*Placeholder) (*typedast.Expr, error) {
	t, err := c.Env.ImportType(e.Type)
	if err != nil {
		return nil, err
	}
	if err := unify.Unify(c.Env, expected, t, e.Pos); err != nil {
		return nil, err
	}
	checked, err := c.CheckExpr(t, e.Value, implicits)
	if err != nil {
		return nil, err
	}
	// Re-unify for idempotence: the annotation and expected may each
	// have refined the other's free variables since being imported.
	if err := unify.Unify(c.Env, expected, t, e.Pos); err != nil {
		return nil, err
	}
	return checked, nil
}

func (c *Checker) checkTuple(expected typerepr.Type, e *ast.Expr, implicits *[]*Placeholder) (*typedast.Expr, error) {
	vars := make([]typerepr.Type, len(e.Elems))
	for i, el := range e.Elems {
		vars[i] = c.Env.FreshVar(el.Pos)
	}
	if err := unify.Unify(c.Env, expected, c.Env.NewTuple(vars, e.Pos), e.Pos); err != nil {
		return nil, err
	}
	elems := make([]*typedast.Expr, len(e.Elems))
	for i, el := range e.Elems {
		checked, err := c.CheckExpr(vars[i], el, implicits)
		if err != nil {
			return nil, err
		}
		elems[i] = checked
	}
	return &typedast.Expr{Pos: e.Pos, Kind: typedast.ETuple, Elems: elems, Type: expected}, nil
}

func (c *Checker) checkMatch(expected typerepr.Type, e *ast.Expr, implicits *[]*Placeholder) (*typedast.Expr, error) {
	scrutineeVar := c.Env.FreshVar(e.Pos)
	scrutinee, err := c.CheckExpr(scrutineeVar, e.Scrutinee, implicits)
	if err != nil {
		return nil, err
	}

	arms := make([]typedast.MatchArm, len(e.Arms))
	for i, arm := range e.Arms {
		c.Env.PushScope()
		elabPat, err := c.Pattern.Check(scrutineeVar, arm.Pat, pattern.Polymorphic)
		if err != nil {
			c.Env.PopScope()
			return nil, err
		}
		elabBody, err := c.CheckExpr(expected, arm.Body, implicits)
		c.Env.PopScope()
		if err != nil {
			return nil, err
		}
		arms[i] = typedast.MatchArm{Pat: elabPat, Body: elabBody}
	}

	return &typedast.Expr{Pos: e.Pos, Kind: typedast.EMatch, Scrutinee: scrutinee, Arms: arms, Type: expected}, nil
}

func (c *Checker) checkField(expected typerepr.Type, e *ast.Expr, implicits *[]*Placeholder) (*typedast.Expr, error) {
	if e.Field.Kind == ident.Dotted {
		declID, ok := c.Env.LookupType(e.Field.ModulePath()[0])
		if ok {
			return c.checkFieldOfDecl(expected, e, implicits, declID)
		}
	}

	recvVar := c.Env.FreshVar(e.Pos)
	recv, err := c.CheckExpr(recvVar, e.Value, implicits)
	if err != nil {
		return nil, err
	}

	name := e.Field.Base()
	resolved := c.Env.Resolve(recvVar)
	declID, field, err := c.findField(resolved, name, e.Pos)
	if err != nil {
		return nil, err
	}

	decl, _ := c.Env.DeclByID(declID)
	fresh := make(map[typerepr.TypeID]typerepr.Type, len(decl.Params))
	params := make([]typerepr.Type, len(decl.Params))
	for i, p := range decl.Params {
		params[i] = c.Env.FreshVar(e.Pos)
		fresh[p.ID] = params[i]
	}
	if err := unify.Unify(c.Env, recvVar, c.Env.NewCtor(decl.Name, decl.ID, params, e.Pos), e.Pos); err != nil {
		return nil, err
	}
	fieldType := c.Env.Substitute(fresh, field.Type)
	if err := unify.Unify(c.Env, expected, fieldType, e.Pos); err != nil {
		return nil, err
	}

	return &typedast.Expr{
		Pos: e.Pos, Kind: typedast.EField, Fn: recv,
		FieldName: name, FieldDecl: decl.ID, FieldIndex: field.Index,
		Type: expected,
	}, nil
}

// checkFieldOfDecl handles an explicit module-qualified field name
// (e.g. `Point.x e`), resolving the record declaration by name rather
// than by unaliasing the receiver's type.
func (c *Checker) checkFieldOfDecl(expected typerepr.Type, e *ast.Expr, implicits *[]*Placeholder, declID typerepr.DeclID) (*typedast.Expr, error) {
	decl, ok := c.Env.DeclByID(declID)
	if !ok || decl.Kind != typerepr.DRecord {
		return nil, tcerrors.Unbound(e.Pos, tcerrors.UnboundField, e.Field.String())
	}
	field, ok := decl.FieldByName(e.Field.Base())
	if !ok {
		return nil, tcerrors.WrongRecordField(e.Pos, e.Field.Base(), nil)
	}

	fresh := make(map[typerepr.TypeID]typerepr.Type, len(decl.Params))
	params := make([]typerepr.Type, len(decl.Params))
	for i, p := range decl.Params {
		params[i] = c.Env.FreshVar(e.Pos)
		fresh[p.ID] = params[i]
	}
	recordType := c.Env.NewCtor(decl.Name, decl.ID, params, e.Pos)

	recv, err := c.CheckExpr(recordType, e.Value, implicits)
	if err != nil {
		return nil, err
	}
	fieldType := c.Env.Substitute(fresh, field.Type)
	if err := unify.Unify(c.Env, expected, fieldType, e.Pos); err != nil {
		return nil, err
	}

	return &typedast.Expr{
		Pos: e.Pos, Kind: typedast.EField, Fn: recv,
		FieldName: field.Name, FieldDecl: decl.ID, FieldIndex: field.Index,
		Type: expected,
	}, nil
}

func (c *Checker) findField(recvType typerepr.Type, name string, pos ident.Pos) (typerepr.DeclID, typerepr.Field, error) {
	resolved := recvType
	for {
		if resolved.Kind == typerepr.KCtor {
			if d, ok := c.Env.DeclByID(resolved.CtorDecl); ok && d.Kind == typerepr.DRecord {
				if f, ok := d.FieldByName(name); ok {
					return d.ID, f, nil
				}
				return 0, typerepr.Field{}, tcerrors.WrongRecordField(pos, name, recvType)
			}
		}
		unfolded, ok := c.Env.Unalias(resolved)
		if !ok {
			break
		}
		resolved = c.Env.Resolve(unfolded)
	}
	ref, ok := c.Env.LookupField(name)
	if !ok {
		return 0, typerepr.Field{}, tcerrors.Unbound(pos, tcerrors.UnboundField, name)
	}
	decl, _ := c.Env.DeclByID(ref.Decl)
	return ref.Decl, decl.Fields[ref.Index], nil
}

func (c *Checker) checkRecord(expected typerepr.Type, e *ast.Expr, implicits *[]*Placeholder) (*typedast.Expr, error) {
	target := expected
	var elabExt *typedast.Expr
	if e.Ext != nil {
		extVar := c.Env.FreshVar(e.Ext.Pos)
		checked, err := c.CheckExpr(extVar, e.Ext, implicits)
		if err != nil {
			return nil, err
		}
		elabExt = checked
		target = extVar
	}

	if len(e.RecFields) == 0 {
		return nil, tcerrors.EmptyRecord(e.Pos)
	}

	decl, err := c.resolveRecordDeclForName(target, e.RecFields[0].Name, e.Pos)
	if err != nil {
		return nil, err
	}

	fresh := make(map[typerepr.TypeID]typerepr.Type, len(decl.Params))
	params := make([]typerepr.Type, len(decl.Params))
	for i, p := range decl.Params {
		params[i] = c.Env.FreshVar(e.Pos)
		fresh[p.ID] = params[i]
	}
	recordType := c.Env.NewCtor(decl.Name, decl.ID, params, e.Pos)
	if err := unify.Unify(c.Env, target, recordType, e.Pos); err != nil {
		return nil, err
	}
	if err := unify.Unify(c.Env, expected, recordType, e.Pos); err != nil {
		return nil, err
	}

	filled := make([]bool, len(decl.Fields))
	out := make([]typedast.RecordExprField, 0, len(e.RecFields))
	for _, rf := range e.RecFields {
		field, ok := decl.FieldByName(rf.Name)
		if !ok {
			return nil, tcerrors.WrongRecordField(e.Pos, rf.Name, recordType)
		}
		if filled[field.Index] {
			return nil, tcerrors.RepeatedField(e.Pos, rf.Name)
		}
		filled[field.Index] = true
		fieldType := c.Env.Substitute(fresh, field.Type)
		checked, err := c.CheckExpr(fieldType, rf.Value, implicits)
		if err != nil {
			return nil, err
		}
		out = append(out, typedast.RecordExprField{Name: rf.Name, Index: field.Index, Value: checked})
	}

	if e.Ext == nil {
		var missing []string
		for i, f := range filled {
			if !f {
				missing = append(missing, decl.Fields[i].Name)
			}
		}
		if len(missing) > 0 {
			return nil, tcerrors.MissingFields(e.Pos, missing)
		}
	}

	return &typedast.Expr{Pos: e.Pos, Kind: typedast.ERecord, RecFields: out, Ext: elabExt, Type: expected}, nil
}

func (c *Checker) resolveRecordDeclForName(target typerepr.Type, firstField string, pos ident.Pos) (*typerepr.Decl, error) {
	resolved := c.Env.Resolve(target)
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

func (c *Checker) checkCtor(expected typerepr.Type, e *ast.Expr, implicits *[]*Placeholder) (*typedast.Expr, error) {
	ref, ok := c.Env.LookupCtor(e.CtorName.Base())
	if !ok {
		return nil, tcerrors.Unbound(e.Pos, tcerrors.UnboundCtor, e.CtorName.Base())
	}
	decl, ok := c.Env.DeclByID(ref.Decl)
	if !ok {
		return nil, tcerrors.Unbound(e.Pos, tcerrors.UnboundCtor, e.CtorName.Base())
	}
	def := decl.Ctors[ref.Index]

	fresh := make(map[typerepr.TypeID]typerepr.Type, len(decl.Params))
	for _, p := range decl.Params {
		fresh[p.ID] = c.Env.FreshVar(e.Pos)
	}
	returnType := c.Env.Substitute(fresh, def.Return)
	if err := unify.Unify(c.Env, expected, returnType, e.Pos); err != nil {
		return nil, err
	}

	argType := c.ctorArgType(def, fresh, e.Pos)

	var elabArg *typedast.Expr
	if e.CtorArg != nil {
		target := argType
		if target.Kind == typerepr.KTuple && len(target.Elems) == 1 {
			target = target.Elems[0]
		}
		checked, err := c.CheckExpr(target, e.CtorArg, implicits)
		if err != nil {
			return nil, err
		}
		elabArg = checked
	} else if err := unify.Unify(c.Env, argType, c.Env.UnitType(e.Pos), e.Pos); err != nil {
		return nil, tcerrors.ArgumentExpected(e.Pos, e.CtorName.Base())
	}

	return &typedast.Expr{
		Pos: e.Pos, Kind: typedast.ECtor, CtorName: e.CtorName.Base(), CtorDecl: decl.ID,
		CtorArg: elabArg, Type: expected,
	}, nil
}

func (c *Checker) ctorArgType(def typerepr.CtorDef, fresh map[typerepr.TypeID]typerepr.Type, pos ident.Pos) typerepr.Type {
	if def.HasRecord {
		if d, ok := c.Env.DeclByID(def.RecordRef); ok {
			params := make([]typerepr.Type, len(d.Params))
			for i, p := range d.Params {
				params[i] = c.Env.FreshVar(pos)
				fresh[p.ID] = params[i]
			}
			return c.Env.NewCtor(d.Name, d.ID, params, pos)
		}
	}
	if def.Args == nil {
		return c.Env.UnitType(pos)
	}
	return c.Env.Substitute(fresh, def.Args)
}
