// Package tcenv implements the Environment of spec §3/§4: a stack of
// scopes holding name→type bindings, type declarations, field and
// constructor indices, and implicit instances, plus the arena and
// instance table owned by the Unifier.
//
// Per spec §9 the instance table is modeled as an explicit side array
// (map[TypeID]Type here) rather than ambient mutation through reference
// cells. Every TypeExpr is allocated by an Env, which stamps it with a
// fresh TypeID; type expressions are linked and passed around by pointer,
// and the TypeID keys the instance table.
package tcenv

import (
	"maps"

	"github.com/arborlang/tyc/internal/ident"
	"github.com/arborlang/tyc/internal/typerepr"
)

// BuiltinIntDeclID names the reserved declaration id of the built-in
// integer type, so that Ctor/Ctor unification (keyed on DeclID) treats
// every allocated `int` type expression as the same nominal type.
const BuiltinIntDeclID typerepr.DeclID = 1

// FieldRef locates a record field by declaration and position.
type FieldRef struct {
	Decl  typerepr.DeclID
	Index int
}

// CtorRef locates a variant constructor by declaration and position.
type CtorRef struct {
	Decl  typerepr.DeclID
	Index int
}

// Scope holds the five name-keyed mappings described in spec §3, plus
// the list of scopes pushed onto its search path by `open`.
type Scope struct {
	Values    map[string]typerepr.Type
	Types     map[string]typerepr.DeclID
	Fields    map[string]FieldRef
	Ctors     map[string]CtorRef
	Implicits map[string]typerepr.Type
	Opens     []*Scope
	Depth     int
}

func newScope(depth int) *Scope {
	return &Scope{
		Values:    make(map[string]typerepr.Type),
		Types:     make(map[string]typerepr.DeclID),
		Fields:    make(map[string]FieldRef),
		Ctors:     make(map[string]CtorRef),
		Implicits: make(map[string]typerepr.Type),
		Depth:     depth,
	}
}

// Clone returns a copy of s suitable for pushing onto another scope's
// search path via Open — the copy gets its own five name maps and its own
// Opens slice, so later changes to the original module scope are not seen
// through the copy and Open on the importing side never mutates the
// original. Scopes on the Opens list are shared, not copied.
func (s *Scope) Clone() *Scope {
	c := *s
	c.Values = maps.Clone(s.Values)
	c.Types = maps.Clone(s.Types)
	c.Fields = maps.Clone(s.Fields)
	c.Ctors = maps.Clone(s.Ctors)
	c.Implicits = maps.Clone(s.Implicits)
	c.Opens = append([]*Scope(nil), s.Opens...)
	return &c
}

// Env is the full checker environment: the type-expression arena, the
// instance table, the declaration table, and the scope stack.
type Env struct {
	scopes []*Scope

	nextTypeID typerepr.TypeID
	nextDeclID typerepr.DeclID

	instances map[typerepr.TypeID]typerepr.Type
	decls     map[typerepr.DeclID]*typerepr.Decl

	intType typerepr.Type
}

// New creates a fresh Env seeded with the built-in `int` declaration and
// a single root scope at depth 0.
func New() *Env {
	env := &Env{
		scopes:     []*Scope{newScope(0)},
		nextTypeID: 1,
		nextDeclID: BuiltinIntDeclID,
		instances:  make(map[typerepr.TypeID]typerepr.Type),
		decls:      make(map[typerepr.DeclID]*typerepr.Decl),
	}
	intDecl := &typerepr.Decl{
		ID:   BuiltinIntDeclID,
		Name: "int",
		Kind: typerepr.DAbstract,
	}
	env.decls[BuiltinIntDeclID] = intDecl
	env.nextDeclID = BuiltinIntDeclID + 1
	env.scopes[0].Types["int"] = BuiltinIntDeclID
	return env
}

// CurrentDepth returns the lexical scope depth a freshly allocated
// variable should be stamped with.
func (env *Env) CurrentDepth() int { return len(env.scopes) - 1 }

// Current returns the innermost (mutable) scope.
func (env *Env) Current() *Scope { return env.scopes[len(env.scopes)-1] }

// PushScope opens a new nested scope (on entry to a binding, a pattern
// arm, or a module) and returns it.
func (env *Env) PushScope() *Scope {
	s := newScope(len(env.scopes))
	env.scopes = append(env.scopes, s)
	return s
}

// PopScope closes the innermost scope and returns it, e.g. so a module
// statement can bind it under the module's name.
func (env *Env) PopScope() *Scope {
	n := len(env.scopes)
	s := env.scopes[n-1]
	env.scopes = env.scopes[:n-1]
	return s
}

// Open pushes a copy of target onto the current scope's search path.
func (env *Env) Open(target *Scope) {
	cur := env.Current()
	cur.Opens = append(cur.Opens, target.Clone())
}

// --- allocation ---

func (env *Env) alloc() typerepr.TypeID {
	id := env.nextTypeID
	env.nextTypeID++
	return id
}

// NewVar allocates a fresh unification variable at the given depth.
func (env *Env) NewVar(name *string, depth int, pos ident.Pos) typerepr.Type {
	return &typerepr.TypeExpr{
		ID:      env.alloc(),
		Pos:     pos,
		Kind:    typerepr.KVar,
		VarName: name,
		Depth:   depth,
	}
}

// FreshVar allocates a fresh unification variable at the current scope
// depth, with no display name.
func (env *Env) FreshVar(pos ident.Pos) typerepr.Type {
	return env.NewVar(nil, env.CurrentDepth(), pos)
}

// NewArrow allocates Arrow(dom, cod, explicitness).
func (env *Env) NewArrow(dom, cod typerepr.Type, ex typerepr.Explicitness, pos ident.Pos) typerepr.Type {
	return &typerepr.TypeExpr{
		ID:    env.alloc(),
		Pos:   pos,
		Kind:  typerepr.KArrow,
		Dom:   dom,
		Cod:   cod,
		Arrow: ex,
	}
}

// NewTuple allocates Tuple(elems) without applying the 1-tuple folding
// rule — callers building types from surface tuple syntax should go
// through FoldTuple instead.
func (env *Env) NewTuple(elems []typerepr.Type, pos ident.Pos) typerepr.Type {
	return &typerepr.TypeExpr{
		ID:    env.alloc(),
		Pos:   pos,
		Kind:  typerepr.KTuple,
		Elems: elems,
	}
}

// FoldTuple builds the type of a tuple literal/pattern with the given
// component types, applying the source language's folding rule: a
// single-element tuple degenerates to its element type (spec §9 Open
// Questions), and a zero-element tuple is the unit type.
func (env *Env) FoldTuple(elems []typerepr.Type, pos ident.Pos) typerepr.Type {
	if len(elems) == 1 {
		return elems[0]
	}
	return env.NewTuple(elems, pos)
}

// UnitType returns the (fresh) unit type, i.e. the empty tuple.
func (env *Env) UnitType(pos ident.Pos) typerepr.Type {
	return env.NewTuple(nil, pos)
}

// IntType returns the built-in integer type.
func (env *Env) IntType(pos ident.Pos) typerepr.Type {
	return &typerepr.TypeExpr{
		ID:       env.alloc(),
		Pos:      pos,
		Kind:     typerepr.KCtor,
		CtorName: "int",
		CtorDecl: BuiltinIntDeclID,
	}
}

// NewCtor allocates a nominal type-constructor application.
func (env *Env) NewCtor(name string, decl typerepr.DeclID, params []typerepr.Type, pos ident.Pos) typerepr.Type {
	return &typerepr.TypeExpr{
		ID:       env.alloc(),
		Pos:      pos,
		Kind:     typerepr.KCtor,
		CtorName: name,
		CtorDecl: decl,
		Params:   params,
	}
}

// NewPoly allocates Poly(vars, body). Panics (a checker-bug condition,
// per spec §7's internal-invariant error kinds) if body is itself a
// Poly, since Poly is prenex-only and must never nest.
func (env *Env) NewPoly(vars []typerepr.Type, body typerepr.Type, pos ident.Pos) typerepr.Type {
	if body.Kind == typerepr.KPoly {
		panic("tcenv: attempted to nest Poly inside Poly")
	}
	return &typerepr.TypeExpr{
		ID:       env.alloc(),
		Pos:      pos,
		Kind:     typerepr.KPoly,
		PolyVars: vars,
		PolyBody: body,
	}
}

// --- declarations ---

// NewDeclID allocates a fresh declaration identifier.
func (env *Env) NewDeclID() typerepr.DeclID {
	id := env.nextDeclID
	env.nextDeclID++
	return id
}

// RegisterDecl stores a declaration under its own DeclID.
func (env *Env) RegisterDecl(d *typerepr.Decl) {
	env.decls[d.ID] = d
}

// DeclByID looks up a declaration by id.
func (env *Env) DeclByID(id typerepr.DeclID) (*typerepr.Decl, bool) {
	d, ok := env.decls[id]
	return d, ok
}
