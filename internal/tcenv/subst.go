package tcenv

import (
	"github.com/arborlang/tyc/internal/ident"
	"github.com/arborlang/tyc/internal/typerepr"
)

// Substitute rebuilds t replacing every Var whose TypeID is a key of m
// with the mapped replacement. Subtrees untouched by the substitution
// are returned unchanged (no new TypeID is allocated for them); subtrees
// that do change are rebuilt as freshly allocated type expressions, per
// the invariant that every TypeExpr has a unique id.
//
// Substitute does not resolve instances first — callers that want
// substitution-over-the-current-solution should Resolve(t) themselves.
// This split matters for alias unfolding, which substitutes into a
// declaration's still-abstract AliasOf body, not into a resolved use site.
func (env *Env) Substitute(m map[typerepr.TypeID]typerepr.Type, t typerepr.Type) typerepr.Type {
	switch t.Kind {
	case typerepr.KVar:
		if r, ok := m[t.ID]; ok {
			return r
		}
		return t

	case typerepr.KArrow:
		dom := env.Substitute(m, t.Dom)
		cod := env.Substitute(m, t.Cod)
		if dom == t.Dom && cod == t.Cod {
			return t
		}
		return env.NewArrow(dom, cod, t.Arrow, t.Pos)

	case typerepr.KTuple:
		changed := false
		elems := make([]typerepr.Type, len(t.Elems))
		for i, e := range t.Elems {
			ne := env.Substitute(m, e)
			elems[i] = ne
			if ne != e {
				changed = true
			}
		}
		if !changed {
			return t
		}
		return env.NewTuple(elems, t.Pos)

	case typerepr.KCtor:
		changed := false
		params := make([]typerepr.Type, len(t.Params))
		for i, p := range t.Params {
			np := env.Substitute(m, p)
			params[i] = np
			if np != p {
				changed = true
			}
		}
		if !changed {
			return t
		}
		return env.NewCtor(t.CtorName, t.CtorDecl, params, t.Pos)

	case typerepr.KPoly:
		// Shadowing guard: never substitute a Poly's own quantified
		// variables, even if m happens to carry one of their ids (this
		// should not arise from well-formed callers, but a nested Poly
		// under instantiation would otherwise silently corrupt scoping).
		inner := m
		for _, v := range t.PolyVars {
			if _, shadowed := m[v.ID]; shadowed {
				next := make(map[typerepr.TypeID]typerepr.Type, len(inner))
				for k, val := range inner {
					if k != v.ID {
						next[k] = val
					}
				}
				inner = next
			}
		}
		body := env.Substitute(inner, t.PolyBody)
		if body == t.PolyBody {
			return t
		}
		return env.NewPoly(t.PolyVars, body, t.Pos)
	}
	return t
}

// Instantiate produces a fresh, non-polymorphic copy of a type scheme:
// every quantified variable of a Poly is replaced by a newly allocated
// Var at the current scope depth, and any free (non-quantified) variable
// reachable from the body is left exactly as-is so unification on the
// instantiated copy still affects the original binder. Non-Poly types
// are returned unchanged — there is nothing to instantiate.
func (env *Env) Instantiate(t typerepr.Type, pos ident.Pos) typerepr.Type {
	if t.Kind != typerepr.KPoly {
		return t
	}
	m := make(map[typerepr.TypeID]typerepr.Type, len(t.PolyVars))
	for _, v := range t.PolyVars {
		m[v.ID] = env.NewVar(v.VarName, env.CurrentDepth(), pos)
	}
	return env.Substitute(m, t.PolyBody)
}
