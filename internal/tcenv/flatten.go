package tcenv

import "github.com/arborlang/tyc/internal/typerepr"

// Flatten resolves t and every type reachable from it through the
// instance table, rebuilding the tree so that no further Resolve call
// would change its shape. Applying Flatten twice in a row must be a
// no-op (spec §8's idempotence property) since Resolve on an
// already-flat Var returns the Var itself.
func (env *Env) Flatten(t typerepr.Type) typerepr.Type {
	t = env.Resolve(t)
	switch t.Kind {
	case typerepr.KArrow:
		dom := env.Flatten(t.Dom)
		cod := env.Flatten(t.Cod)
		if dom == t.Dom && cod == t.Cod {
			return t
		}
		return env.NewArrow(dom, cod, t.Arrow, t.Pos)

	case typerepr.KTuple:
		changed := false
		elems := make([]typerepr.Type, len(t.Elems))
		for i, e := range t.Elems {
			ne := env.Flatten(e)
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
			np := env.Flatten(p)
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
		body := env.Flatten(t.PolyBody)
		if body == t.PolyBody {
			return t
		}
		return env.NewPoly(t.PolyVars, body, t.Pos)
	}
	return t
}
