package tcenv

import "github.com/arborlang/tyc/internal/typerepr"

// FreeVars walks t (after resolving through the instance table) and
// collects every reachable Var whose Depth is >= minDepth into out.
// Variables locally quantified by a nested Poly are excluded from its
// body's contribution, since they are not free with respect to t.
func (env *Env) FreeVars(t typerepr.Type, minDepth int, out map[typerepr.TypeID]typerepr.Type) {
	t = env.Resolve(t)
	switch t.Kind {
	case typerepr.KVar:
		if t.Depth >= minDepth {
			out[t.ID] = t
		}
	case typerepr.KArrow:
		env.FreeVars(t.Dom, minDepth, out)
		env.FreeVars(t.Cod, minDepth, out)
	case typerepr.KTuple:
		for _, e := range t.Elems {
			env.FreeVars(e, minDepth, out)
		}
	case typerepr.KCtor:
		for _, p := range t.Params {
			env.FreeVars(p, minDepth, out)
		}
	case typerepr.KPoly:
		inner := make(map[typerepr.TypeID]typerepr.Type)
		env.FreeVars(t.PolyBody, minDepth, inner)
		for _, v := range t.PolyVars {
			delete(inner, v.ID)
		}
		for k, v := range inner {
			out[k] = v
		}
	}
}
