package tcenv

import "github.com/arborlang/tyc/internal/typerepr"

// InstanceOf looks up the current instance of a Var, returning
// (nil, false) when it is unbound (spec §3: "Some(t)" / "None").
func (env *Env) InstanceOf(v typerepr.Type) (typerepr.Type, bool) {
	t, ok := env.instances[v.ID]
	return t, ok
}

// SetInstance records v ↦ t in the instance table.
func (env *Env) SetInstance(v typerepr.Type, t typerepr.Type) {
	env.instances[v.ID] = t
}

// ClearInstance removes any instance recorded for v. Used by the
// Unifier's "temporarily remove, restore only on success" discipline.
func (env *Env) ClearInstance(v typerepr.Type) {
	delete(env.instances, v.ID)
}

// Resolve follows the instance chain starting at t until it reaches a
// Var with no instance or a non-Var shape. The chain is acyclic by
// construction (the Unifier's occurs check guarantees it), so this
// always terminates. No path compression is performed: the Unifier
// relies on being able to clear and reinstate a single link, which
// compression would destroy.
func (env *Env) Resolve(t typerepr.Type) typerepr.Type {
	for t.Kind == typerepr.KVar {
		next, ok := env.InstanceOf(t)
		if !ok {
			return t
		}
		t = next
	}
	return t
}
