package tcenv

import "github.com/arborlang/tyc/internal/typerepr"

// SnapshotInstances copies the current instance table so a caller can
// try a speculative unification (the ImplicitResolver's candidate
// search) and roll it back on failure without disturbing state shared
// with the rest of the checker run.
func (env *Env) SnapshotInstances() map[typerepr.TypeID]typerepr.Type {
	snap := make(map[typerepr.TypeID]typerepr.Type, len(env.instances))
	for k, v := range env.instances {
		snap[k] = v
	}
	return snap
}

// RestoreInstances replaces the instance table with a previously taken
// snapshot.
func (env *Env) RestoreInstances(snap map[typerepr.TypeID]typerepr.Type) {
	env.instances = snap
}
