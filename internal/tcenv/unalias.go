package tcenv

import "github.com/arborlang/tyc/internal/typerepr"

// Unalias expands t one layer through its declaration's alias body, if
// t names an Alias declaration. The declaration's formal parameters
// are substituted with t's actual parameters, so the unfolded type is
// expressed in terms of the use site's own arguments rather than the
// declaration's.
func (env *Env) Unalias(t typerepr.Type) (typerepr.Type, bool) {
	if t.Kind != typerepr.KCtor {
		return t, false
	}
	decl, ok := env.DeclByID(t.CtorDecl)
	if !ok || decl.Kind != typerepr.DAlias || decl.AliasOf == nil {
		return t, false
	}
	m := make(map[typerepr.TypeID]typerepr.Type, len(decl.Params))
	for i, p := range decl.Params {
		if i < len(t.Params) {
			m[p.ID] = t.Params[i]
		}
	}
	return env.Substitute(m, decl.AliasOf), true
}
