package tcenv

import "github.com/arborlang/tyc/internal/typerepr"

// BindValue introduces name into the current scope. A rebinding in the
// same scope shadows the previous one rather than erroring; no
// redefinition is diagnosed, here or in the statement driver.
func (env *Env) BindValue(name string, t typerepr.Type) {
	env.Current().Values[name] = t
}

// BindType registers a type declaration's name in the current scope.
func (env *Env) BindType(name string, id typerepr.DeclID) {
	env.Current().Types[name] = id
}

// BindField registers a record field's projector name in the current
// scope. Field names are not required to be globally unique; the most
// recently bound field for a given name shadows earlier ones, matching
// the Values/Types/Ctors shadowing discipline.
func (env *Env) BindField(name string, ref FieldRef) {
	env.Current().Fields[name] = ref
}

// BindCtor registers a variant constructor's name in the current scope.
func (env *Env) BindCtor(name string, ref CtorRef) {
	env.Current().Ctors[name] = ref
}

// BindImplicit registers an implicit instance under name in the current
// scope, making it a candidate for the ImplicitResolver.
func (env *Env) BindImplicit(name string, t typerepr.Type) {
	env.Current().Implicits[name] = t
}
