package tcenv

import "github.com/arborlang/tyc/internal/typerepr"

// LookupValue resolves a value name across the visible scope chain:
// the innermost scope outward, consulting each scope's own Opens (most
// recently opened module wins) before moving to the enclosing scope.
func (env *Env) LookupValue(name string) (typerepr.Type, bool) {
	for i := len(env.scopes) - 1; i >= 0; i-- {
		if t, ok := lookupValueInScope(env.scopes[i], name, make(map[*Scope]bool)); ok {
			return t, true
		}
	}
	return nil, false
}

func lookupValueInScope(s *Scope, name string, visited map[*Scope]bool) (typerepr.Type, bool) {
	if visited[s] {
		return nil, false
	}
	visited[s] = true
	if t, ok := s.Values[name]; ok {
		return t, true
	}
	for i := len(s.Opens) - 1; i >= 0; i-- {
		if t, ok := lookupValueInScope(s.Opens[i], name, visited); ok {
			return t, true
		}
	}
	return nil, false
}

// LookupType resolves a type declaration name across the visible scope chain.
func (env *Env) LookupType(name string) (typerepr.DeclID, bool) {
	for i := len(env.scopes) - 1; i >= 0; i-- {
		if id, ok := lookupTypeInScope(env.scopes[i], name, make(map[*Scope]bool)); ok {
			return id, true
		}
	}
	return 0, false
}

func lookupTypeInScope(s *Scope, name string, visited map[*Scope]bool) (typerepr.DeclID, bool) {
	if visited[s] {
		return 0, false
	}
	visited[s] = true
	if id, ok := s.Types[name]; ok {
		return id, true
	}
	for i := len(s.Opens) - 1; i >= 0; i-- {
		if id, ok := lookupTypeInScope(s.Opens[i], name, visited); ok {
			return id, true
		}
	}
	return 0, false
}

// LookupField resolves a record field name across the visible scope chain.
func (env *Env) LookupField(name string) (FieldRef, bool) {
	for i := len(env.scopes) - 1; i >= 0; i-- {
		if r, ok := lookupFieldInScope(env.scopes[i], name, make(map[*Scope]bool)); ok {
			return r, true
		}
	}
	return FieldRef{}, false
}

func lookupFieldInScope(s *Scope, name string, visited map[*Scope]bool) (FieldRef, bool) {
	if visited[s] {
		return FieldRef{}, false
	}
	visited[s] = true
	if r, ok := s.Fields[name]; ok {
		return r, true
	}
	for i := len(s.Opens) - 1; i >= 0; i-- {
		if r, ok := lookupFieldInScope(s.Opens[i], name, visited); ok {
			return r, true
		}
	}
	return FieldRef{}, false
}

// LookupCtor resolves a constructor name across the visible scope chain.
func (env *Env) LookupCtor(name string) (CtorRef, bool) {
	for i := len(env.scopes) - 1; i >= 0; i-- {
		if r, ok := lookupCtorInScope(env.scopes[i], name, make(map[*Scope]bool)); ok {
			return r, true
		}
	}
	return CtorRef{}, false
}

func lookupCtorInScope(s *Scope, name string, visited map[*Scope]bool) (CtorRef, bool) {
	if visited[s] {
		return CtorRef{}, false
	}
	visited[s] = true
	if r, ok := s.Ctors[name]; ok {
		return r, true
	}
	for i := len(s.Opens) - 1; i >= 0; i-- {
		if r, ok := lookupCtorInScope(s.Opens[i], name, visited); ok {
			return r, true
		}
	}
	return CtorRef{}, false
}

// LookupImplicit resolves an implicit instance's type by the name it
// was registered under, across the visible scope chain.
func (env *Env) LookupImplicit(name string) (typerepr.Type, bool) {
	for i := len(env.scopes) - 1; i >= 0; i-- {
		if t, ok := lookupImplicitInScope(env.scopes[i], name, make(map[*Scope]bool)); ok {
			return t, true
		}
	}
	return nil, false
}

func lookupImplicitInScope(s *Scope, name string, visited map[*Scope]bool) (typerepr.Type, bool) {
	if visited[s] {
		return nil, false
	}
	visited[s] = true
	if t, ok := s.Implicits[name]; ok {
		return t, true
	}
	for i := len(s.Opens) - 1; i >= 0; i-- {
		if t, ok := lookupImplicitInScope(s.Opens[i], name, visited); ok {
			return t, true
		}
	}
	return nil, false
}

// ImplicitCandidate is one visible implicit-instance registration.
type ImplicitCandidate struct {
	Name string
	Type typerepr.Type
}

// VisibleImplicits collects every implicit instance reachable from the
// current scope chain, used by the ImplicitResolver to try candidates
// for a placeholder in turn.
func (env *Env) VisibleImplicits() []ImplicitCandidate {
	var out []ImplicitCandidate
	seen := make(map[*Scope]bool)
	for i := len(env.scopes) - 1; i >= 0; i-- {
		collectImplicits(env.scopes[i], &out, seen)
	}
	return out
}

func collectImplicits(s *Scope, out *[]ImplicitCandidate, visited map[*Scope]bool) {
	if visited[s] {
		return
	}
	visited[s] = true
	for name, t := range s.Implicits {
		*out = append(*out, ImplicitCandidate{Name: name, Type: t})
	}
	for i := len(s.Opens) - 1; i >= 0; i-- {
		collectImplicits(s.Opens[i], out, visited)
	}
}
