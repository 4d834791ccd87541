// Package unify implements the Unifier of spec §4.1: deciding
// equality-up-to-substitution of two type expressions by side-effecting
// the environment's instance table.
package unify

import (
	"github.com/arborlang/tyc/internal/ident"
	"github.com/arborlang/tyc/internal/tcenv"
	"github.com/arborlang/tyc/internal/tcerrors"
	"github.com/arborlang/tyc/internal/typerepr"
)

// Unify decides whether a and b can be made equal by extending env's
// instance table, reporting the first mismatch found. The outermost
// call wraps any failure in CheckFailed so the caller's expected/actual
// pair survives alongside the innermost cause; recursive calls made
// while walking into a and b do not re-wrap, per the "wrap once" policy
// of spec §7.
func Unify(env *tcenv.Env, a, b typerepr.Type, pos ident.Pos) error {
	if err := unify(env, a, b, pos); err != nil {
		return tcerrors.CheckFailed(pos, a, b, err)
	}
	return nil
}

func unify(env *tcenv.Env, a, b typerepr.Type, pos ident.Pos) error {
	if a.ID == b.ID {
		return nil
	}

	if a.Kind == typerepr.KPoly || b.Kind == typerepr.KPoly {
		if a.Kind == typerepr.KPoly {
			a = env.Instantiate(a, pos)
		}
		if b.Kind == typerepr.KPoly {
			b = env.Instantiate(b, pos)
		}
		return unify(env, a, b, pos)
	}

	aVar := a.Kind == typerepr.KVar
	bVar := b.Kind == typerepr.KVar

	switch {
	case aVar && bVar:
		if ai, ok := env.InstanceOf(a); ok {
			return unifyWithInstance(env, a, ai, b, pos)
		}
		if bi, ok := env.InstanceOf(b); ok {
			return unifyWithInstance(env, b, bi, a, pos)
		}
		assignee, target := a, b
		if b.Depth > a.Depth || (b.Depth == a.Depth && b.ID > a.ID) {
			assignee, target = b, a
		}
		return assign(env, assignee, target, pos)

	case aVar:
		if ai, ok := env.InstanceOf(a); ok {
			return unifyWithInstance(env, a, ai, b, pos)
		}
		return assign(env, a, b, pos)

	case bVar:
		if bi, ok := env.InstanceOf(b); ok {
			return unifyWithInstance(env, b, bi, a, pos)
		}
		return assign(env, b, a, pos)
	}

	switch a.Kind {
	case typerepr.KTuple:
		if b.Kind != typerepr.KTuple || len(a.Elems) != len(b.Elems) {
			return tcerrors.CannotUnify(pos, a, b)
		}
		for i := range a.Elems {
			if err := unify(env, a.Elems[i], b.Elems[i], pos); err != nil {
				return err
			}
		}
		return nil

	case typerepr.KArrow:
		if b.Kind != typerepr.KArrow || a.Arrow != b.Arrow {
			return tcerrors.CannotUnify(pos, a, b)
		}
		if err := unify(env, a.Dom, b.Dom, pos); err != nil {
			return err
		}
		return unify(env, a.Cod, b.Cod, pos)

	case typerepr.KCtor:
		if b.Kind != typerepr.KCtor {
			return tcerrors.CannotUnify(pos, a, b)
		}
		return unifyCtor(env, a, b, pos)
	}

	return tcerrors.CannotUnify(pos, a, b)
}

// unifyCtor implements step 8: same declaration unifies pairwise by
// parameter, different declarations attempt alias unfolding on the
// older (smaller DeclID) side first.
func unifyCtor(env *tcenv.Env, a, b typerepr.Type, pos ident.Pos) error {
	if a.CtorDecl == b.CtorDecl {
		if len(a.Params) != len(b.Params) {
			return tcerrors.CannotUnify(pos, a, b)
		}
		for i := range a.Params {
			if err := unify(env, a.Params[i], b.Params[i], pos); err != nil {
				return err
			}
		}
		return nil
	}

	aIsOlder := a.CtorDecl < b.CtorDecl

	older, younger := a, b
	if !aIsOlder {
		older, younger = b, a
	}

	if unfolded, ok := env.Unalias(older); ok {
		if aIsOlder {
			return unify(env, unfolded, b, pos)
		}
		return unify(env, a, unfolded, pos)
	}
	if unfolded, ok := env.Unalias(younger); ok {
		if aIsOlder {
			return unify(env, a, unfolded, pos)
		}
		return unify(env, unfolded, b, pos)
	}
	return tcerrors.CannotUnify(pos, a, b)
}

// unifyWithInstance implements steps 3 and 5's "temporarily clear,
// rebind" discipline: v's instance is pulled out of the table so the
// recursive call sees v as free, then restored once the recursion
// settles. If the recursion assigns a fresh instance to v itself — v
// was reachable from inst through some chain of variables — that is
// exactly the occurs-check failure described for step 5, reported
// instead of the inner error.
func unifyWithInstance(env *tcenv.Env, v, inst, other typerepr.Type, pos ident.Pos) error {
	env.ClearInstance(v)
	err := unify(env, inst, other, pos)
	if _, reappeared := env.InstanceOf(v); reappeared {
		env.ClearInstance(v)
		env.SetInstance(v, inst)
		return tcerrors.RecursiveVariable(pos, v)
	}
	env.SetInstance(v, inst)
	return err
}

// assign binds v to t after checking that v does not occur free in t
// (which would make the instance table cyclic) and lowering the depth
// of any variable in t that is deeper than v's own binder, so the
// generalization invariant of spec §3 — an instance's free variables
// sit no deeper than the variable they resolve —
// holds immediately rather than only after a later generalization pass.
func assign(env *tcenv.Env, v, t typerepr.Type, pos ident.Pos) error {
	if occursIn(env, v, t) {
		return tcerrors.RecursiveVariable(pos, v)
	}
	lowerDepth(env, t, v.Depth, make(map[typerepr.TypeID]bool))
	env.SetInstance(v, t)
	return nil
}

func occursIn(env *tcenv.Env, v, t typerepr.Type) bool {
	free := make(map[typerepr.TypeID]typerepr.Type)
	env.FreeVars(t, 0, free)
	_, found := free[v.ID]
	return found
}

func lowerDepth(env *tcenv.Env, t typerepr.Type, maxDepth int, visited map[typerepr.TypeID]bool) {
	t = env.Resolve(t)
	if visited[t.ID] {
		return
	}
	visited[t.ID] = true
	switch t.Kind {
	case typerepr.KVar:
		if t.Depth > maxDepth {
			t.Depth = maxDepth
		}
	case typerepr.KArrow:
		lowerDepth(env, t.Dom, maxDepth, visited)
		lowerDepth(env, t.Cod, maxDepth, visited)
	case typerepr.KTuple:
		for _, e := range t.Elems {
			lowerDepth(env, e, maxDepth, visited)
		}
	case typerepr.KCtor:
		for _, p := range t.Params {
			lowerDepth(env, p, maxDepth, visited)
		}
	}
}
