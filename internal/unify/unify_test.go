package unify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arborlang/tyc/internal/ident"
	"github.com/arborlang/tyc/internal/tcenv"
	"github.com/arborlang/tyc/internal/tcerrors"
	"github.com/arborlang/tyc/internal/typerepr"
)

var nopos = ident.Pos{}

func TestUnify_ReflexiveOnFreshVar(t *testing.T) {
	env := tcenv.New()
	v := env.FreshVar(nopos)
	require.NoError(t, Unify(env, v, v, nopos))
}

func TestUnify_TwoFreeVars_AssignsDeeperToShallower(t *testing.T) {
	env := tcenv.New()
	env.PushScope()
	shallow := env.NewVar(nil, 0, nopos)
	env.PushScope()
	deep := env.NewVar(nil, 2, nopos)

	require.NoError(t, Unify(env, deep, shallow, nopos))

	resolved := env.Resolve(deep)
	assert.Equal(t, shallow.ID, resolved.ID)

	_, hasInstance := env.InstanceOf(shallow)
	assert.False(t, hasInstance, "the shallower variable must remain the representative")
}

func TestUnify_VarWithInt(t *testing.T) {
	env := tcenv.New()
	v := env.FreshVar(nopos)
	i := env.IntType(nopos)
	require.NoError(t, Unify(env, v, i, nopos))
	resolved := env.Resolve(v)
	assert.Equal(t, typerepr.KCtor, resolved.Kind)
	assert.Equal(t, tcenv.BuiltinIntDeclID, resolved.CtorDecl)
}

func TestUnify_OccursCheckFails(t *testing.T) {
	env := tcenv.New()
	v := env.FreshVar(nopos)
	arrow := env.NewArrow(v, env.IntType(nopos), typerepr.Explicit, nopos)

	err := Unify(env, v, arrow, nopos)
	require.Error(t, err)

	var tcErr *tcerrors.Error
	require.ErrorAs(t, err, &tcErr)
	assert.Equal(t, tcerrors.KindCheckFailed, tcErr.Kind)

	var inner *tcerrors.Error
	require.ErrorAs(t, tcErr.Inner, &inner)
	assert.Equal(t, tcerrors.KindRecursiveVariable, inner.Kind)
}

func TestUnify_ArrowExplicitnessMustMatch(t *testing.T) {
	env := tcenv.New()
	a := env.NewArrow(env.IntType(nopos), env.IntType(nopos), typerepr.Explicit, nopos)
	b := env.NewArrow(env.IntType(nopos), env.IntType(nopos), typerepr.Implicit, nopos)

	err := Unify(env, a, b, nopos)
	require.Error(t, err)
}

func TestUnify_TupleArityMismatch(t *testing.T) {
	env := tcenv.New()
	a := env.NewTuple([]typerepr.Type{env.IntType(nopos)}, nopos)
	b := env.NewTuple([]typerepr.Type{env.IntType(nopos), env.IntType(nopos)}, nopos)

	require.Error(t, Unify(env, a, b, nopos))
}

func TestUnify_TuplePairwise(t *testing.T) {
	env := tcenv.New()
	v1, v2 := env.FreshVar(nopos), env.FreshVar(nopos)
	a := env.NewTuple([]typerepr.Type{v1, v2}, nopos)
	b := env.NewTuple([]typerepr.Type{env.IntType(nopos), env.IntType(nopos)}, nopos)

	require.NoError(t, Unify(env, a, b, nopos))
	assert.Equal(t, typerepr.KCtor, env.Resolve(v1).Kind)
	assert.Equal(t, typerepr.KCtor, env.Resolve(v2).Kind)
}

func TestUnify_UnitIsEmptyTuple(t *testing.T) {
	env := tcenv.New()
	require.NoError(t, Unify(env, env.UnitType(nopos), env.UnitType(nopos), nopos))
}

func TestUnify_CtorSameDecl(t *testing.T) {
	env := tcenv.New()
	decl := &typerepr.Decl{ID: env.NewDeclID(), Name: "box", Kind: typerepr.DAbstract}
	env.RegisterDecl(decl)

	v := env.FreshVar(nopos)
	a := env.NewCtor("box", decl.ID, []typerepr.Type{v}, nopos)
	b := env.NewCtor("box", decl.ID, []typerepr.Type{env.IntType(nopos)}, nopos)

	require.NoError(t, Unify(env, a, b, nopos))
	assert.Equal(t, typerepr.KCtor, env.Resolve(v).Kind)
}

func TestUnify_CtorDifferentDeclFailsWithoutAlias(t *testing.T) {
	env := tcenv.New()
	d1 := &typerepr.Decl{ID: env.NewDeclID(), Name: "box", Kind: typerepr.DAbstract}
	d2 := &typerepr.Decl{ID: env.NewDeclID(), Name: "bag", Kind: typerepr.DAbstract}
	env.RegisterDecl(d1)
	env.RegisterDecl(d2)

	a := env.NewCtor("box", d1.ID, nil, nopos)
	b := env.NewCtor("bag", d2.ID, nil, nopos)

	require.Error(t, Unify(env, a, b, nopos))
}

func TestUnify_AliasUnfoldsToItsTargetOnEitherSide(t *testing.T) {
	env := tcenv.New()

	realDecl := &typerepr.Decl{ID: env.NewDeclID(), Name: "real_int", Kind: typerepr.DAbstract}
	env.RegisterDecl(realDecl)
	real := env.NewCtor("real_int", realDecl.ID, nil, nopos)

	aliasDecl := &typerepr.Decl{ID: env.NewDeclID(), Name: "score", Kind: typerepr.DAlias, AliasOf: real}
	env.RegisterDecl(aliasDecl)
	alias := env.NewCtor("score", aliasDecl.ID, nil, nopos)

	require.NoError(t, Unify(env, alias, real, nopos))
	require.NoError(t, Unify(env, real, alias, nopos))
}

func TestUnify_PolyIsInstantiatedNotSharedOnEachSide(t *testing.T) {
	env := tcenv.New()
	boundVar := env.NewVar(nil, 5, nopos)
	scheme := env.NewPoly([]typerepr.Type{boundVar}, env.NewArrow(boundVar, boundVar, typerepr.Explicit, nopos), nopos)

	lhs := env.Instantiate(scheme, nopos)
	rhs := env.Instantiate(scheme, nopos)

	require.NoError(t, Unify(env, lhs, rhs, nopos))
	_, hasInstance := env.InstanceOf(boundVar)
	assert.False(t, hasInstance, "instantiation must never touch the scheme's own bound variable")
}
