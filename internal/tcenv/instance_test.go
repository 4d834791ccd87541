package tcenv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arborlang/tyc/internal/tcenv"
	"github.com/arborlang/tyc/internal/typerepr"
)

func TestResolve_FollowsChainToUnboundVar(t *testing.T) {
	env := tcenv.New()
	a := env.FreshVar(pos())
	b := env.FreshVar(pos())
	env.SetInstance(a, b)
	assert.Same(t, b, env.Resolve(a))
}

func TestResolve_StopsAtNonVarShape(t *testing.T) {
	env := tcenv.New()
	v := env.FreshVar(pos())
	i := env.IntType(pos())
	env.SetInstance(v, i)
	assert.Same(t, i, env.Resolve(v))
}

func TestClearInstance_MakesVarUnboundAgain(t *testing.T) {
	env := tcenv.New()
	v := env.FreshVar(pos())
	env.SetInstance(v, env.IntType(pos()))
	env.ClearInstance(v)
	_, ok := env.InstanceOf(v)
	assert.False(t, ok)
}

func TestSnapshotRestore_UndoesSpeculativeInstances(t *testing.T) {
	env := tcenv.New()
	v := env.FreshVar(pos())
	snap := env.SnapshotInstances()

	env.SetInstance(v, env.IntType(pos()))
	_, ok := env.InstanceOf(v)
	require.True(t, ok)

	env.RestoreInstances(snap)
	_, ok = env.InstanceOf(v)
	assert.False(t, ok)
}

func TestInstantiate_NonPolyIsUnchanged(t *testing.T) {
	env := tcenv.New()
	i := env.IntType(pos())
	assert.Same(t, i, env.Instantiate(i, pos()))
}

func TestInstantiate_FreshensEachQuantifiedVarPerCall(t *testing.T) {
	env := tcenv.New()
	name := "a"
	v := env.NewVar(&name, 0, pos())
	scheme := env.NewPoly([]typerepr.Type{v}, env.NewArrow(v, v, typerepr.Explicit, pos()), pos())

	first := env.Instantiate(scheme, pos())
	second := env.Instantiate(scheme, pos())
	assert.NotEqual(t, first.ID, second.ID)
	assert.Same(t, first.Dom, first.Cod, "both occurrences of a within one instantiation share the fresh var")
}

func TestFreeVars_ExcludesVariablesBoundByNestedPoly(t *testing.T) {
	env := tcenv.New()
	name := "a"
	bound := env.NewVar(&name, 1, pos())
	free := env.FreshVar(pos())
	inner := env.NewPoly([]typerepr.Type{bound}, env.NewArrow(bound, free, typerepr.Explicit, pos()), pos())

	out := make(map[typerepr.TypeID]typerepr.Type)
	env.FreeVars(inner, 0, out)

	_, boundPresent := out[bound.ID]
	_, freePresent := out[free.ID]
	assert.False(t, boundPresent)
	assert.True(t, freePresent)
}

func TestFreeVars_RespectsMinDepth(t *testing.T) {
	env := tcenv.New()
	shallow := env.NewVar(nil, 0, pos())
	deep := env.NewVar(nil, 2, pos())
	tup := env.NewTuple([]typerepr.Type{shallow, deep}, pos())

	out := make(map[typerepr.TypeID]typerepr.Type)
	env.FreeVars(tup, 1, out)

	_, shallowPresent := out[shallow.ID]
	_, deepPresent := out[deep.ID]
	assert.False(t, shallowPresent)
	assert.True(t, deepPresent)
}

func TestSubstitute_LeavesUntouchedSubtreesIdentical(t *testing.T) {
	env := tcenv.New()
	untouched := env.IntType(pos())
	target := env.FreshVar(pos())
	replacement := env.IntType(pos())
	arrow := env.NewArrow(target, untouched, typerepr.Explicit, pos())

	out := env.Substitute(map[typerepr.TypeID]typerepr.Type{target.ID: replacement}, arrow)
	require.Equal(t, typerepr.KArrow, out.Kind)
	assert.Same(t, replacement, out.Dom)
	assert.Same(t, untouched, out.Cod)
}

func TestUnalias_ExpandsOneLayerWithActualParams(t *testing.T) {
	env := tcenv.New()
	name := "a"
	param := env.NewVar(&name, 0, pos())
	declID := env.NewDeclID()
	env.RegisterDecl(&typerepr.Decl{
		ID:      declID,
		Name:    "Box",
		Kind:    typerepr.DAlias,
		Params:  []typerepr.Type{param},
		AliasOf: env.NewTuple([]typerepr.Type{param, param}, pos()),
	})

	actual := env.IntType(pos())
	use := env.NewCtor("Box", declID, []typerepr.Type{actual}, pos())

	expanded, ok := env.Unalias(use)
	require.True(t, ok)
	require.Equal(t, typerepr.KTuple, expanded.Kind)
	assert.Same(t, actual, expanded.Elems[0])
	assert.Same(t, actual, expanded.Elems[1])
}

func TestUnalias_NonAliasDeclarationReturnsFalse(t *testing.T) {
	env := tcenv.New()
	use := env.IntType(pos())
	_, ok := env.Unalias(use)
	assert.False(t, ok)
}
