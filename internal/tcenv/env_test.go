package tcenv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arborlang/tyc/internal/ast"
	"github.com/arborlang/tyc/internal/ident"
	"github.com/arborlang/tyc/internal/tcenv"
	"github.com/arborlang/tyc/internal/typerepr"
)

func pos() ident.Pos { return ident.Pos{Line: 1, Column: 1} }

func TestNew_RegistersBuiltinIntByName(t *testing.T) {
	env := tcenv.New()
	id, ok := env.LookupType("int")
	require.True(t, ok)
	assert.Equal(t, tcenv.BuiltinIntDeclID, id)
}

func TestBindValue_ShadowsInNestedScope(t *testing.T) {
	env := tcenv.New()
	outer := env.IntType(pos())
	env.BindValue("x", outer)

	env.PushScope()
	inner := env.FreshVar(pos())
	env.BindValue("x", inner)

	got, ok := env.LookupValue("x")
	require.True(t, ok)
	assert.Same(t, inner, got)

	env.PopScope()
	got, ok = env.LookupValue("x")
	require.True(t, ok)
	assert.Same(t, outer, got)
}

func TestLookupValue_UnboundNameFails(t *testing.T) {
	env := tcenv.New()
	_, ok := env.LookupValue("nope")
	assert.False(t, ok)
}

func TestOpen_ExposesModuleScopeValues(t *testing.T) {
	env := tcenv.New()
	env.PushScope()
	env.BindValue("inner", env.IntType(pos()))
	mod := env.PopScope()

	env.Open(mod)
	got, ok := env.LookupValue("inner")
	require.True(t, ok)
	assert.Equal(t, typerepr.KCtor, got.Kind)
}

func TestOpen_CopiesScopeSoLaterMutationIsInvisible(t *testing.T) {
	env := tcenv.New()
	env.PushScope()
	mod := env.PopScope()
	env.Open(mod)

	mod.Values["late"] = env.IntType(pos())
	_, ok := env.LookupValue("late")
	assert.False(t, ok, "mutating the original module scope after Open must not affect the opener")
}

func TestVisibleImplicits_CollectsAcrossScopes(t *testing.T) {
	env := tcenv.New()
	env.BindImplicit("outer", env.IntType(pos()))
	env.PushScope()
	env.BindImplicit("inner", env.IntType(pos()))

	cands := env.VisibleImplicits()
	names := make(map[string]bool)
	for _, c := range cands {
		names[c.Name] = true
	}
	assert.True(t, names["outer"])
	assert.True(t, names["inner"])
}

func TestImportTypeDecl_RecordFieldsShareDeclarationParams(t *testing.T) {
	env := tcenv.New()
	syntax := &ast.TypeDeclSyntax{
		Pos:    pos(),
		Name:   "Box",
		Kind:   ast.BRecord,
		Params: []string{"a"},
		Fields: []ast.RecordFieldSyntax{
			{Name: "value", Type: &ast.TypeExpr{Pos: pos(), Kind: ast.TVar, VarName: "a"}},
		},
	}
	decl, err := env.ImportTypeDecl(syntax)
	require.NoError(t, err)
	require.Len(t, decl.Params, 1)
	require.Len(t, decl.Fields, 1)
	assert.Same(t, decl.Params[0], decl.Fields[0].Type)
}

func TestImportTypeDecl_VariantWithRecordRefRequiresPriorDeclaration(t *testing.T) {
	env := tcenv.New()
	_, err := env.ImportTypeDecl(&ast.TypeDeclSyntax{
		Pos:  pos(),
		Name: "Wrapper",
		Kind: ast.BVariant,
		Ctors: []ast.CtorSyntax{
			{Pos: pos(), Name: "Wrap", HasRecord: true, RecordRef: "Missing"},
		},
	})
	require.Error(t, err)
}

func TestImportType_SameNameWithinOneCallSharesVar(t *testing.T) {
	env := tcenv.New()
	tv := func() *ast.TypeExpr { return &ast.TypeExpr{Pos: pos(), Kind: ast.TVar, VarName: "a"} }
	arrow := &ast.TypeExpr{Pos: pos(), Kind: ast.TArrow, Dom: tv(), Cod: tv(), Arrow: typerepr.Explicit}

	got, err := env.ImportType(arrow)
	require.NoError(t, err)
	assert.Same(t, got.Dom, got.Cod)
}

func TestImportType_AcrossCallsAllocatesDistinctVars(t *testing.T) {
	env := tcenv.New()
	tv := &ast.TypeExpr{Pos: pos(), Kind: ast.TVar, VarName: "a"}

	first, err := env.ImportType(tv)
	require.NoError(t, err)
	second, err := env.ImportType(tv)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestFoldTuple_SingleElementDegenerates(t *testing.T) {
	env := tcenv.New()
	elem := env.IntType(pos())
	assert.Same(t, elem, env.FoldTuple([]typerepr.Type{elem}, pos()))
}

func TestFoldTuple_ZeroElementsIsUnit(t *testing.T) {
	env := tcenv.New()
	unit := env.FoldTuple(nil, pos())
	assert.Equal(t, typerepr.KTuple, unit.Kind)
	assert.Empty(t, unit.Elems)
}

func TestNewPoly_PanicsOnNestedPoly(t *testing.T) {
	env := tcenv.New()
	inner := env.NewPoly(nil, env.IntType(pos()), pos())
	assert.Panics(t, func() { env.NewPoly(nil, inner, pos()) })
}
