package tcerrors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arborlang/tyc/internal/ident"
	"github.com/arborlang/tyc/internal/tcerrors"
	"github.com/arborlang/tyc/internal/typerepr"
)

func pos() ident.Pos { return ident.Pos{Line: 3, Column: 5, File: "t.ai"} }

type stubPrinter struct{}

func (stubPrinter) Print(t typerepr.Type) string { return "T" }

func TestError_IncludesPositionWhenPresent(t *testing.T) {
	err := tcerrors.Unbound(pos(), tcerrors.UnboundValue, "x")
	assert.Contains(t, err.Error(), "x")
	assert.Contains(t, err.Error(), "3")
}

func TestError_FallsBackToTypeIDWithoutPrinter(t *testing.T) {
	v := &typerepr.TypeExpr{ID: 7, Kind: typerepr.KVar}
	err := tcerrors.CannotUnify(pos(), v, v)
	assert.Contains(t, err.Error(), "#7")
}

func TestError_WithPrinterRendersTypesThroughIt(t *testing.T) {
	v := &typerepr.TypeExpr{ID: 7, Kind: typerepr.KVar}
	err := tcerrors.CannotUnify(pos(), v, v).WithPrinter(stubPrinter{})
	assert.Contains(t, err.Error(), "T")
	assert.NotContains(t, err.Error(), "#7")
}

func TestError_UnwrapReturnsInnerCause(t *testing.T) {
	inner := errors.New("boom")
	err := tcerrors.CheckFailed(pos(), nil, nil, inner)
	assert.Same(t, inner, errors.Unwrap(err))
}

func TestError_CheckFailedWithoutInnerOmitsColon(t *testing.T) {
	err := tcerrors.CheckFailed(pos(), nil, nil, nil)
	assert.NotContains(t, err.Error(), "<nil>:")
}

func TestImplicitChainTooLong_ReportsConfiguredLimit(t *testing.T) {
	err := tcerrors.ImplicitChainTooLong(pos(), 64)
	assert.Contains(t, err.Error(), "64")
}

func TestMissingFields_JoinsAllNames(t *testing.T) {
	err := tcerrors.MissingFields(pos(), []string{"x", "y"})
	assert.Contains(t, err.Error(), "x")
	assert.Contains(t, err.Error(), "y")
}

func TestError_ZeroPositionStillPrefixesLineColumn(t *testing.T) {
	err := tcerrors.EmptyRecord(ident.Pos{})
	assert.Equal(t, "0:0: empty record literal or pattern", err.Error())
}
