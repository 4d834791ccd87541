// Package tcerrors defines the error taxonomy raised by the checker
// (spec §7): a closed set of kinds, each carrying exactly the context
// needed to pretty-print a diagnostic, plus the location it was raised
// at. Checking stops at the first error — there is no recovery and no
// multi-error reporting.
package tcerrors

import (
	"fmt"
	"strings"

	"github.com/arborlang/tyc/internal/ident"
	"github.com/arborlang/tyc/internal/typerepr"
)

// Kind names one member of the error taxonomy.
type Kind string

const (
	KindCheckFailed        Kind = "check_failed"
	KindCannotUnify        Kind = "cannot_unify"
	KindRecursiveVariable  Kind = "recursive_variable"
	KindUnbound            Kind = "unbound"
	KindVariableOnOneSide  Kind = "variable_on_one_side"
	KindPatternDeclaration Kind = "pattern_declaration"
	KindEmptyRecord        Kind = "empty_record"
	KindWrongRecordField   Kind = "wrong_record_field"
	KindRepeatedField      Kind = "repeated_field"
	KindMissingFields      Kind = "missing_fields"
	KindNoInstance         Kind = "no_instance"
	KindArgumentExpected   Kind = "argument_expected"

	// Internal invariants: a checker bug, never a user-facing mistake.
	KindUnifiableExpr      Kind = "unifiable_expr"
	KindNoUnifiableExpr    Kind = "no_unifiable_expr"
	KindWrongTypeDescription Kind = "wrong_type_description"

	// KindImplicitChainTooLong is raised by the checker only when its
	// MaxImplicitChain field is set above zero (cmd/typecheck sets it
	// from its config); with the zero default there is no such limit.
	KindImplicitChainTooLong Kind = "implicit_chain_too_long"
)

// UnboundKind names the namespace an Unbound error was raised in.
type UnboundKind string

const (
	UnboundValue   UnboundKind = "value"
	UnboundField   UnboundKind = "record field"
	UnboundCtor    UnboundKind = "constructor"
	UnboundModule  UnboundKind = "module"
	UnboundType    UnboundKind = "type"
)

// Printer renders a type expression for diagnostics. The checker never
// formats types itself; it defers to the external pretty-printer
// collaborator (spec §6), supplied here to keep tcerrors free of a
// dependency on typeprint's own imports.
type Printer interface {
	Print(t typerepr.Type) string
}

// Error is the single error type the checker raises. Kind selects
// which fields are meaningful; see the New* constructors for the
// populated shape of each kind.
type Error struct {
	Kind Kind
	Pos  ident.Pos

	Expected typerepr.Type
	Actual   typerepr.Type
	Inner    error

	Var typerepr.Type

	UnboundKind UnboundKind
	Name        string

	Field string
	Ctor  string

	Names []string

	Printer Printer
}

func (e *Error) Unwrap() error { return e.Inner }

func (e *Error) Error() string {
	loc := e.Pos.String()
	msg := e.describe()
	if loc == "" {
		return msg
	}
	return fmt.Sprintf("%s: %s", loc, msg)
}

func (e *Error) describe() string {
	switch e.Kind {
	case KindCheckFailed:
		base := fmt.Sprintf("cannot match expected type %s with actual type %s", e.print(e.Expected), e.print(e.Actual))
		if e.Inner != nil {
			return fmt.Sprintf("%s: %s", base, e.Inner.Error())
		}
		return base
	case KindCannotUnify:
		return fmt.Sprintf("cannot unify %s with %s", e.print(e.Expected), e.print(e.Actual))
	case KindRecursiveVariable:
		return fmt.Sprintf("type variable %s occurs in the type it is being unified with", e.print(e.Var))
	case KindUnbound:
		return fmt.Sprintf("unbound %s: %s", e.UnboundKind, e.Name)
	case KindVariableOnOneSide:
		return fmt.Sprintf("or-pattern binds %q on only one side", e.Name)
	case KindPatternDeclaration:
		return fmt.Sprintf("%s declaration %q is not allowed inside an or-pattern", e.UnboundKind, e.Name)
	case KindEmptyRecord:
		return "empty record literal or pattern"
	case KindWrongRecordField:
		return fmt.Sprintf("field %q does not belong to type %s", e.Field, e.print(e.Expected))
	case KindRepeatedField:
		return fmt.Sprintf("field %q assigned more than once", e.Field)
	case KindMissingFields:
		return fmt.Sprintf("record literal is missing fields: %s", strings.Join(e.Names, ", "))
	case KindNoInstance:
		return fmt.Sprintf("no instance found for %s", e.print(e.Expected))
	case KindArgumentExpected:
		return fmt.Sprintf("constructor %q expects an argument", e.Ctor)
	case KindUnifiableExpr, KindNoUnifiableExpr, KindWrongTypeDescription:
		return fmt.Sprintf("internal checker invariant violated: %s", e.Kind)
	case KindImplicitChainTooLong:
		return fmt.Sprintf("implicit argument chain exceeded the configured limit of %s links", e.Name)
	default:
		return string(e.Kind)
	}
}

func (e *Error) print(t typerepr.Type) string {
	if t == nil {
		return "<none>"
	}
	if e.Printer != nil {
		return e.Printer.Print(t)
	}
	return fmt.Sprintf("#%d", t.ID)
}

func CheckFailed(pos ident.Pos, expected, actual typerepr.Type, inner error) *Error {
	return &Error{Kind: KindCheckFailed, Pos: pos, Expected: expected, Actual: actual, Inner: inner}
}

func CannotUnify(pos ident.Pos, a, b typerepr.Type) *Error {
	return &Error{Kind: KindCannotUnify, Pos: pos, Expected: a, Actual: b}
}

func RecursiveVariable(pos ident.Pos, v typerepr.Type) *Error {
	return &Error{Kind: KindRecursiveVariable, Pos: pos, Var: v}
}

func Unbound(pos ident.Pos, kind UnboundKind, name string) *Error {
	return &Error{Kind: KindUnbound, Pos: pos, UnboundKind: kind, Name: name}
}

func VariableOnOneSide(pos ident.Pos, name string) *Error {
	return &Error{Kind: KindVariableOnOneSide, Pos: pos, Name: name}
}

func PatternDeclaration(pos ident.Pos, kind UnboundKind, name string) *Error {
	return &Error{Kind: KindPatternDeclaration, Pos: pos, UnboundKind: kind, Name: name}
}

func EmptyRecord(pos ident.Pos) *Error {
	return &Error{Kind: KindEmptyRecord, Pos: pos}
}

func WrongRecordField(pos ident.Pos, field string, recordType typerepr.Type) *Error {
	return &Error{Kind: KindWrongRecordField, Pos: pos, Field: field, Expected: recordType}
}

func RepeatedField(pos ident.Pos, name string) *Error {
	return &Error{Kind: KindRepeatedField, Pos: pos, Field: name}
}

func MissingFields(pos ident.Pos, names []string) *Error {
	return &Error{Kind: KindMissingFields, Pos: pos, Names: names}
}

func NoInstance(pos ident.Pos, t typerepr.Type) *Error {
	return &Error{Kind: KindNoInstance, Pos: pos, Expected: t}
}

func ArgumentExpected(pos ident.Pos, ctor string) *Error {
	return &Error{Kind: KindArgumentExpected, Pos: pos, Ctor: ctor}
}

func UnifiableExpr(pos ident.Pos) *Error {
	return &Error{Kind: KindUnifiableExpr, Pos: pos}
}

func NoUnifiableExpr(pos ident.Pos) *Error {
	return &Error{Kind: KindNoUnifiableExpr, Pos: pos}
}

func WrongTypeDescription(pos ident.Pos) *Error {
	return &Error{Kind: KindWrongTypeDescription, Pos: pos}
}

func ImplicitChainTooLong(pos ident.Pos, limit int) *Error {
	return &Error{Kind: KindImplicitChainTooLong, Pos: pos, Name: fmt.Sprintf("%d", limit)}
}

// WithPrinter returns a copy of e configured to render its type fields
// through p. The checker never calls it; cmd/typecheck attaches a
// printer to an error before rendering it.
func (e *Error) WithPrinter(p Printer) *Error {
	c := *e
	c.Printer = p
	return &c
}
