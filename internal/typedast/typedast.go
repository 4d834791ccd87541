// Package typedast defines the checker's output AST: every expression,
// pattern, and statement node of the input ast package, annotated with
// its inferred typerepr.Type. Applying the final instance substitution
// to every annotation is expected to be idempotent (spec §8).
package typedast

import (
	"github.com/arborlang/tyc/internal/ident"
	"github.com/arborlang/tyc/internal/typerepr"
)

// PatternKind mirrors ast.PatternKind.
type PatternKind int

const (
	PAny PatternKind = iota
	PVar
	PTuple
	POr
	PInt
	PRecord
	PCtor
)

type RecordPatField struct {
	Name  string
	Index int
	Pat   *Pattern
}

// Pattern is an elaborated pattern: the surface Constraint form has
// already been absorbed into Type at this point, since its only effect
// was to unify an annotation with the expected type.
type Pattern struct {
	Pos  ident.Pos
	Kind PatternKind
	Type typerepr.Type

	VarName string

	Elems []*Pattern

	Left, Right *Pattern

	IntValue int64

	Fields []RecordPatField

	CtorName string
	CtorDecl typerepr.DeclID
	Arg      *Pattern
}

// ExprKind tags the shape of an elaborated expression. EPlaceholder is
// an internal-only marker standing for an implicit argument not yet
// resolved; the ImplicitResolver eliminates every EPlaceholder in a
// binding's body before the StatementDriver ever observes it (either
// by substituting in the resolved instance or by abstracting over it),
// so it never escapes the checker's own pass.
type ExprKind int

const (
	EVar ExprKind = iota
	EInt
	EApply
	EFun
	ESeq
	ELet
	ETuple
	EMatch
	EField
	ERecord
	ECtor
	EPlaceholder
)

type MatchArm struct {
	Pat  *Pattern
	Body *Expr
}

type RecordExprField struct {
	Name  string
	Index int
	Value *Expr
}

// Expr is an elaborated expression, annotated with its final type.
type Expr struct {
	Pos  ident.Pos
	Kind ExprKind
	Type typerepr.Type

	// EVar
	Name string

	// EInt
	IntValue int64

	// EApply
	Fn   *Expr
	Args []*Expr

	// EFun
	Param *Pattern
	Body  *Expr
	Arrow typerepr.Explicitness

	// ESeq, ELet
	First, Second *Expr
	Pat           *Pattern
	Value         *Expr

	// ETuple
	Elems []*Expr

	// EMatch
	Scrutinee *Expr
	Arms      []MatchArm

	// EField
	FieldName  string
	FieldDecl  typerepr.DeclID
	FieldIndex int

	// ERecord
	RecFields []RecordExprField
	Ext       *Expr

	// ECtor
	CtorName string
	CtorDecl typerepr.DeclID
	CtorArg  *Expr

	// EPlaceholder — PlaceholderID indexes into the ImplicitResolver's
	// pending-placeholder table for the binding currently being closed.
	PlaceholderID int
}

// StmtKind mirrors ast.StmtKind.
type StmtKind int

const (
	SValue StmtKind = iota
	SInstance
	STypeDecl
	SModule
	SOpen
)

type Stmt struct {
	Pos  ident.Pos
	Kind StmtKind

	Pat   *Pattern
	Value *Expr

	Name string

	DeclID typerepr.DeclID

	ModuleName string
	Statements []*Stmt

	Path string
}
