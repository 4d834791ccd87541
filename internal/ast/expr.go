package ast

import (
	"github.com/arborlang/tyc/internal/ident"
	"github.com/arborlang/tyc/internal/typerepr"
)

// ExprKind tags the shape of an expression (spec §4.3).
type ExprKind int

const (
	EVar ExprKind = iota
	EInt
	EApply
	EFun
	ESeq
	ELet
	EConstraint
	ETuple
	EMatch
	EField
	ERecord
	ECtor
)

// MatchArm is one `pattern -> body` arm of a Match expression.
type MatchArm struct {
	Pat  *Pattern
	Body *Expr
}

// RecordExprField is one `name = value` entry of a record literal.
type RecordExprField struct {
	Name  string
	Value *Expr
}

// Expr is an expression as written in source.
type Expr struct {
	Pos  ident.Pos
	Kind ExprKind

	// EVar
	Name ident.LongIdent

	// EInt
	IntValue int64

	// EApply
	Fn   *Expr
	Args []*Expr

	// EFun
	Param *Pattern
	Body  *Expr
	Arrow typerepr.Explicitness

	// ESeq, ELet, EConstraint, EField
	First, Second *Expr // ESeq
	Pat           *Pattern
	Value         *Expr // ELet's bound expr, EConstraint's subject, EField's receiver
	Type          *TypeExpr

	// ETuple
	Elems []*Expr

	// EMatch
	Scrutinee *Expr
	Arms      []MatchArm

	// EField — Field may be Dotted to name a record module explicitly
	// (spec §4.3's "explicit module-qualified field name").
	Field ident.LongIdent

	// ERecord
	RecFields []RecordExprField
	Ext       *Expr // nil when the literal has no extension base

	// ECtor
	CtorName ident.LongIdent
	CtorArg  *Expr // nil when the constructor takes no argument
}
