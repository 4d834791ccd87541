// Package ast defines the input AST the checker consumes: the surface
// syntax produced by an earlier parsing stage (out of scope here, per
// spec §1). Every node is a tagged struct with a Kind enum rather than
// an interface hierarchy, matching the representation discipline used
// for type expressions in typerepr — a parser bug that builds an
// ill-shaped node should fail a switch, not silently satisfy an
// interface.
package ast

import (
	"github.com/arborlang/tyc/internal/ident"
	"github.com/arborlang/tyc/internal/typerepr"
)

// TypeExprKind tags the shape of a surface type expression.
type TypeExprKind int

const (
	TVar TypeExprKind = iota
	TArrow
	TTuple
	TCtor
)

// TypeExpr is a type annotation as written in source: type variables by
// name, arrows, tuples, and named constructor applications. Unlike
// typerepr.TypeExpr, names have not yet been resolved to DeclIDs and
// variables of the same name have not yet been unified to the same
// TypeID — that happens when the checker imports a TypeExpr into the
// environment (see tcenv.Env.ImportType).
type TypeExpr struct {
	Pos  ident.Pos
	Kind TypeExprKind

	// TVar
	VarName string

	// TArrow
	Dom, Cod *TypeExpr
	Arrow    typerepr.Explicitness

	// TTuple
	Elems []*TypeExpr

	// TCtor
	CtorName ident.LongIdent
	Args     []*TypeExpr
}
