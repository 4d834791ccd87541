// Package typerepr implements the type-expression representation of
// spec §3: a tagged record carrying a unique type_id, a source location,
// and one of five shapes (Var, Poly, Arrow, Tuple, Ctor).
//
// TypeExpr is deliberately a single struct with a Kind tag rather than an
// interface with five implementations — an open class hierarchy would let
// a caller build an ill-shaped node (a Poly nested inside an Arrow
// argument, for instance) that no switch could reject at construction
// time. Every field not used by a given Kind is simply left zero.
package typerepr

import "github.com/arborlang/tyc/internal/ident"

// TypeID uniquely identifies an allocated TypeExpr. Two type expressions
// with the same TypeID are identical (spec §3).
type TypeID int

// DeclID uniquely identifies a type declaration.
type DeclID int

// Kind tags which shape a TypeExpr carries.
type Kind int

const (
	KVar Kind = iota
	KPoly
	KArrow
	KTuple
	KCtor
)

func (k Kind) String() string {
	switch k {
	case KVar:
		return "Var"
	case KPoly:
		return "Poly"
	case KArrow:
		return "Arrow"
	case KTuple:
		return "Tuple"
	case KCtor:
		return "Ctor"
	default:
		return "?"
	}
}

// Explicitness tags an Arrow's argument-passing discipline.
type Explicitness int

const (
	Explicit Explicitness = iota
	Implicit
)

func (e Explicitness) String() string {
	if e == Implicit {
		return "implicit"
	}
	return "explicit"
}

// TypeExpr is a type expression: the data model of spec §3.
//
// Field usage by Kind:
//
//	KVar:   VarName (optional), Depth
//	KPoly:  PolyVars (all KVar), PolyBody
//	KArrow: Dom, Cod, Arrow
//	KTuple: Elems
//	KCtor:  CtorName, CtorDecl, Params
type TypeExpr struct {
	ID   TypeID
	Pos  ident.Pos
	Kind Kind

	// KVar
	VarName *string
	Depth   int

	// KPoly — prenex only; PolyBody is never itself KPoly, and is never
	// nested inside an Arrow argument or a Tuple/Ctor parameter list.
	PolyVars []*TypeExpr
	PolyBody *TypeExpr

	// KArrow
	Dom, Cod Type
	Arrow    Explicitness

	// KTuple
	Elems []Type

	// KCtor
	CtorName string
	CtorDecl DeclID
	Params   []Type
}

// Type is an alias kept for readability at call sites; TypeExpr pointers
// are always passed by reference so that TypeID-based identity holds.
type Type = *TypeExpr

// DeclKind tags the body shape of a type declaration.
type DeclKind int

const (
	DRecord DeclKind = iota
	DVariant
	DAlias
	DAbstract
)

// Field is one named, positioned record field.
type Field struct {
	Name  string
	Type  Type
	Index int
}

// CtorDef is one constructor of a Variant declaration.
type CtorDef struct {
	Name string
	// Args is the constructor's payload type as imported (any type), the
	// unit type for a no-argument constructor, or nil when RecordRef
	// names a record-shaped payload.
	Args      Type
	RecordRef DeclID
	HasRecord bool
	Return    Type
	Index     int
}

// Decl is a type declaration: a name, ordered formal parameters, a
// unique DeclID, and one of four bodies (spec §3).
type Decl struct {
	ID     DeclID
	Name   string
	Pos    ident.Pos
	Params []Type // formal parameter type-variables, in declaration order

	Kind DeclKind

	// DRecord
	Fields []Field

	// DVariant
	Ctors []CtorDef

	// DAlias
	AliasOf Type
}

// FieldByName finds a record field by name, returning its index alongside.
func (d *Decl) FieldByName(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// CtorByName finds a variant constructor by name.
func (d *Decl) CtorByName(name string) (CtorDef, bool) {
	for _, c := range d.Ctors {
		if c.Name == name {
			return c, true
		}
	}
	return CtorDef{}, false
}
