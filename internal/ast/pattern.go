package ast

import "github.com/arborlang/tyc/internal/ident"

// PatternKind tags the shape of a pattern (spec §4.2).
type PatternKind int

const (
	PAny PatternKind = iota
	PVar
	PConstraint
	PTuple
	POr
	PInt
	PRecord
	PCtor
)

// RecordPatField is one `name = pattern` entry of a record pattern.
type RecordPatField struct {
	Name string
	Pat  *Pattern
}

// Pattern is a pattern as written in source.
type Pattern struct {
	Pos  ident.Pos
	Kind PatternKind

	// PVar
	VarName string

	// PConstraint
	Inner *Pattern
	Type  *TypeExpr

	// PTuple
	Elems []*Pattern

	// POr
	Left, Right *Pattern

	// PInt
	IntValue int64

	// PRecord
	Fields []RecordPatField

	// PCtor
	CtorName ident.LongIdent
	Arg      *Pattern // nil when the constructor takes no argument
}
