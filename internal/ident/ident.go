// Package ident implements the identifier and source-location data model
// described in spec §3: simple identifiers and module-qualified long
// identifiers, each carrying a source position.
package ident

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Pos is a single point in source text.
type Pos struct {
	Line   int
	Column int
	File   string
}

func (p Pos) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Span is a half-open range between two positions.
type Span struct {
	Start Pos
	End   Pos
}

func (s Span) String() string { return s.Start.String() }

// Ident is a simple (non-qualified) identifier.
type Ident struct {
	Name string
	Pos  Pos
}

// New builds a simple identifier, normalizing the name to Unicode NFC so
// that encoding-equivalent-but-byte-distinct spellings collide correctly
// in the name-keyed maps of tcenv.Scope.
func New(name string, pos Pos) Ident {
	return Ident{Name: normalize(name), Pos: pos}
}

func (i Ident) String() string { return i.Name }

func normalize(s string) string {
	if norm.NFC.IsNormalString(s) {
		return s
	}
	return norm.NFC.String(s)
}

// LongKind tags the three shapes a LongIdent can take.
type LongKind int

const (
	// Bare is a single unqualified name.
	Bare LongKind = iota
	// Dotted is a module-qualified path: Path.Name.
	Dotted
	// Applied is Path(Path) — only appears in pathological inputs and is
	// never supported beyond raising Unbound errors.
	Applied
)

func (k LongKind) String() string {
	switch k {
	case Bare:
		return "bare"
	case Dotted:
		return "dotted"
	case Applied:
		return "applied"
	default:
		return "unknown"
	}
}

// LongIdent is a module-qualified identifier chain.
type LongIdent struct {
	Kind LongKind
	Pos  Pos

	// Bare
	Name string

	// Dotted: Path.Tail
	Path *LongIdent
	Tail string

	// Applied: Left(Right) — pathological, carried only for diagnostics.
	Left  *LongIdent
	Right *LongIdent
}

// NewBare builds a Bare long identifier.
func NewBare(name string, pos Pos) *LongIdent {
	return &LongIdent{Kind: Bare, Name: normalize(name), Pos: pos}
}

// NewDotted builds a Dotted long identifier qualifying path with tail.
func NewDotted(path *LongIdent, tail string, pos Pos) *LongIdent {
	return &LongIdent{Kind: Dotted, Path: path, Tail: normalize(tail), Pos: pos}
}

// NewApplied builds an Applied long identifier. Never meaningfully
// resolved; present so the checker can reject it with a precise message
// rather than panicking on an unrecognized shape.
func NewApplied(left, right *LongIdent, pos Pos) *LongIdent {
	return &LongIdent{Kind: Applied, Left: left, Right: right, Pos: pos}
}

// Base returns the final simple-name component, used for single-name
// lookups (field names, constructor names) that never appear qualified.
func (l *LongIdent) Base() string {
	switch l.Kind {
	case Bare:
		return l.Name
	case Dotted:
		return l.Tail
	default:
		return ""
	}
}

func (l *LongIdent) String() string {
	switch l.Kind {
	case Bare:
		return l.Name
	case Dotted:
		return l.Path.String() + "." + l.Tail
	case Applied:
		return l.Left.String() + "(" + l.Right.String() + ")"
	default:
		return "<invalid>"
	}
}

// ModulePath returns the dotted segments preceding the final name, or nil
// for a Bare identifier.
func (l *LongIdent) ModulePath() []string {
	if l.Kind != Dotted {
		return nil
	}
	var segs []string
	cur := l.Path
	for cur != nil {
		segs = append([]string{cur.Base()}, segs...)
		if cur.Kind != Dotted {
			break
		}
		cur = cur.Path
	}
	return segs
}

// Qualify joins module path segments with '.'.
func Qualify(segs ...string) string {
	return strings.Join(segs, ".")
}
