package ast

import "github.com/arborlang/tyc/internal/ident"

// DeclBodyKind tags the body shape of a surface type declaration,
// mirroring typerepr.DeclKind before names are resolved.
type DeclBodyKind int

const (
	BRecord DeclBodyKind = iota
	BVariant
	BAlias
	BAbstract
)

// RecordFieldSyntax is one `name : type` entry of a record declaration.
type RecordFieldSyntax struct {
	Name string
	Type *TypeExpr
}

// CtorSyntax is one constructor arm of a variant declaration. Args and
// RecordRef are mutually exclusive: a constructor either takes a tuple
// of argument types or a reference to a sibling record declaration as
// its payload, matching typerepr.CtorDef.
type CtorSyntax struct {
	Pos       ident.Pos
	Name      string
	Args      *TypeExpr // nil when the constructor takes no argument
	RecordRef string
	HasRecord bool
}

// TypeDeclSyntax is a `type name params = body` declaration.
type TypeDeclSyntax struct {
	Pos    ident.Pos
	Name   string
	Params []string

	Kind DeclBodyKind

	Fields []RecordFieldSyntax // BRecord
	Ctors  []CtorSyntax        // BVariant
	Alias  *TypeExpr           // BAlias
}

// StmtKind tags the shape of a top-level statement (spec §4.5).
type StmtKind int

const (
	SValue StmtKind = iota
	SInstance
	STypeDecl
	SModule
	SOpen
)

// ModuleBodyKind distinguishes an inline module body from a reference
// to another named module.
type ModuleBodyKind int

const (
	ModStructure ModuleBodyKind = iota
	ModRef
)

// ModuleBody is a module's `struct ... end` body, or a bare reference
// to a previously declared module.
type ModuleBody struct {
	Kind       ModuleBodyKind
	Statements []*Stmt // ModStructure
	Ref        string  // ModRef
}

// Stmt is a top-level statement.
type Stmt struct {
	Pos  ident.Pos
	Kind StmtKind

	// SValue
	Pat   *Pattern
	Value *Expr

	// SInstance
	Name string

	// STypeDecl
	TypeDecl *TypeDeclSyntax

	// SModule
	ModuleName string
	ModuleBody ModuleBody

	// SOpen
	Path ident.LongIdent
}
