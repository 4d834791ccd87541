package tcenv

import (
	"github.com/arborlang/tyc/internal/ast"
	"github.com/arborlang/tyc/internal/tcerrors"
	"github.com/arborlang/tyc/internal/typerepr"
)

// ImportTypeDecl converts a surface type declaration into a
// typerepr.Decl, allocating a fresh DeclID and one fresh parameter Var
// per declared parameter name. All fields/constructors/alias bodies of
// the declaration share those same parameter Vars, so `type pair a b =
// { fst : a; snd : b }` ties both fields to the declaration's own two
// parameters rather than to fresh, unrelated ones.
func (env *Env) ImportTypeDecl(syntax *ast.TypeDeclSyntax) (*typerepr.Decl, error) {
	id := env.NewDeclID()
	vars := make(map[string]typerepr.Type, len(syntax.Params))
	params := make([]typerepr.Type, len(syntax.Params))
	for i, name := range syntax.Params {
		n := name
		v := env.NewVar(&n, env.CurrentDepth(), syntax.Pos)
		vars[name] = v
		params[i] = v
	}

	decl := &typerepr.Decl{
		ID:     id,
		Name:   syntax.Name,
		Params: params,
	}

	switch syntax.Kind {
	case ast.BRecord:
		decl.Kind = typerepr.DRecord
		decl.Fields = make([]typerepr.Field, len(syntax.Fields))
		for i, f := range syntax.Fields {
			ft, err := env.importType(f.Type, vars)
			if err != nil {
				return nil, err
			}
			decl.Fields[i] = typerepr.Field{Name: f.Name, Type: ft, Index: i}
		}

	case ast.BVariant:
		decl.Kind = typerepr.DVariant
		decl.Ctors = make([]typerepr.CtorDef, len(syntax.Ctors))
		for i, c := range syntax.Ctors {
			def := typerepr.CtorDef{Name: c.Name, Index: i, Return: env.NewCtor(syntax.Name, id, params, c.Pos)}
			if c.HasRecord {
				refID, ok := env.LookupType(c.RecordRef)
				if !ok {
					return nil, tcerrors.Unbound(c.Pos, tcerrors.UnboundType, c.RecordRef)
				}
				def.HasRecord = true
				def.RecordRef = refID
			} else if c.Args != nil {
				argsType, err := env.importType(c.Args, vars)
				if err != nil {
					return nil, err
				}
				def.Args = argsType
			} else {
				def.Args = env.UnitType(c.Pos)
			}
			decl.Ctors[i] = def
		}

	case ast.BAlias:
		decl.Kind = typerepr.DAlias
		aliasBody, err := env.importType(syntax.Alias, vars)
		if err != nil {
			return nil, err
		}
		decl.AliasOf = aliasBody

	case ast.BAbstract:
		decl.Kind = typerepr.DAbstract
	}

	return decl, nil
}
