package tcenv

import (
	"github.com/arborlang/tyc/internal/ast"
	"github.com/arborlang/tyc/internal/ident"
	"github.com/arborlang/tyc/internal/tcerrors"
	"github.com/arborlang/tyc/internal/typerepr"
)

// ImportType converts a surface type annotation into a typerepr.Type,
// allocating one fresh Var per distinct variable name encountered
// (spec §4.2's "importing t allocates fresh type_ids for its free
// variables"). Two occurrences of the same name within a single
// ImportType call share the same Var; across separate calls they do
// not, matching each annotation being its own scope of names.
func (env *Env) ImportType(t *ast.TypeExpr) (typerepr.Type, error) {
	vars := make(map[string]typerepr.Type)
	return env.importType(t, vars)
}

func (env *Env) importType(t *ast.TypeExpr, vars map[string]typerepr.Type) (typerepr.Type, error) {
	switch t.Kind {
	case ast.TVar:
		if v, ok := vars[t.VarName]; ok {
			return v, nil
		}
		name := t.VarName
		v := env.NewVar(&name, env.CurrentDepth(), t.Pos)
		vars[t.VarName] = v
		return v, nil

	case ast.TArrow:
		dom, err := env.importType(t.Dom, vars)
		if err != nil {
			return nil, err
		}
		cod, err := env.importType(t.Cod, vars)
		if err != nil {
			return nil, err
		}
		return env.NewArrow(dom, cod, t.Arrow, t.Pos), nil

	case ast.TTuple:
		elems := make([]typerepr.Type, len(t.Elems))
		for i, e := range t.Elems {
			et, err := env.importType(e, vars)
			if err != nil {
				return nil, err
			}
			elems[i] = et
		}
		return env.FoldTuple(elems, t.Pos), nil

	case ast.TCtor:
		if t.CtorName.Kind == ident.Applied {
			return nil, tcerrors.Unbound(t.Pos, tcerrors.UnboundType, t.CtorName.String())
		}
		declID, ok := env.LookupType(t.CtorName.Base())
		if !ok {
			return nil, tcerrors.Unbound(t.Pos, tcerrors.UnboundType, t.CtorName.Base())
		}
		args := make([]typerepr.Type, len(t.Args))
		for i, a := range t.Args {
			at, err := env.importType(a, vars)
			if err != nil {
				return nil, err
			}
			args[i] = at
		}
		return env.NewCtor(t.CtorName.Base(), declID, args, t.Pos), nil
	}

	return nil, tcerrors.WrongTypeDescription(t.Pos)
}
