package checker

import (
	"fmt"

	"github.com/arborlang/tyc/internal/ast"
	"github.com/arborlang/tyc/internal/ident"
	"github.com/arborlang/tyc/internal/pattern"
	"github.com/arborlang/tyc/internal/tcerrors"
	"github.com/arborlang/tyc/internal/typedast"
	"github.com/arborlang/tyc/internal/typerepr"
)

// CheckBinding implements check_binding (spec §4.4): infer value's
// type, resolve or abstract over every implicit placeholder it
// produced, and bind pat's names — generalized where their free
// variables do not escape to an enclosing scope.
//
// Each call owns its own placeholder list; a placeholder is always
// settled (resolved against an instance, or abstracted into an
// implicit parameter of this very binding) before CheckBinding
// returns, so nothing here ever needs to decide whether a placeholder
// "belongs" to some further-out binding.
func (c *Checker) CheckBinding(pat *ast.Pattern, value *ast.Expr, toplevel bool) (*typedast.Pattern, *typedast.Expr, error) {
	bodyVar := c.Env.FreshVar(value.Pos)
	var implicits []*Placeholder
	elabVal, err := c.CheckExpr(bodyVar, value, &implicits)
	if err != nil {
		return nil, nil, err
	}
	elabVal.Type = c.Env.Flatten(bodyVar)

	resolved := make(map[int]*typedast.Expr, len(implicits))
	var abstractions []abstraction

	for _, ph := range implicits {
		instanceExpr, found, err := c.resolveImplicit(ph)
		if err != nil {
			return nil, nil, err
		}
		if found {
			resolved[ph.ID] = instanceExpr
			continue
		}
		if toplevel {
			return nil, nil, tcerrors.NoInstance(ph.Pos, ph.Type)
		}
		paramName := fmt.Sprintf("$implicit%d", ph.ID)
		resolved[ph.ID] = &typedast.Expr{Pos: ph.Pos, Kind: typedast.EVar, Name: paramName, Type: ph.Type}
		abstractions = append(abstractions, abstraction{name: paramName, t: ph.Type, pos: ph.Pos})
	}

	elabVal = rewritePlaceholders(elabVal, resolved)

	for i := len(abstractions) - 1; i >= 0; i-- {
		a := abstractions[i]
		elabVal = &typedast.Expr{
			Pos:  a.pos,
			Kind: typedast.EFun,
			Param: &typedast.Pattern{
				Pos: a.pos, Kind: typedast.PVar, VarName: a.name, Type: a.t,
			},
			Body:  elabVal,
			Arrow: typerepr.Implicit,
			Type:  c.Env.NewArrow(a.t, elabVal.Type, typerepr.Implicit, a.pos),
		}
	}

	elabPat, err := c.Pattern.Check(elabVal.Type, pat, pattern.Polymorphic)
	if err != nil {
		return nil, nil, err
	}

	return elabPat, elabVal, nil
}

type abstraction struct {
	name string
	t    typerepr.Type
	pos  ident.Pos
}
