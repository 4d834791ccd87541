package checker

import (
	"github.com/arborlang/tyc/internal/tcerrors"
	"github.com/arborlang/tyc/internal/typedast"
	"github.com/arborlang/tyc/internal/unify"
)

// resolveImplicit tries every visible implicit instance against ph's
// type. A unique match is committed and returned; no match reports
// (nil, false, nil) so the caller can abstract over ph instead;
// more than one match is ambiguity, which spec §4.4 treats the same
// as no instance at all.
func (c *Checker) resolveImplicit(ph *Placeholder) (*typedast.Expr, bool, error) {
	candidates := c.Env.VisibleImplicits()

	var matches []string
	for _, cand := range candidates {
		snap := c.Env.SnapshotInstances()
		err := unify.Unify(c.Env, ph.Type, cand.Type, ph.Pos)
		c.Env.RestoreInstances(snap)
		if err == nil {
			matches = append(matches, cand.Name)
		}
	}

	if len(matches) == 0 {
		return nil, false, nil
	}
	if len(matches) > 1 {
		return nil, false, tcerrors.NoInstance(ph.Pos, ph.Type)
	}

	name := matches[0]
	instType, _ := c.Env.LookupImplicit(name)
	if err := unify.Unify(c.Env, ph.Type, instType, ph.Pos); err != nil {
		return nil, false, err
	}
	return &typedast.Expr{Pos: ph.Pos, Kind: typedast.EVar, Name: name, Type: instType}, true, nil
}
