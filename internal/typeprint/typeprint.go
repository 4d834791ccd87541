// Package typeprint renders typerepr.Type values as the conventional
// notation used in diagnostics: `∀a b. a -> b -> (a, b)`, `t -> int`,
// record and variant types by their declared name.
//
// Print never mutates the environment; it resolves through the
// instance table read-only, mirroring typerepr/types.go's String()
// methods in the pack (here collapsed into one switch since TypeExpr
// is a tagged struct, not an interface with one implementation per
// kind).
package typeprint

import (
	"fmt"
	"strings"

	"github.com/arborlang/tyc/internal/tcenv"
	"github.com/arborlang/tyc/internal/typerepr"
)

// Printer renders types by resolving through env's instance table
// before formatting, so an unresolved variable prints as whatever it
// currently stands for.
type Printer struct {
	Env *tcenv.Env
}

func New(env *tcenv.Env) *Printer {
	return &Printer{Env: env}
}

// Print implements tcerrors.Printer.
func (p *Printer) Print(t typerepr.Type) string {
	return p.print(p.Env.Resolve(t), false)
}

// print renders t. parenNeeded is true when t sits in a position that
// requires parenthesizing a bare Arrow (the left side of another
// Arrow).
func (p *Printer) print(t typerepr.Type, parenNeeded bool) string {
	if t == nil {
		return "<none>"
	}
	switch t.Kind {
	case typerepr.KVar:
		if t.VarName != nil {
			return *t.VarName
		}
		return fmt.Sprintf("t%d", t.ID)

	case typerepr.KPoly:
		vars := make([]string, len(t.PolyVars))
		for i, v := range t.PolyVars {
			vars[i] = p.print(v, false)
		}
		return fmt.Sprintf("∀%s. %s", strings.Join(vars, " "), p.print(p.Env.Resolve(t.PolyBody), false))

	case typerepr.KArrow:
		dom := p.print(p.Env.Resolve(t.Dom), true)
		if t.Arrow == typerepr.Implicit {
			dom = "{" + dom + "}"
		}
		cod := p.print(p.Env.Resolve(t.Cod), false)
		s := fmt.Sprintf("%s -> %s", dom, cod)
		if parenNeeded {
			return "(" + s + ")"
		}
		return s

	case typerepr.KTuple:
		elems := make([]string, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = p.print(p.Env.Resolve(e), false)
		}
		return fmt.Sprintf("(%s)", strings.Join(elems, ", "))

	case typerepr.KCtor:
		name := t.CtorName
		if decl, ok := p.Env.DeclByID(t.CtorDecl); ok {
			name = decl.Name
		}
		if len(t.Params) == 0 {
			return name
		}
		params := make([]string, len(t.Params))
		for i, prm := range t.Params {
			params[i] = p.print(p.Env.Resolve(prm), false)
		}
		return fmt.Sprintf("%s %s", name, strings.Join(params, " "))
	}
	return "?"
}
