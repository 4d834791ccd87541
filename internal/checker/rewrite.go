package checker

import "github.com/arborlang/tyc/internal/typedast"

// rewritePlaceholders replaces every EPlaceholder node in e whose
// PlaceholderID is a key of resolved with the corresponding expression,
// leaving everything else structurally unchanged. Leaf nodes and
// unresolved placeholders are returned as-is; every other node is
// copied, whether or not anything beneath it was rewritten.
func rewritePlaceholders(e *typedast.Expr, resolved map[int]*typedast.Expr) *typedast.Expr {
	if e == nil {
		return nil
	}
	switch e.Kind {
	case typedast.EPlaceholder:
		if r, ok := resolved[e.PlaceholderID]; ok {
			return r
		}
		return e

	case typedast.EVar, typedast.EInt:
		return e

	case typedast.EApply:
		args := make([]*typedast.Expr, len(e.Args))
		for i, a := range e.Args {
			args[i] = rewritePlaceholders(a, resolved)
		}
		cp := *e
		cp.Fn = rewritePlaceholders(e.Fn, resolved)
		cp.Args = args
		return &cp

	case typedast.EFun:
		cp := *e
		cp.Body = rewritePlaceholders(e.Body, resolved)
		return &cp

	case typedast.ESeq:
		cp := *e
		cp.First = rewritePlaceholders(e.First, resolved)
		cp.Second = rewritePlaceholders(e.Second, resolved)
		return &cp

	case typedast.ELet:
		cp := *e
		cp.Value = rewritePlaceholders(e.Value, resolved)
		cp.Body = rewritePlaceholders(e.Body, resolved)
		return &cp

	case typedast.ETuple:
		elems := make([]*typedast.Expr, len(e.Elems))
		for i, el := range e.Elems {
			elems[i] = rewritePlaceholders(el, resolved)
		}
		cp := *e
		cp.Elems = elems
		return &cp

	case typedast.EMatch:
		arms := make([]typedast.MatchArm, len(e.Arms))
		for i, a := range e.Arms {
			arms[i] = typedast.MatchArm{Pat: a.Pat, Body: rewritePlaceholders(a.Body, resolved)}
		}
		cp := *e
		cp.Scrutinee = rewritePlaceholders(e.Scrutinee, resolved)
		cp.Arms = arms
		return &cp

	case typedast.EField:
		cp := *e
		cp.Fn = rewritePlaceholders(e.Fn, resolved)
		return &cp

	case typedast.ERecord:
		fields := make([]typedast.RecordExprField, len(e.RecFields))
		for i, f := range e.RecFields {
			fields[i] = typedast.RecordExprField{Name: f.Name, Index: f.Index, Value: rewritePlaceholders(f.Value, resolved)}
		}
		cp := *e
		cp.RecFields = fields
		if e.Ext != nil {
			cp.Ext = rewritePlaceholders(e.Ext, resolved)
		}
		return &cp

	case typedast.ECtor:
		cp := *e
		if e.CtorArg != nil {
			cp.CtorArg = rewritePlaceholders(e.CtorArg, resolved)
		}
		return &cp
	}

	return e
}
