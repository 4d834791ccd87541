package main

import (
	"fmt"

	"github.com/arborlang/tyc/internal/statement"
	"github.com/arborlang/tyc/internal/tcconfig"
	"github.com/arborlang/tyc/internal/tcenv"
	"github.com/arborlang/tyc/internal/tcerrors"
	"github.com/arborlang/tyc/internal/typedast"
	"github.com/arborlang/tyc/internal/typeprint"
)

// binding is one name-to-type line a sample's statements introduce.
type binding struct {
	Name string
	Type string
}

// sampleResult is the structured outcome of running one sample through
// a fresh environment: either the bindings its statements introduced,
// or the error message raised by the first failing statement.
type sampleResult struct {
	Name     string
	Bindings []binding
	Err      string
}

// evaluate runs every sample through its own fresh environment and
// returns the result in structured form, independent of how it is
// eventually rendered (colorized terminal output or a test's golden
// comparison).
func evaluate(cfg tcconfig.Config) []sampleResult {
	out := make([]sampleResult, 0, len(samples()))
	for _, s := range samples() {
		out = append(out, evaluateSample(s, cfg))
	}
	return out
}

func evaluateSample(s sample, cfg tcconfig.Config) sampleResult {
	env := tcenv.New()
	driver := statement.New(env)
	driver.Checker.MaxImplicitChain = cfg.MaxImplicitChain
	printer := typeprint.New(env)

	checked, err := driver.Run(s.stmts)
	if err != nil {
		if tcErr, ok := err.(*tcerrors.Error); ok {
			err = tcErr.WithPrinter(printer)
		}
		return sampleResult{Name: s.name, Err: err.Error()}
	}

	var bindings []binding
	for _, stmt := range checked {
		bindings = append(bindings, describeBindings(printer, stmt)...)
	}
	return sampleResult{Name: s.name, Bindings: bindings}
}

func describeBindings(p *typeprint.Printer, s *typedast.Stmt) []binding {
	switch s.Kind {
	case typedast.SValue:
		name := bindingName(s.Pat)
		t := s.Value.Type
		if bound, ok := p.Env.LookupValue(name); ok {
			t = bound
		}
		return []binding{{Name: name, Type: p.Print(t)}}
	case typedast.SInstance:
		return []binding{{Name: "instance " + s.Name, Type: p.Print(s.Value.Type)}}
	case typedast.STypeDecl:
		return []binding{{Name: "type", Type: fmt.Sprintf("declared (id %d)", s.DeclID)}}
	case typedast.SModule:
		return []binding{{Name: "module", Type: s.ModuleName}}
	case typedast.SOpen:
		return []binding{{Name: "open", Type: s.Path}}
	}
	return nil
}

func bindingName(p *typedast.Pattern) string {
	if p != nil && p.Kind == typedast.PVar {
		return p.VarName
	}
	return "_"
}
