// Command typecheck is a stepper over a small fixed set of sample
// programs, built directly as ast values (no lexer or parser in
// scope). It runs each sample through the checker and prints the
// elaborated top-level types, one statement at a time.
//
// Pass -step for an interactive walkthrough (press enter to advance);
// otherwise every sample runs straight through.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/arborlang/tyc/internal/tcconfig"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
	dim   = color.New(color.Faint).SprintFunc()
)

func main() {
	step := flag.Bool("step", false, "walk through samples interactively")
	configPath := flag.String("config", ".typecheckrc.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := tcconfig.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("config error"), err)
		os.Exit(1)
	}
	if !cfg.Color {
		color.NoColor = true
	}

	if *step {
		runInteractive(os.Stdin, os.Stdout, cfg)
		return
	}
	runAll(os.Stdout, cfg)
}

func runAll(out io.Writer, cfg tcconfig.Config) {
	for _, r := range evaluate(cfg) {
		printResult(out, r)
		fmt.Fprintln(out)
	}
}

func runInteractive(in io.Reader, out io.Writer, cfg tcconfig.Config) {
	fmt.Fprintf(out, "%s %s\n", bold("tyc"), dim("interactive stepper — press enter to run each sample"))

	line := liner.NewLiner()
	defer line.Close()

	for _, r := range evaluate(cfg) {
		if _, err := line.Prompt(fmt.Sprintf("\n%s [enter to run] ", cyan(r.Name))); err == io.EOF {
			break
		}
		printResult(out, r)
	}
}

func printResult(out io.Writer, r sampleResult) {
	fmt.Fprintf(out, "%s %s\n", bold("==>"), r.Name)
	if r.Err != "" {
		fmt.Fprintf(out, "  %s %s\n", red("error:"), r.Err)
		return
	}
	for _, b := range r.Bindings {
		fmt.Fprintf(out, "  %s : %s\n", dim(b.Name), green(b.Type))
	}
}
