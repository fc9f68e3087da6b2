// Command kestrelc is a thin CLI wrapping the lexer and parser, grounded on
// the teacher's cobra-based entry point (cli/main.go) but stripped down to
// this front end's scope: no execution, no decorators, no vault.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/kestrel-lang/kestrelc/internal/diag"
	"github.com/kestrel-lang/kestrelc/internal/lexer"
	"github.com/kestrel-lang/kestrelc/internal/parser"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool
	var maxErrors int

	root := &cobra.Command{
		Use:           "kestrelc",
		Short:         "Lex and parse kestrel source files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	parseCmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a file and print any diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(args[0], debug, maxErrors)
		},
	}
	parseCmd.Flags().BoolVar(&debug, "debug", false, "enable verbose lexer/parser logging")
	parseCmd.Flags().IntVar(&maxErrors, "max-errors", diag.DefaultMaxErrors, "stop collecting diagnostics after this many errors")

	tokensCmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the token stream for a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(args[0])
		},
	}

	root.AddCommand(parseCmd, tokensCmd)
	return root
}

func runParse(path string, debug bool, maxErrors int) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var logger *slog.Logger
	if debug {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError + 1}))
	}

	var lexOpts []lexer.Option
	var parseOpts []parser.Option
	if debug {
		lexOpts = append(lexOpts, lexer.WithLogger(logger))
		parseOpts = append(parseOpts, parser.WithLogger(logger))
	}
	parseOpts = append(parseOpts, parser.WithMaxErrors(maxErrors))

	toks := lexer.Lex(string(src), lexOpts...)
	unit, result := parser.ParseCompilationUnit(toks, parseOpts...)

	report := diag.Report{File: path, Source: string(src), Diagnostics: result.Diags}
	if len(report.Diagnostics) > 0 {
		fmt.Fprintln(os.Stderr, report.Format())
	}

	itemCount := len(unit.Items)
	fmt.Printf("%s: %d top-level item(s), %d diagnostic(s)\n", path, itemCount, len(report.Diagnostics))

	if report.HasErrors() {
		return fmt.Errorf("parse failed with %d error(s)", report.Count(diag.Error)+report.Count(diag.Fatal))
	}
	return nil
}

func runTokens(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	for _, t := range lexer.Lex(string(src)) {
		fmt.Printf("%4d:%-3d %s\n", t.Span.StartLine, t.Span.StartColumn, t.String())
	}
	return nil
}
