// Package main provides the entry point for the dead-lang transpiler.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Dead-tech/dead-lang/internal/cli"
	"github.com/Dead-tech/dead-lang/internal/diagnostics"
	"github.com/Dead-tech/dead-lang/internal/lexer"
	"github.com/Dead-tech/dead-lang/internal/manifest"
	"github.com/Dead-tech/dead-lang/internal/parser"
	"github.com/Dead-tech/dead-lang/internal/watch"
)

// errCompileFailed marks a run whose diagnostics were already dumped
// by the supervisor; no further reporting is needed.
var errCompileFailed = errors.New("compilation failed")

type options struct {
	debugLexer bool
	outPath    string
	color      bool
}

func main() {
	var (
		showVersion = flag.Bool("version", false, "show version information")
		jsonOutput  = flag.Bool("json", false, "print version information as JSON")
		debugLexer  = flag.Bool("debug-lexer", false, "print the token stream to stderr")
		outPath     = flag.String("o", "", "write the generated C to the given file instead of stdout")
		watchMode   = flag.Bool("watch", false, "retranspile whenever the source file changes")
		noColor     = flag.Bool("no-color", false, "disable colored diagnostics")
		verbose     = flag.Bool("verbose", false, "enable verbose logging")
	)
	flag.Usage = showUsage
	flag.Parse()

	if *showVersion {
		cli.PrintVersion("deadlang", *jsonOutput)
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		showUsage()
		os.Exit(1)
	}

	inputFile := args[0]
	logger := cli.NewLogger(*verbose, false)
	opts := options{
		debugLexer: *debugLexer,
		outPath:    *outPath,
		color:      !*noColor && cli.IsTerminal(os.Stderr.Fd()),
	}

	if *watchMode {
		if err := runWatch(inputFile, opts, logger); err != nil {
			cli.ExitWithError("%v", err)
		}
		return
	}

	if err := transpileFile(inputFile, opts); err != nil {
		if errors.Is(err, errCompileFailed) {
			os.Exit(1)
		}
		cli.ExitWithError("%v", err)
	}
}

func showUsage() {
	fmt.Fprintln(os.Stderr, "dead-lang transpiler")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "USAGE:")
	fmt.Fprintln(os.Stderr, "    deadlang [OPTIONS] <file.dl>")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "OPTIONS:")
	fmt.Fprintln(os.Stderr, "    --version       Show version information")
	fmt.Fprintln(os.Stderr, "    --debug-lexer   Print the token stream to stderr")
	fmt.Fprintln(os.Stderr, "    -o <file.c>     Write the generated C to a file instead of stdout")
	fmt.Fprintln(os.Stderr, "    --watch         Retranspile whenever the source file changes")
	fmt.Fprintln(os.Stderr, "    --no-color      Disable colored diagnostics")
	fmt.Fprintln(os.Stderr, "    --verbose       Enable verbose logging")
}

// transpileFile runs the whole pipeline for one source file: read,
// manifest check, lex, parse, render, emit.
func transpileFile(path string, opts options) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	m, err := manifest.Load(path)
	if err != nil {
		return err
	}
	if err := m.CheckCompiler(cli.Version); err != nil {
		return err
	}

	sup := diagnostics.New(string(content), filepath.Dir(path))
	sup.EnableColor(opts.color)

	tokens := lexer.Lex(string(content), sup)
	if sup.HasErrors() {
		sup.Dump(os.Stderr)
		return errCompileFailed
	}

	if opts.debugLexer {
		for _, tok := range tokens {
			fmt.Fprintln(os.Stderr, tok)
		}
	}

	module := parser.Parse(tokens, sup)
	if sup.HasErrors() || module == nil {
		sup.Dump(os.Stderr)
		return errCompileFailed
	}

	output := module.Render()
	if opts.outPath == "" {
		fmt.Println(output)
		return nil
	}

	if err := os.WriteFile(opts.outPath, []byte(output), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.outPath, err)
	}

	return nil
}

// runWatch transpiles once, then retranspiles on every debounced
// change to the source file until interrupted.
func runWatch(path string, opts options, logger *cli.Logger) error {
	if err := transpileFile(path, opts); err != nil && !errors.Is(err, errCompileFailed) {
		return err
	}

	w, err := watch.New(filepath.Dir(path), 100*time.Millisecond)
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer w.Close()

	logger.Info("watching %s", path)

	for {
		select {
		case changed := <-w.Events():
			if filepath.Clean(changed) != filepath.Clean(path) {
				continue
			}

			logger.Info("change detected, retranspiling %s", path)
			if err := transpileFile(path, opts); err != nil && !errors.Is(err, errCompileFailed) {
				logger.Error("%v", err)
			}
		case err := <-w.Errors():
			logger.Error("watch error: %v", err)
		}
	}
}
