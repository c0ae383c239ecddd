// rebload scans Rebol source and molds it back: a loader, formatter,
// and script search tool built on the scanner.
//
//	rebload [flags] [file ...]     scan files (or stdin) and mold the values
//	rebload repl                   interactive scan-and-mold loop
//	rebload index [dir ...]        build the script index
//	rebload search <query>         search the script index
//	rebload watch [dir ...]        re-scan scripts as they change
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	reberrors "github.com/rhencke/rebol/pkg/rebol/errors"
	"github.com/rhencke/rebol/pkg/rebol/load"
	"github.com/rhencke/rebol/pkg/rebol/logging"
	"github.com/rhencke/rebol/pkg/rebol/repl"
	"github.com/rhencke/rebol/pkg/rebol/scanner"
	"github.com/rhencke/rebol/pkg/rebol/scriptindex"
	"github.com/rhencke/rebol/pkg/rebol/value"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	ctx := context.Background()
	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr, os.Getenv); err != nil {
		if se, ok := err.(*reberrors.ScanError); ok {
			fmt.Fprintln(os.Stderr, se.PrettyString())
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

// run is the entry point proper, split out for testability.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, getenv func(string) string) error {
	if len(args) > 0 {
		switch args[0] {
		case "repl":
			repl.Start(stdout, Version)
			return nil
		case "index":
			return runIndex(args[1:], stdout, stderr, getenv)
		case "search":
			return runSearch(args[1:], stdout, stderr, getenv)
		case "watch":
			return runWatch(ctx, args[1:], stdout, stderr, getenv)
		}
	}
	return runScan(ctx, args, stdin, stdout, getenv)
}

func runScan(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer, getenv func(string) string) error {
	fs := flag.NewFlagSet("rebload", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var (
		evalSrc    = fs.String("e", "", "scan a source string instead of files")
		relax      = fs.Bool("relax", false, "turn bad tokens into error values")
		header     = fs.Bool("header", false, "print the script header block too")
		configPath = fs.String("config", "", "config file path")
		version    = fs.Bool("V", false, "print version")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *version {
		fmt.Fprintf(stdout, "rebload version %s\n", Version)
		return nil
	}

	cfg, err := LoadConfig(*configPath, getenv)
	if err != nil {
		return err
	}
	opts := load.Options{Relax: *relax || cfg.Relax, Context: ctx}

	if *evalSrc != "" {
		arr, err := scanner.ScanString(*evalSrc, scanner.Options{
			File:    "eval",
			Relax:   opts.Relax,
			Context: ctx,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, value.MoldArray(arr))
		return nil
	}

	if fs.NArg() == 0 {
		script, err := load.Reader(stdin, "stdin", opts)
		if err != nil {
			return err
		}
		return printScript(stdout, script, *header)
	}

	for _, path := range fs.Args() {
		script, err := load.File(path, opts)
		if err != nil {
			return err
		}
		if err := printScript(stdout, script, *header); err != nil {
			return err
		}
	}
	return nil
}

func printScript(stdout io.Writer, script *load.Script, header bool) error {
	if header && script.Header != nil {
		fmt.Fprintf(stdout, "[%s]\n", value.MoldArray(script.Header))
	}
	fmt.Fprintln(stdout, value.MoldArray(script.Body))
	return nil
}

func runIndex(args []string, stdout, stderr io.Writer, getenv func(string) string) error {
	fs := flag.NewFlagSet("rebload index", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	configPath := fs.String("config", "", "config file path")
	dbPath := fs.String("db", "", "index database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := LoadConfig(*configPath, getenv)
	if err != nil {
		return err
	}
	if *dbPath == "" {
		*dbPath = cfg.Index
	}

	dirs := fs.Args()
	if len(dirs) == 0 {
		dirs = []string{"."}
	}

	ix, err := scriptindex.Open(*dbPath, logging.WriterLogger(stderr))
	if err != nil {
		return err
	}
	defer ix.Close()

	total := 0
	for _, dir := range dirs {
		n, err := ix.IndexDir(dir, cfg.Extensions)
		if err != nil {
			return err
		}
		total += n
	}
	fmt.Fprintf(stdout, "indexed %d scripts into %s\n", total, *dbPath)
	return nil
}

func runSearch(args []string, stdout, stderr io.Writer, getenv func(string) string) error {
	fs := flag.NewFlagSet("rebload search", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	configPath := fs.String("config", "", "config file path")
	dbPath := fs.String("db", "", "index database path")
	limit := fs.Int("limit", 25, "maximum hits")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("search needs a query")
	}

	cfg, err := LoadConfig(*configPath, getenv)
	if err != nil {
		return err
	}
	if *dbPath == "" {
		*dbPath = cfg.Index
	}

	ix, err := scriptindex.Open(*dbPath, logging.WriterLogger(stderr))
	if err != nil {
		return err
	}
	defer ix.Close()

	hits, err := ix.Search(fs.Arg(0), *limit)
	if err != nil {
		return err
	}
	if len(hits) == 0 {
		fmt.Fprintln(stdout, "no matches")
		return nil
	}
	for _, h := range hits {
		fmt.Fprintf(stdout, "%s:%d  %s (%s)\n", h.Path, h.Line, h.Text, h.Kind)
	}
	return nil
}

func runWatch(ctx context.Context, args []string, stdout, stderr io.Writer, getenv func(string) string) error {
	fs := flag.NewFlagSet("rebload watch", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	configPath := fs.String("config", "", "config file path")
	dbPath := fs.String("db", "", "index database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := LoadConfig(*configPath, getenv)
	if err != nil {
		return err
	}
	if *dbPath == "" {
		*dbPath = cfg.Index
	}

	dirs := fs.Args()
	if len(dirs) == 0 {
		dirs = []string{"."}
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := newWatcher(cfg, *dbPath, dirs, logging.WriterLogger(stdout), stderr)
	if err != nil {
		return err
	}
	defer w.Close()
	return w.Run(ctx)
}
