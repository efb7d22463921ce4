// Command nlexc compiles tokenizer rule files.
//
// Usage:
//
//	nlexc [flags] <rules-file>
//
// The compiled artifact is written as JSON to the standard output, or to the
// file given with -o. Diagnostics are printed to the standard error, one per
// line:
//
//	[E0] Already Defined (line 3, index 0) - `A' already defined
//
// With -watch, nlexc recompiles the file whenever it changes and prints
// either the diagnostics or "Everything OK", until interrupted.
//
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/db47h/nlex"
	"github.com/db47h/nlex/diag"
	"github.com/db47h/nlex/token"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := parseConfig(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if cfg.watch {
		if err = watchLoop(ctx, cfg, stdout); err != nil {
			fmt.Fprintf(stderr, "nlexc: %v\n", err)
			return 1
		}
		return 0
	}
	n, err := compile(cfg, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "nlexc: %v\n", err)
		return 1
	}
	if cfg.strict && n > 0 {
		return 1
	}
	return 0
}

// compile compiles the rules file and writes its output. It returns the
// number of diagnostics.
//
func compile(cfg *config, stdout io.Writer) (int, error) {
	var opts []nlex.Option
	if cfg.baseDir != "" {
		opts = append(opts, nlex.WithBaseDir(cfg.baseDir))
	}
	cfg.logf("compiling %s\n", cfg.path)
	res, err := nlex.CompileFile(cfg.path, opts...)
	if err != nil {
		return 0, err
	}
	printDiagnostics(cfg, res)

	a := res.Artifact
	cfg.logf("%d values, %d normalisations, %d stopwords, %d diagnostics\n",
		len(a.Names()), len(a.Normalisations()), len(a.Stopwords()), len(res.Diagnostics))

	if cfg.normalise != "" {
		fmt.Fprintln(stdout, a.Normalise(cfg.normalise))
		return len(res.Diagnostics), nil
	}
	if cfg.watch && cfg.out == "" {
		return len(res.Diagnostics), nil
	}
	b, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return 0, err
	}
	b = append(b, '\n')
	if cfg.out == "" {
		_, err = stdout.Write(b)
		return len(res.Diagnostics), err
	}
	if err = os.WriteFile(cfg.out, b, 0o644); err != nil {
		return 0, err
	}
	cfg.logf("wrote %s\n", cfg.out)
	return len(res.Diagnostics), nil
}

func printDiagnostics(cfg *config, res *nlex.Result) {
	for _, d := range res.Diagnostics {
		fmt.Fprintln(cfg.stderr, d.Error())
		if !cfg.excerpt || d.At == token.Unknown {
			continue
		}
		if ex, err := diag.Excerpt(res.File, d.At); err == nil {
			fmt.Fprintln(cfg.stderr, ex)
		}
	}
}

func watchLoop(ctx context.Context, cfg *config, stdout io.Writer) error {
	w, err := newWatcher(cfg.path)
	if err != nil {
		return err
	}
	var mu sync.Mutex
	build := func() {
		mu.Lock()
		defer mu.Unlock()
		n, err := compile(cfg, stdout)
		switch {
		case err != nil:
			fmt.Fprintf(cfg.stderr, "nlexc: %v\n", err)
		case n == 0:
			fmt.Fprintln(stdout, "Everything OK")
		}
	}
	build()
	cfg.logf("watching %s\n", cfg.path)
	return w.run(ctx, build)
}
