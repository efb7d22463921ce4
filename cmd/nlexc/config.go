package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/xyproto/env/v2"
)

var errUsage = errors.New("usage")

type config struct {
	path      string
	out       string
	strict    bool
	verbose   bool
	watch     bool
	excerpt   bool
	baseDir   string
	normalise string

	stderr io.Writer
}

// parseConfig reads the command line. Environment variables provide the
// defaults of some flags.
//
func parseConfig(args []string, stderr io.Writer) (*config, error) {
	cfg := &config{stderr: stderr}
	fs := flag.NewFlagSet("nlexc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.out, "o", "", "write the artifact to `file` instead of stdout")
	fs.BoolVar(&cfg.strict, "strict", env.Bool("NLEX_STRICT"), "exit with status 1 if any diagnostic is emitted (NLEX_STRICT)")
	fs.BoolVar(&cfg.verbose, "v", env.Bool("NLEX_VERBOSE"), "verbose mode (NLEX_VERBOSE)")
	fs.BoolVar(&cfg.excerpt, "excerpt", env.Bool("NLEX_EXCERPT"), "print the source line of each diagnostic (NLEX_EXCERPT)")
	fs.StringVar(&cfg.baseDir, "base", env.Str("NLEX_BASE_DIR", ""), "resolve stopword files relative to `dir` (NLEX_BASE_DIR)")
	fs.BoolVar(&cfg.watch, "watch", false, "recompile whenever the rules file changes")
	fs.StringVar(&cfg.normalise, "normalise", "", "print `text` rewritten with the compiled normalisations and exit")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: nlexc [flags] <rules-file>\n\nFlags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return nil, errUsage
	}
	cfg.path = fs.Arg(0)
	return cfg, nil
}

func (c *config) logf(format string, args ...interface{}) {
	if c.verbose {
		fmt.Fprintf(c.stderr, format, args...)
	}
}
