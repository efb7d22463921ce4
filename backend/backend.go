// Package backend defines the interfaces of the components that consume a
// compiled rule file: the generated tokenizer and the service that builds it.
//
// Neither is implemented here. The tokenizer is a native module and the
// build service is remote; this package only models their contracts so that
// callers do not depend on how they are reached.
//
package backend

import (
	"bufio"
	"context"
	"errors"
	"io"

	"github.com/db47h/nlex"
	"github.com/db47h/nlex/diag"
)

// Meta is a set of token flags.
//
type Meta uint32

// Token flags.
//
const (
	Stopword Meta = 1 << iota
)

// IsStopword returns true if the stopword flag is set.
//
func (m Meta) IsStopword() bool {
	return m&Stopword != 0
}

// A Span is a token produced by a Tokenizer.
//
type Span struct {
	Text   string
	Offset int // byte offset in the fed text
	Tag    string
	Meta   Meta
}

// A Tokenizer splits text into spans.
//
type Tokenizer interface {
	// Feed replaces the tokenizer input with text.
	Feed(text string)
	// Next returns the next span. It returns io.EOF once the input is
	// exhausted.
	Next() (Span, error)
}

// Tokens feeds text to t and returns all the spans it produces.
//
func Tokens(t Tokenizer, text string) ([]Span, error) {
	t.Feed(text)
	var spans []Span
	for {
		s, err := t.Next()
		if err != nil {
			if err == io.EOF {
				err = nil
			}
			return spans, err
		}
		spans = append(spans, s)
	}
}

type annotated struct {
	Tokenizer
	a *nlex.Artifact
}

func (t *annotated) Next() (Span, error) {
	s, err := t.Tokenizer.Next()
	if err != nil {
		return s, err
	}
	if t.a.IsStopword(s.Text) {
		s.Meta |= Stopword
	} else {
		s.Meta &^= Stopword
	}
	return s, nil
}

// Annotate returns a Tokenizer that sets the stopword flag of the spans
// produced by t according to the stopwords of a.
//
func Annotate(t Tokenizer, a *nlex.Artifact) Tokenizer {
	return &annotated{t, a}
}

// Target identifies the platform a module is built for.
//
type Target struct {
	OS   string
	Arch string
}

// A Job identifies a submitted build.
//
type Job string

// A Build is the outcome of a build job. Module is empty if the rule file
// had errors.
//
type Build struct {
	Diagnostics []diag.Parsed
	Module      []byte
	Extension   string // file name extension of the module, like ".so"
}

// ErrNoModule is returned by Build.Err when a build produced no module.
//
var ErrNoModule = errors.New("build produced no module")

// Err returns nil if b holds a module.
//
func (b *Build) Err() error {
	if len(b.Module) == 0 {
		return ErrNoModule
	}
	return nil
}

// A BuildService compiles rule files into tokenizer modules.
//
type BuildService interface {
	Submit(ctx context.Context, src []byte, target Target) (Job, error)
	Fetch(ctx context.Context, job Job) (*Build, error)
}

// ParseDiagnostics reads the diagnostic report of a build, one rendered
// diagnostic per line. Lines that are not diagnostics are ignored.
//
func ParseDiagnostics(r io.Reader) ([]diag.Parsed, error) {
	var ds []diag.Parsed
	s := bufio.NewScanner(r)
	for s.Scan() {
		if p, err := diag.Parse(s.Text()); err == nil {
			ds = append(ds, p)
		}
	}
	return ds, s.Err()
}
