// Copyright 2017-2020 Denis Bernard <db047h@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

package nlex

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/db47h/nlex/diag"
	"github.com/db47h/nlex/lex"
	"github.com/db47h/nlex/lexer"
	"github.com/db47h/nlex/parser"
	"github.com/db47h/nlex/token"
)

// An Option is a compile option.
//
type Option func(*config)

type config struct {
	resolver FileResolver
	reporter diag.Reporter
	baseDir  *string
}

// WithResolver sets the FileResolver used to read stopword files. It takes
// precedence over WithBaseDir.
//
func WithResolver(r FileResolver) Option {
	return func(c *config) {
		c.resolver = r
	}
}

// WithReporter sets a Reporter that receives diagnostics as they are
// emitted. Diagnostics are still collected in Result.Diagnostics.
//
func WithReporter(r diag.Reporter) Option {
	return func(c *config) {
		c.reporter = r
	}
}

// WithBaseDir sets the directory against which relative stopword file paths
// are resolved. The default is the current directory, or the directory of
// the rule file with CompileFile.
//
func WithBaseDir(dir string) Option {
	return func(c *config) {
		c.baseDir = &dir
	}
}

// Result is the outcome of a compile.
//
type Result struct {
	Artifact    *Artifact
	Diagnostics diag.List
	File        *lex.File
}

// Err returns nil if no diagnostics were emitted, a diag.List otherwise.
//
func (r *Result) Err() error {
	return r.Diagnostics.Err()
}

// Compile compiles the rule file f.
//
func Compile(f *lex.File, opts ...Option) *Result {
	var cfg config
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.resolver == nil {
		var dir string
		if cfg.baseDir != nil {
			dir = *cfg.baseDir
		}
		cfg.resolver = DirResolver(dir)
	}

	res := &Result{File: f}
	c := newCompiler(cfg.resolver, diag.Multi{&res.Diagnostics, cfg.reporter})
	p := parser.New(lexer.New(f), c.r)
	for s, ok := p.Next(); ok; s, ok = p.Next() {
		c.exec(s)
	}
	res.Artifact = c.artifact()
	return res
}

// CompileString compiles the rule file src. The name is used as file name.
//
func CompileString(name, src string, opts ...Option) *Result {
	return Compile(lex.NewFile(name, strings.NewReader(src)), opts...)
}

// CompileFile compiles the rule file at path. Unless specified with
// WithBaseDir, stopword files are resolved relative to the directory of path.
//
// The returned error is non-nil only if the rule file cannot be read.
//
func CompileFile(path string, opts ...Option) (*Result, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	opts = append([]Option{WithBaseDir(filepath.Dir(path))}, opts...)
	return Compile(lex.NewFile(path, bytes.NewReader(b)), opts...), nil
}

// compiler holds the state of a single compile.
//
type compiler struct {
	r         diag.Reporter
	resolver  FileResolver
	values    *SymbolTable
	norms     NormalisationTable
	options   OptionTable
	stopwords StopwordSet
}

func newCompiler(fr FileResolver, r diag.Reporter) *compiler {
	return &compiler{
		r:         r,
		resolver:  fr,
		values:    NewSymbolTable(),
		norms:     make(NormalisationTable),
		options:   NewOptionTable(),
		stopwords: make(StopwordSet),
	}
}

func (c *compiler) report(k diag.Kind, at token.LineInfo, args ...interface{}) {
	c.r.Report(diag.New(k, at, args...))
}

func (c *compiler) exec(s parser.Statement) {
	switch s := s.(type) {
	case *parser.DefineConst:
		c.define(s.Name, Value{Kind: Constant, Text: s.Text, At: s.At})
	case *parser.DefineRule:
		if !c.defined(s.Name) {
			text := Substitute(s.Body, c.values, func(name string) {
				c.report(diag.Undefined, s.At, name)
			})
			c.define(s.Name, Value{Kind: Rule, Text: text, At: s.At})
		}
	case *parser.SetOption:
		if !c.options.Set(s.Name, s.Value) {
			c.report(diag.UnknownOption, s.At, s.Name)
		}
	case *parser.Stopwords:
		for _, e := range s.Entries {
			c.stopword(e)
		}
	case *parser.Normalise:
		for _, ch := range s.Chars {
			if prev, ok := c.norms.Set(ch, s.Text); !ok {
				c.report(diag.NormalisationDoublyDefined, s.At, string(ch), prev)
			}
		}
	default:
		panic(fmt.Errorf("unhandled statement type %T", s))
	}
}

// defined reports name as already defined if it is.
//
func (c *compiler) defined(name string) bool {
	if prev, ok := c.values.Lookup(name); ok {
		c.report(diag.AlreadyDefined, prev.At, name)
		return true
	}
	return false
}

func (c *compiler) define(name string, v Value) {
	if !c.defined(name) {
		c.values.Define(name, v)
	}
}

func (c *compiler) stopword(e parser.Entry) {
	if e.Kind == token.Literal {
		c.stopwords.Add(e.Text)
		return
	}
	lines, err := c.resolver.ReadLines(e.Text)
	if err != nil {
		c.report(diag.ReadError, e.At, e.Text)
		return
	}
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			c.stopwords.Add(l)
		}
	}
}

func (c *compiler) artifact() *Artifact {
	vs := make(map[string]Value, c.values.Len())
	for _, n := range c.values.Names() {
		vs[n], _ = c.values.Lookup(n)
	}
	return &Artifact{
		names:     c.values.Names(),
		values:    vs,
		norms:     c.norms,
		options:   c.options,
		stopwords: c.stopwords,
	}
}
