package parser

import (
	"fmt"
	"strings"

	"github.com/db47h/nlex/token"
)

// Statement is one of *DefineConst, *DefineRule, *SetOption, *Stopwords or
// *Normalise.
//
type Statement interface {
	// Pos returns the position used in diagnostics about the statement.
	Pos() token.LineInfo
	fmt.Stringer
	stmt()
}

// DefineConst defines a named constant.
//
type DefineConst struct {
	Name string
	Text string // verbatim, escapes decoded
	At   token.LineInfo
}

// DefineRule defines a named rule. Body is the raw rule text, before any
// substitution.
//
type DefineRule struct {
	Name string
	Body string
	At   token.LineInfo
}

// SetOption sets an option.
//
type SetOption struct {
	Name  string
	Value bool
	At    token.LineInfo
}

// Entry is a stopword list entry.
//
type Entry struct {
	token.StringLiteral
	At token.LineInfo
}

// Stopwords is a possibly empty stopword list.
//
type Stopwords struct {
	Entries []Entry
	At      token.LineInfo
}

// Normalise maps each of Chars to Text.
//
type Normalise struct {
	Chars []rune
	Text  string
	At    token.LineInfo
}

func (s *DefineConst) Pos() token.LineInfo { return s.At }
func (s *DefineRule) Pos() token.LineInfo  { return s.At }
func (s *SetOption) Pos() token.LineInfo   { return s.At }
func (s *Stopwords) Pos() token.LineInfo   { return s.At }
func (s *Normalise) Pos() token.LineInfo   { return s.At }

func (*DefineConst) stmt() {}
func (*DefineRule) stmt()  {}
func (*SetOption) stmt()   {}
func (*Stopwords) stmt()   {}
func (*Normalise) stmt()   {}

func (s *DefineConst) String() string {
	return fmt.Sprintf("%d: const %s %q", s.At.Line, s.Name, s.Text)
}

func (s *DefineRule) String() string {
	return fmt.Sprintf("%d: rule %s %q", s.At.Line, s.Name, s.Body)
}

func (s *SetOption) String() string {
	return fmt.Sprintf("%d: option %s %t", s.At.Line, s.Name, s.Value)
}

func (s *Stopwords) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d: stopword", s.At.Line)
	for _, e := range s.Entries {
		b.WriteByte(' ')
		b.WriteString(e.StringLiteral.String())
	}
	return b.String()
}

func (s *Normalise) String() string {
	return fmt.Sprintf("%d: normalise %q %q", s.At.Line, string(s.Chars), s.Text)
}
