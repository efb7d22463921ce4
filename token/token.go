// Package token defines constants and types representing lexical tokens
// in rule source text.
//
package token

import (
	"fmt"
	"strconv"
	"unicode"
)

// Kind represents a token's kind.
//
type Kind int

// Token kinds
//
const (
	Error    Kind = iota - 1 // error -- the associated value is a string
	EOF                      // end of file
	EOL                      // end of line, one per newline run
	Option                   // option
	Stopword                 // stopword
	OpConst                  // :-
	OpRule                   // :: -- the value is the rule body
	OpNorm                   // c <= text -- the value is a Norm
	String                   // "..." or -"..." -- the value is a StringLiteral
	Bool                     // on, off
	Name                     // any run of letters, digits, marks and underscores
	Comma                    // ,
)

var kindNames = [...]string{
	Error + 1:    "Error",
	EOF + 1:      "EOF",
	EOL + 1:      "EOL",
	Option + 1:   "Option",
	Stopword + 1: "Stopword",
	OpConst + 1:  "OpConst",
	OpRule + 1:   "OpRule",
	OpNorm + 1:   "OpNorm",
	String + 1:   "String",
	Bool + 1:     "Bool",
	Name + 1:     "Name",
	Comma + 1:    "Comma",
}

func (k Kind) String() string {
	if i := int(k) + 1; i >= 0 && i < len(kindNames) {
		return kindNames[i]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// StringKind tags a StringLiteral.
//
type StringKind int

// String literal kinds.
//
const (
	Literal       StringKind = iota // "text"
	FileReference                   // -"path"
)

// A StringLiteral is the value of a String token: either literal text or the
// path of a file to read.
//
type StringLiteral struct {
	Kind StringKind
	Text string
}

func (s StringLiteral) String() string {
	if s.Kind == FileReference {
		return "-" + strconv.Quote(s.Text)
	}
	return strconv.Quote(s.Text)
}

// Norm is the value of an OpNorm token.
//
type Norm struct {
	Chars []rune // target characters
	Text  string // replacement text
}

// LineInfo describes a span of source text for diagnostics. End is the
// 0-based byte offset within the line.
//
type LineInfo struct {
	Line   int
	End    int
	Length int
}

// Unknown is the LineInfo of diagnostics that have no source position.
//
var Unknown = LineInfo{}

func (li LineInfo) String() string {
	return fmt.Sprintf("LineInfo(line=%d, end=%d, length=%d)", li.Line, li.End, li.Length)
}

// Token is a lexical token.
//
type Token struct {
	Kind   Kind
	Value  interface{}
	Line   int // 1-based line number
	Offset int // 0-based byte offset within the line
	Length int // length in bytes of the source text
}

// IsNameRune reports whether r may appear in a name.
//
func IsNameRune(r rune) bool {
	return r == '_' || unicode.In(r, unicode.Letter, unicode.Digit, unicode.Mark)
}

// At returns the LineInfo spanning length bytes from the start of t.
//
func (t Token) At(length int) LineInfo {
	return LineInfo{t.Line, t.Offset, length}
}

// Span returns the LineInfo of the source text of t.
//
func (t Token) Span() LineInfo {
	return t.At(t.Length)
}

// Describe returns a short human readable description of t, suitable for
// error messages.
//
func (t Token) Describe() string {
	switch t.Kind {
	case EOF:
		return "end of file"
	case EOL:
		return "end of line"
	case Option:
		return "keyword `option'"
	case Stopword:
		return "keyword `stopword'"
	case OpConst:
		return "`:-'"
	case OpRule:
		return "`::'"
	case OpNorm:
		return "`<='"
	case Comma:
		return "`,'"
	case String:
		return "string " + t.Value.(StringLiteral).String()
	case Bool:
		if t.Value.(bool) {
			return "boolean `on'"
		}
		return "boolean `off'"
	case Name:
		return fmt.Sprintf("name `%s'", t.Value)
	case Error:
		return fmt.Sprintf("error %v", t.Value)
	}
	return t.Kind.String()
}

func (t Token) String() string {
	var v string
	switch val := t.Value.(type) {
	case nil:
	case string:
		v = " " + strconv.Quote(val)
	case bool:
		v = " " + strconv.FormatBool(val)
	case Norm:
		v = fmt.Sprintf(" %q %q", string(val.Chars), val.Text)
	default:
		v = fmt.Sprintf(" %v", val)
	}
	return fmt.Sprintf("%d:%d %s%s", t.Line, t.Offset, t.Kind, v)
}
