// Package lexer implements the lexer for rule files.
//
// It is a set of lex.StateFn functions: the initial state reads one rune and
// either emits a token directly or switches to a state specialized in the
// token at hand (names, quoted strings). Operators that take the rest of the
// line as their operand (rule definitions and normalisations) capture it in
// a single token, so the parser never sees the raw rule text.
//
package lexer

import (
	"strings"

	"github.com/db47h/nlex/lex"
	"github.com/db47h/nlex/lex/state"
	"github.com/db47h/nlex/token"
)

// maxLookahead is the number of runes that may be read past the first rune
// of a token while checking for a normalisation operator. A character class
// body plus the blanks before "<=" must fit in it; longer ones are lexed as
// ordinary tokens and "<=" as illegal characters.
//
const maxLookahead = lex.BackupBufferSize - 2

// A Lexer turns rule source text into tokens.
//
type Lexer struct {
	l *lex.Lexer
}

// New returns a new Lexer reading from f.
//
func New(f *lex.File) *Lexer {
	return &Lexer{lex.NewLexer(f, initState())}
}

// File returns the source file.
//
func (l *Lexer) File() *lex.File {
	return l.l.File()
}

// Next returns the next token. Once the end of input has been reached, it
// returns a token.EOF token on every call.
//
func (l *Lexer) Next() token.Token {
	it := l.l.Lex()
	li := l.l.File().LineInfo(it.Pos, int(it.End-it.Pos))
	return token.Token{
		Kind:   it.Kind,
		Value:  it.Value,
		Line:   li.Line,
		Offset: li.End,
		Length: li.Length,
	}
}

func isBlank(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r'
}

// initState returns the initial state function. String states pre-allocate
// their buffers, so every lexer gets its own set.
//
func initState() lex.StateFn {
	literal := state.QuotedString(token.String, token.Literal)
	fileRef := state.QuotedString(token.String, token.FileReference)

	return func(s *lex.State) lex.StateFn {
		r := s.Next()
		pos := s.Pos()
		s.StartToken(pos)

		switch {
		case r == lex.EOF:
			s.Emit(pos, token.EOF, nil)
			return nil
		case r == '\n':
			for r = s.Next(); r == '\n'; r = s.Next() {
			}
			s.Backup()
			s.Emit(pos, token.EOL, nil)
			return nil
		case isBlank(r):
			s.AcceptWhile(isBlank)
			return nil
		}

		if chars, ok := normTarget(s, r); ok {
			text := strings.TrimSpace(s.RestOfLine())
			if u, ok := state.Unquote(text); ok {
				text = u
			}
			s.Emit(pos, token.OpNorm, token.Norm{Chars: chars, Text: text})
			return nil
		}

		switch r {
		case '#':
			s.RestOfLine()
			return nil
		case '"':
			return literal
		case '-':
			if s.Peek() == '"' {
				s.Next()
				return fileRef
			}
		case ',':
			s.Emit(pos, token.Comma, nil)
			return nil
		case ':':
			switch s.Next() {
			case '-':
				s.Emit(pos, token.OpConst, nil)
				return nil
			case ':':
				s.Emit(pos, token.OpRule, strings.TrimSpace(s.RestOfLine()))
				return nil
			}
			s.Backup()
		default:
			if token.IsNameRune(r) {
				return word
			}
		}
		s.Errorf(pos, "Illegal character '%c'", r)
		return nil
	}
}

func word(s *lex.State) lex.StateFn {
	pos := s.TokenPos()
	w := string(s.Current()) + s.AcceptWhile(token.IsNameRune)
	switch w {
	case "option":
		s.Emit(pos, token.Option, nil)
	case "stopword":
		s.Emit(pos, token.Stopword, nil)
	case "on", "off":
		s.Emit(pos, token.Bool, w == "on")
	default:
		s.Emit(pos, token.Name, w)
	}
	return nil
}

// normTarget checks if r starts a normalisation, that is a single character
// or a bracketed character class followed by optional blanks and "<=". On
// success, the input is consumed up to and including the operator.
//
func normTarget(s *lex.State, r rune) ([]rune, bool) {
	if r == '[' {
		if chars, ok := lookahead(s, true); ok {
			return chars, true
		}
	}
	if _, ok := lookahead(s, false); ok {
		return []rune{r}, true
	}
	return nil, false
}

// lookahead reads an optional class body up to ']', then blanks, then "<=".
// The input is left untouched if they do not match.
//
func lookahead(s *lex.State, class bool) (chars []rune, ok bool) {
	n := 0
	next := func() rune {
		n++
		return s.Next()
	}
	defer func() {
		if !ok {
			for ; n > 0; n-- {
				s.Backup()
			}
		}
	}()

	if class {
		for r := next(); r != ']'; r = next() {
			if r == '\n' || r == lex.EOF || n >= maxLookahead {
				return nil, false
			}
			chars = append(chars, r)
		}
		if len(chars) == 0 {
			return nil, false
		}
	}
	r := next()
	for isBlank(r) && n < maxLookahead {
		r = next()
	}
	if r != '<' || n >= maxLookahead {
		return nil, false
	}
	if next() != '=' {
		return nil, false
	}
	return chars, true
}
