// Copyright 2017 Denis Bernard <db047h@gmail.com>
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

// Package state provides state functions for lexing the quoted strings of the
// rule language.
//
// State functions in this package expect that the opening quote has already
// been read by lex.State.Next and that the token start position has been set
// with lex.State.StartToken. For example:
//
//	r := s.Next()
//	s.StartToken(s.Pos())
//	switch r {
//	case '"':
//		// do not call s.Backup() here
//		return literal
//	}
//
// The constructors pre-allocate buffers, so the returned state functions must
// not be shared between lexers running concurrently.
//
package state

import (
	"strings"
	"unicode/utf8"

	"github.com/db47h/nlex/lex"
	"github.com/db47h/nlex/token"
)

const (
	errEnd     = -2
	errRawByte = -1
	errNone    = iota
	errEOL
	errInvalidEscape
	errInvalidRune
	errInvalidHex
	errInvalidOctal
)

var msg = [...]string{
	errNone:          "",
	errEOL:           "unterminated %s",
	errInvalidEscape: "unknown escape sequence",
	errInvalidRune:   "escape sequence is invalid Unicode code point",
	errInvalidHex:    "non-hex character in escape sequence: %#U",
	errInvalidOctal:  "non-octal character in escape sequence: %#U",
}

// QuotedString returns a StateFn that lexes a double-quoted string and emits
// it with kind k and a token.StringLiteral value of kind sk. It supports the
// same escape sequences as double-quoted Go string literals.
//
// The emitted position is the one set by StartToken, so that the leading '-'
// of a file reference is part of the token.
//
func QuotedString(k token.Kind, sk token.StringKind) lex.StateFn {
	s := make([]byte, 0, 64)
	var rb [utf8.UTFMax]byte
	return func(l *lex.State) lex.StateFn {
		s = s[:0]
		quote := l.Current()
		pos := l.TokenPos()
		for {
			r, err := readChar(l, quote)
			switch err {
			case errNone:
				if r < utf8.RuneSelf {
					s = append(s, byte(r))
				} else {
					s = append(s, rb[:utf8.EncodeRune(rb[:], r)]...)
				}
			case errRawByte:
				s = append(s, byte(r))
			case errEnd:
				l.Emit(pos, k, token.StringLiteral{Kind: sk, Text: string(s)})
				return nil
			case errEOL:
				l.Backup()
				l.Errorf(pos, msg[errEOL], "string")
				return nil
			case errInvalidEscape, errInvalidRune:
				l.Errorf(l.Pos(), msg[err])
				return terminateString(quote)
			case errInvalidHex, errInvalidOctal:
				l.Errorf(l.Pos(), msg[err], l.Current())
				return terminateString(quote)
			}
		}
	}
}

// Unquote decodes the body of a double-quoted string written on a single
// line, the same way QuotedString does. It reports false if s is not a
// well-formed quoted string.
//
func Unquote(s string) (string, bool) {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", false
	}
	var (
		out string
		ok  bool
	)
	l := lex.NewLexer(lex.NewFile("", strings.NewReader(s)), func(st *lex.State) lex.StateFn {
		if st.Next() == lex.EOF {
			st.Emit(st.Pos(), token.EOF, nil)
			return nil
		}
		st.StartToken(st.Pos())
		return QuotedString(token.String, token.Literal)
	})
	it := l.Lex()
	if it.Kind == token.String {
		out, ok = it.Value.(token.StringLiteral).Text, true
		// anything after the closing quote means s was not a single string
		if l.Lex().Kind != token.EOF {
			return "", false
		}
	}
	return out, ok
}

// just eat up string and look for end quote not preceded by '\'
func terminateString(quote rune) lex.StateFn {
	return func(l *lex.State) lex.StateFn {
		for {
			r := l.Next()
			switch r {
			case quote:
				return nil
			case '\\':
				r = l.Next()
				if r != '\n' && r != lex.EOF {
					continue
				}
				fallthrough
			case '\n', lex.EOF:
				// unterminated string. Just ignore the error since
				// this function is already called on error.
				l.Backup()
				return nil
			}
		}
	}
}

func readChar(l *lex.State, quote rune) (r rune, err int) {
	r = l.Next()
	switch r {
	case quote:
		return r, errEnd
	case '\\':
		r = l.Next()
		switch r {
		case 'a':
			return '\a', errNone
		case 'b':
			return '\b', errNone
		case 'f':
			return '\f', errNone
		case 'n':
			return '\n', errNone
		case 'r':
			return '\r', errNone
		case 't':
			return '\t', errNone
		case 'v':
			return '\v', errNone
		case '\\':
			return '\\', errNone
		case quote:
			return r, errNone
		case 'U':
			r, err := readDigits(l, 8, 16)
			if err == errNone && !utf8.ValidRune(r) {
				return utf8.RuneError, errInvalidRune
			}
			return r, err
		case 'u':
			r, err := readDigits(l, 4, 16)
			if err == errNone && !utf8.ValidRune(r) {
				return utf8.RuneError, errInvalidRune
			}
			return r, err
		case '0', '1', '2', '3', '4', '5', '6', '7', 'x':
			if r == 'x' {
				r, err = readDigits(l, 2, 16)
			} else {
				l.Backup()
				r, err = readDigits(l, 3, 8)
			}
			if err == errNone {
				err = errRawByte
			}
			return r, err
		case '\n', lex.EOF:
			return r, errEOL
		default:
			return r, errInvalidEscape
		}
	case '\n', lex.EOF:
		return r, errEOL
	}
	return r, errNone
}

func readDigits(l *lex.State, n, b int32) (v rune, err int) {
	for i := int32(0); i < n; i++ {
		var rl rune
		r := l.Next()
		if r == '\n' || r == lex.EOF {
			return v, errEOL
		}
		switch {
		case r >= 'a':
			rl = r - 'a' + 10
		case r >= 'A':
			rl = r - 'A' + 10
		default:
			rl = r - '0'
		}
		if rl < 0 || rl >= b {
			if b == 8 {
				return v, errInvalidOctal
			}
			return v, errInvalidHex
		}
		v = v*b + rl
	}
	return v, errNone
}
