package lex_test

import (
	"strconv"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/db47h/nlex/lex"
	"github.com/db47h/nlex/token"
)

// Test proper behavior of Next/Peek/Backup
func TestState_Next(t *testing.T) {
	next := func(s *lex.State) rune { return s.Next() }
	peek := func(s *lex.State) rune { return s.Peek() }
	backup := func(s *lex.State) rune { s.Backup(); return s.Current() }
	cur := func(s *lex.State) rune { return s.Current() }

	input := []string{
		"aéb",
		"c",
		"\n\n",
	}

	data := [][]struct {
		name string
		fn   func(l *lex.State) rune
		p    lex.Pos
		r    rune
	}{
		{
			{"aéb", cur, -1, utf8.RuneSelf},
			{"an", next, 0, 'a'},
			{"én1", next, 1, 'é'},
			{"bn1", next, 3, 'b'},
			{"_b", backup, 1, 'é'},
			{"bp1", peek, 1, 'b'},
			{"bn2", next, 3, 'b'},
			{"bn3", next, 4, lex.EOF},
			{"bb1", backup, 3, 'b'},
			{"bp2", peek, 3, lex.EOF},
			{"eof1", next, 4, lex.EOF},
			{"eofb", backup, 3, 'b'},
			{"eof2", next, 4, lex.EOF},
			{"eofp1", peek, 4, lex.EOF},
		},
		{
			{"cb0", cur, -1, utf8.RuneSelf},
			{"cn0", next, 0, 'c'},
			{"cb1", backup, -1, utf8.RuneSelf},
			{"cn1", next, 0, 'c'},
			{"cn3", next, 1, lex.EOF},
			{"eofb", backup, 0, 'c'},
			{"eofb", backup, -1, utf8.RuneSelf},
			{"cn4", next, 0, 'c'},
		},
		{
			{"nlb", cur, -1, utf8.RuneSelf},
			{"nl1", next, 0, '\n'},
			{"nl2", peek, 0, '\n'},
		},
	}

	for i, in := range input {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			lex.NewLexer(lex.NewFile("", strings.NewReader(in)), func(s *lex.State) lex.StateFn {
				for _, td := range data[i] {
					r := td.fn(s)
					if r != td.r {
						t.Errorf("%s: expected %q, got %q", td.name, td.r, r)
					}
					if s.Pos() != td.p {
						t.Errorf("%s: expected pos %d, got %d", td.name, td.p, s.Pos())
					}
					if t.Failed() {
						break
					}
				}
				s.Emit(s.Pos(), token.EOF, nil)
				return nil
			}).Lex()
		})
	}
}

func TestState_Helpers(t *testing.T) {
	var got []string
	l := lex.NewLexer(lex.NewFile("", strings.NewReader("abc123 rest of line\nnext")), func(s *lex.State) lex.StateFn {
		got = append(got, s.AcceptWhile(func(r rune) bool { return r >= 'a' && r <= 'z' }))
		got = append(got, s.RestOfLine())
		if r := s.Next(); r != '\n' {
			t.Errorf("expected newline, got %q", r)
		}
		got = append(got, s.RestOfLine())
		got = append(got, s.RestOfLine())
		s.Emit(s.Pos(), token.EOF, nil)
		return nil
	})
	l.Lex()
	want := []string{"abc", "123 rest of line", "next", ""}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("Got %q, want %q", got, want)
	}
}

func TestLexer_Lex(t *testing.T) {
	f := lex.NewFile("test", strings.NewReader("ab\x00c\n\xffd"))
	data := []lex.Item{
		{token.Error, 2, 2, "invalid NUL character"},
		{token.Name, 0, 4, "abc"},
		{token.EOL, 4, 5, nil},
		{token.Error, 5, 5, "invalid UTF-8 encoding"},
		{token.Name, 6, 7, "d"},
		{token.EOF, 7, 7, nil},
	}
	l := lex.NewLexer(f,
		func(s *lex.State) lex.StateFn {
			r := s.Next()
			s.StartToken(s.Pos())
			switch {
			case r == lex.EOF:
				s.Emit(s.Pos(), token.EOF, nil)
			case r == '\n':
				s.Emit(s.Pos(), token.EOL, nil)
			default:
				w := string(r) + s.AcceptWhile(func(r rune) bool { return r >= 'a' && r <= 'z' })
				s.Emit(s.TokenPos(), token.Name, w)
			}
			return nil
		})
	for _, want := range data {
		it := l.Lex()
		if it != want {
			t.Errorf("Got: %v, expected: %v", it, want)
		}
		if it.Kind == token.EOF {
			break
		}
	}
	if p := f.Position(6); p.Line != 2 || p.Column != 2 {
		t.Errorf("Got position %s, expected test:2:2", p)
	}
}
