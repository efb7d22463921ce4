package diag

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/db47h/nlex/lex"
	"github.com/db47h/nlex/token"
	"golang.org/x/text/width"
)

// Excerpt returns the source line at `at` followed by a line with a caret
// under the byte index at.End:
//
//	|déjà vu 2<
//	|        ^
//
// f's reader must implement io.Seeker. Diagnostics at token.Unknown have no
// excerpt.
//
func Excerpt(f *lex.File, at token.LineInfo) (string, error) {
	p := f.LinePos(at.Line)
	if !p.IsValid() {
		return "", lex.ErrLine
	}
	l, err := f.GetLineBytes(p)
	if err != nil {
		return "", err
	}
	b := at.End
	if b > len(l) {
		b = len(l)
	}
	var sb strings.Builder
	sb.WriteByte('|')
	sb.Write(l)
	sb.WriteString("\n|")
	pad(&sb, l[:b])
	sb.WriteByte('^')
	return sb.String(), nil
}

// pad writes the blank space covering l in text cells, supposing rendering
// with a UTF-8 locale and monospaced font. Tabs are copied as is.
//
func pad(sb *strings.Builder, l []byte) {
	for i := 0; i < len(l); {
		r, s := utf8.DecodeRune(l[i:])
		i += s
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		if !unicode.IsGraphic(r) {
			continue
		}
		switch width.LookupRune(r).Kind() {
		case width.EastAsianFullwidth, width.EastAsianWide:
			sb.WriteString("  ")
		default:
			// EastAsianAmbiguous is 2 cells in CJK locales only.
			sb.WriteByte(' ')
		}
	}
}
