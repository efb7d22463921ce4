package nlex

import "strings"

// A NormalisationTable maps characters to their replacement text.
//
type NormalisationTable map[rune]string

// Set maps c to text. If c is already mapped to a different text, the table
// is left unchanged and Set returns the current mapping and false.
//
func (t NormalisationTable) Set(c rune, text string) (string, bool) {
	if prev, ok := t[c]; ok && prev != text {
		return prev, false
	}
	t[c] = text
	return text, true
}

// Apply returns s with every mapped character replaced.
//
func (t NormalisationTable) Apply(s string) string {
	if len(t) == 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if n, ok := t[r]; ok {
			b.WriteString(n)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
