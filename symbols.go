package nlex

import (
	"strings"
	"unicode/utf8"

	"github.com/db47h/nlex/token"
)

// ValueKind is the kind of a named value.
//
type ValueKind int

// Value kinds.
//
const (
	Rule ValueKind = iota
	Constant
)

func (k ValueKind) String() string {
	switch k {
	case Rule:
		return "rule"
	case Constant:
		return "constant"
	}
	return "invalid"
}

// MarshalText implements encoding.TextMarshaler.
//
func (k ValueKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// A Value is a named constant or rule. The Text of a rule has all its
// references substituted.
//
type Value struct {
	Kind ValueKind      `json:"kind"`
	Text string         `json:"text"`
	At   token.LineInfo `json:"-"`
}

// A SymbolTable maps names to values. Names can only be defined once.
//
type SymbolTable struct {
	m     map[string]Value
	names []string
}

// NewSymbolTable returns a new empty SymbolTable.
//
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{m: make(map[string]Value)}
}

// Define defines name. If name is already defined, the table is left
// unchanged and Define returns the previous definition and false.
//
func (t *SymbolTable) Define(name string, v Value) (Value, bool) {
	if prev, ok := t.m[name]; ok {
		return prev, false
	}
	t.m[name] = v
	t.names = append(t.names, name)
	return v, true
}

// Lookup returns the value defined for name.
//
func (t *SymbolTable) Lookup(name string) (Value, bool) {
	v, ok := t.m[name]
	return v, ok
}

// Names returns the defined names in definition order.
//
func (t *SymbolTable) Names() []string {
	return append([]string(nil), t.names...)
}

// Len returns the number of defined names.
//
func (t *SymbolTable) Len() int {
	return len(t.names)
}

// Substitute replaces every {{name}} in body with the text of the value
// defined for name in t. The name is a non-empty run of runes for which
// token.IsNameRune reports true. Occurrences are matched leftmost first and
// do not overlap; substituted text is not scanned again.
//
// If name is not defined, undefined is called with the name and the
// occurrence is removed. undefined may be nil.
//
func Substitute(body string, t *SymbolTable, undefined func(name string)) string {
	var b strings.Builder
	for {
		i := strings.Index(body, "{{")
		if i < 0 {
			break
		}
		b.WriteString(body[:i])
		j := i + 2
		for j < len(body) {
			r, sz := utf8.DecodeRuneInString(body[j:])
			if !token.IsNameRune(r) {
				break
			}
			j += sz
		}
		if j == i+2 || !strings.HasPrefix(body[j:], "}}") {
			// not a reference, retry on the next byte
			b.WriteByte('{')
			body = body[i+1:]
			continue
		}
		name := body[i+2 : j]
		if v, ok := t.Lookup(name); ok {
			b.WriteString(v.Text)
		} else if undefined != nil {
			undefined(name)
		}
		body = body[j+2:]
	}
	b.WriteString(body)
	return b.String()
}
