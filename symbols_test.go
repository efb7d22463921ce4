package nlex_test

import (
	"strings"
	"testing"

	"github.com/db47h/nlex"
	"github.com/db47h/nlex/token"
)

func TestSymbolTable_Define(t *testing.T) {
	st := nlex.NewSymbolTable()
	first := nlex.Value{Kind: nlex.Constant, Text: "x", At: token.LineInfo{Line: 1, Length: 1}}
	if _, ok := st.Define("A", first); !ok {
		t.Fatal("first definition rejected")
	}
	prev, ok := st.Define("A", nlex.Value{Kind: nlex.Rule, Text: "y"})
	if ok || prev != first {
		t.Errorf("Got %v, %v; want %v, false", prev, ok, first)
	}
	st.Define("B", nlex.Value{Text: "z"})
	if v, _ := st.Lookup("A"); v != first {
		t.Errorf("A redefined to %v", v)
	}
	if got := strings.Join(st.Names(), ","); got != "A,B" || st.Len() != 2 {
		t.Errorf("Got names %s", got)
	}
}

func TestSubstitute(t *testing.T) {
	st := nlex.NewSymbolTable()
	st.Define("a", nlex.Value{Text: "ab"})
	st.Define("c", nlex.Value{Kind: nlex.Constant, Text: "{{a}}"})
	st.Define("é_1", nlex.Value{Text: "E"})
	st.Define("e\u0301", nlex.Value{Text: "É"})

	td := []struct {
		body  string
		want  string
		undef string
	}{
		{"{{a}}c", "abc", ""},
		{"{{a}}{{a}}", "abab", ""},
		{"x{{{a}}}y", "x{ab}y", ""},
		{"{{}}", "{{}}", ""},
		{"{{a b}}", "{{a b}}", ""},
		{"{{a", "{{a", ""},
		{"{{a}", "{{a}", ""},
		{"{{c}}", "{{a}}", ""},
		{"[{{é_1}}]+", "[E]+", ""},
		{"{{e\u0301}}", "É", ""},
		{"{{a\u0301}}", "", "a\u0301"},
		{"{{missing}}x", "x", "missing"},
		{"{{m1}}{{a}}{{m2}}", "ab", "m1,m2"},
		{"no refs", "no refs", ""},
	}
	for _, tt := range td {
		var undef []string
		got := nlex.Substitute(tt.body, st, func(name string) { undef = append(undef, name) })
		if got != tt.want {
			t.Errorf("Substitute(%q): got %q, want %q", tt.body, got, tt.want)
		}
		if u := strings.Join(undef, ","); u != tt.undef {
			t.Errorf("Substitute(%q): got undefined %q, want %q", tt.body, u, tt.undef)
		}
	}
	if got := nlex.Substitute("{{x}}y", st, nil); got != "y" {
		t.Errorf("Got %q with nil callback", got)
	}
}

func TestNormalisationTable(t *testing.T) {
	nt := make(nlex.NormalisationTable)
	if _, ok := nt.Set('e', "x"); !ok {
		t.Fatal("first mapping rejected")
	}
	if _, ok := nt.Set('e', "x"); !ok {
		t.Error("identical mapping rejected")
	}
	if prev, ok := nt.Set('e', "y"); ok || prev != "x" {
		t.Errorf("Got %q, %v; want \"x\", false", prev, ok)
	}
	nt.Set('œ', "oe")
	if got := nt.Apply("cœur été elle"); got != "coeur été xllx" {
		t.Errorf("Got %q", got)
	}
}

func TestOptionTable(t *testing.T) {
	ot := nlex.NewOptionTable()
	if len(ot) != len(nlex.OptionNames()) {
		t.Fatalf("Got %d options", len(ot))
	}
	for _, n := range nlex.OptionNames() {
		if ot[n] {
			t.Errorf("option %s defaults to true", n)
		}
	}
	if !ot.Set(nlex.OptStem, true) || !ot[nlex.OptStem] {
		t.Error("failed to set stem")
	}
	if ot.Set("frobnicate", true) {
		t.Error("unknown option accepted")
	}
	if _, ok := ot["frobnicate"]; ok || len(ot) != len(nlex.OptionNames()) {
		t.Error("unknown option inserted")
	}
}

func TestStopwordSet(t *testing.T) {
	s := make(nlex.StopwordSet)
	for _, w := range []string{"b", "a", "b", "c"} {
		s.Add(w)
	}
	if got := strings.Join(s.Sorted(), ","); got != "a,b,c" {
		t.Errorf("Got %s", got)
	}
	if !s.Has("a") || s.Has("d") {
		t.Error("Has")
	}
}
