package nlex_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/db47h/nlex"
	"github.com/db47h/nlex/diag"
)

func diagStrings(l diag.List) string {
	var s []string
	for _, d := range l {
		s = append(s, d.Error())
	}
	return strings.Join(s, "\n")
}

func TestCompile(t *testing.T) {
	td := []struct {
		name  string
		src   string
		check func(t *testing.T, a *nlex.Artifact)
		diags []string
	}{
		{"constant", `N :- "l\tit"`, func(t *testing.T, a *nlex.Artifact) {
			if v, ok := a.Value("N"); !ok || v.Kind != nlex.Constant || v.Text != "l\tit" {
				t.Errorf("Got %+v", v)
			}
		}, nil},
		{"redefinition", "A :- \"x\"\nA :- \"y\"\nA :: z\n", func(t *testing.T, a *nlex.Artifact) {
			if v, _ := a.Value("A"); v.Kind != nlex.Constant || v.Text != "x" {
				t.Errorf("Got %+v", v)
			}
		}, []string{
			"[E0] Already Defined (line 1, index 0) - `A' already defined",
			"[E0] Already Defined (line 1, index 0) - `A' already defined",
		}},
		{"substitution", "base :- \"ab\"\nrule :: {{base}}c\n", func(t *testing.T, a *nlex.Artifact) {
			if v, _ := a.Value("rule"); v.Kind != nlex.Rule || v.Text != "abc" {
				t.Errorf("Got %+v", v)
			}
		}, nil},
		{"single_pass", "r1 :: [{{c}}]\nc :- \"x\"\nr2 :: {{r2}}\n", func(t *testing.T, a *nlex.Artifact) {
			if v, _ := a.Value("r1"); v.Text != "[]" {
				t.Errorf("Got %+v", v)
			}
		}, []string{
			"[E1] Undefined (line 1, index 0) - Value `c' has not been previously defined",
			"[E1] Undefined (line 3, index 0) - Value `r2' has not been previously defined",
		}},
		{"combining_marks", "e\u0301 :- \"x\"\nr :: {{e\u0301}}{{u\u0308}}\n", func(t *testing.T, a *nlex.Artifact) {
			if v, _ := a.Value("r"); v.Text != "x" {
				t.Errorf("Got %+v", v)
			}
		}, []string{
			"[E1] Undefined (line 2, index 0) - Value `u\u0308' has not been previously defined",
		}},
		{"undefined", "rule :: {{missing}}x", func(t *testing.T, a *nlex.Artifact) {
			if v, _ := a.Value("rule"); v.Text != "x" {
				t.Errorf("Got %+v", v)
			}
		}, []string{
			"[E1] Undefined (line 1, index 0) - Value `missing' has not been previously defined",
		}},
		{"stopwords", "stopword \"a\" \"b\"\nstopword \"b\", \"c\",\nstopword\n", func(t *testing.T, a *nlex.Artifact) {
			if got := strings.Join(a.Stopwords(), ","); got != "a,b,c" {
				t.Errorf("Got %s", got)
			}
		}, nil},
		{"normalisation", "e <= \"x\"\ne <= \"y\"\ne <= \"x\"\n[ée] <= z\n", func(t *testing.T, a *nlex.Artifact) {
			n := a.Normalisations()
			if len(n) != 2 || n['e'] != "x" || n['é'] != "z" {
				t.Errorf("Got %v", n)
			}
		}, []string{
			"[E3] Normalisation previously defined (line 2, index 0) - Normalisation 'e' already defined as 'x'",
			"[E3] Normalisation previously defined (line 4, index 0) - Normalisation 'e' already defined as 'x'",
		}},
		{"options", "option frobnicate on\noption lemmatise on\noption lemmatise off\noption stem on\n", func(t *testing.T, a *nlex.Artifact) {
			o := a.Options()
			if len(o) != len(nlex.OptionNames()) || o[nlex.OptLemmatise] || !a.Option(nlex.OptStem) {
				t.Errorf("Got %v", o)
			}
			if _, ok := o["frobnicate"]; ok {
				t.Error("unknown option inserted")
			}
		}, []string{
			"[E4] Unknown Option (line 1, index 7) - Option `frobnicate' makes no sense to me",
		}},
		{"read_error", "stopword \"a\", -\"nope.txt\", -\"list\"\n", func(t *testing.T, a *nlex.Artifact) {
			if got := strings.Join(a.Stopwords(), ","); got != "a,the,this" {
				t.Errorf("Got %s", got)
			}
		}, []string{
			"[E2] Read Error (line 1, index 14) - Reading file `nope.txt' failed",
		}},
		{"recovery", "A :- \"x\" \"y\"\n$B :- \"z\"\nC :: {{B}}\n", func(t *testing.T, a *nlex.Artifact) {
			if _, ok := a.Value("A"); ok {
				t.Error("A should not be defined")
			}
			if v, _ := a.Value("C"); v.Text != "z" {
				t.Errorf("Got %+v", v)
			}
		}, []string{
			"[E5] Syntax Error (line 1, index 9) - Unexpected string \"y\"",
			"Illegal Character (line 2, index 0) - Illegal character '$'",
		}},
	}
	files := nlex.MapResolver{"list": {"  the ", "", "this"}}
	for _, tt := range td {
		t.Run(tt.name, func(t *testing.T) {
			var streamed diag.List
			res := nlex.CompileString(tt.name, tt.src, nlex.WithResolver(files), nlex.WithReporter(&streamed))
			tt.check(t, res.Artifact)
			if got, want := diagStrings(res.Diagnostics), strings.Join(tt.diags, "\n"); got != want {
				t.Errorf("Got diagnostics:\n%s\nWant:\n%s", got, want)
			}
			if diagStrings(streamed) != diagStrings(res.Diagnostics) {
				t.Errorf("Streamed diagnostics differ:\n%s", diagStrings(streamed))
			}
			if (res.Err() == nil) != (len(tt.diags) == 0) {
				t.Errorf("Got Err() = %v", res.Err())
			}
		})
	}
}

func TestCompile_Idempotent(t *testing.T) {
	src := "A :- \"x\"\nr :: {{A}}y\nstopword \"b\", \"a\"\né <= e\noption stem on\n"
	a1, err := json.Marshal(nlex.CompileString("a", src).Artifact)
	if err != nil {
		t.Fatal(err)
	}
	a2, err := json.Marshal(nlex.CompileString("a", src).Artifact)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a1, a2) {
		t.Errorf("Got different artifacts:\n%s\n%s", a1, a2)
	}
	want := `{"values":{"A":{"kind":"constant","text":"x"},"r":{"kind":"rule","text":"xy"}},` +
		`"normalisations":{"é":"e"},` +
		`"options":{"lemmatise":false,"pure_normaliser":false,"skip_on_error":false,"stem":true,"unsafe_normaliser":false},` +
		`"stopwords":["a","b"]}`
	if string(a1) != want {
		t.Errorf("Got JSON:\n%s\nWant:\n%s", a1, want)
	}
}

func TestCompile_Empty(t *testing.T) {
	res := nlex.CompileString("empty", "# nothing\n\n")
	b, err := json.Marshal(res.Artifact)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"values":{},"normalisations":{},"options":{"lemmatise":false,"pure_normaliser":false,"skip_on_error":false,"stem":false,"unsafe_normaliser":false},"stopwords":[]}`
	if string(b) != want || res.Err() != nil {
		t.Errorf("Got %s, %v", b, res.Err())
	}
}

func TestArtifact_Immutable(t *testing.T) {
	a := nlex.CompileString("a", "A :- \"x\"\ne <= x\noption stem on\n").Artifact
	vs := a.Values()
	vs["A"] = nlex.Value{Text: "changed"}
	delete(vs, "A")
	a.Normalisations()['e'] = "y"
	a.Options()[nlex.OptStem] = false
	if v, ok := a.Value("A"); !ok || v.Text != "x" {
		t.Errorf("value changed: %+v", v)
	}
	if a.Normalise("e") != "x" || !a.Option(nlex.OptStem) {
		t.Error("artifact changed")
	}
	a.Names()[0] = "B"
	if a.Names()[0] != "A" {
		t.Error("names changed")
	}
}

func TestCompileFile(t *testing.T) {
	dir := t.TempDir()
	rules := filepath.Join(dir, "rules.nlex")
	if err := os.WriteFile(rules, []byte("stopword -\"stop.txt\", \"x\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "stop.txt"), []byte("  the \n\nand\r\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	res, err := nlex.CompileFile(rules)
	if err != nil {
		t.Fatal(err)
	}
	if err = res.Err(); err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(res.Artifact.Stopwords(), ","); got != "and,the,x" {
		t.Errorf("Got %s", got)
	}
	if res.File.Name() != rules {
		t.Errorf("Got file name %s", res.File.Name())
	}

	// base dir override
	res, err = nlex.CompileFile(rules, nlex.WithBaseDir(t.TempDir()))
	if err != nil {
		t.Fatal(err)
	}
	if got := diagStrings(res.Diagnostics); got != "[E2] Read Error (line 1, index 9) - Reading file `stop.txt' failed" {
		t.Errorf("Got %s", got)
	}

	if _, err = nlex.CompileFile(filepath.Join(dir, "missing")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Got error %v", err)
	}
}

func Example() {
	src := `# Demo rules
vowel :- "[aeiou]"
syllable :: [^aeiou]*{{vowel}}+
word :: {{syllable}}+{{suffix}}
stopword "the", "a"
[éè] <= e
option stem on
option fuzzy on
`
	res := nlex.CompileString("demo", src)
	for _, d := range res.Diagnostics {
		fmt.Println(d)
	}
	a := res.Artifact
	for _, n := range a.Names() {
		v, _ := a.Value(n)
		fmt.Printf("%s %s = %s\n", v.Kind, n, v.Text)
	}
	fmt.Println(a.Stopwords(), a.Option(nlex.OptStem))
	fmt.Println(a.Normalise("élève"))

	// Output:
	// [E1] Undefined (line 4, index 0) - Value `suffix' has not been previously defined
	// [E4] Unknown Option (line 8, index 7) - Option `fuzzy' makes no sense to me
	// constant vowel = [aeiou]
	// rule syllable = [^aeiou]*[aeiou]+
	// rule word = [^aeiou]*[aeiou]++
	// [a the] true
	// eleve
}
