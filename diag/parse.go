package diag

import (
	"errors"
	"regexp"
	"strconv"
)

// Parsed holds the fields of a rendered diagnostic line, as found in the
// output of tools that emit them.
//
type Parsed struct {
	Code    int // -1 for uncoded diagnostics
	Label   string
	Line    int
	Index   int
	Message string
}

// Kind returns the registered kind matching p's code, or IllegalCharacter
// for uncoded diagnostics and unknown codes.
//
func (p Parsed) Kind() Kind {
	if p.Code >= 0 && p.Code < len(kinds) {
		return Kind(p.Code)
	}
	return IllegalCharacter
}

// ErrFormat is returned by Parse for lines that are not diagnostics.
//
var ErrFormat = errors.New("not a diagnostic")

var lineRe = regexp.MustCompile(`^(?:\[E(\d+)\] )?([^()]+) \(line (\d+), index (\d+)\) - (.*)$`)

// Parse parses a single rendered diagnostic.
//
func Parse(s string) (Parsed, error) {
	m := lineRe.FindStringSubmatch(s)
	if m == nil {
		return Parsed{}, ErrFormat
	}
	p := Parsed{Code: -1, Label: m[2], Message: m[5]}
	var err error
	if m[1] != "" {
		if p.Code, err = strconv.Atoi(m[1]); err != nil {
			return Parsed{}, err
		}
	}
	if p.Line, err = strconv.Atoi(m[3]); err != nil {
		return Parsed{}, err
	}
	if p.Index, err = strconv.Atoi(m[4]); err != nil {
		return Parsed{}, err
	}
	return p, nil
}
