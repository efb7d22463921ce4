// Package diag implements the diagnostics emitted while compiling rule files.
//
// Diagnostic kinds are registered once, at package initialization, and
// receive sequential numeric codes starting at 0. A diagnostic renders as
//
//	[E<code>] <label> (line <L>, index <I>) - <message>
//
// where the index is the byte offset within the line. Lexical errors have no
// code and render without the leading "[E<code>] ".
//
// Diagnostics are never fatal: producers hand them to a Reporter and go on.
//
package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/db47h/nlex/token"
)

// Kind identifies a class of diagnostic. Coded kinds have a Code >= 0.
//
type Kind int

type kindInfo struct {
	label  string
	format string
}

var kinds []kindInfo

func register(label, format string) Kind {
	kinds = append(kinds, kindInfo{label, format})
	return Kind(len(kinds) - 1)
}

// Registered kinds, in code order.
//
var (
	AlreadyDefined             = register("Already Defined", "`%s' already defined")
	Undefined                  = register("Undefined", "Value `%s' has not been previously defined")
	ReadError                  = register("Read Error", "Reading file `%s' failed")
	NormalisationDoublyDefined = register("Normalisation previously defined", "Normalisation '%s' already defined as '%s'")
	UnknownOption              = register("Unknown Option", "Option `%s' makes no sense to me")
	SyntaxError                = register("Syntax Error", "Unexpected %s")
)

// IllegalCharacter is the uncoded kind of lexical errors. Its message is the
// lexer's error text.
//
const IllegalCharacter Kind = -1

var illegal = kindInfo{"Illegal Character", "%s"}

func (k Kind) info() kindInfo {
	if k >= 0 && int(k) < len(kinds) {
		return kinds[k]
	}
	return illegal
}

// Coded returns true if k has a numeric code.
//
func (k Kind) Coded() bool {
	return k >= 0 && int(k) < len(kinds)
}

// Code returns the numeric code of k, or -1 for uncoded kinds.
//
func (k Kind) Code() int {
	if !k.Coded() {
		return -1
	}
	return int(k)
}

// Label returns the short label of k.
//
func (k Kind) Label() string {
	return k.info().label
}

func (k Kind) String() string {
	return k.Label()
}

// Kinds returns all coded kinds in code order.
//
func Kinds() []Kind {
	ks := make([]Kind, len(kinds))
	for i := range ks {
		ks[i] = Kind(i)
	}
	return ks
}

// A Diagnostic is a positioned compile error.
//
type Diagnostic struct {
	Kind Kind
	At   token.LineInfo
	Args []interface{} // message arguments
}

// New returns a new Diagnostic of kind k.
//
func New(k Kind, at token.LineInfo, args ...interface{}) Diagnostic {
	return Diagnostic{Kind: k, At: at, Args: args}
}

// Message returns the formatted message of d, without position or label.
//
func (d Diagnostic) Message() string {
	return fmt.Sprintf(d.Kind.info().format, d.Args...)
}

// Error implements error. It returns the rendered diagnostic.
//
func (d Diagnostic) Error() string {
	var b strings.Builder
	if d.Kind.Coded() {
		fmt.Fprintf(&b, "[E%d] ", d.Kind.Code())
	}
	fmt.Fprintf(&b, "%s (line %d, index %d) - %s", d.Kind.Label(), d.At.Line, d.At.End, d.Message())
	return b.String()
}

func (d Diagnostic) String() string {
	return d.Error()
}

// A Reporter receives diagnostics as they are emitted.
//
type Reporter interface {
	Report(d Diagnostic)
}

// ReporterFunc is an adapter to allow the use of ordinary functions as
// Reporters.
//
type ReporterFunc func(d Diagnostic)

// Report calls f(d).
//
func (f ReporterFunc) Report(d Diagnostic) { f(d) }

// Discard is a Reporter that drops all diagnostics.
//
var Discard Reporter = ReporterFunc(func(Diagnostic) {})

// List collects diagnostics in emission order. A non-empty List is an error.
//
type List []Diagnostic

// Report appends d to the list.
//
func (l *List) Report(d Diagnostic) {
	*l = append(*l, d)
}

// Count returns the number of diagnostics of kind k.
//
func (l List) Count(k Kind) int {
	n := 0
	for i := range l {
		if l[i].Kind == k {
			n++
		}
	}
	return n
}

// Error implements error. Diagnostics are rendered one per line.
//
func (l List) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	var b strings.Builder
	for i := range l {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(l[i].Error())
	}
	return b.String()
}

// Err returns an error equivalent to this list. If the list is empty, Err
// returns nil.
//
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// Writer is a Reporter that writes one rendered diagnostic per line to an
// io.Writer. Write errors are dropped.
//
type Writer struct {
	w io.Writer
}

// NewWriter returns a new Writer reporting to w.
//
func NewWriter(w io.Writer) *Writer {
	return &Writer{w}
}

// Report writes d.
//
func (w *Writer) Report(d Diagnostic) {
	fmt.Fprintln(w.w, d.Error())
}

// Multi is a Reporter that forwards every diagnostic to each of its members
// in turn.
//
type Multi []Reporter

// Report forwards d.
//
func (m Multi) Report(d Diagnostic) {
	for _, r := range m {
		if r != nil {
			r.Report(d)
		}
	}
}
