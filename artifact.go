package nlex

import "encoding/json"

// An Artifact is a compiled rule file. It is immutable: accessors return
// copies of its contents.
//
type Artifact struct {
	names     []string
	values    map[string]Value
	norms     NormalisationTable
	options   OptionTable
	stopwords StopwordSet
}

// Names returns the names of all values in definition order.
//
func (a *Artifact) Names() []string {
	return append([]string(nil), a.names...)
}

// Value returns the value defined for name.
//
func (a *Artifact) Value(name string) (Value, bool) {
	v, ok := a.values[name]
	return v, ok
}

// Values returns all named values.
//
func (a *Artifact) Values() map[string]Value {
	m := make(map[string]Value, len(a.values))
	for k, v := range a.values {
		m[k] = v
	}
	return m
}

// Normalisations returns the normalisation table.
//
func (a *Artifact) Normalisations() NormalisationTable {
	t := make(NormalisationTable, len(a.norms))
	for k, v := range a.norms {
		t[k] = v
	}
	return t
}

// Normalise returns s with every character of the normalisation table
// replaced by its mapping.
//
func (a *Artifact) Normalise(s string) string {
	return a.norms.Apply(s)
}

// Options returns the value of every recognized option.
//
func (a *Artifact) Options() OptionTable {
	t := make(OptionTable, len(a.options))
	for k, v := range a.options {
		t[k] = v
	}
	return t
}

// Option returns the value of the option name. Unrecognized options are
// false.
//
func (a *Artifact) Option(name string) bool {
	return a.options[name]
}

// Stopwords returns the stopwords in lexical order.
//
func (a *Artifact) Stopwords() []string {
	return a.stopwords.Sorted()
}

// IsStopword returns true if w is a stopword.
//
func (a *Artifact) IsStopword(w string) bool {
	return a.stopwords.Has(w)
}

type jsonArtifact struct {
	Values         map[string]Value  `json:"values"`
	Normalisations map[string]string `json:"normalisations"`
	Options        map[string]bool   `json:"options"`
	Stopwords      []string          `json:"stopwords"`
}

// MarshalJSON implements json.Marshaler. Normalisation keys are encoded as
// one character strings and stopwords as a sorted list.
//
func (a *Artifact) MarshalJSON() ([]byte, error) {
	ja := jsonArtifact{
		Values:         a.values,
		Normalisations: make(map[string]string, len(a.norms)),
		Options:        a.options,
		Stopwords:      a.stopwords.Sorted(),
	}
	if ja.Values == nil {
		ja.Values = map[string]Value{}
	}
	for k, v := range a.norms {
		ja.Normalisations[string(k)] = v
	}
	return json.Marshal(&ja)
}
