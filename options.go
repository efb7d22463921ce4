package nlex

// Recognized options. They all default to false.
//
const (
	OptLemmatise        = "lemmatise"
	OptStem             = "stem"
	OptPureNormaliser   = "pure_normaliser"
	OptSkipOnError      = "skip_on_error"
	OptUnsafeNormaliser = "unsafe_normaliser"
)

var optionNames = [...]string{
	OptLemmatise,
	OptStem,
	OptPureNormaliser,
	OptSkipOnError,
	OptUnsafeNormaliser,
}

// OptionNames returns the names of all recognized options.
//
func OptionNames() []string {
	return append([]string(nil), optionNames[:]...)
}

// An OptionTable holds the value of every recognized option.
//
type OptionTable map[string]bool

// NewOptionTable returns a new OptionTable with all options set to false.
//
func NewOptionTable() OptionTable {
	t := make(OptionTable, len(optionNames))
	for _, n := range optionNames {
		t[n] = false
	}
	return t
}

// Set sets the option name to v. It returns false if name is not a
// recognized option, in which case the table is left unchanged.
//
func (t OptionTable) Set(name string, v bool) bool {
	if _, ok := t[name]; !ok {
		return false
	}
	t[name] = v
	return true
}
