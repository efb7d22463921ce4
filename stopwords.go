package nlex

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// A FileResolver reads the files referenced by stopword lists.
//
type FileResolver interface {
	// ReadLines returns the lines of the file at path, without line
	// terminators.
	ReadLines(path string) ([]string, error)
}

// DirResolver is a FileResolver that reads from the OS file system. Relative
// paths are resolved against the directory it names; an empty DirResolver
// resolves them against the current directory.
//
type DirResolver string

// ReadLines implements FileResolver.
//
func (d DirResolver) ReadLines(path string) ([]string, error) {
	if !filepath.IsAbs(path) && d != "" {
		path = filepath.Join(string(d), path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	s := bufio.NewScanner(f)
	for s.Scan() {
		lines = append(lines, s.Text())
	}
	if err = s.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lines, nil
}

// MapResolver is a FileResolver backed by a map of file names to lines.
//
type MapResolver map[string][]string

// ReadLines implements FileResolver.
//
func (m MapResolver) ReadLines(path string) ([]string, error) {
	lines, ok := m[path]
	if !ok {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}
	return lines, nil
}

// A StopwordSet is a set of distinct words.
//
type StopwordSet map[string]struct{}

// Add adds w to the set.
//
func (s StopwordSet) Add(w string) {
	s[w] = struct{}{}
}

// Has returns true if w is in the set.
//
func (s StopwordSet) Has(w string) bool {
	_, ok := s[w]
	return ok
}

// Sorted returns the words of the set in lexical order.
//
func (s StopwordSet) Sorted() []string {
	ws := make([]string, 0, len(s))
	for w := range s {
		ws = append(ws, w)
	}
	sort.Strings(ws)
	return ws
}
