package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/db47h/nlex"
	"github.com/db47h/nlex/diag"
)

// Local is an in-process BuildService. It compiles rule files synchronously
// on Submit and its modules are JSON encoded artifacts, for any target.
//
// Files referenced by stopword lists are read with the configured resolver.
//
type Local struct {
	opts []nlex.Option

	mu     sync.Mutex
	n      int
	builds map[Job]*Build
}

// NewLocal returns a new Local build service. The given options are passed
// to nlex.Compile.
//
func NewLocal(opts ...nlex.Option) *Local {
	return &Local{opts: opts, builds: make(map[Job]*Build)}
}

// Submit implements BuildService.
//
func (l *Local) Submit(ctx context.Context, src []byte, target Target) (Job, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// diagnostics are collected in their rendered form
	var buf bytes.Buffer
	opts := append(append([]nlex.Option(nil), l.opts...), nlex.WithReporter(diag.NewWriter(&buf)))
	res := nlex.CompileString("<submitted>", string(src), opts...)
	ds, err := ParseDiagnostics(&buf)
	if err != nil {
		return "", err
	}
	b := &Build{Diagnostics: ds}
	if len(ds) == 0 {
		if b.Module, err = json.Marshal(res.Artifact); err != nil {
			return "", fmt.Errorf("submit: %w", err)
		}
		b.Extension = ".json"
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.n++
	j := Job(fmt.Sprintf("%s-%s-%d", target.OS, target.Arch, l.n))
	l.builds[j] = b
	return j, nil
}

// Fetch implements BuildService. A build can only be fetched once.
//
func (l *Local) Fetch(ctx context.Context, job Job) (*Build, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.builds[job]
	if !ok {
		return nil, fmt.Errorf("fetch: unknown job %q", job)
	}
	delete(l.builds, job)
	return b, nil
}
