// Package fuzzy wraps the external interactive fuzzy-finder collaborator
// (e.g. fzf) that the resolver hands ambiguous match lists to. The core
// assumes only: it reads candidates from stdin one per line, writes the
// selected line to stdout, and exits non-zero on cancellation.
package fuzzy

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/nexuscli/nexus/internal/nexuserrors"
)

// Bin is the fuzzy-finder binary name expected on PATH.
const Bin = "fzf"

// Finder is the interface the resolver depends on, letting tests supply
// a fake without touching os/exec.
type Finder interface {
	// Select presents candidates and returns the chosen one. An error
	// means the user cancelled the selection (non-zero exit).
	Select(ctx context.Context, candidates []string) (string, error)
}

// External shells out to the fuzzy-finder binary on PATH.
type External struct {
	Bin string
}

// NewExternal builds an External finder using the default binary name.
func NewExternal() *External {
	return &External{Bin: Bin}
}

// CheckPresent verifies the fuzzy-finder binary is reachable on PATH.
// Checked at CLI init so a missing binary aborts with a clear
// diagnostic instead of failing deep inside session resolution.
func CheckPresent() error {
	if _, err := exec.LookPath(Bin); err != nil {
		return nexuserrors.NewMissingDependency(
			"fuzzy-finder \""+Bin+"\" not found on PATH", err)
	}
	return nil
}

// Select writes candidates to the finder's stdin, one per line, and
// returns the trimmed selected line. A non-zero exit (user cancelled)
// is reported as an error.
func (e *External) Select(ctx context.Context, candidates []string) (string, error) {
	bin := e.Bin
	if bin == "" {
		bin = Bin
	}

	cmd := exec.CommandContext(ctx, bin)
	cmd.Stdin = strings.NewReader(strings.Join(candidates, "\n") + "\n")

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		return "", err
	}

	return strings.TrimSpace(stdout.String()), nil
}

// Filter runs the finder's non-interactive filter mode against a query,
// returning the matched lines. Used only by tests.
func Filter(ctx context.Context, bin string, candidates []string, query string) ([]string, error) {
	if bin == "" {
		bin = Bin
	}

	cmd := exec.CommandContext(ctx, bin, "--filter", query)
	cmd.Stdin = strings.NewReader(strings.Join(candidates, "\n") + "\n")

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		return nil, err
	}

	return splitNonEmpty(stdout.String()), nil
}

func splitNonEmpty(s string) []string {
	raw := strings.Split(s, "\n")
	out := make([]string, 0, len(raw))
	for _, l := range raw {
		if l == "" {
			continue
		}
		out = append(out, l)
	}
	return out
}
