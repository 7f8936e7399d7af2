// Package transport executes a command vector on a named node and
// returns a total (never-raising) result. The local
// node bypasses the remote-shell client entirely; every other node is
// wrapped in a remote-shell invocation with a strict connect timeout.
package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"al.essio.dev/pkg/shellescape"
)

// LocalNode is the reserved node name denoting the executing machine.
const LocalNode = "local"

// DefaultConnectTimeout is the connect timeout applied to every remote
// invocation unless the caller overrides it.
const DefaultConnectTimeout = 2 * time.Second

// NodeResult is the outcome of running one command vector on one node.
// It is always populated -- transport-level failures are folded into
// ExitCode/Stderr rather than surfaced as a Go error.
type NodeResult struct {
	Node     string
	Stdout   string
	Stderr   string
	ExitCode int
}

// Succeeded reports whether the command exited zero.
func (r NodeResult) Succeeded() bool {
	return r.ExitCode == 0
}

// Transport executes a command vector on a node.
type Transport interface {
	Run(ctx context.Context, node string, argv []string, timeout time.Duration) NodeResult
}

// Shell is the concrete Transport used in production. RemoteShellBin
// names the remote-shell client binary (conventionally "ssh"); NodeAlias
// resolves a logical node name to whatever the remote-shell client
// expects as its host argument (defaults to the identity function).
type Shell struct {
	RemoteShellBin string
	NodeAlias      func(node string) string
}

// NewShell builds a Shell transport with the standard "ssh" client and
// an identity node-alias mapping.
func NewShell() *Shell {
	return &Shell{RemoteShellBin: "ssh", NodeAlias: func(n string) string { return n }}
}

// Run implements Transport.
func (s *Shell) Run(ctx context.Context, node string, argv []string, timeout time.Duration) NodeResult {
	if len(argv) == 0 {
		return NodeResult{Node: node, Stderr: "empty command vector", ExitCode: 2}
	}

	if node == LocalNode {
		return s.runLocal(ctx, node, argv)
	}
	return s.runRemote(ctx, node, argv, timeout)
}

func (*Shell) runLocal(ctx context.Context, node string, argv []string) NodeResult {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return NodeResult{
		Node:     node,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCodeOf(err),
	}
}

func (s *Shell) runRemote(ctx context.Context, node string, argv []string, timeout time.Duration) NodeResult {
	if timeout <= 0 {
		timeout = DefaultConnectTimeout
	}

	alias := node
	if s.NodeAlias != nil {
		alias = s.NodeAlias(node)
	}

	quoted := make([]string, len(argv))
	for i, a := range argv {
		quoted[i] = shellescape.Quote(a)
	}
	remoteCmd := strings.Join(quoted, " ")

	sshArgv := []string{
		s.RemoteShellBin,
		"-o", fmt.Sprintf("ConnectTimeout=%d", int(timeout.Seconds())),
		alias,
		remoteCmd,
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, sshArgv[0], sshArgv[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() != nil {
		return NodeResult{
			Node:     node,
			Stderr:   fmt.Sprintf("cancelled before node %s responded: %v", node, ctx.Err()),
			ExitCode: 124,
		}
	}
	if isExecError(err) {
		return NodeResult{
			Node:     node,
			Stderr:   fmt.Sprintf("failed to reach node %s: %v", node, err),
			ExitCode: 125,
		}
	}

	return NodeResult{
		Node:     node,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCodeOf(err),
	}
}

// exitCodeOf extracts a process exit code from the error returned by
// cmd.Run(), or 0/1 for the degenerate cases.
func exitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 1
}

// isExecError reports whether err represents a failure to even start the
// remote-shell client (e.g. binary missing), as opposed to the client
// exiting non-zero. A dial failure inside a started client is reported
// through the client's own non-zero exit, so it is not an exec error.
func isExecError(err error) bool {
	if err == nil {
		return false
	}
	var exitErr *exec.ExitError
	return !errors.As(err, &exitErr)
}
