package app

import (
	"errors"
	"os"

	"golang.org/x/term"

	"github.com/nexuscli/nexus/internal/fuzzy"
	"github.com/nexuscli/nexus/internal/nexuserrors"
	"github.com/nexuscli/nexus/internal/resolver"
	"github.com/nexuscli/nexus/internal/transport"
)

// newTransport builds the production Transport collaborator.
func newTransport() transport.Transport {
	return transport.NewShell()
}

// isStdinTTY is the interactivity seam resolver.IsTTY wraps.
func isStdinTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// isStdoutTTY drives the "logs" command's tty-sensitive default (a fixed
// window vs full scrollback). "gc" decides between confirm and
// auto-proceed with isStdinTTY instead.
func isStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// newResolver builds a Resolver wired to the loaded fleet config,
// checking the fuzzy-finder's presence on PATH up front so a missing
// binary surfaces before any fan-out work starts.
func newResolver(t transport.Transport) (*resolver.Resolver, error) {
	if err := fuzzy.CheckPresent(); err != nil {
		return nil, err
	}
	return resolver.New(t, fleet.Nodes, fleet.DefaultNode, fuzzy.NewExternal(), isStdinTTY), nil
}

// ExitCodeFor maps an error returned by the root command to the process
// exit code. main.go is the single place that inspects an error's Type
// and calls os.Exit, keeping exit-code policy out of every subcommand.
func ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	var nerr *nexuserrors.Error
	if errors.As(err, &nerr) {
		return nexuserrors.ExitCode(nerr.Type)
	}
	return 2
}
