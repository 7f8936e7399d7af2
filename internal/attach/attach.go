// Package attach implements the nesting-aware state machine that either
// replaces the current process with a direct attach, or spawns a
// detached window and exits, depending on the caller's current
// multiplexer context.
package attach

import (
	"context"
	"fmt"
	"strings"

	"al.essio.dev/pkg/shellescape"

	"github.com/nexuscli/nexus/internal/logging"
	"github.com/nexuscli/nexus/internal/session"
	"github.com/nexuscli/nexus/internal/transport"
)

// Scenario is the nesting scenario detected from the caller's TMUX
// environment variable and the attach target's node.
type Scenario string

const (
	ScenarioALocal  Scenario = "A-local"
	ScenarioARemote Scenario = "A-remote"
	ScenarioBLocal  Scenario = "B-local"
	ScenarioBRemote Scenario = "B-remote"
	ScenarioC       Scenario = "C"
)

// Target is the qualified (node, session) pair to attach to.
type Target struct {
	Node    string
	Session string
}

// Exec replaces the current process image with argv, never returning on
// success. Tests substitute a fake that records the call instead.
type Exec func(argv []string) error

// Spawner issues the window-spawning or client-switching command of the
// B/C scenarios. The multiplexer command returns as soon as the window
// exists; the long-lived attach running inside that window is not
// waited on, so the launching process can exit right after.
type Spawner func(ctx context.Context, node string, argv []string) error

// Machine runs the attach state machine against a configured transport.
type Machine struct {
	RemoteShellBin string
	Exec           Exec
	Spawn          Spawner
}

// New builds a Machine using the real process-replacement primitive
// (golang.org/x/sys/unix.Exec on unix; see exec_unix.go/exec_other.go)
// and a Transport-backed spawner.
func New(t transport.Transport) *Machine {
	return &Machine{
		RemoteShellBin: "ssh",
		Exec:           execve,
		Spawn: func(ctx context.Context, node string, argv []string) error {
			res := t.Run(context.WithoutCancel(ctx), node, argv, 0)
			if !res.Succeeded() {
				return fmt.Errorf("spawning %v on %s failed: %s", argv, node, res.Stderr)
			}
			return nil
		},
	}
}

// DetectScenario implements the nesting-detection rule: parse tmuxEnv
// as "path,pid,session"; the socket path's final
// component identifies the socket name. Scenario is one of B iff that
// name equals the nexus socket; otherwise C if TMUX is set but refers
// to some other socket; otherwise A. The node determines the -local/
// -remote suffix for A and B.
func DetectScenario(tmuxEnv string, node string) Scenario {
	isLocal := node == transport.LocalNode

	if tmuxEnv == "" {
		if isLocal {
			return ScenarioALocal
		}
		return ScenarioARemote
	}

	socketName := socketNameFromTMUX(tmuxEnv)
	if socketName == session.Socket {
		if isLocal {
			return ScenarioBLocal
		}
		return ScenarioBRemote
	}

	return ScenarioC
}

func socketNameFromTMUX(tmuxEnv string) string {
	parts := strings.SplitN(tmuxEnv, ",", 3)
	if len(parts) == 0 {
		return ""
	}
	path := parts[0]
	idx := strings.LastIndex(path, "/")
	if idx < 0 {
		return path
	}
	return path[idx+1:]
}

// Attach runs the state machine for target given the caller's current
// TMUX environment value. On A-scenarios it replaces the process image
// and, by definition, never returns on success. On B/C scenarios it
// spawns a detached window and returns nil once the fire-and-forget
// dispatch has been issued; the caller is expected to exit 0
// immediately after.
func (m *Machine) Attach(ctx context.Context, target Target, tmuxEnv string) error {
	scenario := DetectScenario(tmuxEnv, target.Node)
	logging.Infow("attach scenario detected", "scenario", scenario, "node", target.Node, "session", target.Session)

	switch scenario {
	case ScenarioALocal:
		return m.Exec(session.AttachArgv(session.Socket, target.Session))

	case ScenarioARemote:
		inner := quoteArgv(session.AttachArgv(session.Socket, target.Session))
		argv := []string{m.RemoteShellBin, "-t", target.Node, inner}
		return m.Exec(argv)

	case ScenarioBLocal:
		return m.Spawn(ctx, transport.LocalNode, session.SwitchArgv(target.Session))

	case ScenarioBRemote:
		remoteAttach := quoteArgv(session.AttachArgv(session.Socket, target.Session))
		inner := fmt.Sprintf("%s -t %s '%s'", m.RemoteShellBin, target.Node, remoteAttach)
		argv := session.NewWindowArgv(session.Socket, target.Session, inner)
		return m.Spawn(ctx, transport.LocalNode, argv)

	case ScenarioC:
		remoteAttach := quoteArgv(session.AttachArgv(session.Socket, target.Session))
		inner := fmt.Sprintf("%s -t %s '%s'", m.RemoteShellBin, target.Node, remoteAttach)
		argv := []string{"multiplexer", "new-window", "-n", target.Session, inner}
		return m.Spawn(ctx, transport.LocalNode, argv)

	default:
		return fmt.Errorf("unreachable: unknown attach scenario %q", scenario)
	}
}

// quoteArgv shell-quotes and joins argv for embedding as a single string
// argument to a remote-shell client or a multiplexer new-window command.
func quoteArgv(argv []string) string {
	quoted := make([]string, len(argv))
	for i, a := range argv {
		quoted[i] = shellescape.Quote(a)
	}
	return strings.Join(quoted, " ")
}
