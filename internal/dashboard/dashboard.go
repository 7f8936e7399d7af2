// Package dashboard composes a temporary, read-only multi-pane overview
// session across the fleet, with an Enter-key shim that tears the
// dashboard down and re-enters the focused session under the caller's
// original nesting context.
package dashboard

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"al.essio.dev/pkg/shellescape"

	"github.com/nexuscli/nexus/internal/fanout"
	"github.com/nexuscli/nexus/internal/logging"
	"github.com/nexuscli/nexus/internal/session"
	"github.com/nexuscli/nexus/internal/style"
	"github.com/nexuscli/nexus/internal/transport"
)

// Socket is the dedicated, distinct socket the dashboard composes its
// panes on, so a user already inside the nexus socket can still launch
// it safely.
const Socket = "nx_dash"

// MaxPanes is the pane cap beyond which sessions are elided with a
// warning.
const MaxPanes = 16

// EnvNXBin is the session environment variable name the Enter shim reads
// back to find the nexus binary to re-exec.
const EnvNXBin = "NX_BIN"

// OptionTarget is the per-pane user option tagging its qualified target.
const OptionTarget = "@nx_target"

// Entry is one live (node, session) pair discovered during composition.
type Entry struct {
	Node    string
	Session string
}

// Qualified renders the entry in canonical "node/session" form.
func (e Entry) Qualified() string {
	return e.Node + "/" + e.Session
}

// Exec replaces the current process image with argv. The dashboard's
// final step attaches unconditionally to the nx_dash session -- it does
// not go through the nesting-scenario dispatch used for named session
// attaches, since landing on nx_dash is not itself a nested attach
// target.
type Exec func(argv []string) error

// Composer builds and attaches to the dashboard session.
type Composer struct {
	Transport   transport.Transport
	Nodes       []string
	MaxParallel int
	Exec        Exec
}

// New builds a Composer with the given collaborators.
func New(t transport.Transport, nodes []string, exec Exec) *Composer {
	return &Composer{Transport: t, Nodes: nodes, MaxParallel: fanout.DefaultMaxParallel, Exec: exec}
}

// Discover fans "list" out across the fleet and returns every live
// (node, session) pair, in deterministic (node, session) order. Nodes
// that fail to respond are logged and excluded, mirroring the
// resolver's soft-warning treatment of unreachable nodes.
func (c *Composer) Discover(ctx context.Context) []Entry {
	results := fanout.Run(ctx, c.Transport, c.Nodes, session.ListArgv(), transport.DefaultConnectTimeout, c.MaxParallel)

	var entries []Entry
	for _, node := range c.Nodes {
		res, ok := results[node]
		if !ok || !res.Succeeded() {
			logging.Warnw("node unreachable during dashboard composition", "node", node)
			continue
		}
		recs, err := session.ParseListOutput(res.Stdout)
		if err != nil {
			logging.Warnw("node returned unparsable list output", "node", node, "error", err)
			continue
		}
		for _, rec := range recs {
			entries = append(entries, Entry{Node: node, Session: rec.Name})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Node != entries[j].Node {
			return entries[i].Node < entries[j].Node
		}
		return entries[i].Session < entries[j].Session
	})

	return entries
}

// Plan is the realized composition: the panes to create and any entries
// elided by the pane cap.
type Plan struct {
	Panes  []Entry
	Elided []Entry
}

// BuildPlan caps entries at MaxPanes, returning the panes to realize and
// the elided tail for a status warning.
func BuildPlan(entries []Entry) Plan {
	if len(entries) <= MaxPanes {
		return Plan{Panes: entries}
	}
	return Plan{Panes: entries[:MaxPanes], Elided: entries[MaxPanes:]}
}

// ComposeArgv returns the full, ordered sequence of argv vectors needed
// to realize the dashboard session on Socket: create the session, split
// one read-only-attach pane per entry, tag each with its target, stamp
// NX_BIN, apply a tiled layout, and bind the Enter shim. It is exposed
// separately from Compose so tests can assert on the exact command shape
// without needing a live transport.
func ComposeArgv(plan Plan, nxBin string) [][]string {
	var cmds [][]string

	if len(plan.Panes) == 0 {
		return cmds
	}

	first := plan.Panes[0]
	newSession := []string{"multiplexer", "-L", Socket, "new-session", "-d", "-s", dashboardSessionName}
	cmds = append(cmds, append(newSession, session.ReadOnlyAttachArgv(session.Socket, first.Session)...))
	cmds = append(cmds, session.SetPaneOptionArgv(Socket, dashboardSessionName, OptionTarget, first.Qualified()))

	for _, e := range plan.Panes[1:] {
		readOnly := session.ReadOnlyAttachArgv(session.Socket, e.Session)
		cmds = append(cmds, session.SplitWindowArgv(Socket, dashboardSessionName, joinArgv(readOnly)))
		cmds = append(cmds, session.SetPaneOptionArgv(Socket, dashboardSessionName, OptionTarget, e.Qualified()))
	}

	cmds = append(cmds, session.SetEnvArgv(Socket, dashboardSessionName, EnvNXBin, nxBin))
	cmds = append(cmds, session.SelectLayoutArgv(Socket, dashboardSessionName, "tiled"))
	cmds = append(cmds, session.BindKeyArgv(Socket, "Enter", EnterShimCommand))

	return cmds
}

const dashboardSessionName = "overview"

// EnterShimCommand is the shell command bound to Enter in the dashboard
// session. Its ordering is load-bearing: the tear-down (detach-client
// && kill-session) must be emitted strictly before the re-entry exec,
// so the attach state machine observes the caller's original TMUX
// context rather than the nx_dash socket.
const EnterShimCommand = `target=$(multiplexer -L ` + Socket + ` display-message -p '#{@nx_target}'); ` +
	`bin=$(multiplexer -L ` + Socket + ` show-environment ` + EnvNXBin + ` | cut -d= -f2); ` +
	`multiplexer -L ` + Socket + ` detach-client && multiplexer -L ` + Socket + ` kill-session -t ` + dashboardSessionName + `; ` +
	`exec "$bin" attach "$target"`

func joinArgv(argv []string) string {
	quoted := make([]string, len(argv))
	for i, a := range argv {
		quoted[i] = shellescape.Quote(a)
	}
	return strings.Join(quoted, " ")
}

// Compose runs the full dashboard flow: discover, plan, realize the
// session on the transport, warn about any elided entries, and finally
// replace the current process with an attach to the dashboard session.
// Never returns on success.
func (c *Composer) Compose(ctx context.Context) error {
	entries := c.Discover(ctx)
	if len(entries) == 0 {
		fmt.Println("No active sessions")
		return nil
	}

	plan := BuildPlan(entries)
	if len(plan.Elided) > 0 {
		logging.Warnw("dashboard pane cap reached, sessions elided", "cap", MaxPanes, "elided", len(plan.Elided))
		fmt.Println(style.Warning.Render(fmt.Sprintf(
			"%d session(s) elided: pane cap of %d reached", len(plan.Elided), MaxPanes)))
	}

	nxBin, err := os.Executable()
	if err != nil {
		return err
	}

	for _, argv := range ComposeArgv(plan, nxBin) {
		res := c.Transport.Run(ctx, transport.LocalNode, argv, transport.DefaultConnectTimeout)
		if !res.Succeeded() {
			logging.Errorw("dashboard composition step failed", "argv", argv, "stderr", res.Stderr)
		}
	}

	return c.Exec(session.AttachArgv(Socket, dashboardSessionName))
}
