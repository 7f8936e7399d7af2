package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nexuscli/nexus/internal/nexuserrors"
	"github.com/nexuscli/nexus/internal/session"
	"github.com/nexuscli/nexus/internal/transport"
)

var newWorkingDir string

func newNewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new <node/name|name> [cmd...]",
		Short: "Create a new session on a node",
		Args:  cobra.MinimumNArgs(1),
		RunE:  newCmdFunc,
	}
	cmd.Flags().StringVarP(&newWorkingDir, "dir", "d", "", "Working directory for the new session")
	return cmd
}

func newCmdFunc(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	qualified := args[0]
	command := args[1:]

	node, name, ok := splitQualifiedName(qualified)
	if !ok {
		node, name = fleet.DefaultNode, qualified
	}

	t := newTransport()
	argv := session.NewArgv(name, newWorkingDir, command)
	res := t.Run(ctx, node, argv, transport.DefaultConnectTimeout)

	if !res.Succeeded() {
		if sessionLikelyExists(res.Stderr) {
			return nexuserrors.NewDuplicateSession(
				fmt.Sprintf("Session '%s' already exists on %s.", name, node), nil)
		}
		return nexuserrors.NewInternal(res.Stderr, nil)
	}

	fmt.Printf("Created session %s/%s\n", node, name)
	return nil
}

// sessionLikelyExists is a best-effort sniff of the multiplexer's own
// "duplicate session" stderr text. DuplicateSession is never pre-checked;
// it is derived entirely from the multiplexer's own rejection.
func sessionLikelyExists(stderr string) bool {
	lower := strings.ToLower(stderr)
	return strings.Contains(lower, "duplicate session") || strings.Contains(lower, "already exists")
}

// splitQualifiedName splits "node/name" on the first '/'.
func splitQualifiedName(s string) (node, name string, ok bool) {
	idx := strings.Index(s, "/")
	if idx < 0 {
		return "", "", false
	}
	return s[:idx], s[idx+1:], true
}
