package app

import (
	"os"

	"github.com/spf13/cobra"

	appattach "github.com/nexuscli/nexus/internal/attach"
)

func newAttachCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "attach <name>",
		Short: "Attach to a session, resolving a bare or qualified name",
		Args:  cobra.ExactArgs(1),
		RunE:  attachCmdFunc,
	}
}

func attachCmdFunc(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	t := newTransport()

	r, err := newResolver(t)
	if err != nil {
		return err
	}

	match, err := r.Resolve(ctx, args[0])
	if err != nil {
		return err
	}

	machine := appattach.New(t)
	target := appattach.Target{Node: match.Node, Session: match.Session}
	return machine.Attach(ctx, target, os.Getenv("TMUX"))
}
