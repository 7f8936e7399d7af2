package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nexuscli/nexus/internal/nexuserrors"
	"github.com/nexuscli/nexus/internal/session"
	"github.com/nexuscli/nexus/internal/transport"
)

func newKillCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kill <name>",
		Short: "Kill a session",
		Args:  cobra.ExactArgs(1),
		RunE:  killCmdFunc,
	}
}

func killCmdFunc(cmd *cobra.Command, args []string) error {
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

	argv := session.KillArgv(match.Session)
	res := t.Run(ctx, match.Node, argv, transport.DefaultConnectTimeout)
	if !res.Succeeded() {
		return nexuserrors.NewInternal(res.Stderr, nil)
	}

	fmt.Printf("Killed %s/%s\n", match.Node, match.Session)
	return nil
}
