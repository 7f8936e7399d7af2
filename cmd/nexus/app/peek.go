package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nexuscli/nexus/internal/nexuserrors"
	"github.com/nexuscli/nexus/internal/session"
	"github.com/nexuscli/nexus/internal/transport"
)

func newPeekCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "peek <name>",
		Short: "Print a session's current pane without attaching",
		Args:  cobra.ExactArgs(1),
		RunE:  peekCmdFunc,
	}
}

func peekCmdFunc(cmd *cobra.Command, args []string) error {
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

	argv := session.CaptureArgv(match.Session, 0)
	res := t.Run(ctx, match.Node, argv, transport.DefaultConnectTimeout)
	if !res.Succeeded() {
		return nexuserrors.NewInternal(res.Stderr, nil)
	}

	fmt.Print(res.Stdout)
	return nil
}
