package app

import (
	"github.com/spf13/cobra"

	"github.com/nexuscli/nexus/internal/nexuserrors"
	"github.com/nexuscli/nexus/internal/session"
	"github.com/nexuscli/nexus/internal/transport"
)

var sendRaw bool

func newSendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send <name> <keys...>",
		Short: "Send keys to a session (auto-appends Enter unless --raw)",
		Args:  cobra.MinimumNArgs(2),
		RunE:  sendCmdFunc,
	}
	cmd.Flags().BoolVar(&sendRaw, "raw", false, "Do not append a trailing Enter")
	return cmd
}

func sendCmdFunc(cmd *cobra.Command, args []string) error {
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

	argv := session.SendArgv(match.Session, sendRaw, args[1:]...)
	res := t.Run(ctx, match.Node, argv, transport.DefaultConnectTimeout)
	if !res.Succeeded() {
		return nexuserrors.NewInternal(res.Stderr, nil)
	}

	return nil
}
