package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nexuscli/nexus/internal/nexuserrors"
	"github.com/nexuscli/nexus/internal/session"
	"github.com/nexuscli/nexus/internal/transport"
)

// defaultLogsLines is the scrollback window used when stdout is a tty.
const defaultLogsLines = 100

var logsLines int

func newLogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs <name>",
		Short: "Print a session's scrollback",
		Args:  cobra.ExactArgs(1),
		RunE:  logsCmdFunc,
	}
	cmd.Flags().IntVar(&logsLines, "lines", 0, "Number of scrollback lines (default 100 interactively, full when piped)")
	return cmd
}

func logsCmdFunc(cmd *cobra.Command, args []string) error {
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

	lines := logsLines
	if lines == 0 {
		if isStdoutTTY() {
			lines = defaultLogsLines
		} else {
			lines = -1
		}
	}

	argv := session.CaptureArgv(match.Session, lines)
	res := t.Run(ctx, match.Node, argv, transport.DefaultConnectTimeout)
	if !res.Succeeded() {
		return nexuserrors.NewInternal(res.Stderr, nil)
	}

	fmt.Print(res.Stdout)
	return nil
}
