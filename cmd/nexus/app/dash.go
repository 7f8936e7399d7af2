package app

import (
	"github.com/spf13/cobra"

	"github.com/nexuscli/nexus/internal/attach"
	"github.com/nexuscli/nexus/internal/dashboard"
)

func newDashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dash",
		Short: "Compose a read-only overview dashboard across the fleet",
		Args:  cobra.NoArgs,
		RunE:  dashCmdFunc,
	}
}

func dashCmdFunc(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	t := newTransport()

	composer := dashboard.New(t, fleet.Nodes, dashExec)
	composer.MaxParallel = fleet.MaxConcurrentSSH

	return composer.Compose(ctx)
}

// dashExec is attach's platform-specific process-replacement primitive,
// reused unconditionally for the dashboard's final re-entry step. The
// dashboard always re-enters its own read-only session directly; it
// never goes through the nesting-scenario dispatch attach uses for
// named sessions.
var dashExec dashboard.Exec = func(argv []string) error {
	m := attach.New(nil)
	return m.Exec(argv)
}
