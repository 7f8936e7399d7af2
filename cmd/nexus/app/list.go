package app

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nexuscli/nexus/internal/fanout"
	"github.com/nexuscli/nexus/internal/session"
	"github.com/nexuscli/nexus/internal/style"
	"github.com/nexuscli/nexus/internal/table"
	"github.com/nexuscli/nexus/internal/transport"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every live session across the fleet",
		RunE:  listCmdFunc,
	}
}

func listCmdFunc(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	t := newTransport()

	results := fanout.Run(ctx, t, fleet.Nodes, session.ListArgv(), transport.DefaultConnectTimeout, fleet.MaxConcurrentSSH)

	rows := make([][]string, 0)
	for _, node := range fleet.Nodes {
		res := results[node]
		if !res.Succeeded() {
			rows = append(rows, []string{node, style.Unreachable.Render("[UNREACHABLE]"), "", "", ""})
			continue
		}

		recs, err := session.ParseListOutput(res.Stdout)
		if err != nil {
			return err
		}

		for _, rec := range recs {
			status := "running"
			if rec.IsDead {
				status = "dead (exit " + strconv.Itoa(*rec.ExitStatus) + ")"
			}
			rows = append(rows, []string{node, rec.Name, status, strconv.Itoa(rec.Windows), rec.WorkingDirectory})
		}
	}

	fmt.Println(style.Banner.Render("Fleet sessions"))
	return table.Render(os.Stdout, []string{"Node", "Session", "Status", "Windows", "Working Dir"}, rows)
}
