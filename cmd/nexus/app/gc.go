package app

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nexuscli/nexus/internal/fanout"
	"github.com/nexuscli/nexus/internal/session"
	"github.com/nexuscli/nexus/internal/transport"
)

var gcDryRun bool

func newGCCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gc [name]",
		Short: "Reap dead sessions across the fleet, or one named session",
		Args:  cobra.MaximumNArgs(1),
		RunE:  gcCmdFunc,
	}
	cmd.Flags().BoolVar(&gcDryRun, "dry-run", false, "List what would be reaped without killing anything")
	return cmd
}

type gcCandidate struct {
	node, name string
}

func gcCmdFunc(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	t := newTransport()

	results := fanout.Run(ctx, t, fleet.Nodes, session.ListArgv(), transport.DefaultConnectTimeout, fleet.MaxConcurrentSSH)

	var candidates []gcCandidate
	for _, node := range fleet.Nodes {
		res := results[node]
		if !res.Succeeded() {
			continue
		}
		recs, err := session.ParseListOutput(res.Stdout)
		if err != nil {
			return err
		}
		for _, rec := range recs {
			if !rec.IsDead {
				continue
			}
			if len(args) == 1 && rec.Name != args[0] {
				continue
			}
			candidates = append(candidates, gcCandidate{node: node, name: rec.Name})
		}
	}

	if len(candidates) == 0 {
		fmt.Println("Nothing to reap.")
		return nil
	}

	for _, c := range candidates {
		fmt.Printf("%s/%s (dead)\n", c.node, c.name)
	}

	if gcDryRun {
		return nil
	}

	if isStdinTTY() && !confirm("Reap these sessions?") {
		fmt.Println("Aborted.")
		return nil
	}

	for _, c := range candidates {
		res := t.Run(ctx, c.node, session.KillArgv(c.name), transport.DefaultConnectTimeout)
		if !res.Succeeded() {
			fmt.Fprintf(os.Stderr, "Warning: failed to reap %s/%s: %s\n", c.node, c.name, res.Stderr)
		}
	}

	return nil
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	return strings.EqualFold(strings.TrimSpace(line), "y")
}
