package dashboard

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexuscli/nexus/internal/transport"
)

type fakeTransport struct {
	byNode map[string]transport.NodeResult
}

func (f *fakeTransport) Run(_ context.Context, node string, _ []string, _ time.Duration) transport.NodeResult {
	if res, ok := f.byNode[node]; ok {
		return res
	}
	return transport.NodeResult{Node: node, ExitCode: 1, Stderr: "unreachable"}
}

func TestDiscover_OrdersDeterministically(t *testing.T) {
	t.Parallel()

	ft := &fakeTransport{byNode: map[string]transport.NodeResult{
		"dev":   {ExitCode: 0, Stdout: "worker|1|0|/app|node|1|0|\n"},
		"local": {ExitCode: 0, Stdout: "api|1|0|/home|sh|2|0|\n"},
	}}
	c := New(ft, []string{"local", "dev"}, nil)

	entries := c.Discover(context.Background())
	require.Len(t, entries, 2)
	assert.Equal(t, Entry{Node: "dev", Session: "worker"}, entries[0])
	assert.Equal(t, Entry{Node: "local", Session: "api"}, entries[1])
}

func TestDiscover_UnreachableNodeExcluded(t *testing.T) {
	t.Parallel()

	ft := &fakeTransport{byNode: map[string]transport.NodeResult{
		"local": {ExitCode: 0, Stdout: "api|1|0|/home|sh|2|0|\n"},
		"gpu":   {ExitCode: 125, Stderr: "timeout"},
	}}
	c := New(ft, []string{"local", "gpu"}, nil)

	entries := c.Discover(context.Background())
	require.Len(t, entries, 1)
	assert.Equal(t, "local", entries[0].Node)
}

func TestBuildPlan_NoCapNeeded(t *testing.T) {
	entries := make([]Entry, 5)
	plan := BuildPlan(entries)
	assert.Len(t, plan.Panes, 5)
	assert.Empty(t, plan.Elided)
}

func TestBuildPlan_CapsAtMaxPanes(t *testing.T) {
	entries := make([]Entry, MaxPanes+3)
	plan := BuildPlan(entries)
	assert.Len(t, plan.Panes, MaxPanes)
	assert.Len(t, plan.Elided, 3)
}

func TestComposeArgv_TagsEveryPaneWithTarget(t *testing.T) {
	plan := Plan{Panes: []Entry{
		{Node: "local", Session: "api"},
		{Node: "dev", Session: "worker"},
	}}

	cmds := ComposeArgv(plan, "/usr/local/bin/nexus")

	var targetCount int
	for _, c := range cmds {
		for _, arg := range c {
			if arg == OptionTarget {
				targetCount++
			}
		}
	}
	assert.Equal(t, 2, targetCount)
}

func TestComposeArgv_SetsNXBinAndLayout(t *testing.T) {
	plan := Plan{Panes: []Entry{{Node: "local", Session: "api"}}}
	cmds := ComposeArgv(plan, "/usr/local/bin/nexus")

	var sawEnv, sawLayout, sawBind bool
	for _, c := range cmds {
		joined := strings.Join(c, " ")
		if strings.Contains(joined, "set-environment") {
			sawEnv = true
			assert.Contains(t, joined, "/usr/local/bin/nexus")
		}
		if strings.Contains(joined, "select-layout") {
			sawLayout = true
			assert.Contains(t, joined, "tiled")
		}
		if strings.Contains(joined, "bind-key") {
			sawBind = true
		}
	}
	assert.True(t, sawEnv)
	assert.True(t, sawLayout)
	assert.True(t, sawBind)
}

func TestComposeArgv_EmptyPlanYieldsNoCommands(t *testing.T) {
	cmds := ComposeArgv(Plan{}, "/usr/local/bin/nexus")
	assert.Empty(t, cmds)
}

func TestJoinArgv_QuotesArgumentsWithSpaces(t *testing.T) {
	joined := joinArgv([]string{"multiplexer", "attach-session", "-t", "my session"})
	assert.Contains(t, joined, "'my session'")
}

func TestComposeArgv_SplitWindowCommandQuotesSessionName(t *testing.T) {
	plan := Plan{Panes: []Entry{
		{Node: "local", Session: "api"},
		{Node: "dev", Session: "my session"},
	}}

	cmds := ComposeArgv(plan, "/usr/local/bin/nexus")

	var sawQuoted bool
	for _, c := range cmds {
		joined := strings.Join(c, " ")
		if strings.Contains(joined, "split-window") {
			assert.Contains(t, joined, "'my session'")
			sawQuoted = true
		}
	}
	assert.True(t, sawQuoted)
}

// TestEnterShimCommand_TearDownPrecedesReentry is property 7: the
// tear-down must be emitted strictly before the re-entry exec.
func TestEnterShimCommand_TearDownPrecedesReentry(t *testing.T) {
	tearDown := strings.Index(EnterShimCommand, "detach-client")
	reentry := strings.Index(EnterShimCommand, "exec \"$bin\"")

	require.GreaterOrEqual(t, tearDown, 0)
	require.GreaterOrEqual(t, reentry, 0)
	assert.Less(t, tearDown, reentry)
}

func TestCompose_NoSessionsPrintsAndReturns(t *testing.T) {
	t.Parallel()

	ft := &fakeTransport{byNode: map[string]transport.NodeResult{
		"local": {ExitCode: 0, Stdout: ""},
	}}
	var execCalled bool
	c := New(ft, []string{"local"}, func(argv []string) error { execCalled = true; return nil })

	err := c.Compose(context.Background())
	require.NoError(t, err)
	assert.False(t, execCalled)
}
