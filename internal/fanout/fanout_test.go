package fanout

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexuscli/nexus/internal/transport"
)

// fakeTransport is a hand-written test double recording concurrency,
// with one delay shared by every call and a per-node failure override.
type fakeTransport struct {
	mu         sync.Mutex
	inFlight   int
	maxInFlight int
	delay      time.Duration
	fail       map[string]bool
}

func (f *fakeTransport) Run(ctx context.Context, node string, argv []string, timeout time.Duration) transport.NodeResult {
	f.mu.Lock()
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	f.mu.Unlock()

	select {
	case <-time.After(f.delay):
	case <-ctx.Done():
		f.mu.Lock()
		f.inFlight--
		f.mu.Unlock()
		return transport.NodeResult{Node: node, Stderr: "cancelled", ExitCode: 124}
	}

	f.mu.Lock()
	f.inFlight--
	f.mu.Unlock()

	if f.fail != nil && f.fail[node] {
		return transport.NodeResult{Node: node, Stderr: "boom", ExitCode: 1}
	}
	return transport.NodeResult{Node: node, Stdout: "ok", ExitCode: 0}
}

func TestRun_TotalResultMap(t *testing.T) {
	t.Parallel()

	nodes := []string{"a", "b", "c", "d"}
	ft := &fakeTransport{delay: time.Millisecond}

	results := Run(context.Background(), ft, nodes, []string{"echo"}, time.Second, 2)

	require.Len(t, results, len(nodes))
	for _, n := range nodes {
		res, ok := results[n]
		require.True(t, ok, "missing node %s", n)
		assert.True(t, res.Succeeded())
	}
}

func TestRun_BoundedParallelism(t *testing.T) {
	t.Parallel()

	nodes := make([]string, 10)
	for i := range nodes {
		nodes[i] = string(rune('a' + i))
	}
	ft := &fakeTransport{delay: 20 * time.Millisecond}

	Run(context.Background(), ft, nodes, []string{"echo"}, time.Second, 3)

	assert.LessOrEqual(t, ft.maxInFlight, 3)
}

func TestRun_DefaultMaxParallelWhenNonPositive(t *testing.T) {
	t.Parallel()

	nodes := []string{"a", "b"}
	ft := &fakeTransport{delay: time.Millisecond}

	results := Run(context.Background(), ft, nodes, []string{"echo"}, time.Second, 0)
	assert.Len(t, results, 2)
}

func TestRun_NodeFailureDoesNotAbortOthers(t *testing.T) {
	t.Parallel()

	nodes := []string{"good", "bad"}
	ft := &fakeTransport{delay: time.Millisecond, fail: map[string]bool{"bad": true}}

	results := Run(context.Background(), ft, nodes, []string{"echo"}, time.Second, 2)

	assert.True(t, results["good"].Succeeded())
	assert.False(t, results["bad"].Succeeded())
}

func TestRun_CancellationYieldsResultForEveryNode(t *testing.T) {
	t.Parallel()

	nodes := []string{"a", "b", "c"}
	ft := &fakeTransport{delay: time.Second}

	ctx, cancel := context.WithCancel(context.Background())
	var once int32
	go func() {
		if atomic.CompareAndSwapInt32(&once, 0, 1) {
			time.Sleep(5 * time.Millisecond)
			cancel()
		}
	}()

	results := Run(ctx, ft, nodes, []string{"echo"}, time.Second, 1)

	require.Len(t, results, len(nodes))
	for _, n := range nodes {
		assert.False(t, results[n].Succeeded())
	}
}
