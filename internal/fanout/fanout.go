// Package fanout dispatches one command vector against many nodes
// concurrently, bounded by a configured parallelism limit, collecting
// a total per-node result map.
package fanout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/nexuscli/nexus/internal/logging"
	"github.com/nexuscli/nexus/internal/transport"
)

// DefaultMaxParallel is the semaphore width when the caller does not
// specify one.
const DefaultMaxParallel = 16

// Run dispatches argv against every node in nodes, at most maxParallel
// concurrently, and returns a map with exactly one entry per requested
// node. maxParallel <= 0 falls back to DefaultMaxParallel. A cancelled
// ctx aborts in-flight node tasks cooperatively; nodes that never got a
// goroutine scheduled still receive a synthesized cancellation result,
// so the returned map is always total (one entry per requested node,
// regardless of duplicates -- a duplicate node name overwrites its own
// slot, which is harmless since every call targets the same argv).
func Run(ctx context.Context, t transport.Transport, nodes []string, argv []string, timeout time.Duration, maxParallel int) map[string]transport.NodeResult {
	if maxParallel <= 0 {
		maxParallel = DefaultMaxParallel
	}

	callID := uuid.NewString()
	results := make(map[string]transport.NodeResult, len(nodes))

	logging.Debugw("fan-out dispatched", "call_id", callID, "nodes", len(nodes), "max_parallel", maxParallel)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)

	// Each goroutine writes only to its own index of slots; the results
	// map is filled from slots after every goroutine has returned, so no
	// mutex is needed.
	slots := make([]transport.NodeResult, len(nodes))
	for i, node := range nodes {
		i, node := i, node
		g.Go(func() error {
			if gctx.Err() != nil {
				slots[i] = cancelledResult(node, gctx.Err())
				return nil
			}
			slots[i] = t.Run(gctx, node, argv, timeout)
			return nil
		})
	}

	_ = g.Wait()

	for i, node := range nodes {
		results[node] = slots[i]
	}

	logging.Debugw("fan-out complete", "call_id", callID, "nodes", len(nodes))
	return results
}

// cancelledResult synthesizes a NodeResult for a node whose task never
// ran, or was aborted, because the caller's context was cancelled.
func cancelledResult(node string, err error) transport.NodeResult {
	return transport.NodeResult{
		Node:     node,
		Stderr:   fmt.Sprintf("cancelled: %v", err),
		ExitCode: 124,
	}
}
