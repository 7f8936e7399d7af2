// Package resolver turns a bare or qualified session name into a
// concrete (node, session) pair, fanning out to the fleet and
// disambiguating collisions via the interactive fuzzy-finder or a
// non-interactive error.
package resolver

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/nexuscli/nexus/internal/fanout"
	"github.com/nexuscli/nexus/internal/fuzzy"
	"github.com/nexuscli/nexus/internal/logging"
	"github.com/nexuscli/nexus/internal/nexuserrors"
	"github.com/nexuscli/nexus/internal/session"
	"github.com/nexuscli/nexus/internal/transport"
)

// Match is one (node, session-name) pair found while scanning the
// fleet for a bare name.
type Match struct {
	Node    string
	Session string
}

// Qualified renders the match in canonical "node/session" form.
func (m Match) Qualified() string {
	return m.Node + "/" + m.Session
}

// IsTTY reports whether stdin is attached to an interactive terminal.
// Resolver depends on this seam rather than calling golang.org/x/term
// directly so tests can force either branch.
type IsTTY func() bool

// Resolver resolves names against a configured fleet of nodes.
type Resolver struct {
	Transport   transport.Transport
	Nodes       []string
	DefaultNode string
	MaxParallel int
	Timeout     time.Duration
	Finder      fuzzy.Finder
	IsTTY       IsTTY
}

// New builds a Resolver with the given collaborators.
func New(t transport.Transport, nodes []string, defaultNode string, finder fuzzy.Finder, isTTY IsTTY) *Resolver {
	return &Resolver{
		Transport:   t,
		Nodes:       nodes,
		DefaultNode: defaultNode,
		MaxParallel: fanout.DefaultMaxParallel,
		Timeout:     transport.DefaultConnectTimeout,
		Finder:      finder,
		IsTTY:       isTTY,
	}
}

// Resolve turns name into a concrete match. name may be bare ("api") or
// qualified ("dev/api"); a qualified name bypasses fan-out entirely and
// validation of node existence is left to the caller.
func (r *Resolver) Resolve(ctx context.Context, name string) (Match, error) {
	if left, right, ok := splitQualified(name); ok {
		return Match{Node: left, Session: right}, nil
	}

	matches, err := r.scan(ctx, name)
	if err != nil {
		return Match{}, err
	}

	switch len(matches) {
	case 0:
		return Match{}, nexuserrors.NewSessionNotFound("session \""+name+"\" not found on any node", nil)
	case 1:
		return matches[0], nil
	default:
		return r.disambiguate(ctx, matches)
	}
}

// scan fans the "list" operation out across every configured node,
// parses each node's response, and collects every record whose name
// matches. Unreachable or unparsable nodes are logged as soft warnings
// and excluded, never aborting the whole scan.
func (r *Resolver) scan(ctx context.Context, name string) ([]Match, error) {
	results := fanout.Run(ctx, r.Transport, r.Nodes, session.ListArgv(), r.Timeout, r.MaxParallel)

	var matches []Match
	for _, node := range r.Nodes {
		res, ok := results[node]
		if !ok || !res.Succeeded() {
			logging.Warnw("node unreachable during resolve", "node", node)
			continue
		}

		recs, err := session.ParseListOutput(res.Stdout)
		if err != nil {
			logging.Warnw("node returned unparsable list output", "node", node, "error", err)
			continue
		}

		for _, rec := range recs {
			if rec.Name == name {
				matches = append(matches, Match{Node: node, Session: rec.Name})
			}
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Node != matches[j].Node {
			return matches[i].Node < matches[j].Node
		}
		return matches[i].Session < matches[j].Session
	})

	return matches, nil
}

// disambiguate resolves a collision either through the interactive
// fuzzy-finder (stdin is a tty) or, non-interactively, by raising
// AmbiguousSession listing every match.
func (r *Resolver) disambiguate(ctx context.Context, matches []Match) (Match, error) {
	if r.IsTTY == nil || !r.IsTTY() {
		return Match{}, nexuserrors.NewAmbiguousSession(
			"Ambiguous session. Matches: "+joinQualified(matches)+".", nil)
	}

	candidates := orderWithDefaultFirst(matches, r.DefaultNode)
	lines := make([]string, len(candidates))
	for i, m := range candidates {
		lines[i] = m.Qualified()
	}

	selected, err := r.Finder.Select(ctx, lines)
	if err != nil {
		return Match{}, nexuserrors.NewSessionNotFound("selection cancelled", err)
	}

	left, right, ok := splitQualified(selected)
	if !ok {
		return Match{}, nexuserrors.NewInternal("fuzzy-finder returned an unqualified selection: "+selected, nil)
	}
	return Match{Node: left, Session: right}, nil
}

// orderWithDefaultFirst returns matches with the entry whose node equals
// defaultNode moved to the front, preserving relative order otherwise.
func orderWithDefaultFirst(matches []Match, defaultNode string) []Match {
	ordered := make([]Match, 0, len(matches))
	var rest []Match
	for _, m := range matches {
		if m.Node == defaultNode {
			ordered = append(ordered, m)
		} else {
			rest = append(rest, m)
		}
	}
	return append(ordered, rest...)
}

func joinQualified(matches []Match) string {
	parts := make([]string, len(matches))
	for i, m := range matches {
		parts[i] = m.Qualified()
	}
	return strings.Join(parts, ", ")
}

// splitQualified splits name on the first '/'. ok is false when name
// contains no '/'.
func splitQualified(name string) (node, session string, ok bool) {
	idx := strings.Index(name, "/")
	if idx < 0 {
		return "", "", false
	}
	return name[:idx], name[idx+1:], true
}
