// Package session evaluates graph nodes on demand.
//
// A Session binds concrete tensors to nodes (feeds), then computes the
// requested nodes (fetches) by walking their predecessors depth-first.
// Every node is evaluated at most once per Run.
package session

import (
	"fmt"
	"log/slog"

	"github.com/born-ml/lazygraph/internal/backend/cpu"
	"github.com/born-ml/lazygraph/internal/graph"
	"github.com/born-ml/lazygraph/internal/ops"
	"github.com/born-ml/lazygraph/internal/tensor"
)

// Feeds binds concrete values to nodes for a single Run.
type Feeds map[graph.Node]*tensor.Tensor

// State is a node's progress during a Run.
type State int

// Node states.
const (
	Unvisited State = iota
	Pending
	Ready
	Computed
	Fed
)

var stateNames = [...]string{
	Unvisited: "unvisited",
	Pending:   "pending",
	Ready:     "ready",
	Computed:  "computed",
	Fed:       "fed",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Session evaluates fetched nodes.
//
// A Session is not safe for concurrent Run calls. Use one Session per
// goroutine, or RunBatch.
type Session struct {
	backend  ops.Backend
	registry *ops.Registry
	logger   *slog.Logger
	validate bool

	// Per-run state, reset by every Run.
	feeds  Feeds
	memo   map[graph.Node]*tensor.Tensor
	states map[graph.Node]State
	stack  []graph.Node
	trace  []graph.Node
}

// New creates a Session on the CPU backend with the built-in kernels.
func New(opts ...Option) *Session {
	s := &Session{
		backend:  cpu.New(),
		registry: ops.Default(),
		logger:   slog.Default().With("component", "session"),
		validate: true,
		feeds:    Feeds{},
		memo:     make(map[graph.Node]*tensor.Tensor),
		states:   make(map[graph.Node]State),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run replaces the session's feeds with feeds and returns the value of
// every fetch, in fetch order.
//
// Fetching a fed node returns the fed value. Any evaluation failure aborts
// the run and no results are returned.
func (s *Session) Run(feeds Feeds, fetches []graph.Node) ([]*tensor.Tensor, error) {
	if err := s.reset(feeds); err != nil {
		return nil, err
	}

	results := make([]*tensor.Tensor, len(fetches))
	for i, fetch := range fetches {
		if !fetch.Valid() {
			return nil, fmt.Errorf("fetch %d: %w", i, graph.ErrInvalidNode)
		}

		if v, ok := s.feeds[fetch]; ok {
			s.logger.Warn("fetching an already-fed node", "node", fetch.String())
			results[i] = v
			continue
		}

		if err := s.resolve(fetch); err != nil {
			return nil, err
		}
		results[i] = s.memo[fetch]
	}

	s.logger.Debug("run finished", "fetches", len(fetches), "evaluated", len(s.trace))
	return results, nil
}

// Trace returns the nodes evaluated by the last Run, in evaluation order.
func (s *Session) Trace() []graph.Node {
	out := make([]graph.Node, len(s.trace))
	copy(out, s.trace)
	return out
}

// State returns n's state at the end of the last Run.
func (s *Session) State(n graph.Node) State {
	if _, ok := s.feeds[n]; ok {
		return Fed
	}
	return s.states[n]
}

func (s *Session) reset(feeds Feeds) error {
	next := make(Feeds, len(feeds))
	for n, v := range feeds {
		if !n.Valid() {
			return fmt.Errorf("feed: %w", graph.ErrInvalidNode)
		}
		if v == nil {
			return fmt.Errorf("feed %s: %w", n, ErrNilFeed)
		}
		if s.validate && !v.Shape().Equal(n.Shape()) {
			return &FeedError{Node: n, Want: n.Shape(), Got: v.Shape()}
		}
		next[n] = v
	}

	s.feeds = next
	clear(s.memo)
	clear(s.states)
	s.stack = s.stack[:0]
	s.trace = s.trace[:0]
	return nil
}

func (s *Session) resolved(n graph.Node) bool {
	if _, ok := s.feeds[n]; ok {
		return true
	}
	_, ok := s.memo[n]
	return ok
}

func (s *Session) value(n graph.Node) (*tensor.Tensor, bool) {
	if v, ok := s.feeds[n]; ok {
		return v, true
	}
	v, ok := s.memo[n]
	return v, ok
}

// resolve computes target and every unresolved node it depends on.
//
// A node first seen at the top of the stack turns Pending and pushes its
// unresolved predecessors. Everything pushed above a Pending node is popped
// only once resolved, so seeing it at the top again means it is Ready.
// Duplicate entries of a shared predecessor are skipped once resolved.
func (s *Session) resolve(target graph.Node) error {
	if s.resolved(target) {
		return nil
	}

	s.stack = append(s.stack[:0], target)
	for len(s.stack) > 0 {
		top := s.stack[len(s.stack)-1]
		if s.resolved(top) {
			s.stack = s.stack[:len(s.stack)-1]
			continue
		}

		switch s.states[top] {
		case Unvisited:
			s.states[top] = Pending
			for _, p := range top.Preds() {
				if !s.resolved(p) {
					s.stack = append(s.stack, p)
				}
			}
		case Pending:
			s.stack = s.stack[:len(s.stack)-1]
			s.states[top] = Ready
			if err := s.evaluate(top); err != nil {
				s.stack = s.stack[:0]
				return err
			}
		default:
			return fmt.Errorf("evaluate %s: unexpected state %s", top, s.states[top])
		}
	}
	return nil
}

func (s *Session) evaluate(n graph.Node) error {
	preds := n.Preds()
	operands := make([]*tensor.Tensor, len(preds))
	for i, p := range preds {
		v, ok := s.value(p)
		if !ok {
			return fmt.Errorf("evaluate %s: operand %s has no value", n, p)
		}
		operands[i] = v
	}

	out, err := s.registry.Eval(s.backend, n.Op(), operands)
	if err != nil {
		return fmt.Errorf("evaluate %s: %w", n, err)
	}

	s.memo[n] = out
	s.states[n] = Computed
	s.trace = append(s.trace, n)
	return nil
}
