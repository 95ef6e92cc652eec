package session

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/born-ml/lazygraph/internal/backend/cpu"
	"github.com/born-ml/lazygraph/internal/graph"
	"github.com/born-ml/lazygraph/internal/ops"
	"github.com/born-ml/lazygraph/internal/parallel"
	"github.com/born-ml/lazygraph/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenario holds the graph used by most tests:
//
//	sum     = y + x
//	product = sum * x
//	diff    = d - c
//	quot    = c / product
type scenario struct {
	g                    *graph.Graph
	x, y, c, d           graph.Node
	sum, product         graph.Node
	difference, quotient graph.Node
}

func newScenario(t *testing.T) *scenario {
	t.Helper()
	s := &scenario{g: graph.New()}

	var err error
	s.x, err = s.g.Placeholder(tensor.Shape{2, 2}, "x")
	require.NoError(t, err)
	s.y, err = s.g.Placeholder(tensor.Shape{2}, "y")
	require.NoError(t, err)
	s.c, err = s.g.Placeholder(tensor.Shape{2, 2, 2}, "c")
	require.NoError(t, err)
	s.d, err = s.g.Placeholder(tensor.Shape{2, 2}, "d")
	require.NoError(t, err)

	s.sum, err = s.g.Add(s.y, s.x)
	require.NoError(t, err)
	s.product, err = s.g.Mul(s.sum, s.x)
	require.NoError(t, err)
	s.difference, err = s.g.Sub(s.d, s.c)
	require.NoError(t, err)
	s.quotient, err = s.g.Div(s.c, s.product)
	require.NoError(t, err)
	return s
}

func (s *scenario) feeds(t *testing.T) Feeds {
	t.Helper()
	x, err := tensor.FromMatrix([][]float32{{1, 2}, {3, 4}})
	require.NoError(t, err)
	return Feeds{
		s.x: x,
		s.y: tensor.FromVector([]float32{5, 6}),
		s.c: tensor.Ones(tensor.Shape{2, 2, 2}),
		s.d: tensor.Zeros(tensor.Shape{2, 2}),
	}
}

func newTestSession(opts ...Option) *Session {
	base := []Option{
		WithBackend(cpu.New(cpu.WithParallel(parallel.Sequential()))),
		WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))),
	}
	return New(append(base, opts...)...)
}

func mustMatrix(t *testing.T, rows [][]float32) *tensor.Tensor {
	t.Helper()
	m, err := tensor.FromMatrix(rows)
	require.NoError(t, err)
	return m
}

func TestRunSumAndProduct(t *testing.T) {
	sc := newScenario(t)

	out, err := newTestSession().Run(sc.feeds(t), []graph.Node{sc.sum, sc.product})
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.True(t, mustMatrix(t, [][]float32{{6, 8}, {8, 10}}).Equal(out[0]), "sum = %v", out[0])
	assert.True(t, mustMatrix(t, [][]float32{{6, 16}, {24, 40}}).Equal(out[1]), "product = %v", out[1])
}

func TestRunReversedDifference(t *testing.T) {
	sc := newScenario(t)
	require.True(t, sc.difference.Op().Reversed)

	out, err := newTestSession().Run(sc.feeds(t), []graph.Node{sc.difference})
	require.NoError(t, err)

	assert.Equal(t, tensor.Shape{2, 2, 2}, out[0].Shape())
	assert.True(t, tensor.Full(tensor.Shape{2, 2, 2}, -1).Equal(out[0]), "difference = %v", out[0])
}

func TestRunQuotient(t *testing.T) {
	sc := newScenario(t)

	out, err := newTestSession().Run(sc.feeds(t), []graph.Node{sc.quotient})
	require.NoError(t, err)

	plane := []float32{1.0 / 6, 1.0 / 16, 1.0 / 24, 1.0 / 40}
	want, err := tensor.FromSlice(append(append([]float32{}, plane...), plane...), tensor.Shape{2, 2, 2})
	require.NoError(t, err)
	assert.True(t, want.AllClose(out[0], 1e-6), "quotient = %v", out[0])
}

func TestRunFetchOrder(t *testing.T) {
	sc := newScenario(t)

	fetches := []graph.Node{sc.product, sc.difference, sc.sum, sc.product}
	out, err := newTestSession().Run(sc.feeds(t), fetches)
	require.NoError(t, err)
	require.Len(t, out, len(fetches))

	for i, n := range fetches {
		assert.Equal(t, n.Shape(), out[i].Shape(), "fetch %d", i)
	}
	assert.Same(t, out[0], out[3], "repeated fetch returns the memoized value")
}

func TestRunDeterministic(t *testing.T) {
	sc := newScenario(t)
	fetches := []graph.Node{sc.product, sc.difference, sc.quotient}

	first, err := newTestSession().Run(sc.feeds(t), fetches)
	require.NoError(t, err)

	s := newTestSession()
	for i := 0; i < 3; i++ {
		again, err := s.Run(sc.feeds(t), fetches)
		require.NoError(t, err)
		for j := range fetches {
			assert.True(t, first[j].Equal(again[j]), "run %d fetch %d", i, j)
		}
	}
}

func TestRunResetsBetweenRuns(t *testing.T) {
	sc := newScenario(t)
	s := newTestSession()

	_, err := s.Run(sc.feeds(t), []graph.Node{sc.sum})
	require.NoError(t, err)

	feeds := sc.feeds(t)
	feeds[sc.y] = tensor.FromVector([]float32{0, 0})
	out, err := s.Run(feeds, []graph.Node{sc.sum})
	require.NoError(t, err)
	assert.True(t, feeds[sc.x].Equal(out[0]), "stale memo reused: %v", out[0])
}

// countingRegistry wraps every kernel of ops.NewRegistry with a call counter.
func countingRegistry(calls map[ops.Kind]int) *ops.Registry {
	r := ops.NewRegistry()
	for _, kind := range r.SupportedOps() {
		e, _ := r.Get(kind)
		wrap := func(k ops.Kernel) ops.Kernel {
			if k == nil {
				return nil
			}
			return func(b ops.Backend, operands []*tensor.Tensor) (*tensor.Tensor, error) {
				calls[kind]++
				return k(b, operands)
			}
		}
		r.Register(ops.Entry{Kind: kind, Forward: wrap(e.Forward), Reversed: wrap(e.Reversed)})
	}
	return r
}

func TestRunSingleEvaluation(t *testing.T) {
	g := graph.New()
	x, err := g.Placeholder(tensor.Shape{3}, "x")
	require.NoError(t, err)

	// a is shared by b and c, and b again by c: a diamond on top of a diamond.
	a, err := g.Add(x, x)
	require.NoError(t, err)
	b, err := g.Mul(a, a)
	require.NoError(t, err)
	c, err := g.Add(a, b)
	require.NoError(t, err)

	calls := make(map[ops.Kind]int)
	s := newTestSession(WithRegistry(countingRegistry(calls)))

	out, err := s.Run(Feeds{x: tensor.FromVector([]float32{1, 2, 3})}, []graph.Node{c, b, a})
	require.NoError(t, err)

	// a = 2x, b = 4x^2, c = 2x + 4x^2
	assert.Equal(t, []float32{6, 20, 42}, out[0].Data())
	assert.Equal(t, []float32{4, 16, 36}, out[1].Data())
	assert.Equal(t, []float32{2, 4, 6}, out[2].Data())

	assert.Equal(t, 2, calls[ops.Add])
	assert.Equal(t, 1, calls[ops.Mul])
	assert.Equal(t, []graph.Node{a, b, c}, s.Trace())

	for _, n := range []graph.Node{a, b, c} {
		assert.Equal(t, Computed, s.State(n))
	}
	assert.Equal(t, Fed, s.State(x))
}

func TestRunFeedShortCircuit(t *testing.T) {
	sc := newScenario(t)
	calls := make(map[ops.Kind]int)
	s := newTestSession(WithRegistry(countingRegistry(calls)))

	x := mustMatrix(t, [][]float32{{1, 2}, {3, 4}})
	feeds := Feeds{
		sc.x:   x,
		sc.sum: tensor.Ones(tensor.Shape{2, 2}),
	}

	out, err := s.Run(feeds, []graph.Node{sc.product})
	require.NoError(t, err)
	assert.True(t, x.Equal(out[0]))

	assert.Zero(t, calls[ops.Add], "fed sum must not be computed")
	assert.Zero(t, calls[ops.Placeholder])
	assert.Equal(t, []graph.Node{sc.product}, s.Trace())
	assert.Equal(t, Fed, s.State(sc.sum))
	assert.Equal(t, Unvisited, s.State(sc.y), "y sits behind a fed node")
}

func TestRunFetchFedNode(t *testing.T) {
	sc := newScenario(t)
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	feeds := sc.feeds(t)
	out, err := newTestSession(WithLogger(logger)).Run(feeds, []graph.Node{sc.x})
	require.NoError(t, err)

	assert.Same(t, feeds[sc.x], out[0])
	assert.Contains(t, buf.String(), "fetching an already-fed node")
	assert.Contains(t, buf.String(), "x#0[2 2]")
	assert.Contains(t, buf.String(), "run finished")
}

func TestRunUnfedPlaceholder(t *testing.T) {
	sc := newScenario(t)
	feeds := sc.feeds(t)
	delete(feeds, sc.y)

	s := newTestSession()
	out, err := s.Run(feeds, []graph.Node{sc.difference, sc.product})
	require.Error(t, err)
	assert.Nil(t, out, "no partial results")
	assert.True(t, errors.Is(err, ops.ErrUnfedPlaceholder))
	assert.Contains(t, err.Error(), "y#1")
}

func TestRunKernelFailure(t *testing.T) {
	sc := newScenario(t)
	boom := errors.New("boom")

	r := ops.NewRegistry()
	r.Register(ops.Entry{Kind: ops.Mul, Forward: func(ops.Backend, []*tensor.Tensor) (*tensor.Tensor, error) {
		return nil, boom
	}})

	_, err := newTestSession(WithRegistry(r)).Run(sc.feeds(t), []graph.Node{sc.product})
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
	assert.Contains(t, err.Error(), "mul#")
}

func TestRunFeedValidation(t *testing.T) {
	sc := newScenario(t)

	t.Run("shape mismatch", func(t *testing.T) {
		feeds := sc.feeds(t)
		feeds[sc.y] = tensor.FromVector([]float32{1})

		_, err := newTestSession().Run(feeds, []graph.Node{sc.sum})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrFeedShape))

		var feedErr *FeedError
		require.ErrorAs(t, err, &feedErr)
		assert.Equal(t, sc.y, feedErr.Node)
		assert.Equal(t, tensor.Shape{2}, feedErr.Want)
		assert.Equal(t, tensor.Shape{1}, feedErr.Got)
	})

	t.Run("disabled", func(t *testing.T) {
		feeds := sc.feeds(t)
		feeds[sc.y] = tensor.FromVector([]float32{1})

		out, err := newTestSession(WithFeedValidation(false)).Run(feeds, []graph.Node{sc.sum})
		require.NoError(t, err)
		assert.True(t, mustMatrix(t, [][]float32{{2, 3}, {4, 5}}).Equal(out[0]))
	})

	t.Run("nil value", func(t *testing.T) {
		feeds := sc.feeds(t)
		feeds[sc.y] = nil

		_, err := newTestSession().Run(feeds, []graph.Node{sc.sum})
		assert.True(t, errors.Is(err, ErrNilFeed))
	})

	t.Run("invalid node", func(t *testing.T) {
		feeds := sc.feeds(t)
		feeds[graph.Node{}] = tensor.Scalar(1)

		_, err := newTestSession().Run(feeds, []graph.Node{sc.sum})
		assert.True(t, errors.Is(err, graph.ErrInvalidNode))
	})
}

func TestRunInvalidFetch(t *testing.T) {
	sc := newScenario(t)

	_, err := newTestSession().Run(sc.feeds(t), []graph.Node{sc.sum, {}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, graph.ErrInvalidNode))
	assert.Contains(t, err.Error(), "fetch 1")
}

func TestRunDot(t *testing.T) {
	g := graph.New()
	a, err := g.Placeholder(tensor.Shape{2, 3}, "a")
	require.NoError(t, err)
	b, err := g.Placeholder(tensor.Shape{3, 2}, "b")
	require.NoError(t, err)
	ab, err := g.Dot(a, b)
	require.NoError(t, err)

	feeds := Feeds{
		a: mustMatrix(t, [][]float32{{1, 2, 3}, {4, 5, 6}}),
		b: mustMatrix(t, [][]float32{{7, 8}, {9, 10}, {11, 12}}),
	}
	out, err := newTestSession().Run(feeds, []graph.Node{ab})
	require.NoError(t, err)
	assert.True(t, mustMatrix(t, [][]float32{{58, 64}, {139, 154}}).Equal(out[0]), "a.b = %v", out[0])
}

func TestRunNoFetches(t *testing.T) {
	sc := newScenario(t)
	out, err := newTestSession().Run(sc.feeds(t), nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "pending", Pending.String())
	assert.Equal(t, "fed", Fed.String())
	assert.Equal(t, "state(42)", State(42).String())
}
