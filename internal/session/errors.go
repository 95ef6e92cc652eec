package session

import (
	"errors"
	"fmt"

	"github.com/born-ml/lazygraph/internal/graph"
	"github.com/born-ml/lazygraph/internal/tensor"
)

// Common errors.
var (
	ErrFeedShape = errors.New("fed value does not match node shape")
	ErrNilFeed   = errors.New("nil feed value")
)

// FeedError reports a fed value whose shape differs from the node it is bound to.
type FeedError struct {
	Node graph.Node
	Want tensor.Shape
	Got  tensor.Shape
}

func (e *FeedError) Error() string {
	return fmt.Sprintf("feed %s: shape %v, want %v", e.Node, e.Got, e.Want)
}

func (e *FeedError) Unwrap() error {
	return ErrFeedShape
}
