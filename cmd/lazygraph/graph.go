package main

import (
	"fmt"
	"strings"

	"github.com/born-ml/lazygraph/internal/graph"
	"github.com/born-ml/lazygraph/internal/session"
	"github.com/born-ml/lazygraph/internal/tensor"
)

// demoGraph is the example graph evaluated by the demo and run commands:
//
//	sum        = y + x
//	product    = sum * x
//	difference = d - c
//	quotient   = c / product
type demoGraph struct {
	g     *graph.Graph
	nodes map[string]graph.Node
	order []string
}

func buildDemoGraph() (*demoGraph, error) {
	d := &demoGraph{g: graph.New(), nodes: make(map[string]graph.Node)}

	placeholders := []struct {
		name  string
		shape tensor.Shape
	}{
		{"x", tensor.Shape{2, 2}},
		{"y", tensor.Shape{2}},
		{"c", tensor.Shape{2, 2, 2}},
		{"d", tensor.Shape{2, 2}},
	}
	for _, p := range placeholders {
		n, err := d.g.Placeholder(p.shape, p.name)
		if err != nil {
			return nil, err
		}
		d.nodes[p.name] = n
	}

	steps := []struct {
		name  string
		build func(l, r graph.Node) (graph.Node, error)
		l, r  string
	}{
		{"sum", d.g.Add, "y", "x"},
		{"product", d.g.Mul, "sum", "x"},
		{"difference", d.g.Sub, "d", "c"},
		{"quotient", d.g.Div, "c", "product"},
	}
	for _, s := range steps {
		n, err := s.build(d.nodes[s.l], d.nodes[s.r])
		if err != nil {
			return nil, fmt.Errorf("build %s: %w", s.name, err)
		}
		d.nodes[s.name] = n
		d.order = append(d.order, s.name)
	}
	return d, nil
}

// defaultFeeds returns the demo values for x, y, c and d.
func (d *demoGraph) defaultFeeds() (session.Feeds, error) {
	x, err := tensor.FromMatrix([][]float32{{1, 2}, {3, 4}})
	if err != nil {
		return nil, err
	}
	return session.Feeds{
		d.nodes["x"]: x,
		d.nodes["y"]: tensor.FromVector([]float32{5, 6}),
		d.nodes["c"]: tensor.Ones(tensor.Shape{2, 2, 2}),
		d.nodes["d"]: tensor.Zeros(tensor.Shape{2, 2}),
	}, nil
}

// fetches resolves node names, defaulting to every computed node.
func (d *demoGraph) fetches(names []string) ([]string, []graph.Node, error) {
	if len(names) == 0 {
		names = d.order
	}
	nodes := make([]graph.Node, len(names))
	for i, name := range names {
		n, ok := d.nodes[name]
		if !ok {
			return nil, nil, fmt.Errorf("unknown node %q (have %s)", name, strings.Join(d.names(), ", "))
		}
		nodes[i] = n
	}
	return names, nodes, nil
}

func (d *demoGraph) names() []string {
	return append([]string{"x", "y", "c", "d"}, d.order...)
}
