// Package graph builds the weighted directed network used by the
// transit analyses and computes shortest-path travel times over it.
// Disconnection is a fact of the data, not an error: an unreachable
// pair has infinite distance and stays infinite through aggregation.
package graph

import (
	"container/heap"
	"fmt"
	"math"
	"sort"

	"github.com/quantpress/deskstat/pkg/deskstat/internalerr"
)

// Node is one stop of the network.
type Node struct {
	ID   string
	Name string
	Lat  float64
	Lon  float64
}

// Edge is one directed connection with a travel-time weight.
type Edge struct {
	From   string
	To     string
	Weight float64
	Route  string
}

// Builder accumulates nodes and edges. Parallel edges between the same
// ordered pair collapse to the minimum weight: two stops connected by
// several physical routes are one connection at the fastest time.
type Builder struct {
	nodes map[string]Node
	order []string
	best  map[[2]string]Edge
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		nodes: make(map[string]Node),
		best:  make(map[[2]string]Edge),
	}
}

// AddNode registers a stop. Re-adding an ID overwrites its metadata.
func (b *Builder) AddNode(n Node) {
	if _, ok := b.nodes[n.ID]; !ok {
		b.order = append(b.order, n.ID)
	}
	b.nodes[n.ID] = n
}

// AddEdge registers a directed connection. Endpoints unknown to the
// builder are created as bare nodes. Negative weights are rejected.
func (b *Builder) AddEdge(e Edge) error {
	if e.From == "" || e.To == "" {
		return fmt.Errorf("edge with empty endpoint %q->%q: %w", e.From, e.To, internalerr.ErrInvalidInput)
	}
	if e.Weight < 0 {
		return fmt.Errorf("edge %s->%s has negative weight %f: %w", e.From, e.To, e.Weight, internalerr.ErrInvalidInput)
	}
	for _, id := range []string{e.From, e.To} {
		if _, ok := b.nodes[id]; !ok {
			b.AddNode(Node{ID: id, Name: id})
		}
	}
	key := [2]string{e.From, e.To}
	if cur, ok := b.best[key]; !ok || e.Weight < cur.Weight {
		b.best[key] = e
	}
	return nil
}

// Build freezes the builder into an immutable graph.
func (b *Builder) Build() *Graph {
	g := &Graph{
		index: make(map[string]int, len(b.order)),
		nodes: make([]Node, len(b.order)),
	}
	ids := make([]string, len(b.order))
	copy(ids, b.order)
	sort.Strings(ids)
	for i, id := range ids {
		g.index[id] = i
		g.nodes[i] = b.nodes[id]
	}
	g.adj = make([][]arc, len(ids))
	for key, e := range b.best {
		u := g.index[key[0]]
		v := g.index[key[1]]
		g.adj[u] = append(g.adj[u], arc{to: v, weight: e.Weight, route: e.Route})
	}
	for _, arcs := range g.adj {
		sort.Slice(arcs, func(i, j int) bool { return arcs[i].to < arcs[j].to })
	}
	return g
}

type arc struct {
	to     int
	weight float64
	route  string
}

// Graph is an immutable weighted digraph with nodes addressed by ID.
type Graph struct {
	nodes []Node
	index map[string]int
	adj   [][]arc
}

// Len returns the node count.
func (g *Graph) Len() int { return len(g.nodes) }

// Nodes returns the nodes in ID order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Node looks a stop up by ID.
func (g *Graph) Node(id string) (Node, bool) {
	i, ok := g.index[id]
	if !ok {
		return Node{}, false
	}
	return g.nodes[i], true
}

// Succ returns the outgoing connections of a stop as edges, in
// destination-ID order.
func (g *Graph) Succ(id string) []Edge {
	i, ok := g.index[id]
	if !ok {
		return nil
	}
	out := make([]Edge, 0, len(g.adj[i]))
	for _, a := range g.adj[i] {
		out = append(out, Edge{From: id, To: g.nodes[a.to].ID, Weight: a.weight, Route: a.route})
	}
	return out
}

// OutDegree returns the number of outgoing connections of a stop.
func (g *Graph) OutDegree(id string) int {
	i, ok := g.index[id]
	if !ok {
		return 0
	}
	return len(g.adj[i])
}

// ShortestFrom computes single-source shortest travel times by
// Dijkstra's algorithm. Unreachable stops map to +Inf; the source maps
// to 0.
func (g *Graph) ShortestFrom(src string) (map[string]float64, error) {
	s, ok := g.index[src]
	if !ok {
		return nil, fmt.Errorf("shortest paths: unknown node %q: %w", src, internalerr.ErrNotFound)
	}

	dist := g.dijkstra(s)
	out := make(map[string]float64, len(dist))
	for i, d := range dist {
		out[g.nodes[i].ID] = d
	}
	return out, nil
}

// AllPairs computes the full distance matrix, one Dijkstra per source.
// Unreachable pairs are +Inf and must be filtered, never coerced to
// zero, by any downstream aggregation.
func (g *Graph) AllPairs() map[string]map[string]float64 {
	out := make(map[string]map[string]float64, len(g.nodes))
	for i, n := range g.nodes {
		dist := g.dijkstra(i)
		row := make(map[string]float64, len(dist))
		for j, d := range dist {
			row[g.nodes[j].ID] = d
		}
		out[n.ID] = row
	}
	return out
}

func (g *Graph) dijkstra(src int) []float64 {
	dist := make([]float64, len(g.nodes))
	for i := range dist {
		dist[i] = math.Inf(1)
	}
	dist[src] = 0

	pq := &nodeQueue{{node: src, dist: 0}}
	for pq.Len() > 0 {
		item := heap.Pop(pq).(queueItem)
		if item.dist > dist[item.node] {
			continue // stale entry
		}
		for _, a := range g.adj[item.node] {
			if nd := item.dist + a.weight; nd < dist[a.to] {
				dist[a.to] = nd
				heap.Push(pq, queueItem{node: a.to, dist: nd})
			}
		}
	}
	return dist
}

type queueItem struct {
	node int
	dist float64
}

type nodeQueue []queueItem

func (q nodeQueue) Len() int            { return len(q) }
func (q nodeQueue) Less(i, j int) bool  { return q[i].dist < q[j].dist }
func (q nodeQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *nodeQueue) Push(x interface{}) { *q = append(*q, x.(queueItem)) }
func (q *nodeQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
