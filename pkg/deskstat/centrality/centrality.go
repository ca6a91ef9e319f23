// Package centrality computes node-importance measures over the transit
// graph: shortest-path betweenness and a cumulative-access "reach"
// measure that rewards stops reaching many stops quickly rather than
// many stops eventually.
package centrality

import (
	"math"
	"sort"

	"github.com/quantpress/deskstat/pkg/deskstat/graph"
)

// BetweennessRaw computes unnormalized shortest-path betweenness using
// Brandes' accumulation. When several shortest paths of equal length
// connect a pair, credit is split equally among them.
func BetweennessRaw(g *graph.Graph) map[string]float64 {
	nodes := g.Nodes()
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}

	score := make(map[string]float64, len(ids))
	for _, id := range ids {
		score[id] = 0
	}

	for _, src := range ids {
		sigma, preds, order := shortestPathDAG(g, src, ids)

		delta := make(map[string]float64, len(ids))
		// Accumulate dependencies in reverse finish order.
		for i := len(order) - 1; i >= 0; i-- {
			w := order[i]
			for _, v := range preds[w] {
				delta[v] += sigma[v] / sigma[w] * (1 + delta[w])
			}
			if w != src {
				score[w] += delta[w]
			}
		}
	}
	return score
}

// Betweenness is BetweennessRaw scaled so the largest value is 1. A
// graph where no node lies between any pair scores 0 everywhere.
func Betweenness(g *graph.Graph) map[string]float64 {
	return normalize(BetweennessRaw(g))
}

// shortestPathDAG runs a counting Dijkstra from src: number of shortest
// paths per node, shortest-path predecessors, and nodes in
// non-decreasing settle order.
func shortestPathDAG(g *graph.Graph, src string, ids []string) (sigma map[string]float64, preds map[string][]string, order []string) {
	dist := make(map[string]float64, len(ids))
	sigma = make(map[string]float64, len(ids))
	preds = make(map[string][]string, len(ids))
	for _, id := range ids {
		dist[id] = math.Inf(1)
	}
	dist[src] = 0
	sigma[src] = 1

	settled := make(map[string]bool, len(ids))
	for {
		// Smallest unsettled finite distance; ID order for determinism.
		cur := ""
		best := math.Inf(1)
		for _, id := range ids {
			if !settled[id] && dist[id] < best {
				cur, best = id, dist[id]
			}
		}
		if cur == "" {
			break
		}
		settled[cur] = true
		order = append(order, cur)

		for _, e := range g.Succ(cur) {
			nd := dist[cur] + e.Weight
			switch {
			case nd < dist[e.To]:
				dist[e.To] = nd
				sigma[e.To] = sigma[cur]
				preds[e.To] = []string{cur}
			case nd == dist[e.To]:
				sigma[e.To] += sigma[cur]
				preds[e.To] = append(preds[e.To], cur)
			}
		}
	}
	return sigma, preds, order
}

// ReachRaw computes, for every node, the area under its cumulative
// reachable-count curve n(t) for t in [0, tmax]: n(t) is the number of
// other nodes reachable within travel time t. Integration is
// trapezoidal over the observed distinct travel times, with n(0) = 0
// and the curve held at its last value out to tmax. Stops unreachable
// within tmax contribute nothing.
func ReachRaw(g *graph.Graph, tmax float64) map[string]float64 {
	out := make(map[string]float64, g.Len())
	for _, n := range g.Nodes() {
		dist, err := g.ShortestFrom(n.ID)
		if err != nil {
			continue // cannot happen for IDs taken from the graph
		}

		var times []float64
		for id, d := range dist {
			if id == n.ID {
				continue
			}
			if d > 0 && d <= tmax && !math.IsInf(d, 1) {
				times = append(times, d)
			}
		}
		sort.Float64s(times)

		// Points of the step function, deduplicated.
		type point struct{ t, n float64 }
		points := []point{{0, 0}}
		count := 0.0
		for i, t := range times {
			count++
			if i+1 < len(times) && times[i+1] == t {
				continue
			}
			points = append(points, point{t, count})
		}
		if last := points[len(points)-1]; last.t < tmax {
			points = append(points, point{tmax, last.n})
		}

		area := 0.0
		for i := 1; i < len(points); i++ {
			dt := points[i].t - points[i-1].t
			area += dt * (points[i-1].n + points[i].n) / 2
		}
		out[n.ID] = area
	}
	return out
}

// Reach is ReachRaw scaled so the largest value is 1.
func Reach(g *graph.Graph, tmax float64) map[string]float64 {
	return normalize(ReachRaw(g, tmax))
}

func normalize(scores map[string]float64) map[string]float64 {
	max := 0.0
	for _, v := range scores {
		if v > max {
			max = v
		}
	}
	out := make(map[string]float64, len(scores))
	for id, v := range scores {
		if max > 0 {
			out[id] = v / max
		} else {
			out[id] = 0
		}
	}
	return out
}
