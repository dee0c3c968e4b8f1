package analytics

import "math"

const (
	// dampingFactor is the probability of following a citation rather
	// than jumping to a random paper.
	dampingFactor = 0.85

	maxPowerIterations   = 100
	convergenceThreshold = 1e-6
)

// pagerankScores ranks papers by citation flow under the random-surfer
// model: a paper matters when papers that matter cite it. Papers citing
// nothing spread their mass evenly across the graph. Iteration stops
// once no score moves by more than the convergence threshold.
func pagerankScores(g *digraph) map[string]float64 {
	n := len(g.ids)
	scores := make(map[string]float64, n)
	if n == 0 {
		return scores
	}
	for _, id := range g.ids {
		scores[id] = 1.0 / float64(n)
	}

	next := make(map[string]float64, n)
	base := (1 - dampingFactor) / float64(n)
	for iter := 0; iter < maxPowerIterations; iter++ {
		sinkMass := 0.0
		for _, id := range g.ids {
			if len(g.out[id]) == 0 {
				sinkMass += scores[id]
			}
		}
		sinkShare := dampingFactor * sinkMass / float64(n)

		maxDiff := 0.0
		for _, id := range g.ids {
			flow := 0.0
			for _, citer := range g.in[id] {
				flow += scores[citer] / float64(len(g.out[citer]))
			}
			updated := base + sinkShare + dampingFactor*flow
			next[id] = updated
			if diff := math.Abs(updated - scores[id]); diff > maxDiff {
				maxDiff = diff
			}
		}
		scores, next = next, scores
		if maxDiff < convergenceThreshold {
			break
		}
	}
	return scores
}

// eigenvectorCentrality scores papers by the importance of their
// neighbours in the undirected view: power iteration on the adjacency
// relation, renormalised to unit length every pass.
func eigenvectorCentrality(g *digraph) map[string]float64 {
	n := len(g.ids)
	scores := make(map[string]float64, n)
	if n == 0 {
		return scores
	}
	for _, id := range g.ids {
		scores[id] = 1.0 / float64(n)
	}

	next := make(map[string]float64, n)
	for iter := 0; iter < maxPowerIterations; iter++ {
		for _, id := range g.ids {
			next[id] = scores[id]
		}
		for _, id := range g.ids {
			for _, neighbour := range g.und[id] {
				next[neighbour] += scores[id]
			}
		}

		norm := 0.0
		for _, id := range g.ids {
			norm += next[id] * next[id]
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			norm = 1
		}
		totalDiff := 0.0
		for _, id := range g.ids {
			next[id] /= norm
			totalDiff += math.Abs(next[id] - scores[id])
		}
		scores, next = next, scores
		if totalDiff < float64(n)*convergenceThreshold {
			break
		}
	}
	return scores
}

// hitsScores runs the HITS algorithm: a hub cites good authorities and
// an authority is cited by good hubs. Both maps are normalised to sum
// to one. A graph without arcs has neither and scores zero everywhere.
func hitsScores(g *digraph) (hubs, authorities map[string]float64) {
	n := len(g.ids)
	hubs = make(map[string]float64, n)
	authorities = make(map[string]float64, n)
	for _, id := range g.ids {
		hubs[id] = 0
		authorities[id] = 0
	}
	if g.arcCount == 0 {
		return hubs, authorities
	}

	for _, id := range g.ids {
		hubs[id] = 1.0 / float64(n)
	}
	prev := make(map[string]float64, n)
	for iter := 0; iter < maxPowerIterations; iter++ {
		for _, id := range g.ids {
			prev[id] = hubs[id]
			authorities[id] = 0
		}
		for _, id := range g.ids {
			for _, cited := range g.out[id] {
				authorities[cited] += prev[id]
			}
		}
		for _, id := range g.ids {
			gained := 0.0
			for _, cited := range g.out[id] {
				gained += authorities[cited]
			}
			hubs[id] = gained
		}
		normaliseMax(g, hubs)
		normaliseMax(g, authorities)

		totalDiff := 0.0
		for _, id := range g.ids {
			totalDiff += math.Abs(hubs[id] - prev[id])
		}
		if totalDiff < convergenceThreshold {
			break
		}
	}
	normaliseSum(g, hubs)
	normaliseSum(g, authorities)
	return hubs, authorities
}

func normaliseMax(g *digraph, scores map[string]float64) {
	top := 0.0
	for _, id := range g.ids {
		if scores[id] > top {
			top = scores[id]
		}
	}
	if top == 0 {
		return
	}
	for _, id := range g.ids {
		scores[id] /= top
	}
}

func normaliseSum(g *digraph, scores map[string]float64) {
	sum := 0.0
	for _, id := range g.ids {
		sum += scores[id]
	}
	if sum == 0 {
		return
	}
	for _, id := range g.ids {
		scores[id] /= sum
	}
}
