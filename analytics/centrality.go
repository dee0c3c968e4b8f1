package analytics

// degreeCentrality normalises each node's combined in and out degree by
// the highest degree possible in a graph of this size.
func degreeCentrality(g *digraph) map[string]float64 {
	n := len(g.ids)
	scores := make(map[string]float64, n)
	for _, id := range g.ids {
		scores[id] = 0
	}
	if n <= 1 {
		return scores
	}
	norm := 1.0 / float64(n-1)
	for _, id := range g.ids {
		scores[id] = float64(g.totalDegree(id)) * norm
	}
	return scores
}

// betweennessCentrality runs Brandes' algorithm over the citation arcs,
// accumulating shortest-path dependencies from every source. Scores are
// normalised by (n-1)(n-2); graphs with fewer than three nodes have no
// interior paths and score zero everywhere.
func betweennessCentrality(g *digraph) map[string]float64 {
	n := len(g.ids)
	scores := make(map[string]float64, n)
	for _, id := range g.ids {
		scores[id] = 0
	}
	if n < 3 {
		return scores
	}

	for _, s := range g.ids {
		stack := make([]string, 0, n)
		preds := make(map[string][]string, n)
		sigma := map[string]float64{s: 1}
		dist := map[string]int{s: 0}
		queue := []string{s}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			stack = append(stack, v)
			for _, w := range g.out[v] {
				if _, found := dist[w]; !found {
					dist[w] = dist[v] + 1
					queue = append(queue, w)
				}
				if dist[w] == dist[v]+1 {
					sigma[w] += sigma[v]
					preds[w] = append(preds[w], v)
				}
			}
		}

		delta := make(map[string]float64, len(stack))
		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			for _, v := range preds[w] {
				delta[v] += sigma[v] / sigma[w] * (1 + delta[w])
			}
			if w != s {
				scores[w] += delta[w]
			}
		}
	}

	norm := 1.0 / float64((n-1)*(n-2))
	for id := range scores {
		scores[id] *= norm
	}
	return scores
}

// closenessCentrality measures how near each node is to the papers that
// can reach it: distances run along incoming arcs. Raw closeness is
// scaled Wasserman-Faust style by the fraction of the graph that
// actually reaches the node.
func closenessCentrality(g *digraph) map[string]float64 {
	n := len(g.ids)
	scores := make(map[string]float64, n)
	for _, id := range g.ids {
		scores[id] = 0
	}
	if n <= 1 {
		return scores
	}

	for _, v := range g.ids {
		dist := map[string]int{v: 0}
		queue := []string{v}
		total := 0
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			for _, w := range g.in[u] {
				if _, found := dist[w]; !found {
					dist[w] = dist[u] + 1
					total += dist[w]
					queue = append(queue, w)
				}
			}
		}
		reached := len(dist)
		if reached <= 1 || total == 0 {
			continue
		}
		c := float64(reached-1) / float64(total)
		scores[v] = c * float64(reached-1) / float64(n-1)
	}
	return scores
}
