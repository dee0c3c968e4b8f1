package analytics

import "sort"

// pathAnalysis measures distances inside the largest strongly connected
// component, where every paper reaches every other along citation arcs.
// Citation graphs are mostly acyclic, so a component of size one is the
// common case and leaves every measure undefined.
func pathAnalysis(g *digraph) PathAnalysis {
	analysis := PathAnalysis{Eccentricity: map[string]int{}}
	core := largestStrongComponent(g)
	if len(core) < 2 {
		return analysis
	}
	inCore := make(map[string]bool, len(core))
	for _, id := range core {
		inCore[id] = true
	}

	totalDist := 0
	diameter := 0
	radius := 0
	for i, s := range core {
		dist := map[string]int{s: 0}
		queue := []string{s}
		farthest := 0
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			for _, w := range g.out[v] {
				if !inCore[w] {
					continue
				}
				if _, found := dist[w]; !found {
					dist[w] = dist[v] + 1
					totalDist += dist[w]
					if dist[w] > farthest {
						farthest = dist[w]
					}
					queue = append(queue, w)
				}
			}
		}
		analysis.Eccentricity[s] = farthest
		if farthest > diameter {
			diameter = farthest
		}
		if i == 0 || farthest < radius {
			radius = farthest
		}
	}

	n := len(core)
	average := float64(totalDist) / float64(n*(n-1))
	analysis.AverageShortestPath = &average
	analysis.Diameter = &diameter
	analysis.Radius = &radius
	return analysis
}

// largestStrongComponent runs Tarjan's algorithm over the citation arcs
// and returns the largest component's members in sorted order. Sorted
// ids and adjacency make the winner deterministic when sizes tie.
func largestStrongComponent(g *digraph) []string {
	index := 0
	indices := make(map[string]int, len(g.ids))
	lowlinks := make(map[string]int, len(g.ids))
	onStack := make(map[string]bool, len(g.ids))
	stack := make([]string, 0, len(g.ids))
	var largest []string

	var connect func(v string)
	connect = func(v string) {
		indices[v] = index
		lowlinks[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range g.out[v] {
			if _, visited := indices[w]; !visited {
				connect(w)
				if lowlinks[w] < lowlinks[v] {
					lowlinks[v] = lowlinks[w]
				}
			} else if onStack[w] && indices[w] < lowlinks[v] {
				lowlinks[v] = indices[w]
			}
		}

		if lowlinks[v] == indices[v] {
			var component []string
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				component = append(component, w)
				if w == v {
					break
				}
			}
			if len(component) > len(largest) {
				largest = component
			}
		}
	}

	for _, v := range g.ids {
		if _, visited := indices[v]; !visited {
			connect(v)
		}
	}
	sort.Strings(largest)
	return largest
}
