package analytics

import (
	"math"
	"sort"

	"pubmedx/config"
)

// networkStructure assembles the structural measures that sit outside
// the centrality and clustering sections.
func networkStructure(g *digraph) NetworkStructure {
	return NetworkStructure{
		DegreeDistribution: degreeDistribution(g),
		Assortativity:      assortativity(g),
		Reciprocity:        reciprocity(g),
		Transitivity:       transitivity(g),
		NodeTypes:          classifyNodeTypes(g),
	}
}

func degreeDistribution(g *digraph) DegreeDistribution {
	n := len(g.ids)
	if n == 0 {
		return DegreeDistribution{}
	}
	degrees := make([]int, 0, n)
	total := 0
	for _, id := range g.ids {
		d := g.totalDegree(id)
		degrees = append(degrees, d)
		total += d
	}
	sort.Ints(degrees)

	dist := DegreeDistribution{Min: degrees[0], Max: degrees[n-1]}
	dist.Mean = float64(total) / float64(n)
	if n%2 == 1 {
		dist.Median = float64(degrees[n/2])
	} else {
		dist.Median = float64(degrees[n/2-1]+degrees[n/2]) / 2
	}
	variance := 0.0
	for _, d := range degrees {
		diff := float64(d) - dist.Mean
		variance += diff * diff
	}
	dist.Std = math.Sqrt(variance / float64(n))
	return dist
}

// assortativity is the Pearson correlation, taken over every arc, of
// the citing paper's out-degree against the cited paper's in-degree.
// It is undefined when either endpoint degree never varies.
func assortativity(g *digraph) *float64 {
	if g.arcCount == 0 {
		return nil
	}
	xs := make([]float64, 0, g.arcCount)
	ys := make([]float64, 0, g.arcCount)
	for _, u := range g.ids {
		for _, v := range g.out[u] {
			xs = append(xs, float64(len(g.out[u])))
			ys = append(ys, float64(len(g.in[v])))
		}
	}

	n := float64(len(xs))
	meanX, meanY := 0.0, 0.0
	for i := range xs {
		meanX += xs[i]
		meanY += ys[i]
	}
	meanX /= n
	meanY /= n

	cov, varX, varY := 0.0, 0.0, 0.0
	for i := range xs {
		dx, dy := xs[i]-meanX, ys[i]-meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return nil
	}
	r := cov / math.Sqrt(varX*varY)
	return &r
}

// reciprocity is the fraction of arcs whose reverse arc also exists,
// undefined for graphs without arcs.
func reciprocity(g *digraph) *float64 {
	if g.arcCount == 0 {
		return nil
	}
	mutual := 0
	for _, u := range g.ids {
		for _, v := range g.out[u] {
			if g.hasArc(v, u) {
				mutual++
			}
		}
	}
	r := float64(mutual) / float64(g.arcCount)
	return &r
}

// transitivity is the closed fraction of connected triples on the
// undirected view: linked neighbour pairs over all neighbour pairs.
func transitivity(g *digraph) float64 {
	closed, triples := 0, 0
	for _, v := range g.ids {
		neighbours := g.und[v]
		k := len(neighbours)
		if k < 2 {
			continue
		}
		triples += k * (k - 1) / 2
		for i := 0; i < k; i++ {
			for j := i + 1; j < k; j++ {
				if g.hasUndirectedEdge(neighbours[i], neighbours[j]) {
					closed++
				}
			}
		}
	}
	if triples == 0 {
		return 0
	}
	return float64(closed) / float64(triples)
}

// classifyNodeTypes flags hub papers, whose out-degree is well above
// the mean, and authority papers, whose in-degree is.
func classifyNodeTypes(g *digraph) NodeTypes {
	nodeTypes := NodeTypes{Hubs: []string{}, Authorities: []string{}}
	n := len(g.ids)
	if n == 0 {
		return nodeTypes
	}

	outTotal, inTotal := 0, 0
	for _, id := range g.ids {
		outTotal += len(g.out[id])
		inTotal += len(g.in[id])
	}
	nodeTypes.AvgOutDegree = float64(outTotal) / float64(n)
	nodeTypes.AvgInDegree = float64(inTotal) / float64(n)

	for _, id := range g.ids {
		if float64(len(g.out[id])) > nodeTypes.AvgOutDegree*config.HubDegreeFactor {
			nodeTypes.Hubs = append(nodeTypes.Hubs, id)
		}
		if float64(len(g.in[id])) > nodeTypes.AvgInDegree*config.HubDegreeFactor {
			nodeTypes.Authorities = append(nodeTypes.Authorities, id)
		}
	}
	return nodeTypes
}
