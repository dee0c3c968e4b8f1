package analytics

import "sort"

// maxCommunityPasses bounds the local-move loop.
const maxCommunityPasses = 10

// localClustering computes each node's clustering coefficient on the
// undirected view: the fraction of its neighbour pairs that are linked.
// Nodes with fewer than two neighbours score zero.
func localClustering(g *digraph) map[string]float64 {
	coeffs := make(map[string]float64, len(g.ids))
	for _, v := range g.ids {
		neighbours := g.und[v]
		k := len(neighbours)
		if k < 2 {
			coeffs[v] = 0
			continue
		}
		links := 0
		for i := 0; i < k; i++ {
			for j := i + 1; j < k; j++ {
				if g.hasUndirectedEdge(neighbours[i], neighbours[j]) {
					links++
				}
			}
		}
		coeffs[v] = 2 * float64(links) / float64(k*(k-1))
	}
	return coeffs
}

// detectCommunities partitions the undirected view by greedy modularity
// optimisation. Every node starts in its own community, then local moves
// relocate nodes to the neighbouring community with the largest positive
// modularity gain until a full pass makes no move. Nodes are visited in
// sorted order and ties resolve to the lowest community id, so repeated
// runs produce the same partition. Labels are compacted to 0..k-1 in
// order of each community's first member.
func detectCommunities(g *digraph) map[string]int {
	nodeToComm := make(map[string]int, len(g.ids))
	for i, id := range g.ids {
		nodeToComm[id] = i
	}
	m := float64(g.undEdgeCount)
	if m == 0 {
		return compactCommunityLabels(g, nodeToComm)
	}

	degrees := make(map[string]float64, len(g.ids))
	commDegreeSum := make(map[int]float64, len(g.ids))
	for _, id := range g.ids {
		d := float64(len(g.und[id]))
		degrees[id] = d
		commDegreeSum[nodeToComm[id]] += d
	}

	for pass := 0; pass < maxCommunityPasses; pass++ {
		moved := false
		for _, id := range g.ids {
			current := nodeToComm[id]
			ki := degrees[id]

			edgesToComm := make(map[int]float64)
			for _, nb := range g.und[id] {
				edgesToComm[nodeToComm[nb]]++
			}

			candidates := make([]int, 0, len(edgesToComm))
			for comm := range edgesToComm {
				if comm != current {
					candidates = append(candidates, comm)
				}
			}
			sort.Ints(candidates)

			best := current
			bestGain := 0.0
			for _, comm := range candidates {
				gain := modularityGain(m, ki, edgesToComm[comm], edgesToComm[current],
					commDegreeSum[comm], commDegreeSum[current]-ki)
				if gain > bestGain {
					bestGain = gain
					best = comm
				}
			}
			if best != current {
				commDegreeSum[current] -= ki
				commDegreeSum[best] += ki
				nodeToComm[id] = best
				moved = true
			}
		}
		if !moved {
			break
		}
	}
	return compactCommunityLabels(g, nodeToComm)
}

// modularityGain is the change in modularity from moving a node with
// degree ki out of its current community into a target community. The
// degree sums exclude the moving node itself.
func modularityGain(m, ki, edgesToTarget, edgesToCurrent, targetDegreeSum, currentDegreeSum float64) float64 {
	return (edgesToTarget-edgesToCurrent)/m - ki*(targetDegreeSum-currentDegreeSum)/(2*m*m)
}

func compactCommunityLabels(g *digraph, nodeToComm map[string]int) map[string]int {
	compact := make(map[string]int, len(nodeToComm))
	next := 0
	relabel := make(map[int]int, len(nodeToComm))
	for _, id := range g.ids {
		raw := nodeToComm[id]
		label, found := relabel[raw]
		if !found {
			label = next
			relabel[raw] = label
			next++
		}
		compact[id] = label
	}
	return compact
}
