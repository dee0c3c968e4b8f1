package analytics

import (
	"testing"

	"pubmedx/types"
)

func TestLocalClusteringOnTriangle(t *testing.T) {
	nodes := nodeList("1", "2", "3")
	edges := []types.Edge{refEdge("1", "2"), refEdge("2", "3"), refEdge("1", "3")}

	clustering := Analyze(nodes, edges).ClusteringAnalysis

	for _, id := range []string{"1", "2", "3"} {
		if !almostEqual(clustering.LocalClustering[id], 1.0) {
			t.Fatalf("expected clustering 1.0 for %s, got %f", id, clustering.LocalClustering[id])
		}
	}
	if !almostEqual(clustering.GlobalClustering, 1.0) {
		t.Fatalf("expected global clustering 1.0, got %f", clustering.GlobalClustering)
	}
}

func TestLocalClusteringZeroForSparseNodes(t *testing.T) {
	nodes := nodeList("1", "2", "3")
	edges := []types.Edge{refEdge("1", "2"), refEdge("2", "3")}

	clustering := Analyze(nodes, edges).ClusteringAnalysis

	for _, id := range []string{"1", "2", "3"} {
		if clustering.LocalClustering[id] != 0 {
			t.Fatalf("expected zero clustering on a path, got %f for %s", clustering.LocalClustering[id], id)
		}
	}
}

func TestDetectCommunitiesWithoutEdges(t *testing.T) {
	clustering := Analyze(nodeList("1", "2", "3"), nil).ClusteringAnalysis

	if clustering.NumberOfCommunities != 3 {
		t.Fatalf("expected one singleton community per node, got %d", clustering.NumberOfCommunities)
	}
	for comm, size := range clustering.CommunitySizes {
		if size != 1 {
			t.Fatalf("expected community %d to have one member, got %d", comm, size)
		}
	}
}

func TestDetectCommunitiesSplitsTwoClusters(t *testing.T) {
	// Two triangles joined by a single bridge edge between 3 and 4.
	nodes := nodeList("1", "2", "3", "4", "5", "6")
	edges := []types.Edge{
		refEdge("1", "2"), refEdge("2", "3"), refEdge("1", "3"),
		refEdge("4", "5"), refEdge("5", "6"), refEdge("4", "6"),
		refEdge("3", "4"),
	}

	clustering := Analyze(nodes, edges).ClusteringAnalysis

	if clustering.NumberOfCommunities != 2 {
		t.Fatalf("expected two communities, got %d", clustering.NumberOfCommunities)
	}
	communities := clustering.Communities
	if communities["1"] != communities["2"] || communities["2"] != communities["3"] {
		t.Fatalf("expected the first triangle in one community, got %v", communities)
	}
	if communities["4"] != communities["5"] || communities["5"] != communities["6"] {
		t.Fatalf("expected the second triangle in one community, got %v", communities)
	}
	if communities["1"] == communities["4"] {
		t.Fatalf("expected the triangles in different communities, got %v", communities)
	}
	if communities["1"] != 0 {
		t.Fatalf("expected compacted labels to start at the first node, got %v", communities)
	}
	if clustering.CommunitySizes[communities["1"]] != 3 || clustering.CommunitySizes[communities["4"]] != 3 {
		t.Fatalf("expected two communities of three, got %v", clustering.CommunitySizes)
	}
}
