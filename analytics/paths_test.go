package analytics

import (
	"reflect"
	"testing"

	"pubmedx/types"
)

func TestPathAnalysisMeasuresCitationCycle(t *testing.T) {
	nodes := nodeList("1", "2", "3", "4")
	edges := []types.Edge{
		refEdge("1", "2"), refEdge("2", "3"), refEdge("3", "1"),
		refEdge("1", "4"),
	}
	report := Analyze(nodes, edges)

	// The strong component is the cycle {1,2,3}: six ordered pairs with
	// distances 1,2,1,2,1,2, so the average is 1.5 and every node sees
	// the rest within two hops.
	paths := report.PathAnalysis
	if paths.AverageShortestPath == nil {
		t.Fatal("expected average shortest path to be defined")
	}
	if !almostEqual(*paths.AverageShortestPath, 1.5) {
		t.Fatalf("expected average shortest path 1.5, got %f", *paths.AverageShortestPath)
	}
	if paths.Diameter == nil || *paths.Diameter != 2 {
		t.Fatalf("expected diameter 2, got %+v", paths.Diameter)
	}
	if paths.Radius == nil || *paths.Radius != 2 {
		t.Fatalf("expected radius 2, got %+v", paths.Radius)
	}
	wantEcc := map[string]int{"1": 2, "2": 2, "3": 2}
	if !reflect.DeepEqual(paths.Eccentricity, wantEcc) {
		t.Fatalf("expected eccentricity %v, got %v", wantEcc, paths.Eccentricity)
	}
}

func TestPathAnalysisUndefinedWithoutCycles(t *testing.T) {
	nodes := nodeList("1", "2", "3")
	report := Analyze(nodes, []types.Edge{refEdge("1", "2"), refEdge("1", "3")})

	paths := report.PathAnalysis
	if paths.AverageShortestPath != nil || paths.Diameter != nil || paths.Radius != nil {
		t.Fatalf("expected undefined path measures on an acyclic graph, got %+v", paths)
	}
	if len(paths.Eccentricity) != 0 {
		t.Fatalf("expected empty eccentricity map, got %v", paths.Eccentricity)
	}
}

func TestPathAnalysisPicksLargestCycle(t *testing.T) {
	nodes := nodeList("1", "2", "3", "8", "9")
	edges := []types.Edge{
		refEdge("1", "2"), refEdge("2", "3"), refEdge("3", "1"),
		refEdge("8", "9"), refEdge("9", "8"),
	}
	report := Analyze(nodes, edges)

	wantEcc := map[string]int{"1": 2, "2": 2, "3": 2}
	if !reflect.DeepEqual(report.PathAnalysis.Eccentricity, wantEcc) {
		t.Fatalf("expected measures over the three-paper cycle, got %v", report.PathAnalysis.Eccentricity)
	}
}
