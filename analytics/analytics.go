// Package analytics computes structural measures over crawled citation
// graphs. Every function is a pure function of the node and edge sets:
// repeated calls on the same graph yield identical reports.
package analytics

import (
	"sort"

	"pubmedx/types"
)

// Report is the full analytics payload for one graph.
type Report struct {
	BasicStatistics    BasicStatistics    `json:"basic_statistics"`
	CentralityMeasures CentralityMeasures `json:"centrality_measures"`
	ClusteringAnalysis ClusteringAnalysis `json:"clustering_analysis"`
	PathAnalysis       PathAnalysis       `json:"path_analysis"`
	NetworkStructure   NetworkStructure   `json:"network_structure"`
	ResearchInsights   ResearchInsights   `json:"research_insights"`
	Summary            Summary            `json:"summary"`
}

// BasicStatistics are whole-graph counts and degree aggregates.
type BasicStatistics struct {
	TotalNodes           int     `json:"total_nodes"`
	TotalEdges           int     `json:"total_edges"`
	Density              float64 `json:"density"`
	AverageDegree        float64 `json:"average_degree"`
	MaxDegree            int     `json:"max_degree"`
	MinDegree            int     `json:"min_degree"`
	IsConnected          bool    `json:"is_connected"`
	NumberOfComponents   int     `json:"number_of_components"`
	LargestComponentSize int     `json:"largest_component_size"`
}

// CentralityMeasures hold per-node centrality scores keyed by PMID.
type CentralityMeasures struct {
	DegreeCentrality      map[string]float64 `json:"degree_centrality"`
	BetweennessCentrality map[string]float64 `json:"betweenness_centrality"`
	ClosenessCentrality   map[string]float64 `json:"closeness_centrality"`
	EigenvectorCentrality map[string]float64 `json:"eigenvector_centrality"`
	Pagerank              map[string]float64 `json:"pagerank"`
	Hubs                  map[string]float64 `json:"hubs"`
	Authorities           map[string]float64 `json:"authorities"`
}

// ClusteringAnalysis holds clustering coefficients and the community
// partition of the undirected view.
type ClusteringAnalysis struct {
	GlobalClustering    float64            `json:"global_clustering"`
	LocalClustering     map[string]float64 `json:"local_clustering"`
	Communities         map[string]int     `json:"communities"`
	NumberOfCommunities int                `json:"number_of_communities"`
	CommunitySizes      map[int]int        `json:"community_sizes"`
}

// PathAnalysis reports distance measures over the largest strongly
// connected citation cycle. Graphs whose strong components are all
// single nodes have no meaningful distances and keep the nullable
// fields null and the eccentricity map empty.
type PathAnalysis struct {
	AverageShortestPath *float64       `json:"average_shortest_path"`
	Diameter            *int           `json:"diameter"`
	Eccentricity        map[string]int `json:"eccentricity"`
	Radius              *int           `json:"radius"`
}

// DegreeDistribution aggregates the combined degree sequence.
type DegreeDistribution struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Std    float64 `json:"std"`
	Min    int     `json:"min"`
	Max    int     `json:"max"`
}

// NodeTypes splits papers by citation behaviour: hubs cite far more
// than the average paper, authorities are cited far more.
type NodeTypes struct {
	Hubs         []string `json:"hubs"`
	Authorities  []string `json:"authorities"`
	AvgOutDegree float64  `json:"avg_out_degree"`
	AvgInDegree  float64  `json:"avg_in_degree"`
}

// NetworkStructure describes the shape of the network beyond plain
// counts. Assortativity is null when endpoint degrees show no
// variation and reciprocity is null for graphs without arcs.
type NetworkStructure struct {
	DegreeDistribution DegreeDistribution `json:"degree_distribution"`
	Assortativity      *float64           `json:"assortativity"`
	Reciprocity        *float64           `json:"reciprocity"`
	Transitivity       float64            `json:"transitivity"`
	NodeTypes          NodeTypes          `json:"node_types"`
}

// RankedPaper is a PMID with the score that ranked it.
type RankedPaper struct {
	PMID  string  `json:"pmid"`
	Score float64 `json:"score"`
}

// EmergingTopic is a paper citing much newer work than cites it.
type EmergingTopic struct {
	PMID      string `json:"pmid"`
	OutDegree int    `json:"out_degree"`
	InDegree  int    `json:"in_degree"`
}

// ResearchInsights are the derived highlight lists.
type ResearchInsights struct {
	TopInfluentialPapers  []RankedPaper   `json:"top_influential_papers"`
	BridgePapers          []RankedPaper   `json:"bridge_papers"`
	EmergingTopics        []EmergingTopic `json:"emerging_topics"`
	IsolatedNodes         []string        `json:"isolated_nodes"`
	WellConnectedClusters [][]string      `json:"well_connected_clusters"`
}

// KeyMetrics condense the graph for the summary block.
type KeyMetrics struct {
	TotalArticles    int     `json:"total_articles"`
	TotalConnections int     `json:"total_connections"`
	NetworkDensity   float64 `json:"network_density"`
	IsConnected      bool    `json:"is_connected"`
}

// Summary is the one-screen digest of the report.
type Summary struct {
	KeyMetrics            KeyMetrics   `json:"key_metrics"`
	MostInfluentialPaper  *RankedPaper `json:"most_influential_paper,omitempty"`
	MostBridgingPaper     *RankedPaper `json:"most_bridging_paper,omitempty"`
	ClusteringCoefficient float64      `json:"clustering_coefficient"`
	ResearchCommunities   int          `json:"research_communities"`
}

// Analyze computes the full report for a crawled graph. Degenerate graphs
// (a single node, no edges) produce zeroed sections rather than errors.
func Analyze(nodes []types.Node, edges []types.Edge) *Report {
	g := newDigraph(nodes, edges)

	degree := degreeCentrality(g)
	betweenness := betweennessCentrality(g)
	closeness := closenessCentrality(g)
	eigenvector := eigenvectorCentrality(g)
	pagerank := pagerankScores(g)
	hubs, authorities := hitsScores(g)

	local := localClustering(g)
	communities := detectCommunities(g)

	clustering := ClusteringAnalysis{
		GlobalClustering: meanValue(local),
		LocalClustering:  local,
		Communities:      communities,
		CommunitySizes:   make(map[int]int),
	}
	for _, comm := range communities {
		clustering.CommunitySizes[comm]++
	}
	clustering.NumberOfCommunities = len(clustering.CommunitySizes)

	stats := basicStatistics(g)
	insights := researchInsights(g, degree, betweenness, closeness)

	return &Report{
		BasicStatistics: stats,
		CentralityMeasures: CentralityMeasures{
			DegreeCentrality:      degree,
			BetweennessCentrality: betweenness,
			ClosenessCentrality:   closeness,
			EigenvectorCentrality: eigenvector,
			Pagerank:              pagerank,
			Hubs:                  hubs,
			Authorities:           authorities,
		},
		ClusteringAnalysis: clustering,
		PathAnalysis:       pathAnalysis(g),
		NetworkStructure:   networkStructure(g),
		ResearchInsights:   insights,
		Summary:            buildSummary(stats, insights, clustering),
	}
}

// digraph is the citation-direction view of a crawled graph: an arc u->v
// means u cites v. Citation-typed edges are stored cited->citer by the
// crawler and are flipped here, so structural measures do not depend on
// which traversal direction discovered a relationship. Adjacency lists
// and the id list are sorted for deterministic iteration.
type digraph struct {
	ids          []string
	out          map[string][]string
	in           map[string][]string
	und          map[string][]string
	arcCount     int
	undEdgeCount int
}

func newDigraph(nodes []types.Node, edges []types.Edge) *digraph {
	g := &digraph{
		out: make(map[string][]string),
		in:  make(map[string][]string),
		und: make(map[string][]string),
	}

	seen := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		if n.ID == "" || seen[n.ID] {
			continue
		}
		seen[n.ID] = true
		g.ids = append(g.ids, n.ID)
	}
	sort.Strings(g.ids)

	type pair struct{ a, b string }
	arcs := make(map[pair]bool, len(edges))
	undirected := make(map[pair]bool, len(edges))
	for _, e := range edges {
		from, to := e.Source, e.Target
		if e.Type == types.EdgeTypeCitation {
			from, to = to, from
		}
		if from == to || !seen[from] || !seen[to] {
			continue
		}
		if !arcs[pair{from, to}] {
			arcs[pair{from, to}] = true
			g.out[from] = append(g.out[from], to)
			g.in[to] = append(g.in[to], from)
		}
		u, v := from, to
		if u > v {
			u, v = v, u
		}
		if !undirected[pair{u, v}] {
			undirected[pair{u, v}] = true
			g.und[u] = append(g.und[u], v)
			g.und[v] = append(g.und[v], u)
		}
	}
	g.arcCount = len(arcs)
	g.undEdgeCount = len(undirected)

	for _, adjacency := range []map[string][]string{g.out, g.in, g.und} {
		for id := range adjacency {
			sort.Strings(adjacency[id])
		}
	}
	return g
}

func (g *digraph) totalDegree(id string) int {
	return len(g.in[id]) + len(g.out[id])
}

func (g *digraph) hasUndirectedEdge(a, b string) bool {
	neighbours := g.und[a]
	i := sort.SearchStrings(neighbours, b)
	return i < len(neighbours) && neighbours[i] == b
}

func (g *digraph) hasArc(from, to string) bool {
	targets := g.out[from]
	i := sort.SearchStrings(targets, to)
	return i < len(targets) && targets[i] == to
}

func basicStatistics(g *digraph) BasicStatistics {
	n := len(g.ids)
	stats := BasicStatistics{TotalNodes: n, TotalEdges: g.arcCount}
	if n == 0 {
		return stats
	}
	if n > 1 {
		stats.Density = float64(g.arcCount) / float64(n*(n-1))
	}

	total := 0
	for i, id := range g.ids {
		d := g.totalDegree(id)
		total += d
		if i == 0 || d > stats.MaxDegree {
			stats.MaxDegree = d
		}
		if i == 0 || d < stats.MinDegree {
			stats.MinDegree = d
		}
	}
	stats.AverageDegree = float64(total) / float64(n)

	components := weakComponents(g)
	stats.NumberOfComponents = len(components)
	stats.IsConnected = len(components) == 1
	for _, component := range components {
		if len(component) > stats.LargestComponentSize {
			stats.LargestComponentSize = len(component)
		}
	}
	return stats
}

// weakComponents returns the connected components of the undirected view.
func weakComponents(g *digraph) [][]string {
	var components [][]string
	visited := make(map[string]bool, len(g.ids))
	for _, start := range g.ids {
		if visited[start] {
			continue
		}
		component := []string{start}
		visited[start] = true
		queue := []string{start}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			for _, w := range g.und[v] {
				if !visited[w] {
					visited[w] = true
					component = append(component, w)
					queue = append(queue, w)
				}
			}
		}
		components = append(components, component)
	}
	return components
}

// meanValue averages a score map. Values are summed in sorted key order
// so the floating-point result is bit-identical across runs.
func meanValue(values map[string]float64) float64 {
	if len(values) == 0 {
		return 0
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	sum := 0.0
	for _, k := range keys {
		sum += values[k]
	}
	return sum / float64(len(values))
}
