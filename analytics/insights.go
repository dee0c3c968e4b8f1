package analytics

import (
	"sort"

	"pubmedx/config"
)

// researchInsights derives the highlight lists from the centrality scores
// and the raw arc structure.
func researchInsights(g *digraph, degree, betweenness, closeness map[string]float64) ResearchInsights {
	insights := ResearchInsights{
		TopInfluentialPapers:  []RankedPaper{},
		BridgePapers:          []RankedPaper{},
		EmergingTopics:        []EmergingTopic{},
		IsolatedNodes:         []string{},
		WellConnectedClusters: [][]string{},
	}

	// Influence blends the three centralities with equal weight.
	influential := make([]RankedPaper, 0, len(g.ids))
	for _, id := range g.ids {
		score := (degree[id] + betweenness[id] + closeness[id]) / 3
		influential = append(influential, RankedPaper{PMID: id, Score: score})
	}
	sortRankedPapers(influential)
	insights.TopInfluentialPapers = truncateRanked(influential, config.InsightListSize)

	// Bridges sit on shortest paths without being hubs themselves:
	// positive betweenness ranked against degree.
	bridges := make([]RankedPaper, 0, len(g.ids))
	for _, id := range g.ids {
		if betweenness[id] <= 0 {
			continue
		}
		bridges = append(bridges, RankedPaper{PMID: id, Score: betweenness[id] / (degree[id] + 1)})
	}
	sortRankedPapers(bridges)
	insights.BridgePapers = truncateRanked(bridges, config.InsightListSize)

	// Emerging topics cite several papers but are barely cited back.
	for _, id := range g.ids {
		out := len(g.out[id])
		in := len(g.in[id])
		if out > config.EmergingMinOutDegree && in <= config.EmergingMaxInDegree {
			insights.EmergingTopics = append(insights.EmergingTopics, EmergingTopic{
				PMID:      id,
				OutDegree: out,
				InDegree:  in,
			})
		}
	}
	sort.Slice(insights.EmergingTopics, func(i, j int) bool {
		a, b := insights.EmergingTopics[i], insights.EmergingTopics[j]
		if a.OutDegree != b.OutDegree {
			return a.OutDegree > b.OutDegree
		}
		return a.PMID < b.PMID
	})
	if len(insights.EmergingTopics) > config.InsightListSize {
		insights.EmergingTopics = insights.EmergingTopics[:config.InsightListSize]
	}

	for _, id := range g.ids {
		if g.totalDegree(id) == 0 {
			insights.IsolatedNodes = append(insights.IsolatedNodes, id)
		}
	}

	// Well-connected clusters are the larger weak components, reported
	// in order of their smallest member.
	for _, component := range weakComponents(g) {
		if len(component) < config.WellConnectedMinSize {
			continue
		}
		cluster := append([]string(nil), component...)
		sort.Strings(cluster)
		insights.WellConnectedClusters = append(insights.WellConnectedClusters, cluster)
		if len(insights.WellConnectedClusters) == config.WellConnectedListSize {
			break
		}
	}

	return insights
}

func sortRankedPapers(papers []RankedPaper) {
	sort.Slice(papers, func(i, j int) bool {
		if papers[i].Score != papers[j].Score {
			return papers[i].Score > papers[j].Score
		}
		return papers[i].PMID < papers[j].PMID
	})
}

func truncateRanked(papers []RankedPaper, n int) []RankedPaper {
	if len(papers) > n {
		return papers[:n]
	}
	return papers
}

func buildSummary(stats BasicStatistics, insights ResearchInsights, clustering ClusteringAnalysis) Summary {
	summary := Summary{
		KeyMetrics: KeyMetrics{
			TotalArticles:    stats.TotalNodes,
			TotalConnections: stats.TotalEdges,
			NetworkDensity:   stats.Density,
			IsConnected:      stats.IsConnected,
		},
		ClusteringCoefficient: clustering.GlobalClustering,
		ResearchCommunities:   clustering.NumberOfCommunities,
	}
	if len(insights.TopInfluentialPapers) > 0 {
		top := insights.TopInfluentialPapers[0]
		summary.MostInfluentialPaper = &top
	}
	if len(insights.BridgePapers) > 0 {
		top := insights.BridgePapers[0]
		summary.MostBridgingPaper = &top
	}
	return summary
}
