package tui

import (
	"fmt"
	"strings"
)

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	// Title
	b.WriteString(TitleStyle.Render("🧬 PubMedX Citation Graph Demo"))
	b.WriteString("\n\n")

	// Current state
	b.WriteString(m.getStateText())
	b.WriteString("\n\n")

	// Crawl progress
	if m.Status != nil {
		stats := fmt.Sprintf("📊 Articles: %d/%d | Status: %s",
			m.Status.ProcessedArticles, m.Status.TotalArticles, m.Status.Status)
		if m.Status.LimitReached {
			stats += " | article cap reached"
		}
		b.WriteString(InfoStyle.Render(stats))
		b.WriteString("\n\n")
	}

	// Analytics report
	if m.Report != nil {
		b.WriteString(BoxStyle.Render(m.formatReport()))
		b.WriteString("\n\n")
	}

	// Logs
	if len(m.Logs) > 0 {
		b.WriteString(InfoStyle.Render("📝 Recent Activity:"))
		b.WriteString("\n")
		for _, logMsg := range m.Logs {
			b.WriteString(InfoStyle.Render("   " + logMsg))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	// Help text
	switch m.State {
	case StateIdle:
		b.WriteString(InfoStyle.Render(TextFooterIdle))
	case StateComplete:
		b.WriteString(InfoStyle.Render(TextFooterComplete))
	default:
		b.WriteString(InfoStyle.Render(TextFooterRunning))
	}

	return b.String()
}

// formatReport renders the analytics summary box
func (m Model) formatReport() string {
	report := m.Report
	var b strings.Builder

	b.WriteString(HighlightStyle.Render("Citation Network Analytics"))
	b.WriteString("\n\n")

	metrics := report.Summary.KeyMetrics
	b.WriteString(fmt.Sprintf("Articles: %d | Citations: %d\n", metrics.TotalArticles, metrics.TotalConnections))
	b.WriteString(fmt.Sprintf("Density: %.4f | Connected: %t\n", metrics.NetworkDensity, metrics.IsConnected))
	b.WriteString(fmt.Sprintf("Communities: %d | Clustering: %.4f\n",
		report.Summary.ResearchCommunities, report.Summary.ClusteringCoefficient))

	if top := report.Summary.MostInfluentialPaper; top != nil {
		b.WriteString(fmt.Sprintf("\nMost influential: PMID %s (score %.4f)\n", top.PMID, top.Score))
	}
	if bridge := report.Summary.MostBridgingPaper; bridge != nil {
		b.WriteString(fmt.Sprintf("Top bridge: PMID %s (score %.4f)\n", bridge.PMID, bridge.Score))
	}

	if len(report.ResearchInsights.EmergingTopics) > 0 {
		b.WriteString("\nEmerging topics:\n")
		for _, topic := range report.ResearchInsights.EmergingTopics {
			b.WriteString(fmt.Sprintf("  PMID %s (cites %d, cited by %d)\n",
				topic.PMID, topic.OutDegree, topic.InDegree))
		}
	}

	return b.String()
}
