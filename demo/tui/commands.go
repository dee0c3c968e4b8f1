package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"pubmedx/demo/client"
)

// requestTimeout bounds each API call issued by a command.
const requestTimeout = 10 * time.Second

// checkHealth creates a command to verify the API is reachable
func checkHealth(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return HealthMsg{Err: c.Health(ctx)}
	}
}

// createGraph creates a command to start a crawl
func createGraph(c *client.Client, pmid string, maxDepth int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		graphID, err := c.CreateGraph(ctx, pmid, maxDepth)
		return GraphCreatedMsg{GraphID: graphID, Err: err}
	}
}

// pollStatus creates a command to poll crawl progress
func pollStatus(c *client.Client, graphID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		status, err := c.GetStatus(ctx, graphID)
		return StatusUpdateMsg{Status: status, Err: err}
	}
}

// fetchAnalytics creates a command to load the analytics report
func fetchAnalytics(c *client.Client, graphID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		result, err := c.GetAnalytics(ctx, graphID)
		if err != nil {
			return AnalyticsMsg{Err: err}
		}
		return AnalyticsMsg{Report: result.Analytics}
	}
}

// tickCmd creates a command that ticks every 500ms for polling
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}
