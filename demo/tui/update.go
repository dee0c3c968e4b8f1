package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case HealthMsg:
		return m.handleHealth(msg)
	case GraphCreatedMsg:
		return m.handleGraphCreated(msg)
	case StatusUpdateMsg:
		return m.handleStatusUpdate(msg)
	case AnalyticsMsg:
		return m.handleAnalytics(msg)
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "s", "S":
		if m.State == StateIdle || m.State == StateComplete || m.State == StateError {
			m.State = StateCreating
			m.Err = nil
			m.Status = nil
			m.Report = nil
			m = m.AddLog(fmt.Sprintf("Starting crawl for PMID %s (depth %d)", m.PMID, m.MaxDepth))
			return m, createGraph(m.Client, m.PMID, m.MaxDepth)
		}
	case "a", "A":
		if m.State == StateComplete && m.GraphID != "" {
			m = m.AddLog("Fetching analytics report...")
			return m, fetchAnalytics(m.Client, m.GraphID)
		}
	}
	return m, nil
}

// handleHealth records API reachability
func (m Model) handleHealth(msg HealthMsg) (tea.Model, tea.Cmd) {
	m.Connected = msg.Err == nil
	return m, nil
}

// handleGraphCreated processes crawl acceptance
func (m Model) handleGraphCreated(msg GraphCreatedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.State = StateError
		m.Err = fmt.Errorf("failed to create graph: %w", msg.Err)
		return m, nil
	}
	m.Connected = true
	m.GraphID = msg.GraphID
	m.State = StateCrawling
	m = m.AddLog("Graph accepted: " + msg.GraphID)
	return m, pollStatus(m.Client, m.GraphID)
}

// handleStatusUpdate processes crawl progress
func (m Model) handleStatusUpdate(msg StatusUpdateMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.State = StateError
		m.Err = msg.Err
		return m, nil
	}
	m.Connected = true
	m.Status = msg.Status

	switch msg.Status.Status {
	case "completed", "completed_with_limit":
		if m.State != StateComplete {
			m.State = StateComplete
			m = m.AddLog(fmt.Sprintf("Crawl finished with %d articles", msg.Status.TotalArticles))
		}
	case "error":
		m.State = StateError
		m.Err = fmt.Errorf("crawl failed: %s", msg.Status.Error)
	}
	return m, nil
}

// handleAnalytics processes the analytics report
func (m Model) handleAnalytics(msg AnalyticsMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.State = StateError
		m.Err = fmt.Errorf("failed to fetch analytics: %w", msg.Err)
		return m, nil
	}
	m.Report = msg.Report
	m = m.AddLog("Analytics report received")
	return m, nil
}

// handleTick schedules the next poll
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.State == StateCrawling && m.GraphID != "" {
		return m, tea.Batch(pollStatus(m.Client, m.GraphID), tickCmd())
	}
	if !m.Connected {
		return m, tea.Batch(checkHealth(m.Client), tickCmd())
	}
	return m, tickCmd()
}
