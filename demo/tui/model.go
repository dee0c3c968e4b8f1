package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"pubmedx/analytics"
	"pubmedx/demo/client"
	"pubmedx/types"
)

// State represents the application state machine
type State string

const (
	StateIdle     State = "idle"
	StateCreating State = "creating"
	StateCrawling State = "crawling"
	StateComplete State = "complete"
	StateError    State = "error"
)

// maxLogLines bounds the activity log shown in the view.
const maxLogLines = 8

// Model represents the TUI client state (thin client)
type Model struct {
	// API client
	Client *client.Client

	// Crawl parameters
	PMID     string
	MaxDepth int

	// Local UI state (synced from the API)
	State   State
	GraphID string
	Status  *types.StatusResponse
	Report  *analytics.Report
	Logs    []string
	Err     error

	// Connection status
	Connected bool
}

// NewModel creates a new TUI model
func NewModel(apiURL, pmid string, maxDepth int) Model {
	return Model{
		Client:   client.NewClient(apiURL),
		PMID:     pmid,
		MaxDepth: maxDepth,
		State:    StateIdle,
		Logs:     make([]string, 0, maxLogLines),
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	// Check connectivity and start the polling loop
	return tea.Batch(
		checkHealth(m.Client),
		tickCmd(),
	)
}

// AddLog appends a timestamped line to the activity log.
func (m Model) AddLog(message string) Model {
	entry := time.Now().Format("15:04:05") + " " + message
	logs := append([]string{}, m.Logs...)
	logs = append(logs, entry)
	if len(logs) > maxLogLines {
		logs = logs[len(logs)-maxLogLines:]
	}
	m.Logs = logs
	return m
}

// getStateText returns the appropriate state message
func (m Model) getStateText() string {
	if !m.Connected && m.State == StateIdle {
		return ErrorStyle.Render("❌ Not connected to the PubMedX API")
	}

	switch m.State {
	case StateIdle:
		return HighlightStyle.Render("👋 Ready to crawl!") + "\n\n" +
			InfoStyle.Render(fmt.Sprintf("Press 's' to build the citation graph for PMID %s (depth %d)", m.PMID, m.MaxDepth))
	case StateCreating:
		return StatusStyle.Render("📤 Requesting graph crawl...")
	case StateCrawling:
		if m.Status != nil {
			return StatusStyle.Render(fmt.Sprintf("⏳ Crawling citation graph (%d/%d articles)...",
				m.Status.ProcessedArticles, m.Status.TotalArticles))
		}
		return StatusStyle.Render("⏳ Crawling citation graph...")
	case StateComplete:
		if m.Status != nil && m.Status.LimitReached {
			return HighlightStyle.Render("✅ CRAWL COMPLETE (article cap reached)")
		}
		return HighlightStyle.Render("✅ CRAWL COMPLETE")
	case StateError:
		errMsg := "Unknown error"
		if m.Err != nil {
			errMsg = m.Err.Error()
		}
		return ErrorStyle.Render(fmt.Sprintf("❌ Error: %v", errMsg))
	default:
		return ""
	}
}
