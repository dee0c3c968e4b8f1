package tui

import (
	"time"

	"pubmedx/analytics"
	"pubmedx/types"
)

// Messages for the tea program (polling-based)

// HealthMsg reports whether the API answered the health check
type HealthMsg struct {
	Err error
}

// GraphCreatedMsg is sent when the API accepts a crawl request
type GraphCreatedMsg struct {
	GraphID string
	Err     error
}

// StatusUpdateMsg is sent when we receive crawl progress from the API
type StatusUpdateMsg struct {
	Status *types.StatusResponse
	Err    error
}

// AnalyticsMsg is sent when the analytics report arrives
type AnalyticsMsg struct {
	Report *analytics.Report
	Err    error
}

// TickMsg is sent periodically to trigger polling
type TickMsg struct {
	Time time.Time
}
