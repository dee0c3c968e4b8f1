package tui

// UI Text Constants
const (
	// Footer
	TextFooterIdle     = "Press 's' to start the crawl | Press 'q' or Ctrl+C to quit"
	TextFooterRunning  = "Press 'q' or Ctrl+C to quit"
	TextFooterComplete = "Press 'a' for analytics | Press 's' to crawl again | Press 'q' to quit"
)
