package main

// Exit codes. Per-workspace failures do not change the exit code; only
// argument and configuration problems do.
const (
	ExitSuccess     = 0 // Success, including runs where some workspaces failed
	ExitError       = 1 // General error (unknown action, missing custom arguments)
	ExitConfigError = 2 // Configuration error (unreadable or invalid config file)
)
