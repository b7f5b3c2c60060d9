package tui

import "study-rag/internal/session"

// actionDoneMsg carries the state produced by a finished service call
type actionDoneMsg struct {
	State session.State
	Err   error
}
