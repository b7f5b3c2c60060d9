package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"study-rag/internal/config"
	"study-rag/internal/session"
)

// Run starts the interactive session from st.
func Run(ctx context.Context, svc Service, st session.State, cfg *config.Config) error {
	p := tea.NewProgram(
		NewModel(ctx, svc, st, cfg),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
