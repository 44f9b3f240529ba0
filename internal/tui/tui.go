package tui

import (
	"jobdesk-cli/internal/api"
	"jobdesk-cli/internal/session"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive TUI with a wired API client and session store.
func Run(client *api.Client, sessions *session.Store) error {
	setupColorProfile()
	m := newAppModel(client, sessions)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
