package commands

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dojoterm-dev/dojoterm/internal/auth"
	"github.com/dojoterm-dev/dojoterm/internal/tui"
)

// SaveTokenCmd stores the supplied credential.
func SaveTokenCmd(store *auth.Store, token string) tea.Cmd {
	return func() tea.Msg {
		if err := store.Save(token); err != nil {
			return tui.TokenSaveErrorMsg{Err: err}
		}
		return tui.TokenSavedMsg{}
	}
}
