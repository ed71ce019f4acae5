// Package commands provides Bubble Tea commands for TUI operations.
package commands

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dojoterm-dev/dojoterm/internal/api"
	"github.com/dojoterm-dev/dojoterm/internal/catalog"
	"github.com/dojoterm-dev/dojoterm/internal/tui"
)

const requestTimeout = 60 * time.Second

// LoadProblemsCmd fetches the problem catalog into the store.
func LoadProblemsCmd(store *catalog.Store, client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := store.Load(ctx, client); err != nil {
			if errors.Is(err, api.ErrUnauthorized) {
				return tui.AuthExpiredMsg{}
			}
			return tui.ProblemsLoadErrorMsg{Err: err}
		}
		return tui.ProblemsLoadedMsg{Count: store.Len()}
	}
}

// SubmitCodeCmd runs a submission against the execution backend.
func SubmitCodeCmd(client *api.Client, sub api.Submission) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		result, err := client.ExecuteCode(ctx, sub)
		if err != nil {
			if errors.Is(err, api.ErrUnauthorized) {
				return tui.AuthExpiredMsg{}
			}
			return tui.SubmissionErrorMsg{Err: err}
		}
		return tui.SubmissionResultMsg{ProblemID: sub.ProblemID, Result: result}
	}
}
