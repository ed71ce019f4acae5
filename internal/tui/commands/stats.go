package commands

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dojoterm-dev/dojoterm/internal/api"
	"github.com/dojoterm-dev/dojoterm/internal/stats"
	"github.com/dojoterm-dev/dojoterm/internal/tui"
)

// RefreshStatsCmd refetches the statistics summary and rebuilds both
// chart handles.
func RefreshStatsCmd(agg *stats.Aggregator, client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := agg.Refresh(ctx, client); err != nil {
			if errors.Is(err, api.ErrUnauthorized) {
				return tui.AuthExpiredMsg{}
			}
			return tui.StatsRefreshErrorMsg{Err: err}
		}
		return tui.StatsRefreshedMsg{}
	}
}
