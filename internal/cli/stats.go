// stats.go implements the "dojoterm stats" command printing progress.
package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dojoterm-dev/dojoterm/internal/api"
	"github.com/dojoterm-dev/dojoterm/internal/catalog"
	"github.com/dojoterm-dev/dojoterm/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show your submission statistics",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	deps, err := wire()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	raw, err := deps.Client.UserStats(ctx)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return fmt.Errorf("not signed in; run: dojoterm login")
		}
		return fmt.Errorf("fetching statistics: %w", err)
	}

	summary := stats.Normalize(raw)

	fmt.Println("Submissions")
	fmt.Printf("  Passed: %d\n", summary.Passed)
	fmt.Printf("  Failed: %d\n", summary.Failed)
	fmt.Println()
	fmt.Println("Solved by difficulty")
	diff := summary.DifficultySeries()
	for i, d := range catalog.Difficulties {
		fmt.Printf("  %-7s %d\n", d, diff[i])
	}
	return nil
}
