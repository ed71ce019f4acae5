// problems.go implements the "dojoterm problems" command listing the catalog.
package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dojoterm-dev/dojoterm/internal/api"
)

var problemsCmd = &cobra.Command{
	Use:   "problems",
	Short: "List available problems",
	Long:  `Fetch the problem catalog and print it in server order.`,
	RunE:  runProblems,
}

func runProblems(cmd *cobra.Command, args []string) error {
	deps, err := wire()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	problems, err := deps.Client.Problems(ctx)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return fmt.Errorf("not signed in; run: dojoterm login")
		}
		return fmt.Errorf("fetching problems: %w", err)
	}

	if len(problems) == 0 {
		fmt.Println("No problems available.")
		return nil
	}

	fmt.Printf("%-6s %-8s %s\n", "ID", "LEVEL", "TITLE")
	for _, p := range problems {
		fmt.Printf("%-6d %-8s %s\n", p.ID, p.Difficulty, p.Title)
	}
	return nil
}
