// logout.go implements the "dojoterm logout" command clearing the token.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dojoterm-dev/dojoterm/internal/auth"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored access token",
	RunE:  runLogout,
}

func runLogout(cmd *cobra.Command, args []string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("finding home directory: %w", err)
	}

	if err := auth.NewStore(home).Clear(); err != nil {
		return fmt.Errorf("removing token: %w", err)
	}

	fmt.Println("Token removed.")
	return nil
}
