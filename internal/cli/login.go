// login.go implements the "dojoterm login" command storing an access token.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dojoterm-dev/dojoterm/internal/auth"
)

var loginToken string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store an access token",
	Long: `Store the access token used for authenticated requests.
Sign in on the web app first and copy the token from your account page,
then pass it with --token or paste it when prompted.`,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginToken, "token", "", "Access token (prompted for when omitted)")
}

func runLogin(cmd *cobra.Command, args []string) error {
	token := strings.TrimSpace(loginToken)
	if token == "" {
		fmt.Print("Access token: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading token: %w", err)
		}
		token = strings.TrimSpace(line)
	}
	if token == "" {
		return fmt.Errorf("no token provided")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("finding home directory: %w", err)
	}

	if err := auth.NewStore(home).Save(token); err != nil {
		return fmt.Errorf("storing token: %w", err)
	}

	fmt.Println("Token stored.")
	return nil
}
