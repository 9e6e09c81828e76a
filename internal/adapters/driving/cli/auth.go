package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/fieldlens-cli/internal/core/domain"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the dashboard session",
	Long: `Log in to the inspection backend, check the session and log out.

The session is stored in the config file so later commands reuse it.

Examples:
  fieldlens auth login --username admin
  echo "$PASSWORD" | fieldlens auth login --username admin --password-stdin
  fieldlens auth whoami
  fieldlens auth logout`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session",
	Args:  cobra.NoArgs,
	RunE:  runAuthLogin,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session",
	Args:  cobra.NoArgs,
	RunE:  runAuthLogout,
}

var authWhoAmICmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	Args:  cobra.NoArgs,
	RunE:  runAuthWhoAmI,
}

func init() {
	authLoginCmd.Flags().StringP("username", "u", "", "username (prompted when empty)")
	authLoginCmd.Flags().Bool("password-stdin", false, "read the password from stdin")

	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authWhoAmICmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthLogin(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return errNotConfigured("auth")
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	username, _ := cmd.Flags().GetString("username")
	if username == "" {
		cmd.Print("Username: ")
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read username: %w", err)
		}
		username = strings.TrimSpace(line)
	}
	if username == "" {
		return fmt.Errorf("%w: username is required", domain.ErrInvalidInput)
	}

	fromStdin, _ := cmd.Flags().GetBool("password-stdin")
	password, err := readPassword(cmd, reader, fromStdin)
	if err != nil {
		return err
	}
	if password == "" {
		return fmt.Errorf("%w: password is required", domain.ErrInvalidInput)
	}

	if err := authService.Login(commandContext(cmd), username, password); err != nil {
		return err
	}
	cmd.Printf("Logged in as %s\n", username)
	return nil
}

// readPassword reads without echo when stdin is a terminal, and a plain
// line otherwise.
func readPassword(cmd *cobra.Command, reader *bufio.Reader, fromStdin bool) (string, error) {
	if !fromStdin && cmd.InOrStdin() == os.Stdin && term.IsTerminal(int(os.Stdin.Fd())) {
		cmd.Print("Password: ")
		pw, err := term.ReadPassword(int(os.Stdin.Fd()))
		cmd.Println()
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(pw), nil
	}

	if !fromStdin {
		cmd.Print("Password: ")
	}
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func runAuthLogout(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return errNotConfigured("auth")
	}
	if err := authService.Logout(commandContext(cmd)); err != nil {
		return err
	}
	cmd.Println("Logged out.")
	return nil
}

func runAuthWhoAmI(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return errNotConfigured("auth")
	}
	user, err := authService.WhoAmI(commandContext(cmd))
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return errors.New("not logged in; run 'fieldlens auth login'")
		}
		return err
	}
	cmd.Println(user.Username)
	return nil
}
