// ABOUTME: Login command storing the backend session token
// ABOUTME: Prompts for the token without echo and verifies it against the API
package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/oauth2"
	"golang.org/x/term"

	"github.com/livelyapps/calsync/api"
	"github.com/livelyapps/calsync/models"
)

// LoginCommand prompts for a session token, verifies it, and stores it at
// the XDG data path for subsequent commands.
func LoginCommand(serverURL string, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	tokenFlag := fs.String("token", "", "Session token (prompted when omitted)")
	_ = fs.Parse(args)

	tokenValue := *tokenFlag
	if tokenValue == "" {
		fmt.Printf("Server: %s\n", serverURL)
		fmt.Print("Paste your session token (from the web app's account page): ")

		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read token: %w", err)
		}
		tokenValue = strings.TrimSpace(string(raw))
	}

	if tokenValue == "" {
		return fmt.Errorf("a session token is required")
	}

	token := &oauth2.Token{AccessToken: tokenValue}

	// Verify before saving so a typo doesn't poison every later command.
	client := api.NewClient(serverURL, oauth2.StaticTokenSource(token))
	if _, err := client.ListConfigs(context.Background()); err != nil {
		if api.IsUnauthorized(err) {
			return fmt.Errorf("the backend rejected this token: %w", err)
		}
		return fmt.Errorf("could not verify token against %s: %w", serverURL, err)
	}

	if err := api.SaveToken(token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	fmt.Printf("✓ Logged in\n")
	fmt.Printf("✓ Token saved to %s\n", api.TokenPath())
	return nil
}

// LogoutCommand removes the stored session token.
func LogoutCommand(args []string) error {
	if err := api.ClearToken(); err != nil {
		return err
	}
	fmt.Println("✓ Logged out")
	return nil
}

// requireAccountSlot parses a source/destination positional argument.
func requireAccountSlot(args []string) (models.AccountSlot, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("account is required: %q or %q", models.AccountSource, models.AccountDestination)
	}
	slot := models.AccountSlot(args[0])
	if !slot.IsValid() {
		return "", fmt.Errorf("unknown account %q: use %q or %q", args[0], models.AccountSource, models.AccountDestination)
	}
	return slot, nil
}

// confirm asks a yes/no question on stdin.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	var answer string
	if _, err := fmt.Fscanln(os.Stdin, &answer); err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
