// ABOUTME: Session token storage at XDG paths
// ABOUTME: Persists the backend bearer token and exposes it as a token source
package api

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"golang.org/x/oauth2"
)

// TokenPath returns the XDG-compliant path for the stored session token.
func TokenPath() string {
	return filepath.Join(xdg.DataHome, "calsync", "token.json")
}

// SaveToken saves the backend session token to the XDG data directory.
func SaveToken(token *oauth2.Token) error {
	path := TokenPath()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	// Restricted permissions: this file is a usable session credential.
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create token file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := json.NewEncoder(f).Encode(token); err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	return nil
}

// LoadToken loads the stored session token.
func LoadToken() (*oauth2.Token, error) {
	f, err := os.Open(TokenPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open token file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var token oauth2.Token
	if err := json.NewDecoder(f).Decode(&token); err != nil {
		return nil, fmt.Errorf("failed to decode token: %w", err)
	}
	return &token, nil
}

// ClearToken removes the stored session token. Called when the backend
// rejects the token so the next command prompts for login again.
func ClearToken() error {
	err := os.Remove(TokenPath())
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}

// fileTokenSource reads the token from disk on every request so a re-login
// from another terminal is picked up without restarting.
type fileTokenSource struct{}

func (fileTokenSource) Token() (*oauth2.Token, error) {
	token, err := LoadToken()
	if err != nil {
		return nil, fmt.Errorf("not logged in (run 'calsync login'): %w", err)
	}
	return token, nil
}

// DefaultTokenSource returns the token source for CLI use: the CALSYNC_TOKEN
// environment variable when set, otherwise the token file.
func DefaultTokenSource() oauth2.TokenSource {
	if tok := os.Getenv("CALSYNC_TOKEN"); tok != "" {
		return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: tok})
	}
	return fileTokenSource{}
}
