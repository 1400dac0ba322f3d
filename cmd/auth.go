package cmd

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jfmyers9/crates/internal/config"
	"github.com/jfmyers9/crates/pkg/discogs"
	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Store your Discogs personal access token",
	Long: `Store a Discogs personal access token for use by the other commands.

This command will:
1. Prompt for your token (or reuse the one already configured)
2. Check it against the Discogs identity endpoint
3. Save it to your config file

You can generate a token at: https://www.discogs.com/settings/developers`,
	RunE: runAuth,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.Flags().Bool("skip-verify", false, "Save the token without checking it")
}

func runAuth(cmd *cobra.Command, args []string) error {
	reader := bufio.NewReader(os.Stdin)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Println("Discogs Authentication")
	fmt.Println("======================")
	fmt.Println()
	fmt.Println("You can generate a token at: https://www.discogs.com/settings/developers")
	fmt.Println()

	if cfg.Discogs.Token != "" {
		fmt.Printf("Found existing token: %s\n", maskToken(cfg.Discogs.Token))
		fmt.Print("\nUse existing token? [Y/n]: ")
		response, err := reader.ReadString('\n')
		if err != nil {
			response = "y"
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "" && response != "y" && response != "yes" {
			cfg.Discogs.Token = ""
		}
	}

	if cfg.Discogs.Token == "" {
		fmt.Print("Enter your Discogs personal access token: ")
		token, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read token: %w", err)
		}
		cfg.Discogs.Token = strings.TrimSpace(token)
	}

	skipVerify, _ := cmd.Flags().GetBool("skip-verify")
	if !skipVerify {
		fmt.Println("\nChecking token...")
		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()

		username, err := verifyToken(ctx, cfg)
		if err != nil {
			return err
		}
		fmt.Printf("Token belongs to %s\n", username)
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	configPath := config.GetConfigDir()
	fmt.Printf("\n✓ Token saved to %s/config.yaml\n", configPath)
	fmt.Println("\nTry 'crates release 249504' to look up your first record.")

	return nil
}

// verifyToken asks the identity endpoint who owns the token
func verifyToken(ctx context.Context, cfg *config.Config) (string, error) {
	client, err := discogs.NewClient(discogs.Config{
		Token:     cfg.Discogs.Token,
		UserAgent: cfg.Discogs.UserAgent,
		BaseURL:   cfg.Discogs.BaseURL,
	})
	if err != nil {
		return "", err
	}

	identityURL := resolveURL("/oauth/identity", cfg.Discogs.BaseURL)
	resp, err := client.Get(ctx, identityURL)
	if err != nil {
		return "", fmt.Errorf("failed to check token: %w", err)
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return "", fmt.Errorf("Discogs rejected the token")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &discogs.FetchError{StatusCode: resp.StatusCode, URL: identityURL}
	}

	body, _ := resp.Body.(map[string]any)
	username, _ := body["username"].(string)
	if username == "" {
		return "", fmt.Errorf("identity response has no username")
	}
	return username, nil
}

// maskToken hides all but the last four characters
func maskToken(token string) string {
	if len(token) <= 4 {
		return strings.Repeat("*", len(token))
	}
	return strings.Repeat("*", len(token)-4) + token[len(token)-4:]
}
