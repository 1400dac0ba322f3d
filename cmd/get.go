package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jfmyers9/crates/internal/catalog"
	"github.com/jfmyers9/crates/pkg/discogs"
	"github.com/spf13/cobra"
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <url-or-path>",
	Short: "Send an authenticated GET to any Discogs API URL",
	Long: `Send an authenticated GET request to an arbitrary Discogs API URL and
print the decoded JSON body. Paths starting with '/' are resolved against
the configured base URL, so '/artists/3840/releases?page=2' works.

The body is printed whatever the status; non-2xx statuses are reported as
an error after the body.`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
	getCmd.Flags().StringP("output", "o", "json", "Output format: json or yaml")
}

func runGet(cmd *cobra.Command, args []string) error {
	svc, cfg, cleanup, err := openService()
	if err != nil {
		return err
	}
	defer cleanup()

	rawURL := resolveURL(args[0], cfg.Discogs.BaseURL)

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	resp, err := svc.Get(ctx, rawURL)
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	body := catalog.Plain(resp.Body)
	switch output {
	case "json":
		err = writeJSON(cmd.OutOrStdout(), body)
	case "yaml":
		err = writeYAML(cmd.OutOrStdout(), body)
	default:
		return fmt.Errorf("unknown output %q (want json or yaml)", output)
	}
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &discogs.FetchError{StatusCode: resp.StatusCode, URL: rawURL}
	}
	return nil
}

// resolveURL turns a path into an absolute API URL
func resolveURL(arg, baseURL string) string {
	if !strings.HasPrefix(arg, "/") {
		return arg
	}
	if baseURL == "" {
		baseURL = discogs.DefaultBaseURL
	}
	return strings.TrimRight(baseURL, "/") + arg
}
