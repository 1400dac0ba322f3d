/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>

*/
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

// lookupKinds lists the entity kinds that get a top-level command
var lookupKinds = []struct {
	use   string
	kind  string
	short string
	field string // example field for the help text
}{
	{use: "release", kind: discogs.KindRelease, short: "Look up a release by ID", field: "tracklist"},
	{use: "master", kind: discogs.KindMaster, short: "Look up a master release by ID", field: "main_release"},
	{use: "artist", kind: discogs.KindArtist, short: "Look up an artist by ID", field: "aliases"},
	{use: "label", kind: discogs.KindLabel, short: "Look up a label by ID", field: "sublabels"},
}

func init() {
	for _, k := range lookupKinds {
		rootCmd.AddCommand(newLookupCmd(k.use, k.kind, k.short, k.field))
	}
}

func newLookupCmd(use, kind, short, exampleField string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Long: fmt.Sprintf(`%s.

Without flags, prints a one-line summary. Use --field to print a single
attribute by its Discogs name; list attributes such as %s print one line
per entry. Use --format for a Go template over the raw record, for example
'{{.id}} {{.resource_url}}'. Use --output json or yaml for structured output.

Available fields: %s

Exit codes:
  0 - Found
  1 - Request or configuration error
  2 - No %s with that ID`, short, exampleField, strings.Join(fieldNames(kind), ", "), use),
		Example: fmt.Sprintf("  crates %s 1\n  crates %s 1 --field %s\n  crates %s 1 -o yaml", use, use, exampleField, use),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd, kind, args[0])
		},
	}

	cmd.Flags().StringP("format", "f", "", "Output template (overrides config)")
	cmd.Flags().String("field", "", "Print a single field")
	cmd.Flags().StringP("output", "o", "text", "Output format: text, json or yaml")
	cmd.Flags().IntP("width", "w", 0, "Fixed output width (0=disabled, overrides config)")
	return cmd
}

func runLookup(cmd *cobra.Command, kind, rawID string) error {
	id, err := catalog.ParseID(kind, rawID)
	if err != nil {
		return err
	}

	svc, cfg, cleanup, err := openService()
	if err != nil {
		return err
	}
	defer cleanup()

	opts := renderOptions{Format: cfg.OutputFormat, Width: cfg.OutputWidth}
	if f, _ := cmd.Flags().GetString("format"); f != "" {
		opts.Format = f
	}
	if w, _ := cmd.Flags().GetInt("width"); w != 0 {
		opts.Width = w
	}
	opts.Field, _ = cmd.Flags().GetString("field")
	opts.Output, _ = cmd.Flags().GetString("output")

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	e, err := svc.Lookup(ctx, kind, id)
	if err != nil {
		return err
	}

	return renderEntity(cmd.OutOrStdout(), e, opts)
}

// fieldNames lists the declared fields of kind
func fieldNames(kind string) []string {
	s, err := discogs.DefaultRegistry.Resolve(kind)
	if err != nil {
		return nil
	}
	fields := s.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}
