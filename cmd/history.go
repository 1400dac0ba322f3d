package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jfmyers9/crates/internal/config"
	"github.com/jfmyers9/crates/internal/history"
	"github.com/spf13/cobra"
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent lookups",
	Long: `Show lookups recorded by the release, master, artist and label commands.

History is kept in a local SQLite database (history_db in the config file).
It is a log only: lookups always go to Discogs.`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 20, "Number of lookups to show (0=all)")
	historyCmd.Flags().Duration("prune", 0, "Delete lookups older than this age, e.g. 720h")
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.HistoryDB), 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}
	store, err := history.NewStore(cfg.HistoryDB)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if prune, _ := cmd.Flags().GetDuration("prune"); prune > 0 {
		deleted, err := store.Cleanup(ctx, prune)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d lookups\n", deleted)
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := store.Recent(ctx, limit)
	if err != nil {
		return err
	}

	return printHistory(cmd.OutOrStdout(), entries, cfg.OutputWidth)
}

// printHistory writes one aligned row per lookup
func printHistory(w io.Writer, entries []history.Entry, width int) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No lookups recorded")
		return err
	}

	for _, e := range entries {
		status := "ok"
		detail := e.Summary
		if !e.OK() {
			status = "error"
			if e.Status != 0 {
				status = strconv.Itoa(e.Status)
			}
			detail = e.Error
		}

		line := fmt.Sprintf("%s  %s %s  %s  %s",
			e.Timestamp.Local().Format("2006-01-02 15:04"),
			padToWidth(e.Kind, 7),
			padToWidth(strconv.Itoa(e.EntityID), 10),
			padToWidth(status, 5),
			detail,
		)
		if _, err := fmt.Fprintln(w, padToWidth(line, width)); err != nil {
			return err
		}
	}
	return nil
}
