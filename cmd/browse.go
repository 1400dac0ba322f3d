package cmd

import (
	"github.com/jfmyers9/crates/internal/catalog"
	"github.com/jfmyers9/crates/internal/tui"
	"github.com/spf13/cobra"
)

// browseCmd represents the browse command
var browseCmd = &cobra.Command{
	Use:   "browse <release|master|artist|label> <id>",
	Short: "Browse an entity in a terminal tree view",
	Long: `Open a terminal UI showing an entity as a tree of its fields.

List fields such as a tracklist or an artist's members expand on Enter,
straight from the fetched record. Press 'o' on a nested artist, label or
release to fetch it in full, 'b' to go back, and 'q' to quit.`,
	Example: "  crates browse artist 3840",
	Args:    cobra.ExactArgs(2),
	RunE:    runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	kind, err := catalog.ParseKind(args[0])
	if err != nil {
		return err
	}
	id, err := catalog.ParseID(kind, args[1])
	if err != nil {
		return err
	}

	// Console output would draw over the UI
	if logFile == "" {
		logLevel = "disabled"
	}

	svc, _, cleanup, err := openService()
	if err != nil {
		return err
	}
	defer cleanup()

	app := tui.New(svc.Lookup)
	return app.Run(cmd.Context(), kind, id)
}
