package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/ademuri/spotify-insights/internal/history"
	"github.com/spf13/cobra"
)

var importMinPlayedMs int64

var importHistoryCmd = &cobra.Command{
	Use:   "import-history <file...>",
	Short: "Imports Spotify streaming history files",
	Long: `Imports the JSON files of a Spotify data export into the database. Both the
account data export (StreamingHistory*.json) and the extended streaming history
(Streaming_History_Audio_*.json) are understood. Importing a file twice is safe.`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: requireUser,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadSettings()
		if err == nil {
			err = importHistory(os.Stdout, cfg, args, history.Options{MinPlayedMs: importMinPlayedMs})
		}
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(importHistoryCmd)

	importHistoryCmd.Flags().Int64Var(&importMinPlayedMs, "min-played", 0, "skip plays shorter than this many milliseconds")
}

func importHistory(w io.Writer, cfg settings, paths []string, opts history.Options) error {
	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.CreateUser(cfg.user); err != nil {
		return err
	}

	total := 0
	for _, path := range paths {
		result, err := history.ReadFile(path, opts)
		if err != nil {
			return err
		}
		added, err := s.AddPlays(cfg.user, result.Plays)
		if err != nil {
			return fmt.Errorf("importing %s: %w", path, err)
		}
		fmt.Fprintf(w, "Imported %d new plays from %s (%d already present, %d skipped)\n",
			added, path, len(result.Plays)-added, result.Skipped)
		total += added
	}

	if err := s.SetLastUpdated(cfg.user, clock.Now()); err != nil {
		return err
	}
	fmt.Fprintf(w, "Imported %d new plays for %s\n", total, cfg.user)
	return nil
}
