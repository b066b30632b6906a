package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/ademuri/spotify-insights/internal/analysis"
	"github.com/spf13/cobra"
)

var diversityCmd = &cobra.Command{
	Use:   "diversity [from] [to (optional)]",
	Short: "Scores how varied the user's listening is",
	Long: `Scores genres, artists, albums and time of day between 0 (always the same)
and 1 (evenly spread), plus an overall percentage. Without dates the last 30
days are used.`,
	Args:    cobra.RangeArgs(0, 2),
	PreRunE: requireUser,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadSettings()
		if err == nil {
			err = printDiversity(os.Stdout, cfg, args)
		}
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(diversityCmd)
}

type diversityReport struct {
	analysis.DiversityResult `yaml:",inline"`
	Overall                  float64 `json:"overall" yaml:"overall"`
	Plays                    int     `json:"plays" yaml:"plays"`
}

func printDiversity(w io.Writer, cfg settings, args []string) error {
	start, end, err := parseDateRangeOrDefault(args, cfg.location, defaultWindow)
	if err != nil {
		return err
	}

	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	plays, err := s.GetPlaysInRange(cfg.user, start, end)
	if err != nil {
		return err
	}

	d, err := analysis.ComputeDiversity(plays, cfg.location)
	if err != nil {
		return err
	}
	report := diversityReport{DiversityResult: d, Overall: analysis.OverallDiversity(d), Plays: len(plays)}

	table := Analysis{
		results: [][]string{
			{"Dimension", "Score"},
			{"Genre", formatScore(d.GenreDiversity)},
			{"Artist", formatScore(d.ArtistDiversity)},
			{"Album", formatScore(d.AlbumDiversity)},
			{"Time of day", formatScore(d.TimeOfDayDiversity)},
		},
		summary: fmt.Sprintf("Overall diversity %.0f%% over %d plays from %s to %s",
			report.Overall, report.Plays, start.Format(dateFormat), end.Format(dateFormat)),
	}
	return render(w, cfg.format, report, table)
}

func formatScore(score float64) string {
	return fmt.Sprintf("%.2f", score)
}
