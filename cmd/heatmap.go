package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ademuri/spotify-insights/internal/analysis"
	"github.com/spf13/cobra"
)

// defaultWindow is the trailing window commands look at without date arguments.
const defaultWindow = 30 * 24 * time.Hour

var heatmapCmd = &cobra.Command{
	Use:   "heatmap [from] [to (optional)]",
	Short: "Shows when during the week the user listens",
	Long: `Counts plays per day of the week and hour of the day, in the configured time
zone. Without dates the last 30 days are used. Date strings look like 'yyyy',
'yyyy-mm', 'yyyy-mm-dd', or relative like '30d', '12w', '6m', '1y'.`,
	Args:    cobra.RangeArgs(0, 2),
	PreRunE: requireUser,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadSettings()
		if err == nil {
			err = printHeatmap(os.Stdout, cfg, args)
		}
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(heatmapCmd)
}

func printHeatmap(w io.Writer, cfg settings, args []string) error {
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
	result, err := analysis.AnalyzeTemporal(plays, cfg.location)
	if err != nil {
		return fmt.Errorf("analyzing listening times: %w", err)
	}

	return render(w, cfg.format, result, heatmapTable(result, start, end))
}

func heatmapTable(result analysis.HeatmapResult, start, end time.Time) Analysis {
	header := []string{"Day"}
	for hour := 0; hour < analysis.HoursPerDay; hour++ {
		header = append(header, fmt.Sprintf("%02d", hour))
	}

	a := Analysis{results: [][]string{header}}
	for day, counts := range result.Heatmap {
		row := []string{analysis.DayNames[day][:3]}
		for _, count := range counts {
			if count == 0 {
				row = append(row, "")
			} else {
				row = append(row, strconv.Itoa(count))
			}
		}
		a.results = append(a.results, row)
	}

	stats := result.Stats
	var summary strings.Builder
	fmt.Fprintf(&summary, "%d plays, %s listened from %s to %s\n",
		stats.TotalPlays, formatDuration(stats.TotalDuration), start.Format(dateFormat), end.Format(dateFormat))
	if stats.TotalPlays > 0 {
		fmt.Fprintf(&summary, "Peak: %s at %02d:00\n",
			analysis.DayNames[stats.PeakListening.Day], stats.PeakListening.Hour)
	}
	if stats.Streak.StartDay != nil {
		fmt.Fprintf(&summary, "Longest streak: %d days, %s to %s\n",
			stats.Streak.Count, *stats.Streak.StartDay, *stats.Streak.EndDay)
	}
	a.summary = strings.TrimSuffix(summary.String(), "\n")
	return a
}

const dateFormat = "2006-01-02"

func formatDuration(ms int64) string {
	return (time.Duration(ms) * time.Millisecond).Round(time.Second).String()
}
