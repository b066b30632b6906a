package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ademuri/spotify-insights/internal/analysis"
	"github.com/ademuri/spotify-insights/internal/store"
	"github.com/spf13/cobra"
)

var reportHistoryLimit int
var reportTopN int

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generates a complete listening profile",
	Long: `Generates a YAML report of the user's listening: top artists and albums and
listening times of the last 30 days, diversity scores, personality and badges.
Use --format json for JSON.`,
	Args:    cobra.NoArgs,
	PreRunE: requireUser,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadSettings()
		if err == nil {
			err = runReport(os.Stdout, cfg, reportHistoryLimit, reportTopN)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating report: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().IntVar(&reportHistoryLimit, "limit", 1000, "number of most recent plays personality is derived from")
	reportCmd.Flags().IntVarP(&reportTopN, "number", "n", 10, "number of top artists and albums to list")
}

type Report struct {
	Metadata   ReportMetadata          `json:"metadata" yaml:"profile_metadata"`
	TopArtists []store.ArtistPlayCount `json:"topArtists" yaml:"top_artists"`
	TopAlbums  []store.AlbumPlayCount  `json:"topAlbums" yaml:"top_albums"`
	Profile    *analysis.Profile       `json:"profile" yaml:"profile"`
}

type ReportMetadata struct {
	User         string    `json:"user" yaml:"user"`
	GeneratedAt  time.Time `json:"generatedAt" yaml:"generated_at"`
	Timezone     string    `json:"timezone" yaml:"timezone"`
	TotalPlays   int64     `json:"totalPlays" yaml:"total_plays"`
	FirstListen  time.Time `json:"firstListen" yaml:"first_listen"`
	LatestListen time.Time `json:"latestListen" yaml:"latest_listen"`
	WindowStart  time.Time `json:"windowStart" yaml:"window_start"`
	WindowEnd    time.Time `json:"windowEnd" yaml:"window_end"`
	RecentPlays  int       `json:"recentPlays" yaml:"recent_plays"`
	HistoryPlays int       `json:"historyPlays" yaml:"history_plays"`
}

func runReport(w io.Writer, cfg settings, historyLimit int, topN int) error {
	if historyLimit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", historyLimit)
	}

	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	report, err := generateReport(s, cfg, historyLimit, topN)
	if err != nil {
		return fmt.Errorf("analyzing data: %w", err)
	}

	format := cfg.format
	if format == formatTable {
		format = formatYAML
	}
	return render(w, format, report, Analysis{})
}

func generateReport(s *store.Store, cfg settings, historyLimit int, topN int) (*Report, error) {
	total, err := s.GetTotalPlays(cfg.user)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, fmt.Errorf("no plays for %q, run import-history first", cfg.user)
	}

	end := clock.Now().In(cfg.location)
	start := end.Add(-defaultWindow)

	recent, err := s.GetPlaysInRange(cfg.user, start, end)
	if err != nil {
		return nil, err
	}
	history, err := s.GetRecentPlays(cfg.user, historyLimit)
	if err != nil {
		return nil, err
	}
	locations, err := s.GetArtistLocations(cfg.user)
	if err != nil {
		return nil, err
	}

	profile, err := analysis.BuildProfile(analysis.ProfileInput{
		Recent:    recent,
		History:   history,
		Locations: locations,
		Location:  cfg.location,
	})
	if err != nil {
		return nil, err
	}

	topArtists, err := s.GetTopArtists(cfg.user, start, end, topN)
	if err != nil {
		return nil, err
	}
	topAlbums, err := s.GetTopAlbums(cfg.user, start, end, topN)
	if err != nil {
		return nil, err
	}

	first, err := s.GetFirstListen(cfg.user)
	if err != nil {
		return nil, err
	}
	latest, err := s.GetLatestListen(cfg.user)
	if err != nil {
		return nil, err
	}

	return &Report{
		Metadata: ReportMetadata{
			User:         cfg.user,
			GeneratedAt:  end,
			Timezone:     cfg.location.String(),
			TotalPlays:   total,
			FirstListen:  first.In(cfg.location),
			LatestListen: latest.In(cfg.location),
			WindowStart:  start,
			WindowEnd:    end,
			RecentPlays:  len(recent),
			HistoryPlays: len(history),
		},
		TopArtists: topArtists,
		TopAlbums:  topAlbums,
		Profile:    profile,
	}, nil
}
