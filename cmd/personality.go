package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ademuri/spotify-insights/internal/analysis"
	"github.com/spf13/cobra"
)

var personalityLimit int

var personalityCmd = &cobra.Command{
	Use:   "personality",
	Short: "Classifies the user's listening personality",
	Long: `Derives behavioral traits from the most recent plays, picks the two
personalities that fit them best, and lists the badges earned.`,
	Args:    cobra.NoArgs,
	PreRunE: requireUser,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadSettings()
		if err == nil {
			err = printPersonality(os.Stdout, cfg, personalityLimit)
		}
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(personalityCmd)

	personalityCmd.Flags().IntVarP(&personalityLimit, "limit", "n", 1000, "number of most recent plays to analyze")
}

type personalityReport struct {
	Personality analysis.PersonalityResult  `json:"personality" yaml:"personality"`
	Ranking     []analysis.PersonalityScore `json:"ranking" yaml:"ranking"`
	Badges      []analysis.Badge            `json:"badges" yaml:"badges"`
	Plays       int                         `json:"plays" yaml:"plays"`
}

func printPersonality(w io.Writer, cfg settings, limit int) error {
	if limit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", limit)
	}

	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	plays, err := s.GetRecentPlays(cfg.user, limit)
	if err != nil {
		return err
	}
	locations, err := s.GetArtistLocations(cfg.user)
	if err != nil {
		return err
	}

	traits, err := analysis.CalculateTraits(plays, locations, cfg.location)
	if err != nil {
		return fmt.Errorf("calculating traits: %w", err)
	}
	report := personalityReport{
		Personality: analysis.Classify(traits),
		Ranking:     analysis.RankPersonalities(traits),
		Badges:      analysis.EvaluateBadges(traits, analysis.Badges),
		Plays:       len(plays),
	}

	return render(w, cfg.format, report, personalityTable(report))
}

func personalityTable(report personalityReport) Analysis {
	t := report.Personality.Traits
	a := Analysis{results: [][]string{
		{"Trait", "Score"},
		{"Variety", formatScore(t.Variety)},
		{"Consistency", formatScore(t.Consistency)},
		{"Discovery", formatScore(t.Discovery)},
		{"Loyalty", formatScore(t.Loyalty)},
		{"Nocturnality", formatScore(t.Nocturnality)},
		{"Mainstream", formatScore(t.Mainstream)},
		{"Global discovery", formatScore(t.GlobalDiscovery)},
	}}

	p := report.Personality
	var summary strings.Builder
	fmt.Fprintf(&summary, "Based on %d plays you are a %s (%s, then %s).\n",
		report.Plays, p.ListeningCharacter, p.PrimaryTrait, p.SecondaryTrait)
	fmt.Fprintf(&summary, "%s\n", p.Description)
	if len(report.Badges) == 0 {
		summary.WriteString("No badges earned yet.")
	} else {
		summary.WriteString("Badges:")
		for _, b := range report.Badges {
			fmt.Fprintf(&summary, "\n  %s %s: %s", b.Emoji, b.Name, b.Description)
		}
	}
	a.summary = summary.String()
	return a
}
