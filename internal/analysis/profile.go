package analysis

import (
	"fmt"
	"time"
)

// ProfileInput holds the already windowed plays a profile is built from.
// Recent plays are typically the trailing 30 days, History the last 1000
// plays.
type ProfileInput struct {
	Recent    []PlayEvent
	History   []PlayEvent
	Locations map[string]ArtistLocation
	Location  *time.Location
}

// Profile is every derived metric for one user.
type Profile struct {
	Temporal         HeatmapResult      `json:"temporal" yaml:"temporal"`
	Diversity        DiversityResult    `json:"diversity" yaml:"diversity"`
	OverallDiversity float64            `json:"overallDiversity" yaml:"overall_diversity"`
	Personality      PersonalityResult  `json:"personality" yaml:"personality"`
	Ranking          []PersonalityScore `json:"ranking" yaml:"ranking"`
	Badges           []Badge            `json:"badges" yaml:"badges"`
}

// BuildProfile runs every analysis. The computations are independent of
// each other.
func BuildProfile(in ProfileInput) (*Profile, error) {
	temporal, err := AnalyzeTemporal(in.Recent, in.Location)
	if err != nil {
		return nil, fmt.Errorf("temporal patterns: %w", err)
	}

	traits, err := CalculateTraits(in.History, in.Locations, in.Location)
	if err != nil {
		return nil, fmt.Errorf("traits: %w", err)
	}

	diversity, err := ComputeDiversity(in.Recent, in.Location)
	if err != nil {
		return nil, fmt.Errorf("diversity: %w", err)
	}

	return &Profile{
		Temporal:         temporal,
		Diversity:        diversity,
		OverallDiversity: OverallDiversity(diversity),
		Personality:      Classify(traits),
		Ranking:          RankPersonalities(traits),
		Badges:           EvaluateBadges(traits, Badges),
	}, nil
}
