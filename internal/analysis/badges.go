package analysis

import "math"

// TraitName selects a single trait from a TraitVector.
type TraitName int

const (
	TraitVariety TraitName = iota
	TraitConsistency
	TraitDiscovery
	TraitLoyalty
	TraitNocturnality
	TraitMainstream
	TraitGlobalDiscovery
)

func (n TraitName) String() string {
	switch n {
	case TraitVariety:
		return "variety"
	case TraitConsistency:
		return "consistency"
	case TraitDiscovery:
		return "discovery"
	case TraitLoyalty:
		return "loyalty"
	case TraitNocturnality:
		return "nocturnality"
	case TraitMainstream:
		return "mainstream"
	case TraitGlobalDiscovery:
		return "globalDiscovery"
	}
	return "unknown"
}

// Value returns the named trait.
func (t TraitVector) Value(name TraitName) float64 {
	switch name {
	case TraitVariety:
		return t.Variety
	case TraitConsistency:
		return t.Consistency
	case TraitDiscovery:
		return t.Discovery
	case TraitLoyalty:
		return t.Loyalty
	case TraitNocturnality:
		return t.Nocturnality
	case TraitMainstream:
		return t.Mainstream
	case TraitGlobalDiscovery:
		return t.GlobalDiscovery
	}
	return 0
}

// Comparison is the direction a badge's score is checked against its
// threshold.
type Comparison int

const (
	AtLeast Comparison = iota
	AtMost
)

// Badge is a catalog entry. A badge either reads a single Trait or, when
// Composite is set, computes its score from several traits. Composite badges
// always compare AtLeast.
type Badge struct {
	Name        string                    `json:"name" yaml:"name"`
	Emoji       string                    `json:"emoji" yaml:"emoji"`
	Description string                    `json:"description" yaml:"description"`
	Threshold   float64                   `json:"threshold" yaml:"threshold"`
	Trait       TraitName                 `json:"-" yaml:"-"`
	Composite   func(TraitVector) float64 `json:"-" yaml:"-"`
	Comparison  Comparison                `json:"-" yaml:"-"`
}

// Badges is the fixed badge catalog.
var Badges = []Badge{
	{
		Name:        "Genre Nomad",
		Emoji:       "🧭",
		Description: "Most of your plays are by different artists.",
		Threshold:   0.7,
		Trait:       TraitVariety,
		Comparison:  AtLeast,
	},
	{
		Name:        "Creature of Habit",
		Emoji:       "🔁",
		Description: "You listen at steady times, day after day.",
		Threshold:   0.7,
		Trait:       TraitConsistency,
		Comparison:  AtLeast,
	},
	{
		Name:        "Fresh Finds",
		Emoji:       "🔍",
		Description: "Half of your recent plays are artists you had never played before.",
		Threshold:   0.5,
		Trait:       TraitDiscovery,
		Comparison:  AtLeast,
	},
	{
		Name:        "Ride or Die",
		Emoji:       "💿",
		Description: "You keep replaying the artists you love.",
		Threshold:   0.7,
		Trait:       TraitLoyalty,
		Comparison:  AtLeast,
	},
	{
		Name:        "Night Owl",
		Emoji:       "🦉",
		Description: "A big share of your listening happens late at night.",
		Threshold:   0.4,
		Trait:       TraitNocturnality,
		Comparison:  AtLeast,
	},
	{
		Name:        "Trend Surfer",
		Emoji:       "🏄",
		Description: "You ride the wave of the most popular artists.",
		Threshold:   0.7,
		Trait:       TraitMainstream,
		Comparison:  AtLeast,
	},
	{
		Name:        "Underground Scout",
		Emoji:       "🕵️",
		Description: "You dig for artists far from the charts.",
		Threshold:   0.3,
		Trait:       TraitMainstream,
		Comparison:  AtMost,
	},
	{
		Name:        "Globetrotter",
		Emoji:       "🌍",
		Description: "Your artists come from all over the world.",
		Threshold:   0.5,
		Trait:       TraitGlobalDiscovery,
		Comparison:  AtLeast,
	},
	{
		Name:        "Crate Digger",
		Emoji:       "⛏️",
		Description: "You keep discovering artists most people have never heard of.",
		Threshold:   0.4,
		Composite: func(t TraitVector) float64 {
			return (1 - t.Mainstream) * t.Discovery
		},
	},
	{
		Name:        "Rhythm Keeper",
		Emoji:       "⏰",
		Description: "You are firmly a day listener or a night listener, rarely both.",
		Threshold:   0.8,
		Composite: func(t TraitVector) float64 {
			return math.Abs(t.Nocturnality-0.5) * 2
		},
	},
}

// Score returns the value the badge compares against its threshold.
func (b Badge) Score(t TraitVector) float64 {
	if b.Composite != nil {
		return b.Composite(t)
	}
	return t.Value(b.Trait)
}

// Earned reports whether the traits satisfy the badge.
func (b Badge) Earned(t TraitVector) bool {
	score := b.Score(t)
	if b.Composite == nil && b.Comparison == AtMost {
		return score <= b.Threshold
	}
	return score >= b.Threshold
}

// EvaluateBadges returns the catalog badges earned by the traits, in catalog
// order.
func EvaluateBadges(t TraitVector, catalog []Badge) []Badge {
	earned := make([]Badge, 0, len(catalog))
	for _, b := range catalog {
		if b.Earned(t) {
			earned = append(earned, b)
		}
	}
	return earned
}
