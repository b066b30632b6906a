package analysis

import (
	"fmt"
	"math"
	"sort"
)

// Personality is one of the listening personalities a TraitVector can be
// classified as. The order of the constants is the tie-break order.
type Personality int

const (
	Explorer Personality = iota
	Loyalist
	NightOwl
	EarlyBird
	Eclectic
	Focused
	MainstreamListener

	numPersonalities
)

// FallbackCharacter names a personality with no description of its own.
const FallbackCharacter = "Melodist"

// Scores closer than this are ties and fall back to catalog order.
const scoreEpsilon = 1e-9

// Personalities lists every personality in catalog order.
func Personalities() []Personality {
	all := make([]Personality, 0, numPersonalities)
	for p := Explorer; p < numPersonalities; p++ {
		all = append(all, p)
	}
	return all
}

func (p Personality) String() string {
	switch p {
	case Explorer:
		return "Explorer"
	case Loyalist:
		return "Loyalist"
	case NightOwl:
		return "Night Owl"
	case EarlyBird:
		return "Early Bird"
	case Eclectic:
		return "Eclectic"
	case Focused:
		return "Focused"
	case MainstreamListener:
		return "Mainstream"
	}
	return fmt.Sprintf("Personality(%d)", int(p))
}

func (p Personality) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Score computes the composite score of p for the traits.
func (p Personality) Score(t TraitVector) float64 {
	switch p {
	case Explorer:
		return 0.6*t.Variety + 0.4*t.Discovery
	case Loyalist:
		return 0.7*t.Loyalty + 0.3*t.Consistency
	case NightOwl:
		return t.Nocturnality
	case EarlyBird:
		return t.Consistency * (1 - t.Nocturnality)
	case Eclectic:
		return t.Variety
	case Focused:
		return (1 - t.Variety) * t.Consistency
	case MainstreamListener:
		return t.Mainstream
	}
	return 0
}

// PersonalityScore pairs a personality with its composite score.
type PersonalityScore struct {
	Personality Personality `json:"personality" yaml:"personality"`
	Score       float64     `json:"score" yaml:"score"`
}

// RankPersonalities scores every personality and sorts them best first.
// Equal scores keep catalog order.
func RankPersonalities(t TraitVector) []PersonalityScore {
	ranked := make([]PersonalityScore, 0, numPersonalities)
	for _, p := range Personalities() {
		ranked = append(ranked, PersonalityScore{Personality: p, Score: p.Score(t)})
	}
	// Scores within scoreEpsilon of each other are compared as equal.
	quantized := make(map[Personality]float64, len(ranked))
	for _, r := range ranked {
		quantized[r.Personality] = math.Round(r.Score / scoreEpsilon)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return quantized[ranked[i].Personality] > quantized[ranked[j].Personality]
	})
	return ranked
}

// Classify picks the two best matching personalities for the traits.
func Classify(t TraitVector) PersonalityResult {
	ranked := RankPersonalities(t)
	character, description := Describe(ranked[0].Personality)
	return PersonalityResult{
		PrimaryTrait:       ranked[0].Personality,
		SecondaryTrait:     ranked[1].Personality,
		ListeningCharacter: character,
		Traits:             t,
		Description:        description,
	}
}

// Describe returns the listening character and description for p.
func Describe(p Personality) (character string, description string) {
	switch p {
	case Explorer:
		return "Sonic Voyager", "Always chasing the next sound. Your history is a trail of new artists and unexpected detours."
	case Loyalist:
		return "Devoted Fan", "You know what you love and keep coming back to it. Your favorite artists can count on you."
	case NightOwl:
		return "Midnight Listener", "Your music comes alive after dark. Late nights are when you do your best listening."
	case EarlyBird:
		return "Morning Maestro", "Steady, daytime listening that follows a rhythm. Music is part of your routine."
	case Eclectic:
		return "Genre Hopper", "No two plays look alike. You spread your attention across a wide range of artists."
	case Focused:
		return "Deep Diver", "You go deep rather than wide, listening to a tight circle of artists on a regular schedule."
	case MainstreamListener:
		return "Chart Chaser", "You have your finger on the pulse. The artists everyone is talking about are in your rotation."
	}
	return FallbackCharacter, "Your listening defies easy categorization."
}
