package analysis

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		traits    TraitVector
		primary   Personality
		secondary Personality
		character string
	}{
		{
			name:      "explorer",
			traits:    TraitVector{Variety: 0.9, Discovery: 0.9, Consistency: 0.1, Mainstream: 0.2},
			primary:   Explorer,
			secondary: Eclectic,
			character: "Sonic Voyager",
		},
		{
			name:      "night owl",
			traits:    TraitVector{Nocturnality: 0.95, Variety: 0.2, Mainstream: 0.3},
			primary:   NightOwl,
			secondary: MainstreamListener,
			character: "Midnight Listener",
		},
		{
			name:      "mainstream",
			traits:    TraitVector{Mainstream: 0.9, Variety: 0.4, Discovery: 0.1},
			primary:   MainstreamListener,
			secondary: Eclectic,
			character: "Chart Chaser",
		},
		{
			// Loyalist, Early Bird and Focused all score 0.9.
			name:      "ties keep catalog order",
			traits:    TraitVector{Loyalty: 0.9, Consistency: 0.9, Mainstream: 0.5},
			primary:   Loyalist,
			secondary: EarlyBird,
			character: "Devoted Fan",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := Classify(tc.traits)
			assert.Equal(t, tc.primary, result.PrimaryTrait)
			assert.Equal(t, tc.secondary, result.SecondaryTrait)
			assert.Equal(t, tc.character, result.ListeningCharacter)
			assert.Equal(t, tc.traits, result.Traits)
			assert.NotEmpty(t, result.Description)
		})
	}
}

func TestClassify_AllZero(t *testing.T) {
	result := Classify(TraitVector{})
	// Every score is 0, so catalog order decides.
	assert.Equal(t, Explorer, result.PrimaryTrait)
	assert.Equal(t, Loyalist, result.SecondaryTrait)
}

func TestRankPersonalities(t *testing.T) {
	ranked := RankPersonalities(TraitVector{Variety: 0.5, Consistency: 0.4, Nocturnality: 0.25, Mainstream: 0.6})
	require.Len(t, ranked, len(Personalities()))
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Score+scoreEpsilon, ranked[i].Score)
	}
	assert.Equal(t, MainstreamListener, ranked[0].Personality)
}

func TestRankPersonalities_NearTies(t *testing.T) {
	ranked := RankPersonalities(TraitVector{Nocturnality: 0.6e-9, Variety: 1.2e-9})
	position := map[Personality]int{}
	for i, r := range ranked {
		position[r.Personality] = i
		if i > 0 {
			assert.GreaterOrEqual(t, math.Round(ranked[i-1].Score/scoreEpsilon), math.Round(r.Score/scoreEpsilon))
		}
	}
	assert.Less(t, position[Eclectic], position[Loyalist])
}

func TestPersonality_Score(t *testing.T) {
	traits := TraitVector{Variety: 0.5, Consistency: 0.4, Discovery: 0.25, Loyalty: 0.8, Nocturnality: 0.25, Mainstream: 0.6}
	expected := map[Personality]float64{
		Explorer:           0.6*0.5 + 0.4*0.25,
		Loyalist:           0.7*0.8 + 0.3*0.4,
		NightOwl:           0.25,
		EarlyBird:          0.4 * 0.75,
		Eclectic:           0.5,
		Focused:            0.5 * 0.4,
		MainstreamListener: 0.6,
	}
	for p, want := range expected {
		assert.InDelta(t, want, p.Score(traits), 1e-12, p.String())
	}
}

func TestDescribe(t *testing.T) {
	for _, p := range Personalities() {
		character, description := Describe(p)
		assert.NotEqual(t, FallbackCharacter, character, p.String())
		assert.NotEmpty(t, description)
	}

	character, _ := Describe(numPersonalities)
	assert.Equal(t, FallbackCharacter, character)
}

func TestPersonality_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(PersonalityScore{Personality: NightOwl, Score: 0.5})
	require.NoError(t, err)
	assert.JSONEq(t, `{"personality":"Night Owl","score":0.5}`, string(out))
}
