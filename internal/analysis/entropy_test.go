package analysis

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntropy_SingleCategoryIsZero(t *testing.T) {
	for _, n := range []int{1, 7, 1000} {
		assert.InDelta(t, 0.0, Entropy(CategoryCountMap{"rock": n}), 1e-12, "n=%d", n)
	}
}

func TestEntropy_EvenDistributionIsMaximal(t *testing.T) {
	for _, k := range []int{2, 4, 20} {
		counts := CategoryCountMap{}
		for i := 0; i < k; i++ {
			counts[fmt.Sprintf("genre-%d", i)] = 3
		}
		assert.InDelta(t, math.Log(float64(k)), Entropy(counts), 1e-12, "k=%d", k)
	}

	uneven := CategoryCountMap{"a": 10, "b": 1, "c": 1, "d": 1}
	assert.Less(t, Entropy(uneven), math.Log(4))
}

func TestEntropy_ScaleInvariant(t *testing.T) {
	counts := CategoryCountMap{"a": 3, "b": 5, "c": 11}
	scaled := CategoryCountMap{"a": 30, "b": 50, "c": 110}
	assert.InDelta(t, Entropy(counts), Entropy(scaled), 1e-12)
}

func TestEntropy_Empty(t *testing.T) {
	assert.Equal(t, 0.0, Entropy(nil))
	assert.Equal(t, 0.0, Entropy(CategoryCountMap{}))
	assert.Equal(t, 0.0, Entropy(CategoryCountMap{"a": 0, "b": -2}))
}

func TestNormalizeDiversity(t *testing.T) {
	for _, k := range []int{2, 4, 20, 100, 200} {
		assert.InDelta(t, 1.0, NormalizeDiversity(math.Log(float64(k)), k), 1e-12, "k=%d", k)
	}

	// Not clamped when there are more categories than expected.
	assert.Greater(t, NormalizeDiversity(math.Log(8), MaxExpectedTimeBlocks), 1.0)

	assert.Equal(t, 0.0, NormalizeDiversity(1.5, 1))
	assert.Equal(t, 0.0, NormalizeDiversity(1.5, 0))
}

func TestComputeDiversity_Empty(t *testing.T) {
	d, err := ComputeDiversity(nil, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, DiversityResult{}, d)
}

func TestComputeDiversity_NilLocation(t *testing.T) {
	events := []PlayEvent{{ArtistName: "Artist A", PlayedAt: "2024-01-01T10:00:00Z"}}
	_, err := ComputeDiversity(events, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestComputeDiversity(t *testing.T) {
	var events []PlayEvent
	// One play in each of the four six-hour blocks, all by the same artist
	// and album.
	for _, hour := range []int{1, 7, 13, 19} {
		events = append(events, PlayEvent{
			ArtistName: "Artist A",
			AlbumName:  "Album A",
			Genres:     []string{"rock", "rock", "indie"},
			PlayedAt:   time.Date(2024, 1, 1, hour, 0, 0, 0, time.UTC).Format(time.RFC3339),
		})
	}
	events = append(events, PlayEvent{ArtistName: "Artist A", PlayedAt: "garbage"})

	d, err := ComputeDiversity(events, time.UTC)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, d.TimeOfDayDiversity, 1e-12)
	assert.InDelta(t, 0.0, d.ArtistDiversity, 1e-12)
	assert.InDelta(t, 0.0, d.AlbumDiversity, 1e-12)
	// rock and indie once per play each: ln(2)/ln(20).
	assert.InDelta(t, math.Log(2)/math.Log(20), d.GenreDiversity, 1e-12)
}

func TestComputeDiversity_Clamped(t *testing.T) {
	var events []PlayEvent
	for i := 0; i < 300; i++ {
		events = append(events, PlayEvent{
			ArtistName: fmt.Sprintf("Artist %d", i),
			AlbumName:  "Album",
			Genres:     []string{fmt.Sprintf("genre-%d", i)},
		})
	}

	d, err := ComputeDiversity(events, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 1.0, d.GenreDiversity)
	assert.Equal(t, 1.0, d.ArtistDiversity)
	assert.Equal(t, 1.0, d.AlbumDiversity)
	assert.Equal(t, 0.0, d.TimeOfDayDiversity)
}

func TestOverallDiversity(t *testing.T) {
	assert.InDelta(t, 100.0, OverallDiversity(DiversityResult{1, 1, 1, 1}), 1e-9)
	assert.InDelta(t, 0.0, OverallDiversity(DiversityResult{}), 1e-9)
	// Genre and artist carry twice the weight of album and time of day.
	assert.InDelta(t, 0.3/0.9*100, OverallDiversity(DiversityResult{GenreDiversity: 1}), 1e-9)
	assert.InDelta(t, 0.15/0.9*100, OverallDiversity(DiversityResult{AlbumDiversity: 1}), 1e-9)
}
