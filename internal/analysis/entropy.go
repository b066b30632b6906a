package analysis

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Expected category counts used to normalize each diversity metric. A user
// with more categories than this scores above 1 before clamping.
const (
	MaxExpectedGenres     = 20
	MaxExpectedArtists    = 100
	MaxExpectedAlbums     = 200
	MaxExpectedTimeBlocks = 4
)

// Presentation weights for OverallDiversity.
const (
	genreWeight     = 0.3
	artistWeight    = 0.3
	albumWeight     = 0.15
	timeOfDayWeight = 0.15
)

const hoursPerTimeBlock = 6

// Entropy returns the Shannon entropy (natural log) of the count
// distribution. Non-positive counts are ignored, and an empty distribution
// has entropy 0.
func Entropy(counts CategoryCountMap) float64 {
	total := 0
	for _, c := range counts {
		if c > 0 {
			total += c
		}
	}
	if total == 0 {
		return 0
	}

	h := 0.0
	for _, c := range counts {
		if c <= 0 {
			continue
		}
		p := float64(c) / float64(total)
		h -= p * math.Log(p)
	}
	return h
}

// NormalizeDiversity divides a raw entropy by ln(maxExpected). The result is
// not clamped: more than maxExpected evenly used categories yields a value
// above 1.
func NormalizeDiversity(entropy float64, maxExpected int) float64 {
	if maxExpected < 2 {
		return 0
	}
	return entropy / math.Log(float64(maxExpected))
}

// ComputeDiversity scores genre, artist, album and time-of-day diversity of
// the events. Time-of-day only counts events with a parsable timestamp.
func ComputeDiversity(events []PlayEvent, loc *time.Location) (DiversityResult, error) {
	if loc == nil {
		return DiversityResult{}, fmt.Errorf("ComputeDiversity: nil location: %w", ErrInvalidInput)
	}

	genres := CategoryCountMap{}
	artists := CategoryCountMap{}
	albums := CategoryCountMap{}
	blocks := CategoryCountMap{}

	for _, e := range events {
		seen := make(map[string]bool, len(e.Genres))
		for _, g := range e.Genres {
			if g == "" || seen[g] {
				continue
			}
			seen[g] = true
			genres[g]++
		}
		if e.ArtistName != "" {
			artists[e.ArtistName]++
		}
		if e.AlbumName != "" {
			albums[e.ArtistName+"\x00"+e.AlbumName]++
		}
		if t, ok := localTime(e, loc); ok {
			blocks[strconv.Itoa(t.Hour()/hoursPerTimeBlock)]++
		}
	}

	return DiversityResult{
		GenreDiversity:     clamp01(NormalizeDiversity(Entropy(genres), MaxExpectedGenres)),
		ArtistDiversity:    clamp01(NormalizeDiversity(Entropy(artists), MaxExpectedArtists)),
		AlbumDiversity:     clamp01(NormalizeDiversity(Entropy(albums), MaxExpectedAlbums)),
		TimeOfDayDiversity: clamp01(NormalizeDiversity(Entropy(blocks), MaxExpectedTimeBlocks)),
	}, nil
}

// OverallDiversity combines the scores into a single 0-100 percentage.
func OverallDiversity(d DiversityResult) float64 {
	weighted := d.GenreDiversity*genreWeight +
		d.ArtistDiversity*artistWeight +
		d.AlbumDiversity*albumWeight +
		d.TimeOfDayDiversity*timeOfDayWeight
	return weighted / (genreWeight + artistWeight + albumWeight + timeOfDayWeight) * 100
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
