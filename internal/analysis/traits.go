package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// DiscoveryWindow is how many of the most recent plays the discovery rate
// looks at.
const DiscoveryWindow = 50

// DefaultMainstream is the mainstream score when no play carries artist
// popularity.
const DefaultMainstream = 0.5

// globalDiscoverySaturation is the country count at which globalDiscovery
// reaches 1.
const globalDiscoverySaturation = 30

var nightHours = map[int]bool{22: true, 23: true, 0: true, 1: true, 2: true, 3: true, 4: true}

// CalculateTraits derives every trait from the same events. locations may be
// nil, in which case GlobalDiscovery is 0.
func CalculateTraits(events []PlayEvent, locations map[string]ArtistLocation, loc *time.Location) (TraitVector, error) {
	if loc == nil {
		return TraitVector{}, fmt.Errorf("CalculateTraits: nil location: %w", ErrInvalidInput)
	}
	for _, e := range events {
		if p := e.ArtistPopularity; p != nil && (*p < 0 || *p > 100) {
			return TraitVector{}, fmt.Errorf("CalculateTraits: popularity %d for %q out of range: %w", *p, e.ArtistName, ErrInvalidInput)
		}
	}

	return TraitVector{
		Variety:         Variety(events),
		Consistency:     Consistency(events, loc),
		Discovery:       Discovery(events, loc),
		Loyalty:         Loyalty(events),
		Nocturnality:    Nocturnality(events, loc),
		Mainstream:      Mainstream(events),
		GlobalDiscovery: GlobalDiscovery(locationsFor(events, locations)),
	}, nil
}

// Variety is the share of plays that are by distinct artists.
func Variety(events []PlayEvent) float64 {
	if len(events) == 0 {
		return 0
	}
	return math.Min(float64(len(playsPerArtist(events)))/float64(len(events)), 1)
}

// Consistency rewards even spread across hours of the day (weight 0.6) and
// days of the week (weight 0.4). Zero when no timestamp parses.
func Consistency(events []PlayEvent, loc *time.Location) float64 {
	hours := make([]float64, HoursPerDay)
	days := make([]float64, DaysPerWeek)
	for _, e := range events {
		t, ok := localTime(e, loc)
		if !ok {
			continue
		}
		hours[t.Hour()]++
		days[t.Weekday()]++
	}
	return 0.6*evenness(hours) + 0.4*evenness(days)
}

// evenness is 1/(1+cv) for the coefficient of variation cv of the slots.
func evenness(slots []float64) float64 {
	mean, variance := meanAndVariance(slots)
	if mean == 0 {
		return 0
	}
	return 1 / (1 + math.Sqrt(variance)/mean)
}

// meanAndVariance returns the population mean and variance.
func meanAndVariance(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	sq := 0.0
	for _, v := range values {
		sq += (v - mean) * (v - mean)
	}
	return mean, sq / float64(len(values))
}

// Discovery is the share of the last DiscoveryWindow plays whose artist had
// not been heard earlier in the sequence.
func Discovery(events []PlayEvent, loc *time.Location) float64 {
	type timedPlay struct {
		at     time.Time
		artist string
	}
	plays := make([]timedPlay, 0, len(events))
	for _, e := range events {
		if t, ok := localTime(e, loc); ok {
			plays = append(plays, timedPlay{at: t, artist: e.ArtistName})
		}
	}
	if len(plays) == 0 {
		return 0
	}
	sort.SliceStable(plays, func(i, j int) bool {
		return plays[i].at.Before(plays[j].at)
	})

	seen := make(map[string]bool)
	marks := make([]int, len(plays))
	for i, p := range plays {
		if !seen[p.artist] {
			marks[i] = 1
			seen[p.artist] = true
		}
	}

	if len(marks) > DiscoveryWindow {
		marks = marks[len(marks)-DiscoveryWindow:]
	}
	newArtists := 0
	for _, m := range marks {
		newArtists += m
	}
	return float64(newArtists) / float64(len(marks))
}

// Loyalty is the share of plays that repeat an already played artist.
func Loyalty(events []PlayEvent) float64 {
	if len(events) == 0 {
		return 0
	}
	repeats := 0
	for _, plays := range playsPerArtist(events) {
		if plays > 1 {
			repeats += plays - 1
		}
	}
	return float64(repeats) / float64(len(events))
}

// Nocturnality is the share of plays between 22:00 and 04:59 among plays
// with a parsable timestamp.
func Nocturnality(events []PlayEvent, loc *time.Location) float64 {
	night, total := 0, 0
	for _, e := range events {
		t, ok := localTime(e, loc)
		if !ok {
			continue
		}
		total++
		if nightHours[t.Hour()] {
			night++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(night) / float64(total)
}

// Mainstream averages artist popularity. Each artist's mean popularity is
// weighted by how often the artist was played. Returns DefaultMainstream
// when no play carries popularity.
func Mainstream(events []PlayEvent) float64 {
	type popularity struct {
		sum, n int
	}
	byArtist := make(map[string]*popularity)
	for _, e := range events {
		if e.ArtistPopularity == nil {
			continue
		}
		p, ok := byArtist[e.ArtistName]
		if !ok {
			p = &popularity{}
			byArtist[e.ArtistName] = p
		}
		p.sum += *e.ArtistPopularity
		p.n++
	}
	if len(byArtist) == 0 {
		return DefaultMainstream
	}

	plays := playsPerArtist(events)
	weighted, weights := 0.0, 0
	for artist, p := range byArtist {
		mean := float64(p.sum) / float64(p.n)
		weighted += mean * float64(plays[artist])
		weights += plays[artist]
	}
	return clamp01(weighted / float64(weights) / 100)
}

// GlobalDiscovery grows logarithmically with the number of distinct known
// countries: about 0.5 at 5 countries, 0.75 at 10 and 1 from 29 on.
func GlobalDiscovery(locations map[string]ArtistLocation) float64 {
	countries := make(map[string]bool)
	for _, l := range locations {
		if c := strings.TrimSpace(l.Country); c != "" {
			countries[strings.ToUpper(c)] = true
		}
	}
	if len(countries) == 0 {
		return 0
	}
	return math.Min(math.Log(float64(len(countries)+1))/math.Log(globalDiscoverySaturation), 1)
}

// locationsFor keeps only the locations of artists present in events.
func locationsFor(events []PlayEvent, locations map[string]ArtistLocation) map[string]ArtistLocation {
	if len(locations) == 0 {
		return nil
	}
	present := make(map[string]ArtistLocation)
	for _, e := range events {
		if l, ok := locations[e.ArtistName]; ok {
			present[e.ArtistName] = l
		}
	}
	return present
}

func playsPerArtist(events []PlayEvent) map[string]int {
	plays := make(map[string]int)
	for _, e := range events {
		plays[e.ArtistName]++
	}
	return plays
}
