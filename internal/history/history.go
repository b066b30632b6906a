// Package history reads Spotify streaming history exports.
//
// Two layouts are understood. The account data export
// (StreamingHistory*.json) carries endTime, artistName, trackName and
// msPlayed. The extended streaming history (Streaming_History_Audio_*.json,
// formerly endsong_*.json) carries ts, ms_played and master_metadata_* fields.
package history

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ademuri/spotify-insights/internal/store"
)

// accountDataLayout is the minute precision UTC time used by endTime.
const accountDataLayout = "2006-01-02 15:04"

type entry struct {
	EndTime    string `json:"endTime"`
	ArtistName string `json:"artistName"`
	TrackName  string `json:"trackName"`
	MsPlayed   *int64 `json:"msPlayed"`

	Ts          string  `json:"ts"`
	MsPlayedExt *int64  `json:"ms_played"`
	Track       *string `json:"master_metadata_track_name"`
	Artist      *string `json:"master_metadata_album_artist_name"`
	Album       *string `json:"master_metadata_album_album_name"`
	TrackURI    *string `json:"spotify_track_uri"`
}

func (e entry) extended() bool {
	return e.Ts != "" || e.MsPlayedExt != nil || e.Track != nil
}

type Options struct {
	// Plays shorter than this are dropped.
	MinPlayedMs int64
}

type Result struct {
	Plays []store.PlayImport
	// Skipped counts entries that are not music plays (podcast episodes,
	// audiobooks) or that were shorter than MinPlayedMs.
	Skipped int
}

// Parse decodes one export file. Timestamps that do not parse are kept as
// they are.
func Parse(r io.Reader, opts Options) (*Result, error) {
	var entries []entry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decoding streaming history: %w", err)
	}

	result := &Result{Plays: make([]store.PlayImport, 0, len(entries))}
	for i, e := range entries {
		play, ok := toPlay(e)
		if !ok {
			result.Skipped++
			continue
		}
		if play.DurationMs < 0 {
			return nil, fmt.Errorf("entry %d (%q): negative play duration %d", i, play.TrackName, play.DurationMs)
		}
		if play.DurationMs < opts.MinPlayedMs {
			result.Skipped++
			continue
		}
		result.Plays = append(result.Plays, play)
	}
	return result, nil
}

func ReadFile(path string, opts Options) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	result, err := Parse(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return result, nil
}

func toPlay(e entry) (store.PlayImport, bool) {
	if e.extended() {
		track, artist := deref(e.Track), deref(e.Artist)
		if track == "" || artist == "" {
			return store.PlayImport{}, false
		}
		return store.PlayImport{
			Artist:     artist,
			Album:      deref(e.Album),
			TrackName:  track,
			SpotifyID:  deref(e.TrackURI),
			Date:       strings.TrimSpace(e.Ts),
			DurationMs: deref(e.MsPlayedExt),
		}, true
	}

	if e.TrackName == "" || e.ArtistName == "" {
		return store.PlayImport{}, false
	}
	return store.PlayImport{
		Artist:     e.ArtistName,
		TrackName:  e.TrackName,
		Date:       normalizeEndTime(e.EndTime),
		DurationMs: deref(e.MsPlayed),
	}, true
}

// normalizeEndTime rewrites an account data endTime, which is in UTC, as
// RFC 3339 so that it is not read in the local zone later.
func normalizeEndTime(endTime string) string {
	endTime = strings.TrimSpace(endTime)
	t, err := time.Parse(accountDataLayout, endTime)
	if err != nil {
		return endTime
	}
	return t.UTC().Format(time.RFC3339)
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
