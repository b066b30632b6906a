package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ademuri/spotify-insights/internal/analysis"
	"github.com/ademuri/spotify-insights/internal/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// Monday 2024-03-11 and Tuesday 2024-03-12 fall within the 30 days before
// testNow; the 2023 play does not.
const testHistory = `[
  {"ts": "2024-03-11T22:00:00Z", "ms_played": 200000, "master_metadata_track_name": "Reckoner", "master_metadata_album_artist_name": "Radiohead", "master_metadata_album_album_name": "In Rainbows", "spotify_track_uri": "spotify:track:1"},
  {"ts": "2024-03-11T22:10:00Z", "ms_played": 200000, "master_metadata_track_name": "Nude", "master_metadata_album_artist_name": "Radiohead", "master_metadata_album_album_name": "In Rainbows", "spotify_track_uri": "spotify:track:2"},
  {"ts": "2024-03-12T07:00:00Z", "ms_played": 200000, "master_metadata_track_name": "Hyperballad", "master_metadata_album_artist_name": "Björk", "master_metadata_album_album_name": "Post", "spotify_track_uri": "spotify:track:3"},
  {"ts": "2023-01-01T12:00:00Z", "ms_played": 200000, "master_metadata_track_name": "Jóga", "master_metadata_album_artist_name": "Björk", "master_metadata_album_album_name": "Homogenic", "spotify_track_uri": "spotify:track:4"},
  {"ts": "2024-03-13T09:00:00Z", "ms_played": 1800000, "master_metadata_track_name": null, "master_metadata_album_artist_name": null, "episode_name": "Some Podcast"}
]`

const testArtists = `artists:
  - name: Radiohead
    genres: [art rock, alternative rock]
    popularity: 80
    country: GB
    latitude: 51.75
    longitude: -1.26
`

func writeTestFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

// importedSettings returns settings for a fresh database holding testHistory.
func importedSettings(t *testing.T) settings {
	t.Helper()
	freezeClock(t)

	cfg := settings{
		dbPath:   filepath.Join(t.TempDir(), "insights.db"),
		user:     "testuser",
		location: time.UTC,
		format:   formatTable,
	}
	var out bytes.Buffer
	require.NoError(t, importHistory(&out, cfg, []string{writeTestFile(t, "Streaming_History_Audio_2024.json", testHistory)}, history.Options{}))
	return cfg
}

func TestImportHistory(t *testing.T) {
	cfg := importedSettings(t)
	path := writeTestFile(t, "Streaming_History_Audio_2024.json", testHistory)

	var out bytes.Buffer
	require.NoError(t, importHistory(&out, cfg, []string{path}, history.Options{}))
	assert.Contains(t, out.String(), "Imported 0 new plays from")
	assert.Contains(t, out.String(), "(4 already present, 1 skipped)")

	out.Reset()
	err := importHistory(&out, cfg, []string{filepath.Join(t.TempDir(), "missing.json")}, history.Options{})
	assert.Error(t, err)
}

func TestPrintHeatmap(t *testing.T) {
	cfg := importedSettings(t)
	cfg.format = formatJSON

	var out bytes.Buffer
	require.NoError(t, printHeatmap(&out, cfg, nil))

	var result analysis.HeatmapResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, 2, result.Heatmap[1][22])
	assert.Equal(t, 1, result.Heatmap[2][7])
	assert.Equal(t, 3, result.Stats.TotalPlays)
	assert.Equal(t, int64(600000), result.Stats.TotalDuration)
	assert.Equal(t, analysis.PeakSlot{Hour: 22, Day: 1}, result.Stats.PeakListening)
	assert.Equal(t, 2, result.Stats.Streak.Count)

	// The same plays seen from UTC-8 move to Monday afternoon and Monday
	// night.
	cfg.location = time.FixedZone("PST", -8*60*60)
	out.Reset()
	require.NoError(t, printHeatmap(&out, cfg, []string{"2024-03"}))
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, 2, result.Heatmap[1][14])
	assert.Equal(t, 1, result.Heatmap[1][23])
	assert.Equal(t, 1, result.Stats.Streak.Count)
}

func TestPrintHeatmap_Table(t *testing.T) {
	cfg := importedSettings(t)

	var out bytes.Buffer
	require.NoError(t, printHeatmap(&out, cfg, []string{"30d"}))
	assert.Contains(t, out.String(), "Mon")
	assert.Contains(t, out.String(), "3 plays, 10m0s listened from 2024-02-14 to 2024-03-15")
	assert.Contains(t, out.String(), "Peak: Monday at 22:00")
	assert.Contains(t, out.String(), "Longest streak: 2 days, Monday to Tuesday")

	assert.Error(t, printHeatmap(&out, cfg, []string{"someday"}))
}

func TestPrintDiversity(t *testing.T) {
	cfg := importedSettings(t)
	cfg.format = formatYAML

	var out bytes.Buffer
	require.NoError(t, printDiversity(&out, cfg, nil))

	var report map[string]interface{}
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, 3, report["plays"])
	assert.Contains(t, report, "artist_diversity")
	assert.Contains(t, report, "overall")
	assert.Greater(t, report["artist_diversity"], 0.0)
}

func TestImportArtistsAndMissingArtists(t *testing.T) {
	cfg := importedSettings(t)

	var out bytes.Buffer
	require.NoError(t, printMissingArtists(&out, cfg, 0, false))
	assert.Contains(t, out.String(), "Found 2 artists without metadata")

	out.Reset()
	require.NoError(t, importArtists(&out, cfg, writeTestFile(t, "artists.yaml", testArtists)))
	assert.Contains(t, out.String(), "Imported metadata for 1 artists")

	out.Reset()
	require.NoError(t, printMissingArtists(&out, cfg, 0, true))
	assert.Contains(t, out.String(), "name: Björk")
	assert.NotContains(t, out.String(), "Radiohead")

	assert.Error(t, importArtists(&out, cfg, writeTestFile(t, "bad.yaml", "artists:\n  - name: X\n    popularity: 200\n")))
}

func TestPrintPersonality(t *testing.T) {
	cfg := importedSettings(t)
	var out bytes.Buffer
	require.NoError(t, importArtists(&out, cfg, writeTestFile(t, "artists.yaml", testArtists)))

	out.Reset()
	require.NoError(t, printPersonality(&out, cfg, 1000))
	assert.Contains(t, out.String(), "Based on 4 plays you are a")
	assert.Contains(t, out.String(), "Nocturnality")

	cfg.format = formatJSON
	out.Reset()
	require.NoError(t, printPersonality(&out, cfg, 2))
	var report map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.EqualValues(t, 2, report["plays"])

	assert.Error(t, printPersonality(&out, cfg, 0))
}

func TestRunReport(t *testing.T) {
	cfg := importedSettings(t)
	var out bytes.Buffer
	require.NoError(t, importArtists(&out, cfg, writeTestFile(t, "artists.yaml", testArtists)))

	out.Reset()
	require.NoError(t, runReport(&out, cfg, 1000, 10))

	var report struct {
		Metadata struct {
			User         string `yaml:"user"`
			TotalPlays   int    `yaml:"total_plays"`
			RecentPlays  int    `yaml:"recent_plays"`
			HistoryPlays int    `yaml:"history_plays"`
		} `yaml:"profile_metadata"`
		TopArtists []struct {
			Artist string `yaml:"artist"`
			Count  int    `yaml:"count"`
		} `yaml:"top_artists"`
		Profile struct {
			Personality struct {
				ListeningCharacter string `yaml:"listening_character"`
				Traits             struct {
					Mainstream      float64 `yaml:"mainstream"`
					GlobalDiscovery float64 `yaml:"global_discovery"`
				} `yaml:"traits"`
			} `yaml:"personality"`
		} `yaml:"profile"`
	}
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &report))

	assert.Equal(t, "testuser", report.Metadata.User)
	assert.Equal(t, 4, report.Metadata.TotalPlays)
	assert.Equal(t, 3, report.Metadata.RecentPlays)
	assert.Equal(t, 4, report.Metadata.HistoryPlays)
	require.Len(t, report.TopArtists, 2)
	assert.Equal(t, "Radiohead", report.TopArtists[0].Artist)
	assert.Equal(t, 2, report.TopArtists[0].Count)
	assert.NotEmpty(t, report.Profile.Personality.ListeningCharacter)
	assert.InDelta(t, 0.8, report.Profile.Personality.Traits.Mainstream, 1e-9)
	assert.Greater(t, report.Profile.Personality.Traits.GlobalDiscovery, 0.0)
}

func TestRunReport_NoPlays(t *testing.T) {
	freezeClock(t)
	cfg := settings{
		dbPath:   filepath.Join(t.TempDir(), "insights.db"),
		user:     "nobody",
		location: time.UTC,
		format:   formatTable,
	}
	var out bytes.Buffer
	err := runReport(&out, cfg, 1000, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import-history")
}

func TestPrintTopArtistsAndAlbums(t *testing.T) {
	cfg := importedSettings(t)

	var out bytes.Buffer
	require.NoError(t, printTopArtists(&out, cfg, []string{"2024"}, 10))
	assert.Contains(t, out.String(), "Radiohead")
	assert.Contains(t, out.String(), "Top 2 artists with 3 listens from 2024-01-01 to 2025-01-01")

	out.Reset()
	require.NoError(t, printTopAlbums(&out, cfg, []string{"2023", "2025"}, 1))
	assert.Contains(t, out.String(), "In Rainbows")
	assert.Contains(t, out.String(), "Top 1 albums with 2 listens")
}
