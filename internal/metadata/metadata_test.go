package metadata

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ademuri/spotify-insights/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	in := `
artists:
  - name: Björk
    genres: [art pop, " electronica ", ""]
    popularity: 65
    country: is
    latitude: 64.1
    longitude: -21.9
  - name: Sigur Rós
`
	artists, err := Parse(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, artists, 2)

	bjork := artists[0]
	assert.Equal(t, "Björk", bjork.Name)
	assert.Equal(t, []string{"art pop", "electronica"}, bjork.Genres)
	require.NotNil(t, bjork.Popularity)
	assert.Equal(t, 65, *bjork.Popularity)
	assert.Equal(t, "IS", bjork.Country)
	require.NotNil(t, bjork.Latitude)
	assert.InDelta(t, 64.1, *bjork.Latitude, 1e-9)
	require.NotNil(t, bjork.Longitude)
	assert.InDelta(t, -21.9, *bjork.Longitude, 1e-9)

	assert.Equal(t, store.ArtistMetadata{Name: "Sigur Rós", Genres: []string{}}, artists[1])
}

func TestParse_Empty(t *testing.T) {
	artists, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, artists)
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]string{
		"no name":    "artists:\n  - country: US\n",
		"popularity": "artists:\n  - name: A\n    popularity: 101\n",
		"latitude":   "artists:\n  - name: A\n    latitude: -91\n",
		"longitude":  "artists:\n  - name: A\n    longitude: 180.5\n",
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(in))
			assert.ErrorIs(t, err, ErrInvalidMetadata)
		})
	}

	_, err := Parse(strings.NewReader("artists:\n  - name: A\n    followers: 10\n"))
	assert.Error(t, err, "unknown keys are rejected")

	_, err = Parse(strings.NewReader("artists: [\n"))
	assert.Error(t, err)
}

func TestWriteTemplate_RoundTrips(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, WriteTemplate(&out, []string{"Björk", "Sigur Rós"}))
	assert.Contains(t, out.String(), "- name: Björk")

	artists, err := Parse(&out)
	require.NoError(t, err)
	require.Len(t, artists, 2)
	assert.Equal(t, "Sigur Rós", artists[1].Name)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artists.yaml")
	require.NoError(t, os.WriteFile(path, []byte("artists:\n  - name: A\n    country: SE\n"), 0o644))

	artists, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, artists, 1)
	assert.Equal(t, "SE", artists[0].Country)
}
