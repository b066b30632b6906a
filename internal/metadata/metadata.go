// Package metadata reads and writes the YAML file artist metadata is imported
// from:
//
//	artists:
//	  - name: Björk
//	    genres: [art pop, electronica]
//	    popularity: 65
//	    country: IS
//	    latitude: 64.1
//	    longitude: -21.9
package metadata

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ademuri/spotify-insights/internal/store"
	"gopkg.in/yaml.v3"
)

var ErrInvalidMetadata = errors.New("invalid artist metadata")

type File struct {
	Artists []Artist `yaml:"artists"`
}

type Artist struct {
	Name       string   `yaml:"name"`
	Genres     []string `yaml:"genres,omitempty"`
	Popularity *int     `yaml:"popularity,omitempty"`
	Country    string   `yaml:"country,omitempty"`
	Latitude   *float64 `yaml:"latitude,omitempty"`
	Longitude  *float64 `yaml:"longitude,omitempty"`
}

// Validate checks ranges. Every field but the name is optional.
func (a Artist) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("artist without a name: %w", ErrInvalidMetadata)
	}
	if a.Popularity != nil && (*a.Popularity < 0 || *a.Popularity > 100) {
		return fmt.Errorf("%s: popularity %d not in 0..100: %w", a.Name, *a.Popularity, ErrInvalidMetadata)
	}
	if a.Latitude != nil && (*a.Latitude < -90 || *a.Latitude > 90) {
		return fmt.Errorf("%s: latitude %g not in -90..90: %w", a.Name, *a.Latitude, ErrInvalidMetadata)
	}
	if a.Longitude != nil && (*a.Longitude < -180 || *a.Longitude > 180) {
		return fmt.Errorf("%s: longitude %g not in -180..180: %w", a.Name, *a.Longitude, ErrInvalidMetadata)
	}
	return nil
}

func (a Artist) ToStore() store.ArtistMetadata {
	genres := make([]string, 0, len(a.Genres))
	for _, g := range a.Genres {
		if g = strings.TrimSpace(g); g != "" {
			genres = append(genres, g)
		}
	}
	return store.ArtistMetadata{
		Name:       a.Name,
		Genres:     genres,
		Popularity: a.Popularity,
		Country:    strings.ToUpper(strings.TrimSpace(a.Country)),
		Latitude:   a.Latitude,
		Longitude:  a.Longitude,
	}
}

// Parse decodes and validates a metadata file. Unknown keys are rejected.
func Parse(r io.Reader) ([]store.ArtistMetadata, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var file File
	if err := decoder.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decoding artist metadata: %w", err)
	}

	artists := make([]store.ArtistMetadata, 0, len(file.Artists))
	for i, a := range file.Artists {
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("artist %d: %w", i, err)
		}
		artists = append(artists, a.ToStore())
	}
	return artists, nil
}

func ReadFile(path string) ([]store.ArtistMetadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	artists, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return artists, nil
}

// WriteTemplate writes a metadata file listing the given artists with every
// optional field left empty, ready to be filled in.
func WriteTemplate(w io.Writer, names []string) error {
	file := File{Artists: make([]Artist, 0, len(names))}
	for _, name := range names {
		file.Artists = append(file.Artists, Artist{Name: name})
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(file); err != nil {
		return fmt.Errorf("encoding artist metadata: %w", err)
	}
	return encoder.Close()
}
