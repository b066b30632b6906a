package store

import (
	"fmt"
	"time"
)

type ArtistPlayCount struct {
	Artist string `json:"artist" yaml:"artist"`
	Count  int64  `json:"count" yaml:"count"`
}

type AlbumPlayCount struct {
	Artist string `json:"artist" yaml:"artist"`
	Album  string `json:"album" yaml:"album"`
	Count  int64  `json:"count" yaml:"count"`
}

// GetTopArtists returns the user's most played artists in [start, end).
func (s *Store) GetTopArtists(user string, start, end time.Time, limit int) ([]ArtistPlayCount, error) {
	query := `
	SELECT Track.artist, COUNT(Listen.id)
	FROM Listen
	INNER JOIN Track ON Track.id = Listen.track
	WHERE user = ?
	AND Listen.uts >= ? AND Listen.uts < ?
	GROUP BY Track.artist
	ORDER BY COUNT(*) DESC, Track.artist ASC
	LIMIT ?
	`
	rows, err := s.db.Query(query, user, start.Unix(), end.Unix(), limit)
	if err != nil {
		return nil, fmt.Errorf("querying top artists: %w", err)
	}
	defer rows.Close()

	var results []ArtistPlayCount
	for rows.Next() {
		var apc ArtistPlayCount
		if err := rows.Scan(&apc.Artist, &apc.Count); err != nil {
			return nil, err
		}
		results = append(results, apc)
	}
	return results, rows.Err()
}

// GetTopAlbums returns the user's most played albums in [start, end). Plays
// without an album are not counted.
func (s *Store) GetTopAlbums(user string, start, end time.Time, limit int) ([]AlbumPlayCount, error) {
	query := `
	SELECT Track.artist, Track.album, COUNT(Listen.id)
	FROM Listen
	INNER JOIN Track ON Track.id = Listen.track
	WHERE user = ?
	AND Track.album != ''
	AND Listen.uts >= ? AND Listen.uts < ?
	GROUP BY Track.artist, Track.album
	ORDER BY COUNT(*) DESC, Track.artist ASC, Track.album ASC
	LIMIT ?
	`
	rows, err := s.db.Query(query, user, start.Unix(), end.Unix(), limit)
	if err != nil {
		return nil, fmt.Errorf("querying top albums: %w", err)
	}
	defer rows.Close()

	var results []AlbumPlayCount
	for rows.Next() {
		var apc AlbumPlayCount
		if err := rows.Scan(&apc.Artist, &apc.Album, &apc.Count); err != nil {
			return nil, err
		}
		results = append(results, apc)
	}
	return results, rows.Err()
}

// GetArtistsMissingMetadata returns the artists the user has played that have
// never had metadata imported, most played first.
func (s *Store) GetArtistsMissingMetadata(user string) ([]ArtistPlayCount, error) {
	query := `
	SELECT Track.artist, COUNT(Listen.id)
	FROM Listen
	INNER JOIN Track ON Track.id = Listen.track
	INNER JOIN Artist ON Artist.name = Track.artist
	WHERE user = ?
	AND Artist.metadata_last_updated IS NULL
	GROUP BY Track.artist
	ORDER BY COUNT(*) DESC, Track.artist ASC
	`
	rows, err := s.db.Query(query, user)
	if err != nil {
		return nil, fmt.Errorf("querying artists missing metadata: %w", err)
	}
	defer rows.Close()

	var results []ArtistPlayCount
	for rows.Next() {
		var apc ArtistPlayCount
		if err := rows.Scan(&apc.Artist, &apc.Count); err != nil {
			return nil, err
		}
		results = append(results, apc)
	}
	return results, rows.Err()
}
