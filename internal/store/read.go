package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ademuri/spotify-insights/internal/analysis"
)

func (s *Store) GetLastUpdated(user string) (time.Time, error) {
	row := s.db.QueryRow("SELECT last_updated FROM User WHERE name = ?", user)
	var t sql.NullTime
	err := row.Scan(&t)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("getting last updated: %w", err)
	}
	return t.Time, nil
}

// GetLatestListen returns the time of the user's most recent play with a
// parsable date, or the zero time if there is none.
func (s *Store) GetLatestListen(user string) (time.Time, error) {
	return s.listenBound(user, "MAX")
}

// GetFirstListen returns the time of the user's earliest play with a parsable
// date, or the zero time if there is none.
func (s *Store) GetFirstListen(user string) (time.Time, error) {
	return s.listenBound(user, "MIN")
}

func (s *Store) listenBound(user, aggregate string) (time.Time, error) {
	query := fmt.Sprintf("SELECT %s(uts) FROM Listen WHERE user = ? AND uts IS NOT NULL", aggregate)
	var uts sql.NullInt64
	if err := s.db.QueryRow(query, user).Scan(&uts); err != nil {
		return time.Time{}, fmt.Errorf("scanning listen bound: %w", err)
	}
	if !uts.Valid {
		return time.Time{}, nil
	}
	return time.Unix(uts.Int64, 0), nil
}

// GetTotalPlays counts every stored play of the user, including ones whose
// date did not parse.
func (s *Store) GetTotalPlays(user string) (int64, error) {
	var count int64
	if err := s.db.QueryRow("SELECT COUNT(*) FROM Listen WHERE user = ?", user).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting plays: %w", err)
	}
	return count, nil
}

const playColumns = `
	SELECT t.spotify_id, t.name, t.artist, t.album, l.date, l.duration_ms, a.popularity
	FROM Listen l
	JOIN Track t ON l.track = t.id
	JOIN Artist a ON t.artist = a.name
`

// GetPlaysInRange returns the user's plays in [start, end), oldest first.
// Plays with an unparsable date have no position in time and are left out.
func (s *Store) GetPlaysInRange(user string, start, end time.Time) ([]analysis.PlayEvent, error) {
	query := playColumns + `
		WHERE l.user = ? AND l.uts >= ? AND l.uts < ?
		ORDER BY l.uts ASC, l.id ASC
	`
	rows, err := s.db.Query(query, user, start.Unix(), end.Unix())
	if err != nil {
		return nil, fmt.Errorf("querying plays: %w", err)
	}
	return s.scanPlays(rows)
}

// GetRecentPlays returns up to limit of the user's most recent plays, newest
// first. Plays with an unparsable date sort last.
func (s *Store) GetRecentPlays(user string, limit int) ([]analysis.PlayEvent, error) {
	query := playColumns + `
		WHERE l.user = ?
		ORDER BY l.uts DESC, l.id DESC
		LIMIT ?
	`
	rows, err := s.db.Query(query, user, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent plays: %w", err)
	}
	return s.scanPlays(rows)
}

func (s *Store) scanPlays(rows *sql.Rows) ([]analysis.PlayEvent, error) {
	defer rows.Close()

	var plays []analysis.PlayEvent
	for rows.Next() {
		var p analysis.PlayEvent
		var spotifyID sql.NullString
		var popularity sql.NullInt64
		if err := rows.Scan(&spotifyID, &p.TrackName, &p.ArtistName, &p.AlbumName, &p.PlayedAt, &p.DurationMs, &popularity); err != nil {
			return nil, fmt.Errorf("scanning play: %w", err)
		}
		p.TrackID = spotifyID.String
		if popularity.Valid {
			pop := int(popularity.Int64)
			p.ArtistPopularity = &pop
		}
		plays = append(plays, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scanning plays: %w", err)
	}
	// Release the connection before the genre queries.
	rows.Close()

	genres, err := s.artistGenres(plays)
	if err != nil {
		return nil, err
	}
	for i := range plays {
		plays[i].Genres = genres[plays[i].ArtistName]
	}
	return plays, nil
}

// artistGenres loads the ordered genres of every artist in plays.
func (s *Store) artistGenres(plays []analysis.PlayEvent) (map[string][]string, error) {
	genres := make(map[string][]string)
	var artists []interface{}
	seen := make(map[string]bool)
	for _, p := range plays {
		if !seen[p.ArtistName] {
			seen[p.ArtistName] = true
			artists = append(artists, p.ArtistName)
		}
	}
	if len(artists) == 0 {
		return genres, nil
	}

	// Stay well below SQLite's bound parameter limit.
	const batch = 500
	for lo := 0; lo < len(artists); lo += batch {
		hi := min(lo+batch, len(artists))
		query := fmt.Sprintf(
			"SELECT artist, genre FROM ArtistGenre WHERE artist IN (%s) ORDER BY artist, position",
			strings.TrimSuffix(strings.Repeat("?,", hi-lo), ","))
		rows, err := s.db.Query(query, artists[lo:hi]...)
		if err != nil {
			return nil, fmt.Errorf("querying genres: %w", err)
		}
		for rows.Next() {
			var artist, genre string
			if err := rows.Scan(&artist, &genre); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scanning genres: %w", err)
			}
			genres[artist] = append(genres[artist], genre)
		}
		err = rows.Err()
		rows.Close()
		if err != nil {
			return nil, fmt.Errorf("scanning genres: %w", err)
		}
	}
	return genres, nil
}

// GetArtistLocations returns the known locations of artists the user has
// played, keyed by artist name.
func (s *Store) GetArtistLocations(user string) (map[string]analysis.ArtistLocation, error) {
	query := `
		SELECT a.name, a.country, a.latitude, a.longitude
		FROM Artist a
		WHERE a.country IS NOT NULL AND a.country != ''
		AND EXISTS (
			SELECT 1 FROM Listen l JOIN Track t ON l.track = t.id
			WHERE l.user = ? AND t.artist = a.name
		)
	`
	rows, err := s.db.Query(query, user)
	if err != nil {
		return nil, fmt.Errorf("querying artist locations: %w", err)
	}
	defer rows.Close()

	locations := make(map[string]analysis.ArtistLocation)
	for rows.Next() {
		var l analysis.ArtistLocation
		var lat, lon sql.NullFloat64
		if err := rows.Scan(&l.ArtistName, &l.Country, &lat, &lon); err != nil {
			return nil, fmt.Errorf("scanning artist location: %w", err)
		}
		if lat.Valid {
			l.Latitude = &lat.Float64
		}
		if lon.Valid {
			l.Longitude = &lon.Float64
		}
		locations[l.ArtistName] = l
	}
	return locations, rows.Err()
}
