package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ademuri/spotify-insights/internal/analysis"
)

// PlayImport is one play as read from an export file.
type PlayImport struct {
	Artist    string
	Album     string
	TrackName string
	// SpotifyID is the track URI, empty when the export does not carry it.
	SpotifyID string
	// Date is stored verbatim. Its unix time, used by range queries, reads a
	// date without a zone offset as UTC, while analysis reads the raw text in
	// the analysis location. Importers write RFC 3339 so the two agree.
	Date       string
	DurationMs int64
}

// ArtistMetadata is everything known about an artist beyond its name.
type ArtistMetadata struct {
	Name       string
	Genres     []string
	Popularity *int
	Country    string
	Latitude   *float64
	Longitude  *float64
}

// CreateUser ensures a user exists in the database.
func (s *Store) CreateUser(user string) error {
	row := s.db.QueryRow("SELECT name FROM User WHERE name = ?", user)
	var name string
	err := row.Scan(&name)
	if err == sql.ErrNoRows {
		_, err := s.db.Exec("INSERT INTO User (name) VALUES (?)", user)
		if err != nil {
			return fmt.Errorf("inserting user %q: %w", user, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("checking user %q: %w", user, err)
	}
	return nil
}

func (s *Store) SetLastUpdated(user string, updated time.Time) error {
	_, err := s.db.Exec("UPDATE User SET last_updated = ? WHERE name = ?", updated, user)
	if err != nil {
		return fmt.Errorf("updating last_updated for %q: %w", user, err)
	}
	return nil
}

// AddPlays inserts a batch of plays transactionally and returns how many were
// new. A play already stored for the same user, track and date is skipped.
func (s *Store) AddPlays(user string, plays []PlayImport) (int, error) {
	if negative := firstNegativeDuration(plays); negative != nil {
		return 0, fmt.Errorf("play of %q at %q has negative duration %d", negative.TrackName, negative.Date, negative.DurationMs)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	added := 0
	for _, play := range plays {
		if err := createArtist(tx, play.Artist); err != nil {
			return 0, err
		}
		if err := createAlbum(tx, play.Artist, play.Album); err != nil {
			return 0, err
		}
		trackID, err := createTrack(tx, play)
		if err != nil {
			return 0, err
		}
		inserted, err := createListen(tx, user, trackID, play)
		if err != nil {
			return 0, err
		}
		if inserted {
			added++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return added, nil
}

func firstNegativeDuration(plays []PlayImport) *PlayImport {
	for i := range plays {
		if plays[i].DurationMs < 0 {
			return &plays[i]
		}
	}
	return nil
}

func createArtist(tx *sql.Tx, name string) error {
	if _, err := tx.Exec("INSERT OR IGNORE INTO Artist (name) VALUES (?)", name); err != nil {
		return fmt.Errorf("inserting artist %q: %w", name, err)
	}
	return nil
}

func createAlbum(tx *sql.Tx, artist, name string) error {
	if _, err := tx.Exec("INSERT OR IGNORE INTO Album (artist, name) VALUES (?, ?)", artist, name); err != nil {
		return fmt.Errorf("inserting album %q for %q: %w", name, artist, err)
	}
	return nil
}

func createTrack(tx *sql.Tx, play PlayImport) (int64, error) {
	var id int64
	var spotifyID sql.NullString
	err := tx.QueryRow("SELECT id, spotify_id FROM Track WHERE artist = ? AND album = ? AND name = ?",
		play.Artist, play.Album, play.TrackName).Scan(&id, &spotifyID)
	if err == nil {
		if play.SpotifyID != "" && !spotifyID.Valid {
			if _, err := tx.Exec("UPDATE Track SET spotify_id = ? WHERE id = ?", play.SpotifyID, id); err != nil {
				return 0, fmt.Errorf("setting spotify id of %q: %w", play.TrackName, err)
			}
		}
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("checking track %q: %w", play.TrackName, err)
	}

	res, err := tx.Exec("INSERT INTO Track (artist, album, name, spotify_id) VALUES (?, ?, ?, ?)",
		play.Artist, play.Album, play.TrackName, nullString(play.SpotifyID))
	if err != nil {
		return 0, fmt.Errorf("inserting track %q: %w", play.TrackName, err)
	}
	return res.LastInsertId()
}

// createListen stores the raw date and, when it parses, its unix time. Plays
// with an unparsable date are kept so that analysis can skip them.
func createListen(tx *sql.Tx, user string, trackID int64, play PlayImport) (bool, error) {
	var uts sql.NullInt64
	if t, err := analysis.ParseTimestamp(play.Date, time.UTC); err == nil {
		uts = sql.NullInt64{Int64: t.Unix(), Valid: true}
	}

	res, err := tx.Exec("INSERT OR IGNORE INTO Listen (user, track, date, uts, duration_ms) VALUES (?, ?, ?, ?, ?)",
		user, trackID, play.Date, uts, play.DurationMs)
	if err != nil {
		return false, fmt.Errorf("inserting listen: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("inserting listen: %w", err)
	}
	return n > 0, nil
}

// SaveArtistMetadata replaces the stored metadata of an artist, creating the
// artist if needed. Genres keep the given order.
func (s *Store) SaveArtistMetadata(meta ArtistMetadata) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := createArtist(tx, meta.Name); err != nil {
		return err
	}

	_, err = tx.Exec(`
		UPDATE Artist
		SET popularity = ?, country = ?, latitude = ?, longitude = ?, metadata_last_updated = ?
		WHERE name = ?`,
		nullInt(meta.Popularity), nullString(strings.TrimSpace(meta.Country)),
		nullFloat(meta.Latitude), nullFloat(meta.Longitude), time.Now(), meta.Name)
	if err != nil {
		return fmt.Errorf("updating artist %q: %w", meta.Name, err)
	}

	if _, err := tx.Exec("DELETE FROM ArtistGenre WHERE artist = ?", meta.Name); err != nil {
		return fmt.Errorf("clearing genres of %q: %w", meta.Name, err)
	}
	for i, genre := range meta.Genres {
		_, err := tx.Exec("INSERT OR IGNORE INTO ArtistGenre (artist, genre, position) VALUES (?, ?, ?)", meta.Name, genre, i)
		if err != nil {
			return fmt.Errorf("linking genre %q to artist %q: %w", genre, meta.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
