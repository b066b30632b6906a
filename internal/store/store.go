package store

import (
	"database/sql"
	"fmt"

	"github.com/ademuri/spotify-insights/internal/migration"
	_ "github.com/mattn/go-sqlite3"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(migration.Create); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	if err := ensureSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensuring schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// ensureSchema adds columns introduced after a database was first created.
func ensureSchema(db *sql.DB) error {
	columns := []struct {
		table, column, typeDef string
	}{
		{"Artist", "popularity", "INTEGER"},
		{"Artist", "country", "TEXT"},
		{"Artist", "latitude", "REAL"},
		{"Artist", "longitude", "REAL"},
		{"Artist", "metadata_last_updated", "DATETIME"},
		{"Track", "spotify_id", "TEXT"},
		{"Listen", "uts", "INTEGER"},
		{"Listen", "duration_ms", "INTEGER NOT NULL DEFAULT 0"},
	}
	for _, c := range columns {
		if err := addColumnIfNotExists(db, c.table, c.column, c.typeDef); err != nil {
			return err
		}
	}
	if _, err := db.Exec("CREATE INDEX IF NOT EXISTS ListenUserUts ON Listen (user, uts)"); err != nil {
		return fmt.Errorf("creating listen index: %w", err)
	}
	return nil
}

func addColumnIfNotExists(db *sql.DB, table, column, typeDef string) error {
	exists, err := columnExists(db, table, column)
	if err != nil {
		return fmt.Errorf("checking column %s.%s: %w", table, column, err)
	}
	if !exists {
		query := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, typeDef)
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("adding column %s.%s: %w", table, column, err)
		}
	}
	return nil
}

func columnExists(db *sql.DB, tableName string, columnName string) (bool, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", tableName))
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var cid int
		var name string
		var ctype string
		var notnull int
		var dfltValue interface{}
		var pk int
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dfltValue, &pk); err != nil {
			return false, err
		}
		if name == columnName {
			return true, nil
		}
	}
	return false, rows.Err()
}
