package fbin

import (
	"database/sql"
	"fmt"

	"github.com/bodgit/fbin/image"
	_ "github.com/mattn/go-sqlite3"
)

// Cache is a sqlite database of encoded records keyed by the SHA-1 of the
// source file and the options used to encode it.
type Cache struct {
	db *sql.DB
}

// NewCache opens or creates the cache database at file.
func NewCache(file string) (*Cache, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_busy_timeout=5000", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS record (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, dither INTEGER NOT NULL, data BLOB NOT NULL, UNIQUE(sha1, width, height, dither))"); err != nil {
		db.Close()
		return nil, err
	}

	return &Cache{
		db: db,
	}, nil
}

// Close closes the database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Find returns the cached record or nil if there isn't one.
func (c *Cache) Find(sha string, o image.Options) ([]byte, error) {
	var data []byte
	switch err := c.db.QueryRow("SELECT data FROM record WHERE sha1 = ? AND width = ? AND height = ? AND dither = ?", sha, o.Size.Width, o.Size.Height, int(o.Dither)).Scan(&data); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		// Ignore anything that isn't the right shape
		if len(data) != o.Size.RecordLen() {
			return nil, nil
		}
		return data, nil
	default:
		return nil, err
	}
}

// Add stores an encoded record, replacing any existing one.
func (c *Cache) Add(sha string, o image.Options, data []byte) error {
	if len(data) != o.Size.RecordLen() {
		return fmt.Errorf("fbin: record is %d bytes, expected %d", len(data), o.Size.RecordLen())
	}
	if _, err := c.db.Exec("INSERT OR REPLACE INTO record (sha1, width, height, dither, data) VALUES (?, ?, ?, ?, ?)", sha, o.Size.Width, o.Size.Height, int(o.Dither), data); err != nil {
		return err
	}
	return nil
}

// Len returns the number of cached records.
func (c *Cache) Len() (int, error) {
	var n int
	if err := c.db.QueryRow("SELECT COUNT(*) FROM record").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Purge removes every cached record.
func (c *Cache) Purge() error {
	_, err := c.db.Exec("DELETE FROM record")
	return err
}
