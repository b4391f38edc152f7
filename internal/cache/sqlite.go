package cache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"SoundTreasury/internal/model"
)

// ErrStorage marks persisted-tier failures. The orchestrator converts these
// into the fallback path; they never cross into the pure core.
var ErrStorage = errors.New("storage failure")

// DefaultTTL is how long a persisted entry stays valid. An entry written
// exactly DefaultTTL ago is already expired.
const DefaultTTL = 24 * time.Hour

const modelKey = "model_series_v2"

// Entry is the persisted payload for the fair-value domain. Timestamp is
// unix milliseconds at write time and doubles as the TTL anchor.
type Entry struct {
	Data      []model.TimePoint `json:"data"`
	Stats     *model.ModelStats `json:"stats"`
	ChartData []model.TimePoint `json:"chartData"`
	Timestamp int64             `json:"timestamp"`
}

// Store is the sqlite-backed persisted tier. It survives restarts, unlike
// the in-process tier, and enforces the expiry window on read.
type Store struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// NewStore opens (or creates) the cache database and runs migrations.
func NewStore(dbPath string, ttl time.Duration) (*Store, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite: %v", ErrStorage, err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: set WAL mode: %v", ErrStorage, err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS series_cache (
		key        TEXT PRIMARY KEY,
		payload    TEXT NOT NULL,
		written_at INTEGER NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: migrate: %v", ErrStorage, err)
	}

	logrus.WithField("component", "cache").Infof("persisted cache opened: %s", dbPath)
	return &Store{db: db, ttl: ttl, now: time.Now}, nil
}

// SaveModel persists the full payload tuple in a single statement, so a
// failure mid-write can never leave a partial entry behind.
func (s *Store) SaveModel(e *Entry) error {
	e.Timestamp = s.now().UnixMilli()
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("%w: encode payload: %v", ErrStorage, err)
	}
	if _, err := s.db.Exec(
		`INSERT OR REPLACE INTO series_cache (key, payload, written_at) VALUES (?,?,?)`,
		modelKey, string(payload), e.Timestamp,
	); err != nil {
		return fmt.Errorf("%w: write payload: %v", ErrStorage, err)
	}
	return nil
}

// LoadModel returns the persisted payload, or nil without error when the
// entry is absent or older than the TTL.
func (s *Store) LoadModel() (*Entry, error) {
	var payload string
	var writtenAt int64
	err := s.db.QueryRow(
		`SELECT payload, written_at FROM series_cache WHERE key = ?`, modelKey,
	).Scan(&payload, &writtenAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read payload: %v", ErrStorage, err)
	}

	age := s.now().Sub(time.UnixMilli(writtenAt))
	if age >= s.ttl {
		return nil, nil
	}

	var e Entry
	if err := json.Unmarshal([]byte(payload), &e); err != nil {
		return nil, fmt.Errorf("%w: decode payload: %v", ErrStorage, err)
	}
	return &e, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
