package progress

import (
	"database/sql"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/ckearl/senahpark.com/db"
)

const (
	// DefaultResetThreshold is the completion fraction at or beyond which a
	// save is treated as "finished" and the stored offset resets to zero.
	DefaultResetThreshold = 0.95

	// DefaultTTL is how long a saved offset stays valid.
	DefaultTTL = 365 * 24 * time.Hour
)

// RoundToTen floors a position to the nearest ten seconds. Resuming a few
// seconds early beats resuming mid-word.
func RoundToTen(seconds float64) int {
	return int(math.Floor(seconds/10)) * 10
}

// Store persists listening positions per lecture. Offsets are written as
// text so that a corrupt value reads back as "nothing saved" instead of an
// error surfaced to the player.
type Store struct {
	db        *sql.DB
	threshold float64
	ttl       time.Duration
	now       func() time.Time
}

// NewStore returns a Store over the given database. Zero threshold or ttl
// select the defaults.
func NewStore(database *sql.DB, threshold float64, ttl time.Duration) *Store {
	if threshold <= 0 {
		threshold = DefaultResetThreshold
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{db: database, threshold: threshold, ttl: ttl, now: time.Now}
}

// Save records the playback position for a lecture. Positions at or beyond
// the completion threshold store zero so the next session starts over.
func (s *Store) Save(lectureID string, currentTime, duration float64) error {
	offset := RoundToTen(currentTime)
	if duration > 0 && currentTime/duration >= s.threshold {
		offset = 0
	}
	expires := s.now().UTC().Add(s.ttl).Format(time.RFC3339)
	_, err := s.db.Exec(db.UpsertProgressSQL, lectureID, strconv.Itoa(offset), expires)
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

// Load returns the saved offset for a lecture. The second return is false
// when nothing usable is stored: no row, an expired row, or a row whose
// value does not parse. Expired and corrupt rows are removed on the way out.
func (s *Store) Load(lectureID string) (int, bool, error) {
	var raw, expires string
	err := s.db.QueryRow(db.SelectProgressSQL, lectureID).Scan(&raw, &expires)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("load progress: %w", err)
	}

	expiry, err := time.Parse(time.RFC3339, expires)
	if err != nil || !expiry.After(s.now().UTC()) {
		s.Clear(lectureID)
		return 0, false, nil
	}

	offset, err := strconv.Atoi(raw)
	if err != nil || offset < 0 {
		s.Clear(lectureID)
		return 0, false, nil
	}
	return offset, true, nil
}

// Clear drops the saved offset for a lecture.
func (s *Store) Clear(lectureID string) error {
	if _, err := s.db.Exec(db.DeleteProgressSQL, lectureID); err != nil {
		return fmt.Errorf("clear progress: %w", err)
	}
	return nil
}

// PurgeExpired removes every offset past its expiry. Called once at startup.
func (s *Store) PurgeExpired() error {
	cutoff := s.now().UTC().Format(time.RFC3339)
	if _, err := s.db.Exec(db.DeleteExpiredProgressSQL, cutoff); err != nil {
		return fmt.Errorf("purge expired progress: %w", err)
	}
	return nil
}
