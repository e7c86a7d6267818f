// Package store provides a thin bbolt wrapper for touchline's local state.
//
// It is the terminal analog of the dashboard's browser storage: a per-league
// lookup cache and one preferred-season scalar. Writes are small, infrequent
// and idempotent — last write wins, no TTL.
//
// Buckets:
//
//	leagues — cached League records keyed league_<id>
//	prefs   — scalar preferences (preferred_season)
//	_meta   — internal: schema version, created_at
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/pmartineau/touchline/internal/model"
)

// Current schema version. Bump when bucket layout or key format changes.
// The version tag exists so a stale-shape database from another release is
// detected instead of silently mis-decoded.
const schemaVersion = 1

// Bucket name constants.
var (
	bucketLeagues  = []byte("leagues")
	bucketPrefs    = []byte("prefs")
	bucketInternal = []byte("_meta")
)

// AllBuckets lists every user-facing bucket for stats and clear operations.
var AllBuckets = []string{"leagues", "prefs"}

const prefPreferredSeason = "preferred_season"

// Store wraps a bbolt database.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the bbolt database at path.
// Parent directories are created automatically. Runs migrations on every
// open and refuses databases written by a newer schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating db directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening db %s: %w", path, err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration: %w", err)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the filesystem path of the open database.
func (s *Store) Path() string {
	return s.db.Path()
}

// ─── Migrations ───────────────────────────────────────────────────────────────

func (s *Store) migrate() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketLeagues, bucketPrefs, bucketInternal} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("creating bucket %s: %w", name, err)
			}
		}

		meta := tx.Bucket(bucketInternal)
		raw := meta.Get([]byte("schema_version"))
		if raw == nil {
			if err := meta.Put([]byte("schema_version"), []byte(strconv.Itoa(schemaVersion))); err != nil {
				return err
			}
			return meta.Put([]byte("created_at"), []byte(time.Now().UTC().Format(time.RFC3339)))
		}

		stored, err := strconv.Atoi(string(raw))
		if err != nil {
			return fmt.Errorf("unreadable schema version %q", raw)
		}
		if stored > schemaVersion {
			return fmt.Errorf("database schema v%d is newer than this build (v%d); clear the store or upgrade", stored, schemaVersion)
		}
		return nil
	})
}

// ─── Leagues ──────────────────────────────────────────────────────────────────

func leagueKey(id int) []byte {
	return []byte(fmt.Sprintf("league_%d", id))
}

// PutLeague caches a league record. Re-writing the same league is harmless.
func (s *Store) PutLeague(league model.League) error {
	data, err := json.Marshal(league)
	if err != nil {
		return fmt.Errorf("encoding league: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketLeagues).Put(leagueKey(league.ID), data)
	})
}

// GetLeague retrieves a cached league by ID.
// Returns (league, true, nil) if found, (zero, false, nil) if not found.
func (s *Store) GetLeague(id int) (model.League, bool, error) {
	var league model.League
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketLeagues).Get(leagueKey(id))
		if v == nil {
			return nil
		}
		return json.Unmarshal(v, &league)
	})
	if err != nil {
		return league, false, err
	}
	return league, league.ID != 0, nil
}

// ListLeagues returns all cached leagues in key order.
func (s *Store) ListLeagues() ([]model.League, error) {
	var leagues []model.League
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketLeagues).ForEach(func(k, v []byte) error {
			var l model.League
			if err := json.Unmarshal(v, &l); err != nil {
				return err
			}
			leagues = append(leagues, l)
			return nil
		})
	})
	return leagues, err
}

// ─── Preferences ──────────────────────────────────────────────────────────────

// SetPreferredSeason persists the user's preferred season as a bare year.
func (s *Store) SetPreferredSeason(year int) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketPrefs).Put([]byte(prefPreferredSeason), []byte(strconv.Itoa(year)))
	})
}

// PreferredSeason returns the persisted preferred season.
// Returns (year, true, nil) if set, (0, false, nil) if not.
func (s *Store) PreferredSeason() (int, bool, error) {
	var year int
	found := false
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketPrefs).Get([]byte(prefPreferredSeason))
		if v == nil {
			return nil
		}
		y, err := strconv.Atoi(string(v))
		if err != nil {
			// Stale or foreign value; treat as unset.
			return nil
		}
		year, found = y, true
		return nil
	})
	return year, found, err
}

// ClearPreferredSeason removes the persisted season preference.
func (s *Store) ClearPreferredSeason() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketPrefs).Delete([]byte(prefPreferredSeason))
	})
}

// ─── Stats & Maintenance ──────────────────────────────────────────────────────

// BucketStats holds row count and byte size for a single bucket.
type BucketStats struct {
	Name  string
	Count int
	Bytes int64
}

// Stats returns row counts and approximate sizes for all buckets.
func (s *Store) Stats() ([]BucketStats, error) {
	buckets := map[string][]byte{
		"leagues": bucketLeagues,
		"prefs":   bucketPrefs,
	}

	var stats []BucketStats
	err := s.db.View(func(tx *bolt.Tx) error {
		for name, bname := range buckets {
			b := tx.Bucket(bname)
			if b == nil {
				continue
			}
			var count int
			var bytes int64
			b.ForEach(func(k, v []byte) error {
				count++
				bytes += int64(len(k) + len(v))
				return nil
			})
			stats = append(stats, BucketStats{Name: name, Count: count, Bytes: bytes})
		}
		return nil
	})
	return stats, err
}

// ClearBucket deletes all entries in the named bucket.
func (s *Store) ClearBucket(name string) error {
	bname := []byte(name)
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bname); err != nil {
			return fmt.Errorf("clearing bucket %s: %w", name, err)
		}
		_, err := tx.CreateBucket(bname)
		return err
	})
}

// ClearAll deletes all entries from every user-facing bucket.
func (s *Store) ClearAll() error {
	for _, name := range AllBuckets {
		if err := s.ClearBucket(name); err != nil {
			return err
		}
	}
	return nil
}
