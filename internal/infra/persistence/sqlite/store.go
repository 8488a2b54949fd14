// Package sqlite provides a SQLite-backed document store that mirrors the
// in-memory transaction semantics, snapshotting the full document state after
// every successful commit.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/LarnoVisser/RoomMaker/internal/infra/persistence/memory"
	"github.com/LarnoVisser/RoomMaker/pkg/model"
)

// Compile-time contract assertion ensuring the store satisfies the document
// persistence interface.
var _ model.PersistentStore = (*Store)(nil)

// Store persists the in-memory document state to a single SQLite table as
// JSON blobs, one row per entity bucket.
type Store struct {
	*memory.Store
	db   *sql.DB
	mu   sync.Mutex
	path string
}

// NewStore constructs a snapshotting SQLite-backed document store and
// hydrates it from any existing snapshot at path.
func NewStore(path string, engine *model.RulesEngine) (*Store, error) {
	if path == "" {
		path = "roommaker.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create state table: %w", err)
	}
	s := &Store{Store: memory.NewStore(engine), db: db, path: path}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

var sqliteBuckets = []string{"levels", "wall_types", "floor_types", "walls", "floors"}

func (s *Store) load() error {
	rows, err := s.db.Query(`SELECT bucket, payload FROM state`)
	if err != nil {
		return fmt.Errorf("select state: %w", err)
	}
	defer func() { _ = rows.Close() }()

	snapshot := memory.Snapshot{}
	found := false
	for rows.Next() {
		var bucket string
		var payload []byte
		if err := rows.Scan(&bucket, &payload); err != nil {
			return fmt.Errorf("scan state: %w", err)
		}
		found = true
		switch bucket {
		case "levels":
			if err := json.Unmarshal(payload, &snapshot.Levels); err != nil {
				return fmt.Errorf("decode levels: %w", err)
			}
		case "wall_types":
			if err := json.Unmarshal(payload, &snapshot.WallTypes); err != nil {
				return fmt.Errorf("decode wall types: %w", err)
			}
		case "floor_types":
			if err := json.Unmarshal(payload, &snapshot.FloorTypes); err != nil {
				return fmt.Errorf("decode floor types: %w", err)
			}
		case "walls":
			if err := json.Unmarshal(payload, &snapshot.Walls); err != nil {
				return fmt.Errorf("decode walls: %w", err)
			}
		case "floors":
			if err := json.Unmarshal(payload, &snapshot.Floors); err != nil {
				return fmt.Errorf("decode floors: %w", err)
			}
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate state: %w", err)
	}
	if found {
		s.ImportState(snapshot)
	}
	return nil
}

func (s *Store) persist() (retErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.ExportState()
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	for _, bucket := range sqliteBuckets {
		var data []byte
		switch bucket {
		case "levels":
			data, err = json.Marshal(snapshot.Levels)
		case "wall_types":
			data, err = json.Marshal(snapshot.WallTypes)
		case "floor_types":
			data, err = json.Marshal(snapshot.FloorTypes)
		case "walls":
			data, err = json.Marshal(snapshot.Walls)
		case "floors":
			data, err = json.Marshal(snapshot.Floors)
		}
		if err != nil {
			retErr = err
			return retErr
		}
		if _, err = tx.Exec(`INSERT INTO state(bucket,payload) VALUES(?,?) ON CONFLICT(bucket) DO UPDATE SET payload=excluded.payload`, bucket, data); err != nil {
			retErr = fmt.Errorf("upsert %s: %w", bucket, err)
			return retErr
		}
	}
	if err = tx.Commit(); err != nil {
		return err
	}
	return nil
}

// RunInTransaction applies fn within a transaction, then snapshots the state
// to SQLite when successful.
func (s *Store) RunInTransaction(ctx context.Context, fn func(model.Transaction) error) (model.Result, error) {
	res, err := s.Store.RunInTransaction(ctx, fn)
	if err != nil {
		return res, err
	}
	if pErr := s.persist(); pErr != nil {
		return res, pErr
	}
	return res, nil
}

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

// Path returns the configured database path.
func (s *Store) Path() string { return s.path }

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }
