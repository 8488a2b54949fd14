package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/LarnoVisser/RoomMaker/pkg/model"
)

func TestStorePersistAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rooms.db")
	store, err := NewStore(path, nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	ctx := context.Background()
	_, err = store.RunInTransaction(ctx, func(tx model.Transaction) error {
		level, err := tx.CreateLevel(model.Level{Name: "Level 0", Elevation: 0})
		if err != nil {
			return err
		}
		if level.ID == "" {
			t.Fatalf("expected generated level ID")
		}
		if _, err := tx.CreateWallType(model.WallType{Name: "Generic - 200mm", Kind: model.WallKindBasic}); err != nil {
			return err
		}
		_, err = tx.CreateFloorType(model.FloorType{Name: "Generic - 300mm"})
		return err
	})
	if err != nil {
		t.Fatalf("run transaction: %v", err)
	}
	if store.Path() != path {
		t.Fatalf("unexpected path %s", store.Path())
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewStore(path, nil)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer reopened.Close()
	if len(reopened.ListLevels()) != 1 {
		t.Fatalf("expected level after reload, got %d", len(reopened.ListLevels()))
	}
	if len(reopened.ListWallTypes()) != 1 || len(reopened.ListFloorTypes()) != 1 {
		t.Fatalf("expected types after reload")
	}
}

func TestStoreRollbackDoesNotPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rooms.db")
	store, err := NewStore(path, nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()
	_, err = store.RunInTransaction(context.Background(), func(tx model.Transaction) error {
		if _, err := tx.CreateLevel(model.Level{Name: "Level 0"}); err != nil {
			return err
		}
		return context.Canceled
	})
	if err == nil {
		t.Fatalf("expected transaction error")
	}
	if len(store.ListLevels()) != 0 {
		t.Fatalf("rolled back state must not persist")
	}
}
