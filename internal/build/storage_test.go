package build

import (
	"path/filepath"
	"testing"

	"github.com/LarnoVisser/RoomMaker/internal/infra/persistence/memory"
	"github.com/LarnoVisser/RoomMaker/internal/infra/persistence/sqlite"
)

func TestOpenDocumentStoreSelectsDriver(t *testing.T) {
	engine := NewDefaultRulesEngine()

	t.Setenv("ROOMMAKER_STORAGE_DRIVER", "memory")
	store, err := OpenDocumentStore(engine)
	if err != nil {
		t.Fatalf("open memory: %v", err)
	}
	if _, ok := store.(*memory.Store); !ok {
		t.Fatalf("expected memory store, got %T", store)
	}

	t.Setenv("ROOMMAKER_STORAGE_DRIVER", "sqlite")
	t.Setenv("ROOMMAKER_SQLITE_PATH", filepath.Join(t.TempDir(), "rooms.db"))
	store, err = OpenDocumentStore(engine)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sq, ok := store.(*sqlite.Store)
	if !ok {
		t.Fatalf("expected sqlite store, got %T", store)
	}
	if err := sq.Close(); err != nil {
		t.Fatalf("close sqlite: %v", err)
	}

	t.Setenv("ROOMMAKER_STORAGE_DRIVER", "etched-stone")
	if _, err := OpenDocumentStore(engine); err == nil {
		t.Fatalf("expected unknown driver error")
	}
}

func TestNewDefaultRulesEngine(t *testing.T) {
	engine := NewDefaultRulesEngine()
	if engine == nil {
		t.Fatalf("expected rules engine")
	}
}
