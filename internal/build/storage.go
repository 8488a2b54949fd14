package build

import (
	"fmt"
	"os"

	"github.com/LarnoVisser/RoomMaker/internal/infra/persistence/memory"
	"github.com/LarnoVisser/RoomMaker/internal/infra/persistence/postgres"
	"github.com/LarnoVisser/RoomMaker/internal/infra/persistence/sqlite"
	"github.com/LarnoVisser/RoomMaker/pkg/model"
)

// StorageDriver identifies a concrete document storage implementation.
type StorageDriver string

const (
	StorageMemory   StorageDriver = "memory"   // in-memory only (tests / ephemeral)
	StorageSQLite   StorageDriver = "sqlite"   // embedded sqlite file
	StoragePostgres StorageDriver = "postgres" // PostgreSQL server
)

// NewDefaultRulesEngine builds a rules engine with the built-in document
// integrity rules.
func NewDefaultRulesEngine() *RulesEngine {
	engine := model.NewRulesEngine()
	engine.Register(NewWallIntegrityRule())
	engine.Register(NewFloorBoundaryRule())
	return engine
}

// OpenDocumentStore selects a backend using environment variables. Defaults
// to sqlite when unset.
//
//	ROOMMAKER_STORAGE_DRIVER: memory|sqlite|postgres (default sqlite)
//	ROOMMAKER_SQLITE_PATH: path to sqlite file (default ./roommaker.db)
//	ROOMMAKER_POSTGRES_DSN: postgres DSN when driver=postgres
func OpenDocumentStore(engine *RulesEngine) (PersistentStore, error) {
	driver := os.Getenv("ROOMMAKER_STORAGE_DRIVER")
	if driver == "" {
		driver = string(StorageSQLite)
	}
	switch StorageDriver(driver) {
	case StorageMemory:
		return memory.NewStore(engine), nil
	case StorageSQLite:
		path := os.Getenv("ROOMMAKER_SQLITE_PATH")
		return sqlite.NewStore(path, engine)
	case StoragePostgres:
		dsn := os.Getenv("ROOMMAKER_POSTGRES_DSN")
		return postgres.NewStore(dsn, engine)
	default:
		return nil, fmt.Errorf("unknown storage driver %s", driver)
	}
}
