package model

import "context"

// Transaction exposes the document operations a persistence implementation
// must support within one atomic scope.
type Transaction interface {
	Snapshot() TransactionView
	CreateLevel(Level) (Level, error)
	CreateWallType(WallType) (WallType, error)
	CreateFloorType(FloorType) (FloorType, error)
	CreateWall(Wall) (Wall, error)
	CreateFloor(Floor) (Floor, error)
	DeleteWall(id string) error
	DeleteFloor(id string) error
	FindLevel(id string) (Level, bool)
	FindWallType(id string) (WallType, bool)
	FindFloorType(id string) (FloorType, bool)
}

// TransactionView provides read-only access to snapshot data.
type TransactionView interface {
	ListLevels() []Level
	ListWallTypes() []WallType
	ListFloorTypes() []FloorType
	ListWalls() []Wall
	ListFloors() []Floor
	FindLevel(id string) (Level, bool)
	FindWallType(id string) (WallType, bool)
	FindFloorType(id string) (FloorType, bool)
}

// RuleView provides read-only access to document entities for rule evaluation.
// It is satisfied by TransactionView.
type RuleView = TransactionView

// PersistentStore is a minimal abstraction over durable document backends. It
// mirrors the subset of store capabilities used directly by higher layers.
type PersistentStore interface {
	RunInTransaction(ctx context.Context, fn func(Transaction) error) (Result, error)
	View(ctx context.Context, fn func(TransactionView) error) error
	GetLevel(id string) (Level, bool)
	ListLevels() []Level
	ListWallTypes() []WallType
	ListFloorTypes() []FloorType
	ListWalls() []Wall
	ListFloors() []Floor
}
