// Package memory provides an in-memory implementation of the document
// persistence store used for tests and ephemeral environments. Transactions
// run against a clone of the committed state; the clone replaces the
// committed state only when the whole unit of work and every registered
// document rule succeed.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/LarnoVisser/RoomMaker/pkg/geometry"
	"github.com/LarnoVisser/RoomMaker/pkg/model"
)

// Compile-time contract assertion ensuring memory.Store adheres to the
// document persistence interface.
var _ model.PersistentStore = (*Store)(nil)

type (
	// Level aliases model.Level for in-memory persistence operations.
	Level = model.Level
	// WallType aliases model.WallType.
	WallType = model.WallType
	// FloorType aliases model.FloorType.
	FloorType = model.FloorType
	// Wall aliases model.Wall.
	Wall = model.Wall
	// Floor aliases model.Floor.
	Floor = model.Floor
	// Change aliases model.Change captured in transactions.
	Change = model.Change
	// Result aliases model.Result summarizing rule evaluation.
	Result = model.Result
	// RulesEngine aliases model.RulesEngine used to evaluate rules.
	RulesEngine = model.RulesEngine
	// Transaction aliases model.Transaction representing a mutable unit of work.
	Transaction = model.Transaction
	// TransactionView aliases model.TransactionView providing read-only state.
	TransactionView = model.TransactionView
)

type documentState struct {
	levels     map[string]Level
	wallTypes  map[string]WallType
	floorTypes map[string]FloorType
	walls      map[string]Wall
	floors     map[string]Floor
}

// Snapshot captures a point-in-time clone of the document state.
type Snapshot struct {
	Levels     map[string]Level     `json:"levels"`
	WallTypes  map[string]WallType  `json:"wall_types"`
	FloorTypes map[string]FloorType `json:"floor_types"`
	Walls      map[string]Wall      `json:"walls"`
	Floors     map[string]Floor     `json:"floors"`
}

func newDocumentState() documentState {
	return documentState{
		levels:     make(map[string]Level),
		wallTypes:  make(map[string]WallType),
		floorTypes: make(map[string]FloorType),
		walls:      make(map[string]Wall),
		floors:     make(map[string]Floor),
	}
}

func (s documentState) clone() documentState {
	cloned := newDocumentState()
	for k, v := range s.levels {
		cloned.levels[k] = v
	}
	for k, v := range s.wallTypes {
		cloned.wallTypes[k] = v
	}
	for k, v := range s.floorTypes {
		cloned.floorTypes[k] = v
	}
	for k, v := range s.walls {
		cloned.walls[k] = v
	}
	for k, v := range s.floors {
		cloned.floors[k] = cloneFloor(v)
	}
	return cloned
}

// cloneFloor deep-copies the boundary segments; every other document entity
// is a value type with no reference fields.
func cloneFloor(f Floor) Floor {
	cp := f
	cp.Boundary.Segments = append([]geometry.Line(nil), f.Boundary.Segments...)
	return cp
}

// Store provides an in-memory transactional store for the building document.
type Store struct {
	mu     sync.RWMutex
	state  documentState
	engine *RulesEngine
	nowFn  func() time.Time
}

// NewStore constructs an in-memory store backed by the provided rules engine.
// A nil engine disables commit-time rule evaluation.
func NewStore(engine *RulesEngine) *Store {
	return &Store{
		state:  newDocumentState(),
		engine: engine,
		nowFn:  func() time.Time { return time.Now().UTC() },
	}
}

// RulesEngine returns the engine evaluated at commit time.
func (s *Store) RulesEngine() *RulesEngine { return s.engine }

// NowFunc returns the clock used to stamp created entities.
func (s *Store) NowFunc() func() time.Time { return s.nowFn }

// SetNowFunc overrides the entity timestamp clock, primarily for tests.
func (s *Store) SetNowFunc(fn func() time.Time) {
	if fn != nil {
		s.nowFn = fn
	}
}

func newID() string {
	return uuid.NewString()
}

type transaction struct {
	state   documentState
	changes []Change
	now     time.Time
}

type transactionView struct {
	state *documentState
}

// RunInTransaction executes fn within a transactional copy of the document
// state. The copy becomes the committed state only when fn and the rules
// engine both succeed; any failure discards the copy entirely.
func (s *Store) RunInTransaction(ctx context.Context, fn func(Transaction) error) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &transaction{
		state: s.state.clone(),
		now:   s.nowFn(),
	}

	if err := fn(tx); err != nil {
		return Result{}, err
	}

	var result Result
	if s.engine != nil {
		view := transactionView{state: &tx.state}
		res, err := s.engine.Evaluate(ctx, view, tx.changes)
		if err != nil {
			return Result{}, err
		}
		result = res
		if res.HasBlocking() {
			return res, model.RuleViolationError{Result: res}
		}
	}

	s.state = tx.state
	return result, nil
}

// View executes fn against a read-only snapshot of the committed state.
func (s *Store) View(_ context.Context, fn func(TransactionView) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := s.state.clone()
	return fn(transactionView{state: &snapshot})
}

func (tx *transaction) recordChange(change Change) {
	tx.changes = append(tx.changes, change)
}

// Snapshot exposes the transactional state as a read-only view.
func (tx *transaction) Snapshot() TransactionView {
	return transactionView{state: &tx.state}
}

// CreateLevel stores a new level within the transaction.
func (tx *transaction) CreateLevel(l Level) (Level, error) {
	if l.ID == "" {
		l.ID = newID()
	}
	if _, exists := tx.state.levels[l.ID]; exists {
		return Level{}, fmt.Errorf("level %q already exists", l.ID)
	}
	if l.Name == "" {
		return Level{}, fmt.Errorf("level name required")
	}
	l.CreatedAt = tx.now
	l.UpdatedAt = tx.now
	tx.state.levels[l.ID] = l
	tx.recordChange(Change{Entity: model.EntityLevel, Action: model.ActionCreate, After: l})
	return l, nil
}

// CreateWallType stores a new wall construction template.
func (tx *transaction) CreateWallType(t WallType) (WallType, error) {
	if t.ID == "" {
		t.ID = newID()
	}
	if _, exists := tx.state.wallTypes[t.ID]; exists {
		return WallType{}, fmt.Errorf("wall type %q already exists", t.ID)
	}
	if t.Kind == "" {
		t.Kind = model.WallKindBasic
	}
	t.CreatedAt = tx.now
	t.UpdatedAt = tx.now
	tx.state.wallTypes[t.ID] = t
	tx.recordChange(Change{Entity: model.EntityWallType, Action: model.ActionCreate, After: t})
	return t, nil
}

// CreateFloorType stores a new floor construction template.
func (tx *transaction) CreateFloorType(t FloorType) (FloorType, error) {
	if t.ID == "" {
		t.ID = newID()
	}
	if _, exists := tx.state.floorTypes[t.ID]; exists {
		return FloorType{}, fmt.Errorf("floor type %q already exists", t.ID)
	}
	t.CreatedAt = tx.now
	t.UpdatedAt = tx.now
	tx.state.floorTypes[t.ID] = t
	tx.recordChange(Change{Entity: model.EntityFloorType, Action: model.ActionCreate, After: t})
	return t, nil
}

// CreateWall stores a wall instance. The referenced level and wall type must
// already exist in the transactional state.
func (tx *transaction) CreateWall(w Wall) (Wall, error) {
	if w.ID == "" {
		w.ID = newID()
	}
	if _, exists := tx.state.walls[w.ID]; exists {
		return Wall{}, fmt.Errorf("wall %q already exists", w.ID)
	}
	if _, ok := tx.state.levels[w.LevelID]; !ok {
		return Wall{}, fmt.Errorf("wall references unknown level %q", w.LevelID)
	}
	if _, ok := tx.state.wallTypes[w.TypeID]; !ok {
		return Wall{}, fmt.Errorf("wall references unknown wall type %q", w.TypeID)
	}
	if w.Axis().Degenerate() {
		return Wall{}, fmt.Errorf("wall axis endpoints coincide")
	}
	w.CreatedAt = tx.now
	w.UpdatedAt = tx.now
	tx.state.walls[w.ID] = w
	tx.recordChange(Change{Entity: model.EntityWall, Action: model.ActionCreate, After: w})
	return w, nil
}

// CreateFloor stores a floor instance. The referenced level and floor type
// must already exist in the transactional state.
func (tx *transaction) CreateFloor(f Floor) (Floor, error) {
	if f.ID == "" {
		f.ID = newID()
	}
	if _, exists := tx.state.floors[f.ID]; exists {
		return Floor{}, fmt.Errorf("floor %q already exists", f.ID)
	}
	if _, ok := tx.state.levels[f.LevelID]; !ok {
		return Floor{}, fmt.Errorf("floor references unknown level %q", f.LevelID)
	}
	if _, ok := tx.state.floorTypes[f.TypeID]; !ok {
		return Floor{}, fmt.Errorf("floor references unknown floor type %q", f.TypeID)
	}
	if !f.Boundary.Closed() {
		return Floor{}, fmt.Errorf("floor boundary is not a closed loop")
	}
	f.CreatedAt = tx.now
	f.UpdatedAt = tx.now
	tx.state.floors[f.ID] = cloneFloor(f)
	tx.recordChange(Change{Entity: model.EntityFloor, Action: model.ActionCreate, After: cloneFloor(f)})
	return cloneFloor(f), nil
}

// DeleteWall removes a wall from the transactional state.
func (tx *transaction) DeleteWall(id string) error {
	current, ok := tx.state.walls[id]
	if !ok {
		return fmt.Errorf("wall %q not found", id)
	}
	delete(tx.state.walls, id)
	tx.recordChange(Change{Entity: model.EntityWall, Action: model.ActionDelete, Before: current})
	return nil
}

// DeleteFloor removes a floor from the transactional state.
func (tx *transaction) DeleteFloor(id string) error {
	current, ok := tx.state.floors[id]
	if !ok {
		return fmt.Errorf("floor %q not found", id)
	}
	delete(tx.state.floors, id)
	tx.recordChange(Change{Entity: model.EntityFloor, Action: model.ActionDelete, Before: cloneFloor(current)})
	return nil
}

// FindLevel retrieves a level by ID from the transactional state.
func (tx *transaction) FindLevel(id string) (Level, bool) {
	l, ok := tx.state.levels[id]
	return l, ok
}

// FindWallType retrieves a wall type by ID from the transactional state.
func (tx *transaction) FindWallType(id string) (WallType, bool) {
	t, ok := tx.state.wallTypes[id]
	return t, ok
}

// FindFloorType retrieves a floor type by ID from the transactional state.
func (tx *transaction) FindFloorType(id string) (FloorType, bool) {
	t, ok := tx.state.floorTypes[id]
	return t, ok
}
