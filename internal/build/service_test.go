package build

import (
	"context"
	"math"
	"testing"

	"github.com/LarnoVisser/RoomMaker/internal/infra/persistence/memory"
	"github.com/LarnoVisser/RoomMaker/pkg/model"
)

func newSeededStore(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore(NewDefaultRulesEngine())
	_, err := store.RunInTransaction(context.Background(), func(tx model.Transaction) error {
		if _, err := tx.CreateWallType(model.WallType{Name: "Generic - 200mm", Kind: model.WallKindBasic}); err != nil {
			return err
		}
		_, err := tx.CreateFloorType(model.FloorType{Name: "Generic - 300mm"})
		return err
	})
	if err != nil {
		t.Fatalf("seed store: %v", err)
	}
	return store
}

func TestCreateRoomBuildsWallsAndFloor(t *testing.T) {
	store := newSeededStore(t)
	svc := NewService(store)
	spec := RoomSpec{LengthM: 4.0, WidthM: 3.0, HeightM: 2.5}

	build, _, err := svc.CreateRoom(context.Background(), spec)
	if err != nil {
		t.Fatalf("create room: %v", err)
	}
	if math.Abs(build.Length-13.1233596) > 1e-6 {
		t.Fatalf("length = %v, want 13.1233596", build.Length)
	}
	if math.Abs(build.Width-9.8425197) > 1e-6 {
		t.Fatalf("width = %v, want 9.8425197", build.Width)
	}
	if math.Abs(build.Height-8.2020998) > 1e-6 {
		t.Fatalf("height = %v, want 8.2020998", build.Height)
	}
	if len(build.WallIDs) != 4 {
		t.Fatalf("expected 4 walls, got %d", len(build.WallIDs))
	}
	if build.FloorID == "" {
		t.Fatalf("expected floor ID")
	}
	if !build.LevelCreated {
		t.Fatalf("fresh document should create the base level")
	}

	walls := store.ListWalls()
	if len(walls) != 4 {
		t.Fatalf("expected 4 committed walls, got %d", len(walls))
	}
	var perimeter float64
	for _, w := range walls {
		if w.LevelID != build.LevelID {
			t.Fatalf("wall %s on level %s, want %s", w.ID, w.LevelID, build.LevelID)
		}
		if w.TypeID != build.WallTypeID {
			t.Fatalf("wall %s uses type %s, want %s", w.ID, w.TypeID, build.WallTypeID)
		}
		if math.Abs(w.Height-build.Height) > 1e-9 {
			t.Fatalf("wall %s height = %v, want %v", w.ID, w.Height, build.Height)
		}
		if w.Start.Z != 0 || w.End.Z != 0 {
			t.Fatalf("wall %s endpoints off the base plane", w.ID)
		}
		perimeter += w.Axis().Length()
	}
	wantPerimeter := 2 * (build.Length + build.Width)
	if math.Abs(perimeter-wantPerimeter) > 1e-6 {
		t.Fatalf("perimeter = %v, want %v", perimeter, wantPerimeter)
	}

	floors := store.ListFloors()
	if len(floors) != 1 {
		t.Fatalf("expected 1 committed floor, got %d", len(floors))
	}
	floor := floors[0]
	if floor.LevelID != build.LevelID || floor.TypeID != build.FloorTypeID {
		t.Fatalf("floor references %s/%s, want %s/%s",
			floor.LevelID, floor.TypeID, build.LevelID, build.FloorTypeID)
	}
	if len(floor.Boundary.Segments) != 4 || !floor.Boundary.Closed() {
		t.Fatalf("expected closed 4-segment boundary")
	}
}

func TestCreateRoomReusesExistingLevel(t *testing.T) {
	store := newSeededStore(t)
	var groundID string
	_, err := store.RunInTransaction(context.Background(), func(tx model.Transaction) error {
		level, err := tx.CreateLevel(model.Level{Name: "Ground", Elevation: 0})
		if err != nil {
			return err
		}
		groundID = level.ID
		return nil
	})
	if err != nil {
		t.Fatalf("seed level: %v", err)
	}

	svc := NewService(store)
	build, _, err := svc.CreateRoom(context.Background(), RoomSpec{LengthM: 4, WidthM: 3, HeightM: 2.5})
	if err != nil {
		t.Fatalf("create room: %v", err)
	}
	if build.LevelCreated {
		t.Fatalf("existing zero level must be reused")
	}
	if build.LevelID != groundID {
		t.Fatalf("level = %s, want %s", build.LevelID, groundID)
	}
	if len(store.ListLevels()) != 1 {
		t.Fatalf("expected a single level")
	}
}

func TestCreateRoomIgnoresOffsetLevels(t *testing.T) {
	store := newSeededStore(t)
	_, err := store.RunInTransaction(context.Background(), func(tx model.Transaction) error {
		_, err := tx.CreateLevel(model.Level{Name: "Level 1", Elevation: 10})
		return err
	})
	if err != nil {
		t.Fatalf("seed level: %v", err)
	}
	svc := NewService(store)
	build, _, err := svc.CreateRoom(context.Background(), RoomSpec{LengthM: 4, WidthM: 3, HeightM: 2.5})
	if err != nil {
		t.Fatalf("create room: %v", err)
	}
	if !build.LevelCreated {
		t.Fatalf("level at elevation 10 is not a base level; expected a new one")
	}
	level, ok := store.GetLevel(build.LevelID)
	if !ok {
		t.Fatalf("missing created level")
	}
	if level.Name != "Level 0" || level.Elevation != 0 {
		t.Fatalf("created level = %+v, want Level 0 at elevation 0", level)
	}
}

func TestCreateRoomLevelReuseAcrossRuns(t *testing.T) {
	store := newSeededStore(t)
	svc := NewService(store)
	ctx := context.Background()
	spec := RoomSpec{LengthM: 4, WidthM: 3, HeightM: 2.5}

	first, _, err := svc.CreateRoom(ctx, spec)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, _, err := svc.CreateRoom(ctx, spec)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !first.LevelCreated || second.LevelCreated {
		t.Fatalf("only the first run creates the level")
	}
	if first.LevelID != second.LevelID {
		t.Fatalf("runs resolved different levels: %s vs %s", first.LevelID, second.LevelID)
	}
	if len(store.ListLevels()) != 1 {
		t.Fatalf("expected 1 level, got %d", len(store.ListLevels()))
	}
	if len(store.ListWalls()) != 8 || len(store.ListFloors()) != 2 {
		t.Fatalf("expected 8 walls and 2 floors, got %d/%d",
			len(store.ListWalls()), len(store.ListFloors()))
	}
}

func TestCreateRoomMissingWallType(t *testing.T) {
	store := memory.NewStore(NewDefaultRulesEngine())
	_, err := store.RunInTransaction(context.Background(), func(tx model.Transaction) error {
		_, err := tx.CreateFloorType(model.FloorType{Name: "Generic - 300mm"})
		return err
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	svc := NewService(store)
	_, _, err = svc.CreateRoom(context.Background(), RoomSpec{LengthM: 4, WidthM: 3, HeightM: 2.5})
	if got := model.KindOf(err); got != model.KindMissingHostEntity {
		t.Fatalf("kind = %q, want %q (err: %v)", got, model.KindMissingHostEntity, err)
	}
	if len(store.ListLevels()) != 0 {
		t.Fatalf("failed build must not leave a created level behind")
	}
}

func TestCreateRoomMissingFloorType(t *testing.T) {
	store := memory.NewStore(NewDefaultRulesEngine())
	_, err := store.RunInTransaction(context.Background(), func(tx model.Transaction) error {
		_, err := tx.CreateWallType(model.WallType{Name: "Generic - 200mm", Kind: model.WallKindBasic})
		return err
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	svc := NewService(store)
	_, _, err = svc.CreateRoom(context.Background(), RoomSpec{LengthM: 4, WidthM: 3, HeightM: 2.5})
	if got := model.KindOf(err); got != model.KindMissingHostEntity {
		t.Fatalf("kind = %q, want %q (err: %v)", got, model.KindMissingHostEntity, err)
	}
	if len(store.ListLevels()) != 0 || len(store.ListWalls()) != 0 {
		t.Fatalf("failed build must not commit partial state")
	}
}

func TestCreateRoomNonBasicWallTypeNotEnough(t *testing.T) {
	store := memory.NewStore(NewDefaultRulesEngine())
	_, err := store.RunInTransaction(context.Background(), func(tx model.Transaction) error {
		if _, err := tx.CreateWallType(model.WallType{Name: "Storefront", Kind: model.WallKindCurtain}); err != nil {
			return err
		}
		_, err := tx.CreateFloorType(model.FloorType{Name: "Generic - 300mm"})
		return err
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	svc := NewService(store)
	_, _, err = svc.CreateRoom(context.Background(), RoomSpec{LengthM: 4, WidthM: 3, HeightM: 2.5})
	if got := model.KindOf(err); got != model.KindMissingHostEntity {
		t.Fatalf("kind = %q, want %q (err: %v)", got, model.KindMissingHostEntity, err)
	}
}

func TestCreateRoomBlockedCommitRollsBackEverything(t *testing.T) {
	engine := model.NewRulesEngine()
	engine.Register(NewWallIntegrityRule())
	engine.Register(NewFloorBoundaryRule())
	engine.Register(noFloorsRule{})
	store := memory.NewStore(engine)
	_, err := store.RunInTransaction(context.Background(), func(tx model.Transaction) error {
		if _, err := tx.CreateWallType(model.WallType{Name: "Generic - 200mm", Kind: model.WallKindBasic}); err != nil {
			return err
		}
		_, err := tx.CreateFloorType(model.FloorType{Name: "Generic - 300mm"})
		return err
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	svc := NewService(store)
	_, res, err := svc.CreateRoom(context.Background(), RoomSpec{LengthM: 4, WidthM: 3, HeightM: 2.5})
	if got := model.KindOf(err); got != model.KindTransactionFailure {
		t.Fatalf("kind = %q, want %q (err: %v)", got, model.KindTransactionFailure, err)
	}
	if !res.HasBlocking() {
		t.Fatalf("expected blocking result")
	}
	if len(store.ListWalls()) != 0 || len(store.ListFloors()) != 0 || len(store.ListLevels()) != 0 {
		t.Fatalf("blocked commit must leave no walls, floor, or created level")
	}
}

// noFloorsRule blocks any commit that contains a floor; it forces a commit
// failure after the full room was created inside the transaction.
type noFloorsRule struct{}

func (noFloorsRule) Name() string { return "no_floors" }

func (noFloorsRule) Evaluate(_ context.Context, view model.RuleView, _ []model.Change) (model.Result, error) {
	var res model.Result
	for _, floor := range view.ListFloors() {
		res.Violations = append(res.Violations, model.Violation{
			Rule:     "no_floors",
			Severity: model.SeverityBlock,
			Message:  "floors are not allowed in this document",
			Entity:   model.EntityFloor,
			EntityID: floor.ID,
		})
	}
	return res, nil
}

func TestCreateRoomDegenerateSpec(t *testing.T) {
	svc := NewService(memory.NewStore(nil))
	cases := []RoomSpec{
		{LengthM: 0, WidthM: 3, HeightM: 2.5},
		{LengthM: 4, WidthM: -3, HeightM: 2.5},
		{LengthM: 4, WidthM: 3, HeightM: 0},
		{LengthM: math.NaN(), WidthM: 3, HeightM: 2.5},
		{LengthM: math.Inf(1), WidthM: 3, HeightM: 2.5},
	}
	for _, spec := range cases {
		_, _, err := svc.CreateRoom(context.Background(), spec)
		if got := model.KindOf(err); got != model.KindGeometryDegenerate {
			t.Fatalf("spec %+v: kind = %q, want %q", spec, got, model.KindGeometryDegenerate)
		}
	}
}

func TestSeedDefaultTypes(t *testing.T) {
	store := memory.NewStore(nil)
	svc := NewService(store)
	ctx := context.Background()
	if err := svc.SeedDefaultTypes(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if len(store.ListWallTypes()) != 1 || len(store.ListFloorTypes()) != 1 {
		t.Fatalf("expected one wall type and one floor type")
	}
	if err := svc.SeedDefaultTypes(ctx); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if len(store.ListWallTypes()) != 1 || len(store.ListFloorTypes()) != 1 {
		t.Fatalf("seeding must be idempotent")
	}
}
