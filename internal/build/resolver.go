package build

import (
	"fmt"
	"math"
	"sort"

	"github.com/LarnoVisser/RoomMaker/pkg/model"
)

const (
	// levelElevationTolerance bounds the elevation lookup for the base level.
	levelElevationTolerance = 0.001
	// defaultLevelName names the level created when no zero-elevation level
	// exists in the document.
	defaultLevelName = "Level 0"
)

// resolved carries the dependent entities every wall and floor of the room
// references.
type resolved struct {
	level        Level
	wallType     WallType
	floorType    FloorType
	levelCreated bool
}

// resolveDependencies locates the zero-elevation level (creating it when
// absent), a basic wall type, and any floor type. It runs inside the room
// transaction so a created level never outlives a failed build. Wall and
// floor types are never created here; their layered composition is out of
// scope for this pipeline.
func resolveDependencies(tx Transaction) (resolved, error) {
	var deps resolved

	level, found := findBaseLevel(tx.Snapshot())
	if !found {
		created, err := tx.CreateLevel(Level{Name: defaultLevelName, Elevation: 0})
		if err != nil {
			return resolved{}, model.NewBuildError(model.KindResolutionFailure, "create level", err)
		}
		level = created
		deps.levelCreated = true
	}
	deps.level = level

	wallType, found := findBasicWallType(tx.Snapshot())
	if !found {
		return resolved{}, model.NewBuildError(model.KindMissingHostEntity, "resolve wall type",
			fmt.Errorf("document has no wall type of kind %q", model.WallKindBasic))
	}
	deps.wallType = wallType

	floorType, found := findAnyFloorType(tx.Snapshot())
	if !found {
		return resolved{}, model.NewBuildError(model.KindMissingHostEntity, "resolve floor type",
			fmt.Errorf("document has no floor types"))
	}
	deps.floorType = floorType

	return deps, nil
}

// findBaseLevel returns the level nearest zero elevation within tolerance.
// Ties break on name so repeated runs resolve the same level.
func findBaseLevel(view TransactionView) (Level, bool) {
	levels := view.ListLevels()
	sort.Slice(levels, func(i, j int) bool {
		di, dj := math.Abs(levels[i].Elevation), math.Abs(levels[j].Elevation)
		if di != dj {
			return di < dj
		}
		return levels[i].Name < levels[j].Name
	})
	for _, l := range levels {
		if math.Abs(l.Elevation) < levelElevationTolerance {
			return l, true
		}
	}
	return Level{}, false
}

// findBasicWallType returns any wall type of the basic kind, name-ordered for
// deterministic selection.
func findBasicWallType(view TransactionView) (WallType, bool) {
	types := view.ListWallTypes()
	sort.Slice(types, func(i, j int) bool { return types[i].Name < types[j].Name })
	for _, t := range types {
		if t.Kind == model.WallKindBasic {
			return t, true
		}
	}
	return WallType{}, false
}

// findAnyFloorType returns any floor type with no kind filter, name-ordered
// for deterministic selection.
func findAnyFloorType(view TransactionView) (FloorType, bool) {
	types := view.ListFloorTypes()
	if len(types) == 0 {
		return FloorType{}, false
	}
	sort.Slice(types, func(i, j int) bool { return types[i].Name < types[j].Name })
	return types[0], true
}
