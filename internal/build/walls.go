package build

import (
	"fmt"

	"github.com/LarnoVisser/RoomMaker/pkg/geometry"
	"github.com/LarnoVisser/RoomMaker/pkg/model"
)

// buildWalls creates one wall per loop segment, sequentially, all anchored to
// the resolved level and wall type at the converted room height with default
// orientation flags. The first failed creation aborts the remainder; the
// surrounding transaction discards any walls already created.
func buildWalls(tx Transaction, loop geometry.CurveLoop, deps resolved, height float64) ([]string, error) {
	ids := make([]string, 0, len(loop.Segments))
	for i, seg := range loop.Segments {
		wall, err := tx.CreateWall(Wall{
			TypeID:     deps.wallType.ID,
			LevelID:    deps.level.ID,
			Start:      seg.Start,
			End:        seg.End,
			Height:     height,
			BaseOffset: 0,
			Structural: false,
			Flipped:    false,
		})
		if err != nil {
			return nil, model.NewBuildError(model.KindCreationFailure, "create wall",
				fmt.Errorf("segment %d: %w", i, err))
		}
		ids = append(ids, wall.ID)
	}
	return ids, nil
}

// buildFloor creates the single floor bounded by the same loop the walls were
// derived from, guaranteeing the floor footprint matches the wall footprint.
func buildFloor(tx Transaction, loop geometry.CurveLoop, deps resolved) (string, error) {
	floor, err := tx.CreateFloor(Floor{
		TypeID:   deps.floorType.ID,
		LevelID:  deps.level.ID,
		Boundary: loop,
	})
	if err != nil {
		return "", model.NewBuildError(model.KindCreationFailure, "create floor", err)
	}
	return floor.ID, nil
}
