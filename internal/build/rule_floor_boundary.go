package build

import (
	"context"
	"fmt"

	"github.com/LarnoVisser/RoomMaker/pkg/model"
)

// NewFloorBoundaryRule returns the in-transaction rule enforcing that every
// floor references an existing level and floor type and carries a closed,
// non-empty boundary loop.
func NewFloorBoundaryRule() model.Rule {
	return floorBoundaryRule{}
}

type floorBoundaryRule struct{}

func (floorBoundaryRule) Name() string { return "floor_boundary" }

func (floorBoundaryRule) Evaluate(_ context.Context, view model.RuleView, _ []model.Change) (model.Result, error) {
	res := model.Result{}
	violate := func(id, msg string) {
		res.Violations = append(res.Violations, model.Violation{
			Rule:     "floor_boundary",
			Severity: model.SeverityBlock,
			Message:  msg,
			Entity:   model.EntityFloor,
			EntityID: id,
		})
	}
	for _, floor := range view.ListFloors() {
		if _, ok := view.FindLevel(floor.LevelID); !ok {
			violate(floor.ID, fmt.Sprintf("floor %s references missing level %s", floor.ID, floor.LevelID))
		}
		if _, ok := view.FindFloorType(floor.TypeID); !ok {
			violate(floor.ID, fmt.Sprintf("floor %s references missing floor type %s", floor.ID, floor.TypeID))
		}
		if len(floor.Boundary.Segments) == 0 {
			violate(floor.ID, fmt.Sprintf("floor %s has an empty boundary", floor.ID))
			continue
		}
		if !floor.Boundary.Closed() {
			violate(floor.ID, fmt.Sprintf("floor %s boundary does not close", floor.ID))
		}
	}
	return res, nil
}
