package build

import (
	"context"
	"fmt"

	"github.com/LarnoVisser/RoomMaker/pkg/model"
)

// NewWallIntegrityRule returns the in-transaction rule enforcing that every
// wall references an existing level and wall type, stands at a positive
// height, and spans a non-degenerate axis.
func NewWallIntegrityRule() model.Rule {
	return wallIntegrityRule{}
}

type wallIntegrityRule struct{}

func (wallIntegrityRule) Name() string { return "wall_integrity" }

func (wallIntegrityRule) Evaluate(_ context.Context, view model.RuleView, _ []model.Change) (model.Result, error) {
	res := model.Result{}
	violate := func(id, msg string) {
		res.Violations = append(res.Violations, model.Violation{
			Rule:     "wall_integrity",
			Severity: model.SeverityBlock,
			Message:  msg,
			Entity:   model.EntityWall,
			EntityID: id,
		})
	}
	for _, wall := range view.ListWalls() {
		if _, ok := view.FindLevel(wall.LevelID); !ok {
			violate(wall.ID, fmt.Sprintf("wall %s references missing level %s", wall.ID, wall.LevelID))
		}
		if _, ok := view.FindWallType(wall.TypeID); !ok {
			violate(wall.ID, fmt.Sprintf("wall %s references missing wall type %s", wall.ID, wall.TypeID))
		}
		if wall.Height <= 0 {
			violate(wall.ID, fmt.Sprintf("wall %s has non-positive height %v", wall.ID, wall.Height))
		}
		if wall.Axis().Degenerate() {
			violate(wall.ID, fmt.Sprintf("wall %s has coincident axis endpoints", wall.ID))
		}
	}
	return res, nil
}
