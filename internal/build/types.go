// Package build implements the room-construction pipeline: metric input
// validation, footprint synthesis, dependent-entity resolution, and the
// transactional creation of walls and floor inside one atomic unit of work.
package build

import "github.com/LarnoVisser/RoomMaker/pkg/model"

type (
	Level           = model.Level
	WallType        = model.WallType
	FloorType       = model.FloorType
	Wall            = model.Wall
	Floor           = model.Floor
	Change          = model.Change
	Result          = model.Result
	RulesEngine     = model.RulesEngine
	Transaction     = model.Transaction
	TransactionView = model.TransactionView
	PersistentStore = model.PersistentStore
)

const (
	EntityLevel     = model.EntityLevel
	EntityWallType  = model.EntityWallType
	EntityFloorType = model.EntityFloorType
	EntityWall      = model.EntityWall
	EntityFloor     = model.EntityFloor
)

const (
	SeverityBlock = model.SeverityBlock
	SeverityWarn  = model.SeverityWarn
	SeverityLog   = model.SeverityLog
)
