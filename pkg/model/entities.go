// Package model defines the building-document entities, persistence
// contracts, and rule evaluation primitives used by RoomMaker.
package model

import (
	"time"

	"github.com/LarnoVisser/RoomMaker/pkg/geometry"
)

// EntityType identifies the type of record stored in the document.
type EntityType string

// Supported entity type identifiers used in Change records and persistence buckets.
const (
	// EntityLevel identifies a horizontal reference plane record.
	EntityLevel EntityType = "level"
	// EntityWallType identifies a wall construction template record.
	EntityWallType EntityType = "wall_type"
	// EntityFloorType identifies a floor construction template record.
	EntityFloorType EntityType = "floor_type"
	// EntityWall identifies a wall instance record.
	EntityWall EntityType = "wall"
	// EntityFloor identifies a floor instance record.
	EntityFloor EntityType = "floor"
)

// WallKind classifies wall construction templates.
type WallKind string

// Canonical wall kinds. The room pipeline only ever instantiates basic walls;
// the remaining kinds exist so imported documents round-trip faithfully.
const (
	// WallKindBasic is a layered, straight wall assembly.
	WallKindBasic WallKind = "basic"
	// WallKindCurtain is a panelized curtain wall system.
	WallKindCurtain WallKind = "curtain"
	WallKindStacked WallKind = "stacked"
)

// Base contains common fields for all document records.
type Base struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Level is a horizontal reference plane that walls and floors attach to.
type Level struct {
	Base
	Name      string  `json:"name"`
	Elevation float64 `json:"elevation"`
}

// WallType is a named wall construction template.
type WallType struct {
	Base
	Name string   `json:"name"`
	Kind WallKind `json:"kind"`
}

// FloorType is a named floor construction template.
type FloorType struct {
	Base
	Name string `json:"name"`
}

// Wall is a single wall instance spanning one footprint edge.
type Wall struct {
	Base
	TypeID     string         `json:"type_id"`
	LevelID    string         `json:"level_id"`
	Start      geometry.Point `json:"start"`
	End        geometry.Point `json:"end"`
	Height     float64        `json:"height"`
	BaseOffset float64        `json:"base_offset"`
	Structural bool           `json:"structural"`
	Flipped    bool           `json:"flipped"`
}

// Axis returns the wall's location line.
func (w Wall) Axis() geometry.Line {
	return geometry.Line{Start: w.Start, End: w.End}
}

// Floor is a single floor instance bounded by a closed loop.
type Floor struct {
	Base
	TypeID   string             `json:"type_id"`
	LevelID  string             `json:"level_id"`
	Boundary geometry.CurveLoop `json:"boundary"`
}

// Change describes a mutation applied to an entity during a transaction.
type Change struct {
	Entity EntityType
	Action Action
	Before any
	After  any
}

// Action indicates the type of modification performed.
type Action string

// Change actions captured in the transaction audit trail.
const (
	// ActionCreate indicates an entity was created.
	ActionCreate Action = "create"
	ActionDelete Action = "delete"
)

// Severity captures rule outcomes.
type Severity string

// Rule evaluation severities determine commit behavior and logging.
const (
	// SeverityBlock blocks transaction commit.
	SeverityBlock Severity = "block"
	// SeverityWarn logs a warning but allows commit.
	SeverityWarn Severity = "warn"
	SeverityLog  Severity = "log"
)

// Violation reports a failed rule evaluation.
type Violation struct {
	Rule     string
	Severity Severity
	Message  string
	Entity   EntityType
	EntityID string
}

// Result aggregates violations from the rules engine.
type Result struct {
	Violations []Violation
}

// Merge appends violations from another result.
func (r *Result) Merge(other Result) {
	if len(other.Violations) == 0 {
		return
	}
	r.Violations = append(r.Violations, other.Violations...)
}

// HasBlocking returns true if the result contains blocking violations.
func (r Result) HasBlocking() bool {
	for _, v := range r.Violations {
		if v.Severity == SeverityBlock {
			return true
		}
	}
	return false
}

// RuleViolationError is returned when blocking violations are present.
type RuleViolationError struct {
	Result Result
}

func (e RuleViolationError) Error() string {
	return "transaction blocked by document rules"
}
