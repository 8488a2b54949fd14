package build

import (
	"context"
	"time"

	"github.com/LarnoVisser/RoomMaker/pkg/geometry"
	"github.com/LarnoVisser/RoomMaker/pkg/model"
)

// Service exposes the room-construction pipeline over a document store.
type Service struct {
	store   PersistentStore
	logger  Logger
	metrics MetricsRecorder
	tracer  Tracer
}

// Option customizes service construction.
type Option func(*Service)

// WithLogger injects a structured logger; the default discards everything.
func WithLogger(logger Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics injects a metrics recorder observed once per pipeline run.
func WithMetrics(rec MetricsRecorder) Option {
	return func(s *Service) {
		if rec != nil {
			s.metrics = rec
		}
	}
}

// WithTracer injects a tracer that brackets each pipeline run.
func WithTracer(tracer Tracer) Option {
	return func(s *Service) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// NewService constructs a service backed by the supplied document store.
func NewService(store PersistentStore, opts ...Option) *Service {
	s := &Service{
		store:   store,
		logger:  noopLogger{},
		metrics: noopMetrics{},
		tracer:  noopTracer{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the underlying document store.
func (s *Service) Store() PersistentStore { return s.store }

// RoomBuild is the receipt of a committed room build.
type RoomBuild struct {
	LevelID      string   `json:"level_id"`
	LevelCreated bool     `json:"level_created"`
	WallTypeID   string   `json:"wall_type_id"`
	FloorTypeID  string   `json:"floor_type_id"`
	WallIDs      []string `json:"wall_ids"`
	FloorID      string   `json:"floor_id"`
	// Converted dimensions in document internal units.
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// CreateRoom materializes one rectangular room from spec inside a single
// atomic transaction: exactly 4 walls and 1 floor, anchored to the resolved
// (or newly created) zero-elevation level. On any failure the document is
// left untouched and the returned error carries a model.FailureKind.
func (s *Service) CreateRoom(ctx context.Context, spec RoomSpec) (RoomBuild, Result, error) {
	const op = "create_room"
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, op)

	build, res, err := s.createRoom(ctx, spec)

	span.End(err)
	s.metrics.Observe(ctx, op, err == nil, time.Since(start))
	if err != nil {
		s.logger.Error("room build failed",
			"kind", string(model.KindOf(err)),
			"error", err.Error(),
		)
		return RoomBuild{}, res, err
	}
	s.logger.Info("room build committed",
		"level_id", build.LevelID,
		"level_created", build.LevelCreated,
		"walls", len(build.WallIDs),
		"floor_id", build.FloorID,
	)
	return build, res, nil
}

func (s *Service) createRoom(ctx context.Context, spec RoomSpec) (RoomBuild, Result, error) {
	if err := spec.Validate(); err != nil {
		return RoomBuild{}, Result{}, model.NewBuildError(model.KindGeometryDegenerate, "validate spec", err)
	}

	length := geometry.MetersToFeet(spec.LengthM)
	width := geometry.MetersToFeet(spec.WidthM)
	height := geometry.MetersToFeet(spec.HeightM)

	corners := geometry.RectangleCorners(length, width)
	loop, err := geometry.AssembleLoop(corners[:])
	if err != nil {
		// Validation already rejects zero dimensions; this guards the loop
		// invariant independently of how the corners were produced.
		return RoomBuild{}, Result{}, model.NewBuildError(model.KindGeometryDegenerate, "assemble loop", err)
	}

	build := RoomBuild{Length: length, Width: width, Height: height}
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		deps, err := resolveDependencies(tx)
		if err != nil {
			return err
		}
		build.LevelID = deps.level.ID
		build.LevelCreated = deps.levelCreated
		build.WallTypeID = deps.wallType.ID
		build.FloorTypeID = deps.floorType.ID

		wallIDs, err := buildWalls(tx, loop, deps, height)
		if err != nil {
			return err
		}
		build.WallIDs = wallIDs

		floorID, err := buildFloor(tx, loop, deps)
		if err != nil {
			return err
		}
		build.FloorID = floorID
		return nil
	})
	if err != nil {
		// Failures raised inside the unit of work already carry their kind.
		// Anything else (blocked commit, snapshot persistence) is a
		// transaction failure.
		if model.KindOf(err) == "" {
			err = model.NewBuildError(model.KindTransactionFailure, "commit", err)
		}
		return RoomBuild{}, res, err
	}
	return build, res, nil
}

// SeedDefaultTypes creates one basic wall type and one floor type in their
// own transaction. It is a document-authoring helper for fresh documents; the
// room pipeline itself never creates types. Existing types are left alone.
func (s *Service) SeedDefaultTypes(ctx context.Context) error {
	_, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		view := tx.Snapshot()
		if _, ok := findBasicWallType(view); !ok {
			if _, err := tx.CreateWallType(WallType{Name: "Generic - 200mm", Kind: model.WallKindBasic}); err != nil {
				return err
			}
		}
		if _, ok := findAnyFloorType(view); !ok {
			if _, err := tx.CreateFloorType(FloorType{Name: "Generic - 300mm"}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return model.NewBuildError(model.KindResolutionFailure, "seed types", err)
	}
	return nil
}
