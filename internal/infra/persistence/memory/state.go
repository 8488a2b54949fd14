package memory

// Read-only view and committed-state accessors.

// ListLevels returns all levels within the view snapshot.
func (v transactionView) ListLevels() []Level {
	out := make([]Level, 0, len(v.state.levels))
	for _, l := range v.state.levels {
		out = append(out, l)
	}
	return out
}

// ListWallTypes returns all wall construction templates.
func (v transactionView) ListWallTypes() []WallType {
	out := make([]WallType, 0, len(v.state.wallTypes))
	for _, t := range v.state.wallTypes {
		out = append(out, t)
	}
	return out
}

// ListFloorTypes returns all floor construction templates.
func (v transactionView) ListFloorTypes() []FloorType {
	out := make([]FloorType, 0, len(v.state.floorTypes))
	for _, t := range v.state.floorTypes {
		out = append(out, t)
	}
	return out
}

// ListWalls returns all wall instances.
func (v transactionView) ListWalls() []Wall {
	out := make([]Wall, 0, len(v.state.walls))
	for _, w := range v.state.walls {
		out = append(out, w)
	}
	return out
}

// ListFloors returns all floor instances.
func (v transactionView) ListFloors() []Floor {
	out := make([]Floor, 0, len(v.state.floors))
	for _, f := range v.state.floors {
		out = append(out, cloneFloor(f))
	}
	return out
}

// FindLevel retrieves a level by ID from the snapshot.
func (v transactionView) FindLevel(id string) (Level, bool) {
	l, ok := v.state.levels[id]
	return l, ok
}

// FindWallType retrieves a wall type by ID from the snapshot.
func (v transactionView) FindWallType(id string) (WallType, bool) {
	t, ok := v.state.wallTypes[id]
	return t, ok
}

// FindFloorType retrieves a floor type by ID from the snapshot.
func (v transactionView) FindFloorType(id string) (FloorType, bool) {
	t, ok := v.state.floorTypes[id]
	return t, ok
}

// GetLevel retrieves a level by ID from committed state.
func (s *Store) GetLevel(id string) (Level, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.state.levels[id]
	return l, ok
}

// ListLevels returns all levels from committed state.
func (s *Store) ListLevels() []Level {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Level, 0, len(s.state.levels))
	for _, l := range s.state.levels {
		out = append(out, l)
	}
	return out
}

// ListWallTypes returns all wall construction templates from committed state.
func (s *Store) ListWallTypes() []WallType {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]WallType, 0, len(s.state.wallTypes))
	for _, t := range s.state.wallTypes {
		out = append(out, t)
	}
	return out
}

// ListFloorTypes returns all floor construction templates from committed state.
func (s *Store) ListFloorTypes() []FloorType {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]FloorType, 0, len(s.state.floorTypes))
	for _, t := range s.state.floorTypes {
		out = append(out, t)
	}
	return out
}

// ListWalls returns all wall instances from committed state.
func (s *Store) ListWalls() []Wall {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Wall, 0, len(s.state.walls))
	for _, w := range s.state.walls {
		out = append(out, w)
	}
	return out
}

// ListFloors returns all floor instances from committed state.
func (s *Store) ListFloors() []Floor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Floor, 0, len(s.state.floors))
	for _, f := range s.state.floors {
		out = append(out, cloneFloor(f))
	}
	return out
}

// ExportState captures the committed state as a serializable snapshot.
func (s *Store) ExportState() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshotFromState(s.state)
}

// ImportState replaces the committed state with the provided snapshot.
func (s *Store) ImportState(snapshot Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = stateFromSnapshot(snapshot)
}

func snapshotFromState(state documentState) Snapshot {
	snap := Snapshot{
		Levels:     make(map[string]Level, len(state.levels)),
		WallTypes:  make(map[string]WallType, len(state.wallTypes)),
		FloorTypes: make(map[string]FloorType, len(state.floorTypes)),
		Walls:      make(map[string]Wall, len(state.walls)),
		Floors:     make(map[string]Floor, len(state.floors)),
	}
	for k, v := range state.levels {
		snap.Levels[k] = v
	}
	for k, v := range state.wallTypes {
		snap.WallTypes[k] = v
	}
	for k, v := range state.floorTypes {
		snap.FloorTypes[k] = v
	}
	for k, v := range state.walls {
		snap.Walls[k] = v
	}
	for k, v := range state.floors {
		snap.Floors[k] = cloneFloor(v)
	}
	return snap
}

func stateFromSnapshot(snap Snapshot) documentState {
	state := newDocumentState()
	for k, v := range snap.Levels {
		state.levels[k] = v
	}
	for k, v := range snap.WallTypes {
		state.wallTypes[k] = v
	}
	for k, v := range snap.FloorTypes {
		state.floorTypes[k] = v
	}
	for k, v := range snap.Walls {
		state.walls[k] = v
	}
	for k, v := range snap.Floors {
		state.floors[k] = cloneFloor(v)
	}
	return state
}
