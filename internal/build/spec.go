package build

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/LarnoVisser/RoomMaker/pkg/model"
)

// RoomSpec is the immutable input triple of room dimensions in meters.
type RoomSpec struct {
	LengthM float64 `json:"length_m"`
	WidthM  float64 `json:"width_m"`
	HeightM float64 `json:"height_m"`
}

// Validate rejects dimensions that would produce degenerate footprint edges
// or walls: zero, negative, or non-finite values. Rejection happens before
// any document mutation.
func (s RoomSpec) Validate() error {
	check := func(name string, v float64) error {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s is not a finite number", name)
		}
		if v <= 0 {
			return fmt.Errorf("%s must be positive, got %v", name, v)
		}
		return nil
	}
	if err := check("length_m", s.LengthM); err != nil {
		return err
	}
	if err := check("width_m", s.WidthM); err != nil {
		return err
	}
	return check("height_m", s.HeightM)
}

// specEnvelope mirrors the host input file layout: {"room": {...}}. The
// dimension fields are pointers so an absent field is a parse error while an
// explicit zero parses and is rejected by Validate as degenerate geometry.
type specEnvelope struct {
	Room *roomSpecFile `json:"room"`
}

type roomSpecFile struct {
	LengthM *float64 `json:"length_m"`
	WidthM  *float64 `json:"width_m"`
	HeightM *float64 `json:"height_m"`
}

// ParseSpec decodes a room specification from its JSON envelope. All three
// dimension fields are required.
func ParseSpec(r io.Reader) (RoomSpec, error) {
	var env specEnvelope
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&env); err != nil {
		return RoomSpec{}, fmt.Errorf("decode room spec: %w", err)
	}
	if env.Room == nil {
		return RoomSpec{}, fmt.Errorf("room spec missing %q object", "room")
	}
	if env.Room.LengthM == nil || env.Room.WidthM == nil || env.Room.HeightM == nil {
		return RoomSpec{}, fmt.Errorf("room spec requires length_m, width_m, and height_m")
	}
	return RoomSpec{
		LengthM: *env.Room.LengthM,
		WidthM:  *env.Room.WidthM,
		HeightM: *env.Room.HeightM,
	}, nil
}

// LoadSpecFile reads and parses a room specification file. Validation errors
// carry the degenerate-geometry failure kind so hosts can distinguish bad
// input from document failures.
func LoadSpecFile(path string) (RoomSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return RoomSpec{}, fmt.Errorf("open room spec: %w", err)
	}
	defer func() { _ = f.Close() }()
	spec, err := ParseSpec(f)
	if err != nil {
		return RoomSpec{}, err
	}
	if err := spec.Validate(); err != nil {
		return RoomSpec{}, model.NewBuildError(model.KindGeometryDegenerate, "load spec", err)
	}
	return spec, nil
}
