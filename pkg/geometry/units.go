package geometry

// FeetPerMeter is the fixed conversion factor from meters to the document's
// internal length unit (decimal feet).
const FeetPerMeter = 3.2808399

// MetersToFeet converts a metric length to internal units.
func MetersToFeet(v float64) float64 {
	return v * FeetPerMeter
}
