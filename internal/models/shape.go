package models

import "fmt"

// Shape is a spatial overlay attached to an annotation. Coordinates are
// percentages of the media's render surface so overlays stay valid when
// the same media is rendered at a different size.
type Shape struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Validate checks that every coordinate is a percentage in [0, 100].
func (s Shape) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"x", s.X},
		{"y", s.Y},
		{"width", s.Width},
		{"height", s.Height},
	} {
		if f.value < 0 || f.value > 100 {
			return fmt.Errorf("shape %s must be a percentage in [0, 100], got %g", f.name, f.value)
		}
	}
	return nil
}
