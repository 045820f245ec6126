package domain

// Point is a 2D position. Units depend on context: viewport pixels
// for raw capture, unscaled document units after normalisation.
type Point struct {
	// X is the horizontal coordinate.
	X float64 `json:"x"`

	// Y is the vertical coordinate.
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	// Left is the X coordinate of the left edge.
	Left float64 `json:"x"`

	// Top is the Y coordinate of the top edge.
	Top float64 `json:"y"`

	// Width is the horizontal extent.
	Width float64 `json:"width"`

	// Height is the vertical extent.
	Height float64 `json:"height"`
}

// Origin returns the top-left corner of the rectangle.
func (r Rect) Origin() Point {
	return Point{X: r.Left, Y: r.Top}
}

// IsZero reports whether the rectangle is the zero value.
func (r Rect) IsZero() bool {
	return r == Rect{}
}

// Normalize converts a viewport-space rectangle into document-relative,
// unscaled units: (raw - origin) / scale. The stored result renders
// correctly at any future zoom level via Denormalize.
//
// If origin is nil the page container has not been measured yet; the
// rectangle is divided by scale alone so the anchor degrades to an
// approximate placement instead of being lost.
func (r Rect) Normalize(origin *Point, scale float64) Rect {
	if scale <= 0 {
		scale = 1
	}
	var ox, oy float64
	if origin != nil {
		ox = origin.X
		oy = origin.Y
	}
	return Rect{
		Left:   (r.Left - ox) / scale,
		Top:    (r.Top - oy) / scale,
		Width:  r.Width / scale,
		Height: r.Height / scale,
	}
}

// Denormalize is the inverse of Normalize at the scale current at render
// time: raw = relative*scale + origin. Calling it with the scale in
// effect when the anchor was captured reproduces the original capture
// rectangle.
func (r Rect) Denormalize(origin *Point, scale float64) Rect {
	if scale <= 0 {
		scale = 1
	}
	var ox, oy float64
	if origin != nil {
		ox = origin.X
		oy = origin.Y
	}
	return Rect{
		Left:   r.Left*scale + ox,
		Top:    r.Top*scale + oy,
		Width:  r.Width * scale,
		Height: r.Height * scale,
	}
}

// Scaled returns the rectangle with every component multiplied by factor.
// Display geometry for a stored anchor is Position.Scaled(currentZoom).
func (r Rect) Scaled(factor float64) Rect {
	return Rect{
		Left:   r.Left * factor,
		Top:    r.Top * factor,
		Width:  r.Width * factor,
		Height: r.Height * factor,
	}
}
