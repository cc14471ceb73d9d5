package state

import (
	"image/color"
	"time"
)

var (
	// InkColor is the drawer brush color.
	InkColor = color.RGBA{A: 255}
	// PaperColor is the blank surface and the eraser brush color.
	PaperColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// Brush holds the paint state applied to new segments.
type Brush struct {
	Color color.RGBA
	Size  int
}

// Stroke is the record of one press-drag-release gesture. Points are the
// clamped positions actually drawn.
type Stroke struct {
	ID     string
	Seq    uint64
	Points []Point
	Color  color.RGBA
	Width  int
	Time   time.Time
}
