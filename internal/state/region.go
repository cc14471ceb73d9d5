package state

import "fmt"

// Point is a pixel position on the drawing surface.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// DrawingArea represents a rectangular area on the canvas. Both edges are
// part of the area.
type DrawingArea struct {
	X      int
	Y      int
	Width  int
	Height int
}

// String formats the area as WxH+X+Y.
func (a DrawingArea) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", a.Width, a.Height, a.X, a.Y)
}

// Inset shrinks the area by d on every edge.
func (a DrawingArea) Inset(d int) DrawingArea {
	return DrawingArea{
		X:      a.X + d,
		Y:      a.Y + d,
		Width:  a.Width - 2*d,
		Height: a.Height - 2*d,
	}
}

func (a DrawingArea) Contains(p Point) bool {
	return p.X >= a.X && p.X <= a.X+a.Width &&
		p.Y >= a.Y && p.Y <= a.Y+a.Height
}

// Clamp moves p onto the nearest point of the area.
func (a DrawingArea) Clamp(p Point) Point {
	return Point{
		X: clampInt(p.X, a.X, a.X+a.Width),
		Y: clampInt(p.Y, a.Y, a.Y+a.Height),
	}
}

// Bounds returns the smallest area covering every point.
func Bounds(points []Point) (DrawingArea, bool) {
	if len(points) == 0 {
		return DrawingArea{}, false
	}

	minX, minY := points[0].X, points[0].Y
	maxX, maxY := points[0].X, points[0].Y

	for _, p := range points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	return DrawingArea{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}, true
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
