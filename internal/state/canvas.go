package state

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"time"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

var ErrInvalidBrushSize = errors.New("state: invalid brush size")

// kappa places cubic control points so four segments approximate a circle.
const kappa = 0.5522847498

// Canvas is the drawing surface together with its brush and the stroke in
// progress. It is not safe for concurrent use; every call is expected on
// the UI goroutine.
type Canvas struct {
	surface *image.RGBA
	side    int
	brush   Brush
	session *Session

	drawing bool
	last    Point
	current *Stroke

	raster *vector.Rasterizer
	mask   *image.Alpha
}

// NewCanvas returns a blank side×side surface with the drawer brush.
func NewCanvas(side, brushSize int, session *Session) (*Canvas, error) {
	if side <= 0 {
		return nil, fmt.Errorf("state: invalid canvas side %d", side)
	}
	if session == nil {
		session = NewSession()
	}
	c := &Canvas{
		surface: image.NewRGBA(image.Rect(0, 0, side, side)),
		side:    side,
		session: session,
		raster:  vector.NewRasterizer(1, 1),
	}
	if err := c.SetBrush(InkColor, brushSize); err != nil {
		return nil, err
	}
	c.Clear()
	return c, nil
}

func (c *Canvas) Side() int {
	return c.side
}

func (c *Canvas) Brush() Brush {
	return c.brush
}

func (c *Canvas) Session() *Session {
	return c.session
}

// Drawing reports whether a stroke is in progress.
func (c *Canvas) Drawing() bool {
	return c.drawing
}

// SetBrush changes color and size for segments drawn from now on.
func (c *Canvas) SetBrush(col color.RGBA, size int) error {
	if size <= 0 || size >= c.side {
		return fmt.Errorf("%w: %d", ErrInvalidBrushSize, size)
	}
	c.brush = Brush{Color: col, Size: size}
	return nil
}

func (c *Canvas) SetColor(col color.RGBA) {
	c.brush.Color = col
}

func (c *Canvas) SetSize(size int) error {
	return c.SetBrush(c.brush.Color, size)
}

// Region is the area a brush center may occupy: the surface inset by half
// the brush size so the brush never paints past the visible border.
func (c *Canvas) Region() DrawingArea {
	full := DrawingArea{Width: c.side, Height: c.side}
	return full.Inset(c.brush.Size / 2)
}

// BeginStroke starts a stroke at p. Presses outside Region are ignored.
func (c *Canvas) BeginStroke(p Point) bool {
	if !c.Region().Contains(p) {
		return false
	}
	c.drawing = true
	c.last = p
	c.current = &Stroke{
		ID:     uuid.NewString(),
		Seq:    c.session.NextSeq(),
		Points: []Point{p},
		Color:  c.brush.Color,
		Width:  c.brush.Size,
		Time:   time.Now(),
	}
	return true
}

// ExtendStroke draws from the last point to p clamped into Region. It
// returns true when the surface changed and must be redrawn.
func (c *Canvas) ExtendStroke(p Point) bool {
	if !c.drawing {
		return false
	}
	to := c.Region().Clamp(p)
	c.drawSegment(c.last, to)
	c.last = to
	c.current.Points = append(c.current.Points, to)
	return true
}

// EndStroke finishes the stroke in progress and returns its record.
func (c *Canvas) EndStroke() (Stroke, bool) {
	if !c.drawing {
		return Stroke{}, false
	}
	c.drawing = false
	s := *c.current
	c.current = nil
	return s, true
}

// Clear paints the whole surface white and drops any stroke in progress.
func (c *Canvas) Clear() {
	draw.Draw(c.surface, c.surface.Bounds(), image.NewUniform(PaperColor), image.Point{}, draw.Src)
	c.drawing = false
	c.current = nil
}

// Surface returns the live surface. Callers must treat it as read-only.
func (c *Canvas) Surface() *image.RGBA {
	return c.surface
}

// Snapshot returns a copy of the surface.
func (c *Canvas) Snapshot() *image.RGBA {
	out := image.NewRGBA(c.surface.Bounds())
	copy(out.Pix, c.surface.Pix)
	return out
}

// drawSegment paints a round-capped line of the brush width. Coverage is
// thresholded so the surface only ever holds the brush color or what was
// there before; the eraser then restores pure white.
func (c *Canvas) drawSegment(a, b Point) {
	r := float64(c.brush.Size) / 2
	pad := int(math.Ceil(r)) + 1
	box := image.Rect(min(a.X, b.X)-pad, min(a.Y, b.Y)-pad, max(a.X, b.X)+pad+1, max(a.Y, b.Y)+pad+1)
	box = box.Intersect(c.surface.Bounds())
	if box.Empty() {
		return
	}

	w, h := box.Dx(), box.Dy()
	c.raster.Reset(w, h)
	c.raster.DrawOp = draw.Src
	ax, ay := float64(a.X-box.Min.X)+0.5, float64(a.Y-box.Min.Y)+0.5
	bx, by := float64(b.X-box.Min.X)+0.5, float64(b.Y-box.Min.Y)+0.5
	addCapsule(c.raster, ax, ay, bx, by, r)

	// The rasterizer copies its coverage buffer row-packed, so the mask
	// stride must equal w.
	if c.mask == nil || c.mask.Rect.Dx() != w || c.mask.Rect.Dy() != h {
		c.mask = image.NewAlpha(image.Rect(0, 0, w, h))
	}
	m := c.mask
	c.raster.Draw(m, m.Bounds(), image.Opaque, image.Point{})

	col := c.brush.Color
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if m.AlphaAt(x, y).A >= 0x80 {
				c.surface.SetRGBA(box.Min.X+x, box.Min.Y+y, col)
			}
		}
	}
}

// addCapsule adds one closed contour: the rectangle around a→b joined to a
// half circle at each end.
func addCapsule(z *vector.Rasterizer, ax, ay, bx, by, r float64) {
	dx, dy := bx-ax, by-ay
	l := math.Hypot(dx, dy)
	ux, uy := r, 0.0
	if l > 0 {
		ux, uy = dx/l*r, dy/l*r
	}
	nx, ny := -uy, ux

	z.MoveTo(float32(ax-nx), float32(ay-ny))
	z.LineTo(float32(bx-nx), float32(by-ny))
	quarter(z, bx, by, -nx, -ny, ux, uy)
	quarter(z, bx, by, ux, uy, nx, ny)
	z.LineTo(float32(ax+nx), float32(ay+ny))
	quarter(z, ax, ay, nx, ny, -ux, -uy)
	quarter(z, ax, ay, -ux, -uy, -nx, -ny)
	z.ClosePath()
}

// quarter draws the arc from c+v0 to c+v1, where v0 and v1 are
// perpendicular radius vectors.
func quarter(z *vector.Rasterizer, cx, cy, v0x, v0y, v1x, v1y float64) {
	z.CubeTo(
		float32(cx+v0x+kappa*v1x), float32(cy+v0y+kappa*v1y),
		float32(cx+v1x+kappa*v0x), float32(cy+v1y+kappa*v0y),
		float32(cx+v1x), float32(cy+v1y),
	)
}
