package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"SmartDesk/internal/state"
)

// CanvasWidget shows the drawing surface and turns mouse input into
// strokes. Widget coordinates are scaled to surface pixels, so the widget
// may be laid out at any size.
type CanvasWidget struct {
	widget.BaseWidget
	surface *state.Canvas
	image   *canvas.Image
	side    float32

	// OnStrokeEnd runs after the primary button is released on a stroke.
	OnStrokeEnd func()
}

var _ fyne.Widget = (*CanvasWidget)(nil)
var _ fyne.Draggable = (*CanvasWidget)(nil)
var _ desktop.Mouseable = (*CanvasWidget)(nil)

func NewCanvasWidget(c *state.Canvas) *CanvasWidget {
	w := &CanvasWidget{
		surface: c,
		side:    float32(c.Side()),
	}
	w.image = canvas.NewImageFromImage(c.Surface())
	w.image.FillMode = canvas.ImageFillStretch
	w.image.ScaleMode = canvas.ImageScalePixels
	w.ExtendBaseWidget(w)
	return w
}

// toSurface maps a widget position to a surface pixel.
func (w *CanvasWidget) toSurface(pos fyne.Position) state.Point {
	size := w.Size()
	if size.Width <= 0 || size.Height <= 0 {
		return state.Point{X: int(pos.X), Y: int(pos.Y)}
	}
	return state.Point{
		X: int(pos.X * w.side / size.Width),
		Y: int(pos.Y * w.side / size.Height),
	}
}

func (w *CanvasWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		w.surface.BeginStroke(w.toSurface(e.Position))
	}
}

func (w *CanvasWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		w.endStroke()
	}
}

func (w *CanvasWidget) Dragged(e *fyne.DragEvent) {
	if w.surface.ExtendStroke(w.toSurface(e.Position)) {
		w.image.Refresh()
	}
}

// DragEnd covers releases the driver reports only as the end of a drag.
func (w *CanvasWidget) DragEnd() {
	w.endStroke()
}

func (w *CanvasWidget) endStroke() {
	if !w.surface.Drawing() {
		return
	}
	if w.OnStrokeEnd != nil {
		w.OnStrokeEnd()
	} else {
		w.surface.EndStroke()
	}
}

// Redraw pushes surface changes made outside mouse handling, e.g. Clear.
func (w *CanvasWidget) Redraw() {
	w.image.Refresh()
}

func (w *CanvasWidget) MinSize() fyne.Size {
	return fyne.NewSize(w.side, w.side)
}

func (w *CanvasWidget) CreateRenderer() fyne.WidgetRenderer {
	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Black
	border.StrokeWidth = 1
	return widget.NewSimpleRenderer(container.NewStack(w.image, border))
}
