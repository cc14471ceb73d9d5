package ui

import (
	"context"
	"image/color"
	"time"

	"go.uber.org/zap"

	"SmartDesk/internal/classifier"
	"SmartDesk/internal/display"
	"SmartDesk/internal/logging"
	localnet "SmartDesk/internal/net"
	"SmartDesk/internal/predict"
	"SmartDesk/internal/state"
)

// Broadcaster receives every prediction, e.g. the websocket feed hub.
type Broadcaster interface {
	Broadcast(ev localnet.Event)
}

// Controller holds the state behind the window: canvas, display animation
// and the last prediction. All methods run on the UI goroutine.
type Controller struct {
	Canvas   *state.Canvas
	Animator *display.Animator

	predictor *predict.Predictor
	feed      Broadcaster
	last      predict.Result

	// OnError is told about classifier failures. The canvas is left as it
	// was and the display keeps its previous values.
	OnError func(error)
}

func NewController(c *state.Canvas, p *predict.Predictor, feed Broadcaster) *Controller {
	return &Controller{
		Canvas:    c,
		Animator:  display.NewAnimator(classifier.Classes),
		predictor: p,
		feed:      feed,
	}
}

// StrokeEnded finishes the stroke in progress and classifies the surface.
// It returns false when there was no stroke to finish.
func (c *Controller) StrokeEnded(ctx context.Context) bool {
	stroke, ok := c.Canvas.EndStroke()
	if !ok {
		return false
	}
	fields := []zap.Field{
		zap.String("stroke", stroke.ID),
		zap.Uint64("seq", stroke.Seq),
		zap.Int("points", len(stroke.Points)),
		zap.Int("width", stroke.Width),
	}
	if box, ok := state.Bounds(stroke.Points); ok {
		fields = append(fields, zap.Stringer("bounds", box))
	}
	logging.Logger.Debug("stroke finished", fields...)

	res, err := c.predictor.Predict(ctx, c.Canvas.Snapshot())
	if err != nil {
		logging.Logger.Error("prediction failed", zap.String("stroke", stroke.ID), zap.Error(err))
		if c.OnError != nil {
			c.OnError(err)
		}
		return true
	}

	c.last = res
	if res.Empty {
		c.Animator.Reset()
	} else {
		c.Animator.Start(res.Scaled, res.Digit)
	}
	c.publish(res)
	return true
}

// Clear wipes the surface and the display.
func (c *Controller) Clear() {
	c.Canvas.Clear()
	c.Animator.Clear()
	c.last = predict.Result{Empty: true}
	c.publish(c.last)
}

// Tick advances the display animation.
func (c *Controller) Tick() bool {
	return c.Animator.Tick()
}

func (c *Controller) UseDrawer() {
	c.Canvas.SetColor(state.InkColor)
}

func (c *Controller) UseEraser() {
	c.Canvas.SetColor(state.PaperColor)
}

func (c *Controller) SetBrushSize(size int) error {
	return c.Canvas.SetSize(size)
}

// BrushColor is the color new strokes are drawn in.
func (c *Controller) BrushColor() color.RGBA {
	return c.Canvas.Brush().Color
}

// Last returns the most recent prediction.
func (c *Controller) Last() predict.Result {
	return c.last
}

func (c *Controller) publish(res predict.Result) {
	if c.feed == nil {
		return
	}
	c.feed.Broadcast(localnet.Event{
		Session:       c.Canvas.Session().ID(),
		Seq:           c.Canvas.Session().NextSeq(),
		Empty:         res.Empty,
		Digit:         res.Digit,
		Probabilities: res.Probabilities,
		Time:          time.Now(),
	})
}
