// Package display drives the per-class percentage labels shown next to the
// canvas.
package display

import "fmt"

// Steps is the number of ticks an animation lasts.
const Steps = 10

// NoHighlight is returned by Highlight when no class is marked.
const NoHighlight = -1

// Animator counts the labels up from zero to the predicted probabilities.
// Start expects probabilities already divided by Steps; the last tick
// multiplies them back so the final label reads probability×100.
type Animator struct {
	probs     []float64
	phase     int
	animating bool
	highlight int
	labels    []string
}

func NewAnimator(classes int) *Animator {
	a := &Animator{
		probs:  make([]float64, classes),
		labels: make([]string, classes),
	}
	a.Clear()
	return a
}

// Start begins a new animation from phase 0, dropping any one in progress.
func (a *Animator) Start(scaled []float64, highlight int) {
	copy(a.probs, scaled)
	a.phase = 0
	a.animating = true
	a.highlight = highlight
}

// Tick advances one phase. It reports whether the labels changed.
func (a *Animator) Tick() bool {
	if !a.animating {
		return false
	}
	a.phase++
	for i, p := range a.probs {
		a.labels[i] = label(i, p*float64(a.phase)*100)
	}
	if a.phase == Steps {
		a.animating = false
		a.phase = 0
		for i := range a.probs {
			a.probs[i] *= Steps
		}
	}
	return true
}

// Reset handles a prediction on an empty surface: every class goes back to
// zero and nothing is highlighted.
func (a *Animator) Reset() {
	a.Clear()
}

// Clear stops any animation and shows 0.00% for every class.
func (a *Animator) Clear() {
	a.animating = false
	a.phase = 0
	a.highlight = NoHighlight
	for i := range a.probs {
		a.probs[i] = 0
		a.labels[i] = label(i, 0)
	}
}

func (a *Animator) Animating() bool { return a.animating }
func (a *Animator) Phase() int      { return a.phase }
func (a *Animator) Highlight() int  { return a.highlight }

// Labels returns the current text of every class label.
func (a *Animator) Labels() []string {
	out := make([]string, len(a.labels))
	copy(out, a.labels)
	return out
}

// Probabilities returns the stored vector; after a finished animation this
// is the classifier output.
func (a *Animator) Probabilities() []float64 {
	out := make([]float64, len(a.probs))
	copy(out, a.probs)
	return out
}

func label(i int, percent float64) string {
	return fmt.Sprintf("%d: %.2f%%", i, percent)
}
