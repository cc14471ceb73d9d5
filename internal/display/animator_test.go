package display

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zeroLabels(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%d: 0.00%%", i)
	}
	return out
}

func scaled(raw []float64) []float64 {
	out := make([]float64, len(raw))
	for i, v := range raw {
		out[i] = v / Steps
	}
	return out
}

func TestNewAnimatorShowsZero(t *testing.T) {
	a := NewAnimator(10)
	assert.Equal(t, zeroLabels(10), a.Labels())
	assert.False(t, a.Animating())
	assert.Equal(t, NoHighlight, a.Highlight())
	assert.False(t, a.Tick())
}

func TestAnimationEndsOnRawProbability(t *testing.T) {
	raw := []float64{0.01, 0.5, 0.25, 0.1, 0.06, 0.03, 0.02, 0.01, 0.01, 0.01}
	a := NewAnimator(len(raw))
	a.Start(scaled(raw), 1)
	assert.True(t, a.Animating())

	for phase := 1; phase <= Steps; phase++ {
		require.True(t, a.Tick())
		if phase < Steps {
			assert.Equal(t, phase, a.Phase())
			assert.Equal(t, fmt.Sprintf("1: %.2f%%", raw[1]/Steps*float64(phase)*100), a.Labels()[1])
		}
	}

	assert.False(t, a.Animating())
	assert.Equal(t, 0, a.Phase())
	for i, p := range raw {
		assert.Equal(t, fmt.Sprintf("%d: %.2f%%", i, p*100), a.Labels()[i])
		assert.InDelta(t, p, a.Probabilities()[i], 1e-12)
	}
	assert.Equal(t, "1: 50.00%", a.Labels()[1])
	assert.Equal(t, 1, a.Highlight())

	assert.False(t, a.Tick(), "idle animator ignores ticks")
}

func TestHalfwayLabels(t *testing.T) {
	a := NewAnimator(3)
	a.Start(scaled([]float64{0.2, 0.8, 0}), 1)
	for range 5 {
		a.Tick()
	}
	assert.Equal(t, []string{"0: 10.00%", "1: 40.00%", "2: 0.00%"}, a.Labels())
}

func TestRestartDoesNotDoubleScale(t *testing.T) {
	raw := []float64{0.4, 0.6}
	a := NewAnimator(2)

	a.Start(scaled(raw), 1)
	for range 4 {
		a.Tick()
	}
	a.Start(scaled(raw), 1)
	for range Steps {
		a.Tick()
	}
	assert.Equal(t, []string{"0: 40.00%", "1: 60.00%"}, a.Labels())
}

func TestClearDuringAnimation(t *testing.T) {
	a := NewAnimator(10)
	a.Start(scaled([]float64{0, 0, 0, 1, 0, 0, 0, 0, 0, 0}), 3)
	a.Tick()
	a.Tick()

	a.Clear()
	assert.False(t, a.Animating())
	assert.Equal(t, zeroLabels(10), a.Labels())
	assert.Equal(t, NoHighlight, a.Highlight())
	assert.False(t, a.Tick())
	assert.Equal(t, zeroLabels(10), a.Labels())
}

func TestResetAfterFinishedAnimation(t *testing.T) {
	a := NewAnimator(10)
	a.Start(scaled([]float64{0, 0, 0, 0, 0, 0, 0, 0, 0, 1}), 9)
	for range Steps {
		a.Tick()
	}
	require.Equal(t, "9: 100.00%", a.Labels()[9])

	a.Reset()
	assert.Equal(t, zeroLabels(10), a.Labels())
	assert.Equal(t, make([]float64, 10), a.Probabilities())
}
