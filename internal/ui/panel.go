package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
)

var (
	labelColor     = color.NRGBA{A: 255}
	highlightColor = color.NRGBA{R: 47, G: 145, B: 75, A: 255}
)

// ProbabilityPanel is the column of per-digit percentages.
type ProbabilityPanel struct {
	texts     []*canvas.Text
	container *fyne.Container
}

func NewProbabilityPanel(labels []string) *ProbabilityPanel {
	p := &ProbabilityPanel{}
	objects := make([]fyne.CanvasObject, 0, len(labels))
	for _, l := range labels {
		t := canvas.NewText(l, labelColor)
		t.TextSize = 20
		p.texts = append(p.texts, t)
		objects = append(objects, t)
	}
	p.container = container.NewGridWithRows(len(labels), objects...)
	return p
}

func (p *ProbabilityPanel) Object() fyne.CanvasObject {
	return p.container
}

// Update sets every label and marks the highlighted class, if any.
func (p *ProbabilityPanel) Update(labels []string, highlight int) {
	for i, t := range p.texts {
		if i < len(labels) {
			t.Text = labels[i]
		}
		t.Color = labelColor
		t.TextStyle = fyne.TextStyle{}
		if i == highlight {
			t.Color = highlightColor
			t.TextStyle = fyne.TextStyle{Bold: true}
		}
		t.Refresh()
	}
}

// Text returns the label currently shown for class i.
func (p *ProbabilityPanel) Text(i int) string {
	return p.texts[i].Text
}
