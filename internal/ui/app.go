package ui

import (
	"context"
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"SmartDesk/internal/config"
	"SmartDesk/internal/export"
	"SmartDesk/internal/logging"
)

// App is the Smart Desk window: drawing surface on the left, the
// probability column on the right.
type App struct {
	cfg     *config.Config
	fyneApp fyne.App
	window  fyne.Window
	ctrl    *Controller

	board      *CanvasWidget
	panel      *ProbabilityPanel
	status     *widget.Label
	sizeSelect *widget.Select
}

// NewApp builds the window on a. Nothing is shown until ShowAndRun.
func NewApp(a fyne.App, cfg *config.Config, ctrl *Controller) *App {
	w := &App{
		cfg:     cfg,
		fyneApp: a,
		window:  a.NewWindow(cfg.Window.Title),
		ctrl:    ctrl,
	}

	w.board = NewCanvasWidget(ctrl.Canvas)
	w.board.OnStrokeEnd = w.strokeEnded
	w.panel = NewProbabilityPanel(ctrl.Animator.Labels())
	w.status = widget.NewLabel("Draw a digit")
	ctrl.OnError = w.showError

	toolbar := w.newToolbar()
	body := container.NewHBox(
		container.NewPadded(w.board),
		container.NewPadded(w.panel.Object()),
	)
	w.window.SetContent(container.NewBorder(toolbar, w.status, nil, nil, body))
	w.window.SetMainMenu(w.newMainMenu())
	w.window.Canvas().SetOnTypedKey(func(k *fyne.KeyEvent) {
		if k.Name == fyne.KeyEscape {
			w.fyneApp.Quit()
		}
	})
	w.window.Resize(fyne.NewSize(cfg.Window.Width, cfg.Window.Height))
	w.window.SetFixedSize(true)
	return w
}

// ShowAndRun blocks until the window is closed.
func (a *App) ShowAndRun() {
	stop := make(chan struct{})
	go a.animate(stop)
	a.window.ShowAndRun()
	close(stop)
}

func (a *App) animate(stop <-chan struct{}) {
	ticker := time.NewTicker(a.cfg.Animation.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			fyne.Do(a.tick)
		}
	}
}

func (a *App) tick() {
	if a.ctrl.Tick() {
		a.refreshPanel()
	}
}

func (a *App) refreshPanel() {
	a.panel.Update(a.ctrl.Animator.Labels(), a.ctrl.Animator.Highlight())
}

func (a *App) strokeEnded() {
	if !a.ctrl.StrokeEnded(context.Background()) {
		return
	}
	a.refreshPanel()
	if last := a.ctrl.Last(); last.Empty {
		a.status.SetText("Canvas is empty")
	} else {
		a.status.SetText(fmt.Sprintf("Predicted %d in %s", last.Digit, last.Elapsed.Round(time.Millisecond)))
	}
}

func (a *App) showError(err error) {
	a.status.SetText("Prediction failed")
	dialog.ShowError(err, a.window)
}

func (a *App) Clear() {
	a.ctrl.Clear()
	a.board.Redraw()
	a.refreshPanel()
	a.status.SetText("Draw a digit")
}

func (a *App) UseDrawer() {
	a.ctrl.UseDrawer()
	a.status.SetText("Drawer")
}

func (a *App) UseEraser() {
	a.ctrl.UseEraser()
	a.status.SetText("Eraser")
}

func (a *App) SetBrushSize(size int) {
	if err := a.ctrl.SetBrushSize(size); err != nil {
		logging.Logger.Warn("brush size rejected", zap.Int("size", size), zap.Error(err))
		return
	}
	if a.sizeSelect != nil {
		if l := sizeLabel(size); a.sizeSelect.Selected != l {
			a.sizeSelect.SetSelected(l)
		}
	}
}

// Save asks for a PNG or JPEG destination.
func (a *App) Save() {
	a.saveDialog("digit.png", []string{".png", ".jpg", ".jpeg"})
}

func (a *App) ExportPDF() {
	a.saveDialog("digit.pdf", []string{".pdf"})
}

func (a *App) saveDialog(name string, exts []string) {
	d := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if wc == nil {
			return
		}
		if err := a.writeTo(wc); err != nil {
			logging.Logger.Error("save failed", zap.String("uri", wc.URI().String()), zap.Error(err))
			dialog.ShowError(err, a.window)
			return
		}
		a.status.SetText("Saved " + wc.URI().Name())
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter(exts))
	d.SetFileName(name)
	d.Show()
}

// writeTo encodes the surface in the format named by the URI's extension
// and closes wc.
func (a *App) writeTo(wc fyne.URIWriteCloser) error {
	defer wc.Close()

	f, err := export.FormatFromExt(wc.URI().Extension())
	if err != nil {
		return err
	}
	img := a.ctrl.Canvas.Snapshot()
	if f == export.FormatPDF {
		var caption *export.Caption
		if last := a.ctrl.Last(); !last.Empty && len(last.Probabilities) > last.Digit {
			caption = &export.Caption{Digit: last.Digit, Probability: last.Probabilities[last.Digit]}
		}
		return export.WritePDF(wc, img, caption)
	}
	return export.WriteImage(wc, img, f, a.cfg.Export.JPEGQuality)
}
