package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// recommendedSize is marked in the brush menu.
const recommendedSize = 32

func sizeLabel(size int) string {
	if size == recommendedSize {
		return fmt.Sprintf("%dpx(Recommended)", size)
	}
	return fmt.Sprintf("%dpx", size)
}

func shortcut(key fyne.KeyName) fyne.Shortcut {
	return &desktop.CustomShortcut{KeyName: key, Modifier: fyne.KeyModifierShortcutDefault}
}

func menuItem(label string, sc fyne.Shortcut, action func()) *fyne.MenuItem {
	item := fyne.NewMenuItem(label, action)
	item.Shortcut = sc
	return item
}

func (a *App) newMainMenu() *fyne.MainMenu {
	exit := fyne.NewMenuItem("Exit", a.fyneApp.Quit)
	exit.IsQuit = true

	file := fyne.NewMenu("File",
		menuItem("Save", shortcut(fyne.KeyS), a.Save),
		menuItem("Export PDF", nil, a.ExportPDF),
		// the driver reports Ctrl+X as the standard cut shortcut
		menuItem("Clear", &fyne.ShortcutCut{}, a.Clear),
		fyne.NewMenuItemSeparator(),
		exit,
	)
	tools := fyne.NewMenu("Tools",
		menuItem("Drawer", shortcut(fyne.KeyD), a.UseDrawer),
		menuItem("Eraser", shortcut(fyne.KeyE), a.UseEraser),
	)

	sizes := make([]*fyne.MenuItem, 0, len(a.cfg.Brush.Sizes))
	for _, s := range a.cfg.Brush.Sizes {
		size := s
		sizes = append(sizes, fyne.NewMenuItem(sizeLabel(size), func() { a.SetBrushSize(size) }))
	}
	brush := fyne.NewMenu("BrushSize", sizes...)

	return fyne.NewMainMenu(file, tools, brush)
}

// newToolbar mirrors the menus for mouse-only use.
func (a *App) newToolbar() fyne.CanvasObject {
	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentCreateIcon(), a.UseDrawer),
		widget.NewToolbarAction(theme.ContentRemoveIcon(), a.UseEraser),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DeleteIcon(), a.Clear),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), a.Save),
	)

	options := make([]string, 0, len(a.cfg.Brush.Sizes))
	bySize := make(map[string]int, len(a.cfg.Brush.Sizes))
	selected := ""
	for _, s := range a.cfg.Brush.Sizes {
		l := sizeLabel(s)
		options = append(options, l)
		bySize[l] = s
		if s == a.cfg.Brush.DefaultSize {
			selected = l
		}
	}
	a.sizeSelect = widget.NewSelect(options, func(l string) {
		if s, ok := bySize[l]; ok {
			a.SetBrushSize(s)
		}
	})
	if selected != "" {
		a.sizeSelect.SetSelected(selected)
	}

	return container.NewHBox(
		widget.NewLabel("Tool:"),
		tb,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		a.sizeSelect,
		layout.NewSpacer(),
	)
}
