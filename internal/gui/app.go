// Package gui is the Fyne front end. It renders the session state and
// forwards every command to the session controller; no match or file logic
// lives here.
package gui

import (
	"image/color"

	"matchman/internal/config"
	"matchman/internal/log"
	"matchman/internal/session"
	"matchman/internal/watch"
	"matchman/pkg/types"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// App is the GUI application
type App struct {
	fyneApp    fyne.App
	mainWindow fyne.Window
	cfg        *config.Config
	ctrl       *session.Controller
	watcher    *watch.Watcher

	// Widgets that re-render when the session changes
	fileSelect   *widget.Select
	filterEntry  *widget.Entry
	triggerEntry *widget.Entry
	replaceEntry *widget.Entry
	commitButton *widget.Button
	cancelButton *widget.Button
	matchList    *widget.List
	statusLabel  *widget.Label

	// Snapshot of the filtered view backing the list widget
	view []types.Entry

	// Index of the selected row in the list, -1 for none
	selectedIndex int

	// Theme settings
	accentColor color.NRGBA
	bgColor     color.NRGBA
}

// NewApp creates a new GUI application
func NewApp(cfg *config.Config, ctrl *session.Controller) *App {
	fyneApp := app.NewWithID("io.github.matchman")

	a := &App{
		fyneApp:       fyneApp,
		cfg:           cfg,
		ctrl:          ctrl,
		selectedIndex: -1,
		accentColor:   accentFor(cfg.UI.Theme),
		bgColor:       color.NRGBA{R: 16, G: 16, B: 16, A: 255},
	}

	a.mainWindow = a.fyneApp.NewWindow("Matchman")

	if cfg.UI.WatchEnabled {
		watcher, err := watch.New(ctrl.Dir(), a.onDirChanged)
		if err != nil {
			log.Errorf("failed to create directory watcher: %v", err)
		} else {
			a.watcher = watcher
		}
	}

	return a
}

func accentFor(name string) color.NRGBA {
	switch name {
	case "dark":
		return color.NRGBA{R: 90, G: 120, B: 255, A: 255}
	case "light":
		return color.NRGBA{R: 120, G: 200, B: 160, A: 255}
	default:
		return color.NRGBA{R: 255, G: 165, B: 0, A: 255}
	}
}

// GetMainWindow returns the main window instance
func (a *App) GetMainWindow() fyne.Window {
	return a.mainWindow
}

// Run starts the GUI application
func (a *App) Run() {
	a.setupMainWindow()

	if a.watcher != nil {
		if err := a.watcher.Start(); err != nil {
			log.Warnf("match directory watcher not started: %v", err)
		}
		defer a.watcher.Close()
	}

	a.mainWindow.Show()
	a.fyneApp.Run()
}

// onDirChanged runs on the watcher goroutine when the match directory
// settles after a change.
func (a *App) onDirChanged() {
	log.Debug("match directory changed on disk, refreshing")
	a.ctrl.Refresh()
	a.refreshAll()
}

// setupMainWindow sets up the main window content
func (a *App) setupMainWindow() {
	background := canvas.NewRectangle(a.bgColor)
	background.Resize(fyne.NewSize(800, 600))
	a.mainWindow.Resize(fyne.NewSize(800, 600))

	title := canvas.NewText("Matchman", a.accentColor)
	title.TextStyle.Bold = true
	title.TextSize = 22
	title.Alignment = fyne.TextAlignCenter

	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.ViewRefreshIcon(), func() {
			a.ctrl.Refresh()
			a.refreshAll()
		}),
		widget.NewToolbarAction(theme.FolderOpenIcon(), func() {
			if err := a.ctrl.OpenConfigFolder(); err != nil {
				a.ShowError("Could not open the match folder", err)
			}
		}),
		widget.NewToolbarSpacer(),
		widget.NewToolbarAction(theme.HelpIcon(), func() {
			dialog.ShowInformation("About Matchman",
				"Matchman manages the text-expansion matches in your\n"+
					"espanso match files: browse, filter, add, edit and\n"+
					"delete trigger/replacement pairs.",
				a.mainWindow)
		}),
	)

	content := container.NewBorder(
		container.NewVBox(
			title,
			toolbar,
			canvas.NewLine(a.accentColor),
		),
		a.createStatusBar(),
		nil,
		nil,
		a.createEditorView(),
	)

	a.mainWindow.SetContent(content)
	a.refreshAll()
}

// createStatusBar creates the bar showing the active file's load state
func (a *App) createStatusBar() fyne.CanvasObject {
	a.statusLabel = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{})

	return container.NewHBox(
		a.statusLabel,
		layout.NewSpacer(),
	)
}

// refreshAll re-renders every session-dependent widget
func (a *App) refreshAll() {
	if a.fileSelect == nil {
		return // window content not built yet
	}
	a.fileSelect.Options = a.ctrl.Files()
	if selected := a.ctrl.Selected(); selected == "" {
		a.fileSelect.ClearSelected()
	} else {
		a.fileSelect.SetSelected(selected)
	}
	a.fileSelect.Refresh()
	a.filterEntry.SetText(a.ctrl.Filter())
	d := a.ctrl.Draft()
	a.triggerEntry.SetText(d.Trigger)
	a.replaceEntry.SetText(d.Replace)
	a.refreshMatches()
	a.refreshDraftControls()
}

// refreshMatches re-snapshots the filtered view and updates the list
func (a *App) refreshMatches() {
	a.view = a.ctrl.FilteredMatches()
	a.selectedIndex = -1
	if a.matchList != nil {
		a.matchList.UnselectAll()
		a.matchList.Refresh()
	}
	a.refreshStatus()
}

func (a *App) refreshStatus() {
	line := a.ctrl.StatusLine()
	if a.ctrl.Status() == types.LoadParseFailed {
		line += " — edits are blocked until you confirm overwriting it"
	}
	a.statusLabel.SetText(line)
}

// refreshDraftControls flips the commit button between add and update mode
func (a *App) refreshDraftControls() {
	if a.ctrl.Draft().Editing {
		a.commitButton.SetText("Update Match")
		a.cancelButton.Show()
	} else {
		a.commitButton.SetText("Add Match")
		a.cancelButton.Hide()
	}
}

// ShowError displays an error dialog
func (a *App) ShowError(title string, err error) {
	if err == nil {
		return
	}
	log.Errorf("%s: %v", title, err)
	dialog.ShowError(err, a.mainWindow)
}

// ShowInfo displays an information dialog
func (a *App) ShowInfo(message string) {
	dialog.ShowInformation("Information", message, a.mainWindow)
}
