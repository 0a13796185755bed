package gui

import (
	"fmt"

	"matchman/internal/errors"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// createEditorView builds the main editor: file selector, filter, the match
// list, and the draft form.
func (a *App) createEditorView() fyne.CanvasObject {
	a.fileSelect = widget.NewSelect(a.ctrl.Files(), func(name string) {
		if name == a.ctrl.Selected() {
			return
		}
		if err := a.ctrl.SelectFile(name); err != nil {
			a.ShowError("Could not select file", err)
			return
		}
		a.triggerEntry.SetText("")
		a.replaceEntry.SetText("")
		a.refreshMatches()
		a.refreshDraftControls()
	})
	a.fileSelect.PlaceHolder = "No match files found"

	a.filterEntry = widget.NewEntry()
	a.filterEntry.SetPlaceHolder("Filter matches...")
	a.filterEntry.OnChanged = func(text string) {
		a.ctrl.SetFilter(text)
		a.refreshMatches()
	}

	a.matchList = widget.NewList(
		func() int {
			return len(a.view)
		},
		func() fyne.CanvasObject {
			trigger := widget.NewLabelWithStyle("trigger", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
			replace := widget.NewLabel("replacement")
			replace.Truncation = fyne.TextTruncateEllipsis
			return container.NewBorder(nil, nil, trigger, nil, replace)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < 0 || id >= len(a.view) {
				return
			}
			row := obj.(*fyne.Container)
			row.Objects[1].(*widget.Label).SetText(a.view[id].Trigger)
			row.Objects[0].(*widget.Label).SetText(a.view[id].Replace)
		},
	)
	a.matchList.OnSelected = func(id widget.ListItemID) {
		a.selectedIndex = int(id)
	}
	a.matchList.OnUnselected = func(id widget.ListItemID) {
		if a.selectedIndex == int(id) {
			a.selectedIndex = -1
		}
	}

	editButton := widget.NewButtonWithIcon("Edit", theme.DocumentCreateIcon(), a.onEdit)
	deleteButton := widget.NewButtonWithIcon("Delete", theme.DeleteIcon(), a.onDelete)

	listPane := container.NewBorder(
		a.filterEntry,
		container.NewHBox(layout.NewSpacer(), editButton, deleteButton),
		nil,
		nil,
		container.NewScroll(a.matchList),
	)

	return container.NewBorder(
		container.NewBorder(nil, nil, widget.NewLabel("Match file:"), nil, a.fileSelect),
		a.createDraftForm(),
		nil,
		nil,
		listPane,
	)
}

// createDraftForm builds the trigger/replacement inputs and commit controls
func (a *App) createDraftForm() fyne.CanvasObject {
	a.triggerEntry = widget.NewEntry()
	a.triggerEntry.SetPlaceHolder("Trigger (e.g. :sig)")

	a.replaceEntry = widget.NewMultiLineEntry()
	a.replaceEntry.SetPlaceHolder("Replacement text")
	a.replaceEntry.SetMinRowsVisible(3)

	a.commitButton = widget.NewButtonWithIcon("Add Match", theme.ContentAddIcon(), a.onCommit)
	a.cancelButton = widget.NewButtonWithIcon("Cancel", theme.CancelIcon(), func() {
		a.ctrl.CancelEdit()
		a.triggerEntry.SetText("")
		a.replaceEntry.SetText("")
		a.refreshDraftControls()
	})
	a.cancelButton.Hide()

	return widget.NewCard("", "", container.NewVBox(
		a.triggerEntry,
		a.replaceEntry,
		container.NewHBox(layout.NewSpacer(), a.cancelButton, a.commitButton),
	))
}

func (a *App) onEdit() {
	if a.selectedIndex < 0 || a.selectedIndex >= len(a.view) {
		a.ShowInfo("Please select a match to edit.")
		return
	}
	if err := a.ctrl.BeginEdit(a.selectedIndex); err != nil {
		a.ShowError("Could not edit match", err)
		return
	}
	d := a.ctrl.Draft()
	a.triggerEntry.SetText(d.Trigger)
	a.replaceEntry.SetText(d.Replace)
	a.refreshDraftControls()
}

func (a *App) onDelete() {
	if a.selectedIndex < 0 || a.selectedIndex >= len(a.view) {
		a.ShowInfo("Please select a match to delete.")
		return
	}
	index := a.selectedIndex
	if !a.cfg.UI.ConfirmDelete {
		a.deleteAt(index)
		return
	}
	dialog.ShowConfirm("Delete Match",
		fmt.Sprintf("Delete the match for %q?", a.view[index].Trigger),
		func(confirmed bool) {
			if confirmed {
				a.deleteAt(index)
			}
		},
		a.mainWindow)
}

func (a *App) deleteAt(index int) {
	if err := a.ctrl.DeleteAt(index); err != nil {
		a.ShowError("Could not delete match", err)
		return
	}
	a.refreshMatches()
	a.refreshDraftControls()
}

func (a *App) onCommit() {
	trigger := a.triggerEntry.Text
	replace := a.replaceEntry.Text

	if !a.ctrl.Draft().Editing && a.ctrl.HasDuplicateTrigger(trigger) {
		a.ShowInfo(fmt.Sprintf("Another match already uses the trigger %q. It will be kept as a duplicate.", trigger))
	}

	err := a.ctrl.CommitDraft(trigger, replace)
	switch {
	case err == nil:
		a.triggerEntry.SetText("")
		a.replaceEntry.SetText("")
		a.refreshMatches()
		a.refreshDraftControls()
	case errors.IsInvalidInput(err):
		a.ShowInfo("Both a trigger and a replacement are required.")
	case errors.IsUnparsedContent(err):
		a.confirmTruncate()
	default:
		a.ShowError("Could not save match", err)
	}
}

// confirmTruncate asks before overwriting a file whose content could not be
// parsed; committing afterwards discards the unreadable content.
func (a *App) confirmTruncate() {
	dialog.ShowConfirm("Overwrite unreadable file?",
		fmt.Sprintf("%s could not be parsed. Saving will REPLACE its current\ncontent with only the matches shown here. Continue?", a.ctrl.Selected()),
		func(confirmed bool) {
			if !confirmed {
				return
			}
			if err := a.ctrl.ConfirmTruncate(); err != nil {
				a.ShowError("Could not overwrite file", err)
				return
			}
			a.onCommit()
		},
		a.mainWindow)
}
