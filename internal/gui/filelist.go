//go:build !nogui

package gui

import (
	"darkarchiver/internal/controller"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// fileList is the sortable list: a header row of sort buttons over a
// widget.List whose rows carry a selection check.
type fileList struct {
	ctrl *controller.Controller

	rows      []controller.Row
	list      *widget.List
	allCheck  *widget.Check
	headers   map[controller.Column]*widget.Button
	container fyne.CanvasObject
}

func newFileList(ctrl *controller.Controller) *fileList {
	fl := &fileList{
		ctrl:    ctrl,
		headers: make(map[controller.Column]*widget.Button),
	}

	headerButtons := make([]fyne.CanvasObject, 0, len(controller.Columns))
	for _, col := range controller.Columns {
		col := col
		b := widget.NewButton(col.String(), func() { ctrl.SortBy(col) })
		b.Importance = widget.LowImportance
		b.Alignment = widget.ButtonAlignLeading
		fl.headers[col] = b
		headerButtons = append(headerButtons, b)
	}

	fl.allCheck = widget.NewCheck("", nil)
	fl.allCheck.OnChanged = fl.onAllChecked
	header := container.NewBorder(nil, nil, fl.allCheck, nil,
		container.NewGridWithColumns(len(headerButtons), headerButtons...))

	fl.list = widget.NewList(
		func() int {
			return len(fl.rows)
		},
		func() fyne.CanvasObject {
			return container.NewBorder(nil, nil, widget.NewCheck("", nil), nil,
				container.NewGridWithColumns(4,
					widget.NewLabel("Template name.ext"),
					widget.NewLabel("0.0 B"),
					widget.NewLabel(".ext"),
					widget.NewLabel("2006-01-02 15:04"),
				))
		},
		fl.updateItem,
	)
	fl.list.OnSelected = func(id widget.ListItemID) {
		if id >= 0 && id < len(fl.rows) {
			ctrl.Select(fl.rows[id].ID)
		}
		// rows show selection through their checks
		fl.list.Unselect(id)
	}

	fl.container = container.NewBorder(header, nil, nil, nil, fl.list)
	fl.refresh()
	return fl
}

func (fl *fileList) updateItem(id widget.ListItemID, obj fyne.CanvasObject) {
	if id < 0 || id >= len(fl.rows) {
		return
	}
	row := fl.rows[id]

	border := obj.(*fyne.Container)
	// Border keeps the center object first
	grid := border.Objects[0].(*fyne.Container)
	check := border.Objects[1].(*widget.Check)

	check.OnChanged = nil
	check.SetChecked(fl.ctrl.IsSelected(row.ID))
	check.OnChanged = func(bool) { fl.ctrl.Toggle(row.ID) }

	grid.Objects[0].(*widget.Label).SetText(row.Name)
	grid.Objects[1].(*widget.Label).SetText(row.Size)
	grid.Objects[2].(*widget.Label).SetText(row.Type)
	grid.Objects[3].(*widget.Label).SetText(row.Modified)
}

func (fl *fileList) onAllChecked(checked bool) {
	if checked {
		fl.ctrl.SelectAll()
	} else {
		fl.ctrl.ClearSelection()
	}
}

// refresh reloads the rows and header state from the controller.
func (fl *fileList) refresh() {
	fl.rows = fl.ctrl.Rows()

	col, desc := fl.ctrl.Sort()
	for c, b := range fl.headers {
		icon := fyne.Resource(nil)
		if c == col {
			icon = theme.MenuDropDownIcon()
			if desc {
				icon = theme.MenuDropUpIcon()
			}
		}
		b.SetIcon(icon)
	}

	all := len(fl.rows) > 0 && len(fl.ctrl.Selection()) == len(fl.rows)
	fl.allCheck.OnChanged = nil
	fl.allCheck.SetChecked(all)
	fl.allCheck.OnChanged = fl.onAllChecked

	fl.list.Refresh()
}
