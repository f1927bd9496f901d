//go:build !nogui

package gui

import (
	"darkarchiver/internal/controller"
	"darkarchiver/internal/preview"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// previewPanel shows the first selected file.
type previewPanel struct {
	ctrl *controller.Controller

	image     *canvas.Image
	message   *widget.Label
	info      *widget.Label
	closeBtn  *widget.Button
	container *fyne.Container

	last preview.Result
}

func newPreviewPanel(ctrl *controller.Controller) *previewPanel {
	w, h := ctrl.PreviewBounds()
	p := &previewPanel{ctrl: ctrl}

	p.image = canvas.NewImageFromImage(nil)
	p.image.FillMode = canvas.ImageFillContain
	p.image.SetMinSize(fyne.NewSize(float32(w), float32(h)))

	p.message = widget.NewLabel(preview.NoSelection)
	p.message.Alignment = fyne.TextAlignCenter
	p.message.Wrapping = fyne.TextWrapWord

	p.info = widget.NewLabel("")
	p.info.Wrapping = fyne.TextWrapWord

	p.closeBtn = widget.NewButtonWithIcon("", theme.CancelIcon(), ctrl.TogglePreview)
	p.closeBtn.Importance = widget.LowImportance

	header := container.NewHBox(
		widget.NewLabelWithStyle("Preview", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		layout.NewSpacer(),
		p.closeBtn,
	)

	p.container = container.NewVBox(
		header,
		widget.NewSeparator(),
		container.NewStack(p.image, p.message),
		p.info,
	)
	p.refresh()
	return p
}

// refresh re-renders from the current selection and applies visibility.
func (p *previewPanel) refresh() {
	if !p.ctrl.PreviewVisible() {
		p.container.Hide()
		return
	}
	p.container.Show()

	res := p.ctrl.Preview()
	p.last = res

	if res.Kind == preview.Thumbnail {
		p.image.Image = res.Image
		p.image.Show()
		p.message.SetText("")
		p.message.Hide()
	} else {
		p.image.Image = nil
		p.image.Hide()
		p.message.SetText(res.Message)
		p.message.Show()
	}
	p.image.Refresh()
	p.info.SetText(res.InfoText())
}
