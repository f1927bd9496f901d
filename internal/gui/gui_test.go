//go:build !nogui

package gui

import (
	"context"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"darkarchiver/internal/config"
	"darkarchiver/internal/controller"
	"darkarchiver/internal/preview"
	"darkarchiver/internal/status"
	"darkarchiver/pkg/testutils"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDialogs struct {
	dest string
}

func (d *stubDialogs) ChooseFiles(done func([]string)) {
	done(nil)
}

func (d *stubDialogs) ChooseFolder(done func(string)) {
	done("")
}

func (d *stubDialogs) ChooseDestination(_ string, done func(string)) {
	done(d.dest)
}

func newTestApp(t *testing.T, files ...string) (*App, *controller.Controller) {
	t.Helper()
	fyneApp := test.NewApp()
	t.Cleanup(fyneApp.Quit)

	cfg := config.NewTestConfig()
	cfg.Status.ResetAfter = time.Hour
	opts, err := controller.OptionsFromConfig(cfg)
	require.NoError(t, err)
	ctrl := controller.New(opts)
	t.Cleanup(ctrl.Close)

	if len(files) > 0 {
		ctrl.AddFiles(files)
	}
	a := newApp(fyneApp, cfg, "", ctrl)
	return a, ctrl
}

func rowNames(fl *fileList) []string {
	out := make([]string, len(fl.rows))
	for i, r := range fl.rows {
		out[i] = r.Name
	}
	return out
}

func TestNewAppBuildsWindow(t *testing.T) {
	a, _ := newTestApp(t)

	w := a.GetMainWindow()
	require.NotNil(t, w)
	assert.Equal(t, "Dark Archiver", w.Title())
	require.NotNil(t, w.Content())

	menu := w.MainMenu()
	require.NotNil(t, menu)
	var labels []string
	for _, m := range menu.Items {
		labels = append(labels, m.Label)
	}
	assert.Equal(t, []string{"File", "Edit", "View"}, labels)
	assert.Equal(t, "Add Files...", menu.Items[0].Items[0].Label)
	assert.Equal(t, "Select All", menu.Items[1].Items[0].Label)

	for _, cmd := range []controller.Command{
		controller.CmdAdd, controller.CmdEdit, controller.CmdCopy, controller.CmdExport, controller.CmdDelete,
	} {
		assert.Contains(t, a.toolbar, cmd)
	}
	assert.Equal(t, status.Ready, a.statusText.Text)
}

func TestPreloadedFilesAreListed(t *testing.T) {
	paths := testutils.CreateOrderedFiles(t, t.TempDir(), "image1.png", "doc.txt", "image2.jpg")
	a, _ := newTestApp(t, paths...)

	assert.Equal(t, []string{"image1.png", "doc.txt", "image2.jpg"}, rowNames(a.files))
	assert.Equal(t, 3, a.files.list.Length())
}

func TestSearchFiltersList(t *testing.T) {
	paths := testutils.CreateOrderedFiles(t, t.TempDir(), "image1.png", "doc.txt", "image2.jpg")
	a, ctrl := newTestApp(t, paths...)

	test.Type(a.search, "image")
	assert.Equal(t, "image", ctrl.Query())
	assert.Equal(t, []string{"image1.png", "image2.jpg"}, rowNames(a.files))

	test.Tap(a.clearBtn)
	assert.Equal(t, "", a.search.Text)
	assert.Len(t, a.files.rows, 3)
}

func TestToolbarDeleteWithoutSelectionWarns(t *testing.T) {
	paths := testutils.CreateOrderedFiles(t, t.TempDir(), "a.txt")
	a, ctrl := newTestApp(t, paths...)

	test.Tap(a.toolbar[controller.CmdDelete])
	assert.Equal(t, "Please select files to delete", a.statusText.Text)
	assert.Equal(t, statusColor(a.cfg.Theme, status.Message{Text: "x", Level: status.Warning}), a.statusText.Color)
	assert.Equal(t, 1, ctrl.Registry().Len())
}

func TestSelectAndDelete(t *testing.T) {
	paths := testutils.CreateOrderedFiles(t, t.TempDir(), "a.txt", "b.txt", "c.txt")
	a, ctrl := newTestApp(t, paths...)

	a.files.list.Select(1)
	require.Len(t, ctrl.Selection(), 1)
	assert.Equal(t, a.files.rows[1].ID, ctrl.Selection()[0])

	test.Tap(a.toolbar[controller.CmdDelete])
	assert.Equal(t, []string{"a.txt", "c.txt"}, rowNames(a.files))
	assert.Equal(t, "Removed 1 files", a.statusText.Text)
}

func TestHeaderCheckSelectsAll(t *testing.T) {
	paths := testutils.CreateOrderedFiles(t, t.TempDir(), "a.txt", "b.txt")
	a, ctrl := newTestApp(t, paths...)

	test.Tap(a.files.allCheck)
	assert.Len(t, ctrl.Selection(), 2)
	assert.True(t, a.files.allCheck.Checked)

	test.Tap(a.files.allCheck)
	assert.Empty(t, ctrl.Selection())
}

func TestHeaderSorts(t *testing.T) {
	paths := testutils.CreateOrderedFiles(t, t.TempDir(), "b.txt", "c.txt", "a.txt")
	a, ctrl := newTestApp(t, paths...)

	test.Tap(a.files.headers[controller.ColumnName])
	assert.Equal(t, []string{"a.txt", "b.txt", "c.txt"}, rowNames(a.files))
	assert.NotNil(t, a.files.headers[controller.ColumnName].Icon)

	test.Tap(a.files.headers[controller.ColumnName])
	assert.Equal(t, []string{"c.txt", "b.txt", "a.txt"}, rowNames(a.files))
	_, desc := ctrl.Sort()
	assert.True(t, desc)
	assert.Nil(t, a.files.headers[controller.ColumnSize].Icon)
}

func TestPreviewPanel(t *testing.T) {
	dir := t.TempDir()
	img := testutils.WritePNG(t, dir, "wide.png", 800, 400)
	txt := testutils.CreateOrderedFiles(t, dir, "notes.txt")
	a, ctrl := newTestApp(t, img, txt[0])

	assert.Equal(t, preview.NoSelection, a.preview.message.Text)

	a.files.list.Select(0)
	assert.Equal(t, preview.Thumbnail, a.preview.last.Kind)
	require.NotNil(t, a.preview.image.Image)
	assert.LessOrEqual(t, a.preview.image.Image.Bounds().Dx(), 200)
	assert.Contains(t, a.preview.info.Text, "Name: wide.png")

	a.files.list.Select(1)
	assert.Equal(t, preview.NoPreview, a.preview.message.Text)
	assert.Nil(t, a.preview.image.Image)

	test.Tap(a.preview.closeBtn)
	assert.False(t, ctrl.PreviewVisible())
	assert.False(t, a.preview.container.Visible())

	ctrl.Dispatch(context.Background(), controller.CmdTogglePreview)
	assert.True(t, a.preview.container.Visible())
}

func TestCopyFromToolbar(t *testing.T) {
	paths := testutils.CreateOrderedFiles(t, t.TempDir(), "a.txt", "b.txt")
	a, ctrl := newTestApp(t, paths...)
	dest := t.TempDir()
	ctrl.SetDialogs(&stubDialogs{dest: dest})

	ctrl.SelectAll()
	test.Tap(a.toolbar[controller.CmdCopy])

	assert.Equal(t, "Copied 2 files successfully", a.statusText.Text)
	for _, p := range paths {
		_, err := os.Stat(filepath.Join(dest, filepath.Base(p)))
		assert.NoError(t, err)
	}

	test.Tap(a.toolbar[controller.CmdEdit])
	assert.Equal(t, "Edit functionality coming soon", a.statusText.Text)
}

func TestDropAddsFilesAndFolders(t *testing.T) {
	dir := t.TempDir()
	loose := testutils.CreateOrderedFiles(t, dir, "loose.txt")
	folder := filepath.Join(dir, "folder")
	require.NoError(t, os.Mkdir(folder, 0755))
	testutils.CreateOrderedFiles(t, folder, "x.txt", "y.txt")
	a, ctrl := newTestApp(t)

	a.onDropped(fyne.NewPos(0, 0), []fyne.URI{
		storage.NewFileURI(loose[0]),
		storage.NewFileURI(folder),
		storage.NewFileURI(filepath.Join(dir, "missing.txt")),
	})
	assert.Equal(t, 3, ctrl.Registry().Len())
	assert.Equal(t, []string{"loose.txt", "x.txt", "y.txt"}, rowNames(a.files))
}

func TestSaveSettings(t *testing.T) {
	paths := testutils.CreateOrderedFiles(t, t.TempDir(), "image1.png", "doc.txt")
	a, ctrl := newTestApp(t, paths...)
	a.configPath = filepath.Join(t.TempDir(), "config.yaml")

	form := newSettingsForm(a.cfg)
	form.searchMode.SetSelected(config.SearchFuzzy)
	form.collision.SetSelected(config.CollisionRename)
	assert.Equal(t, config.SearchSubstring, a.cfg.Search.Mode, "draft edits do not touch the live config")

	a.saveSettings(&form.draft)
	assert.Equal(t, config.SearchFuzzy, a.cfg.Search.Mode)
	assert.Equal(t, "Settings saved", a.statusText.Text)

	loaded, err := config.LoadConfigFile(a.configPath)
	require.NoError(t, err)
	assert.Equal(t, config.CollisionRename, loaded.Transfer.Collision)

	ctrl.SetQuery("img")
	assert.Len(t, ctrl.Rows(), 1)
}

func TestSaveSettingsKeepsPreviewVisibility(t *testing.T) {
	a, _ := newTestApp(t)
	a.configPath = filepath.Join(t.TempDir(), "config.yaml")
	require.True(t, a.cfg.Preview.Show)

	form := newSettingsForm(a.cfg)
	assert.True(t, form.previewShow.Checked)
	test.Tap(form.previewShow)
	assert.False(t, form.draft.Preview.Show)
	assert.True(t, a.cfg.Preview.Show, "draft edits do not touch the live config")

	a.saveSettings(&form.draft)
	assert.False(t, a.cfg.Preview.Show)

	loaded, err := config.LoadConfigFile(a.configPath)
	require.NoError(t, err)
	assert.False(t, loaded.Preview.Show)

	reopened := newSettingsForm(loaded)
	assert.False(t, reopened.previewShow.Checked)
}

func TestThemeColors(t *testing.T) {
	th := newTheme(config.DefaultTheme())
	assert.Equal(t, color.NRGBA{R: 0x0A, G: 0x1F, B: 0x1C, A: 255}, th.Color(theme.ColorNameBackground, theme.VariantLight))
	assert.Equal(t, color.NRGBA{R: 0x00, G: 0xFF, B: 0x9D, A: 255}, th.Color(theme.ColorNameForeground, theme.VariantDark))
	assert.NotNil(t, th.Color(theme.ColorNameShadow, theme.VariantDark))
	assert.NotNil(t, th.Icon(theme.IconNameDelete))

	ready := statusColor(config.DefaultTheme(), status.Message{Text: status.Ready, Level: status.Info})
	info := statusColor(config.DefaultTheme(), status.Message{Text: "Removed 1 files", Level: status.Info})
	assert.Equal(t, color.NRGBA{R: 0x00, G: 0xFF, B: 0x9D, A: 255}, ready)
	assert.Equal(t, color.NRGBA{R: 0x34, G: 0x98, B: 0xDB, A: 255}, info)
}

func TestParseHexColor(t *testing.T) {
	c, err := parseHexColor("#FFE162")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0xFF, G: 0xE1, B: 0x62, A: 255}, c)

	for _, bad := range []string{"", "FFE162", "#FFF", "#GGGGGG"} {
		_, err := parseHexColor(bad)
		assert.Error(t, err, bad)
	}
}
