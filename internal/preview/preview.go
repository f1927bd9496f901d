// Package preview renders the side panel for the focused file: an info
// block and either a bounded thumbnail or a placeholder message.
package preview

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"darkarchiver/internal/errors"
	"darkarchiver/internal/format"
	"darkarchiver/internal/log"

	"github.com/nfnt/resize"
	"github.com/patrickmn/go-cache"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Panel texts.
const (
	NoSelection = "No file selected"
	NoPreview   = "No preview available\nfor this file type"
	Unknown     = "Unknown"
)

func init() {
	// The builtin table lacks these; the system table may or may not have them.
	for ext, typ := range map[string]string{
		".bmp":  "image/bmp",
		".tif":  "image/tiff",
		".tiff": "image/tiff",
		".webp": "image/webp",
	} {
		if mime.TypeByExtension(ext) == "" {
			_ = mime.AddExtensionType(ext, typ)
		}
	}
}

// Kind says what the panel should show.
type Kind int

const (
	// Empty is the panel with nothing selected.
	Empty Kind = iota
	// Thumbnail carries a bounded image.
	Thumbnail
	// Placeholder is shown for files that are not images.
	Placeholder
	// Failed carries the error text in place of the preview.
	Failed
)

// Info is the metadata block, re-read from disk on every render.
type Info struct {
	Name     string
	Size     int64
	MIME     string
	Modified time.Time

	// From EXIF, only for JPEG and TIFF images that carry it.
	Camera string
	Taken  time.Time
}

// Text renders the info block.
func (i Info) Text() string {
	typ := i.MIME
	if typ == "" {
		typ = Unknown
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Name: %s\n", i.Name)
	fmt.Fprintf(&sb, "Size: %s\n", format.Size(i.Size))
	fmt.Fprintf(&sb, "Type: %s\n", typ)
	fmt.Fprintf(&sb, "Modified: %s (%s)\n", format.Time(i.Modified), format.Age(i.Modified))
	if i.Camera != "" {
		fmt.Fprintf(&sb, "Camera: %s\n", i.Camera)
	}
	if !i.Taken.IsZero() {
		fmt.Fprintf(&sb, "Taken: %s\n", format.Time(i.Taken))
	}
	return sb.String()
}

// IsImage reports whether the MIME type is an image type.
func (i Info) IsImage() bool {
	return strings.HasPrefix(i.MIME, "image/")
}

// Result is one rendered panel.
type Result struct {
	Kind    Kind
	Path    string
	Info    *Info       // nil when the file could not be stat'd
	Image   image.Image // set for Thumbnail
	Message string      // placeholder or error text
}

// InfoText is the info block or "" when unavailable.
func (r Result) InfoText() string {
	if r.Info == nil {
		return ""
	}
	return r.Info.Text()
}

// Options bounds thumbnails and their cache.
type Options struct {
	MaxWidth  int
	MaxHeight int
	CacheTTL  time.Duration
}

// Previewer renders results and caches decoded thumbnails.
type Previewer struct {
	opts  Options
	cache *cache.Cache
}

// New creates a Previewer. A zero CacheTTL disables caching.
func New(opts Options) *Previewer {
	if opts.MaxWidth < 1 {
		opts.MaxWidth = 200
	}
	if opts.MaxHeight < 1 {
		opts.MaxHeight = 200
	}
	p := &Previewer{opts: opts}
	if opts.CacheTTL > 0 {
		p.cache = cache.New(opts.CacheTTL, 2*opts.CacheTTL)
	}
	return p
}

// Bounds returns the thumbnail bound.
func (p *Previewer) Bounds() (int, int) {
	return p.opts.MaxWidth, p.opts.MaxHeight
}

// EmptyResult is the panel with nothing selected.
func EmptyResult() Result {
	return Result{Kind: Empty, Message: NoSelection}
}

// MIMEType guesses the MIME type from the file extension, without
// parameters. Unknown extensions give "".
func MIMEType(path string) string {
	typ := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if typ == "" {
		return ""
	}
	if media, _, err := mime.ParseMediaType(typ); err == nil {
		return media
	}
	return typ
}

// Render builds the panel for path. Failures never escape: they become a
// Failed result carrying the error text.
func (p *Previewer) Render(path string) Result {
	st, err := os.Stat(path)
	if err != nil {
		err = errors.FromOS("stat", path, err)
		log.LogWithError(err).Debug("preview failed")
		return Result{Kind: Failed, Path: path, Message: "Error loading preview:\n" + err.Error()}
	}

	info := &Info{
		Name:     filepath.Base(path),
		Size:     st.Size(),
		MIME:     DetectMIME(path),
		Modified: st.ModTime(),
	}

	if !info.IsImage() {
		return Result{Kind: Placeholder, Path: path, Info: info, Message: NoPreview}
	}

	if info.MIME == "image/jpeg" || info.MIME == "image/tiff" {
		readEXIF(path, info)
	}

	img, err := p.thumbnail(path, st)
	if err != nil {
		log.LogWithError(err).Debug("image preview failed")
		return Result{Kind: Failed, Path: path, Info: info, Message: "Error loading image:\n" + err.Error()}
	}
	return Result{Kind: Thumbnail, Path: path, Info: info, Image: img}
}

func (p *Previewer) thumbnail(path string, st os.FileInfo) (image.Image, error) {
	key := fmt.Sprintf("%s|%d|%d", path, st.Size(), st.ModTime().UnixNano())
	if p.cache != nil {
		if v, ok := p.cache.Get(key); ok {
			return v.(image.Image), nil
		}
	}

	img, err := decode(path)
	if err != nil {
		return nil, err
	}
	thumb := Fit(img, p.opts.MaxWidth, p.opts.MaxHeight)

	if p.cache != nil {
		p.cache.Set(key, thumb, cache.DefaultExpiration)
	}
	return thumb, nil
}

func decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.FromOS("open", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.NewFileError("decode image", path, errors.DecodeFailed, err)
	}
	if pal, ok := img.(*image.Paletted); ok {
		rgba := image.NewRGBA(pal.Bounds())
		draw.Draw(rgba, rgba.Bounds(), pal, pal.Bounds().Min, draw.Src)
		img = rgba
	}
	return img, nil
}

// Fit scales img down, keeping its aspect ratio, so that neither side
// exceeds the bound. Images already within the bound are returned as is.
func Fit(img image.Image, maxWidth, maxHeight int) image.Image {
	return resize.Thumbnail(uint(maxWidth), uint(maxHeight), img, resize.Lanczos3)
}
