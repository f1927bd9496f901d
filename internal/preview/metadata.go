package preview

import (
	"mime"
	"os"
	"strings"

	"darkarchiver/internal/log"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"
)

func init() {
	exif.RegisterParsers(mknote.All...)
}

// DetectMIME is MIMEType with a content sniffing fallback for files whose
// extension is missing or unknown.
func DetectMIME(path string) string {
	if typ := MIMEType(path); typ != "" {
		return typ
	}
	m, err := mimetype.DetectFile(path)
	if err != nil || m.Is("application/octet-stream") {
		return ""
	}
	if media, _, err := mime.ParseMediaType(m.String()); err == nil {
		return media
	}
	return m.String()
}

// readEXIF fills the camera fields of info. Files without EXIF leave them
// empty.
func readEXIF(path string, info *Info) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		log.Debugf("no EXIF data in %s: %v", path, err)
		return
	}
	if tag, err := x.Get(exif.Model); err == nil {
		if s, err := tag.StringVal(); err == nil {
			info.Camera = strings.TrimSpace(s)
		}
	}
	if t, err := x.DateTime(); err == nil {
		info.Taken = t
	}
}
