// Package format renders byte counts and timestamps for the list and preview.
package format

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// TimeLayout is used for the Modified column and preview info.
const TimeLayout = "2006-01-02 15:04"

var units = []string{"B", "KB", "MB", "GB", "TB"}

// Size renders a byte count with one decimal in binary units. Values below
// 1024 stay in bytes; each exact power of 1024 rolls over to the next unit.
func Size(size int64) string {
	if size < 0 {
		size = 0
	}
	v := float64(size)
	for _, unit := range units {
		if v < 1024 {
			return fmt.Sprintf("%.1f %s", v, unit)
		}
		v /= 1024
	}
	return fmt.Sprintf("%.1f PB", v)
}

// Time renders t with TimeLayout in local time.
func Time(t time.Time) string {
	return t.Local().Format(TimeLayout)
}

// Age renders t relative to now, e.g. "3 hours ago".
func Age(t time.Time) string {
	return humanize.Time(t)
}

// TypeLabel is the Type column: the extension, or "File" when there is none.
func TypeLabel(ext string) string {
	if ext == "" {
		return "File"
	}
	return ext
}
