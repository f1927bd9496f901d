package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSize(t *testing.T) {
	const (
		kb = int64(1024)
		mb = kb * 1024
		gb = mb * 1024
		tb = gb * 1024
		pb = tb * 1024
	)

	tests := []struct {
		in   int64
		want string
	}{
		{0, "0.0 B"},
		{1, "1.0 B"},
		{1023, "1023.0 B"},
		{kb, "1.0 KB"},
		{kb + kb/2, "1.5 KB"},
		{mb, "1.0 MB"},
		{gb, "1.0 GB"},
		{tb, "1.0 TB"},
		{pb, "1.0 PB"},
		{pb * 3, "3.0 PB"},
		{-5, "0.0 B"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Size(tt.in), "Size(%d)", tt.in)
	}
}

func TestTime(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 5, 59, 0, time.Local)
	assert.Equal(t, "2024-03-09 14:05", Time(ts))
}

func TestAge(t *testing.T) {
	assert.Equal(t, "3 hours ago", Age(time.Now().Add(-3*time.Hour-time.Minute)))
}

func TestTypeLabel(t *testing.T) {
	assert.Equal(t, ".png", TypeLabel(".png"))
	assert.Equal(t, "File", TypeLabel(""))
}
