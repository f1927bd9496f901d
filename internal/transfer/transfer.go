// Package transfer copies registered files into a destination directory.
// Copy and export are both expressed as a Request against the same Engine.
package transfer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"darkarchiver/internal/errors"
	"darkarchiver/internal/log"

	"github.com/otiai10/copy"
)

// Policy decides whether a failure ends the batch.
type Policy int

const (
	// Abort stops at the first failed file.
	Abort Policy = iota
	// Continue copies every file and reports the failures.
	Continue
)

// Collision decides what happens when the destination file already exists.
type Collision int

const (
	// Overwrite replaces the existing file.
	Overwrite Collision = iota
	// SkipExisting leaves the existing file and reports the source as skipped.
	SkipExisting
	// Rename writes to "name (n).ext" with the lowest free n.
	Rename
)

// ParsePolicy maps a config value onto a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(s) {
	case "", "abort":
		return Abort, nil
	case "continue":
		return Continue, nil
	}
	return Abort, errors.NewConfigError(fmt.Sprintf("unknown transfer policy %q", s), "transfer.error_policy", errors.InvalidConfig, nil)
}

// ParseCollision maps a config value onto a Collision.
func ParseCollision(s string) (Collision, error) {
	switch strings.ToLower(s) {
	case "", "overwrite":
		return Overwrite, nil
	case "skip":
		return SkipExisting, nil
	case "rename":
		return Rename, nil
	}
	return Overwrite, errors.NewConfigError(fmt.Sprintf("unknown collision strategy %q", s), "transfer.collision", errors.InvalidConfig, nil)
}

// Request describes one bulk transfer.
type Request struct {
	Sources   []string
	DestDir   string
	Policy    Policy
	Collision Collision
}

// Status is the result for a single file.
type Status int

const (
	// Copied means the content reached the destination.
	Copied Status = iota
	// Skipped means an existing destination file was kept.
	Skipped
	// Failed means the file was not copied; Outcome.Err says why.
	Failed
)

func (s Status) String() string {
	switch s {
	case Copied:
		return "copied"
	case Skipped:
		return "skipped"
	default:
		return "failed"
	}
}

// Outcome is reported once per attempted file.
type Outcome struct {
	Source string
	Dest   string
	Status Status
	Err    error
}

// Summary counts the outcomes of a run.
type Summary struct {
	Total   int
	Copied  int
	Skipped int
	Failed  int
}

// Partial reports whether some files made it and some did not.
func (s Summary) Partial() bool {
	return s.Failed > 0 && s.Copied+s.Skipped > 0
}

// Engine performs transfers. The zero value is not usable; call New.
type Engine struct {
	copyFile func(src, dst string) error
}

// New creates an Engine that copies content, permissions and timestamps.
// Symlinked sources are followed, so the destination gets a regular file.
func New() *Engine {
	return &Engine{
		copyFile: func(src, dst string) error {
			return copy.Copy(src, dst, copy.Options{
				OnSymlink: func(string) copy.SymlinkAction {
					return copy.Deep
				},
				PreserveTimes: true,
				Sync:          true,
			})
		},
	}
}

// ValidateDestination checks that dir exists, is a directory and accepts
// new files.
func ValidateDestination(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return errors.NewTransferError("no destination chosen", "", "", errors.InvalidDestination, nil)
	}
	st, err := os.Stat(dir)
	if err != nil {
		return errors.NewTransferError("destination unavailable", "", dir, errors.InvalidDestination, err)
	}
	if !st.IsDir() {
		return errors.NewTransferError("destination is not a directory", "", dir, errors.InvalidDestination, nil)
	}
	f, err := os.CreateTemp(dir, ".darkarchiver-*")
	if err != nil {
		return errors.NewTransferError("destination is not writable", "", dir, errors.InvalidDestination, err)
	}
	f.Close()
	os.Remove(f.Name())
	return nil
}

// Run copies req.Sources into req.DestDir, calling onOutcome after each file.
// The destination is validated before anything is written. Under Abort the
// first failure is returned as the error; under Continue failures are only
// counted. A cancelled ctx stops before the next file.
func (e *Engine) Run(ctx context.Context, req Request, onOutcome func(Outcome)) (Summary, error) {
	summary := Summary{Total: len(req.Sources)}

	if err := ValidateDestination(req.DestDir); err != nil {
		return summary, err
	}

	entry := log.LogWithFields(log.F("dest", req.DestDir), log.F("files", len(req.Sources)))
	entry.Info("transfer started")

	for _, src := range req.Sources {
		if err := ctx.Err(); err != nil {
			return summary, errors.NewTransferError("transfer cancelled", "", req.DestDir, errors.Cancelled, err)
		}

		out := e.one(src, req)
		switch out.Status {
		case Copied:
			summary.Copied++
		case Skipped:
			summary.Skipped++
		case Failed:
			summary.Failed++
			log.LogWithError(out.Err).Warn("file transfer failed")
		}
		if onOutcome != nil {
			onOutcome(out)
		}
		if out.Status == Failed && req.Policy == Abort {
			return summary, out.Err
		}
	}

	entry.With(
		log.F("copied", summary.Copied),
		log.F("skipped", summary.Skipped),
		log.F("failed", summary.Failed),
	).Info("transfer finished")
	return summary, nil
}

func (e *Engine) one(src string, req Request) Outcome {
	dst := filepath.Join(req.DestDir, filepath.Base(src))
	out := Outcome{Source: src, Dest: dst}

	srcInfo, err := os.Stat(src)
	if err != nil {
		out.Status, out.Err = Failed, errors.FromOS("stat", src, err)
		return out
	}

	if dstInfo, err := os.Stat(dst); err == nil {
		if os.SameFile(srcInfo, dstInfo) {
			out.Status = Failed
			out.Err = errors.NewTransferError("source and destination are the same file", src, dst, errors.CopyFailed, nil)
			return out
		}
		switch req.Collision {
		case SkipExisting:
			out.Status = Skipped
			return out
		case Rename:
			dst = freeName(dst)
			out.Dest = dst
		}
	}

	if err := e.copyFile(src, dst); err != nil {
		out.Status = Failed
		out.Err = errors.NewTransferError("copy failed", src, dst, errors.CopyFailed, err)
		return out
	}
	out.Status = Copied
	return out
}

// freeName returns "name (n).ext" for the lowest n that does not exist yet.
func freeName(path string) string {
	dir := filepath.Dir(path)
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(filepath.Base(path), ext)
	for n := 1; ; n++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s (%d)%s", stem, n, ext))
		if _, err := os.Lstat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}
