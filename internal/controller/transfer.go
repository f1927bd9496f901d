package controller

import (
	"context"
	"fmt"
	"strings"

	"darkarchiver/internal/errors"
	"darkarchiver/internal/log"
	"darkarchiver/internal/transfer"
)

// TransferKind names the two transfer actions. They share one engine and
// differ only in wording.
type TransferKind int

const (
	Copy TransferKind = iota
	Export
)

func (k TransferKind) verb() string {
	if k == Export {
		return "export"
	}
	return "copy"
}

func (k TransferKind) past() string {
	if k == Export {
		return "Exported"
	}
	return "Copied"
}

func (k TransferKind) gerund() string {
	if k == Export {
		return "exporting"
	}
	return "copying"
}

func (k TransferKind) title() string {
	if k == Export {
		return ExportTitle
	}
	return CopyTitle
}

// Copy copies the selected files into dest.
func (c *Controller) Copy(ctx context.Context, dest string) (transfer.Summary, error) {
	return c.Transfer(ctx, Copy, dest)
}

// Export copies the selected files into dest under the export wording.
func (c *Controller) Export(ctx context.Context, dest string) (transfer.Summary, error) {
	return c.Transfer(ctx, Export, dest)
}

// Transfer copies the selected files into dest and reports the result on the
// status bar. An empty dest is a cancelled dialog and does nothing. The
// registry is never changed.
func (c *Controller) Transfer(ctx context.Context, kind TransferKind, dest string) (transfer.Summary, error) {
	ids := c.Selection()
	if len(ids) == 0 {
		c.status.Warn("Please select files to " + kind.verb())
		return transfer.Summary{}, errors.ErrEmptySelection
	}
	if strings.TrimSpace(dest) == "" {
		log.Debugf("%s cancelled", kind.verb())
		return transfer.Summary{}, nil
	}

	c.mu.Lock()
	req := transfer.Request{
		Sources:   c.reg.Paths(ids),
		DestDir:   dest,
		Policy:    c.opts.Transfer,
		Collision: c.opts.Collision,
	}
	c.mu.Unlock()

	var firstErr error
	summary, err := c.engine.Run(ctx, req, func(o transfer.Outcome) {
		if o.Status == transfer.Failed && firstErr == nil {
			firstErr = o.Err
		}
		log.LogWithFields(
			log.F("source", o.Source),
			log.F("dest", o.Dest),
			log.F("status", o.Status.String()),
		).Debug("transfer outcome")
	})

	switch {
	case err != nil:
		c.status.Error(fmt.Sprintf("Error %s files: %v", kind.gerund(), err))
	case summary.Partial():
		c.status.Warn(fmt.Sprintf("%s %d of %d files (%d failed)", kind.past(), summary.Copied, summary.Total, summary.Failed))
	case summary.Failed > 0:
		err = firstErr
		c.status.Error(fmt.Sprintf("Error %s files: %v", kind.gerund(), firstErr))
	case summary.Skipped > 0:
		c.status.Success(fmt.Sprintf("%s %d files successfully (%d skipped)", kind.past(), summary.Copied, summary.Skipped))
	default:
		c.status.Success(fmt.Sprintf("%s %d files successfully", kind.past(), summary.Copied))
	}
	return summary, err
}
