package controller

import (
	"context"
	"fmt"
	"strings"

	"darkarchiver/internal/log"
)

// Command is a user action from a menu, toolbar or key binding.
type Command int

const (
	CmdAdd Command = iota
	CmdAddFolder
	CmdEdit
	CmdCopy
	CmdExport
	CmdDelete
	CmdSelectAll
	CmdTogglePreview
	CmdClearSearch
)

var commandNames = map[Command]string{
	CmdAdd:           "add",
	CmdAddFolder:     "add-folder",
	CmdEdit:          "edit",
	CmdCopy:          "copy",
	CmdExport:        "export",
	CmdDelete:        "delete",
	CmdSelectAll:     "select-all",
	CmdTogglePreview: "toggle-preview",
	CmdClearSearch:   "clear-search",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("command(%d)", int(c))
}

// ParseCommand looks a command up by name.
func ParseCommand(name string) (Command, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for cmd, n := range commandNames {
		if n == name {
			return cmd, nil
		}
	}
	return 0, fmt.Errorf("unknown command %q", name)
}

// Dialogs asks the user for paths. Each call reports its answer through
// done, possibly later; an empty answer means the user cancelled.
type Dialogs interface {
	ChooseFiles(done func(paths []string))
	ChooseFolder(done func(dir string))
	ChooseDestination(title string, done func(dir string))
}

// Destination dialog titles.
const (
	CopyTitle   = "Select Destination"
	ExportTitle = "Select Export Location"
)

// Dispatch runs cmd. Commands that need a path ask the Dialogs first and are
// silent no-ops when the user cancels.
func (c *Controller) Dispatch(ctx context.Context, cmd Command) {
	log.Debugf("dispatch %s", cmd)

	switch cmd {
	case CmdAdd:
		c.withDialogs(func(d Dialogs) {
			d.ChooseFiles(func(paths []string) {
				if len(paths) > 0 {
					c.AddFiles(paths)
				}
			})
		})
	case CmdAddFolder:
		c.withDialogs(func(d Dialogs) {
			d.ChooseFolder(func(dir string) {
				if dir != "" {
					c.AddFolder(dir)
				}
			})
		})
	case CmdEdit:
		c.Edit()
	case CmdCopy:
		c.transferWithDialog(ctx, Copy)
	case CmdExport:
		c.transferWithDialog(ctx, Export)
	case CmdDelete:
		c.Delete()
	case CmdSelectAll:
		c.SelectAll()
	case CmdTogglePreview:
		c.TogglePreview()
	case CmdClearSearch:
		c.ClearSearch()
	default:
		log.Warnf("unknown command %d", int(cmd))
	}
}

func (c *Controller) withDialogs(fn func(Dialogs)) {
	c.mu.Lock()
	d := c.dialogs
	c.mu.Unlock()
	if d == nil {
		log.Warn("no dialogs attached")
		return
	}
	fn(d)
}

// transferWithDialog checks the selection before asking for a destination,
// so an empty selection warns without opening a dialog.
func (c *Controller) transferWithDialog(ctx context.Context, kind TransferKind) {
	if len(c.Selection()) == 0 {
		c.status.Warn("Please select files to " + kind.verb())
		return
	}
	c.withDialogs(func(d Dialogs) {
		d.ChooseDestination(kind.title(), func(dir string) {
			c.Transfer(ctx, kind, dir)
		})
	})
}
