package controller

import (
	"sort"
	"strings"

	"darkarchiver/internal/format"
	"darkarchiver/internal/registry"
)

// Column is a sortable list column.
type Column int

const (
	// ColumnNone keeps insertion order.
	ColumnNone Column = iota
	ColumnName
	ColumnSize
	ColumnType
	ColumnModified
)

// Columns lists the sortable columns in display order.
var Columns = []Column{ColumnName, ColumnSize, ColumnType, ColumnModified}

func (c Column) String() string {
	switch c {
	case ColumnName:
		return "Name"
	case ColumnSize:
		return "Size"
	case ColumnType:
		return "Type"
	case ColumnModified:
		return "Modified"
	default:
		return "None"
	}
}

// Row is one display row. The text columns are derived once when the file
// is added.
type Row struct {
	ID       registry.RowID
	Path     string
	Name     string
	Size     string
	Type     string
	Modified string

	entry registry.Entry
}

func newRow(e registry.Entry) Row {
	return Row{
		ID:       e.ID,
		Path:     e.Path,
		Name:     e.Name,
		Size:     format.Size(e.Size),
		Type:     format.TypeLabel(e.Ext),
		Modified: format.Time(e.ModTime),
		entry:    e,
	}
}

// sortRows orders rows in place by col. Ties keep insertion order.
func sortRows(rows []Row, col Column, desc bool) {
	if col == ColumnNone {
		return
	}
	less := func(a, b Row) bool {
		switch col {
		case ColumnName:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		case ColumnSize:
			return a.entry.Size < b.entry.Size
		case ColumnType:
			return strings.ToLower(a.Type) < strings.ToLower(b.Type)
		case ColumnModified:
			return a.entry.ModTime.Before(b.entry.ModTime)
		}
		return false
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if desc {
			return less(rows[j], rows[i])
		}
		return less(rows[i], rows[j])
	})
}
