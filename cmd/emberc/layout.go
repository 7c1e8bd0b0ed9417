package main

import (
	"fmt"
	"io"

	"github.com/you-not-fish/ember/internal/syntax"
	"github.com/you-not-fish/ember/internal/types"
)

// layoutRow describes the storage of one declaration.
type layoutRow struct {
	Pos   string `json:"pos" yaml:"pos"`
	Name  string `json:"name" yaml:"name"`
	Type  string `json:"type" yaml:"type"`
	Kind  string `json:"kind" yaml:"kind"`
	Size  int64  `json:"size" yaml:"size"`
	Align int64  `json:"align" yaml:"align"`
}

// printLayout prints the size and alignment of every declaration, in the
// order the declarations were resolved.
func printLayout(w io.Writer, decls []*syntax.Declaration, opts *options) error {
	rows := make([]layoutRow, 0, len(decls))
	for _, d := range decls {
		t := d.VarType()
		rows = append(rows, layoutRow{
			Pos:   d.Pos().String(),
			Name:  d.Name.Value,
			Type:  t.String(),
			Kind:  kindOf(t),
			Size:  types.DefaultSizes.Sizeof(t),
			Align: types.DefaultSizes.Alignof(t),
		})
	}

	return encodeRows(w, opts.Output.Format, rows, func() {
		fmt.Fprintln(w, "=== Declaration Layouts ===")
		fmt.Fprintln(w)
		for _, row := range rows {
			fmt.Fprintf(w, "%-10s %-15s // %s, size: %d, align: %d\n",
				row.Name, row.Type, row.Kind, row.Size, row.Align)
		}
	})
}

// kindOf names the kind of t.
func kindOf(t types.Type) string {
	switch {
	case types.IsMeta(t):
		return "type"
	case types.IsVoid(t):
		return "void"
	case types.IsIntegerType(t):
		return "integer"
	case types.IsFloatType(t):
		return "float"
	case types.IsPointer(t):
		return "pointer"
	case types.IsProc(t):
		return "procedure"
	}
	return "invalid"
}
