package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"field-mapper/internal/introspect"
)

func newInspectCommand(a *app) *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:   "inspect <type>",
		Short: "Print the mappable fields of a type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := lookupType(args[0])
			if err != nil {
				return err
			}

			desc := a.mapper.Describe(t)
			out := cmd.OutOrStdout()

			if dump {
				cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true, MaxDepth: 3}
				cfg.Fdump(out, desc.Fields)

				return nil
			}

			fmt.Fprintf(out, "%s (%d fields)\n\n", desc.ID, desc.Len())

			tbl := newTable(out, "FIELD", "TYPE", "DEPTH", "INDEX", "TRAITS")
			desc.Each(func(f *introspect.FieldDescriptor) {
				tbl.addRow(f.Name, f.Type.String(), strconv.Itoa(f.Depth), formatIndex(f.Index), traits(f))
			})
			tbl.render()

			if len(desc.Ambiguous) > 0 {
				fmt.Fprintf(out, "\nambiguous (not mapped): %s\n", strings.Join(desc.Ambiguous, ", "))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&dump, "dump", false, "dump raw field descriptors")

	return cmd
}

func formatIndex(index []int) string {
	parts := make([]string, len(index))
	for i, x := range index {
		parts[i] = strconv.Itoa(x)
	}

	return strings.Join(parts, ".")
}

func traits(f *introspect.FieldDescriptor) string {
	var out []string

	if f.Optional {
		out = append(out, "optional")
	} else if f.Nilable {
		out = append(out, "nilable")
	}

	if f.Hidden {
		out = append(out, "hidden")
	}

	if f.Ignored {
		out = append(out, "ignored")
	}

	return strings.Join(out, ",")
}
