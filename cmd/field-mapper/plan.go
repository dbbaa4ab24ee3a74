package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"field-mapper/options"
)

func newPlanCommand(a *app) *cobra.Command {
	var copyInto, skipNull, coerce, unsafe, strict bool

	cmd := &cobra.Command{
		Use:   "plan <source> <target>",
		Short: "Print how fields of source are copied into target",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := lookupType(args[0])
			if err != nil {
				return err
			}

			dst, err := lookupType(args[1])
			if err != nil {
				return err
			}

			var flags options.Flag
			for flag, on := range map[options.Flag]bool{
				options.CopyInto:            copyInto || skipNull,
				options.SkipNull:            skipNull,
				options.CoerceNullable:      coerce,
				options.IgnoreTypeConflicts: unsafe,
			} {
				if on {
					flags = flags.With(flag)
				}
			}

			plan, err := a.mapper.Explain(src, dst, flags)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s [%s]\n\n", plan.TypePair(), plan.Flags)

			tbl := newTable(out, "FIELD", "DECISION", "FROM", "TO")
			for _, f := range plan.Fields {
				tbl.addRow(f.Name, f.Decision.String(), f.Source.Type.String(), f.Target.Type.String())
			}

			for _, u := range plan.Unmapped {
				tbl.addRow(u.Name, "skip: "+u.Code, "", u.Target.Type.String())
			}

			tbl.render()

			yellow := color.New(color.FgYellow)
			for _, w := range plan.Diagnostics.Warnings {
				yellow.Fprintf(out, "warning: %s: %s\n", w.FieldPath, w.Message)
			}

			invalid := a.mapper.Validate(src, dst, flags)
			if invalid != nil {
				color.New(color.FgRed).Fprintf(out, "error: %s\n", invalid)
			}

			for _, i := range plan.Diagnostics.Infos {
				if len(i.Suggestions) > 0 {
					fmt.Fprintln(out, i.String())
				}
			}

			if strict {
				return invalid
			}

			return nil
		},
	}

	f := cmd.Flags()
	f.BoolVar(&copyInto, "copy-into", false, "plan for copying into an existing target")
	f.BoolVar(&skipNull, "skip-null", false, "leave target fields alone when the source value is nil (implies --copy-into)")
	f.BoolVar(&coerce, "coerce", false, "coerce between *T and T")
	f.BoolVar(&unsafe, "unsafe", false, "bind same-named fields regardless of type")
	f.BoolVar(&strict, "strict", false, "fail when a bound field can never be copied")

	return cmd
}
