package main

import (
	"fmt"
	"sort"

	"github.com/ah-its-andy/reformed/internal/formats"
	"github.com/spf13/cobra"
)

func newFormatsCommand() *cobra.Command {
	var direction string

	cmd := &cobra.Command{
		Use:   "formats",
		Short: "List the formats accepted and produced by the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := formatRows(formats.Default, direction)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(formatColumns, rows))
			return nil
		},
	}
	cmd.Flags().StringVar(&direction, "direction", "all", "Limit to input, output or all formats")
	return cmd
}

func formatRows(reg *formats.Registry, direction string) ([][]string, error) {
	var keys []string
	switch direction {
	case "input":
		keys = reg.InputKeys()
	case "output":
		keys = reg.OutputKeys()
	case "all", "":
		seen := map[string]struct{}{}
		for _, k := range append(reg.InputKeys(), reg.OutputKeys()...) {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
	default:
		return nil, fmt.Errorf("unknown direction %q (want input, output or all)", direction)
	}

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		in, isIn := reg.Input(k)
		out, isOut := reg.Output(k)
		d := out
		if !isOut {
			d = in
		}
		rows = append(rows, []string{k, mark(isIn), mark(isOut), d.MIMEType, d.Extension})
	}
	return rows, nil
}

func mark(ok bool) string {
	if ok {
		return "yes"
	}
	return "-"
}
