package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/cohesion"
)

func newClassifyCommand() *cobra.Command {
	var (
		breaks  []float64
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:     "classify [flags] VALUE...",
		Short:   "Bin numeric values by explicit breaks",
		Example: `  cohesionctl classify --breaks 2,5 1 2 4 5 7 8`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := parseValues(args)
			if err != nil {
				return err
			}
			c, err := cohesion.ClassifyBreaks(breaks, data)
			if err != nil {
				return err
			}

			if wantJSON(jsonOut, cmd.OutOrStdout()) {
				return writeJSON(cmd, c)
			}
			rows := make([][]string, len(c))
			for i, b := range c {
				rows[i] = []string{strconv.Itoa(i), formatBounds(b, i == len(c)-1), strconv.Itoa(b.Count)}
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Bin", "Range", "Count"}, rows,
				[]columnAlignment{alignRight, alignLeft, alignRight}))
			return nil
		},
	}

	cmd.Flags().Float64SliceVar(&breaks, "breaks", nil, "Ascending interior breaks, comma separated")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON even on a terminal")

	return cmd
}

func parseValues(args []string) ([]float64, error) {
	out := make([]float64, 0, len(args))
	for _, a := range args {
		for _, part := range strings.Split(a, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			v, err := strconv.ParseFloat(part, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid value %q: %w", part, err)
			}
			out = append(out, v)
		}
	}
	return out, nil
}
