package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"kernel-convolution/internal/algorithms"
)

func newKernelsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "kernels",
		Short: "List kernel families, their parameters and registered presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, info := range algorithms.KernelKinds() {
				fmt.Fprintf(out, "%s: %s\n", info.Kind, info.Description)
				for _, p := range info.Parameters {
					fmt.Fprintf(out, "  --%-8s %-6s %s", p.Name, p.Type, p.Description)
					if p.Default != nil {
						fmt.Fprintf(out, " (default %v)", p.Default)
					}
					fmt.Fprintln(out)
				}
			}

			fmt.Fprintln(out, "presets:")
			for _, name := range algorithms.PresetNames() {
				spec, _ := algorithms.LookupPreset(name)
				fmt.Fprintf(out, "  %-10s %s\n", name, formatWeights(spec.Weights))
			}
			a.logger.WithField("presets", len(algorithms.PresetNames())).Debug("Listed kernels")
			return nil
		},
	}
}

func formatWeights(weights [][]float64) string {
	rows := make([]string, len(weights))
	for i, row := range weights {
		cells := make([]string, len(row))
		for j, w := range row {
			cells[j] = fmt.Sprintf("%g", w)
		}
		rows[i] = "[" + strings.Join(cells, " ") + "]"
	}
	return strings.Join(rows, " ")
}
