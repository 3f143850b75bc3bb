package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/spatialperm/neighbors"
	"github.com/spf13/cobra"
)

func newNeighborsCmd(a *app) *cobra.Command {
	var withLabels bool
	cmd := &cobra.Command{
		Use:   "neighbors FILE",
		Short: "Print the neighbors of every object",
		Long: `Print one line per object: its index followed by the indices of its
neighbors. With --labels the neighbor labels are printed instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.load(args[0])
			if err != nil {
				return err
			}
			m, err := a.neighborMapping(ds)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !withLabels {
				for i, nbrs := range m {
					fields := make([]string, len(nbrs))
					for k, j := range nbrs {
						fields[k] = strconv.Itoa(j)
					}
					fmt.Fprintf(out, "%d: %s\n", i, strings.Join(fields, " "))
				}
				return nil
			}
			named, err := neighbors.Relabel(m, ds.Labels)
			if err != nil {
				return err
			}
			for i, nbrs := range named {
				fmt.Fprintf(out, "%d (%s): %s\n", i, ds.Labels[i], strings.Join(nbrs, " "))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&withLabels, "labels", false, "print neighbor labels instead of indices")
	return cmd
}
