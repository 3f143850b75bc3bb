package cli

import (
	"fmt"

	"github.com/katalvlaran/spatialperm/permute"
	"github.com/spf13/cobra"
)

func newPairCmd(a *app) *cobra.Command {
	var xLabel, yLabel string
	cmd := &cobra.Command{
		Use:   "pair FILE --x A --y B",
		Short: "Z-score for objects labeled A having neighbors labeled B",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.load(args[0])
			if err != nil {
				return err
			}
			nb, err := a.neighborMapping(ds)
			if err != nil {
				return err
			}
			opts, err := a.permuteOptions()
			if err != nil {
				return err
			}
			x := make([]bool, ds.Len())
			y := make([]bool, ds.Len())
			for i, l := range ds.Labels {
				x[i] = l == xLabel
				y[i] = l == yLabel
			}
			z, err := permute.PairwiseStatus(x, y, nb, opts...)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s|%s %.4f\n", xLabel, yLabel, z)
			return nil
		},
	}
	cmd.Flags().StringVar(&xLabel, "x", "", "label of the centre objects")
	cmd.Flags().StringVar(&yLabel, "y", "", "label of the neighbor objects")
	_ = cmd.MarkFlagRequired("x")
	_ = cmd.MarkFlagRequired("y")
	a.addTimesFlag(cmd)
	return cmd
}
