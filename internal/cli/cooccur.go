package cli

import (
	"strconv"

	"github.com/katalvlaran/spatialperm/permute"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newCooccurCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cooccur FILE",
		Short: "Test every label pair for neighborhood association",
		Long: `Shuffle labels over the fixed neighbor graph and compare the observed
count of (A, B) neighbor incidences with the permuted counts.

With --method pval each pair reports 1 (association), -1 (avoidance) or 0;
with --method zscore it reports (observed - mean) / std of the null.`,
		Args: cobra.ExactArgs(1),
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
			ct := permute.NewCombinationTest(ds.Labels, a.cfg.Bootstrap.Order)
			rs, err := ct.Bootstrap(ds.Labels, nb, opts...)
			if err != nil {
				return err
			}
			renderResults(cmd, rs, a.cfg.Bootstrap.Method)
			return nil
		},
	}
	a.addTimesFlag(cmd)
	a.addSummaryFlags(cmd)
	return cmd
}

func renderResults(cmd *cobra.Command, rs []permute.Result[string], method string) {
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"A", "B", method})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoFormatHeaders(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
	for _, r := range rs {
		table.Append([]string{r.Pair.A, r.Pair.B, formatValue(r.Value)})
	}
	table.Render()
}

// formatValue prints signed significance as an integer and z-scores with
// four decimals.
func formatValue(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}
