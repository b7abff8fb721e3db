package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/philiaspace/kotoba/internal/config"
	sess "github.com/philiaspace/kotoba/internal/session"
)

var bandsCmd = &cobra.Command{
	Use:   "bands",
	Short: "Print the frequency band partition in use",
	Long: `Print the active band partition: rank ranges, batch ratios,
advancement thresholds and refresh caps. Honors KOTOBA_TABLES_PATH the
same way the test does, so it doubles as a check for override files.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Band tables need no store credentials, so skip full config
		// loading and read just the override path.
		cfg := &config.Config{}
		cfg.Tables.Path = os.Getenv("KOTOBA_TABLES_PATH")

		table, _, err := cfg.LoadTables()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "BAND\tRANKS\tRATIO\tADVANCE AFTER\tREFRESH CAP")
		for _, b := range table.Bands {
			fmt.Fprintf(w, "%d\t%d-%d\t%.2f\t%d\t%d\n",
				b.ID, b.MinRank, b.MaxRank, b.Ratio,
				table.AdvanceThreshold(b.ID), table.RefreshCap(b.ID))
		}
		if err := w.Flush(); err != nil {
			return err
		}

		for _, size := range sess.BatchSizes {
			alloc := sess.BatchAllocation(table, size)
			fmt.Fprintf(cmd.OutOrStdout(), "\nBatch %d: ", size)
			for i, b := range table.Bands {
				if i > 0 {
					fmt.Fprint(cmd.OutOrStdout(), ", ")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "band %d x%d", b.ID, alloc[b.ID])
			}
			fmt.Fprintln(cmd.OutOrStdout())
		}
		return nil
	},
}
