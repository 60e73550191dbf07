package command

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile-ratings",
	Short: "Recompute every destination's average rating",
	Long: `Recompute averageRating for every destination from its ratings.
Use it after a recompute failed at write time or after editing ratings
directly in the database.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.close()

		report, err := rt.buildServices().ratings.ReconcileAll(cmd.Context())
		if err != nil {
			return err
		}
		rt.log.WithFields(logrus.Fields{
			"checked": report.Checked,
			"failed":  report.Failed,
		}).Info("ratings reconciled")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reconcileCmd)
}
