package cmd

import (
	"github.com/fbz-tec/skytrack/core/analytics"
	"github.com/spf13/cobra"
)

var demoCmd = &cobra.Command{
	Use:   "demo-flight",
	Short: "Insert a scheduled demo flight departing today",
	Long: `Inserts flight ` + analytics.DemoFlightNo + ` (airline 1, airport 1 to airport 2, departing
today) so the next report run reflects a live change.`,
	Example: `  skytrack demo-flight
  skytrack demo-flight --sqlite snapshot/skytrack.db`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		_, err = analytics.AddDemoFlight(cmd.Context(), store)
		return err
	},
}
