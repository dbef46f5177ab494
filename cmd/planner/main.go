package main

import (
	"os"

	"github.com/spf13/cobra"
)

const plannerLongDesc string = `Planner drafts single-day Wanderly itineraries through the Gemini gateway.

Example:
  planner plan --location Porto --date 2025-03-18 --likes "wine, tiles"
  planner plan --location Lisbon --timeframe "2 PM - 8 PM" --json`

const plannerShortDesc string = "Wanderly itinerary planner"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "planner",
		Short:        plannerShortDesc,
		Long:         plannerLongDesc,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")

	cmd.AddCommand(newPlanCmd())

	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
