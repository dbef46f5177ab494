package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"wanderly-gateway/internal/logger"
	"wanderly-gateway/internal/planner"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
	themeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	timeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	nameStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	eventStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

const tokenEnvVar = "WANDERLY_ID_TOKEN"

type planCommander struct {
	proxyURL string
	token    string
	origin   string
	asJSON   bool
	prefs    planner.Preferences

	debug  bool
	logger *zap.Logger
}

const planLongDesc string = `Generate a single-day itinerary.

The prompt is built locally and sent to the gateway with a Firebase ID token,
taken from --token or the WANDERLY_ID_TOKEN environment variable. Grounding
sources returned by the model are listed after the plan.`

const planShortDesc string = "Generate a single-day itinerary"

func newPlanCmd() *cobra.Command {
	cmder := &planCommander{}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: planShortDesc,
		Long:  planLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}
			if cmder.token == "" {
				cmder.token = os.Getenv(tokenEnvVar)
			}
			if strings.TrimSpace(cmder.prefs.Location) == "" {
				return errors.New("--location is required")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return cmder.run(ctx, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&cmder.proxyURL, "proxy-url", "http://localhost:8080/", "Gateway URL")
	cmd.Flags().StringVar(&cmder.token, "token", "", "Firebase ID token (defaults to $"+tokenEnvVar+")")
	cmd.Flags().StringVar(&cmder.origin, "origin", "", "Origin header to present to the gateway")
	cmd.Flags().StringVar(&cmder.prefs.Location, "location", "", "Destination city or area")
	cmd.Flags().StringVar(&cmder.prefs.StartDate, "date", "", "Trip date, e.g. 2025-03-18")
	cmd.Flags().StringVar(&cmder.prefs.Likes, "likes", "", "Things the traveler enjoys")
	cmd.Flags().StringVar(&cmder.prefs.Dislikes, "dislikes", "", "Things to avoid")
	cmd.Flags().StringVar(&cmder.prefs.VisitedPlaces, "visited", "", "Places already visited")
	cmd.Flags().StringVar(&cmder.prefs.Timeframe, "timeframe", "", "Time window, e.g. \"2 PM - 8 PM\" (default all day)")
	cmd.Flags().BoolVar(&cmder.asJSON, "json", false, "Print the itinerary and citations as JSON")

	return cmd
}

func (c *planCommander) run(ctx context.Context, out io.Writer) error {
	c.logger = logger.NewWithWriters(c.debug, os.Stderr)
	defer func() { _ = c.logger.Sync() }()

	client := planner.NewClient(c.proxyURL, c.origin, c.logger)
	result, err := client.Generate(ctx, c.token, c.prefs)
	if err != nil {
		var statusErr *planner.StatusError
		if errors.As(err, &statusErr) {
			return fmt.Errorf("gateway rejected the request (%d): %s", statusErr.Code, statusErr.Body)
		}
		return err
	}

	if c.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	printResult(out, result)
	return nil
}

func printResult(out io.Writer, result *planner.Result) {
	fmt.Fprintf(out, "\n%s\n", titleStyle.Render(result.Itinerary.Title))

	for _, day := range result.Itinerary.Days {
		header := day.Theme
		if day.CalendarDate != "" {
			header = day.CalendarDate + "  " + header
		}
		fmt.Fprintf(out, "\n  %s\n", themeStyle.Render(header))

		for _, a := range day.Activities {
			fmt.Fprintf(out, "  %s  %s\n", timeStyle.Render(a.Time), nameStyle.Render(a.Name))
			if a.Address != "" {
				fmt.Fprintf(out, "      %s\n", dimStyle.Render(a.Address))
			}
			if a.Description != "" {
				fmt.Fprintf(out, "      %s\n", a.Description)
			}
			if a.TimeSensitive {
				fmt.Fprintf(out, "      %s\n", eventStyle.Render("time-sensitive: "+a.TimeSensitiveNote))
			}
		}
	}

	if len(result.Citations) > 0 {
		fmt.Fprintf(out, "\n  %s\n", themeStyle.Render("Sources"))
		for _, cite := range result.Citations {
			title := cite.Title()
			if title == "" {
				title = cite.URI()
			}
			fmt.Fprintf(out, "  - %s %s\n", title, dimStyle.Render(cite.URI()))
		}
	}

	fmt.Fprintln(out)
}
