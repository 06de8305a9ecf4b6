// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/meeting-notes-engine/internal/series"
)

var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "Inspect tracked meeting series",
	Long: `Series manages the registry of recurring meetings. Use subcommands to
list tracked series or show the files recorded for one series.`,
}

var seriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tracked meeting series",
	RunE:  runSeriesList,
}

func runSeriesList(cmd *cobra.Command, args []string) error {
	cfg := engineConfig(cmd)
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}

	tracker, err := series.NewTracker(cfg.Series, log)
	if err != nil {
		return err
	}
	defer tracker.Close()

	summary := tracker.Summarize()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	if summary.TotalSeries == 0 {
		fmt.Println("No meeting series tracked yet.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-40s  %-20s  %-10s  %-8s  %s\n",
		"Series", "Organizer", "Slot", "Meetings", "Last seen")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))
	for _, s := range summary.Series {
		id := s.SeriesID
		if len(id) > 40 {
			id = id[:37] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-40s  %-20s  %-10s  %-8d  %s\n",
			id, s.Organizer, s.TimePattern, s.MeetingCount, s.LastSeen)
	}
	fmt.Fprintf(os.Stdout, "\n%d series\n", summary.TotalSeries)
	return nil
}

var seriesShowCmd = &cobra.Command{
	Use:   "show [series id]",
	Short: "Show the meeting files recorded for one series",
	Args:  cobra.ExactArgs(1),
	RunE:  runSeriesShow,
}

func runSeriesShow(cmd *cobra.Command, args []string) error {
	cfg := engineConfig(cmd)
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}

	tracker, err := series.NewTracker(cfg.Series, log)
	if err != nil {
		return err
	}
	defer tracker.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	meetings := tracker.SeriesMeetings(args[0], limit)
	if len(meetings) == 0 {
		fmt.Println("No meeting files found for this series.")
		return nil
	}

	for _, path := range meetings {
		fmt.Println(path)
	}
	return nil
}

func init() {
	seriesListCmd.Flags().Bool("json", false, "output as JSON")
	seriesShowCmd.Flags().Int("limit", 0, "only the most recent N meetings (0 = all)")

	seriesCmd.AddCommand(seriesListCmd)
	seriesCmd.AddCommand(seriesShowCmd)

	rootCmd.AddCommand(seriesCmd)
}
