// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/meeting-notes-engine/internal/classify"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [input file]",
	Short: "Classify a meeting's documents as ephemeral or persistent",
	Long: `Classify reads a meeting input file (the same envelope extract uses) and
reports each document's type and confidence without touching the series
registry or the notes directory.`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

func runClassify(cmd *cobra.Command, args []string) error {
	cfg := engineConfig(cmd)
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}

	input, err := readMeetingInput(args[0])
	if err != nil {
		return err
	}

	classifier := classify.New(log)
	infos := classifier.ClassifyAll(input.Documents)
	summary := classify.Summarize(infos)

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	for _, c := range summary.Classifications {
		fmt.Printf("%-50s  %-10s  %.2f\n", c.Title, c.Type, c.Confidence)
	}
	fmt.Printf("\n%d documents: %d ephemeral, %d persistent, %d unknown (avg confidence %.2f)\n",
		summary.TotalDocuments, summary.EphemeralCount, summary.PersistentCount,
		summary.UnknownCount, summary.AverageConfidence)
	return nil
}

func init() {
	classifyCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(classifyCmd)
}
