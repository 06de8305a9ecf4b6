// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/meeting-notes-engine/internal/contentcache"
	"github.com/pdiddy/meeting-notes-engine/internal/extract"
	"github.com/pdiddy/meeting-notes-engine/internal/notes"
	"github.com/pdiddy/meeting-notes-engine/internal/series"
	"github.com/pdiddy/meeting-notes-engine/internal/signature"
	"github.com/pdiddy/meeting-notes-engine/pkg/types"
)

// meetingInput is the on-disk input envelope for one meeting occurrence.
type meetingInput struct {
	Meeting   types.MeetingMetadata `json:"meeting" yaml:"meeting"`
	Documents []types.Document      `json:"documents" yaml:"documents"`
}

var extractCmd = &cobra.Command{
	Use:   "extract [input file]",
	Short: "Filter a meeting's documents down to genuinely new content",
	Long: `Extract reads one meeting occurrence (metadata plus documents) from a
YAML or JSON input file, matches it to its recurring series, and keeps only
the content that is new relative to the previous occurrence. The first
occurrence of a series keeps everything.

With --save the filtered result is written into the notes directory as a
markdown file with YAML frontmatter, registered with the series, and its
content signature cached for future comparisons.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := engineConfig(cmd)
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}

	input, err := readMeetingInput(args[0])
	if err != nil {
		return err
	}

	tracker, err := series.NewTracker(cfg.Series, log)
	if err != nil {
		return err
	}
	defer tracker.Close()

	force, _ := cmd.Flags().GetBool("force")
	organizer, err := notes.NewOrganizer(cfg.NotesDir, log)
	if err != nil {
		return err
	}

	if !force && organizer.AlreadyProcessed(input.Meeting.ID, documentURLs(input.Documents)) {
		fmt.Println("Meeting already processed with the same documents; use --force to reprocess.")
		return nil
	}

	extractor := extract.New(cfg.Extract, tracker, log)
	result, err := extractor.NewContentOnly(input.Meeting, input.Documents)
	if err != nil {
		return err
	}

	save, _ := cmd.Flags().GetBool("save")
	if save {
		path, err := saveFilteredMeeting(cfg, log, organizer, tracker, input.Meeting, result)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Saved meeting note: %s\n", path)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	printFilteringResult(result)
	return nil
}

// saveFilteredMeeting writes the filtered content to the notes tree,
// registers the file with the series, and caches the occurrence's content
// signature.
func saveFilteredMeeting(cfg types.EngineConfig, log zerolog.Logger, organizer *notes.Organizer, tracker *series.Tracker, meta types.MeetingMetadata, result types.FilteringResult) (string, error) {
	body := renderMeetingBody(meta, result)

	path, err := organizer.Save(body, meta.StartTime, meta.Title, map[string]any{
		"meeting_id": meta.ID,
		"series_id":  result.SeriesID,
		"docs_links": documentURLsFromResult(result),
	})
	if err != nil {
		return "", err
	}

	if err := tracker.AddMeetingFile(result.SeriesID, path); err != nil {
		return "", err
	}

	cache, err := contentcache.New(cfg.Cache, log)
	if err != nil {
		return "", err
	}
	sig := signature.Build(meta.ID, body, meta.StartTime.Format("2006-01-02T15:04:05Z07:00"))
	if err := cache.Store(result.SeriesID, meta.StartTime.Format("2006-01-02"), sig); err != nil {
		return "", err
	}

	return path, nil
}

// renderMeetingBody lays the filtered documents out in the saved-file
// format: a preamble with the meeting identity, then one "## Document N"
// block per retained document.
func renderMeetingBody(meta types.MeetingMetadata, result types.FilteringResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "**Date:** %s\n", meta.StartTime.Format("2006-01-02"))
	fmt.Fprintf(&b, "**Organizer:** %s\n", meta.Organizer)
	if len(meta.Attendees) > 0 {
		fmt.Fprintf(&b, "**Attendees:** %s\n", strings.Join(meta.Attendees, ", "))
	}

	for i, doc := range result.Documents {
		fmt.Fprintf(&b, "\n## Document %d\n", i+1)
		fmt.Fprintf(&b, "**Title:** %s\n", doc.Title)
		if doc.OriginalURL != "" {
			fmt.Fprintf(&b, "[link](%s)\n", doc.OriginalURL)
		}
		fmt.Fprintf(&b, "\n%s\n", doc.FilteredContent)
	}

	return b.String()
}

func printFilteringResult(result types.FilteringResult) {
	fmt.Printf("Series: %s\n", result.SeriesID)
	if result.PreviousMeetingPath != "" {
		fmt.Printf("Compared against: %s\n", result.PreviousMeetingPath)
	} else {
		fmt.Println("First meeting in series")
	}
	fmt.Printf("New content: %v\n", result.HasNewContent)
	fmt.Printf("Words: %d of %d kept (%.1f%% reduction)\n",
		result.FilteredWordCount, result.OriginalWordCount, result.ReductionPercent)

	for _, doc := range result.Documents {
		fmt.Printf("  - %s [%s] %d words\n", doc.Title, doc.Summary.ChangeType, doc.Summary.TotalWords)
	}
}

// readMeetingInput decodes the input envelope, dispatching on extension.
func readMeetingInput(path string) (meetingInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return meetingInput{}, fmt.Errorf("reading input file: %w", err)
	}

	var input meetingInput
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &input); err != nil {
			return meetingInput{}, fmt.Errorf("parsing input JSON: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &input); err != nil {
			return meetingInput{}, fmt.Errorf("parsing input YAML: %w", err)
		}
	}

	if input.Meeting.ID == "" {
		return meetingInput{}, fmt.Errorf("input file %s has no meeting id", path)
	}
	return input, nil
}

func documentURLs(documents []types.Document) []string {
	var urls []string
	for _, doc := range documents {
		if doc.URL != "" {
			urls = append(urls, doc.URL)
		}
	}
	return urls
}

func documentURLsFromResult(result types.FilteringResult) []string {
	var urls []string
	for _, doc := range result.Documents {
		if doc.OriginalURL != "" {
			urls = append(urls, doc.OriginalURL)
		}
	}
	return urls
}

func init() {
	extractCmd.Flags().Bool("save", false, "save the filtered result into the notes directory")
	extractCmd.Flags().Bool("force", false, "reprocess even if the meeting was already saved")
	extractCmd.Flags().Bool("json", false, "output the filtering result as JSON")

	rootCmd.AddCommand(extractCmd)
}
