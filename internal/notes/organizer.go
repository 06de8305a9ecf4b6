// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package notes lays meeting files out on disk, one directory per ISO week,
// with YAML frontmatter carrying the meeting's identity. It also reads
// saved files back for duplicate detection and previous-occurrence
// comparison.
package notes

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.yaml.in/yaml/v3"
)

var weekDirRe = regexp.MustCompile(`^\d{4}-W\d{2}$`)

// Organizer saves and locates meeting files under the notes directory.
type Organizer struct {
	baseDir string
	log     zerolog.Logger
}

// NewOrganizer creates the notes directory if needed.
func NewOrganizer(baseDir string, log zerolog.Logger) (*Organizer, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating notes directory: %w", err)
	}
	return &Organizer{baseDir: baseDir, log: log}, nil
}

// WeekDir returns the week directory name for a date, e.g. "2026-W34".
func WeekDir(date time.Time) string {
	year, week := date.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// Filename builds the meeting filename from its start time and title.
func Filename(meetingTime time.Time, title string) string {
	stamp := meetingTime.Format("20060102_150405")
	if title == "" {
		return fmt.Sprintf("meeting_%s.md", stamp)
	}
	return fmt.Sprintf("meeting_%s_%s.md", stamp, cleanTitle(title))
}

// cleanTitle lowercases the title, drops characters unsafe in filenames,
// joins words with underscores, and caps the length.
func cleanTitle(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	clean := strings.Join(strings.Fields(b.String()), "_")
	if runes := []rune(clean); len(runes) > 50 {
		clean = string(runes[:50])
	}
	return clean
}

// FilePath returns where the meeting file belongs, creating the week
// directory.
func (o *Organizer) FilePath(meetingTime time.Time, title string) (string, error) {
	weekDir := filepath.Join(o.baseDir, WeekDir(meetingTime))
	if err := os.MkdirAll(weekDir, 0o755); err != nil {
		return "", fmt.Errorf("creating week directory: %w", err)
	}
	return filepath.Join(weekDir, Filename(meetingTime, title)), nil
}

// Save writes a meeting note with a YAML frontmatter header and returns the
// saved path. Extra metadata keys are emitted in sorted order.
func (o *Organizer) Save(content string, meetingTime time.Time, title string, metadata map[string]any) (string, error) {
	path, err := o.FilePath(meetingTime, title)
	if err != nil {
		return "", err
	}

	full, err := renderNote(content, meetingTime, title, metadata)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, []byte(full), 0o644); err != nil {
		return "", fmt.Errorf("writing meeting note: %w", err)
	}

	o.log.Info().Str("path", path).Msg("saved meeting note")
	return path, nil
}

func renderNote(content string, meetingTime time.Time, title string, metadata map[string]any) (string, error) {
	var b strings.Builder

	b.WriteString("---\n")
	fmt.Fprintf(&b, "date: %s\n", meetingTime.Format(time.RFC3339))
	if title != "" {
		fmt.Fprintf(&b, "title: %s\n", title)
	}
	fmt.Fprintf(&b, "week: %s\n", WeekDir(meetingTime))

	keys := make([]string, 0, len(metadata))
	for key := range metadata {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		entry, err := yaml.Marshal(map[string]any{key: metadata[key]})
		if err != nil {
			return "", fmt.Errorf("encoding metadata key %s: %w", key, err)
		}
		b.Write(entry)
	}

	b.WriteString("---\n\n")

	if title != "" {
		fmt.Fprintf(&b, "# %s\n\n", title)
	}
	b.WriteString(content)

	return b.String(), nil
}

// ListWeeks returns the existing week directory names, sorted.
func (o *Organizer) ListWeeks() []string {
	entries, err := os.ReadDir(o.baseDir)
	if err != nil {
		return nil
	}

	var weeks []string
	for _, entry := range entries {
		if entry.IsDir() && weekDirRe.MatchString(entry.Name()) {
			weeks = append(weeks, entry.Name())
		}
	}
	sort.Strings(weeks)
	return weeks
}

// ListMeetingsInWeek returns the meeting file paths in one week directory,
// sorted by name.
func (o *Organizer) ListMeetingsInWeek(week string) []string {
	weekDir := filepath.Join(o.baseDir, week)
	entries, err := os.ReadDir(weekDir)
	if err != nil {
		return nil
	}

	var meetings []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".md") {
			meetings = append(meetings, filepath.Join(weekDir, entry.Name()))
		}
	}
	sort.Strings(meetings)
	return meetings
}

// AlreadyProcessed reports whether a meeting with this ID was already saved
// covering at least the given document links. A saved file with the same or
// a superset of the links counts as processed; new or different links mean
// the meeting should be reprocessed.
func (o *Organizer) AlreadyProcessed(meetingID string, docsLinks []string) bool {
	path := o.findMeetingFile(meetingID)
	if path == "" {
		return false
	}

	meta := readFileMetadata(path)
	if meta == nil {
		return false
	}

	existing := make(map[string]bool)
	switch links := meta["docs_links"].(type) {
	case string:
		existing[links] = true
	case []any:
		for _, link := range links {
			if s, ok := link.(string); ok {
				existing[s] = true
			}
		}
	}

	for _, link := range docsLinks {
		if !existing[link] {
			o.log.Info().Str("meeting", meetingID).Msg("meeting has new or different docs, will reprocess")
			return false
		}
	}

	o.log.Info().Str("meeting", meetingID).Msg("meeting already processed with same docs")
	return true
}

// ProcessedMeetingIDs returns the IDs of every saved meeting.
func (o *Organizer) ProcessedMeetingIDs() map[string]bool {
	ids := make(map[string]bool)
	for _, week := range o.ListWeeks() {
		for _, path := range o.ListMeetingsInWeek(week) {
			meta := readFileMetadata(path)
			if meta == nil {
				continue
			}
			if id, ok := meta["meeting_id"].(string); ok && id != "" {
				ids[id] = true
			}
		}
	}
	return ids
}

// findMeetingFile scans week directories for the file whose frontmatter
// carries the meeting ID.
func (o *Organizer) findMeetingFile(meetingID string) string {
	for _, week := range o.ListWeeks() {
		for _, path := range o.ListMeetingsInWeek(week) {
			meta := readFileMetadata(path)
			if meta == nil {
				continue
			}
			if id, ok := meta["meeting_id"].(string); ok && id == meetingID {
				return path
			}
		}
	}
	return ""
}

// readFileMetadata parses a saved file's YAML frontmatter. Any failure
// yields nil.
func readFileMetadata(path string) map[string]any {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	content := string(data)
	if !strings.HasPrefix(content, "---\n") {
		return nil
	}
	end := strings.Index(content[4:], "\n---\n")
	if end < 0 {
		return nil
	}

	var meta map[string]any
	if err := yaml.Unmarshal([]byte(content[4:4+end]), &meta); err != nil {
		return nil
	}
	return meta
}
