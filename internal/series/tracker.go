// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package series

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/meeting-notes-engine/pkg/types"
)

// Tracker matches meeting occurrences to recurring series and maintains the
// persisted registry.
type Tracker struct {
	notesDir        string
	titleSimilarity float64
	registry        *registry
	log             zerolog.Logger
}

// NewTracker opens (or creates) the series registry under cfg.NotesDir.
func NewTracker(cfg types.SeriesConfig, log zerolog.Logger) (*Tracker, error) {
	threshold := cfg.TitleSimilarity
	if threshold <= 0 {
		threshold = 0.8
	}

	reg, err := openRegistry(cfg.NotesDir)
	if err != nil {
		return nil, err
	}

	return &Tracker{
		notesDir:        cfg.NotesDir,
		titleSimilarity: threshold,
		registry:        reg,
		log:             log,
	}, nil
}

// Close releases the registry database.
func (t *Tracker) Close() error {
	return t.registry.close()
}

// Identify returns the ID of the existing series this occurrence belongs
// to, updating the series' last-seen timestamp, or "" when no series
// matches. Candidates are scanned in registry order and the first match
// wins.
func (t *Tracker) Identify(meta types.MeetingMetadata) (string, error) {
	fp := NewFingerprint(meta)

	for _, id := range t.registry.order {
		s := t.registry.series[id]
		if !matches(fp, *s, t.titleSimilarity) {
			continue
		}

		s.LastSeen = meta.StartTime.Format(time.RFC3339)
		if err := t.registry.save(); err != nil {
			return "", err
		}
		return id, nil
	}

	return "", nil
}

// CreateSeries registers a new series for the occurrence and returns its ID.
// The meeting file list starts empty; AddMeetingFile fills it once the file
// is saved.
func (t *Tracker) CreateSeries(meta types.MeetingMetadata) (string, error) {
	fp := NewFingerprint(meta)
	seen := meta.StartTime.Format(time.RFC3339)

	s := &types.MeetingSeries{
		SeriesID:        SeriesID(fp),
		NormalizedTitle: fp.NormalizedTitle,
		Organizer:       fp.Organizer,
		TimePattern:     fp.TimePattern,
		AttendeePattern: normalizeAttendees(meta.Attendees),
		FirstSeen:       seen,
		LastSeen:        seen,
		MeetingCount:    1,
		Confidence:      1.0,
	}

	t.registry.put(s)
	if err := t.registry.save(); err != nil {
		return "", err
	}

	t.log.Info().Str("series", s.SeriesID).Str("title", fp.RawTitle).Msg("created new meeting series")
	return s.SeriesID, nil
}

// AddMeetingFile appends a saved meeting file to the series, converting
// absolute paths to notes-relative form. Duplicate paths are ignored.
func (t *Tracker) AddMeetingFile(seriesID, meetingPath string) error {
	s, ok := t.registry.series[seriesID]
	if !ok {
		t.log.Error().Str("series", seriesID).Msg("series not found")
		return nil
	}

	relative := meetingPath
	if filepath.IsAbs(meetingPath) {
		rel, err := filepath.Rel(t.notesDir, meetingPath)
		if err != nil || strings.HasPrefix(rel, "..") {
			t.log.Error().Str("path", meetingPath).Msg("meeting file is not within notes directory")
			return nil
		}
		relative = rel
	}

	for _, existing := range s.Meetings {
		if existing == relative {
			return nil
		}
	}

	s.Meetings = append(s.Meetings, relative)
	s.MeetingCount = len(s.Meetings)
	s.LastSeen = time.Now().Format(time.RFC3339)

	if err := t.registry.save(); err != nil {
		return err
	}
	t.log.Debug().Str("series", seriesID).Str("file", relative).Msg("added meeting to series")
	return nil
}

// LatestMeeting returns the absolute path of the most recent meeting file
// in the series, or "" when the series has no files on disk.
func (t *Tracker) LatestMeeting(seriesID string) string {
	s, ok := t.registry.series[seriesID]
	if !ok || len(s.Meetings) == 0 {
		return ""
	}

	latest := filepath.Join(t.notesDir, s.Meetings[len(s.Meetings)-1])
	if _, err := os.Stat(latest); err != nil {
		t.log.Warn().Str("path", latest).Msg("latest meeting file not found")
		return ""
	}
	return latest
}

// SeriesMeetings returns absolute paths of the series' meeting files that
// still exist, oldest first, keeping only the most recent limit entries
// when limit > 0.
func (t *Tracker) SeriesMeetings(seriesID string, limit int) []string {
	s, ok := t.registry.series[seriesID]
	if !ok {
		return nil
	}

	meetings := s.Meetings
	if limit > 0 && len(meetings) > limit {
		meetings = meetings[len(meetings)-limit:]
	}

	var existing []string
	for _, m := range meetings {
		path := filepath.Join(t.notesDir, m)
		if _, err := os.Stat(path); err == nil {
			existing = append(existing, path)
		}
	}
	return existing
}

// AllSeries returns a snapshot of every tracked series in registry order.
func (t *Tracker) AllSeries() []types.MeetingSeries {
	out := make([]types.MeetingSeries, 0, len(t.registry.order))
	for _, id := range t.registry.order {
		out = append(out, *t.registry.series[id])
	}
	return out
}

// SeriesSummary is one line of a registry summary.
type SeriesSummary struct {
	SeriesID     string `json:"series_id"`
	Title        string `json:"title"`
	Organizer    string `json:"organizer"`
	MeetingCount int    `json:"meeting_count"`
	LastSeen     string `json:"last_seen"`
	TimePattern  string `json:"time_pattern"`
}

// Summary describes the whole registry.
type Summary struct {
	TotalSeries int             `json:"total_series"`
	Series      []SeriesSummary `json:"series"`
}

// Summarize renders the registry for display.
func (t *Tracker) Summarize() Summary {
	summary := Summary{TotalSeries: len(t.registry.order)}
	for _, id := range t.registry.order {
		s := t.registry.series[id]
		summary.Series = append(summary.Series, SeriesSummary{
			SeriesID:     s.SeriesID,
			Title:        s.NormalizedTitle,
			Organizer:    s.Organizer,
			MeetingCount: s.MeetingCount,
			LastSeen:     s.LastSeen,
			TimePattern:  s.TimePattern,
		})
	}
	return summary
}
