// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notes

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/meeting-notes-engine/internal/logging"
)

func newTestOrganizer(t *testing.T) *Organizer {
	t.Helper()
	o, err := NewOrganizer(t.TempDir(), logging.Nop())
	require.NoError(t, err)
	return o
}

func TestWeekDir(t *testing.T) {
	// 2026-08-24 is a Monday in ISO week 35.
	assert.Equal(t, "2026-W35", WeekDir(time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)))
	// Jan 1 2027 falls in ISO week 53 of 2026.
	assert.Equal(t, "2026-W53", WeekDir(time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestFilename(t *testing.T) {
	when := time.Date(2026, 8, 24, 9, 30, 15, 0, time.UTC)

	assert.Equal(t, "meeting_20260824_093015_team_standup.md", Filename(when, "Team Standup"))
	assert.Equal(t, "meeting_20260824_093015.md", Filename(when, ""))
	assert.Equal(t, "meeting_20260824_093015_q3_budget_review.md", Filename(when, "Q3: Budget & Review!"))
}

func TestCleanTitleLengthCap(t *testing.T) {
	long := strings.Repeat("word ", 30)
	clean := cleanTitle(long)
	assert.LessOrEqual(t, len([]rune(clean)), 50)
	assert.NotContains(t, clean, " ")
}

func TestSaveWritesFrontmatterAndBody(t *testing.T) {
	o := newTestOrganizer(t)
	when := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)

	path, err := o.Save("## Document 1\n**Title:** Agenda\n\nContent here.\n", when, "Team Standup", map[string]any{
		"meeting_id": "evt-123",
		"docs_links": []string{"https://docs.example.com/d/1"},
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(o.baseDir, "2026-W35", "meeting_20260824_090000_team_standup.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)

	assert.True(t, strings.HasPrefix(text, "---\n"))
	assert.Contains(t, text, "date: 2026-08-24T09:00:00Z\n")
	assert.Contains(t, text, "title: Team Standup\n")
	assert.Contains(t, text, "week: 2026-W35\n")
	assert.Contains(t, text, "meeting_id: evt-123\n")
	assert.Contains(t, text, "# Team Standup\n")
	assert.Contains(t, text, "Content here.")
}

func TestListWeeksAndMeetings(t *testing.T) {
	o := newTestOrganizer(t)

	_, err := o.Save("a", time.Date(2026, 8, 17, 9, 0, 0, 0, time.UTC), "One", nil)
	require.NoError(t, err)
	_, err = o.Save("b", time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC), "Two", nil)
	require.NoError(t, err)

	// A stray non-week directory is ignored.
	require.NoError(t, os.MkdirAll(filepath.Join(o.baseDir, "scratch"), 0o755))

	weeks := o.ListWeeks()
	assert.Equal(t, []string{"2026-W34", "2026-W35"}, weeks)

	meetings := o.ListMeetingsInWeek("2026-W34")
	require.Len(t, meetings, 1)
	assert.Contains(t, meetings[0], "meeting_20260817_090000_one.md")

	assert.Empty(t, o.ListMeetingsInWeek("2026-W01"))
}

func TestAlreadyProcessed(t *testing.T) {
	o := newTestOrganizer(t)
	when := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)

	links := []string{"https://docs.example.com/d/1", "https://docs.example.com/d/2"}
	_, err := o.Save("body", when, "Standup", map[string]any{
		"meeting_id": "evt-123",
		"docs_links": links,
	})
	require.NoError(t, err)

	assert.True(t, o.AlreadyProcessed("evt-123", links))
	assert.True(t, o.AlreadyProcessed("evt-123", links[:1]), "subset of saved docs counts as processed")
	assert.False(t, o.AlreadyProcessed("evt-123", append(links, "https://docs.example.com/d/3")),
		"new doc forces reprocessing")
	assert.False(t, o.AlreadyProcessed("evt-999", links))
}

func TestProcessedMeetingIDs(t *testing.T) {
	o := newTestOrganizer(t)

	_, err := o.Save("a", time.Date(2026, 8, 17, 9, 0, 0, 0, time.UTC), "One", map[string]any{"meeting_id": "evt-1"})
	require.NoError(t, err)
	_, err = o.Save("b", time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC), "Two", map[string]any{"meeting_id": "evt-2"})
	require.NoError(t, err)

	ids := o.ProcessedMeetingIDs()
	assert.Equal(t, map[string]bool{"evt-1": true, "evt-2": true}, ids)
}
