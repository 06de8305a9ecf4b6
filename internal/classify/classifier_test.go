// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"strings"
	"testing"

	"github.com/pdiddy/meeting-notes-engine/internal/logging"
	"github.com/pdiddy/meeting-notes-engine/pkg/types"
)

func TestClassifyTitles(t *testing.T) {
	c := New(logging.Nop())

	tests := []struct {
		name  string
		title string
		want  types.DocumentType
	}{
		{"gemini notes", "Notes by Gemini", types.DocEphemeral},
		{"transcript", "Meeting Transcript 2026-08-24", types.DocEphemeral},
		{"recording", "Team Sync Recording", types.DocEphemeral},
		{"dated notes", "2026-08-24 Weekly Notes", types.DocEphemeral},
		{"session notes", "Session Notes", types.DocEphemeral},
		{"project plan", "Project Plan Q3", types.DocPersistent},
		{"roadmap", "Platform Roadmap", types.DocPersistent},
		{"action items", "Action Items Tracker", types.DocPersistent},
		{"design doc", "Design Doc: Auth Service", types.DocPersistent},
		{"sprint backlog", "Sprint Backlog", types.DocPersistent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, confidence := c.Classify(tt.title, "", "", nil)
			if got != tt.want {
				t.Errorf("Classify(%q) = %s, want %s", tt.title, got, tt.want)
			}
			if confidence <= 0 || confidence > 1 {
				t.Errorf("confidence = %f, want in (0, 1]", confidence)
			}
		})
	}
}

func TestClassifyNoSignalIsUnknown(t *testing.T) {
	c := New(logging.Nop())
	got, confidence := c.Classify("Grocery List", "", "", nil)
	if got != types.DocUnknown {
		t.Errorf("type = %s, want unknown", got)
	}
	if confidence != 0.0 {
		t.Errorf("confidence = %f, want 0.0", confidence)
	}
}

func TestClassifyContentIndicators(t *testing.T) {
	c := New(logging.Nop())

	got, _ := c.Classify("Untitled", "", "Transcript of meeting. Meeting started at 09:00. Participants joined.", nil)
	if got != types.DocEphemeral {
		t.Errorf("transcript content classified as %s, want ephemeral", got)
	}

	got, _ = c.Classify("Untitled", "", "Last updated yesterday. Version history below. Document owner: Alice.", nil)
	if got != types.DocPersistent {
		t.Errorf("versioned content classified as %s, want persistent", got)
	}
}

func TestClassifyURLHints(t *testing.T) {
	c := New(logging.Nop())

	got, _ := c.Classify("Untitled", "https://docs.google.com/document/d/abc/meet_tnfm_calendar", "", nil)
	if got != types.DocEphemeral {
		t.Errorf("calendar-notes URL classified as %s, want ephemeral", got)
	}

	got, _ = c.Classify("Untitled", "https://docs.google.com/document/d/abc/edit", "", nil)
	if got != types.DocPersistent {
		t.Errorf("editable-doc URL classified as %s, want persistent", got)
	}
}

func TestClassifyMetadataHints(t *testing.T) {
	c := New(logging.Nop())

	got, _ := c.Classify("Untitled", "", "", map[string]any{"shared": true})
	if got != types.DocPersistent {
		t.Errorf("shared metadata classified as %s, want persistent", got)
	}

	got, _ = c.Classify("Untitled", "", "", map[string]any{"content": strings.Repeat("x", 6000)})
	if got != types.DocEphemeral {
		t.Errorf("long-content metadata classified as %s, want ephemeral", got)
	}
}

func TestClassifyAllIndexesAndFallbackTitles(t *testing.T) {
	c := New(logging.Nop())
	infos := c.ClassifyAll([]types.Document{
		{Title: "Meeting Transcript"},
		{Title: ""},
		{Title: "Project Roadmap"},
	})

	if len(infos) != 3 {
		t.Fatalf("len(infos) = %d, want 3", len(infos))
	}
	for i, info := range infos {
		if info.Index != i {
			t.Errorf("info %d index = %d", i, info.Index)
		}
	}
	if infos[1].Title != "Document 2" {
		t.Errorf("fallback title = %q, want \"Document 2\"", infos[1].Title)
	}
	if infos[0].Type != types.DocEphemeral || infos[2].Type != types.DocPersistent {
		t.Errorf("types = %s, %s", infos[0].Type, infos[2].Type)
	}
}

func TestSummarize(t *testing.T) {
	docs := []types.DocumentInfo{
		{Title: "a", Type: types.DocEphemeral, Confidence: 0.9},
		{Title: "b", Type: types.DocPersistent, Confidence: 0.7},
		{Title: "c", Type: types.DocUnknown, Confidence: 0.0},
		{Title: "d", Type: types.DocEphemeral, Confidence: 0.8},
	}

	summary := Summarize(docs)
	if summary.TotalDocuments != 4 || summary.EphemeralCount != 2 ||
		summary.PersistentCount != 1 || summary.UnknownCount != 1 {
		t.Errorf("counts wrong: %+v", summary)
	}
	if want := (0.9 + 0.7 + 0.0 + 0.8) / 4; summary.AverageConfidence != want {
		t.Errorf("average confidence = %f, want %f", summary.AverageConfidence, want)
	}
	if len(summary.Classifications) != 4 || summary.Classifications[0].Title != "a" {
		t.Errorf("classifications wrong: %+v", summary.Classifications)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)
	if summary.TotalDocuments != 0 || summary.AverageConfidence != 0.0 {
		t.Errorf("empty summary wrong: %+v", summary)
	}
}
