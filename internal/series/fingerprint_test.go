// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package series

import (
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/meeting-notes-engine/pkg/types"
)

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"empty", "", ""},
		{"lowercases", "Platform Architecture", "platform architecture"},
		{"strips week number", "Team Standup Week 29", "team"},
		{"strips short week", "Team Standup W30", "team"},
		{"strips iso date", "Roadmap 2026-08-24", "roadmap"},
		{"strips slash date", "Roadmap 8/24/26", "roadmap"},
		{"strips sprint number", "Alpha Sprint 14 Planning", "alpha"},
		{"strips issue number", "Triage #123", "triage"},
		{"strips version", "Release v2.1 Readiness", "release readiness"},
		{"strips time", "Check-in 09:30 am", "checkin"},
		{"strips noise words", "Weekly Marketing Sync Meeting", "marketing"},
		{"strips punctuation", "Q3: Budget & Hiring!", "q3 budget hiring"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeTitle(tt.title); got != tt.want {
				t.Errorf("NormalizeTitle(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestTimePattern(t *testing.T) {
	// 2026-08-24 is a Monday.
	meta := types.MeetingMetadata{
		StartTime: time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC),
	}
	if got := TimePattern(meta); got != "MON-09:00" {
		t.Errorf("TimePattern = %q, want MON-09:00", got)
	}
}

func TestAttendeeFingerprintOrderAndCaseIndependent(t *testing.T) {
	a := AttendeeFingerprint([]string{"alice@corp.com", "Bob@corp.com"})
	b := AttendeeFingerprint([]string{"BOB@corp.com", "alice@corp.com"})
	if a != b {
		t.Errorf("fingerprints differ across order/case: %q vs %q", a, b)
	}
	if len(a) != 8 {
		t.Errorf("fingerprint length = %d, want 8", len(a))
	}
}

func TestAttendeeFingerprintEmpty(t *testing.T) {
	if got := AttendeeFingerprint(nil); got != "" {
		t.Errorf("AttendeeFingerprint(nil) = %q, want empty", got)
	}
	if got := AttendeeFingerprint([]string{""}); got != "" {
		t.Errorf("AttendeeFingerprint of blanks = %q, want empty", got)
	}
}

func TestSeriesIDShape(t *testing.T) {
	fp := Fingerprint{
		NormalizedTitle:     "platform architecture design forum",
		Organizer:           "alexandra.longname@corp.com",
		TimePattern:         "MON-09:00",
		AttendeeFingerprint: "abcd1234",
	}
	id := SeriesID(fp)

	if !strings.HasPrefix(id, "platform_architectur_alexandra._mon-0900_") {
		t.Errorf("series ID = %q", id)
	}
	parts := strings.Split(id, "_")
	suffix := parts[len(parts)-1]
	if len(suffix) != 6 {
		t.Errorf("hash suffix = %q, want 6 hex chars", suffix)
	}
}

func TestSeriesIDEmptyTitleFallback(t *testing.T) {
	id := SeriesID(Fingerprint{Organizer: "bob", TimePattern: "TUE-14:00"})
	if !strings.HasPrefix(id, "meeting_bob_tue-1400_") {
		t.Errorf("series ID = %q", id)
	}
}

func TestSeriesIDStable(t *testing.T) {
	fp := Fingerprint{NormalizedTitle: "team", Organizer: "a@b.c", TimePattern: "MON-09:00"}
	if SeriesID(fp) != SeriesID(fp) {
		t.Error("SeriesID not deterministic")
	}
}

func TestTitleSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "team alpha", "team alpha", 1.0},
		{"disjoint", "team alpha", "budget review", 0.0},
		{"partial", "team alpha planning", "team alpha", 2.0 / 3.0},
		{"both empty", "", "", 1.0},
		{"one empty", "team", "", 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TitleSimilarity(tt.a, tt.b); got != tt.want {
				t.Errorf("TitleSimilarity(%q, %q) = %f, want %f", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
