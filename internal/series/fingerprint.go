// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package series groups meeting occurrences into recurring series. Matching
// works on fingerprints built from normalized title, organizer, weekly time
// slot, and attendee set; the registry of known series persists in SQLite
// under the notes directory.
package series

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/pdiddy/meeting-notes-engine/pkg/types"
)

// titleNoiseWords are scheduling words that carry no series identity.
var titleNoiseWords = map[string]bool{
	"weekly": true, "daily": true, "monthly": true, "meeting": true,
	"sync": true, "standup": true, "demo": true, "review": true,
	"planning": true, "retrospective": true, "retro": true,
	"sprint": true, "scrum": true, "session": true, "call": true,
	"discussion": true,
}

// titleCleanupRes strip dates, counters, and times so that "Standup Week 29"
// and "Standup Week 30" normalize identically.
var titleCleanupRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b\d{4}[-/]\d{2}[-/]\d{2}\b`),
	regexp.MustCompile(`(?i)\b\d{1,2}[-/]\d{1,2}[-/]\d{2,4}\b`),
	regexp.MustCompile(`(?i)\bweek\s+\d+\b`),
	regexp.MustCompile(`(?i)\bw\d+\b`),
	regexp.MustCompile(`(?i)\bsprint\s+\d+\b`),
	regexp.MustCompile(`(?i)\b#\d+\b`),
	regexp.MustCompile(`(?i)\bv\d+\.\d+\b`),
	regexp.MustCompile(`(?i)\b\d{1,2}:\d{2}\s*(?:am|pm)?\b`),
}

var (
	nonWordSpaceRe = regexp.MustCompile(`[^\w\s]`)
	nonWordRe      = regexp.MustCompile(`\W`)
	spaceRunRe     = regexp.MustCompile(`\s+`)
)

// Fingerprint is the matchable identity of one meeting occurrence.
type Fingerprint struct {
	NormalizedTitle     string
	Organizer           string
	TimePattern         string
	AttendeeFingerprint string
	RawTitle            string
}

// NewFingerprint derives the fingerprint from meeting metadata.
func NewFingerprint(meta types.MeetingMetadata) Fingerprint {
	return Fingerprint{
		NormalizedTitle:     NormalizeTitle(meta.Title),
		Organizer:           meta.Organizer,
		TimePattern:         TimePattern(meta),
		AttendeeFingerprint: AttendeeFingerprint(meta.Attendees),
		RawTitle:            meta.Title,
	}
}

// NormalizeTitle lowercases the title, strips date/counter/time patterns and
// scheduling noise words, and collapses the remainder to single-spaced
// word characters.
func NormalizeTitle(title string) string {
	if title == "" {
		return ""
	}

	normalized := strings.ToLower(title)
	for _, re := range titleCleanupRes {
		normalized = re.ReplaceAllString(normalized, "")
	}

	var kept []string
	for _, word := range strings.Fields(normalized) {
		if !titleNoiseWords[word] {
			kept = append(kept, word)
		}
	}

	normalized = strings.Join(kept, " ")
	normalized = nonWordSpaceRe.ReplaceAllString(normalized, "")
	normalized = spaceRunRe.ReplaceAllString(normalized, " ")
	return strings.TrimSpace(normalized)
}

// TimePattern renders the occurrence's weekly slot, e.g. "MON-09:00".
func TimePattern(meta types.MeetingMetadata) string {
	return fmt.Sprintf("%s-%s",
		strings.ToUpper(meta.StartTime.Format("Mon")),
		meta.StartTime.Format("15:04"))
}

// AttendeeFingerprint hashes the sorted, lowercased attendee list into a
// short stable token. Order and case of the input never matter.
func AttendeeFingerprint(attendees []string) string {
	normalized := normalizeAttendees(attendees)
	if len(normalized) == 0 {
		return ""
	}
	sum := sha256.Sum256([]byte(strings.Join(normalized, "|")))
	return hex.EncodeToString(sum[:])[:8]
}

// normalizeAttendees lowercases, drops empties, and sorts.
func normalizeAttendees(attendees []string) []string {
	var normalized []string
	for _, a := range attendees {
		if a != "" {
			normalized = append(normalized, strings.ToLower(a))
		}
	}
	sort.Strings(normalized)
	return normalized
}

// SeriesID builds a readable, unique series identifier:
// title prefix, organizer local part, time slot, and a short hash of the
// full fingerprint for uniqueness.
func SeriesID(fp Fingerprint) string {
	titlePart := fp.NormalizedTitle
	if titlePart == "" {
		titlePart = "meeting"
	}
	if runes := []rune(titlePart); len(runes) > 20 {
		titlePart = string(runes[:20])
	}
	titlePart = nonWordRe.ReplaceAllString(titlePart, "_")

	organizerPart := fp.Organizer
	if local, _, ok := strings.Cut(organizerPart, "@"); ok {
		organizerPart = local
	}
	if runes := []rune(organizerPart); len(runes) > 10 {
		organizerPart = string(runes[:10])
	}

	timePart := strings.ReplaceAll(strings.ToLower(fp.TimePattern), ":", "")

	full := fmt.Sprintf("%s:%s:%s:%s",
		fp.NormalizedTitle, fp.Organizer, fp.TimePattern, fp.AttendeeFingerprint)
	sum := sha256.Sum256([]byte(full))
	suffix := hex.EncodeToString(sum[:])[:6]

	return fmt.Sprintf("%s_%s_%s_%s", titlePart, organizerPart, timePart, suffix)
}

// TitleSimilarity is the Jaccard similarity of the two normalized titles'
// word sets. Two empty titles are identical; one empty title matches
// nothing.
func TitleSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		if a == b {
			return 1.0
		}
		return 0.0
	}

	setA := wordSet(a)
	setB := wordSet(b)

	intersection := 0
	for word := range setA {
		if setB[word] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, word := range strings.Fields(s) {
		set[word] = true
	}
	return set
}

// matches reports whether the fingerprint belongs to the series: organizer
// and time slot must match exactly, and the normalized titles must clear
// the similarity threshold.
func matches(fp Fingerprint, s types.MeetingSeries, titleThreshold float64) bool {
	if fp.Organizer != s.Organizer {
		return false
	}
	if fp.TimePattern != s.TimePattern {
		return false
	}
	return TitleSimilarity(fp.NormalizedTitle, s.NormalizedTitle) >= titleThreshold
}
