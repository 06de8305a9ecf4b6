// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// MeetingMetadata is what the calendar layer hands the engine for one
// meeting occurrence.
type MeetingMetadata struct {
	// ID is the calendar event identifier.
	ID string `json:"id" yaml:"id"`

	// Title is the raw meeting title as it appears on the calendar.
	Title string `json:"title" yaml:"title"`

	// Organizer is the organizer's identifier (usually an email address),
	// compared verbatim during series matching.
	Organizer string `json:"organizer" yaml:"organizer"`

	// StartTime is when the occurrence starts.
	StartTime time.Time `json:"start_time" yaml:"start_time"`

	// Attendees lists attendee identifiers. Order does not matter.
	Attendees []string `json:"attendees" yaml:"attendees"`
}

// Document is one raw document attached to a meeting, as produced by the
// fetch/conversion layer.
type Document struct {
	// Title is the document's display title.
	Title string `json:"title" yaml:"title"`

	// URL is the document's origin URL, empty when unknown.
	URL string `json:"url" yaml:"url"`

	// Content is the document body as plain text or markdown.
	Content string `json:"content" yaml:"content"`

	// Metadata carries optional hints (sharing flags, sizes) used by the
	// classifier.
	Metadata map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// MeetingSeries is one recurring meeting series in the persisted registry.
// A series is created on the first occurrence of a new pattern and mutated
// on each subsequent match; it is never deleted automatically.
type MeetingSeries struct {
	// SeriesID is the stable series identifier. Once assigned it is never
	// recomputed, even if later metadata normalizes differently.
	SeriesID string `json:"series_id" yaml:"series_id"`

	// NormalizedTitle is the title with dates, counters, and scheduling
	// noise stripped.
	NormalizedTitle string `json:"normalized_title" yaml:"normalized_title"`

	// Organizer is the organizer identifier recorded at creation.
	Organizer string `json:"organizer" yaml:"organizer"`

	// TimePattern is the weekly slot, e.g. "MON-09:00".
	TimePattern string `json:"time_pattern" yaml:"time_pattern"`

	// AttendeePattern is the sorted, lowercased attendee list from the
	// first occurrence.
	AttendeePattern []string `json:"attendee_pattern" yaml:"attendee_pattern"`

	// FirstSeen is the ISO timestamp of the first matched occurrence.
	FirstSeen string `json:"first_seen" yaml:"first_seen"`

	// LastSeen is the ISO timestamp of the most recent matched occurrence.
	LastSeen string `json:"last_seen" yaml:"last_seen"`

	// MeetingCount is len(Meetings).
	MeetingCount int `json:"meeting_count" yaml:"meeting_count"`

	// Meetings lists saved meeting files in chronological order, relative
	// to the notes directory.
	Meetings []string `json:"meetings" yaml:"meetings"`

	// Confidence reflects how certain the tracker is that the grouped
	// occurrences belong together.
	Confidence float64 `json:"confidence" yaml:"confidence"`
}
