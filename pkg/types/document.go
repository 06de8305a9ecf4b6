// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DocumentType labels a meeting document by its volatility across
// occurrences. The set is closed: extraction policy dispatches on it.
type DocumentType string

const (
	// DocEphemeral marks content that is unique per occurrence
	// (auto-generated notes, transcripts). Always retained in full.
	DocEphemeral DocumentType = "ephemeral"

	// DocPersistent marks shared documents that evolve incrementally across
	// occurrences. Only genuinely new sections are retained.
	DocPersistent DocumentType = "persistent"

	// DocUnknown marks documents no signal could classify. Retained in full
	// to bias toward over-inclusion.
	DocUnknown DocumentType = "unknown"
)

// DocumentInfo is a classified document within one run. It is never
// persisted.
type DocumentInfo struct {
	// Title is the document title.
	Title string `json:"title" yaml:"title"`

	// URL is the document's origin URL.
	URL string `json:"url" yaml:"url"`

	// Content is the document body.
	Content string `json:"content" yaml:"content"`

	// Type is the classifier's verdict.
	Type DocumentType `json:"doc_type" yaml:"doc_type"`

	// Confidence is the winner's share of the total signal score, in [0,1].
	Confidence float64 `json:"confidence" yaml:"confidence"`

	// Metadata carries the hints the classifier scored.
	Metadata map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`

	// Index is the document's position in the input list.
	Index int `json:"index" yaml:"index"`
}

// ChangeSummary describes why a filtered document was retained and how much
// of it is new.
type ChangeSummary struct {
	// ChangeType names the retention path: first_meeting, ephemeral,
	// unknown, new_document, or updated_document.
	ChangeType string `json:"change_type" yaml:"change_type"`

	// TotalWords is the word count of the retained content.
	TotalWords int `json:"total_words" yaml:"total_words"`

	// NewSections is the number of retained sections, when sections were
	// compared.
	NewSections int `json:"new_sections,omitempty" yaml:"new_sections,omitempty"`

	// PreviousVersionWords is the previous counterpart's word count, when
	// one was found.
	PreviousVersionWords int `json:"previous_version_words,omitempty" yaml:"previous_version_words,omitempty"`

	// Reason explains the retention decision in one line.
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// FilteredDocument is one document after new-content filtering.
type FilteredDocument struct {
	// Title is the document title, annotated when the retention path is
	// notable ("... - New Content", "... (Unknown Type)").
	Title string `json:"title" yaml:"title"`

	// OriginalURL is the source document URL.
	OriginalURL string `json:"original_url" yaml:"original_url"`

	// FilteredContent is the retained content.
	FilteredContent string `json:"filtered_content" yaml:"filtered_content"`

	// Summary describes the retention decision.
	Summary ChangeSummary `json:"change_summary" yaml:"change_summary"`

	// Type is the classifier's verdict for the source document.
	Type DocumentType `json:"doc_type" yaml:"doc_type"`
}

// FilteringResult is the engine's per-occurrence output: what content is
// genuinely new relative to the series' previous occurrence.
type FilteringResult struct {
	// HasNewContent reports whether any content survived filtering.
	HasNewContent bool `json:"has_new_content" yaml:"has_new_content"`

	// Documents lists the retained documents.
	Documents []FilteredDocument `json:"filtered_documents" yaml:"filtered_documents"`

	// ReductionPercent is the share of input words removed, in [0,100].
	// Zero for the first occurrence in a series.
	ReductionPercent float64 `json:"content_reduction_percentage" yaml:"content_reduction_percentage"`

	// OriginalWordCount is the total input word count.
	OriginalWordCount int `json:"original_word_count" yaml:"original_word_count"`

	// FilteredWordCount is the total retained word count.
	FilteredWordCount int `json:"filtered_word_count" yaml:"filtered_word_count"`

	// SeriesID is the series the occurrence was matched or assigned to.
	SeriesID string `json:"series_id" yaml:"series_id"`

	// PreviousMeetingPath is the saved file the occurrence was compared
	// against, empty for the first occurrence.
	PreviousMeetingPath string `json:"previous_meeting_path,omitempty" yaml:"previous_meeting_path,omitempty"`
}
