// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"crypto/sha256"
	"encoding/hex"
)

// Paragraph is the smallest compared unit of meeting content. Hashes are
// computed over a trimmed, lowercased projection of the text, so edits that
// only change case or whitespace never change the hash.
type Paragraph struct {
	// Hash is the SHA-256 hex digest of the normalized paragraph text.
	Hash string `json:"hash" yaml:"hash"`

	// Content is the normalized paragraph text.
	Content string `json:"content" yaml:"content"`

	// Preview is the first 50 characters of Content, with "..." appended
	// when truncated.
	Preview string `json:"preview" yaml:"preview"`

	// WordCount is the number of whitespace-separated tokens in Content.
	WordCount int `json:"word_count" yaml:"word_count"`

	// Position is the paragraph's 0-based index within its section.
	Position int `json:"position" yaml:"position"`
}

// IsEmpty reports whether the paragraph carries no comparable content.
func (p Paragraph) IsEmpty() bool {
	return p.WordCount == 0 || len(p.Content) == 0
}

// Section groups the paragraphs under one header.
type Section struct {
	// Header is the section header text with surrounding whitespace removed.
	Header string `json:"header" yaml:"header"`

	// HeaderHash is the SHA-256 hex digest of the normalized header.
	HeaderHash string `json:"header_hash" yaml:"header_hash"`

	// Paragraphs lists the section's paragraphs in document order.
	Paragraphs []Paragraph `json:"paragraphs" yaml:"paragraphs"`

	// Position is the section's 0-based index within the signature.
	Position int `json:"position" yaml:"position"`
}

// ContentHash derives a digest for the whole section: SHA-256 over the
// header hash concatenated with every paragraph hash, in order. Reordering
// paragraphs therefore changes the section hash. A section with no
// paragraphs hashes to its header hash.
func (s Section) ContentHash() string {
	if len(s.Paragraphs) == 0 {
		return s.HeaderHash
	}
	h := sha256.New()
	h.Write([]byte(s.HeaderHash))
	for _, p := range s.Paragraphs {
		h.Write([]byte(p.Hash))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// ContentSignature is the structural fingerprint of one meeting occurrence's
// content. It is immutable once built.
type ContentSignature struct {
	// MeetingID identifies the meeting occurrence the signature was built from.
	MeetingID string `json:"meeting_id" yaml:"meeting_id"`

	// ContentVersion is the signature schema version.
	ContentVersion string `json:"content_version" yaml:"content_version"`

	// ExtractedAt is the ISO timestamp of extraction.
	ExtractedAt string `json:"extracted_at" yaml:"extracted_at"`

	// FullContentHash is the SHA-256 hex digest of the entire raw content.
	FullContentHash string `json:"full_content_hash" yaml:"full_content_hash"`

	// Sections lists the parsed sections in document order.
	Sections []Section `json:"sections" yaml:"sections"`

	// TotalWords is the sum of all paragraph word counts.
	TotalWords int `json:"total_words" yaml:"total_words"`

	// TotalParagraphs is the number of paragraphs across all sections.
	TotalParagraphs int `json:"total_paragraphs" yaml:"total_paragraphs"`
}
