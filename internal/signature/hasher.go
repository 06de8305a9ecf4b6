// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package signature turns raw meeting note text into hierarchical content
// signatures (sections of paragraphs, each hashed) and provides the text
// similarity primitives the rest of the engine compares them with.
//
// Every hash is computed over a trimmed, lowercased projection of the text,
// so case- or whitespace-only edits never register as changes.
package signature

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
	"unicode"

	"github.com/pdiddy/meeting-notes-engine/pkg/types"
)

// defaultHeader names the implicit section for content that appears before
// the first recognized header.
const defaultHeader = "Introduction"

// previewLimit caps Paragraph.Preview length before "..." is appended.
const previewLimit = 50

var (
	atxHeaderRe   = regexp.MustCompile(`^#+\s+(.+)$`)
	underlineRe   = regexp.MustCompile(`^[=-]+$`)
	boldHeaderRe  = regexp.MustCompile(`^(?:\*\*|__)(.+?)(?:\*\*|__)(?:\s*:)?$`)
	bulletRe      = regexp.MustCompile(`^\s*[-*]\s`)
	numberedRe    = regexp.MustCompile(`^\s*\d+\.\s`)
	whitespaceRun = regexp.MustCompile(`\s+`)
	zeroWidthRe   = regexp.MustCompile("[\u200b\u200c\u200d\ufeff]")
)

// HashText returns the SHA-256 hex digest of the trimmed, lowercased text.
func HashText(text string) string {
	normalized := strings.ToLower(strings.TrimSpace(text))
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// Build creates the complete content signature for one meeting occurrence.
// Empty content yields a signature with zero sections and words, never an
// error.
func Build(meetingID, content, extractedAt string) types.ContentSignature {
	sig := types.ContentSignature{
		MeetingID:       meetingID,
		ContentVersion:  "1.0",
		ExtractedAt:     extractedAt,
		FullContentHash: HashText(content),
	}
	if content == "" {
		return sig
	}

	sig.Sections = ExtractSections(content)
	for _, section := range sig.Sections {
		sig.TotalParagraphs += len(section.Paragraphs)
		for _, p := range section.Paragraphs {
			sig.TotalWords += p.WordCount
		}
	}
	return sig
}

// ExtractSections parses content into sections. A line opens a section when
// it is an ATX "#" header, text underlined with "=" or "-", bold-wrapped
// text (optionally with a trailing colon), or an all-caps line of at most
// five words. Leading text with no header lands in an implicit
// "Introduction" section. Sections whose bodies contain no paragraphs are
// dropped, and positions are dense over the kept sections.
func ExtractSections(content string) []types.Section {
	if content == "" {
		return nil
	}

	// Normalize line endings.
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	var sections []types.Section
	var body []string
	header := defaultHeader
	position := 0

	flush := func() {
		if len(body) == 0 {
			return
		}
		section := buildSection(header, strings.Join(body, "\n"), position)
		if len(section.Paragraphs) > 0 {
			sections = append(sections, section)
			position++
		}
	}

	lines := strings.Split(content, "\n")
	for i := 0; i < len(lines); i++ {
		next := ""
		if i+1 < len(lines) {
			next = lines[i+1]
		}

		if h, ok := headerText(lines[i], next); ok {
			flush()
			header = h
			body = body[:0]

			// Consume the underline of a setext-style header.
			if next != "" && underlineRe.MatchString(strings.TrimSpace(next)) {
				i++
			}
			continue
		}
		body = append(body, lines[i])
	}
	flush()

	return sections
}

// ExtractParagraphs splits section text into paragraphs on blank lines and
// list-item boundaries (a line opening a "-"/"*" bullet or a "1." numbered
// item starts a new paragraph), normalizes each chunk, and drops chunks
// with no words.
func ExtractParagraphs(text string) []types.Paragraph {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var paragraphs []types.Paragraph
	position := 0
	for _, raw := range splitParagraphChunks(text) {
		normalized := normalizeParagraph(raw)
		if normalized == "" {
			continue
		}
		p := buildParagraph(normalized, position)
		if p.IsEmpty() {
			continue
		}
		paragraphs = append(paragraphs, p)
		position++
	}
	return paragraphs
}

// splitParagraphChunks breaks text wherever a blank line or a list-item
// opener begins a new paragraph.
func splitParagraphChunks(text string) []string {
	var chunks []string
	var current []string

	flush := func() {
		if len(current) > 0 {
			chunks = append(chunks, strings.Join(current, "\n"))
			current = current[:0]
		}
	}

	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.TrimSpace(line) == "":
			flush()
		case bulletRe.MatchString(line) || numberedRe.MatchString(line):
			flush()
			current = append(current, line)
		default:
			current = append(current, line)
		}
	}
	flush()

	return chunks
}

// headerText reports whether line opens a section, and with which header.
func headerText(line, next string) (string, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", false
	}

	if m := atxHeaderRe.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1]), true
	}

	if next != "" && underlineRe.MatchString(strings.TrimSpace(next)) {
		return line, true
	}

	if m := boldHeaderRe.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1]), true
	}

	if isUpper(line) && len(strings.Fields(line)) <= 5 {
		return line, true
	}

	return "", false
}

func buildSection(header, content string, position int) types.Section {
	header = strings.TrimSpace(header)
	return types.Section{
		Header:     header,
		HeaderHash: HashText(header),
		Paragraphs: ExtractParagraphs(content),
		Position:   position,
	}
}

func buildParagraph(text string, position int) types.Paragraph {
	preview := text
	if runes := []rune(text); len(runes) > previewLimit {
		preview = string(runes[:previewLimit]) + "..."
	}
	return types.Paragraph{
		Hash:      HashText(text),
		Content:   text,
		Preview:   preview,
		WordCount: len(strings.Fields(text)),
		Position:  position,
	}
}

// normalizeParagraph trims, collapses whitespace runs to single spaces, and
// strips zero-width characters.
func normalizeParagraph(text string) string {
	text = strings.TrimSpace(text)
	text = whitespaceRun.ReplaceAllString(text, " ")
	return zeroWidthRe.ReplaceAllString(text, "")
}

// isUpper reports whether the line contains at least one letter and no
// lowercase letters.
func isUpper(line string) bool {
	hasLetter := false
	for _, r := range line {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}
