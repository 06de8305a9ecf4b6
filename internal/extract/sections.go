// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract filters meeting documents down to genuinely new content
// by comparing each occurrence against the previous one in its series.
// Ephemeral documents always pass through whole; persistent documents are
// reduced to their new or significantly changed sections; unclassifiable
// documents pass through whole to bias toward over-inclusion.
package extract

import (
	"regexp"
	"strings"
)

var mdHeaderRe = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)

// ContentSection is one header-delimited chunk of a document.
type ContentSection struct {
	Title     string
	Content   string
	Level     int
	StartLine int
	EndLine   int
}

// ParseSections splits a document on markdown headers (levels 1-6). Text
// before the first header is ignored; a document with no headers at all
// becomes a single level-1 "Content" section.
func ParseSections(content string) []ContentSection {
	lines := strings.Split(content, "\n")

	var sections []ContentSection
	var current *ContentSection

	for i, line := range lines {
		m := mdHeaderRe.FindStringSubmatch(strings.TrimSpace(line))
		if m != nil {
			if current != nil {
				current.EndLine = i - 1
				sections = append(sections, *current)
			}
			current = &ContentSection{
				Title:     m[2],
				Level:     len(m[1]),
				StartLine: i,
				EndLine:   i,
			}
			continue
		}

		if current != nil {
			if current.Content != "" {
				current.Content += "\n" + line
			} else {
				current.Content = line
			}
		}
	}

	if current != nil {
		current.EndLine = len(lines) - 1
		sections = append(sections, *current)
	}

	if len(sections) == 0 && strings.TrimSpace(content) != "" {
		sections = append(sections, ContentSection{
			Title:   "Content",
			Content: content,
			Level:   1,
			EndLine: len(lines) - 1,
		})
	}

	return sections
}

// CountSections reports how many sections ParseSections would yield.
func CountSections(content string) int {
	return len(ParseSections(content))
}

// renderSections rebuilds markdown from the retained sections.
func renderSections(sections []ContentSection) string {
	var parts []string
	for _, section := range sections {
		parts = append(parts, strings.Repeat("#", section.Level)+" "+section.Title)
		if body := strings.TrimSpace(section.Content); body != "" {
			parts = append(parts, body)
		}
		parts = append(parts, "")
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}
