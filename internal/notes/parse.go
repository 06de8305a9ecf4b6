// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notes

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/pdiddy/meeting-notes-engine/pkg/types"
)

var (
	documentHeaderRe = regexp.MustCompile(`(?m)^## Document \d+\s*$`)
	urlRe            = regexp.MustCompile(`https?://[^\s)]+`)
)

// MeetingFile is a saved meeting note split into its parts.
type MeetingFile struct {
	// FrontmatterYAML is the raw YAML between the frontmatter fences, empty
	// when the file has none.
	FrontmatterYAML string

	// Content is the markdown body after the frontmatter.
	Content string

	// FullContent is the file verbatim.
	FullContent string
}

// ParseMeetingFile loads a saved meeting note and splits frontmatter from
// body. Files without frontmatter parse as all body.
func ParseMeetingFile(path string) (MeetingFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return MeetingFile{}, fmt.Errorf("loading meeting file %s: %w", path, err)
	}

	content := string(data)
	parts := strings.SplitN(content, "---", 3)
	if len(parts) >= 3 {
		return MeetingFile{
			FrontmatterYAML: parts[1],
			Content:         parts[2],
			FullContent:     content,
		}, nil
	}

	return MeetingFile{Content: content, FullContent: content}, nil
}

// ExtractDocuments splits a saved meeting body back into its documents
// using the "## Document N" markers the save format writes. A body without
// markers comes back as a single "Meeting Content" document. Per document,
// the title comes from a leading "**Title:**" line and the URL from the
// first link on the line after it.
func ExtractDocuments(content string) []types.Document {
	if content == "" {
		return nil
	}

	parts := documentHeaderRe.Split(content, -1)
	if len(parts) <= 1 {
		return []types.Document{{
			Title:   "Meeting Content",
			Content: content,
		}}
	}

	var documents []types.Document
	for i, part := range parts[1:] {
		lines := strings.Split(strings.TrimSpace(part), "\n")

		title := fmt.Sprintf("Document %d", i+1)
		contentStart := 0
		if len(lines) > 0 && strings.HasPrefix(lines[0], "**Title:**") {
			title = strings.TrimSpace(strings.TrimPrefix(lines[0], "**Title:**"))
			contentStart = 1
		}

		url := ""
		if len(lines) > contentStart {
			url = urlRe.FindString(lines[contentStart])
		}

		documents = append(documents, types.Document{
			Title:   title,
			URL:     url,
			Content: strings.TrimSpace(strings.Join(lines[contentStart:], "\n")),
		})
	}

	return documents
}
