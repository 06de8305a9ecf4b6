// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package diff

import (
	"fmt"
	"strings"
)

// FormatSummary renders a diff summary for terminal display.
func FormatSummary(d MeetingDiff) string {
	s := d.Summary
	var b strings.Builder

	fmt.Fprintf(&b, "Meeting Diff Summary\n")
	fmt.Fprintf(&b, "   %s -> %s\n\n", d.OldMeetingID, d.NewMeetingID)

	if s.SectionsAdded > 0 {
		fmt.Fprintf(&b, "   Sections added: %d\n", s.SectionsAdded)
	}
	if s.SectionsRemoved > 0 {
		fmt.Fprintf(&b, "   Sections removed: %d\n", s.SectionsRemoved)
	}
	if s.SectionsModified > 0 {
		fmt.Fprintf(&b, "   Sections modified: %d\n", s.SectionsModified)
	}

	b.WriteString("\n")

	if s.ParagraphsAdded > 0 {
		fmt.Fprintf(&b, "   Paragraphs added: %d (%d words)\n", s.ParagraphsAdded, s.WordsAdded)
	}
	if s.ParagraphsRemoved > 0 {
		fmt.Fprintf(&b, "   Paragraphs removed: %d (%d words)\n", s.ParagraphsRemoved, s.WordsRemoved)
	}
	if s.ParagraphsModified > 0 {
		fmt.Fprintf(&b, "   Paragraphs modified: %d\n", s.ParagraphsModified)
	}
	if s.ParagraphsMoved > 0 {
		fmt.Fprintf(&b, "   Paragraphs moved: %d\n", s.ParagraphsMoved)
	}

	fmt.Fprintf(&b, "\n   Overall similarity: %.1f%%\n", s.SimilarityPercent)

	return b.String()
}
