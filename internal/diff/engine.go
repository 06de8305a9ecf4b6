// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package diff compares two content signatures and reports what changed:
// sections added and removed, paragraphs added, removed, modified, or moved
// between sections, and aggregate statistics.
//
// Sections match by exact header text only, so a renamed section surfaces
// as a removal plus an addition. Paragraphs match first by hash, then by
// character-level similarity above the configured threshold.
package diff

import (
	"strings"

	"github.com/pdiddy/meeting-notes-engine/internal/signature"
	"github.com/pdiddy/meeting-notes-engine/pkg/types"
)

// ChangeType names the kind of change detected.
type ChangeType string

const (
	Added    ChangeType = "added"
	Removed  ChangeType = "removed"
	Modified ChangeType = "modified"
	Moved    ChangeType = "moved"
)

// ParagraphChange records one paragraph-level change. Old and New are nil
// for the sides that do not exist.
type ParagraphChange struct {
	Type       ChangeType       `json:"change_type"`
	Old        *types.Paragraph `json:"old_paragraph,omitempty"`
	New        *types.Paragraph `json:"new_paragraph,omitempty"`
	OldSection string           `json:"old_section,omitempty"`
	NewSection string           `json:"new_section,omitempty"`
	Similarity float64          `json:"similarity_score"`
}

// SectionChange records one section-level change. A Modified section carries
// its paragraph changes; Added and Removed sections carry the whole section.
type SectionChange struct {
	Type             ChangeType        `json:"change_type"`
	Old              *types.Section    `json:"old_section,omitempty"`
	New              *types.Section    `json:"new_section,omitempty"`
	ParagraphChanges []ParagraphChange `json:"paragraph_changes,omitempty"`
}

// Summary aggregates a diff into counts and word deltas.
type Summary struct {
	SectionsAdded      int     `json:"total_sections_added"`
	SectionsRemoved    int     `json:"total_sections_removed"`
	SectionsModified   int     `json:"total_sections_modified"`
	ParagraphsAdded    int     `json:"total_paragraphs_added"`
	ParagraphsRemoved  int     `json:"total_paragraphs_removed"`
	ParagraphsModified int     `json:"total_paragraphs_modified"`
	ParagraphsMoved    int     `json:"total_paragraphs_moved"`
	WordsAdded         int     `json:"total_words_added"`
	WordsRemoved       int     `json:"total_words_removed"`
	SimilarityPercent  float64 `json:"similarity_percentage"`
}

// MeetingDiff is the complete comparison of two meeting occurrences.
type MeetingDiff struct {
	OldMeetingID    string            `json:"old_meeting_id"`
	NewMeetingID    string            `json:"new_meeting_id"`
	SectionChanges  []SectionChange   `json:"section_changes"`
	MovedParagraphs []ParagraphChange `json:"moved_paragraphs"`
	Summary         Summary           `json:"summary"`
}

// Engine compares content signatures.
type Engine struct {
	// paragraphSimilarity is the minimum similarity for an old/new pair to
	// count as modified rather than removed+added.
	paragraphSimilarity float64
}

// NewEngine builds an engine from config; a non-positive threshold falls
// back to the 0.85 default.
func NewEngine(cfg types.DiffConfig) *Engine {
	threshold := cfg.ParagraphSimilarity
	if threshold <= 0 {
		threshold = 0.85
	}
	return &Engine{paragraphSimilarity: threshold}
}

// Compare diffs two signatures. It never fails on well-formed input;
// degenerate (empty) signatures degrade to everything-added or
// everything-removed.
func (e *Engine) Compare(oldSig, newSig types.ContentSignature) MeetingDiff {
	sectionChanges := e.compareSections(oldSig.Sections, newSig.Sections)
	moved := findMovedParagraphs(oldSig.Sections, newSig.Sections)
	summary := buildSummary(sectionChanges, moved, oldSig, newSig)

	return MeetingDiff{
		OldMeetingID:    oldSig.MeetingID,
		NewMeetingID:    newSig.MeetingID,
		SectionChanges:  sectionChanges,
		MovedParagraphs: moved,
		Summary:         summary,
	}
}

// compareSections matches sections by exact header text.
func (e *Engine) compareSections(oldSections, newSections []types.Section) []SectionChange {
	newByHeader := make(map[string]*types.Section, len(newSections))
	for i := range newSections {
		newByHeader[newSections[i].Header] = &newSections[i]
	}

	matched := make(map[string]bool)
	var changes []SectionChange

	for i := range oldSections {
		oldSection := &oldSections[i]
		newSection, ok := newByHeader[oldSection.Header]
		if !ok {
			changes = append(changes, SectionChange{Type: Removed, Old: oldSection})
			continue
		}
		matched[oldSection.Header] = true

		paragraphChanges := e.compareParagraphs(
			oldSection.Paragraphs, newSection.Paragraphs,
			oldSection.Header, newSection.Header,
		)
		if len(paragraphChanges) > 0 {
			changes = append(changes, SectionChange{
				Type:             Modified,
				Old:              oldSection,
				New:              newSection,
				ParagraphChanges: paragraphChanges,
			})
		}
	}

	for i := range newSections {
		if !matched[newSections[i].Header] {
			changes = append(changes, SectionChange{Type: Added, New: &newSections[i]})
		}
	}

	return changes
}

// compareParagraphs runs the two-pass paragraph match within one matched
// section. Pass one: exact hash matches are unchanged; each remaining old
// paragraph claims the single best-scoring unclaimed new paragraph at or
// above the threshold as Modified, else it is Removed. Pass two: unclaimed
// new paragraphs are Added. Ties resolve to the earliest candidate.
func (e *Engine) compareParagraphs(oldParas, newParas []types.Paragraph, oldHeader, newHeader string) []ParagraphChange {
	newByHash := make(map[string]bool, len(newParas))
	for _, p := range newParas {
		newByHash[p.Hash] = true
	}

	claimed := make(map[string]bool)
	var changes []ParagraphChange

	for i := range oldParas {
		oldPara := &oldParas[i]
		if newByHash[oldPara.Hash] {
			claimed[oldPara.Hash] = true
			continue
		}

		if best, score := bestMatch(oldPara, newParas, claimed); best != nil && score >= e.paragraphSimilarity {
			claimed[best.Hash] = true
			changes = append(changes, ParagraphChange{
				Type:       Modified,
				Old:        oldPara,
				New:        best,
				OldSection: oldHeader,
				NewSection: newHeader,
				Similarity: score,
			})
			continue
		}

		changes = append(changes, ParagraphChange{
			Type:       Removed,
			Old:        oldPara,
			OldSection: oldHeader,
			NewSection: newHeader,
		})
	}

	for i := range newParas {
		if !claimed[newParas[i].Hash] {
			changes = append(changes, ParagraphChange{
				Type:       Added,
				New:        &newParas[i],
				OldSection: oldHeader,
				NewSection: newHeader,
			})
		}
	}

	return changes
}

// bestMatch scores paragraph against every unclaimed candidate and returns
// the highest scorer. The scan keeps the first strictly-higher score, so
// tied near-duplicates resolve to the earliest candidate.
func bestMatch(paragraph *types.Paragraph, candidates []types.Paragraph, claimed map[string]bool) (*types.Paragraph, float64) {
	var best *types.Paragraph
	bestScore := 0.0

	for i := range candidates {
		if claimed[candidates[i].Hash] {
			continue
		}
		score := signature.SequenceRatio(
			strings.ToLower(paragraph.Content),
			strings.ToLower(candidates[i].Content),
		)
		if score > bestScore {
			bestScore = score
			best = &candidates[i]
		}
	}

	return best, bestScore
}

// findMovedParagraphs reports paragraphs whose hash appears in both
// signatures under different headers. When the same hash occurs more than
// once, the last occurrence's header wins.
func findMovedParagraphs(oldSections, newSections []types.Section) []ParagraphChange {
	oldHeaders, order := hashHeaders(oldSections)
	newHeaders, _ := hashHeaders(newSections)

	var moved []ParagraphChange
	for _, hash := range order {
		oldHeader := oldHeaders[hash]
		newHeader, ok := newHeaders[hash]
		if !ok || oldHeader == newHeader {
			continue
		}

		oldPara := findParagraph(oldSections, oldHeader, hash)
		newPara := findParagraph(newSections, newHeader, hash)
		if oldPara == nil || newPara == nil {
			continue
		}

		moved = append(moved, ParagraphChange{
			Type:       Moved,
			Old:        oldPara,
			New:        newPara,
			OldSection: oldHeader,
			NewSection: newHeader,
			Similarity: 1.0,
		})
	}

	return moved
}

// hashHeaders maps each paragraph hash to its section header, plus the
// first-seen order of the hashes for deterministic output.
func hashHeaders(sections []types.Section) (map[string]string, []string) {
	headers := make(map[string]string)
	var order []string
	for _, section := range sections {
		for _, p := range section.Paragraphs {
			if _, seen := headers[p.Hash]; !seen {
				order = append(order, p.Hash)
			}
			headers[p.Hash] = section.Header
		}
	}
	return headers, order
}

func findParagraph(sections []types.Section, header, hash string) *types.Paragraph {
	for i := range sections {
		if sections[i].Header != header {
			continue
		}
		for j := range sections[i].Paragraphs {
			if sections[i].Paragraphs[j].Hash == hash {
				return &sections[i].Paragraphs[j]
			}
		}
	}
	return nil
}

// buildSummary tallies the diff. Moved paragraphs are counted once under
// ParagraphsMoved and excluded from the added/removed tallies of the
// sections they left and entered.
func buildSummary(sectionChanges []SectionChange, moved []ParagraphChange, oldSig, newSig types.ContentSignature) Summary {
	movedHashes := make(map[string]bool, len(moved))
	for _, m := range moved {
		if m.Old != nil {
			movedHashes[m.Old.Hash] = true
		}
	}

	var s Summary
	for _, change := range sectionChanges {
		switch change.Type {
		case Added:
			s.SectionsAdded++
			if change.New != nil {
				for _, p := range change.New.Paragraphs {
					if movedHashes[p.Hash] {
						continue
					}
					s.ParagraphsAdded++
					s.WordsAdded += p.WordCount
				}
			}
		case Removed:
			s.SectionsRemoved++
			if change.Old != nil {
				for _, p := range change.Old.Paragraphs {
					if movedHashes[p.Hash] {
						continue
					}
					s.ParagraphsRemoved++
					s.WordsRemoved += p.WordCount
				}
			}
		case Modified:
			s.SectionsModified++
			for _, pc := range change.ParagraphChanges {
				switch pc.Type {
				case Added:
					if pc.New != nil && movedHashes[pc.New.Hash] {
						continue
					}
					s.ParagraphsAdded++
					if pc.New != nil {
						s.WordsAdded += pc.New.WordCount
					}
				case Removed:
					if pc.Old != nil && movedHashes[pc.Old.Hash] {
						continue
					}
					s.ParagraphsRemoved++
					if pc.Old != nil {
						s.WordsRemoved += pc.Old.WordCount
					}
				case Modified:
					s.ParagraphsModified++
					if pc.Old != nil && pc.New != nil {
						delta := pc.New.WordCount - pc.Old.WordCount
						if delta > 0 {
							s.WordsAdded += delta
						} else {
							s.WordsRemoved += -delta
						}
					}
				}
			}
		}
	}

	s.ParagraphsMoved = len(moved)

	if oldSig.TotalWords > 0 || newSig.TotalWords > 0 {
		unchanged := min(oldSig.TotalWords, newSig.TotalWords) - s.WordsRemoved - s.WordsAdded
		if unchanged < 0 {
			unchanged = 0
		}
		total := max(oldSig.TotalWords, newSig.TotalWords)
		if total > 0 {
			s.SimilarityPercent = float64(unchanged) / float64(total) * 100
		}
	}

	return s
}
