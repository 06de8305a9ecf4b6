// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/meeting-notes-engine/internal/classify"
	"github.com/pdiddy/meeting-notes-engine/internal/notes"
	"github.com/pdiddy/meeting-notes-engine/internal/series"
	"github.com/pdiddy/meeting-notes-engine/internal/signature"
	"github.com/pdiddy/meeting-notes-engine/pkg/types"
)

// Extractor orchestrates classification, series matching, and per-document
// filtering.
type Extractor struct {
	classifier *classify.Classifier
	tracker    *series.Tracker

	docTitleSimilarity     float64
	sectionSimilarity      float64
	contentChangeThreshold float64
	minNewContentWords     int

	log zerolog.Logger
}

// New builds an extractor over an open series tracker. Non-positive
// thresholds fall back to defaults.
func New(cfg types.ExtractConfig, tracker *series.Tracker, log zerolog.Logger) *Extractor {
	docTitle := cfg.DocTitleSimilarity
	if docTitle <= 0 {
		docTitle = 0.7
	}
	section := cfg.SectionSimilarity
	if section <= 0 {
		section = 0.8
	}
	change := cfg.ContentChangeThreshold
	if change <= 0 {
		change = 0.3
	}
	minWords := cfg.MinNewContentWords
	if minWords <= 0 {
		minWords = 10
	}

	return &Extractor{
		classifier:             classify.New(log),
		tracker:                tracker,
		docTitleSimilarity:     docTitle,
		sectionSimilarity:      section,
		contentChangeThreshold: change,
		minNewContentWords:     minWords,
		log:                    log,
	}
}

// NewContentOnly filters the occurrence's documents down to genuinely new
// content relative to the previous meeting in its series. The first
// occurrence of a series keeps everything with zero reduction.
func (e *Extractor) NewContentOnly(meta types.MeetingMetadata, documents []types.Document) (types.FilteringResult, error) {
	seriesID, err := e.tracker.Identify(meta)
	if err != nil {
		return types.FilteringResult{}, fmt.Errorf("identifying series: %w", err)
	}

	if seriesID == "" {
		seriesID, err = e.tracker.CreateSeries(meta)
		if err != nil {
			return types.FilteringResult{}, fmt.Errorf("creating series: %w", err)
		}
		return e.firstMeeting(documents, seriesID), nil
	}

	previousPath := e.tracker.LatestMeeting(seriesID)
	if previousPath == "" {
		return e.firstMeeting(documents, seriesID), nil
	}

	return e.filterAgainstPrevious(documents, seriesID, previousPath), nil
}

// firstMeeting keeps every document whole.
func (e *Extractor) firstMeeting(documents []types.Document, seriesID string) types.FilteringResult {
	classified := e.classifier.ClassifyAll(documents)

	var filtered []types.FilteredDocument
	totalWords := 0
	for _, doc := range classified {
		words := wordCount(doc.Content)
		totalWords += words

		filtered = append(filtered, types.FilteredDocument{
			Title:           doc.Title,
			OriginalURL:     doc.URL,
			FilteredContent: doc.Content,
			Summary: types.ChangeSummary{
				ChangeType:  "first_meeting",
				TotalWords:  words,
				NewSections: CountSections(doc.Content),
			},
			Type: doc.Type,
		})
	}

	return types.FilteringResult{
		HasNewContent:     true,
		Documents:         filtered,
		ReductionPercent:  0.0,
		OriginalWordCount: totalWords,
		FilteredWordCount: totalWords,
		SeriesID:          seriesID,
	}
}

// filterAgainstPrevious applies the per-type retention policy against the
// documents recovered from the previous meeting's saved file.
func (e *Extractor) filterAgainstPrevious(documents []types.Document, seriesID, previousPath string) types.FilteringResult {
	previousFile, err := notes.ParseMeetingFile(previousPath)
	if err != nil {
		// An unreadable previous file means no prior data; keep everything
		// rather than fail the extraction.
		e.log.Warn().Err(err).Str("path", previousPath).Msg("previous meeting file unreadable, keeping all content")
		return e.firstMeeting(documents, seriesID)
	}
	previousDocs := notes.ExtractDocuments(previousFile.Content)

	classified := e.classifier.ClassifyAll(documents)

	var filtered []types.FilteredDocument
	originalWords := 0
	filteredWords := 0

	for _, doc := range classified {
		originalWords += wordCount(doc.Content)

		switch doc.Type {
		case types.DocEphemeral:
			kept := ephemeralDocument(doc)
			filtered = append(filtered, kept)
			filteredWords += wordCount(kept.FilteredContent)

		case types.DocPersistent:
			kept, ok := e.persistentDocumentChanges(doc, previousDocs)
			if ok && strings.TrimSpace(kept.FilteredContent) != "" {
				filtered = append(filtered, kept)
				filteredWords += wordCount(kept.FilteredContent)
			}

		default:
			kept := unknownDocument(doc)
			filtered = append(filtered, kept)
			filteredWords += wordCount(kept.FilteredContent)
		}
	}

	reduction := 0.0
	if originalWords > 0 {
		reduction = float64(originalWords-filteredWords) / float64(originalWords) * 100
	}

	return types.FilteringResult{
		HasNewContent:       filteredWords > 0,
		Documents:           filtered,
		ReductionPercent:    reduction,
		OriginalWordCount:   originalWords,
		FilteredWordCount:   filteredWords,
		SeriesID:            seriesID,
		PreviousMeetingPath: previousPath,
	}
}

// ephemeralDocument keeps the whole document; transcripts and generated
// notes are unique per occurrence by nature.
func ephemeralDocument(doc types.DocumentInfo) types.FilteredDocument {
	return types.FilteredDocument{
		Title:           doc.Title,
		OriginalURL:     doc.URL,
		FilteredContent: doc.Content,
		Summary: types.ChangeSummary{
			ChangeType: "ephemeral",
			TotalWords: wordCount(doc.Content),
			Reason:     "Always new per meeting",
		},
		Type: doc.Type,
	}
}

// unknownDocument keeps the whole document, flagged in the title.
func unknownDocument(doc types.DocumentInfo) types.FilteredDocument {
	return types.FilteredDocument{
		Title:           doc.Title + " (Unknown Type)",
		OriginalURL:     doc.URL,
		FilteredContent: doc.Content,
		Summary: types.ChangeSummary{
			ChangeType: "unknown",
			TotalWords: wordCount(doc.Content),
			Reason:     "Included due to uncertain classification",
		},
		Type: doc.Type,
	}
}

// persistentDocumentChanges reduces a persistent document to its new or
// significantly changed sections. The second return is false when nothing
// worth keeping remains.
func (e *Extractor) persistentDocumentChanges(doc types.DocumentInfo, previousDocs []types.Document) (types.FilteredDocument, bool) {
	previous := e.matchPreviousDocument(doc, previousDocs)
	if previous == nil {
		return types.FilteredDocument{
			Title:           doc.Title + " (New Document)",
			OriginalURL:     doc.URL,
			FilteredContent: doc.Content,
			Summary: types.ChangeSummary{
				ChangeType: "new_document",
				TotalWords: wordCount(doc.Content),
				Reason:     "Document not found in previous meeting",
			},
			Type: doc.Type,
		}, true
	}

	newSections := e.newContentSections(doc.Content, previous.Content)
	if len(newSections) == 0 {
		return types.FilteredDocument{}, false
	}

	content := renderSections(newSections)
	if wordCount(content) < e.minNewContentWords {
		return types.FilteredDocument{}, false
	}

	return types.FilteredDocument{
		Title:           doc.Title + " - New Content",
		OriginalURL:     doc.URL,
		FilteredContent: content,
		Summary: types.ChangeSummary{
			ChangeType:           "updated_document",
			NewSections:          len(newSections),
			TotalWords:           wordCount(content),
			PreviousVersionWords: wordCount(previous.Content),
		},
		Type: doc.Type,
	}, true
}

// matchPreviousDocument finds the previous meeting's counterpart of a
// document: exact URL match first, then the best title match above the
// threshold.
func (e *Extractor) matchPreviousDocument(doc types.DocumentInfo, previousDocs []types.Document) *types.Document {
	for i := range previousDocs {
		if previousDocs[i].URL != "" && previousDocs[i].URL == doc.URL {
			return &previousDocs[i]
		}
	}

	var best *types.Document
	bestScore := 0.0
	for i := range previousDocs {
		score := titleSimilarity(doc.Title, previousDocs[i].Title)
		if score > bestScore && score > e.docTitleSimilarity {
			bestScore = score
			best = &previousDocs[i]
		}
	}
	return best
}

// newContentSections keeps sections with no previous counterpart and
// matched sections whose content drifted past the change threshold.
func (e *Extractor) newContentSections(currentContent, previousContent string) []ContentSection {
	currentSections := ParseSections(currentContent)
	previousSections := ParseSections(previousContent)

	var kept []ContentSection
	for _, section := range currentSections {
		previous := e.matchSection(section, previousSections)
		if previous == nil {
			kept = append(kept, section)
			continue
		}
		if contentSimilarity(section.Content, previous.Content) < 1.0-e.contentChangeThreshold {
			kept = append(kept, section)
		}
	}
	return kept
}

// matchSection finds the best previous section by title similarity above
// the section threshold.
func (e *Extractor) matchSection(section ContentSection, previousSections []ContentSection) *ContentSection {
	var best *ContentSection
	bestScore := 0.0
	for i := range previousSections {
		score := titleSimilarity(section.Title, previousSections[i].Title)
		if score > bestScore && score > e.sectionSimilarity {
			bestScore = score
			best = &previousSections[i]
		}
	}
	return best
}

func titleSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		if a == b {
			return 1.0
		}
		return 0.0
	}
	return signature.SequenceRatio(strings.ToLower(a), strings.ToLower(b))
}

func contentSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		if a == b {
			return 1.0
		}
		return 0.0
	}
	return signature.SequenceRatio(a, b)
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}
