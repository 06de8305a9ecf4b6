// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify labels meeting documents as ephemeral or persistent by
// weighted pattern scoring over title, content, URL, and metadata signals.
package classify

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/meeting-notes-engine/pkg/types"
)

// Signal weights. Title patterns dominate; content, URL, and metadata hints
// only adjust the balance.
const (
	contentWeight  = 0.5
	urlWeight      = 0.3
	metadataWeight = 0.2
)

// ephemeralPatterns match titles of per-occurrence documents: generated
// notes, transcripts, recordings, dated one-offs.
var ephemeralPatterns = compilePatterns([]string{
	`notes\s+by\s+gemini`,
	`gemini\s+notes`,
	`meeting\s+notes.*gemini`,
	`auto.*generated.*notes`,

	`transcript`,
	`meeting\s+transcript`,
	`chat\s+log`,
	`meeting\s+chat`,
	`recording`,
	`meeting\s+recording`,

	`\d{4}[-/]\d{2}[-/]\d{2}.*(?:notes|transcript|summary)`,
	`(?:meeting|notes).*\d{2}:\d{2}`,

	`session\s+notes`,
	`meeting\s+summary.*\d+`,
})

// persistentPatterns match titles of shared documents that accumulate
// changes across occurrences.
var persistentPatterns = compilePatterns([]string{
	`project.*(?:plan|doc|spec)`,
	`requirements.*doc`,
	`specification`,
	`design.*doc`,

	`planning.*board`,
	`sprint.*(?:board|backlog)`,
	`backlog`,
	`roadmap`,
	`timeline`,

	`shared.*doc`,
	`team.*doc`,
	`project.*status`,
	`action.*items`,
	`decisions.*log`,
})

var ephemeralContentIndicators = []string{
	"transcript of meeting",
	"meeting started at",
	"meeting ended at",
	"participants joined",
	"gemini took notes",
	"auto-generated summary",
}

var persistentContentIndicators = []string{
	"last updated",
	"version history",
	"edit history",
	"contributors:",
	"document owner",
	"shared with",
}

// pattern pairs a compiled regex with its source length, which weights the
// pattern's specificity when scoring.
type pattern struct {
	re     *regexp.Regexp
	weight float64
}

func compilePatterns(sources []string) []pattern {
	patterns := make([]pattern, len(sources))
	for i, src := range sources {
		patterns[i] = pattern{
			re:     regexp.MustCompile(`(?i)` + src),
			weight: float64(len(src)) / 100,
		}
	}
	return patterns
}

// Summary aggregates one batch of classifications.
type Summary struct {
	TotalDocuments    int            `json:"total_documents"`
	EphemeralCount    int            `json:"ephemeral_count"`
	PersistentCount   int            `json:"persistent_count"`
	UnknownCount      int            `json:"unknown_count"`
	AverageConfidence float64        `json:"average_confidence"`
	Classifications   []ClassifiedAs `json:"classifications"`
}

// ClassifiedAs is one line of a classification summary.
type ClassifiedAs struct {
	Title      string             `json:"title"`
	Type       types.DocumentType `json:"type"`
	Confidence float64            `json:"confidence"`
}

// Classifier scores documents against the pattern tables.
type Classifier struct {
	log zerolog.Logger
}

func New(log zerolog.Logger) *Classifier {
	return &Classifier{log: log}
}

// Classify labels one document. When no signal fires at all the verdict is
// DocUnknown with zero confidence; otherwise confidence is the winning
// side's share of the total score, capped at 1. Persistent wins ties.
func (c *Classifier) Classify(title, url, content string, metadata map[string]any) (types.DocumentType, float64) {
	titleLower := strings.ToLower(title)
	contentLower := strings.ToLower(content)

	ephemeral := scorePatterns(titleLower, ephemeralPatterns)
	persistent := scorePatterns(titleLower, persistentPatterns)

	if content != "" {
		ephemeral += scoreIndicators(contentLower, ephemeralContentIndicators) * contentWeight
		persistent += scoreIndicators(contentLower, persistentContentIndicators) * contentWeight
	}

	// URL and metadata scores are signed: positive leans ephemeral,
	// negative leans persistent.
	if url != "" {
		if urlScore := scoreURL(strings.ToLower(url)); urlScore > 0 {
			ephemeral += urlScore * urlWeight
		} else if urlScore < 0 {
			persistent += -urlScore * urlWeight
		}
	}
	if metaScore := scoreMetadata(metadata); metaScore > 0 {
		ephemeral += metaScore * metadataWeight
	} else if metaScore < 0 {
		persistent += -metaScore * metadataWeight
	}

	total := ephemeral + persistent
	if total == 0 {
		return types.DocUnknown, 0.0
	}

	if ephemeral > persistent {
		return types.DocEphemeral, min(ephemeral/total, 1.0)
	}
	return types.DocPersistent, min(persistent/total, 1.0)
}

// ClassifyAll labels a batch of documents, preserving input order and
// recording each document's index. Untitled documents get a positional
// fallback title.
func (c *Classifier) ClassifyAll(documents []types.Document) []types.DocumentInfo {
	infos := make([]types.DocumentInfo, 0, len(documents))
	for i, doc := range documents {
		title := doc.Title
		if title == "" {
			title = fmt.Sprintf("Document %d", i+1)
		}

		docType, confidence := c.Classify(title, doc.URL, doc.Content, doc.Metadata)
		infos = append(infos, types.DocumentInfo{
			Title:      title,
			URL:        doc.URL,
			Content:    doc.Content,
			Type:       docType,
			Confidence: confidence,
			Metadata:   doc.Metadata,
			Index:      i,
		})

		c.log.Debug().
			Str("title", title).
			Str("type", string(docType)).
			Float64("confidence", confidence).
			Msg("classified document")
	}
	return infos
}

// Summarize tallies a batch of classifications.
func Summarize(documents []types.DocumentInfo) Summary {
	summary := Summary{TotalDocuments: len(documents)}

	totalConfidence := 0.0
	for _, doc := range documents {
		switch doc.Type {
		case types.DocEphemeral:
			summary.EphemeralCount++
		case types.DocPersistent:
			summary.PersistentCount++
		default:
			summary.UnknownCount++
		}
		totalConfidence += doc.Confidence
		summary.Classifications = append(summary.Classifications, ClassifiedAs{
			Title:      doc.Title,
			Type:       doc.Type,
			Confidence: doc.Confidence,
		})
	}

	if len(documents) > 0 {
		summary.AverageConfidence = totalConfidence / float64(len(documents))
	}
	return summary
}

// scorePatterns sums pattern weight times match count over every pattern
// that fires, so longer (more specific) patterns contribute more.
func scorePatterns(text string, patterns []pattern) float64 {
	score := 0.0
	for _, p := range patterns {
		if matches := p.re.FindAllStringIndex(text, -1); matches != nil {
			score += p.weight * float64(len(matches))
		}
	}
	return score
}

// scoreIndicators returns the fraction of indicator phrases present.
func scoreIndicators(content string, indicators []string) float64 {
	if len(indicators) == 0 {
		return 0.0
	}
	hits := 0
	for _, indicator := range indicators {
		if strings.Contains(content, indicator) {
			hits++
		}
	}
	return float64(hits) / float64(len(indicators))
}

// scoreURL reads type hints out of the URL. Positive means ephemeral,
// negative means persistent.
func scoreURL(url string) float64 {
	switch {
	case strings.Contains(url, "meet_tnfm_calendar"):
		return 2.0
	case strings.Contains(url, "transcript") || strings.Contains(url, "recording"):
		return 1.5
	case strings.Contains(url, "edit") && !strings.Contains(url, "sharing"):
		return -1.0
	case strings.Contains(url, "view") && strings.Contains(url, "usp=sharing"):
		return -0.5
	}
	return 0.0
}

// scoreMetadata reads type hints out of document metadata. Shared documents
// lean persistent; very long bodies lean ephemeral (transcripts run long).
func scoreMetadata(metadata map[string]any) float64 {
	score := 0.0
	if shared, ok := metadata["shared"].(bool); ok && shared {
		score -= 0.5
	}
	if content, ok := metadata["content"].(string); ok && len(content) > 5000 {
		score += 0.3
	}
	return score
}
