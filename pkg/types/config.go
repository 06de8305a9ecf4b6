package types

// CacheConfig holds settings for the content signature cache.
type CacheConfig struct {
	// Dir is the notes directory the cache lives under; records are written
	// to Dir/.meeting_content_cache/<series>/<date>_content.json[.gz].
	Dir string `json:"dir" yaml:"dir"`

	// Compress controls gzip compression of cache records (default true).
	Compress bool `json:"compress" yaml:"compress"`

	// RetentionDays is how long records are kept before cleanup removes
	// them (default 180).
	RetentionDays int `json:"retention_days" yaml:"retention_days"`
}

// DiffConfig holds settings for the diff engine.
type DiffConfig struct {
	// ParagraphSimilarity is the minimum character-level similarity for an
	// old/new paragraph pair to count as modified rather than
	// removed+added (default 0.85).
	ParagraphSimilarity float64 `json:"paragraph_similarity" yaml:"paragraph_similarity"`
}

// SeriesConfig holds settings for the series tracker.
type SeriesConfig struct {
	// NotesDir is the directory meeting files and the series registry live
	// under.
	NotesDir string `json:"notes_dir" yaml:"notes_dir"`

	// TitleSimilarity is the minimum token-set similarity between
	// normalized titles for a fingerprint to match an existing series
	// (default 0.8). Organizer and time slot must match exactly regardless.
	TitleSimilarity float64 `json:"title_similarity" yaml:"title_similarity"`
}

// ExtractConfig holds settings for the smart extractor.
type ExtractConfig struct {
	// NotesDir is the directory saved meeting files live under.
	NotesDir string `json:"notes_dir" yaml:"notes_dir"`

	// DocTitleSimilarity is the minimum title similarity for matching a
	// current persistent document to its previous counterpart when no URL
	// match exists (default 0.7).
	DocTitleSimilarity float64 `json:"doc_title_similarity" yaml:"doc_title_similarity"`

	// SectionSimilarity is the minimum title similarity for matching a
	// section to its previous counterpart (default 0.8).
	SectionSimilarity float64 `json:"section_similarity" yaml:"section_similarity"`

	// ContentChangeThreshold is the fraction of change below which a
	// matched section is considered unchanged and dropped (default 0.3):
	// a section is retained when its similarity to the previous version
	// falls below 1 - ContentChangeThreshold.
	ContentChangeThreshold float64 `json:"content_change_threshold" yaml:"content_change_threshold"`

	// MinNewContentWords is the minimum retained word count for a
	// persistent document's changes to be worth keeping (default 10).
	MinNewContentWords int `json:"min_new_content_words" yaml:"min_new_content_words"`
}

// EngineConfig groups all component configurations.
type EngineConfig struct {
	// NotesDir is the base directory for saved meeting notes, the series
	// registry, and the content cache (default "meeting_notes").
	NotesDir string `json:"notes_dir" yaml:"notes_dir"`

	// LogLevel selects the zerolog level (default "info").
	LogLevel string `json:"log_level" yaml:"log_level"`

	Cache   CacheConfig   `json:"cache" yaml:"cache"`
	Diff    DiffConfig    `json:"diff" yaml:"diff"`
	Series  SeriesConfig  `json:"series" yaml:"series"`
	Extract ExtractConfig `json:"extract" yaml:"extract"`
}

// DefaultEngineConfig returns the engine defaults; callers overlay config
// file and flag values on top.
func DefaultEngineConfig(notesDir string) EngineConfig {
	if notesDir == "" {
		notesDir = "meeting_notes"
	}
	return EngineConfig{
		NotesDir: notesDir,
		LogLevel: "info",
		Cache: CacheConfig{
			Dir:           notesDir,
			Compress:      true,
			RetentionDays: 180,
		},
		Diff: DiffConfig{
			ParagraphSimilarity: 0.85,
		},
		Series: SeriesConfig{
			NotesDir:        notesDir,
			TitleSimilarity: 0.8,
		},
		Extract: ExtractConfig{
			NotesDir:               notesDir,
			DocTitleSimilarity:     0.7,
			SectionSimilarity:      0.8,
			ContentChangeThreshold: 0.3,
			MinNewContentWords:     10,
		},
	}
}
