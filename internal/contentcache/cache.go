// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package contentcache persists content signatures per meeting series and
// date, one gzip-compressed JSON file per occurrence under a hidden
// directory in the notes tree. Retrieval failures of any kind degrade to
// not-found so a corrupt or missing entry only costs a re-extraction.
package contentcache

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/meeting-notes-engine/pkg/types"
)

// cacheSubdir is the hidden directory that holds all cached signatures.
const cacheSubdir = ".meeting_content_cache"

// dateLayout is the meeting date format used in cache filenames.
const dateLayout = "2006-01-02"

// Cache stores and retrieves content signatures keyed by series and date.
type Cache struct {
	root          string
	compress      bool
	retentionDays int
	log           zerolog.Logger
}

// SeriesStats describes one series directory inside the cache.
type SeriesStats struct {
	SignatureCount int   `json:"signature_count"`
	SizeBytes      int64 `json:"size_bytes"`
}

// Stats summarizes the whole cache.
type Stats struct {
	TotalSeries     int                    `json:"total_series"`
	TotalSignatures int                    `json:"total_signatures"`
	TotalSizeBytes  int64                  `json:"total_size_bytes"`
	SeriesDetails   map[string]SeriesStats `json:"series_details"`
}

// New creates the cache rooted under cfg.Dir, creating the hidden cache
// directory if needed.
func New(cfg types.CacheConfig, log zerolog.Logger) (*Cache, error) {
	root := filepath.Join(cfg.Dir, cacheSubdir)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory %s: %w", root, err)
	}

	retention := cfg.RetentionDays
	if retention <= 0 {
		retention = 180
	}

	return &Cache{
		root:          root,
		compress:      cfg.Compress,
		retentionDays: retention,
		log:           log,
	}, nil
}

// Store writes the signature for one (series, date) occurrence, replacing
// any previous entry for that date.
func (c *Cache) Store(seriesID, meetingDate string, sig types.ContentSignature) error {
	seriesDir := filepath.Join(c.root, seriesID)
	if err := os.MkdirAll(seriesDir, 0o755); err != nil {
		return fmt.Errorf("creating series directory: %w", err)
	}

	path := filepath.Join(seriesDir, entryFilename(meetingDate, c.compress))
	data, err := json.MarshalIndent(sig, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding signature: %w", err)
	}

	if c.compress {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating cache entry: %w", err)
		}
		zw := gzip.NewWriter(f)
		if _, err := zw.Write(data); err != nil {
			f.Close()
			return fmt.Errorf("writing cache entry: %w", err)
		}
		if err := zw.Close(); err != nil {
			f.Close()
			return fmt.Errorf("flushing cache entry: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("closing cache entry: %w", err)
		}
	} else {
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("writing cache entry: %w", err)
		}
	}

	c.log.Debug().Str("series", seriesID).Str("date", meetingDate).Msg("stored content signature")
	return nil
}

// Get retrieves the signature for one (series, date) occurrence. The
// compressed form is tried first, then the uncompressed fallback. Any read
// or decode failure reports not-found.
func (c *Cache) Get(seriesID, meetingDate string) (types.ContentSignature, bool) {
	seriesDir := filepath.Join(c.root, seriesID)

	if sig, ok := c.readEntry(filepath.Join(seriesDir, entryFilename(meetingDate, true)), true); ok {
		return sig, true
	}
	return c.readEntry(filepath.Join(seriesDir, entryFilename(meetingDate, false)), false)
}

// Has reports whether an entry exists for the (series, date) pair, in
// either compressed or uncompressed form.
func (c *Cache) Has(seriesID, meetingDate string) bool {
	seriesDir := filepath.Join(c.root, seriesID)
	for _, compressed := range []bool{true, false} {
		if _, err := os.Stat(filepath.Join(seriesDir, entryFilename(meetingDate, compressed))); err == nil {
			return true
		}
	}
	return false
}

// Latest returns up to limit signatures for the series, most recent date
// first. Files whose names do not parse as dates are skipped.
func (c *Cache) Latest(seriesID string, limit int) []types.ContentSignature {
	dates := c.entryDates(seriesID)
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	if limit > 0 && len(dates) > limit {
		dates = dates[:limit]
	}

	var signatures []types.ContentSignature
	for _, date := range dates {
		if sig, ok := c.Get(seriesID, date); ok {
			signatures = append(signatures, sig)
		}
	}
	return signatures
}

// InRange returns the series signatures with dates in [startDate, endDate],
// ascending. Malformed bounds yield an empty result.
func (c *Cache) InRange(seriesID, startDate, endDate string) []types.ContentSignature {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return nil
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return nil
	}

	var signatures []types.ContentSignature
	for cur := start; !cur.After(end); cur = cur.AddDate(0, 0, 1) {
		if sig, ok := c.Get(seriesID, cur.Format(dateLayout)); ok {
			signatures = append(signatures, sig)
		}
	}
	return signatures
}

// CleanupOlderThan deletes entries whose filename date is older than the
// given number of days (the configured retention when days <= 0) and prunes
// series directories left empty. It returns the number of entries removed.
func (c *Cache) CleanupOlderThan(days int) (int, error) {
	if days <= 0 {
		days = c.retentionDays
	}
	cutoff := time.Now().AddDate(0, 0, -days)

	seriesDirs, err := os.ReadDir(c.root)
	if err != nil {
		return 0, fmt.Errorf("reading cache directory: %w", err)
	}

	removed := 0
	for _, dir := range seriesDirs {
		if !dir.IsDir() {
			continue
		}
		seriesDir := filepath.Join(c.root, dir.Name())

		entries, err := os.ReadDir(seriesDir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			date, ok := entryDate(entry.Name())
			if !ok {
				continue
			}
			fileDate, err := time.Parse(dateLayout, date)
			if err != nil {
				c.log.Warn().Str("file", entry.Name()).Msg("invalid date in cache filename")
				continue
			}
			if fileDate.Before(cutoff) {
				if err := os.Remove(filepath.Join(seriesDir, entry.Name())); err == nil {
					removed++
				}
			}
		}

		remaining, err := os.ReadDir(seriesDir)
		if err == nil && len(remaining) == 0 {
			os.Remove(seriesDir)
		}
	}

	c.log.Info().Int("removed", removed).Msg("cleaned up old cache entries")
	return removed, nil
}

// Statistics walks the cache and tallies entry counts and sizes per series.
func (c *Cache) Statistics() Stats {
	stats := Stats{SeriesDetails: make(map[string]SeriesStats)}

	seriesDirs, err := os.ReadDir(c.root)
	if err != nil {
		return stats
	}

	for _, dir := range seriesDirs {
		if !dir.IsDir() {
			continue
		}
		stats.TotalSeries++

		var detail SeriesStats
		entries, err := os.ReadDir(filepath.Join(c.root, dir.Name()))
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if _, ok := entryDate(entry.Name()); !ok {
				continue
			}
			detail.SignatureCount++
			if info, err := entry.Info(); err == nil {
				detail.SizeBytes += info.Size()
			}
		}

		stats.TotalSignatures += detail.SignatureCount
		stats.TotalSizeBytes += detail.SizeBytes
		stats.SeriesDetails[dir.Name()] = detail
	}

	return stats
}

// readEntry loads one cache file. Every failure degrades to not-found.
func (c *Cache) readEntry(path string, compressed bool) (types.ContentSignature, bool) {
	f, err := os.Open(path)
	if err != nil {
		return types.ContentSignature{}, false
	}
	defer f.Close()

	var sig types.ContentSignature
	if compressed {
		zr, err := gzip.NewReader(f)
		if err != nil {
			c.log.Error().Err(err).Str("path", path).Msg("opening cache entry")
			return types.ContentSignature{}, false
		}
		defer zr.Close()
		err = json.NewDecoder(zr).Decode(&sig)
		if err != nil {
			c.log.Error().Err(err).Str("path", path).Msg("decoding cache entry")
			return types.ContentSignature{}, false
		}
	} else {
		if err := json.NewDecoder(f).Decode(&sig); err != nil {
			c.log.Error().Err(err).Str("path", path).Msg("decoding cache entry")
			return types.ContentSignature{}, false
		}
	}
	return sig, true
}

// entryDates lists the parseable dates present in a series directory.
func (c *Cache) entryDates(seriesID string) []string {
	entries, err := os.ReadDir(filepath.Join(c.root, seriesID))
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var dates []string
	for _, entry := range entries {
		date, ok := entryDate(entry.Name())
		if !ok {
			continue
		}
		if _, err := time.Parse(dateLayout, date); err != nil {
			c.log.Warn().Str("file", entry.Name()).Msg("invalid date in cache filename")
			continue
		}
		if !seen[date] {
			seen[date] = true
			dates = append(dates, date)
		}
	}
	return dates
}

func entryFilename(meetingDate string, compressed bool) string {
	name := meetingDate + "_content.json"
	if compressed {
		name += ".gz"
	}
	return name
}

// entryDate extracts the date prefix from a cache filename, accepting both
// compressed and uncompressed suffixes.
func entryDate(name string) (string, bool) {
	if !strings.HasSuffix(name, "_content.json") && !strings.HasSuffix(name, "_content.json.gz") {
		return "", false
	}
	date, _, ok := strings.Cut(name, "_")
	return date, ok
}
