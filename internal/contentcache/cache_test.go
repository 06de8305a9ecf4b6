// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package contentcache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/meeting-notes-engine/internal/logging"
	"github.com/pdiddy/meeting-notes-engine/internal/signature"
	"github.com/pdiddy/meeting-notes-engine/pkg/types"
)

func newTestCache(t *testing.T, compress bool) *Cache {
	t.Helper()
	c, err := New(types.CacheConfig{
		Dir:           t.TempDir(),
		Compress:      compress,
		RetentionDays: 180,
	}, logging.Nop())
	require.NoError(t, err)
	return c
}

func testSignature(id string) types.ContentSignature {
	return signature.Build(id, "# Agenda\n\nDiscuss roadmap priorities.\n", "2026-08-24T09:00:00Z")
}

func TestStoreAndGetCompressed(t *testing.T) {
	c := newTestCache(t, true)
	sig := testSignature("meeting-1")

	require.NoError(t, c.Store("series-a", "2026-08-24", sig))

	got, ok := c.Get("series-a", "2026-08-24")
	require.True(t, ok)
	assert.Equal(t, sig, got)
}

func TestStoreAndGetUncompressed(t *testing.T) {
	c := newTestCache(t, false)
	sig := testSignature("meeting-1")

	require.NoError(t, c.Store("series-a", "2026-08-24", sig))

	// The entry is readable and only the uncompressed file exists.
	got, ok := c.Get("series-a", "2026-08-24")
	require.True(t, ok)
	assert.Equal(t, sig, got)

	_, err := os.Stat(filepath.Join(c.root, "series-a", "2026-08-24_content.json.gz"))
	assert.True(t, os.IsNotExist(err))
}

func TestGetMissing(t *testing.T) {
	c := newTestCache(t, true)

	_, ok := c.Get("series-a", "2026-08-24")
	assert.False(t, ok)
	assert.False(t, c.Has("series-a", "2026-08-24"))
}

func TestGetCorruptEntryDegradesToNotFound(t *testing.T) {
	c := newTestCache(t, true)
	require.NoError(t, c.Store("series-a", "2026-08-24", testSignature("m1")))

	path := filepath.Join(c.root, "series-a", "2026-08-24_content.json.gz")
	require.NoError(t, os.WriteFile(path, []byte("not gzip at all"), 0o644))

	_, ok := c.Get("series-a", "2026-08-24")
	assert.False(t, ok)
}

func TestHas(t *testing.T) {
	c := newTestCache(t, true)
	require.NoError(t, c.Store("series-a", "2026-08-24", testSignature("m1")))

	assert.True(t, c.Has("series-a", "2026-08-24"))
	assert.False(t, c.Has("series-a", "2026-08-17"))
	assert.False(t, c.Has("series-b", "2026-08-24"))
}

func TestLatestOrderAndLimit(t *testing.T) {
	c := newTestCache(t, true)
	for _, date := range []string{"2026-08-10", "2026-08-24", "2026-08-17"} {
		require.NoError(t, c.Store("series-a", date, testSignature("m-"+date)))
	}

	latest := c.Latest("series-a", 2)
	require.Len(t, latest, 2)
	assert.Equal(t, "m-2026-08-24", latest[0].MeetingID)
	assert.Equal(t, "m-2026-08-17", latest[1].MeetingID)

	all := c.Latest("series-a", 10)
	assert.Len(t, all, 3)

	assert.Empty(t, c.Latest("missing-series", 10))
}

func TestLatestSkipsMalformedFilenames(t *testing.T) {
	c := newTestCache(t, true)
	require.NoError(t, c.Store("series-a", "2026-08-24", testSignature("m1")))

	junk := filepath.Join(c.root, "series-a", "notadate_content.json.gz")
	require.NoError(t, os.WriteFile(junk, []byte("x"), 0o644))

	latest := c.Latest("series-a", 10)
	require.Len(t, latest, 1)
	assert.Equal(t, "m1", latest[0].MeetingID)
}

func TestInRange(t *testing.T) {
	c := newTestCache(t, true)
	for _, date := range []string{"2026-08-10", "2026-08-17", "2026-08-24"} {
		require.NoError(t, c.Store("series-a", date, testSignature("m-"+date)))
	}

	got := c.InRange("series-a", "2026-08-11", "2026-08-24")
	require.Len(t, got, 2)
	assert.Equal(t, "m-2026-08-17", got[0].MeetingID)
	assert.Equal(t, "m-2026-08-24", got[1].MeetingID)

	assert.Empty(t, c.InRange("series-a", "bogus", "2026-08-24"))
}

func TestCleanupOlderThan(t *testing.T) {
	c := newTestCache(t, true)
	freshDate := time.Now().AddDate(0, 0, -1).Format(dateLayout)
	staleDate := time.Now().AddDate(0, 0, -200).Format(dateLayout)
	ancientDate := time.Now().AddDate(-2, 0, 0).Format(dateLayout)

	require.NoError(t, c.Store("series-a", staleDate, testSignature("old")))
	require.NoError(t, c.Store("series-a", freshDate, testSignature("new")))
	require.NoError(t, c.Store("series-b", ancientDate, testSignature("ancient")))

	removed, err := c.CleanupOlderThan(180)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	assert.False(t, c.Has("series-a", staleDate))
	assert.True(t, c.Has("series-a", freshDate))

	// series-b is empty after cleanup and its directory is pruned.
	_, err = os.Stat(filepath.Join(c.root, "series-b"))
	assert.True(t, os.IsNotExist(err))
}

func TestStatistics(t *testing.T) {
	c := newTestCache(t, true)
	require.NoError(t, c.Store("series-a", "2026-08-17", testSignature("m1")))
	require.NoError(t, c.Store("series-a", "2026-08-24", testSignature("m2")))
	require.NoError(t, c.Store("series-b", "2026-08-24", testSignature("m3")))

	stats := c.Statistics()
	assert.Equal(t, 2, stats.TotalSeries)
	assert.Equal(t, 3, stats.TotalSignatures)
	assert.Greater(t, stats.TotalSizeBytes, int64(0))
	assert.Equal(t, 2, stats.SeriesDetails["series-a"].SignatureCount)
	assert.Equal(t, 1, stats.SeriesDetails["series-b"].SignatureCount)
}
