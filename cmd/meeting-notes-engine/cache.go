// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/meeting-notes-engine/internal/contentcache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and maintain the content signature cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache entry counts and sizes per series",
	RunE:  runCacheStats,
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	cfg := engineConfig(cmd)
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}

	cache, err := contentcache.New(cfg.Cache, log)
	if err != nil {
		return err
	}

	stats := cache.Statistics()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	fmt.Printf("Series: %d\n", stats.TotalSeries)
	fmt.Printf("Signatures: %d\n", stats.TotalSignatures)
	fmt.Printf("Size: %d bytes\n", stats.TotalSizeBytes)
	for id, detail := range stats.SeriesDetails {
		fmt.Printf("  %s: %d signatures, %d bytes\n", id, detail.SignatureCount, detail.SizeBytes)
	}
	return nil
}

var cacheCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete cache entries older than the retention window",
	RunE:  runCacheCleanup,
}

func runCacheCleanup(cmd *cobra.Command, args []string) error {
	cfg := engineConfig(cmd)
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}

	cache, err := contentcache.New(cfg.Cache, log)
	if err != nil {
		return err
	}

	days, _ := cmd.Flags().GetInt("days")
	removed, err := cache.CleanupOlderThan(days)
	if err != nil {
		return err
	}

	fmt.Printf("Removed %d cache entries\n", removed)
	return nil
}

func init() {
	cacheStatsCmd.Flags().Bool("json", false, "output as JSON")
	cacheCleanupCmd.Flags().Int("days", 0, "retention in days (0 = configured default)")

	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheCleanupCmd)

	rootCmd.AddCommand(cacheCmd)
}
