// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the meeting-notes-engine CLI.
// Each engine stage is a subcommand: extract, diff, series, cache, and
// classify.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/meeting-notes-engine/internal/logging"
	"github.com/pdiddy/meeting-notes-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the meeting-notes-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "meeting-notes-engine",
	Short: "Change detection and versioning for recurring meeting notes",
	Long: `meeting-notes-engine tracks recurring meetings and extracts only the
content that is genuinely new in each occurrence. It fingerprints meetings
into series, caches per-occurrence content signatures, diffs occurrences
section by section, and filters meeting documents down to their new parts.

Each engine stage is a subcommand: extract, diff, series, cache, and
classify.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./meeting-notes-engine.yaml or ~/.config/meeting-notes-engine/config.yaml)")
	rootCmd.PersistentFlags().String("notes-dir", "", "base directory for meeting notes (default: meeting_notes)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn, error (default: info)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("meeting-notes-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "meeting-notes-engine"))
		}
	}

	viper.SetEnvPrefix("MEETING_NOTES_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// engineConfig overlays config file and flag values on the defaults.
func engineConfig(cmd *cobra.Command) types.EngineConfig {
	notesDir, _ := cmd.Flags().GetString("notes-dir")
	if notesDir == "" {
		notesDir = viper.GetString("notes_dir")
	}

	cfg := types.DefaultEngineConfig(notesDir)

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	} else if level := viper.GetString("log_level"); level != "" {
		cfg.LogLevel = level
	}

	if v := viper.GetFloat64("diff.paragraph_similarity"); v > 0 {
		cfg.Diff.ParagraphSimilarity = v
	}
	if v := viper.GetFloat64("series.title_similarity"); v > 0 {
		cfg.Series.TitleSimilarity = v
	}
	if v := viper.GetFloat64("extract.doc_title_similarity"); v > 0 {
		cfg.Extract.DocTitleSimilarity = v
	}
	if v := viper.GetFloat64("extract.section_similarity"); v > 0 {
		cfg.Extract.SectionSimilarity = v
	}
	if v := viper.GetFloat64("extract.content_change_threshold"); v > 0 {
		cfg.Extract.ContentChangeThreshold = v
	}
	if v := viper.GetInt("extract.min_new_content_words"); v > 0 {
		cfg.Extract.MinNewContentWords = v
	}
	if v := viper.GetInt("cache.retention_days"); v > 0 {
		cfg.Cache.RetentionDays = v
	}
	if viper.IsSet("cache.compress") {
		cfg.Cache.Compress = viper.GetBool("cache.compress")
	}

	return cfg
}

func newLogger(cfg types.EngineConfig) (zerolog.Logger, error) {
	return logging.New(cfg.LogLevel, true)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
