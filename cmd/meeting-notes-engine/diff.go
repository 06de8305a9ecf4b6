// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/meeting-notes-engine/internal/diff"
	"github.com/pdiddy/meeting-notes-engine/internal/notes"
	"github.com/pdiddy/meeting-notes-engine/internal/signature"
	"github.com/pdiddy/meeting-notes-engine/pkg/types"
)

var diffCmd = &cobra.Command{
	Use:   "diff [old file] [new file]",
	Short: "Compare two meeting note files section by section",
	Long: `Diff builds a content signature for each file and reports sections and
paragraphs added, removed, modified, and moved, plus an overall similarity
percentage. Saved meeting files have their YAML frontmatter stripped before
comparison.`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func runDiff(cmd *cobra.Command, args []string) error {
	cfg := engineConfig(cmd)

	oldSig, err := signatureFromFile(args[0])
	if err != nil {
		return err
	}
	newSig, err := signatureFromFile(args[1])
	if err != nil {
		return err
	}

	engine := diff.NewEngine(cfg.Diff)
	result := engine.Compare(oldSig, newSig)

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Print(diff.FormatSummary(result))
	return nil
}

// signatureFromFile builds the content signature of one note file, using
// the filename (without extension) as the meeting ID.
func signatureFromFile(path string) (types.ContentSignature, error) {
	parsed, err := notes.ParseMeetingFile(path)
	if err != nil {
		return types.ContentSignature{}, err
	}

	id := filepath.Base(path)
	id = id[:len(id)-len(filepath.Ext(id))]

	info, err := os.Stat(path)
	if err != nil {
		return types.ContentSignature{}, err
	}

	return signature.Build(id, parsed.Content, info.ModTime().Format("2006-01-02T15:04:05Z07:00")), nil
}

func init() {
	diffCmd.Flags().Bool("json", false, "output the full diff as JSON")

	rootCmd.AddCommand(diffCmd)
}
