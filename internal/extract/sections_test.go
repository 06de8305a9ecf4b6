// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSections(t *testing.T) {
	content := "# Goals\n\nShip the launch.\n\n## Milestones\n\nAlpha by June.\n"
	sections := ParseSections(content)
	require.Len(t, sections, 2)

	assert.Equal(t, "Goals", sections[0].Title)
	assert.Equal(t, 1, sections[0].Level)
	assert.Contains(t, sections[0].Content, "Ship the launch.")

	assert.Equal(t, "Milestones", sections[1].Title)
	assert.Equal(t, 2, sections[1].Level)
	assert.Contains(t, sections[1].Content, "Alpha by June.")
}

func TestParseSectionsNoHeadersFallback(t *testing.T) {
	sections := ParseSections("just some text\nwith no headers")
	require.Len(t, sections, 1)
	assert.Equal(t, "Content", sections[0].Title)
	assert.Equal(t, 1, sections[0].Level)
	assert.Equal(t, "just some text\nwith no headers", sections[0].Content)
}

func TestParseSectionsEmpty(t *testing.T) {
	assert.Empty(t, ParseSections(""))
	assert.Empty(t, ParseSections("   \n  \n"))
}

func TestParseSectionsLineRanges(t *testing.T) {
	content := "# A\nline one\n# B\nline two"
	sections := ParseSections(content)
	require.Len(t, sections, 2)
	assert.Equal(t, 0, sections[0].StartLine)
	assert.Equal(t, 1, sections[0].EndLine)
	assert.Equal(t, 2, sections[1].StartLine)
	assert.Equal(t, 3, sections[1].EndLine)
}

func TestRenderSections(t *testing.T) {
	sections := []ContentSection{
		{Title: "Risks", Level: 1, Content: "\nVendor contract pending.\n"},
		{Title: "Notes", Level: 2, Content: ""},
	}
	out := renderSections(sections)
	assert.Equal(t, "# Risks\nVendor contract pending.\n\n## Notes", out)
}

func TestCountSections(t *testing.T) {
	assert.Equal(t, 2, CountSections("# A\nx\n# B\ny"))
	assert.Equal(t, 1, CountSections("no headers, one fallback section"))
	assert.Equal(t, 0, CountSections(""))
}
