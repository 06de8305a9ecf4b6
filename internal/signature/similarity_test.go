// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package signature

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestTokenJaccard(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{"identical", "weekly team sync", "weekly team sync", 1.0},
		{"case insensitive", "Weekly Team Sync", "weekly team sync", 1.0},
		{"disjoint", "alpha beta", "gamma delta", 0.0},
		{"half overlap", "alpha beta", "alpha gamma", 1.0 / 3.0},
		{"both empty", "", "", 1.0},
		{"one empty", "alpha", "", 0.0},
		{"duplicate tokens collapse", "go go go", "go", 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TokenJaccard(tt.a, tt.b); !almostEqual(got, tt.want) {
				t.Errorf("TokenJaccard(%q, %q) = %f, want %f", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestTokenJaccardSymmetric(t *testing.T) {
	a, b := "standup engineering team", "standup platform team"
	if !almostEqual(TokenJaccard(a, b), TokenJaccard(b, a)) {
		t.Error("TokenJaccard is not symmetric")
	}
}

func TestSequenceRatio(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{"identical", "review the budget", "review the budget", 1.0},
		{"both empty", "", "", 1.0},
		{"one empty", "text", "", 0.0},
		{"disjoint", "aaa", "bbb", 0.0},
		// LCS("abcd","abed") = "abd" (3): 2*3/8.
		{"single substitution", "abcd", "abed", 0.75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SequenceRatio(tt.a, tt.b); !almostEqual(got, tt.want) {
				t.Errorf("SequenceRatio(%q, %q) = %f, want %f", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSequenceRatioCaseSensitive(t *testing.T) {
	if SequenceRatio("ABC", "abc") >= 1.0 {
		t.Error("SequenceRatio must be case-sensitive; callers lowercase")
	}
}

func TestSequenceRatioSmallEdit(t *testing.T) {
	// Appending a few words to a long paragraph keeps the ratio high.
	a := "alice will prepare the quarterly report and circulate it to the team"
	b := a + " by friday"
	if got := SequenceRatio(a, b); got < 0.9 {
		t.Errorf("SequenceRatio = %f, want >= 0.9 for a small append", got)
	}
}
