package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguageShares(t *testing.T) {
	testCases := []struct {
		name      string
		languages map[string]int
		wantOrder []string
	}{
		{
			name:      "sorted by descending bytes",
			languages: map[string]int{"Go": 700, "Shell": 100, "Python": 200},
			wantOrder: []string{"Go", "Python", "Shell"},
		},
		{
			name:      "ties broken by name",
			languages: map[string]int{"Ruby": 50, "C": 50, "Go": 50},
			wantOrder: []string{"C", "Go", "Ruby"},
		},
		{
			name:      "uneven thirds",
			languages: map[string]int{"A": 1, "B": 1, "C": 1},
			wantOrder: []string{"A", "B", "C"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			shares := LanguageShares(tc.languages)

			names := make([]string, 0, len(shares))
			sum := 0.0
			for _, s := range shares {
				names = append(names, s.Name)
				sum += s.Percent
				assert.Equal(t, tc.languages[s.Name], s.Bytes)
			}
			assert.Equal(t, tc.wantOrder, names)
			assert.InDelta(t, 100.0, sum, 0.01)
		})
	}
}

func TestLanguageShares_ZeroTotal(t *testing.T) {
	shares := LanguageShares(map[string]int{"Go": 0, "Text": 0})
	require.Len(t, shares, 2)
	for _, s := range shares {
		assert.Equal(t, 0.0, s.Percent)
	}

	assert.Empty(t, LanguageShares(map[string]int{}))
	assert.Empty(t, LanguageShares(nil))
}

func TestContributors_String(t *testing.T) {
	assert.Equal(t, "42", Contributors{Count: 42, Available: true}.String())
	assert.Equal(t, "0", Contributors{Available: true}.String())
	assert.Equal(t, "Unavailable", Contributors{}.String())
}

func TestFileEntry_IsDir(t *testing.T) {
	assert.True(t, FileEntry{Type: EntryDir}.IsDir())
	assert.False(t, FileEntry{Type: EntryFile}.IsDir())
	assert.False(t, FileEntry{Type: "symlink"}.IsDir())
}
