package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchResult_Empty(t *testing.T) {
	tests := []struct {
		name   string
		result SearchResult
		empty  bool
	}{
		{"nothing", SearchResult{Query: "zzz"}, true},
		{"empty other", SearchResult{Query: "zzz", Other: []PackageName{}}, true},
		{"exact", SearchResult{Query: "gnubg", Exact: &PackageName{Name: "gnubg"}}, false},
		{"other", SearchResult{Query: "gnu", Other: []PackageName{{Name: "gnubg"}}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.empty, tt.result.Empty())
		})
	}
}
