package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/thenoetrevino/arbor/internal/models"
)

var (
	jan = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	mar = time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	jun = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
)

func sampleSpecies() []models.Species {
	return []models.Species{
		{ID: 1, CommonName: "Pino Candelabro", ScientificName: "Pinus ayacahuite", ZoneID: 1, ConservationStateID: 2, Active: true, CreatedAt: jan},
		{ID: 2, CommonName: "Roble Blanco", ScientificName: "Quercus alba", ZoneID: 2, ConservationStateID: 1, Active: false, CreatedAt: mar},
		{ID: 3, CommonName: "Caoba", ScientificName: "Swietenia macrophylla", ZoneID: 1, ConservationStateID: 3, Active: true, CreatedAt: jun},
		{ID: 4, CommonName: "Ceiba", ZoneID: 2, ConservationStateID: 1, Active: true},
	}
}

func ids(species []models.Species) []int {
	out := make([]int, len(species))
	for i, s := range species {
		out[i] = s.ID
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter models.SearchFilter
		want   []int
	}{
		{
			name:   "empty filter returns everything in order",
			filter: models.SearchFilter{},
			want:   []int{1, 2, 3, 4},
		},
		{
			name:   "name query is case-insensitive",
			filter: models.SearchFilter{NameQuery: "PIN"},
			want:   []int{1},
		},
		{
			name:   "name query matches scientific name",
			filter: models.SearchFilter{NameQuery: "quercus"},
			want:   []int{2},
		},
		{
			name:   "whitespace-only name query is unset",
			filter: models.SearchFilter{NameQuery: "   "},
			want:   []int{1, 2, 3, 4},
		},
		{
			name:   "zone exact match",
			filter: models.SearchFilter{ZoneID: models.Ptr(1)},
			want:   []int{1, 3},
		},
		{
			name:   "conservation state exact match",
			filter: models.SearchFilter{ConservationStateID: models.Ptr(1)},
			want:   []int{2, 4},
		},
		{
			name:   "active only excludes soft-deleted",
			filter: models.SearchFilter{ActiveOnly: models.Ptr(true)},
			want:   []int{1, 3, 4},
		},
		{
			name:   "active only false places no restriction",
			filter: models.SearchFilter{ActiveOnly: models.Ptr(false)},
			want:   []int{1, 2, 3, 4},
		},
		{
			name:   "created after is inclusive and drops undated",
			filter: models.SearchFilter{CreatedAfter: models.Ptr(mar)},
			want:   []int{2, 3},
		},
		{
			name:   "created before is inclusive and drops undated",
			filter: models.SearchFilter{CreatedBefore: models.Ptr(mar)},
			want:   []int{1, 2},
		},
		{
			name: "date window",
			filter: models.SearchFilter{
				CreatedAfter:  models.Ptr(jan.Add(time.Hour)),
				CreatedBefore: models.Ptr(jun.Add(-time.Hour)),
			},
			want: []int{2},
		},
		{
			name: "criteria combine with AND",
			filter: models.SearchFilter{
				ZoneID:     models.Ptr(2),
				ActiveOnly: models.Ptr(true),
			},
			want: []int{4},
		},
		{
			name:   "no match",
			filter: models.SearchFilter{NameQuery: "eucalipto"},
			want:   []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(sampleSpecies(), tt.filter)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestMatches_PinoCandelabro(t *testing.T) {
	s := models.Species{CommonName: "Pino Candelabro"}
	assert.True(t, Matches(s, models.SearchFilter{NameQuery: "PIN"}))
	assert.True(t, Matches(s, models.SearchFilter{NameQuery: "candel"}))
	assert.False(t, Matches(s, models.SearchFilter{NameQuery: "roble"}))
}

func TestFilter_NilInput(t *testing.T) {
	assert.Empty(t, Filter(nil, models.SearchFilter{NameQuery: "x"}))
}
