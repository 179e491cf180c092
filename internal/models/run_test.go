package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListRunsQuery_Normalize_WhenOutOfRange_ThenClamps(t *testing.T) {
	tests := []struct {
		name      string
		query     ListRunsQuery
		wantPage  int
		wantLimit int
	}{
		{name: "zero values", query: ListRunsQuery{}, wantPage: 1, wantLimit: 20},
		{name: "negative page", query: ListRunsQuery{Page: -3, Limit: 10}, wantPage: 1, wantLimit: 10},
		{name: "limit above max", query: ListRunsQuery{Page: 2, Limit: 500}, wantPage: 2, wantLimit: 100},
		{name: "in range", query: ListRunsQuery{Page: 4, Limit: 25}, wantPage: 4, wantLimit: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.query.Normalize()
			assert.Equal(t, tt.wantPage, got.Page)
			assert.Equal(t, tt.wantLimit, got.Limit)
		})
	}
}

func TestListRunsQuery_Offset_WhenThirdPage_ThenSkipsTwoPages(t *testing.T) {
	assert.Equal(t, 20, ListRunsQuery{Page: 3, Limit: 10}.Offset())
	assert.Equal(t, 0, ListRunsQuery{}.Offset())
}

func TestNewPagination_WhenTotalNotMultipleOfLimit_ThenRoundsUp(t *testing.T) {
	// Act
	p := NewPagination(ListRunsQuery{Page: 2, Limit: 20}, 41)

	// Assert
	assert.Equal(t, Pagination{CurrentPage: 2, PageSize: 20, TotalPages: 3, TotalRecords: 41}, p)
}

func TestNewPagination_WhenNoRecords_ThenZeroPages(t *testing.T) {
	p := NewPagination(ListRunsQuery{}, 0)
	assert.Equal(t, 0, p.TotalPages)
	assert.Equal(t, 20, p.PageSize)
}

func TestValidationError_WhenFormatted_ThenMatchableByType(t *testing.T) {
	// Act
	err := NewValidationError("min_relevance must be between %d and %d", 20, 80)

	// Assert
	var ve ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Equal(t, "min_relevance must be between 20 and 80", err.Error())
}
