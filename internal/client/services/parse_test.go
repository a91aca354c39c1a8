package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/customerconnect/internal/client/models"
	"github.com/dmitrijs2005/customerconnect/internal/common"
	"github.com/dmitrijs2005/customerconnect/internal/validation"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"7d", 7, false},
		{"30d", 30, false},
		{"90D", 90, false},
		{"1y", 365, false},
		{"365", 365, false},
		{"", 30, false},
		{"14d", 0, true},
		{"year", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRange(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, common.ErrorInvalidRange)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCriteria(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want models.SegmentCriteria
	}{
		{
			name: "single rule",
			in:   "totalSpent gte 1000",
			want: models.SegmentCriteria{Logic: "AND", Rules: []models.SegmentRule{
				{Field: "totalSpent", Operator: "gte", Value: "1000"},
			}},
		},
		{
			name: "symbols and multi-word value",
			in:   "totalSpent >= 1000 AND location contains New York",
			want: models.SegmentCriteria{Logic: "AND", Rules: []models.SegmentRule{
				{Field: "totalSpent", Operator: "gte", Value: "1000"},
				{Field: "location", Operator: "contains", Value: "New York"},
			}},
		},
		{
			name: "or",
			in:   "visits < 2 OR orderCount = 0",
			want: models.SegmentCriteria{Logic: "OR", Rules: []models.SegmentRule{
				{Field: "visits", Operator: "lt", Value: "2"},
				{Field: "orderCount", Operator: "eq", Value: "0"},
			}},
		},
		{
			name: "lower case and is part of the value",
			in:   "location contains rock and roll",
			want: models.SegmentCriteria{Logic: "AND", Rules: []models.SegmentRule{
				{Field: "location", Operator: "contains", Value: "rock and roll"},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCriteria(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCriteria_Errors(t *testing.T) {
	for _, in := range []string{
		"",
		"totalSpent gte",
		"totalSpent gte 1 AND",
		"a eq 1 AND b eq 2 OR c eq 3",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseCriteria(in)
			require.ErrorIs(t, err, common.ErrorIncorrectRule)
		})
	}

	_, err := ParseCriteria("shoeSize between 40")
	require.ErrorIs(t, err, common.ErrorIncorrectRule)
	var ve *validation.Error
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "field")
	assert.Contains(t, ve.Fields, "operator")
}
