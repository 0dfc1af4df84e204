package filmweb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseYear(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Year
	}{
		{"single year", "2015", Year{2015, 2015}},
		{"padded", "  1999 ", Year{1999, 1999}},
		{"range", "2015-2019", Year{2015, 2019}},
		{"range with spaces", "2015 - 2019", Year{2015, 2019}},
		{"open range collapses", "2015-", Year{2015, 2015}},
		{"garbage end collapses", "2015-abc", Year{2015, 2015}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseYear(tt.input, 42)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseYear_Unparseable(t *testing.T) {
	_, err := ParseYear("abc", 42)
	require.Error(t, err)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 42, pe.TitleID)
	assert.Equal(t, "year", pe.Field)
	assert.Contains(t, pe.Error(), "42")
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		items int
		want  int
	}{
		{0, 1},
		{1, 1},
		{24, 1},
		{25, 2},
		{26, 2},
		{250, 11},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PageCount(tt.items), "items=%d", tt.items)
	}
}

func TestCategory(t *testing.T) {
	assert.Equal(t, "films", Films.pathSegment())
	assert.Equal(t, "serials", Serials.pathSegment())
	assert.Equal(t, "wantToSee", WantToSee.pathSegment())

	assert.Equal(t, "film", Films.voteKind())
	assert.Equal(t, "serial", Serials.voteKind())
}
