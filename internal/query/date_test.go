package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want Date
	}{
		{"2005", Year(2005)},
		{"2005-03", YearMonth(2005, 3)},
		{"2005-03-14", YearMonthDay(2005, 3, 14)},
		{"0001-1-1", YearMonthDay(1, 1, 1)},
		{"2000-02-29", YearMonthDay(2000, 2, 29)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDate_Invalid(t *testing.T) {
	tests := []struct {
		in   string
		kind ParseErrorKind
	}{
		{"1900-02-29", InvalidDate},
		{"2005-00", InvalidDate},
		{"2005-04-31", InvalidDate},
		{"2005-01-00", InvalidDate},
		{"20050", InvalidDate},
		{"2005-x", IntegerError},
		{"2005-1-2-3", InvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := ParseDate(tt.in)
			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.kind, perr.Kind)
			assert.Equal(t, -1, perr.Pos)
		})
	}
}

func TestDate_Compare(t *testing.T) {
	ordered := []Date{
		Year(1999),
		YearMonth(1999, 12),
		YearMonthDay(1999, 12, 31),
		Year(2005),
		YearMonth(2005, 1),
		YearMonthDay(2005, 1, 1),
		YearMonthDay(2005, 1, 2),
		YearMonth(2005, 2),
		Year(2006),
	}
	for i := range ordered {
		assert.Zero(t, ordered[i].Compare(ordered[i]), "%s", ordered[i])
		for j := i + 1; j < len(ordered); j++ {
			assert.Negative(t, ordered[i].Compare(ordered[j]), "%s < %s", ordered[i], ordered[j])
			assert.Positive(t, ordered[j].Compare(ordered[i]), "%s > %s", ordered[j], ordered[i])
		}
	}
}

func TestDate_String(t *testing.T) {
	assert.Equal(t, "0987", Year(987).String())
	assert.Equal(t, "2005-03", YearMonth(2005, 3).String())
	assert.Equal(t, "2005-03-04", YearMonthDay(2005, 3, 4).String())
}
