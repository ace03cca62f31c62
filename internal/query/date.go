package query

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

// Precision tells which components of a Date are meaningful.
type Precision uint8

const (
	PrecisionYear Precision = iota + 1
	PrecisionMonth
	PrecisionDay
)

// Date is a calendar date known to year, month or day precision.
// A bare year and a year+month are distinct values even when they describe
// overlapping periods.
type Date struct {
	Year      uint32
	Month     uint8
	Day       uint8
	Precision Precision
}

// Year returns a year-precision date.
func Year(y uint32) Date { return Date{Year: y, Precision: PrecisionYear} }

// YearMonth returns a month-precision date.
func YearMonth(y uint32, m uint8) Date {
	return Date{Year: y, Month: m, Precision: PrecisionMonth}
}

// YearMonthDay returns a day-precision date.
func YearMonthDay(y uint32, m, d uint8) Date {
	return Date{Year: y, Month: m, Day: d, Precision: PrecisionDay}
}

func (Date) Kind() Kind { return KindDate }
func (Date) isValue()   {}

func (d Date) String() string {
	switch d.Precision {
	case PrecisionMonth:
		return fmt.Sprintf("%04d-%02d", d.Year, d.Month)
	case PrecisionDay:
		return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
	default:
		return fmt.Sprintf("%04d", d.Year)
	}
}

// Compare orders dates by year, then month, then day. Components beyond a
// date's precision count as zero, so a bare year sorts before every month
// of that year: 2005 < 2005-01 < 2005-01-01 < 2005-02 < 2006.
// Compare returns 0 only for identical dates.
func (d Date) Compare(o Date) int {
	return cmp.Or(
		cmp.Compare(d.Year, o.Year),
		cmp.Compare(d.Month, o.Month),
		cmp.Compare(d.Day, o.Day),
		cmp.Compare(d.Precision, o.Precision),
	)
}

// ParseDate parses YYYY, YYYY-MM or YYYY-MM-DD.
// Non-numeric components fail with IntegerError; wrong shapes and
// out-of-range months or days fail with InvalidDate.
func ParseDate(s string) (Date, error) {
	parts := strings.Split(s, "-")
	if len(parts) > 3 || len(parts[0]) != 4 {
		return Date{}, dateErr(InvalidDate, s)
	}

	nums := make([]uint64, len(parts))
	for i, part := range parts {
		bits := 8
		if i == 0 {
			bits = 32
		}
		n, err := strconv.ParseUint(part, 10, bits)
		if err != nil {
			return Date{}, dateErr(IntegerError, part)
		}
		nums[i] = n
	}

	switch len(nums) {
	case 1:
		return Year(uint32(nums[0])), nil
	case 2:
		if !validMonth(nums[1]) {
			return Date{}, dateErr(InvalidDate, s)
		}
		return YearMonth(uint32(nums[0]), uint8(nums[1])), nil
	default:
		if !validMonth(nums[1]) || nums[2] < 1 || nums[2] > daysIn(uint32(nums[0]), nums[1]) {
			return Date{}, dateErr(InvalidDate, s)
		}
		return YearMonthDay(uint32(nums[0]), uint8(nums[1]), uint8(nums[2])), nil
	}
}

func validMonth(m uint64) bool { return m >= 1 && m <= 12 }

func daysIn(year uint32, month uint64) uint64 {
	switch month {
	case 2:
		if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

func dateErr(kind ParseErrorKind, text string) *ParseError {
	return &ParseError{Kind: kind, Text: text, Pos: -1}
}
