package date

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TaxYear is a UK tax year identified by the calendar year it starts in.
// TaxYear(2021) runs from 6 April 2021 to 5 April 2022 inclusive.
type TaxYear int

// TaxYearOf returns the tax year that contains d.
func TaxYearOf(d Date) TaxYear {
	if d.Before(New(d.Year(), time.April, 6)) {
		return TaxYear(d.Year() - 1)
	}
	return TaxYear(d.Year())
}

// Range returns the days of the tax year.
func (y TaxYear) Range() Range {
	return Range{
		From: New(int(y), time.April, 6),
		To:   New(int(y)+1, time.April, 5),
	}
}

// Contains reports whether d falls in the tax year.
func (y TaxYear) Contains(d Date) bool { return y.Range().Contains(d) }

// String returns the usual "2021-22" notation.
func (y TaxYear) String() string {
	return fmt.Sprintf("%d-%02d", int(y), (int(y)+1)%100)
}

// Suffix returns the short "21-22" notation used in file names.
func (y TaxYear) Suffix() string {
	return fmt.Sprintf("%02d-%02d", int(y)%100, (int(y)+1)%100)
}

// ParseTaxYear accepts "2021-22", "2021/22" or "2021".
func ParseTaxYear(s string) (TaxYear, error) {
	s = strings.TrimSpace(s)
	start, end, found := strings.Cut(strings.ReplaceAll(s, "/", "-"), "-")
	y, err := strconv.Atoi(start)
	if err != nil || len(start) != 4 {
		return 0, fmt.Errorf("invalid tax year %q want format 2021-22", s)
	}
	if found {
		e, err := strconv.Atoi(end)
		if err != nil || e != (y+1)%100 {
			return 0, fmt.Errorf("invalid tax year %q: %q does not follow %d", s, end, y)
		}
	}
	return TaxYear(y), nil
}

// TaxYearsBetween lists every tax year overlapping r, in order.
func TaxYearsBetween(r Range) []TaxYear {
	var years []TaxYear
	for y := TaxYearOf(r.From); y <= TaxYearOf(r.To); y++ {
		years = append(years, y)
	}
	return years
}
