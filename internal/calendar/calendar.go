// Package calendar maps simulation day indexes onto a fixed 365-day year.
// The model deliberately ignores leap years so that every simulated year has
// the same shape and seasonal events land on the same day index offsets.
package calendar

import "fmt"

// StartYear is the calendar year of day index 0.
const StartYear = 2025

// DaysPerYear is fixed; February always has 28 days.
const DaysPerYear = 365

var monthLengths = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// cumDays[m] is the number of days before month m+1 starts.
var cumDays [12]int

func init() {
	total := 0
	for i, n := range monthLengths {
		cumDays[i] = total
		total += n
	}
}

// Date is one simulated day.
type Date struct {
	Year      int // calendar year, e.g. 2025
	Month     int // 1-12
	Day       int // day of month, 1-based
	DayOfYear int // 1-365
}

// FromDayIndex converts a zero-based simulation day index to a Date.
func FromDayIndex(t int) Date {
	year := StartYear + t/DaysPerYear
	doy := t%DaysPerYear + 1

	month := 1
	for month < 12 && doy > cumDays[month] {
		month++
	}
	return Date{
		Year:      year,
		Month:     month,
		Day:       doy - cumDays[month-1],
		DayOfYear: doy,
	}
}

// String renders the date as YYYY-MM-DD for event log entries and exports.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Quarter returns 1-4.
func (d Date) Quarter() int {
	return (d.Month-1)/3 + 1
}

// QuarterLabel renders e.g. "2025 Q3" for aggregation keys.
func (d Date) QuarterLabel() string {
	return fmt.Sprintf("%d Q%d", d.Year, d.Quarter())
}

// QuarterEnd reports whether this is the last day of March, June, September,
// or December, the quarterly sampling points.
func (d Date) QuarterEnd() bool {
	switch d.Month {
	case 3, 12:
		return d.Day == 31
	case 6, 9:
		return d.Day == 30
	}
	return false
}
