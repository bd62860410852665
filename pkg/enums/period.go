package enums

import "fmt"

// Period selects the dashboard aggregation window.
type Period string

const (
	PeriodToday Period = "hoje"
	PeriodWeek  Period = "semana"
	PeriodMonth Period = "mes"
)

var validPeriods = []Period{
	PeriodToday,
	PeriodWeek,
	PeriodMonth,
}

// String implements fmt.Stringer.
func (p Period) String() string {
	return string(p)
}

// IsValid reports whether the value is a known Period.
func (p Period) IsValid() bool {
	for _, candidate := range validPeriods {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePeriod converts raw input into a Period.
func ParsePeriod(value string) (Period, error) {
	for _, candidate := range validPeriods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid period %q", value)
}

// Next cycles through the periods in display order.
func (p Period) Next() Period {
	switch p {
	case PeriodToday:
		return PeriodWeek
	case PeriodWeek:
		return PeriodMonth
	default:
		return PeriodToday
	}
}
