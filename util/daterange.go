package util

import (
	"errors"
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

type Frequency string

const (
	Monthly Frequency = "monthly"
	Yearly  Frequency = "yearly"
	None    Frequency = "none"
)

func (f Frequency) Valid() bool {
	switch f {
	case Monthly, Yearly, None:
		return true
	}
	return false
}

type DateRange struct {
	From string
	To   string
}

// Contains reports whether t falls on a day inside the range, both ends inclusive.
func (r DateRange) Contains(t time.Time) bool {
	day := t.UTC().Format(DateLayout)
	return day >= r.From && day <= r.To
}

// GenerateDateRanges splits [from, to] into calendar months or years. The last range is clipped to `to`.
func GenerateDateRanges(from, to string, frequency Frequency) ([]DateRange, error) {
	start, err := time.Parse(DateLayout, from)
	if err != nil {
		return nil, fmt.Errorf("invalid fromDate %q: %w", from, err)
	}
	end, err := time.Parse(DateLayout, to)
	if err != nil {
		return nil, fmt.Errorf("invalid toDate %q: %w", to, err)
	}

	if start.After(end) {
		return nil, errors.New("fromDate should be earlier than toDate")
	}

	if frequency == None || frequency == "" {
		return []DateRange{{From: start.Format(DateLayout), To: end.Format(DateLayout)}}, nil
	}

	if !frequency.Valid() {
		return nil, fmt.Errorf("unknown frequency %q", frequency)
	}

	var ranges []DateRange
	for !start.After(end) {
		var periodEnd time.Time
		if frequency == Monthly {
			periodEnd = start.AddDate(0, 1, -1)
		} else {
			periodEnd = start.AddDate(1, 0, -1)
		}

		if periodEnd.After(end) {
			periodEnd = end
		}

		ranges = append(ranges, DateRange{
			From: start.Format(DateLayout),
			To:   periodEnd.Format(DateLayout),
		})

		start = periodEnd.AddDate(0, 0, 1)
	}

	return ranges, nil
}
