package services

import (
	"strings"

	"github.com/joseluisinigo/logonhours/internal/core/domain"
)

// ResolveDays expands a day token or "A-B" day range into weekday indices.
// A range whose start index exceeds its end index wraps through the
// Saturday/Sunday boundary, so "F-M" covers Friday, Saturday, Sunday and
// Monday. Order of the result carries no meaning; the encoder treats it as
// a set.
func ResolveDays(token string) ([]domain.Weekday, error) {
	first, last, isRange := strings.Cut(strings.TrimSpace(token), "-")
	if !isRange {
		day, err := domain.ParseWeekday(first)
		if err != nil {
			return nil, err
		}
		return []domain.Weekday{day}, nil
	}

	start, err := domain.ParseWeekday(first)
	if err != nil {
		return nil, err
	}
	end, err := domain.ParseWeekday(last)
	if err != nil {
		return nil, err
	}

	days := []domain.Weekday{start}
	for day := start; day != end; {
		day = (day + 1) % 7
		days = append(days, day)
	}
	return days, nil
}
