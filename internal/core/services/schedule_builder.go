package services

import (
	"fmt"
	"strings"

	"github.com/joseluisinigo/logonhours/internal/core/domain"
)

// ScheduleBuilder accumulates the availability ranges declared during one
// configuration session. Entries keep insertion order for display and
// removal by index; the encoded bitmap does not depend on that order. The
// builder owns its list exclusively and does no I/O.
type ScheduleBuilder struct {
	entries []domain.ScheduleEntry
}

func NewScheduleBuilder() *ScheduleBuilder {
	return &ScheduleBuilder{}
}

// AddRange validates one range and appends it. The day token is resolved
// eagerly so malformed tokens are rejected here, not at encode time.
// minutesIgnored is true when either time literal carried minutes that were
// truncated.
func (b *ScheduleBuilder) AddRange(dayToken, startText, endText string) (domain.ScheduleEntry, bool, error) {
	days, err := ResolveDays(dayToken)
	if err != nil {
		return domain.ScheduleEntry{}, false, err
	}

	start, startMinutes, err := ParseHour(startText)
	if err != nil {
		return domain.ScheduleEntry{}, false, err
	}
	end, endMinutes, err := ParseHour(endText)
	if err != nil {
		return domain.ScheduleEntry{}, false, err
	}

	if start >= end {
		return domain.ScheduleEntry{}, false, fmt.Errorf("%w: %02d:00 >= %02d:00", domain.ErrInvalidTimeOrder, start, end)
	}

	entry := domain.ScheduleEntry{
		DayToken:  strings.TrimSpace(dayToken),
		Days:      days,
		StartHour: start,
		EndHour:   end,
	}
	b.entries = append(b.entries, entry)

	return entry, startMinutes || endMinutes, nil
}

// RemoveRange deletes the i-th entry as currently listed. Remaining entries
// are renumbered.
func (b *ScheduleBuilder) RemoveRange(i int) (domain.ScheduleEntry, error) {
	if i < 0 || i >= len(b.entries) {
		return domain.ScheduleEntry{}, fmt.Errorf("%w: %d", domain.ErrIndexOutOfRange, i)
	}
	entry := b.entries[i]
	b.entries = append(b.entries[:i], b.entries[i+1:]...)
	return entry, nil
}

// Entries returns the declared ranges in insertion order.
func (b *ScheduleBuilder) Entries() []domain.ScheduleEntry {
	entries := make([]domain.ScheduleEntry, len(b.entries))
	copy(entries, b.entries)
	return entries
}

// Encode merges every entry into the weekly bitmap. Bits are only ever OR-ed
// in, so duplicate and overlapping ranges compose idempotently and entry
// order never changes the result. No entries means all zeros: the account
// cannot authenticate at any hour, which is valid output.
func Encode(entries []domain.ScheduleEntry) domain.LogonHours {
	var hours domain.LogonHours
	for _, entry := range entries {
		for _, day := range entry.Days {
			for hour := entry.StartHour; hour < entry.EndHour; hour++ {
				hours.Set(day, hour)
			}
		}
	}
	return hours
}
