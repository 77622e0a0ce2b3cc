package domain

import (
	"fmt"
	"strings"
)

// Weekday indexes days the way the logonHours attribute does: Sunday is 0,
// Saturday is 6.
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var weekdayNames = [7]string{
	"Sunday",
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
}

func (d Weekday) String() string {
	if d < Sunday || d > Saturday {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// dayTokens is the canonical token table: the short abbreviations plus the
// full English names. Matching is case-insensitive and exact; anything
// outside this table is ErrInvalidDayToken, never a fuzzy guess.
var dayTokens = map[string]Weekday{
	"su": Sunday, "sunday": Sunday,
	"m": Monday, "monday": Monday,
	"t": Tuesday, "tuesday": Tuesday,
	"w": Wednesday, "wednesday": Wednesday,
	"th": Thursday, "thursday": Thursday,
	"f": Friday, "friday": Friday,
	"sa": Saturday, "saturday": Saturday,
}

// ParseWeekday maps a single day token to its weekday index.
func ParseWeekday(token string) (Weekday, error) {
	day, ok := dayTokens[strings.ToLower(strings.TrimSpace(token))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDayToken, token)
	}
	return day, nil
}
