package domain

import "fmt"

// ScheduleEntry is one user-declared availability range: the raw day token
// as entered, its weekday set resolved at add time, and an hour range with
// exclusive end. Entries live only for the duration of one configuration
// session and are immutable once added.
type ScheduleEntry struct {
	DayToken  string
	Days      []Weekday
	StartHour int
	EndHour   int
}

func (e ScheduleEntry) String() string {
	return fmt.Sprintf("%s %02d:00-%02d:00", e.DayToken, e.StartHour, e.EndHour)
}
