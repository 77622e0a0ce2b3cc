package domain

// LogonHoursBytes is the fixed size of the logonHours attribute value.
const LogonHoursBytes = 21

// LogonHours is the 168-bit weekly bitmap stored in the logonHours
// attribute: one bit per hour of the week, 1 meaning login is permitted.
// Bit index is weekday*24+hour; on the wire that is bit (index%8) of byte
// (index/8). The layout must match the directory service bit for bit.
type LogonHours [LogonHoursBytes]byte

// Set marks one hour of one weekday as permitted. Setting an already-set
// bit is a no-op, so overlapping ranges merge idempotently.
func (h *LogonHours) Set(day Weekday, hour int) {
	index := int(day)*24 + hour
	h[index/8] |= 1 << (index % 8)
}

// Allowed reports whether login is permitted during the given hour.
func (h *LogonHours) Allowed(day Weekday, hour int) bool {
	index := int(day)*24 + hour
	return h[index/8]&(1<<(index%8)) != 0
}

// IsZero reports whether no hour is permitted at all. An all-zero bitmap is
// a valid value: the account can never authenticate.
func (h *LogonHours) IsZero() bool {
	return *h == LogonHours{}
}

// Bytes returns the attribute value exactly as written to the directory.
func (h *LogonHours) Bytes() []byte {
	return h[:]
}

// WeekHour is one permitted (weekday, hour) cell of the bitmap.
type WeekHour struct {
	Day  Weekday
	Hour int
}

// Hours decodes the bitmap back into the set of permitted weekday/hour
// pairs, ordered by weekday then hour.
func (h *LogonHours) Hours() []WeekHour {
	var hours []WeekHour
	for day := Sunday; day <= Saturday; day++ {
		for hour := 0; hour < 24; hour++ {
			if h.Allowed(day, hour) {
				hours = append(hours, WeekHour{Day: day, Hour: hour})
			}
		}
	}
	return hours
}
