package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/joseluisinigo/logonhours/internal/core/domain"
)

// hourPattern accepts 24-hour "H[:MM]" and 12-hour "H[:MM]AM/PM" literals.
var hourPattern = regexp.MustCompile(`^([0-9]{1,2})(?::([0-9]{2}))?(?:\s*([AaPp][Mm]))?$`)

// ParseHour converts a time literal into an hour of day, 0-23. The
// attribute has hour granularity, so minutes other than "00" are truncated;
// minutesIgnored tells the caller to surface an advisory, it is not an
// error. A bare hour with no suffix is read as 24-hour.
func ParseHour(text string) (hour int, minutesIgnored bool, err error) {
	match := hourPattern.FindStringSubmatch(strings.TrimSpace(text))
	if match == nil {
		return 0, false, fmt.Errorf("%w: %q", domain.ErrInvalidTimeFormat, text)
	}

	hour, _ = strconv.Atoi(match[1])
	minutesIgnored = match[2] != "" && match[2] != "00"

	switch suffix := strings.ToUpper(match[3]); suffix {
	case "":
		if hour > 23 {
			return 0, false, fmt.Errorf("%w: %q", domain.ErrInvalidTimeFormat, text)
		}
	default:
		// 12-hour clock: only 1-12 are meaningful before conversion
		if hour < 1 || hour > 12 {
			return 0, false, fmt.Errorf("%w: %q", domain.ErrInvalidTimeFormat, text)
		}
		if hour == 12 {
			hour = 0
		}
		if suffix == "PM" {
			hour += 12
		}
	}

	return hour, minutesIgnored, nil
}
