package reminder

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// TimeOfDay is a wall-clock time with minute resolution.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func (t TimeOfDay) String() string { return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute) }

var (
	meridiemTimePattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*([AaPp][Mm])$`)
	clockTimePattern    = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
)

// ParseMedicationTime accepts "H:MM AM/PM" and "H:MM"/"HH:MM". Out-of-range
// numerals are clamped rather than rejected. ok is false for any other shape.
func ParseMedicationTime(raw string) (TimeOfDay, bool) {
	value := strings.TrimSpace(raw)

	if m := meridiemTimePattern.FindStringSubmatch(value); m != nil {
		hour, errH := strconv.Atoi(m[1])
		minute, errM := strconv.Atoi(m[2])
		if errH != nil || errM != nil {
			return TimeOfDay{}, false
		}
		switch strings.ToUpper(m[3]) {
		case "PM":
			if hour < 12 {
				hour += 12
			}
		case "AM":
			if hour == 12 {
				hour = 0
			}
		}
		return TimeOfDay{Hour: clamp(hour, 0, 23), Minute: clamp(minute, 0, 59)}, true
	}

	if m := clockTimePattern.FindStringSubmatch(value); m != nil {
		hour, errH := strconv.Atoi(m[1])
		minute, errM := strconv.Atoi(m[2])
		if errH != nil || errM != nil {
			return TimeOfDay{}, false
		}
		return TimeOfDay{Hour: clamp(hour, 0, 23), Minute: clamp(minute, 0, 59)}, true
	}

	return TimeOfDay{}, false
}

func clamp(v, lo, hi int) int {
	return min(hi, max(lo, v))
}
