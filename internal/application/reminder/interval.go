package reminder

import (
	"regexp"
	"strconv"
	"strings"
)

// Supported reminder interval preferences.
const (
	IntervalAtExactTime = "At exact time"
	Interval5Minutes    = "5 minutes before"
	Interval10Minutes   = "10 minutes before"
	Interval15Minutes   = "15 minutes before"
	Interval30Minutes   = "30 minutes before"

	DefaultReminderInterval = IntervalAtExactTime
)

var supportedIntervals = map[string]struct{}{
	IntervalAtExactTime: {},
	Interval5Minutes:    {},
	Interval10Minutes:   {},
	Interval15Minutes:   {},
	Interval30Minutes:   {},
}

var leadTimePattern = regexp.MustCompile(`(?i)^(\d+)\s+minutes?\s+before$`)

// NormalizeReminderInterval returns the trimmed interval when it is one of the
// supported values (exact, case-sensitive match) and the default otherwise.
func NormalizeReminderInterval(raw string) string {
	value := strings.TrimSpace(raw)
	if _, ok := supportedIntervals[value]; !ok {
		return DefaultReminderInterval
	}
	return value
}

// ReminderOffsetMinutes returns the lead time in minutes encoded by an interval.
func ReminderOffsetMinutes(interval string) int {
	normalized := NormalizeReminderInterval(interval)
	if normalized == IntervalAtExactTime {
		return 0
	}
	m := leadTimePattern.FindStringSubmatch(normalized)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 0
	}
	return n
}
