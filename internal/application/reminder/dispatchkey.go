package reminder

import (
	"strconv"
	"strings"
	"time"
)

const minuteLayout = "200601021504"

// FormatUTCMinute renders t as YYYYMMDDHHmm using its UTC fields.
func FormatUTCMinute(t time.Time) string {
	return t.UTC().Format(minuteLayout)
}

// BuildDispatchKey identifies one reminder occurrence. Every component that can
// distinguish two occurrences is part of the key.
func BuildDispatchKey(userID, medicationID string, offsetMinutes, leadMinutes int, dueLocal time.Time) string {
	return strings.Join([]string{
		userID,
		medicationID,
		strconv.Itoa(offsetMinutes),
		strconv.Itoa(leadMinutes),
		FormatUTCMinute(dueLocal),
	}, "_")
}
