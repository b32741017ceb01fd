package reminder

import (
	"time"

	"github.com/go-med-reminder/internal/domain"
)

// LocalNow shifts an instant by a flat minute offset. The result is expressed in
// UTC fields so that its calendar components read as local wall-clock time.
// No zone rules (daylight saving) are applied.
func LocalNow(now time.Time, offsetMinutes int) time.Time {
	return now.UTC().Add(time.Duration(offsetMinutes) * time.Minute)
}

// WasTakenToday reports whether lastTaken falls on the same local calendar day
// as nowLocal. Unparsable or absent values count as not taken.
func WasTakenToday(lastTaken domain.Instant, nowLocal time.Time, offsetMinutes int) bool {
	taken, ok := lastTaken.Time()
	if !ok {
		return false
	}
	takenLocal := LocalNow(taken, offsetMinutes)
	ty, tm, td := takenLocal.Date()
	ny, nm, nd := nowLocal.UTC().Date()
	return ty == ny && tm == nm && td == nd
}

// DueLocal returns the local minute at which a dose scheduled at "at" should be
// announced today, leadMinutes before the dose itself.
func DueLocal(nowLocal time.Time, at TimeOfDay, leadMinutes int) time.Time {
	y, m, d := nowLocal.UTC().Date()
	due := time.Date(y, m, d, at.Hour, at.Minute, 0, 0, time.UTC)
	return due.Add(-time.Duration(leadMinutes) * time.Minute)
}

// IsSameUTCMinute compares two instants at minute resolution.
func IsSameUTCMinute(a, b time.Time) bool {
	return a.UTC().Truncate(time.Minute).Equal(b.UTC().Truncate(time.Minute))
}

// MatchDue decides whether a medication is due in the given offset frame during
// the minute containing now. It returns the due local minute when it is.
func MatchDue(now time.Time, lastTaken domain.Instant, at TimeOfDay, offsetMinutes, leadMinutes int) (time.Time, bool) {
	nowLocal := LocalNow(now, offsetMinutes)
	if WasTakenToday(lastTaken, nowLocal, offsetMinutes) {
		return time.Time{}, false
	}
	due := DueLocal(nowLocal, at, leadMinutes)
	if !IsSameUTCMinute(due, nowLocal) {
		return time.Time{}, false
	}
	return due, true
}
