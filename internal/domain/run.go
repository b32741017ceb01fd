package domain

import "time"

// RunSummary is emitted once per dispatcher pass.
type RunSummary struct {
	RunID             string        `json:"runId"`
	UsersScanned      int           `json:"usersScanned"`
	UsersFailed       int           `json:"usersFailed"`
	RemindersSent     int           `json:"remindersSent"`
	RemindersFailed   int           `json:"remindersFailed"`
	DispatchesSkipped int           `json:"dispatchesSkipped"`
	RanAtUTC          time.Time     `json:"ranAtUtc"`
	Duration          time.Duration `json:"durationNs"`
}
