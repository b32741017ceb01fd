package domain

import "time"

// DispatchLock marks one reminder occurrence as claimed. It is created once and
// never updated; expires_at is the DynamoDB TTL attribute used for retention.
type DispatchLock struct {
	DispatchKey      string    `json:"dispatch_key" dynamodbav:"dispatch_key"`
	UserID           string    `json:"user_id" dynamodbav:"user_id"`
	MedicationID     string    `json:"medication_id" dynamodbav:"medication_id"`
	DueAtLocalMinute string    `json:"due_at_local_minute" dynamodbav:"due_at_local_minute"`
	CreatedAt        time.Time `json:"created_at" dynamodbav:"created_at"`
	ExpiresAt        int64     `json:"expires_at,omitempty" dynamodbav:"expires_at,omitempty"`
}

// ClaimOutcome is the result of an atomic create-if-absent on a dispatch key.
type ClaimOutcome int

const (
	// ClaimFailed means the lock state is unknown; callers must not send.
	ClaimFailed ClaimOutcome = iota
	ClaimAcquired
	// ClaimConflict means another invocation already owns the key.
	ClaimConflict
)

func (o ClaimOutcome) String() string {
	switch o {
	case ClaimAcquired:
		return "acquired"
	case ClaimConflict:
		return "conflict"
	default:
		return "failed"
	}
}
