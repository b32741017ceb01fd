package domain

// Medication is a scheduled dose belonging to a single user. Optional fields use
// presence-aware types so that records written before a field existed keep their
// original meaning (absent flags do not disqualify a medication).
type Medication struct {
	UserID               string  `json:"user_id" dynamodbav:"user_id"`
	MedicationID         string  `json:"id" dynamodbav:"medication_id"`
	Name                 Text    `json:"name" dynamodbav:"name"`
	Time                 Text    `json:"time" dynamodbav:"time"`
	IsActive             Flag    `json:"is_active" dynamodbav:"is_active"`
	NotificationsEnabled Flag    `json:"notifications_enabled" dynamodbav:"notifications_enabled"`
	LastTaken            Instant `json:"last_taken" dynamodbav:"last_taken"`
}
