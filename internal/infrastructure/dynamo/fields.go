package dynamo

// DynamoDB attribute names used in key conditions and condition expressions.
// Using constants prevents silent runtime bugs caused by key typos.
const (
	fieldUserID       = "user_id"
	fieldMedicationID = "medication_id"
	fieldTokenID      = "token_id"
	fieldDispatchKey  = "dispatch_key"
	fieldExpiresAt    = "expires_at"
)
