package domain

// User is the owner of medications, notification tokens and preferences.
// Account lifecycle is managed elsewhere; the dispatcher only needs the key.
type User struct {
	UserID string `json:"id" dynamodbav:"user_id"`
}
