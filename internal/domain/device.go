package domain

// NotificationTarget is a push delivery address registered by one of the user's
// devices. Token holds the gateway address (an SNS platform endpoint ARN).
type NotificationTarget struct {
	UserID                string `json:"user_id" dynamodbav:"user_id"`
	TokenID               string `json:"id" dynamodbav:"token_id"`
	Token                 Text   `json:"token" dynamodbav:"token"`
	TimezoneOffsetMinutes Offset `json:"timezone_offset_minutes" dynamodbav:"timezone_offset_minutes"`
}
