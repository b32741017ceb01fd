package domain

// Preferences is the per-user notification settings singleton.
type Preferences struct {
	UserID                string `json:"user_id" dynamodbav:"user_id"`
	ReminderInterval      Text   `json:"reminder_interval" dynamodbav:"reminder_interval"`
	CustomReminderMessage Text   `json:"custom_reminder_message" dynamodbav:"custom_reminder_message"`
}
