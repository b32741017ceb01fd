package domain

// PushNotification is the human-readable part of a push message.
type PushNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// MulticastMessage is one gateway call: up to MaxMulticastTokens addresses
// sharing the same notification and data payload.
type MulticastMessage struct {
	Tokens       []string          `json:"tokens"`
	Notification PushNotification  `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
}

// BatchResponse carries per-token delivery counts for one multicast call.
type BatchResponse struct {
	SuccessCount int `json:"success_count"`
	FailureCount int `json:"failure_count"`
}

// MaxMulticastTokens is the gateway's batch ceiling.
const MaxMulticastTokens = 500
