package sns

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/go-med-reminder/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	mu     sync.Mutex
	inputs []*sns.PublishInput
}

func (f *fakePublisher) Publish(_ context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.mu.Lock()
	f.inputs = append(f.inputs, in)
	f.mu.Unlock()
	if strings.HasSuffix(aws.ToString(in.TargetArn), "disabled") {
		return nil, errors.New("EndpointDisabled: Endpoint is disabled")
	}
	return &sns.PublishOutput{MessageId: aws.String("mid")}, nil
}

func reminderMessage(tokens ...string) *domain.MulticastMessage {
	return &domain.MulticastMessage{
		Tokens:       tokens,
		Notification: domain.PushNotification{Title: "Medication Reminder", Body: "Take your meds"},
		Data: map[string]string{
			"medicationId":     "m1",
			"userId":           "u1",
			"dueAtLocalMinute": "202610170900",
			"reminderInterval": "At exact time",
		},
	}
}

func TestGateway_CountsPerEndpointOutcome(t *testing.T) {
	pub := &fakePublisher{}
	gw := NewGatewayWithClient(pub, nil)

	resp, err := gw.SendEachForMulticast(context.Background(), reminderMessage("arn:ok-1", "arn:disabled", "arn:ok-2"))

	require.NoError(t, err)
	assert.Equal(t, 2, resp.SuccessCount)
	assert.Equal(t, 1, resp.FailureCount)
	assert.Len(t, pub.inputs, 3)
}

func TestGateway_RejectsOversizedBatch(t *testing.T) {
	tokens := make([]string, domain.MaxMulticastTokens+1)
	_, err := NewGatewayWithClient(&fakePublisher{}, nil).SendEachForMulticast(context.Background(), reminderMessage(tokens...))
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestGateway_MessageEnvelope(t *testing.T) {
	pub := &fakePublisher{}
	_, err := NewGatewayWithClient(pub, nil).SendEachForMulticast(context.Background(), reminderMessage("arn:ok"))
	require.NoError(t, err)
	require.Len(t, pub.inputs, 1)

	in := pub.inputs[0]
	assert.Equal(t, "json", aws.ToString(in.MessageStructure))
	assert.Equal(t, "arn:ok", aws.ToString(in.TargetArn))

	var envelope map[string]string
	require.NoError(t, json.Unmarshal([]byte(aws.ToString(in.Message)), &envelope))
	assert.Equal(t, "Take your meds", envelope["default"])

	var fcm fcmPayload
	require.NoError(t, json.Unmarshal([]byte(envelope["GCM"]), &fcm))
	assert.Equal(t, "Medication Reminder", fcm.Notification.Title)
	assert.Equal(t, "202610170900", fcm.Data["dueAtLocalMinute"])

	var apns map[string]any
	require.NoError(t, json.Unmarshal([]byte(envelope["APNS"]), &apns))
	assert.Equal(t, "m1", apns["medicationId"])
	assert.Contains(t, apns, "aps")
}
