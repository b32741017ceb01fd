package dynamo

import (
	"context"
	"fmt"

	"github.com/go-med-reminder/internal/domain"
)

// NotificationTokenRepo reads the notification_tokens table (PK user_id, SK token_id).
// Registration and expiry of tokens happen elsewhere.
type NotificationTokenRepo struct {
	client    API
	tableName string
}

func NewNotificationTokenRepo(client API, tableName string) *NotificationTokenRepo {
	return &NotificationTokenRepo{client: client, tableName: tableName}
}

func (r *NotificationTokenRepo) ListByUser(ctx context.Context, userID string) ([]domain.NotificationTarget, error) {
	targets, err := queryAllByUser[domain.NotificationTarget](ctx, r.client, r.tableName, userID)
	if err != nil {
		return nil, fmt.Errorf("query notification tokens: %w", err)
	}
	return targets, nil
}
