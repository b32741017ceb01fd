package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/go-med-reminder/internal/domain"
)

// PreferenceRepo reads the per-user preferences singleton (PK user_id).
type PreferenceRepo struct {
	client    API
	tableName string
}

func NewPreferenceRepo(client API, tableName string) *PreferenceRepo {
	return &PreferenceRepo{client: client, tableName: tableName}
}

func (r *PreferenceRepo) Get(ctx context.Context, userID string) (*domain.Preferences, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey(fieldUserID, userID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("preferences not found: %w", domain.ErrNotFound)
	}
	var p domain.Preferences
	if err := attributevalue.UnmarshalMap(out.Item, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
