package dynamo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-med-reminder/internal/domain"
)

// DispatchRepo stores dispatch locks (PK dispatch_key).
type DispatchRepo struct {
	client    API
	tableName string
}

func NewDispatchRepo(client API, tableName string) *DispatchRepo {
	return &DispatchRepo{client: client, tableName: tableName}
}

// Claim writes the lock only if no item with the same dispatch_key exists.
// An existing item yields ClaimConflict with a nil error; any other failure
// yields ClaimFailed and the cause.
func (r *DispatchRepo) Claim(ctx context.Context, lock *domain.DispatchLock) (domain.ClaimOutcome, error) {
	item, err := attributevalue.MarshalMap(lock)
	if err != nil {
		return domain.ClaimFailed, fmt.Errorf("marshal dispatch lock: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(#k)"),
		ExpressionAttributeNames: map[string]string{
			"#k": fieldDispatchKey,
		},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return domain.ClaimConflict, nil
		}
		return domain.ClaimFailed, err
	}
	return domain.ClaimAcquired, nil
}
