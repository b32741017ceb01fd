package dynamo

import (
	"context"
	"strconv"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeDynamo is an in-memory stand-in for the subset of DynamoDB the repos use.
// Items are kept in insertion order per table; hashKeys names each table's
// partition key for conditional puts and Scan cursors.
type fakeDynamo struct {
	mu       sync.Mutex
	items    map[string][]map[string]types.AttributeValue
	hashKeys map[string]string
	pageSize int

	putErr   error
	queryErr error

	created []string
	ttl     map[string]string
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{
		items:    map[string][]map[string]types.AttributeValue{},
		hashKeys: map[string]string{},
		ttl:      map[string]string{},
	}
}

func (f *fakeDynamo) seed(table string, item map[string]types.AttributeValue) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[table] = append(f.items[table], item)
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, item := range f.items[aws.ToString(in.TableName)] {
		if matchesKey(item, in.Key) {
			return &dynamodb.GetItemOutput{Item: item}, nil
		}
	}
	return &dynamodb.GetItemOutput{}, nil
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	table := aws.ToString(in.TableName)
	hk := f.hashKeys[table]
	for i, item := range f.items[table] {
		if !matchesKey(item, map[string]types.AttributeValue{hk: in.Item[hk]}) {
			continue
		}
		if in.ConditionExpression != nil {
			return nil, &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
		}
		f.items[table][i] = in.Item
		return &dynamodb.PutItemOutput{}, nil
	}
	f.items[table] = append(f.items[table], in.Item)
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	uid := in.ExpressionAttributeValues[":uid"].(*types.AttributeValueMemberS).Value
	var matched []map[string]types.AttributeValue
	for _, item := range f.items[aws.ToString(in.TableName)] {
		if s, ok := item["user_id"].(*types.AttributeValueMemberS); ok && s.Value == uid {
			matched = append(matched, item)
		}
	}
	start := 0
	if pos, ok := in.ExclusiveStartKey["_pos"].(*types.AttributeValueMemberN); ok {
		start, _ = strconv.Atoi(pos.Value)
	}
	end := len(matched)
	out := &dynamodb.QueryOutput{}
	if f.pageSize > 0 && start+f.pageSize < end {
		end = start + f.pageSize
		out.LastEvaluatedKey = map[string]types.AttributeValue{
			"_pos": &types.AttributeValueMemberN{Value: strconv.Itoa(end)},
		}
	}
	out.Items = matched[start:end]
	return out, nil
}

func (f *fakeDynamo) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	table := aws.ToString(in.TableName)
	hk := f.hashKeys[table]
	all := f.items[table]
	start := 0
	if in.ExclusiveStartKey != nil {
		for i, item := range all {
			if matchesKey(item, in.ExclusiveStartKey) {
				start = i + 1
				break
			}
		}
	}
	end := len(all)
	out := &dynamodb.ScanOutput{}
	if in.Limit != nil && start+int(*in.Limit) < end {
		end = start + int(*in.Limit)
		out.LastEvaluatedKey = map[string]types.AttributeValue{hk: all[end-1][hk]}
	}
	for _, item := range all[start:end] {
		out.Items = append(out.Items, map[string]types.AttributeValue{hk: item[hk]})
	}
	return out, nil
}

func (f *fakeDynamo) CreateTable(_ context.Context, in *dynamodb.CreateTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	name := aws.ToString(in.TableName)
	for _, c := range f.created {
		if c == name {
			return nil, &types.ResourceInUseException{Message: aws.String("table exists")}
		}
	}
	f.created = append(f.created, name)
	return &dynamodb.CreateTableOutput{}, nil
}

func (f *fakeDynamo) UpdateTimeToLive(_ context.Context, in *dynamodb.UpdateTimeToLiveInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateTimeToLiveOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ttl[aws.ToString(in.TableName)] = aws.ToString(in.TimeToLiveSpecification.AttributeName)
	return &dynamodb.UpdateTimeToLiveOutput{}, nil
}

func matchesKey(item, key map[string]types.AttributeValue) bool {
	for name, want := range key {
		w, ok := want.(*types.AttributeValueMemberS)
		if !ok {
			return false
		}
		got, ok := item[name].(*types.AttributeValueMemberS)
		if !ok || got.Value != w.Value {
			return false
		}
	}
	return true
}

func s(v string) *types.AttributeValueMemberS  { return &types.AttributeValueMemberS{Value: v} }
func n(v string) *types.AttributeValueMemberN  { return &types.AttributeValueMemberN{Value: v} }
func b(v bool) *types.AttributeValueMemberBOOL { return &types.AttributeValueMemberBOOL{Value: v} }
