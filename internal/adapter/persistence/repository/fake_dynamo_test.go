package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeDynamo understands only the expressions the repository builds.
type fakeDynamo struct {
	mu        sync.Mutex
	items     map[string]map[string]types.AttributeValue
	lastTable string
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{items: make(map[string]map[string]types.AttributeValue)}
}

func stringAttr(item map[string]types.AttributeValue, name string) string {
	if v, ok := item[name].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}

func numberAttr(item map[string]types.AttributeValue, name string) string {
	if v, ok := item[name].(*types.AttributeValueMemberN); ok {
		return v.Value
	}
	return ""
}

func conditionFailed() error {
	return &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastTable = aws.ToString(in.TableName)

	id := stringAttr(in.Item, "id")
	current, exists := f.items[id]
	cond := aws.ToString(in.ConditionExpression)
	switch {
	case strings.Contains(cond, "attribute_not_exists"):
		if exists {
			return nil, conditionFailed()
		}
	case strings.Contains(cond, "#version = :expected"):
		if !exists || numberAttr(current, "version") != numberAttr(in.ExpressionAttributeValues, ":expected") {
			return nil, conditionFailed()
		}
	}
	f.items[id] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &dynamodb.GetItemOutput{Item: f.items[stringAttr(in.Key, "id")]}, nil
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	orderID := stringAttr(in.ExpressionAttributeValues, ":order_id")
	out := &dynamodb.QueryOutput{}
	for _, item := range f.items {
		if stringAttr(item, "order_id") == orderID {
			out.Items = append(out.Items, item)
		}
	}
	return out, nil
}

func (f *fakeDynamo) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := &dynamodb.ScanOutput{}
	for _, item := range f.items {
		if matchesFilterExpression(item, in) {
			out.Items = append(out.Items, item)
		}
	}
	return out, nil
}

// matchesFilterExpression understands the conditions scanFilter builds:
// "#a = :v", "#a <> :v", "#a <= :v" and "#a IN (:v0, :v1)" joined by AND.
func matchesFilterExpression(item map[string]types.AttributeValue, in *dynamodb.ScanInput) bool {
	if in.FilterExpression == nil {
		return true
	}
	for _, cond := range strings.Split(*in.FilterExpression, " AND ") {
		fields := strings.SplitN(cond, " ", 3)
		got := stringAttr(item, in.ExpressionAttributeNames[fields[0]])
		operand := fields[2]
		switch fields[1] {
		case "=":
			if got != stringAttr(in.ExpressionAttributeValues, operand) {
				return false
			}
		case "<>":
			if got == stringAttr(in.ExpressionAttributeValues, operand) {
				return false
			}
		case "<=":
			if got > stringAttr(in.ExpressionAttributeValues, operand) {
				return false
			}
		case "IN":
			found := false
			for _, ph := range strings.Split(strings.Trim(operand, "()"), ", ") {
				if got == stringAttr(in.ExpressionAttributeValues, ph) {
					found = true
				}
			}
			if !found {
				return false
			}
		default:
			return false
		}
	}
	return true
}
