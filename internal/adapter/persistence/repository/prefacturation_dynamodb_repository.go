package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"prefacturation_service/internal/domain/entities"
	"prefacturation_service/internal/domain/reconciliation"
	"prefacturation_service/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultPrefacturationsTableName = "prefacturations"
	defaultOrderIndexName           = "order_id-index"
)

// DynamoDBAPI is the subset of *dynamodb.Client used by the repository.
type DynamoDBAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// prefacturationItem keeps the filterable fields as top-level attributes and
// the whole aggregate as a JSON document.
type prefacturationItem struct {
	ID             string `dynamodbav:"id"`
	OrderID        string `dynamodbav:"order_id"`
	CarrierID      string `dynamodbav:"carrier_id"`
	ClientID       string `dynamodbav:"client_id"`
	Status         string `dynamodbav:"status"`
	WorkflowStatus string `dynamodbav:"workflow_status"`
	CarrierStatus  string `dynamodbav:"carrier_validation_status"`
	TimeoutAt      string `dynamodbav:"carrier_timeout_at"`
	Version        int64  `dynamodbav:"version"`
	Document       string `dynamodbav:"document"`
	CreatedAt      string `dynamodbav:"created_at"`
	UpdatedAt      string `dynamodbav:"updated_at"`
}

// PrefacturationDynamoRepository persists prefacturations in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI order_id-index: PK order_id (string)
//
// Updates are conditional on the stored version, so two writers racing on the
// same aggregate cannot both succeed.
type PrefacturationDynamoRepository struct {
	ddb        DynamoDBAPI
	tableName  string
	orderIndex string
}

var _ interfaces.IPrefacturationRepository = (*PrefacturationDynamoRepository)(nil)

func NewPrefacturationDynamoRepository(ddb DynamoDBAPI) *PrefacturationDynamoRepository {
	return &PrefacturationDynamoRepository{
		ddb:        ddb,
		tableName:  getenvDefault("PREFACTURATIONS_TABLE", defaultPrefacturationsTableName),
		orderIndex: getenvDefault("PREFACTURATIONS_ORDER_INDEX", defaultOrderIndexName),
	}
}

// TableName and OrderIndex report the resolved DynamoDB names.
func (r *PrefacturationDynamoRepository) TableName() string  { return r.tableName }
func (r *PrefacturationDynamoRepository) OrderIndex() string { return r.orderIndex }

func (r *PrefacturationDynamoRepository) Create(ctx context.Context, p entities.Prefacturation) (entities.Prefacturation, error) {
	it, err := toPrefacturationItem(p)
	if err != nil {
		return entities.Prefacturation{}, err
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Prefacturation{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Prefacturation{}, interfaces.ErrDuplicatePrefacturation
		}
		return entities.Prefacturation{}, err
	}
	return p, nil
}

func (r *PrefacturationDynamoRepository) GetByID(ctx context.Context, id string) (entities.Prefacturation, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Prefacturation{}, err
	}
	if len(out.Item) == 0 {
		return entities.Prefacturation{}, nil
	}
	return decodePrefacturationItem(out.Item)
}

// GetByOrderID reads the order index. GSI reads are eventually consistent;
// the id-level condition on Create still rejects true duplicates.
func (r *PrefacturationDynamoRepository) GetByOrderID(ctx context.Context, orderID string) (entities.Prefacturation, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(r.orderIndex),
		KeyConditionExpression: aws.String("#order_id = :order_id"),
		ExpressionAttributeNames: map[string]string{
			"#order_id": "order_id",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":order_id": &types.AttributeValueMemberS{Value: orderID},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Prefacturation{}, err
	}
	if len(out.Items) == 0 {
		return entities.Prefacturation{}, nil
	}
	return decodePrefacturationItem(out.Items[0])
}

// Update replaces the stored aggregate when its version still equals
// expectedVersion and stores it with expectedVersion+1.
func (r *PrefacturationDynamoRepository) Update(ctx context.Context, p entities.Prefacturation, expectedVersion int64) (entities.Prefacturation, error) {
	p.Version = expectedVersion + 1
	it, err := toPrefacturationItem(p)
	if err != nil {
		return entities.Prefacturation{}, err
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Prefacturation{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(#id) AND #version = :expected"),
		ExpressionAttributeNames: map[string]string{
			"#id":      "id",
			"#version": "version",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberN{Value: strconv.FormatInt(expectedVersion, 10)},
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Prefacturation{}, reconciliation.ErrConcurrentModification
		}
		return entities.Prefacturation{}, err
	}
	return p, nil
}

// List scans the table with the filter pushed down, newest first.
func (r *PrefacturationDynamoRepository) List(ctx context.Context, filter interfaces.PrefacturationFilter) ([]entities.Prefacturation, error) {
	input := &dynamodb.ScanInput{TableName: aws.String(r.tableName)}
	if expr, names, values := scanFilter(filter); expr != "" {
		input.FilterExpression = aws.String(expr)
		input.ExpressionAttributeNames = names
		input.ExpressionAttributeValues = values
	}

	out := []entities.Prefacturation{}
	paginator := dynamodb.NewScanPaginator(r.ddb, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, item := range page.Items {
			p, err := decodePrefacturationItem(item)
			if err != nil {
				return nil, err
			}
			out = append(out, p)
		}
	}

	// Scan order is arbitrary, so every page is read before sorting.
	sortNewestFirst(out)
	return page(out, filter), nil
}

func scanFilter(filter interfaces.PrefacturationFilter) (string, map[string]string, map[string]types.AttributeValue) {
	var conds []string
	names := map[string]string{}
	values := map[string]types.AttributeValue{}
	add := func(attr, value string) {
		if value == "" {
			return
		}
		conds = append(conds, "#"+attr+" = :"+attr)
		names["#"+attr] = attr
		values[":"+attr] = &types.AttributeValueMemberS{Value: value}
	}
	add("status", string(filter.Status))
	add("carrier_id", filter.CarrierID)
	add("client_id", filter.ClientID)
	add("carrier_validation_status", string(filter.CarrierValidation))

	if len(filter.WorkflowStatuses) > 0 {
		placeholders := make([]string, 0, len(filter.WorkflowStatuses))
		for i, st := range filter.WorkflowStatuses {
			ph := fmt.Sprintf(":workflow_status%d", i)
			placeholders = append(placeholders, ph)
			values[ph] = &types.AttributeValueMemberS{Value: string(st)}
		}
		names["#workflow_status"] = "workflow_status"
		conds = append(conds, "#workflow_status IN ("+strings.Join(placeholders, ", ")+")")
	}
	if !filter.TimeoutDue.IsZero() {
		names["#carrier_timeout_at"] = "carrier_timeout_at"
		values[":timeout_unset"] = &types.AttributeValueMemberS{Value: ""}
		values[":timeout_due"] = &types.AttributeValueMemberS{Value: formatSortableTime(filter.TimeoutDue)}
		conds = append(conds, "#carrier_timeout_at <> :timeout_unset", "#carrier_timeout_at <= :timeout_due")
	}
	if len(conds) == 0 {
		return "", nil, nil
	}
	return strings.Join(conds, " AND "), names, values
}

func toPrefacturationItem(p entities.Prefacturation) (prefacturationItem, error) {
	doc, err := json.Marshal(p)
	if err != nil {
		return prefacturationItem{}, err
	}
	return prefacturationItem{
		ID:             p.ID,
		OrderID:        p.OrderID,
		CarrierID:      p.CarrierID,
		ClientID:       p.ClientID,
		Status:         string(p.Status),
		WorkflowStatus: string(p.WorkflowStatus),
		CarrierStatus:  string(p.CarrierValidation.Status),
		TimeoutAt:      formatSortableTime(p.CarrierValidation.TimeoutAt),
		Version:        p.Version,
		Document:       string(doc),
		CreatedAt:      formatTime(p.CreatedAt),
		UpdatedAt:      formatTime(p.UpdatedAt),
	}, nil
}

func decodePrefacturationItem(av map[string]types.AttributeValue) (entities.Prefacturation, error) {
	var it prefacturationItem
	if err := attributevalue.UnmarshalMap(av, &it); err != nil {
		return entities.Prefacturation{}, err
	}
	return fromPrefacturationItem(it)
}

func fromPrefacturationItem(it prefacturationItem) (entities.Prefacturation, error) {
	var p entities.Prefacturation
	if err := json.Unmarshal([]byte(it.Document), &p); err != nil {
		return entities.Prefacturation{}, err
	}
	// The version attribute is authoritative over the document.
	p.Version = it.Version
	return p, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

// sortableTimeLayout keeps a fixed width so string comparison follows time order.
const sortableTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatSortableTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(sortableTimeLayout)
}

func sortNewestFirst(items []entities.Prefacturation) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID < items[j].ID
	})
}

func page(items []entities.Prefacturation, filter interfaces.PrefacturationFilter) []entities.Prefacturation {
	if filter.Offset > 0 {
		if filter.Offset >= len(items) {
			return items[:0]
		}
		items = items[filter.Offset:]
	}
	if filter.Limit > 0 && len(items) > filter.Limit {
		items = items[:filter.Limit]
	}
	return items
}
