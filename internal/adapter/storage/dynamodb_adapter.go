package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/rl1809/updatechecker/internal/core/domain"
)

// DynamoDBAPI is the subset of the DynamoDB client used by DynamoDBAdapter.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// dynamoItem is the table layout: partition key "id", sort key "SK".
type dynamoItem struct {
	ID      string `dynamodbav:"id"`
	SK      string `dynamodbav:"SK"`
	Name    string `dynamodbav:"name,omitempty"`
	Version string `dynamodbav:"version"`
}

type DynamoDBAdapter struct {
	client DynamoDBAPI
	table  string
}

func NewDynamoDBAdapter(client DynamoDBAPI, table string) *DynamoDBAdapter {
	return &DynamoDBAdapter{client: client, table: table}
}

func (d *DynamoDBAdapter) Get(ctx context.Context, key domain.RecordKey) (*domain.SoftwareRecord, error) {
	out, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(d.table),
		Key:            itemKey(key),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("get item %s/%s: %w", key.ID, key.SortKey, err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}

	rec, err := decodeItem(out.Item)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (d *DynamoDBAdapter) Put(ctx context.Context, record domain.SoftwareRecord) error {
	item, err := encodeItem(record)
	if err != nil {
		return err
	}
	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put item %s/%s: %w", record.ID, record.SortKey, err)
	}
	return nil
}

func (d *DynamoDBAdapter) PutIfVersion(ctx context.Context, record domain.SoftwareRecord, previous string) error {
	item, err := encodeItem(record)
	if err != nil {
		return err
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(d.table),
		Item:      item,
	}
	if previous == "" {
		input.ConditionExpression = aws.String("attribute_not_exists(#id)")
		input.ExpressionAttributeNames = map[string]string{"#id": "id"}
	} else {
		input.ConditionExpression = aws.String("#v = :prev")
		input.ExpressionAttributeNames = map[string]string{"#v": "version"}
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":prev": &types.AttributeValueMemberS{Value: previous},
		}
	}

	_, err = d.client.PutItem(ctx, input)
	var conditionFailed *types.ConditionalCheckFailedException
	if errors.As(err, &conditionFailed) {
		return domain.ErrConditionFailed
	}
	if err != nil {
		return fmt.Errorf("conditional put %s/%s: %w", record.ID, record.SortKey, err)
	}
	return nil
}

func (d *DynamoDBAdapter) Delete(ctx context.Context, key domain.RecordKey) error {
	_, err := d.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(d.table),
		Key:       itemKey(key),
	})
	if err != nil {
		return fmt.Errorf("delete item %s/%s: %w", key.ID, key.SortKey, err)
	}
	return nil
}

func (d *DynamoDBAdapter) ScanAll(ctx context.Context) ([]domain.SoftwareRecord, error) {
	var records []domain.SoftwareRecord
	paginator := dynamodb.NewScanPaginator(d.client, &dynamodb.ScanInput{
		TableName:      aws.String(d.table),
		ConsistentRead: aws.Bool(true),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("scan table %s: %w", d.table, err)
		}
		for _, item := range page.Items {
			rec, err := decodeItem(item)
			if err != nil {
				return nil, err
			}
			records = append(records, rec)
		}
	}

	sortRecords(records)
	return records, nil
}

func (d *DynamoDBAdapter) Query(ctx context.Context, id string) ([]domain.SoftwareRecord, error) {
	var records []domain.SoftwareRecord
	paginator := dynamodb.NewQueryPaginator(d.client, &dynamodb.QueryInput{
		TableName:                aws.String(d.table),
		KeyConditionExpression:   aws.String("#id = :id"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("query %s: %w", id, err)
		}
		for _, item := range page.Items {
			rec, err := decodeItem(item)
			if err != nil {
				return nil, err
			}
			records = append(records, rec)
		}
	}
	return records, nil
}

func itemKey(key domain.RecordKey) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: key.ID},
		"SK": &types.AttributeValueMemberS{Value: key.SortKey},
	}
}

func encodeItem(record domain.SoftwareRecord) (map[string]types.AttributeValue, error) {
	item, err := attributevalue.MarshalMap(dynamoItem{
		ID:      record.ID,
		SK:      record.SortKey,
		Name:    record.Name,
		Version: record.Version,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal item %s/%s: %w", record.ID, record.SortKey, err)
	}
	return item, nil
}

func decodeItem(item map[string]types.AttributeValue) (domain.SoftwareRecord, error) {
	var it dynamoItem
	if err := attributevalue.UnmarshalMap(item, &it); err != nil {
		return domain.SoftwareRecord{}, fmt.Errorf("unmarshal item: %w", err)
	}
	return domain.SoftwareRecord{ID: it.ID, SortKey: it.SK, Name: it.Name, Version: it.Version}, nil
}
