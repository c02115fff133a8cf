package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"storefront/internal/domain"
)

// dynamoAPI is the subset of *dynamodb.Client used by the slot repository.
type dynamoAPI interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DescribeTable(ctx context.Context, in *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

type slotItem struct {
	Slot      string    `dynamodbav:"slot"`
	Payload   string    `dynamodbav:"payload"`
	UpdatedAt time.Time `dynamodbav:"updatedAt"`
}

type dynamoRepo struct {
	client dynamoAPI
	table  string
	now    func() time.Time
}

// NewDynamoDB stores one item per slot in table, keyed by the "slot" attribute.
func NewDynamoDB(client dynamoAPI, table string) Repository {
	return &dynamoRepo{client: client, table: table, now: time.Now}
}

func (r *dynamoRepo) Load(ctx context.Context, slot string) ([]byte, error) {
	if err := validSlot(slot); err != nil {
		return nil, err
	}
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.table),
		Key:            map[string]types.AttributeValue{"slot": &types.AttributeValueMemberS{Value: slot}},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, domain.ErrNotFound
	}
	var item slotItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("decode item: %w", err)
	}
	return []byte(item.Payload), nil
}

func (r *dynamoRepo) Save(ctx context.Context, slot string, payload []byte) error {
	if err := validSlot(slot); err != nil {
		return err
	}
	item, err := attributevalue.MarshalMap(slotItem{
		Slot:      slot,
		Payload:   string(payload),
		UpdatedAt: r.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode item: %w", err)
	}
	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("put item: %w", err)
	}
	return nil
}

func (r *dynamoRepo) Ping(ctx context.Context) error {
	_, err := r.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(r.table)})
	return err
}
