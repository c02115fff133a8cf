package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"storefront/internal/domain"
)

type stubDynamo struct {
	items       map[string]map[string]types.AttributeValue
	lastTable   string
	describeErr error
}

func newStubDynamo() *stubDynamo {
	return &stubDynamo{items: make(map[string]map[string]types.AttributeValue)}
}

func keyOf(key map[string]types.AttributeValue) string {
	if s, ok := key["slot"].(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func (s *stubDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	s.lastTable = *in.TableName
	return &dynamodb.GetItemOutput{Item: s.items[keyOf(in.Key)]}, nil
}

func (s *stubDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	s.lastTable = *in.TableName
	s.items[keyOf(in.Item)] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (s *stubDynamo) DescribeTable(_ context.Context, in *dynamodb.DescribeTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	s.lastTable = *in.TableName
	return &dynamodb.DescribeTableOutput{}, s.describeErr
}

func TestDynamoDB_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	client := newStubDynamo()
	repo := &dynamoRepo{client: client, table: "carts", now: func() time.Time { return time.Unix(0, 0) }}

	if err := repo.Save(ctx, "cart", []byte(`[{"id":7,"quantity":1}]`)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if client.lastTable != "carts" {
		t.Fatalf("unexpected table %q", client.lastTable)
	}
	if _, ok := client.items["cart"]["updatedAt"]; !ok {
		t.Fatalf("expected updatedAt attribute, got %+v", client.items["cart"])
	}

	got, err := repo.Load(ctx, "cart")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(got) != `[{"id":7,"quantity":1}]` {
		t.Fatalf("unexpected payload %s", got)
	}
}

func TestDynamoDB_LoadMissing(t *testing.T) {
	repo := NewDynamoDB(newStubDynamo(), "carts")
	_, err := repo.Load(context.Background(), "cart")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDynamoDB_Ping(t *testing.T) {
	client := newStubDynamo()
	client.describeErr = errors.New("no table")
	repo := NewDynamoDB(client, "carts")
	if err := repo.Ping(context.Background()); err == nil {
		t.Fatalf("expected ping error")
	}
}
