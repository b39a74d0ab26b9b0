package store

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"
)

// changeRetention is how long price-change entries survive before the
// table's TTL sweep removes them.
const changeRetention = 90 * 24 * time.Hour

// PriceChanges appends to the price-change log. Entries are never read
// back or mutated by this application.
type PriceChanges interface {
	Log(ctx context.Context, subscriptionID string, oldPrice, newPrice float64) error
}

type PriceChangeStore struct {
	db    DynamoDBAPI
	table string
}

func NewPriceChangeStore(db DynamoDBAPI, table string) *PriceChangeStore {
	return &PriceChangeStore{db: db, table: table}
}

func (s *PriceChangeStore) Log(ctx context.Context, subscriptionID string, oldPrice, newPrice float64) error {
	entry := PriceChange{
		ID:             uuid.NewString(),
		SubscriptionID: subscriptionID,
		OldPrice:       oldPrice,
		NewPrice:       newPrice,
		DetectedAt:     Now(),
		TTL:            time.Now().Add(changeRetention).Unix(),
	}
	item, err := attributevalue.MarshalMap(entry)
	if err != nil {
		return fmt.Errorf("marshal price change: %w", err)
	}
	if _, err := s.db.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("put price change: %w", err)
	}
	return nil
}
