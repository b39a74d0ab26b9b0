package store

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// SubscriptionUpdate carries the optional fields of a partial update. Nil
// fields are left untouched; updated_at advances regardless.
type SubscriptionUpdate struct {
	Name            *string
	Amount          *float64
	BillingCycle    *string
	NextBillingDate *string
	Category        *string
	Description     *string
	IsActive        *bool
}

// Subscriptions reads and writes subscription records. Every operation
// takes the owning user id as part of the key.
type Subscriptions interface {
	Put(ctx context.Context, sub *Subscription) error
	Get(ctx context.Context, id, userID string) (*Subscription, error)
	Update(ctx context.Context, id, userID string, changes SubscriptionUpdate) (*Subscription, error)
	Delete(ctx context.Context, id, userID string) error
	ListByUser(ctx context.Context, userID string) ([]Subscription, error)
	FindByMerchant(ctx context.Context, userID, merchant string) (*Subscription, error)
}

type SubscriptionStore struct {
	db    DynamoDBAPI
	table string
}

func NewSubscriptionStore(db DynamoDBAPI, table string) *SubscriptionStore {
	return &SubscriptionStore{db: db, table: table}
}

func subscriptionKey(id, userID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id":      &types.AttributeValueMemberS{Value: id},
		"user_id": &types.AttributeValueMemberS{Value: userID},
	}
}

func (s *SubscriptionStore) Put(ctx context.Context, sub *Subscription) error {
	item, err := attributevalue.MarshalMap(sub)
	if err != nil {
		return fmt.Errorf("marshal subscription: %w", err)
	}
	if _, err := s.db.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("put subscription: %w", err)
	}
	return nil
}

func (s *SubscriptionStore) Get(ctx context.Context, id, userID string) (*Subscription, error) {
	out, err := s.db.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key:       subscriptionKey(id, userID),
	})
	if err != nil {
		return nil, fmt.Errorf("get subscription: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, ErrNotFound
	}
	sub := &Subscription{}
	if err := attributevalue.UnmarshalMap(out.Item, sub); err != nil {
		return nil, fmt.Errorf("unmarshal subscription: %w", err)
	}
	return sub, nil
}

func (s *SubscriptionStore) Update(ctx context.Context, id, userID string, changes SubscriptionUpdate) (*Subscription, error) {
	b := NewUpdateBuilder()
	if changes.Name != nil {
		b.Set("name", *changes.Name)
	}
	if changes.Amount != nil {
		b.Set("amount", *changes.Amount)
	}
	if changes.BillingCycle != nil {
		b.Set("billing_cycle", *changes.BillingCycle)
	}
	if changes.NextBillingDate != nil {
		b.Set("next_billing_date", *changes.NextBillingDate)
	}
	if changes.Category != nil {
		b.Set("category", *changes.Category)
	}
	if changes.Description != nil {
		b.Set("description", *changes.Description)
	}
	if changes.IsActive != nil {
		b.Set("is_active", *changes.IsActive)
	}
	expr, names, values, err := b.Build(Now())
	if err != nil {
		return nil, err
	}
	out, err := s.db.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.table),
		Key:                       subscriptionKey(id, userID),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		return nil, fmt.Errorf("update subscription: %w", err)
	}
	sub := &Subscription{}
	if err := attributevalue.UnmarshalMap(out.Attributes, sub); err != nil {
		return nil, fmt.Errorf("unmarshal subscription: %w", err)
	}
	return sub, nil
}

func (s *SubscriptionStore) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.db.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key:       subscriptionKey(id, userID),
	}); err != nil {
		return fmt.Errorf("delete subscription: %w", err)
	}
	return nil
}

func (s *SubscriptionStore) ListByUser(ctx context.Context, userID string) ([]Subscription, error) {
	out, err := s.db.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.table),
		IndexName:              aws.String(userIndex),
		KeyConditionExpression: aws.String("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("query subscriptions: %w", err)
	}
	subs := []Subscription{}
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &subs); err != nil {
		return nil, fmt.Errorf("unmarshal subscriptions: %w", err)
	}
	return subs, nil
}

// FindByMerchant returns the first of the user's subscriptions whose name
// contains the merchant fragment. Used by the email-intake path.
func (s *SubscriptionStore) FindByMerchant(ctx context.Context, userID, merchant string) (*Subscription, error) {
	out, err := s.db.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.table),
		IndexName:              aws.String(userIndex),
		KeyConditionExpression: aws.String("user_id = :uid"),
		FilterExpression:       aws.String("contains(#n, :merchant)"),
		ExpressionAttributeNames: map[string]string{
			"#n": "name",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid":      &types.AttributeValueMemberS{Value: userID},
			":merchant": &types.AttributeValueMemberS{Value: merchant},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("query subscriptions: %w", err)
	}
	if len(out.Items) == 0 {
		return nil, ErrNotFound
	}
	sub := &Subscription{}
	if err := attributevalue.UnmarshalMap(out.Items[0], sub); err != nil {
		return nil, fmt.Errorf("unmarshal subscription: %w", err)
	}
	return sub, nil
}
