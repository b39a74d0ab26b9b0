package store

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Users reads and writes profile records in the users table.
type Users interface {
	Get(ctx context.Context, email string) (*User, error)
	Put(ctx context.Context, u *User) error
	SetEmailVerified(ctx context.Context, email string) (*User, error)
	UpdateName(ctx context.Context, email, name string) (*User, error)
}

type UserStore struct {
	db    DynamoDBAPI
	table string
}

func NewUserStore(db DynamoDBAPI, table string) *UserStore {
	return &UserStore{db: db, table: table}
}

func userKey(email string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"email": &types.AttributeValueMemberS{Value: email},
	}
}

func (s *UserStore) Get(ctx context.Context, email string) (*User, error) {
	out, err := s.db.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key:       userKey(email),
	})
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, ErrNotFound
	}
	u := &User{}
	if err := attributevalue.UnmarshalMap(out.Item, u); err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}
	return u, nil
}

func (s *UserStore) Put(ctx context.Context, u *User) error {
	item, err := attributevalue.MarshalMap(u)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	if _, err := s.db.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("put user: %w", err)
	}
	return nil
}

// SetEmailVerified marks the profile verified and touches updated_at,
// returning the updated record. The existence check keeps the update from
// creating a phantom record for an email with no profile.
func (s *UserStore) SetEmailVerified(ctx context.Context, email string) (*User, error) {
	b := NewUpdateBuilder()
	b.Set("email_verified", true)
	return s.update(ctx, email, b)
}

// UpdateName changes the display name and touches updated_at.
func (s *UserStore) UpdateName(ctx context.Context, email, name string) (*User, error) {
	b := NewUpdateBuilder()
	b.Set("name", name)
	return s.update(ctx, email, b)
}

func (s *UserStore) update(ctx context.Context, email string, b *UpdateBuilder) (*User, error) {
	if _, err := s.Get(ctx, email); err != nil {
		return nil, err
	}
	expr, names, values, err := b.Build(Now())
	if err != nil {
		return nil, err
	}
	out, err := s.db.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.table),
		Key:                       userKey(email),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	u := &User{}
	if err := attributevalue.UnmarshalMap(out.Attributes, u); err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}
	return u, nil
}
