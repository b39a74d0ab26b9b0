// Package store adapts DynamoDB to the record shapes this application
// keeps: user profiles, subscriptions, and the price-change log. Every
// operation is keyed; there are no scans.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// DynamoDBAPI is the subset of the DynamoDB client the stores use.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// ErrNotFound reports a keyed lookup that matched nothing, including
// lookups where the key carried a different owner than the record.
var ErrNotFound = errors.New("item not found")

// userIndex is the GSI on the subscriptions table keyed by user_id.
const userIndex = "UserIndex"

// Now is the timestamp format stored on every record.
func Now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
