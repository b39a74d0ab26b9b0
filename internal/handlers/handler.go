package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	cognito "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/Nevelin-W/managment-monorepo/internal/config"
	"github.com/Nevelin-W/managment-monorepo/internal/identity"
	"github.com/Nevelin-W/managment-monorepo/internal/log"
	"github.com/Nevelin-W/managment-monorepo/internal/store"
)

// Handler is the shape every API Lambda in this repo exposes.
type Handler interface {
	Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)
}

// clients bundles the external-service adapters a handler may need. Each
// constructor picks the subset it uses; tests inject fakes through the
// handler's exported fields instead.
type clients struct {
	identity      identity.Service
	users         store.Users
	subscriptions store.Subscriptions
	changes       store.PriceChanges
}

func newClients(cfg *config.Config) (*clients, error) {
	awscfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	db := dynamodb.NewFromConfig(awscfg)
	return &clients{
		identity:      identity.NewClient(cognito.NewFromConfig(awscfg), cfg.UserPoolID, cfg.UserPoolClientID),
		users:         store.NewUserStore(db, cfg.UsersTable),
		subscriptions: store.NewSubscriptionStore(db, cfg.SubscriptionsTable),
		changes:       store.NewPriceChangeStore(db, cfg.ChangesTable()),
	}, nil
}

func dumpEvent(cfg *config.Config, evt any) {
	if !cfg.DebugEnabled {
		return
	}
	b, err := json.Marshal(evt)
	if err != nil {
		log.Warn("failed to marshal triggered event", "error", err)
		return
	}
	log.Debug(string(b))
}
