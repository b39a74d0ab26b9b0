package handlers

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/Nevelin-W/managment-monorepo/internal/api"
	"github.com/Nevelin-W/managment-monorepo/internal/config"
	"github.com/Nevelin-W/managment-monorepo/internal/log"
	"github.com/Nevelin-W/managment-monorepo/internal/store"
)

type ListSubscriptionsHandler struct {
	Config        *config.Config
	Subscriptions store.Subscriptions
}

func NewListSubscriptionsHandler(cfg *config.Config) (*ListSubscriptionsHandler, error) {
	c, err := newClients(cfg)
	if err != nil {
		return nil, err
	}
	return &ListSubscriptionsHandler{Config: cfg, Subscriptions: c.subscriptions}, nil
}

func (h *ListSubscriptionsHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	dumpEvent(h.Config, req)

	claims, err := api.ExtractClaims(req)
	if err != nil {
		log.Error("claims extraction failed", "error", err)
		return api.Unauthorized(err.Error())
	}

	subs, err := h.Subscriptions.ListByUser(ctx, claims.Sub)
	if err != nil {
		log.Error("list subscriptions error", "error", err)
		return api.ErrorMessage(http.StatusInternalServerError, "Internal server error", err.Error())
	}
	if subs == nil {
		subs = []store.Subscription{}
	}

	return api.JSON(http.StatusOK, subs)
}
