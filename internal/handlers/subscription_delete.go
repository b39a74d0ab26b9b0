package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/Nevelin-W/managment-monorepo/internal/api"
	"github.com/Nevelin-W/managment-monorepo/internal/config"
	"github.com/Nevelin-W/managment-monorepo/internal/log"
	"github.com/Nevelin-W/managment-monorepo/internal/store"
)

type DeleteSubscriptionHandler struct {
	Config        *config.Config
	Subscriptions store.Subscriptions
}

func NewDeleteSubscriptionHandler(cfg *config.Config) (*DeleteSubscriptionHandler, error) {
	c, err := newClients(cfg)
	if err != nil {
		return nil, err
	}
	return &DeleteSubscriptionHandler{Config: cfg, Subscriptions: c.subscriptions}, nil
}

func (h *DeleteSubscriptionHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	dumpEvent(h.Config, req)

	claims, err := api.ExtractClaims(req)
	if err != nil {
		return api.Error(http.StatusUnauthorized, "Unauthorized")
	}
	id := req.PathParameters["id"]
	if id == "" {
		return api.Error(http.StatusBadRequest, "Missing required parameters")
	}

	if _, err := h.Subscriptions.Get(ctx, id, claims.Sub); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return api.Error(http.StatusNotFound, "Subscription not found")
		}
		log.Error("get subscription error", "error", err)
		return api.ErrorMessage(http.StatusInternalServerError, "Internal server error", err.Error())
	}

	if err := h.Subscriptions.Delete(ctx, id, claims.Sub); err != nil {
		log.Error("delete subscription error", "error", err)
		return api.ErrorMessage(http.StatusInternalServerError, "Internal server error", err.Error())
	}

	return api.JSON(http.StatusOK, map[string]string{
		"message": "Subscription deleted successfully",
		"id":      id,
	})
}
