package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/Nevelin-W/managment-monorepo/internal/api"
	"github.com/Nevelin-W/managment-monorepo/internal/config"
	"github.com/Nevelin-W/managment-monorepo/internal/log"
	"github.com/Nevelin-W/managment-monorepo/internal/store"
)

type UpdateSubscriptionHandler struct {
	Config        *config.Config
	Subscriptions store.Subscriptions
}

func NewUpdateSubscriptionHandler(cfg *config.Config) (*UpdateSubscriptionHandler, error) {
	c, err := newClients(cfg)
	if err != nil {
		return nil, err
	}
	return &UpdateSubscriptionHandler{Config: cfg, Subscriptions: c.subscriptions}, nil
}

type updateSubscriptionRequest struct {
	Name            *string     `json:"name"`
	Amount          *api.Amount `json:"amount"`
	BillingCycle    *string     `json:"billing_cycle"`
	NextBillingDate *string     `json:"next_billing_date"`
	Category        *string     `json:"category"`
	Description     *string     `json:"description"`
	IsActive        *bool       `json:"is_active"`
}

func (h *UpdateSubscriptionHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	dumpEvent(h.Config, req)

	claims, err := api.ExtractClaims(req)
	if err != nil {
		return api.Error(http.StatusUnauthorized, "Unauthorized")
	}
	id := req.PathParameters["id"]
	if id == "" {
		return api.Error(http.StatusBadRequest, "Missing required parameters")
	}

	var body updateSubscriptionRequest
	if err := json.Unmarshal([]byte(req.Body), &body); err != nil {
		return api.Error(http.StatusBadRequest, "Invalid request body")
	}

	// ownership check: the key carries the caller's user id, so a record
	// owned by someone else is indistinguishable from a missing one
	if _, err := h.Subscriptions.Get(ctx, id, claims.Sub); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return api.Error(http.StatusNotFound, "Subscription not found")
		}
		log.Error("get subscription error", "error", err)
		return api.ErrorMessage(http.StatusInternalServerError, "Internal server error", err.Error())
	}

	changes := store.SubscriptionUpdate{
		Name:            body.Name,
		BillingCycle:    body.BillingCycle,
		NextBillingDate: body.NextBillingDate,
		Category:        body.Category,
		Description:     body.Description,
		IsActive:        body.IsActive,
	}
	if body.Amount != nil {
		amount := float64(*body.Amount)
		changes.Amount = &amount
	}

	updated, err := h.Subscriptions.Update(ctx, id, claims.Sub, changes)
	if err != nil {
		log.Error("update subscription error", "error", err)
		return api.ErrorMessage(http.StatusInternalServerError, "Internal server error", err.Error())
	}

	return api.JSON(http.StatusOK, updated)
}
