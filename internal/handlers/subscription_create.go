package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"github.com/Nevelin-W/managment-monorepo/internal/api"
	"github.com/Nevelin-W/managment-monorepo/internal/config"
	"github.com/Nevelin-W/managment-monorepo/internal/log"
	"github.com/Nevelin-W/managment-monorepo/internal/store"
)

type CreateSubscriptionHandler struct {
	Config        *config.Config
	Subscriptions store.Subscriptions
}

func NewCreateSubscriptionHandler(cfg *config.Config) (*CreateSubscriptionHandler, error) {
	c, err := newClients(cfg)
	if err != nil {
		return nil, err
	}
	return &CreateSubscriptionHandler{Config: cfg, Subscriptions: c.subscriptions}, nil
}

type createSubscriptionRequest struct {
	Name            string      `json:"name"`
	Amount          *api.Amount `json:"amount"`
	BillingCycle    string      `json:"billing_cycle"`
	NextBillingDate string      `json:"next_billing_date"`
	Category        *string     `json:"category"`
	Description     *string     `json:"description"`
}

func (h *CreateSubscriptionHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	dumpEvent(h.Config, req)

	claims, err := api.ExtractClaims(req)
	if err != nil {
		return api.Error(http.StatusUnauthorized, "Unauthorized")
	}

	var body createSubscriptionRequest
	if err := json.Unmarshal([]byte(req.Body), &body); err != nil {
		return api.Error(http.StatusBadRequest, "Invalid request body")
	}
	// a zero amount counts as missing, same as an absent field
	if body.Name == "" || body.Amount == nil || *body.Amount == 0 ||
		body.BillingCycle == "" || body.NextBillingDate == "" {
		return api.Error(http.StatusBadRequest, "Missing required fields")
	}

	ts := store.Now()
	sub := &store.Subscription{
		ID:              uuid.NewString(),
		UserID:          claims.Sub,
		Name:            body.Name,
		Amount:          float64(*body.Amount),
		BillingCycle:    body.BillingCycle,
		NextBillingDate: body.NextBillingDate,
		Category:        body.Category,
		Description:     body.Description,
		IsActive:        true,
		CreatedAt:       ts,
		UpdatedAt:       ts,
	}
	if err := h.Subscriptions.Put(ctx, sub); err != nil {
		log.Error("create subscription error", "error", err)
		return api.ErrorMessage(http.StatusInternalServerError, "Internal server error", err.Error())
	}

	return api.JSON(http.StatusCreated, sub)
}
