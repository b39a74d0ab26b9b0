package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/Nevelin-W/managment-monorepo/internal/api"
	"github.com/Nevelin-W/managment-monorepo/internal/config"
	"github.com/Nevelin-W/managment-monorepo/internal/emailintake"
	"github.com/Nevelin-W/managment-monorepo/internal/log"
	"github.com/Nevelin-W/managment-monorepo/internal/store"
)

// EmailProcessorHandler ingests billing emails. Extraction is stubbed; the
// reconciliation path below only runs once a Parser implementation yields
// data.
type EmailProcessorHandler struct {
	Config        *config.Config
	Parser        emailintake.Parser
	Subscriptions store.Subscriptions
	Changes       store.PriceChanges
}

func NewEmailProcessorHandler(cfg *config.Config) (*EmailProcessorHandler, error) {
	c, err := newClients(cfg)
	if err != nil {
		return nil, err
	}
	return &EmailProcessorHandler{
		Config:        cfg,
		Parser:        emailintake.StubParser{},
		Subscriptions: c.subscriptions,
		Changes:       c.changes,
	}, nil
}

func (h *EmailProcessorHandler) Handle(ctx context.Context, raw json.RawMessage) (events.APIGatewayProxyResponse, error) {
	dumpEvent(h.Config, raw)

	parsed, err := h.Parser.Parse(ctx, raw)
	if err != nil {
		log.Error("email parse error", "error", err)
		return api.ErrorMessage(http.StatusInternalServerError, "Email processing failed", err.Error())
	}
	if parsed != nil {
		if err := h.reconcile(ctx, parsed); err != nil {
			log.Error("email reconcile error", "error", err)
			return api.ErrorMessage(http.StatusInternalServerError, "Email processing failed", err.Error())
		}
	}

	return api.JSON(http.StatusOK, map[string]string{
		"message": "Email processing completed",
	})
}

// reconcile matches the parsed email against the user's subscriptions and,
// on a price difference, appends to the change log before updating the
// stored amount.
func (h *EmailProcessorHandler) reconcile(ctx context.Context, p *emailintake.ParsedEmail) error {
	sub, err := h.Subscriptions.FindByMerchant(ctx, p.UserID, p.Merchant)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if sub.Amount == p.Amount {
		return nil
	}

	log.Info("price change detected", "merchant", p.Merchant, "old", sub.Amount, "new", p.Amount)

	if err := h.Changes.Log(ctx, sub.ID, sub.Amount, p.Amount); err != nil {
		return err
	}
	amount := p.Amount
	_, err = h.Subscriptions.Update(ctx, sub.ID, p.UserID, store.SubscriptionUpdate{Amount: &amount})
	return err
}
