package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/Nevelin-W/managment-monorepo/internal/api"
	"github.com/Nevelin-W/managment-monorepo/internal/apperr"
	"github.com/Nevelin-W/managment-monorepo/internal/config"
	"github.com/Nevelin-W/managment-monorepo/internal/identity"
	"github.com/Nevelin-W/managment-monorepo/internal/log"
	"github.com/Nevelin-W/managment-monorepo/internal/validation"
)

type ResendCodeHandler struct {
	Config   *config.Config
	Identity identity.Service
}

func NewResendCodeHandler(cfg *config.Config) (*ResendCodeHandler, error) {
	c, err := newClients(cfg)
	if err != nil {
		return nil, err
	}
	return &ResendCodeHandler{Config: cfg, Identity: c.identity}, nil
}

func (h *ResendCodeHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	dumpEvent(h.Config, req)

	var body struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal([]byte(req.Body), &body); err != nil {
		return api.Error(http.StatusBadRequest, "Invalid request body")
	}
	if err := validation.Require("Email is required", body.Email); err != nil {
		return api.Error(http.StatusBadRequest, err.Error())
	}

	if err := h.Identity.ResendCode(ctx, body.Email); err != nil {
		log.Error("resend code error", "error", err)
		t := apperr.Translate(apperr.ResendCode, apperr.Code(err))
		return api.ErrorMessage(t.Status, t.Message, err.Error())
	}

	return api.JSON(http.StatusOK, map[string]string{
		"message": "Verification code resent successfully",
	})
}
