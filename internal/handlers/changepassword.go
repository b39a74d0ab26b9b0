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

type ChangePasswordHandler struct {
	Config   *config.Config
	Identity identity.Service
}

func NewChangePasswordHandler(cfg *config.Config) (*ChangePasswordHandler, error) {
	c, err := newClients(cfg)
	if err != nil {
		return nil, err
	}
	return &ChangePasswordHandler{Config: cfg, Identity: c.identity}, nil
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

func (h *ChangePasswordHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	dumpEvent(h.Config, req)

	claims, err := api.ExtractClaims(req)
	if err != nil {
		return api.Error(http.StatusUnauthorized, "Unauthorized")
	}

	raw := req.Body
	if raw == "" {
		raw = "{}"
	}
	var body changePasswordRequest
	if err := json.Unmarshal([]byte(raw), &body); err != nil {
		return api.Error(http.StatusBadRequest, "Invalid request body")
	}
	if body.OldPassword == "" {
		return api.Error(http.StatusBadRequest, "Current password is required")
	}
	if body.NewPassword == "" {
		return api.Error(http.StatusBadRequest, "New password is required")
	}
	if err := validation.NewPassword(body.OldPassword, body.NewPassword); err != nil {
		return api.Error(http.StatusBadRequest, err.Error())
	}

	token := api.BearerToken(req)
	if token == "" {
		return api.Error(http.StatusUnauthorized, "Missing authorization token")
	}

	log.Info("attempting password change", "email", claims.Email)

	if err := h.Identity.ChangePassword(ctx, token, body.OldPassword, body.NewPassword); err != nil {
		log.Error("cognito password change error", "error", err)
		t := apperr.Translate(apperr.ChangePassword, apperr.Code(err))
		return api.Error(t.Status, t.Message)
	}

	return api.JSON(http.StatusOK, map[string]any{
		"message": "Password changed successfully",
		"success": true,
	})
}
