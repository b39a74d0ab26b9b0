package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/Nevelin-W/managment-monorepo/internal/api"
	"github.com/Nevelin-W/managment-monorepo/internal/apperr"
	"github.com/Nevelin-W/managment-monorepo/internal/config"
	"github.com/Nevelin-W/managment-monorepo/internal/identity"
	"github.com/Nevelin-W/managment-monorepo/internal/log"
	"github.com/Nevelin-W/managment-monorepo/internal/store"
	"github.com/Nevelin-W/managment-monorepo/internal/validation"
)

type ConfirmSignupHandler struct {
	Config   *config.Config
	Identity identity.Service
	Users    store.Users
}

func NewConfirmSignupHandler(cfg *config.Config) (*ConfirmSignupHandler, error) {
	c, err := newClients(cfg)
	if err != nil {
		return nil, err
	}
	return &ConfirmSignupHandler{Config: cfg, Identity: c.identity, Users: c.users}, nil
}

type confirmRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

const confirmedMessage = "Email verified successfully. You can now log in."

// Handle is idempotent: confirming an already-confirmed account reports
// success and still forces the verified flag.
func (h *ConfirmSignupHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	dumpEvent(h.Config, req)

	var body confirmRequest
	if err := json.Unmarshal([]byte(req.Body), &body); err != nil {
		return api.Error(http.StatusBadRequest, "Invalid request body")
	}
	if err := validation.Require("Email and verification code are required", body.Email, body.Code); err != nil {
		return api.Error(http.StatusBadRequest, err.Error())
	}

	alreadyConfirmed := false
	if st, err := h.Identity.Status(ctx, body.Email); err != nil {
		log.Warn("user status check error", "error", err)
	} else {
		alreadyConfirmed = st.Confirmed
	}

	if !alreadyConfirmed {
		if err := h.Identity.Confirm(ctx, body.Email, body.Code); err != nil {
			code := apperr.Code(err)
			// these identifiers mean the account was confirmed between the
			// status probe and the confirm call; fall through to marking
			// the email verified
			if code != "NotAuthorizedException" && code != "AliasExistsException" {
				log.Error("confirm error", "error", err)
				t := apperr.Translate(apperr.Confirm, code)
				return api.ErrorMessage(t.Status, t.Message, err.Error())
			}
			log.Info("user already confirmed, marking email verified")
		}
	}

	// the provider is authoritative for the verified flag; set it whether
	// or not the confirm call itself ran
	if err := h.Identity.MarkEmailVerified(ctx, body.Email); err != nil {
		log.Error("mark email verified error", "error", err)
		t := apperr.Translate(apperr.Confirm, apperr.Code(err))
		return api.ErrorMessage(t.Status, t.Message, err.Error())
	}

	u, err := h.Users.SetEmailVerified(ctx, body.Email)
	if errors.Is(err, store.ErrNotFound) {
		log.Warn("user record not found after confirmation", "email", body.Email)
		return api.JSON(http.StatusOK, map[string]any{
			"message":       confirmedMessage,
			"email":         body.Email,
			"emailVerified": true,
		})
	}
	if err != nil {
		log.Error("user record update error", "error", err)
		return api.ErrorMessage(http.StatusInternalServerError, "Internal server error", err.Error())
	}

	return api.JSON(http.StatusOK, map[string]any{
		"message": confirmedMessage,
		"user": map[string]any{
			"id":            u.ID,
			"email":         u.Email,
			"name":          u.Name,
			"emailVerified": u.EmailVerified,
		},
	})
}
