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

type LoginHandler struct {
	Config   *config.Config
	Identity identity.Service
	Users    store.Users
}

func NewLoginHandler(cfg *config.Config) (*LoginHandler, error) {
	c, err := newClients(cfg)
	if err != nil {
		return nil, err
	}
	return &LoginHandler{Config: cfg, Identity: c.identity, Users: c.users}, nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *LoginHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	dumpEvent(h.Config, req)

	var body loginRequest
	if err := json.Unmarshal([]byte(req.Body), &body); err != nil {
		return api.Error(http.StatusBadRequest, "Invalid request body")
	}
	if err := validation.Require("Email and password are required", body.Email, body.Password); err != nil {
		return api.Error(http.StatusBadRequest, err.Error())
	}

	// check the account's verification state before attempting the
	// password, so an unverified account gets a distinguishable response
	st, err := h.Identity.Status(ctx, body.Email)
	if err != nil {
		code := apperr.Code(err)
		if code == "UserNotFoundException" {
			return api.Error(http.StatusUnauthorized, "Incorrect email or password")
		}
		log.Error("user status check error", "error", err)
		t := apperr.Translate(apperr.Login, code)
		return api.ErrorMessage(t.Status, t.Message, err.Error())
	}
	if !st.Confirmed || !st.EmailVerified {
		return api.ErrorMessage(http.StatusForbidden, "Email not verified",
			"Please verify your email before logging in. Check your inbox for the verification code.")
	}

	tokens, err := h.Identity.Authenticate(ctx, body.Email, body.Password)
	if err != nil {
		if errors.Is(err, identity.ErrNoCredentials) {
			return api.Error(http.StatusUnauthorized, "Authentication failed")
		}
		log.Error("authentication error", "error", err)
		t := apperr.Translate(apperr.Login, apperr.Code(err))
		return api.ErrorMessage(t.Status, t.Message, err.Error())
	}

	u, err := h.Users.Get(ctx, body.Email)
	if errors.Is(err, store.ErrNotFound) {
		return api.Error(http.StatusNotFound, "User not found")
	}
	if err != nil {
		log.Error("get user error", "error", err)
		return api.ErrorMessage(http.StatusInternalServerError, "Internal server error", err.Error())
	}

	return api.JSON(http.StatusOK, map[string]any{
		"id":            u.ID,
		"email":         u.Email,
		"name":          u.Name,
		"emailVerified": u.EmailVerified,
		"token":         tokens.Access,
		"idToken":       tokens.ID,
		"refreshToken":  tokens.Refresh,
	})
}
