package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"github.com/Nevelin-W/managment-monorepo/internal/api"
	"github.com/Nevelin-W/managment-monorepo/internal/apperr"
	"github.com/Nevelin-W/managment-monorepo/internal/config"
	"github.com/Nevelin-W/managment-monorepo/internal/identity"
	"github.com/Nevelin-W/managment-monorepo/internal/log"
	"github.com/Nevelin-W/managment-monorepo/internal/store"
	"github.com/Nevelin-W/managment-monorepo/internal/validation"
	"github.com/Nevelin-W/managment-monorepo/internal/verifier"
)

type SignupHandler struct {
	Config        *config.Config
	Identity      identity.Service
	Users         store.Users
	EmailVerifier verifier.EmailVerifier // nil unless verification is enabled
}

func NewSignupHandler(cfg *config.Config) (*SignupHandler, error) {
	c, err := newClients(cfg)
	if err != nil {
		return nil, err
	}
	h := &SignupHandler{Config: cfg, Identity: c.identity, Users: c.users}
	if cfg.EmailVerificationEnabled {
		h.EmailVerifier = verifier.NewSendGridVerifier(cfg)
	}
	return h, nil
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (h *SignupHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	dumpEvent(h.Config, req)

	var body signupRequest
	if err := json.Unmarshal([]byte(req.Body), &body); err != nil {
		return api.Error(http.StatusBadRequest, "Invalid request body")
	}
	if err := validation.Require("Email, password, and name are required", body.Email, body.Password, body.Name); err != nil {
		return api.Error(http.StatusBadRequest, err.Error())
	}

	if h.EmailVerifier != nil {
		result, err := h.EmailVerifier.VerifyEmail(ctx, body.Email)
		if err != nil {
			// best effort; never block a signup on the verifier
			log.Warn("email verification error", "error", err)
		} else if result != nil && !result.IsValid {
			return api.Error(http.StatusBadRequest, "Invalid email address")
		}
	}

	sub, err := h.Identity.SignUp(ctx, body.Email, body.Password, body.Name)
	if err != nil {
		log.Error("signup error", "error", err)
		t := apperr.Translate(apperr.Signup, apperr.Code(err))
		return api.ErrorMessage(t.Status, t.Message, err.Error())
	}

	if h.Config.AutoConfirm() {
		if err := h.Identity.AutoConfirm(ctx, body.Email); err != nil {
			log.Error("auto confirm error", "error", err)
			t := apperr.Translate(apperr.Signup, apperr.Code(err))
			return api.ErrorMessage(t.Status, t.Message, err.Error())
		}
	}

	ts := store.Now()
	u := &store.User{
		ID:         uuid.NewString(),
		Email:      body.Email,
		Name:       body.Name,
		CognitoSub: sub,
		CreatedAt:  ts,
		UpdatedAt:  ts,
	}
	if err := h.Users.Put(ctx, u); err != nil {
		log.Error("put user error", "error", err)
		return api.ErrorMessage(http.StatusInternalServerError, "Internal server error", err.Error())
	}

	return api.JSON(http.StatusCreated, map[string]string{
		"id":      u.ID,
		"email":   u.Email,
		"name":    u.Name,
		"message": "User created successfully",
	})
}
