package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/Nevelin-W/managment-monorepo/internal/api"
	"github.com/Nevelin-W/managment-monorepo/internal/config"
	"github.com/Nevelin-W/managment-monorepo/internal/identity"
	"github.com/Nevelin-W/managment-monorepo/internal/log"
	"github.com/Nevelin-W/managment-monorepo/internal/store"
	"github.com/Nevelin-W/managment-monorepo/internal/validation"
)

type UpdateProfileHandler struct {
	Config   *config.Config
	Identity identity.Service
	Users    store.Users
}

func NewUpdateProfileHandler(cfg *config.Config) (*UpdateProfileHandler, error) {
	c, err := newClients(cfg)
	if err != nil {
		return nil, err
	}
	return &UpdateProfileHandler{Config: cfg, Identity: c.identity, Users: c.users}, nil
}

func (h *UpdateProfileHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	dumpEvent(h.Config, req)

	claims, err := api.ExtractClaims(req)
	if err != nil {
		return api.Error(http.StatusUnauthorized, "Unauthorized")
	}

	raw := req.Body
	if raw == "" {
		raw = "{}"
	}
	var body struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal([]byte(raw), &body); err != nil {
		return api.Error(http.StatusBadRequest, "Invalid request body")
	}
	if body.Name == "" {
		return api.Error(http.StatusBadRequest, "Name is required and must be a string")
	}
	name, verr := validation.Name(body.Name)
	if verr != nil {
		return api.Error(http.StatusBadRequest, verr.Error())
	}

	if _, err := h.Users.Get(ctx, claims.Email); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return api.Error(http.StatusNotFound, "User not found")
		}
		log.Error("get user error", "error", err)
		return api.ErrorMessage(http.StatusInternalServerError, "Internal server error", err.Error())
	}

	u, err := h.Users.UpdateName(ctx, claims.Email, name)
	if err != nil {
		log.Error("update user error", "error", err)
		return api.ErrorMessage(http.StatusInternalServerError, "Internal server error", err.Error())
	}

	// the profile table is the source of truth; the user-pool mirror is
	// best effort and a failure never surfaces to the caller
	if err := h.Identity.UpdateName(ctx, claims.Email, name); err != nil {
		log.Warn("cognito attribute mirror failed", "error", err)
	}

	return api.JSON(http.StatusOK, map[string]any{
		"message": "Profile updated successfully",
		"user": map[string]string{
			"id":        u.ID,
			"email":     u.Email,
			"name":      u.Name,
			"updatedAt": u.UpdatedAt,
		},
	})
}
