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

type MeHandler struct {
	Config *config.Config
	Users  store.Users
}

func NewMeHandler(cfg *config.Config) (*MeHandler, error) {
	c, err := newClients(cfg)
	if err != nil {
		return nil, err
	}
	return &MeHandler{Config: cfg, Users: c.users}, nil
}

func (h *MeHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	dumpEvent(h.Config, req)

	claims, err := api.ExtractClaims(req)
	if err != nil {
		return api.Error(http.StatusUnauthorized, "Unauthorized")
	}

	u, err := h.Users.Get(ctx, claims.Email)
	if errors.Is(err, store.ErrNotFound) {
		return api.Error(http.StatusNotFound, "User not found")
	}
	if err != nil {
		log.Error("get user error", "error", err)
		return api.ErrorMessage(http.StatusInternalServerError, "Internal server error", err.Error())
	}

	return api.JSON(http.StatusOK, map[string]string{
		"id":        u.ID,
		"email":     u.Email,
		"name":      u.Name,
		"createdAt": u.CreatedAt,
	})
}
