package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"sort"

	"github.com/aws/aws-lambda-go/events"
	"github.com/joho/godotenv"

	"github.com/Nevelin-W/managment-monorepo/internal/config"
	"github.com/Nevelin-W/managment-monorepo/internal/handlers"
	"github.com/Nevelin-W/managment-monorepo/internal/log"
)

var (
	handlerName string
	dataPath    string
)

// registry maps a handler name to its constructor for local replay.
// email-processor is absent: it consumes a raw provider event, not an API
// Gateway proxy request, so the fixture shape here does not fit it.
var registry = map[string]func(*config.Config) (handlers.Handler, error){
	"signup": func(cfg *config.Config) (handlers.Handler, error) {
		return handlers.NewSignupHandler(cfg)
	},
	"confirm-signup": func(cfg *config.Config) (handlers.Handler, error) {
		return handlers.NewConfirmSignupHandler(cfg)
	},
	"resend-code": func(cfg *config.Config) (handlers.Handler, error) {
		return handlers.NewResendCodeHandler(cfg)
	},
	"login": func(cfg *config.Config) (handlers.Handler, error) {
		return handlers.NewLoginHandler(cfg)
	},
	"change-password": func(cfg *config.Config) (handlers.Handler, error) {
		return handlers.NewChangePasswordHandler(cfg)
	},
	"me": func(cfg *config.Config) (handlers.Handler, error) {
		return handlers.NewMeHandler(cfg)
	},
	"update-profile": func(cfg *config.Config) (handlers.Handler, error) {
		return handlers.NewUpdateProfileHandler(cfg)
	},
	"create-subscription": func(cfg *config.Config) (handlers.Handler, error) {
		return handlers.NewCreateSubscriptionHandler(cfg)
	},
	"list-subscriptions": func(cfg *config.Config) (handlers.Handler, error) {
		return handlers.NewListSubscriptionsHandler(cfg)
	},
	"update-subscription": func(cfg *config.Config) (handlers.Handler, error) {
		return handlers.NewUpdateSubscriptionHandler(cfg)
	},
	"delete-subscription": func(cfg *config.Config) (handlers.Handler, error) {
		return handlers.NewDeleteSubscriptionHandler(cfg)
	},
}

func init() {
	flag.StringVar(&handlerName, "handler", "signup", "handler to invoke")
	flag.StringVar(&dataPath, "data", "", "path to JSON file with test request events")
	flag.Parse()
}

func main() {
	envpath := filepath.Join(".env")
	if _, err := os.Stat(envpath); err == nil {
		_ = godotenv.Load(envpath)
	}

	cfg, err := config.New()
	if err != nil {
		log.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	log.Configure(cfg.LogLevel)

	if cfg.DebugDataPath == "" {
		cfg.DebugDataPath = filepath.Join("fixtures", "debug-data.json")
	}
	if dataPath != "" {
		cfg.DebugDataPath = dataPath
	}

	build, ok := registry[handlerName]
	if !ok {
		names := make([]string, 0, len(registry))
		for n := range registry {
			names = append(names, n)
		}
		sort.Strings(names)
		log.Error("unknown handler", "name", handlerName, "known", names)
		os.Exit(1)
	}

	h, err := build(cfg)
	if err != nil {
		log.Error("failed to init handler", "error", err)
		os.Exit(1)
	}

	data, err := os.ReadFile(cfg.DebugDataPath)
	if err != nil {
		log.Error("failed to read data file", "path", cfg.DebugDataPath, "error", err)
		os.Exit(1)
	}

	evts := []events.APIGatewayProxyRequest{}
	if err := json.Unmarshal(data, &evts); err != nil {
		log.Error("failed to parse event file", "error", err)
		os.Exit(1)
	}

	for i, e := range evts {
		rErr := ""
		r, err := h.Handle(context.Background(), e)
		if err != nil {
			rErr = err.Error()
			log.Error("handler invocation failed", "error", err)
		}
		log.Info("event handled", "index", i, "handler", handlerName, "status", r.StatusCode, "body", r.Body, "error", rErr)
	}

	log.Info("debug run completed")
}
