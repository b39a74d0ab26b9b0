package main

import (
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/Nevelin-W/managment-monorepo/internal/config"
	"github.com/Nevelin-W/managment-monorepo/internal/handlers"
	"github.com/Nevelin-W/managment-monorepo/internal/log"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		log.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	log.Configure(cfg.LogLevel)

	h, err := handlers.NewChangePasswordHandler(cfg)
	if err != nil {
		log.Error("failed to init handler", "error", err)
		os.Exit(1)
	}

	lambda.Start(h.Handle)
}
