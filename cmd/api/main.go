package main

import (
	"log"
	"os"

	"github.com/smartpick/smartpick/internal/api"
	"github.com/smartpick/smartpick/internal/gateway"
	"github.com/smartpick/smartpick/internal/logger"
	"github.com/smartpick/smartpick/internal/orchestrator"
	"github.com/smartpick/smartpick/pkg/kv"
	"github.com/smartpick/smartpick/pkg/session"
	"github.com/smartpick/smartpick/pkg/utils"
)

// Start the API server
func main() {
	// Find env file
	envFile := ".env"
	if os.Getenv("ENV_FILE") != "" {
		envFile = os.Getenv("ENV_FILE")
	}

	// Load global config with optional yaml overlay
	cfg := utils.NewConfigFromEnv(envFile)
	if err := cfg.LoadYAML(cfg.GetWithDefault("CONFIG_FILE", "smartpick.yaml")); err != nil {
		log.Fatalf("[API-MAIN]: Failed to load config file: %v", err)
	}

	logCfg := logger.Config{
		Level:  cfg.GetWithDefault("LOG_LEVEL", "info"),
		Pretty: cfg.GetWithDefault("LOG_FORMAT", "json") == "pretty",
	}

	history, err := kv.NewMySqlStore(cfg.Get("DATABASE_URL"))
	if err != nil {
		log.Fatalf("[API-MAIN]: Failed to initialize history store: %v", err)
	}
	defer history.Close()

	store := session.NewStore(history, logger.New(logCfg, "session"))

	generator := gateway.NewOpenAIGenerator(gateway.GeneratorConfig{
		APIKey:         cfg.Get("OPENAI_API_KEY"),
		Model:          cfg.GetWithDefault("GENERATION_MODEL", "gpt-4o-mini"),
		BaseURL:        cfg.Get("OPENAI_BASE_URL"),
		TimeoutSeconds: cfg.GetIntWithDefault("GATEWAY_TIMEOUT_SECONDS", gateway.DefaultTimeoutSeconds),
	}, logger.New(logCfg, "generator"))

	searcher := gateway.NewCatalogClient(gateway.CatalogConfig{
		BaseURL:        cfg.Get("CATALOG_BASE_URL"),
		APIKey:         cfg.Get("CATALOG_API_KEY"),
		APIHost:        cfg.Get("CATALOG_API_HOST"),
		TimeoutSeconds: cfg.GetIntWithDefault("GATEWAY_TIMEOUT_SECONDS", gateway.DefaultTimeoutSeconds),
	}, logger.New(logCfg, "catalog"))

	orch := orchestrator.New(store, generator, searcher, logger.New(logCfg, "orchestrator"))

	if err := api.Start(cfg, orch, store); err != nil {
		log.Fatalf("[API-MAIN]: Failed to start server: %v", err)
	}
}
