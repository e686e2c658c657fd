package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/smartpick/smartpick/internal/gateway"
	"github.com/smartpick/smartpick/internal/logger"
	"github.com/smartpick/smartpick/internal/orchestrator"
	"github.com/smartpick/smartpick/pkg/kv"
	"github.com/smartpick/smartpick/pkg/session"
	"github.com/smartpick/smartpick/pkg/utils"
)

func main() {
	// Find env file
	envFile := ".env"
	if os.Getenv("ENV_FILE") != "" {
		envFile = os.Getenv("ENV_FILE")
	}

	// Load global config with optional yaml overlay
	cfg := utils.NewConfigFromEnv(envFile)
	if err := cfg.LoadYAML(cfg.GetWithDefault("CONFIG_FILE", "smartpick.yaml")); err != nil {
		log.Fatalf("[CLI]: Failed to load config file: %v", err)
	}

	logCfg := logger.Config{
		Level:  cfg.GetWithDefault("LOG_LEVEL", "info"),
		Pretty: true,
	}

	// Pick the persistence substrate: mysql when configured, else in-memory
	var history kv.Store
	if databaseURL := cfg.Get("DATABASE_URL"); databaseURL != "" {
		store, err := kv.NewMySqlStore(databaseURL)
		if err != nil {
			log.Fatalf("[CLI]: Failed to initialize history store: %v", err)
		}
		defer store.Close()
		history = store
	} else {
		fmt.Println("No DATABASE_URL configured; chat history will not survive this session.")
		history = kv.NewMemoryStore()
	}

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
	orch.SetStatusFunc(func(status string) {
		if status != "" {
			fmt.Println(status)
		}
	})

	runInteractive(orch, store)
}

func runInteractive(orch *orchestrator.Orchestrator, store *session.Store) {
	fmt.Println("SmartPick shopping assistant started. Type 'exit' to quit, 'history' to list sessions, 'open N' to view one, 'clear' to wipe history.")

	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("\n> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())

		switch {
		case input == "exit":
			return

		case input == "history":
			for i, s := range store.Sessions() {
				fmt.Printf("%d: %s (%d messages)\n", i, s.CreatedAt, s.Turns)
			}

		case strings.HasPrefix(input, "open "):
			index, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(input, "open ")))
			if err != nil {
				fmt.Println("Usage: open N")
				continue
			}
			messages := orch.SelectForViewing(index)
			if messages == nil {
				fmt.Println("No such session.")
				continue
			}
			for _, m := range messages {
				fmt.Printf("[%s] %s\n", m.Sender, m.Text)
			}

		case input == "clear":
			if orch.ClearHistory() {
				fmt.Println("Chat history cleared.")
			}

		default:
			result, ok := orch.Submit(ctx, input)
			if !ok {
				continue
			}
			fmt.Printf("SmartPick: %s\n", result.Reply)
		}
	}
}
