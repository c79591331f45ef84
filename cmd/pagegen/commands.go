package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/momentouslyfe-web/funnelcart-sub001/internal/config"
	"github.com/momentouslyfe-web/funnelcart-sub001/internal/models"
	"github.com/momentouslyfe-web/funnelcart-sub001/internal/service"
	"github.com/momentouslyfe-web/funnelcart-sub001/pkg/logger"
	"github.com/momentouslyfe-web/funnelcart-sub001/pkg/validator"
)

func newApp() *cli.App {
	requestFlag := &cli.StringFlag{
		Name:     "request",
		Aliases:  []string{"r"},
		Usage:    "path to a YAML generation request",
		Required: true,
	}

	return &cli.App{
		Name:  "pagegen",
		Usage: "Generate and inspect AI page drafts",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "log level (debug, info, warn, error)",
				EnvVars: []string{"PAGEGEN_LOG_LEVEL"},
			},
			&cli.BoolFlag{
				Name:  "compact",
				Usage: "print JSON without indentation",
			},
		},
		Before: func(c *cli.Context) error {
			logger.SetLevel(c.String("log-level"))
			validator.Init()
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "template",
				Usage: "Print the blocks of a page template",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "type",
						Aliases: []string{"t"},
						Value:   "sales-page",
						Usage:   "template type or funnel page type",
					},
				},
				Action: templateCommand,
			},
			{
				Name:   "catalog",
				Usage:  "Print the block palette, models and templates",
				Action: catalogCommand,
			},
			{
				Name:   "prompt",
				Usage:  "Print the prompt built for a request",
				Flags:  []cli.Flag{requestFlag},
				Action: promptCommand,
			},
			{
				Name:  "generate",
				Usage: "Generate blocks for a request, or parse a saved model reply",
				Flags: []cli.Flag{
					requestFlag,
					&cli.StringFlag{
						Name:  "raw",
						Usage: "parse this saved model reply instead of calling a provider",
					},
					&cli.StringFlag{
						Name:  "provider",
						Usage: "override the request provider (gemini, openrouter)",
					},
					&cli.StringFlag{
						Name:  "model",
						Usage: "override the request model",
					},
					&cli.BoolFlag{
						Name:    "strict",
						Usage:   "drop blocks with unknown types",
						EnvVars: []string{"AI_STRICT_BLOCK_TYPES"},
					},
				},
				Action: generateCommand,
			},
		},
	}
}

func templateCommand(c *cli.Context) error {
	svc := service.NewPageGenerationService(nil, nil, service.PageGenerationOptions{})
	list, err := svc.Template(c.String("type"))
	if err != nil {
		return err
	}
	return writeJSON(c, list)
}

func catalogCommand(c *cli.Context) error {
	svc := service.NewPageGenerationService(nil, nil, service.PageGenerationOptions{})
	return writeJSON(c, svc.Catalog())
}

func promptCommand(c *cli.Context) error {
	request, err := loadRequest(c.String("request"))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, service.BuildPagePrompt(request))
	return err
}

func generateCommand(c *cli.Context) error {
	request, err := loadRequest(c.String("request"))
	if err != nil {
		return err
	}
	if provider := strings.TrimSpace(c.String("provider")); provider != "" {
		request.Provider = provider
	}
	if model := strings.TrimSpace(c.String("model")); model != "" {
		request.Model = model
	}
	if err := validator.ValidateBinding(&request); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}

	cfg := config.New()
	options := service.PageGenerationOptions{
		StrictBlockTypes: c.Bool("strict") || cfg.AIStrictBlockTypes,
		Timeout:          cfg.AIRequestTimeout,
	}

	if rawPath := c.String("raw"); rawPath != "" {
		raw, err := os.ReadFile(rawPath)
		if err != nil {
			return fmt.Errorf("failed to read reply: %w", err)
		}
		svc := service.NewPageGenerationService(nil, nil, options)
		return writeJSON(c, svc.FromReply(request, string(raw)))
	}

	registry, err := newRegistry(cfg)
	if err != nil {
		return err
	}
	svc := service.NewPageGenerationService(registry, nil, options)
	response, err := svc.Generate(context.Background(), request)
	if err != nil {
		return err
	}
	return writeJSON(c, response)
}

func newRegistry(cfg *config.Config) (*service.AIProviderRegistry, error) {
	registry := service.NewAIProviderRegistry(service.AIProviderOptions{
		DefaultProvider:   cfg.AIDefaultProvider,
		GeminiBaseURL:     cfg.GeminiBaseURL,
		OpenRouterBaseURL: cfg.OpenRouterBaseURL,
		MaxTokens:         cfg.AIMaxTokens,
		AppURL:            cfg.AppURL,
		AppName:           cfg.AppName,
	})
	keys := map[string]string{
		models.AIProviderGemini:     cfg.GeminiAPIKey,
		models.AIProviderOpenRouter: cfg.OpenRouterAPIKey,
	}
	for provider, key := range keys {
		if key == "" {
			continue
		}
		if err := registry.Configure(provider, key); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

func loadRequest(path string) (models.GenerationRequest, error) {
	var request models.GenerationRequest
	file, err := os.Open(path)
	if err != nil {
		return request, fmt.Errorf("failed to open request: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&request); err != nil && err != io.EOF {
		return request, fmt.Errorf("failed to parse request %s: %w", path, err)
	}
	return request, nil
}

func writeJSON(c *cli.Context, value interface{}) error {
	encoder := json.NewEncoder(c.App.Writer)
	if !c.Bool("compact") {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(value)
}
