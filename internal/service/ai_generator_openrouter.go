package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/momentouslyfe-web/funnelcart-sub001/internal/models"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai"
	openRouterMaxTokens      = 4000
	openRouterSystemPrompt   = "You are an expert landing page designer. Respond with valid JSON only. Do not wrap the JSON in markdown and do not add commentary."
)

// OpenRouterOptions controls the OpenRouter gateway client.
type OpenRouterOptions struct {
	BaseURL    string
	MaxTokens  int
	AppURL     string
	AppName    string
	HTTPClient *http.Client
}

// OpenRouterGenerator implements TextGenerator over the OpenRouter chat completions API.
type OpenRouterGenerator struct {
	apiKey    string
	baseURL   string
	maxTokens int
	appURL    string
	appName   string
	client    *http.Client
}

// NewOpenRouterGenerator constructs a generator for the given API key.
// MaxTokens is capped at 4000.
func NewOpenRouterGenerator(apiKey string, opts OpenRouterOptions) (*OpenRouterGenerator, error) {
	trimmedKey := strings.TrimSpace(apiKey)
	if trimmedKey == "" {
		return nil, fmt.Errorf("%w: %s", ErrAIProviderNotConfigured, models.AIProviderOpenRouter)
	}

	maxTokens := opts.MaxTokens
	if maxTokens <= 0 || maxTokens > openRouterMaxTokens {
		maxTokens = openRouterMaxTokens
	}

	return &OpenRouterGenerator{
		apiKey:    trimmedKey,
		baseURL:   trimBaseURL(opts.BaseURL, defaultOpenRouterBaseURL),
		maxTokens: maxTokens,
		appURL:    strings.TrimSpace(opts.AppURL),
		appName:   strings.TrimSpace(opts.AppName),
		client:    defaultHTTPClient(opts.HTTPClient),
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Code    interface{} `json:"code"`
		Message string      `json:"message"`
	} `json:"error"`
}

// Generate sends a system message demanding JSON and the prompt as the user message.
func (g *OpenRouterGenerator) Generate(ctx context.Context, prompt, model string) (string, error) {
	if g == nil || g.client == nil {
		return "", fmt.Errorf("%w: %s", ErrAIProviderNotConfigured, models.AIProviderOpenRouter)
	}

	model = strings.TrimSpace(model)
	if model == "" {
		model = DefaultAIModel(models.AIProviderOpenRouter)
	}

	headers := map[string]string{"Authorization": "Bearer " + g.apiKey}
	if g.appURL != "" {
		headers["HTTP-Referer"] = g.appURL
	}
	if g.appName != "" {
		headers["X-Title"] = g.appName
	}

	payload := chatCompletionRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: openRouterSystemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens: g.maxTokens,
	}

	var response chatCompletionResponse
	endpoint := g.baseURL + "/api/v1/chat/completions"
	if err := postJSON(ctx, g.client, models.AIProviderOpenRouter, endpoint, headers, payload, &response); err != nil {
		return "", err
	}

	if response.Error != nil && response.Error.Message != "" {
		return "", fmt.Errorf("openrouter: %s", response.Error.Message)
	}
	if len(response.Choices) == 0 {
		return "", errors.New("openrouter: response contained no choices")
	}
	return response.Choices[0].Message.Content, nil
}
