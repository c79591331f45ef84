package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/momentouslyfe-web/funnelcart-sub001/internal/models"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

// GeminiOptions controls the direct Gemini client.
type GeminiOptions struct {
	BaseURL         string
	MaxOutputTokens int
	HTTPClient      *http.Client
}

// GeminiGenerator implements TextGenerator using the Gemini generateContent API.
type GeminiGenerator struct {
	apiKey    string
	baseURL   string
	maxTokens int
	client    *http.Client
}

// NewGeminiGenerator constructs a generator for the given API key.
func NewGeminiGenerator(apiKey string, opts GeminiOptions) (*GeminiGenerator, error) {
	trimmedKey := strings.TrimSpace(apiKey)
	if trimmedKey == "" {
		return nil, fmt.Errorf("%w: %s", ErrAIProviderNotConfigured, models.AIProviderGemini)
	}

	return &GeminiGenerator{
		apiKey:    trimmedKey,
		baseURL:   trimBaseURL(opts.BaseURL, defaultGeminiBaseURL),
		maxTokens: opts.MaxOutputTokens,
		client:    defaultHTTPClient(opts.HTTPClient),
	}, nil
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	ResponseMimeType string `json:"responseMimeType"`
	MaxOutputTokens  int    `json:"maxOutputTokens,omitempty"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

// Generate sends prompt as a single user turn with JSON output forced.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt, model string) (string, error) {
	if g == nil || g.client == nil {
		return "", fmt.Errorf("%w: %s", ErrAIProviderNotConfigured, models.AIProviderGemini)
	}

	model = strings.TrimSpace(model)
	if model == "" {
		model = DefaultAIModel(models.AIProviderGemini)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.baseURL, url.PathEscape(model))
	headers := map[string]string{"x-goog-api-key": g.apiKey}

	payload := geminiRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: prompt}},
		}},
		GenerationConfig: geminiGenerationConfig{
			ResponseMimeType: "application/json",
			MaxOutputTokens:  g.maxTokens,
		},
	}

	var response geminiResponse
	if err := postJSON(ctx, g.client, models.AIProviderGemini, endpoint, headers, payload, &response); err != nil {
		return "", err
	}

	if len(response.Candidates) == 0 {
		if response.PromptFeedback != nil && response.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("gemini: prompt blocked: %s", response.PromptFeedback.BlockReason)
		}
		return "", errors.New("gemini: response contained no candidates")
	}

	var text strings.Builder
	for _, part := range response.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	return text.String(), nil
}
