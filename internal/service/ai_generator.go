package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	// ErrAIProviderNotConfigured is returned when the selected provider has no API key.
	ErrAIProviderNotConfigured = errors.New("ai provider is not configured")
	// ErrUnknownAIProvider is returned for provider names outside the registry.
	ErrUnknownAIProvider = errors.New("unknown ai provider")
)

const defaultAIRequestTimeout = 2 * time.Minute

// TextGenerator turns a prompt into raw model text. Implementations do not retry.
type TextGenerator interface {
	Generate(ctx context.Context, prompt, model string) (string, error)
}

// TextGeneratorFunc adapts a function to TextGenerator.
type TextGeneratorFunc func(ctx context.Context, prompt, model string) (string, error)

func (f TextGeneratorFunc) Generate(ctx context.Context, prompt, model string) (string, error) {
	return f(ctx, prompt, model)
}

// AIProviderHTTPError carries a non-2xx reply from a provider.
type AIProviderHTTPError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *AIProviderHTTPError) Error() string {
	message := strings.TrimSpace(e.Body)
	if message == "" {
		message = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s: request returned status %d: %s", e.Provider, e.StatusCode, message)
}

// maxErrorBody bounds the provider reply kept on errors.
const maxErrorBody = 2048

func postJSON(ctx context.Context, client *http.Client, provider, endpoint string, headers map[string]string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%s: failed to encode request: %w", provider, err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: failed to build request: %w", provider, err)
	}
	request.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		request.Header.Set(key, value)
	}

	response, err := client.Do(request)
	if err != nil {
		// Report the cause only; the request URL may carry credentials.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return fmt.Errorf("%s: request failed: %w", provider, err)
	}
	defer response.Body.Close()

	data, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("%s: failed to read response: %w", provider, err)
	}

	if response.StatusCode >= http.StatusMultipleChoices {
		message := string(data)
		if len(message) > maxErrorBody {
			message = message[:maxErrorBody]
		}
		return &AIProviderHTTPError{Provider: provider, StatusCode: response.StatusCode, Body: message}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: failed to decode response: %w", provider, err)
	}
	return nil
}

func defaultHTTPClient(client *http.Client) *http.Client {
	if client != nil {
		return client
	}
	return &http.Client{Timeout: defaultAIRequestTimeout}
}

func trimBaseURL(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		value = fallback
	}
	return strings.TrimRight(value, "/")
}
