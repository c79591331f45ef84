package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/momentouslyfe-web/funnelcart-sub001/internal/models"
)

const sampleRequest = `provider: gemini
template_type: optin-page
tone: friendly
product:
  name: Morning Routine Guide
  description: A 20 page PDF guide
  features:
    - Printable checklist
color_scheme:
  primary: "#336699"
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	app := newApp()
	var out bytes.Buffer
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"pagegen"}, args...))
	return out.String(), err
}

func TestLoadRequest(t *testing.T) {
	request, err := loadRequest(writeFile(t, "req.yaml", sampleRequest))
	if err != nil {
		t.Fatalf("loadRequest returned error: %v", err)
	}
	if request.Product.Name != "Morning Routine Guide" || request.TemplateType != "optin-page" {
		t.Fatalf("unexpected request %+v", request)
	}
	if request.ColorScheme == nil || request.ColorScheme.Primary != "#336699" {
		t.Fatalf("expected color scheme, got %+v", request.ColorScheme)
	}

	if _, err := loadRequest(writeFile(t, "bad.yaml", "product:\n  nme: typo\n")); err == nil {
		t.Fatalf("expected unknown fields to be rejected")
	}
}

func TestTemplateCommand(t *testing.T) {
	out, err := run(t, "template", "--type", "thank_you")
	if err != nil {
		t.Fatalf("template returned error: %v", err)
	}
	var list []map[string]interface{}
	if err := json.Unmarshal([]byte(out), &list); err != nil {
		t.Fatalf("expected JSON block list, got %q: %v", out, err)
	}
	if len(list) == 0 || list[0]["type"] != "heading" {
		t.Fatalf("unexpected thank-you template %v", list)
	}

	if _, err := run(t, "template", "--type", "webinar"); err == nil {
		t.Fatalf("expected unknown template to fail")
	}
}

func TestPromptCommand(t *testing.T) {
	out, err := run(t, "prompt", "--request", writeFile(t, "req.yaml", sampleRequest))
	if err != nil {
		t.Fatalf("prompt returned error: %v", err)
	}
	for _, fragment := range []string{"optin page", "Morning Routine Guide", "TONE:", "- Primary: #336699"} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %q in prompt output", fragment)
		}
	}
}

func TestGenerateCommandWithRawReply(t *testing.T) {
	requestPath := writeFile(t, "req.yaml", sampleRequest)
	rawPath := writeFile(t, "reply.txt", "```json\n{\"blocks\":[{\"type\":\"form\",\"content\":{\"title\":\"Get the guide\"}}]}\n```")

	out, err := run(t, "--compact", "generate", "--request", requestPath, "--raw", rawPath)
	if err != nil {
		t.Fatalf("generate returned error: %v", err)
	}
	var response models.GenerationResponse
	if err := json.Unmarshal([]byte(out), &response); err != nil {
		t.Fatalf("expected JSON response, got %q: %v", out, err)
	}
	if response.Fallback || len(response.Blocks) != 1 || response.Blocks[0].Type != "form" {
		t.Fatalf("unexpected response %+v", response)
	}

	garbage := writeFile(t, "garbage.txt", "no json here")
	out, err = run(t, "generate", "--request", requestPath, "--raw", garbage)
	if err != nil {
		t.Fatalf("generate returned error: %v", err)
	}
	if err := json.Unmarshal([]byte(out), &response); err != nil || !response.Fallback {
		t.Fatalf("expected fallback response, got %q", out)
	}
}

func TestGenerateCommandRejectsInvalidRequest(t *testing.T) {
	requestPath := writeFile(t, "req.yaml", "product:\n  name: Guide\ntone: angry\n")
	if _, err := run(t, "generate", "--request", requestPath, "--raw", requestPath); err == nil {
		t.Fatalf("expected validation error for unsupported tone")
	}
}

func TestGenerateCommandWithoutKeys(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENROUTER_API_KEY", "")
	requestPath := writeFile(t, "req.yaml", sampleRequest)
	if _, err := run(t, "generate", "--request", requestPath); err == nil || !strings.Contains(err.Error(), "not configured") {
		t.Fatalf("expected not configured error, got %v", err)
	}
}
