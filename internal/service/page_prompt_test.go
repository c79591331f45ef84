package service

import (
	"strings"
	"testing"

	"github.com/momentouslyfe-web/funnelcart-sub001/internal/models"
)

func TestBuildPagePrompt_MinimalRequestOmitsOptionalSections(t *testing.T) {
	prompt := BuildPagePrompt(models.GenerationRequest{
		Product: models.ProductInfo{Name: "Sleep Tracker"},
	})

	if !strings.Contains(prompt, "- Name: Sleep Tracker") {
		t.Fatalf("expected product name in prompt")
	}
	if !strings.Contains(prompt, "sales page") {
		t.Fatalf("expected sales page archetype for empty template type")
	}
	for _, section := range []string{"TARGET AUDIENCE", "TONE:", "COLOR SCHEME", "CUSTOM INSTRUCTIONS", "PROVIDED CONTENT", "- Price:", "- Features:"} {
		if strings.Contains(prompt, section) {
			t.Fatalf("expected %q to be omitted from minimal prompt", section)
		}
	}
	for _, section := range []string{"OUTPUT FORMAT", `{"blocks":[`, "ALLOWED BLOCK TYPES", "- hero: {", "WRITING GUIDELINES"} {
		if !strings.Contains(prompt, section) {
			t.Fatalf("expected %q in prompt", section)
		}
	}
}

func TestBuildPagePrompt_IncludesProvidedSections(t *testing.T) {
	request := models.GenerationRequest{
		Product: models.ProductInfo{
			Name:        "Sleep Tracker",
			Description: "A ring that measures sleep quality",
			Price:       "$199",
			Features:    []string{"7 day battery", " ", "Waterproof"},
			Benefits:    []string{"Wake up rested"},
		},
		TemplateType:       "upsell",
		TargetAudience:     "Busy professionals",
		Tone:               "Luxury",
		ColorScheme:        &models.ColorScheme{Primary: "#112233"},
		CustomInstructions: "Mention the 30 day trial",
		ProvidedContent:    "Headline: Sleep smarter",
	}
	prompt := BuildPagePrompt(request)

	expected := []string{
		"upsell page",
		"- Description: A ring that measures sleep quality",
		"- Price: $199",
		"  * 7 day battery",
		"  * Waterproof",
		"  * Wake up rested",
		"TARGET AUDIENCE:\nBusy professionals",
		"TONE:\nluxury (",
		"- Primary: #112233",
		"CUSTOM INSTRUCTIONS:\nMention the 30 day trial",
		"PROVIDED CONTENT",
		"Headline: Sleep smarter",
	}
	for _, fragment := range expected {
		if !strings.Contains(prompt, fragment) {
			t.Fatalf("expected %q in prompt:\n%s", fragment, prompt)
		}
	}
	if strings.Contains(prompt, "- Secondary:") {
		t.Fatalf("expected empty colors to be omitted")
	}
	if strings.Count(prompt, "  * ") != 3 {
		t.Fatalf("expected blank list items to be skipped")
	}
}

func TestBuildPagePrompt_Deterministic(t *testing.T) {
	request := models.GenerationRequest{
		Product:      models.ProductInfo{Name: "Course", Features: []string{"a", "b"}},
		TemplateType: "landing-page",
		Tone:         "friendly",
	}
	first := BuildPagePrompt(request)
	for i := 0; i < 5; i++ {
		if BuildPagePrompt(request) != first {
			t.Fatalf("expected identical prompts for identical requests")
		}
	}
}
