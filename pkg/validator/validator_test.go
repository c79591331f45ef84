package validator

import (
	"strings"
	"testing"
)

type colorInput struct {
	Primary string `validate:"omitempty,hexcolor6"`
}

type templateInput struct {
	TemplateType string `validate:"omitempty,template_type"`
	PageType     string `validate:"omitempty,page_type"`
	Slug         string `validate:"omitempty,slug"`
}

func TestValidate_HexColor(t *testing.T) {
	Init()
	if err := Validate(colorInput{Primary: "#1a2B3c"}); err != nil {
		t.Fatalf("expected valid color, got %v", err)
	}
	for _, value := range []string{"1a2b3c", "#fff", "#12345g"} {
		if err := Validate(colorInput{Primary: value}); err == nil {
			t.Fatalf("expected %q to be rejected", value)
		}
	}
}

func TestValidate_TemplateAndPageTypes(t *testing.T) {
	Init()
	if err := Validate(templateInput{TemplateType: "landing-page", PageType: "thank_you", Slug: "spring-offer"}); err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}
	if err := Validate(templateInput{TemplateType: "blog-post"}); err == nil {
		t.Fatalf("expected unknown template type to be rejected")
	}
	if err := Validate(templateInput{PageType: "landing-page"}); err == nil {
		t.Fatalf("expected template type not to pass as page type")
	}
	if err := Validate(templateInput{Slug: "Spring Offer"}); err == nil {
		t.Fatalf("expected invalid slug to be rejected")
	}
}

func TestSanitize(t *testing.T) {
	html := SanitizeHTML(`<strong>Bold</strong><script>alert(1)</script>`)
	if !strings.Contains(html, "<strong>Bold</strong>") || strings.Contains(html, "script") {
		t.Fatalf("unexpected sanitised html: %q", html)
	}
	if got := SanitizeString(`<em>hi</em>`); got != "hi" {
		t.Fatalf("expected tags stripped, got %q", got)
	}
}
