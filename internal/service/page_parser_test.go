package service

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/momentouslyfe-web/funnelcart-sub001/internal/blocks"
	"github.com/momentouslyfe-web/funnelcart-sub001/internal/models"
)

func TestParseGeneratedBlocks_FencedReplyMergesDefaults(t *testing.T) {
	raw := "Here is your page:\n```json\n" +
		`{"blocks":[{"type":"hero","content":{"headline":"Sleep Better Tonight"}},` +
		`{"type":"faq","content":{"items":[{"question":"Is it safe?","answer":"Yes."}]},"styles":{"mobile":{"padding":"8px"}},"animation":"fade-in"}]}` +
		"\n```\nEnjoy!"

	result := ParseGeneratedBlocks(raw, models.GenerationRequest{TemplateType: "sales-page"}, ParseOptions{})
	if result.Fallback {
		t.Fatalf("expected model blocks, got fallback: %s", result.Reason)
	}
	if len(result.Blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(result.Blocks))
	}

	hero, ok := result.Blocks[0].Content.(*blocks.HeroContent)
	if !ok {
		t.Fatalf("expected hero content, got %T", result.Blocks[0].Content)
	}
	if hero.Headline != "Sleep Better Tonight" {
		t.Fatalf("expected model headline, got %q", hero.Headline)
	}
	if hero.ButtonText != "Get Started Now" {
		t.Fatalf("expected default button text to fill the gap, got %q", hero.ButtonText)
	}

	faq := result.Blocks[1]
	if faq.Type != blocks.TypeFAQ {
		t.Fatalf("expected order to be preserved, got %s", faq.Type)
	}
	if faq.Styles.Mobile == nil || faq.Styles.Mobile.Padding != "8px" {
		t.Fatalf("expected mobile override, got %+v", faq.Styles.Mobile)
	}
	if faq.Settings.Animation != "fade-in" || !faq.Settings.Visibility.Desktop {
		t.Fatalf("unexpected settings %+v", faq.Settings)
	}
	if result.Blocks[0].ID == "" || result.Blocks[0].ID == faq.ID {
		t.Fatalf("expected fresh distinct ids")
	}
}

func TestParseGeneratedBlocks_FallbackUsesRequestedTemplate(t *testing.T) {
	cases := map[string]string{
		"not json":         "I cannot help with that.",
		"missing blocks":   `{"sections":[]}`,
		"blocks not array": `{"blocks":{"type":"hero"}}`,
		"empty blocks":     `{"blocks":[]}`,
	}

	want := blocks.DefaultTemplate("landing-page")
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			result := ParseGeneratedBlocks(raw, models.GenerationRequest{TemplateType: "landing-page"}, ParseOptions{})
			if !result.Fallback || result.Reason == "" {
				t.Fatalf("expected fallback with reason, got %+v", result)
			}
			if len(result.Blocks) != len(want) {
				t.Fatalf("expected %d template blocks, got %d", len(want), len(result.Blocks))
			}
			for i := range want {
				if result.Blocks[i].Type != want[i].Type {
					t.Fatalf("block %d: expected %s, got %s", i, want[i].Type, result.Blocks[i].Type)
				}
			}
		})
	}
}

func TestParseGeneratedBlocks_UnknownTemplateFallsBackToSalesPage(t *testing.T) {
	result := ParseGeneratedBlocks("garbage", models.GenerationRequest{TemplateType: "webinar"}, ParseOptions{})
	if !result.Fallback || len(result.Blocks) != len(blocks.DefaultTemplate("sales-page")) {
		t.Fatalf("expected sales page fallback, got %+v", result)
	}
}

func TestParseGeneratedBlocks_UnknownTypes(t *testing.T) {
	raw := `{"blocks":[{"type":"hero","content":{}},{"type":"mystery","content":{"foo":"bar"}}]}`

	lenient := ParseGeneratedBlocks(raw, models.GenerationRequest{}, ParseOptions{})
	if len(lenient.Blocks) != 2 {
		t.Fatalf("expected unknown type to be kept, got %d blocks", len(lenient.Blocks))
	}
	rawContent, ok := lenient.Blocks[1].Content.(blocks.RawContent)
	if !ok || rawContent["foo"] != "bar" {
		t.Fatalf("expected raw content for unknown type, got %#v", lenient.Blocks[1].Content)
	}
	if lenient.Blocks[1].Type != "mystery" {
		t.Fatalf("expected type string preserved verbatim")
	}

	strict := ParseGeneratedBlocks(raw, models.GenerationRequest{}, ParseOptions{StrictBlockTypes: true})
	if len(strict.Blocks) != 1 || strict.Dropped != 1 {
		t.Fatalf("expected strict mode to drop the unknown block, got %+v", strict)
	}
}

func TestParseGeneratedBlocks_Children(t *testing.T) {
	raw := `{"blocks":[{"type":"section","content":{},"children":[{"type":"heading","content":{"text":"Inside"}}]}]}`
	result := ParseGeneratedBlocks(raw, models.GenerationRequest{}, ParseOptions{})
	if len(result.Blocks) != 1 || len(result.Blocks[0].Children) != 1 {
		t.Fatalf("expected nested child, got %+v", result.Blocks)
	}
	heading, ok := result.Blocks[0].Children[0].Content.(*blocks.HeadingContent)
	if !ok || heading.Text != "Inside" || heading.Tag != "h2" {
		t.Fatalf("expected merged heading child, got %#v", result.Blocks[0].Children[0].Content)
	}
}

func TestExtractJSON(t *testing.T) {
	if got := ExtractJSON("  {\"a\":1}  "); got != `{"a":1}` {
		t.Fatalf("expected trimmed text, got %q", got)
	}
	if got := ExtractJSON("```\n{\"a\":1}\n```"); got != `{"a":1}` {
		t.Fatalf("expected unlabelled fence interior, got %q", got)
	}
	if got := ExtractJSON("text ```json {\"a\":1}``` more ```json {\"b\":2}```"); !strings.Contains(got, `"a"`) {
		t.Fatalf("expected first fence, got %q", got)
	}
}

func TestParseGeneratedBlocks_FencedHeadingSerializesWithDefaults(t *testing.T) {
	raw := "```json\n{\"blocks\":[{\"type\":\"heading\",\"content\":{\"text\":\"Hi\"}}]}\n```"

	result := ParseGeneratedBlocks(raw, models.GenerationRequest{}, ParseOptions{})
	if result.Fallback || len(result.Blocks) != 1 || result.Blocks[0].Type != blocks.TypeHeading {
		t.Fatalf("expected a single heading block, got %+v", result)
	}
	content, err := json.Marshal(result.Blocks[0].Content)
	if err != nil {
		t.Fatalf("failed to marshal content: %v", err)
	}
	if string(content) != `{"text":"Hi","tag":"h2","link":null}` {
		t.Fatalf("unexpected heading content %s", content)
	}
}

func TestParseGeneratedBlocks_CanonicalisesKnownTypeCase(t *testing.T) {
	raw := `{"blocks":[{"type":" Hero ","content":{"headline":"Big Sale"}},{"type":"Custom-Widget","content":{"x":1}}]}`

	result := ParseGeneratedBlocks(raw, models.GenerationRequest{}, ParseOptions{})
	if result.Fallback || len(result.Blocks) != 2 {
		t.Fatalf("expected two blocks, got %+v", result)
	}
	if result.Blocks[0].Type != blocks.TypeHero {
		t.Fatalf("expected canonical hero type, got %q", result.Blocks[0].Type)
	}
	if hero, ok := result.Blocks[0].Content.(*blocks.HeroContent); !ok || hero.Headline != "Big Sale" {
		t.Fatalf("expected hero content, got %#v", result.Blocks[0].Content)
	}
	if result.Blocks[1].Type != "Custom-Widget" {
		t.Fatalf("expected unknown type kept verbatim, got %q", result.Blocks[1].Type)
	}
}
