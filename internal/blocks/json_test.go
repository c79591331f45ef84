package blocks

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestPageBlockJSON_RoundTrip(t *testing.T) {
	link := "https://example.com"
	original := []PageBlock{
		NewBlock(TypeHero),
		NewBlock(TypePricing),
		{
			ID:   NewID(),
			Type: TypeSection,
			Content: &SectionContent{
				FullWidth: true,
				Anchor:    "offer",
			},
			Styles: BaseStyles(),
			Settings: BlockSettings{
				Visibility:    Visibility{Desktop: true, Mobile: false, Tablet: true},
				Animation:     "fade-in",
				CustomClasses: []string{"highlight"},
				Link:          &BlockLink{URL: link, Target: "_blank"},
			},
			Children: []PageBlock{NewBlock(TypeHeading), NewBlock("sparkle-banner")},
		},
	}
	Edit(&original[2].Children[0], func(c *HeadingContent) { c.Link = &link })
	original[2].Children[1].Content = RawContent{"glow": true}

	encoded, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded []PageBlock
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !reflect.DeepEqual(original, decoded) {
		t.Fatalf("round trip mismatch\nwant %+v\ngot  %+v", original, decoded)
	}
}

func TestPageBlockJSON_DecodeDispatchesOnType(t *testing.T) {
	var block PageBlock
	payload := `{"id":"1","type":"cta","content":{"headline":"Go"}}`
	if err := json.Unmarshal([]byte(payload), &block); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	cta, ok := block.Content.(*CTAContent)
	if !ok {
		t.Fatalf("expected CTA content, got %T", block.Content)
	}
	if cta.Headline != "Go" || cta.ButtonText != "" {
		t.Fatalf("expected stored content without defaults, got %+v", cta)
	}
	if !block.Settings.Visibility.Desktop || block.Settings.Animation != AnimationNone {
		t.Fatalf("expected default settings when absent, got %+v", block.Settings)
	}
}

func TestPageBlockJSON_RejectsMalformedContent(t *testing.T) {
	var block PageBlock
	if err := json.Unmarshal([]byte(`{"type":"hero","content":{"headline":5}}`), &block); err == nil {
		t.Fatalf("expected error for mismatched stored content")
	}
}

func TestPageBlocks_ScanValue(t *testing.T) {
	blocks := PageBlocks(DefaultTemplate("landing-page"))
	value, err := blocks.Value()
	if err != nil {
		t.Fatalf("Value returned error: %v", err)
	}

	var scanned PageBlocks
	if err := scanned.Scan(value); err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if !reflect.DeepEqual(blocks, scanned) {
		t.Fatalf("expected scanned blocks to match")
	}

	if err := scanned.Scan(nil); err != nil || len(scanned) != 0 {
		t.Fatalf("expected nil to scan into empty list")
	}
	if err := scanned.Scan(42); err == nil {
		t.Fatalf("expected error for unsupported value")
	}
}

func TestFlexString(t *testing.T) {
	cases := map[string]FlexString{
		`"29.99"`: "29.99",
		`29.99`:   "29.99",
		`100`:     "100",
		`true`:    "true",
		`null`:    "",
	}
	for input, want := range cases {
		var got FlexString
		if err := json.Unmarshal([]byte(input), &got); err != nil {
			t.Fatalf("unexpected error for %s: %v", input, err)
		}
		if got != want {
			t.Fatalf("expected %q for %s, got %q", want, input, got)
		}
	}

	var invalid FlexString
	if err := json.Unmarshal([]byte(`{"a":1}`), &invalid); err == nil {
		t.Fatalf("expected error for object")
	}
}
