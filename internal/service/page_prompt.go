package service

import (
	"fmt"
	"strings"

	"github.com/momentouslyfe-web/funnelcart-sub001/internal/blocks"
	"github.com/momentouslyfe-web/funnelcart-sub001/internal/models"
)

var toneGuidance = map[string]string{
	"professional": "confident, clear and credible",
	"friendly":     "warm, conversational and approachable",
	"urgent":       "energetic, direct and time-sensitive",
	"luxury":       "refined, exclusive and understated",
	"playful":      "light-hearted, witty and fun",
	"casual":       "relaxed, simple and down to earth",
}

// BuildPagePrompt renders a generation request into a single model instruction.
// Optional sections are omitted entirely when their field is empty.
func BuildPagePrompt(request models.GenerationRequest) string {
	templateType, _ := blocks.ResolveTemplate(request.TemplateType)

	var b strings.Builder
	b.WriteString("You are an expert landing page designer and direct-response copywriter. ")
	fmt.Fprintf(&b, "Create a high-converting %s for the product below.\n\n", archetypeName(templateType))

	product := request.Product
	b.WriteString("PRODUCT INFORMATION:\n")
	fmt.Fprintf(&b, "- Name: %s\n", strings.TrimSpace(product.Name))
	if description := strings.TrimSpace(product.Description); description != "" {
		fmt.Fprintf(&b, "- Description: %s\n", description)
	}
	if price := strings.TrimSpace(product.Price); price != "" {
		fmt.Fprintf(&b, "- Price: %s\n", price)
	}
	writeList(&b, "- Features:", product.Features)
	writeList(&b, "- Benefits:", product.Benefits)
	writeList(&b, "- Images (use these URLs where an image fits):", product.Images)

	if audience := strings.TrimSpace(request.TargetAudience); audience != "" {
		fmt.Fprintf(&b, "\nTARGET AUDIENCE:\n%s\n", audience)
	}

	if tone := strings.ToLower(strings.TrimSpace(request.Tone)); tone != "" {
		if guidance, ok := toneGuidance[tone]; ok {
			fmt.Fprintf(&b, "\nTONE:\n%s (%s)\n", tone, guidance)
		} else {
			fmt.Fprintf(&b, "\nTONE:\n%s\n", tone)
		}
	}

	if scheme := request.ColorScheme; !scheme.IsZero() {
		b.WriteString("\nCOLOR SCHEME (use in block styles):\n")
		writeColor(&b, "Primary", scheme.Primary)
		writeColor(&b, "Secondary", scheme.Secondary)
		writeColor(&b, "Accent", scheme.Accent)
		writeColor(&b, "Background", scheme.Background)
		writeColor(&b, "Text", scheme.Text)
	}

	if instructions := strings.TrimSpace(request.CustomInstructions); instructions != "" {
		fmt.Fprintf(&b, "\nCUSTOM INSTRUCTIONS:\n%s\n", instructions)
	}

	if provided := strings.TrimSpace(request.ProvidedContent); provided != "" {
		fmt.Fprintf(&b, "\nPROVIDED CONTENT (use this copy, improve wording only where needed):\n%s\n", provided)
	}

	b.WriteString("\nOUTPUT FORMAT:\n")
	b.WriteString("Respond with ONLY valid JSON, no markdown and no explanations, in exactly this shape:\n")
	b.WriteString(`{"blocks":[{"type":"<block type>","content":{...}}]}`)
	b.WriteString("\nEach block may also include \"styles\" with \"desktop\", \"tablet\" and \"mobile\" objects and an optional \"animation\" name.\n")

	b.WriteString("\nALLOWED BLOCK TYPES:\n")
	for _, blockType := range blocks.GenerationTypes() {
		fmt.Fprintf(&b, "- %s: %s\n", blockType, contentShape(blockType))
	}

	b.WriteString("\nWRITING GUIDELINES:\n")
	b.WriteString("- Open with a benefit-driven headline that speaks to the reader's main desire.\n")
	b.WriteString("- Focus on outcomes and transformation, not only features.\n")
	b.WriteString("- Use social proof and specific numbers to build trust.\n")
	b.WriteString("- Address the most common objections before the final call to action.\n")
	b.WriteString("- Keep every call to action clear, specific and action-oriented.\n")

	return b.String()
}

func archetypeName(templateType blocks.TemplateType) string {
	return strings.ReplaceAll(string(templateType), "-", " ")
}

func writeList(b *strings.Builder, title string, items []string) {
	var kept []string
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	if len(kept) == 0 {
		return
	}
	b.WriteString(title)
	b.WriteString("\n")
	for _, item := range kept {
		fmt.Fprintf(b, "  * %s\n", item)
	}
}

func writeColor(b *strings.Builder, name, value string) {
	if value = strings.TrimSpace(value); value != "" {
		fmt.Fprintf(b, "- %s: %s\n", name, value)
	}
}

// contentShape lists the content keys of a type from its defaults.
func contentShape(blockType blocks.BlockType) string {
	fields := blocks.ContentKeys(blocks.DefaultContent(blockType))
	if len(fields) == 0 {
		return "{}"
	}
	return "{" + strings.Join(fields, ", ") + "}"
}
