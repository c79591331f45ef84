package service

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/momentouslyfe-web/funnelcart-sub001/internal/blocks"
	"github.com/momentouslyfe-web/funnelcart-sub001/internal/models"
	"github.com/momentouslyfe-web/funnelcart-sub001/pkg/logger"
)

var fencedJSON = regexp.MustCompile("(?s)```(?:json|JSON)?[ \t]*\r?\n?(.*?)```")

// ParseOptions tunes how strictly model output is accepted.
type ParseOptions struct {
	// StrictBlockTypes drops blocks whose type is outside the built-in vocabulary.
	StrictBlockTypes bool
}

// ParseResult is the outcome of parsing a model reply. Blocks is never empty.
// Fallback is set when Blocks is the template for the request instead of model output.
type ParseResult struct {
	Blocks   []blocks.PageBlock
	Fallback bool
	Reason   string
	Dropped  int
}

type generatedBlock struct {
	Type      string          `json:"type"`
	Content   json.RawMessage `json:"content"`
	Styles    json.RawMessage `json:"styles"`
	Animation json.RawMessage `json:"animation"`
	Children  json.RawMessage `json:"children"`
}

// ParseGeneratedBlocks turns raw model text into page blocks. It never fails:
// unusable output is replaced by the template for request.TemplateType.
func ParseGeneratedBlocks(raw string, request models.GenerationRequest, opts ParseOptions) ParseResult {
	candidate := ExtractJSON(raw)

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal([]byte(candidate), &envelope); err != nil {
		return fallbackResult(request, raw, fmt.Sprintf("reply is not valid JSON: %v", err))
	}

	rawBlocks, ok := envelope["blocks"]
	if !ok {
		return fallbackResult(request, raw, "reply has no blocks field")
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(rawBlocks, &entries); err != nil || entries == nil {
		return fallbackResult(request, raw, "blocks field is not an array")
	}

	parsed, dropped := buildBlocks(entries, opts)
	if len(parsed) == 0 {
		return fallbackResult(request, raw, "reply contained no usable blocks")
	}

	if dropped > 0 {
		logger.Warn("Dropped blocks from model reply", map[string]interface{}{
			"dropped":       dropped,
			"kept":          len(parsed),
			"template_type": request.TemplateType,
		})
	}

	return ParseResult{Blocks: parsed, Dropped: dropped}
}

// ExtractJSON returns the interior of the first fenced code block, or the trimmed text.
func ExtractJSON(raw string) string {
	if match := fencedJSON.FindStringSubmatch(raw); match != nil {
		return strings.TrimSpace(match[1])
	}
	return strings.TrimSpace(raw)
}

func buildBlocks(entries []json.RawMessage, opts ParseOptions) ([]blocks.PageBlock, int) {
	result := make([]blocks.PageBlock, 0, len(entries))
	dropped := 0
	for _, entry := range entries {
		var generated generatedBlock
		if err := json.Unmarshal(entry, &generated); err != nil {
			dropped++
			continue
		}

		// Built-in types are stored in canonical form; unknown types stay verbatim.
		blockType := blocks.BlockType(generated.Type)
		if canonical := blocks.Normalize(generated.Type); blocks.IsKnown(canonical) {
			blockType = canonical
		}
		if opts.StrictBlockTypes && !blocks.IsKnown(blockType) {
			dropped++
			continue
		}

		block := blocks.PageBlock{
			ID:       blocks.NewID(),
			Type:     blockType,
			Content:  blocks.MergeContent(blockType, generated.Content),
			Styles:   blocks.MergeStyles(blockType, blocks.DecodeStyles(generated.Styles)),
			Settings: blocks.DefaultSettings(),
		}
		if animation := decodeAnimation(generated.Animation); animation != "" {
			block.Settings.Animation = animation
		}

		var children []json.RawMessage
		if len(generated.Children) > 0 && json.Unmarshal(generated.Children, &children) == nil && len(children) > 0 {
			nested, nestedDropped := buildBlocks(children, opts)
			block.Children = nested
			dropped += nestedDropped
		}

		result = append(result, block)
	}
	return result, dropped
}

func decodeAnimation(raw json.RawMessage) string {
	var animation string
	if len(raw) == 0 || json.Unmarshal(raw, &animation) != nil {
		return ""
	}
	return strings.TrimSpace(animation)
}

func fallbackResult(request models.GenerationRequest, raw, reason string) ParseResult {
	templateType, _ := blocks.ResolveTemplate(request.TemplateType)
	logger.Warn("Model reply unusable, falling back to template", map[string]interface{}{
		"reason":        reason,
		"template_type": templateType,
		"reply_length":  len(raw),
	})
	return ParseResult{
		Blocks:   blocks.DefaultTemplate(string(templateType)),
		Fallback: true,
		Reason:   reason,
	}
}
