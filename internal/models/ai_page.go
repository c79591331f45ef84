package models

import (
	"time"

	"github.com/momentouslyfe-web/funnelcart-sub001/internal/blocks"
)

const (
	AIProviderGemini     = "gemini"
	AIProviderOpenRouter = "openrouter"
)

// ProductInfo is the product a page is generated for.
type ProductInfo struct {
	Name        string   `json:"name" yaml:"name" binding:"required,max=200"`
	Description string   `json:"description" yaml:"description" binding:"max=5000"`
	Price       string   `json:"price" yaml:"price" binding:"max=50"`
	Features    []string `json:"features,omitempty" yaml:"features" binding:"max=30"`
	Benefits    []string `json:"benefits,omitempty" yaml:"benefits" binding:"max=30"`
	Images      []string `json:"images,omitempty" yaml:"images" binding:"max=20,dive,url"`
}

// ColorScheme is an optional explicit palette for generated pages.
type ColorScheme struct {
	Primary    string `json:"primary" yaml:"primary" binding:"omitempty,hexcolor6"`
	Secondary  string `json:"secondary" yaml:"secondary" binding:"omitempty,hexcolor6"`
	Accent     string `json:"accent" yaml:"accent" binding:"omitempty,hexcolor6"`
	Background string `json:"background" yaml:"background" binding:"omitempty,hexcolor6"`
	Text       string `json:"text" yaml:"text" binding:"omitempty,hexcolor6"`
}

// IsZero reports whether no color is set.
func (c *ColorScheme) IsZero() bool {
	return c == nil || *c == ColorScheme{}
}

// GenerationRequest is the input of one page generation.
type GenerationRequest struct {
	Provider           string       `json:"provider" yaml:"provider" binding:"omitempty,oneof=gemini openrouter"`
	Model              string       `json:"model" yaml:"model" binding:"max=120"`
	Product            ProductInfo  `json:"product" yaml:"product" binding:"required"`
	CustomInstructions string       `json:"custom_instructions,omitempty" yaml:"custom_instructions" binding:"max=4000"`
	ProvidedContent    string       `json:"provided_content,omitempty" yaml:"provided_content" binding:"max=20000"`
	TemplateType       string       `json:"template_type" yaml:"template_type" binding:"omitempty,template_type"`
	TargetAudience     string       `json:"target_audience,omitempty" yaml:"target_audience" binding:"max=500"`
	Tone               string       `json:"tone,omitempty" yaml:"tone" binding:"omitempty,oneof=professional friendly urgent luxury playful casual"`
	ColorScheme        *ColorScheme `json:"color_scheme,omitempty" yaml:"color_scheme"`
}

// GenerationResponse is returned by the generate endpoint.
type GenerationResponse struct {
	Blocks         []blocks.PageBlock `json:"blocks"`
	Fallback       bool               `json:"fallback"`
	FallbackReason string             `json:"fallback_reason,omitempty"`
	GenerationID   uint               `json:"generation_id,omitempty"`
	Provider       string             `json:"provider"`
	Model          string             `json:"model"`
	TemplateType   string             `json:"template_type"`
}

// PageGeneration logs one generation so a draft can be re-applied later.
type PageGeneration struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Provider       string            `gorm:"size:32;index" json:"provider"`
	Model          string            `gorm:"size:120" json:"model"`
	TemplateType   string            `gorm:"size:32" json:"template_type"`
	ProductName    string            `gorm:"size:200" json:"product_name"`
	PromptLength   int               `json:"prompt_length"`
	Fallback       bool              `gorm:"index" json:"fallback"`
	FallbackReason string            `gorm:"type:text" json:"fallback_reason,omitempty"`
	DurationMs     int64             `json:"duration_ms"`
	Blocks         blocks.PageBlocks `gorm:"type:jsonb" json:"blocks"`
}

// AIProviderStatus reports which providers have a credential. Keys are never exposed.
type AIProviderStatus struct {
	Gemini     bool `json:"gemini"`
	OpenRouter bool `json:"openrouter"`
}

// ConfigureAIProviderRequest sets the API key of one provider.
type ConfigureAIProviderRequest struct {
	APIKey string `json:"api_key" binding:"required,min=8,max=512"`
}

// AIModel is one selectable model of a provider.
type AIModel struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Default bool   `json:"default,omitempty"`
}

// AIPageCatalog feeds the editor palette and the model dropdown.
type AIPageCatalog struct {
	Categories []blocks.PaletteCategory `json:"categories"`
	Models     map[string][]AIModel     `json:"models"`
	Templates  []blocks.TemplateInfo    `json:"templates"`
}
