// Package blocks defines the page block tree rendered by the visual page builder:
// the closed vocabulary of block types, their typed content and responsive styles,
// the per-type defaults every new or generated block starts from, and the
// template library used to scaffold pages without calling a model.
package blocks

import (
	"strings"

	"github.com/google/uuid"
)

// BlockType is the tag selecting how a block is rendered and which content variant it carries.
type BlockType string

// Layout primitives.
const (
	TypeSection   BlockType = "section"
	TypeContainer BlockType = "container"
	TypeColumns   BlockType = "columns"
	TypeSpacer    BlockType = "spacer"
	TypeDivider   BlockType = "divider"
)

// Content primitives.
const (
	TypeHeading BlockType = "heading"
	TypeText    BlockType = "text"
	TypeImage   BlockType = "image"
	TypeButton  BlockType = "button"
	TypeIcon    BlockType = "icon"
	TypeRating  BlockType = "rating"
	TypeList    BlockType = "list"
	TypeVideo   BlockType = "video"
)

// Composite marketing widgets.
const (
	TypeHero            BlockType = "hero"
	TypeFeatures        BlockType = "features"
	TypeBenefits        BlockType = "benefits"
	TypeTestimonial     BlockType = "testimonial"
	TypeFAQ             BlockType = "faq"
	TypePricing         BlockType = "pricing"
	TypeCTA             BlockType = "cta"
	TypeCountdown       BlockType = "countdown"
	TypeStats           BlockType = "stats"
	TypeForm            BlockType = "form"
	TypeImageCarousel   BlockType = "image-carousel"
	TypeVideoCarousel   BlockType = "video-carousel"
	TypeComparisonTable BlockType = "comparison-table"
	TypeSocialProof     BlockType = "social-proof"
	TypeGuarantee       BlockType = "guarantee"
	TypeTrustBadges     BlockType = "trust-badges"
	TypeLogoCloud       BlockType = "logo-cloud"
)

// Commerce widgets used on checkout and funnel pages.
const (
	TypeCheckoutForm BlockType = "checkout-form"
	TypeOrderSummary BlockType = "order-summary"
	TypeOrderBump    BlockType = "order-bump"
	TypeUpsellOffer  BlockType = "upsell-offer"
)

// Normalize trims and lowercases a type tag. It does not validate it.
func Normalize(value string) BlockType {
	return BlockType(strings.ToLower(strings.TrimSpace(value)))
}

func (t BlockType) String() string {
	return string(t)
}

// Category groups block types in the editor palette.
type Category string

const (
	CategoryLayout    Category = "layout"
	CategoryContent   Category = "content"
	CategoryMarketing Category = "marketing"
	CategoryCommerce  Category = "commerce"
)

// PageBlock is one node of a page's content tree. Position in the containing
// slice is the render order.
type PageBlock struct {
	ID       string           `json:"id"`
	Type     BlockType        `json:"type"`
	Content  Content          `json:"content"`
	Styles   ResponsiveStyles `json:"styles"`
	Settings BlockSettings    `json:"settings"`
	Children []PageBlock      `json:"children,omitempty"`
}

// RawBlock is the id-less scaffold shape returned for funnel page types.
type RawBlock struct {
	Type    BlockType        `json:"type"`
	Content Content          `json:"content"`
	Styles  ResponsiveStyles `json:"styles"`
}

// Visibility toggles a block per breakpoint.
type Visibility struct {
	Desktop bool `json:"desktop"`
	Tablet  bool `json:"tablet"`
	Mobile  bool `json:"mobile"`
}

// BlockLink makes the whole block clickable.
type BlockLink struct {
	URL    string `json:"url"`
	Target string `json:"target,omitempty"`
}

// BlockSettings holds behaviour shared by every block type.
type BlockSettings struct {
	Visibility     Visibility `json:"visibility"`
	Animation      string     `json:"animation"`
	AnimationDelay int        `json:"animationDelay,omitempty"`
	CustomClasses  []string   `json:"customClasses,omitempty"`
	CustomCSS      string     `json:"customCSS,omitempty"`
	Link           *BlockLink `json:"link,omitempty"`
}

const AnimationNone = "none"

// DefaultSettings returns settings for a block visible on every breakpoint without animation.
func DefaultSettings() BlockSettings {
	return BlockSettings{
		Visibility: Visibility{Desktop: true, Tablet: true, Mobile: true},
		Animation:  AnimationNone,
	}
}

// NewID returns a fresh block identifier.
func NewID() string {
	return uuid.NewString()
}

// NewBlock creates a block of the given type with a fresh id, default content,
// default styles and default settings. Unknown types are accepted.
func NewBlock(blockType BlockType) PageBlock {
	return PageBlock{
		ID:       NewID(),
		Type:     blockType,
		Content:  DefaultContent(blockType),
		Styles:   DefaultStyles(blockType),
		Settings: DefaultSettings(),
	}
}

// Raw strips id and settings from the block.
func (b PageBlock) Raw() RawBlock {
	return RawBlock{Type: b.Type, Content: b.Content, Styles: b.Styles}
}

// Edit applies fn to the block content when it holds the variant T.
// It reports whether fn was called.
func Edit[T any](block *PageBlock, fn func(*T)) bool {
	if block == nil || fn == nil {
		return false
	}
	content, ok := any(block.Content).(*T)
	if !ok || content == nil {
		return false
	}
	fn(content)
	return true
}

// EnsureUniqueIDs assigns fresh ids to blocks with an empty or repeated id,
// walking children as well. It returns the number of ids replaced.
func EnsureUniqueIDs(list []PageBlock) int {
	seen := make(map[string]struct{})
	return ensureUniqueIDs(list, seen)
}

func ensureUniqueIDs(list []PageBlock, seen map[string]struct{}) int {
	replaced := 0
	for i := range list {
		id := strings.TrimSpace(list[i].ID)
		if _, dup := seen[id]; id == "" || dup {
			id = NewID()
			replaced++
		}
		list[i].ID = id
		seen[id] = struct{}{}
		replaced += ensureUniqueIDs(list[i].Children, seen)
	}
	return replaced
}
