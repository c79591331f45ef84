package blocks

import "strings"

// TemplateType names a page archetype. It drives prompt construction and the
// fallback used when a model reply cannot be used.
type TemplateType string

const (
	TemplateSalesPage    TemplateType = "sales-page"
	TemplateLandingPage  TemplateType = "landing-page"
	TemplateProductPage  TemplateType = "product-page"
	TemplateCheckoutPage TemplateType = "checkout-page"
	TemplateThankYouPage TemplateType = "thank-you-page"
	TemplateUpsellPage   TemplateType = "upsell-page"
	TemplateDownsellPage TemplateType = "downsell-page"
	TemplateOptinPage    TemplateType = "optin-page"
)

// FallbackTemplate is used for unrecognised keys.
const FallbackTemplate = TemplateSalesPage

// Funnel page types as stored on funnel pages.
const (
	PageTypeLanding  = "landing"
	PageTypeSales    = "sales"
	PageTypeProduct  = "product"
	PageTypeCheckout = "checkout"
	PageTypeThankYou = "thank_you"
	PageTypeUpsell   = "upsell"
	PageTypeDownsell = "downsell"
	PageTypeOptin    = "optin"
)

// pageTypeAliases maps the funnel page vocabulary onto template types.
var pageTypeAliases = map[string]TemplateType{
	PageTypeLanding:  TemplateLandingPage,
	PageTypeSales:    TemplateSalesPage,
	PageTypeProduct:  TemplateProductPage,
	PageTypeCheckout: TemplateCheckoutPage,
	PageTypeThankYou: TemplateThankYouPage,
	PageTypeUpsell:   TemplateUpsellPage,
	PageTypeDownsell: TemplateDownsellPage,
	PageTypeOptin:    TemplateOptinPage,
}

// TemplateInfo describes a catalog entry.
type TemplateInfo struct {
	Type        TemplateType `json:"type"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	PageTypes   []string     `json:"page_types"`
	BlockTypes  []BlockType  `json:"block_types"`
}

type templateEntry struct {
	name        string
	description string
	build       func() []PageBlock
}

var templateOrder = []TemplateType{
	TemplateSalesPage,
	TemplateLandingPage,
	TemplateProductPage,
	TemplateCheckoutPage,
	TemplateThankYouPage,
	TemplateUpsellPage,
	TemplateDownsellPage,
	TemplateOptinPage,
}

var templateCatalog = map[TemplateType]templateEntry{
	TemplateSalesPage: {
		name:        "Sales Page",
		description: "Long-form page that builds desire and closes the sale",
		build: func() []PageBlock {
			return sequence(TypeHero, TypeBenefits, TypeFeatures, TypeTestimonial, TypePricing, TypeGuarantee, TypeFAQ, TypeCTA)
		},
	},
	TemplateLandingPage: {
		name:        "Landing Page",
		description: "Short page focused on one call to action",
		build: func() []PageBlock {
			return sequence(TypeHero, TypeFeatures, TypeStats, TypeTestimonial, TypeCTA)
		},
	},
	TemplateProductPage: {
		name:        "Product Page",
		description: "Product showcase with gallery and plans",
		build: func() []PageBlock {
			return sequence(TypeHero, TypeImageCarousel, TypeFeatures, TypePricing, TypeTestimonial, TypeFAQ, TypeCTA)
		},
	},
	TemplateCheckoutPage: {
		name:        "Checkout Page",
		description: "Order form with summary, bump offer and trust signals",
		build:       checkoutTemplate,
	},
	TemplateThankYouPage: {
		name:        "Thank You Page",
		description: "Order confirmation with next steps",
		build:       thankYouTemplate,
	},
	TemplateUpsellPage: {
		name:        "Upsell Page",
		description: "One-time offer shown after purchase",
		build: func() []PageBlock {
			return sequence(TypeCountdown, TypeUpsellOffer, TypeBenefits, TypeTestimonial)
		},
	},
	TemplateDownsellPage: {
		name:        "Downsell Page",
		description: "Lighter offer shown after an upsell is declined",
		build:       downsellTemplate,
	},
	TemplateOptinPage: {
		name:        "Opt-in Page",
		description: "Lead capture page",
		build: func() []PageBlock {
			return sequence(TypeHero, TypeBenefits, TypeForm, TypeTrustBadges)
		},
	},
}

func sequence(types ...BlockType) []PageBlock {
	list := make([]PageBlock, 0, len(types))
	for _, t := range types {
		list = append(list, NewBlock(t))
	}
	return list
}

func checkoutTemplate() []PageBlock {
	list := sequence(TypeHeading, TypeOrderSummary, TypeOrderBump, TypeCheckoutForm, TypeTrustBadges, TypeGuarantee)
	Edit(&list[0], func(c *HeadingContent) {
		c.Text = "You're Almost Done!"
		c.Tag = "h1"
	})
	return list
}

func thankYouTemplate() []PageBlock {
	list := sequence(TypeHeading, TypeText, TypeList, TypeButton)
	Edit(&list[0], func(c *HeadingContent) {
		c.Text = "Thank You For Your Order!"
		c.Tag = "h1"
	})
	Edit(&list[1], func(c *TextContent) {
		c.Text = "Your purchase was successful. A receipt and access details are on their way to your inbox."
	})
	Edit(&list[2], func(c *ListContent) {
		c.Items = []string{"Check your email for the receipt", "Log in to access your purchase", "Reach out to support if you need help"}
		c.Ordered = true
	})
	Edit(&list[3], func(c *ButtonContent) {
		c.Text = "Access Your Purchase"
		c.Link = "#access"
	})
	return list
}

func downsellTemplate() []PageBlock {
	list := sequence(TypeHeading, TypeUpsellOffer, TypeGuarantee)
	Edit(&list[0], func(c *HeadingContent) {
		c.Text = "Not Ready for the Full Upgrade?"
		c.Tag = "h1"
	})
	Edit(&list[1], func(c *UpsellOfferContent) {
		c.Headline = "Get the Essentials Edition Instead"
		c.Description = "The most important parts of the upgrade at a fraction of the price."
		c.Price = "27"
		c.AcceptText = "Yes, Add the Essentials"
	})
	return list
}

// ResolveTemplate maps a template type or funnel page type onto a catalog entry.
// The second result is false when the key was not recognised and the fallback was used.
func ResolveTemplate(key string) (TemplateType, bool) {
	normalized := strings.ToLower(strings.TrimSpace(key))
	if _, ok := templateCatalog[TemplateType(normalized)]; ok {
		return TemplateType(normalized), true
	}
	if alias, ok := pageTypeAliases[normalized]; ok {
		return alias, true
	}
	return FallbackTemplate, false
}

// IsTemplateType reports whether key is a template type or a funnel page type.
func IsTemplateType(key string) bool {
	_, ok := ResolveTemplate(key)
	return ok
}

// IsPageType reports whether key belongs to the funnel page vocabulary.
func IsPageType(key string) bool {
	_, ok := pageTypeAliases[strings.ToLower(strings.TrimSpace(key))]
	return ok
}

// DefaultTemplate returns a fresh block sequence for templateType with new ids.
func DefaultTemplate(templateType string) []PageBlock {
	resolved, _ := ResolveTemplate(templateType)
	return templateCatalog[resolved].build()
}

// DefaultBlocksFor returns the id-less scaffold for a funnel page type.
func DefaultBlocksFor(pageType string) []RawBlock {
	list := DefaultTemplate(pageType)
	raw := make([]RawBlock, 0, len(list))
	for _, block := range list {
		raw = append(raw, block.Raw())
	}
	return raw
}

// Instantiate turns scaffold blocks into page blocks with fresh ids and default settings.
func Instantiate(raw []RawBlock) []PageBlock {
	list := make([]PageBlock, 0, len(raw))
	for _, block := range raw {
		content := block.Content
		if content == nil {
			content = DefaultContent(block.Type)
		}
		styles := block.Styles
		if styles.IsZero() {
			styles = DefaultStyles(block.Type)
		}
		list = append(list, PageBlock{
			ID:       NewID(),
			Type:     block.Type,
			Content:  content,
			Styles:   styles,
			Settings: DefaultSettings(),
		})
	}
	return list
}

// Templates lists the catalog in a stable order.
func Templates() []TemplateInfo {
	aliases := make(map[TemplateType][]string)
	for pageType, templateType := range pageTypeAliases {
		aliases[templateType] = append(aliases[templateType], pageType)
	}

	result := make([]TemplateInfo, 0, len(templateOrder))
	for _, templateType := range templateOrder {
		entry := templateCatalog[templateType]
		info := TemplateInfo{
			Type:        templateType,
			Name:        entry.name,
			Description: entry.description,
			PageTypes:   aliases[templateType],
		}
		for _, block := range entry.build() {
			info.BlockTypes = append(info.BlockTypes, block.Type)
		}
		result = append(result, info)
	}
	return result
}
