package blocks

// builtin is the registry backing the package-level default lookups.
var builtin = DefaultRegistry()

// DefaultRegistry returns a registry pre-populated with the built-in block types.
func DefaultRegistry() *Registry {
	reg := NewRegistry()
	RegisterDefaults(reg)
	return reg
}

// DefaultContent returns fresh default content for blockType.
// Unknown types get an empty RawContent.
func DefaultContent(blockType BlockType) Content {
	desc, ok := builtin.Get(blockType)
	if !ok {
		return RawContent{}
	}
	return desc.Defaults()
}

// DefaultStyles returns fresh default styles for blockType.
// Unknown types get BaseStyles.
func DefaultStyles(blockType BlockType) ResponsiveStyles {
	desc, ok := builtin.Get(blockType)
	if !ok || desc.Styles == nil {
		return BaseStyles()
	}
	return desc.Styles()
}

// IsKnown reports whether blockType belongs to the built-in vocabulary.
func IsKnown(blockType BlockType) bool {
	return builtin.Has(blockType)
}

// Types lists the built-in block types in palette order.
func Types() []BlockType {
	return builtin.Types()
}

// Describe returns the palette metadata of a built-in type.
func Describe(blockType BlockType) (Metadata, bool) {
	desc, ok := builtin.Get(blockType)
	return desc.Metadata, ok
}

func describe[T any, P interface {
	*T
	Content
}](meta Metadata, defaults func() P, styles func() ResponsiveStyles) Descriptor {
	return Descriptor{
		Metadata: meta,
		Empty:    func() Content { return P(new(T)) },
		Defaults: func() Content { return defaults() },
		Styles:   styles,
	}
}

func desktop(props StyleProps) func() ResponsiveStyles {
	return func() ResponsiveStyles {
		copied := props
		return ResponsiveStyles{Desktop: &copied}
	}
}

func responsive(d, m StyleProps) func() ResponsiveStyles {
	return func() ResponsiveStyles {
		desk, mob := d, m
		return ResponsiveStyles{Desktop: &desk, Mobile: &mob}
	}
}

// RegisterDefaults adds the built-in block types to reg.
func RegisterDefaults(reg *Registry) {
	if reg == nil {
		return
	}
	registerLayout(reg)
	registerContent(reg)
	registerMarketing(reg)
	registerCommerce(reg)
}

func registerLayout(reg *Registry) {
	reg.MustRegister(describe(
		Metadata{Type: TypeSection, Name: "Section", Description: "Full-width band grouping other blocks", Category: CategoryLayout, Icon: "square", Container: true},
		func() *SectionContent { return &SectionContent{FullWidth: true} },
		desktop(StyleProps{Padding: "60px 20px", Margin: "0"}),
	))
	reg.MustRegister(describe(
		Metadata{Type: TypeContainer, Name: "Container", Description: "Centered box with a maximum width", Category: CategoryLayout, Icon: "box", Container: true},
		func() *ContainerContent { return &ContainerContent{MaxWidth: "1200px"} },
		desktop(StyleProps{Padding: "20px", Margin: "0 auto", MaxWidth: "1200px"}),
	))
	reg.MustRegister(describe(
		Metadata{Type: TypeColumns, Name: "Columns", Description: "Side by side columns", Category: CategoryLayout, Icon: "columns", Container: true},
		func() *ColumnsContent { return &ColumnsContent{Columns: 2, Gap: "24px", Stack: true} },
		responsive(
			StyleProps{Display: "flex", FlexDirection: "row", Gap: "24px", Padding: "20px", Margin: "0"},
			StyleProps{FlexDirection: "column"},
		),
	))
	reg.MustRegister(describe(
		Metadata{Type: TypeSpacer, Name: "Spacer", Description: "Vertical whitespace", Category: CategoryLayout, Icon: "move-vertical"},
		func() *SpacerContent { return &SpacerContent{Height: "40px"} },
		desktop(StyleProps{Height: "40px"}),
	))
	reg.MustRegister(describe(
		Metadata{Type: TypeDivider, Name: "Divider", Description: "Horizontal rule", Category: CategoryLayout, Icon: "minus"},
		func() *DividerContent { return &DividerContent{Style: "solid", Color: "#e5e7eb", Thickness: "1px"} },
		desktop(StyleProps{Margin: "20px 0"}),
	))
}

func registerContent(reg *Registry) {
	reg.MustRegister(describe(
		Metadata{Type: TypeHeading, Name: "Heading", Description: "Title text", Category: CategoryContent, Icon: "heading"},
		func() *HeadingContent { return &HeadingContent{Text: "Your Compelling Headline Here", Tag: "h2"} },
		desktop(StyleProps{FontSize: "36px", FontWeight: "700", TextAlign: "center", Color: "#111827", Padding: "10px 20px", Margin: "0"}),
	))
	reg.MustRegister(describe(
		Metadata{Type: TypeText, Name: "Text", Description: "Paragraph of rich text", Category: CategoryContent, Icon: "type"},
		func() *TextContent {
			return &TextContent{Text: "Tell your story here. Explain what makes your product different and why your customers will love it."}
		},
		desktop(StyleProps{FontSize: "18px", LineHeight: "1.6", Color: "#374151", Padding: "10px 20px", Margin: "0"}),
	))
	reg.MustRegister(describe(
		Metadata{Type: TypeImage, Name: "Image", Description: "Single image", Category: CategoryContent, Icon: "image"},
		func() *ImageContent {
			return &ImageContent{Src: "https://placehold.co/800x450", Alt: "Product image"}
		},
		desktop(StyleProps{Width: "100%", BorderRadius: "8px", Padding: "0", Margin: "0"}),
	))
	reg.MustRegister(describe(
		Metadata{Type: TypeButton, Name: "Button", Description: "Call to action button", Category: CategoryContent, Icon: "mouse-pointer"},
		func() *ButtonContent {
			return &ButtonContent{Text: "Buy Now", Link: "#buy", Target: "_self", Variant: "primary", Size: "large"}
		},
		desktop(StyleProps{BackgroundColor: "#2563eb", Color: "#ffffff", Padding: "16px 32px", BorderRadius: "8px", FontWeight: "600", TextAlign: "center"}),
	))
	reg.MustRegister(describe(
		Metadata{Type: TypeIcon, Name: "Icon", Description: "Single icon", Category: CategoryContent, Icon: "star"},
		func() *IconContent { return &IconContent{Name: "star", Size: "48px", Color: "#2563eb"} },
		desktop(StyleProps{TextAlign: "center", Padding: "10px", Margin: "0"}),
	))
	reg.MustRegister(describe(
		Metadata{Type: TypeRating, Name: "Rating", Description: "Star rating", Category: CategoryContent, Icon: "star-half"},
		func() *RatingContent { return &RatingContent{Value: 4.9, Max: 5, Label: "Rated 4.9/5 by our customers"} },
		desktop(StyleProps{TextAlign: "center", Color: "#f59e0b", Padding: "10px", Margin: "0"}),
	))
	reg.MustRegister(describe(
		Metadata{Type: TypeList, Name: "List", Description: "Bullet or numbered list", Category: CategoryContent, Icon: "list"},
		func() *ListContent {
			return &ListContent{Items: []string{"First key point", "Second key point", "Third key point"}, Icon: "check"}
		},
		desktop(StyleProps{FontSize: "18px", Padding: "10px 20px", Margin: "0"}),
	))
	reg.MustRegister(describe(
		Metadata{Type: TypeVideo, Name: "Video", Description: "Embedded video", Category: CategoryContent, Icon: "video"},
		func() *VideoContent { return &VideoContent{URL: "", Provider: "youtube"} },
		desktop(StyleProps{Width: "100%", MaxWidth: "800px", Margin: "0 auto", Padding: "20px"}),
	))
}

func registerMarketing(reg *Registry) {
	reg.MustRegister(describe(
		Metadata{Type: TypeHero, Name: "Hero", Description: "Headline, subheadline and primary call to action", Category: CategoryMarketing, Icon: "layout"},
		func() *HeroContent {
			return &HeroContent{
				Headline:    "Transform Your Life With Our Amazing Product",
				Subheadline: "Join thousands of satisfied customers who have already made the switch",
				ButtonText:  "Get Started Now",
				ButtonLink:  "#buy",
			}
		},
		responsive(
			StyleProps{BackgroundColor: "#111827", Color: "#ffffff", Padding: "80px 20px", TextAlign: "center", Margin: "0"},
			StyleProps{Padding: "48px 16px"},
		),
	))
	reg.MustRegister(describe(
		Metadata{Type: TypeFeatures, Name: "Features", Description: "Grid of product features", Category: CategoryMarketing, Icon: "grid"},
		func() *FeaturesContent {
			return &FeaturesContent{
				Title:    "Why Choose Us",
				Subtitle: "Everything you need to succeed",
				Items: []FeatureItem{
					{Icon: "zap", Title: "Lightning Fast", Description: "Get results in record time with our optimized approach."},
					{Icon: "shield", Title: "Secure & Reliable", Description: "Your data and purchases are always protected."},
					{Icon: "heart", Title: "Customer Love", Description: "Support that actually cares about your success."},
				},
			}
		},
		desktop(StyleProps{Padding: "60px 20px", BackgroundColor: "#ffffff", Margin: "0"}),
	))
	reg.MustRegister(describe(
		Metadata{Type: TypeBenefits, Name: "Benefits", Description: "Checklist of outcomes", Category: CategoryMarketing, Icon: "check-circle"},
		func() *BenefitsContent {
			return &BenefitsContent{
				Title: "What You'll Get",
				Items: []string{"Save hours every week", "Step-by-step guidance", "Lifetime access and updates"},
			}
		},
		desktop(StyleProps{Padding: "60px 20px", BackgroundColor: "#f9fafb", Margin: "0"}),
	))
	reg.MustRegister(describe(
		Metadata{Type: TypeTestimonial, Name: "Testimonials", Description: "Customer quotes", Category: CategoryMarketing, Icon: "message-square"},
		func() *TestimonialContent {
			return &TestimonialContent{
				Title: "What Our Customers Say",
				Items: []TestimonialItem{
					{Quote: "This completely changed how I work. Worth every penny!", Author: "Sarah Johnson", Role: "Entrepreneur", Rating: 5},
					{Quote: "I saw results within the first week. Highly recommended.", Author: "Michael Chen", Role: "Designer", Rating: 5},
				},
			}
		},
		desktop(StyleProps{Padding: "60px 20px", BackgroundColor: "#f9fafb", Margin: "0"}),
	))
	reg.MustRegister(describe(
		Metadata{Type: TypeFAQ, Name: "FAQ", Description: "Questions and answers", Category: CategoryMarketing, Icon: "help-circle"},
		func() *FAQContent {
			return &FAQContent{
				Title: "Frequently Asked Questions",
				Items: []FAQItem{
					{Question: "How do I get access?", Answer: "You will receive instant access by email right after your purchase."},
					{Question: "Is there a money-back guarantee?", Answer: "Yes. If you are not satisfied, contact us within 30 days for a full refund."},
					{Question: "Do I need any experience?", Answer: "No. Everything is explained step by step for complete beginners."},
				},
			}
		},
		desktop(StyleProps{Padding: "60px 20px", MaxWidth: "800px", Margin: "0 auto"}),
	))
	reg.MustRegister(describe(
		Metadata{Type: TypePricing, Name: "Pricing", Description: "Plan comparison with prices", Category: CategoryMarketing, Icon: "dollar-sign"},
		func() *PricingContent {
			return &PricingContent{
				Title: "Choose Your Plan",
				Plans: []PricingPlan{
					{Name: "Basic", Price: "29", Period: "one-time", Features: []string{"Core product", "Email support"}, ButtonText: "Get Basic", ButtonLink: "#buy"},
					{Name: "Pro", Price: "79", Period: "one-time", Features: []string{"Everything in Basic", "Bonus resources", "Priority support"}, ButtonText: "Get Pro", ButtonLink: "#buy", Highlighted: true},
				},
			}
		},
		desktop(StyleProps{Padding: "60px 20px", BackgroundColor: "#ffffff", Margin: "0"}),
	))
	reg.MustRegister(describe(
		Metadata{Type: TypeCTA, Name: "Call to Action", Description: "Closing pitch with a button", Category: CategoryMarketing, Icon: "megaphone"},
		func() *CTAContent {
			return &CTAContent{
				Headline:    "Ready to Get Started?",
				Subheadline: "Join today and start seeing results immediately",
				ButtonText:  "Yes, I Want This!",
				ButtonLink:  "#buy",
			}
		},
		desktop(StyleProps{BackgroundColor: "#2563eb", Color: "#ffffff", Padding: "60px 20px", TextAlign: "center", Margin: "0"}),
	))
	reg.MustRegister(describe(
		Metadata{Type: TypeCountdown, Name: "Countdown", Description: "Urgency timer", Category: CategoryMarketing, Icon: "clock"},
		func() *CountdownContent {
			return &CountdownContent{Title: "Offer Ends In", Minutes: 15, ExpiredText: "This offer has expired"}
		},
		desktop(StyleProps{Padding: "30px 20px", TextAlign: "center", BackgroundColor: "#fef2f2", Color: "#b91c1c", Margin: "0"}),
	))
	reg.MustRegister(describe(
		Metadata{Type: TypeStats, Name: "Stats", Description: "Key numbers", Category: CategoryMarketing, Icon: "bar-chart"},
		func() *StatsContent {
			return &StatsContent{Items: []StatItem{
				{Value: "10,000+", Label: "Happy Customers"},
				{Value: "4.9/5", Label: "Average Rating"},
				{Value: "30-Day", Label: "Money-Back Guarantee"},
			}}
		},
		desktop(StyleProps{Padding: "40px 20px", TextAlign: "center", Margin: "0"}),
	))
	reg.MustRegister(describe(
		Metadata{Type: TypeForm, Name: "Form", Description: "Lead capture form", Category: CategoryMarketing, Icon: "mail"},
		func() *FormContent {
			return &FormContent{
				Title: "Get Instant Access",
				Fields: []FormField{
					{Name: "name", Label: "Name", Type: "text", Placeholder: "Your name", Required: true},
					{Name: "email", Label: "Email", Type: "email", Placeholder: "you@example.com", Required: true},
				},
				ButtonText:     "Send Me Access",
				SuccessMessage: "Thanks! Check your inbox.",
			}
		},
		desktop(StyleProps{Padding: "40px 20px", MaxWidth: "480px", Margin: "0 auto"}),
	))
	reg.MustRegister(describe(
		Metadata{Type: TypeImageCarousel, Name: "Image Carousel", Description: "Sliding gallery of images", Category: CategoryMarketing, Icon: "images"},
		func() *ImageCarouselContent {
			return &ImageCarouselContent{
				Images: []CarouselImage{
					{Src: "https://placehold.co/800x450?text=Slide+1", Alt: "Slide 1"},
					{Src: "https://placehold.co/800x450?text=Slide+2", Alt: "Slide 2"},
				},
				Autoplay: true,
				Interval: 5,
			}
		},
		nil,
	))
	reg.MustRegister(describe(
		Metadata{Type: TypeVideoCarousel, Name: "Video Carousel", Description: "Sliding list of videos", Category: CategoryMarketing, Icon: "film"},
		func() *VideoCarouselContent { return &VideoCarouselContent{Videos: []CarouselVideo{}} },
		nil,
	))
	reg.MustRegister(describe(
		Metadata{Type: TypeComparisonTable, Name: "Comparison Table", Description: "Us versus them", Category: CategoryMarketing, Icon: "table"},
		func() *ComparisonTableContent {
			return &ComparisonTableContent{
				Title:   "How We Compare",
				Columns: []string{"Us", "Others"},
				Rows: []ComparisonRow{
					{Feature: "Lifetime access", Values: []FlexString{"Yes", "No"}},
					{Feature: "Money-back guarantee", Values: []FlexString{"Yes", "No"}},
				},
			}
		},
		desktop(StyleProps{Padding: "40px 20px", MaxWidth: "900px", Margin: "0 auto"}),
	))
	reg.MustRegister(describe(
		Metadata{Type: TypeSocialProof, Name: "Social Proof", Description: "Recent purchase notice", Category: CategoryMarketing, Icon: "users"},
		func() *SocialProofContent {
			return &SocialProofContent{Message: "people bought this in the last 24 hours", Count: 127}
		},
		nil,
	))
	reg.MustRegister(describe(
		Metadata{Type: TypeGuarantee, Name: "Guarantee", Description: "Risk reversal badge", Category: CategoryMarketing, Icon: "shield-check"},
		func() *GuaranteeContent {
			return &GuaranteeContent{
				Title: "30-Day Money-Back Guarantee",
				Text:  "Try it risk-free. If you are not completely satisfied, we will refund every cent.",
				Days:  30,
			}
		},
		desktop(StyleProps{Padding: "40px 20px", TextAlign: "center", BorderWidth: "2px", BorderStyle: "dashed", BorderColor: "#10b981", Margin: "20px"}),
	))
	reg.MustRegister(describe(
		Metadata{Type: TypeTrustBadges, Name: "Trust Badges", Description: "Payment and security badges", Category: CategoryMarketing, Icon: "award"},
		func() *TrustBadgesContent {
			return &TrustBadgesContent{Badges: []string{"secure-checkout", "ssl", "money-back"}}
		},
		nil,
	))
	reg.MustRegister(describe(
		Metadata{Type: TypeLogoCloud, Name: "Logo Cloud", Description: "As seen in", Category: CategoryMarketing, Icon: "cloud"},
		func() *LogoCloudContent { return &LogoCloudContent{Title: "As Featured In", Logos: []LogoItem{}} },
		nil,
	))
}

func registerCommerce(reg *Registry) {
	reg.MustRegister(describe(
		Metadata{Type: TypeCheckoutForm, Name: "Checkout Form", Description: "Customer and payment details", Category: CategoryCommerce, Icon: "credit-card"},
		func() *CheckoutFormContent {
			return &CheckoutFormContent{Title: "Complete Your Order", ButtonText: "Complete Purchase", ShowCoupon: true}
		},
		desktop(StyleProps{Padding: "30px", BackgroundColor: "#ffffff", BorderRadius: "12px", BoxShadow: "0 4px 12px rgba(0,0,0,0.08)", Margin: "0"}),
	))
	reg.MustRegister(describe(
		Metadata{Type: TypeOrderSummary, Name: "Order Summary", Description: "Line items and total", Category: CategoryCommerce, Icon: "shopping-cart"},
		func() *OrderSummaryContent { return &OrderSummaryContent{Title: "Order Summary", ShowTaxes: true} },
		desktop(StyleProps{Padding: "20px", BackgroundColor: "#f9fafb", BorderRadius: "12px", Margin: "0"}),
	))
	reg.MustRegister(describe(
		Metadata{Type: TypeOrderBump, Name: "Order Bump", Description: "One-click add-on at checkout", Category: CategoryCommerce, Icon: "plus-square"},
		func() *OrderBumpContent {
			return &OrderBumpContent{
				Headline:      "Yes! Add the Quick-Start Bonus Pack",
				Description:   "Get templates and checklists to get results twice as fast.",
				Price:         "19",
				CheckboxLabel: "Add to my order",
			}
		},
		desktop(StyleProps{Padding: "20px", BackgroundColor: "#fffbeb", BorderWidth: "2px", BorderStyle: "dashed", BorderColor: "#f59e0b", Margin: "20px 0"}),
	))
	reg.MustRegister(describe(
		Metadata{Type: TypeUpsellOffer, Name: "Upsell Offer", Description: "Post-purchase offer with accept and decline", Category: CategoryCommerce, Icon: "trending-up"},
		func() *UpsellOfferContent {
			return &UpsellOfferContent{
				Headline:    "Wait! Your Order Is Not Complete",
				Description: "Upgrade now and get the complete advanced course at a one-time discount.",
				Price:       "47",
				AcceptText:  "Yes, Upgrade My Order",
				AcceptLink:  "#accept",
				DeclineText: "No thanks, I'll pass",
				DeclineLink: "#decline",
			}
		},
		desktop(StyleProps{Padding: "40px 20px", TextAlign: "center", Margin: "0"}),
	))
}
