package blocks

import (
	"bytes"
	"encoding/json"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Content is the typed payload of a block. Each known BlockType owns exactly
// one variant; unknown types carry RawContent.
type Content interface {
	isContent()
}

// RawContent holds content for types outside the known vocabulary.
type RawContent map[string]interface{}

// FlexString accepts JSON strings, numbers and booleans and keeps their text form.
// Models frequently emit prices and stat values as numbers.
type FlexString string

var flexStringType = reflect.TypeOf(FlexString(""))

func (f *FlexString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*f = ""
		return nil
	}
	if trimmed[0] == '"' {
		var value string
		if err := json.Unmarshal(trimmed, &value); err != nil {
			return err
		}
		*f = FlexString(value)
		return nil
	}
	var number json.Number
	if err := json.Unmarshal(trimmed, &number); err == nil {
		*f = FlexString(number.String())
		return nil
	}
	var flag bool
	if err := json.Unmarshal(trimmed, &flag); err == nil {
		*f = FlexString(strconv.FormatBool(flag))
		return nil
	}
	return &json.UnmarshalTypeError{Value: string(trimmed), Type: flexStringType}
}

func (f FlexString) String() string {
	return strings.TrimSpace(string(f))
}

// ContentKeys returns the top-level JSON keys of a content variant in declaration order.
// RawContent keys are returned sorted.
func ContentKeys(content Content) []string {
	if raw, ok := content.(RawContent); ok {
		keys := make([]string, 0, len(raw))
		for key := range raw {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		return keys
	}

	value := reflect.ValueOf(content)
	if value.Kind() != reflect.Ptr || value.IsNil() || value.Elem().Kind() != reflect.Struct {
		return nil
	}
	structType := value.Elem().Type()
	keys := make([]string, 0, structType.NumField())
	for i := 0; i < structType.NumField(); i++ {
		name, _, _ := strings.Cut(structType.Field(i).Tag.Get("json"), ",")
		if name != "" && name != "-" {
			keys = append(keys, name)
		}
	}
	return keys
}

type SectionContent struct {
	FullWidth bool   `json:"fullWidth"`
	Anchor    string `json:"anchor"`
}

type ContainerContent struct {
	MaxWidth string `json:"maxWidth"`
}

type ColumnsContent struct {
	Columns int    `json:"columns"`
	Gap     string `json:"gap"`
	Stack   bool   `json:"stackOnMobile"`
}

type SpacerContent struct {
	Height string `json:"height"`
}

type DividerContent struct {
	Style     string `json:"style"`
	Color     string `json:"color"`
	Thickness string `json:"thickness"`
}

type HeadingContent struct {
	Text string  `json:"text"`
	Tag  string  `json:"tag"`
	Link *string `json:"link"`
}

// TextContent holds rich text; Text may contain inline HTML.
type TextContent struct {
	Text string `json:"text"`
}

type ImageContent struct {
	Src     string  `json:"src"`
	Alt     string  `json:"alt"`
	Caption string  `json:"caption"`
	Link    *string `json:"link"`
}

type ButtonContent struct {
	Text    string `json:"text"`
	Link    string `json:"link"`
	Target  string `json:"target"`
	Variant string `json:"variant"`
	Size    string `json:"size"`
}

type IconContent struct {
	Name  string `json:"name"`
	Size  string `json:"size"`
	Color string `json:"color"`
}

type RatingContent struct {
	Value float64 `json:"value"`
	Max   int     `json:"max"`
	Label string  `json:"label"`
}

type ListContent struct {
	Items   []string `json:"items"`
	Ordered bool     `json:"ordered"`
	Icon    string   `json:"icon"`
}

type VideoContent struct {
	URL       string `json:"url"`
	Provider  string `json:"provider"`
	Thumbnail string `json:"thumbnail"`
	Autoplay  bool   `json:"autoplay"`
}

type HeroContent struct {
	Headline        string `json:"headline"`
	Subheadline     string `json:"subheadline"`
	ButtonText      string `json:"buttonText"`
	ButtonLink      string `json:"buttonLink"`
	BackgroundImage string `json:"backgroundImage"`
}

type FeatureItem struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type FeaturesContent struct {
	Title    string        `json:"title"`
	Subtitle string        `json:"subtitle"`
	Items    []FeatureItem `json:"items"`
}

type BenefitsContent struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

type TestimonialItem struct {
	Quote  string `json:"quote"`
	Author string `json:"author"`
	Role   string `json:"role"`
	Avatar string `json:"avatar"`
	Rating int    `json:"rating"`
}

type TestimonialContent struct {
	Title string            `json:"title"`
	Items []TestimonialItem `json:"items"`
}

type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type FAQContent struct {
	Title string    `json:"title"`
	Items []FAQItem `json:"items"`
}

type PricingPlan struct {
	Name        string     `json:"name"`
	Price       FlexString `json:"price"`
	Period      string     `json:"period"`
	Features    []string   `json:"features"`
	ButtonText  string     `json:"buttonText"`
	ButtonLink  string     `json:"buttonLink"`
	Highlighted bool       `json:"highlighted"`
}

type PricingContent struct {
	Title string        `json:"title"`
	Plans []PricingPlan `json:"plans"`
}

type CTAContent struct {
	Headline    string `json:"headline"`
	Subheadline string `json:"subheadline"`
	ButtonText  string `json:"buttonText"`
	ButtonLink  string `json:"buttonLink"`
}

// CountdownContent is evergreen when EndDate is empty: the timer runs Minutes from first view.
type CountdownContent struct {
	Title       string `json:"title"`
	EndDate     string `json:"endDate"`
	Minutes     int    `json:"minutes"`
	ExpiredText string `json:"expiredText"`
}

type StatItem struct {
	Value FlexString `json:"value"`
	Label string     `json:"label"`
}

type StatsContent struct {
	Items []StatItem `json:"items"`
}

type FormField struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Type        string `json:"type"`
	Placeholder string `json:"placeholder"`
	Required    bool   `json:"required"`
}

type FormContent struct {
	Title          string      `json:"title"`
	Fields         []FormField `json:"fields"`
	ButtonText     string      `json:"buttonText"`
	SuccessMessage string      `json:"successMessage"`
}

type CarouselImage struct {
	Src     string `json:"src"`
	Alt     string `json:"alt"`
	Caption string `json:"caption"`
}

type ImageCarouselContent struct {
	Images   []CarouselImage `json:"images"`
	Autoplay bool            `json:"autoplay"`
	Interval int             `json:"interval"`
}

type CarouselVideo struct {
	URL       string `json:"url"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
}

type VideoCarouselContent struct {
	Videos []CarouselVideo `json:"videos"`
}

type ComparisonRow struct {
	Feature string       `json:"feature"`
	Values  []FlexString `json:"values"`
}

type ComparisonTableContent struct {
	Title   string          `json:"title"`
	Columns []string        `json:"columns"`
	Rows    []ComparisonRow `json:"rows"`
}

type SocialProofContent struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

type GuaranteeContent struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	Days  int    `json:"days"`
	Badge string `json:"badge"`
}

type TrustBadgesContent struct {
	Badges []string `json:"badges"`
}

type LogoItem struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

type LogoCloudContent struct {
	Title string     `json:"title"`
	Logos []LogoItem `json:"logos"`
}

type CheckoutFormContent struct {
	Title        string `json:"title"`
	ButtonText   string `json:"buttonText"`
	ShowCoupon   bool   `json:"showCoupon"`
	CollectPhone bool   `json:"collectPhone"`
}

type OrderSummaryContent struct {
	Title     string `json:"title"`
	ShowTaxes bool   `json:"showTaxes"`
}

type OrderBumpContent struct {
	Headline      string     `json:"headline"`
	Description   string     `json:"description"`
	Price         FlexString `json:"price"`
	CheckboxLabel string     `json:"checkboxLabel"`
}

type UpsellOfferContent struct {
	Headline    string     `json:"headline"`
	Description string     `json:"description"`
	Price       FlexString `json:"price"`
	AcceptText  string     `json:"acceptText"`
	AcceptLink  string     `json:"acceptLink"`
	DeclineText string     `json:"declineText"`
	DeclineLink string     `json:"declineLink"`
}

func (RawContent) isContent()              {}
func (*SectionContent) isContent()         {}
func (*ContainerContent) isContent()       {}
func (*ColumnsContent) isContent()         {}
func (*SpacerContent) isContent()          {}
func (*DividerContent) isContent()         {}
func (*HeadingContent) isContent()         {}
func (*TextContent) isContent()            {}
func (*ImageContent) isContent()           {}
func (*ButtonContent) isContent()          {}
func (*IconContent) isContent()            {}
func (*RatingContent) isContent()          {}
func (*ListContent) isContent()            {}
func (*VideoContent) isContent()           {}
func (*HeroContent) isContent()            {}
func (*FeaturesContent) isContent()        {}
func (*BenefitsContent) isContent()        {}
func (*TestimonialContent) isContent()     {}
func (*FAQContent) isContent()             {}
func (*PricingContent) isContent()         {}
func (*CTAContent) isContent()             {}
func (*CountdownContent) isContent()       {}
func (*StatsContent) isContent()           {}
func (*FormContent) isContent()            {}
func (*ImageCarouselContent) isContent()   {}
func (*VideoCarouselContent) isContent()   {}
func (*ComparisonTableContent) isContent() {}
func (*SocialProofContent) isContent()     {}
func (*GuaranteeContent) isContent()       {}
func (*TrustBadgesContent) isContent()     {}
func (*LogoCloudContent) isContent()       {}
func (*CheckoutFormContent) isContent()    {}
func (*OrderSummaryContent) isContent()    {}
func (*OrderBumpContent) isContent()       {}
func (*UpsellOfferContent) isContent()     {}

// RewriteRichText applies fn to every content field that may hold inline HTML,
// recursing into children.
func RewriteRichText(list []PageBlock, fn func(string) string) {
	if fn == nil {
		return
	}
	for i := range list {
		switch content := list[i].Content.(type) {
		case *TextContent:
			content.Text = fn(content.Text)
		case *FAQContent:
			for j := range content.Items {
				content.Items[j].Answer = fn(content.Items[j].Answer)
			}
		case *GuaranteeContent:
			content.Text = fn(content.Text)
		}
		RewriteRichText(list[i].Children, fn)
	}
}
