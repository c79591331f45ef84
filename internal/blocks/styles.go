package blocks

import "encoding/json"

// StyleProps is a sparse set of visual properties for one breakpoint.
// Empty fields are not emitted and do not override anything when merged.
type StyleProps struct {
	// Colors
	Color           string `json:"color,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
	BorderColor     string `json:"borderColor,omitempty"`

	// Spacing
	Padding string `json:"padding,omitempty"`
	Margin  string `json:"margin,omitempty"`
	Gap     string `json:"gap,omitempty"`

	// Typography
	FontFamily    string `json:"fontFamily,omitempty"`
	FontSize      string `json:"fontSize,omitempty"`
	FontWeight    string `json:"fontWeight,omitempty"`
	LineHeight    string `json:"lineHeight,omitempty"`
	LetterSpacing string `json:"letterSpacing,omitempty"`
	TextAlign     string `json:"textAlign,omitempty"`

	// Box
	Width        string `json:"width,omitempty"`
	MaxWidth     string `json:"maxWidth,omitempty"`
	Height       string `json:"height,omitempty"`
	MinHeight    string `json:"minHeight,omitempty"`
	BorderWidth  string `json:"borderWidth,omitempty"`
	BorderStyle  string `json:"borderStyle,omitempty"`
	BorderRadius string `json:"borderRadius,omitempty"`
	BoxShadow    string `json:"boxShadow,omitempty"`
	Opacity      string `json:"opacity,omitempty"`

	// Flex layout
	Display        string `json:"display,omitempty"`
	FlexDirection  string `json:"flexDirection,omitempty"`
	JustifyContent string `json:"justifyContent,omitempty"`
	AlignItems     string `json:"alignItems,omitempty"`
	FlexWrap       string `json:"flexWrap,omitempty"`

	// Background
	BackgroundImage    string `json:"backgroundImage,omitempty"`
	BackgroundSize     string `json:"backgroundSize,omitempty"`
	BackgroundPosition string `json:"backgroundPosition,omitempty"`

	// Transform
	Transform  string `json:"transform,omitempty"`
	Transition string `json:"transition,omitempty"`
}

// ResponsiveStyles holds per-breakpoint style overrides. A nil breakpoint inherits.
type ResponsiveStyles struct {
	Desktop *StyleProps `json:"desktop,omitempty"`
	Tablet  *StyleProps `json:"tablet,omitempty"`
	Mobile  *StyleProps `json:"mobile,omitempty"`
}

// IsZero reports whether no breakpoint is set.
func (s ResponsiveStyles) IsZero() bool {
	return s.Desktop == nil && s.Tablet == nil && s.Mobile == nil
}

// Clone returns a deep copy.
func (s ResponsiveStyles) Clone() ResponsiveStyles {
	return ResponsiveStyles{
		Desktop: cloneProps(s.Desktop),
		Tablet:  cloneProps(s.Tablet),
		Mobile:  cloneProps(s.Mobile),
	}
}

func cloneProps(p *StyleProps) *StyleProps {
	if p == nil {
		return nil
	}
	copied := *p
	return &copied
}

// BaseStyles is used for types without their own style defaults.
func BaseStyles() ResponsiveStyles {
	return ResponsiveStyles{Desktop: &StyleProps{Padding: "20px", Margin: "0"}}
}

// MergeStyles returns the default styles of blockType with every breakpoint
// present in override replacing the default one.
func MergeStyles(blockType BlockType, override ResponsiveStyles) ResponsiveStyles {
	merged := DefaultStyles(blockType)
	if override.Desktop != nil {
		merged.Desktop = cloneProps(override.Desktop)
	}
	if override.Tablet != nil {
		merged.Tablet = cloneProps(override.Tablet)
	}
	if override.Mobile != nil {
		merged.Mobile = cloneProps(override.Mobile)
	}
	return merged
}

var breakpointKeys = map[string]struct{}{"desktop": {}, "tablet": {}, "mobile": {}}

// DecodeStyles reads a styles object. Models sometimes emit flat properties
// instead of breakpoints; those are treated as desktop styles. Entries that do
// not fit StyleProps are ignored.
func DecodeStyles(data json.RawMessage) ResponsiveStyles {
	var fields map[string]json.RawMessage
	if len(data) == 0 || json.Unmarshal(data, &fields) != nil || len(fields) == 0 {
		return ResponsiveStyles{}
	}

	var styles ResponsiveStyles
	flat := make(map[string]json.RawMessage)
	for key, value := range fields {
		if _, ok := breakpointKeys[key]; !ok {
			flat[key] = value
			continue
		}
		props, ok := decodeProps(value)
		if !ok {
			continue
		}
		switch key {
		case "desktop":
			styles.Desktop = props
		case "tablet":
			styles.Tablet = props
		case "mobile":
			styles.Mobile = props
		}
	}

	if len(flat) > 0 {
		encoded, err := json.Marshal(flat)
		if err == nil {
			if props, ok := decodeProps(encoded); ok && *props != (StyleProps{}) {
				if styles.Desktop == nil {
					styles.Desktop = props
				} else {
					overlayProps(styles.Desktop, props)
				}
			}
		}
	}
	return styles
}

func decodeProps(data json.RawMessage) (*StyleProps, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, false
	}
	var props StyleProps
	for key, value := range fields {
		single, _ := json.Marshal(map[string]json.RawMessage{key: value})
		// Non-string values for a property are dropped one by one.
		_ = json.Unmarshal(single, &props)
	}
	return &props, true
}

// overlayProps copies the non-empty fields of src onto dst.
func overlayProps(dst, src *StyleProps) {
	if dst == nil || src == nil {
		return
	}
	encoded, err := json.Marshal(src)
	if err != nil {
		return
	}
	_ = json.Unmarshal(encoded, dst)
}
