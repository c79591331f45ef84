package blocks

// PaletteCategory groups block metadata for the editor component palette.
type PaletteCategory struct {
	Category Category   `json:"category"`
	Name     string     `json:"name"`
	Blocks   []Metadata `json:"blocks"`
}

var categoryNames = []struct {
	category Category
	name     string
}{
	{CategoryLayout, "Layout"},
	{CategoryContent, "Basic"},
	{CategoryMarketing, "Marketing"},
	{CategoryCommerce, "Commerce"},
}

// Palette returns the built-in block types grouped by category.
func Palette() []PaletteCategory {
	return PaletteFrom(builtin)
}

// PaletteFrom groups the metadata registered in reg. Empty categories are omitted.
func PaletteFrom(reg *Registry) []PaletteCategory {
	byCategory := make(map[Category][]Metadata)
	for _, meta := range reg.ListMetadata() {
		byCategory[meta.Category] = append(byCategory[meta.Category], meta)
	}

	palette := make([]PaletteCategory, 0, len(categoryNames))
	for _, entry := range categoryNames {
		list := byCategory[entry.category]
		if len(list) == 0 {
			continue
		}
		palette = append(palette, PaletteCategory{Category: entry.category, Name: entry.name, Blocks: list})
	}
	return palette
}

// generationTypes is the narrower set a model may emit for sales and landing pages.
var generationTypes = []BlockType{
	TypeHero,
	TypeFeatures,
	TypeBenefits,
	TypeTestimonial,
	TypeFAQ,
	TypePricing,
	TypeCTA,
	TypeStats,
	TypeCountdown,
}

// GenerationTypes returns the block types offered to a model in a generation prompt.
func GenerationTypes() []BlockType {
	return append([]BlockType(nil), generationTypes...)
}
