package extractor

import (
	"regexp"
	"sort"
	"strings"
)

// countryNames lists every origin token recognized in product names.
// "local" is kept here so it can be normalized to the configured home
// country by OriginExtractor.
var countryNames = map[string]bool{
	"local": true,

	// Gulf and Middle East
	"saudi": true, "saudi arabia": true, "uae": true, "qatar": true,
	"bahrain": true, "kuwait": true, "oman": true, "yemen": true,
	"lebanon": true, "jordan": true, "turkey": true,

	// Africa
	"egypt": true, "tunisia": true, "morocco": true, "south africa": true,
	"tanzania": true,

	// Asia
	"china": true, "india": true, "pakistan": true, "bangladesh": true,
	"thailand": true, "vietnam": true, "malaysia": true, "indonesia": true,
	"philippines": true,

	// Europe
	"spain": true, "italy": true, "france": true, "germany": true,
	"netherlands": true, "uk": true,

	// Americas and Oceania
	"usa": true, "united states": true, "brazil": true, "australia": true,
}

// unitKeywords lists single-word unit tokens matched after a leading
// numeric quantity (e.g. "500 g", "2kg", "3 bunches").
var unitKeywords = map[string]bool{
	// Weight
	"kg": true, "g": true, "gram": true, "grams": true,
	"kilogram": true, "kilograms": true,
	"lb": true, "lbs": true, "pound": true, "pounds": true,
	"oz": true, "ounce": true, "ounces": true,

	// Volume
	"l": true, "liter": true, "liters": true, "litre": true, "litres": true,
	"ml": true,

	// Packaging
	"pkt": true, "packet": true, "packets": true,
	"box": true, "boxes": true, "bag": true, "bags": true,
	"bottle": true, "bottles": true, "can": true, "cans": true,
	"tin": true, "tins": true, "jar": true, "jars": true,
	"tube": true, "tubes": true, "roll": true, "rolls": true,
	"pack": true, "packs": true, "tray": true,

	// Count
	"piece": true, "pieces": true, "pcs": true,
	"dozen": true, "dozens": true, "bunch": true, "bunches": true,
	"bundle": true, "bundles": true, "head": true, "heads": true,
	"sheet": true, "sheets": true, "slice": true, "slices": true,
	"unit": true, "units": true,
}

// descriptiveWords lists filler tokens stripped from product names:
// quality, size, state, color, and variety descriptors that never
// identify what the item actually is.
var descriptiveWords = map[string]bool{
	// Quality
	"farm": true, "fresh": true, "organic": true, "premium": true,
	"natural": true, "sustainable": true, "quality": true, "grade": true,
	"type": true, "variety": true, "brand": true, "deluxe": true,
	"luxury": true, "gourmet": true, "artisanal": true, "handcrafted": true,
	"homemade": true, "traditional": true, "authentic": true,
	"genuine": true, "pure": true,

	// Size
	"small": true, "medium": true, "large": true, "extra": true,
	"super": true, "mega": true, "jumbo": true, "mini": true,
	"baby": true, "big": true, "thermo": true,

	// State and packaging fillers
	"ripe": true, "raw": true, "cooked": true, "frozen": true,
	"dried": true, "freshly": true, "locally": true, "grown": true,
	"harvested": true, "picked": true, "selected": true, "bunch": true,

	// Color
	"red": true, "green": true, "yellow": true, "orange": true,
	"purple": true, "blue": true, "white": true, "black": true,
	"brown": true, "pink": true, "golden": true,

	// Apple varieties
	"royal": true, "gala": true, "fuji": true, "granny": true,
	"smith": true, "honeycrisp": true, "delicious": true, "lady": true,
	"braeburn": true,
}

// complexityKeywords trigger the generative extraction path when present
// in a raw name.
var complexityKeywords = map[string]bool{
	"organic": true, "premium": true, "fresh": true, "natural": true,
	"sustainable": true, "fair-trade": true, "quality": true,
	"grade": true, "type": true, "variety": true, "brand": true,
}

// Patterns bundles the keyword sets and compiled expressions shared by
// the extraction components. Build once with NewPatterns and treat as
// read-only afterwards.
type Patterns struct {
	Countries   map[string]bool
	Units       map[string]bool
	Descriptive map[string]bool
	Complexity  map[string]bool

	countryPattern     *regexp.Regexp
	unitPattern        *regexp.Regexp
	descriptivePattern *regexp.Regexp
}

// NewPatterns compiles the extraction patterns from the keyword sets.
func NewPatterns() *Patterns {
	p := &Patterns{
		Countries:   countryNames,
		Units:       unitKeywords,
		Descriptive: descriptiveWords,
		Complexity:  complexityKeywords,
	}
	p.countryPattern = regexp.MustCompile(`(?i)\b(` + alternation(p.Countries) + `)\b`)
	p.unitPattern = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(` + alternation(p.Units) + `)\b`)
	p.descriptivePattern = regexp.MustCompile(`(?i)\b(` + alternation(p.Descriptive) + `)\b`)
	return p
}

// alternation joins a keyword set into a regex alternation sorted longest
// first, so multi-word entries like "saudi arabia" win over their
// prefixes ("saudi") by ordering rather than backtracking.
func alternation(set map[string]bool) string {
	words := make([]string, 0, len(set))
	for w := range set {
		words = append(words, regexp.QuoteMeta(w))
	}
	sort.Slice(words, func(i, j int) bool {
		if len(words[i]) != len(words[j]) {
			return len(words[i]) > len(words[j])
		}
		return words[i] < words[j]
	})
	return strings.Join(words, "|")
}
