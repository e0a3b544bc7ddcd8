package extractor

import (
	"regexp"
	"strings"
)

// DefaultUnit is emitted when a name carries no recognizable unit token.
const DefaultUnit = "1 piece"

// Compiled patterns shared by the cleaning components
var (
	// Multi-word packaging phrases that must win over the generic
	// number+keyword unit match
	compoundUnitPattern = regexp.MustCompile(`(?i)\b(small box|medium box|large box|small bag|medium bag|large bag|big bag|thermo box|tray pack|family pack)\b`)

	multiSpacePattern = regexp.MustCompile(`\s+`)
	nonWordPattern    = regexp.MustCompile(`[^\w]`)
)

// OriginExtractor finds a country or region token in product names
type OriginExtractor struct {
	patterns    *Patterns
	homeCountry string
}

// NewOriginExtractor creates an origin extractor. homeCountry is the
// label substituted for the "local" token.
func NewOriginExtractor(patterns *Patterns, homeCountry string) *OriginExtractor {
	return &OriginExtractor{
		patterns:    patterns,
		homeCountry: homeCountry,
	}
}

// Extract returns the title-cased origin found in name and whether one
// was present. The "local" token normalizes to the home country label.
func (e *OriginExtractor) Extract(name string) (string, bool) {
	m := e.patterns.countryPattern.FindStringSubmatch(strings.ToLower(name))
	if m == nil {
		return "", false
	}
	if m[1] == "local" {
		return e.homeCountry, true
	}
	return titleCase(m[1]), true
}

// UnitExtractor finds quantity and packaging tokens in product names
type UnitExtractor struct {
	patterns *Patterns
}

// NewUnitExtractor creates a unit extractor
func NewUnitExtractor(patterns *Patterns) *UnitExtractor {
	return &UnitExtractor{patterns: patterns}
}

// Extract returns the unit substring found in name, or DefaultUnit when
// none is present. Compound phrases are checked first so that "thermo
// box" wins over a bare "2kg" appearing later in the name.
func (e *UnitExtractor) Extract(name string) string {
	lower := strings.ToLower(name)

	if m := compoundUnitPattern.FindString(lower); m != "" {
		return strings.TrimSpace(m)
	}
	if m := e.patterns.unitPattern.FindString(lower); m != "" {
		return strings.TrimSpace(m)
	}
	return DefaultUnit
}

// NameCleaner strips origin, unit, and descriptive tokens from raw
// product names, leaving the core product name.
type NameCleaner struct {
	patterns *Patterns
}

// NewNameCleaner creates a name cleaner
func NewNameCleaner(patterns *Patterns) *NameCleaner {
	return &NameCleaner{patterns: patterns}
}

// Clean removes the supplied origin and unit plus all descriptive words
// from name. Origin and unit removal must run before descriptive
// stripping because descriptive words can be substrings of those tokens.
// When cleaning leaves fewer than two characters the original name is
// scanned for a salvageable product word instead.
func (c *NameCleaner) Clean(name, origin, unit string) string {
	cleaned := name

	// Step 1: Remove the first word-bounded occurrence of the origin
	if origin != "" {
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(origin) + `\b`)
		cleaned = removeFirst(cleaned, re)
	}

	// Step 2: Remove the first occurrence of the extracted unit
	if unit != "" && unit != DefaultUnit {
		re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(unit))
		cleaned = removeFirst(cleaned, re)
	}

	// Step 3: Strip descriptive words
	cleaned = c.patterns.descriptivePattern.ReplaceAllString(cleaned, "")

	// Step 4: Normalize whitespace
	cleaned = strings.TrimSpace(multiSpacePattern.ReplaceAllString(cleaned, " "))

	// Step 5: Salvage a word from the original when cleaning destroyed
	// the signal
	if len(cleaned) < 2 {
		return c.salvageWord(name)
	}
	return cleaned
}

// salvageWord walks the name's words from the end and returns the first
// one that is not a unit, descriptive, or country token after stripping
// non-word characters. Falls back to the trimmed original name.
func (c *NameCleaner) salvageWord(name string) string {
	words := strings.Fields(name)
	for i := len(words) - 1; i >= 0; i-- {
		w := nonWordPattern.ReplaceAllString(strings.ToLower(words[i]), "")
		if len(w) <= 2 {
			continue
		}
		if c.patterns.Units[w] || c.patterns.Descriptive[w] || c.patterns.Countries[w] {
			continue
		}
		return words[i]
	}
	return strings.TrimSpace(name)
}

// removeFirst deletes the first match of re from s
func removeFirst(s string, re *regexp.Regexp) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + s[loc[1]:]
}

// titleCase capitalizes the first letter of each space-separated word
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
