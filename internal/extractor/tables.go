package extractor

import "regexp"

// Tables carries the static lookup data the extractor consults. Constructed
// once at startup and passed by reference so tests can substitute fixtures.
type Tables struct {
	Stopwords        map[string]struct{}
	Synonyms         map[string][]string
	CategoryKeywords map[string][]string
	SpecPatterns     []SpecPattern
	HighPriority     []string
	LowPriority      []string
}

// SpecPattern extracts one technical attribute from a requirement line. The
// first match per key wins; WithUnit keeps the matched unit in the value.
type SpecPattern struct {
	Key      string
	Pattern  *regexp.Regexp
	WithUnit bool
}

// DefaultTables returns the production lookup tables.
func DefaultTables() Tables {
	return Tables{
		Stopwords:        defaultStopwords(),
		Synonyms:         defaultSynonyms(),
		CategoryKeywords: defaultCategoryKeywords(),
		SpecPatterns:     defaultSpecPatterns(),
		HighPriority:     []string{"critical", "urgent", "required", "mandatory", "asap", "immediately"},
		LowPriority:      []string{"optional", "preferred", "nice to have", "if available", "if possible"},
	}
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "of", "for", "and", "or", "to", "in", "on", "at",
		"with", "by", "from", "as", "is", "are", "be", "we", "our", "this",
		"that", "these", "those", "need", "needs", "needed", "require",
		"requires", "required", "requirement", "order", "ordering", "supply",
		"provide", "please", "units", "unit", "pcs", "pieces", "each", "item",
		"items", "quantity", "qty", "per", "must", "should", "will", "all",
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func defaultSynonyms() map[string][]string {
	return map[string][]string{
		"led":     {"lamp", "lighting"},
		"light":   {"lamp", "luminaire"},
		"drill":   {"driver", "borer"},
		"cable":   {"wire", "cord"},
		"helmet":  {"hardhat"},
		"gloves":  {"mittens"},
		"cleaner": {"detergent", "solvent"},
		"pump":    {"compressor"},
		"screw":   {"fastener", "bolt"},
		"paint":   {"coating"},
		"pipe":    {"tube", "conduit"},
		"sensor":  {"detector"},
	}
}

func defaultCategoryKeywords() map[string][]string {
	return map[string][]string{
		"Lighting":    {"led", "light", "lamp", "fixture", "bulb", "luminaire", "floodlight"},
		"Tools":       {"drill", "saw", "hammer", "wrench", "screwdriver", "grinder", "tool", "cordless"},
		"Electrical":  {"cable", "wire", "breaker", "switch", "socket", "voltage", "transformer", "fuse"},
		"Safety":      {"helmet", "gloves", "goggles", "vest", "harness", "respirator", "earmuff", "safety"},
		"Plumbing":    {"pipe", "valve", "fitting", "pump", "hose", "coupling", "faucet"},
		"Fasteners":   {"screw", "bolt", "nut", "washer", "anchor", "rivet", "fastener"},
		"Cleaning":    {"cleaner", "detergent", "mop", "wipe", "disinfectant", "soap", "degreaser"},
		"HVAC":        {"fan", "filter", "duct", "thermostat", "compressor", "ventilation", "hvac"},
		"Paint":       {"paint", "primer", "coating", "varnish", "brush", "roller", "sealant"},
		"Electronics": {"sensor", "controller", "relay", "display", "battery", "charger", "plc"},
	}
}

func defaultSpecPatterns() []SpecPattern {
	return []SpecPattern{
		{Key: "ip_rating", Pattern: regexp.MustCompile(`(?i)\bip\s*(\d{2})\b`)},
		{Key: "voltage", Pattern: regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(?:volts?|v)\b`)},
		{Key: "current", Pattern: regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(?:amps?|amperes?)\b`)},
		{Key: "power", Pattern: regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(?:watts?|kw|w)\b`)},
		{Key: "frequency", Pattern: regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(?:hz|khz|mhz)\b`)},
		{Key: "length", Pattern: regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(mm|cm|meters?|metres?|m|ft|feet|inch(?:es)?)\b`), WithUnit: true},
		{Key: "weight", Pattern: regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(kg|kilograms?|grams?|g|lbs?|pounds?)\b`), WithUnit: true},
		{Key: "temperature", Pattern: regexp.MustCompile(`(?i)\b(-?\d+(?:\.\d+)?)\s*(?:°\s*c|celsius|deg(?:rees)?\s*c)\b`)},
	}
}
