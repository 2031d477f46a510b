package extractor

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/quotewise/rfq-backend/pkg/enums"
	"github.com/quotewise/rfq-backend/pkg/types"
)

const (
	minLineLength    = 10
	maxBaseKeywords  = 7
	maxKeywords      = 10
	minDescLength    = 3
	dedupeOverlap    = 0.7
	fallbackPriority = enums.PriorityMedium
)

// RequirementItem is one parsed line item. Immutable once returned.
type RequirementItem struct {
	Category       string               `json:"category"`
	Description    string               `json:"description"`
	Quantity       int                  `json:"quantity"`
	Specifications types.Specifications `json:"specifications"`
	Keywords       []string             `json:"keywords"`
	Priority       enums.Priority       `json:"priority"`
}

// Extractor turns raw RFP text into an ordered list of requirements.
type Extractor struct {
	tables Tables
	rules  []rule
}

// New builds an Extractor around the provided lookup tables.
func New(tables Tables) *Extractor {
	return &Extractor{tables: tables, rules: defaultRules()}
}

var (
	thousandsRe = regexp.MustCompile(`(\d),(\d{3})\b`)
	spaceRunRe  = regexp.MustCompile(`[ \t]+`)
	wordRe      = regexp.MustCompile(`[a-z0-9]+`)
	sentenceRe  = regexp.MustCompile(`[.!?;]`)
)

// Parse extracts requirements from free text. It never fails on malformed
// input; an empty result means no pattern matched anywhere.
func (e *Extractor) Parse(text string) []RequirementItem {
	normalized := normalize(text)

	var candidates []candidate
	for _, line := range strings.Split(normalized, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < minLineLength {
			continue
		}
		for _, r := range e.rules {
			if c, ok := r.apply(line); ok {
				candidates = append(candidates, c)
				break
			}
		}
	}

	if len(candidates) == 0 {
		candidates = e.sentenceFallback(normalized)
	}

	items := make([]RequirementItem, 0, len(candidates))
	for _, c := range candidates {
		item, ok := e.finalize(c)
		if !ok {
			continue
		}
		if isDuplicate(items, item) {
			continue
		}
		items = append(items, item)
	}
	return items
}

func normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	for thousandsRe.MatchString(text) {
		text = thousandsRe.ReplaceAllString(text, "$1$2")
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = spaceRunRe.ReplaceAllString(line, " ")
	}
	return strings.Join(lines, "\n")
}

// sentenceFallback accepts any sentence carrying at least one integer and two
// non-stopword keywords, treating the first integer as quantity.
func (e *Extractor) sentenceFallback(text string) []candidate {
	flat := strings.ReplaceAll(text, "\n", " ")
	var out []candidate
	for _, sentence := range sentenceRe.Split(flat, -1) {
		sentence = strings.TrimSpace(sentence)
		if len(sentence) < minLineLength {
			continue
		}
		loc := firstIntRe.FindStringIndex(sentence)
		if loc == nil {
			continue
		}
		if e.contentWordCount(sentence) < 2 {
			continue
		}

		qty, err := strconv.Atoi(strings.ReplaceAll(sentence[loc[0]:loc[1]], ",", ""))
		if err != nil || qty <= 0 {
			continue
		}
		desc := strings.TrimSpace(unitAfterIntRe.ReplaceAllString(sentence[loc[1]:], " "))
		if len(desc) < minDescLength {
			desc = strings.TrimSpace(sentence[:loc[0]] + " " + sentence[loc[1]:])
		}
		out = append(out, candidate{quantity: qty, description: desc, line: sentence, fallback: true})
	}
	return out
}

func (e *Extractor) contentWordCount(sentence string) int {
	count := 0
	for _, token := range wordRe.FindAllString(strings.ToLower(sentence), -1) {
		if len(token) < 3 || isNumeric(token) {
			continue
		}
		if _, stop := e.tables.Stopwords[token]; stop {
			continue
		}
		count++
	}
	return count
}

func (e *Extractor) finalize(c candidate) (RequirementItem, bool) {
	if c.quantity <= 0 {
		return RequirementItem{}, false
	}
	desc := cleanDescription(c.description)
	if len(desc) < minDescLength {
		return RequirementItem{}, false
	}

	keywords := e.extractKeywords(desc)
	item := RequirementItem{
		Category:       e.inferCategory(desc, keywords),
		Description:    desc,
		Quantity:       c.quantity,
		Specifications: e.extractSpecifications(c.line),
		Keywords:       keywords,
		Priority:       e.inferPriority(c),
	}
	return item, true
}

var (
	leadingFillers = map[string]struct{}{
		"of": {}, "for": {}, "the": {}, "a": {}, "an": {}, "to": {}, "some": {},
	}
	trailingUnits = map[string]struct{}{
		"unit": {}, "units": {}, "pc": {}, "pcs": {}, "piece": {}, "pieces": {},
		"each": {}, "ea": {}, "box": {}, "boxes": {}, "set": {}, "sets": {},
	}
)

func cleanDescription(desc string) string {
	desc = strings.Trim(desc, " \t.,;:-")
	words := strings.Fields(desc)

	for len(words) > 0 {
		if _, ok := leadingFillers[strings.ToLower(words[0])]; !ok {
			break
		}
		words = words[1:]
	}
	for len(words) > 0 {
		if _, ok := trailingUnits[strings.ToLower(words[len(words)-1])]; !ok {
			break
		}
		words = words[:len(words)-1]
	}

	desc = strings.Join(words, " ")
	if desc == "" {
		return ""
	}
	runes := []rune(desc)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// extractKeywords strips stopwords, dedupes preserving order, caps the base
// set, then appends synonym expansions while room remains.
func (e *Extractor) extractKeywords(desc string) []string {
	seen := make(map[string]struct{})
	keywords := make([]string, 0, maxKeywords)
	for _, token := range wordRe.FindAllString(strings.ToLower(desc), -1) {
		if len(keywords) >= maxBaseKeywords {
			break
		}
		if len(token) < 2 || isNumeric(token) {
			continue
		}
		if _, stop := e.tables.Stopwords[token]; stop {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		keywords = append(keywords, token)
	}

	for _, kw := range keywords {
		for _, syn := range e.tables.Synonyms[kw] {
			if len(keywords) >= maxKeywords {
				return keywords
			}
			if _, dup := seen[syn]; dup {
				continue
			}
			seen[syn] = struct{}{}
			keywords = append(keywords, syn)
		}
	}
	return keywords
}

// inferCategory scores each category keyword list against the description and
// keywords: 3 points per exact keyword match, 1 per substring containment.
// Ties and zero scores land on "General".
func (e *Extractor) inferCategory(desc string, keywords []string) string {
	descLower := strings.ToLower(desc)
	tokens := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		tokens[kw] = struct{}{}
	}
	for _, token := range wordRe.FindAllString(descLower, -1) {
		tokens[token] = struct{}{}
	}

	best, bestScore, tied := "General", 0, false
	for category, catKeywords := range e.tables.CategoryKeywords {
		score := 0
		for _, catKw := range catKeywords {
			if _, exact := tokens[catKw]; exact {
				score += 3
			} else if strings.Contains(descLower, catKw) {
				score++
			}
		}
		switch {
		case score > bestScore:
			best, bestScore, tied = category, score, false
		case score == bestScore && score > 0:
			tied = true
		}
	}
	if bestScore == 0 || tied {
		return "General"
	}
	return best
}

func (e *Extractor) extractSpecifications(line string) types.Specifications {
	specs := make(types.Specifications)
	for _, sp := range e.tables.SpecPatterns {
		if _, done := specs[sp.Key]; done {
			continue
		}
		m := sp.Pattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		value := m[1]
		if sp.WithUnit && len(m) > 2 {
			value += strings.ToLower(m[2])
		}
		specs[sp.Key] = value
	}
	return specs
}

func (e *Extractor) inferPriority(c candidate) enums.Priority {
	lower := strings.ToLower(c.line)
	for _, kw := range e.tables.HighPriority {
		if strings.Contains(lower, kw) {
			return enums.PriorityHigh
		}
	}
	for _, kw := range e.tables.LowPriority {
		if strings.Contains(lower, kw) {
			return enums.PriorityLow
		}
	}
	if c.fallback {
		return fallbackPriority
	}
	return enums.PriorityHigh
}

// isDuplicate drops a candidate whose description words overlap an accepted
// item by more than 70%, normalized by the smaller set.
func isDuplicate(accepted []RequirementItem, item RequirementItem) bool {
	words := wordSet(item.Description)
	for _, prev := range accepted {
		if overlapRatio(words, wordSet(prev.Description)) > dedupeOverlap {
			return true
		}
	}
	return false
}

func wordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, token := range wordRe.FindAllString(strings.ToLower(text), -1) {
		set[token] = struct{}{}
	}
	return set
}

func overlapRatio(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	smaller := a
	if len(b) < len(a) {
		smaller = b
	}
	common := 0
	for token := range a {
		if _, ok := b[token]; ok {
			common++
		}
	}
	return float64(common) / float64(len(smaller))
}

func isNumeric(token string) bool {
	for _, r := range token {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
