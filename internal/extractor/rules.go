package extractor

import (
	"regexp"
	"strconv"
	"strings"
)

// candidate is the raw (quantity, description) pair a rule pulls out of one
// line before post-processing.
type candidate struct {
	quantity    int
	description string
	line        string
	fallback    bool
}

// rule is one pure line extraction strategy. Rules run in a fixed priority
// order and the first success wins for the line.
type rule struct {
	name  string
	apply func(line string) (candidate, bool)
}

var (
	quantityFirstRe    = regexp.MustCompile(`(?i)^\s*(\d[\d,]*)\s+(?:units?|pcs?|pieces?|boxes?|sets?|x)\s+(?:of\s+)?(.{3,})$`)
	descriptionFirstRe = regexp.MustCompile(`(?i)^\s*(.{3,}?)\s*[:\-]\s*(\d[\d,]*)\s*(?:units?|pcs?|pieces?|boxes?|sets?)?\s*\.?\s*$`)
	actionVerbRe       = regexp.MustCompile(`(?i)\b(?:require[sd]?|need(?:s|ed)?|order(?:s|ing)?|request(?:s|ing)?|supply(?:ing)?|provide|purchase)\s+(\d[\d,]*)\s+(?:(?:units?|pcs?|pieces?)\s+(?:of\s+)?)?(.{3,})$`)
	listMarkerRe       = regexp.MustCompile(`^\s*(?:\d+[.)]|[-*•])\s+(.+)$`)
	firstIntRe         = regexp.MustCompile(`(\d[\d,]*)`)
	unitAfterIntRe     = regexp.MustCompile(`(?i)^\s*(?:units?|pcs?|pieces?|x)\s+(?:of\s+)?`)
)

func defaultRules() []rule {
	return []rule{
		{name: "quantity_first", apply: applyQuantityFirst},
		{name: "description_first", apply: applyDescriptionFirst},
		{name: "action_verb", apply: applyActionVerb},
		{name: "list_marker", apply: applyListMarker},
	}
}

func applyQuantityFirst(line string) (candidate, bool) {
	m := quantityFirstRe.FindStringSubmatch(line)
	if m == nil {
		return candidate{}, false
	}
	return buildCandidate(m[1], m[2], line)
}

func applyDescriptionFirst(line string) (candidate, bool) {
	m := descriptionFirstRe.FindStringSubmatch(line)
	if m == nil {
		return candidate{}, false
	}
	return buildCandidate(m[2], m[1], line)
}

func applyActionVerb(line string) (candidate, bool) {
	m := actionVerbRe.FindStringSubmatch(line)
	if m == nil {
		return candidate{}, false
	}
	return buildCandidate(m[1], m[2], line)
}

// applyListMarker strips the bullet or number marker, then treats the first
// integer in the remainder as quantity and the rest as description.
func applyListMarker(line string) (candidate, bool) {
	m := listMarkerRe.FindStringSubmatch(line)
	if m == nil {
		return candidate{}, false
	}
	rest := m[1]

	loc := firstIntRe.FindStringIndex(rest)
	if loc == nil {
		return candidate{}, false
	}
	qty := rest[loc[0]:loc[1]]
	desc := strings.TrimSpace(rest[:loc[0]] + " " + unitAfterIntRe.ReplaceAllString(rest[loc[1]:], " "))
	return buildCandidate(qty, desc, line)
}

func buildCandidate(rawQty, desc, line string) (candidate, bool) {
	qty, err := strconv.Atoi(strings.ReplaceAll(rawQty, ",", ""))
	if err != nil || qty <= 0 {
		return candidate{}, false
	}
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return candidate{}, false
	}
	return candidate{quantity: qty, description: desc, line: line}, true
}
