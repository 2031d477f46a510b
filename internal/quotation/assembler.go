package quotation

import (
	"fmt"
	"hash/fnv"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quotewise/rfq-backend/internal/extractor"
	"github.com/quotewise/rfq-backend/internal/matcher"
	"github.com/quotewise/rfq-backend/internal/pricing"
	"github.com/quotewise/rfq-backend/pkg/enums"
)

// LineItem pairs one matched requirement with its winning product and price.
type LineItem struct {
	LineNumber  int                       `json:"line_number"`
	Requirement extractor.RequirementItem `json:"requirement"`
	Match       matcher.ProductMatch      `json:"match"`
	Pricing     pricing.Breakdown         `json:"pricing"`
}

// Statistics summarizes an assembled quotation.
type Statistics struct {
	TotalItems        int      `json:"total_items"`
	HighConfidence    int      `json:"high_confidence"`
	MediumConfidence  int      `json:"medium_confidence"`
	LowConfidence     int      `json:"low_confidence"`
	UnmatchedCount    int      `json:"unmatched_count"`
	CategoriesCovered []string `json:"categories_covered"`
	BrandsIncluded    []string `json:"brands_included"`
	MaxLeadTimeDays   int      `json:"max_lead_time_days"`
}

// Quotation is the terminal aggregate of one RFP processing run. Immutable
// after assembly.
type Quotation struct {
	QuoteNumber  string          `json:"quote_number"`
	CustomerName string          `json:"customer_name"`
	RFPHash      string          `json:"rfp_hash"`
	CreatedAt    time.Time       `json:"created_at"`
	Items        []LineItem      `json:"items"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	TaxAmount    decimal.Decimal `json:"tax_amount"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Statistics   Statistics      `json:"statistics"`
	Notes        string          `json:"notes"`
}

// Assembler combines extraction, matching and pricing output into a
// quotation.
type Assembler struct {
	taxRate decimal.Decimal
	now     func() time.Time
}

// NewAssembler builds an assembler applying the given tax rate, e.g. 0.08.
func NewAssembler(taxRate decimal.Decimal) *Assembler {
	return &Assembler{taxRate: taxRate, now: time.Now}
}

// RFPHash returns the deterministic FNV-1a digest of the source text, used
// for the quote number suffix and duplicate-submission detection.
func RFPHash(text string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(text))
	return fmt.Sprintf("%016x", h.Sum64())
}

// Assemble emits one line item per requirement that has at least one match,
// using the best-scoring candidate. The i-th entries of matches and prices
// belong to the i-th requirement; prices for unmatched requirements are
// ignored.
func (a *Assembler) Assemble(
	requirements []extractor.RequirementItem,
	matches [][]matcher.ProductMatch,
	prices []pricing.Breakdown,
	customerName string,
	rfpText string,
) Quotation {
	createdAt := a.now()
	hash := RFPHash(rfpText)

	q := Quotation{
		QuoteNumber:  quoteNumber(createdAt, hash),
		CustomerName: customerName,
		RFPHash:      hash,
		CreatedAt:    createdAt,
		TaxRate:      a.taxRate,
		Subtotal:     decimal.Zero,
		TaxAmount:    decimal.Zero,
		TotalAmount:  decimal.Zero,
	}

	categories := map[string]struct{}{}
	brands := map[string]struct{}{}

	lineNumber := 0
	for i, req := range requirements {
		if i >= len(matches) || len(matches[i]) == 0 {
			q.Statistics.UnmatchedCount++
			continue
		}
		best := matches[i][0]
		for _, m := range matches[i][1:] {
			if m.MatchScore > best.MatchScore {
				best = m
			}
		}

		var breakdown pricing.Breakdown
		if i < len(prices) {
			breakdown = prices[i].Rounded()
		}

		lineNumber++
		q.Items = append(q.Items, LineItem{
			LineNumber:  lineNumber,
			Requirement: req,
			Match:       best,
			Pricing:     breakdown,
		})

		q.Subtotal = q.Subtotal.Add(breakdown.TotalPrice)

		switch enums.ConfidenceForScore(best.MatchScore) {
		case enums.ConfidenceHigh:
			q.Statistics.HighConfidence++
		case enums.ConfidenceMedium:
			q.Statistics.MediumConfidence++
		default:
			q.Statistics.LowConfidence++
		}

		categories[best.Category] = struct{}{}
		if best.Brand != "" {
			brands[best.Brand] = struct{}{}
		}
		if best.LeadTimeDays > q.Statistics.MaxLeadTimeDays {
			q.Statistics.MaxLeadTimeDays = best.LeadTimeDays
		}
	}

	q.Statistics.TotalItems = len(q.Items)
	q.Statistics.CategoriesCovered = sortedKeys(categories)
	q.Statistics.BrandsIncluded = sortedKeys(brands)

	q.Subtotal = q.Subtotal.Round(2)
	q.TaxAmount = q.Subtotal.Mul(a.taxRate).Round(2)
	q.TotalAmount = q.Subtotal.Add(q.TaxAmount)

	q.Notes = a.buildNotes(q)
	return q
}

func quoteNumber(ts time.Time, hash string) string {
	suffix := hash
	if len(suffix) > 4 {
		suffix = suffix[len(suffix)-4:]
	}
	return fmt.Sprintf("Q-%s-%s", ts.UTC().Format("20060102150405"), suffix)
}

// buildNotes applies the advisory annotation heuristics. Notes never fail
// validation; they only flag follow-ups for the sales desk.
func (a *Assembler) buildNotes(q Quotation) string {
	var notes []string

	stats := q.Statistics
	if stats.TotalItems > 0 && stats.HighConfidence == stats.TotalItems {
		notes = append(notes, "All line items matched with high confidence.")
	}
	if stats.LowConfidence > 0 {
		notes = append(notes, fmt.Sprintf("%d line item(s) matched with low confidence; manual review recommended.", stats.LowConfidence))
	}

	outOfStock := 0
	lowStock := 0
	for _, item := range q.Items {
		switch item.Match.Availability {
		case enums.AvailabilityOutOfStock:
			outOfStock++
		case enums.AvailabilityLowStock:
			lowStock++
		}
	}
	if outOfStock > 0 {
		notes = append(notes, fmt.Sprintf("%d quoted product(s) are currently out of stock; lead times may shift.", outOfStock))
	}
	if lowStock > 0 {
		notes = append(notes, fmt.Sprintf("%d quoted product(s) are low on stock.", lowStock))
	}
	if stats.UnmatchedCount > 0 {
		notes = append(notes, fmt.Sprintf("%d requirement(s) could not be matched to catalog products.", stats.UnmatchedCount))
	}
	if stats.MaxLeadTimeDays > 14 {
		notes = append(notes, fmt.Sprintf("Longest lead time is %d days.", stats.MaxLeadTimeDays))
	}

	if len(notes) == 0 {
		return "Quotation generated without advisories."
	}

	out := notes[0]
	for _, n := range notes[1:] {
		out += " " + n
	}
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
