package quotation

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/quotewise/rfq-backend/pkg/enums"
)

var hundred = decimal.NewFromInt(100)

const formatRule = "================================================================"

// FormatText renders the quotation as a plain-text report. The rendering is
// derived purely from the assembled quotation and can be regenerated
// idempotently.
func FormatText(q Quotation) string {
	var b strings.Builder

	b.WriteString(formatRule + "\n")
	b.WriteString("QUOTATION " + q.QuoteNumber + "\n")
	b.WriteString(formatRule + "\n")
	fmt.Fprintf(&b, "Customer:  %s\n", q.CustomerName)
	fmt.Fprintf(&b, "Date:      %s\n", q.CreatedAt.UTC().Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "Items:     %d\n", q.Statistics.TotalItems)
	b.WriteString("\n")

	for _, item := range q.Items {
		fmt.Fprintf(&b, "Line %d: %s\n", item.LineNumber, item.Requirement.Description)
		fmt.Fprintf(&b, "  Product:      %s (%s)\n", item.Match.Name, item.Match.SKU)
		fmt.Fprintf(&b, "  Brand:        %s\n", orDash(item.Match.Brand))
		fmt.Fprintf(&b, "  Category:     %s\n", item.Match.Category)
		fmt.Fprintf(&b, "  Availability: %s\n", item.Match.Availability)
		fmt.Fprintf(&b, "  Match score:  %.1f [%s]\n", item.Match.MatchScore, confidenceTag(item.Match.MatchScore))
		fmt.Fprintf(&b, "  Quantity:     %d\n", item.Requirement.Quantity)
		fmt.Fprintf(&b, "  Unit price:   %s\n", item.Pricing.UnitPrice.StringFixed(2))
		fmt.Fprintf(&b, "  Line total:   %s\n", item.Pricing.TotalPrice.StringFixed(2))
		b.WriteString("\n")
	}

	b.WriteString("----------------------------------------------------------------\n")
	fmt.Fprintf(&b, "Subtotal:   %s\n", q.Subtotal.StringFixed(2))
	fmt.Fprintf(&b, "Tax (%s%%):  %s\n", q.TaxRate.Mul(hundred).StringFixed(1), q.TaxAmount.StringFixed(2))
	fmt.Fprintf(&b, "Total:      %s\n", q.TotalAmount.StringFixed(2))
	b.WriteString("\n")

	if q.Statistics.UnmatchedCount > 0 {
		fmt.Fprintf(&b, "Unmatched requirements: %d\n", q.Statistics.UnmatchedCount)
	}
	if q.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", q.Notes)
	}

	b.WriteString("\n")
	b.WriteString("Legend: match confidence high >= 80, medium 60-79, low < 60\n")
	b.WriteString(formatRule + "\n")
	return b.String()
}

func confidenceTag(score float64) string {
	return string(enums.ConfidenceForScore(score))
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
