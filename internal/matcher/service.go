package matcher

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/adrg/strutil"
	strmetrics "github.com/adrg/strutil/metrics"
	"github.com/google/uuid"

	"github.com/quotewise/rfq-backend/pkg/db/models"
	"github.com/quotewise/rfq-backend/pkg/enums"
	pkgerrors "github.com/quotewise/rfq-backend/pkg/errors"
)

const defaultLimit = 5

// ProductMatch is one scored catalog hit for a requirement.
type ProductMatch struct {
	ProductID        uuid.UUID          `json:"product_id"`
	SKU              string             `json:"sku"`
	Name             string             `json:"name"`
	Description      string             `json:"description"`
	Brand            string             `json:"brand"`
	Category         string             `json:"category"`
	Availability     enums.Availability `json:"availability"`
	LeadTimeDays     int                `json:"lead_time_days"`
	EstimatedPrice   float64            `json:"estimated_price"`
	MatchScore       float64            `json:"match_score"`
	MatchingKeywords []string           `json:"matching_keywords"`
	MatchReasons     []string           `json:"match_reasons"`
}

// CatalogSearcher is the catalog query contract the matcher consumes.
type CatalogSearcher interface {
	SearchAny(ctx context.Context, keywords []string, categoryFilter string, limit int) ([]models.Product, error)
}

// Service scores catalog candidates against requirement keywords.
type Service interface {
	Search(ctx context.Context, keywords []string, categoryFilter string, threshold, limit int) ([]ProductMatch, error)
}

type service struct {
	catalog CatalogSearcher
	weights ScoreWeights
	prices  PriceTable
	jaro    *strmetrics.JaroWinkler
}

// NewService builds a matcher over the provided catalog with the given
// scoring weights and price table.
func NewService(catalog CatalogSearcher, weights ScoreWeights, prices PriceTable) (Service, error) {
	if catalog == nil {
		return nil, fmt.Errorf("catalog searcher required")
	}
	return &service{
		catalog: catalog,
		weights: weights,
		prices:  prices,
		jaro:    strmetrics.NewJaroWinkler(),
	}, nil
}

// Search queries the catalog and returns candidates ordered descending by
// match score, at most limit entries. Ties keep catalog query order.
func (s *service) Search(ctx context.Context, keywords []string, categoryFilter string, threshold, limit int) ([]ProductMatch, error) {
	if len(keywords) == 0 {
		return nil, nil
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if threshold < 0 {
		threshold = 0
	} else if threshold > 100 {
		threshold = 100
	}

	products, err := s.catalog.SearchAny(ctx, keywords, categoryFilter, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "catalog search failed")
	}

	admissionFloor := float64(threshold) * 0.5

	matches := make([]ProductMatch, 0, len(products))
	for _, p := range products {
		score, matched, reasons := s.scoreProduct(p, keywords, threshold)
		if score <= 0 || score < admissionFloor {
			continue
		}
		matches = append(matches, ProductMatch{
			ProductID:        p.ID,
			SKU:              p.SKU,
			Name:             p.Name,
			Description:      p.Description,
			Brand:            p.Brand,
			Category:         p.Category,
			Availability:     p.Availability,
			LeadTimeDays:     p.LeadTimeDays,
			EstimatedPrice:   estimatePrice(s.prices, p.Name, p.Category, p.Brand),
			MatchScore:       round2(score),
			MatchingKeywords: matched,
			MatchReasons:     reasons,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchScore > matches[j].MatchScore
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// scoreProduct awards per-keyword points, averages them and scales by the
// matched-keyword coverage ratio, capped at 100, with an in-stock bonus.
func (s *service) scoreProduct(p models.Product, keywords []string, threshold int) (float64, []string, []string) {
	fields := newFieldIndex(p)

	var (
		total   float64
		matched []string
		reasons []string
	)
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		points, reason := s.scoreKeyword(fields, kw, threshold)
		if points <= 0 {
			continue
		}
		total += points
		matched = append(matched, kw)
		reasons = append(reasons, reason)
	}
	if len(matched) == 0 {
		return 0, nil, nil
	}

	count := float64(len(keywords))
	coverage := float64(len(matched)) / count
	score := (total / count) * coverage
	if score > 100 {
		score = 100
	}
	if p.Availability == enums.AvailabilityInStock {
		score *= s.weights.InStockBonus
		if score > 100 {
			score = 100
		}
	}
	return score, matched, reasons
}

func (s *service) scoreKeyword(fields fieldIndex, kw string, threshold int) (float64, string) {
	switch {
	case fields.name.has(kw):
		return s.weights.NameExact, "name match: " + kw
	case fields.sku.has(kw):
		return s.weights.SKUExact, "sku match: " + kw
	case fields.category.has(kw):
		return s.weights.CategoryExact, "category match: " + kw
	case fields.brand.has(kw):
		return s.weights.BrandExact, "brand match: " + kw
	case fields.description.has(kw):
		return s.weights.DescriptionExact, "description match: " + kw
	}

	minSim := float64(threshold) / 100
	if sim := s.bestSimilarity(kw, fields.name.tokens); sim >= minSim {
		return sim * 100 * s.weights.NameSimilarity, fmt.Sprintf("similar to name: %s (%.0f%%)", kw, sim*100)
	}
	if sim := s.bestSimilarity(kw, fields.description.tokens); sim >= minSim {
		return sim * 100 * s.weights.DescriptionSimilarity, fmt.Sprintf("similar to description: %s (%.0f%%)", kw, sim*100)
	}

	if fields.containsSubstring(kw) {
		return s.weights.Substring, "partial match: " + kw
	}
	return 0, ""
}

func (s *service) bestSimilarity(kw string, tokens []string) float64 {
	best := 0.0
	for _, token := range tokens {
		if sim := strutil.Similarity(kw, token, s.jaro); sim > best {
			best = sim
		}
	}
	return best
}

var tokenRe = regexp.MustCompile(`[a-z0-9]+`)

type tokenField struct {
	raw    string
	tokens []string
	set    map[string]struct{}
}

func newTokenField(value string) tokenField {
	raw := strings.ToLower(value)
	tokens := tokenRe.FindAllString(raw, -1)
	set := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		set[token] = struct{}{}
	}
	return tokenField{raw: raw, tokens: tokens, set: set}
}

func (f tokenField) has(kw string) bool {
	_, ok := f.set[kw]
	return ok
}

type fieldIndex struct {
	name        tokenField
	sku         tokenField
	category    tokenField
	brand       tokenField
	description tokenField
}

func newFieldIndex(p models.Product) fieldIndex {
	return fieldIndex{
		name:        newTokenField(p.Name),
		sku:         newTokenField(p.SKU),
		category:    newTokenField(p.Category),
		brand:       newTokenField(p.Brand),
		description: newTokenField(p.Description),
	}
}

func (f fieldIndex) containsSubstring(kw string) bool {
	return strings.Contains(f.name.raw, kw) ||
		strings.Contains(f.sku.raw, kw) ||
		strings.Contains(f.category.raw, kw) ||
		strings.Contains(f.brand.raw, kw) ||
		strings.Contains(f.description.raw, kw)
}
