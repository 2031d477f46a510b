package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/quotewise/rfq-backend/internal/extractor"
	"github.com/quotewise/rfq-backend/internal/matcher"
	"github.com/quotewise/rfq-backend/internal/pricing"
	"github.com/quotewise/rfq-backend/internal/quotation"
	"github.com/quotewise/rfq-backend/pkg/db/models"
	pkgerrors "github.com/quotewise/rfq-backend/pkg/errors"
	"github.com/quotewise/rfq-backend/pkg/logger"
	"github.com/quotewise/rfq-backend/pkg/metrics"
)

const (
	DefaultFuzzyThreshold = 60
	DefaultMaxMatches     = 5
)

// ProcessInput carries one RFP processing request.
type ProcessInput struct {
	RFPText        string `json:"rfp_text"`
	CustomerName   string `json:"customer_name"`
	FuzzyThreshold int    `json:"fuzzy_threshold"`
	MaxMatches     int    `json:"max_matches"`
}

// Summary condenses the run for callers that do not need the full payload.
type Summary struct {
	RequirementCount int    `json:"requirement_count"`
	MatchedCount     int    `json:"matched_count"`
	UnmatchedCount   int    `json:"unmatched_count"`
	QuoteNumber      string `json:"quote_number,omitempty"`
	TotalAmount      string `json:"total_amount,omitempty"`
}

// Result is the invocation surface output. On empty extraction Success is
// false, Error is populated and every collection is empty; that is the sole
// pipeline-level failure mode.
type Result struct {
	Success       bool                        `json:"success"`
	Requirements  []extractor.RequirementItem `json:"requirements"`
	Matches       [][]matcher.ProductMatch    `json:"matches"`
	Pricing       []pricing.Breakdown         `json:"pricing"`
	Quotation     *quotation.Quotation        `json:"quotation,omitempty"`
	QuotationText string                      `json:"quotation_text,omitempty"`
	Summary       Summary                     `json:"summary"`
	Warnings      []string                    `json:"warnings,omitempty"`
	Error         string                      `json:"error,omitempty"`
}

type requirementParser interface {
	Parse(text string) []extractor.RequirementItem
}

type productMatcher interface {
	Search(ctx context.Context, keywords []string, categoryFilter string, threshold, limit int) ([]matcher.ProductMatch, error)
}

type quotationStore interface {
	Create(ctx context.Context, record *models.Quotation) error
}

type duplicateChecker interface {
	FirstSubmission(ctx context.Context, rfpHash string) (bool, error)
}

// Service runs the four-stage pipeline end to end.
type Service interface {
	ProcessRFP(ctx context.Context, input ProcessInput) *Result
}

type service struct {
	parser    requirementParser
	matcher   productMatcher
	calc      *pricing.Calculator
	assembler *quotation.Assembler
	store     quotationStore
	guard     duplicateChecker
	logg      *logger.Logger
	metrics   *metrics.PipelineMetrics
}

// NewService wires the pipeline. Store, guard and metrics are optional;
// passing nil disables persistence, duplicate detection and instrumentation
// respectively.
func NewService(
	parser requirementParser,
	productMatcher productMatcher,
	calc *pricing.Calculator,
	assembler *quotation.Assembler,
	store quotationStore,
	guard duplicateChecker,
	logg *logger.Logger,
	pipelineMetrics *metrics.PipelineMetrics,
) (Service, error) {
	if parser == nil {
		return nil, fmt.Errorf("requirement parser required")
	}
	if productMatcher == nil {
		return nil, fmt.Errorf("product matcher required")
	}
	if calc == nil {
		return nil, fmt.Errorf("pricing calculator required")
	}
	if assembler == nil {
		return nil, fmt.Errorf("quotation assembler required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		parser:    parser,
		matcher:   productMatcher,
		calc:      calc,
		assembler: assembler,
		store:     store,
		guard:     guard,
		logg:      logg,
		metrics:   pipelineMetrics,
	}, nil
}

// ProcessRFP executes extraction, matching, pricing and assembly
// sequentially. Per-requirement failures become warnings, never aborts; the
// loop stops early when the context deadline hits, which is safe because
// requirements share no state.
func (s *service) ProcessRFP(ctx context.Context, input ProcessInput) *Result {
	threshold := input.FuzzyThreshold
	if threshold <= 0 {
		threshold = DefaultFuzzyThreshold
	}
	maxMatches := input.MaxMatches
	if maxMatches <= 0 {
		maxMatches = DefaultMaxMatches
	}

	ctx = s.logg.WithCustomer(ctx, input.CustomerName)
	var warnings error

	start := time.Now()
	requirements := s.parser.Parse(input.RFPText)
	s.metrics.ObserveStage("extraction", time.Since(start))

	if len(requirements) == 0 {
		s.metrics.IncProcessed("empty_extraction")
		s.logg.Warn(s.logg.WithStage(ctx, "extraction"), "no requirements extracted")
		return &Result{
			Success:      false,
			Requirements: []extractor.RequirementItem{},
			Matches:      [][]matcher.ProductMatch{},
			Pricing:      []pricing.Breakdown{},
			Error:        pkgerrors.New(pkgerrors.CodeExtraction, "no requirements could be extracted from the provided text").Message(),
		}
	}
	s.logg.Info(s.logg.WithField(ctx, "requirements", len(requirements)), "extraction completed")

	matches := make([][]matcher.ProductMatch, len(requirements))
	prices := make([]pricing.Breakdown, len(requirements))
	matched := 0

	matchStart := time.Now()
	for i, req := range requirements {
		if ctx.Err() != nil {
			warnings = multierr.Append(warnings,
				fmt.Errorf("deadline reached after %d of %d requirements", i, len(requirements)))
			break
		}

		candidates, err := s.matcher.Search(ctx, req.Keywords, "", threshold, maxMatches)
		if err != nil {
			warnings = multierr.Append(warnings,
				fmt.Errorf("matching %q: %w", req.Description, err))
			s.logg.Error(s.logg.WithStage(ctx, "matching"), "catalog search failed", err)
			candidates = nil
		}
		matches[i] = candidates

		if len(candidates) == 0 {
			s.metrics.IncUnmatched()
			s.logg.Warn(s.logg.WithField(ctx, "requirement", req.Description), "no catalog match")
			continue
		}

		matched++
		best := candidates[0]
		s.metrics.ObserveMatchScore(best.MatchScore)
		prices[i] = s.calc.Price(
			decimal.NewFromFloat(best.EstimatedPrice),
			req.Quantity,
			best.Category,
			best.Brand,
			req.Priority,
		)
	}
	s.metrics.ObserveStage("matching", time.Since(matchStart))

	assembleStart := time.Now()
	q := s.assembler.Assemble(requirements, matches, prices, input.CustomerName, input.RFPText)
	text := quotation.FormatText(q)
	s.metrics.ObserveStage("assembly", time.Since(assembleStart))

	ctx = s.logg.WithQuoteNumber(ctx, q.QuoteNumber)

	if s.guard != nil {
		first, err := s.guard.FirstSubmission(ctx, q.RFPHash)
		if err != nil {
			warnings = multierr.Append(warnings, fmt.Errorf("duplicate check: %w", err))
			s.logg.Warn(ctx, "duplicate submission check unavailable")
		} else if !first {
			warnings = multierr.Append(warnings,
				fmt.Errorf("duplicate submission: this RFP text was already quoted recently"))
		}
	}

	if s.store != nil {
		if err := s.store.Create(ctx, quotation.ToModel(q)); err != nil {
			warnings = multierr.Append(warnings, fmt.Errorf("persisting quotation: %w", err))
			s.logg.Error(ctx, "quotation persistence failed", err)
		}
	}

	s.metrics.IncProcessed("success")
	s.logg.Info(ctx, "quotation assembled")

	return &Result{
		Success:       true,
		Requirements:  requirements,
		Matches:       matches,
		Pricing:       prices,
		Quotation:     &q,
		QuotationText: text,
		Summary: Summary{
			RequirementCount: len(requirements),
			MatchedCount:     matched,
			UnmatchedCount:   q.Statistics.UnmatchedCount,
			QuoteNumber:      q.QuoteNumber,
			TotalAmount:      q.TotalAmount.StringFixed(2),
		},
		Warnings: warningStrings(warnings),
	}
}

func warningStrings(err error) []string {
	errs := multierr.Errors(err)
	if len(errs) == 0 {
		return nil
	}
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Error())
	}
	return out
}
