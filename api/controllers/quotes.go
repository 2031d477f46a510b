package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/quotewise/rfq-backend/api/responses"
	"github.com/quotewise/rfq-backend/api/validators"
	"github.com/quotewise/rfq-backend/internal/pipeline"
	"github.com/quotewise/rfq-backend/pkg/db/models"
	pkgerrors "github.com/quotewise/rfq-backend/pkg/errors"
	"github.com/quotewise/rfq-backend/pkg/logger"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type processQuoteRequest struct {
	RFPText        string `json:"rfp_text" validate:"required,min=1"`
	CustomerName   string `json:"customer_name" validate:"required,min=1,max=200"`
	FuzzyThreshold int    `json:"fuzzy_threshold" validate:"gte=0,lte=100"`
	MaxMatches     int    `json:"max_matches" validate:"gte=0,lte=20"`
}

// QuoteRepository is the persistence surface the read endpoints need.
type QuoteRepository interface {
	GetByQuoteNumber(ctx context.Context, quoteNumber string) (*models.Quotation, error)
	List(ctx context.Context, limit, offset int) ([]models.Quotation, error)
}

// ProcessQuote runs the full RFP pipeline and returns the result envelope.
// An empty extraction maps to 422; per-requirement trouble arrives as
// warnings inside a successful response.
func ProcessQuote(svc pipeline.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req processQuoteRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result := svc.ProcessRFP(ctx, pipeline.ProcessInput{
			RFPText:        req.RFPText,
			CustomerName:   req.CustomerName,
			FuzzyThreshold: req.FuzzyThreshold,
			MaxMatches:     req.MaxMatches,
		})

		if !result.Success {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeExtraction, result.Error))
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// QuoteDetail fetches one stored quotation by quote number.
func QuoteDetail(repo QuoteRepository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		quoteNumber := chi.URLParam(r, "quoteNumber")
		if quoteNumber == "" {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "quote number is required"))
			return
		}

		record, err := repo.GetByQuoteNumber(ctx, quoteNumber)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				responses.WriteError(ctx, logg, w,
					pkgerrors.New(pkgerrors.CodeNotFound, "quotation not found"))
				return
			}
			responses.WriteError(ctx, logg, w,
				pkgerrors.Wrap(pkgerrors.CodeInternal, err, "fetching quotation"))
			return
		}

		responses.WriteSuccess(w, record)
	}
}

// QuoteList returns stored quotations newest first with limit/offset paging.
func QuoteList(repo QuoteRepository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		limit := queryInt(r, "limit", defaultListLimit)
		if limit < 1 || limit > maxListLimit {
			limit = defaultListLimit
		}
		offset := queryInt(r, "offset", 0)
		if offset < 0 {
			offset = 0
		}

		records, err := repo.List(ctx, limit, offset)
		if err != nil {
			responses.WriteError(ctx, logg, w,
				pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing quotations"))
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"quotations": records,
			"limit":      limit,
			"offset":     offset,
		})
	}
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
