package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/quotewise/rfq-backend/internal/pipeline"
	"github.com/quotewise/rfq-backend/pkg/db/models"
	"github.com/quotewise/rfq-backend/pkg/logger"
)

type stubPipeline struct {
	result *pipeline.Result
	input  pipeline.ProcessInput
}

func (s *stubPipeline) ProcessRFP(_ context.Context, input pipeline.ProcessInput) *pipeline.Result {
	s.input = input
	return s.result
}

type stubQuoteRepo struct {
	record  *models.Quotation
	records []models.Quotation
	err     error
	limit   int
	offset  int
}

func (s *stubQuoteRepo) GetByQuoteNumber(context.Context, string) (*models.Quotation, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.record, nil
}

func (s *stubQuoteRepo) List(_ context.Context, limit, offset int) ([]models.Quotation, error) {
	s.limit, s.offset = limit, offset
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

func testControllerLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "controllers-test", Output: io.Discard})
}

func TestProcessQuoteSuccess(t *testing.T) {
	stub := &stubPipeline{result: &pipeline.Result{
		Success: true,
		Summary: pipeline.Summary{RequirementCount: 1, MatchedCount: 1, QuoteNumber: "Q-1"},
	}}

	body := `{"rfp_text":"45 units of cordless drills","customer_name":"Acme","fuzzy_threshold":70,"max_matches":3}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes/process", strings.NewReader(body))
	rec := httptest.NewRecorder()
	ProcessQuote(stub, testControllerLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if stub.input.FuzzyThreshold != 70 || stub.input.MaxMatches != 3 {
		t.Fatalf("tunables not forwarded: %+v", stub.input)
	}

	var envelope struct {
		Data pipeline.Result `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Summary.QuoteNumber != "Q-1" {
		t.Fatalf("unexpected summary: %+v", envelope.Data.Summary)
	}
}

func TestProcessQuoteEmptyExtractionMaps422(t *testing.T) {
	stub := &stubPipeline{result: &pipeline.Result{
		Success: false,
		Error:   "no requirements could be extracted from the provided text",
	}}

	body := `{"rfp_text":"@@@","customer_name":"Acme"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes/process", strings.NewReader(body))
	rec := httptest.NewRecorder()
	ProcessQuote(stub, testControllerLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "EXTRACTION_EMPTY") {
		t.Fatalf("expected extraction error code, got %s", rec.Body.String())
	}
}

func TestProcessQuoteRejectsBadBodies(t *testing.T) {
	for name, body := range map[string]string{
		"missing rfp_text":   `{"customer_name":"Acme"}`,
		"missing customer":   `{"rfp_text":"45 units of drills"}`,
		"threshold too high": `{"rfp_text":"x y z text","customer_name":"Acme","fuzzy_threshold":150}`,
		"unknown field":      `{"rfp_text":"x y z text","customer_name":"Acme","surprise":true}`,
		"not json":           `plain text`,
	} {
		t.Run(name, func(t *testing.T) {
			stub := &stubPipeline{result: &pipeline.Result{Success: true}}
			req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes/process", strings.NewReader(body))
			rec := httptest.NewRecorder()
			ProcessQuote(stub, testControllerLogger()).ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func quoteDetailRequest(quoteNumber string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/quotes/"+quoteNumber, nil)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("quoteNumber", quoteNumber)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestQuoteDetail(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo := &stubQuoteRepo{record: &models.Quotation{QuoteNumber: "Q-1", CustomerName: "Acme"}}
		rec := httptest.NewRecorder()
		QuoteDetail(repo, testControllerLogger()).ServeHTTP(rec, quoteDetailRequest("Q-1"))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Acme") {
			t.Fatalf("expected record in body, got %s", rec.Body.String())
		}
	})

	t.Run("not found", func(t *testing.T) {
		repo := &stubQuoteRepo{err: gorm.ErrRecordNotFound}
		rec := httptest.NewRecorder()
		QuoteDetail(repo, testControllerLogger()).ServeHTTP(rec, quoteDetailRequest("Q-MISSING"))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := &stubQuoteRepo{err: errors.New("connection reset")}
		rec := httptest.NewRecorder()
		QuoteDetail(repo, testControllerLogger()).ServeHTTP(rec, quoteDetailRequest("Q-1"))
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})
}

func TestQuoteListClampsPaging(t *testing.T) {
	repo := &stubQuoteRepo{records: []models.Quotation{{QuoteNumber: "Q-1"}}}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/quotes?limit=9999&offset=-5", nil)
	rec := httptest.NewRecorder()
	QuoteList(repo, testControllerLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if repo.limit != defaultListLimit || repo.offset != 0 {
		t.Fatalf("expected clamped paging, got limit=%d offset=%d", repo.limit, repo.offset)
	}
}
