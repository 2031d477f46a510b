package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/quotewise/rfq-backend/internal/matcher"
	pkgerrors "github.com/quotewise/rfq-backend/pkg/errors"
)

type stubMatcher struct {
	matches   []matcher.ProductMatch
	err       error
	keywords  []string
	category  string
	threshold int
	limit     int
}

func (s *stubMatcher) Search(_ context.Context, keywords []string, category string, threshold, limit int) ([]matcher.ProductMatch, error) {
	s.keywords, s.category, s.threshold, s.limit = keywords, category, threshold, limit
	return s.matches, s.err
}

func TestProductSearch(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		stub := &stubMatcher{matches: []matcher.ProductMatch{{Name: "Cordless Drill 18V", MatchScore: 92}}}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products/search?keywords=Cordless,%20Drill&threshold=70&limit=3&category=Tools", nil)
		rec := httptest.NewRecorder()
		ProductSearch(stub, testControllerLogger()).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if len(stub.keywords) != 2 || stub.keywords[0] != "cordless" || stub.keywords[1] != "drill" {
			t.Fatalf("keywords not normalized: %v", stub.keywords)
		}
		if stub.threshold != 70 || stub.limit != 3 || stub.category != "Tools" {
			t.Fatalf("query params not forwarded: threshold=%d limit=%d category=%q",
				stub.threshold, stub.limit, stub.category)
		}
		if !strings.Contains(rec.Body.String(), "Cordless Drill 18V") {
			t.Fatalf("expected match in body, got %s", rec.Body.String())
		}
	})

	t.Run("missing keywords", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products/search", nil)
		rec := httptest.NewRecorder()
		ProductSearch(&stubMatcher{}, testControllerLogger()).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("threshold out of range", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products/search?keywords=drill&threshold=120", nil)
		rec := httptest.NewRecorder()
		ProductSearch(&stubMatcher{}, testControllerLogger()).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("catalog unavailable", func(t *testing.T) {
		stub := &stubMatcher{err: pkgerrors.New(pkgerrors.CodeDependency, "catalog search failed")}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products/search?keywords=drill", nil)
		rec := httptest.NewRecorder()
		ProductSearch(stub, testControllerLogger()).ServeHTTP(rec, req)
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", rec.Code)
		}
	})
}
