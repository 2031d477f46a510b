package controllers

import (
	"net/http"
	"strings"

	"github.com/quotewise/rfq-backend/api/responses"
	"github.com/quotewise/rfq-backend/internal/matcher"
	pkgerrors "github.com/quotewise/rfq-backend/pkg/errors"
	"github.com/quotewise/rfq-backend/pkg/logger"
)

const (
	defaultSearchThreshold = 60
	defaultSearchLimit     = 5
	maxSearchLimit         = 25
)

// ProductSearch scores catalog products against comma-separated keywords.
func ProductSearch(svc matcher.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		keywords := splitKeywords(r.URL.Query().Get("keywords"))
		if len(keywords) == 0 {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "at least one keyword is required"))
			return
		}

		threshold := queryInt(r, "threshold", defaultSearchThreshold)
		if threshold < 0 || threshold > 100 {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "threshold must be within [0,100]"))
			return
		}
		limit := queryInt(r, "limit", defaultSearchLimit)
		if limit < 1 || limit > maxSearchLimit {
			limit = defaultSearchLimit
		}
		category := strings.TrimSpace(r.URL.Query().Get("category"))

		matches, err := svc.Search(ctx, keywords, category, threshold, limit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"matches":   matches,
			"threshold": threshold,
		})
	}
}

func splitKeywords(raw string) []string {
	var keywords []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		keywords = append(keywords, part)
	}
	return keywords
}
