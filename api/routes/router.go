package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/quotewise/rfq-backend/api/controllers"
	"github.com/quotewise/rfq-backend/api/middleware"
	"github.com/quotewise/rfq-backend/internal/matcher"
	"github.com/quotewise/rfq-backend/internal/pipeline"
	"github.com/quotewise/rfq-backend/pkg/config"
	"github.com/quotewise/rfq-backend/pkg/db"
	"github.com/quotewise/rfq-backend/pkg/logger"
	pkgredis "github.com/quotewise/rfq-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	database db.Pinger,
	redisClient pkgredis.Pinger,
	pipelineService pipeline.Service,
	matcherService matcher.Service,
	quoteRepo controllers.QuoteRepository,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, database, redisClient))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/quotes", func(r chi.Router) {
			r.Post("/process", controllers.ProcessQuote(pipelineService, logg))
			r.Get("/", controllers.QuoteList(quoteRepo, logg))
			r.Get("/{quoteNumber}", controllers.QuoteDetail(quoteRepo, logg))
		})
		r.Get("/products/search", controllers.ProductSearch(matcherService, logg))
	})

	return r
}
