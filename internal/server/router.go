package server

import (
	"net/http"

	"github.com/cloo-solutions/veriflow/internal/api"
	"github.com/cloo-solutions/veriflow/internal/api/handlers"
	"github.com/cloo-solutions/veriflow/internal/api/middleware"
	"github.com/go-chi/chi/v5"
)

type RouterConfig struct {
	IngestHandler     *handlers.IngestHandler
	GenerationHandler *handlers.GenerationHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Uploads carry whole PDFs, so the body cap is generous.
	const maxBodyBytes int64 = 64 * 1024 * 1024

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/build-knowledge-base", cfg.IngestHandler.BuildKnowledgeBase)
	r.Post("/generate-test-cases", cfg.GenerationHandler.GenerateTestCases)
	r.Post("/generate-selenium-script", cfg.GenerationHandler.GenerateSeleniumScript)

	return r
}
