// Package rest is the in-memory stand-in for the graph and file services.
package rest

import (
	"net/http"

	"github.com/DanBrus/IB-frontend/application/ports"
	"github.com/DanBrus/IB-frontend/interfaces/http/rest/handlers"
	"github.com/DanBrus/IB-frontend/interfaces/http/rest/middleware"
	"github.com/DanBrus/IB-frontend/pkg/errors"
	"github.com/DanBrus/IB-frontend/pkg/observability"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Router creates the graph and file service routers
type Router struct {
	boards        ports.BoardRepository
	images        ports.ImageRepository
	filePublicURL string
	metrics       *observability.Collector
	errorHandler  *errors.ErrorHandler
	logger        *zap.Logger
}

// NewRouter creates a new router instance. A nil metrics collector disables
// /metrics.
func NewRouter(
	boards ports.BoardRepository,
	images ports.ImageRepository,
	filePublicURL string,
	metrics *observability.Collector,
	errorHandler *errors.ErrorHandler,
	logger *zap.Logger,
) *Router {
	return &Router{
		boards:        boards,
		images:        images,
		filePublicURL: filePublicURL,
		metrics:       metrics,
		errorHandler:  errorHandler,
		logger:        logger,
	}
}

// GraphService returns the handler for the graph service listener
func (rt *Router) GraphService() http.Handler {
	router := rt.base()

	graphHandler := handlers.NewGraphHandler(rt.boards, rt.errorHandler, rt.logger)
	router.Route("/graph", func(r chi.Router) {
		r.Get("/board", graphHandler.GetBoard)
		r.Put("/board", graphHandler.PutBoard)
		r.Get("/versions", graphHandler.ListVersions)
		r.Post("/versions", graphHandler.CreateVersion)
		r.Post("/versions/delete", graphHandler.DeleteVersion)
		r.Get("/active_version", graphHandler.ActiveVersion)
	})

	return router
}

// FileService returns the handler for the file service listener
func (rt *Router) FileService() http.Handler {
	router := rt.base()

	fileHandler := handlers.NewFileHandler(rt.images, rt.filePublicURL, rt.errorHandler, rt.logger)
	router.Post("/res", fileHandler.Upload)
	router.Get("/res/{id}", fileHandler.Get)

	return router
}

// base builds a router with the shared middleware and operational endpoints
func (rt *Router) base() chi.Router {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(rt.errorHandler.Middleware)
	router.Use(middleware.Logger(rt.logger))
	if rt.metrics != nil {
		router.Use(middleware.Metrics(rt.metrics))
	}
	router.Use(middleware.LocalCORS())

	router.Get("/health", rt.healthCheck)
	if rt.metrics != nil {
		router.Method(http.MethodGet, "/metrics", rt.metrics.Handler())
	}

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}
