package routes

import (
	"net/http"

	"github.com/bluehands/branchfinder/internal/api/handlers"
	"github.com/bluehands/branchfinder/internal/api/middleware"
	"github.com/bluehands/branchfinder/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	branchHandler *handlers.BranchHandler
	healthHandler *handlers.HealthHandler

	allowedOrigins []string
	metrics        *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	branchHandler *handlers.BranchHandler,
	healthHandler *handlers.HealthHandler,
	allowedOrigins []string,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:            http.NewServeMux(),
		branchHandler:  branchHandler,
		healthHandler:  healthHandler,
		allowedOrigins: allowedOrigins,
		metrics:        metrics,
	}
}

// SetupRoutes registers every route and wraps the mux in middleware
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /health", r.healthHandler.Health)

	r.mux.HandleFunc("GET /api/capabilities", r.branchHandler.ListCapabilities)
	r.mux.HandleFunc("GET /api/regions", r.branchHandler.ListRegions)
	r.mux.HandleFunc("GET /api/branches/search", r.branchHandler.SearchBranches)
	r.mux.HandleFunc("GET /api/branches/export", r.branchHandler.ExportBranches)

	// innermost first
	// recovery writes its 500 through the gzip and logging writers
	var handler http.Handler = r.mux
	handler = middleware.RecoveryMiddleware(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.ResponseOptimization(handler)
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}
