package http

import (
	"net/http"

	"github.com/atinyakov/RecipeShare/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Route is one entry of the API's access table.
type Route struct {
	Method  string
	Pattern string
	Policy  middleware.Policy
	Handler http.HandlerFunc
}

// Routes returns every API route, relative to /api, with the access
// policy it is served under. Each request is checked against exactly one
// entry.
func Routes(auth *AuthHandler, recipes *RecipeHandler, health *HealthHandler) []Route {
	return []Route{
		{http.MethodPost, "/auth/signup", middleware.Public, auth.Signup},
		{http.MethodPost, "/auth/login", middleware.Public, auth.Login},
		{http.MethodGet, "/auth/check", middleware.SoftAuth, auth.Check},
		{http.MethodPost, "/verify-token", middleware.RequireAuth, auth.VerifyToken},
		{http.MethodPost, "/logout", middleware.Public, auth.Logout},
		{http.MethodGet, "/health", middleware.Public, health.Health},

		{http.MethodPost, "/recipes", middleware.RequireAuth, recipes.Create},
		{http.MethodPost, "/recipes/", middleware.RequireAuth, recipes.Create},
		{http.MethodGet, "/recipes/get", middleware.Public, recipes.List},
		{http.MethodGet, "/recipes/{id}", middleware.Public, recipes.Get},
		{http.MethodPut, "/recipes/{id}", middleware.RequireOwner, recipes.Update},
		{http.MethodDelete, "/recipes/{id}", middleware.RequireOwner, recipes.Delete},
		{http.MethodGet, "/my-recipes", middleware.RequireAuth, recipes.Mine},
	}
}

// RouterOptions carries the cross-cutting settings of NewRouter.
type RouterOptions struct {
	// AllowedOrigins is passed to the CORS middleware.
	AllowedOrigins []string
	// Logger receives request logs.
	Logger *zap.Logger
}

// NewRouter constructs the HTTP handler serving the recipe API under /api
// and Prometheus metrics under /metrics.
//
// Middleware chain (applied in order):
//  1. RequestID, RealIP, Recoverer      - chi defaults
//  2. Metrics                           - request counters and latencies
//  3. WithRequestLogging(logger)        - logs every request
//  4. CORS(origins)                     - browser access for the SPA
//  5. RequireJSON on /api
//  6. gate.Require(policy)              - per route, from Routes
func NewRouter(routes []Route, gate *middleware.Gate, opts RouterOptions) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.NotFound(middleware.NotFound)
	r.MethodNotAllowed(middleware.MethodNotAllowed)

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.Metrics())
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(middleware.CORS(opts.AllowedOrigins))

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		// Only allow request bodies with Content-Type: application/json
		r.Use(middleware.RequireJSON)

		for _, rt := range routes {
			r.With(gate.Require(rt.Policy)).Method(rt.Method, rt.Pattern, rt.Handler)
		}
	})

	return r
}
