// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// compression, CORS, security headers, idempotency, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"path"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	_ "github.com/tbourn/warri-apartment-hunt/docs"
	"github.com/tbourn/warri-apartment-hunt/internal/config"
	"github.com/tbourn/warri-apartment-hunt/internal/domain"
	"github.com/tbourn/warri-apartment-hunt/internal/http/handlers"
	"github.com/tbourn/warri-apartment-hunt/internal/http/middleware"
	"github.com/tbourn/warri-apartment-hunt/internal/repo"
	"github.com/tbourn/warri-apartment-hunt/internal/services"
	"github.com/tbourn/warri-apartment-hunt/internal/session"
)

// Deps are the runtime dependencies of the API. DB is nil with the memory
// driver, which disables idempotency records.
type Deps struct {
	DB          *gorm.DB
	Collections *repo.Collections
	Sessions    *session.Registry
}

// idemStore persists idempotency records through the repo package.
type idemStore struct {
	db  *gorm.DB
	ttl time.Duration
}

// Remember stores the record a keyed submission created. A concurrent
// request that stored the same key first is not an error.
func (s idemStore) Remember(ctx context.Context, clientID string, coll domain.Collection, key, recordID string, status int) error {
	_, err := repo.CreateIdempotency(ctx, s.db, clientID, coll, key, recordID, status, s.ttl)
	if errors.Is(err, repo.ErrDuplicate) {
		return nil
	}
	return err
}

// idempotencyLookup resolves keyed POSTs on the submission routes in byRoute.
// Other routes never replay.
func idempotencyLookup(db *gorm.DB, byRoute map[string]domain.Collection) middleware.IdempotencyLookup {
	return func(ctx context.Context, clientID, route, key string, now time.Time) (string, bool, error) {
		coll, tracked := byRoute[route]
		if !tracked {
			return "", false, nil
		}
		rec, err := repo.GetIdempotency(ctx, db, clientID, coll, key, now)
		if errors.Is(err, repo.ErrNotFound) {
			return "", false, nil
		}
		if err != nil {
			return "", false, err
		}
		return rec.RecordID, true, nil
	}
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine and mounts the API under cfg.APIBasePath.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Gzip (never on /metrics)
//  8. Idempotency validator (before rate limiter to allow bypass on replay)
//  9. Rate limiter (per session/IP, bypass on replay)
//  10. CORS and Security headers
func RegisterRoutes(r *gin.Engine, deps Deps, cfg config.Config) {
	r.HandleMethodNotAllowed = true
	apiBase := cfg.APIBasePath // e.g. "/api/v1"

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{"X-API-Key"},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit
	r.Use(limitBody(cfg.MaxBodyBytes))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{
		DisableCompression: true,
	})))

	// 7) Response compression
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	// 8) Idempotency validation (before rate limiting)
	var (
		lookup middleware.IdempotencyLookup
		store  handlers.IdempotencyStore
	)
	if deps.DB != nil {
		lookup = idempotencyLookup(deps.DB, map[string]domain.Collection{
			path.Join(apiBase, "/applications"):    domain.Applications,
			path.Join(apiBase, "/inspections"):     domain.Inspections,
			path.Join(apiBase, "/support-tickets"): domain.SupportTickets,
		})
		store = idemStore{db: deps.DB, ttl: cfg.IdempotencyTTL}
	}
	r.Use(middleware.IdempotencyValidator(middleware.IdempotencyOptions{MaxLen: 200}, lookup))

	// 9) Token-bucket rate limiter per session/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyBySessionOrIP())
	r.Use(rl.Handler())

	// 10) CORS posture (safe defaults: allow all if none configured)
	allowHeaders := []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderSessionID, middleware.HeaderIdempotencyKey}
	exposeHeaders := []string{"X-Request-ID", "Content-Length", "Idempotent-Replayed", "Retry-After"}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     allowHeaders,
			ExposeHeaders:    exposeHeaders,
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     allowHeaders,
			ExposeHeaders:    exposeHeaders,
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS).
	// Session state is per client and must not be cached by proxies.
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:      cfg.Security.EnableHSTS,
		HSTSMaxAge:      cfg.Security.HSTSMaxAge,
		NoStorePrefixes: []string{path.Join(apiBase, "/session")},
		EnablePolicy:    true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) {
		body := gin.H{"status": "ok", "sessions": deps.Sessions.Len()}
		if deps.DB != nil {
			n, last, err := repo.CollectionsStats(c.Request.Context(), deps.DB)
			if err != nil {
				handlers.Fail(c, http.StatusServiceUnavailable, handlers.ErrCodeUnavailable, "database unavailable")
				return
			}
			body["collections"] = n
			if last != nil {
				body["last_write"] = last.UTC().Format(time.RFC3339)
			}
		}
		c.JSON(http.StatusOK, body)
	})

	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← collections
	h := handlers.New(
		deps.Sessions,
		services.NewCatalogService(deps.Collections),
		services.NewApplicationService(deps.Collections),
		services.NewInquiryService(deps.Collections),
		store,
	)

	api := groupWithPrefix(r, apiBase)
	{
		// Per-session view state
		s := api.Group("/session")
		s.GET("", h.GetSession)
		s.PATCH("/filters", h.UpdateFilters)
		s.DELETE("/filters", h.ClearFilters)
		s.PUT("/sort", h.UpdateSort)
		s.PUT("/page", h.SetPage)
		s.POST("/page/next", h.NextPage)
		s.POST("/page/prev", h.PrevPage)
		s.GET("/gallery", h.GetGallery)
		s.PUT("/gallery", h.OpenGallery)
		s.POST("/gallery/next", h.NextImage)
		s.POST("/gallery/prev", h.PrevImage)
		s.PUT("/gallery/index", h.SetImageIndex)
		s.POST("/delete", h.RequestDelete)
		s.POST("/delete/confirm", h.ConfirmDelete)
		s.DELETE("/delete", h.CancelDelete)

		// Derived data
		api.GET("/stats", h.QuickStats)

		// Listings
		l := api.Group("/listings/:kind")
		l.GET("", h.FilteredListings)
		l.POST("", h.CreateListing)
		l.GET("/page", h.PaginatedListings)
		l.GET("/price-range", h.PriceRange)
		l.GET("/bedrooms", h.BedroomCounts)
		l.GET("/locations", h.UniqueLocations)
		l.GET("/types", h.UniqueTypes)
		l.GET("/suggestions", h.SearchSuggestions)
		l.GET("/search", h.SearchListings)
		l.GET("/:id", h.GetListing)
		l.PATCH("/:id", h.UpdateListing)
		l.DELETE("/:id", h.DeleteListing)
		l.GET("/:id/applications", h.ListingApplications)

		// Agents
		api.GET("/agents", h.ListAgents)
		api.POST("/agents", h.CreateAgent)
		api.GET("/agents/:id", h.GetAgent)
		api.PATCH("/agents/:id", h.UpdateAgent)
		api.DELETE("/agents/:id", h.DeleteAgent)
		api.GET("/agents/:id/stats", h.AgentStats)
		api.GET("/agents/:id/listings", h.AgentListings)

		// Applications
		api.POST("/applications", h.SubmitApplication)
		api.GET("/applications", h.ListApplications)
		api.GET("/applications/:id", h.GetApplication)
		api.PUT("/applications/:id/status", h.SetApplicationStatus)
		api.GET("/applications/:id/print", h.PrintApplication)

		// Inspections and support
		api.POST("/inspections", h.RequestInspection)
		api.GET("/inspections", h.ListInspections)
		api.GET("/inspections/:id", h.GetInspection)
		api.PUT("/inspections/:id/status", h.SetInspectionStatus)
		api.POST("/support-tickets", h.OpenTicket)
		api.GET("/support-tickets", h.ListTickets)
		api.GET("/support-tickets/:id", h.GetTicket)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
