package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/moovely/greener/internal/api/middleware"
	"github.com/moovely/greener/internal/breakeven"
	"github.com/moovely/greener/internal/compare"
	"github.com/moovely/greener/internal/config"
	"github.com/moovely/greener/internal/logger"
	"github.com/moovely/greener/internal/persona"
	"github.com/moovely/greener/internal/ranking"
)

// Version is reported by the info endpoint
const Version = "0.3.0"

// Dependencies are the shared, read-only components behind the handlers.
// Personas may be nil, which disables the session endpoints.
type Dependencies struct {
	Locations   *config.LocationTable
	Engine      *compare.Engine
	Solver      *breakeven.Solver
	Ranker      *ranking.Ranker
	Personas    persona.Store
	Logger      *logger.Logger
	Env         string
	CORSOrigins []string
}

// Handler serves the comparison API
type Handler struct {
	deps      Dependencies
	startTime time.Time
}

// NewHandler fills in defaults for missing engine components
func NewHandler(deps Dependencies) *Handler {
	if deps.Engine == nil {
		deps.Engine = compare.NewEngine(nil)
	}
	if deps.Solver == nil {
		deps.Solver = breakeven.NewDefaultSolver(deps.Engine)
	}
	if deps.Ranker == nil {
		deps.Ranker = ranking.NewRanker(deps.Engine)
	}
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}
	return &Handler{deps: deps, startTime: time.Now()}
}

// NewRouter builds the gin engine with middleware and every route
func NewRouter(deps Dependencies) *gin.Engine {
	h := NewHandler(deps)

	if h.deps.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// RequestID -> Logger -> Recovery -> CORS
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(h.deps.Logger))
	router.Use(middleware.Recovery(h.deps.Logger))
	if len(h.deps.CORSOrigins) > 0 {
		router.Use(middleware.CORS(h.deps.CORSOrigins))
	}

	router.GET("/health", h.Health)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/info", h.Info)
		v1.GET("/locations", h.ListLocations)
		v1.GET("/locations/:id", h.GetLocation)
		v1.GET("/tax", h.Tax)
		v1.GET("/compare/:slug", h.CompareSlug)
		v1.POST("/compare", h.Compare)
		v1.POST("/required-salary", h.RequiredSalary)
		v1.GET("/rank/:home", h.Rank)
		v1.GET("/personas", h.ListPersonas)

		sessions := v1.Group("/sessions")
		{
			sessions.POST("", h.CreateSession)
			sessions.PUT("/:id/persona", h.SavePersona)
			sessions.GET("/:id/persona", h.GetPersona)
			sessions.DELETE("/:id/persona", h.ClearPersona)
		}
	}

	return router
}
