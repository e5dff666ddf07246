package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"slot-reservation/internal/handler/api"
	"slot-reservation/internal/handler/middleware"
	"slot-reservation/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

// Handlers bundles everything the router mounts.
type Handlers struct {
	Resources    *api.ResourceHandlers
	Reservations *api.ReservationHandler
	Favorites    *api.FavoriteHandler
	Places       *api.PlaceHandler
	Auth         *middleware.AuthMiddleware
	Logging      *middleware.RequestLogger
	// Metrics is nil when METRICS_ENABLED=false.
	Metrics http.Handler
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers) {
	setupMiddleware(engine, cfg, h.Logging)
	setupRoutes(engine, cfg, h)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logging *middleware.RequestLogger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logging.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, cfg config.Config, h Handlers) {
	engine.GET("/health", healthCheck)

	if h.Metrics != nil {
		engine.GET(cfg.Metrics.Path, gin.WrapH(h.Metrics))
	}

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	requireAuth := h.Auth.RequireAuth()

	apiGroup := engine.Group("/api")
	{
		mountResources(apiGroup, "parking-spots", h.Resources.Parking, requireAuth)
		mountResources(apiGroup, "ev-stations", h.Resources.EV, requireAuth)

		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/places/:id", Handler: h.Places.Resolve},
			{Method: http.MethodGet, Path: "/my-reservations", Handler: h.Reservations.ListMine, Mw: []gin.HandlerFunc{requireAuth}},
		})

		reservations := apiGroup.Group("/reservations")
		reservations.Use(requireAuth)
		{
			addRoutes(reservations, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Reservations.Create},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Reservations.Get},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Reservations.Cancel},
			})
		}

		favorites := apiGroup.Group("/favorites")
		favorites.Use(requireAuth)
		{
			addRoutes(favorites, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Favorites.List},
				{Method: http.MethodDelete, Path: "", Handler: h.Favorites.Clear},
				{Method: http.MethodPost, Path: "/:id", Handler: h.Favorites.Add},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Favorites.Remove},
			})
		}
	}
}

// mountResources registers the catalog routes of one namespace; reads are
// public, writes need an owner.
func mountResources(g *gin.RouterGroup, kind string, rh *api.ResourceHandler, requireAuth gin.HandlerFunc) {
	auth := []gin.HandlerFunc{requireAuth}

	group := g.Group("/" + kind)
	addRoutes(group, []route{
		{Method: http.MethodGet, Path: "", Handler: rh.List},
		{Method: http.MethodGet, Path: "/:id", Handler: rh.Get},
		{Method: http.MethodGet, Path: "/:id/availability", Handler: rh.Availability},
		{Method: http.MethodGet, Path: "/:id/slots/:index", Handler: rh.SlotState},
		{Method: http.MethodPost, Path: "", Handler: rh.Create, Mw: auth},
		{Method: http.MethodPut, Path: "/:id", Handler: rh.Update, Mw: auth},
		{Method: http.MethodDelete, Path: "/:id", Handler: rh.Delete, Mw: auth},
	})
	addRoutes(g, []route{
		{Method: http.MethodGet, Path: "/my-" + kind, Handler: rh.ListMine, Mw: auth},
	})
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
