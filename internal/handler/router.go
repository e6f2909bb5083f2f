package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"workshop-booking/internal/handler/api"
	"workshop-booking/internal/handler/middleware"
	"workshop-booking/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	logger *slog.Logger,
	healthHandler *api.HealthHandler,
	bookingHandler *api.BookingHandler,
	eventsHandler *api.EventsHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, healthHandler, bookingHandler, eventsHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	engine.Use(middleware.CustomRecovery(logger))
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(logger, cfg.Log))
	engine.Use(middleware.ErrorHandler(logger))
}

func setupRoutes(
	engine *gin.Engine,
	healthHandler *api.HealthHandler,
	bookingHandler *api.BookingHandler,
	eventsHandler *api.EventsHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthHandler.Check)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodGet, Path: "", Handler: bookingHandler.List},
				{Method: http.MethodPost, Path: "/sync", Handler: bookingHandler.Sync},
				{Method: http.MethodPost, Path: "/local", Handler: bookingHandler.TrackLocal},
				{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.Get},
				{Method: http.MethodDelete, Path: "/:id", Handler: bookingHandler.Untrack},
				{Method: http.MethodPost, Path: "/:id/track", Handler: bookingHandler.Track},
				{Method: http.MethodPost, Path: "/:id/transitions", Handler: bookingHandler.Transition},
				{Method: http.MethodPost, Path: "/:id/response", Handler: bookingHandler.Respond},
				{Method: http.MethodPost, Path: "/:id/arrival-confirmation", Handler: bookingHandler.ConfirmArrival},
			})
		}

		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/events", Handler: eventsHandler.Stream, Mw: []gin.HandlerFunc{authMiddleware.OptionalAuth()}},
		})
	}
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		handlers := append(append([]gin.HandlerFunc{}, r.Mw...), r.Handler)
		g.Handle(r.Method, r.Path, handlers...)
	}
}
