package app

import (
	"grants-backend/internal/config"
	"grants-backend/internal/health"
	analyticshandlers "grants-backend/internal/interfaces/handlers/analytics"
	grantshandlers "grants-backend/internal/interfaces/handlers/grants"
	"grants-backend/internal/middleware"
	"grants-backend/internal/tracker"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CreateApp builds the Fiber app with global middleware and route
// registration. The store handle is injected; rdb may be nil, which disables
// the health traffic counters.
func CreateApp(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
	})

	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())
	if rdb != nil {
		app.Use(middleware.HealthMarker(rdb))
	}

	healthHandlers := &health.Handlers{Rdb: rdb, DB: db}
	app.Get("/health/json", healthHandlers.JSON)
	app.Get("/health/reset", healthHandlers.Reset)

	service := &tracker.Service{DB: db}

	gh := &grantshandlers.Handlers{Service: service}
	grantsGroup := app.Group("/api/v1/grants")
	grantsGroup.Post("/identify", gh.Identify)
	grantsGroup.Get("/get-grant/:id", gh.GetGrant)
	grantsGroup.Get("/list-grants", gh.ListGrants)
	grantsGroup.Post("/apply/:id", gh.Apply)
	grantsGroup.Post("/submit/:id", gh.Submit)
	grantsGroup.Post("/award/:id", gh.Award)
	grantsGroup.Post("/reject/:id", gh.Reject)
	grantsGroup.Post("/start-reporting/:id", gh.StartReporting)
	grantsGroup.Post("/close/:id", gh.Close)
	grantsGroup.Post("/add-note/:id", gh.AddNote)
	grantsGroup.Get("/get-notes/:id", gh.GetNotes)
	grantsGroup.Get("/get-submissions/:id", gh.GetSubmissions)

	ah := &analyticshandlers.Handlers{Service: service}
	analyticsGroup := app.Group("/api/v1/analytics")
	analyticsGroup.Get("/pipeline", ah.Pipeline)
	analyticsGroup.Get("/reporting-calendar", ah.ReportingCalendar)
	analyticsGroup.Get("/success-rate", ah.SuccessRate)
	analyticsGroup.Get("/upcoming-deadlines", ah.UpcomingDeadlines)
	analyticsGroup.Get("/funding-by-type", ah.FundingByType)

	return app
}
