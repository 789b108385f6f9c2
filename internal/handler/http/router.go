package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterOptions carries the settings the router reads from configuration
type RouterOptions struct {
	Env            string
	Version        string
	AllowedOrigins []string
}

func NewRouter(opts RouterOptions, JWTService jwt.Service, timesheetHandler TimesheetHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timesheet"),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)

	allowedOrigins := opts.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Get("/jobs", timesheetHandler.ListJobs)

			r.Route("/timesheet", func(r chi.Router) {
				r.Get("/today", timesheetHandler.GetToday)

				r.Route("/days/{date}", func(r chi.Router) {
					r.Get("/", timesheetHandler.GetDay)
					r.Put("/config", timesheetHandler.SaveDayConfig)

					r.Route("/activities", func(r chi.Router) {
						r.Post("/", timesheetHandler.CreateActivity)
						r.Post("/validate", timesheetHandler.ValidateNewActivity)
						r.Put("/{index}", timesheetHandler.UpdateActivity)
						r.Delete("/{index}", timesheetHandler.DeleteActivity)
						r.Post("/{index}/validate", timesheetHandler.ValidateActivity)
					})
				})
			})
		})
	})

	return r
}
