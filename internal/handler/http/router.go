package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shiftdesk/shiftdesk-backend-go/internal/handler/http/middleware"
	"github.com/shiftdesk/shiftdesk-backend-go/internal/pkg/jwt"
)

type RouterConfig struct {
	CORSOrigin string
	Env        string
	LogLevel   slog.Level
}

func NewRouter(
	cfg RouterConfig,
	jwtService jwt.Service,
	sessionHandler WorkSessionHandler,
	presenceHandler PresenceHandler,
	scheduleHandler ScheduleHandler,
	eventsHandler EventsHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "shiftdesk"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// SSE endpoint authenticates via the stream token query param,
		// not the Authorization header.
		r.Get("/events", eventsHandler.Stream)

		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/sessions", func(r chi.Router) {
				r.Post("/clock-in", sessionHandler.ClockIn)
				r.Post("/clock-out", sessionHandler.ClockOut)
				r.Post("/break/start", sessionHandler.StartBreak)
				r.Post("/break/end", sessionHandler.EndBreak)
				r.Get("/my/current", sessionHandler.GetCurrent)
				r.Get("/{id}/timeline", sessionHandler.GetTimeline)
				r.Get("/{id}/summary", sessionHandler.GetSummary)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/", sessionHandler.List)
					r.Patch("/{id}", sessionHandler.Update)
					r.Post("/{id}/force-close", sessionHandler.ForceClose)
				})
			})

			r.Post("/presence", presenceHandler.Signal)
			r.Get("/events/token", eventsHandler.GetStreamToken)

			// Manager only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.Route("/schedules", func(r chi.Router) {
					r.Get("/", scheduleHandler.Get)
					r.Put("/", scheduleHandler.Upsert)
				})
			})
		})
	})
	return r
}
