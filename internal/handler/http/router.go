package http

import (
	"log/slog"

	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	Logger         *slog.Logger
	LogLevel       slog.Level
	AllowedOrigins []string
}

type Handlers struct {
	Auth       AuthHandler
	Attendance AttendanceHandler
	Report     ReportHandler
	Directory  DirectoryHandler
	Request    RequestHandler
}

func NewRouter(opts RouterOptions, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	allowedOrigins := opts.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Get("/me", h.Auth.Me)

			r.Route("/attendance", func(r chi.Router) {
				r.With(middleware.RequireAdmin).Get("/", h.Attendance.List)
				r.With(middleware.RequirePermission(user.PermissionAttendanceViewOwn)).Get("/today", h.Attendance.Today)
				r.With(middleware.RequirePermission(user.PermissionAttendanceViewOwn)).Get("/my", h.Attendance.GetMyAttendance)
				r.With(middleware.RequirePermission(user.PermissionAttendanceViewTeam)).Get("/team", h.Attendance.GetTeamAttendance)
				r.With(middleware.RequirePermission(user.PermissionAttendanceExport)).Get("/export", h.Report.ExportAttendance)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceClock))
					r.Post("/clock-in", h.Attendance.ClockIn)
					r.Post("/clock-out", h.Attendance.ClockOut)
				})
			})

			// Supervisor and admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionDirectoryViewTeam))
				r.Get("/team", h.Directory.GetTeam)
				r.Get("/users/{id}", h.Directory.GetUser)
			})

			r.Route("/requests", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionRequestCreate)).Post("/", h.Request.Create)
				r.With(middleware.RequirePermission(user.PermissionRequestViewOwn)).Get("/my", h.Request.GetMyRequests)
				r.With(middleware.RequirePermission(user.PermissionRequestReview)).Get("/managed", h.Request.GetManagedRequests)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Request.Get)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionRequestReview))
						r.Post("/approve", h.Request.Approve)
						r.Post("/reject", h.Request.Reject)
					})
				})
			})
		})
	})
	return r
}
