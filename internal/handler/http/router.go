package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/oidpl/workforce-backend-go/internal/handler/http/middleware"
	"github.com/oidpl/workforce-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth         AuthHandler
	Employee     EmployeeHandler
	Tracking     TrackingHandler
	Leave        LeaveHandler
	Notification NotificationHandler
	Payslip      PayslipHandler
	Holiday      HolidayHandler
}

func NewRouter(jwtService jwt.Service, h Handlers, allowedOrigins []string, uploadsDir string) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "workforce-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	// Stored files (profile images) served directly
	if uploadsDir != "" {
		fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir)))
		r.Get("/uploads/*", fileServer.ServeHTTP)
	}

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
		})

		// SSE stream authenticates with its own short-lived query token
		r.Get("/events", h.Notification.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Post("/auth/change-password", h.Auth.ChangePassword)
			r.Get("/events/token", h.Notification.SSEToken)

			r.Route("/me", func(r chi.Router) {
				r.Get("/", h.Employee.Me)
				r.Put("/", h.Employee.UpdateProfile)
				r.Post("/profile-image", h.Employee.UploadProfileImage)
				r.Post("/push-token", h.Employee.RegisterPushToken)
			})

			r.Route("/tracking", func(r chi.Router) {
				r.Get("/status", h.Tracking.Status)
				r.Post("/enable", h.Tracking.EnableSharing)
				r.Post("/disable", h.Tracking.DisableSharing)
				r.Post("/location", h.Tracking.ReportLocation)
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", h.Leave.Apply)
				r.Get("/my", h.Leave.ListMine)
				r.Get("/balance", h.Leave.MyBalance)
				r.Get("/{id}", h.Leave.Get)

				// Approvals come from managers or the admin
				r.Post("/{id}/approve", h.Leave.Approve)
				r.Post("/{id}/reject", h.Leave.Reject)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.List)
				r.Get("/unread-count", h.Notification.UnreadCount)
				r.Post("/read-all", h.Notification.MarkAllRead)
				r.Post("/{id}/read", h.Notification.MarkRead)
				r.Delete("/{id}", h.Notification.Delete)
			})

			r.Route("/payslips", func(r chi.Router) {
				r.Get("/my", h.Payslip.ListMine)
				r.Get("/{id}/download", h.Payslip.Download)
			})

			r.Get("/holidays", h.Holiday.List)

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Route("/employees", func(r chi.Router) {
					r.Get("/", h.Employee.List)
					r.Post("/", h.Employee.Create)
					r.Post("/import", h.Employee.Import)
					r.Get("/{id}", h.Employee.Get)
					r.Put("/{id}", h.Employee.Update)
					r.Delete("/{id}", h.Employee.Delete)
					r.Post("/{id}/reset-password", h.Employee.ResetPassword)
					r.Get("/{id}/day-report", h.Tracking.DayReport)
					r.Get("/{id}/leave-balance", h.Leave.EmployeeBalance)
					r.Put("/{id}/leave-balance", h.Leave.UpdateBalance)
					r.Get("/{id}/payslips", h.Payslip.ListForEmployee)
				})

				r.Get("/leaves", h.Leave.ListAll)
				r.Get("/payslips", h.Payslip.ListAll)
				r.Post("/payslips", h.Payslip.Upload)
				r.Delete("/payslips/{id}", h.Payslip.Delete)
				r.Post("/holidays", h.Holiday.Create)
				r.Delete("/holidays/{id}", h.Holiday.Delete)
			})
		})
	})

	return r
}
