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
	"github.com/workforceone/fieldops-backend-go/internal/handler/http/middleware"
	"github.com/workforceone/fieldops-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	env string,
	frontendURL string,
	authHandler AuthHandler,
	siteHandler SiteHandler,
	patrolHandler PatrolHandler,
	incidentHandler IncidentHandler,
	timeclockHandler TimeclockHandler,
	reportHandler ReportHandler,
	notificationHandler NotificationHandler,
	geofenceHandler GeofenceHandler,
	uploadHandler UploadHandler,
	uploadsBasePath string,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "fieldops"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
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
	r.Use(chiMiddleware.Heartbeat("/"))

	// Uploaded incident photos are served as static files
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsBasePath)))
	r.Get("/uploads/*", func(w http.ResponseWriter, req *http.Request) {
		fileServer.ServeHTTP(w, req)
	})

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
			r.Route("/login", func(r chi.Router) {
				r.Post("/", authHandler.Login)
				r.Route("/oauth", func(r chi.Router) {
					r.Get("/google", authHandler.LoginWithGoogle)
				})
			})
			r.Route("/oauth/callback", func(r chi.Router) {
				r.Get("/google", authHandler.OAuthCallbackGoogle)
			})
		})

		// SSE stream authenticates via its own short-lived token
		r.Get("/notifications/stream", notificationHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/sites", func(r chi.Router) {
				r.Get("/", siteHandler.List)
				r.Get("/{id}", siteHandler.Get)
				r.Get("/{id}/checkpoints", siteHandler.ListCheckpoints)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/", siteHandler.Create)
					r.Put("/{id}", siteHandler.Update)
					r.Delete("/{id}", siteHandler.Delete)
					r.Post("/{id}/checkpoints", siteHandler.CreateCheckpoint)
					r.Patch("/{id}/checkpoints/{checkpointID}", siteHandler.SetCheckpointActive)
				})
			})

			r.Route("/patrols", func(r chi.Router) {
				r.Post("/", patrolHandler.Start)
				r.Get("/", patrolHandler.List)
				r.Get("/{id}", patrolHandler.Get)
				r.Post("/{id}/scans", patrolHandler.RecordScan)
				r.Post("/{id}/end", patrolHandler.End)
			})

			r.Route("/incidents", func(r chi.Router) {
				r.Post("/", incidentHandler.Create)
				r.Get("/", incidentHandler.List)
				r.Get("/{id}", incidentHandler.Get)

				// Supervisor or admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireSupervisor)
					r.Patch("/{id}/status", incidentHandler.UpdateStatus)
				})
			})

			r.Route("/timeclock", func(r chi.Router) {
				r.Post("/clock-in", timeclockHandler.ClockIn)
				r.Post("/clock-out", timeclockHandler.ClockOut)
				r.Get("/entries", timeclockHandler.List)
			})

			r.Post("/uploads", uploadHandler.UploadPhoto)

			r.Route("/geofence", func(r chi.Router) {
				r.Post("/samples", geofenceHandler.PositionSample)
				r.Get("/status", geofenceHandler.Status)
			})

			// Supervisor or admin only
			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.RequireSupervisor)
				r.Get("/attendance-summary", reportHandler.AttendanceSummary)
				r.Get("/anomalies", reportHandler.Anomalies)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.List)
				r.Get("/unread-count", notificationHandler.UnreadCount)
				r.Post("/mark-read", notificationHandler.MarkAsRead)
				r.Post("/mark-all-read", notificationHandler.MarkAllAsRead)
				r.Get("/sse-token", notificationHandler.GetSSEToken)
			})
		})
	})
	return r
}
