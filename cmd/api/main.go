package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/workforceone/fieldops-backend-go/internal/config"
	appHTTP "github.com/workforceone/fieldops-backend-go/internal/handler/http"
	"github.com/workforceone/fieldops-backend-go/internal/pkg/cron"
	"github.com/workforceone/fieldops-backend-go/internal/pkg/database"
	"github.com/workforceone/fieldops-backend-go/internal/pkg/email"
	"github.com/workforceone/fieldops-backend-go/internal/pkg/jwt"
	"github.com/workforceone/fieldops-backend-go/internal/pkg/oauth"
	"github.com/workforceone/fieldops-backend-go/internal/pkg/sse"
	"github.com/workforceone/fieldops-backend-go/internal/pkg/storage"
	"github.com/workforceone/fieldops-backend-go/internal/repository/postgresql"
	authService "github.com/workforceone/fieldops-backend-go/internal/service/auth"
	geofenceService "github.com/workforceone/fieldops-backend-go/internal/service/geofence"
	incidentService "github.com/workforceone/fieldops-backend-go/internal/service/incident"
	notificationService "github.com/workforceone/fieldops-backend-go/internal/service/notification"
	patrolService "github.com/workforceone/fieldops-backend-go/internal/service/patrol"
	reportService "github.com/workforceone/fieldops-backend-go/internal/service/report"
	siteService "github.com/workforceone/fieldops-backend-go/internal/service/site"
	timeclockService "github.com/workforceone/fieldops-backend-go/internal/service/timeclock"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	// Repositories
	userRepo := postgresql.NewUserRepository(db)
	organizationRepo := postgresql.NewOrganizationRepository(db)
	jwtRepo := postgresql.NewJWTRepository(db)
	siteRepo := postgresql.NewSiteRepository(db)
	checkpointRepo := postgresql.NewCheckpointRepository(db)
	patrolRepo := postgresql.NewPatrolRepository(db)
	patrolLogRepo := postgresql.NewPatrolLogRepository(db)
	incidentRepo := postgresql.NewIncidentRepository(db)
	timeEntryRepo := postgresql.NewTimeEntryRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	// Shared infrastructure
	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleSvc := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	hub := sse.NewHub()

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	emailSvc, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	// Services
	notificationSvc := notificationService.NewNotificationService(notificationRepo, hub, notificationService.Config{})
	geofenceSvc := geofenceService.NewGeofenceService(cfg.Geofence.AlertCooldown, hub, notificationSvc, userRepo)
	authSvc := authService.NewAuthService(db, userRepo, organizationRepo, jwtSvc, jwtRepo)
	siteSvc := siteService.NewSiteService(siteRepo, checkpointRepo)
	patrolSvc := patrolService.NewPatrolService(patrolRepo, patrolLogRepo, siteRepo, checkpointRepo)
	incidentSvc := incidentService.NewIncidentService(incidentRepo, userRepo, organizationRepo, notificationSvc, emailSvc, cfg.App.FrontendURL)
	timeclockSvc := timeclockService.NewTimeclockService(timeEntryRepo, siteRepo, geofenceSvc)
	reportSvc := reportService.NewReportService(timeEntryRepo, userRepo)

	// Handlers
	authHandler := appHTTP.NewAuthHandler(jwtSvc, authSvc, googleSvc, cfg.App.FrontendURL)
	siteHandler := appHTTP.NewSiteHandler(siteSvc)
	patrolHandler := appHTTP.NewPatrolHandler(patrolSvc)
	incidentHandler := appHTTP.NewIncidentHandler(incidentSvc)
	timeclockHandler := appHTTP.NewTimeclockHandler(timeclockSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)
	notificationHandler := appHTTP.NewNotificationHandler(notificationSvc, jwtSvc, hub)
	geofenceHandler := appHTTP.NewGeofenceHandler(geofenceSvc)
	uploadHandler := appHTTP.NewUploadHandler(fileStorage)

	router := appHTTP.NewRouter(
		jwtSvc,
		cfg.App.Env,
		cfg.App.FrontendURL,
		authHandler,
		siteHandler,
		patrolHandler,
		incidentHandler,
		timeclockHandler,
		reportHandler,
		notificationHandler,
		geofenceHandler,
		uploadHandler,
		cfg.Storage.BasePath,
	)

	// Background sweeps
	patrolJobs := cron.NewPatrolJobs(patrolRepo, cfg.Patrol.AbandonAfter)
	notificationJobs := cron.NewNotificationJobs(notificationRepo, 90*24*time.Hour)

	scheduler := cron.NewScheduler()
	scheduler.AddJob("close-abandoned-patrols", 15*time.Minute, patrolJobs.CloseAbandonedPatrols)
	scheduler.AddJob("sweep-old-notifications", 24*time.Hour, notificationJobs.SweepOldNotifications)
	scheduler.Start()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error:", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	fmt.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Println("Server shutdown error:", err)
	}

	scheduler.Stop()
	notificationSvc.Stop()
}
