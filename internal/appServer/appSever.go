// launching the server, postgres, redis, kafka
package appServer

import (
	"context"
	"crypto/tls"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/saulloallves/central-tickets-94-sub006/config"
	"github.com/saulloallves/central-tickets-94-sub006/internal/audit"
	repository "github.com/saulloallves/central-tickets-94-sub006/internal/database/postgres"
	redisdb "github.com/saulloallves/central-tickets-94-sub006/internal/database/redis"
	"github.com/saulloallves/central-tickets-94-sub006/internal/dedup"
	"github.com/saulloallves/central-tickets-94-sub006/internal/dispatcher"
	"github.com/saulloallves/central-tickets-94-sub006/internal/service"
	"github.com/saulloallves/central-tickets-94-sub006/internal/stream"
	"github.com/saulloallves/central-tickets-94-sub006/internal/transport"
	"github.com/saulloallves/central-tickets-94-sub006/pkg/postgres"
	"github.com/saulloallves/central-tickets-94-sub006/pkg/redis"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.Idle_timeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags),
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func NewServer(cfg *config.Config) {

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewPostgresDB(&cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := postgres.RunMigrations(db); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	// Repositories
	notificationRepo := repository.NewNotificationRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	ticketRepo := repository.NewTicketRepository(db)

	recorder := audit.NewRecorder(auditRepo)

	// Optional last-known-good membership copy, read only when postgres fails.
	var teamCache redisdb.TeamMemberCache
	if cfg.Redis.Host != "" {
		redisClient := redis.NewRedisClient(&cfg.Redis)
		defer redisClient.Close()
		teamCache = redisdb.NewTeamMemberCache(redisClient, cfg.Notifications.TeamCacheTTL)
	} else {
		logrus.Warn("Redis not configured, team membership cache disabled")
	}

	// Channel dispatchers
	httpClient := &http.Client{Timeout: 15 * time.Second}
	pushSender := dispatcher.NewPushSender(&cfg.Push, httpClient)
	whatsappClient := dispatcher.NewWhatsAppClient(&cfg.WhatsApp, httpClient)

	// Notification event stream (best-effort)
	publisher := stream.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer publisher.Close()

	// Dedup: process-local cache in front of the durable audit-log markers
	checker := dedup.NewChecker(dedup.NewMemoryCache(), recorder, cfg.Dedup.TTL, nil)

	// Services
	notificationService := service.NewNotificationService(
		notificationRepo, teamRepo, teamCache, pushSender, whatsappClient,
		publisher, recorder, cfg.WhatsApp.AlertGroup)
	webhookService := service.NewWebhookService(
		checker, notificationService, whatsappClient, recorder, cfg.Notifications.SupportEquipeID)
	ticketService := service.NewTicketService(
		ticketRepo, notificationService, whatsappClient, recorder, "https://"+cfg.Server.Host)

	handler := transport.InitRoutes(
		transport.NewNotificationHandler(notificationService),
		transport.NewWebhookHandler(webhookService),
		transport.NewTicketHandler(ticketService),
		transport.NewAuditHandler(recorder),
	)

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, handler); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}
