package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"gopkg.in/gomail.v2"

	"github.com/vmlandae/reemplazos-backend/internal/calendar"
	"github.com/vmlandae/reemplazos-backend/internal/catalog"
	"github.com/vmlandae/reemplazos-backend/internal/config"
	"github.com/vmlandae/reemplazos-backend/internal/db"
	httpHandlers "github.com/vmlandae/reemplazos-backend/internal/http/handlers"
	httpRouter "github.com/vmlandae/reemplazos-backend/internal/http/router"
	"github.com/vmlandae/reemplazos-backend/internal/logger"
	"github.com/vmlandae/reemplazos-backend/internal/normalizer"
	"github.com/vmlandae/reemplazos-backend/internal/repository"
	"github.com/vmlandae/reemplazos-backend/internal/scheduler"
	"github.com/vmlandae/reemplazos-backend/internal/service"
	"github.com/vmlandae/reemplazos-backend/internal/storage"
	"github.com/vmlandae/reemplazos-backend/internal/ws"
)

func main() {
	// Contexto para el graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: error al cargar la configuración: %v", err)
	}

	logLevel := "info"
	if cfg.Env == "development" {
		logLevel = "debug"
		logger.Init(logLevel)
		logger.SetTextFormatter()
	} else {
		logger.Init(logLevel)
	}

	// Conexión a la base y migraciones.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: error al conectar con la base: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		log.Fatalf("main: error en las migraciones: %v", err)
	}

	// Catálogo de niveles, asignaturas y mapeos del formulario externo.
	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		cat, err = catalog.Load(cfg.CatalogPath)
		if err != nil {
			log.Fatalf("main: error al cargar el catálogo: %v", err)
		}
	}

	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.RefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	cvStorage, err := storage.NewCVStorage(cfg.CVStoragePath, cfg.MaxUploadSizeMB)
	if err != nil {
		log.Fatalf("main: no se pudo preparar el almacenamiento de CVs: %v", err)
	}

	// Repositorios.
	userRepo := repository.NewUserRepository(dbConn)
	tableStore := repository.NewPostgresTableStore(dbConn)

	// Servicios.
	cal := calendar.New()
	norm := normalizer.New(cat)

	authService := service.NewAuthService(userRepo, tokenManager)
	applicantService := service.NewApplicantService(tableStore, norm, cfg.ApplicantsTable, cfg.CleanApplicantsTable)
	requestService := service.NewRequestService(tableStore, cat, cal, cfg.RequestsTable, cfg.GFormTable)
	schoolService := service.NewSchoolService(tableStore, cfg.SchoolsTable)
	receiptService := service.NewReceiptService(tableStore, requestService, cfg.ReceiptsTable)
	matchingService := service.NewMatchingService(requestService, applicantService)

	// Websockets.
	hub := ws.NewHub()
	go hub.Run()

	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	notificationService := service.NewNotificationService(dialer, cfg.SMTPFrom, hub, cvStorage, tableStore, cfg.SentCVsTable)

	// Jobs periódicos: renovación del pool e importación del formulario.
	cronScheduler := scheduler.New(applicantService, requestService, schoolService, cfg.PoolRefreshSpec)
	if err := cronScheduler.Start(ctx); err != nil {
		log.Fatalf("main: no se pudo iniciar el scheduler: %v", err)
	}
	defer cronScheduler.Stop()

	// Handlers HTTP.
	authHandler := httpHandlers.NewAuthHandler(authService)
	requestHandler := httpHandlers.NewRequestHandler(requestService, schoolService, authService, notificationService)
	applicantHandler := httpHandlers.NewApplicantHandler(applicantService, cvStorage)
	matchingHandler := httpHandlers.NewMatchingHandler(matchingService, requestService)
	schoolHandler := httpHandlers.NewSchoolHandler(schoolService, authService)
	receiptHandler := httpHandlers.NewReceiptHandler(receiptService, authService, notificationService)
	notificationHandler := httpHandlers.NewNotificationHandler(notificationService, requestService, applicantService, authService)
	wsHandler := httpHandlers.NewWSHandler(hub, tokenManager)
	healthHandler := httpHandlers.NewHealthHandler(dbConn)

	engine := httpRouter.SetupRouter(cfg, authHandler, requestHandler, applicantHandler, matchingHandler, schoolHandler, receiptHandler, notificationHandler, wsHandler, healthHandler, tokenManager)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	// Apagamos el servidor al recibir la señal.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: error al detener el servidor http: %v", err)
		}
	}()

	log.Printf("main: servidor HTTP escuchando en el puerto %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: el servidor terminó con error: %v", err)
	}
}

// safeClose cierra la conexión con la base.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: error al cerrar la base: %v", err)
	}
}
