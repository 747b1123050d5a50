package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"church-admin/config"
	"church-admin/internal/handlers"
	"church-admin/internal/middleware"
	"church-admin/internal/repositories"
	"church-admin/internal/services"
	"church-admin/internal/sms"
	"church-admin/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// @title Church Admin API
// @version 1.0
// @description Church administration backend: contacts, attendance, scenarios and bulk messaging
// @host localhost:8081
// @BasePath /api/v1
func main() {
	cfg := config.NewConfig()

	if err := utils.InitLogger(&utils.LoggerConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}); err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer utils.Log.Sync()

	if cfg.JWTSecret == "" {
		utils.Log.Fatal("JWT_SECRET must be set")
	}

	db, err := config.ConnectDatabase()
	if err != nil {
		utils.Log.Fatal("error connecting to database", zap.Error(err))
	}
	defer db.Close()

	if err := config.RunMigrations(db); err != nil {
		utils.Log.Fatal("error running migrations", zap.Error(err))
	}

	userRepo := repositories.NewPostgresUserRepository(db)
	contactRepo := repositories.NewPostgresContactRepository(db)
	attendanceRepo := repositories.NewPostgresAttendanceRepository(db)
	scenarioRepo := repositories.NewPostgresScenarioRepository(db)
	communicationRepo := repositories.NewPostgresCommunicationRepository(db)

	registry := sms.NewRegistry(cfg.DefaultProvider)
	if bulkSMS, err := sms.NewBulkSMSProvider(cfg.BulkSMS.Username, cfg.BulkSMS.Password, cfg.BulkSMS.APIURI); err != nil {
		utils.Log.Warn("BulkSMS provider not configured", zap.Error(err))
	} else {
		registry.Register(bulkSMS)
	}

	whatsappService := services.NewWhatsAppService(cfg.WhatsApp)
	if cfg.WhatsApp.Enabled {
		registry.Register(whatsappService)
		go func() {
			if err := whatsappService.Connect(); err != nil {
				utils.Log.Error("error connecting whatsapp session", zap.Error(err))
			}
		}()
	}

	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry)
	contactService := services.NewContactService(contactRepo)
	attendanceService := services.NewAttendanceService(attendanceRepo)
	scenarioService := services.NewScenarioService(scenarioRepo, contactRepo)
	communicationService := services.NewCommunicationService(communicationRepo, contactRepo, registry)
	statsService := services.NewStatsService(contactRepo, communicationRepo, registry)

	if err := authService.EnsureAdmin(cfg.Admin.Email, cfg.Admin.Password); err != nil {
		utils.Log.Fatal("error seeding admin user", zap.Error(err))
	}

	validate := validator.New()

	authHandler := handlers.NewAuthHandler(authService, validate)
	contactHandler := handlers.NewContactHandler(contactService, validate)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceService, validate)
	scenarioHandler := handlers.NewScenarioHandler(scenarioService, validate)
	communicationHandler := handlers.NewCommunicationHandler(communicationService, validate)
	whatsappHandler := handlers.NewWhatsAppHandler(whatsappService)
	statsHandler := handlers.NewStatsHandler(statsService)

	router := mux.NewRouter().PathPrefix("/api/v1").Subrouter()

	router.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	router.HandleFunc("/auth/register", authHandler.Register).Methods("POST", "OPTIONS")
	router.HandleFunc("/auth/refresh", authHandler.Refresh).Methods("POST", "OPTIONS")

	// Session pairing stays public so the QR code can be scanned before any
	// user exists.
	router.HandleFunc("/whatsapp/qrcode", whatsappHandler.QRCode).Methods("GET")
	router.HandleFunc("/whatsapp/status", whatsappHandler.Status).Methods("GET")

	// Swagger static files and UI stay public.
	fs := http.FileServer(http.Dir("./docs"))
	router.PathPrefix("/swagger/").Handler(http.StripPrefix("/api/v1/swagger/", fs))
	router.PathPrefix("/swagger-ui/").Handler(httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8081/api/v1/swagger/swagger.json"),
		httpSwagger.DeepLinking(true),
	))

	protected := router.NewRoute().Subrouter()
	protected.Use(middleware.Auth(cfg.JWTSecret, userRepo))

	protected.HandleFunc("/auth/me", authHandler.Me).Methods("GET")

	protected.HandleFunc("/contacts", contactHandler.Create).Methods("POST", "OPTIONS")
	protected.HandleFunc("/contacts", contactHandler.List).Methods("GET")
	protected.HandleFunc("/contacts/add-list", contactHandler.AddList).Methods("POST", "OPTIONS")
	protected.HandleFunc("/contacts/import", contactHandler.ImportCSV).Methods("POST", "OPTIONS")
	protected.HandleFunc("/contacts/export/csv", contactHandler.ExportCSV).Methods("GET")
	protected.HandleFunc("/contacts/export/vcf", contactHandler.ExportVCF).Methods("GET")
	protected.HandleFunc("/contacts/export/xlsx", contactHandler.ExportXLSX).Methods("GET")
	protected.HandleFunc("/contacts/mass-delete", contactHandler.MassDelete).Methods("DELETE", "OPTIONS")
	protected.HandleFunc("/contacts/{id:[0-9]+}", contactHandler.Get).Methods("GET")
	protected.HandleFunc("/contacts/{id:[0-9]+}", contactHandler.Update).Methods("PUT", "OPTIONS")
	protected.HandleFunc("/contacts/{id:[0-9]+}", contactHandler.Delete).Methods("DELETE", "OPTIONS")

	protected.HandleFunc("/attendance/record", attendanceHandler.Record).Methods("POST", "OPTIONS")
	protected.HandleFunc("/attendance/records", attendanceHandler.List).Methods("GET")
	protected.HandleFunc("/attendance/summary", attendanceHandler.Summary).Methods("GET")
	protected.HandleFunc("/attendance/contacts/{id:[0-9]+}", attendanceHandler.ByContact).Methods("GET")
	protected.HandleFunc("/attendance/{id:[0-9]+}", attendanceHandler.Delete).Methods("DELETE", "OPTIONS")

	protected.HandleFunc("/scenarios", scenarioHandler.Create).Methods("POST", "OPTIONS")
	protected.HandleFunc("/scenarios", scenarioHandler.List).Methods("GET")
	protected.HandleFunc("/scenarios/{id:[0-9]+}", scenarioHandler.Get).Methods("GET")
	protected.HandleFunc("/scenarios/{id:[0-9]+}", scenarioHandler.Delete).Methods("DELETE", "OPTIONS")
	protected.HandleFunc("/scenarios/{id:[0-9]+}/tasks", scenarioHandler.Tasks).Methods("GET")
	protected.HandleFunc("/scenarios/{id:[0-9]+}/tasks/{task_id:[0-9]+}/complete", scenarioHandler.CompleteTask).Methods("PUT", "OPTIONS")
	protected.HandleFunc("/scenarios/{id:[0-9]+}/statistics", scenarioHandler.Statistics).Methods("GET")

	protected.HandleFunc("/communications", communicationHandler.Create).Methods("POST", "OPTIONS")
	protected.HandleFunc("/communications", communicationHandler.List).Methods("GET")
	protected.HandleFunc("/communications/send-bulk", communicationHandler.SendBulk).Methods("POST", "OPTIONS")
	protected.HandleFunc("/communications/{id:[0-9]+}", communicationHandler.Get).Methods("GET")
	protected.HandleFunc("/communications/{id:[0-9]+}", communicationHandler.Update).Methods("PUT", "OPTIONS")
	protected.HandleFunc("/communications/{id:[0-9]+}", communicationHandler.Delete).Methods("DELETE", "OPTIONS")
	protected.HandleFunc("/communications/{id:[0-9]+}/send", communicationHandler.Send).Methods("POST", "OPTIONS")
	protected.HandleFunc("/communications/{id:[0-9]+}/status", communicationHandler.Status).Methods("GET")

	protected.HandleFunc("/stats/contacts/count", statsHandler.ContactCount).Methods("GET")
	protected.HandleFunc("/stats/sms/providers", statsHandler.Providers).Methods("GET")
	protected.HandleFunc("/stats/communications/sent-count", statsHandler.SentCount).Methods("GET")
	protected.HandleFunc("/stats/communications/failed-count", statsHandler.FailedCount).Methods("GET")
	protected.HandleFunc("/stats/communications/by-type", statsHandler.ByType).Methods("GET")

	mainRouter := mux.NewRouter()
	mainRouter.PathPrefix("/api/v1").Handler(router)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	server := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: c.Handler(mainRouter),
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		utils.Log.Info("server listening", zap.String("addr", cfg.ServerAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.Log.Fatal("error starting server", zap.Error(err))
		}
	}()

	<-stop
	utils.Log.Info("shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		utils.Log.Error("error shutting down server", zap.Error(err))
	}

	whatsappService.Disconnect()

	utils.Log.Info("server stopped")
}
