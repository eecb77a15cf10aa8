package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelAppointmentHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/cancel_appointment"
	completeAppointmentHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/complete_appointment"
	confirmAppointmentHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/confirm_appointment"
	createAppointmentHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/create_appointment"
	createBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/create_booking"
	createProfessionalHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/create_professional"
	createServiceHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/create_service"
	deleteProfessionalHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/delete_professional"
	deleteServiceHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/delete_service"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_available_slots"
	getClientsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_clients"
	getMonthlyStatsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_monthly_stats"
	getProfessionalsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_professionals"
	getPublicPageHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_public_page"
	getServicesHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_services"
	getTenantAppointmentsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_tenant_appointments"
	getTenantConfigHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_tenant_config"
	updateAppointmentNotesHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/update_appointment_notes"
	updateClientNotesHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/update_client_notes"
	updateProfessionalHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/update_professional"
	updateServiceHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/update_service"
	updateTenantConfigHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/update_tenant_config"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/config"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/catalog"
	clientRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/client"
	scheduleRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/schedule"
	tenantRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/tenant"
	notifierClient "github.com/m04kA/SMC-SchedulingService/internal/integrations/notifier"
	appointmentsService "github.com/m04kA/SMC-SchedulingService/internal/service/appointments"
	catalogService "github.com/m04kA/SMC-SchedulingService/internal/service/catalog"
	clientsService "github.com/m04kA/SMC-SchedulingService/internal/service/clients"
	tenantConfigService "github.com/m04kA/SMC-SchedulingService/internal/service/tenantconfig"
	createBookingUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
	getPublicPageUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_public_page"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-SchedulingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем клиент уведомлений
	notifier := notifierClient.NewClient(
		cfg.Notifier.URL,
		time.Duration(cfg.Notifier.Timeout)*time.Second,
		cfg.Notifier.Enabled,
		log,
	)
	log.Info("Notifier client initialized (url=%s, timeout=%ds, enabled=%t)",
		cfg.Notifier.URL, cfg.Notifier.Timeout, cfg.Notifier.Enabled)

	// Инициализируем репозитории (с метриками или без)
	var (
		tenantRepository      *tenantRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
		catalogRepository     *catalogRepo.Repository
		clientRepository      *clientRepo.Repository
		appointmentRepository *appointmentRepo.Repository
	)

	// Интерфейс для transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		tenantRepository = tenantRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		clientRepository = clientRepo.NewRepository(wrappedDB)
		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		tenantRepository = tenantRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		clientRepository = clientRepo.NewRepository(db)
		appointmentRepository = appointmentRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		catalogRepository,
		clientRepository,
		tenantRepository,
		notifier,
		txMgr,
		log,
	)
	clientsSvc := clientsService.NewService(clientRepository, log)
	tenantConfigSvc := tenantConfigService.NewService(
		tenantRepository,
		scheduleRepository,
		txMgr,
		log,
	)
	catalogSvc := catalogService.NewService(catalogRepository, log)

	// Инициализируем use cases
	getPublicPageUseCase := getPublicPageUC.NewUseCase(
		tenantRepository,
		catalogRepository,
		scheduleRepository,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		tenantRepository,
		catalogRepository,
		scheduleRepository,
		appointmentRepository,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		tenantRepository,
		catalogRepository,
		scheduleRepository,
		clientRepository,
		appointmentRepository,
		notifier,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getPublicPage := getPublicPageHandler.NewHandler(getPublicPageUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)

	createAppointment := createAppointmentHandler.NewHandler(appointmentsSvc, log)
	getTenantAppointments := getTenantAppointmentsHandler.NewHandler(appointmentsSvc, log)
	confirmAppointment := confirmAppointmentHandler.NewHandler(appointmentsSvc, log)
	completeAppointment := completeAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateAppointmentNotes := updateAppointmentNotesHandler.NewHandler(appointmentsSvc, log)
	getMonthlyStats := getMonthlyStatsHandler.NewHandler(appointmentsSvc, log)

	getClients := getClientsHandler.NewHandler(clientsSvc, log)
	updateClientNotes := updateClientNotesHandler.NewHandler(clientsSvc, log)

	getTenantConfig := getTenantConfigHandler.NewHandler(tenantConfigSvc, log)
	updateTenantConfig := updateTenantConfigHandler.NewHandler(tenantConfigSvc, log)

	getServices := getServicesHandler.NewHandler(catalogSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	updateService := updateServiceHandler.NewHandler(catalogSvc, log)
	deleteService := deleteServiceHandler.NewHandler(catalogSvc, log)
	getProfessionals := getProfessionalsHandler.NewHandler(catalogSvc, log)
	createProfessional := createProfessionalHandler.NewHandler(catalogSvc, log)
	updateProfessional := updateProfessionalHandler.NewHandler(catalogSvc, log)
	deleteProfessional := deleteProfessionalHandler.NewHandler(catalogSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Присваиваем каждому запросу request id
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Публичная страница записи тенанта
	api.HandleFunc("/public/{slug}", getPublicPage.Handle).Methods(http.MethodGet)

	// Доступные слоты для записи
	api.HandleFunc("/public/{slug}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Создание записи клиентом
	api.HandleFunc("/public/{slug}/bookings", createBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Tenant-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments", getTenantAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/confirm", confirmAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/complete", completeAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/notes", updateAppointmentNotes.Handle).Methods(http.MethodPatch)

	// --- Статистика ---
	protected.HandleFunc("/stats/monthly", getMonthlyStats.Handle).Methods(http.MethodGet)

	// --- Клиентская база ---
	protected.HandleFunc("/clients", getClients.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/clients/{clientId}/notes", updateClientNotes.Handle).Methods(http.MethodPatch)

	// --- Настройки тенанта ---
	protected.HandleFunc("/config", getTenantConfig.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/config", updateTenantConfig.Handle).Methods(http.MethodPut)

	// --- Каталог услуг ---
	protected.HandleFunc("/services", getServices.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/services", createService.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/services/{serviceId}", updateService.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/services/{serviceId}", deleteService.Handle).Methods(http.MethodDelete)

	// --- Специалисты ---
	protected.HandleFunc("/professionals", getProfessionals.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/professionals", createProfessional.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/professionals/{professionalId}", updateProfessional.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/professionals/{professionalId}", deleteProfessional.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
