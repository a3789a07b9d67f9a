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

	cancelBookingHandler "github.com/KaayaanAi/salon-receptionist/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/KaayaanAi/salon-receptionist/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/KaayaanAi/salon-receptionist/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/KaayaanAi/salon-receptionist/internal/api/handlers/get_booking"
	getCustomerBookingsHandler "github.com/KaayaanAi/salon-receptionist/internal/api/handlers/get_customer_bookings"
	getServicesHandler "github.com/KaayaanAi/salon-receptionist/internal/api/handlers/get_services"
	getTenantBookingsHandler "github.com/KaayaanAi/salon-receptionist/internal/api/handlers/get_tenant_bookings"
	getTenantPolicyHandler "github.com/KaayaanAi/salon-receptionist/internal/api/handlers/get_tenant_policy"
	reloadTenantPolicyHandler "github.com/KaayaanAi/salon-receptionist/internal/api/handlers/reload_tenant_policy"
	updateBookingHandler "github.com/KaayaanAi/salon-receptionist/internal/api/handlers/update_booking"
	"github.com/KaayaanAi/salon-receptionist/internal/api/middleware"
	"github.com/KaayaanAi/salon-receptionist/internal/clock"
	"github.com/KaayaanAi/salon-receptionist/internal/config"
	appointmentRepo "github.com/KaayaanAi/salon-receptionist/internal/infra/storage/appointment"
	"github.com/KaayaanAi/salon-receptionist/internal/infra/tenantcfg"
	"github.com/KaayaanAi/salon-receptionist/internal/rules"
	bookingsService "github.com/KaayaanAi/salon-receptionist/internal/service/bookings"
	tenantsService "github.com/KaayaanAi/salon-receptionist/internal/service/tenants"
	createBookingUC "github.com/KaayaanAi/salon-receptionist/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/KaayaanAi/salon-receptionist/internal/usecase/get_available_slots"
	updateBookingUC "github.com/KaayaanAi/salon-receptionist/internal/usecase/update_booking"
	"github.com/KaayaanAi/salon-receptionist/pkg/dbmetrics"
	"github.com/KaayaanAi/salon-receptionist/pkg/logger"
	"github.com/KaayaanAi/salon-receptionist/pkg/metrics"
	"github.com/KaayaanAi/salon-receptionist/pkg/simpletxmanager"
	"github.com/KaayaanAi/salon-receptionist/pkg/txmanager"
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

	log.Info("Starting salon-receptionist...")
	log.Info("Configuration loaded from config.toml")

	// Таймзона всех вычислений расписания
	loc, err := time.LoadLocation(cfg.Scheduling.Timezone)
	if err != nil {
		log.Fatal("Failed to load timezone %s: %v", cfg.Scheduling.Timezone, err)
	}
	log.Info("Scheduling timezone: %s", cfg.Scheduling.Timezone)

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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Провайдер конфигураций салонов
	policyProvider := tenantcfg.NewProvider(cfg.Tenants.Dir, log)
	log.Info("Tenant policies directory: %s", cfg.Tenants.Dir)

	// Движок бизнес-правил и провайдер времени
	rulesEngine := rules.NewEngine(loc)
	timeProvider := clock.NewZoned(loc)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	// Репозиторий с обёрткой метрик или без
	var appointmentRepository *appointmentRepo.Repository
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		appointmentRepository,
		policyProvider,
		rulesEngine,
		timeProvider,
		log,
	)
	tenantSvc := tenantsService.NewService(policyProvider, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		appointmentRepository,
		policyProvider,
		rulesEngine,
		txMgr,
		timeProvider,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		policyProvider,
		timeProvider,
		log,
	)
	updateBookingUseCase := updateBookingUC.NewUseCase(
		appointmentRepository,
		policyProvider,
		rulesEngine,
		txMgr,
		timeProvider,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	updateBooking := updateBookingHandler.NewHandler(updateBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getTenantBookings := getTenantBookingsHandler.NewHandler(bookingSvc, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)
	getServices := getServicesHandler.NewHandler(tenantSvc, log)
	getTenantPolicy := getTenantPolicyHandler.NewHandler(tenantSvc, log)
	reloadTenantPolicy := reloadTenantPolicyHandler.NewHandler(tenantSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты салона на дату
	api.HandleFunc("/tenants/{tenantId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Активные услуги салона
	api.HandleFunc("/tenants/{tenantId}/services",
		getServices.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-API-Key header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(cfg.Auth.APIKey))

	// --- Записи ---
	protected.HandleFunc("/tenants/{tenantId}/bookings",
		createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/tenants/{tenantId}/bookings",
		getTenantBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/tenants/{tenantId}/bookings/{bookingRef}",
		getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/tenants/{tenantId}/bookings/{bookingRef}",
		updateBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/tenants/{tenantId}/bookings/{bookingRef}/cancel",
		cancelBooking.Handle).Methods(http.MethodPost)

	// --- История клиента ---
	protected.HandleFunc("/tenants/{tenantId}/customers/{phone}/bookings",
		getCustomerBookings.Handle).Methods(http.MethodGet)

	// --- Конфигурация салона ---
	protected.HandleFunc("/tenants/{tenantId}/policy",
		getTenantPolicy.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/tenants/{tenantId}/policy/reload",
		reloadTenantPolicy.Handle).Methods(http.MethodPost)

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

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
