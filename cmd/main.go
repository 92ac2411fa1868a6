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
	_ "time/tzdata"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	addHolidayHandler "github.com/m04kA/NFA-DeliveryBookingService/internal/api/handlers/add_holiday"
	getAppointmentHandler "github.com/m04kA/NFA-DeliveryBookingService/internal/api/handlers/get_appointment"
	getAvailabilityHandler "github.com/m04kA/NFA-DeliveryBookingService/internal/api/handlers/get_availability"
	getBranchCapacityHandler "github.com/m04kA/NFA-DeliveryBookingService/internal/api/handlers/get_branch_capacity"
	healthHandler "github.com/m04kA/NFA-DeliveryBookingService/internal/api/handlers/health"
	listBranchesHandler "github.com/m04kA/NFA-DeliveryBookingService/internal/api/handlers/list_branches"
	listFarmerTypesHandler "github.com/m04kA/NFA-DeliveryBookingService/internal/api/handlers/list_farmer_types"
	listRegionsHandler "github.com/m04kA/NFA-DeliveryBookingService/internal/api/handlers/list_regions"
	submitBookingHandler "github.com/m04kA/NFA-DeliveryBookingService/internal/api/handlers/submit_booking"
	updateAppointmentStatusHandler "github.com/m04kA/NFA-DeliveryBookingService/internal/api/handlers/update_appointment_status"
	updateBranchCapacityHandler "github.com/m04kA/NFA-DeliveryBookingService/internal/api/handlers/update_branch_capacity"
	"github.com/m04kA/NFA-DeliveryBookingService/internal/api/middleware"
	"github.com/m04kA/NFA-DeliveryBookingService/internal/config"
	availabilityCache "github.com/m04kA/NFA-DeliveryBookingService/internal/infra/cache/availability"
	appointmentRepo "github.com/m04kA/NFA-DeliveryBookingService/internal/infra/storage/appointment"
	capacityRepo "github.com/m04kA/NFA-DeliveryBookingService/internal/infra/storage/capacity"
	directoryRepo "github.com/m04kA/NFA-DeliveryBookingService/internal/infra/storage/directory"
	holidayRepo "github.com/m04kA/NFA-DeliveryBookingService/internal/infra/storage/holiday"
	"github.com/m04kA/NFA-DeliveryBookingService/internal/integrations/events"
	"github.com/m04kA/NFA-DeliveryBookingService/internal/integrations/holidaycalendar"
	appointmentsService "github.com/m04kA/NFA-DeliveryBookingService/internal/service/appointments"
	capacityService "github.com/m04kA/NFA-DeliveryBookingService/internal/service/capacity"
	directoryService "github.com/m04kA/NFA-DeliveryBookingService/internal/service/directory"
	holidaysService "github.com/m04kA/NFA-DeliveryBookingService/internal/service/holidays"
	computeAvailabilityUC "github.com/m04kA/NFA-DeliveryBookingService/internal/usecase/compute_availability"
	submitBookingUC "github.com/m04kA/NFA-DeliveryBookingService/internal/usecase/submit_booking"
	"github.com/m04kA/NFA-DeliveryBookingService/migrations"
	"github.com/m04kA/NFA-DeliveryBookingService/pkg/dbmetrics"
	"github.com/m04kA/NFA-DeliveryBookingService/pkg/logger"
	"github.com/m04kA/NFA-DeliveryBookingService/pkg/metrics"
	"github.com/m04kA/NFA-DeliveryBookingService/pkg/txmanager"
)

// cache общий интерфейс кеша доступности для всех потребителей
type cache interface {
	computeAvailabilityUC.AvailabilityCache
	Invalidate(ctx context.Context, branchID int64) error
	InvalidateAll(ctx context.Context) error
}

func main() {
	// Загружаем конфигурацию
	configPath := "config.toml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		configPath = v
	}
	cfg, err := config.Load(configPath)
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

	log.Info("Starting NFA-DeliveryBookingService...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := time.LoadLocation(cfg.Booking.Timezone)
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.Booking.Timezone, err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	if cfg.Database.MigrateOnStart {
		migrateCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
		err := migrations.Apply(migrateCtx, db)
		cancel()
		if err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Database migrations applied")
	}

	// С nil метриками обёртка работает как обычный *sql.DB
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	capacityRepository := capacityRepo.NewRepository(wrappedDB)
	directoryRepository := directoryRepo.NewRepository(wrappedDB)
	holidayRepository := holidayRepo.NewRepository(wrappedDB)

	// Кеш доступности в Redis (опционально)
	var availability cache
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Warn("Redis unavailable at %s, availability cache disabled: %v", cfg.Redis.Addr, err)
		} else {
			availability = availabilityCache.NewCache(rdb, time.Duration(cfg.Redis.AvailabilityTTLSeconds)*time.Second)
			log.Info("Availability cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.AvailabilityTTLSeconds)
		}
	}

	// Инициализируем интеграционных клиентов
	var calendar holidaysService.CalendarClient
	if cfg.HolidayCalendar.Enabled {
		calendar = holidaycalendar.NewClient(
			cfg.HolidayCalendar.URL,
			cfg.HolidayCalendar.CountryCode,
			time.Duration(cfg.HolidayCalendar.Timeout)*time.Second,
			log,
		)
		log.Info("Holiday calendar client initialized (url=%s, country=%s, timeout=%ds)",
			cfg.HolidayCalendar.URL, cfg.HolidayCalendar.CountryCode, cfg.HolidayCalendar.Timeout)
	}

	publishTimeout := time.Duration(cfg.Kafka.PublishTimeoutMs) * time.Millisecond
	var publisher *events.Publisher
	if cfg.Kafka.Enabled {
		publisher = events.NewPublisher(events.NewKafkaWriter(cfg.Kafka.Brokers, publishTimeout), cfg.Kafka.Topic, log)
		defer publisher.Close()
		log.Info("Kafka publisher initialized (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}

	// Инициализируем сервисы
	holidaySvc := holidaysService.NewService(holidayRepository, directoryRepository, calendar, availability, log)
	directorySvc := directoryService.NewService(directoryRepository, log)
	capacitySvc := capacityService.NewService(directoryRepository, capacityRepository, txMgr, availability, log)
	appointmentSvc := appointmentsService.NewService(appointmentRepository, availability, log)

	// Инициализируем use cases
	availabilityOpts := []computeAvailabilityUC.Option{
		computeAvailabilityUC.WithMaxRangeDays(cfg.Booking.MaxRangeDays),
		computeAvailabilityUC.WithSnapshot(txMgr),
	}
	submitOpts := []submitBookingUC.Option{
		submitBookingUC.WithLocation(location),
		submitBookingUC.WithPhoneRegion(cfg.Booking.PhoneRegion),
		submitBookingUC.WithMaxReferenceAttempts(cfg.Booking.MaxReferenceAttempts),
		submitBookingUC.WithReferenceGenerator(submitBookingUC.NewRandomReferenceGenerator(cfg.Booking.ReferencePrefix)),
		submitBookingUC.WithAfterCommitTimeout(publishTimeout),
	}
	if availability != nil {
		availabilityOpts = append(availabilityOpts, computeAvailabilityUC.WithCache(availability))
		submitOpts = append(submitOpts, submitBookingUC.WithCache(availability))
	}
	if metricsCollector != nil {
		availabilityOpts = append(availabilityOpts, computeAvailabilityUC.WithCacheMetrics(metricsCollector))
		submitOpts = append(submitOpts, submitBookingUC.WithMetrics(metricsCollector))
	}
	if publisher != nil {
		submitOpts = append(submitOpts, submitBookingUC.WithPublisher(publisher))
	}

	computeAvailabilityUseCase := computeAvailabilityUC.NewUseCase(
		directoryRepository,
		capacityRepository,
		appointmentRepository,
		holidaySvc,
		log,
		availabilityOpts...,
	)

	submitBookingUseCase := submitBookingUC.NewUseCase(
		directoryRepository,
		capacityRepository,
		appointmentRepository,
		holidaySvc,
		txMgr,
		log,
		submitOpts...,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(computeAvailabilityUseCase, log)
	submitBooking := submitBookingHandler.NewHandler(submitBookingUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentSvc, log)
	getBranchCapacity := getBranchCapacityHandler.NewHandler(capacitySvc, log)
	updateBranchCapacity := updateBranchCapacityHandler.NewHandler(capacitySvc, log)
	listRegions := listRegionsHandler.NewHandler(directorySvc, log)
	listBranches := listBranchesHandler.NewHandler(directorySvc, log)
	listFarmerTypes := listFarmerTypesHandler.NewHandler(directorySvc, log)
	addHoliday := addHolidayHandler.NewHandler(holidaySvc, log)
	health := healthHandler.NewHandler(db, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recover(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings", submitBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{referenceNumber}", getAppointment.Handle).Methods(http.MethodGet)

	// --- Справочники ---
	api.HandleFunc("/regions", listRegions.Handle).Methods(http.MethodGet)
	api.HandleFunc("/regions/{regionId}/branches", listBranches.Handle).Methods(http.MethodGet)
	api.HandleFunc("/farmer-types", listFarmerTypes.Handle).Methods(http.MethodGet)
	api.HandleFunc("/branches/{branchId}/capacity", getBranchCapacity.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (X-User-ID из списка booking.admin_user_ids)
	// ============================================================

	admin := api.PathPrefix("").Subrouter()
	admin.Use(middleware.Auth)
	admin.Use(middleware.AdminOnly(cfg.Booking.AdminUserIDs))

	admin.HandleFunc("/branches/{branchId}/capacity", updateBranchCapacity.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/bookings/{referenceNumber}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/holidays", addHoliday.Handle).Methods(http.MethodPost)

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
