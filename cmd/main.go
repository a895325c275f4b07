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
	"github.com/redis/go-redis/v9"

	cancelBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_booking"
	getBusinessBookingsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_business_bookings"
	updateBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/update_booking"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/config"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/catalog"
	rulesRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/rules"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/notifications"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-SchedulingService/internal/service/bookings"
	"github.com/m04kA/SMC-SchedulingService/internal/service/validation"
	createBookingUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
)

// NotificationPublisher отправка событий бронирований (Kafka или заглушка)
type NotificationPublisher interface {
	Publish(ctx context.Context, eventType string, booking *domain.Booking) error
	Close() error
}

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

	// Инициализируем метрики (если включены); nil коллектор везде допустим
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

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB, metricsCollector)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	rulesRepository := rulesRepo.NewRepository(wrappedDB)

	// Инициализируем публикацию уведомлений
	var publisher NotificationPublisher = notifications.NoopPublisher{}
	if cfg.Notifications.Enabled() {
		publisher = notifications.NewPublisher(notifications.Config{
			Brokers:      cfg.Notifications.Brokers,
			Topic:        cfg.Notifications.Topic,
			WriteTimeout: time.Duration(cfg.Notifications.WriteTimeout) * time.Second,
			MaxAttempts:  cfg.Notifications.MaxAttempts,
		}, log)
		log.Info("Notifications enabled (brokers=%v, topic=%s)", cfg.Notifications.Brokers, cfg.Notifications.Topic)
	} else {
		log.Info("Notifications disabled: no brokers configured")
	}

	// События отправляются в фоне, запрос не ждет брокер
	dispatcher := notifications.NewDispatcher(
		publisher,
		time.Duration(cfg.Notifications.WriteTimeout*max(cfg.Notifications.MaxAttempts, 1))*time.Second,
		log,
	)

	// Инициализируем сервисы
	location := cfg.Scheduling.Location()
	timeProvider := &createBookingUC.RealTimeProvider{}

	engine := availability.NewService(
		catalogRepository,
		rulesRepository,
		bookingRepository,
		cfg.Scheduling.Mode(),
		log,
	)
	validator := validation.NewValidator(
		engine,
		catalogRepository,
		timeProvider,
		location,
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		catalogRepository,
		validator,
		dispatcher,
		metricsCollector,
		txMgr,
		timeProvider,
		bookingsService.Policy{
			Location:                 location,
			DefaultCancellationHours: cfg.Scheduling.DefaultCancellationHours,
		},
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		validator,
		dispatcher,
		metricsCollector,
		txMgr,
		timeProvider,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		catalogRepository,
		engine,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBooking := updateBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getBusinessBookings := getBusinessBookingsHandler.NewHandler(bookingSvc, log)

	// Ограничение частоты изменений бронирований (Redis)
	var redisClient *redis.Client
	limit := func(h http.HandlerFunc) http.Handler { return h }
	if cfg.RateLimit.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RateLimit.Addr,
			Password: cfg.RateLimit.Password,
			DB:       cfg.RateLimit.DB,
		})
		pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is not reachable at %s: %v", cfg.RateLimit.Addr, err)
		}
		cancelPing()

		limiter := middleware.NewRateLimiter(
			middleware.NewRedisCounter(redisClient),
			cfg.RateLimit.Limit,
			time.Duration(cfg.RateLimit.Window)*time.Second,
			cfg.RateLimit.FailOpen,
			log,
		)
		limit = func(h http.HandlerFunc) http.Handler { return limiter.Middleware(h) }
		log.Info("Rate limit enabled: %d requests per %ds (redis=%s)",
			cfg.RateLimit.Limit, cfg.RateLimit.Window, cfg.RateLimit.Addr)
	}

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
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

	// Доступность услуги на день и на неделю
	api.HandleFunc("/businesses/{business}/services/{serviceId}/availability",
		getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/businesses/{business}/services/{serviceId}/availability/week",
		getAvailableSlots.HandleWeek).Methods(http.MethodGet)

	// Создание бронирования клиентом
	api.Handle("/bookings", limit(createBooking.Handle)).Methods(http.MethodPost)

	// Отмена бронирования клиентом (проверка по email)
	api.Handle("/bookings/{bookingId}/cancel", limit(cancelBooking.Handle)).Methods(http.MethodPatch)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Изменение бронирования (перенос, статус, заметки)
	protected.Handle("/bookings/{bookingId}", limit(updateBooking.Handle)).Methods(http.MethodPatch)

	// Журнал бронирований бизнеса
	protected.HandleFunc("/businesses/{businessId}/bookings", getBusinessBookings.Handle).Methods(http.MethodGet)

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

	// Дожидаемся отправки начатых событий
	dispatcher.Wait()

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	if err := publisher.Close(); err != nil {
		log.Error("Failed to close notification publisher: %v", err)
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close redis client: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}
