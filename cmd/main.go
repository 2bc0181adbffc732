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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	adminLoginHandler "github.com/m04kA/SMC-SlotCalendar/internal/api/handlers/admin_login"
	createBookingHandler "github.com/m04kA/SMC-SlotCalendar/internal/api/handlers/create_booking"
	deleteSlotHandler "github.com/m04kA/SMC-SlotCalendar/internal/api/handlers/delete_slot"
	getCalendarHandler "github.com/m04kA/SMC-SlotCalendar/internal/api/handlers/get_calendar"
	getSlotsHandler "github.com/m04kA/SMC-SlotCalendar/internal/api/handlers/get_slots"
	notificationsHandler "github.com/m04kA/SMC-SlotCalendar/internal/api/handlers/notifications"
	saveSlotHandler "github.com/m04kA/SMC-SlotCalendar/internal/api/handlers/save_slot"
	"github.com/m04kA/SMC-SlotCalendar/internal/api/middleware"
	"github.com/m04kA/SMC-SlotCalendar/internal/config"
	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
	"github.com/m04kA/SMC-SlotCalendar/internal/infra/storage/memory"
	slotRepo "github.com/m04kA/SMC-SlotCalendar/internal/infra/storage/slot"
	"github.com/m04kA/SMC-SlotCalendar/internal/integrations/slotservice"
	"github.com/m04kA/SMC-SlotCalendar/internal/notification/gmail"
	slotsService "github.com/m04kA/SMC-SlotCalendar/internal/service/slots"
	createBookingUC "github.com/m04kA/SMC-SlotCalendar/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SlotCalendar/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotCalendar/pkg/logger"
	"github.com/m04kA/SMC-SlotCalendar/pkg/metrics"
	"github.com/m04kA/SMC-SlotCalendar/pkg/txmanager"
)

// slotStore хранилище слотов: удаленный сервис, PostgreSQL или память
type slotStore interface {
	FetchSlots(ctx context.Context, startDate, endDate string) ([]domain.Slot, error)
	SubmitBooking(ctx context.Context, req domain.BookingRequest) (*domain.Booking, error)
	UpsertSlot(ctx context.Context, slot domain.Slot) error
	DeleteSlot(ctx context.Context, slot domain.Slot) error
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

	log.Info("Starting SMC-SlotCalendar...")
	log.Info("Configuration loaded from config.toml")

	loc, err := cfg.Calendar.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %s: %v", cfg.Calendar.Timezone, err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName, prometheus.DefaultRegisterer)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Выбираем хранилище слотов: удаленный сервис имеет приоритет над локальными
	var store slotStore

	switch {
	case cfg.Remote.URL != "":
		store = slotservice.NewClient(
			cfg.Remote.URL,
			time.Duration(cfg.Remote.Timeout)*time.Second,
			loc,
			log,
		)
		log.Info("Using remote slot store (timeout=%ds)", cfg.Remote.Timeout)

	case cfg.Storage.Driver == config.DriverPostgres:
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

		if cfg.Metrics.Enabled {
			wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
			log.Info("Database metrics collection started")
			// запросы внутри транзакций тоже попадают в метрики
			txMgr := txmanager.NewTransactionManager(wrappedDB, txmanager.WithExecutorWrapper(wrappedDB.Instrument))
			store = slotRepo.NewRepository(wrappedDB, txMgr)
		} else {
			store = slotRepo.NewRepository(db, txmanager.NewTransactionManager(db))
		}

	default:
		store = memory.NewStore(memory.DefaultFixtures())
		log.Warn("Remote slot store is not configured, using in-memory fallback with %d fixture slots",
			len(memory.DefaultFixtures()))
	}

	// Инициализируем отправку подтверждений (если заданы учетные данные OAuth)
	var (
		notifier   createBookingUC.Notifier
		authorizer notificationsHandler.Authorizer
	)

	if cfg.GmailEnabled() {
		var tokens gmail.TokenStore = gmail.NewMemoryTokenStore()

		if cfg.Redis.Addr != "" {
			redisClient := redis.NewClient(&redis.Options{
				Addr:     cfg.Redis.Addr,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			})
			defer redisClient.Close()

			pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			err := redisClient.Ping(pingCtx).Err()
			cancel()
			if err != nil {
				log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
			}

			tokens = gmail.NewRedisTokenStore(redisClient, cfg.Redis.KeyPrefix)
			log.Info("Gmail tokens stored in redis (addr=%s, prefix=%s)", cfg.Redis.Addr, cfg.Redis.KeyPrefix)
		} else {
			log.Warn("Redis is not configured, Gmail tokens are kept in memory and lost on restart")
		}

		gmailNotifier := gmail.NewNotifier(gmail.Config{
			ClientID:     cfg.Gmail.ClientID,
			ClientSecret: cfg.Gmail.ClientSecret,
			RedirectURL:  cfg.Gmail.RedirectURL,
			SenderEmail:  cfg.Gmail.SenderEmail,
			SenderName:   cfg.Gmail.SenderName,
			ContactEmail: cfg.Gmail.ContactEmail,
			Timeout:      time.Duration(cfg.Gmail.Timeout) * time.Second,
		}, tokens, log)

		notifier = gmailNotifier
		authorizer = gmailNotifier
		log.Info("Gmail notifications enabled (sender=%s)", cfg.Gmail.SenderEmail)
	} else {
		log.Warn("Gmail credentials are not configured, booking confirmations are disabled")
	}

	// Инициализируем сервисы
	slotSvc := slotsService.NewService(store, metricsCollector, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		store,
		notifier,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	getSlots := getSlotsHandler.NewHandler(slotSvc, log)
	getCalendar := getCalendarHandler.NewHandler(slotSvc, loc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, slotSvc, loc, log)
	adminLogin := adminLoginHandler.NewHandler(cfg.Admin.Passcode, log)
	saveSlot := saveSlotHandler.NewHandler(slotSvc, loc, log)
	deleteSlot := deleteSlotHandler.NewHandler(slotSvc, loc, log)
	notificationsAdmin := notificationsHandler.NewHandler(authorizer, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestLogging(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// OAuth callback Google (адрес должен совпадать с gmail.redirect_url)
	r.HandleFunc("/oauth2/callback", notificationsAdmin.HandleCallback).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Слоты в диапазоне дат
	api.HandleFunc("/slots", getSlots.Handle).Methods(http.MethodGet)

	// Состояние календаря: сводка месяца и слоты выбранного дня
	api.HandleFunc("/calendar", getCalendar.Handle).Methods(http.MethodGet)

	// Создание бронирования (с ограничением частоты по IP)
	var createBookingRoute http.Handler = http.HandlerFunc(createBooking.Handle)
	if cfg.RateLimit.RequestsPerMinute > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
		createBookingRoute = limiter.Middleware(createBookingRoute)
		log.Info("Booking rate limit: %d/min, burst %d", cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	}
	api.Handle("/bookings", createBookingRoute).Methods(http.MethodPost)

	// Проверка кода администратора
	api.HandleFunc("/admin/login", adminLogin.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Passcode header)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Admin.Passcode))

	// --- Слоты ---
	admin.HandleFunc("/slots", saveSlot.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/slots", deleteSlot.Handle).Methods(http.MethodDelete)

	// --- Уведомления ---
	admin.HandleFunc("/notifications", notificationsAdmin.HandleStatus).Methods(http.MethodGet)
	admin.HandleFunc("/notifications/authorize", notificationsAdmin.HandleAuthorize).Methods(http.MethodPost)
	admin.HandleFunc("/notifications", notificationsAdmin.HandleRevoke).Methods(http.MethodDelete)

	// CORS для браузерного клиента
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", middleware.AdminPasscodeHeader, middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	}).Handler(r)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler,
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
	close(stopMetricsCh)

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
