package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nordstad/booking-backend/internal/application"
	"github.com/nordstad/booking-backend/internal/auth"
	"github.com/nordstad/booking-backend/internal/config"
	"github.com/nordstad/booking-backend/internal/database"
	"github.com/nordstad/booking-backend/internal/distance"
	"github.com/nordstad/booking-backend/internal/handler"
	"github.com/nordstad/booking-backend/internal/kafka"
	"github.com/nordstad/booking-backend/internal/logger"
	"github.com/nordstad/booking-backend/internal/notify"
	"github.com/nordstad/booking-backend/internal/repository"
)

const tokenTTL = 24 * time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log, err := logger.NewNamed(cfg.AppEnv, "booking-backend")
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer log.Sync() //nolint:errcheck

	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DB, log)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&repository.BookingModel{},
		&repository.BookingSequenceModel{},
		&repository.CatalogModel{},
		&repository.DiscountCodeModel{},
		&repository.LockedDateModel{},
		&repository.ContactModel{},
		&repository.BusinessLeadModel{},
		&repository.CallbackModel{},
		&repository.AdminModel{},
	); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	// Repositories.
	bookingRepo := repository.NewGormBookingRepository(db)
	catalogRepo := repository.NewGormCatalogRepository(db)
	discountRepo := repository.NewGormDiscountRepository(db)
	lockedRepo := repository.NewGormLockedDateRepository(db)
	leadRepo := repository.NewGormLeadRepository(db)
	adminRepo := repository.NewGormAdminRepository(db)

	// Events.
	var notifier notify.Notifier = notify.NoopNotifier{}
	var producer *kafka.Producer
	if len(cfg.KafkaBrokers) > 0 && cfg.KafkaBrokers[0] != "" {
		producer = kafka.NewProducer(cfg.KafkaBrokers, log.Named("kafka"))
		defer producer.Close() //nolint:errcheck
		notifier = notify.NewKafkaNotifier(producer, log.Named("notify"))
	} else {
		log.Warn("kafka brokers not configured, events disabled")
	}

	// Distance resolution.
	var resolver distance.Resolver
	if cfg.GoogleAPIKey != "" {
		resolver, err = distance.NewGoogleResolver(cfg.GoogleAPIKey, log.Named("distance"))
		if err != nil {
			log.Fatal("failed to create distance resolver", zap.Error(err))
		}
	} else {
		log.Fatal("BOOKING_GOOGLE_API_KEY is required for moving quotes")
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, tokenTTL)

	// Services.
	discountService := application.NewDiscountService(discountRepo, log.Named("discount"))
	quoteService := application.NewQuoteService(catalogRepo, discountService, resolver, cfg.DepotPostcode, log.Named("quote"))
	bookingService := application.NewBookingService(bookingRepo, lockedRepo, quoteService, discountService, notifier, log.Named("booking"))
	catalogService := application.NewCatalogService(catalogRepo, log.Named("catalog"))
	lockedService := application.NewLockedDateService(lockedRepo, log.Named("schedule"))
	leadService := application.NewLeadService(leadRepo, notifier, log.Named("lead"))
	adminService := application.NewAdminService(adminRepo, jwtManager, log.Named("admin"))

	if cfg.SeedPricing {
		if err := catalogService.Seed(context.Background()); err != nil {
			log.Fatal("failed to seed pricing catalogs", zap.Error(err))
		}
	}

	router := handler.SetupRouter(handler.Handlers{
		Booking:    handler.NewBookingHandler(bookingService, log),
		Quote:      handler.NewQuoteHandler(quoteService, log),
		Discount:   handler.NewDiscountHandler(discountService, log),
		Catalog:    handler.NewCatalogHandler(catalogService, log),
		LockedDate: handler.NewLockedDateHandler(lockedService, log),
		Lead:       handler.NewLeadHandler(leadService, log),
		Admin:      handler.NewAdminHandler(adminService, log),
	}, jwtManager)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info("server listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}
