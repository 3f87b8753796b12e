//go:build integration

package main_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/nordstad/booking-backend/internal/application"
	"github.com/nordstad/booking-backend/internal/distance"
	bookingDomain "github.com/nordstad/booking-backend/internal/domain/booking"
	"github.com/nordstad/booking-backend/internal/notify"
	"github.com/nordstad/booking-backend/internal/repository"
)

// testInfra holds shared test infrastructure.
type testInfra struct {
	DB      *gorm.DB
	Cleanup func()
}

// setupPostgres starts a PostgreSQL testcontainer, connects GORM and runs
// the migrations.
func setupPostgres(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test_booking",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "failed to start PostgreSQL container")

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=test password=test dbname=test_booking sslmode=disable", host, port.Port())

	var db *gorm.DB
	require.Eventually(t, func() bool {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return false
		}
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, 30*time.Second, 1*time.Second, "PostgreSQL not ready for connections")

	require.NoError(t, db.AutoMigrate(
		&repository.BookingModel{},
		&repository.BookingSequenceModel{},
		&repository.CatalogModel{},
		&repository.DiscountCodeModel{},
		&repository.LockedDateModel{},
	))

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate PostgreSQL container: %v", err)
		}
	}
	return &testInfra{DB: db, Cleanup: cleanup}
}

// fixedResolver returns a constant distance for every lookup. Quotes hit the
// real resolver interface without network traffic.
type fixedResolver struct {
	km float64
}

func (r fixedResolver) Resolve(ctx context.Context, origin, dest string) (float64, error) {
	return r.km, nil
}

// bookingStack holds the wired-up booking service on top of a real database.
type bookingStack struct {
	Bookings  *application.BookingService
	Discounts *application.DiscountService
	Catalogs  *application.CatalogService
	Repo      *repository.GormBookingRepository
}

// setupBookingStack wires the booking service with real repositories, a fixed
// distance resolver and no event stream.
func setupBookingStack(t *testing.T, db *gorm.DB) *bookingStack {
	t.Helper()
	logger := zap.NewNop()

	bookingRepo := repository.NewGormBookingRepository(db)
	catalogRepo := repository.NewGormCatalogRepository(db)
	discountRepo := repository.NewGormDiscountRepository(db)
	lockedRepo := repository.NewGormLockedDateRepository(db)

	catalogSvc := application.NewCatalogService(catalogRepo, logger)
	require.NoError(t, catalogSvc.Seed(context.Background()))

	var resolver distance.Resolver = fixedResolver{km: 20}
	discountSvc := application.NewDiscountService(discountRepo, logger)
	quoteSvc := application.NewQuoteService(catalogRepo, discountSvc, resolver, "75430", logger)
	bookingSvc := application.NewBookingService(bookingRepo, lockedRepo, quoteSvc, discountSvc, notify.NoopNotifier{}, logger)

	return &bookingStack{
		Bookings:  bookingSvc,
		Discounts: discountSvc,
		Catalogs:  catalogSvc,
		Repo:      bookingRepo,
	}
}

// cleaningSubmission builds a valid cleaning booking submission.
func cleaningSubmission(email, date string) application.SubmitBookingParams {
	return application.SubmitBookingParams{
		ServiceLine: "cleaning",
		Size:        60,
		From: bookingDomain.Address{
			Postcode: "75430",
			HomeType: bookingDomain.HomeApartment,
			Floor:    "2",
			Access:   bookingDomain.AccessElevator,
		},
		Customer: bookingDomain.Customer{Name: "Test Person", Email: email},
		Date:     date,
	}
}
