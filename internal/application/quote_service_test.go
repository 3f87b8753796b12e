package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nordstad/booking-backend/internal/domain"
	"github.com/nordstad/booking-backend/internal/domain/pricing"
)

const depotPostcode = "75430"

func newQuoteService(catalogs *mockCatalogRepo, discounts *mockDiscountRepo, resolver *mockResolver) *QuoteService {
	discountService := NewDiscountService(discounts, zap.NewNop())
	return NewQuoteService(catalogs, discountService, resolver, depotPostcode, zap.NewNop())
}

func TestQuote_MovingResolvesBothLegs(t *testing.T) {
	catalogs := new(mockCatalogRepo)
	discounts := new(mockDiscountRepo)
	resolver := new(mockResolver)

	catalog := pricing.DefaultMovingCatalog()
	catalogs.On("GetByLine", mock.Anything, domain.ServiceMoving).Return(&catalog, nil)
	resolver.On("Resolve", mock.Anything, "11122", "22211").Return(51.0, nil)
	resolver.On("Resolve", mock.Anything, depotPostcode, "11122").Return(10.0, nil)

	svc := newQuoteService(catalogs, discounts, resolver)
	snapshot, err := svc.Quote(context.Background(), domain.ServiceMoving, QuoteRequest{
		Size:         40,
		FromPostcode: "11122",
		ToPostcode:   "22211",
	})
	require.NoError(t, err)

	// 51 km outbound charges 20 km at 10 kr; the depot leg is free.
	assert.Equal(t, int64(2500), snapshot.Totals.Base)
	assert.Equal(t, int64(200), snapshot.Totals.Travel)
	resolver.AssertNumberOfCalls(t, "Resolve", 2)
}

func TestQuote_CleaningSkipsDistanceResolution(t *testing.T) {
	catalogs := new(mockCatalogRepo)
	discounts := new(mockDiscountRepo)
	resolver := new(mockResolver)

	catalog := pricing.DefaultCleaningCatalog()
	catalogs.On("GetByLine", mock.Anything, domain.ServiceCleaning).Return(&catalog, nil)

	svc := newQuoteService(catalogs, discounts, resolver)
	snapshot, err := svc.Quote(context.Background(), domain.ServiceCleaning, QuoteRequest{
		Size:         60,
		FromPostcode: "11122",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2580), snapshot.Totals.GrandTotal)
	resolver.AssertNotCalled(t, "Resolve")
}

func TestQuote_MissingCatalogIsConfigurationError(t *testing.T) {
	catalogs := new(mockCatalogRepo)
	discounts := new(mockDiscountRepo)
	resolver := new(mockResolver)

	catalogs.On("GetByLine", mock.Anything, domain.ServiceCleaning).
		Return(nil, domain.NewNotFoundError("pricing catalog", "cleaning"))

	svc := newQuoteService(catalogs, discounts, resolver)
	_, err := svc.Quote(context.Background(), domain.ServiceCleaning, QuoteRequest{Size: 60})
	require.Error(t, err)
	assert.Equal(t, domain.KindConfiguration, domain.KindOf(err))
}

func TestQuote_ResolverFailureSurfaces(t *testing.T) {
	catalogs := new(mockCatalogRepo)
	discounts := new(mockDiscountRepo)
	resolver := new(mockResolver)

	catalog := pricing.DefaultMovingCatalog()
	catalogs.On("GetByLine", mock.Anything, domain.ServiceMoving).Return(&catalog, nil)
	resolver.On("Resolve", mock.Anything, "11122", "22211").
		Return(0.0, domain.NewUpstreamError("could not reach distance provider"))

	svc := newQuoteService(catalogs, discounts, resolver)
	_, err := svc.Quote(context.Background(), domain.ServiceMoving, QuoteRequest{
		Size:         40,
		FromPostcode: "11122",
		ToPostcode:   "22211",
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindUpstream, domain.KindOf(err))
}

func TestQuote_WithDiscountCode(t *testing.T) {
	catalogs := new(mockCatalogRepo)
	discounts := new(mockDiscountRepo)
	resolver := new(mockResolver)

	catalog := pricing.DefaultCleaningCatalog()
	catalogs.On("GetByLine", mock.Anything, domain.ServiceCleaning).Return(&catalog, nil)
	discounts.On("FindByCode", mock.Anything, "SUMMER24").Return(percentageCode("SUMMER24", 20), nil)

	svc := newQuoteService(catalogs, discounts, resolver)
	snapshot, err := svc.Quote(context.Background(), domain.ServiceCleaning, QuoteRequest{
		Size:         60,
		DiscountCode: "SUMMER24",
	})
	require.NoError(t, err)

	// 60 × 43 = 2580, 20% off = 516.
	assert.Equal(t, int64(516), snapshot.Totals.Discount)
	assert.Equal(t, int64(2064), snapshot.Totals.GrandTotal)
	assert.Equal(t, snapshot.Totals.GrandTotal, snapshot.SumLines())
}

func TestQuote_RejectedDiscountFailsQuote(t *testing.T) {
	catalogs := new(mockCatalogRepo)
	discounts := new(mockDiscountRepo)
	resolver := new(mockResolver)

	catalog := pricing.DefaultCleaningCatalog()
	catalogs.On("GetByLine", mock.Anything, domain.ServiceCleaning).Return(&catalog, nil)
	code := percentageCode("OLD", 20)
	code.IsActive = false
	discounts.On("FindByCode", mock.Anything, "OLD").Return(code, nil)

	svc := newQuoteService(catalogs, discounts, resolver)
	_, err := svc.Quote(context.Background(), domain.ServiceCleaning, QuoteRequest{
		Size:         60,
		DiscountCode: "OLD",
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindDiscountRejected, domain.KindOf(err))
}

func TestQuote_InvalidServiceLine(t *testing.T) {
	svc := newQuoteService(new(mockCatalogRepo), new(mockDiscountRepo), new(mockResolver))
	_, err := svc.Quote(context.Background(), "plumbing", QuoteRequest{Size: 40})
	require.Error(t, err)
	assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))
}
