package application

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nordstad/booking-backend/internal/domain"
	"github.com/nordstad/booking-backend/internal/domain/schedule"
)

// fakeLockedDateRepo is an in-memory LockedDateRepository keyed by
// service line and day.
type fakeLockedDateRepo struct {
	locked map[string]*schedule.LockedDate
}

func newFakeLockedDateRepo() *fakeLockedDateRepo {
	return &fakeLockedDateRepo{locked: make(map[string]*schedule.LockedDate)}
}

func lockKey(line domain.ServiceLine, date time.Time) string {
	return string(line) + "|" + schedule.Day(date).Format("2006-01-02")
}

func (f *fakeLockedDateRepo) IsLocked(ctx context.Context, line domain.ServiceLine, date time.Time) (bool, error) {
	_, ok := f.locked[lockKey(line, date)]
	return ok, nil
}

func (f *fakeLockedDateRepo) Create(ctx context.Context, ld *schedule.LockedDate) error {
	key := lockKey(ld.ServiceLine, ld.Date)
	if _, ok := f.locked[key]; ok {
		return domain.NewConflictError("date already locked")
	}
	f.locked[key] = ld
	return nil
}

func (f *fakeLockedDateRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for key, ld := range f.locked {
		if ld.ID == id {
			delete(f.locked, key)
			return nil
		}
	}
	return domain.NewNotFoundError("locked date", id.String())
}

func (f *fakeLockedDateRepo) List(ctx context.Context, line domain.ServiceLine, futureOnly bool) ([]*schedule.LockedDate, error) {
	var out []*schedule.LockedDate
	for _, ld := range f.locked {
		if ld.ServiceLine == line {
			out = append(out, ld)
		}
	}
	return out, nil
}

func (f *fakeLockedDateRepo) DeletePast(ctx context.Context) (int64, error) {
	today := schedule.Day(time.Now().UTC())
	var removed int64
	for key, ld := range f.locked {
		if ld.Date.Before(today) {
			delete(f.locked, key)
			removed++
		}
	}
	return removed, nil
}

func futureDate(days int) string {
	return time.Now().UTC().AddDate(0, 0, days).Format("2006-01-02")
}

func TestLock(t *testing.T) {
	repo := newFakeLockedDateRepo()
	svc := NewLockedDateService(repo, zap.NewNop())

	ld, err := svc.Lock(context.Background(), domain.ServiceMoving, futureDate(7), "fully booked")
	require.NoError(t, err)

	assert.Equal(t, domain.ServiceMoving, ld.ServiceLine)
	assert.Equal(t, "fully booked", ld.Reason)
	// Stored at midnight UTC.
	assert.Equal(t, 0, ld.Date.Hour())

	locked, err := svc.IsLocked(context.Background(), domain.ServiceMoving, futureDate(7))
	require.NoError(t, err)
	assert.True(t, locked)

	// Same day on another line stays open.
	locked, err = svc.IsLocked(context.Background(), domain.ServiceCleaning, futureDate(7))
	require.NoError(t, err)
	assert.False(t, locked)
}

func TestLock_PastDateRejected(t *testing.T) {
	svc := NewLockedDateService(newFakeLockedDateRepo(), zap.NewNop())

	_, err := svc.Lock(context.Background(), domain.ServiceMoving, "2020-01-01", "")
	require.Error(t, err)
	assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))
}

func TestLock_DoubleLockConflicts(t *testing.T) {
	svc := NewLockedDateService(newFakeLockedDateRepo(), zap.NewNop())

	_, err := svc.Lock(context.Background(), domain.ServiceMoving, futureDate(7), "")
	require.NoError(t, err)

	_, err = svc.Lock(context.Background(), domain.ServiceMoving, futureDate(7), "")
	require.Error(t, err)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
}

func TestLockRange(t *testing.T) {
	repo := newFakeLockedDateRepo()
	svc := NewLockedDateService(repo, zap.NewNop())

	created, err := svc.LockRange(context.Background(), domain.ServiceMoving, futureDate(10), futureDate(12), "holiday")
	require.NoError(t, err)
	assert.Len(t, created, 3)
}

func TestLockRange_SkipsAlreadyLockedDays(t *testing.T) {
	repo := newFakeLockedDateRepo()
	svc := NewLockedDateService(repo, zap.NewNop())

	_, err := svc.Lock(context.Background(), domain.ServiceMoving, futureDate(11), "")
	require.NoError(t, err)

	created, err := svc.LockRange(context.Background(), domain.ServiceMoving, futureDate(10), futureDate(12), "holiday")
	require.NoError(t, err)
	assert.Len(t, created, 2)
}

func TestLockRange_RejectsInvertedRange(t *testing.T) {
	svc := NewLockedDateService(newFakeLockedDateRepo(), zap.NewNop())
	_, err := svc.LockRange(context.Background(), domain.ServiceMoving, futureDate(12), futureDate(10), "")
	require.Error(t, err)
}

func TestCleanupPast(t *testing.T) {
	repo := newFakeLockedDateRepo()
	past, err := schedule.NewLockedDate(domain.ServiceMoving, time.Now().UTC().AddDate(0, 0, 3), "")
	require.NoError(t, err)
	past.Date = schedule.Day(time.Now().UTC().AddDate(0, 0, -3))
	require.NoError(t, repo.Create(context.Background(), past))

	svc := NewLockedDateService(repo, zap.NewNop())
	removed, err := svc.CleanupPast(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
}

func TestNewLockedDate_TruncatesToDay(t *testing.T) {
	ld, err := schedule.NewLockedDate(domain.ServiceCleaning, time.Now().UTC().Add(48*time.Hour), "")
	require.NoError(t, err)
	assert.Equal(t, 0, ld.Date.Hour())
	assert.Equal(t, 0, ld.Date.Minute())
}
