package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nordstad/booking-backend/internal/domain"
	"github.com/nordstad/booking-backend/internal/domain/schedule"
)

// LockedDateModel is the GORM model for the locked_dates table. A day can be
// locked at most once per service line.
type LockedDateModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ServiceLine string    `gorm:"not null;size:30;uniqueIndex:idx_line_date"`
	Date        time.Time `gorm:"not null;uniqueIndex:idx_line_date"`
	Reason      string    `gorm:"size:500"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (LockedDateModel) TableName() string {
	return "locked_dates"
}

// GormLockedDateRepository is the GORM-based implementation of LockedDateRepository.
type GormLockedDateRepository struct {
	db *gorm.DB
}

// NewGormLockedDateRepository creates a new GormLockedDateRepository.
func NewGormLockedDateRepository(db *gorm.DB) *GormLockedDateRepository {
	return &GormLockedDateRepository{db: db}
}

// IsLocked reports whether the calendar day of date is blocked for a line.
func (r *GormLockedDateRepository) IsLocked(ctx context.Context, line domain.ServiceLine, date time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&LockedDateModel{}).
		Where("service_line = ? AND date = ?", string(line), schedule.Day(date)).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check locked date: %w", err)
	}
	return count > 0, nil
}

// Create persists a locked date. Locking an already-locked day is a conflict.
func (r *GormLockedDateRepository) Create(ctx context.Context, ld *schedule.LockedDate) error {
	model := &LockedDateModel{
		ID:          ld.ID,
		ServiceLine: string(ld.ServiceLine),
		Date:        ld.Date,
		Reason:      ld.Reason,
		CreatedAt:   ld.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflictError(fmt.Sprintf("date %s is already locked for %s", ld.Date.Format("2006-01-02"), ld.ServiceLine))
		}
		return fmt.Errorf("failed to create locked date: %w", err)
	}
	return nil
}

// Delete unlocks a day by id.
func (r *GormLockedDateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&LockedDateModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete locked date: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("locked date", id.String())
	}
	return nil
}

// List returns locked dates for a line in ascending date order, optionally
// only from today onward.
func (r *GormLockedDateRepository) List(ctx context.Context, line domain.ServiceLine, futureOnly bool) ([]*schedule.LockedDate, error) {
	query := r.db.WithContext(ctx).Where("service_line = ?", string(line))
	if futureOnly {
		query = query.Where("date >= ?", schedule.Day(time.Now().UTC()))
	}

	var models []LockedDateModel
	if err := query.Order("date ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list locked dates: %w", err)
	}

	dates := make([]*schedule.LockedDate, len(models))
	for i, m := range models {
		l, err := domain.ParseServiceLine(m.ServiceLine)
		if err != nil {
			return nil, err
		}
		dates[i] = &schedule.LockedDate{
			ID:          m.ID,
			ServiceLine: l,
			Date:        m.Date,
			Reason:      m.Reason,
			CreatedAt:   m.CreatedAt,
		}
	}
	return dates, nil
}

// DeletePast removes locked dates before today across all service lines.
func (r *GormLockedDateRepository) DeletePast(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("date < ?", schedule.Day(time.Now().UTC())).
		Delete(&LockedDateModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete past locked dates: %w", result.Error)
	}
	return result.RowsAffected, nil
}

var _ schedule.LockedDateRepository = (*GormLockedDateRepository)(nil)
