package historyrepo

import (
	"context"
	"errors"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/order"
	"tracking/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderHistoryRepository implements ports.OrderHistoryRepository.
type GormOrderHistoryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
	now     func() time.Time
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderHistoryRepository works on db, which may be a transaction.
// tracker may be nil.
func NewGormOrderHistoryRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderHistoryRepository {
	return &GormOrderHistoryRepository{
		db:      db,
		tracker: tracker,
		now:     time.Now,
	}
}

// Add upserts the order and replaces its items. RecordedAt is refreshed, so
// a re-added order moves to the top of List.
func (r *GormOrderHistoryRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate, r.now())
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", dto.ID).Delete(&ItemDTO{}).Error; err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&dto).Error
	})
	if err != nil {
		return err
	}

	if r.tracker != nil {
		r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	}
	return nil
}

// List returns orders by RecordedAt, newest first.
func (r *GormOrderHistoryRepository) List(ctx context.Context, limit int) ([]*order.Order, error) {
	query := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Order("recorded_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var dtos []OrderDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *GormOrderHistoryRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// DeleteOlderThan removes orders placed before cutoff; items go with them
// through the foreign key cascade.
func (r *GormOrderHistoryRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	result := r.db.WithContext(ctx).Where("placed_at < ?", cutoff.UTC()).Delete(&OrderDTO{})
	if result.Error != nil {
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}
