package driverrepo

import (
	"context"
	"errors"

	"parcel/internal/core/domain/model/driver"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const RuleDriverProfileExists = "user already has a driver profile"

type GormDriverRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormDriverRepository(db *gorm.DB, tracker aggregateTracker) *GormDriverRepository {
	return &GormDriverRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormDriverRepository) Add(ctx context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause(RuleDriverProfileExists, err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update applies the versioned profile write first, so a lost race touches no documents.
// Documents dropped from the aggregate are deleted before the rest are upserted, which
// keeps the one-row-per-type index satisfied when a document is replaced.
func (r *GormDriverRepository) Update(ctx context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&DriverDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Updates(map[string]any{
			"vehicle_type":     dto.VehicleType,
			"is_verified":      dto.IsVerified,
			"is_active":        dto.IsActive,
			"is_online":        dto.IsOnline,
			"total_deliveries": dto.TotalDeliveries,
			"earnings":         dto.Earnings,
			"average_rating":   dto.AverageRating,
			"version":          aggregate.Version() + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.missingOrStale(ctx, aggregate.ID())
	}

	keep := make([]uuid.UUID, 0, len(dto.Documents))
	for _, doc := range dto.Documents {
		keep = append(keep, doc.ID)
	}
	remove := db.Where("driver_id = ?", dto.ID)
	if len(keep) > 0 {
		remove = remove.Where("id NOT IN ?", keep)
	}
	if err := remove.Delete(&DocumentDTO{}).Error; err != nil {
		return err
	}

	if len(dto.Documents) > 0 {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"file_ref", "status", "rejection_reason", "verified_at"}),
		}).Create(&dto.Documents).Error
		if err != nil {
			return err
		}
	}

	aggregate.BumpVersion()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "driver", id, "id = ?", id.Bytes())
}

func (r *GormDriverRepository) GetByUserID(ctx context.Context, userID kernel.UUID) (*driver.Driver, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "driver", userID, "user_id = ?", userID.Bytes())
}

func (r *GormDriverRepository) GetByDocumentID(ctx context.Context, documentID kernel.UUID) (*driver.Driver, error) {
	if err := documentID.Validate(); err != nil {
		return nil, err
	}
	owner := r.db.WithContext(ctx).Model(&DocumentDTO{}).Select("driver_id").Where("id = ?", documentID.Bytes())
	return r.first(ctx, "document", documentID, "id = (?)", owner)
}

func (r *GormDriverRepository) first(ctx context.Context, param string, key kernel.UUID, query string, args ...any) (*driver.Driver, error) {
	var dto DriverDTO
	err := r.db.WithContext(ctx).
		Preload("Documents", func(db *gorm.DB) *gorm.DB { return db.Order("uploaded_at") }).
		Where(query, args...).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(param, key.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormDriverRepository) missingOrStale(ctx context.Context, id kernel.UUID) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&DriverDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("driver", id.String())
	}
	return errs.NewVersionIsInvalidError("driver")
}
