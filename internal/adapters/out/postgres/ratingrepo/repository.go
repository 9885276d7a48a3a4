// Package ratingrepo persists ratings. The unique index on order_id backs the one rating
// per order rule.
package ratingrepo

import (
	"context"
	"errors"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/rating"
	"parcel/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RatingDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	FromUserID uuid.UUID `gorm:"type:uuid;index;not null"`
	ToUserID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Target     string    `gorm:"size:16;not null"`
	Score      int       `gorm:"not null"`
	Comment    string    `gorm:"size:1000"`
	CreatedAt  time.Time `gorm:"not null"`
}

func (RatingDTO) TableName() string {
	return "ratings"
}

type GormRatingRepository struct {
	db *gorm.DB
}

func NewGormRatingRepository(db *gorm.DB) *GormRatingRepository {
	return &GormRatingRepository{db: db}
}

func (r *GormRatingRepository) Add(ctx context.Context, aggregate *rating.Rating) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := RatingDTO{
		ID:         aggregate.ID().Bytes(),
		OrderID:    aggregate.OrderID().Bytes(),
		FromUserID: aggregate.FromUserID().Bytes(),
		ToUserID:   aggregate.ToUserID().Bytes(),
		Target:     aggregate.Target().String(),
		Score:      aggregate.Score(),
		Comment:    aggregate.Comment(),
		CreatedAt:  aggregate.CreatedAt(),
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause(rating.RuleAlreadyRated, err)
		}
		return err
	}
	return nil
}

func (r *GormRatingRepository) ExistsForOrder(ctx context.Context, orderID kernel.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&RatingDTO{}).Where("order_id = ?", orderID.Bytes()).Count(&count).Error
	return count > 0, err
}

func (r *GormRatingRepository) ScoresForUser(ctx context.Context, userID kernel.UUID) ([]int, error) {
	scores := make([]int, 0)
	err := r.db.WithContext(ctx).Model(&RatingDTO{}).
		Where("to_user_id = ?", userID.Bytes()).
		Order("created_at").
		Pluck("score", &scores).Error
	if err != nil {
		return nil, err
	}
	return scores, nil
}
