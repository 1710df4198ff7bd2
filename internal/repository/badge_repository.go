//go:generate mockery --name BadgeRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"fmt"

	"github.com/slabstech/flex-fit-server/internal/middleware"
	"github.com/slabstech/flex-fit-server/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BadgeRepository インターフェース
type BadgeRepository interface {
	FindAll(ctx context.Context, db *gorm.DB) ([]*model.Badge, error)
	// FindEarnedBadgeIDs はユーザーが獲得済みのバッジIDの集合を返します。
	FindEarnedBadgeIDs(ctx context.Context, db *gorm.DB, userID uuid.UUID) (map[uuid.UUID]bool, error)
	CreateUserBadge(ctx context.Context, tx *gorm.DB, userBadge *model.UserBadge) error
	// FindEarnedWithBadge はバッジ定義をプリロードして獲得履歴を返します。
	FindEarnedWithBadge(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.UserBadge, error)
}

type gormBadgeRepository struct{}

func NewGormBadgeRepository() BadgeRepository {
	return &gormBadgeRepository{}
}

func (r *gormBadgeRepository) FindAll(ctx context.Context, db *gorm.DB) ([]*model.Badge, error) {
	logger := middleware.GetLogger(ctx)
	var badges []*model.Badge
	result := db.WithContext(ctx).Order("created_at ASC").Find(&badges)
	if result.Error != nil {
		logger.Error("Error finding badges in DB", "error", result.Error)
		return nil, fmt.Errorf("gormBadgeRepository.FindAll: %w", result.Error)
	}
	return badges, nil
}

func (r *gormBadgeRepository) FindEarnedBadgeIDs(ctx context.Context, db *gorm.DB, userID uuid.UUID) (map[uuid.UUID]bool, error) {
	logger := middleware.GetLogger(ctx)
	var ids []uuid.UUID
	result := db.WithContext(ctx).Model(&model.UserBadge{}).Where("user_id = ?", userID).Pluck("badge_id", &ids)
	if result.Error != nil {
		logger.Error("Error finding earned badge IDs in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormBadgeRepository.FindEarnedBadgeIDs: %w", result.Error)
	}
	earned := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		earned[id] = true
	}
	return earned, nil
}

func (r *gormBadgeRepository) CreateUserBadge(ctx context.Context, tx *gorm.DB, userBadge *model.UserBadge) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(userBadge)
	if result.Error != nil {
		logger.Error("Error creating user badge in DB",
			"error", result.Error,
			"user_id", userBadge.UserID.String(),
			"badge_id", userBadge.BadgeID.String(),
		)
		return fmt.Errorf("gormBadgeRepository.CreateUserBadge: %w", result.Error)
	}
	return nil
}

func (r *gormBadgeRepository) FindEarnedWithBadge(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.UserBadge, error) {
	logger := middleware.GetLogger(ctx)
	var userBadges []*model.UserBadge
	result := db.WithContext(ctx).
		Preload("Badge").
		Where("user_id = ?", userID).
		Order("earned_at ASC").
		Find(&userBadges)
	if result.Error != nil {
		logger.Error("Error finding earned badges in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormBadgeRepository.FindEarnedWithBadge: %w", result.Error)
	}
	return userBadges, nil
}
