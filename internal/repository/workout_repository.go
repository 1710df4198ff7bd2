//go:generate mockery --name WorkoutRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"fmt"

	"github.com/slabstech/flex-fit-server/internal/middleware"
	"github.com/slabstech/flex-fit-server/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkoutRepository インターフェース
type WorkoutRepository interface {
	Create(ctx context.Context, tx *gorm.DB, workout *model.Workout) error
	FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.Workout, error)
}

type gormWorkoutRepository struct{}

func NewGormWorkoutRepository() WorkoutRepository {
	return &gormWorkoutRepository{}
}

func (r *gormWorkoutRepository) Create(ctx context.Context, tx *gorm.DB, workout *model.Workout) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(workout)
	if result.Error != nil {
		logger.Error("Error creating workout in DB",
			"error", result.Error,
			"user_id", workout.UserID.String(),
			"workout_type", workout.WorkoutType,
		)
		return fmt.Errorf("gormWorkoutRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormWorkoutRepository) FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.Workout, error) {
	logger := middleware.GetLogger(ctx)
	var workouts []*model.Workout
	// 新しい順に返す
	result := db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&workouts)
	if result.Error != nil {
		logger.Error("Error finding workouts by user in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormWorkoutRepository.FindByUser: %w", result.Error)
	}
	return workouts, nil
}
