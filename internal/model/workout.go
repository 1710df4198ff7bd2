// internal/model/workout.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Workout は1回のワークアウト記録を表します。作成後は不変。
type Workout struct {
	WorkoutID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"workout_id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	WorkoutType string    `gorm:"not null" json:"workout_type"` // cardio, strength など
	DurationMin int       `gorm:"not null" json:"duration_min"`
	Calories    *int      `json:"calories,omitempty"` // 任意入力
	CreatedAt   time.Time `json:"created_at"`

	// 関連 (Preload用)
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"-"`
}

func (Workout) TableName() string {
	return "workouts"
}

// LogWorkoutRequest はワークアウト記録リクエストDTO
type LogWorkoutRequest struct {
	WorkoutType string `json:"workout_type" validate:"required,min=1,max=100"`
	DurationMin int    `json:"duration_min" validate:"required,gt=0"`
	Calories    *int   `json:"calories,omitempty" validate:"omitempty,gte=0"`
}

// GamificationResult はワークアウト1件の反映結果サマリです。
// XPGained にはデイリーチェックインのボーナスを含む。
type GamificationResult struct {
	StreakCount int      `json:"streak_count"`
	XPGained    int      `json:"xp_earned"`
	LevelUp     bool     `json:"level_up"`
	NewLevel    *int     `json:"new_level,omitempty"` // レベルアップ時のみ
	NewBadges   []string `json:"new_badges"`
}

// LogWorkoutResponse はワークアウト記録APIのレスポンスDTO
type LogWorkoutResponse struct {
	WorkoutID    uuid.UUID          `json:"workout_id"`
	WorkoutType  string             `json:"workout_type"`
	DurationMin  int                `json:"duration_min"`
	Calories     *int               `json:"calories,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	Gamification GamificationResult `json:"gamification"`
}

// WorkoutResponse はワークアウト履歴1件分のDTO
type WorkoutResponse struct {
	WorkoutID   uuid.UUID `json:"workout_id"`
	WorkoutType string    `json:"workout_type"`
	DurationMin int       `json:"duration_min"`
	Calories    *int      `json:"calories,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
