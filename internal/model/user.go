// internal/model/user.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User はユーザーの基本情報とゲーミフィケーションの進捗を表します。
// Level は XP からの導出値であり、レスポンス生成時は常に再計算した値を使う
// (XPを帯域外で調整した場合のズレを防ぐため)。
type User struct {
	UserID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	Email        string    `gorm:"unique;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`

	// ゲーミフィケーションの進捗
	XP              int        `gorm:"not null;default:0" json:"xp"`
	Level           int        `gorm:"not null;default:1" json:"level"`
	StreakCount     int        `gorm:"not null;default:0" json:"streak_count"`
	LastCheckinDate *time.Time `gorm:"type:date" json:"last_checkin_date,omitempty"`
	TotalWorkouts   int        `gorm:"not null;default:0" json:"total_workouts"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"` // 論理削除用

	// 関連 (Preload用)
	Workouts   []Workout   `gorm:"foreignKey:UserID" json:"-"`
	UserBadges []UserBadge `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string {
	return "users"
}

type ContextKey string

const (
	UserIDKey ContextKey = "userID"
)

// RegisterRequest は新規登録APIのリクエストボディの構造体 (DTO)
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// UserResponse はクライアントに返すユーザー情報の構造体
type UserResponse struct {
	UserID        uuid.UUID `json:"user_id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	Level         int       `json:"level"`
	XP            int       `json:"xp"`
	StreakCount   int       `json:"streak_count"`
	TotalWorkouts int       `json:"total_workouts"`
	CreatedAt     time.Time `json:"created_at"`
}

// DashboardResponse はダッシュボードAPIのレスポンスDTO (プロフィール + 獲得バッジ)
type DashboardResponse struct {
	UserResponse
	Badges []BadgeResponse `json:"badges"`
}

// GamificationStatusResponse は進捗確認APIのレスポンスDTO
type GamificationStatusResponse struct {
	XP              int        `json:"xp"`
	Level           int        `json:"level"`
	StreakCount     int        `json:"streak_count"`
	LastCheckinDate *time.Time `json:"last_checkin_date,omitempty"`
	NextLevelXP     int        `json:"next_level_xp"`
	XPToNextLevel   int        `json:"xp_to_next_level"`
}

// LeaderboardEntry はリーダーボード1行分のDTO
type LeaderboardEntry struct {
	Username    string `json:"username"`
	Level       int    `json:"level"`
	XP          int    `json:"xp"`
	StreakCount int    `json:"streak_count"`
}
