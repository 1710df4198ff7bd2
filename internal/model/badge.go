// internal/model/badge.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// BadgeCriteria はバッジ獲得条件の種別です。文字列タグでの暗黙ディスパッチを
// やめ、閉じた列挙として扱う。未知の種別は設定ミスであり、読み込み時に
// Valid() で検出する。
type BadgeCriteria string

const (
	CriteriaStreak        BadgeCriteria = "streak"
	CriteriaTotalWorkouts BadgeCriteria = "total_workouts"
)

func (c BadgeCriteria) Valid() bool {
	switch c {
	case CriteriaStreak, CriteriaTotalWorkouts:
		return true
	}
	return false
}

// Badge はバッジ定義 (静的な参照データ) を表します
type Badge struct {
	BadgeID       uuid.UUID     `gorm:"type:uuid;primaryKey" json:"badge_id"`
	Name          string        `gorm:"unique;not null" json:"name"`
	Description   string        `json:"description"`
	IconURL       string        `json:"icon_url"`
	CriteriaKind  BadgeCriteria `gorm:"type:varchar(50);not null" json:"criteria_kind"`
	CriteriaValue int           `gorm:"not null" json:"criteria_value"` // 例: 7日ストリークなら7
	CreatedAt     time.Time     `json:"created_at"`
}

func (Badge) TableName() string {
	return "badges"
}

// UserBadge はユーザーのバッジ獲得記録を表します。追記専用で取り消されない。
// (user, badge) の組につき高々1件 — 一意性は評価器が獲得済み集合に対して保証する。
type UserBadge struct {
	UserBadgeID uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_badge_id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index:idx_user_badge,unique" json:"-"`
	BadgeID     uuid.UUID `gorm:"type:uuid;not null;index:idx_user_badge,unique" json:"-"`
	EarnedAt    time.Time `json:"earned_at"`

	// 関連 (Preload用)
	Badge *Badge `gorm:"foreignKey:BadgeID;references:BadgeID" json:"-"`
}

func (UserBadge) TableName() string {
	return "user_badges"
}

// BadgeResponse は獲得済みバッジ1件分のDTO
type BadgeResponse struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IconURL     string    `json:"icon_url"`
	EarnedAt    time.Time `json:"earned_at"`
}
