// internal/gamification/xp.go
package gamification

import (
	"fmt"

	"github.com/slabstech/flex-fit-server/internal/model"
)

// XPForWorkout はワークアウト1件で獲得するXPを返します。
// 固定ベース + 分単位ボーナス。calories は受け取るが現状は結果に影響しない
// (将来の重み付け用に予約)。
// durationMin が負の場合は ErrInvalidInput。
func (r Rules) XPForWorkout(durationMin int, calories *int) (int, error) {
	if durationMin < 0 {
		return 0, fmt.Errorf("duration_min must not be negative: %w", model.ErrInvalidInput)
	}
	_ = calories
	return r.BaseWorkoutXP + r.XPPerMinute*durationMin, nil
}
