// internal/gamification/badges.go
package gamification

import (
	"fmt"

	"github.com/slabstech/flex-fit-server/internal/model"

	"github.com/google/uuid"
)

// Progress はバッジ判定に必要なユーザー進捗のスナップショットです。
type Progress struct {
	StreakCount   int
	TotalWorkouts int
}

// EvaluateBadges は全バッジ定義を進捗と突き合わせ、新規に条件を満たした
// バッジを定義順で返します。earned に含まれる獲得済みバッジはスキップする
// ため、同じ入力で繰り返し呼んでも二重授与は起きない (冪等)。
//
// 未知の条件種別は設定エラーとして即座にエラーを返す。バッジ定義は静的な
// 参照データなので、ここに未知の値が届くのはデプロイ時のミスであり、
// 黙ってスキップするより早く落とすほうがよい。
func EvaluateBadges(p Progress, earned map[uuid.UUID]bool, defs []*model.Badge) ([]*model.Badge, error) {
	var newlyEarned []*model.Badge

	for _, badge := range defs {
		if earned[badge.BadgeID] {
			continue
		}

		var satisfied bool
		switch badge.CriteriaKind {
		case model.CriteriaStreak:
			satisfied = p.StreakCount >= badge.CriteriaValue
		case model.CriteriaTotalWorkouts:
			satisfied = p.TotalWorkouts >= badge.CriteriaValue
		default:
			return nil, fmt.Errorf("badge %q has unknown criteria kind %q", badge.Name, badge.CriteriaKind)
		}

		if satisfied {
			newlyEarned = append(newlyEarned, badge)
		}
	}

	return newlyEarned, nil
}
