// internal/gamification/streak.go
package gamification

import "time"

// StreakTransition はストリーク状態機械の遷移結果です。
type StreakTransition int

const (
	// StreakUnchanged は同日2回目以降の呼び出し。状態は一切変更しない
	// (チェックインボーナスもこの場合は付与しない)。
	StreakUnchanged StreakTransition = iota
	// StreakContinued は前回チェックインのちょうど翌日。カウント+1。
	StreakContinued
	// StreakReset は初回、または1日を超える空白のあと。カウントは1に戻る
	// (当日のワークアウト自体が新しいストリークの1日目として数えられる)。
	StreakReset
)

// DateOf はタイムスタンプを日付 (その日の00:00 UTC) に丸めます。
// ストリーク判定は暦日単位で行う。
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NextStreak は前回チェックイン日とストリーク数に対し、today 時点の遷移を
// 適用した新しいストリーク数と遷移種別を返します。状態の書き戻し
// (last_checkin_date の更新とボーナス付与) は呼び出し側の責務。
func NextStreak(lastCheckin *time.Time, streakCount int, today time.Time) (int, StreakTransition) {
	todayDate := DateOf(today)

	if lastCheckin == nil {
		return 1, StreakReset
	}

	lastDate := DateOf(*lastCheckin)
	switch days := int(todayDate.Sub(lastDate).Hours() / 24); {
	case days == 0:
		// 当日処理済み。二重インクリメント防止のため何もしない。
		return streakCount, StreakUnchanged
	case days == 1:
		return streakCount + 1, StreakContinued
	default:
		// 過去日付のチェックインも含め、連続していないものはリセット扱い。
		return 1, StreakReset
	}
}
