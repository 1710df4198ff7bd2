// internal/gamification/rules.go
package gamification

// Rules はXP計算・レベルカーブ・デイリーチェックインの定数一式です。
// パッケージ変数ではなく値として持ち回ることで、テストや将来のカーブ変更で
// グローバル状態に触らずに済む。
type Rules struct {
	BaseWorkoutXP    int // ワークアウト1件あたりの固定XP
	XPPerMinute      int // 1分あたりの加算XP
	DailyCheckinXP   int // 1日1回のチェックインボーナス
	LevelCoefficient int // レベルカーブの係数 (必要XP = 係数 × level²)
}

// DefaultRules は標準の定数一式を返します。設定ファイル未指定時の値と一致する。
func DefaultRules() Rules {
	return Rules{
		BaseWorkoutXP:    50,
		XPPerMinute:      2,
		DailyCheckinXP:   20,
		LevelCoefficient: 100,
	}
}
