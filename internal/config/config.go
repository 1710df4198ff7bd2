// internal/config/config.go
package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type AppConfig struct {
	Name             string `mapstructure:"name"`
	LeaderboardLimit int    `mapstructure:"leaderboard_limit"`
	SeedBadges       bool   `mapstructure:"seed_badges"`
}

// GamificationConfig はXP・レベル・ストリークの各定数です。
// グローバル定数ではなく設定として持つことで、テストでカーブを差し替えられる。
type GamificationConfig struct {
	BaseWorkoutXP    int `mapstructure:"base_workout_xp"`
	XPPerMinute      int `mapstructure:"xp_per_minute"`
	DailyCheckinXP   int `mapstructure:"daily_checkin_xp"`
	LevelCoefficient int `mapstructure:"level_coefficient"`
}

type JWTConfig struct {
	SecretKey      string        `mapstructure:"secret_key"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
}

type AuthConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type MailerConfig struct {
	Type string `mapstructure:"type"`
}

type SESConfig struct {
	Region          string `mapstructure:"region"`
	From            string `mapstructure:"from"`
	AuthType        string `mapstructure:"auth_type"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
}

type Config struct {
	Database     DatabaseConfig     `mapstructure:"database"`
	Server       ServerConfig       `mapstructure:"server"`
	Log          LogConfig          `mapstructure:"log"`
	App          AppConfig          `mapstructure:"app"`
	Gamification GamificationConfig `mapstructure:"gamification"`
	JWT          JWTConfig          `mapstructure:"jwt"`
	Auth         AuthConfig         `mapstructure:"auth"`
	CORS         CORSConfig         `mapstructure:"cors"`
	Mailer       MailerConfig       `mapstructure:"mailer"`
	SES          SESConfig          `mapstructure:"ses"`
}

var Cfg Config

func LoadConfig(path string) error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath(".")

	// 環境変数での上書きを許可する (例: APP_JWT_SECRET_KEY)
	viper.SetEnvPrefix("APP")
	viper.AutomaticEnv()
	viper.BindEnv("database.url", "DATABASE_URL")
	viper.BindEnv("jwt.secret_key", "JWT_SECRET_KEY")
	viper.BindEnv("auth.enabled", "AUTH_ENABLED")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Warning: Config file not found. Using default settings or environment variables if available.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	if err := viper.Unmarshal(&Cfg); err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}

	// --- デフォルト値の設定 ---
	if Cfg.Server.Port == "" {
		log.Println("Server port not set, using default ':8080'")
		Cfg.Server.Port = ":8080"
	}
	if Cfg.App.Name == "" {
		Cfg.App.Name = "FlexFit"
	}
	if Cfg.App.LeaderboardLimit <= 0 {
		log.Println("Leaderboard limit not set or invalid, using default '50'")
		Cfg.App.LeaderboardLimit = 50
	}
	if Cfg.JWT.AccessTokenTTL <= 0 {
		// トークン寿命のデフォルトは7日
		Cfg.JWT.AccessTokenTTL = 7 * 24 * time.Hour
	}
	// ゲーミフィケーション定数のデフォルト
	if Cfg.Gamification.BaseWorkoutXP <= 0 {
		Cfg.Gamification.BaseWorkoutXP = 50
	}
	if Cfg.Gamification.XPPerMinute <= 0 {
		Cfg.Gamification.XPPerMinute = 2
	}
	if Cfg.Gamification.DailyCheckinXP <= 0 {
		Cfg.Gamification.DailyCheckinXP = 20
	}
	if Cfg.Gamification.LevelCoefficient <= 0 {
		Cfg.Gamification.LevelCoefficient = 100
	}
	if Cfg.Database.URL == "" {
		log.Println("Warning: Database URL is not set in config.")
	}

	// Auth.Enabled のデフォルト値を設定 (未設定なら true = 有効 にする)
	if !viper.IsSet("auth.enabled") {
		log.Println("Auth enabled flag not set, defaulting to true (enabled)")
		Cfg.Auth.Enabled = true
	}

	log.Println("Config loaded successfully")
	log.Printf("Server Port: %s", Cfg.Server.Port)
	log.Printf("Leaderboard Limit: %d", Cfg.App.LeaderboardLimit)
	log.Printf("Auth Enabled: %t", Cfg.Auth.Enabled)

	return nil
}
