package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Auth     AuthConfig
	SMTP     SMTPConfig
	OAuth    OAuthConfig
	Recorder RecorderConfig
	Advisor  AdvisorConfig
	Scraper  ScraperConfig
	Lead     LeadConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type AuthConfig struct {
	JwtSecret string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type OAuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	RedirectURL        string
}

type RecorderConfig struct {
	Device     string // "simulated" or "remote"
	Tick       time.Duration
	SessionTTL time.Duration
}

type AdvisorConfig struct {
	CommercialDelay time.Duration
	RobinDelay      time.Duration
}

type ScraperConfig struct {
	StepDelay time.Duration
}

type LeadConfig struct {
	Topic string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Auth: AuthConfig{
			JwtSecret: getEnv("JWT_SECRET", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "RobinRocks"),
		},
		OAuth: OAuthConfig{
			GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			RedirectURL:        getEnv("OAUTH_REDIRECT_URL", "http://localhost:3000/api/personalization/connectors/oauth/callback"),
		},
		Recorder: RecorderConfig{
			Device:     getEnv("RECORDER_DEVICE", "simulated"),
			Tick:       getEnvAsMillis("RECORDER_TICK_MS", time.Second),
			SessionTTL: time.Duration(getEnvAsInt("RECORDER_SESSION_TTL_MIN", 120)) * time.Minute,
		},
		Advisor: AdvisorConfig{
			CommercialDelay: getEnvAsMillis("ADVISOR_REPLY_DELAY_MS", 1500*time.Millisecond),
			RobinDelay:      getEnvAsMillis("ROBIN_REPLY_DELAY_MS", time.Second),
		},
		Scraper: ScraperConfig{
			StepDelay: getEnvAsMillis("SCRAPER_STEP_DELAY_MS", 2*time.Second),
		},
		Lead: LeadConfig{
			Topic: getEnv("LEAD_TOPIC", "LEAD_SUBMITTED"),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsMillis(key string, fallback time.Duration) time.Duration {
	ms := getEnvAsInt(key, -1)
	if ms <= 0 {
		return fallback
	}
	return time.Duration(ms) * time.Millisecond
}
