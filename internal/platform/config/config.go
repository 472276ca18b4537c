package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	LogLevel          string
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	PasswordResetTTL   time.Duration
	FrontendBaseURL    string
	CORSAllowedOrigins []string

	// Optional shared store for rate limiting. In-memory when empty.
	RedisURL       string
	LoginRateLimit string

	// Gym rules
	Location            *time.Location
	InactivityThreshold time.Duration
	PaymentDueWindow    time.Duration

	// Bootstrap owner created on first start when no owner exists
	Owner OwnerBootstrap

	SMTP SMTPConfig

	GoogleClientID string
}

// OwnerBootstrap describes the owner account seeded on startup.
type OwnerBootstrap struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// Enabled reports whether enough fields are set to seed an owner.
func (o OwnerBootstrap) Enabled() bool {
	return o.Email != "" && o.Password != "" && o.Phone != ""
}

// SMTPConfig holds outbound mail settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "10h")
	viper.SetDefault("JWT_ISSUER", "gym-management-app")
	viper.SetDefault("PASSWORD_RESET_TTL", "1h")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	viper.SetDefault("GYM_TIMEZONE", "UTC")
	viper.SetDefault("INACTIVITY_THRESHOLD", "168h")
	viper.SetDefault("PAYMENT_DUE_WINDOW", "168h")
	viper.SetDefault("OWNER_NAME", "Owner")
	viper.SetDefault("OWNER_EMAIL", "")
	viper.SetDefault("OWNER_PHONE", "")
	viper.SetDefault("OWNER_PASSWORD", "")
	viper.SetDefault("SMTP_HOST", "")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_USERNAME", "")
	viper.SetDefault("SMTP_PASSWORD", "")
	viper.SetDefault("SMTP_FROM", "no-reply@fitnesshome.local")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "gym-management-app"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}

	cfg.JWTExpiryDuration = durationOrDefault("JWT_EXPIRY_DURATION", 10*time.Hour)
	cfg.PasswordResetTTL = durationOrDefault("PASSWORD_RESET_TTL", time.Hour)
	cfg.InactivityThreshold = durationOrDefault("INACTIVITY_THRESHOLD", 7*24*time.Hour)
	cfg.PaymentDueWindow = durationOrDefault("PAYMENT_DUE_WINDOW", 7*24*time.Hour)

	tz := viper.GetString("GYM_TIMEZONE")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("Warning: Invalid value for GYM_TIMEZONE ('%s'). Defaulting to UTC.\n", tz)
		loc = time.UTC
	}
	cfg.Location = loc

	cfg.FrontendBaseURL = strings.TrimRight(viper.GetString("FRONTEND_BASE_URL"), "/")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))
	if len(cfg.CORSAllowedOrigins) == 0 && cfg.FrontendBaseURL != "" {
		cfg.CORSAllowedOrigins = []string{cfg.FrontendBaseURL}
	}

	cfg.RedisURL = viper.GetString("REDIS_URL")
	cfg.LoginRateLimit = viper.GetString("LOGIN_RATE_LIMIT")

	cfg.Owner = OwnerBootstrap{
		Name:     viper.GetString("OWNER_NAME"),
		Email:    viper.GetString("OWNER_EMAIL"),
		Phone:    viper.GetString("OWNER_PHONE"),
		Password: viper.GetString("OWNER_PASSWORD"),
	}

	cfg.SMTP = SMTPConfig{
		Host:     viper.GetString("SMTP_HOST"),
		Port:     viper.GetInt("SMTP_PORT"),
		Username: viper.GetString("SMTP_USERNAME"),
		Password: viper.GetString("SMTP_PASSWORD"),
		From:     viper.GetString("SMTP_FROM"),
	}
	if cfg.SMTP.Host == "" {
		log.Println("Warning: SMTP_HOST not set. Password reset e-mails will only be logged.")
	}

	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	if cfg.GoogleClientID == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google sign-in will not function.")
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.LogLevel = viper.GetString("LOG_LEVEL")

	return cfg, nil
}

func durationOrDefault(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
