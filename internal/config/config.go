package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Server
	Env                string
	Port               string
	CORSAllowedOrigins []string
	RateLimit          string
	WebhookRateLimit   string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Bootstrap admin, created on startup when both are set
	AdminEmail    string
	AdminPassword string

	// SePay webhook
	SePayAPIKey            string
	PaymentAmountTolerance decimal.Decimal

	// Receiving bank account rendered into payment QR codes
	BankBIN           string
	BankCode          string
	BankAccountNumber string
	BankAccountName   string

	// Redis (optional)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Telegram operator notifications (optional)
	TelegramBotToken string
	TelegramChatID   int64
}

var appConfig *Config

// Load loads configuration from the environment, with a .env file as fallback.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	config := &Config{
		Env:                v.GetString("ENV"),
		Port:               v.GetString("PORT"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		RateLimit:          v.GetString("RATE_LIMIT"),
		WebhookRateLimit:   v.GetString("WEBHOOK_RATE_LIMIT"),

		DBHost:     v.GetString("DB_HOST"),
		DBPort:     v.GetString("DB_PORT"),
		DBUser:     v.GetString("DB_USER"),
		DBPassword: v.GetString("DB_PASSWORD"),
		DBName:     v.GetString("DB_NAME"),
		DBSSLMode:  v.GetString("DB_SSLMODE"),

		JWTSecret: v.GetString("JWT_SECRET"),

		AdminEmail:    v.GetString("ADMIN_EMAIL"),
		AdminPassword: v.GetString("ADMIN_PASSWORD"),

		SePayAPIKey: v.GetString("SEPAY_API_KEY"),

		BankBIN:           v.GetString("BANK_BIN"),
		BankCode:          v.GetString("BANK_CODE"),
		BankAccountNumber: v.GetString("BANK_ACCOUNT_NUMBER"),
		BankAccountName:   v.GetString("BANK_ACCOUNT_NAME"),

		RedisAddr:     v.GetString("REDIS_ADDR"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),

		TelegramBotToken: v.GetString("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:   v.GetInt64("TELEGRAM_CHAT_ID"),
	}

	expStr := v.GetString("JWT_EXPIRES_IN")
	expDur, err := time.ParseDuration(expStr)
	if err != nil {
		log.Printf("Warning: invalid JWT_EXPIRES_IN value '%s', falling back to 24h\n", expStr)
		expDur = 24 * time.Hour
	}
	config.JWTExpirationDur = expDur

	tolStr := v.GetString("PAYMENT_AMOUNT_TOLERANCE")
	tolerance, err := decimal.NewFromString(tolStr)
	if err != nil || tolerance.IsNegative() {
		log.Printf("Warning: invalid PAYMENT_AMOUNT_TOLERANCE value '%s', falling back to %s\n", tolStr, DefaultAmountTolerance)
		tolerance = decimal.RequireFromString(DefaultAmountTolerance)
	}
	config.PaymentAmountTolerance = tolerance

	if config.SePayAPIKey == "" {
		log.Println("Warning: SEPAY_API_KEY not set, the payment webhook will reject every call")
	}

	appConfig = config
	return config, nil
}

// DefaultAmountTolerance is the absolute difference accepted between a payment
// request and the amount the bank reports, in the ledger currency.
const DefaultAmountTolerance = "1000"

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", "development")
	v.SetDefault("PORT", "8080")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("RATE_LIMIT", "120-M")
	v.SetDefault("WEBHOOK_RATE_LIMIT", "3000-M")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "appledger")
	v.SetDefault("DB_PASSWORD", "appledger")
	v.SetDefault("DB_NAME", "appledger")
	v.SetDefault("DB_SSLMODE", "disable")

	v.SetDefault("JWT_SECRET", "fallback-secret-key-for-dev-only")
	v.SetDefault("JWT_EXPIRES_IN", "24h")

	v.SetDefault("PAYMENT_AMOUNT_TOLERANCE", DefaultAmountTolerance)
	v.SetDefault("REDIS_DB", 0)
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// HasBankAccount reports whether enough bank details are configured to render
// a scannable payment QR code.
func (c *Config) HasBankAccount() bool {
	return c.BankBIN != "" && c.BankAccountNumber != ""
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
