package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port               string
	LogLevel           string
	MaxUploadSizeBytes int64

	// Matching and statement rendering
	MatchKeyMode        string // "tradename" or "composite"
	CurrencyCode        string
	VATRatePercent      string
	LetterheadImagePath string

	// Issuer identity printed on every statement
	IssuerName    string
	IssuerCity    string
	IssuerLicense string
	IssuerPhone   string
	IssuerEmail   string

	// Notification transport
	EmailServiceProvider string

	SMTPServer   string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string

	MailgunDomain        string
	MailgunPrivateAPIKey string

	SenderEmail string
	SenderName  string

	// How long a finished BatchResult stays retrievable
	BatchResultTTL time.Duration
}

const (
	MatchKeyModeTradeName = "tradename"
	MatchKeyModeComposite = "composite"
)

var Cfg *AppConfig

func LoadConfig() {
	errEnv := godotenv.Load()
	if errEnv != nil {
		log.Println("Info: No .env file found or error loading .env file. Relying on OS environment variables and defaults. Error (if any):", errEnv)
	} else {
		log.Println(".env file loaded successfully.")
	}

	log.Println("Loading application configuration...")

	matchKeyMode := getEnv("MATCH_KEY_MODE", MatchKeyModeTradeName)
	if matchKeyMode != MatchKeyModeTradeName && matchKeyMode != MatchKeyModeComposite {
		log.Printf("WARNING: Invalid MATCH_KEY_MODE '%s'. Using default '%s'.", matchKeyMode, MatchKeyModeTradeName)
		matchKeyMode = MatchKeyModeTradeName
	}

	maxUploadSizeBytesStr := getEnv("MAX_UPLOAD_SIZE_BYTES", "16777216")
	maxUploadSizeBytes, err := strconv.ParseInt(maxUploadSizeBytesStr, 10, 64)
	if err != nil {
		log.Printf("WARNING: Invalid MAX_UPLOAD_SIZE_BYTES format '%s'. Using default 16MB. Error: %v", maxUploadSizeBytesStr, err)
		maxUploadSizeBytes = 16 * 1024 * 1024
	}

	batchResultTTLStr := getEnv("BATCH_RESULT_TTL", "1h")
	batchResultTTL, err := time.ParseDuration(batchResultTTLStr)
	if err != nil {
		log.Printf("WARNING: Invalid BATCH_RESULT_TTL format '%s'. Using default 1h. Error: %v", batchResultTTLStr, err)
		batchResultTTL = time.Hour
	}

	Cfg = &AppConfig{
		Port:               getEnv("PORT", "8080"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		MaxUploadSizeBytes: maxUploadSizeBytes,

		MatchKeyMode:        matchKeyMode,
		CurrencyCode:        getEnv("CURRENCY_CODE", "MUR"),
		VATRatePercent:      getEnv("VAT_RATE_PERCENT", "15"),
		LetterheadImagePath: getEnv("LETTERHEAD_IMAGE_PATH", "static/letterhead.png"),

		IssuerName:    getEnv("ISSUER_NAME", "ZwennPay Ltd"),
		IssuerCity:    getEnv("ISSUER_CITY", "Port Louis, Mauritius"),
		IssuerLicense: getEnv("ISSUER_LICENSE", "PSP/2023/001"),
		IssuerPhone:   getEnv("ISSUER_PHONE", "+230 123 4567"),
		IssuerEmail:   getEnv("ISSUER_EMAIL", "info@zwennpay.mu"),

		EmailServiceProvider: getEnv("EMAIL_SERVICE_PROVIDER", "mock"),

		SMTPServer:   getEnv("SMTP_SERVER", ""),
		SMTPPort:     getEnvAsInt("SMTP_PORT", 587),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		MailgunDomain:        getEnv("MAILGUN_DOMAIN", ""),
		MailgunPrivateAPIKey: getEnv("MAILGUN_PRIVATE_API_KEY", ""),

		SenderEmail: getEnv("SENDER_EMAIL", "statements@zwennpay.mu"),
		SenderName:  getEnv("SENDER_NAME", "ZwennPay Statements"),

		BatchResultTTL: batchResultTTL,
	}

	if Cfg.EmailServiceProvider == "mailgun" {
		if Cfg.MailgunDomain == "" {
			log.Fatalf("FATAL: MAILGUN_DOMAIN is required when EMAIL_SERVICE_PROVIDER is 'mailgun', but it's not set in environment or .env file.")
		}
		if Cfg.MailgunPrivateAPIKey == "" {
			log.Fatalf("FATAL: MAILGUN_PRIVATE_API_KEY is required when EMAIL_SERVICE_PROVIDER is 'mailgun', but it's not set in environment or .env file.")
		}
		if Cfg.SenderEmail == "" {
			log.Fatalf("FATAL: SENDER_EMAIL must be configured when EMAIL_SERVICE_PROVIDER is 'mailgun'.")
		}
	}

	log.Printf("Configuration loaded: Port=%s, LogLevel=%s, MatchKeyMode=%s, EmailProvider=%s",
		Cfg.Port, Cfg.LogLevel, Cfg.MatchKeyMode, Cfg.EmailServiceProvider)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("Environment variable %s not set, using default: %s", key, fallback)
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		log.Printf("Integer value for %s not set or empty, using default: %d", key, fallback)
		return fallback
	}
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid integer value for %s ('%s'), using default: %d", key, valueStr, fallback)
	return fallback
}
