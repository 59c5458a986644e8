package config

import (
	"os"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables
	S3BucketName   string
	SNSTopicARN    string // order-event topic; empty disables publishing

	ResendAPIKey string
	EmailFrom    string
	StoreInbox   string // contact-form recipient

	AdminPassword string
	JWTSecret     string
	JWTExpiry     time.Duration

	FirebaseAPIKey string // web API key the verification page uses client-side

	PublicBaseURL string // used to build verification links
	CheckoutURL   string // hosted checkout link handed to the client
	StaticDir     string

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Orders   string
	Users    string
	Products string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Orders:   getEnv("DYNAMO_TABLE_ORDERS", "orders"),
			Users:    getEnv("DYNAMO_TABLE_USERS", "users"),
			Products: getEnv("DYNAMO_TABLE_PRODUCTS", "products"),
		},
		S3BucketName: getEnv("S3_BUCKET_NAME", "thread-heaven-assets"),
		SNSTopicARN:  getEnv("SNS_ORDER_TOPIC_ARN", ""),

		ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		EmailFrom:    getEnv("EMAIL_FROM", "Thread Heaven <orders@threadheaven.store>"),
		StoreInbox:   getEnv("STORE_INBOX", "hello@threadheaven.store"),

		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		JWTExpiry:     getEnvDuration("JWT_EXPIRY", 24*time.Hour),

		FirebaseAPIKey: getEnv("FIREBASE_WEB_API_KEY", ""),

		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:3000"),
		CheckoutURL:   getEnv("CHECKOUT_URL", ""),
		StaticDir:     getEnv("STATIC_DIR", "./public"),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
