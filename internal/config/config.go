package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type DB struct {
	DbHOST     string
	DbPORT     string
	DbUSER     string
	DbPASSWORD string
	DbNAME     string
	DbSSLMODE  string
}

type MinIO struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
	PublicURL  string
}

type SMTP struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type Geo struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

type RateLimit struct {
	RequestsPerSecond float64
	Burst             int
}

type Config struct {
	ServerPort           int
	ClientOrigin         string
	DB                   DB
	MinIO                MinIO
	SMTP                 SMTP
	Geo                  Geo
	RateLimit            RateLimit
	JWTSecretKey         string
	AccessTokenDuration  time.Duration
	RefreshTokenDuration time.Duration
	ResetTokenDuration   time.Duration
	MaxUploadSize        int64
	DevMode              bool
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return duration
}

func LoadDB() DB {
	return DB{
		DbHOST:     getEnv("DB_HOST", "localhost"),
		DbPORT:     getEnv("DB_PORT", "5432"),
		DbUSER:     getEnv("DB_USER", "postgres"),
		DbPASSWORD: getEnv("DB_PASSWORD", "password"),
		DbNAME:     getEnv("DB_NAME", "artculture"),
		DbSSLMODE:  getEnv("DB_SSLMODE", "disable"),
	}
}

func LoadMinIO() MinIO {
	return MinIO{
		Endpoint:   getEnv("MINIO_ENDPOINT", "localhost:9000"),
		AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		BucketName: getEnv("MINIO_BUCKET_NAME", "uploads"),
		UseSSL:     getEnvBool("MINIO_USE_SSL", false),
		Region:     getEnv("MINIO_REGION", "us-east-1"),
		PublicURL:  getEnv("MINIO_PUBLIC_URL", "http://localhost:9000"),
	}
}

func LoadSMTP() SMTP {
	return SMTP{
		Host:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		Port:     getEnvAsInt("SMTP_PORT", 587),
		User:     getEnv("SMTP_USER", ""),
		Password: getEnv("SMTP_PASSWORD", ""),
		From:     getEnv("SMTP_FROM", "noreply@artculture.local"),
	}
}

func LoadGeo() Geo {
	return Geo{
		BaseURL:   getEnv("GEO_BASE_URL", "https://nominatim.openstreetmap.org"),
		UserAgent: getEnv("GEO_USER_AGENT", "ArtCulture/1.0"),
		Timeout:   parseDuration(getEnv("GEO_TIMEOUT", "5s"), 5*time.Second),
	}
}

func LoadRateLimit() RateLimit {
	return RateLimit{
		RequestsPerSecond: getEnvAsFloat("RATE_LIMIT_RPS", 50),
		Burst:             getEnvAsInt("RATE_LIMIT_BURST", 100),
	}
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return &Config{
		ServerPort:           getEnvAsInt("SERVER_PORT", 8080),
		ClientOrigin:         getEnv("CLIENT_URL", "*"),
		DB:                   LoadDB(),
		MinIO:                LoadMinIO(),
		SMTP:                 LoadSMTP(),
		Geo:                  LoadGeo(),
		RateLimit:            LoadRateLimit(),
		JWTSecretKey:         getEnv("JWT_SECRET_KEY", ""),
		AccessTokenDuration:  parseDuration(getEnv("ACCESS_TOKEN_DURATION", "2h"), 2*time.Hour),
		RefreshTokenDuration: parseDuration(getEnv("REFRESH_TOKEN_DURATION", "168h"), 168*time.Hour),
		ResetTokenDuration:   parseDuration(getEnv("RESET_TOKEN_DURATION", "1h"), time.Hour),
		MaxUploadSize:        parseMaxUploadSize(getEnv("MAX_UPLOAD_SIZE", "10485760")),
		DevMode:              getEnvBool("DEV_MODE", false),
	}
}

func parseMaxUploadSize(value string) int64 {
	size, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 10 * 1024 * 1024
	}
	return size
}
