package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	ServerPort string
	JWTSecret  string

	// Recommendation / entitlement tuning
	TrendingWindowDays    int
	PurchaseRetentionDays int
	FavoriteGenreWeight   int
}

var GlobalConfig *Config

func LoadConfig() error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	env := getEnv("ENV", "development") // default to development

	// Default tuning:
	// - TRENDING_WINDOW_DAYS: rolling lookback for the trending aggregator
	// - PURCHASE_RETENTION_DAYS: entitlement lifetime after purchase
	// - FAVORITE_GENRE_WEIGHT: favorites count this much vs 1 for watch history
	trendingWindowDays, _ := strconv.Atoi(getEnv("TRENDING_WINDOW_DAYS", "30"))
	purchaseRetentionDays, _ := strconv.Atoi(getEnv("PURCHASE_RETENTION_DAYS", "30"))
	favoriteGenreWeight, _ := strconv.Atoi(getEnv("FAVORITE_GENRE_WEIGHT", "2"))

	// Set DB defaults based on environment
	var dbHost, dbPort, dbUser, dbPassword, dbName, dbSSLMode string
	if env == "production" {
		dbHost = getEnv("DB_HOST", "")
		dbPort = getEnv("DB_PORT", "5432")
		dbUser = getEnv("DB_USER", "")
		dbPassword = getEnv("DB_PASSWORD", "")
		dbName = getEnv("DB_NAME", "")
		dbSSLMode = getEnv("DB_SSLMODE", "require")
	} else {
		dbHost = getEnv("DB_HOST", "localhost")
		dbPort = getEnv("DB_PORT", "5432")
		dbUser = getEnv("DB_USER", "postgres")
		dbPassword = getEnv("DB_PASSWORD", "password")
		dbName = getEnv("DB_NAME", "videoteka")
		dbSSLMode = getEnv("DB_SSLMODE", "disable")
	}

	GlobalConfig = &Config{
		DBHost:     dbHost,
		DBPort:     dbPort,
		DBUser:     dbUser,
		DBPassword: dbPassword,
		DBName:     dbName,
		DBSSLMode:  dbSSLMode,

		ServerPort: getEnv("SERVER_PORT", "8080"),
		JWTSecret:  getEnv("JWT_SECRET", "default-jwt-secret-change-in-production"),

		TrendingWindowDays:    trendingWindowDays,
		PurchaseRetentionDays: purchaseRetentionDays,
		FavoriteGenreWeight:   favoriteGenreWeight,
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
