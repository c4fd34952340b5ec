package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	JWTSecret         string
	JWTRefreshSecret  string
	JWTExpiresIn      time.Duration
	JWTRefreshExpires time.Duration

	ServerPort string
	BcryptCost int
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "examhub"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:         getEnv("JWT_SECRET", "secret"),
		JWTRefreshSecret:  getEnv("JWT_REFRESH_SECRET", "refresh-secret"),
		JWTExpiresIn:      getEnvDuration("JWT_EXPIRES_IN", 24*time.Hour),
		JWTRefreshExpires: getEnvDuration("JWT_REFRESH_EXPIRES_IN", 7*24*time.Hour),

		ServerPort: getEnv("SERVER_PORT", "8080"),
		BcryptCost: getEnvInt("BCRYPT_COST", 10),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
