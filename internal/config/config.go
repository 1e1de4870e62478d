package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	ServerPort string

	JWTSecret     string
	JWTExpiration time.Duration

	RedisURL string

	// Features is the enabled feature list ("media", "feed-cache").
	Features []string

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicURL       string
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found or error loading it, relying on environment variables")
	}

	jwtExpiration, err := time.ParseDuration(os.Getenv("JWT_EXPIRATION"))
	if err != nil || jwtExpiration <= 0 {
		jwtExpiration = time.Hour
	}

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	var features []string
	for _, f := range strings.Split(os.Getenv("FEATURES"), ",") {
		f = strings.TrimSpace(f)
		if f != "" {
			features = append(features, f)
		}
	}

	return &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),

		ServerPort: serverPort,

		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTExpiration: jwtExpiration,

		RedisURL: os.Getenv("REDIS_URL"),

		Features: features,

		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      os.Getenv("R2_BUCKET_NAME"),
		R2PublicURL:       os.Getenv("R2_PUBLIC_URL"),
	}, nil
}

// FeatureEnabled reports whether a feature name appears in the enabled list.
func (c *Config) FeatureEnabled(name string) bool {
	for _, f := range c.Features {
		if f == name {
			return true
		}
	}
	return false
}
