package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

type Config struct {
	DB       *DBconfig
	RabbitMq *RabbitMqconfig
	Srv      *Serviceconfig
	App      *Appconfig
	Storage  *Storageconfig
	Geocoder *Geocoderconfig
	Log      *Loggerconfig
}

type DBconfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

type RabbitMqconfig struct {
	Host     string
	Port     int
	User     string
	Password string
	VHost    string
}

type Serviceconfig struct {
	AuthServicePort     string
	BookingServicePort  string
	TrackingServicePort string
}

type Appconfig struct {
	JwtSecret string
}

type Storageconfig struct {
	RootDir       string
	PublicBaseURL string
}

type Geocoderconfig struct {
	BaseURL string
}

type Loggerconfig struct {
	Level string
}

func New() (*Config, error) {
	// .env is optional, real deployments set the environment directly
	_ = godotenv.Load()

	getEnv := func(key, def string) string {
		if val := os.Getenv(key); val != "" {
			return val
		}
		return def
	}

	getEnvInt := func(key string, def int) int {
		val := os.Getenv(key)
		if val == "" {
			return def
		}
		return cast.ToInt(val)
	}

	cnf := &Config{
		DB: &DBconfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "gocolis_user"),
			Password: getEnv("DB_PASSWORD", "gocolis_pass"),
			Database: getEnv("DB_NAME", "gocolis_db"),
		},
		RabbitMq: &RabbitMqconfig{
			Host:     getEnv("RABBITMQ_HOST", "localhost"),
			Port:     getEnvInt("RABBITMQ_PORT", 5672),
			User:     getEnv("RABBITMQ_USER", "guest"),
			Password: getEnv("RABBITMQ_PASSWORD", "guest"),
			VHost:    getEnv("RABBITMQ_VHOST", ""),
		},
		Srv: &Serviceconfig{
			AuthServicePort:     getEnv("AUTH_SERVICE_PORT", "3000"),
			BookingServicePort:  getEnv("BOOKING_SERVICE_PORT", "3001"),
			TrackingServicePort: getEnv("TRACKING_SERVICE_PORT", "3002"),
		},
		App: &Appconfig{
			JwtSecret: getEnv("JWT_SECRET", "dev-secret-change-me"),
		},
		Storage: &Storageconfig{
			RootDir:       getEnv("STORAGE_ROOT", "uploads"),
			PublicBaseURL: getEnv("STORAGE_PUBLIC_URL", "http://localhost:3001/files"),
		},
		Geocoder: &Geocoderconfig{
			BaseURL: getEnv("GEOCODER_URL", "https://nominatim.openstreetmap.org"),
		},
		Log: &Loggerconfig{
			Level: getEnv("LOG_LEVEL", "INFO"),
		},
	}

	return cnf, nil
}
