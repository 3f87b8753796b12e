package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN returns the GORM/pgx connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// ServiceConfig holds all configuration for the booking backend.
type ServiceConfig struct {
	Port   string
	AppEnv string

	DB DatabaseConfig

	KafkaBrokers []string

	JWTSecret string

	// GoogleAPIKey authenticates Distance Matrix lookups.
	GoogleAPIKey string

	// DepotPostcode is the company depot used for the repositioning leg of
	// moving quotes.
	DepotPostcode string

	// SeedPricing controls whether default price catalogs are inserted at
	// startup when none exist.
	SeedPricing bool
}

// Load reads configuration from BOOKING_-prefixed environment variables with
// sensible defaults for local development.
func Load() (*ServiceConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("BOOKING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", "8080")
	v.SetDefault("app_env", "development")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "postgres")
	v.SetDefault("db_name", "booking")
	v.SetDefault("db_sslmode", "disable")
	v.SetDefault("kafka_brokers", "localhost:9092")
	v.SetDefault("depot_postcode", "75430")
	v.SetDefault("seed_pricing", true)

	secret := v.GetString("jwt_secret")
	if secret == "" {
		return nil, fmt.Errorf("BOOKING_JWT_SECRET is required")
	}

	return &ServiceConfig{
		Port:   v.GetString("port"),
		AppEnv: v.GetString("app_env"),
		DB: DatabaseConfig{
			Host:     v.GetString("db_host"),
			Port:     v.GetString("db_port"),
			User:     v.GetString("db_user"),
			Password: v.GetString("db_password"),
			DBName:   v.GetString("db_name"),
			SSLMode:  v.GetString("db_sslmode"),
		},
		KafkaBrokers:  strings.Split(v.GetString("kafka_brokers"), ","),
		JWTSecret:     secret,
		GoogleAPIKey:  v.GetString("google_api_key"),
		DepotPostcode: v.GetString("depot_postcode"),
		SeedPricing:   v.GetBool("seed_pricing"),
	}, nil
}
