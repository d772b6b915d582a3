package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT (admins and members share the signing key)
	JWTSecret string
	JWTExpiry time.Duration

	// SMTP notifications
	EmailEnabled bool
	EmailHost    string
	EmailPort    int
	EmailUser    string
	EmailPass    string

	// Image host
	CloudinaryURL string

	// Geolocation
	GeoIPDatabasePath string
	ReverseGeocodeURL string
	GeoTimeout        time.Duration

	// ID card numbers
	CardNumberPrefix string
	// Registration codes derived from record ids (DDKA-2026-XXXX)
	RegistrationCodePrefix string

	// Settings cache
	SettingsCacheTTL time.Duration

	// Server
	Port        string
	CORSOrigins string
	FrontendURL string
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "ddka"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTExpiry: parseDuration(getEnv("JWT_EXPIRY", "720h"), 720*time.Hour),

		EmailEnabled: getEnv("EMAIL_ENABLED", "false") == "true",
		EmailHost:    getEnv("EMAIL_HOST", "smtp.gmail.com"),
		EmailPort:    parseInt(getEnv("EMAIL_PORT", "587"), 587),
		EmailUser:    getEnv("EMAIL_USER", ""),
		EmailPass:    getEnv("EMAIL_PASS", ""),

		CloudinaryURL: getEnv("CLOUDINARY_URL", ""),

		GeoIPDatabasePath: getEnv("GEOIP_DB_PATH", ""),
		ReverseGeocodeURL: getEnv("REVERSE_GEOCODE_URL", "https://nominatim.openstreetmap.org/reverse"),
		GeoTimeout:        parseDuration(getEnv("GEO_TIMEOUT", "3s"), 3*time.Second),

		CardNumberPrefix:       getEnv("CARD_NUMBER_PREFIX", "DDKA"),
		RegistrationCodePrefix: getEnv("REGISTRATION_CODE_PREFIX", "DDKA-2026"),

		SettingsCacheTTL: parseDuration(getEnv("SETTINGS_CACHE_TTL", "30s"), 30*time.Second),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		FrontendURL: getEnv("FRONTEND_URL", "https://dhanbadkabaddiassociation.tech"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
