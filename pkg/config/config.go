package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Session   SessionConfig
	OpenAI    OpenAIConfig
	Translate TranslateConfig
	Uploads   UploadsConfig
	Knowledge KnowledgeConfig
	Admin     AdminConfig
	Logger    LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type SessionConfig struct {
	// SecretKey signs session tokens. The default is insecure and only
	// suitable for local development; set SECRET_KEY in production.
	SecretKey  string
	Expiration time.Duration
	CookieName string
}

type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	Timeout     time.Duration
}

type TranslateConfig struct {
	BaseURL string
	Timeout time.Duration
}

type UploadsConfig struct {
	UploadDir  string
	BookingDir string
}

type KnowledgeConfig struct {
	Path string
}

type AdminConfig struct {
	Username string
	Password string
}

func Load() (*Config, error) {
	// Try to load .env file from current directory or project root
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}
	// No .env file is fine: environment variables are used directly
	// (useful for Docker/K8s)

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	sessionExp, _ := strconv.Atoi(getEnv("SESSION_EXPIRATION_HOURS", "24"))
	openAITimeout, _ := strconv.Atoi(getEnv("OPENAI_TIMEOUT", "60"))
	translateTimeout, _ := strconv.Atoi(getEnv("TRANSLATE_TIMEOUT", "15"))
	temperature, err := strconv.ParseFloat(getEnv("OPENAI_TEMPERATURE", "0.5"), 32)
	if err != nil {
		temperature = 0.5
	}

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "concierge"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Session: SessionConfig{
			SecretKey:  getEnv("SECRET_KEY", "dev-secret-key-change-in-production"),
			Expiration: time.Duration(sessionExp) * time.Hour,
			CookieName: getEnv("SESSION_COOKIE_NAME", "concierge_session"),
		},
		OpenAI: OpenAIConfig{
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			BaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Model:       getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
			Temperature: float32(temperature),
			Timeout:     time.Duration(openAITimeout) * time.Second,
		},
		Translate: TranslateConfig{
			BaseURL: getEnv("TRANSLATE_BASE_URL", "https://translate.googleapis.com"),
			Timeout: time.Duration(translateTimeout) * time.Second,
		},
		Uploads: UploadsConfig{
			UploadDir:  getEnv("UPLOAD_DIR", "static/uploads"),
			BookingDir: getEnv("BOOKING_DIR", "static/bookings"),
		},
		Knowledge: KnowledgeConfig{
			Path: getEnv("KNOWLEDGE_BASE_PATH", "knowledge_base.json"),
		},
		Admin: AdminConfig{
			Username: getEnv("ADMIN_USERNAME", "admin"),
			Password: getEnv("ADMIN_PASSWORD", "admin"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
