package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type ServerConfig struct {
	Host        string   `yaml:"host"`
	Port        int      `yaml:"port"`
	Env         string   `yaml:"env"`
	LogLevel    string   `yaml:"log_level"`
	CORSOrigins []string `yaml:"cors_origins"`
}

type DatabaseConfig struct {
	DSN                    string `yaml:"url"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
	AutoMigrate            bool   `yaml:"auto_migrate"`
}

// AuthConfig - настройки Identity Verifier.
// Provider "firebase" проверяет ID-токены Firebase (RS256, сертификаты Google),
// "hmac" - локальные HS256 токены (разработка и тесты).
type AuthConfig struct {
	Provider                   string `yaml:"provider"`
	FirebaseProjectID          string `yaml:"firebase_project_id"`
	FirebaseServiceAccountJSON string `yaml:"firebase_service_account_json"`
	FirebaseServiceAccountPath string `yaml:"firebase_service_account_path"`
	FirebaseCertsURL           string `yaml:"firebase_certs_url"`
	JWTSecret                  string `yaml:"jwt_secret"`
	JWTIssuer                  string `yaml:"jwt_issuer"`
}

type EmailConfig struct {
	Enabled      bool   `yaml:"enabled"`
	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPUsername string `yaml:"smtp_user"`
	SMTPPassword string `yaml:"smtp_password"`
	FromEmail    string `yaml:"from_email"`
	FromName     string `yaml:"from_name"`
	UseTLS       bool   `yaml:"use_tls"`
	TemplatesDir string `yaml:"templates_dir"`
}

type WorkersConfig struct {
	NotificationRetentionDays int `yaml:"notification_retention_days"`
	CleanupIntervalMinutes    int `yaml:"cleanup_interval_minutes"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Email    EmailConfig    `yaml:"email"`
	Workers  WorkersConfig  `yaml:"workers"`
}

var AppConfig *Config

// LoadConfig читает .env (если есть), затем config.yaml или переменные окружения.
// Если задан DATABASE_URL - конфигурация целиком берется из окружения.
func LoadConfig() error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to load .env: %v", err)
	}

	var cfg *Config
	var err error
	if os.Getenv("DATABASE_URL") == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}
		cfg, err = LoadFile(configPath)
		if err != nil {
			return err
		}
	} else {
		log.Println("Загрузка конфигурации из переменных окружения")
		cfg = FromEnv()
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}

	AppConfig = cfg
	return nil
}

// LoadFile разбирает YAML-файл конфигурации
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file at %s: %w", path, err)
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file at %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	return &cfg, nil
}

// FromEnv собирает конфигурацию только из переменных окружения (режим тестов и контейнеров)
func FromEnv() *Config {
	var cfg Config
	cfg.Database.DSN = os.Getenv("DATABASE_URL")
	cfg.Database.AutoMigrate = envBool("DATABASE_AUTO_MIGRATE", true)
	cfg.Server.Host = os.Getenv("SERVER_HOST")
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port = envInt("SERVER_PORT", 0)
	cfg.Server.LogLevel = os.Getenv("LOG_LEVEL")
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.Server.CORSOrigins = splitList(origins)
	}

	cfg.Auth.Provider = os.Getenv("AUTH_PROVIDER")
	cfg.Auth.FirebaseProjectID = os.Getenv("FIREBASE_PROJECT_ID")
	cfg.Auth.FirebaseServiceAccountJSON = os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON")
	cfg.Auth.FirebaseServiceAccountPath = os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
	cfg.Auth.FirebaseCertsURL = os.Getenv("FIREBASE_CERTS_URL")
	cfg.Auth.JWTSecret = os.Getenv("JWT_SECRET")
	cfg.Auth.JWTIssuer = os.Getenv("JWT_ISSUER")

	cfg.Email.Enabled = envBool("EMAIL_ENABLED", false)
	cfg.Email.SMTPHost = os.Getenv("SMTP_HOST")
	cfg.Email.SMTPPort = envInt("SMTP_PORT", 0)
	cfg.Email.SMTPUsername = os.Getenv("SMTP_USER")
	cfg.Email.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	cfg.Email.FromEmail = os.Getenv("EMAIL_FROM")
	cfg.Email.FromName = os.Getenv("EMAIL_FROM_NAME")
	cfg.Email.TemplatesDir = os.Getenv("TEMPLATES_DIR")

	cfg.Workers.NotificationRetentionDays = envInt("NOTIFICATION_RETENTION_DAYS", 0)
	cfg.Workers.CleanupIntervalMinutes = envInt("NOTIFICATION_CLEANUP_INTERVAL_MINUTES", 0)
	return &cfg
}

// applyEnvOverrides - секреты из окружения перекрывают значения из файла
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("SERVER_ENV"); v != "" {
		c.Server.Env = v
	}
	if v := envInt("SERVER_PORT", 0); v != 0 {
		c.Server.Port = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("FIREBASE_PROJECT_ID"); v != "" {
		c.Auth.FirebaseProjectID = v
	}
	if v := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); v != "" {
		c.Auth.FirebaseServiceAccountJSON = v
	}
	if v := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH"); v != "" {
		c.Auth.FirebaseServiceAccountPath = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		c.Email.SMTPPassword = v
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Env == "" {
		c.Server.Env = "development"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8000
	}
	if len(c.Server.CORSOrigins) == 0 {
		c.Server.CORSOrigins = []string{"*"}
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetimeMinutes == 0 {
		c.Database.ConnMaxLifetimeMinutes = 30
	}
	if c.Auth.Provider == "" {
		c.Auth.Provider = "firebase"
	}
	if c.Auth.FirebaseCertsURL == "" {
		c.Auth.FirebaseCertsURL = "https://www.googleapis.com/robot/v1/metadata/x509/securetoken@system.gserviceaccount.com"
	}
	if c.Email.SMTPPort == 0 {
		c.Email.SMTPPort = 587
	}
	if c.Email.FromName == "" {
		c.Email.FromName = "Tujitume"
	}
	if c.Workers.NotificationRetentionDays == 0 {
		c.Workers.NotificationRetentionDays = 30
	}
	if c.Workers.CleanupIntervalMinutes == 0 {
		c.Workers.CleanupIntervalMinutes = 60
	}
}

// Validate проверяет обязательные поля
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return fmt.Errorf("database url is required")
	}
	switch c.Auth.Provider {
	case "firebase":
	case "hmac":
		if c.Auth.JWTSecret == "" {
			return fmt.Errorf("auth.jwt_secret is required for the hmac provider")
		}
	default:
		return fmt.Errorf("unknown auth provider %q", c.Auth.Provider)
	}
	if c.Email.Enabled && c.Email.SMTPHost == "" {
		return fmt.Errorf("email.smtp_host is required when email is enabled")
	}
	if c.Workers.CleanupIntervalMinutes <= 0 {
		return fmt.Errorf("workers.cleanup_interval_minutes must be positive, got %d", c.Workers.CleanupIntervalMinutes)
	}
	if c.Workers.NotificationRetentionDays <= 0 {
		return fmt.Errorf("workers.notification_retention_days must be positive, got %d", c.Workers.NotificationRetentionDays)
	}
	return nil
}

// IsDevelopment - режим разработки (подробные ошибки и текстовые логи)
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

func GetConfig() *Config {
	if AppConfig == nil {
		if err := LoadConfig(); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	return AppConfig
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
