package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Драйверы локального хранилища (используются, когда удаленный URL не задан)
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

// Переменные окружения, переопределяющие значения из config.toml
const (
	EnvRemoteURL         = "SLOTCAL_REMOTE_URL"
	EnvGmailClientID     = "SLOTCAL_GMAIL_CLIENT_ID"
	EnvGmailClientSecret = "SLOTCAL_GMAIL_CLIENT_SECRET"
	EnvSenderEmail       = "SLOTCAL_SENDER_EMAIL"
	EnvSenderName        = "SLOTCAL_SENDER_NAME"
	EnvAdminPasscode     = "SLOTCAL_ADMIN_PASSCODE"
	EnvDatabasePassword  = "SLOTCAL_DATABASE_PASSWORD"
	EnvRedisAddr         = "SLOTCAL_REDIS_ADDR"
)

// ErrInvalidConfig возвращается, когда конфигурация не прошла проверку
var ErrInvalidConfig = errors.New("invalid config")

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Remote    RemoteConfig    `toml:"remote"`
	Storage   StorageConfig   `toml:"storage"`
	Database  DatabaseConfig  `toml:"database"`
	Redis     RedisConfig     `toml:"redis"`
	Gmail     GmailConfig     `toml:"gmail"`
	Admin     AdminConfig     `toml:"admin"`
	Calendar  CalendarConfig  `toml:"calendar"`
	CORS      CORSConfig      `toml:"cors"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
}

// ServerConfig параметры HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// LogsConfig параметры логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig параметры Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// RemoteConfig удаленное хранилище слотов; пустой URL включает локальное хранилище
type RemoteConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// StorageConfig локальное хранилище слотов
type StorageConfig struct {
	Driver string `toml:"driver"`
}

// DatabaseConfig параметры подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// RedisConfig хранилище OAuth токенов; пустой адрес оставляет токены в памяти
type RedisConfig struct {
	Addr      string `toml:"addr"`
	Password  string `toml:"password"`
	DB        int    `toml:"db"`
	KeyPrefix string `toml:"key_prefix"`
}

// GmailConfig параметры отправки подтверждений
type GmailConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURL  string `toml:"redirect_url"`
	SenderEmail  string `toml:"sender_email"`
	SenderName   string `toml:"sender_name"`
	ContactEmail string `toml:"contact_email"`
	Timeout      int    `toml:"timeout"`
}

// AdminConfig параметры административного доступа
type AdminConfig struct {
	Passcode string `toml:"passcode"`
}

// CalendarConfig параметры отображения календаря
type CalendarConfig struct {
	Timezone string `toml:"timezone"`
}

// Location возвращает часовой пояс отображения
func (c CalendarConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// CORSConfig разрешенные источники браузерных запросов
type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

// RateLimitConfig ограничение частоты создания бронирований с одного IP
type RateLimitConfig struct {
	RequestsPerMinute int `toml:"requests_per_minute"`
	Burst             int `toml:"burst"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "slot-calendar",
		},
		Remote: RemoteConfig{
			Timeout: 15,
		},
		Storage: StorageConfig{
			Driver: DriverMemory,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Redis: RedisConfig{
			KeyPrefix: "slotcal:",
		},
		Gmail: GmailConfig{
			Timeout: 10,
		},
		Admin: AdminConfig{
			Passcode: "911",
		},
		Calendar: CalendarConfig{
			Timezone: "Asia/Bangkok",
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 30,
			Burst:             5,
		},
	}
}

// Load читает .env (если есть), config.toml по пути path и применяет переопределения из окружения
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	override := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = strings.TrimSpace(v)
		}
	}

	override(&c.Remote.URL, EnvRemoteURL)
	override(&c.Gmail.ClientID, EnvGmailClientID)
	override(&c.Gmail.ClientSecret, EnvGmailClientSecret)
	override(&c.Gmail.SenderEmail, EnvSenderEmail)
	override(&c.Gmail.SenderName, EnvSenderName)
	override(&c.Admin.Passcode, EnvAdminPasscode)
	override(&c.Database.Password, EnvDatabasePassword)
	override(&c.Redis.Addr, EnvRedisAddr)
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, fmt.Sprintf("server.http_port %d out of range", c.Server.HTTPPort))
	}

	switch c.Storage.Driver {
	case DriverMemory:
	case DriverPostgres:
		if c.Remote.URL == "" && (c.Database.Host == "" || c.Database.DBName == "") {
			problems = append(problems, "database.host and database.dbname are required for the postgres driver")
		}
	default:
		problems = append(problems, fmt.Sprintf("storage.driver %q must be %q or %q", c.Storage.Driver, DriverMemory, DriverPostgres))
	}

	if c.Remote.URL != "" && !strings.HasPrefix(c.Remote.URL, "http://") && !strings.HasPrefix(c.Remote.URL, "https://") {
		problems = append(problems, "remote.url must be an http(s) URL")
	}

	if _, err := c.Calendar.Location(); err != nil {
		problems = append(problems, fmt.Sprintf("calendar.timezone %q: %v", c.Calendar.Timezone, err))
	}

	if c.Admin.Passcode == "" {
		problems = append(problems, "admin.passcode must not be empty")
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		problems = append(problems, "metrics.path must start with /")
	}

	if c.RateLimit.RequestsPerMinute < 0 || c.RateLimit.Burst < 0 {
		problems = append(problems, "rate_limit values must not be negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// GmailEnabled сообщает, заданы ли учетные данные OAuth клиента
func (c *Config) GmailEnabled() bool {
	return c.Gmail.ClientID != "" && c.Gmail.ClientSecret != ""
}
