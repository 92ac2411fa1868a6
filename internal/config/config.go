package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса
type Config struct {
	Server          ServerConfig          `toml:"server"`
	Database        DatabaseConfig        `toml:"database"`
	Logs            LogsConfig            `toml:"logs"`
	Metrics         MetricsConfig         `toml:"metrics"`
	Booking         BookingConfig         `toml:"booking"`
	Redis           RedisConfig           `toml:"redis"`
	Kafka           KafkaConfig           `toml:"kafka"`
	HolidayCalendar HolidayCalendarConfig `toml:"holiday_calendar"`
}

// ServerConfig настройки HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
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
	MigrateOnStart  bool   `toml:"migrate_on_start"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingConfig бизнес-параметры записи на доставку
type BookingConfig struct {
	ReferencePrefix      string  `toml:"reference_prefix"`
	MaxReferenceAttempts int     `toml:"max_reference_attempts"`
	MaxRangeDays         int     `toml:"max_range_days"`
	PhoneRegion          string  `toml:"phone_region"`
	Timezone             string  `toml:"timezone"`
	AdminUserIDs         []int64 `toml:"admin_user_ids"`
}

type RedisConfig struct {
	Enabled                bool   `toml:"enabled"`
	Addr                   string `toml:"addr"`
	Password               string `toml:"password"`
	DB                     int    `toml:"db"`
	AvailabilityTTLSeconds int    `toml:"availability_ttl_seconds"`
}

type KafkaConfig struct {
	Enabled bool     `toml:"enabled"`
	Brokers []string `toml:"brokers"`
	Topic   string   `toml:"topic"`
	// PublishTimeoutMs ограничивает сброс кеша и публикацию после фиксации заявки
	PublishTimeoutMs int `toml:"publish_timeout_ms"`
}

type HolidayCalendarConfig struct {
	Enabled     bool   `toml:"enabled"`
	URL         string `toml:"url"`
	CountryCode string `toml:"country_code"`
	Timeout     int    `toml:"timeout"`
}

// Load читает TOML файл, применяет значения по умолчанию и переменные окружения
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "nfa-delivery-booking",
		},
		Booking: BookingConfig{
			ReferencePrefix:      "NFA",
			MaxReferenceAttempts: 5,
			MaxRangeDays:         366,
			PhoneRegion:          "PH",
			Timezone:             "Asia/Manila",
		},
		Redis: RedisConfig{
			Addr:                   "localhost:6379",
			AvailabilityTTLSeconds: 30,
		},
		Kafka: KafkaConfig{Topic: "nfa.appointments", PublishTimeoutMs: 1000},
		HolidayCalendar: HolidayCalendarConfig{
			CountryCode: "PH",
			Timeout:     3,
		},
	}
}

// applyEnv переопределяет секреты из окружения
func applyEnv(cfg *Config) {
	if v, ok := os.LookupEnv("DB_PASSWORD"); ok {
		cfg.Database.Password = v
	}
	if v, ok := os.LookupEnv("DB_HOST"); ok {
		cfg.Database.Host = v
	}
	if v, ok := os.LookupEnv("REDIS_PASSWORD"); ok {
		cfg.Redis.Password = v
	}
	if v, ok := os.LookupEnv("KAFKA_BROKERS"); ok && strings.TrimSpace(v) != "" {
		cfg.Kafka.Brokers = splitList(v)
	}
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate проверяет обязательные поля
func (c *Config) Validate() error {
	var errs []error

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("server.http_port must be in 1..65535"))
	}
	if c.Database.Host == "" || c.Database.User == "" || c.Database.DBName == "" {
		errs = append(errs, fmt.Errorf("database.host, database.user and database.dbname are required"))
	}
	if c.Booking.ReferencePrefix == "" {
		errs = append(errs, fmt.Errorf("booking.reference_prefix is required"))
	}
	if c.Booking.MaxReferenceAttempts <= 0 {
		errs = append(errs, fmt.Errorf("booking.max_reference_attempts must be positive"))
	}
	if c.Booking.MaxRangeDays <= 0 {
		errs = append(errs, fmt.Errorf("booking.max_range_days must be positive"))
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		errs = append(errs, fmt.Errorf("redis.addr is required when redis is enabled"))
	}
	if c.Kafka.Enabled && (len(c.Kafka.Brokers) == 0 || c.Kafka.Topic == "") {
		errs = append(errs, fmt.Errorf("kafka.brokers and kafka.topic are required when kafka is enabled"))
	}
	if c.HolidayCalendar.Enabled && c.HolidayCalendar.URL == "" {
		errs = append(errs, fmt.Errorf("holiday_calendar.url is required when the calendar is enabled"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}
