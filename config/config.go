package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	DB      DBConfig      `yaml:"db"`
	Kafka   KafkaConfig   `yaml:"kafka"`
	Redis   RedisConfig   `yaml:"redis"`
	Grading GradingConfig `yaml:"grading"`
	Classes ClassesConfig `yaml:"classes"`
}

type HTTPConfig struct {
	Address string        `yaml:"address"`
	Timeout time.Duration `yaml:"timeout"`
}

type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"` //nolint:gosec // config struct, not hardcoded cred
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	GroupID string   `yaml:"group_id"`
}

type RedisConfig struct {
	Address        string        `yaml:"address"`
	LeaderboardTTL time.Duration `yaml:"leaderboard_ttl"`
}

type GradingConfig struct {
	// DivergenceThreshold is the maximum allowed gap between the two
	// correctors' totals before the submission needs admin resolution.
	DivergenceThreshold int `yaml:"divergence_threshold"`
}

type ClassesConfig struct {
	// Timezone for class date and start/end comparisons. Stored times
	// are naive wall-clock values in this zone.
	Timezone string `yaml:"timezone"`
	// ReminderLead is how far ahead of a class start the reminder
	// worker publishes its event.
	ReminderLead time.Duration `yaml:"reminder_lead"`
}

func Load() (*Config, error) {
	configPath := getConfigPath()
	data, err := os.ReadFile(configPath) //nolint:gosec // config path from env/flag
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	setDefaults(&cfg)
	overrideFromEnv(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func getConfigPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}

	possiblePaths := []string{
		"config/config.yaml",
		"/etc/redacao-service/config.yaml",
		"./config.yaml",
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return "config.yaml"
}

func setDefaults(cfg *Config) {
	if cfg.HTTP.Timeout == 0 {
		cfg.HTTP.Timeout = 30 * time.Second
	}

	if cfg.Kafka.GroupID == "" {
		cfg.Kafka.GroupID = "redacao-service-group"
	}

	if cfg.Redis.LeaderboardTTL == 0 {
		cfg.Redis.LeaderboardTTL = 5 * time.Minute
	}

	if cfg.Grading.DivergenceThreshold == 0 {
		cfg.Grading.DivergenceThreshold = 100
	}

	if cfg.Classes.Timezone == "" {
		cfg.Classes.Timezone = "America/Sao_Paulo"
	}

	if cfg.Classes.ReminderLead == 0 {
		cfg.Classes.ReminderLead = 30 * time.Minute
	}
}

func overrideFromEnv(cfg *Config) {
	if val := os.Getenv("HTTP_ADDRESS"); val != "" {
		cfg.HTTP.Address = val
	}
	if val := os.Getenv("HTTP_TIMEOUT"); val != "" {
		if timeout, err := strconv.Atoi(val); err == nil {
			cfg.HTTP.Timeout = time.Duration(timeout) * time.Second
		}
	}

	if val := os.Getenv("DB_HOST"); val != "" {
		cfg.DB.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			cfg.DB.Port = port
		}
	}
	if val := os.Getenv("DB_USER"); val != "" {
		cfg.DB.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		cfg.DB.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		cfg.DB.DBName = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		cfg.DB.SSLMode = val
	}

	if val := os.Getenv("KAFKA_BROKERS"); val != "" {
		cfg.Kafka.Brokers = strings.Split(val, ",")
	}
	if val := os.Getenv("KAFKA_GROUP_ID"); val != "" {
		cfg.Kafka.GroupID = val
	}

	if val := os.Getenv("REDIS_ADDRESS"); val != "" {
		cfg.Redis.Address = val
	}

	if val := os.Getenv("GRADING_DIVERGENCE_THRESHOLD"); val != "" {
		if threshold, err := strconv.Atoi(val); err == nil {
			cfg.Grading.DivergenceThreshold = threshold
		}
	}

	if val := os.Getenv("CLASSES_TIMEZONE"); val != "" {
		cfg.Classes.Timezone = val
	}
}

func validateConfig(cfg *Config) error {
	if cfg.HTTP.Address == "" {
		return fmt.Errorf("HTTP address must be set")
	}

	if len(cfg.Kafka.Brokers) == 0 {
		return fmt.Errorf("at least one Kafka broker must be specified")
	}

	if cfg.DB.Host == "" || cfg.DB.User == "" || cfg.DB.DBName == "" {
		return fmt.Errorf("database configuration is incomplete")
	}

	if cfg.Grading.DivergenceThreshold < 0 || cfg.Grading.DivergenceThreshold > 1000 {
		return fmt.Errorf("divergence threshold must be within the 0-1000 score scale")
	}

	if _, err := time.LoadLocation(cfg.Classes.Timezone); err != nil {
		return fmt.Errorf("invalid classes timezone: %w", err)
	}

	return nil
}
