package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	Port        int              `json:"port"`
	JWTSecret   string           `json:"jwt_secret"`
	JWTTTLHours int              `json:"jwt_ttl_hours"`
	Database    DatabaseConfig   `json:"database"`
	LogConfig   logger.LogConfig `json:"log_config"`
	CORSAllow   []string         `json:"cors_allow"`
	FileStore   FileStoreConfig  `json:"file_store"`
	Schedule    ScheduleConfig   `json:"schedule"`
	UploadLimit int64            `json:"upload_limit_bytes"`
}

type DatabaseConfig struct {
	DSN      string `json:"dsn"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"dbname"`
	SSLMode  string `json:"sslmode"`
}

type FileStoreConfig struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type ScheduleConfig struct {
	// RecurringSpec is a 5-field cron line for the materialization sweep.
	// The sweep is idempotent per user/month, so running it daily is safe.
	RecurringSpec string `json:"recurring_spec"`
	// ArchivePurgeSpec schedules hard deletion of long-archived pages.
	ArchivePurgeSpec    string `json:"archive_purge_spec"`
	ArchiveMaxAgeDays   int    `json:"archive_max_age_days"`
	DisableRecurringJob bool   `json:"disable_recurring_job"`
	DisablePurgeJob     bool   `json:"disable_purge_job"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt_secret is required")
	}
	if cfg.Database.DSN == "" && cfg.Database.Host == "" {
		return nil, fmt.Errorf("database.dsn or database.host is required")
	}
	if cfg.JWTTTLHours == 0 {
		cfg.JWTTTLHours = 72
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.FileStore.Type == "" {
		cfg.FileStore.Type = "local"
		cfg.FileStore.Data = map[string]interface{}{"dir": "./data/files"}
	}
	if cfg.Schedule.RecurringSpec == "" {
		cfg.Schedule.RecurringSpec = "0 3 * * *"
	}
	if cfg.Schedule.ArchivePurgeSpec == "" {
		cfg.Schedule.ArchivePurgeSpec = "30 3 * * *"
	}
	if cfg.Schedule.ArchiveMaxAgeDays == 0 {
		cfg.Schedule.ArchiveMaxAgeDays = 30
	}
	if cfg.UploadLimit == 0 {
		cfg.UploadLimit = 20 * 1024 * 1024
	}
	return &cfg, nil
}
