package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"

	"github.com/garyjia/leave-master/internal/domain/entity"
)

// Store backends
const (
	BackendSQLite = "sqlite"
	BackendLark   = "lark"
	BackendMongo  = "mongo"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Store    StoreConfig    `mapstructure:"store"`
	Database DatabaseConfig `mapstructure:"database"`
	Lark     LarkConfig     `mapstructure:"lark"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	Logger   LoggerConfig   `mapstructure:"logger"`
	UI       UIConfig       `mapstructure:"ui"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Mode            string        `mapstructure:"mode"`
}

// StoreConfig selects the list store backend and its tables
type StoreConfig struct {
	Backend      string `mapstructure:"backend"`
	LeaveTable   string `mapstructure:"leave_table"`
	HolidayTable string `mapstructure:"holiday_table"`
}

// DatabaseConfig holds sqlite configuration
type DatabaseConfig struct {
	Path            string        `mapstructure:"path"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	Holidays        []string      `mapstructure:"holidays"`
}

// LarkConfig holds Lark Bitable configuration. Table ids default to the
// store table names.
type LarkConfig struct {
	AppID          string        `mapstructure:"app_id"`
	AppSecret      string        `mapstructure:"app_secret"`
	AppToken       string        `mapstructure:"app_token"`
	LeaveTableID   string        `mapstructure:"leave_table_id"`
	HolidayTableID string        `mapstructure:"holiday_table_id"`
	APITimeout     time.Duration `mapstructure:"api_timeout"`
}

// MongoConfig holds MongoDB configuration
type MongoConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// UIConfig holds presentation settings
type UIConfig struct {
	Locale string `mapstructure:"locale"`
}

// Load loads configuration from file, a .env file next to the working
// directory and environment variables
func Load(configPath string) (*Config, error) {
	if err := gotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	// Set defaults
	setDefaults(v)

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Override with environment variables
	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Store.Backend = strings.ToLower(strings.TrimSpace(cfg.Store.Backend))

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.mode", "release")

	// Store defaults
	v.SetDefault("store.backend", BackendSQLite)
	v.SetDefault("store.leave_table", entity.DefaultLeaveTable)
	v.SetDefault("store.holiday_table", entity.DefaultHolidayTable)

	// Database defaults
	v.SetDefault("database.path", "data/leave_master.db")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)

	// Lark defaults
	v.SetDefault("lark.api_timeout", 30*time.Second)

	// Mongo defaults
	v.SetDefault("mongo.database", "leave_master")

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.output_path", "stdout")
	v.SetDefault("logger.format", "json")

	// UI defaults
	v.SetDefault("ui.locale", "en")
}

// bindEnvVars binds environment variables to configuration
func bindEnvVars(v *viper.Viper) {
	// Sensitive credentials from environment
	_ = v.BindEnv("lark.app_id", "LARK_APP_ID")
	_ = v.BindEnv("lark.app_secret", "LARK_APP_SECRET")
	_ = v.BindEnv("lark.app_token", "LARK_APP_TOKEN")
	_ = v.BindEnv("mongo.uri", "MONGO_URI")
	_ = v.BindEnv("store.backend", "LEAVE_STORE_BACKEND")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d is out of range", c.Server.Port)
	}
	if c.Store.LeaveTable == "" {
		return fmt.Errorf("store.leave_table is required")
	}
	if c.Store.HolidayTable == "" {
		return fmt.Errorf("store.holiday_table is required")
	}

	switch c.Store.Backend {
	case BackendSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("database.path is required")
		}
	case BackendLark:
		if c.Lark.AppID == "" {
			return fmt.Errorf("lark.app_id is required")
		}
		if c.Lark.AppSecret == "" {
			return fmt.Errorf("lark.app_secret is required")
		}
		if c.Lark.AppToken == "" {
			return fmt.Errorf("lark.app_token is required")
		}
	case BackendMongo:
		if c.Mongo.URI == "" {
			return fmt.Errorf("mongo.uri is required")
		}
		if c.Mongo.Database == "" {
			return fmt.Errorf("mongo.database is required")
		}
	default:
		return fmt.Errorf("unknown store.backend %q", c.Store.Backend)
	}

	return nil
}

// Addr returns the listen address of the HTTP server
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LeaveTableID returns the Bitable table id of the leave table
func (c *Config) LeaveTableID() string {
	if c.Lark.LeaveTableID != "" {
		return c.Lark.LeaveTableID
	}
	return c.Store.LeaveTable
}

// HolidayTableID returns the Bitable table id of the holiday table
func (c *Config) HolidayTableID() string {
	if c.Lark.HolidayTableID != "" {
		return c.Lark.HolidayTableID
	}
	return c.Store.HolidayTable
}
