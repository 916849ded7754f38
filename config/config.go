package config

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"axiapac.com/timeclock/infrastructure/devops"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"db"`
	Log      LogConfig      `mapstructure:"log"`
	Timezone string         `mapstructure:"timezone"`
	Sync     SyncConfig     `mapstructure:"sync"`
	Rules    RulesConfig    `mapstructure:"rules"`
	Credits  CreditsConfig  `mapstructure:"credits"`
	Report   ReportConfig   `mapstructure:"report"`
	Slack    SlackConfig    `mapstructure:"slack"`
}

type ServerConfig struct {
	Port      int    `mapstructure:"port"`
	JWTSecret string `mapstructure:"jwt_secret"` // base64
}

type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"`
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	LogLevel     string `mapstructure:"log_level"`
	// SSMParameter names a parameter holding a yaml list of database entries;
	// Name picks the entry. Used instead of DSN when set.
	SSMParameter string `mapstructure:"ssm_parameter"`
	Name         string `mapstructure:"name"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type SyncConfig struct {
	EpochFloor  string         `mapstructure:"epoch_floor"`
	BatchSize   int            `mapstructure:"batch_size"`
	Timeout     time.Duration  `mapstructure:"timeout"`
	Parallel    int            `mapstructure:"parallel"`
	BridgeURL   string         `mapstructure:"bridge_url"`
	BridgeToken string         `mapstructure:"bridge_token"`
	Cursor      CursorConfig   `mapstructure:"cursor"`
	Devices     []DeviceConfig `mapstructure:"devices"`
}

type CursorConfig struct {
	Backend string `mapstructure:"backend"` // file | s3
	Path    string `mapstructure:"path"`
	Bucket  string `mapstructure:"bucket"`
	Key     string `mapstructure:"key"`
}

type DeviceConfig struct {
	ID       string `mapstructure:"id"`
	Name     string `mapstructure:"name"`
	Address  string `mapstructure:"address"`
	Kind     string `mapstructure:"kind"` // bridge | csv
	Timezone string `mapstructure:"timezone"`
}

type RulesConfig struct {
	SkipLunchBreak   bool `mapstructure:"skip_lunch_break"`
	SkipBreakOTGrace bool `mapstructure:"skip_break_ot_grace"`
}

type CreditsConfig struct {
	ChunkSize        int  `mapstructure:"chunk_size"`
	GrantAfterSync   bool `mapstructure:"grant_after_sync"`
	GrantOTAfterSync bool `mapstructure:"grant_ot_after_sync"`
}

type ReportConfig struct {
	Bucket    string   `mapstructure:"bucket"`
	Prefix    string   `mapstructure:"prefix"`
	EmailFrom string   `mapstructure:"email_from"`
	EmailTo   []string `mapstructure:"email_to"`
}

type SlackConfig struct {
	Token        string `mapstructure:"token"`
	InfoChannel  string `mapstructure:"info_channel"`
	ErrorChannel string `mapstructure:"error_channel"`
}

const (
	DeviceKindBridge = "bridge"
	DeviceKindCSV    = "csv"

	CursorBackendFile = "file"
	CursorBackendS3   = "s3"
)

// Load reads defaults, then the yaml file, then TIMECLOCK_* environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8090)

	v.SetDefault("db.driver", "mysql")
	v.SetDefault("db.dsn", "root:development@tcp(localhost:3306)/timeclock?parseTime=true&loc=UTC")
	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("db.log_level", "warn")
	v.SetDefault("db.ssm_parameter", "")
	v.SetDefault("db.name", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("timezone", "Asia/Bangkok")

	v.SetDefault("sync.epoch_floor", "2025-12-26")
	v.SetDefault("sync.batch_size", 100)
	v.SetDefault("sync.timeout", "30s")
	v.SetDefault("sync.parallel", 1)
	v.SetDefault("sync.bridge_url", "http://localhost:3000")
	v.SetDefault("sync.bridge_token", "")
	v.SetDefault("sync.cursor.backend", CursorBackendFile)
	v.SetDefault("sync.cursor.path", "sync-state.json")
	v.SetDefault("sync.cursor.bucket", "")
	v.SetDefault("sync.cursor.key", "timeclock/sync-state.json")

	v.SetDefault("rules.skip_lunch_break", false)
	v.SetDefault("rules.skip_break_ot_grace", false)

	v.SetDefault("credits.chunk_size", 1000)
	v.SetDefault("credits.grant_after_sync", true)
	v.SetDefault("credits.grant_ot_after_sync", false)

	v.SetDefault("report.bucket", "")
	v.SetDefault("report.prefix", "meal-credits/")
	v.SetDefault("report.email_from", "")

	v.SetDefault("slack.token", "")
	v.SetDefault("slack.info_channel", "")
	v.SetDefault("slack.error_channel", "")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("TIMECLOCK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	for i := range cfg.Sync.Devices {
		if cfg.Sync.Devices[i].Kind == "" {
			cfg.Sync.Devices[i].Kind = DeviceKindBridge
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := time.Parse("2006-01-02", c.Sync.EpochFloor); err != nil {
		return fmt.Errorf("invalid config: sync.epoch_floor %q: %w", c.Sync.EpochFloor, err)
	}
	if c.Sync.BatchSize <= 0 || c.Credits.ChunkSize <= 0 {
		return fmt.Errorf("invalid config: sync.batch_size and credits.chunk_size must be positive")
	}
	switch c.Database.Driver {
	case "mysql", "postgres":
	default:
		return fmt.Errorf("invalid config: unsupported db.driver %q", c.Database.Driver)
	}
	switch c.Sync.Cursor.Backend {
	case CursorBackendFile:
	case CursorBackendS3:
		if c.Sync.Cursor.Bucket == "" {
			return fmt.Errorf("invalid config: sync.cursor.bucket is required for the s3 backend")
		}
	default:
		return fmt.Errorf("invalid config: unsupported sync.cursor.backend %q", c.Sync.Cursor.Backend)
	}

	seen := make(map[string]bool, len(c.Sync.Devices))
	for _, d := range c.Sync.Devices {
		if d.ID == "" || d.Address == "" {
			return fmt.Errorf("invalid config: every device needs an id and an address")
		}
		if seen[d.ID] {
			return fmt.Errorf("invalid config: duplicate device id %q", d.ID)
		}
		seen[d.ID] = true
		if d.Kind != DeviceKindBridge && d.Kind != DeviceKindCSV {
			return fmt.Errorf("invalid config: device %s has unsupported kind %q", d.ID, d.Kind)
		}
		if d.Timezone != "" {
			if _, err := time.LoadLocation(d.Timezone); err != nil {
				return fmt.Errorf("invalid config: device %s timezone: %w", d.ID, err)
			}
		}
	}
	return nil
}

func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid config: timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// EpochFloor is the earliest instant ingestion will ever accept.
func (c *Config) EpochFloor(loc *time.Location) time.Time {
	t, _ := time.ParseInLocation("2006-01-02", c.Sync.EpochFloor, loc)
	return t
}

// JWTKey decodes the server signing secret.
func (c *Config) JWTKey() ([]byte, error) {
	if c.Server.JWTSecret == "" {
		return nil, fmt.Errorf("server.jwt_secret is not set")
	}
	key, err := base64.StdEncoding.DecodeString(c.Server.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to decode server.jwt_secret: %w", err)
	}
	if len(key) < 16 {
		return nil, fmt.Errorf("server.jwt_secret must decode to at least 16 bytes")
	}
	return key, nil
}

// ResolveDSN returns the configured DSN, or the entry from SSM when a
// parameter name is set.
func (c *DatabaseConfig) ResolveDSN(ctx context.Context) (string, error) {
	if c.SSMParameter == "" {
		return c.DSN, nil
	}
	entries, err := devops.LoadDBEntries(ctx, c.SSMParameter)
	if err != nil {
		return "", fmt.Errorf("failed to load databases from SSM: %w", err)
	}
	entry, ok := entries[strings.ToLower(c.Name)]
	if !ok {
		return "", fmt.Errorf("database %q not found in parameter %s", c.Name, c.SSMParameter)
	}
	return entry.GetDSN(c.Driver), nil
}
