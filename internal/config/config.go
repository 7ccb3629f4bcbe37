package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	internalsettings "github.com/inkwell-dev/inkwell/internal/settings"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

const (
	EnvConfigPath   = "CONFIG_PATH"
	EnvDBConnection = "DB_CONNECTION"
	EnvJWTSecret    = "JWT_SECRET"
	EnvJWTExpiry    = "JWT_EXPIRY"
)

// AppConfig holds resolved application configuration values.
type AppConfig struct {
	ConfigPath string
}

// LoadFromEnv loads app config from environment variables.
func LoadFromEnv() (AppConfig, error) {
	return AppConfig{ConfigPath: ResolveConfigPath(os.Getenv(EnvConfigPath))}, nil
}

// ResolveConfigPath normalizes the config path and applies defaults.
func ResolveConfigPath(p string) string {
	trimmed := strings.TrimSpace(p)
	if trimmed == "" {
		trimmed = "./config.yaml"
	}
	if abs, err := filepath.Abs(trimmed); err == nil {
		return abs
	}
	return trimmed
}

// ErrMissingDatabaseDSN indicates no database DSN is present in the config file.
var ErrMissingDatabaseDSN = errors.New("missing database dsn (set `database-dsn` or `database.dsn` in config file)")

// JWTConfig holds JWT secret and expiry settings.
type JWTConfig struct {
	Secret string        `yaml:"secret"`
	Expiry time.Duration `yaml:"expiry"`
}

// LoadDatabaseDSN reads the database DSN from the YAML config file.
func LoadDatabaseDSN(configPath string) (string, error) {
	if dsn := strings.TrimSpace(os.Getenv(EnvDBConnection)); dsn != "" {
		return dsn, nil
	}

	// fileConfig maps the YAML fields needed for DSN resolution.
	type fileConfig struct {
		DatabaseDSN string `yaml:"database-dsn"`
		Database    struct {
			DSN string `yaml:"dsn"`
		} `yaml:"database"`
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return "", fmt.Errorf("read config file: %w", err)
	}

	var cfg fileConfig
	if errUnmarshal := yaml.Unmarshal(data, &cfg); errUnmarshal != nil {
		return "", fmt.Errorf("parse config file: %w", errUnmarshal)
	}

	if dsn := strings.TrimSpace(cfg.DatabaseDSN); dsn != "" {
		return dsn, nil
	}
	if dsn := strings.TrimSpace(cfg.Database.DSN); dsn != "" {
		return dsn, nil
	}
	return "", ErrMissingDatabaseDSN
}

// defaultJWTExpiry is used when the config omits or invalidates JWT expiry.
const defaultJWTExpiry = 30 * 24 * time.Hour

// ErrMissingJWTSecret indicates no JWT secret is configured.
var ErrMissingJWTSecret = errors.New("missing jwt secret (set `jwt.secret` in config file or env JWT_SECRET)")

// LoadJWTConfig loads JWT settings from the YAML config file.
func LoadJWTConfig(configPath string) (JWTConfig, error) {
	// fileConfig maps the YAML fields needed for JWT settings.
	type fileConfig struct {
		JWT JWTConfig `yaml:"jwt"`
	}

	result := JWTConfig{Expiry: defaultJWTExpiry}

	data, errRead := os.ReadFile(configPath)
	if errRead == nil {
		var cfg fileConfig
		if errUnmarshal := yaml.Unmarshal(data, &cfg); errUnmarshal == nil {
			result = cfg.JWT
		}
	}

	if secret := strings.TrimSpace(os.Getenv(EnvJWTSecret)); secret != "" {
		result.Secret = secret
	}
	if expiryRaw := strings.TrimSpace(os.Getenv(EnvJWTExpiry)); expiryRaw != "" {
		if expiry, errParse := time.ParseDuration(expiryRaw); errParse == nil && expiry > 0 {
			result.Expiry = expiry
		}
	}

	if result.Expiry <= 0 {
		result.Expiry = defaultJWTExpiry
	}
	return result, nil
}

// SiteConfig holds feed presentation settings. Zero numeric fields mean
// the config file did not set them; callers resolve those against the
// stored settings rows via ResolveSiteConfig.
type SiteConfig struct {
	PostsOnPage   int    `yaml:"posts-per-page"`
	PreviewLength int    `yaml:"preview-length"`
	UploadsDir    string `yaml:"uploads-dir"`
}

// LoadSiteConfig loads feed settings from the YAML config file. Values
// the file omits are left unset.
func LoadSiteConfig(configPath string) (SiteConfig, error) {
	// fileConfig maps the YAML fields needed for site settings.
	type fileConfig struct {
		Site SiteConfig `yaml:"site"`
	}

	result := SiteConfig{UploadsDir: "./uploads"}

	data, errRead := os.ReadFile(configPath)
	if errRead == nil {
		var cfg fileConfig
		if errUnmarshal := yaml.Unmarshal(data, &cfg); errUnmarshal == nil {
			if cfg.Site.PostsOnPage > 0 {
				result.PostsOnPage = cfg.Site.PostsOnPage
			}
			if cfg.Site.PreviewLength > 0 {
				result.PreviewLength = cfg.Site.PreviewLength
			}
			if dir := strings.TrimSpace(cfg.Site.UploadsDir); dir != "" {
				result.UploadsDir = dir
			}
		}
	}

	return result, nil
}

// ResolveSiteConfig fills values the config file left unset from the
// stored settings rows, then from compiled-in defaults. File values
// always win.
func ResolveSiteConfig(conn *gorm.DB, cfg SiteConfig) SiteConfig {
	if cfg.PostsOnPage <= 0 {
		cfg.PostsOnPage = internalsettings.ResolveInt(conn,
			internalsettings.PostsOnPageKey, internalsettings.DefaultPostsOnPage)
	}
	if cfg.PreviewLength <= 0 {
		cfg.PreviewLength = internalsettings.ResolveInt(conn,
			internalsettings.PreviewLengthKey, internalsettings.DefaultPreviewLength)
	}
	if strings.TrimSpace(cfg.UploadsDir) == "" {
		cfg.UploadsDir = "./uploads"
	}
	return cfg
}
