package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds settings for both the backend server and the navigator client.
type Config struct {
	Env  string
	Port int

	Server ServerConfig
	Client ClientConfig
	CORS   CORSConfig
	Log    LogConfig
}

// ServerConfig controls the backend: where session data and static assets live.
type ServerConfig struct {
	TempDir       string
	DataDir       string
	FloorplanDir  string
	BuildingMap   string
	EnableMetrics bool
	MaxUploadSize int64
}

// ClientConfig controls the navigator CLI.
type ClientConfig struct {
	BaseURL        string
	StateDir       string
	RequestTimeout time.Duration
	CleanupTimeout time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// Load reads .env plus environment overrides the same way on both binaries.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Running without a .env file is fine; env vars and defaults apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")

	cfg.Server = ServerConfig{
		TempDir:       v.GetString("TEMP_DIR"),
		DataDir:       v.GetString("DATA_DIR"),
		FloorplanDir:  v.GetString("FLOORPLAN_DIR"),
		BuildingMap:   v.GetString("BUILDING_MAP"),
		EnableMetrics: v.GetBool("ENABLE_METRICS"),
		MaxUploadSize: v.GetInt64("MAX_UPLOAD_SIZE"),
	}

	cfg.Client = ClientConfig{
		BaseURL:        v.GetString("SERVER_URL"),
		StateDir:       v.GetString("STATE_DIR"),
		RequestTimeout: parseDuration(v.GetString("REQUEST_TIMEOUT"), 30*time.Second),
		CleanupTimeout: parseDuration(v.GetString("CLEANUP_TIMEOUT"), 2*time.Second),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 5500)

	v.SetDefault("TEMP_DIR", "./temporary_data")
	v.SetDefault("DATA_DIR", "./data")
	v.SetDefault("FLOORPLAN_DIR", "./data/floorplans")
	v.SetDefault("BUILDING_MAP", "./data/building_map_with_coords.json")
	v.SetDefault("ENABLE_METRICS", true)
	v.SetDefault("MAX_UPLOAD_SIZE", 20*1024*1024)

	v.SetDefault("SERVER_URL", "http://127.0.0.1:5500")
	v.SetDefault("STATE_DIR", "")
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("CLEANUP_TIMEOUT", "2s")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
