package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App            AppConfig       `mapstructure:"app"`
	Server         ServerConfig    `mapstructure:"server"`
	Data           DataConfig      `mapstructure:"data"`
	Cache          CacheConfig     `mapstructure:"cache"`
	Redis          RedisConfig     `mapstructure:"redis"`
	RateLimit      RateLimitConfig `mapstructure:"rate_limit"`
	Scale          ScaleConfig     `mapstructure:"scale"`
	RequestTimeout time.Duration   `mapstructure:"request_timeout"`
	LogLevel       string          `mapstructure:"log_level"`
	LogFile        string          `mapstructure:"log_file"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env     string `mapstructure:"env"`
	Debug   bool   `mapstructure:"debug"`
	Version string `mapstructure:"version"`
	Name    string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// 資料來源種類
const (
	SourceFile = "file"
	SourceHTTP = "http"
)

// DataConfig 食譜資料來源設定
type DataConfig struct {
	Source       string        `mapstructure:"source"`        // file 或 http
	Dir          string        `mapstructure:"dir"`           // source=file 時的根目錄
	BaseURL      string        `mapstructure:"base_url"`      // source=http 時的基底 URL
	CatalogFile  string        `mapstructure:"catalog_file"`  // 食材目錄文件
	IndexFile    string        `mapstructure:"index_file"`    // 食譜索引文件
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"` // 單次讀取超時
}

// CacheConfig 記憶體快取配置
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	MaxSize         int           `mapstructure:"max_size"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// RedisConfig Redis 快取配置
type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
	Prefix   string        `mapstructure:"prefix"`
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// ScaleConfig 份量倍率設定
type ScaleConfig struct {
	Presets []float64 `mapstructure:"presets"`
}

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// .env 為選用
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return Load(viper.New())
}

// Load 以指定的 viper 實例載入設定
func Load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	// 設定環境變數前綴
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 綁定常用環境變量
	_ = v.BindEnv("data.source", "DATA_SOURCE")
	_ = v.BindEnv("data.dir", "DATA_DIR")
	_ = v.BindEnv("data.base_url", "DATA_BASE_URL")
	_ = v.BindEnv("cache.enabled", "CACHE_ENABLED")
	_ = v.BindEnv("redis.enabled", "REDIS_ENABLED")
	_ = v.BindEnv("redis.addr", "REDIS_ADDR")
	_ = v.BindEnv("redis.password", "REDIS_PASSWORD")
	_ = v.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	_ = v.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	_ = v.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")
	_ = v.BindEnv("log_level", "LOG_LEVEL")
	_ = v.BindEnv("log_file", "LOG_FILE")

	// 設定檔為選用
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// setDefaults 設定預設值
func setDefaults(v *viper.Viper) {
	// 應用程式設定
	v.SetDefault("app.env", "development")
	v.SetDefault("app.debug", true)
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.name", "recipe-viewer")

	// 伺服器設定
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "120s")

	// 資料來源設定
	v.SetDefault("data.source", SourceFile)
	v.SetDefault("data.dir", "data")
	v.SetDefault("data.base_url", "")
	v.SetDefault("data.catalog_file", "ingredients.json")
	v.SetDefault("data.index_file", "recipe-index.json")
	v.SetDefault("data.fetch_timeout", "10s")

	// 快取設定
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.max_size", 500)
	v.SetDefault("cache.ttl", "5m")
	v.SetDefault("cache.cleanup_interval", "1m")

	// Redis 設定
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", "30m")
	v.SetDefault("redis.prefix", "recipe-viewer:doc:")

	// 限流設定
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 100)
	v.SetDefault("rate_limit.window", "1m")

	// 份量倍率
	v.SetDefault("scale.presets", []float64{0.5, 1, 2})

	v.SetDefault("request_timeout", "30s")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	if config.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}

	switch config.Data.Source {
	case SourceFile:
		if config.Data.Dir == "" {
			return fmt.Errorf("data dir is required for file source")
		}
	case SourceHTTP:
		if config.Data.BaseURL == "" {
			return fmt.Errorf("data base url is required for http source")
		}
	default:
		return fmt.Errorf("unknown data source %q", config.Data.Source)
	}
	if config.Data.CatalogFile == "" || config.Data.IndexFile == "" {
		return fmt.Errorf("catalog and index locators are required")
	}

	if config.Cache.Enabled {
		if config.Cache.MaxSize <= 0 {
			return fmt.Errorf("invalid cache max size")
		}
		if config.Cache.TTL <= 0 {
			return fmt.Errorf("invalid cache ttl")
		}
		if config.Cache.CleanupInterval <= 0 {
			return fmt.Errorf("invalid cache cleanup interval")
		}
	}

	if config.Redis.Enabled && config.Redis.Addr == "" {
		return fmt.Errorf("redis addr is required when redis is enabled")
	}

	if config.RateLimit.Enabled && (config.RateLimit.Requests <= 0 || config.RateLimit.Window <= 0) {
		return fmt.Errorf("invalid rate limit")
	}

	if len(config.Scale.Presets) == 0 {
		return fmt.Errorf("at least one scale preset is required")
	}
	for _, p := range config.Scale.Presets {
		if p <= 0 {
			return fmt.Errorf("invalid scale preset %v", p)
		}
	}

	return nil
}
