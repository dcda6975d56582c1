package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	BackendREST        = "rest"
	BackendGoogleTasks = "googletasks"
)

// Config holds application configuration.
type Config struct {
	API    APIConfig    `mapstructure:"api"`
	Google GoogleConfig `mapstructure:"google"`
	Log    LogConfig    `mapstructure:"log"`
	UI     UIConfig     `mapstructure:"ui"`

	// Keys overrides key bindings by action name, e.g. add-task = ["a"].
	Keys map[string][]string `mapstructure:"keys"`
}

// APIConfig describes where tasks are fetched from.
type APIConfig struct {
	Backend   string        `mapstructure:"backend"`
	BaseURL   string        `mapstructure:"base_url"`
	TasksPath string        `mapstructure:"tasks_path"`
	Token     string        `mapstructure:"token"`
	Timeout   time.Duration `mapstructure:"timeout"`
	Breaker   BreakerConfig `mapstructure:"breaker"`
}

// BreakerConfig tunes the circuit breaker around the REST call.
type BreakerConfig struct {
	MaxRequests uint32        `mapstructure:"max_requests"`
	Interval    time.Duration `mapstructure:"interval"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Failures    uint32        `mapstructure:"failures"`
}

// GoogleConfig holds Google Tasks credentials settings.
type GoogleConfig struct {
	CredentialsDir string `mapstructure:"credentials_dir"`
	ListID         string `mapstructure:"list_id"`
}

// LogConfig holds diagnostic log settings.
type LogConfig struct {
	Path       string `mapstructure:"path"`
	Level      string `mapstructure:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// UIConfig holds presentation text.
type UIConfig struct {
	Title       string `mapstructure:"title"`
	EmptyText   string `mapstructure:"empty_text"`
	LoadingText string `mapstructure:"loading_text"`
	CreateText  string `mapstructure:"create_text"`
	CountText   string `mapstructure:"count_text"`
	DueLabel    string `mapstructure:"due_label"`
	DateFormat  string `mapstructure:"date_format"`
}

// Load reads .env, the config file and env. Env var overrides use prefix TASKLIST_.
// path wins over TASKLIST_CONFIG; when both are empty the file under
// $HOME/.config/tasklist is optional.
func Load(path string) (Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")

	cfgPath := path
	if cfgPath == "" {
		cfgPath = os.Getenv("TASKLIST_CONFIG")
	}
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(homeDir(), ".config", "tasklist"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("TASKLIST")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// an explicit config file must exist
		if !errors.As(err, &notFound) || cfgPath != "" {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.backend", BackendREST)
	v.SetDefault("api.base_url", "http://localhost:3000")
	v.SetDefault("api.tasks_path", "/tasks")
	v.SetDefault("api.token", "")
	v.SetDefault("api.timeout", "10s")
	v.SetDefault("api.breaker.max_requests", 1)
	v.SetDefault("api.breaker.interval", "0s")
	v.SetDefault("api.breaker.timeout", "30s")
	v.SetDefault("api.breaker.failures", 5)
	v.SetDefault("google.credentials_dir", filepath.Join(homeDir(), ".config", "tasklist", "google"))
	v.SetDefault("google.list_id", "@default")
	v.SetDefault("log.path", filepath.Join(homeDir(), ".local", "state", "tasklist", "tasklist.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
	v.SetDefault("log.compress", true)
	v.SetDefault("ui.title", "Yapılacaklar")
	v.SetDefault("ui.empty_text", "Henüz bir görev eklenmemiş.")
	v.SetDefault("ui.loading_text", "Yükleniyor...")
	v.SetDefault("ui.create_text", "Yeni görev")
	v.SetDefault("ui.count_text", "%d görev")
	v.SetDefault("ui.due_label", "Son Tarih:")
	v.SetDefault("ui.date_format", "2006-01-02")
}

// Validate rejects settings the sources cannot work with.
func (c Config) Validate() error {
	switch c.API.Backend {
	case BackendREST:
		u, err := url.Parse(c.API.BaseURL)
		if err != nil {
			return fmt.Errorf("api.base_url: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("api.base_url: unsupported scheme %q", u.Scheme)
		}
		if u.Host == "" {
			return fmt.Errorf("api.base_url: missing host")
		}
	case BackendGoogleTasks:
		if strings.TrimSpace(c.Google.CredentialsDir) == "" {
			return fmt.Errorf("google.credentials_dir is required for the %s backend", BackendGoogleTasks)
		}
	default:
		return fmt.Errorf("api.backend: unknown backend %q", c.API.Backend)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %s", c.API.Timeout)
	}
	return nil
}

// TasksURL joins the base URL and the tasks resource path.
func (c APIConfig) TasksURL() string {
	return strings.TrimRight(c.BaseURL, "/") + "/" + strings.TrimLeft(c.TasksPath, "/")
}

func homeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}
