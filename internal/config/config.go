package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/sandeepkv93/todolist/internal/model"
)

const (
	DefaultConfigFileName = "todolist.toml"
	DefaultBaseURL        = "https://jsonplaceholder.typicode.com"
	DefaultTimeoutMS      = 12000
	DefaultServerAddr     = ":8080"

	SourceRemote = "remote"
	sqlitePrefix = "sqlite:"
)

var (
	ErrInvalidTimeout = errors.New("remote timeout must be positive")
	ErrInvalidSource  = errors.New("source must be \"remote\" or \"sqlite:<path>\"")
)

type Keymap struct {
	Add     string `toml:"add"`
	Toggle  string `toml:"toggle"`
	Edit    string `toml:"edit"`
	Delete  string `toml:"delete"`
	Retry   string `toml:"retry"`
	Filter  string `toml:"filter"`
	Sort    string `toml:"sort"`
	Up      string `toml:"up"`
	Down    string `toml:"down"`
	Palette string `toml:"palette"`
	Help    string `toml:"help"`
	Quit    string `toml:"quit"`
}

type RemoteConfig struct {
	BaseURL   string `toml:"base_url"`
	TimeoutMS int    `toml:"timeout_ms"`
}

type ViewConfig struct {
	DefaultFilter string `toml:"default_filter"`
	DefaultSort   string `toml:"default_sort"`
}

type LogConfig struct {
	Level string `toml:"level"`
	JSON  bool   `toml:"json"`
	File  string `toml:"file"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

type Config struct {
	Source               string       `toml:"source"`
	DesktopNotifications bool         `toml:"desktop_notifications"`
	Remote               RemoteConfig `toml:"remote"`
	View                 ViewConfig   `toml:"view"`
	Log                  LogConfig    `toml:"log"`
	Server               ServerConfig `toml:"server"`
	Keys                 Keymap       `toml:"keys"`
}

func Default() Config {
	return Config{
		Source: SourceRemote,
		Remote: RemoteConfig{
			BaseURL:   DefaultBaseURL,
			TimeoutMS: DefaultTimeoutMS,
		},
		View: ViewConfig{
			DefaultFilter: string(model.FilterAll),
			DefaultSort:   string(model.SortMostRecent),
		},
		Log:    LogConfig{Level: "info"},
		Server: ServerConfig{Addr: DefaultServerAddr},
		Keys: Keymap{
			Add:     "a",
			Toggle:  "space",
			Edit:    "e",
			Delete:  "d",
			Retry:   "r",
			Filter:  "f",
			Sort:    "s",
			Up:      "k",
			Down:    "j",
			Palette: "/",
			Help:    "?",
			Quit:    "q",
		},
	}
}

// Load layers defaults, the TOML file at path (created when missing), an
// optional .env file and TODOLIST_* environment variables, then validates.
// An empty path skips the file layer.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) != "" {
		loaded, err := LoadOrCreate(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	_ = godotenv.Load()
	cfg = FromEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.fillBlanks()
	return cfg, nil
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// fillBlanks restores defaults for string fields a hand-edited file left empty.
func (c *Config) fillBlanks() {
	def := Default()
	if strings.TrimSpace(c.Source) == "" {
		c.Source = def.Source
	}
	if strings.TrimSpace(c.Remote.BaseURL) == "" {
		c.Remote.BaseURL = def.Remote.BaseURL
	}
	if c.View.DefaultFilter == "" {
		c.View.DefaultFilter = def.View.DefaultFilter
	}
	if c.View.DefaultSort == "" {
		c.View.DefaultSort = def.View.DefaultSort
	}
	if c.Server.Addr == "" {
		c.Server.Addr = def.Server.Addr
	}
	setBlank(&c.Keys.Add, def.Keys.Add)
	setBlank(&c.Keys.Toggle, def.Keys.Toggle)
	setBlank(&c.Keys.Edit, def.Keys.Edit)
	setBlank(&c.Keys.Delete, def.Keys.Delete)
	setBlank(&c.Keys.Retry, def.Keys.Retry)
	setBlank(&c.Keys.Filter, def.Keys.Filter)
	setBlank(&c.Keys.Sort, def.Keys.Sort)
	setBlank(&c.Keys.Up, def.Keys.Up)
	setBlank(&c.Keys.Down, def.Keys.Down)
	setBlank(&c.Keys.Palette, def.Keys.Palette)
	setBlank(&c.Keys.Help, def.Keys.Help)
	setBlank(&c.Keys.Quit, def.Keys.Quit)
}

func setBlank(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}

func FromEnv(base Config) Config {
	cfg := base
	if v, ok := getEnvString("TODOLIST_REMOTE_BASE_URL"); ok {
		cfg.Remote.BaseURL = v
	}
	if v, ok := getEnvInt("TODOLIST_REMOTE_TIMEOUT_MS"); ok {
		cfg.Remote.TimeoutMS = v
	}
	if v, ok := getEnvString("TODOLIST_SOURCE"); ok {
		cfg.Source = v
	}
	if v, ok := getEnvString("TODOLIST_DEFAULT_FILTER"); ok {
		cfg.View.DefaultFilter = v
	}
	if v, ok := getEnvString("TODOLIST_DEFAULT_SORT"); ok {
		cfg.View.DefaultSort = v
	}
	if v, ok := getEnvString("TODOLIST_LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}
	if v, ok := getEnvBool("TODOLIST_LOG_JSON"); ok {
		cfg.Log.JSON = v
	}
	if v, ok := getEnvString("TODOLIST_LOG_FILE"); ok {
		cfg.Log.File = v
	}
	if v, ok := getEnvString("TODOLIST_SERVER_ADDR"); ok {
		cfg.Server.Addr = v
	}
	if v, ok := getEnvBool("TODOLIST_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	return cfg
}

func (c Config) Validate() error {
	if c.Remote.TimeoutMS <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTimeout, c.Remote.TimeoutMS)
	}
	if _, err := model.ParseFilter(c.View.DefaultFilter); err != nil {
		return err
	}
	if _, err := model.ParseSortOrder(c.View.DefaultSort); err != nil {
		return err
	}
	if c.Source != SourceRemote {
		if p, ok := c.SQLitePath(); !ok || p == "" {
			return fmt.Errorf("%w: %q", ErrInvalidSource, c.Source)
		}
	}
	return nil
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.Remote.TimeoutMS) * time.Millisecond
}

// SQLitePath reports the database path when the source is "sqlite:<path>".
func (c Config) SQLitePath() (string, bool) {
	if !strings.HasPrefix(c.Source, sqlitePrefix) {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(c.Source, sqlitePrefix)), true
}

func (c Config) Filter() model.Filter {
	f, err := model.ParseFilter(c.View.DefaultFilter)
	if err != nil {
		return model.FilterAll
	}
	return f
}

func (c Config) Sort() model.SortOrder {
	s, err := model.ParseSortOrder(c.View.DefaultSort)
	if err != nil {
		return model.SortMostRecent
	}
	return s
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
