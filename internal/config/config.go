package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/rhyrak/go-timetable/internal/scheduler"
	"github.com/rhyrak/go-timetable/pkg/model"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	envPrefix = "TIMETABLE"
)

type Config struct {
	Env     string
	Log     LogConfig
	Planner PlannerConfig
	Server  ServerConfig
	CSV     CSVConfig
}

type LogConfig struct {
	Level  string
	Format string
}

// PlannerConfig bounds the searches and sets the default time window.
type PlannerConfig struct {
	ScheduleLimit int
	JointLimit    int
	PageSize      int
	WindowStart   string
	WindowEnd     string
}

type ServerConfig struct {
	Port           int
	AllowedOrigins []string
	SessionTTL     time.Duration
	MaxUploadBytes int64
}

type CSVConfig struct {
	Delimiter     string
	CoursesFile   string
	PreferredFile string
	ExportFile    string
}

// Load reads configuration from an optional file, a .env file and
// TIMETABLE_ prefixed environment variables, in increasing priority.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	cfg := &Config{}
	cfg.Env = v.GetString("ENV")

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Planner = PlannerConfig{
		ScheduleLimit: v.GetInt("PLANNER_SCHEDULE_LIMIT"),
		JointLimit:    v.GetInt("PLANNER_JOINT_LIMIT"),
		PageSize:      v.GetInt("PLANNER_PAGE_SIZE"),
		WindowStart:   v.GetString("PLANNER_WINDOW_START"),
		WindowEnd:     v.GetString("PLANNER_WINDOW_END"),
	}

	cfg.Server = ServerConfig{
		Port:           v.GetInt("PORT"),
		AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS")),
		SessionTTL:     parseDuration(v.GetString("SESSION_TTL"), 30*time.Minute),
		MaxUploadBytes: v.GetInt64("MAX_UPLOAD_BYTES"),
	}

	cfg.CSV = CSVConfig{
		Delimiter:     v.GetString("CSV_DELIMITER"),
		CoursesFile:   v.GetString("CSV_COURSES_FILE"),
		PreferredFile: v.GetString("CSV_PREFERRED_FILE"),
		ExportFile:    v.GetString("CSV_EXPORT_FILE"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("PLANNER_SCHEDULE_LIMIT", scheduler.DefaultScheduleLimit)
	v.SetDefault("PLANNER_JOINT_LIMIT", scheduler.DefaultJointLimit)
	v.SetDefault("PLANNER_PAGE_SIZE", scheduler.DefaultPageSize)
	v.SetDefault("PLANNER_WINDOW_START", "08:00")
	v.SetDefault("PLANNER_WINDOW_END", "20:00")

	v.SetDefault("PORT", 8080)
	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("SESSION_TTL", "30m")
	v.SetDefault("MAX_UPLOAD_BYTES", 4*1024*1024)

	v.SetDefault("CSV_DELIMITER", ";")
	v.SetDefault("CSV_COURSES_FILE", "./res/courses.csv")
	v.SetDefault("CSV_PREFERRED_FILE", "")
	v.SetDefault("CSV_EXPORT_FILE", "schedules.csv")
}

// Validate checks the window, the limits and the delimiter.
func (c *Config) Validate() error {
	if _, err := c.Window(); err != nil {
		return err
	}
	if c.Planner.ScheduleLimit <= 0 || c.Planner.JointLimit <= 0 || c.Planner.PageSize <= 0 {
		return fmt.Errorf("planner limits and page size must be positive")
	}
	if utf8.RuneCountInString(c.CSV.Delimiter) != 1 {
		return fmt.Errorf("csv delimiter must be a single character, got %q", c.CSV.Delimiter)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	return nil
}

func (c *Config) Window() (model.Window, error) {
	return model.ParseWindow(c.Planner.WindowStart, c.Planner.WindowEnd)
}

// Delimiter returns the CSV delimiter, ';' when unset.
func (c *Config) Delimiter() rune {
	r, size := utf8.DecodeRuneInString(c.CSV.Delimiter)
	if size == 0 || r == utf8.RuneError {
		return ';'
	}
	return r
}

// Scheduler converts the planner and CSV sections into a scheduler configuration.
func (c *Config) Scheduler() (*scheduler.Configuration, error) {
	window, err := c.Window()
	if err != nil {
		return nil, err
	}
	sc := scheduler.NewDefaultConfiguration()
	sc.CoursesFile = c.CSV.CoursesFile
	sc.PreferredFile = c.CSV.PreferredFile
	sc.ExportFile = c.CSV.ExportFile
	sc.Delimiter = c.Delimiter()
	sc.ScheduleLimit = c.Planner.ScheduleLimit
	sc.JointLimit = c.Planner.JointLimit
	sc.PageSize = c.Planner.PageSize
	sc.Window = window
	return sc, nil
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
