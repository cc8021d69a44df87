package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"

	apperrors "chronos/internal/platform/errors"
)

const (
	dataDirName      = ".chronos"
	settingsFileName = "settings.yaml"
	envLogLevel      = "CHRONOS_LOG_LEVEL"

	defaultAppName           = "Chronos"
	defaultReportPrefix      = "Chronos報告"
	defaultSubject           = "未選擇科目"
	defaultLogLevel          = "info"
	defaultTickInterval      = time.Second
	defaultLongPress         = 500 * time.Millisecond
	defaultInactivityTimeout = 5 * time.Minute
)

var defaultSubjects = []string{"國文", "英文", "數學", "物理", "化學", "生物", "地理", "歷史", "公民"}

// CatalogItem names one teaching state or action in settings.yaml.
type CatalogItem struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type Config struct {
	WorkspacePath string
	SettingsPath  string
	DBPath        string
	ExportDir     string
	ReportsDir    string
	LogFile       string
	LogLevel      string

	AppName      string
	ReportPrefix string
	Location     *time.Location

	TickInterval      time.Duration
	LongPress         time.Duration
	InactivityTimeout time.Duration

	DefaultSubject string
	Subjects       []string
	// Empty catalogs fall back to the built-in observation templates.
	States  []CatalogItem
	Actions []CatalogItem
}

type yamlSettings struct {
	AppName           string        `yaml:"app_name,omitempty"`
	ReportPrefix      string        `yaml:"report_prefix,omitempty"`
	ExportDir         string        `yaml:"export_dir,omitempty"`
	ReportsDir        string        `yaml:"reports_dir,omitempty"`
	LogFile           string        `yaml:"log_file,omitempty"`
	LogLevel          string        `yaml:"log_level,omitempty"`
	TimeZone          string        `yaml:"time_zone,omitempty"`
	TickInterval      string        `yaml:"tick_interval,omitempty"`
	LongPress         string        `yaml:"long_press,omitempty"`
	InactivityTimeout string        `yaml:"inactivity_timeout,omitempty"`
	DefaultSubject    string        `yaml:"default_subject,omitempty"`
	Subjects          []string      `yaml:"subjects,omitempty"`
	States            []CatalogItem `yaml:"states,omitempty"`
	Actions           []CatalogItem `yaml:"actions,omitempty"`
}

// New returns the default configuration rooted at workspacePath.
func New(workspacePath string) (Config, error) {
	if workspacePath == "" {
		return Config{}, fmt.Errorf("workspace path is required")
	}
	dataDir := filepath.Join(workspacePath, dataDirName)
	return Config{
		WorkspacePath:     workspacePath,
		SettingsPath:      filepath.Join(dataDir, settingsFileName),
		DBPath:            filepath.Join(dataDir, "chronos.db"),
		ExportDir:         workspacePath,
		ReportsDir:        filepath.Join(workspacePath, "reports"),
		LogFile:           filepath.Join(dataDir, "chronos.log"),
		LogLevel:          defaultLogLevel,
		AppName:           defaultAppName,
		ReportPrefix:      defaultReportPrefix,
		Location:          time.Local,
		TickInterval:      defaultTickInterval,
		LongPress:         defaultLongPress,
		InactivityTimeout: defaultInactivityTimeout,
		DefaultSubject:    defaultSubject,
		Subjects:          append([]string(nil), defaultSubjects...),
	}, nil
}

// Load builds the default configuration and overlays settings.yaml when it
// exists. A missing settings file is not an error.
func Load(workspacePath string) (Config, error) {
	cfg, err := New(workspacePath)
	if err != nil {
		return Config{}, err
	}
	raw, err := os.ReadFile(cfg.SettingsPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("read settings file: %w", err)
	}
	if err == nil {
		var fileData yamlSettings
		if err := yaml.Unmarshal(raw, &fileData); err != nil {
			return Config{}, fmt.Errorf("%w: parse settings yaml: %v", apperrors.ErrInvalidConfig, err)
		}
		if err := cfg.apply(fileData); err != nil {
			return Config{}, err
		}
	}
	if level := strings.TrimSpace(os.Getenv(envLogLevel)); level != "" {
		cfg.LogLevel = level
	}
	return cfg, nil
}

func (c *Config) apply(fileData yamlSettings) error {
	if fileData.AppName != "" {
		c.AppName = fileData.AppName
	}
	if fileData.ReportPrefix != "" {
		c.ReportPrefix = fileData.ReportPrefix
	}
	if fileData.ExportDir != "" {
		c.ExportDir = c.resolve(fileData.ExportDir)
	}
	if fileData.ReportsDir != "" {
		c.ReportsDir = c.resolve(fileData.ReportsDir)
	}
	if fileData.LogFile != "" {
		c.LogFile = c.resolve(fileData.LogFile)
	}
	if fileData.LogLevel != "" {
		c.LogLevel = fileData.LogLevel
	}
	if fileData.TimeZone != "" {
		loc, err := time.LoadLocation(fileData.TimeZone)
		if err != nil {
			return fmt.Errorf("%w: time_zone %q: %v", apperrors.ErrInvalidConfig, fileData.TimeZone, err)
		}
		c.Location = loc
	}

	durations := []struct {
		name  string
		value string
		dst   *time.Duration
	}{
		{"tick_interval", fileData.TickInterval, &c.TickInterval},
		{"long_press", fileData.LongPress, &c.LongPress},
		{"inactivity_timeout", fileData.InactivityTimeout, &c.InactivityTimeout},
	}
	for _, d := range durations {
		if d.value == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.value)
		if err != nil || parsed <= 0 {
			return fmt.Errorf("%w: %s must be a positive duration, got %q", apperrors.ErrInvalidConfig, d.name, d.value)
		}
		*d.dst = parsed
	}

	if fileData.DefaultSubject != "" {
		c.DefaultSubject = fileData.DefaultSubject
	}
	if len(fileData.Subjects) > 0 {
		c.Subjects = fileData.Subjects
	}
	if err := validateCatalog("states", fileData.States); err != nil {
		return err
	}
	if err := validateCatalog("actions", fileData.Actions); err != nil {
		return err
	}
	c.States = fileData.States
	c.Actions = fileData.Actions
	return nil
}

func (c Config) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.WorkspacePath, path)
}

func validateCatalog(name string, items []CatalogItem) error {
	seen := map[string]bool{}
	for _, item := range items {
		if strings.TrimSpace(item.ID) == "" || strings.TrimSpace(item.Name) == "" {
			return fmt.Errorf("%w: %s entries need id and name", apperrors.ErrInvalidConfig, name)
		}
		if seen[item.ID] {
			return fmt.Errorf("%w: duplicate %s id %q", apperrors.ErrInvalidConfig, name, item.ID)
		}
		seen[item.ID] = true
	}
	return nil
}

// YAML renders the effective settings in settings.yaml form.
func (c Config) YAML() (string, error) {
	zone := ""
	if c.Location != nil {
		zone = c.Location.String()
	}
	out, err := yaml.Marshal(yamlSettings{
		AppName:           c.AppName,
		ReportPrefix:      c.ReportPrefix,
		ExportDir:         c.ExportDir,
		ReportsDir:        c.ReportsDir,
		LogFile:           c.LogFile,
		LogLevel:          c.LogLevel,
		TimeZone:          zone,
		TickInterval:      c.TickInterval.String(),
		LongPress:         c.LongPress.String(),
		InactivityTimeout: c.InactivityTimeout.String(),
		DefaultSubject:    c.DefaultSubject,
		Subjects:          c.Subjects,
		States:            c.States,
		Actions:           c.Actions,
	})
	if err != nil {
		return "", fmt.Errorf("marshal settings yaml: %w", err)
	}
	return string(out), nil
}
