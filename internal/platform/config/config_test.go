package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	apperrors "chronos/internal/platform/errors"
)

func writeSettings(t *testing.T, workspace, content string) {
	t.Helper()
	dir := filepath.Join(workspace, ".chronos")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "settings.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
}

func TestLoadWithoutSettingsFileUsesDefaults(t *testing.T) {
	workspace := t.TempDir()
	cfg, err := Load(workspace)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AppName != "Chronos" || cfg.ReportPrefix != "Chronos報告" || cfg.DefaultSubject != "未選擇科目" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.TickInterval != time.Second || cfg.LongPress != 500*time.Millisecond || cfg.InactivityTimeout != 5*time.Minute {
		t.Fatalf("unexpected default durations: %+v", cfg)
	}
	if len(cfg.Subjects) != 9 || cfg.Subjects[0] != "國文" {
		t.Fatalf("unexpected subjects: %v", cfg.Subjects)
	}
	if cfg.DBPath != filepath.Join(workspace, ".chronos", "chronos.db") {
		t.Fatalf("unexpected db path: %s", cfg.DBPath)
	}
}

func TestLoadOverlaysSettingsAndEnv(t *testing.T) {
	workspace := t.TempDir()
	writeSettings(t, workspace, `
app_name: Kairos
export_dir: out
time_zone: Asia/Taipei
long_press: 750ms
subjects: [數學, 理化]
states:
  - {id: lecture, name: 講述}
actions:
  - {id: praise, name: 鼓勵}
`)
	t.Setenv("CHRONOS_LOG_LEVEL", "debug")
	cfg, err := Load(workspace)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AppName != "Kairos" || cfg.ExportDir != filepath.Join(workspace, "out") {
		t.Fatalf("overlay not applied: %+v", cfg)
	}
	if cfg.Location.String() != "Asia/Taipei" || cfg.LongPress != 750*time.Millisecond {
		t.Fatalf("unexpected zone/long press: %s %s", cfg.Location, cfg.LongPress)
	}
	if len(cfg.Subjects) != 2 || len(cfg.States) != 1 || len(cfg.Actions) != 1 {
		t.Fatalf("unexpected catalogs: %+v", cfg)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected env log level, got %s", cfg.LogLevel)
	}
	if cfg.ReportPrefix != "Chronos報告" {
		t.Fatalf("untouched field should keep default, got %s", cfg.ReportPrefix)
	}
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	cases := []string{
		"long_press: soon\n",
		"tick_interval: -1s\n",
		"time_zone: Mars/Olympus\n",
		"states:\n  - {id: a, name: A}\n  - {id: a, name: B}\n",
		"actions:\n  - {id: '', name: A}\n",
		"subjects: {broken\n",
	}
	for _, content := range cases {
		workspace := t.TempDir()
		writeSettings(t, workspace, content)
		if _, err := Load(workspace); !errors.Is(err, apperrors.ErrInvalidConfig) {
			t.Fatalf("expected invalid config for %q, got %v", content, err)
		}
	}
}

func TestYAMLRendersEffectiveSettings(t *testing.T) {
	t.Parallel()
	cfg, err := New("/tmp/ws")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	out, err := cfg.YAML()
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	for _, want := range []string{"app_name: Chronos", "long_press: 500ms", "- 國文"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
	if _, err := New(""); err == nil {
		t.Fatalf("expected empty workspace to fail")
	}
}
