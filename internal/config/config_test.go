package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/mvvm/internal/errors"
	"github.com/vango-dev/mvvm/pkg/reactive"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, DefaultLogLevel)
	}
	if cfg.Log.Format != DefaultLogFormat {
		t.Errorf("Log.Format = %q, want %q", cfg.Log.Format, DefaultLogFormat)
	}
	if cfg.Metrics.Namespace != DefaultMetricsNamespace {
		t.Errorf("Metrics.Namespace = %q, want %q", cfg.Metrics.Namespace, DefaultMetricsNamespace)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Error("expected error for missing config")
	}

	dir := writeConfig(t, `{
  "log": {"level": "debug", "format": "json"},
  "reactive": {"alwaysNotify": true, "recover": true, "maxNotifyDepth": 8, "onExceeded": "panic"},
  "metrics": {"enabled": true}
}`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Path() != filepath.Join(dir, ConfigFileName) {
		t.Errorf("Path() = %q", cfg.Path())
	}
	if !cfg.Reactive.AlwaysNotify || !cfg.Reactive.Recover || !cfg.Metrics.Enabled {
		t.Errorf("flags not loaded: %+v", cfg)
	}
	if cfg.Metrics.Namespace != DefaultMetricsNamespace {
		t.Errorf("namespace default not applied: %q", cfg.Metrics.Namespace)
	}
	budget := cfg.NotifyBudget()
	if budget.MaxDepth != 8 || budget.OnExceeded != reactive.BudgetModePanic {
		t.Errorf("NotifyBudget() = %+v", budget)
	}
	if len(cfg.ObserverOptions(cfg.Logger(os.Stderr))) != 3 {
		t.Errorf("ObserverOptions should include always-notify")
	}
	if len(cfg.WatcherOptions(cfg.Logger(os.Stderr))) != 2 {
		t.Errorf("WatcherOptions should include recover")
	}
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(t.TempDir())
	if err != nil {
		t.Fatalf("LoadOrDefault: %v", err)
	}
	if cfg.Path() != "" || cfg.Log.Level != DefaultLogLevel {
		t.Errorf("expected defaults, got %+v", cfg)
	}
	if Exists(t.TempDir()) {
		t.Errorf("Exists reported a config in an empty dir")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"syntax", "{\n  \"log\": {\n    \"level\": \"debug\",\n  }\n}", "valid JSON"},
		{"level", `{"log": {"level": "loud"}}`, "log.level"},
		{"format", `{"log": {"format": "xml"}}`, "log.format"},
		{"depth", `{"reactive": {"maxNotifyDepth": -1}}`, "maxNotifyDepth"},
		{"mode", `{"reactive": {"onExceeded": "explode"}}`, "onExceeded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			var me *errors.MVVMError
			if !stderrors.As(err, &me) || me.Code != "E302" {
				t.Fatalf("err = %v, want E302", err)
			}
			if !strings.Contains(me.Detail+me.Suggestion, tt.want) {
				t.Errorf("error %q does not mention %q", me.Detail+" "+me.Suggestion, tt.want)
			}
		})
	}
}

func TestSyntaxErrorLocation(t *testing.T) {
	_, err := Load(writeConfig(t, "{\n  \"log\": {\n    \"level\": \"debug\",\n  }\n}"))
	var me *errors.MVVMError
	if !stderrors.As(err, &me) || me.Location == nil {
		t.Fatalf("err = %v, want location", err)
	}
	if me.Location.Line != 4 {
		t.Errorf("Location.Line = %d, want 4", me.Location.Line)
	}
}

func TestLoggerFormats(t *testing.T) {
	var b strings.Builder
	cfg := New()
	cfg.Log.Format = "json"
	cfg.Logger(&b).Info("hello", "k", "v")
	if !strings.Contains(b.String(), `"msg":"hello"`) {
		t.Errorf("json logger output = %q", b.String())
	}

	b.Reset()
	cfg.Log.Format = "text"
	cfg.Log.Level = "warn"
	logger := cfg.Logger(&b)
	logger.Info("hidden")
	logger.Warn("shown")
	if strings.Contains(b.String(), "hidden") || !strings.Contains(b.String(), "msg=shown") {
		t.Errorf("text logger output = %q", b.String())
	}
}

func TestDebugConfig(t *testing.T) {
	cfg := New()
	if cfg.DebugConfig() != reactive.DefaultDebugConfig() {
		t.Errorf("debug off should return defaults")
	}
	cfg.Reactive.Debug = true
	if d := cfg.DebugConfig(); !d.LogRegistrations || !d.LogNotifications || !d.LogWatcherUpdates {
		t.Errorf("debug on = %+v", d)
	}
}
