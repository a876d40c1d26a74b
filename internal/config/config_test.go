package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"github.com/poly2dev/poly2/internal/gemini"
)

// clearEnv isolates a test from POLY2_* variables set by the caller.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{EnvAPIKey, EnvBaseURL, EnvModel, "POLY2_TIMEOUT", "POLY2_MAX_INPUT_BYTES"} {
		t.Setenv(name, "")
	}
}

func TestStoreRoundTrip(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "nested"))

	key, err := s.APIKey()
	if err != nil || key != "" {
		t.Fatalf("APIKey on empty store = %q, %v", key, err)
	}

	if err := s.SetAPIKey("secret-123"); err != nil {
		t.Fatalf("SetAPIKey: %v", err)
	}
	if err := s.Set("other", "value"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// A fresh store over the same directory sees the persisted value.
	reopened := NewStore(filepath.Dir(s.Path()))
	if key, err := reopened.APIKey(); err != nil || key != "secret-123" {
		t.Errorf("APIKey after reopen = %q, %v", key, err)
	}

	info, err := os.Stat(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("settings file mode = %o, want 600", perm)
	}

	if err := s.SetAPIKey(""); err != nil {
		t.Fatalf("clearing key: %v", err)
	}
	if _, ok, _ := s.Get(APIKeyName); ok {
		t.Error("key still present after clear")
	}
	if v, ok, _ := s.Get("other"); !ok || v != "value" {
		t.Errorf("unrelated key lost: %q %v", v, ok)
	}
	if err := s.Delete("missing"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestStoreCorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, settingsFile), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewStore(dir).APIKey(); err == nil {
		t.Error("APIKey on corrupt settings succeeded")
	}
	if _, err := Load(NewStore(dir), nil); err == nil {
		t.Error("Load on corrupt settings succeeded")
	}
}

func TestStoreEmptyFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, settingsFile), nil, 0o600); err != nil {
		t.Fatal(err)
	}
	if key, err := NewStore(dir).APIKey(); err != nil || key != "" {
		t.Errorf("APIKey on empty file = %q, %v", key, err)
	}
}

func TestDefaultStoreHonoursEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)
	s, err := DefaultStore()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, settingsFile); s.Path() != want {
		t.Errorf("Path = %q, want %q", s.Path(), want)
	}
}

func TestLoadPrecedence(t *testing.T) {
	clearEnv(t)

	s := NewStore(t.TempDir())
	if err := s.SetAPIKey("stored"); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(s, nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.APIKey != "stored" || cfg.BaseURL != gemini.DefaultBaseURL || cfg.MaxInputBytes != DefaultMaxInputBytes || cfg.Timeout != DefaultTimeout {
		t.Errorf("unexpected config: %+v", cfg)
	}

	t.Setenv(EnvAPIKey, "from-env")
	t.Setenv(EnvModel, "other-model")
	t.Setenv("POLY2_TIMEOUT", "5s")
	cfg, err = Load(s, nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.APIKey != "from-env" || cfg.Model != "other-model" || cfg.Timeout != 5*time.Second {
		t.Errorf("environment did not win: %+v", cfg)
	}
}

func TestLoadFlags(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAPIKey, "from-env")

	newFlags := func() *pflag.FlagSet {
		fs := pflag.NewFlagSet("transform", pflag.ContinueOnError)
		fs.String("api-key", "", "")
		fs.Duration("timeout", DefaultTimeout, "")
		fs.Bool("local", false, "")
		return fs
	}

	// Unchanged flags do not override the environment.
	cfg, err := Load(nil, newFlags())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.APIKey != "from-env" || cfg.Timeout != DefaultTimeout || cfg.ForceLocal {
		t.Errorf("unchanged flags leaked into config: %+v", cfg)
	}

	fs := newFlags()
	if err := fs.Parse([]string{"--api-key", "from-flag", "--timeout", "2s", "--local"}); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load(nil, fs)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.APIKey != "from-flag" || cfg.Timeout != 2*time.Second || !cfg.ForceLocal {
		t.Errorf("flags did not win: %+v", cfg)
	}
}

func TestLoadBlankKeyDisablesAI(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAPIKey, "   ")

	cfg, err := Load(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.APIKey != "" {
		t.Errorf("APIKey = %q, want blank key trimmed to empty", cfg.APIKey)
	}
}

func TestMaskKey(t *testing.T) {
	tests := map[string]string{
		"":           "",
		"abc":        "••••",
		"abcdefgh12": "••••••gh12",
	}
	for in, want := range tests {
		if got := MaskKey(in); got != want {
			t.Errorf("MaskKey(%q) = %q, want %q", in, got, want)
		}
	}
}
