// Package config holds the orchestrator settings and the user-scoped store
// that persists the API credential between runs.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/poly2dev/poly2/internal/gemini"
)

// Environment variables consulted by Load.
const (
	EnvPrefix    = "POLY2"
	EnvAPIKey    = "POLY2_API_KEY"
	EnvBaseURL   = "POLY2_BASE_URL"
	EnvModel     = "POLY2_MODEL"
	EnvConfigDir = "POLY2_CONFIG_DIR"
)

// Setting keys. Env names are EnvPrefix + "_" + upper-cased key, except the
// credential, which keeps its stored name in the settings file.
const (
	keyBaseURL       = "base_url"
	keyModel         = "model"
	keyMaxInputBytes = "max_input_bytes"
	keyTimeout       = "timeout"
	keyForceLocal    = "force_local"
)

// Command line flags Load binds when present.
var flagKeys = map[string]string{
	"api-key": APIKeyName,
	"timeout": keyTimeout,
	"local":   keyForceLocal,
}

// Defaults.
const (
	DefaultMaxInputBytes = 10 << 20 // 10 MiB upload cap
	DefaultTimeout       = 60 * time.Second
)

// Config controls one Orchestrator. It is loaded once at startup and only
// changed in response to user action.
type Config struct {
	APIKey        string        // empty disables the AI path
	BaseURL       string        // generative API base URL
	Model         string        // generative model name
	MaxInputBytes int64         // uploads above this size are rejected
	Timeout       time.Duration // bound on one AI round-trip
	ForceLocal    bool          // skip the AI path even when a key is set
}

// Default returns a Config with every default filled in and no credential.
func Default() Config {
	return Config{
		BaseURL:       gemini.DefaultBaseURL,
		Model:         gemini.DefaultModel,
		MaxInputBytes: DefaultMaxInputBytes,
		Timeout:       DefaultTimeout,
	}
}

// Load builds a Config from, in increasing precedence: the defaults, the
// settings file of store, POLY2_* environment variables and the changed
// flags in flags. store and flags may be nil. The API key is trimmed, so
// a blank key counts as no key.
func Load(store *Store, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault(keyBaseURL, def.BaseURL)
	v.SetDefault(keyModel, def.Model)
	v.SetDefault(keyMaxInputBytes, def.MaxInputBytes)
	v.SetDefault(keyTimeout, def.Timeout)
	v.SetDefault(keyForceLocal, false)

	if store != nil {
		v.SetConfigFile(store.Path())
		v.SetConfigType("json")
		if err := readIfPresent(v, store.Path()); err != nil {
			return def, err
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	if err := v.BindEnv(APIKeyName, EnvAPIKey); err != nil {
		return def, err
	}
	for _, key := range []string{keyBaseURL, keyModel, keyMaxInputBytes, keyTimeout} {
		if err := v.BindEnv(key); err != nil {
			return def, err
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return def, fmt.Errorf("binding --%s: %w", name, err)
			}
		}
	}

	return Config{
		APIKey:        strings.TrimSpace(v.GetString(APIKeyName)),
		BaseURL:       v.GetString(keyBaseURL),
		Model:         v.GetString(keyModel),
		MaxInputBytes: v.GetInt64(keyMaxInputBytes),
		Timeout:       v.GetDuration(keyTimeout),
		ForceLocal:    v.GetBool(keyForceLocal),
	}, nil
}

// MaskKey hides all but the last four characters of a credential.
func MaskKey(key string) string {
	if key == "" {
		return ""
	}
	const visible = 4
	r := []rune(key)
	if len(r) <= visible {
		return "••••"
	}
	masked := make([]rune, 0, len(r))
	for range r[:len(r)-visible] {
		masked = append(masked, '•')
	}
	return string(append(masked, r[len(r)-visible:]...))
}
