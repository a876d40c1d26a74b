package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// APIKeyName is the fixed key the credential is stored under.
const APIKeyName = "poly2_api_key"

const settingsFile = "settings.json"

// Store is a small JSON key/value file in the user's config directory.
type Store struct {
	path string
}

// NewStore returns a store backed by dir/settings.json. The directory is
// created on first write.
func NewStore(dir string) *Store {
	return &Store{path: filepath.Join(dir, settingsFile)}
}

// DefaultStore returns the store in $POLY2_CONFIG_DIR, or in
// os.UserConfigDir()/poly2 when that is unset.
func DefaultStore() (*Store, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return NewStore(dir), nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("locating config directory: %w", err)
	}
	return NewStore(filepath.Join(base, "poly2")), nil
}

// Path returns the settings file location.
func (s *Store) Path() string {
	return s.path
}

// Get returns the value stored under key and whether it was present.
func (s *Store) Get(key string) (string, bool, error) {
	v, err := s.load()
	if err != nil {
		return "", false, err
	}
	if !v.IsSet(key) {
		return "", false, nil
	}
	return v.GetString(key), true, nil
}

// Set stores value under key.
func (s *Store) Set(key, value string) error {
	v, err := s.load()
	if err != nil {
		return err
	}
	v.Set(key, value)
	return s.save(v)
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	v, err := s.load()
	if err != nil {
		return err
	}
	if !v.IsSet(key) {
		return nil
	}

	// viper cannot unset a key, so rewrite the file without it.
	settings := v.AllSettings()
	delete(settings, key)
	nv := newStoreViper(s.path)
	for k, val := range settings {
		nv.Set(k, val)
	}
	return s.save(nv)
}

// APIKey returns the stored credential, or "" if none is set.
func (s *Store) APIKey() (string, error) {
	v, _, err := s.Get(APIKeyName)
	return v, err
}

// SetAPIKey stores the credential; an empty key removes it.
func (s *Store) SetAPIKey(key string) error {
	if key == "" {
		return s.Delete(APIKeyName)
	}
	return s.Set(APIKeyName, key)
}

func newStoreViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetConfigPermissions(0o600)
	return v
}

func (s *Store) load() (*viper.Viper, error) {
	v := newStoreViper(s.path)
	if err := readIfPresent(v, s.path); err != nil {
		return nil, err
	}
	return v, nil
}

// readIfPresent reads the settings file into v. A missing or empty file
// leaves v empty.
func readIfPresent(v *viper.Viper, path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading settings: %w", err)
	}
	if info.Size() == 0 {
		return nil
	}
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("parsing settings %s: %w", path, err)
	}
	return nil
}

func (s *Store) save(v *viper.Viper) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}
