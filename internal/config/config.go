package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// DefaultTimetable is the scaffold written on first run.
//
//go:embed default_config.toml
var DefaultTimetable []byte

const (
	// EnvPrefix namespaces every environment variable, e.g. TIMTAM_DIR.
	EnvPrefix = "TIMTAM"

	defaultLogLevel = "info"
)

// Settings are the runtime knobs that do not live in the timetable file.
type Settings struct {
	// Path is the timetable file. TIMTAM_DIR holds the full file path
	// (the name is historical), otherwise ~/.config/timtambler/config.toml.
	Path string

	// Limit truncates each rendered list to its first N lines; 0 shows all.
	Limit int

	// LogLevel is one of "debug", "info", "error".
	LogLevel string

	// Watch is a cron spec; when set the schedule is re-rendered on it
	// instead of once.
	Watch string
}

// LoadSettings resolves Settings from a .env file in the working directory
// (if any) and TIMTAM_* environment variables.
func LoadSettings() (*Settings, error) {
	// .env is optional.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetDefault("limit", 0)
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("watch", "")

	path := v.GetString("dir")
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	limit, err := cast.ToIntE(v.Get("limit"))
	if err != nil {
		return nil, fmt.Errorf("invalid %s_LIMIT %q: %w", EnvPrefix, v.GetString("limit"), err)
	}

	s := &Settings{
		Path:     path,
		Limit:    limit,
		LogLevel: v.GetString("log_level"),
		Watch:    v.GetString("watch"),
	}
	s.Normalize()
	return s, nil
}

// Normalize fills in zero values with defaults.
func (s *Settings) Normalize() {
	if s.Limit < 0 {
		s.Limit = 0
	}
	if s.LogLevel == "" {
		s.LogLevel = defaultLogLevel
	}
}

// DefaultPath is ~/.config/timtambler/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.New("no home directory found; set TIMTAM_DIR")
	}
	return filepath.Join(home, ".config", "timtambler", "config.toml"), nil
}

// EnsureTimetable makes sure a timetable exists at path.
//
// Behavior:
//   - If the file exists, nothing is written and created is false.
//   - If it does not exist:
//   - create parent directory if needed (0700)
//   - write DefaultTimetable with 0600 perms
//   - return created = true
func EnsureTimetable(path string) (created bool, err error) {
	if path == "" {
		return false, errors.New("timetable path is empty")
	}
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}
	if err := WriteFileAtomic(path, DefaultTimetable); err != nil {
		return false, err
	}
	return true, nil
}

// WriteFileAtomic replaces path with data, creating missing parent
// directories with mode 0700. Readers see either the old file or the
// complete new one, and the result is always mode 0600.
func WriteFileAtomic(path string, data []byte) error {
	if path == "" {
		return errors.New("path is empty")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	// The temp file must share path's directory for the rename to be atomic.
	tmp, err := os.CreateTemp(dir, ".timtambler-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	// No-op once the rename has happened.
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
