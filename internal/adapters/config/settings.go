package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.trai.ch/morph/internal/core/convention"
	"go.trai.ch/morph/internal/core/domain"
	"go.trai.ch/morph/internal/engine/memo"
	"go.trai.ch/zerr"
)

// Log formats accepted by the log_format setting.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

const (
	keyCacheDir     = "cache_dir"
	keyParallelism  = "parallelism"
	keyMemoCapacity = "memo_capacity"
	keyLogFormat    = "log_format"
	keyMetricsAddr  = "metrics_addr"
)

// Settings are the resolved runtime settings.
type Settings struct {
	CacheDir     string
	Parallelism  int
	MemoCapacity int
	LogFormat    string
	MetricsAddr  string
}

// Overrides holds explicitly configured settings. Unset options fall back to conventions.
type Overrides struct {
	CacheDir     convention.Option[string]
	Parallelism  convention.Option[int]
	MemoCapacity convention.Option[int]
	LogFormat    convention.Option[string]
	MetricsAddr  convention.Option[string]
}

type settingsFile struct {
	CacheDir     string `koanf:"cache_dir"`
	Parallelism  int    `koanf:"parallelism"`
	MemoCapacity int    `koanf:"memo_capacity"`
	LogFormat    string `koanf:"log_format"`
	MetricsAddr  string `koanf:"metrics_addr"`
}

// LoadSettings merges <root>/.morph/settings.yaml (if present) with MORPH_* environment
// variables and resolves every unset value by convention.
func LoadSettings(root string) (*Settings, error) {
	overrides, err := ReadOverrides(root)
	if err != nil {
		return nil, err
	}
	return Resolve(root, overrides)
}

// ReadOverrides reads the explicitly configured settings below root.
func ReadOverrides(root string) (Overrides, error) {
	k := koanf.New(".")

	path := filepath.Join(root, domain.DefaultSettingsPath())
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Overrides{}, zerr.With(zerr.Wrap(err, domain.ErrSettingsLoadFailed.Error()), "path", path)
	}

	envProvider := env.Provider(domain.EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, domain.EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return Overrides{}, zerr.Wrap(err, domain.ErrSettingsLoadFailed.Error())
	}

	var raw settingsFile
	if err := k.Unmarshal("", &raw); err != nil {
		return Overrides{}, zerr.Wrap(err, domain.ErrSettingsLoadFailed.Error())
	}

	var o Overrides
	if k.Exists(keyCacheDir) {
		o.CacheDir = convention.Some(raw.CacheDir)
	}
	if k.Exists(keyParallelism) {
		o.Parallelism = convention.Some(raw.Parallelism)
	}
	if k.Exists(keyMemoCapacity) {
		o.MemoCapacity = convention.Some(raw.MemoCapacity)
	}
	if k.Exists(keyLogFormat) {
		o.LogFormat = convention.Some(raw.LogFormat)
	}
	if k.Exists(keyMetricsAddr) {
		o.MetricsAddr = convention.Some(raw.MetricsAddr)
	}
	return o, nil
}

// Resolve applies conventions to every unset override.
func Resolve(root string, o Overrides) (*Settings, error) {
	m := convention.NewMapping()
	convention.Declare(m, keyCacheDir, &o.CacheDir)
	convention.Declare(m, keyParallelism, &o.Parallelism)
	convention.Declare(m, keyMemoCapacity, &o.MemoCapacity)
	convention.Declare(m, keyLogFormat, &o.LogFormat)
	convention.Declare(m, keyMetricsAddr, &o.MetricsAddr)

	conventions := map[string]convention.Provider{
		keyCacheDir:     func() (any, error) { return filepath.Join(root, domain.DefaultCacheDir()), nil },
		keyParallelism:  func() (any, error) { return runtime.NumCPU(), nil },
		keyMemoCapacity: func() (any, error) { return memo.DefaultCapacity, nil },
		keyLogFormat:    func() (any, error) { return LogFormatText, nil },
	}
	for name, provider := range conventions {
		if err := m.Map(name, provider); err != nil {
			return nil, err
		}
	}

	var s Settings
	var err error
	if s.CacheDir, err = convention.Lookup[string](m, keyCacheDir); err != nil {
		return nil, err
	}
	if s.Parallelism, err = convention.Lookup[int](m, keyParallelism); err != nil {
		return nil, err
	}
	if s.MemoCapacity, err = convention.Lookup[int](m, keyMemoCapacity); err != nil {
		return nil, err
	}
	if s.LogFormat, err = convention.Lookup[string](m, keyLogFormat); err != nil {
		return nil, err
	}
	if s.MetricsAddr, err = convention.Lookup[string](m, keyMetricsAddr); err != nil {
		return nil, err
	}

	if !filepath.IsAbs(s.CacheDir) {
		s.CacheDir = filepath.Join(root, s.CacheDir)
	}
	if s.Parallelism < 1 {
		s.Parallelism = 1
	}
	if s.LogFormat != LogFormatJSON {
		s.LogFormat = LogFormatText
	}
	return &s, nil
}

// workingDir returns the process working directory.
func workingDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrSettingsLoadFailed.Error())
	}
	return cwd, nil
}
