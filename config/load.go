package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/knadh/koanf/parsers/hcl"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment overrides. A double underscore separates
// nesting levels: MMWRF_ADCBUF__CHIRP_THRESHOLD sets adcbuf.chirp_threshold.
const EnvPrefix = "MMWRF_"

// SearchPaths are tried in order when no config file is given.
var SearchPaths = []string{"/etc/mmwrf/config.hcl", "~/.config/mmwrf/config.hcl", "./config.hcl"}

// FindPath returns the first existing path, or "" when none exists.
func FindPath(paths ...string) string {
	for _, path := range paths {
		if rest, ok := strings.CutPrefix(path, "~/"); ok {
			home, err := os.UserHomeDir()
			if err != nil {
				continue
			}
			path = filepath.Join(home, rest)
		}
		if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
			log.Infof("Found config file: %s", path)
			return path
		}
	}
	log.Info("Config file not found!")
	return ""
}

func envKey(k, v string) (string, any) {
	key := strings.ToLower(strings.TrimPrefix(k, EnvPrefix))
	key = strings.ReplaceAll(key, "__", ".")
	log.Debugf("Found config env var: %s=%v", key, v)
	return key, v
}

// Load reads the HCL file at path, applies environment overrides on top and
// validates the result. An empty path loads the environment alone.
func Load(path string) (*File, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), hcl.Parser(true)); err != nil {
			return nil, fmt.Errorf("config: could not read %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider(".", env.Opt{Prefix: EnvPrefix, TransformFunc: envKey}), nil); err != nil {
		return nil, fmt.Errorf("config: could not read environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
