package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

func Validate(cfg Config) error {
	var errs []string

	if strings.TrimSpace(cfg.Store.Path) == "" {
		errs = append(errs, "store.path is required")
	}
	if cfg.Fetch.ReqPerSec < 0 {
		errs = append(errs, "fetch.req_per_sec must be >= 0")
	}
	if cfg.Fetch.Burst < 0 {
		errs = append(errs, "fetch.burst must be >= 0")
	}
	if cfg.Fetch.TimeoutSeconds < 0 {
		errs = append(errs, "fetch.timeout_seconds must be >= 0")
	}

	for i, b := range cfg.Sources {
		if b.Name == "" {
			errs = append(errs, fmt.Sprintf("sources[%d].name is required", i))
		}
		if b.Enabled && b.URL == "" {
			errs = append(errs, fmt.Sprintf("sources[%d].url is required when enabled", i))
		}
		if b.Enabled && b.Selectors.Item == "" {
			errs = append(errs, fmt.Sprintf("sources[%d].selectors.item is required when enabled", i))
		}
	}

	if cfg.Notify.Enabled && strings.TrimSpace(cfg.Notify.KeyringAccount) == "" {
		errs = append(errs, "notify.keyring_account is required when notify is enabled")
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n- " + strings.Join(errs, "\n- "))
	}
	return nil
}

func SaveAtomic(path string, cfg Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	b, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	bak := path + ".bak"

	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}

	_ = os.Remove(bak)
	_ = os.Rename(path, bak)

	return os.Rename(tmp, path)
}
