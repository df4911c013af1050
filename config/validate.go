package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks the config for obvious operator mistakes.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	switch cfg.Network {
	case Mainnet, Testnet, Devnet:
	default:
		return fmt.Errorf("network must be %q, %q, or %q", Mainnet, Testnet, Devnet)
	}
	if cfg.DataDir == "" {
		return fmt.Errorf("datadir must not be empty")
	}
	if cfg.Wallet.SendTimeout < 0 {
		return fmt.Errorf("wallet.sendtimeout must not be negative")
	}
	if cfg.Directory.ServerListURL != "" {
		if err := validateHTTPURL(cfg.Directory.ServerListURL, "directory.url"); err != nil {
			return err
		}
	}
	switch cfg.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn, or error")
	}
	return nil
}

func validateHTTPURL(raw, field string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", field, err)
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return fmt.Errorf("%s must use http or https", field)
	}
	if u.Host == "" {
		return fmt.Errorf("%s is missing a host", field)
	}
	return nil
}
