// Package config handles wallet configuration: which network to talk
// to, where wallet files and the module cache live, and logging.
package config

import (
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// NetworkType identifies mainnet, testnet, or a local devnet.
type NetworkType string

const (
	Mainnet NetworkType = "mainnet"
	Testnet NetworkType = "testnet"
	Devnet  NetworkType = "devnet"
)

// Config holds runtime wallet configuration.
type Config struct {
	// Core
	Network NetworkType `conf:"network"`
	DataDir string      `conf:"datadir"`

	// Backend directory
	Directory DirectoryConfig

	// Wallet storage
	Wallet WalletConfig

	// Logging
	Log LogConfig
}

// DirectoryConfig holds backend-directory settings.
type DirectoryConfig struct {
	// ServerListURL is the live server-list endpoint ("" = static only).
	ServerListURL string `conf:"directory.url"`
	// ServerListFile is a local static server list ("" = bundled/devnet).
	ServerListFile string `conf:"directory.file"`
}

// WalletConfig holds wallet storage settings.
type WalletConfig struct {
	// SendTimeout bounds the /send call. /listen is never bounded.
	SendTimeout time.Duration `conf:"wallet.sendtimeout"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `conf:"log.level"`
	File  string `conf:"log.file"`
	JSON  bool   `conf:"log.json"`
}

// DefaultDataDir returns the platform-specific default data directory.
//
//	Linux:   ~/.pactwallet
//	macOS:   ~/Library/Application Support/Pactwallet
//	Windows: %APPDATA%\Pactwallet
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pactwallet"
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Pactwallet")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData != "" {
			return filepath.Join(appData, "Pactwallet")
		}
		return filepath.Join(home, "AppData", "Roaming", "Pactwallet")
	default:
		return filepath.Join(home, ".pactwallet")
	}
}

// NetworkDataDir returns the network-specific data directory.
func (c *Config) NetworkDataDir() string {
	return filepath.Join(c.DataDir, string(c.Network))
}

// KeystoreDir returns the wallet keystore directory.
func (c *Config) KeystoreDir() string {
	return filepath.Join(c.NetworkDataDir(), "keystore")
}

// CacheDir returns the module-cache database directory.
func (c *Config) CacheDir() string {
	return filepath.Join(c.NetworkDataDir(), "cache")
}

// ConfigFile returns the config file path.
func (c *Config) ConfigFile() string {
	return filepath.Join(c.DataDir, "pactwallet.conf")
}
