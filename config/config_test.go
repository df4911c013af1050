package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Default(Mainnet)
	if cfg.Network != Mainnet {
		t.Errorf("network = %q", cfg.Network)
	}
	if cfg.StaticServerList() == "" {
		t.Error("mainnet should bundle a server list")
	}
	if cfg.Wallet.SendTimeout != 30*time.Second {
		t.Errorf("send timeout = %v", cfg.Wallet.SendTimeout)
	}

	if Default(Devnet).StaticServerList() != "" {
		t.Error("devnet must not bundle a server list")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pactwallet.conf")
	content := `# comment
network = testnet
directory.url = "https://servers.example.com/list"
wallet.sendtimeout = 45s
log.level = debug
log.json = true
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write conf: %v", err)
	}

	values, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}

	cfg := Default(Mainnet)
	if err := ApplyFileConfig(cfg, values); err != nil {
		t.Fatalf("ApplyFileConfig() error: %v", err)
	}

	if cfg.Network != Testnet {
		t.Errorf("network = %q, want testnet", cfg.Network)
	}
	if cfg.Directory.ServerListURL != "https://servers.example.com/list" {
		t.Errorf("directory.url = %q (quotes should be stripped)", cfg.Directory.ServerListURL)
	}
	if cfg.Wallet.SendTimeout != 45*time.Second {
		t.Errorf("send timeout = %v", cfg.Wallet.SendTimeout)
	}
	if cfg.Log.Level != "debug" || !cfg.Log.JSON {
		t.Errorf("log = %+v", cfg.Log)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	values, err := LoadFile(filepath.Join(t.TempDir(), "absent.conf"))
	if err != nil {
		t.Fatalf("LoadFile() on a missing file should succeed: %v", err)
	}
	if len(values) != 0 {
		t.Errorf("values = %v, want empty", values)
	}
}

func TestApplyFileConfig_UnknownKey(t *testing.T) {
	cfg := Default(Mainnet)
	err := ApplyFileConfig(cfg, map[string]string{"does.not.exist": "x"})
	if err == nil {
		t.Error("unknown key should be rejected")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"bad network", func(c *Config) { c.Network = "localnet" }, true},
		{"empty datadir", func(c *Config) { c.DataDir = "" }, true},
		{"negative timeout", func(c *Config) { c.Wallet.SendTimeout = -time.Second }, true},
		{"bad url scheme", func(c *Config) { c.Directory.ServerListURL = "ftp://x/list" }, true},
		{"url missing host", func(c *Config) { c.Directory.ServerListURL = "https://" }, true},
		{"good url", func(c *Config) { c.Directory.ServerListURL = "https://servers.example.com/list" }, false},
		{"bad log level", func(c *Config) { c.Log.Level = "verbose" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default(Mainnet)
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.wantErr && err == nil {
				t.Error("Validate() should fail")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() error: %v", err)
			}
		})
	}
}
