package config

import "time"

// Bundled server lists per network. Overridden by directory.file or a
// successful directory.url fetch.
const (
	mainnetServers = "us-e1: https://us-e1.chainweb.com/chainweb/0.0/mainnet01/chain/0/pact\n" +
		"us-w1: https://us-w1.chainweb.com/chainweb/0.0/mainnet01/chain/0/pact\n" +
		"eu-n1: https://eu-n1.chainweb.com/chainweb/0.0/mainnet01/chain/0/pact"

	testnetServers = "testnet: https://api.testnet.chainweb.com/chainweb/0.0/testnet04/chain/0/pact"
)

// DefaultMainnet returns the default configuration for mainnet.
func DefaultMainnet() *Config {
	return &Config{
		Network: Mainnet,
		DataDir: DefaultDataDir(),
		Wallet: WalletConfig{
			SendTimeout: 30 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
			JSON:  false,
		},
	}
}

// DefaultTestnet returns the default configuration for testnet.
func DefaultTestnet() *Config {
	cfg := DefaultMainnet()
	cfg.Network = Testnet
	return cfg
}

// DefaultDevnet returns the default configuration for a local devnet.
// No server list is bundled; the directory synthesizes localhost
// backends.
func DefaultDevnet() *Config {
	cfg := DefaultMainnet()
	cfg.Network = Devnet
	return cfg
}

// Default returns the default configuration for the given network.
func Default(network NetworkType) *Config {
	switch network {
	case Testnet:
		return DefaultTestnet()
	case Devnet:
		return DefaultDevnet()
	default:
		return DefaultMainnet()
	}
}

// StaticServerList returns the bundled server list for the configured
// network. Empty for devnet.
func (c *Config) StaticServerList() string {
	switch c.Network {
	case Mainnet:
		return mainnetServers
	case Testnet:
		return testnetServers
	default:
		return ""
	}
}
