package config

type Config struct {
	Environment string          `koanf:"environment"`
	ChainsDir   string          `koanf:"chains_dir"`
	ChainNode   ChainNodeConfig `koanf:"chain_node"`
	Gas         GasConfig       `koanf:"gas"`
}

type ChainNodeConfig struct {
	Url            string `koanf:"url"`
	AccountName    string `koanf:"account_name"`
	AddressPrefix  string `koanf:"address_prefix"`
	KeyringBackend string `koanf:"keyring_backend"`
	KeyringDir     string `koanf:"keyring_dir"`
}

type GasConfig struct {
	Prices     string  `koanf:"prices"`
	Adjustment float64 `koanf:"adjustment"`
}

// DefaultConfig targets a local devnet node. Everything is overridable via
// the yaml config file and AXELAR_DEPLOY_* env vars.
func DefaultConfig() Config {
	return Config{
		Environment: "devnet-amplifier",
		ChainsDir:   "axelar-chains-config/info",
		ChainNode: ChainNodeConfig{
			Url:            "http://localhost:26657",
			AccountName:    "deployer",
			AddressPrefix:  "axelar",
			KeyringBackend: "test",
			KeyringDir:     "~/.axelar",
		},
		Gas: GasConfig{
			Prices:     "0.007uaxl",
			Adjustment: 1.4,
		},
	}
}
