package config

import (
	"tokenbank/core"

	configUtil "github.com/fox-one/pkg/config"
)

// Load load config file, TOKENBANK_ prefixed env vars override it
func Load(configFile string, config *core.Config) error {
	configUtil.AutomaticLoadEnv("TOKENBANK")
	if err := configUtil.LoadYaml(configFile, config); err != nil {
		return err
	}

	defaults(config)
	return nil
}

func defaults(cfg *core.Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "tokenbank"
	}

	if cfg.Bank.Address == "" {
		cfg.Bank.Address = "bank"
	}

	if cfg.Bank.Admin == "" && len(cfg.Admins) > 0 {
		cfg.Bank.Admin = cfg.Admins[0]
	}

	if cfg.Keeper.Batch <= 0 {
		cfg.Keeper.Batch = 100
	}
}
