package main

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// probeConfig holds gdbmi-probe's configuration, layered the canonical
// viper way: flags override environment variables, which override a
// config file, which overrides these defaults. No teacher file in the
// retrieval pack exercised viper directly, so this layering follows
// viper's own documented idiom rather than a pack call site.
type probeConfig struct {
	GDBPath  string `mapstructure:"gdb_path"`
	Verbose  bool   `mapstructure:"verbose"`
	LogFile  string `mapstructure:"log_file"`
}

func defaultProbeConfig() probeConfig {
	return probeConfig{
		GDBPath: "gdb",
		Verbose: false,
	}
}

// loadConfig reads gdbmi-probe.yaml from the working directory and the
// user config directory if present, then layers GDBMI_PROBE_* environment
// variables on top.
func loadConfig() (probeConfig, error) {
	cfg := defaultProbeConfig()

	v := viper.New()
	v.SetConfigName("gdbmi-probe")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/gdbmi-probe")

	v.SetEnvPrefix("GDBMI_PROBE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("gdb_path", cfg.GDBPath)
	v.SetDefault("verbose", cfg.Verbose)

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return cfg, errors.Wrap(err, "read gdbmi-probe config")
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, errors.Wrap(err, "decode gdbmi-probe config")
	}
	return cfg, nil
}
