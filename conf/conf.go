package conf

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

var Cfg *Configuration

// Configuration is the library-level configuration. The validation core has
// no CLI and touches no files on its own; a host peer may hand it a config
// file through InitConfig, otherwise the defaults apply.
type Configuration struct {
	Log struct {
		Level  string   `mapstructure:"level"`
		Module []string `mapstructure:"module"`
	} `mapstructure:"log"`
}

const defaultLogLevel = "info"

func init() {
	Cfg = defaultConfig()
}

func defaultConfig() *Configuration {
	cfg := &Configuration{}
	cfg.Log.Level = defaultLogLevel
	cfg.Log.Module = []string{"ltx", "lblock", "mempool"}
	return cfg
}

// InitConfig loads a yaml configuration file and replaces the defaults.
func InitConfig(file string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(file)
	v.SetConfigType("yaml")
	v.SetDefault("log.level", defaultLogLevel)
	v.SetDefault("log.module", defaultConfig().Log.Module)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "read config file %s", file)
	}

	cfg := &Configuration{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)

	Cfg = cfg
	return cfg, nil
}
