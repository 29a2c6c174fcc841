// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.
package main

import (
	"os"

	"github.com/pkg/errors"
	"gitlab.com/jaxnet/ctwitness/corelog"
	"gitlab.com/jaxnet/ctwitness/types/consensus"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Profile  string         `yaml:"profile"`
	LogLevel string         `yaml:"log_level"`
	Log      corelog.Config `yaml:"log"`
}

func defaultConfig() Config {
	return Config{
		Profile:  consensus.ProofOfWorkParams.Name,
		LogLevel: "info",
		Log:      corelog.Config{}.Default(),
	}
}

func (cfg *Config) Params() (*consensus.Params, error) {
	return consensus.ParamsByName(cfg.Profile)
}

// parseConfig reads the configuration from path on top of the defaults.  An
// empty path yields the defaults.
func parseConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	rawFile, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "Unable to read configuration")
	}

	if err = yaml.Unmarshal(rawFile, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "Unable to decode configuration")
	}

	return cfg, nil
}
