// Package config loads the tool configuration. Everything has a
// default; a config file is only needed to move the snapshot store or
// silence output permanently.
package config

import (
	"io/ioutil"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

type Config struct {
	// DataDir holds the snapshot store.
	DataDir string `yaml:"data_dir"`
	Quiet   bool   `yaml:"quiet"`
}

const defaultDataDir = "data"

// Load reads the YAML config at path. An empty path returns the
// defaults.
func Load(path string) (*Config, error) {
	conf := &Config{DataDir: defaultDataDir}
	if path == "" {
		return conf, nil
	}
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}
	if err := yaml.Unmarshal(data, conf); err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}
	if conf.DataDir == "" {
		conf.DataDir = defaultDataDir
	}
	return conf, nil
}
