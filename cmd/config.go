// cmd/config.go
package cmd

import (
	"bytes"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/edgeplace/edgeplace/sim"
)

// loadConfig reads path as strict YAML into a sim.Config seeded with
// sim.DefaultConfig()'s values, so a config file only needs to override the
// options it cares about. A missing path falls back to the defaults
// outright (§6 "Configuration recognized options").
func loadConfig(path string) sim.Config {
	cfg := sim.DefaultConfig()
	if path == "" {
		return cfg
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logrus.Debugf("config file %s not found, using defaults", path)
			return cfg
		}
		logrus.Fatalf("reading config %s: %v", path, err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		logrus.Fatalf("parsing config %s: %v", path, err)
	}
	return cfg
}

func applyLogLevel(level string) {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Fatalf("invalid log level: %s", level)
	}
	logrus.SetLevel(parsed)
}
