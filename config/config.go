package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "DUCKSCOPE_"

// Defaults feeds the flag default values. Flags parsed later win over
// everything loaded here.
type Defaults struct {
	DB    string `koanf:"db"`
	Table string `koanf:"table"`
	Limit int    `koanf:"limit"`
}

// Load resolves defaults, lowest priority first: built-ins, then
// duckscope.yaml in the working directory, then DUCKSCOPE_* variables.
func Load() (Defaults, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"db":    ":memory:",
		"table": "data",
		"limit": 5,
	}, "."), nil); err != nil {
		return Defaults{}, fmt.Errorf("load built-in defaults failed: %w", err)
	}

	if name := findConfigFile(); name != "" {
		if err := k.Load(file.Provider(name), yaml.Parser()); err != nil {
			return Defaults{}, fmt.Errorf("read config file %s failed: %w", name, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return Defaults{}, fmt.Errorf("load env vars failed: %w", err)
	}

	var d Defaults
	if err := k.Unmarshal("", &d); err != nil {
		return Defaults{}, fmt.Errorf("decode config failed: %w", err)
	}
	return d, nil
}

func findConfigFile() string {
	for _, name := range []string{"duckscope.yaml", "duckscope.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}
