package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
)

// EnvPrefix is the prefix of environment variables overriding the config,
// e.g. FETCHMOCK_DEFAULT_HOST or FETCHMOCK_STORAGE__KIND.
const EnvPrefix = "FETCHMOCK_"

var defaultConfig = Config{
	DefaultHost:       "",
	HandleQueryParams: false,
	Debug:             false,
	Storage: Storage{
		Kind:          StorageNone,
		SkipJSONPaths: []string{},
		SamplePercent: 100,
		Elasticsearch: Elasticsearch{
			Addresses: []string{"http://127.0.0.1:9200"},
			Index:     "fetchmock",
		},
	},
}

var (
	mu      sync.RWMutex
	current = defaultConfig
)

// Config is the process-wide config of the network mocking.
type Config struct {
	// DefaultHost is prepended to the path of descriptors declaring no host.
	DefaultHost string `koanf:"default_host"`
	// HandleQueryParams makes query strings insignificant for matching unless a
	// descriptor sets CatchParams.
	HandleQueryParams bool `koanf:"handle_query_params"`
	// Debug enables warnings about unmatched requests and exhausted mocks.
	Debug   bool    `koanf:"debug"`
	Storage Storage `koanf:"storage"`
}

// Default returns the built-in config.
func Default() Config {
	c := defaultConfig
	c.Storage.SkipJSONPaths = append([]string{}, defaultConfig.Storage.SkipJSONPaths...)
	c.Storage.Elasticsearch.Addresses = append([]string{}, defaultConfig.Storage.Elasticsearch.Addresses...)
	return c
}

// Current returns the process-wide config.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Set replaces the process-wide config.
func Set(c Config) {
	mu.Lock()
	current = c
	mu.Unlock()
}

// Reset restores the built-in config.
func Reset() {
	Set(Default())
}

// Load reads the defaults, then the YAML file located in path (skipped when path
// is empty), then the FETCHMOCK_ environment variables, and installs the result
// as the process-wide config.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("error in loading the default config: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error in loading the config file: %w", err)
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("error in loading the environment variables: %w", err)
	}

	var c Config
	if err := k.Unmarshal("", &c); err != nil {
		return nil, fmt.Errorf("error in unmarshalling the config: %w", err)
	}

	Set(c)
	return &c, nil
}
