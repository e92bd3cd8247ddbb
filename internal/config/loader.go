package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults applied by [ApplyDefaults] when the corresponding field is unset.
const (
	DefaultListenAddr    = ":8080"
	DefaultLanguage      = "hi"
	DefaultCloudModel    = "llama3-8b-8192"
	DefaultMaxTokens     = 200
	DefaultTemperature   = 0.7
	DefaultModelFilename = "gemma-2b-it-cpu-int4.bin"
)

// Load reads the YAML configuration file at path and returns a validated [Config].
// It is a convenience wrapper around [LoadFromReader].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r, applies defaults, and
// validates the result. Useful in tests where configs are constructed from
// string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	ApplyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyDefaults fills unset fields of cfg with their defaults.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = DefaultListenAddr
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = LogInfo
	}
	if cfg.Speech.Language == "" {
		cfg.Speech.Language = DefaultLanguage
	}
	if cfg.Cloud.Provider == "" {
		cfg.Cloud.Provider = CloudGroq
	}
	if cfg.Cloud.Model == "" {
		cfg.Cloud.Model = DefaultCloudModel
	}
	if cfg.Cloud.MaxTokens == 0 {
		cfg.Cloud.MaxTokens = DefaultMaxTokens
	}
	if cfg.Cloud.Temperature == 0 {
		cfg.Cloud.Temperature = DefaultTemperature
	}
	if cfg.LocalModel.Filename == "" {
		cfg.LocalModel.Filename = DefaultModelFilename
	}
	if cfg.Synth.Language == "" {
		cfg.Synth.Language = cfg.Speech.Language
	}
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Server.LogLevel != "" && !cfg.Server.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("server.log_level %q is invalid; valid values: debug, info, warn, error", cfg.Server.LogLevel))
	}

	if cfg.Cloud.Provider != "" && !cfg.Cloud.Provider.IsValid() {
		errs = append(errs, fmt.Errorf("cloud.provider %q is invalid; valid values: groq, openai", cfg.Cloud.Provider))
	}
	if cfg.Cloud.APIKey == "" && cfg.LocalModel.URL == "" {
		slog.Warn("neither cloud.api_key nor local_model.url is configured; open questions will only get the fallback reply")
	}
	if cfg.Cloud.Temperature < 0 || cfg.Cloud.Temperature > 2 {
		errs = append(errs, fmt.Errorf("cloud.temperature %.2f is out of range [0, 2]", cfg.Cloud.Temperature))
	}
	if cfg.Cloud.MaxTokens < 0 {
		errs = append(errs, fmt.Errorf("cloud.max_tokens %d must not be negative", cfg.Cloud.MaxTokens))
	}

	if cfg.LocalModel.URL != "" {
		u, err := url.Parse(cfg.LocalModel.URL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("local_model.url %q is not an absolute URL", cfg.LocalModel.URL))
		}
		if len(cfg.LocalModel.SearchPaths) == 0 {
			errs = append(errs, fmt.Errorf("local_model.search_paths is required when local_model.url is set"))
		}
	}

	if cfg.Synth.Rate < 0 {
		errs = append(errs, fmt.Errorf("synth.rate %d must not be negative", cfg.Synth.Rate))
	}

	// Contact duplicate name detection
	namesSeen := make(map[string]int, len(cfg.Contacts))
	for i, c := range cfg.Contacts {
		prefix := fmt.Sprintf("contacts[%d]", i)
		if c.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		} else {
			if prev, ok := namesSeen[c.Name]; ok {
				errs = append(errs, fmt.Errorf("%s.name %q is a duplicate of contacts[%d]", prefix, c.Name, prev))
			}
			namesSeen[c.Name] = i
		}
		if c.Number == "" {
			errs = append(errs, fmt.Errorf("%s.number is required", prefix))
		}
	}

	return errors.Join(errs...)
}
