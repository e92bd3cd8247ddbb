// Package config provides the configuration schema and loader for the Sakha
// voice agent.
package config

// LogLevel controls log verbosity for the agent.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// CloudProvider selects the hosted chat-completion backend.
type CloudProvider string

const (
	CloudGroq   CloudProvider = "groq"
	CloudOpenAI CloudProvider = "openai"
)

// IsValid reports whether p is a recognised cloud provider.
func (p CloudProvider) IsValid() bool {
	return p == CloudGroq || p == CloudOpenAI
}

// Config is the root configuration structure for Sakha.
// It is typically loaded from a YAML file using [Load] or [LoadFromReader].
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Speech     SpeechConfig     `yaml:"speech"`
	Cloud      CloudConfig      `yaml:"cloud"`
	LocalModel LocalModelConfig `yaml:"local_model"`
	Synth      SynthConfig      `yaml:"synth"`
	Contacts   []ContactConfig  `yaml:"contacts"`
}

// ServerConfig holds network and logging settings for the agent's HTTP
// surface (health, metrics, and the status feed).
type ServerConfig struct {
	// ListenAddr is the TCP address the HTTP server listens on (e.g., ":8080").
	ListenAddr string `yaml:"listen_addr"`

	// LogLevel controls verbosity.
	LogLevel LogLevel `yaml:"log_level"`
}

// SpeechConfig holds settings for the speech-recognition engine.
type SpeechConfig struct {
	// Language is the recognition language hint (e.g., "hi", "en").
	Language string `yaml:"language"`

	// ModelPath is the path to the recognition model on disk.
	ModelPath string `yaml:"model_path"`

	// Partials enables partial-hypothesis events during capture.
	Partials bool `yaml:"partials"`
}

// CloudConfig holds settings for the hosted language-model tier.
// Leaving APIKey empty disables the tier entirely; classification then falls
// through to the local model or the unrecognised fallback.
type CloudConfig struct {
	// Provider selects the hosted backend.
	Provider CloudProvider `yaml:"provider"`

	// APIKey is the bearer credential for the provider's API.
	APIKey string `yaml:"api_key"`

	// BaseURL overrides the provider's default API endpoint.
	// Leave empty to use the provider's built-in default.
	BaseURL string `yaml:"base_url"`

	// Model selects a specific model within the provider.
	Model string `yaml:"model"`

	// MaxTokens caps completion length per reply.
	MaxTokens int `yaml:"max_tokens"`

	// Temperature controls sampling randomness.
	Temperature float64 `yaml:"temperature"`
}

// LocalModelConfig holds settings for the optional on-device model.
type LocalModelConfig struct {
	// URL is the HTTPS endpoint the model artifact is downloaded from.
	URL string `yaml:"url"`

	// Filename is the artifact's file name at the final path.
	Filename string `yaml:"filename"`

	// SearchPaths is the ordered list of directories probed for an
	// existing artifact; the first also receives new downloads.
	SearchPaths []string `yaml:"search_paths"`

	// ServerURL is the llama.cpp-compatible serving endpoint used once the
	// artifact is loaded. Leave empty for the backend default.
	ServerURL string `yaml:"server_url"`
}

// SynthConfig holds settings for the text-to-speech sink.
type SynthConfig struct {
	// Language is the synthesis voice language (e.g., "hi", "en").
	Language string `yaml:"language"`

	// Rate is the speaking rate in words per minute. Zero means engine default.
	Rate int `yaml:"rate"`
}

// ContactConfig is one entry of the call-target directory.
type ContactConfig struct {
	// Name is the spoken name the user refers to the contact by.
	Name string `yaml:"name"`

	// Number is the dial string handed to the automation layer.
	Number string `yaml:"number"`
}
