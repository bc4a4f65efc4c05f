package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"

	"github.com/kolah/synth/model"
)

const (
	DefaultFile        = "synth.yaml"
	DefaultExample     = "default"
	DefaultOutput      = "json"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultPlaceholder = "YOUR_SECRET_TOKEN"
)

type Config struct {
	Spec        string                `koanf:"spec"`
	Operation   string                `koanf:"operation"`
	Example     string                `koanf:"example"`
	Server      string                `koanf:"server"`
	Environment map[string]any        `koanf:"environment"`
	Cookies     []model.Cookie        `koanf:"cookies"`
	Auth        map[string]AuthConfig `koanf:"auth"`
	Security    []string              `koanf:"security"`
	Proxy       string                `koanf:"proxy"`
	Embedded    bool                  `koanf:"embedded"`
	Placeholder string                `koanf:"placeholder"`
	Output      string                `koanf:"output"`
	Check       bool                  `koanf:"validate"`
	LogLevel    string                `koanf:"log-level"`
	LogFormat   string                `koanf:"log-format"`
}

// AuthConfig carries credentials for one security scheme. Non-empty fields override
// the x-scalar-secret-* values declared in the document.
type AuthConfig struct {
	Token    string                `koanf:"token"`
	Username string                `koanf:"username"`
	Password string                `koanf:"password"`
	Flows    map[string]FlowConfig `koanf:"flows"`
}

type FlowConfig struct {
	Token string `koanf:"token"`
}

// BindCommonFlags binds flags shared by every command.
func BindCommonFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringP("config", "c", "", "Config file path (default: synth.yaml)")
	flags.StringP("spec", "s", "", "OpenAPI spec file path")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.String("log-format", "", "Log format: text, json")
}

// BindBuildFlags binds flags of the build command.
func BindBuildFlags(cmd *cobra.Command) {
	flags := cmd.Flags()

	flags.String("operation", "", "Operation ID or \"METHOD /path\"")
	flags.StringP("example", "e", "", "Example key (default: default)")
	flags.String("server", "", "Server index or URL override")
	flags.StringToString("env", nil, "Environment variables (name=value)")
	flags.StringSlice("security", nil, "Security schemes to apply")
	flags.String("proxy", "", "Proxy URL")
	flags.Bool("embedded", false, "Build for an embedded client")
	flags.String("placeholder", "", "Placeholder for empty credentials")
	flags.StringP("output", "o", "", "Output format: json, yaml")
	flags.Bool("validate", false, "Validate the request against the document")
}

// Load reads the config file, if any, and layers flags over it.
func Load(cmd *cobra.Command) (*Config, error) {
	k := koanf.New(".")

	configFile, _ := cmd.Flags().GetString("config")
	if configFile == "" {
		configFile, _ = cmd.PersistentFlags().GetString("config")
	}
	if configFile == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			configFile = DefaultFile
		}
	}

	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	flagsMap := buildFlagsMap(cmd)
	if len(flagsMap) > 0 {
		if err := k.Load(confmap.Provider(flagsMap, "."), nil); err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func buildFlagsMap(cmd *cobra.Command) map[string]any {
	m := make(map[string]any)

	lookup := func(name string) bool {
		return cmd.Flags().Lookup(name) != nil || cmd.PersistentFlags().Lookup(name) != nil
	}

	getString := func(name string) string {
		if v, err := cmd.Flags().GetString(name); err == nil && v != "" {
			return v
		}
		if v, err := cmd.PersistentFlags().GetString(name); err == nil && v != "" {
			return v
		}
		return ""
	}

	getStringSlice := func(name string) []string {
		if v, err := cmd.Flags().GetStringSlice(name); err == nil && len(v) > 0 {
			return v
		}
		return nil
	}

	flagChanged := func(name string) bool {
		return lookup(name) && (cmd.Flags().Changed(name) || cmd.PersistentFlags().Changed(name))
	}

	getBool := func(name string) bool {
		if v, err := cmd.Flags().GetBool(name); err == nil {
			return v
		}
		return false
	}

	for _, name := range []string{"spec", "operation", "example", "server", "proxy", "placeholder", "output", "log-level", "log-format"} {
		if v := getString(name); v != "" {
			m[name] = v
		}
	}
	if v := getStringSlice("security"); len(v) > 0 {
		m["security"] = v
	}
	for _, name := range []string{"embedded", "validate"} {
		if flagChanged(name) {
			m[name] = getBool(name)
		}
	}

	// Environment flags are keyed individually so they extend the file's map.
	if env, err := cmd.Flags().GetStringToString("env"); err == nil {
		for name, value := range env {
			m["environment."+name] = value
		}
	}

	return m
}

func (c *Config) applyDefaults() {
	if c.Example == "" {
		c.Example = DefaultExample
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.Placeholder == "" {
		c.Placeholder = DefaultPlaceholder
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = DefaultLogFormat
	}
}

func (c *Config) Validate() error {
	if c.Spec == "" {
		return fmt.Errorf("spec file is required")
	}

	validOutputs := map[string]bool{"": true, "json": true, "yaml": true}
	if !validOutputs[c.Output] {
		return fmt.Errorf("invalid output format: %s (valid: json, yaml)", c.Output)
	}

	validLevels := map[string]bool{"": true, "debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", c.LogLevel)
	}

	validFormats := map[string]bool{"": true, "text": true, "json": true}
	if !validFormats[c.LogFormat] {
		return fmt.Errorf("invalid log format: %s (valid: text, json)", c.LogFormat)
	}

	for i, cookie := range c.Cookies {
		if cookie.Name == "" {
			return fmt.Errorf("cookie %d: name is required", i)
		}
	}

	return nil
}

// ServerIndex reports whether Server selects a document server by position.
func (c *Config) ServerIndex() (int, bool) {
	if c.Server == "" {
		return 0, false
	}
	i, err := strconv.Atoi(c.Server)
	if err != nil || i < 0 {
		return 0, false
	}
	return i, true
}
