package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// FileName is the settings file looked up in the working directory when no
// explicit path is given.
const FileName = "plangrid"

// Settings holds all application configuration.
type Settings struct {
	Log    LogSettings    `mapstructure:"log"`
	Chains ChainSettings  `mapstructure:"chains"`
	Cache  CacheSettings  `mapstructure:"cache"`
	Files  FilesSettings  `mapstructure:"files"`
	Output OutputSettings `mapstructure:"output"`
}

type LogSettings struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ChainSettings bounds dependency traversals.
type ChainSettings struct {
	MaxDepth int `mapstructure:"max_depth"`
}

// CacheSettings sizes the last-good IR cache.
type CacheSettings struct {
	Size int `mapstructure:"size"`
}

type FilesSettings struct {
	Extensions []string `mapstructure:"extensions"`
}

type OutputSettings struct {
	Format string `mapstructure:"format"`
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		Log:    LogSettings{Level: "info", Format: "text"},
		Chains: ChainSettings{MaxDepth: 1000},
		Cache:  CacheSettings{Size: 128},
		Files:  FilesSettings{Extensions: []string{".plan", ".hcl"}},
		Output: OutputSettings{Format: "text"},
	}
}

// Validate checks the settings and returns one message per problem.
func (s *Settings) Validate() []string {
	var problems []string

	switch s.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("invalid log.level %q: must be 'debug', 'info', 'warn', or 'error'", s.Log.Level))
	}
	switch s.Log.Format {
	case "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("invalid log.format %q: must be 'text' or 'json'", s.Log.Format))
	}
	switch s.Output.Format {
	case "text", "json", "yaml", "lsp":
	default:
		problems = append(problems, fmt.Sprintf("invalid output.format %q: must be 'text', 'json', 'yaml', or 'lsp'", s.Output.Format))
	}
	if s.Chains.MaxDepth <= 0 {
		problems = append(problems, fmt.Sprintf("chains.max_depth %d must be positive", s.Chains.MaxDepth))
	}
	if s.Cache.Size <= 0 {
		problems = append(problems, fmt.Sprintf("cache.size %d must be positive", s.Cache.Size))
	}
	if len(s.Files.Extensions) == 0 {
		problems = append(problems, "files.extensions must not be empty")
	}

	return problems
}

// Load reads settings from path, or from ./plangrid.yaml when path is empty
// and the file exists, then applies environment overrides.
func Load(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v, Defaults())

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix("PLANGRID")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	for i, ext := range s.Files.Extensions {
		s.Files.Extensions[i] = strings.TrimSpace(ext)
	}

	if problems := s.Validate(); len(problems) > 0 {
		return nil, fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return &s, nil
}

func setDefaults(v *viper.Viper, d Settings) {
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("chains.max_depth", d.Chains.MaxDepth)
	v.SetDefault("cache.size", d.Cache.Size)
	v.SetDefault("files.extensions", d.Files.Extensions)
	v.SetDefault("output.format", d.Output.Format)
}
