// Package config resolves autobarrel settings from defaults, a project
// config file, the environment and command flags.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"autobarrel/pkg/barrel"
	"autobarrel/pkg/discovery"
	"autobarrel/pkg/errors"
	"autobarrel/pkg/exports"
	"autobarrel/pkg/naming"
)

// Settings is the resolved, immutable configuration of one invocation.
type Settings struct {
	Enable     bool       `mapstructure:"enable" toml:"enable"`
	Workspace  string     `mapstructure:"workspace" toml:"workspace,omitempty"`
	Language   Language   `mapstructure:"language" toml:"language"`
	Files      Files      `mapstructure:"files" toml:"files"`
	Formatting Formatting `mapstructure:"formatting" toml:"formatting"`

	// StateFile records the last version run; empty means the user config dir.
	StateFile string `mapstructure:"state_file" toml:"state_file,omitempty"`

	// ConfigFile is the file the settings were read from, if any.
	ConfigFile string `mapstructure:"-" toml:"-"`
}

// Language picks the barrel file extension.
type Language struct {
	DefaultLanguage string `mapstructure:"default_language" toml:"default_language" validate:"required,oneof=TypeScript JavaScript typescript javascript"`
}

// Files controls discovery and the shape of each export line.
type Files struct {
	DisableRecursive      bool     `mapstructure:"disable_recursive" toml:"disable_recursive"`
	IncludeExtensions     []string `mapstructure:"include_extensions" toml:"include_extensions" validate:"required,min=1,dive,required"`
	ExcludePatterns       []string `mapstructure:"exclude_patterns" toml:"exclude_patterns" validate:"dive,required"`
	MaxDepth              int      `mapstructure:"max_depth" toml:"max_depth" validate:"gte=0"`
	SupportsHidden        bool     `mapstructure:"supports_hidden" toml:"supports_hidden"`
	PreserveGitignore     bool     `mapstructure:"preserve_gitignore" toml:"preserve_gitignore"`
	IgnoreFile            string   `mapstructure:"ignore_file" toml:"ignore_file" validate:"required"`
	KeepExtension         bool     `mapstructure:"keep_extension" toml:"keep_extension"`
	DetectExports         bool     `mapstructure:"detect_exports" toml:"detect_exports"`
	UseNamedExports       bool     `mapstructure:"use_named_exports" toml:"use_named_exports"`
	ExportDefaultFilename string   `mapstructure:"export_default_filename" toml:"export_default_filename" validate:"required,oneof=filename none camelCase pascalCase kebabCase snakeCase"`
	DefaultFilename       string   `mapstructure:"default_filename" toml:"default_filename" validate:"required,excludesall=/\\"`
	MaxWorkers            int      `mapstructure:"max_workers" toml:"max_workers" validate:"gte=0"`
}

// Formatting controls quoting, terminators and line endings.
type Formatting struct {
	HeaderCommentTemplate []string `mapstructure:"header_comment_template" toml:"header_comment_template"`
	ExcludeSemicolon      bool     `mapstructure:"exclude_semicolon" toml:"exclude_semicolon"`
	UseSingleQuotes       bool     `mapstructure:"use_single_quotes" toml:"use_single_quotes"`
	EndOfLine             string   `mapstructure:"end_of_line" toml:"end_of_line" validate:"required,oneof=lf crlf"`
	InsertFinalNewline    bool     `mapstructure:"insert_final_newline" toml:"insert_final_newline"`
}

// New returns a viper instance with defaults and environment binding.
// Flags can be bound onto it before Load.
func New() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)
	return v
}

// Load reads the config file into v and returns validated settings.
// configPath wins when set; otherwise the nearest project config found
// walking up from startDir is used, if there is one.
func Load(v *viper.Viper, configPath, startDir string) (*Settings, error) {
	if configPath == "" {
		configPath = FindProjectConfig(startDir)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if ext := strings.TrimPrefix(filepath.Ext(configPath), "."); ext == "" {
			v.SetConfigType("toml")
		}
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "failed to read config file %s", configPath), errors.ErrInvalidConfig)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "failed to unmarshal config"), errors.ErrInvalidConfig)
	}
	s.ConfigFile = v.ConfigFileUsed()

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// FindProjectConfig searches for .autobarrel.{toml,yaml,yml,json} by
// walking up the directory tree from dir. It returns "" when none exists.
func FindProjectConfig(dir string) string {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return ""
		}
		dir = wd
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}

	for {
		for _, ext := range SupportedExtensions {
			path := filepath.Join(dir, FileBaseName+"."+ext)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// Validate checks struct constraints and glob syntax.
func (s *Settings) Validate() error {
	validate := validator.New()
	if err := validate.Struct(s); err != nil {
		return errors.WithHint(
			errors.Mark(errors.Wrap(err, "invalid settings"), errors.ErrInvalidConfig),
			"see `autobarrel init` for a documented default config")
	}
	for _, p := range s.Files.ExcludePatterns {
		if !doublestar.ValidatePattern(p) {
			return errors.Mark(errors.Newf("invalid exclude pattern %q", p), errors.ErrInvalidConfig)
		}
	}
	return nil
}

// DiscoveryOptions maps the files section onto discovery options.
func (s *Settings) DiscoveryOptions() discovery.Options {
	recursive := !s.Files.DisableRecursive
	return discovery.Options{
		IncludePatterns:   discovery.ExtensionPatterns(s.Files.IncludeExtensions, recursive),
		ExcludePatterns:   append([]string(nil), s.Files.ExcludePatterns...),
		Recursive:         recursive,
		MaxDepth:          s.Files.MaxDepth,
		AllowHidden:       s.Files.SupportsHidden,
		RespectIgnoreFile: s.Files.PreserveGitignore,
		IgnoreFileName:    s.Files.IgnoreFile,
	}
}

// FormatOptions maps the formatting section onto export line options.
func (s *Settings) FormatOptions() exports.FormatOptions {
	quote := `"`
	if s.Formatting.UseSingleQuotes {
		quote = "'"
	}
	newline := "\n"
	if strings.EqualFold(s.Formatting.EndOfLine, "crlf") {
		newline = "\r\n"
	}
	return exports.FormatOptions{
		QuoteChar:          quote,
		Semicolon:          !s.Formatting.ExcludeSemicolon,
		Newline:            newline,
		InsertFinalNewline: s.Formatting.InsertFinalNewline,
		KeepFileExtension:  s.Files.KeepExtension,
		NamingStyle:        naming.ParseStyle(s.Files.ExportDefaultFilename),
		UseNamedExports:    s.Files.UseNamedExports,
		HeaderLines:        append([]string(nil), s.Formatting.HeaderCommentTemplate...),
	}
}

// BarrelOptions resolves everything a barrel command needs.
func (s *Settings) BarrelOptions() barrel.Options {
	return barrel.Options{
		Discovery:       s.DiscoveryOptions(),
		Format:          s.FormatOptions(),
		DetectExports:   s.Files.DetectExports,
		MaxWorkers:      s.Files.MaxWorkers,
		DefaultFilename: s.Files.DefaultFilename,
		Language:        s.Language.DefaultLanguage,
		Workspace:       s.Workspace,
	}
}
