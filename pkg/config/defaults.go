package config

import (
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. AUTOBARREL_FILES_DETECT_EXPORTS.
const EnvPrefix = "AUTOBARREL"

// FileBaseName is the project config file name without extension.
const FileBaseName = ".autobarrel"

// DefaultFileName is what init writes.
const DefaultFileName = FileBaseName + ".toml"

// SupportedExtensions lists the config formats searched for, in order.
var SupportedExtensions = []string{"toml", "yaml", "yml", "json"}

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("enable", true)
	v.SetDefault("workspace", "")
	v.SetDefault("state_file", "") // "" = user config dir

	v.SetDefault("language.default_language", "TypeScript")

	// File discovery defaults
	v.SetDefault("files.disable_recursive", false)
	v.SetDefault("files.include_extensions", []string{"ts", "tsx", "vue"})
	v.SetDefault("files.exclude_patterns", []string{
		"**/*.spec.*",
		"**/*.test.*",
		"**/*.e2e.*",
		"**/index.ts",
		"**/index.js",
	})
	v.SetDefault("files.max_depth", 0) // 0 = unlimited
	v.SetDefault("files.supports_hidden", false)
	v.SetDefault("files.preserve_gitignore", true)
	v.SetDefault("files.ignore_file", ".gitignore")
	v.SetDefault("files.keep_extension", false)
	v.SetDefault("files.detect_exports", false)
	v.SetDefault("files.use_named_exports", false)
	v.SetDefault("files.export_default_filename", "filename")
	v.SetDefault("files.default_filename", "index")
	v.SetDefault("files.max_workers", 0) // 0 = NumCPU

	// Output formatting defaults
	v.SetDefault("formatting.header_comment_template", []string{})
	v.SetDefault("formatting.exclude_semicolon", false)
	v.SetDefault("formatting.use_single_quotes", true)
	v.SetDefault("formatting.end_of_line", "lf")
	v.SetDefault("formatting.insert_final_newline", true)
}
