package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"autobarrel/pkg/barrel"
	"autobarrel/pkg/config"
	"autobarrel/pkg/errors"
	"autobarrel/pkg/notify"
	"autobarrel/pkg/version"
)

// flagKeys maps command flags onto settings keys.
var flagKeys = map[string]string{
	"workspace":        "workspace",
	"language":         "language.default_language",
	"no-recursive":     "files.disable_recursive",
	"include":          "files.include_extensions",
	"exclude":          "files.exclude_patterns",
	"max-depth":        "files.max_depth",
	"hidden":           "files.supports_hidden",
	"keep-extension":   "files.keep_extension",
	"detect-exports":   "files.detect_exports",
	"named-exports":    "files.use_named_exports",
	"naming-style":     "files.export_default_filename",
	"default-filename": "files.default_filename",
	"workers":          "files.max_workers",
}

// addBarrelFlags defines the per-setting overrides shared by the
// commands that build barrels.
func addBarrelFlags(fs *pflag.FlagSet) {
	fs.String("language", "", "TypeScript or JavaScript; picks the barrel extension")
	fs.Bool("no-recursive", false, "Only re-export files directly in the folder")
	fs.StringSlice("include", nil, "File extensions to include, e.g. ts,tsx")
	fs.StringSlice("exclude", nil, "Glob patterns to exclude")
	fs.Int("max-depth", 0, "Maximum folder depth to search (0 = unlimited)")
	fs.Bool("hidden", false, "Include hidden files and folders")
	fs.Bool("keep-extension", false, "Keep file extensions in export paths")
	fs.Bool("detect-exports", false, "Inspect each file and re-export what it actually exports")
	fs.Bool("named-exports", false, "Re-export named members instead of namespaces")
	fs.String("naming-style", "", "Identifier style for default/namespace exports: camelCase, pascalCase, kebabCase, snakeCase, none")
	fs.String("default-filename", "", "Barrel file name without extension")
	fs.Int("workers", 0, "Concurrent file reads (0 = number of CPUs)")
}

// loadSettings resolves settings for cmd, letting changed flags win.
func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	v := config.New()
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, errors.Wrapf(err, "failed to bind flag %s", name)
			}
		}
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, errors.Wrap(err, "error reading flags")
	}

	settings, err := config.Load(v, configPath, "")
	if err != nil {
		return nil, err
	}
	logger.Debug("Resolved settings",
		zap.String("configFile", settings.ConfigFile),
		zap.Bool("detectExports", settings.Files.DetectExports),
		zap.Strings("include", settings.Files.IncludeExtensions))
	return settings, nil
}

// newController loads settings and builds a controller. A nil
// controller with a nil error means autobarrel is disabled.
func newController(cmd *cobra.Command) (*barrel.Controller, *config.Settings, error) {
	settings, err := loadSettings(cmd)
	if err != nil {
		return nil, nil, err
	}

	announceVersion(settings)

	if !settings.Enable {
		notifier.Notify(notify.LevelInfo, version.Name+" is disabled; set enable = true to use it")
		return nil, settings, nil
	}
	return barrel.NewController(settings.BarrelOptions(), notifier, logger), settings, nil
}

// announceVersion shows the welcome or upgrade notice once per version.
func announceVersion(settings *config.Settings) {
	path := settings.StateFile
	if path == "" {
		p, err := version.DefaultStatePath()
		if err != nil {
			logger.Debug("Skipping version notice", zap.Error(err))
			return
		}
		path = p
	}

	n, _, err := version.Check(path, version.Version, time.Now(), logger)
	if err != nil {
		logger.Debug("Version check failed", zap.Error(err))
		return
	}
	if msg := version.Message(n, version.Version); msg != "" {
		notifier.Notify(notify.LevelInfo, msg)
	}
}

// targetArg returns the first argument or ".".
func targetArg(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}
