package cmd

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"autobarrel/pkg/barrel"
	"autobarrel/pkg/config"
	"autobarrel/pkg/errors"
	"autobarrel/pkg/notify"
	"autobarrel/pkg/version"
	"autobarrel/pkg/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [folder]",
	Short: "Keep a folder's barrel up to date while files change",
	Long: `Watch writes the folder's barrel once, then regenerates it whenever a
file below the folder changes. Edits to the config file are picked up
without a restart.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		folder, err := filepath.Abs(targetArg(args))
		if err != nil {
			return errors.Wrapf(errors.ErrInvalidTarget, "the folder %s is not valid", targetArg(args))
		}

		// Load settings; watching continues even while disabled so a config edit can enable it
		c, settings, err := newController(cmd)
		if err != nil {
			return err
		}

		// Stop on Ctrl+C or SIGTERM
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		w, err := watch.New(folder, settings.ConfigFile, logger)
		if err != nil {
			return err
		}

		// Write the barrel once, then keep it current
		s := &watchSession{cmd: cmd, folder: folder, controller: c, settings: settings, watcher: w}
		s.ignoreBarrel()
		s.regenerate(ctx)

		notifier.Notify(notify.LevelInfo, "Watching "+folder+" (Ctrl+C to stop)")
		return w.Run(ctx, s.onChange)
	},
}

// watchSession holds what a config reload replaces.
type watchSession struct {
	cmd        *cobra.Command
	folder     string
	controller *barrel.Controller // nil while disabled
	settings   *config.Settings
	watcher    *watch.Watcher
}

func (s *watchSession) onChange(ctx context.Context, change watch.Change) {
	if change.ConfigChanged {
		s.reload()
	}
	logger.Debug("Regenerating after change", zap.Strings("paths", change.Paths))
	s.regenerate(ctx)
}

// reload re-resolves settings; a broken config keeps the previous ones.
func (s *watchSession) reload() {
	settings, err := loadSettings(s.cmd)
	if err != nil {
		notify.Report(notifier, err)
		return
	}

	if settings.Enable != s.settings.Enable {
		if settings.Enable {
			notifier.Notify(notify.LevelInfo, version.Name+" is now enabled and ready to use")
		} else {
			notifier.Notify(notify.LevelInfo, version.Name+" is now disabled")
		}
	}

	s.settings = settings
	s.controller = nil
	if settings.Enable {
		s.controller = barrel.NewController(settings.BarrelOptions(), notifier, logger)
	}
	s.ignoreBarrel()
	logger.Info("Settings reloaded", zap.String("configFile", settings.ConfigFile))
}

// regenerate updates the barrel, creating it on first run.
func (s *watchSession) regenerate(ctx context.Context) {
	if s.controller == nil {
		return
	}

	path := s.barrelPath()
	if _, err := os.Stat(path); err == nil {
		_ = s.controller.UpdateBarrel(ctx, path)
		return
	}
	_, _ = s.controller.CreateBarrel(ctx, s.folder)
}

func (s *watchSession) barrelPath() string {
	return filepath.Join(s.folder, s.settings.BarrelOptions().BarrelFileName())
}

func (s *watchSession) ignoreBarrel() {
	s.watcher.Ignore(s.barrelPath())
}

func init() {
	addBarrelFlags(watchCmd.Flags())
	RootCmd.AddCommand(watchCmd)
}
