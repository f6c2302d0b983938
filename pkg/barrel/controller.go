package barrel

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"

	"autobarrel/pkg/discovery"
	"autobarrel/pkg/errors"
	"autobarrel/pkg/notify"
)

// Controller runs the user-facing barrel commands. Each command reports
// its outcome through the notifier and also returns it.
type Controller struct {
	opts      Options
	Assembler *Assembler
	Writer    Writer
	Notifier  notify.Notifier
	logger    *zap.Logger
}

// NewController wires an assembler and file writer for opts.
func NewController(opts Options, notifier notify.Notifier, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Controller{
		opts:      opts,
		Assembler: NewAssembler(opts, logger),
		Writer:    NewFileWriter(logger),
		Notifier:  notifier,
		logger:    logger,
	}
}

// Options returns the options the controller was built with.
func (c *Controller) Options() Options {
	return c.opts
}

// CreateBarrel writes a new barrel into folder and returns its path.
// An existing barrel is left untouched.
func (c *Controller) CreateBarrel(ctx context.Context, folder string) (string, error) {
	path, err := c.createBarrel(ctx, folder)
	if err != nil {
		notify.Report(c.Notifier, err)
		return "", err
	}
	c.Notifier.Notify(notify.LevelSuccess, "File created successfully: "+c.display(path))
	return path, nil
}

func (c *Controller) createBarrel(ctx context.Context, folder string) (string, error) {
	dir, err := c.resolveFolder(folder)
	if err != nil {
		return "", err
	}

	// Build the content before touching the filesystem
	name := c.opts.BarrelFileName()
	content, err := c.build(ctx, dir, name)
	if err != nil {
		return "", err
	}

	// Create refuses to overwrite an existing barrel
	return c.Writer.Create(dir, name, content)
}

// UpdateBarrelInFolder regenerates the barrel that must already exist
// in folder.
func (c *Controller) UpdateBarrelInFolder(ctx context.Context, folder string) (string, error) {
	dir, err := c.resolveFolder(folder)
	if err != nil {
		notify.Report(c.Notifier, err)
		return "", err
	}

	path := filepath.Join(dir, c.opts.BarrelFileName())
	if _, err := os.Stat(path); err != nil {
		err = errors.WithHint(
			errors.Wrapf(errors.ErrNotFound, "%s", c.display(path)),
			"run create first")
		notify.Report(c.Notifier, err)
		return "", err
	}

	if err := c.UpdateBarrel(ctx, path); err != nil {
		return "", err
	}
	return path, nil
}

// UpdateBarrel rebuilds file from its parent folder and replaces its
// whole content.
func (c *Controller) UpdateBarrel(ctx context.Context, file string) error {
	if err := c.updateBarrel(ctx, file); err != nil {
		notify.Report(c.Notifier, err)
		return err
	}
	c.Notifier.Notify(notify.LevelSuccess, "File successfully updated: "+c.display(file))
	return nil
}

func (c *Controller) updateBarrel(ctx context.Context, file string) error {
	path, err := c.resolveTarget(file)
	if err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(errors.ErrNotFound, "%s", c.display(path))
	}
	if info.IsDir() {
		return errors.WithHint(
			errors.Wrapf(errors.ErrInvalidTarget, "%s is a directory", c.display(path)),
			"pass the barrel file, or use --folder")
	}

	// Rebuild from the parent folder, leaving the target itself out
	content, err := c.build(ctx, filepath.Dir(path), filepath.Base(path))
	if err != nil {
		return err
	}
	return c.Writer.Replace(path, content)
}

// Preview returns the barrel that create would write for folder.
func (c *Controller) Preview(ctx context.Context, folder string) (string, error) {
	dir, err := c.resolveFolder(folder)
	if err == nil {
		var content string
		content, err = c.build(ctx, dir, c.opts.BarrelFileName())
		if err == nil {
			return content, nil
		}
	}
	notify.Report(c.Notifier, err)
	return "", err
}

// ListFiles returns the files a barrel in folder would re-export,
// drawn as a tree.
func (c *Controller) ListFiles(ctx context.Context, folder string) (string, []discovery.CandidateFile, error) {
	files, err := c.listFiles(ctx, folder)
	if err != nil {
		notify.Report(c.Notifier, err)
		return "", nil, err
	}
	return RenderTree(c.display(folder), files), files, nil
}

func (c *Controller) listFiles(ctx context.Context, folder string) ([]discovery.CandidateFile, error) {
	dir, err := c.resolveFolder(folder)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files, err := discovery.Find(dir, c.discoveryOptions(c.opts.BarrelFileName()), c.logger)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, c.refineEmpty(errors.Wrapf(errors.ErrNoFiles, "%s", dir), dir)
	}
	return files, nil
}

// build assembles the barrel for dir. self is the barrel's file name in
// dir and is never listed.
func (c *Controller) build(ctx context.Context, dir, self string) (string, error) {
	a := *c.Assembler
	a.Discovery = c.discoveryOptions(self)

	content, err := a.Build(ctx, dir)
	if err != nil {
		return "", c.refineEmpty(err, dir)
	}
	return content, nil
}

func (c *Controller) discoveryOptions(self string) discovery.Options {
	opts := c.Assembler.Discovery
	opts.ExcludePatterns = append(slices.Clone(opts.ExcludePatterns), self)
	return opts
}

// refineEmpty turns the assembler's no-files signal into either an empty
// folder or a pattern mismatch warning.
func (c *Controller) refineEmpty(err error, dir string) error {
	if !errors.Is(err, errors.ErrNoFiles) || errors.Is(err, errors.ErrDiscovery) {
		return err
	}

	found, listErr := discovery.HasAnyFile(dir)
	if listErr != nil {
		return listErr
	}
	if !found {
		return errors.Wrapf(errors.ErrFolderEmpty, "the %s folder", c.display(dir))
	}
	return errors.WithHint(
		errors.Wrapf(errors.ErrNoMatches, "the %s folder", c.display(dir)),
		"check the include_extensions and exclude_patterns settings")
}

func (c *Controller) resolveFolder(folder string) (string, error) {
	dir, err := c.resolveTarget(folder)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(dir)
	if err != nil {
		return "", errors.Wrapf(errors.ErrInvalidTarget, "the folder %s does not exist", c.display(dir))
	}
	if !info.IsDir() {
		return "", errors.Wrapf(errors.ErrInvalidTarget, "%s is not a folder", c.display(dir))
	}
	return dir, nil
}

// resolveTarget returns the absolute path of target after checking it
// lies inside the workspace.
func (c *Controller) resolveTarget(target string) (string, error) {
	if strings.TrimSpace(target) == "" {
		return "", errors.Wrap(errors.ErrInvalidTarget, "the folder is not valid")
	}

	abs, err := filepath.Abs(target)
	if err != nil {
		return "", errors.Wrapf(errors.ErrInvalidTarget, "the folder %s is not valid", target)
	}

	workspace, err := c.workspace()
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(workspace, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.WithHint(
			errors.Wrapf(errors.ErrInvalidTarget, "%s is not in the workspace", abs),
			"set --workspace or run from inside the project")
	}
	return abs, nil
}

func (c *Controller) workspace() (string, error) {
	ws := c.opts.Workspace
	if ws == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(err, "failed to get working directory")
		}
		ws = wd
	}
	abs, err := filepath.Abs(ws)
	if err != nil {
		return "", errors.Wrapf(err, "failed to resolve workspace %s", ws)
	}
	return abs, nil
}

// display shortens path relative to the workspace for messages.
func (c *Controller) display(path string) string {
	ws, err := c.workspace()
	if err != nil {
		return path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(ws, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}
