package barrel

import (
	"context"

	"go.uber.org/zap"

	"autobarrel/pkg/discovery"
	"autobarrel/pkg/errors"
	"autobarrel/pkg/exports"
)

// Assembler builds barrel content for a folder. It holds no state
// between calls and never writes.
type Assembler struct {
	Discovery     discovery.Options
	Format        exports.FormatOptions
	DetectExports bool
	MaxWorkers    int
	Reader        SourceReader
	logger        *zap.Logger
}

// NewAssembler returns an assembler reading sources from disk.
func NewAssembler(opts Options, logger *zap.Logger) *Assembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assembler{
		Discovery:     opts.Discovery,
		Format:        opts.Format,
		DetectExports: opts.DetectExports,
		MaxWorkers:    opts.MaxWorkers,
		Reader:        OSReader{},
		logger:        logger,
	}
}

// Build returns the rendered barrel body for root. When discovery finds
// nothing, or fails, the error is marked errors.ErrNoFiles.
func (a *Assembler) Build(ctx context.Context, root string) (string, error) {
	doc, err := a.BuildDocument(ctx, root)
	if err != nil {
		return "", err
	}
	return doc.Render(a.Format), nil
}

// BuildDocument runs discovery, classification and synthesis.
func (a *Assembler) BuildDocument(ctx context.Context, root string) (Document, error) {
	files, err := discovery.Find(root, a.Discovery, a.logger)
	if err != nil {
		a.logger.Warn("Discovery failed, treating folder as having no files",
			zap.String("root", root), zap.Error(err))
		return Document{}, errors.Mark(err, errors.ErrNoFiles)
	}
	if len(files) == 0 {
		return Document{}, errors.Wrapf(errors.ErrNoFiles, "%s", root)
	}

	doc := Document{
		HeaderLines: a.Format.HeaderLines,
		ExportLines: make([]string, 0, len(files)),
	}

	if !a.DetectExports {
		for _, f := range files {
			doc.ExportLines = append(doc.ExportLines, exports.Wholesale(f.RelativePath, a.Format))
		}
		return doc, nil
	}

	reader := a.Reader
	if reader == nil {
		reader = OSReader{}
	}
	texts, err := ReadSourcesConcurrently(ctx, files, reader, a.MaxWorkers, a.logger)
	if err != nil {
		return Document{}, err
	}

	for i, f := range files {
		if err := ctx.Err(); err != nil {
			return Document{}, err
		}

		c := exports.Classify(texts[i])
		line, ok := exports.Synthesize(c, f.RelativePath, exports.BaseName(f.RelativePath), a.Format)
		a.logger.Debug("Classified file",
			zap.String("file", f.RelativePath),
			zap.Stringer("kind", c.Kind),
			zap.Bool("emitted", ok))
		if !ok {
			continue
		}
		doc.ExportLines = append(doc.ExportLines, line)
	}

	return doc, nil
}
