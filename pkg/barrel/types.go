// Package barrel assembles barrel files from discovered sources and
// writes them to disk.
package barrel

import (
	"os"
	"strings"

	"autobarrel/pkg/discovery"
	"autobarrel/pkg/errors"
	"autobarrel/pkg/exports"
)

// Options is everything one create/update call needs, resolved once
// from the settings.
type Options struct {
	Discovery       discovery.Options
	Format          exports.FormatOptions
	DetectExports   bool   // Classify each file instead of `export *`.
	MaxWorkers      int    // Concurrent source reads; <= 0 means NumCPU.
	DefaultFilename string // Barrel name without extension, e.g. "index".
	Language        string // "TypeScript" or "JavaScript"; picks .ts or .js.
	Workspace       string // Targets must live under this folder.
}

// BarrelFileName returns the barrel file name with its extension.
func (o Options) BarrelFileName() string {
	name := o.DefaultFilename
	if name == "" {
		name = "index"
	}
	ext := "js"
	if strings.EqualFold(o.Language, "typescript") {
		ext = "ts"
	}
	return name + "." + ext
}

// Document is a barrel body before rendering. It only lives for the
// duration of one build.
type Document struct {
	HeaderLines []string
	ExportLines []string
}

// Render joins the document with the configured newline policy.
func (d Document) Render(opts exports.FormatOptions) string {
	newline := opts.Newline
	if newline == "" {
		newline = "\n"
	}

	var sb strings.Builder
	// A configured header is written even when its lines are blank
	if len(d.HeaderLines) > 0 {
		sb.WriteString(strings.Join(d.HeaderLines, newline))
		sb.WriteString(newline)
		sb.WriteString(newline)
	}
	sb.WriteString(strings.Join(d.ExportLines, newline))
	if opts.InsertFinalNewline {
		sb.WriteString(newline)
	}
	return sb.String()
}

// SourceReader returns the full text of a source file.
type SourceReader interface {
	ReadText(path string) (string, error)
}

// OSReader reads sources from the local file system.
type OSReader struct{}

// ReadText implements SourceReader.
func (OSReader) ReadText(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "error reading file %s", path)
	}
	return string(b), nil
}
