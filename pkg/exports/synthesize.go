package exports

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"autobarrel/pkg/naming"
)

// FormatOptions controls how statements and the barrel body are written.
type FormatOptions struct {
	QuoteChar          string       // "'" or "\""
	Semicolon          bool         // terminate statements with ';'
	Newline            string       // "\n" or "\r\n"
	InsertFinalNewline bool         // end the body with one Newline
	KeepFileExtension  bool         // keep the source extension in module paths
	NamingStyle        naming.Style // identifier style for default and namespace re-exports
	UseNamedExports    bool         // list names instead of `export * as`
	HeaderLines        []string     // lines written above the statements
}

// DefaultFormatOptions mirrors the configuration defaults.
func DefaultFormatOptions() FormatOptions {
	return FormatOptions{
		QuoteChar:          "'",
		Semicolon:          true,
		Newline:            "\n",
		InsertFinalNewline: true,
		NamingStyle:        naming.None,
	}
}

var extensionPattern = regexp.MustCompile(`\.[^/.]+$`)

// ModulePath normalizes rel to forward slashes and, unless keepExt is
// set, strips the extension of the last path segment.
func ModulePath(rel string, keepExt bool) string {
	rel = strings.ReplaceAll(rel, `\`, "/")
	if !keepExt {
		rel = extensionPattern.ReplaceAllString(rel, "")
	}
	return rel
}

// BaseName returns the file name of p without its directory and
// without its last extension.
func BaseName(p string) string {
	return extensionPattern.ReplaceAllString(path.Base(strings.ReplaceAll(p, `\`, "/")), "")
}

// Wholesale returns the statement used when export detection is off.
func Wholesale(rel string, opts FormatOptions) string {
	return "export * from " + source(rel, opts)
}

// Synthesize returns the re-export statement for a classified file.
// The boolean is false when the file contributes nothing to the barrel.
func Synthesize(c Classification, rel, baseName string, opts FormatOptions) (string, bool) {
	from := source(rel, opts)
	identifier := naming.Format(baseName, opts.NamingStyle)

	switch c.Kind {
	case DefaultExport:
		return fmt.Sprintf("export { default as %s } from %s", identifier, from), true

	case ExportedMembers:
		if !opts.UseNamedExports {
			return namespace(identifier, from), true
		}
		if len(c.Names) == 0 {
			return "", false
		}
		return fmt.Sprintf("export { %s } from %s", strings.Join(c.Names, ", "), from), true

	case NamedExport:
		if !opts.UseNamedExports {
			return namespace(identifier, from), true
		}
		switch {
		case len(c.ValueNames) == 0 && len(c.TypeNames) == 0:
			return "", false
		case len(c.ValueNames) == 0:
			return fmt.Sprintf("export type { %s } from %s", strings.Join(c.TypeNames, ", "), from), true
		case len(c.TypeNames) == 0:
			return fmt.Sprintf("export { %s } from %s", strings.Join(c.ValueNames, ", "), from), true
		default:
			names := make([]string, 0, len(c.TypeNames)+len(c.ValueNames))
			for _, name := range c.TypeNames {
				names = append(names, "type "+name)
			}
			names = append(names, c.ValueNames...)
			return fmt.Sprintf("export { %s } from %s", strings.Join(names, ", "), from), true
		}

	default:
		return "", false
	}
}

func namespace(identifier, from string) string {
	return fmt.Sprintf("export * as %s from %s", identifier, from)
}

// source renders `'./rel';` with the configured quote and semicolon.
func source(rel string, opts FormatOptions) string {
	quote := opts.QuoteChar
	if quote == "" {
		quote = "'"
	}
	semi := ""
	if opts.Semicolon {
		semi = ";"
	}
	return quote + "./" + ModulePath(rel, opts.KeepFileExtension) + quote + semi
}
