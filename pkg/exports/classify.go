// Package exports detects the export shape of an ES module and writes
// the matching re-export statement for a barrel file.
//
// Detection is lexical: it runs regular expressions over the raw file
// text and never parses it. The word "export" inside a string literal
// or a comment can therefore produce a match. That is a known
// limitation of the approach, not something to paper over here.
package exports

import (
	"regexp"
	"slices"
	"strings"
)

// Kind tags the variant held by a Classification.
type Kind int

const (
	NoMatch Kind = iota
	DefaultExport
	ExportedMembers
	NamedExport
)

func (k Kind) String() string {
	switch k {
	case DefaultExport:
		return "default"
	case ExportedMembers:
		return "members"
	case NamedExport:
		return "named"
	default:
		return "none"
	}
}

// Classification is the export pattern found in one file.
//
// Names is set for ExportedMembers. ValueNames and TypeNames are set for
// NamedExport; TypeNames holds interface and type alias declarations.
type Classification struct {
	Kind       Kind
	Names      []string
	ValueNames []string
	TypeNames  []string
}

// Precompiled patterns, evaluated in this order by Classify.
var (
	DefaultExportPattern   = regexp.MustCompile(`\bexport\s+(?:(?:async\s+function|function|const|let|var)\s+)?default\b`)
	ExportedMembersPattern = regexp.MustCompile(`\bexport\s*\{([^}]*)\}`)
	FromClausePattern      = regexp.MustCompile(`^\s*from\b`)
	NamedExportPattern     = regexp.MustCompile(`\bexport\s+(?:(?:async|abstract|declare|const|let|var)\s+)?(enum|function|class|type|interface|const|let|var)(?:\s*\*\s*|\s+)([A-Za-z_$][\w$]*)`)
	memberAliasPattern     = regexp.MustCompile(`^(?:type\s+)?[\w$]+\s+as\s+([\w$]+)$`)
)

// Classify determines which export pattern text uses. The first
// matching rule wins: default export, then an export list without a
// from clause, then named declarations. A list that aliases a member to
// default counts as a default export.
func Classify(text string) Classification {
	if DefaultExportPattern.MatchString(text) {
		return Classification{Kind: DefaultExport}
	}

	if names, ok := exportedMembers(text); ok {
		// `export { x as default }` is a default export spelled as a list
		if slices.Contains(names, "default") {
			return Classification{Kind: DefaultExport}
		}
		return Classification{Kind: ExportedMembers, Names: names}
	}

	if values, types, ok := namedDeclarations(text); ok {
		return Classification{Kind: NamedExport, ValueNames: values, TypeNames: types}
	}

	return Classification{Kind: NoMatch}
}

// exportedMembers collects the names of every `export { ... }` block
// that is not itself a re-export (`export { a } from './a'`).
func exportedMembers(text string) ([]string, bool) {
	var names []string
	found := false
	seen := make(map[string]bool)

	for _, loc := range ExportedMembersPattern.FindAllStringSubmatchIndex(text, -1) {
		if FromClausePattern.MatchString(text[loc[1]:]) {
			continue
		}
		found = true

		for _, member := range strings.Split(text[loc[2]:loc[3]], ",") {
			name := memberName(member)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}

	return names, found
}

// memberName trims one entry of an export list. For `local as exported`
// the exported name is what the module actually provides.
func memberName(member string) string {
	member = strings.Join(strings.Fields(member), " ")
	if m := memberAliasPattern.FindStringSubmatch(member); m != nil {
		return m[1]
	}
	return member
}

func namedDeclarations(text string) (values, types []string, ok bool) {
	matches := NamedExportPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil, nil, false
	}

	seen := make(map[string]bool)
	for _, m := range matches {
		kind, name := m[1], m[2]
		if seen[name] {
			continue
		}
		seen[name] = true

		if kind == "interface" || kind == "type" {
			types = append(types, name)
		} else {
			values = append(values, name)
		}
	}

	return values, types, true
}
