// Package naming turns bare file names into identifiers for re-export
// statements.
package naming

import (
	"strings"
	"unicode"
)

// Style selects how a file name is turned into an identifier.
type Style string

const (
	CamelCase  Style = "camelCase"
	PascalCase Style = "pascalCase"
	KebabCase  Style = "kebabCase"
	SnakeCase  Style = "snakeCase"
	None       Style = "none"
)

// Styles lists every recognized style name.
var Styles = []Style{CamelCase, PascalCase, KebabCase, SnakeCase, None}

// ParseStyle maps a configuration value to a Style. Unknown values,
// including the legacy "filename", map to None.
func ParseStyle(s string) Style {
	for _, style := range Styles {
		if strings.EqualFold(s, string(style)) {
			return style
		}
	}
	return None
}

// Format converts baseName (extension already stripped) using style.
//
// Every '-' or '.' followed by a character is rewritten: camelCase and
// pascalCase drop the separator and uppercase the character, kebabCase
// and snakeCase replace the separator with '-' or '_'. Pairs do not
// overlap, so in "a..b" only the first '.' is replaced. For the two
// capitalizing styles a run of separators counts as one, so the output
// never contains a separator+character pair and formatting it again is
// a no-op.
func Format(baseName string, style Style) string {
	switch style {
	case CamelCase:
		return capitalizeAfterSeparators(baseName)
	case PascalCase:
		return upperFirst(capitalizeAfterSeparators(baseName))
	case KebabCase:
		return replaceSeparators(baseName, '-')
	case SnakeCase:
		return replaceSeparators(baseName, '_')
	default:
		return baseName
	}
}

func isSeparator(r rune) bool {
	return r == '-' || r == '.'
}

func capitalizeAfterSeparators(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(runes); i++ {
		if !isSeparator(runes[i]) {
			b.WriteRune(runes[i])
			continue
		}

		j := i
		for j < len(runes) && isSeparator(runes[j]) {
			j++
		}
		if j == len(runes) {
			// trailing separators have nothing to capitalize
			b.WriteString(string(runes[i:]))
			break
		}
		b.WriteRune(unicode.ToUpper(runes[j]))
		i = j
	}

	return b.String()
}

func replaceSeparators(s string, with rune) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(runes); i++ {
		if isSeparator(runes[i]) && i+1 < len(runes) {
			// the pair is consumed; its second rune is kept as is
			b.WriteRune(with)
			b.WriteRune(runes[i+1])
			i++
			continue
		}
		b.WriteRune(runes[i])
	}

	return b.String()
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
