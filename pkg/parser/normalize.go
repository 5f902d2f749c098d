package parser

import (
	"fmt"
	"regexp"
	"strings"
)

// identifierPattern matches names that are already storage-safe.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]+$`)

// nameReplacer applies the literal replacements in order.
var nameReplacer = strings.NewReplacer(
	"+", "plus",
	"-", "minus",
	".", "_",
	"/", "_",
)

// Normalize turns a raw header into an identifier-safe column name.
//
// An empty name becomes col_{index}. Names that already match
// [A-Za-z_][A-Za-z0-9_]+ are returned unchanged. Otherwise "+", "-", "."
// and "/" are replaced and a leading digit is prefixed with "_".
func Normalize(index int, raw string) string {
	if raw == "" {
		return fmt.Sprintf("col_%d", index)
	}
	if identifierPattern.MatchString(raw) {
		return raw
	}

	name := nameReplacer.Replace(raw)
	if name != "" && name[0] >= '0' && name[0] <= '9' {
		name = "_" + name
	}
	return name
}

// UniqueNames suffixes later duplicates with _{n} so that every column
// name is distinct. The first occurrence keeps its name. Names are compared
// case-insensitively since several backends fold identifier case.
func UniqueNames(names []string) []string {
	seen := make(map[string]int, len(names))
	taken := make(map[string]bool, len(names))
	for _, n := range names {
		taken[strings.ToLower(n)] = true
	}

	out := make([]string, len(names))
	for i, n := range names {
		key := strings.ToLower(n)
		count := seen[key]
		seen[key] = count + 1
		if count == 0 {
			out[i] = n
			continue
		}

		candidate := fmt.Sprintf("%s_%d", n, count)
		for taken[strings.ToLower(candidate)] {
			count++
			candidate = fmt.Sprintf("%s_%d", n, count)
		}
		seen[key] = count + 1
		taken[strings.ToLower(candidate)] = true
		out[i] = candidate
	}
	return out
}
