package model

import "strings"

// SymbolPrefix marks a name or type that is an API symbol.
const SymbolPrefix = "$"

// ParseSymbol splits "$kind.Symbol" into its API kind and symbol name.
func ParseSymbol(s string) (kind, name string, ok bool) {
	rest, found := strings.CutPrefix(strings.TrimSpace(s), SymbolPrefix)
	if !found {
		return "", "", false
	}

	kind, name, found = strings.Cut(rest, ".")
	if !found || kind == "" || name == "" {
		return "", "", false
	}

	return kind, name, true
}
