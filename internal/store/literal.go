package store

import "strings"

// Escape doubles every single quote so s can sit inside a standard SQL string literal.
func Escape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// Unescape reverses Escape.
func Unescape(s string) string {
	return strings.ReplaceAll(s, "''", "'")
}

// Quote wraps an already escaped value in single quotes.
func Quote(s string) string {
	return "'" + s + "'"
}

// Literal renders s as a SQL string literal. Every user-controlled string that
// ends up in SQL text must go through here.
func Literal(s string) string {
	return Quote(Escape(s))
}
