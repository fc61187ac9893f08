// ABOUTME: Workout name comparison shared by every storage engine.
// ABOUTME: Folds ASCII letters only, the same rule as SQLite's NOCASE collation.
package models

// SameName reports whether a and b are equal ignoring ASCII letter case.
// Non-ASCII bytes must match exactly, so "Über" and "über" are different names.
func SameName(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if asciiLower(a[i]) != asciiLower(b[i]) {
			return false
		}
	}
	return true
}

func asciiLower(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
