package query

import "regexp"

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidIdentifier reports whether name is a plain unquoted SQL identifier.
func ValidIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}
