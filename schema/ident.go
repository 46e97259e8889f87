package schema

import "regexp"

// MaxIdentifierLen is the maximum length of a storage identifier.
const MaxIdentifierLen = 63

// identRegexp matches identifiers accepted by the storage engine: a letter
// or underscore followed by up to 62 letters, digits or underscores.
var identRegexp = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]{0,62}$`)

// ValidIdentifier reports if name can be used as a storage identifier.
func ValidIdentifier(name string) bool {
	return identRegexp.MatchString(name)
}

func invalidIdentifiers(names ...string) []string {
	var invalid []string
	for _, n := range names {
		if !ValidIdentifier(n) {
			invalid = appendUnique(invalid, n)
		}
	}
	return invalid
}
