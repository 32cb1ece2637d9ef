package beacon

import (
	"encoding/hex"
	"strings"
)

// Matches reports whether an advertisement payload carries the target
// identifier. The target (typically a service UUID, with or without
// separators) is normalized and searched for as a substring of the
// payload's hex rendering. The advertisement's AD structure is not
// parsed, so an incidental byte pattern elsewhere in the payload can
// match.
func Matches(adv []byte, target string) bool {
	needle := Normalize(target)
	if needle == "" || len(adv) == 0 {
		return false
	}
	return strings.Contains(hex.EncodeToString(adv), needle)
}

// Normalize strips UUID/MAC separators and lower-cases the identifier.
func Normalize(identifier string) string {
	r := strings.NewReplacer("-", "", ":", "")
	return strings.ToLower(r.Replace(identifier))
}
