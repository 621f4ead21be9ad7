package depend

import (
	"fmt"
	"strings"

	"github.com/ralt/pacquery/internal/models"
	"github.com/sassoftware/go-rpmutils"
)

// Comparator orders two version strings, returning -1, 0 or 1
type Comparator func(a, b string) int

// Lexical compares versions as plain strings. This is the default and
// deliberately does not understand version segments: "1.2" > "1.10".
func Lexical(a, b string) int {
	return strings.Compare(a, b)
}

// AlpmCompare compares "[epoch:]version[-release]" strings segment-wise.
// Epoch, version and release are compared in turn with the rpm algorithm;
// the release only takes part when both sides carry one.
func AlpmCompare(a, b string) int {
	if a == b {
		return 0
	}
	ea, va, ra := splitEVR(a)
	eb, vb, rb := splitEVR(b)

	if c := rpmutils.Vercmp(ea, eb); c != 0 {
		return c
	}
	if c := rpmutils.Vercmp(va, vb); c != 0 {
		return c
	}
	if ra == "" || rb == "" {
		return 0
	}
	return rpmutils.Vercmp(ra, rb)
}

// splitEVR splits a full version into epoch, version and release.
// A missing epoch is "0".
func splitEVR(s string) (epoch, version, release string) {
	epoch = "0"
	if i := strings.IndexByte(s, ':'); i >= 0 && isDigits(s[:i]) {
		if i > 0 {
			epoch = s[:i]
		}
		s = s[i+1:]
	}
	if i := strings.LastIndexByte(s, '-'); i >= 0 {
		return epoch, s[:i], s[i+1:]
	}
	return epoch, s, ""
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ComparatorByName maps a configuration value to a comparator
func ComparatorByName(name string) (Comparator, error) {
	switch name {
	case "", "lexical":
		return Lexical, nil
	case "alpm":
		return AlpmCompare, nil
	default:
		return nil, &models.DBError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("unknown version comparator %q (want lexical or alpm)", name),
		}
	}
}
