// Package depend parses dependency specifiers and evaluates version
// constraints between them.
package depend

import (
	"strings"

	"github.com/ralt/pacquery/internal/models"
)

// opChars are the characters that may start a version operator.
const opChars = "<>="

// opTokens is tried in order against the text starting at the first
// operator character. Two-character operators precede their one-character
// prefixes.
var opTokens = []struct {
	text string
	op   models.CmpOp
}{
	{"<=", models.CmpLtEq},
	{">=", models.CmpGtEq},
	{"<", models.CmpLt},
	{">", models.CmpGt},
	{"=", models.CmpEq},
}

// Parse parses a specifier of the form "name" or "name<op>version".
// The input is not trimmed.
func Parse(src string) (models.Depend, error) {
	pos := strings.IndexAny(src, opChars)
	if pos < 0 {
		return models.Depend{Name: src}, nil
	}

	name, rest := src[:pos], src[pos:]
	for _, tok := range opTokens {
		if strings.HasPrefix(rest, tok.text) {
			return models.Depend{
				Name: name,
				Req: &models.VersionReq{
					Op:      tok.op,
					Version: rest[len(tok.text):],
				},
			}, nil
		}
	}

	return models.Depend{}, &models.DBError{
		Type: models.ErrMalformedDepend,
		Err:  &models.MalformedDependError{Input: src},
	}
}

// MustParse is like Parse but panics on error. Intended for literals.
func MustParse(src string) models.Depend {
	d, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return d
}

// ParseOptional parses an %OPTDEPENDS% line, "spec" or "spec: reason".
func ParseOptional(line string) (models.OptDepend, error) {
	spec, reason, _ := strings.Cut(line, ": ")
	dep, err := Parse(spec)
	if err != nil {
		return models.OptDepend{}, err
	}
	return models.OptDepend{Depend: dep, Reason: reason}, nil
}
