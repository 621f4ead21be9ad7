package depend

import (
	"fmt"

	"github.com/ralt/pacquery/internal/models"
)

// Satisfies reports whether candidate satisfies req using Lexical ordering
func Satisfies(candidate, req models.Depend) (bool, error) {
	return SatisfiesWith(candidate, req, Lexical)
}

// SatisfiesWith reports whether candidate satisfies req.
//
// Names must match exactly. An unversioned requirement is satisfied by any
// candidate of that name. A versioned requirement compares the candidate's
// version against the required one with cmp; the candidate's own operator
// is not consulted. A versioned requirement against an unversioned
// candidate is an ErrUnversionedCandidate error.
func SatisfiesWith(candidate, req models.Depend, cmp Comparator) (bool, error) {
	if candidate.Name != req.Name {
		return false, nil
	}
	if req.Req == nil {
		return true, nil
	}
	if candidate.Req == nil {
		return false, &models.DBError{
			Type:    models.ErrUnversionedCandidate,
			Package: candidate.Name,
			Err:     fmt.Errorf("cannot check %s without a candidate version", req),
		}
	}

	c := cmp(candidate.Req.Version, req.Req.Version)
	switch req.Req.Op {
	case models.CmpLt:
		return c < 0, nil
	case models.CmpLtEq:
		return c <= 0, nil
	case models.CmpGt:
		return c > 0, nil
	case models.CmpGtEq:
		return c >= 0, nil
	case models.CmpEq:
		return c == 0, nil
	default:
		return false, &models.DBError{
			Type: models.ErrMalformedDepend,
			Err:  &models.MalformedDependError{Input: req.String()},
		}
	}
}

// DescriptionSatisfies reports whether the package, or one of its
// provides, satisfies req. Unversioned provides only ever satisfy
// unversioned requirements.
func DescriptionSatisfies(d *models.Description, req models.Depend, cmp Comparator) bool {
	if ok, _ := SatisfiesWith(d.Self(), req, cmp); ok {
		return true
	}
	for _, prov := range d.Provides {
		if prov.Req == nil && req.Req != nil {
			continue
		}
		if ok, _ := SatisfiesWith(prov, req, cmp); ok {
			return true
		}
	}
	return false
}
