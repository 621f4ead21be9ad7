// Package revdep answers reverse dependency queries over a package
// collection. Queries are linear scans over an immutable snapshot; nothing
// here mutates the packages it is given.
package revdep

import (
	"github.com/ralt/pacquery/internal/models"
)

// RequiredBy returns the candidates whose %DEPENDS% names target, or a
// name target provides. Matching is by name only. Order follows candidates.
func RequiredBy(target *models.Description, candidates []models.Package) []models.Package {
	return filter(target, candidates, func(d *models.Description) []string {
		return dependNames(d.Depends)
	})
}

// OptionalFor is RequiredBy over %OPTDEPENDS%
func OptionalFor(target *models.Description, candidates []models.Package) []models.Package {
	return filter(target, candidates, func(d *models.Description) []string {
		names := make([]string, 0, len(d.OptDepends))
		for _, o := range d.OptDepends {
			names = append(names, o.Depend.Name)
		}
		return names
	})
}

func filter(target *models.Description, candidates []models.Package, edges func(*models.Description) []string) []models.Package {
	aliases := make(map[string]struct{}, len(target.Provides)+1)
	aliases[target.Name] = struct{}{}
	for _, p := range target.Provides {
		aliases[p.Name] = struct{}{}
	}

	var out []models.Package
	for _, cand := range candidates {
		for _, name := range edges(&cand.Desc) {
			if _, ok := aliases[name]; ok {
				out = append(out, cand)
				break
			}
		}
	}
	return out
}

func dependNames(deps []models.Depend) []string {
	names := make([]string, 0, len(deps))
	for _, d := range deps {
		names = append(names, d.Name)
	}
	return names
}

// Names returns the package names of pkgs, in order
func Names(pkgs []models.Package) []string {
	names := make([]string, 0, len(pkgs))
	for _, p := range pkgs {
		names = append(names, p.Desc.Name)
	}
	return names
}
