package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/ralt/pacquery/internal/db"
	"github.com/ralt/pacquery/internal/display"
	"github.com/ralt/pacquery/internal/models"
	"github.com/ralt/pacquery/internal/revdep"
)

// match is a package together with the database it was loaded from
type match struct {
	pkg      *models.Package
	database *db.Database
}

// selectPackages returns every package of database when names is empty,
// otherwise the named packages in argument order
func selectPackages(database *db.Database, names []string) ([]match, error) {
	if len(names) == 0 {
		return allMatches(database), nil
	}

	idx := revdep.NewIndex(database.Packages)
	matches := make([]match, 0, len(names))
	for _, name := range names {
		pkg, ok := idx.Lookup(name)
		if !ok {
			return nil, notFound(name, database.Name)
		}
		matches = append(matches, match{pkg: pkg, database: database})
	}
	return matches, nil
}

// allMatches returns every package of database sorted by name
func allMatches(database *db.Database) []match {
	matches := make([]match, 0, len(database.Packages))
	for i := range database.Packages {
		matches = append(matches, match{pkg: &database.Packages[i], database: database})
	}
	slices.SortStableFunc(matches, func(a, b match) int {
		return strings.Compare(a.pkg.Desc.Name, b.pkg.Desc.Name)
	})
	return matches
}

func notFound(name, where string) error {
	return &models.DBError{
		Type:    models.ErrNotFound,
		Package: name,
		Err:     fmt.Errorf("package was not found in %s", where),
	}
}

// writeMatches renders matches in the configured format
func writeMatches(w io.Writer, format string, matches []match) error {
	switch format {
	case models.FormatYAML:
		pkgs := make([]models.Package, 0, len(matches))
		for _, m := range matches {
			pkgs = append(pkgs, *m.pkg)
		}
		return display.WriteYAML(w, pkgs)

	case models.FormatDesc:
		for _, m := range matches {
			if err := display.WriteDesc(w, &m.pkg.Desc); err != nil {
				return err
			}
		}
		return nil

	default:
		for _, m := range matches {
			opts := display.InfoOptions{}
			if m.database.Name != db.LocalRepoName {
				opts.Repo = m.database.Name
			}
			if err := display.WriteInfo(w, &m.pkg.Desc, m.database.Packages, opts); err != nil {
				return err
			}
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		return nil
	}
}
