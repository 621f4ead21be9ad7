package revdep

import (
	"github.com/ralt/pacquery/internal/depend"
	"github.com/ralt/pacquery/internal/models"
)

// Index is a name lookup over a package collection, built once per batch
// of queries. It holds positions into the collection it was built from.
type Index struct {
	pkgs      []models.Package
	byName    map[string]int
	providers map[string][]int
}

// NewIndex indexes pkgs by name and by provided name
func NewIndex(pkgs []models.Package) *Index {
	idx := &Index{
		pkgs:      pkgs,
		byName:    make(map[string]int, len(pkgs)),
		providers: make(map[string][]int),
	}
	for i := range pkgs {
		d := &pkgs[i].Desc
		if _, dup := idx.byName[d.Name]; !dup {
			idx.byName[d.Name] = i
		}
		for _, p := range d.Provides {
			idx.providers[p.Name] = append(idx.providers[p.Name], i)
		}
	}
	return idx
}

// Lookup finds a package by exact name
func (idx *Index) Lookup(name string) (*models.Package, bool) {
	i, ok := idx.byName[name]
	if !ok {
		return nil, false
	}
	return &idx.pkgs[i], true
}

// Installed reports whether any package has the name or provides it
func (idx *Index) Installed(name string) bool {
	if _, ok := idx.byName[name]; ok {
		return true
	}
	return len(idx.providers[name]) > 0
}

// Satisfier returns the first package satisfying req, by name first and
// then through provides
func (idx *Index) Satisfier(req models.Depend, cmp depend.Comparator) (*models.Package, bool) {
	if i, ok := idx.byName[req.Name]; ok && depend.DescriptionSatisfies(&idx.pkgs[i].Desc, req, cmp) {
		return &idx.pkgs[i], true
	}
	for _, i := range idx.providers[req.Name] {
		if depend.DescriptionSatisfies(&idx.pkgs[i].Desc, req, cmp) {
			return &idx.pkgs[i], true
		}
	}
	return nil, false
}

// Problem is a dependency not satisfied within a collection
type Problem struct {
	Package string
	Missing models.Depend
}

// Check lists every %DEPENDS% entry that no package in pkgs satisfies
func Check(pkgs []models.Package, cmp depend.Comparator) []Problem {
	idx := NewIndex(pkgs)
	var problems []Problem
	for _, p := range pkgs {
		for _, dep := range p.Desc.Depends {
			if _, ok := idx.Satisfier(dep, cmp); !ok {
				problems = append(problems, Problem{Package: p.Desc.Name, Missing: dep})
			}
		}
	}
	return problems
}
