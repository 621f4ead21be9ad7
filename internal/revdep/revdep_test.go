package revdep

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ralt/pacquery/internal/depend"
	"github.com/ralt/pacquery/internal/models"
)

func pkg(name, version string, edit func(*models.Description)) models.Package {
	d := models.Description{Name: name, Version: version, Architecture: "x86_64"}
	if edit != nil {
		edit(&d)
	}
	return models.Package{Desc: d}
}

func deps(specs ...string) []models.Depend {
	out := make([]models.Depend, 0, len(specs))
	for _, s := range specs {
		out = append(out, depend.MustParse(s))
	}
	return out
}

func TestRequiredByAndOptionalFor(t *testing.T) {
	a := pkg("A", "1", nil)
	b := pkg("B", "1", func(d *models.Description) { d.Depends = deps("A") })
	c := pkg("C", "1", func(d *models.Description) {
		d.OptDepends = []models.OptDepend{{Depend: depend.MustParse("A"), Reason: "extras"}}
	})
	all := []models.Package{a, b, c}

	assert.Equal(t, []string{"B"}, Names(RequiredBy(&a.Desc, all)))
	assert.Equal(t, []string{"C"}, Names(OptionalFor(&a.Desc, all)))
	assert.Empty(t, RequiredBy(&b.Desc, all))
	assert.Empty(t, OptionalFor(&c.Desc, all))
}

func TestRequiredByThroughProvides(t *testing.T) {
	d := pkg("D", "2", func(d *models.Description) { d.Provides = deps("A-compat=2") })
	e := pkg("E", "1", func(d *models.Description) { d.Depends = deps("A-compat") })
	f := pkg("F", "1", func(d *models.Description) { d.Depends = deps("glibc", "A-compat>=1") })
	g := pkg("G", "1", func(d *models.Description) {
		d.OptDepends = []models.OptDepend{{Depend: depend.MustParse("A-compat")}}
	})
	all := []models.Package{d, e, f, g}

	assert.Equal(t, []string{"E", "F"}, Names(RequiredBy(&d.Desc, all)))
	assert.Equal(t, []string{"G"}, Names(OptionalFor(&d.Desc, all)))
}

func TestRequiredByIgnoresVersionConstraint(t *testing.T) {
	a := pkg("A", "1.0", nil)
	b := pkg("B", "1", func(d *models.Description) { d.Depends = deps("A>=5.0") })

	assert.Equal(t, []string{"B"}, Names(RequiredBy(&a.Desc, []models.Package{a, b})))
}

func TestRequiredByKeepsInputOrder(t *testing.T) {
	a := pkg("A", "1", nil)
	var all []models.Package
	for _, n := range []string{"z", "m", "b"} {
		all = append(all, pkg(n, "1", func(d *models.Description) { d.Depends = deps("A") }))
	}
	all = append(all, a)

	assert.Equal(t, []string{"z", "m", "b"}, Names(RequiredBy(&a.Desc, all)))
}

func TestRequiredByCountsEachCandidateOnce(t *testing.T) {
	a := pkg("A", "1", func(d *models.Description) { d.Provides = deps("alias") })
	b := pkg("B", "1", func(d *models.Description) { d.Depends = deps("A", "alias") })

	assert.Equal(t, []string{"B"}, Names(RequiredBy(&a.Desc, []models.Package{a, b})))
}

func TestIndex(t *testing.T) {
	all := []models.Package{
		pkg("bash", "5.2.026-2", func(d *models.Description) { d.Provides = deps("sh") }),
		pkg("openssl", "3.2.1-1", func(d *models.Description) { d.Provides = deps("libssl.so=3-64") }),
	}
	idx := NewIndex(all)

	p, ok := idx.Lookup("bash")
	require.True(t, ok)
	assert.Equal(t, "bash", p.Desc.Name)

	_, ok = idx.Lookup("sh")
	assert.False(t, ok)

	assert.True(t, idx.Installed("sh"))
	assert.True(t, idx.Installed("openssl"))
	assert.False(t, idx.Installed("zsh"))

	p, ok = idx.Satisfier(depend.MustParse("libssl.so=3-64"), depend.Lexical)
	require.True(t, ok)
	assert.Equal(t, "openssl", p.Desc.Name)

	_, ok = idx.Satisfier(depend.MustParse("sh>=1"), depend.Lexical)
	assert.False(t, ok)
}

func TestCheck(t *testing.T) {
	all := []models.Package{
		pkg("glibc", "2.39-1", nil),
		pkg("bash", "5.2-2", func(d *models.Description) {
			d.Depends = deps("glibc>=2.38", "readline>=8")
			d.Provides = deps("sh")
		}),
		pkg("python", "3.12.2-1", func(d *models.Description) { d.Depends = deps("glibc>=2.40", "sh") }),
	}

	got := Check(all, depend.Lexical)
	want := []Problem{
		{Package: "bash", Missing: depend.MustParse("readline>=8")},
		{Package: "python", Missing: depend.MustParse("glibc>=2.40")},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Check() mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckComparatorMatters(t *testing.T) {
	all := []models.Package{
		pkg("libfoo", "1.10", nil),
		pkg("app", "1", func(d *models.Description) { d.Depends = deps("libfoo>=1.9") }),
	}

	assert.Len(t, Check(all, depend.Lexical), 1)
	assert.Empty(t, Check(all, depend.AlpmCompare))
}
