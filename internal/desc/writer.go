package desc

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/ralt/pacquery/internal/models"
)

// Format renders a description in the desc file format. Sections are
// written in the order repo-add uses; empty optional sections are omitted.
func Format(d *models.Description) []byte {
	var buf bytes.Buffer

	writeSection := func(name string, values ...string) {
		if len(values) == 0 {
			return
		}
		fmt.Fprintf(&buf, "%%%s%%\n", name)
		for _, v := range values {
			buf.WriteString(v)
			buf.WriteByte('\n')
		}
		buf.WriteByte('\n')
	}
	writeField := func(name, value string) {
		if value != "" {
			writeSection(name, value)
		}
	}
	writeInt := func(name string, value int64) {
		if value != 0 {
			writeSection(name, strconv.FormatInt(value, 10))
		}
	}

	writeField("FILENAME", d.Filename)
	writeField("NAME", d.Name)
	writeField("BASE", d.Base)
	writeField("VERSION", d.Version)
	writeField("DESC", d.Description)
	writeSection("GROUPS", d.Groups...)
	writeInt("CSIZE", d.CompressedSize)
	writeInt("ISIZE", d.Size)
	writeField("MD5SUM", d.MD5Sum)
	writeField("SHA256SUM", d.SHA256Sum)
	writeField("PGPSIG", d.PGPSignature)
	writeField("URL", d.URL)
	writeSection("LICENSE", d.Licenses...)
	writeField("ARCH", d.Architecture)
	writeInt("BUILDDATE", d.BuildDate)
	writeInt("INSTALLDATE", d.InstallDate)
	writeField("PACKAGER", d.Packager)
	if d.InstallReason == models.ReasonDepend {
		writeSection("REASON", "1")
	}
	writeSection("REPLACES", d.Replaces...)
	writeSection("CONFLICTS", d.Conflicts...)
	writeSection("PROVIDES", dependStrings(d.Provides)...)
	writeSection("DEPENDS", dependStrings(d.Depends)...)

	opts := make([]string, 0, len(d.OptDepends))
	for _, o := range d.OptDepends {
		opts = append(opts, o.String())
	}
	writeSection("OPTDEPENDS", opts...)
	writeSection("XDATA", d.XData...)

	// Only the declared mechanism is recorded; sums and signatures
	// carry their own sections above.
	for _, v := range d.Validations {
		if v == models.ValidationPGP && d.PGPSignature == "" {
			writeSection("VALIDATION", "pgp")
			break
		}
	}

	return buf.Bytes()
}

func dependStrings(deps []models.Depend) []string {
	out := make([]string, 0, len(deps))
	for _, d := range deps {
		out = append(out, d.String())
	}
	return out
}
