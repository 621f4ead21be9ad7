// Package desc reads and writes pacman package description records, the
// %SECTION% formatted "desc" files found in local and sync databases.
package desc

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/ralt/pacquery/internal/depend"
	"github.com/ralt/pacquery/internal/models"
)

// maxLineSize bounds a single line; %PGPSIG% values are long base64 blobs
const maxLineSize = 1 << 20

// sectionHandler consumes one data line of a section
type sectionHandler func(b *builder, line string) error

// sections maps a header name to the field it fills. Headers not listed
// here are ignored.
var sections = map[string]sectionHandler{
	"NAME":    func(b *builder, line string) error { b.d.Name, b.hasName = line, true; return nil },
	"VERSION": func(b *builder, line string) error { b.d.Version, b.hasVersion = line, true; return nil },
	"ARCH":    func(b *builder, line string) error { b.d.Architecture, b.hasArch = line, true; return nil },
	"DESC":    func(b *builder, line string) error { b.d.Description = line; return nil },
	"URL":     func(b *builder, line string) error { b.d.URL = line; return nil },
	"LICENSE": func(b *builder, line string) error { b.d.Licenses = append(b.d.Licenses, line); return nil },
	"DEPENDS": func(b *builder, line string) error {
		dep, err := depend.Parse(line)
		if err != nil {
			return err
		}
		b.d.Depends = append(b.d.Depends, dep)
		return nil
	},
	"OPTDEPENDS": func(b *builder, line string) error {
		opt, err := depend.ParseOptional(line)
		if err != nil {
			return err
		}
		b.d.OptDepends = append(b.d.OptDepends, opt)
		return nil
	},
	"PROVIDES": func(b *builder, line string) error {
		dep, err := depend.Parse(line)
		if err != nil {
			return err
		}
		b.d.Provides = append(b.d.Provides, dep)
		return nil
	},
	"CONFLICTS": func(b *builder, line string) error { b.d.Conflicts = append(b.d.Conflicts, line); return nil },
	"REPLACES":  func(b *builder, line string) error { b.d.Replaces = append(b.d.Replaces, line); return nil },
	"GROUPS":    func(b *builder, line string) error { b.d.Groups = append(b.d.Groups, line); return nil },
	"SIZE":      intField("SIZE", func(d *models.Description) *int64 { return &d.Size }),
	"ISIZE":     intField("ISIZE", func(d *models.Description) *int64 { return &d.Size }),
	"CSIZE":     intField("CSIZE", func(d *models.Description) *int64 { return &d.CompressedSize }),
	"PACKAGER":  func(b *builder, line string) error { b.d.Packager = line; return nil },
	"BUILDDATE": intField("BUILDDATE", func(d *models.Description) *int64 { return &d.BuildDate }),
	"INSTALLDATE": intField("INSTALLDATE", func(d *models.Description) *int64 {
		return &d.InstallDate
	}),
	"REASON": func(b *builder, line string) error {
		if line == "0" {
			b.d.InstallReason = models.ReasonExplicit
		} else {
			b.d.InstallReason = models.ReasonDepend
		}
		return nil
	},
	"VALIDATION": func(b *builder, line string) error {
		if line == "pgp" {
			b.d.Validations = append(b.d.Validations, models.ValidationPGP)
		}
		return nil
	},
	"SHA256SUM": func(b *builder, line string) error {
		b.d.SHA256Sum = line
		b.d.Validations = append(b.d.Validations, models.ValidationSHA256)
		return nil
	},
	"MD5SUM": func(b *builder, line string) error {
		b.d.MD5Sum = line
		b.d.Validations = append(b.d.Validations, models.ValidationMD5)
		return nil
	},
	"PGPSIG": func(b *builder, line string) error {
		b.d.PGPSignature = line
		b.d.Validations = append(b.d.Validations, models.ValidationPGP)
		return nil
	},
	"FILENAME": func(b *builder, line string) error { b.d.Filename = line; return nil },
	"BASE":     func(b *builder, line string) error { b.d.Base = line; return nil },
	"XDATA":    func(b *builder, line string) error { b.d.XData = append(b.d.XData, line); return nil },
}

func intField(section string, field func(*models.Description) *int64) sectionHandler {
	return func(b *builder, line string) error {
		v, err := strconv.ParseInt(line, 10, 64)
		if err == nil && v < 0 {
			err = errors.New("negative value")
		}
		if err != nil {
			return &models.DBError{
				Type: models.ErrMalformedField,
				Err:  &models.FieldError{Section: section, Value: line, Err: err},
			}
		}
		*field(&b.d) = v
		return nil
	}
}

// builder accumulates a record while parsing
type builder struct {
	d          models.Description
	hasName    bool
	hasVersion bool
	hasArch    bool
}

// state is the parser state: either outside any section or inside the
// section named by the current header.
type state struct {
	inSection bool
	section   string
}

// Parse parses the contents of a desc file. installScript is stored as is;
// the caller derives it from the presence of an install file.
//
// Mandatory sections are NAME, VERSION and ARCH. Malformed records are
// reported as *models.DBError values so batch loaders can skip them.
func Parse(data []byte, installScript bool) (*models.Description, error) {
	b := &builder{}
	st := state{}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		line := scanner.Text()

		// Empty line closes the section
		if line == "" {
			st = state{}
			continue
		}

		if !st.inSection {
			st = state{inSection: true, section: headerName(line)}
			continue
		}

		handler, ok := sections[st.section]
		if !ok {
			continue
		}
		if err := handler(b, line); err != nil {
			return nil, withPackage(err, b.d.Name)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, &models.DBError{Type: models.ErrIO, Package: b.d.Name, Err: err}
	}

	for _, m := range []struct {
		field string
		set   bool
	}{
		{"NAME", b.hasName},
		{"VERSION", b.hasVersion},
		{"ARCH", b.hasArch},
	} {
		if !m.set {
			return nil, &models.DBError{
				Type:    models.ErrMissingField,
				Package: b.d.Name,
				Err:     &models.MissingFieldError{Field: m.field},
			}
		}
	}

	b.d.InstallScript = installScript
	return &b.d, nil
}

// headerName strips the delimiters from a %HEADER% line. Anything else
// yields a name that matches no section.
func headerName(line string) string {
	if len(line) < 2 {
		return ""
	}
	return line[1 : len(line)-1]
}

func withPackage(err error, name string) error {
	var dbErr *models.DBError
	if errors.As(err, &dbErr) {
		if dbErr.Package == "" && name != "" {
			return &models.DBError{Type: dbErr.Type, Package: name, Err: dbErr.Err}
		}
		return err
	}
	return &models.DBError{Type: models.ErrMalformedField, Package: name, Err: fmt.Errorf("parse: %w", err)}
}
