package display

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/ralt/pacquery/internal/desc"
	"github.com/ralt/pacquery/internal/models"
)

// WriteYAML writes pkgs as a YAML sequence
func WriteYAML(w io.Writer, pkgs []models.Package) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(pkgs); err != nil {
		return err
	}
	return enc.Close()
}

// WriteDesc writes d in the desc file format
func WriteDesc(w io.Writer, d *models.Description) error {
	_, err := w.Write(desc.Format(d))
	return err
}
