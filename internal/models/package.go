package models

// CmpOp is the comparison operator of a versioned dependency
type CmpOp int

const (
	CmpLt CmpOp = iota
	CmpLtEq
	CmpGt
	CmpGtEq
	CmpEq
)

// String returns the operator as it appears in a dependency specifier
func (op CmpOp) String() string {
	switch op {
	case CmpLt:
		return "<"
	case CmpLtEq:
		return "<="
	case CmpGt:
		return ">"
	case CmpGtEq:
		return ">="
	case CmpEq:
		return "="
	default:
		return "?"
	}
}

// MarshalText renders the operator for YAML output
func (op CmpOp) MarshalText() ([]byte, error) {
	return []byte(op.String()), nil
}

// VersionReq is the version constraint part of a dependency
type VersionReq struct {
	Op      CmpOp  `yaml:"op"`
	Version string `yaml:"version"`
}

// Depend is a dependency specifier such as "glibc>=2.38".
// It is also the shape of a %PROVIDES% entry.
type Depend struct {
	Name string      `yaml:"name"`
	Req  *VersionReq `yaml:"req,omitempty"`
}

// String renders the specifier in its textual form
func (d Depend) String() string {
	if d.Req == nil {
		return d.Name
	}
	return d.Name + d.Req.Op.String() + d.Req.Version
}

// OptDepend is an optional dependency with an optional reason
type OptDepend struct {
	Depend Depend `yaml:"depend"`
	Reason string `yaml:"reason,omitempty"`
}

// String renders the entry as "spec: reason"
func (o OptDepend) String() string {
	if o.Reason == "" {
		return o.Depend.String()
	}
	return o.Depend.String() + ": " + o.Reason
}

// InstallReason records why a package was installed
type InstallReason int

const (
	ReasonExplicit InstallReason = iota
	ReasonDepend
)

// String returns the pacman wording for the reason
func (r InstallReason) String() string {
	if r == ReasonExplicit {
		return "Explicitly installed"
	}
	return "Installed as a dependency for another package"
}

// MarshalText renders the reason for YAML output
func (r InstallReason) MarshalText() ([]byte, error) {
	if r == ReasonExplicit {
		return []byte("explicit"), nil
	}
	return []byte("depend"), nil
}

// Validation is a validation mechanism a package declares
type Validation int

const (
	ValidationPGP Validation = iota
	ValidationSHA256
	ValidationMD5
)

// String returns the display name of the mechanism
func (v Validation) String() string {
	switch v {
	case ValidationPGP:
		return "Signature"
	case ValidationSHA256:
		return "SHA-256 Sum"
	case ValidationMD5:
		return "MD5 Sum"
	default:
		return "Unknown"
	}
}

// MarshalText renders the mechanism for YAML output
func (v Validation) MarshalText() ([]byte, error) {
	switch v {
	case ValidationPGP:
		return []byte("pgp"), nil
	case ValidationSHA256:
		return []byte("sha256"), nil
	case ValidationMD5:
		return []byte("md5"), nil
	default:
		return []byte("unknown"), nil
	}
}

// Description is a parsed package description record
type Description struct {
	// Mandatory
	Name         string `yaml:"name"`
	Version      string `yaml:"version"`
	Architecture string `yaml:"arch"`

	Description string   `yaml:"desc,omitempty"`
	URL         string   `yaml:"url,omitempty"`
	Licenses    []string `yaml:"licenses,omitempty"`
	Groups      []string `yaml:"groups,omitempty"`

	// Relations
	Depends    []Depend    `yaml:"depends,omitempty"`
	OptDepends []OptDepend `yaml:"optdepends,omitempty"`
	Provides   []Depend    `yaml:"provides,omitempty"`
	Conflicts  []string    `yaml:"conflicts,omitempty"`
	Replaces   []string    `yaml:"replaces,omitempty"`

	// Sizes in bytes
	Size           int64 `yaml:"size"`
	CompressedSize int64 `yaml:"csize,omitempty"`

	Packager  string `yaml:"packager,omitempty"`
	BuildDate int64  `yaml:"builddate"`
	// InstallDate is only meaningful for locally installed records
	InstallDate   int64         `yaml:"installdate,omitempty"`
	InstallReason InstallReason `yaml:"reason"`
	InstallScript bool          `yaml:"install_script"`
	Validations   []Validation  `yaml:"validation,omitempty"`

	// Sync database extras
	Filename     string `yaml:"filename,omitempty"`
	Base         string `yaml:"base,omitempty"`
	MD5Sum       string `yaml:"md5sum,omitempty"`
	SHA256Sum    string `yaml:"sha256sum,omitempty"`
	PGPSignature string `yaml:"-"`

	// XData holds the raw "key=value" lines of %XDATA%
	XData []string `yaml:"xdata,omitempty"`
}

// Self returns the package as a provision of its own name at its version
func (d *Description) Self() Depend {
	return Depend{Name: d.Name, Req: &VersionReq{Op: CmpEq, Version: d.Version}}
}

// Package is a description plus the files it owns.
// Files is only populated for locally installed packages.
type Package struct {
	Desc  Description `yaml:",inline"`
	Files []string    `yaml:"files,omitempty"`
}
