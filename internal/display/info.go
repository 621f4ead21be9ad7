// Package display renders package records for the query commands.
package display

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ralt/pacquery/internal/models"
	"github.com/ralt/pacquery/internal/pgpsig"
	"github.com/ralt/pacquery/internal/revdep"
)

// dateLayout matches pacman's "%a %d %b %Y %I:%M:%S %p %Z"
const dateLayout = "Mon 02 Jan 2006 03:04:05 PM MST"

// optIndent aligns continuation lines of Optional Deps with the values
const optIndent = 18

// InfoOptions controls WriteInfo
type InfoOptions struct {
	// Repo is the sync repository name; empty for the local database
	Repo string
	// Location is used for dates; nil means time.Local
	Location *time.Location
}

func (o InfoOptions) local() bool {
	return o.Repo == ""
}

// WriteInfo writes a pacman -Qi / -Si style block for d. pkgs is the
// collection d was loaded from, used for reverse dependencies and
// [installed] markers.
func WriteInfo(w io.Writer, d *models.Description, pkgs []models.Package, opts InfoOptions) error {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	idx := revdep.NewIndex(pkgs)

	var b strings.Builder
	field := func(label, value string) {
		fmt.Fprintf(&b, "%-16s: %s\n", label, value)
	}

	if !opts.local() {
		field("Repository", opts.Repo)
	}
	field("Name", d.Name)
	field("Version", d.Version)
	if d.Description != "" {
		field("Description", d.Description)
	}
	field("Architecture", d.Architecture)
	if d.URL != "" {
		field("URL", d.URL)
	}
	field("Licenses", joinList(d.Licenses))
	field("Groups", joinList(d.Groups))
	field("Provides", joinDepends(d.Provides))
	field("Depends On", joinDepends(d.Depends))
	field("Optional Deps", optDepends(d.OptDepends, idx, opts.local()))
	if opts.local() {
		field("Required By", joinList(revdep.Names(revdep.RequiredBy(d, pkgs))))
		field("Optional For", joinList(revdep.Names(revdep.OptionalFor(d, pkgs))))
	}
	field("Conflicts With", joinList(d.Conflicts))
	field("Replaces", joinList(d.Replaces))

	var unit byte
	if !opts.local() {
		size, label := HumanizeSize(d.CompressedSize, 0)
		unit = label[0]
		field("Download Size", fmt.Sprintf("%.2f %s", size, label))
	}
	size, label := HumanizeSize(d.Size, unit)
	field("Installed Size", fmt.Sprintf("%.2f %s", size, label))
	if d.Packager != "" {
		field("Packager", d.Packager)
	}
	field("Build Date", FormatDate(d.BuildDate, loc))
	if opts.local() {
		field("Install Date", FormatDate(d.InstallDate, loc))
		field("Install Reason", d.InstallReason.String())
		field("Install Script", yesNo(d.InstallScript))
	}
	field("Validated By", joinValidations(d.Validations))
	if d.PGPSignature != "" {
		field("Signed By", signedBy(d))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteFiles writes "<name> /<path>" lines for each owned file
func WriteFiles(w io.Writer, pkg *models.Package) error {
	for _, f := range pkg.Files {
		if _, err := fmt.Fprintf(w, "%s /%s\n", pkg.Desc.Name, f); err != nil {
			return err
		}
	}
	return nil
}

// FormatDate renders a unix timestamp the way pacman does
func FormatDate(ts int64, loc *time.Location) string {
	return time.Unix(ts, 0).In(loc).Format(dateLayout)
}

var sizeLabels = []string{"B", "KiB", "MiB", "GiB", "TiB", "PiB", "EiB", "ZiB", "YiB"}

// HumanizeSize scales bytes to a binary unit. With target 0 the first
// unit keeping the value within ±2048 is used; otherwise scaling stops at
// the unit whose label starts with target.
func HumanizeSize(bytes int64, target byte) (float64, string) {
	val := float64(bytes)
	label := sizeLabels[0]
	for _, l := range sizeLabels {
		label = l
		if l[0] == target || (target == 0 && val > -2048 && val < 2048) {
			break
		}
		val /= 1024
	}
	return val, label
}

func joinList(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	return strings.Join(items, "  ")
}

func joinDepends(deps []models.Depend) string {
	items := make([]string, 0, len(deps))
	for _, d := range deps {
		items = append(items, d.String())
	}
	return joinList(items)
}

func joinValidations(vs []models.Validation) string {
	items := make([]string, 0, len(vs))
	for _, v := range vs {
		items = append(items, v.String())
	}
	return joinList(items)
}

func optDepends(opts []models.OptDepend, idx *revdep.Index, local bool) string {
	if len(opts) == 0 {
		return "None"
	}
	lines := make([]string, 0, len(opts))
	for _, o := range opts {
		line := o.String()
		if local && idx.Installed(o.Depend.Name) {
			line += " [installed]"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"+strings.Repeat(" ", optIndent))
}

func signedBy(d *models.Description) string {
	info, err := pgpsig.InspectDescription(d)
	if err != nil {
		return "Unreadable signature"
	}
	signer := fmt.Sprintf("%s key %s", info.AlgorithmName(), info.KeyIDString())
	if fp := info.FingerprintString(); fp != "" {
		signer += " (fingerprint " + fp + ")"
	}
	return signer
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
