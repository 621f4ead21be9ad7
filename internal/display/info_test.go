package display

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ralt/pacquery/internal/depend"
	"github.com/ralt/pacquery/internal/models"
)

func infoFixture() []models.Package {
	return []models.Package{
		{Desc: models.Description{
			Name:         "A",
			Version:      "1.0-1",
			Architecture: "x86_64",
			Description:  "Library A",
			Licenses:     []string{"MIT", "BSD"},
			Size:         4 * 1024 * 1024,
			BuildDate:    0,
			Validations:  []models.Validation{models.ValidationSHA256, models.ValidationPGP},
			OptDepends: []models.OptDepend{
				{Depend: depend.MustParse("C"), Reason: "extra feature"},
				{Depend: depend.MustParse("missing")},
			},
		}},
		{Desc: models.Description{
			Name:          "B",
			Version:       "2.0-1",
			Architecture:  "any",
			Depends:       []models.Depend{depend.MustParse("A>=1.0")},
			InstallReason: models.ReasonDepend,
		}},
		{Desc: models.Description{
			Name:         "C",
			Version:      "3.0-1",
			Architecture: "any",
			OptDepends:   []models.OptDepend{{Depend: depend.MustParse("A"), Reason: "speed"}},
		}},
	}
}

func TestWriteInfoLocal(t *testing.T) {
	pkgs := infoFixture()

	var buf bytes.Buffer
	require.NoError(t, WriteInfo(&buf, &pkgs[0].Desc, pkgs, InfoOptions{Location: time.UTC}))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "Name            : A\n"), out)
	assert.NotContains(t, out, "Repository")
	assert.NotContains(t, out, "Download Size")
	assert.Contains(t, out, "Licenses        : MIT  BSD\n")
	assert.Contains(t, out, "Groups          : None\n")
	assert.Contains(t, out, "Depends On      : None\n")
	assert.Contains(t, out, "Required By     : B\n")
	assert.Contains(t, out, "Optional For    : C\n")
	assert.Contains(t, out, "Optional Deps   : C: extra feature [installed]\n"+strings.Repeat(" ", 18)+"missing\n")
	assert.Contains(t, out, "Installed Size  : 4.00 MiB\n")
	assert.Contains(t, out, "Build Date      : Thu 01 Jan 1970 12:00:00 AM UTC\n")
	assert.Contains(t, out, "Install Reason  : Explicitly installed\n")
	assert.Contains(t, out, "Install Script  : No\n")
	assert.Contains(t, out, "Validated By    : SHA-256 Sum  Signature\n")
	assert.NotContains(t, out, "Signed By")
}

func TestWriteInfoSync(t *testing.T) {
	pkgs := infoFixture()
	d := pkgs[1].Desc
	d.CompressedSize = 3 * 1024
	d.Size = 2 * 1024 * 1024

	var buf bytes.Buffer
	require.NoError(t, WriteInfo(&buf, &d, pkgs, InfoOptions{Repo: "extra", Location: time.UTC}))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "Repository      : extra\nName            : B\n"), out)
	assert.Contains(t, out, "Depends On      : A>=1.0\n")
	assert.Contains(t, out, "Download Size   : 3.00 KiB\n")
	assert.Contains(t, out, "Installed Size  : 2048.00 KiB\n")
	assert.NotContains(t, out, "Required By")
	assert.NotContains(t, out, "Install Reason")
}

func TestWriteInfoOptionalNotMarkedInSync(t *testing.T) {
	pkgs := infoFixture()

	var buf bytes.Buffer
	require.NoError(t, WriteInfo(&buf, &pkgs[0].Desc, pkgs, InfoOptions{Repo: "core", Location: time.UTC}))
	assert.NotContains(t, buf.String(), "[installed]")
}

func TestWriteInfoUnreadableSignature(t *testing.T) {
	d := models.Description{Name: "x", Version: "1", Architecture: "any", PGPSignature: "@@@"}

	var buf bytes.Buffer
	require.NoError(t, WriteInfo(&buf, &d, nil, InfoOptions{Repo: "core", Location: time.UTC}))
	assert.Contains(t, buf.String(), "Signed By       : Unreadable signature\n")
}

func TestWriteInfoSignedBy(t *testing.T) {
	entity, err := openpgp.NewEntity("Test Packager", "", "packager@example.com", nil)
	require.NoError(t, err)
	var sig bytes.Buffer
	require.NoError(t, openpgp.DetachSign(&sig, entity, strings.NewReader("pkg"), nil))

	d := models.Description{
		Name:         "x",
		Version:      "1",
		Architecture: "any",
		PGPSignature: base64.StdEncoding.EncodeToString(sig.Bytes()),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteInfo(&buf, &d, nil, InfoOptions{Repo: "core", Location: time.UTC}))
	want := fmt.Sprintf("Signed By       : RSA key %s (fingerprint %X)\n",
		entity.PrimaryKey.KeyIdString(), entity.PrimaryKey.Fingerprint)
	assert.Contains(t, buf.String(), want)
}

func TestWriteFiles(t *testing.T) {
	pkg := &models.Package{
		Desc:  models.Description{Name: "bash"},
		Files: []string{"usr/bin/", "usr/bin/bash"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteFiles(&buf, pkg))
	assert.Equal(t, "bash /usr/bin/\nbash /usr/bin/bash\n", buf.String())
}

func TestHumanizeSize(t *testing.T) {
	tests := []struct {
		bytes  int64
		target byte
		value  float64
		label  string
	}{
		{0, 0, 0, "B"},
		{2047, 0, 2047, "B"},
		{2048, 0, 2, "KiB"},
		{4 * 1024 * 1024, 0, 4, "MiB"},
		{-4096, 0, -4, "KiB"},
		{4 * 1024 * 1024, 'K', 4096, "KiB"},
		{512, 'M', 512.0 / 1024 / 1024, "MiB"},
	}

	for _, tt := range tests {
		value, label := HumanizeSize(tt.bytes, tt.target)
		assert.InDelta(t, tt.value, value, 1e-9, "%d", tt.bytes)
		assert.Equal(t, tt.label, label, "%d", tt.bytes)
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "Sat 02 Mar 2024 01:30:00 PM UTC", FormatDate(1709386200, time.UTC))
}
