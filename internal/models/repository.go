package models

// Well-known locations and defaults
const (
	DefaultDBPath = "/var/lib/pacman"

	// SupportedDBVersion is the only accepted ALPM_DB_VERSION value
	SupportedDBVersion = "9"
)

// DefaultRepos is the sync repository search order
var DefaultRepos = []string{
	"core-testing",
	"core",
	"extra-testing",
	"extra",
	"multilib-testing",
	"multilib",
}

// Output formats
const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatDesc = "desc"
)

// QueryConfig contains configuration for database queries
type QueryConfig struct {
	// DBPath is the pacman database root holding local/ and sync/
	DBPath string
	// Repos lists sync repositories in search order
	Repos []string

	// Format is one of text, yaml or desc
	Format string
	// VersionCompare selects the comparator: lexical or alpm
	VersionCompare string
}
