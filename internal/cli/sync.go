package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ralt/pacquery/internal/db"
	"github.com/ralt/pacquery/internal/display"
	"github.com/ralt/pacquery/internal/models"
	"github.com/ralt/pacquery/internal/revdep"
	"github.com/ralt/pacquery/internal/scanner"
)

// NewSyncCmd creates the sync command, which reads sync database archives
func NewSyncCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sync",
		Aliases: []string{"S"},
		Short:   "Query the sync package databases",
	}

	cmd.AddCommand(newSyncInfoCmd(v))
	cmd.AddCommand(newSyncListCmd(v))
	cmd.AddCommand(newSyncReposCmd(v))

	return cmd
}

func newSyncInfoCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "info [name...]",
		Short: "Show information about packages in the sync repositories",
		Long: `Shows packages from the configured repositories. A named package is
taken from the first repository, in configuration order, that has it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(v)
			if err != nil {
				return err
			}
			databases, err := loadSync(config.DBPath, config.Repos, true)
			if err != nil {
				return err
			}

			var matches []match
			if len(args) == 0 {
				for _, database := range databases {
					matches = append(matches, allMatches(database)...)
				}
			} else {
				indexes := make([]*revdep.Index, len(databases))
				for i, database := range databases {
					indexes[i] = revdep.NewIndex(database.Packages)
				}
				for _, name := range args {
					m, ok := findSync(databases, indexes, name)
					if !ok {
						return notFound(name, "the sync repositories")
					}
					matches = append(matches, m)
				}
			}
			return writeMatches(cmd.OutOrStdout(), config.Format, matches)
		},
	}
}

func newSyncListCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "list [repo...]",
		Short: "List the packages of sync repositories",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(v)
			if err != nil {
				return err
			}

			// Explicitly named repositories must exist
			repos, skipMissing := config.Repos, true
			if len(args) > 0 {
				repos, skipMissing = args, false
			}
			databases, err := loadSync(config.DBPath, repos, skipMissing)
			if err != nil {
				return err
			}

			var matches []match
			for _, database := range databases {
				matches = append(matches, allMatches(database)...)
			}
			if config.Format != models.FormatText {
				return writeMatches(cmd.OutOrStdout(), config.Format, matches)
			}
			for _, m := range matches {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", m.database.Name, m.pkg.Desc.Name, m.pkg.Desc.Version)
			}
			return nil
		},
	}
}

func newSyncReposCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "repos",
		Short: "List the sync databases present on disk",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(v)
			if err != nil {
				return err
			}

			dir := filepath.Join(config.DBPath, db.SyncDir)
			dbs, err := scanner.FindSyncDBs(cmd.Context(), dir)
			if err != nil {
				return &models.DBError{Type: models.ErrIO, Err: err}
			}

			for _, s := range dbs {
				size, label := display.HumanizeSize(s.Size, 0)
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s %-5s %.2f %s\n", s.Name, s.Compression, size, label)
			}
			return nil
		},
	}
}

// loadSync reads the sync databases of repos in order. With skipMissing,
// repositories without a database file on disk are left out.
func loadSync(dbPath string, repos []string, skipMissing bool) ([]*db.Database, error) {
	var databases []*db.Database
	for _, repo := range repos {
		database, err := db.ReadSyncRepo(dbPath, repo)
		if err != nil {
			if skipMissing && errors.Is(err, fs.ErrNotExist) {
				logrus.Debugf("No sync database for %s", repo)
				continue
			}
			return nil, err
		}
		if n := len(database.Skipped); n > 0 {
			logrus.Warnf("%d packages in %s could not be read", n, repo)
		}
		databases = append(databases, database)
	}
	return databases, nil
}

func findSync(databases []*db.Database, indexes []*revdep.Index, name string) (match, bool) {
	for i, database := range databases {
		if pkg, ok := indexes[i].Lookup(name); ok {
			return match{pkg: pkg, database: database}, true
		}
	}
	return match{}, false
}
