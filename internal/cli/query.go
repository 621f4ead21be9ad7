package cli

import (
	"fmt"
	"path"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ralt/pacquery/internal/db"
	"github.com/ralt/pacquery/internal/depend"
	"github.com/ralt/pacquery/internal/display"
	"github.com/ralt/pacquery/internal/models"
	"github.com/ralt/pacquery/internal/revdep"
)

// NewQueryCmd creates the query command, which reads the local database
func NewQueryCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "query",
		Aliases: []string{"Q"},
		Short:   "Query the local package database",
	}

	cmd.AddCommand(newQueryInfoCmd(v))
	cmd.AddCommand(newQueryListCmd(v))
	cmd.AddCommand(newQueryCheckCmd(v))
	cmd.AddCommand(newQueryOwnsCmd(v))

	return cmd
}

func newQueryInfoCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "info [name...]",
		Short: "Show information about installed packages",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, database, err := loadLocal(v)
			if err != nil {
				return err
			}

			matches, err := selectPackages(database, args)
			if err != nil {
				return err
			}
			return writeMatches(cmd.OutOrStdout(), config.Format, matches)
		},
	}
}

func newQueryListCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "list [name...]",
		Short: "List the files owned by installed packages",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, database, err := loadLocal(v)
			if err != nil {
				return err
			}

			matches, err := selectPackages(database, args)
			if err != nil {
				return err
			}

			if config.Format == models.FormatYAML {
				return writeMatches(cmd.OutOrStdout(), config.Format, matches)
			}
			for _, m := range matches {
				if err := display.WriteFiles(cmd.OutOrStdout(), m.pkg); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newQueryCheckCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report dependencies no installed package satisfies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, database, err := loadLocal(v)
			if err != nil {
				return err
			}
			cmp, err := depend.ComparatorByName(config.VersionCompare)
			if err != nil {
				return err
			}

			problems := revdep.Check(database.Packages, cmp)
			out := cmd.OutOrStdout()
			for _, p := range problems {
				fmt.Fprintf(out, "%s: requires %s\n", p.Package, p.Missing)
			}
			if len(problems) > 0 {
				return &models.DBError{
					Type: models.ErrNotFound,
					Err:  fmt.Errorf("%d unsatisfied dependencies", len(problems)),
				}
			}

			fmt.Fprintf(out, "No missing dependencies in %d packages\n", len(database.Packages))
			return nil
		},
	}
}

func newQueryOwnsCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "owns <path>",
		Short: "Find the installed packages owning a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, database, err := loadLocal(v)
			if err != nil {
				return err
			}

			target := strings.TrimPrefix(path.Clean("/"+args[0]), "/")
			found := false
			for _, pkg := range database.Packages {
				for _, f := range pkg.Files {
					if strings.TrimSuffix(f, "/") == target {
						fmt.Fprintf(cmd.OutOrStdout(), "/%s is owned by %s %s\n", f, pkg.Desc.Name, pkg.Desc.Version)
						found = true
						break
					}
				}
			}
			if !found {
				return &models.DBError{
					Type: models.ErrNotFound,
					Err:  fmt.Errorf("no package owns /%s", target),
				}
			}
			return nil
		},
	}
}

func loadLocal(v *viper.Viper) (*models.QueryConfig, *db.Database, error) {
	config, err := loadConfig(v)
	if err != nil {
		return nil, nil, err
	}

	logrus.Debugf("Reading local database under %s", config.DBPath)
	database, err := db.ReadLocal(config.DBPath)
	if err != nil {
		return nil, nil, err
	}
	if n := len(database.Skipped); n > 0 {
		logrus.Warnf("%d local packages could not be read", n)
	}
	return config, database, nil
}
