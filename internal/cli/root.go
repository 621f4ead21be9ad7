package cli

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ralt/pacquery/internal/depend"
	"github.com/ralt/pacquery/internal/models"
)

const envPrefix = "PACQUERY"

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	v := viper.New()
	var configFile string

	rootCmd := &cobra.Command{
		Use:   "pacquery",
		Short: "Query pacman package databases",
		Long: `Pacquery reads the pacman local database and sync database archives
and answers questions about them without pacman or libalpm.

Database layout:
  <dbpath>/local/ALPM_DB_VERSION   must contain 9
  <dbpath>/local/<name>-<version>/ desc, files and optional install
  <dbpath>/sync/<repo>.db          tar archive of <name>-<version>/desc`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(v, configFile); err != nil {
				return err
			}

			// Setup logging
			if v.GetBool("verbose") {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.InfoLevel)
			}
			return nil
		},
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Config file path")
	flags.BoolP("verbose", "v", false, "Enable verbose logging")
	flags.String("dbpath", models.DefaultDBPath, "Pacman database root")
	flags.StringP("format", "f", models.FormatText, "Output format (text, yaml, desc)")
	flags.String("vercmp", "lexical", "Version comparison (lexical, alpm)")
	flags.StringSlice("repos", models.DefaultRepos, "Sync repositories in search order")
	for _, name := range []string{"verbose", "dbpath", "format", "vercmp", "repos"} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}

	// Add subcommands
	rootCmd.AddCommand(NewQueryCmd(v))
	rootCmd.AddCommand(NewSyncCmd(v))

	return rootCmd
}

func initConfig(v *viper.Viper, configFile string) error {
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return &models.DBError{
				Type: models.ErrInvalidConfig,
				Err:  fmt.Errorf("failed to read config file: %w", err),
			}
		}
		return nil
	}

	v.SetConfigName("pacquery")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/pacquery")
	if err := v.ReadInConfig(); err != nil {
		// The config file is optional
		logrus.Debugf("No config file loaded: %v", err)
	}
	return nil
}

// loadConfig reads the effective configuration and validates it
func loadConfig(v *viper.Viper) (*models.QueryConfig, error) {
	config := &models.QueryConfig{
		DBPath:         v.GetString("dbpath"),
		Repos:          splitList(v.GetStringSlice("repos")),
		Format:         v.GetString("format"),
		VersionCompare: v.GetString("vercmp"),
	}
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	logrus.Debugf("Configuration: %+v", *config)
	return config, nil
}

// splitList splits entries on commas and whitespace so that
// PACQUERY_REPOS="extra,core" reads like --repos extra,core
func splitList(items []string) []string {
	var out []string
	for _, item := range items {
		out = append(out, strings.FieldsFunc(item, func(r rune) bool {
			return r == ',' || unicode.IsSpace(r)
		})...)
	}
	return out
}

func validateConfig(config *models.QueryConfig) error {
	if config.DBPath == "" {
		return &models.DBError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("dbpath is required"),
		}
	}

	if !slices.Contains([]string{models.FormatText, models.FormatYAML, models.FormatDesc}, config.Format) {
		return &models.DBError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("unknown format %q (want text, yaml or desc)", config.Format),
		}
	}

	if _, err := depend.ComparatorByName(config.VersionCompare); err != nil {
		return err
	}
	return nil
}
