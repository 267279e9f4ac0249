package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/mongo-toolkit/internal/config"
	"github.com/thoreinstein/mongo-toolkit/internal/editor"
	"github.com/thoreinstein/mongo-toolkit/internal/errors"
	"github.com/thoreinstein/mongo-toolkit/internal/paths"
	"github.com/thoreinstein/mongo-toolkit/pkg/fileutil"
)

var configInitForce bool

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing config file")
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Print the effective configuration as YAML: built-in defaults, then the
config file, then ` + config.EnvPrefix + `_* environment variables. The password
in the connection string is masked.`,
	Example: `  mongo-toolkit config
  ` + config.EnvPrefix + `_URI=mongodb://localhost mongo-toolkit config

See Also: mongo-toolkit config path, mongo-toolkit config init, mongo-toolkit config edit`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Long: `Print the config file that was read, or the default location when no
file exists yet.`,
	Args: cobra.NoArgs,
	RunE: runConfigPath,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long: `Write the built-in defaults to the config file location. An existing file
is left alone unless --force is given.`,
	Example: `  mongo-toolkit config init
  mongo-toolkit --config ./ci.yaml config init --force`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the config file in your editor",
	Long: `Open the config file in $EDITOR (falling back to $VISUAL, nano, then vi).
A default file is written first when none exists. The edited file is
validated on exit.`,
	Example: `  mongo-toolkit config edit
  EDITOR="code --wait" mongo-toolkit config edit`,
	Args: cobra.NoArgs,
	RunE: runConfigEdit,
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg := loadedConfig
	if cfg == nil {
		cfg = config.Default()
	}

	data, err := yaml.Marshal(cfg.Masked())
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	fmt.Fprintln(cmd.OutOrStdout(), configTarget())
	return nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path := configTarget()

	if _, err := os.Stat(path); err == nil && !configInitForce {
		return errors.NewUserError(errors.Newf("config file already exists at %s", path), "Use --force to overwrite it")
	}

	if err := paths.EnsureDir(filepath.Dir(path), paths.DefaultDirPerm); err != nil {
		return errors.Wrap(err, "creating config directory")
	}
	if err := fileutil.AtomicWriteYAML(path, config.Default(), 0o600); err != nil {
		return errors.Wrap(err, "writing config file")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func runConfigEdit(cmd *cobra.Command, _ []string) error {
	path := configTarget()

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := paths.EnsureDir(filepath.Dir(path), paths.DefaultDirPerm); err != nil {
			return errors.Wrap(err, "creating config directory")
		}
		if err := fileutil.AtomicWriteYAML(path, config.Default(), 0o600); err != nil {
			return errors.Wrap(err, "writing config file")
		}
	}

	streams := editor.Streams{In: cmd.InOrStdin(), Out: cmd.OutOrStdout(), Err: cmd.ErrOrStderr()}
	if err := editor.Open(cmd.Context(), path, streams); err != nil {
		return errors.NewSystemError(err, "Set $EDITOR to an installed editor")
	}

	cfg, err := config.Load(path)
	if err != nil {
		return errors.NewConfigError(errors.Wrap(err, "reloading edited config"))
	}
	if errs := config.Validate(cfg); len(errs) > 0 {
		return invalidConfig(errs)
	}
	return nil
}

// configTarget is the file in use, else --config, else the XDG default.
func configTarget() string {
	if used := config.Used(); used != "" {
		return used
	}
	if configFile != "" {
		if p, err := paths.ExpandHome(configFile); err == nil {
			return p
		}
		return configFile
	}
	return paths.ConfigFile()
}
