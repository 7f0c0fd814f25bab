package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/go-i2p/logger"
	"github.com/samber/oops"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Dawn-MC/ServerSync/lib/config"
	"github.com/Dawn-MC/ServerSync/lib/mcconfig"
	"github.com/Dawn-MC/ServerSync/lib/util"
	"github.com/Dawn-MC/ServerSync/lib/util/signals"
)

// settings are the resolved persistent flags.
type settings struct {
	baseDir string
	role    config.Role
	output  string
}

func loadSettings(v *viper.Viper) (settings, error) {
	role, err := config.ParseRole(v.GetString(flagRole))
	if err != nil {
		return settings{}, err
	}
	output := strings.ToLower(v.GetString(flagOutput))
	switch output {
	case outputTable, outputYAML:
	default:
		return settings{}, oops.With("output", output).Errorf("unsupported output format %q (want table or yaml)", output)
	}
	return settings{
		baseDir: util.ExpandHome(v.GetString(flagBaseDir)),
		role:    role,
		output:  output,
	}, nil
}

// openConfig loads the role's config and reports its diagnostics on stderr.
func openConfig(cmd *cobra.Command, s settings) (*config.SyncConfig, error) {
	cfg, err := config.Load(s.role, config.WithBaseDir(s.baseDir), config.WithFs(afero.NewOsFs()))
	if cfg != nil {
		printDiagnostics(cmd.ErrOrStderr(), cfg.Diagnostics())
	}
	return cfg, err
}

// openConfigReadOnly is openConfig for commands that never write the file. A
// file that cannot be parsed is reported and its defaults are used instead.
func openConfigReadOnly(cmd *cobra.Command, s settings) (*config.SyncConfig, error) {
	cfg, err := openConfig(cmd, s)
	if err != nil && cfg != nil {
		log.WithError(err).WithFields(logger.Fields{
			"at":   "openConfigReadOnly",
			"path": cfg.Path(),
		}).Warn("using defaults for unreadable config")
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s could not be loaded, showing defaults\n", cfg.Path())
		return cfg, nil
	}
	return cfg, err
}

func printDiagnostics(w io.Writer, diags []config.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintf(w, "warning: %s\n", d)
	}
}

func newConfigCmd(v *viper.Viper) *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Show, edit and watch the config file of a role",
	}
	c.AddCommand(newConfigShowCmd(v))
	c.AddCommand(newConfigGetCmd(v))
	c.AddCommand(newConfigSetCmd(v))
	c.AddCommand(newConfigInitCmd(v))
	c.AddCommand(newConfigWatchCmd(v))
	return c
}

func newConfigShowCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print every entry of the role's schema with its effective value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(v)
			if err != nil {
				return err
			}
			cfg, err := openConfigReadOnly(cmd, s)
			if err != nil {
				return err
			}
			if s.output == outputYAML {
				return renderYAML(cmd.OutOrStdout(), cfg)
			}
			renderTable(cmd.OutOrStdout(), cfg)
			return nil
		},
	}
}

func newConfigGetCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "get NAME",
		Short: "Print the effective value of one entry",
		Long: `Print the effective value of one entry. List entries print one item
per line. Missing or invalid entries print their default.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(v)
			if err != nil {
				return err
			}
			cfg, err := openConfigReadOnly(cmd, s)
			if err != nil {
				return err
			}
			val, err := cfg.Get(strings.ToUpper(args[0]))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if list, ok := val.(mcconfig.ListValue); ok {
				for _, item := range list {
					fmt.Fprintln(out, item)
				}
				return nil
			}
			fmt.Fprintln(out, val.String())
			return nil
		},
	}
}

func newConfigSetCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "set NAME VALUE...",
		Short: "Change one entry and rewrite the file",
		Long: `Change one entry and rewrite the file. Scalar entries take exactly
one value; list entries take any number of items, none to clear the list.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(v)
			if err != nil {
				return err
			}
			cfg, err := openConfig(cmd, s)
			if err != nil {
				return err
			}
			name := strings.ToUpper(args[0])
			val, err := parseArgs(cfg.Schema(), name, args[1:])
			if err != nil {
				return err
			}
			if err := cfg.Set(name, val); err != nil {
				return err
			}
			if err := cfg.Flush(); err != nil {
				return err
			}
			log.WithFields(logger.Fields{
				"at":    "config set",
				"entry": name,
				"path":  cfg.Path(),
			}).Debug("entry written")
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", name, val)
			return nil
		},
	}
}

// parseArgs turns command line values into a value of the entry's type.
func parseArgs(schema config.Schema, name string, args []string) (mcconfig.Value, error) {
	f, ok := schema.Field(name)
	if !ok {
		return nil, oops.With("entry", name).Wrapf(config.ErrUnknownEntry, "%s", name)
	}
	if f.Type.IsList() {
		return append(mcconfig.ListValue{}, args...), nil
	}
	if len(args) != 1 {
		return nil, oops.With("entry", name).Errorf("%s takes exactly one value, got %d", name, len(args))
	}
	val := mcconfig.ParseScalar(f.Type, args[0])
	if inv, ok := val.(mcconfig.InvalidValue); ok {
		return nil, oops.With("entry", name).Wrapf(inv.Err, "%s", name)
	}
	return val, nil
}

func newConfigInitCmd(v *viper.Viper) *cobra.Command {
	var force bool
	c := &cobra.Command{
		Use:   "init",
		Short: "Create the config file with defaults if it does not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(v)
			if err != nil {
				return err
			}
			if force {
				if err := removeConfig(s); err != nil {
					return err
				}
			}
			cfg, err := openConfig(cmd, s)
			if err != nil {
				return err
			}
			if cfg.Bootstrapped() {
				fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", cfg.Path())
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s already exists\n", cfg.Path())
			}
			return nil
		},
	}
	c.Flags().BoolVar(&force, "force", false, "replace an existing file with the defaults")
	return c
}

func removeConfig(s settings) error {
	fsys := afero.NewOsFs()
	path := configPath(s)
	if !util.FileExists(fsys, path) {
		return nil
	}
	if err := fsys.Remove(path); err != nil {
		return oops.With("path", path).Wrapf(err, "removing %s", path)
	}
	return nil
}

func configPath(s settings) string {
	return filepath.Join(s.baseDir, config.Dir, s.role.FileName())
}

func newConfigWatchCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Reload the config whenever it changes or on SIGHUP",
		Long: `Load the config and keep it loaded, reloading it when the file is
written and when the process receives SIGHUP. Each reload prints its
diagnostics. SIGINT or SIGTERM stops watching.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(v)
			if err != nil {
				return err
			}
			cfg, err := openConfigReadOnly(cmd, s)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			return watchConfig(ctx, cmd, cfg, signals.New(), cancel)
		},
	}
}

func watchConfig(ctx context.Context, cmd *cobra.Command, cfg *config.SyncConfig, reg *signals.Registry, cancel context.CancelFunc) error {
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	report := func(trigger string, err error) {
		if err != nil {
			fmt.Fprintf(errOut, "error: reload after %s: %v\n", trigger, err)
		} else {
			fmt.Fprintf(out, "reloaded %s (%s)\n", cfg.Path(), trigger)
		}
		printDiagnostics(errOut, cfg.Diagnostics())
	}

	reg.OnReload(func() { report("SIGHUP", cfg.Reload()) })
	reg.OnInterrupt(func() { cancel() })
	go reg.Handle(ctx)
	defer reg.Stop()

	fmt.Fprintf(out, "watching %s\n", cfg.Path())
	return cfg.Watch(ctx, func(err error) { report("file change", err) })
}
