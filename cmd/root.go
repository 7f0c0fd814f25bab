package cmd

import (
	"errors"
	"os"
	"strings"

	"github.com/go-i2p/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Dawn-MC/ServerSync/lib/config"
	"github.com/Dawn-MC/ServerSync/lib/mcconfig"
)

var log = logger.GetGoI2PLogger()

// Exit codes for CLI commands.
const (
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeInvalidConfig indicates the config file exists but could not be parsed.
	ExitCodeInvalidConfig = 2
)

// EnvPrefix prefixes the environment variables that stand in for the
// persistent flags, e.g. SERVERSYNC_BASE_DIR.
const EnvPrefix = "SERVERSYNC"

const (
	flagBaseDir = "base-dir"
	flagRole    = "role"
	flagOutput  = "output"
)

// version is injected at build time with -ldflags "-X .../cmd.version=...".
var version = "dev"

// SetVersion overrides the version reported by the CLI.
func SetVersion(v string) {
	version = v
}

// NewRootCmd builds the serversync command tree. Each call returns an
// independent tree with its own flag and environment binding.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "serversync",
		Short: "Inspect and edit ServerSync configuration files",
		Long: `serversync manages the serversync-server.cfg and serversync-client.cfg
files kept under <base-dir>/config/serversync. Missing files are created
with defaults; existing files are read, validated and rewritten with
their comments intact.`,
		SilenceUsage: true,
		Version:      version,
	}
	root.SetVersionTemplate(`{{printf "serversync version %s\n" .Version}}`)

	pf := root.PersistentFlags()
	pf.String(flagBaseDir, ".", "directory holding config/serversync (env "+EnvPrefix+"_BASE_DIR)")
	pf.String(flagRole, config.RoleServer.String(), "config role: server or client (env "+EnvPrefix+"_ROLE)")
	pf.StringP(flagOutput, "o", "table", "output format for show: table or yaml (env "+EnvPrefix+"_OUTPUT)")
	if err := v.BindPFlags(pf); err != nil {
		log.WithError(err).Error("binding persistent flags")
	}

	root.AddCommand(newConfigCmd(v))
	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs the CLI and exits the process on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(getExitCode(err))
	}
}

func getExitCode(err error) int {
	if err == nil {
		return ExitCodeSuccess
	}
	var perr *mcconfig.ParseError
	if errors.As(err, &perr) || errors.Is(err, config.ErrNotLoaded) {
		return ExitCodeInvalidConfig
	}
	return ExitCodeError
}
