package cli

import (
	stdcontext "context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/deskshell/internal/config"
)

// NewRootCmd constructs the deskshell command tree.
func NewRootCmd() *cobra.Command {
	root, _ := newRootCommand()
	return root
}

func newRootCommand() (*cobra.Command, *context) {
	ctx := &context{configFile: config.DefaultPath}

	root := &cobra.Command{
		Use:   "deskshell",
		Short: "Desktop shell that runs alongside an optional backend process",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, ctx)
		},
	}

	root.PersistentFlags().StringVarP(&ctx.configFile, "config", "c", ctx.configFile, "Path to shell configuration")
	root.PersistentFlags().StringVar(&ctx.backendPath, "backend", "", "Path to the backend executable")
	root.PersistentFlags().BoolVar(&ctx.noBackend, "no-backend", false, "Do not start the backend")
	root.PersistentFlags().StringVar(&ctx.logFile, "log-file", "", "Write backend supervisor events to this file as JSON lines")
	root.PersistentFlags().BoolVar(&ctx.headless, "headless", false, "Run without a terminal window until interrupted")

	root.AddCommand(newRunCmd(ctx))
	root.AddCommand(newLocateCmd(ctx))
	root.AddCommand(newConfigCmd(ctx))

	root.SilenceUsage = true
	root.SilenceErrors = true

	return root, ctx
}

// Execute runs the CLI entrypoint.
func Execute() {
	ctx, stop := signal.NotifyContext(stdcontext.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCmd()
	root.SetContext(ctx)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type context struct {
	configFile  string
	backendPath string
	noBackend   bool
	logFile     string
	headless    bool
}

// loadConfig reads the configuration and layers command-line overrides on
// top. The default config file may be absent; an explicitly named one may not.
func (c *context) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(c.configFile, !flagChanged(cmd, "config"))
	if err != nil {
		return nil, err
	}

	if c.backendPath != "" {
		cfg.Backend.Path = c.backendPath
		cfg.Backend.Name = ""
	}
	if c.noBackend {
		cfg.Backend.Disabled = true
	}
	if c.logFile != "" {
		cfg.Log.File = c.logFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.InheritedFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
