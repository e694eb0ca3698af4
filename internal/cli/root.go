package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

// newRootCmd constructs the notifyd command tree bound to a.
func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "notifyd",
		Short: "In-process multi-topic publish/notify engine",
		Long: "notifyd drives an in-process notification engine. Each invocation runs one\n" +
			"command against a fresh engine seeded from the config file; use 'shell' to run\n" +
			"several commands against one engine, or 'serve' to expose it over HTTP.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return asUsage(errors.New("a command is required"))
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)
	root.SetFlagErrorFunc(func(c *cobra.Command, err error) error { return asUsage(err) })

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "Config file (.yaml|.yml|.json|.toml); defaults to NOTIFYD_CONFIG or ./notifyd.yaml")
	pf.StringVar(&a.logLevel, "log-level", "", "Log level: debug|info|warn|error|off (defaults NOTIFYD_LOG_LEVEL or info)")
	pf.StringVar(&a.logFormat, "log-format", "", "Log format: console|json (defaults NOTIFYD_LOG_FORMAT or console)")

	root.AddCommand(engineCommands(a)...)
	root.AddCommand(newShellCmd(a), newDemoCmd(a), newServeCmd(a))
	return root
}

// newScriptCmd is the command tree for one shell line. It shares a's engine
// and never re-runs setup.
func newScriptCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "notifyd>",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)
	root.SetFlagErrorFunc(func(c *cobra.Command, err error) error { return asUsage(err) })
	root.CompletionOptions.DisableDefaultCmd = true
	root.AddCommand(engineCommands(a)...)
	return root
}
