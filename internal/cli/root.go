package cli

import (
	"context"
	"io"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/soyeahso/sasagent/internal/config"
	"github.com/soyeahso/sasagent/internal/logging"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	logLevel  string
	serverURL string
	noColor   bool

	// loaded at init time
	paths     config.Paths
	cfg       config.Config
	log       *logging.Logger
	logCloser io.Closer
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sasagent",
		Short: "Command-line client for the SAS Agent backend",
		Long:  "sasagent creates agents, uploads documents to them and chats with them through a SAS Agent server.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			paths, err = config.ResolvePaths()
			if err != nil {
				return err
			}
			if cfgFile != "" {
				paths.Config = cfgFile
			}

			cfg, err = config.Load(paths.Config)
			if err != nil {
				return err
			}
			if serverURL != "" {
				cfg.Server.BaseURL = serverURL
			}
			if logLevel != "" {
				cfg.Logging.Level = logLevel
			}

			log, logCloser, err = logging.Open(logging.Options{
				Level: cfg.Logging.Level,
				Style: cfg.Logging.ConsoleStyle,
				File:  cfg.Logging.File,
			})
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logCloser != nil {
				logCloser.Close()
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.sasagent/config.yaml)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error, fatal, silent)")
	cmd.PersistentFlags().StringVar(&serverURL, "server", "", "backend base URL (overrides server.baseUrl)")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored status output")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newPingCmd())
	cmd.AddCommand(newAgentCmd())
	cmd.AddCommand(newUploadCmd())
	cmd.AddCommand(newChatCmd())
	cmd.AddCommand(newDocumentCmd())
	cmd.AddCommand(newWatchCmd())
	cmd.AddCommand(newThemeCmd())

	return cmd
}

// colorEnabled reports whether status output should carry ANSI colors.
func colorEnabled() bool {
	return !noColor && !color.NoColor
}

// Execute runs the root command until it finishes or SIGINT/SIGTERM arrives.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}
