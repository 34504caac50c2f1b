// Command chash exercises the chash table from the console.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theflywheel/chash"
	"github.com/theflywheel/chash/internal/config"
	"github.com/theflywheel/chash/internal/logutil"
)

// env carries what the root command resolved to its subcommands
type env struct {
	cfg    config.Config
	logger *zap.Logger
}

func (e *env) newTable() (*chash.Table[string], error) {
	opts, err := e.cfg.TableOptions(e.logger)
	if err != nil {
		return nil, err
	}
	return chash.New[string](e.cfg.Table.InitialSize, opts...)
}

func newRootCommand() *cobra.Command {
	var (
		configPath string
		logLevel   string
		e          env
	)

	root := &cobra.Command{
		Use:           "chash",
		Short:         "Chained hash table playground",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				var err error
				if cfg, err = config.Load(configPath); err != nil {
					return err
				}
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			logger, err := logutil.NewLogger(cfg.Log)
			if err != nil {
				return err
			}
			e.cfg = cfg
			e.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = e.logger.Sync()
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level")

	root.AddCommand(
		demoCommand(&e),
		loadCommand(&e),
		hashCommand(&e),
	)
	return root
}

// printSearch reports a lookup the way the demo driver always has
func printSearch(w io.Writer, tbl *chash.Table[string], key string) {
	if e, ok := tbl.Lookup([]byte(key)); ok {
		fmt.Fprintf(w, "key %s found\n", e.Key())
		fmt.Fprintf(w, "with value %s\n", e.Value())
		return
	}
	fmt.Fprintln(w, "key not found")
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
