package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/statelog-io/dictstream/internal/cliconfig"
	"github.com/statelog-io/dictstream/internal/follow"
	"github.com/statelog-io/dictstream/internal/loader"
	logadapter "github.com/statelog-io/dictstream/pkg/log"
)

const helpDescription = `
Read a MessagePack dictionary stream and print the running union.

A dictionary stream is a binary file of concatenated top-level MessagePack
maps. dictload merges them left to right into one accumulating dictionary
(later keys overwrite earlier ones) and prints its full state once per
fragment, in stream order.

Highlights:
  - Deterministic output: keys print sorted, re-runs are byte-identical.
  - --follow tails a growing file and picks up appended fragments.
  - --deep recurses into nested maps instead of replacing whole entries.
  - Configure via file ($HOME/.dictload/config.toml), DICTLOAD_* env, or flags.
`

var exampleUsage = strings.TrimSpace(`
  dictload robot.mpack
  dictload --json robot.mpack | jq .observation
  dictload --follow --resume /var/log/robot/stream.mpack
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	log := cliconfig.Logger()

	root := &cobra.Command{
		Use:     "dictload <file>",
		Short:   "Print the running union of a MessagePack dictionary stream",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Args:    cobra.ExactArgs(1),
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load config file first (default $HOME/.dictload/config.toml),
			// then env, then flag overrides.
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			// Build set of changed flags
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			// Apply environment variables (DICTLOAD_*)
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			log = cliconfig.ConfigureLogger(cfg)
			adapter := logadapter.NewZerologAdapterWithLogger(log)

			opts := []loader.Option{loader.WithLogger(adapter)}
			if cfg.JSON {
				opts = append(opts, loader.WithJSON())
			}
			if cfg.Deep {
				opts = append(opts, loader.WithDeepMerge())
			}
			ld := loader.New(opts...)

			if !cfg.Follow {
				_, err := ld.Run(args[0])
				return err
			}

			fl, err := follow.New(follow.Config{
				Path:         args[0],
				PollInterval: cfg.PollInterval,
				Resume:       cfg.Resume,
				StateDir:     cfg.StateDir,
			}, ld, adapter)
			if err != nil {
				return err
			}

			// Setup signal handling for graceful shutdown
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-sigCh
				log.Info().Msg("received signal, stopping...")
				cancel()
			}()

			return fl.Run(ctx)
		},
	}

	// Flags
	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.dictload/config.toml)")
	root.Flags().BoolVar(&cfg.JSON, "json", cfg.JSON, "print snapshots as JSON objects")
	root.Flags().BoolVar(&cfg.Deep, "deep", cfg.Deep, "deep-update nested maps instead of replacing whole entries")
	root.Flags().BoolVar(&cfg.Follow, "follow", cfg.Follow, "keep reading as the file grows")
	root.Flags().BoolVar(&cfg.Resume, "resume", cfg.Resume, "resume follow mode from the saved offset")
	root.Flags().BoolVar(&cfg.Quiet, "quiet", cfg.Quiet, "silence diagnostics on stderr")
	root.Flags().DurationVar(&cfg.PollInterval, "poll", cfg.PollInterval, "follow-mode rescan interval when no file events arrive")
	root.Flags().StringVar(&cfg.StateDir, "state-dir", cfg.StateDir, "state directory for follow mode (defaults to the stream's directory)")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "diagnostic log level (trace, debug, info, warn, error)")

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("dictload")
		os.Exit(1)
	}
}
