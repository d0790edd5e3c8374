package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/credprobe/credprobe/internal/audit"
	"github.com/credprobe/credprobe/internal/config"
	"github.com/credprobe/credprobe/internal/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Version information (set at build time with -ldflags)
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var rootCmd = &cobra.Command{
	Use:     "credprobe",
	Short:   "credprobe - GitHub credential permission auditor",
	Long:    `credprobe infers which permissions an API credential holds and enumerates every organization resource it can reach`,
	Version: Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAudit()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("credprobe %s (%s)\n", Version, GitCommit)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runAudit() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logging.Init(logging.Config{
		Format:    cfg.LogFormat,
		Level:     cfg.LogLevel,
		Component: "credprobe",
	})

	auditor, err := audit.New(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, snapshot, err := auditor.ValidateAndEnumerate(ctx)
	if err != nil {
		return err
	}

	out := struct {
		Permissions any `json:"permissions"`
		Company     any `json:"company"`
	}{report, snapshot}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Audit failed")
		os.Exit(1)
	}
}
