/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/inference-stack/pkg/logging"
)

const (
	name           = "nisctl"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

func rootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "NVIDIA Inference Stack CLI",
		Version:               version,
		EnableShellCompletion: true,
		Description: fmt.Sprintf(`nisctl - NVIDIA Inference Stack CLI

Version: %s
Commit:  %s
Built:   %s

Tooling to deploy and manage a GPU inference serving stack on Kubernetes:

deploy   - applies the namespace, storage, configuration, workload, and
           service resources to a cluster.
delete   - removes the stack resources.
redeploy - tears the stack down and deploys it fresh.
render   - writes the aggregated manifests to stdout, a directory, or an
           OCI registry without touching a cluster.
status   - reports the observed state of the stack resources.
logs     - prints or follows the workload pod logs.`, version, commit, date),
		Flags: []cli.Flag{
			debugFlag,
			logLevelFlag,
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level := cmd.String("log-level")
			if cmd.Bool("debug") {
				level = "debug"
			}
			logging.SetDefaultStructuredLoggerWithLevel(name, version, level)
			slog.Debug("starting",
				"name", name,
				"version", version,
				"commit", commit,
				"date", date,
				"logLevel", level)
			return ctx, nil
		},
		Commands: []*cli.Command{
			deployCmd(),
			deleteCmd(),
			redeployCmd(),
			renderCmd(),
			statusCmd(),
			logsCmd(),
		},
	}
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle SIGINT/SIGTERM for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down gracefully...")
		cancel()
	}()

	if err := rootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
