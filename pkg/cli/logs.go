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

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/inference-stack/pkg/defaults"
	"github.com/NVIDIA/inference-stack/pkg/deployer"
	"github.com/NVIDIA/inference-stack/pkg/k8s/client"
)

func logsCmd() *cli.Command {
	return &cli.Command{
		Name:                  "logs",
		EnableShellCompletion: true,
		Usage:                 "Print logs from the inference workload pod",
		Description: `Fetches the container logs from the workload pod. With --follow, waits
for the pod to reach the Running phase and then streams new log lines
until interrupted, which is useful right after a deploy while the
serving process loads model weights.

# Examples

Print the current logs:
  nisctl logs

Follow the logs during startup:
  nisctl logs --follow`,
		Flags: []cli.Flag{
			configFlag,
			kubeconfigFlag,
			namespaceFlag,
			&cli.BoolFlag{
				Name:    "follow",
				Aliases: []string{"f"},
				Usage:   "Stream new log lines until interrupted",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadStackConfig(cmd)
			if err != nil {
				return err
			}

			clientset, _, err := client.GetKubeClientWithConfig(cmd.String("kubeconfig"))
			if err != nil {
				return fmt.Errorf("failed to create Kubernetes client: %w", err)
			}

			d := deployer.NewDeployer(clientset, cfg)

			if cmd.Bool("follow") {
				slog.Debug("waiting for workload pod",
					"namespace", cfg.Namespace,
					"timeout", defaults.K8sPodReadyTimeout.String())
				if err := d.WaitForPodRunning(ctx, defaults.K8sPodReadyTimeout); err != nil {
					return fmt.Errorf("workload pod not running: %w", err)
				}
				return d.StreamLogs(ctx, os.Stdout, "")
			}

			logs, err := d.GetPodLogs(ctx)
			if err != nil {
				return err
			}
			fmt.Print(logs)
			return nil
		},
	}
}
