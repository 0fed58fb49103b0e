/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/inference-stack/pkg/defaults"
	"github.com/NVIDIA/inference-stack/pkg/deployer"
	"github.com/NVIDIA/inference-stack/pkg/k8s/client"
)

func redeployCmd() *cli.Command {
	return &cli.Command{
		Name:                  "redeploy",
		EnableShellCompletion: true,
		Usage:                 "Tear the inference stack down and deploy it fresh",
		Description: `Deletes the stack resources, waits for the teardown to finish, and then
deploys the stack again. The namespace is kept across the cycle.

The workload runs a single replica with exclusive GPU access, so the old
pod must be fully gone before the replacement can schedule. Redeploy
enforces that ordering; a plain deploy over a wedged workload does not.

# Examples

Redeploy with the current configuration:
  nisctl redeploy

Redeploy with a new image build and wait for the rollout:
  nisctl redeploy --image-tag v0.11.0 --wait`,
		Flags: []cli.Flag{
			configFlag,
			kubeconfigFlag,
			namespaceFlag,
			imageFlag,
			imageNameFlag,
			imageTagFlag,
			modelFlag,
			gpusFlag,
			nodePortFlag,
			nodeSelectorFlag,
			tolerationFlag,
			environmentFileFlag,
			nfsServerFlag,
			nfsPathFlag,
			&cli.BoolFlag{
				Name:  "wait",
				Usage: "Wait for the workload rollout to complete",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Timeout for waiting for the rollout",
				Value: defaults.K8sRolloutTimeout,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctx, cancel := context.WithTimeout(ctx, defaults.CLIDeployTimeout)
			defer cancel()

			cfg, err := loadStackConfig(cmd)
			if err != nil {
				return err
			}

			clientset, _, err := client.GetKubeClientWithConfig(cmd.String("kubeconfig"))
			if err != nil {
				return fmt.Errorf("failed to create Kubernetes client: %w", err)
			}

			d := deployer.NewDeployer(clientset, cfg)
			if err := d.Redeploy(ctx); err != nil {
				return err
			}

			slog.Info("stack redeployed",
				"namespace", cfg.Namespace,
				"app", cfg.App,
				"image", cfg.Image,
			)

			if cmd.Bool("wait") {
				timeout := cmd.Duration("timeout")
				slog.Info("waiting for rollout", "timeout", timeout.String())
				if err := d.WaitForRollout(ctx, timeout); err != nil {
					return err
				}
				slog.Info("rollout complete", "namespace", cfg.Namespace, "app", cfg.App)
			}

			return nil
		},
	}
}
