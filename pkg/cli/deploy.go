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

func deployCmd() *cli.Command {
	return &cli.Command{
		Name:                  "deploy",
		EnableShellCompletion: true,
		Usage:                 "Deploy the inference stack to a cluster",
		Description: `Applies every stack resource to the cluster in dependency order:

  1. Namespace
  2. PersistentVolume (NFS-backed model storage)
  3. PersistentVolumeClaim
  4. ConfigMap (conda dependency environment)
  5. Deployment (GPU inference server)
  6. Service (NodePort)

The operation is idempotent: existing resources are updated in place, and
each apply stamps a fresh rollout ID so configuration changes always roll
the workload.

# Examples

Deploy with defaults:
  nisctl deploy

Deploy a specific image build into a custom namespace:
  nisctl deploy --namespace staging --image-tag v0.11.0

Deploy from a configuration file and wait for the rollout:
  nisctl deploy --config stack.yaml --wait

Target dedicated GPU nodes:
  nisctl deploy \
    --node-selector nodeGroup=gpu-nodes \
    --toleration nvidia.com/gpu=present:NoSchedule`,
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
			if err := d.Deploy(ctx); err != nil {
				return err
			}

			slog.Info("stack deployed",
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
