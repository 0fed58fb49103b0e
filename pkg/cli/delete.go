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

func deleteCmd() *cli.Command {
	return &cli.Command{
		Name:                  "delete",
		EnableShellCompletion: true,
		Usage:                 "Remove the inference stack from a cluster",
		Description: `Removes the stack resources in reverse dependency order: service,
deployment, config map, claim, volume, and finally the namespace.

Resources that are already gone are skipped, so delete succeeds on a
cluster where the stack was never deployed or only partially deployed.

The persistent volume uses the Retain reclaim policy, so the model data
on the NFS export is never touched.

# Examples

Delete the stack:
  nisctl delete

Delete but keep the namespace:
  nisctl delete --keep-namespace

Delete and block until the finalizers clear:
  nisctl delete --wait`,
		Flags: []cli.Flag{
			configFlag,
			kubeconfigFlag,
			namespaceFlag,
			&cli.BoolFlag{
				Name:  "wait",
				Usage: "Wait for resources to be fully removed, not just marked for deletion",
			},
			&cli.BoolFlag{
				Name:  "keep-namespace",
				Usage: "Leave the namespace in place and remove only the resources inside it",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctx, cancel := context.WithTimeout(ctx, defaults.CLIDeleteTimeout)
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
			if err := d.Delete(ctx, deployer.DeleteOptions{
				Wait:          cmd.Bool("wait"),
				KeepNamespace: cmd.Bool("keep-namespace"),
			}); err != nil {
				return err
			}

			slog.Info("stack deleted", "namespace", cfg.Namespace, "app", cfg.App)
			return nil
		},
	}
}
