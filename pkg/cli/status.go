/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"

	"github.com/NVIDIA/inference-stack/pkg/defaults"
	"github.com/NVIDIA/inference-stack/pkg/deployer"
	"github.com/NVIDIA/inference-stack/pkg/k8s/client"
	"github.com/NVIDIA/inference-stack/pkg/serializer"
)

func statusCmd() *cli.Command {
	return &cli.Command{
		Name:                  "status",
		EnableShellCompletion: true,
		Usage:                 "Report the observed state of the stack resources",
		Description: `Inspects every stack resource on the cluster and reports whether it
exists and whether it is ready. Missing resources are reported rather
than treated as errors, so status works against a cluster where the
stack was never deployed.

When the service is present, the report includes the node endpoint
(host:port) where the inference API is reachable.

# Examples

One-shot status as YAML:
  nisctl status

Status as JSON written to a file:
  nisctl status --format json --output status.json

Poll until interrupted:
  nisctl status --watch`,
		Flags: []cli.Flag{
			configFlag,
			kubeconfigFlag,
			namespaceFlag,
			formatFlag,
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (default: stdout)",
			},
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "Poll the cluster until interrupted",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat := serializer.Format(cmd.String("format"))
			if outFormat.IsUnknown() {
				return fmt.Errorf("unknown output format: %q", outFormat)
			}

			cfg, err := loadStackConfig(cmd)
			if err != nil {
				return err
			}

			clientset, _, err := client.GetKubeClientWithConfig(cmd.String("kubeconfig"))
			if err != nil {
				return fmt.Errorf("failed to create Kubernetes client: %w", err)
			}

			d := deployer.NewDeployer(clientset, cfg)
			out := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer out.Close()

			if !cmd.Bool("watch") {
				st, err := pollStatus(ctx, d)
				if err != nil {
					return err
				}
				return out.Serialize(ctx, st)
			}

			// Paced polling until the context is canceled
			limiter := rate.NewLimiter(rate.Every(defaults.StatusPollInterval), 1)
			for first := true; ; first = false {
				if err := limiter.Wait(ctx); err != nil {
					if ctx.Err() != nil {
						return nil
					}
					return err
				}
				st, err := pollStatus(ctx, d)
				if err != nil {
					return err
				}
				if !first {
					if err := out.WriteDocumentSeparator(); err != nil {
						return err
					}
				}
				if err := out.Serialize(ctx, st); err != nil {
					return err
				}
			}
		},
	}
}

// pollStatus bounds a single status inspection so a hung API server cannot
// stall the caller indefinitely.
func pollStatus(ctx context.Context, d *deployer.Deployer) (*deployer.StackStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, defaults.K8sRequestTimeout)
	defer cancel()
	return d.Status(ctx)
}
