/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/inference-stack/pkg/defaults"
	"github.com/NVIDIA/inference-stack/pkg/oci"
	"github.com/NVIDIA/inference-stack/pkg/stack"
)

// manifestFileName is the file the aggregated manifests are written to when
// rendering to a directory or an OCI artifact.
const manifestFileName = "manifests.yaml"

func renderCmd() *cli.Command {
	return &cli.Command{
		Name:                  "render",
		EnableShellCompletion: true,
		Usage:                 "Render the aggregated stack manifests without touching a cluster",
		Description: `Renders every stack resource as a single multi-document YAML stream in
apply order: namespace, persistent volume, claim, config map, deployment,
service. The output is suitable for kubectl apply -f -.

The output target can be stdout, a local directory, or an OCI registry.
Registry targets use the oci:// scheme and push the manifests as an OCI
artifact via ORAS, authenticated with the local Docker credential store.

# Examples

Render to stdout:
  nisctl render

Render with an image override:
  nisctl render --image-tag v0.11.0

Render into a directory:
  nisctl render --output ./manifests

Render to a single file:
  nisctl render --output ./stack.yaml

Push the rendered bundle to a registry:
  nisctl render --output oci://ghcr.io/nvidia/inference-stack:v1.0.0`,
		Flags: []cli.Flag{
			configFlag,
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
			outputFlag,
			&cli.BoolFlag{
				Name:  "plain-http",
				Usage: "Use HTTP instead of HTTPS for the OCI registry (for local development)",
			},
			&cli.BoolFlag{
				Name:  "insecure-tls",
				Usage: "Skip TLS certificate verification for the OCI registry",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadStackConfig(cmd)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := cfg.Render(&buf); err != nil {
				return err
			}

			target, err := oci.ParseOutputTarget(cmd.String("output"))
			if err != nil {
				return err
			}

			if target.IsOCI {
				return pushRendered(ctx, cmd, cfg, target, buf.Bytes())
			}

			if target.LocalPath == "" || target.LocalPath == "-" {
				_, err := os.Stdout.Write(buf.Bytes())
				return err
			}

			// Paths with a YAML extension are files, anything else a directory
			path := target.LocalPath
			switch filepath.Ext(path) {
			case ".yaml", ".yml":
				if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
					return fmt.Errorf("failed to create output directory: %w", err)
				}
			default:
				if err := os.MkdirAll(path, 0o755); err != nil {
					return fmt.Errorf("failed to create output directory: %w", err)
				}
				path = filepath.Join(path, manifestFileName)
			}
			if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("failed to write manifests: %w", err)
			}

			slog.Info("manifests rendered", "path", path, "namespace", cfg.Namespace)
			return nil
		},
	}
}

// pushRendered writes the rendered manifests to a staging directory and
// pushes them to the target registry.
func pushRendered(ctx context.Context, cmd *cli.Command, cfg *stack.Config, target *oci.Reference, manifests []byte) error {
	tag := target.Tag
	if tag == "" {
		tag = version
	}

	stageDir, err := os.MkdirTemp("", "nisctl-render-*")
	if err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer os.RemoveAll(stageDir)

	if err := os.WriteFile(filepath.Join(stageDir, manifestFileName), manifests, 0o644); err != nil {
		return fmt.Errorf("failed to stage manifests: %w", err)
	}

	pushCtx, cancel := context.WithTimeout(ctx, defaults.OCIPushTimeout)
	defer cancel()

	result, err := oci.Push(pushCtx, oci.PushOptions{
		SourceDir:   stageDir,
		Registry:    target.Registry,
		Repository:  target.Repository,
		Tag:         tag,
		Version:     version,
		PlainHTTP:   cmd.Bool("plain-http"),
		InsecureTLS: cmd.Bool("insecure-tls"),
	})
	if err != nil {
		return err
	}

	slog.Info("manifests pushed",
		"reference", result.Reference,
		"digest", result.Digest,
		"namespace", cfg.Namespace,
	)
	return nil
}
