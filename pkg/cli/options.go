/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/inference-stack/pkg/serializer"
	"github.com/NVIDIA/inference-stack/pkg/stack"
)

// loadStackConfig builds the stack configuration from an optional config
// file plus flag overrides. Flags win over the file, the file wins over
// defaults.
func loadStackConfig(cmd *cli.Command) (*stack.Config, error) {
	cfg := stack.NewConfig()

	if path := cmd.String("config"); path != "" {
		loaded, err := serializer.FromFile[stack.Config](path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
		cfg = loaded
		cfg.ApplyDefaults()
	}

	if v := cmd.String("namespace"); v != "" {
		cfg.Namespace = v
	}
	if v := cmd.String("image"); v != "" {
		cfg.Image = v
	}
	if v := cmd.String("model"); v != "" {
		cfg.Model = v
	}
	if v := cmd.Int("gpus"); v > 0 {
		cfg.GPUs = int64(v)
	}
	if v := cmd.Int("node-port"); v > 0 {
		cfg.NodePort = int32(v)
	}
	if v := cmd.String("nfs-server"); v != "" {
		cfg.Storage.Server = v
	}
	if v := cmd.String("nfs-path"); v != "" {
		cfg.Storage.Path = v
	}

	if selectors := cmd.StringSlice("node-selector"); len(selectors) > 0 {
		parsed, err := stack.ParseNodeSelectors(selectors)
		if err != nil {
			return nil, fmt.Errorf("invalid --node-selector: %w", err)
		}
		cfg.NodeSelector = parsed
	}
	if tolerations := cmd.StringSlice("toleration"); len(tolerations) > 0 {
		parsed, err := stack.ParseTolerations(tolerations)
		if err != nil {
			return nil, fmt.Errorf("invalid --toleration: %w", err)
		}
		cfg.Tolerations = parsed
	}

	if path := cmd.String("environment-file"); path != "" {
		payload, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read environment file %s: %w", path, err)
		}
		cfg.Environment = string(payload)
	}

	override := stack.ImageOverride{
		Name: cmd.String("image-name"),
		Tag:  cmd.String("image-tag"),
	}
	if !override.IsZero() {
		if err := cfg.PatchImage(override); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
