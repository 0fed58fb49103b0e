/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package stack

// EnvironmentFileName is the key under which the dependency manifest is
// stored in the ConfigMap and the file name it is mounted as.
const EnvironmentFileName = "environment.yml"

// defaultEnvironment is the dependency manifest consumed by the container
// entrypoint to provision the Python runtime for fine-tuning and serving.
// The pip set covers QLoRA fine-tuning (peft/trl/bitsandbytes) on top of the
// serving stack.
const defaultEnvironment = `name: inference
channels:
  - pytorch
  - nvidia
  - defaults
dependencies:
  - python=3.11
  - pip
  - pip:
      - torch
      - transformers
      - datasets
      - accelerate
      - peft
      - trl
      - bitsandbytes
`

// EnvironmentPayload returns the dependency manifest payload for the
// ConfigMap: the user-provided document when set, the built-in default
// otherwise.
func (c *Config) EnvironmentPayload() string {
	if c.Environment != "" {
		return c.Environment
	}
	return defaultEnvironment
}
