/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"github.com/urfave/cli/v3"
)

// Flags shared across commands.
var (
	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "Enable debug logging",
	}

	logLevelFlag = &cli.StringFlag{
		Name:    "log-level",
		Usage:   "Log level (debug, info, warn, error)",
		Sources: cli.EnvVars("NIS_LOG_LEVEL"),
		Value:   "info",
	}

	kubeconfigFlag = &cli.StringFlag{
		Name:    "kubeconfig",
		Usage:   "Path to the kubeconfig file (default: $KUBECONFIG, then ~/.kube/config)",
		Sources: cli.EnvVars("KUBECONFIG"),
	}

	configFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to a stack configuration file (YAML or JSON)",
		Sources: cli.EnvVars("NIS_CONFIG"),
	}

	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output target: '-' for stdout, a file or directory path, or oci://registry/repository:tag",
		Value:   "-",
	}

	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format (yaml or json)",
		Value:   "yaml",
	}

	namespaceFlag = &cli.StringFlag{
		Name:    "namespace",
		Aliases: []string{"n"},
		Usage:   "Kubernetes namespace for the stack",
		Sources: cli.EnvVars("NIS_NAMESPACE"),
	}

	imageFlag = &cli.StringFlag{
		Name:    "image",
		Usage:   "Container image for the inference server",
		Sources: cli.EnvVars("NIS_IMAGE"),
	}

	imageNameFlag = &cli.StringFlag{
		Name:  "image-name",
		Usage: "Override the image repository while keeping the configured tag",
	}

	imageTagFlag = &cli.StringFlag{
		Name:  "image-tag",
		Usage: "Override the image tag while keeping the configured repository",
	}

	modelFlag = &cli.StringFlag{
		Name:    "model",
		Usage:   "Model identifier served by the workload",
		Sources: cli.EnvVars("NIS_MODEL"),
	}

	gpusFlag = &cli.IntFlag{
		Name:  "gpus",
		Usage: "Number of GPUs requested by the workload",
	}

	nodePortFlag = &cli.IntFlag{
		Name:  "node-port",
		Usage: "NodePort for the inference service (30000-32767)",
	}

	nodeSelectorFlag = &cli.StringSliceFlag{
		Name:  "node-selector",
		Usage: "Node selector for workload scheduling (format: key=value, can be repeated)",
	}

	tolerationFlag = &cli.StringSliceFlag{
		Name:  "toleration",
		Usage: "Toleration for workload scheduling (format: key=value:effect, can be repeated)",
	}

	environmentFileFlag = &cli.StringFlag{
		Name:  "environment-file",
		Usage: "Path to a conda environment file to ship in the dependency ConfigMap",
	}

	nfsServerFlag = &cli.StringFlag{
		Name:    "nfs-server",
		Usage:   "NFS server address backing the model volume",
		Sources: cli.EnvVars("NIS_NFS_SERVER"),
	}

	nfsPathFlag = &cli.StringFlag{
		Name:    "nfs-path",
		Usage:   "NFS export path backing the model volume",
		Sources: cli.EnvVars("NIS_NFS_PATH"),
	}
)
