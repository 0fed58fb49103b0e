/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package deployer

import (
	"k8s.io/client-go/kubernetes"

	"github.com/NVIDIA/inference-stack/pkg/stack"
)

// RolloutIDAnnotation is stamped on the pod template by every deploy so that
// a redeploy restarts pods even when the spec is otherwise unchanged.
const RolloutIDAnnotation = "inference-stack.nvidia.com/rollout-id"

// Deployer manages the lifecycle of inference stack resources on a cluster.
type Deployer struct {
	clientset kubernetes.Interface
	stack     *stack.Config
}

// NewDeployer creates a Deployer bound to the given clientset and stack
// configuration.
func NewDeployer(clientset kubernetes.Interface, cfg *stack.Config) *Deployer {
	return &Deployer{
		clientset: clientset,
		stack:     cfg,
	}
}

// DeleteOptions controls how Delete behaves.
type DeleteOptions struct {
	// Wait blocks until the deployment, claim, volume, and namespace are
	// fully removed, not just marked for deletion.
	Wait bool
	// KeepNamespace leaves the namespace in place and removes only the
	// resources inside it (plus the cluster-scoped persistent volume).
	KeepNamespace bool
}
