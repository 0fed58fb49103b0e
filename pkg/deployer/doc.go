/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package deployer applies and removes inference stack resources on a
// Kubernetes cluster.
//
// A Deployer is bound to a clientset and a stack configuration and exposes
// three orchestrations:
//
//   - Deploy: creates or updates every stack resource in dependency order
//     (namespace, persistent volume, claim, config map, deployment, service).
//   - Delete: removes the resources in reverse order, tolerating resources
//     that are already gone, and optionally waits for finalizers to clear.
//   - Redeploy: Delete with waiting, then Deploy. Each Deploy stamps the pod
//     template with a fresh rollout ID so a redeploy always restarts the
//     workload even when the spec is otherwise unchanged.
//
// All operations are idempotent: a Deploy against existing resources
// updates them in place, and a Delete of absent resources succeeds.
package deployer
