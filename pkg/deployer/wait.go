/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package deployer

import (
	"context"
	"fmt"
	"time"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/wait"
	"k8s.io/apimachinery/pkg/watch"

	"github.com/NVIDIA/inference-stack/pkg/defaults"
)

// WaitForRollout blocks until the workload deployment reports all replicas
// available, or the timeout elapses. Model weights can take minutes to load,
// so callers should pass a generous timeout.
func (d *Deployer) WaitForRollout(ctx context.Context, timeout time.Duration) error {
	start := time.Now()

	watcher, err := d.clientset.AppsV1().Deployments(d.stack.Namespace).Watch(
		ctx,
		metav1.ListOptions{
			FieldSelector: fmt.Sprintf("metadata.name=%s", d.stack.DeploymentName()),
			Watch:         true,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to watch Deployment: %w", err)
	}
	defer watcher.Stop()

	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	for {
		select {
		case <-timeoutCtx.Done():
			return fmt.Errorf("timeout waiting for rollout after %v", timeout)

		case event, ok := <-watcher.ResultChan():
			if !ok {
				return fmt.Errorf("watch channel closed unexpectedly")
			}

			if event.Type == watch.Error {
				return fmt.Errorf("watch error: %v", event.Object)
			}

			dep, ok := event.Object.(*appsv1.Deployment)
			if !ok {
				continue
			}

			if deploymentAvailable(dep) {
				rolloutWaitDuration.Observe(time.Since(start).Seconds())
				return nil
			}

			if reason, failed := deploymentFailed(dep); failed {
				return fmt.Errorf("rollout failed: %s", reason)
			}
		}
	}
}

// deploymentAvailable reports whether the deployment has converged on the
// desired generation with all replicas available.
func deploymentAvailable(dep *appsv1.Deployment) bool {
	if dep.Status.ObservedGeneration < dep.Generation {
		return false
	}
	var desired int32 = 1
	if dep.Spec.Replicas != nil {
		desired = *dep.Spec.Replicas
	}
	if dep.Status.UpdatedReplicas < desired || dep.Status.AvailableReplicas < desired {
		return false
	}
	for _, cond := range dep.Status.Conditions {
		if cond.Type == appsv1.DeploymentAvailable && cond.Status == corev1.ConditionTrue {
			return true
		}
	}
	return false
}

// deploymentFailed reports whether the deployment has given up progressing.
func deploymentFailed(dep *appsv1.Deployment) (string, bool) {
	for _, cond := range dep.Status.Conditions {
		if cond.Type == appsv1.DeploymentProgressing &&
			cond.Status == corev1.ConditionFalse &&
			cond.Reason == "ProgressDeadlineExceeded" {
			return cond.Message, true
		}
	}
	return "", false
}

// waitForDeploymentDeletion waits for the workload deployment to be fully removed.
func (d *Deployer) waitForDeploymentDeletion(ctx context.Context) error {
	return wait.PollUntilContextTimeout(ctx, defaults.K8sPollInterval, defaults.K8sDeletionTimeout, true,
		func(ctx context.Context) (bool, error) {
			_, err := d.clientset.AppsV1().Deployments(d.stack.Namespace).
				Get(ctx, d.stack.DeploymentName(), metav1.GetOptions{})
			return deletionDone(err)
		},
	)
}

// waitForClaimDeletion waits for the claim to be fully removed.
func (d *Deployer) waitForClaimDeletion(ctx context.Context) error {
	return wait.PollUntilContextTimeout(ctx, defaults.K8sPollInterval, defaults.K8sDeletionTimeout, true,
		func(ctx context.Context) (bool, error) {
			_, err := d.clientset.CoreV1().PersistentVolumeClaims(d.stack.Namespace).
				Get(ctx, d.stack.ClaimName(), metav1.GetOptions{})
			return deletionDone(err)
		},
	)
}

// waitForVolumeDeletion waits for the cluster-scoped volume to be fully removed.
func (d *Deployer) waitForVolumeDeletion(ctx context.Context) error {
	return wait.PollUntilContextTimeout(ctx, defaults.K8sPollInterval, defaults.K8sDeletionTimeout, true,
		func(ctx context.Context) (bool, error) {
			_, err := d.clientset.CoreV1().PersistentVolumes().
				Get(ctx, d.stack.VolumeName(), metav1.GetOptions{})
			return deletionDone(err)
		},
	)
}

// waitForNamespaceDeletion waits for the namespace finalizers to clear.
func (d *Deployer) waitForNamespaceDeletion(ctx context.Context) error {
	return wait.PollUntilContextTimeout(ctx, defaults.K8sPollInterval, defaults.K8sDeletionTimeout, true,
		func(ctx context.Context) (bool, error) {
			_, err := d.clientset.CoreV1().Namespaces().
				Get(ctx, d.stack.Namespace, metav1.GetOptions{})
			return deletionDone(err)
		},
	)
}

// deletionDone converts a Get error into a poll result: not-found means the
// resource is gone, any other error aborts the poll.
func deletionDone(err error) (bool, error) {
	if err == nil {
		return false, nil // resource still exists, keep waiting
	}
	if ignoreNotFound(err) == nil {
		return true, nil
	}
	return false, err
}
