/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package deployer

import (
	"context"

	"github.com/google/uuid"
	"k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/labels"
)

// ensureNamespace creates the namespace.
// If the namespace already exists, this is a no-op (idempotent).
func (d *Deployer) ensureNamespace(ctx context.Context) error {
	ns := d.stack.BuildNamespace()
	_, err := d.clientset.CoreV1().Namespaces().Create(ctx, ns, metav1.CreateOptions{})
	return ignoreAlreadyExists(err)
}

// ensurePersistentVolume creates the NFS-backed volume.
// PersistentVolume specs are immutable once bound, so an existing volume
// is left untouched.
func (d *Deployer) ensurePersistentVolume(ctx context.Context) error {
	pv := d.stack.BuildPersistentVolume()
	_, err := d.clientset.CoreV1().PersistentVolumes().Create(ctx, pv, metav1.CreateOptions{})
	return ignoreAlreadyExists(err)
}

// ensurePersistentVolumeClaim creates the claim bound to the stack volume.
// Claim specs are immutable, so an existing claim is left untouched.
func (d *Deployer) ensurePersistentVolumeClaim(ctx context.Context) error {
	pvc := d.stack.BuildPersistentVolumeClaim()
	_, err := d.clientset.CoreV1().PersistentVolumeClaims(d.stack.Namespace).
		Create(ctx, pvc, metav1.CreateOptions{})
	return ignoreAlreadyExists(err)
}

// ensureConfigMap creates or updates the dependency environment ConfigMap.
func (d *Deployer) ensureConfigMap(ctx context.Context) error {
	cm := d.stack.BuildConfigMap()
	_, err := d.clientset.CoreV1().ConfigMaps(d.stack.Namespace).
		Create(ctx, cm, metav1.CreateOptions{})
	if errors.IsAlreadyExists(err) {
		_, err = d.clientset.CoreV1().ConfigMaps(d.stack.Namespace).
			Update(ctx, cm, metav1.UpdateOptions{})
	}
	return err
}

// ensureDeployment creates or updates the workload deployment. Every apply
// stamps a fresh rollout ID on the pod template so the change always rolls
// pods, even when the rest of the spec is unchanged.
func (d *Deployer) ensureDeployment(ctx context.Context) error {
	dep := d.stack.BuildDeployment()
	if dep.Spec.Template.Annotations == nil {
		dep.Spec.Template.Annotations = map[string]string{}
	}
	dep.Spec.Template.Annotations[RolloutIDAnnotation] = uuid.NewString()

	_, err := d.clientset.AppsV1().Deployments(d.stack.Namespace).
		Create(ctx, dep, metav1.CreateOptions{})
	if errors.IsAlreadyExists(err) {
		// Preserve the server-side ResourceVersion on update
		existing, getErr := d.clientset.AppsV1().Deployments(d.stack.Namespace).
			Get(ctx, dep.Name, metav1.GetOptions{})
		if getErr != nil {
			return getErr
		}
		dep.ResourceVersion = existing.ResourceVersion
		_, err = d.clientset.AppsV1().Deployments(d.stack.Namespace).
			Update(ctx, dep, metav1.UpdateOptions{})
	}
	return err
}

// ensureService creates or updates the NodePort service. The allocated
// ClusterIP must be carried over on update.
func (d *Deployer) ensureService(ctx context.Context) error {
	svc := d.stack.BuildService()
	_, err := d.clientset.CoreV1().Services(d.stack.Namespace).
		Create(ctx, svc, metav1.CreateOptions{})
	if errors.IsAlreadyExists(err) {
		existing, getErr := d.clientset.CoreV1().Services(d.stack.Namespace).
			Get(ctx, svc.Name, metav1.GetOptions{})
		if getErr != nil {
			return getErr
		}
		svc.ResourceVersion = existing.ResourceVersion
		svc.Spec.ClusterIP = existing.Spec.ClusterIP
		_, err = d.clientset.CoreV1().Services(d.stack.Namespace).
			Update(ctx, svc, metav1.UpdateOptions{})
	}
	return err
}

// deleteService deletes the service.
func (d *Deployer) deleteService(ctx context.Context) error {
	err := d.clientset.CoreV1().Services(d.stack.Namespace).
		Delete(ctx, d.stack.ServiceName(), metav1.DeleteOptions{})
	return ignoreNotFound(err)
}

// deleteDeployment deletes the workload with foreground propagation so the
// pods are gone before the deployment object disappears.
func (d *Deployer) deleteDeployment(ctx context.Context) error {
	propagationPolicy := metav1.DeletePropagationForeground
	err := d.clientset.AppsV1().Deployments(d.stack.Namespace).
		Delete(ctx, d.stack.DeploymentName(), metav1.DeleteOptions{
			PropagationPolicy: &propagationPolicy,
		})
	return ignoreNotFound(err)
}

// deleteConfigMap deletes the dependency environment ConfigMap.
func (d *Deployer) deleteConfigMap(ctx context.Context) error {
	err := d.clientset.CoreV1().ConfigMaps(d.stack.Namespace).
		Delete(ctx, d.stack.ConfigMapName(), metav1.DeleteOptions{})
	return ignoreNotFound(err)
}

// deletePersistentVolumeClaim deletes the claim.
func (d *Deployer) deletePersistentVolumeClaim(ctx context.Context) error {
	err := d.clientset.CoreV1().PersistentVolumeClaims(d.stack.Namespace).
		Delete(ctx, d.stack.ClaimName(), metav1.DeleteOptions{})
	return ignoreNotFound(err)
}

// deletePersistentVolume deletes the cluster-scoped volume. The volume uses
// the Retain reclaim policy, so the NFS export itself is never touched.
func (d *Deployer) deletePersistentVolume(ctx context.Context) error {
	err := d.clientset.CoreV1().PersistentVolumes().
		Delete(ctx, d.stack.VolumeName(), metav1.DeleteOptions{})
	return ignoreNotFound(err)
}

// deleteNamespace deletes the namespace and everything left in it.
func (d *Deployer) deleteNamespace(ctx context.Context) error {
	err := d.clientset.CoreV1().Namespaces().
		Delete(ctx, d.stack.Namespace, metav1.DeleteOptions{})
	return ignoreNotFound(err)
}

// selectorString returns the label selector matching the workload pods.
func (d *Deployer) selectorString() string {
	return labels.SelectorFromSet(d.stack.SelectorLabels()).String()
}
