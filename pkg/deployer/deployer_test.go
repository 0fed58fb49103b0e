/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package deployer

import (
	"context"
	"testing"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"

	"github.com/NVIDIA/inference-stack/pkg/stack"
)

func newTestDeployer() (*Deployer, *fake.Clientset) {
	clientset := fake.NewClientset()
	cfg := stack.NewConfig()
	return NewDeployer(clientset, cfg), clientset
}

func TestDeployCreatesAllResources(t *testing.T) {
	d, clientset := newTestDeployer()
	ctx := context.Background()

	if err := d.Deploy(ctx); err != nil {
		t.Fatalf("Deploy() failed: %v", err)
	}

	if _, err := clientset.CoreV1().Namespaces().
		Get(ctx, d.stack.Namespace, metav1.GetOptions{}); err != nil {
		t.Errorf("Namespace not found: %v", err)
	}
	if _, err := clientset.CoreV1().PersistentVolumes().
		Get(ctx, d.stack.VolumeName(), metav1.GetOptions{}); err != nil {
		t.Errorf("PersistentVolume not found: %v", err)
	}
	if _, err := clientset.CoreV1().PersistentVolumeClaims(d.stack.Namespace).
		Get(ctx, d.stack.ClaimName(), metav1.GetOptions{}); err != nil {
		t.Errorf("PersistentVolumeClaim not found: %v", err)
	}
	if _, err := clientset.CoreV1().ConfigMaps(d.stack.Namespace).
		Get(ctx, d.stack.ConfigMapName(), metav1.GetOptions{}); err != nil {
		t.Errorf("ConfigMap not found: %v", err)
	}
	if _, err := clientset.AppsV1().Deployments(d.stack.Namespace).
		Get(ctx, d.stack.DeploymentName(), metav1.GetOptions{}); err != nil {
		t.Errorf("Deployment not found: %v", err)
	}
	if _, err := clientset.CoreV1().Services(d.stack.Namespace).
		Get(ctx, d.stack.ServiceName(), metav1.GetOptions{}); err != nil {
		t.Errorf("Service not found: %v", err)
	}
}

func TestDeployIsIdempotent(t *testing.T) {
	d, clientset := newTestDeployer()
	ctx := context.Background()

	if err := d.Deploy(ctx); err != nil {
		t.Fatalf("first Deploy() failed: %v", err)
	}

	first, err := clientset.AppsV1().Deployments(d.stack.Namespace).
		Get(ctx, d.stack.DeploymentName(), metav1.GetOptions{})
	if err != nil {
		t.Fatalf("Deployment not found: %v", err)
	}

	if err := d.Deploy(ctx); err != nil {
		t.Fatalf("second Deploy() failed: %v", err)
	}

	second, err := clientset.AppsV1().Deployments(d.stack.Namespace).
		Get(ctx, d.stack.DeploymentName(), metav1.GetOptions{})
	if err != nil {
		t.Fatalf("Deployment not found after redeploy: %v", err)
	}

	firstID := first.Spec.Template.Annotations[RolloutIDAnnotation]
	secondID := second.Spec.Template.Annotations[RolloutIDAnnotation]
	if firstID == "" || secondID == "" {
		t.Fatal("rollout ID annotation missing")
	}
	if firstID == secondID {
		t.Error("second Deploy() should stamp a new rollout ID")
	}
}

func TestDeployRejectsInvalidConfig(t *testing.T) {
	clientset := fake.NewClientset()
	cfg := stack.NewConfig()
	cfg.NodePort = 80 // outside the NodePort range
	d := NewDeployer(clientset, cfg)

	if err := d.Deploy(context.Background()); err == nil {
		t.Fatal("Deploy() with invalid config should fail")
	}

	// Nothing should have been created
	namespaces, err := clientset.CoreV1().Namespaces().List(context.Background(), metav1.ListOptions{})
	if err != nil {
		t.Fatalf("failed to list namespaces: %v", err)
	}
	if len(namespaces.Items) != 0 {
		t.Errorf("expected no namespaces, got %d", len(namespaces.Items))
	}
}

func TestDeleteRemovesResources(t *testing.T) {
	d, clientset := newTestDeployer()
	ctx := context.Background()

	if err := d.Deploy(ctx); err != nil {
		t.Fatalf("Deploy() failed: %v", err)
	}

	if err := d.Delete(ctx, DeleteOptions{}); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}

	if _, err := clientset.AppsV1().Deployments(d.stack.Namespace).
		Get(ctx, d.stack.DeploymentName(), metav1.GetOptions{}); err == nil {
		t.Error("Deployment should be gone after Delete()")
	}
	if _, err := clientset.CoreV1().Services(d.stack.Namespace).
		Get(ctx, d.stack.ServiceName(), metav1.GetOptions{}); err == nil {
		t.Error("Service should be gone after Delete()")
	}
	if _, err := clientset.CoreV1().PersistentVolumes().
		Get(ctx, d.stack.VolumeName(), metav1.GetOptions{}); err == nil {
		t.Error("PersistentVolume should be gone after Delete()")
	}
	if _, err := clientset.CoreV1().Namespaces().
		Get(ctx, d.stack.Namespace, metav1.GetOptions{}); err == nil {
		t.Error("Namespace should be gone after Delete()")
	}
}

func TestDeleteOnEmptyClusterSucceeds(t *testing.T) {
	d, _ := newTestDeployer()

	if err := d.Delete(context.Background(), DeleteOptions{}); err != nil {
		t.Fatalf("Delete() on empty cluster should succeed, got: %v", err)
	}
}

func TestDeleteKeepNamespace(t *testing.T) {
	d, clientset := newTestDeployer()
	ctx := context.Background()

	if err := d.Deploy(ctx); err != nil {
		t.Fatalf("Deploy() failed: %v", err)
	}

	if err := d.Delete(ctx, DeleteOptions{KeepNamespace: true}); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}

	if _, err := clientset.CoreV1().Namespaces().
		Get(ctx, d.stack.Namespace, metav1.GetOptions{}); err != nil {
		t.Errorf("Namespace should survive Delete() with KeepNamespace: %v", err)
	}
	if _, err := clientset.AppsV1().Deployments(d.stack.Namespace).
		Get(ctx, d.stack.DeploymentName(), metav1.GetOptions{}); err == nil {
		t.Error("Deployment should be gone after Delete()")
	}
}

func TestRedeployStampsNewRolloutID(t *testing.T) {
	d, clientset := newTestDeployer()
	ctx := context.Background()

	if err := d.Deploy(ctx); err != nil {
		t.Fatalf("Deploy() failed: %v", err)
	}

	first, err := clientset.AppsV1().Deployments(d.stack.Namespace).
		Get(ctx, d.stack.DeploymentName(), metav1.GetOptions{})
	if err != nil {
		t.Fatalf("Deployment not found: %v", err)
	}

	if err := d.Redeploy(ctx); err != nil {
		t.Fatalf("Redeploy() failed: %v", err)
	}

	second, err := clientset.AppsV1().Deployments(d.stack.Namespace).
		Get(ctx, d.stack.DeploymentName(), metav1.GetOptions{})
	if err != nil {
		t.Fatalf("Deployment not found after Redeploy(): %v", err)
	}

	if first.Spec.Template.Annotations[RolloutIDAnnotation] ==
		second.Spec.Template.Annotations[RolloutIDAnnotation] {
		t.Error("Redeploy() should stamp a new rollout ID")
	}

	// Redeploy keeps the namespace
	if _, err := clientset.CoreV1().Namespaces().
		Get(ctx, d.stack.Namespace, metav1.GetOptions{}); err != nil {
		t.Errorf("Namespace should survive Redeploy(): %v", err)
	}
}

func TestRedeployDeletesBeforeDeploying(t *testing.T) {
	d, clientset := newTestDeployer()
	ctx := context.Background()

	if err := d.Deploy(ctx); err != nil {
		t.Fatalf("Deploy() failed: %v", err)
	}
	clientset.ClearActions()

	if err := d.Redeploy(ctx); err != nil {
		t.Fatalf("Redeploy() failed: %v", err)
	}

	deleteIdx, createIdx := -1, -1
	for i, action := range clientset.Actions() {
		if action.GetResource().Resource != "deployments" {
			continue
		}
		switch action.GetVerb() {
		case "delete":
			if deleteIdx == -1 {
				deleteIdx = i
			}
		case "create":
			if createIdx == -1 {
				createIdx = i
			}
		}
	}

	if deleteIdx == -1 {
		t.Fatal("Redeploy() never deleted the deployment")
	}
	if createIdx == -1 {
		t.Fatal("Redeploy() never created the deployment")
	}
	if deleteIdx > createIdx {
		t.Errorf("deployment delete (action %d) should precede create (action %d)", deleteIdx, createIdx)
	}
}

func TestEnsureServicePreservesClusterIP(t *testing.T) {
	d, clientset := newTestDeployer()
	ctx := context.Background()

	if err := d.ensureNamespace(ctx); err != nil {
		t.Fatalf("ensureNamespace() failed: %v", err)
	}
	if err := d.ensureService(ctx); err != nil {
		t.Fatalf("ensureService() failed: %v", err)
	}

	// Simulate the API server allocating a cluster IP
	svc, err := clientset.CoreV1().Services(d.stack.Namespace).
		Get(ctx, d.stack.ServiceName(), metav1.GetOptions{})
	if err != nil {
		t.Fatalf("Service not found: %v", err)
	}
	svc.Spec.ClusterIP = "10.96.0.42"
	if _, err := clientset.CoreV1().Services(d.stack.Namespace).
		Update(ctx, svc, metav1.UpdateOptions{}); err != nil {
		t.Fatalf("failed to set cluster IP: %v", err)
	}

	if err := d.ensureService(ctx); err != nil {
		t.Fatalf("second ensureService() failed: %v", err)
	}

	updated, err := clientset.CoreV1().Services(d.stack.Namespace).
		Get(ctx, d.stack.ServiceName(), metav1.GetOptions{})
	if err != nil {
		t.Fatalf("Service not found after update: %v", err)
	}
	if updated.Spec.ClusterIP != "10.96.0.42" {
		t.Errorf("ClusterIP not preserved on update, got %q", updated.Spec.ClusterIP)
	}
}

func TestEnsureConfigMapUpdatesExisting(t *testing.T) {
	d, clientset := newTestDeployer()
	ctx := context.Background()

	if err := d.ensureNamespace(ctx); err != nil {
		t.Fatalf("ensureNamespace() failed: %v", err)
	}
	if err := d.ensureConfigMap(ctx); err != nil {
		t.Fatalf("ensureConfigMap() failed: %v", err)
	}

	d.stack.Environment = "dependencies:\n  - python=3.12\n"
	if err := d.ensureConfigMap(ctx); err != nil {
		t.Fatalf("second ensureConfigMap() failed: %v", err)
	}

	cm, err := clientset.CoreV1().ConfigMaps(d.stack.Namespace).
		Get(ctx, d.stack.ConfigMapName(), metav1.GetOptions{})
	if err != nil {
		t.Fatalf("ConfigMap not found: %v", err)
	}
	if cm.Data[stack.EnvironmentFileName] != d.stack.Environment {
		t.Error("ConfigMap payload not updated")
	}
}
