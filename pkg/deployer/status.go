/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package deployer

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// ResourceStatus describes the observed state of a single stack resource.
type ResourceStatus struct {
	Kind   string `json:"kind" yaml:"kind"`
	Name   string `json:"name" yaml:"name"`
	Exists bool   `json:"exists" yaml:"exists"`
	Ready  bool   `json:"ready" yaml:"ready"`
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// StackStatus aggregates the observed state of the whole stack.
type StackStatus struct {
	Namespace string           `json:"namespace" yaml:"namespace"`
	App       string           `json:"app" yaml:"app"`
	Available bool             `json:"available" yaml:"available"`
	Endpoint  string           `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	Resources []ResourceStatus `json:"resources" yaml:"resources"`
}

// Status inspects every stack resource and reports its state. Missing
// resources are reported, not treated as errors, so Status works on a
// cluster where the stack was never deployed.
func (d *Deployer) Status(ctx context.Context) (*StackStatus, error) {
	st := &StackStatus{
		Namespace: d.stack.Namespace,
		App:       d.stack.App,
	}

	nsStatus := ResourceStatus{Kind: "Namespace", Name: d.stack.Namespace}
	if ns, err := d.clientset.CoreV1().Namespaces().Get(ctx, d.stack.Namespace, metav1.GetOptions{}); err == nil {
		nsStatus.Exists = true
		nsStatus.Ready = ns.Status.Phase == corev1.NamespaceActive
		nsStatus.Detail = string(ns.Status.Phase)
	} else if ignoreNotFound(err) != nil {
		return nil, fmt.Errorf("failed to get Namespace: %w", err)
	}
	st.Resources = append(st.Resources, nsStatus)

	pvStatus := ResourceStatus{Kind: "PersistentVolume", Name: d.stack.VolumeName()}
	if pv, err := d.clientset.CoreV1().PersistentVolumes().Get(ctx, d.stack.VolumeName(), metav1.GetOptions{}); err == nil {
		pvStatus.Exists = true
		pvStatus.Ready = pv.Status.Phase == corev1.VolumeBound || pv.Status.Phase == corev1.VolumeAvailable
		pvStatus.Detail = string(pv.Status.Phase)
	} else if ignoreNotFound(err) != nil {
		return nil, fmt.Errorf("failed to get PersistentVolume: %w", err)
	}
	st.Resources = append(st.Resources, pvStatus)

	pvcStatus := ResourceStatus{Kind: "PersistentVolumeClaim", Name: d.stack.ClaimName()}
	if pvc, err := d.clientset.CoreV1().PersistentVolumeClaims(d.stack.Namespace).
		Get(ctx, d.stack.ClaimName(), metav1.GetOptions{}); err == nil {
		pvcStatus.Exists = true
		pvcStatus.Ready = pvc.Status.Phase == corev1.ClaimBound
		pvcStatus.Detail = string(pvc.Status.Phase)
	} else if ignoreNotFound(err) != nil {
		return nil, fmt.Errorf("failed to get PersistentVolumeClaim: %w", err)
	}
	st.Resources = append(st.Resources, pvcStatus)

	cmStatus := ResourceStatus{Kind: "ConfigMap", Name: d.stack.ConfigMapName()}
	if _, err := d.clientset.CoreV1().ConfigMaps(d.stack.Namespace).
		Get(ctx, d.stack.ConfigMapName(), metav1.GetOptions{}); err == nil {
		cmStatus.Exists = true
		cmStatus.Ready = true
	} else if ignoreNotFound(err) != nil {
		return nil, fmt.Errorf("failed to get ConfigMap: %w", err)
	}
	st.Resources = append(st.Resources, cmStatus)

	depStatus := ResourceStatus{Kind: "Deployment", Name: d.stack.DeploymentName()}
	if dep, err := d.clientset.AppsV1().Deployments(d.stack.Namespace).
		Get(ctx, d.stack.DeploymentName(), metav1.GetOptions{}); err == nil {
		depStatus.Exists = true
		depStatus.Ready = deploymentAvailable(dep)
		depStatus.Detail = fmt.Sprintf("%d/%d replicas available",
			dep.Status.AvailableReplicas, dep.Status.Replicas)
	} else if ignoreNotFound(err) != nil {
		return nil, fmt.Errorf("failed to get Deployment: %w", err)
	}
	st.Resources = append(st.Resources, depStatus)

	svcStatus := ResourceStatus{Kind: "Service", Name: d.stack.ServiceName()}
	if svc, err := d.clientset.CoreV1().Services(d.stack.Namespace).
		Get(ctx, d.stack.ServiceName(), metav1.GetOptions{}); err == nil {
		svcStatus.Exists = true
		svcStatus.Ready = true
		if len(svc.Spec.Ports) > 0 {
			svcStatus.Detail = fmt.Sprintf("nodePort %d", svc.Spec.Ports[0].NodePort)
			if ep, epErr := d.nodeEndpoint(ctx, svc.Spec.Ports[0].NodePort); epErr == nil {
				st.Endpoint = ep
			}
		}
	} else if ignoreNotFound(err) != nil {
		return nil, fmt.Errorf("failed to get Service: %w", err)
	}
	st.Resources = append(st.Resources, svcStatus)

	st.Available = depStatus.Ready && svcStatus.Ready
	return st, nil
}

// nodeEndpoint returns host:port for the first schedulable node address.
func (d *Deployer) nodeEndpoint(ctx context.Context, nodePort int32) (string, error) {
	nodes, err := d.clientset.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
	if err != nil {
		return "", err
	}
	for _, node := range nodes.Items {
		for _, addr := range node.Status.Addresses {
			if addr.Type == corev1.NodeInternalIP || addr.Type == corev1.NodeExternalIP {
				return fmt.Sprintf("%s:%d", addr.Address, nodePort), nil
			}
		}
	}
	return "", fmt.Errorf("no node addresses found")
}
