/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package stack

import (
	"fmt"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
	"k8s.io/utils/ptr"
)

// gpuResourceName is the extended resource advertised by the NVIDIA device
// plugin.
const gpuResourceName = "nvidia.com/gpu"

// Volume names within the pod spec.
const (
	volumeModels      = "models"
	volumeEnvironment = "environment"
	volumeHostModels  = "host-models"
	volumeSharedMem   = "shm"
)

// BuildDeployment builds the single-replica GPU serving workload.
//
// The strategy is Recreate: the replica holds every requested GPU on its
// node, so a rolling update would deadlock waiting for devices the old pod
// still owns.
func (c *Config) BuildDeployment() *appsv1.Deployment {
	gpuQty := resource.MustParse(fmt.Sprintf("%d", c.GPUs))

	return &appsv1.Deployment{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "apps/v1",
			Kind:       "Deployment",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      c.DeploymentName(),
			Namespace: c.Namespace,
			Labels:    c.Labels(),
		},
		Spec: appsv1.DeploymentSpec{
			Replicas: ptr.To(c.Replicas),
			Strategy: appsv1.DeploymentStrategy{
				Type: appsv1.RecreateDeploymentStrategyType,
			},
			Selector: &metav1.LabelSelector{
				MatchLabels: c.SelectorLabels(),
			},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{
					Labels: c.Labels(),
				},
				Spec: corev1.PodSpec{
					RuntimeClassName: ptr.To(c.RuntimeClass),
					NodeSelector:     c.NodeSelector,
					Tolerations:      c.Tolerations,
					Containers: []corev1.Container{
						{
							Name:  c.App,
							Image: c.Image,
							Args: []string{
								"--model", c.Model,
								"--tensor-parallel-size", fmt.Sprintf("%d", c.GPUs),
								"--port", fmt.Sprintf("%d", c.ContainerPort),
							},
							Env: []corev1.EnvVar{
								{
									// Read by the entrypoint to provision the
									// runtime environment before serving starts.
									Name:  "NIS_ENVIRONMENT_FILE",
									Value: EnvironmentMountPath,
								},
								{
									Name:  "HF_HOME",
									Value: ModelCacheMountPath,
								},
							},
							Ports: []corev1.ContainerPort{
								{
									Name:          "http",
									ContainerPort: c.ContainerPort,
									Protocol:      corev1.ProtocolTCP,
								},
							},
							Resources: corev1.ResourceRequirements{
								Requests: corev1.ResourceList{
									gpuResourceName: gpuQty,
								},
								Limits: corev1.ResourceList{
									gpuResourceName: gpuQty,
								},
							},
							ReadinessProbe: &corev1.Probe{
								ProbeHandler: corev1.ProbeHandler{
									HTTPGet: &corev1.HTTPGetAction{
										Path: "/health",
										Port: intstr.FromString("http"),
									},
								},
								// Model load dominates startup.
								InitialDelaySeconds: 30,
								PeriodSeconds:       10,
								FailureThreshold:    60,
							},
							LivenessProbe: &corev1.Probe{
								ProbeHandler: corev1.ProbeHandler{
									HTTPGet: &corev1.HTTPGetAction{
										Path: "/health",
										Port: intstr.FromString("http"),
									},
								},
								InitialDelaySeconds: 120,
								PeriodSeconds:       30,
								FailureThreshold:    5,
							},
							VolumeMounts: []corev1.VolumeMount{
								{
									Name:      volumeModels,
									MountPath: ModelCacheMountPath,
									SubPath:   "hf-cache",
								},
								{
									Name:      volumeModels,
									MountPath: DatasetMountPath,
									SubPath:   "datasets",
								},
								{
									Name:      volumeEnvironment,
									MountPath: EnvironmentMountPath,
									SubPath:   EnvironmentFileName,
									ReadOnly:  true,
								},
								{
									Name:      volumeHostModels,
									MountPath: HostModelsPath,
									ReadOnly:  true,
								},
								{
									Name:      volumeSharedMem,
									MountPath: SharedMemoryMountPath,
								},
							},
						},
					},
					Volumes: []corev1.Volume{
						{
							Name: volumeModels,
							VolumeSource: corev1.VolumeSource{
								PersistentVolumeClaim: &corev1.PersistentVolumeClaimVolumeSource{
									ClaimName: c.ClaimName(),
								},
							},
						},
						{
							Name: volumeEnvironment,
							VolumeSource: corev1.VolumeSource{
								ConfigMap: &corev1.ConfigMapVolumeSource{
									LocalObjectReference: corev1.LocalObjectReference{
										Name: c.ConfigMapName(),
									},
								},
							},
						},
						{
							Name: volumeHostModels,
							VolumeSource: corev1.VolumeSource{
								HostPath: &corev1.HostPathVolumeSource{
									Path: HostModelsPath,
									Type: ptr.To(corev1.HostPathDirectoryOrCreate),
								},
							},
						},
						{
							Name: volumeSharedMem,
							VolumeSource: corev1.VolumeSource{
								EmptyDir: &corev1.EmptyDirVolumeSource{
									Medium:    corev1.StorageMediumMemory,
									SizeLimit: ptr.To(resource.MustParse(c.SharedMemory)),
								},
							},
						},
					},
				},
			},
		},
	}
}
