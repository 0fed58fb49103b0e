/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package stack

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// BuildConfigMap builds the dependency manifest ConfigMap. The workload
// mounts the single item as a file; the container entrypoint reads it to
// provision the Python runtime before the serving process starts.
func (c *Config) BuildConfigMap() *corev1.ConfigMap {
	return &corev1.ConfigMap{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "ConfigMap",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      c.ConfigMapName(),
			Namespace: c.Namespace,
			Labels:    c.Labels(),
		},
		Data: map[string]string{
			EnvironmentFileName: c.EnvironmentPayload(),
		},
	}
}
