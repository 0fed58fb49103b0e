package stack

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"sigs.k8s.io/yaml"
)

func TestObjectsOrder(t *testing.T) {
	cfg := NewConfig()
	objs := cfg.Objects()
	require.Len(t, objs, 6)

	// The namespace must lead the apply order.
	_, ok := objs[0].(*corev1.Namespace)
	assert.True(t, ok, "first object must be the Namespace")

	// The workload must come after claim and config.
	depIdx, pvcIdx, cmIdx := -1, -1, -1
	for i, o := range objs {
		switch o.(type) {
		case *appsv1.Deployment:
			depIdx = i
		case *corev1.PersistentVolumeClaim:
			pvcIdx = i
		case *corev1.ConfigMap:
			cmIdx = i
		}
	}
	require.NotEqual(t, -1, depIdx)
	assert.Greater(t, depIdx, pvcIdx)
	assert.Greater(t, depIdx, cmIdx)
}

func TestRenderRoundTrip(t *testing.T) {
	cfg := NewConfig()
	var buf bytes.Buffer
	require.NoError(t, cfg.Render(&buf))

	docs := strings.Split(buf.String(), "\n---\n")
	require.Len(t, docs, 6)

	// Every document carries apiVersion/kind and round-trips into its
	// typed object.
	kinds := make([]string, 0, len(docs))
	for _, doc := range docs {
		var meta struct {
			APIVersion string `json:"apiVersion"`
			Kind       string `json:"kind"`
		}
		require.NoError(t, yaml.Unmarshal([]byte(doc), &meta))
		require.NotEmpty(t, meta.APIVersion, "document missing apiVersion: %s", doc[:min(len(doc), 80)])
		require.NotEmpty(t, meta.Kind)
		kinds = append(kinds, meta.Kind)
	}
	assert.Equal(t, []string{
		"Namespace",
		"PersistentVolume",
		"PersistentVolumeClaim",
		"ConfigMap",
		"Deployment",
		"Service",
	}, kinds)

	// Spot-check that the deployment document restores losslessly.
	var dep appsv1.Deployment
	require.NoError(t, yaml.Unmarshal([]byte(docs[4]), &dep))
	assert.Equal(t, cfg.DeploymentName(), dep.Name)
	assert.Equal(t, cfg.Image, dep.Spec.Template.Spec.Containers[0].Image)

	var svc corev1.Service
	require.NoError(t, yaml.Unmarshal([]byte(docs[5]), &svc))
	assert.EqualValues(t, cfg.NodePort, svc.Spec.Ports[0].NodePort)
}

func TestRenderValidatesFirst(t *testing.T) {
	cfg := NewConfig()
	cfg.GPUs = 0

	var buf bytes.Buffer
	err := cfg.Render(&buf)
	require.Error(t, err)
	assert.Zero(t, buf.Len(), "invalid config must not produce partial output")
}
