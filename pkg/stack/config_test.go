package stack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, DefaultNamespace, cfg.Namespace)
	assert.Equal(t, DefaultApp, cfg.App)
	assert.Equal(t, DefaultImage, cfg.Image)
	assert.EqualValues(t, DefaultGPUs, cfg.GPUs)
	assert.EqualValues(t, 1, cfg.Replicas)
	assert.EqualValues(t, DefaultNodePort, cfg.NodePort)
	assert.Equal(t, DefaultStorageClass, cfg.Storage.Class)

	require.NoError(t, cfg.Validate())
}

func TestApplyDefaultsFillsOnlyZeroFields(t *testing.T) {
	cfg := &Config{
		Namespace: "custom",
		GPUs:      4,
		Storage: StorageConfig{
			Server: "nfs.internal",
		},
	}
	cfg.ApplyDefaults()

	assert.Equal(t, "custom", cfg.Namespace)
	assert.EqualValues(t, 4, cfg.GPUs)
	assert.Equal(t, "nfs.internal", cfg.Storage.Server)

	// Everything left unset picks up the default.
	assert.Equal(t, DefaultApp, cfg.App)
	assert.Equal(t, DefaultImage, cfg.Image)
	assert.Equal(t, DefaultNFSPath, cfg.Storage.Path)
	assert.Equal(t, DefaultStorageCapacity, cfg.Storage.Capacity)

	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid defaults",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing namespace",
			mutate:  func(c *Config) { c.Namespace = "" },
			wantErr: "namespace is required",
		},
		{
			name:    "missing app",
			mutate:  func(c *Config) { c.App = "" },
			wantErr: "app name is required",
		},
		{
			name:    "invalid image",
			mutate:  func(c *Config) { c.Image = "Not A Reference!" },
			wantErr: "invalid image reference",
		},
		{
			name:    "zero gpus",
			mutate:  func(c *Config) { c.GPUs = 0 },
			wantErr: "at least one GPU",
		},
		{
			name:    "zero replicas",
			mutate:  func(c *Config) { c.Replicas = 0 },
			wantErr: "replicas must be at least 1",
		},
		{
			name:    "node port below range",
			mutate:  func(c *Config) { c.NodePort = 8080 },
			wantErr: "30000-32767",
		},
		{
			name:    "node port above range",
			mutate:  func(c *Config) { c.NodePort = 40000 },
			wantErr: "30000-32767",
		},
		{
			name:    "missing storage server",
			mutate:  func(c *Config) { c.Storage.Server = "" },
			wantErr: "storage server and path are required",
		},
		{
			name:    "bad capacity",
			mutate:  func(c *Config) { c.Storage.Capacity = "lots" },
			wantErr: "invalid storage capacity",
		},
		{
			name:    "bad shared memory",
			mutate:  func(c *Config) { c.SharedMemory = "big" },
			wantErr: "invalid shared memory size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDerivedNames(t *testing.T) {
	cfg := NewConfig()
	cfg.App = "serving"

	assert.Equal(t, "serving-models", cfg.VolumeName())
	assert.Equal(t, "serving-models", cfg.ClaimName())
	assert.Equal(t, "serving-environment", cfg.ConfigMapName())
	assert.Equal(t, "serving", cfg.ServiceName())
	assert.Equal(t, "serving", cfg.DeploymentName())
}

func TestSelectorLabelsAreSubsetOfLabels(t *testing.T) {
	cfg := NewConfig()
	labels := cfg.Labels()
	for k, v := range cfg.SelectorLabels() {
		assert.Equal(t, v, labels[k], "selector label %s must match resource labels", k)
	}
}
