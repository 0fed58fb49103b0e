/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package stack

import (
	"fmt"

	"github.com/distribution/reference"
	corev1 "k8s.io/api/core/v1"
	apiresource "k8s.io/apimachinery/pkg/api/resource"

	apperrors "github.com/NVIDIA/inference-stack/pkg/errors"
)

// Default topology values. Overridable via a stack config file or flags.
const (
	// DefaultNamespace is the namespace isolating all stack resources.
	DefaultNamespace = "inference"

	// DefaultApp is the workload name used for resource names and selectors.
	DefaultApp = "vllm"

	// DefaultImage is the pinned inference-serving image.
	DefaultImage = "vllm/vllm-openai:v0.10.0"

	// DefaultModel is the model identifier served by the workload.
	DefaultModel = "facebook/opt-125m"

	// DefaultGPUs is the number of GPU devices requested by the workload.
	DefaultGPUs = 2

	// DefaultContainerPort is the serving port inside the container.
	DefaultContainerPort = 8000

	// DefaultNodePort is the fixed external-facing port on every node.
	DefaultNodePort = 30800

	// DefaultRuntimeClass selects the GPU container runtime.
	DefaultRuntimeClass = "nvidia"

	// DefaultSharedMemory is the size limit of the /dev/shm volume.
	// Tensor-parallel serving moves activations between workers through
	// shared memory, so the kernel default of 64Mi is far too small.
	DefaultSharedMemory = "16Gi"
)

// Default storage values.
const (
	DefaultStorageCapacity = "500Gi"
	DefaultStorageClass    = "nfs"
	DefaultNFSServer       = "10.0.0.10"
	DefaultNFSPath         = "/export/models"
)

// Container mount paths.
const (
	// ModelCacheMountPath is where the model weight cache (PVC) is mounted.
	ModelCacheMountPath = "/root/.cache/huggingface"

	// DatasetMountPath is where the dataset portion of the PVC is mounted.
	DatasetMountPath = "/data/datasets"

	// EnvironmentMountPath is where the dependency manifest file lands.
	EnvironmentMountPath = "/opt/nis/environment.yml"

	// HostModelsPath is the node-local model directory mounted into the pod.
	HostModelsPath = "/mnt/models"

	// SharedMemoryMountPath is the shared memory mount.
	SharedMemoryMountPath = "/dev/shm"
)

// StorageConfig describes the NFS-backed persistent storage declaration.
type StorageConfig struct {
	// Server is the network storage server address.
	Server string `yaml:"server" json:"server"`
	// Path is the export path on the storage server.
	Path string `yaml:"path" json:"path"`
	// Capacity is the declared volume capacity (e.g., "500Gi").
	Capacity string `yaml:"capacity" json:"capacity"`
	// Class is the storage class binding the claim to the volume.
	Class string `yaml:"class" json:"class"`
}

// Config describes the declarative topology of the inference stack: one
// namespace, an NFS-backed volume and claim, a single-replica GPU workload,
// a NodePort service, and a dependency manifest ConfigMap.
type Config struct {
	// Namespace isolates all other resources.
	Namespace string `yaml:"namespace" json:"namespace"`

	// App names the workload and labels every resource.
	App string `yaml:"app" json:"app"`

	// Image is the pinned inference-serving container image.
	Image string `yaml:"image" json:"image"`

	// Model is the model identifier passed to the serving process.
	Model string `yaml:"model" json:"model"`

	// GPUs is the number of nvidia.com/gpu devices requested.
	GPUs int64 `yaml:"gpus" json:"gpus"`

	// Replicas is the workload replica count. The stack serves from a
	// single node-pinned replica; scaling out requires model-aware
	// routing that lives outside this topology.
	Replicas int32 `yaml:"replicas" json:"replicas"`

	// ContainerPort is the serving port inside the container.
	ContainerPort int32 `yaml:"containerPort" json:"containerPort"`

	// NodePort is the fixed port exposed on every cluster node.
	NodePort int32 `yaml:"nodePort" json:"nodePort"`

	// RuntimeClass is the runtime class name for GPU device access.
	RuntimeClass string `yaml:"runtimeClass" json:"runtimeClass"`

	// SharedMemory is the size limit for the /dev/shm emptyDir.
	SharedMemory string `yaml:"sharedMemory" json:"sharedMemory"`

	// NodeSelector restricts scheduling to matching nodes.
	NodeSelector map[string]string `yaml:"nodeSelector,omitempty" json:"nodeSelector,omitempty"`

	// Tolerations allow scheduling on tainted GPU nodes.
	Tolerations []corev1.Toleration `yaml:"tolerations,omitempty" json:"tolerations,omitempty"`

	// Storage declares the NFS volume backing the model and dataset cache.
	Storage StorageConfig `yaml:"storage" json:"storage"`

	// Environment is the dependency manifest payload embedded in the
	// ConfigMap. Empty selects the built-in default.
	Environment string `yaml:"environment,omitempty" json:"environment,omitempty"`
}

// NewConfig returns a Config populated with the default topology.
func NewConfig() *Config {
	return &Config{
		Namespace:     DefaultNamespace,
		App:           DefaultApp,
		Image:         DefaultImage,
		Model:         DefaultModel,
		GPUs:          DefaultGPUs,
		Replicas:      1,
		ContainerPort: DefaultContainerPort,
		NodePort:      DefaultNodePort,
		RuntimeClass:  DefaultRuntimeClass,
		SharedMemory:  DefaultSharedMemory,
		Storage: StorageConfig{
			Server:   DefaultNFSServer,
			Path:     DefaultNFSPath,
			Capacity: DefaultStorageCapacity,
			Class:    DefaultStorageClass,
		},
	}
}

// ApplyDefaults fills zero-valued fields with defaults. Used after loading a
// partial config file so users only declare what they change.
func (c *Config) ApplyDefaults() {
	def := NewConfig()
	if c.Namespace == "" {
		c.Namespace = def.Namespace
	}
	if c.App == "" {
		c.App = def.App
	}
	if c.Image == "" {
		c.Image = def.Image
	}
	if c.Model == "" {
		c.Model = def.Model
	}
	if c.GPUs == 0 {
		c.GPUs = def.GPUs
	}
	if c.Replicas == 0 {
		c.Replicas = def.Replicas
	}
	if c.ContainerPort == 0 {
		c.ContainerPort = def.ContainerPort
	}
	if c.NodePort == 0 {
		c.NodePort = def.NodePort
	}
	if c.RuntimeClass == "" {
		c.RuntimeClass = def.RuntimeClass
	}
	if c.SharedMemory == "" {
		c.SharedMemory = def.SharedMemory
	}
	if c.Storage.Server == "" {
		c.Storage.Server = def.Storage.Server
	}
	if c.Storage.Path == "" {
		c.Storage.Path = def.Storage.Path
	}
	if c.Storage.Capacity == "" {
		c.Storage.Capacity = def.Storage.Capacity
	}
	if c.Storage.Class == "" {
		c.Storage.Class = def.Storage.Class
	}
}

// Validate checks the config for values the cluster would reject at apply
// time. Failing fast here produces one actionable error instead of a partial
// apply.
func (c *Config) Validate() error {
	if c.Namespace == "" {
		return apperrors.New(apperrors.ErrCodeInvalidRequest, "namespace is required")
	}
	if c.App == "" {
		return apperrors.New(apperrors.ErrCodeInvalidRequest, "app name is required")
	}
	if _, err := reference.ParseNormalizedNamed(c.Image); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid image reference %q", c.Image), err)
	}
	if c.GPUs < 1 {
		return apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			"at least one GPU device is required", map[string]any{"gpus": c.GPUs})
	}
	if c.Replicas < 1 {
		return apperrors.New(apperrors.ErrCodeInvalidRequest, "replicas must be at least 1")
	}
	if c.ContainerPort < 1 || c.ContainerPort > 65535 {
		return apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			"invalid container port", map[string]any{"port": c.ContainerPort})
	}
	// The kube-apiserver default NodePort range.
	if c.NodePort < 30000 || c.NodePort > 32767 {
		return apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			"node port must be within 30000-32767", map[string]any{"nodePort": c.NodePort})
	}
	if c.Storage.Server == "" || c.Storage.Path == "" {
		return apperrors.New(apperrors.ErrCodeInvalidRequest, "storage server and path are required")
	}
	if _, err := apiresource.ParseQuantity(c.Storage.Capacity); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid storage capacity %q", c.Storage.Capacity), err)
	}
	if _, err := apiresource.ParseQuantity(c.SharedMemory); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid shared memory size %q", c.SharedMemory), err)
	}
	return nil
}

// Resource names derived from the app name.

// VolumeName returns the PersistentVolume name.
func (c *Config) VolumeName() string { return fmt.Sprintf("%s-models", c.App) }

// ClaimName returns the PersistentVolumeClaim name.
func (c *Config) ClaimName() string { return fmt.Sprintf("%s-models", c.App) }

// ConfigMapName returns the dependency manifest ConfigMap name.
func (c *Config) ConfigMapName() string { return fmt.Sprintf("%s-environment", c.App) }

// ServiceName returns the Service name.
func (c *Config) ServiceName() string { return c.App }

// DeploymentName returns the Deployment name.
func (c *Config) DeploymentName() string { return c.App }

// Labels returns the common label set stamped on every stack resource.
func (c *Config) Labels() map[string]string {
	return map[string]string{
		"app.kubernetes.io/name":       c.App,
		"app.kubernetes.io/part-of":    "inference-stack",
		"app.kubernetes.io/managed-by": "nisctl",
	}
}

// SelectorLabels returns the subset of labels used for pod selection.
// Kept minimal and stable: selectors are immutable on Deployments.
func (c *Config) SelectorLabels() map[string]string {
	return map[string]string{
		"app.kubernetes.io/name": c.App,
	}
}
