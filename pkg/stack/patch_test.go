package stack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageOverrideApply(t *testing.T) {
	tests := []struct {
		name     string
		image    string
		override ImageOverride
		want     string
		wantErr  bool
	}{
		{
			name:     "replace name keeps tag",
			image:    "vllm/vllm-openai:v0.10.0",
			override: ImageOverride{Name: "registry.internal/mirror/vllm-openai"},
			want:     "registry.internal/mirror/vllm-openai:v0.10.0",
		},
		{
			name:     "replace tag keeps name",
			image:    "vllm/vllm-openai:v0.10.0",
			override: ImageOverride{Tag: "v0.10.1"},
			want:     "vllm/vllm-openai:v0.10.1",
		},
		{
			name:     "replace both",
			image:    "vllm/vllm-openai:v0.10.0",
			override: ImageOverride{Name: "localhost:5000/vllm-openai", Tag: "nightly"},
			want:     "localhost:5000/vllm-openai:nightly",
		},
		{
			name:     "untagged original gets override tag",
			image:    "vllm/vllm-openai",
			override: ImageOverride{Tag: "v0.10.0"},
			want:     "vllm/vllm-openai:v0.10.0",
		},
		{
			name:    "invalid original reference",
			image:   "not a reference",
			wantErr: true,
		},
		{
			name:     "override producing invalid reference",
			image:    "vllm/vllm-openai:v0.10.0",
			override: ImageOverride{Name: "UPPERCASE/NOT/ALLOWED"},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.override.Apply(tt.image)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPatchImage(t *testing.T) {
	cfg := NewConfig()
	original := cfg.Image

	// Zero override is a no-op.
	require.NoError(t, cfg.PatchImage(ImageOverride{}))
	assert.Equal(t, original, cfg.Image)

	require.NoError(t, cfg.PatchImage(ImageOverride{Name: "registry.internal/vllm-openai"}))
	assert.Equal(t, "registry.internal/vllm-openai:v0.10.0", cfg.Image)

	// The patched image flows into the built workload.
	dep := cfg.BuildDeployment()
	assert.Equal(t, "registry.internal/vllm-openai:v0.10.0", dep.Spec.Template.Spec.Containers[0].Image)
}

func TestPatchImageInvalidLeavesConfigUntouched(t *testing.T) {
	cfg := NewConfig()
	original := cfg.Image

	err := cfg.PatchImage(ImageOverride{Name: "BAD NAME"})
	require.Error(t, err)
	assert.Equal(t, original, cfg.Image)
}
