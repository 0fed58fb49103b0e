package stack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
)

func TestParseNodeSelectors(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		want    map[string]string
		wantErr bool
	}{
		{
			name:  "empty returns nil",
			input: nil,
			want:  nil,
		},
		{
			name:  "single selector",
			input: []string{"nodeGroup=gpu"},
			want:  map[string]string{"nodeGroup": "gpu"},
		},
		{
			name:  "multiple selectors",
			input: []string{"nodeGroup=gpu", "zone=us-west-2a"},
			want:  map[string]string{"nodeGroup": "gpu", "zone": "us-west-2a"},
		},
		{
			name:  "value containing equals",
			input: []string{"expr=a=b"},
			want:  map[string]string{"expr": "a=b"},
		},
		{
			name:    "missing value",
			input:   []string{"nodeGroup"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNodeSelectors(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTolerations(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		want    []corev1.Toleration
		wantErr bool
	}{
		{
			name:  "empty returns nil",
			input: nil,
			want:  nil,
		},
		{
			name:  "key value effect",
			input: []string{"dedicated=inference:NoSchedule"},
			want: []corev1.Toleration{
				{
					Key:      "dedicated",
					Value:    "inference",
					Operator: corev1.TolerationOpEqual,
					Effect:   corev1.TaintEffectNoSchedule,
				},
			},
		},
		{
			name:  "key effect uses exists",
			input: []string{"nvidia.com/gpu:NoSchedule"},
			want: []corev1.Toleration{
				{
					Key:      "nvidia.com/gpu",
					Operator: corev1.TolerationOpExists,
					Effect:   corev1.TaintEffectNoSchedule,
				},
			},
		},
		{
			name:    "missing effect",
			input:   []string{"dedicated=inference"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTolerations(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
