/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package stack

import (
	"fmt"
	"io"

	"k8s.io/apimachinery/pkg/runtime"
	"sigs.k8s.io/yaml"

	apperrors "github.com/NVIDIA/inference-stack/pkg/errors"
)

// documentSeparator delimits documents in the aggregate manifest stream.
const documentSeparator = "---\n"

// Objects returns the full resource set in apply order: the namespace comes
// first because everything namespaced depends on it, and the workload comes
// after its volume claim and config so the pod never races its mounts.
func (c *Config) Objects() []runtime.Object {
	return []runtime.Object{
		c.BuildNamespace(),
		c.BuildPersistentVolume(),
		c.BuildPersistentVolumeClaim(),
		c.BuildConfigMap(),
		c.BuildDeployment(),
		c.BuildService(),
	}
}

// Render writes the aggregate resource list as a multi-document YAML stream.
// Kubernetes API types carry only json tags, so each document is marshaled
// through sigs.k8s.io/yaml rather than a plain YAML encoder.
func (c *Config) Render(w io.Writer) error {
	if err := c.Validate(); err != nil {
		return err
	}

	for i, obj := range c.Objects() {
		if i > 0 {
			if _, err := io.WriteString(w, documentSeparator); err != nil {
				return apperrors.Wrap(apperrors.ErrCodeInternal, "failed to write manifest stream", err)
			}
		}
		doc, err := yaml.Marshal(obj)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrCodeInternal,
				fmt.Sprintf("failed to marshal %T", obj), err)
		}
		if _, err := w.Write(doc); err != nil {
			return apperrors.Wrap(apperrors.ErrCodeInternal, "failed to write manifest stream", err)
		}
	}
	return nil
}
