/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package stack

import (
	"fmt"

	"github.com/distribution/reference"

	apperrors "github.com/NVIDIA/inference-stack/pkg/errors"
)

// ImageOverride is the image-substitution patch applied to the workload
// before render or apply: it swaps the repository (e.g., to an internal
// mirror) and/or the tag while leaving the other component intact.
type ImageOverride struct {
	// Name replaces the image repository when non-empty.
	Name string
	// Tag replaces the image tag when non-empty.
	Tag string
}

// IsZero reports whether the override changes nothing.
func (o ImageOverride) IsZero() bool {
	return o.Name == "" && o.Tag == ""
}

// Apply resolves the override against the given image reference and returns
// the patched reference in familiar (Docker CLI) form.
func (o ImageOverride) Apply(image string) (string, error) {
	named, err := reference.ParseNormalizedNamed(image)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid image reference %q", image), err)
	}

	name := reference.FamiliarName(named)
	if o.Name != "" {
		name = o.Name
	}

	tag := ""
	if tagged, ok := named.(reference.Tagged); ok {
		tag = tagged.Tag()
	}
	if o.Tag != "" {
		tag = o.Tag
	}

	patched := name
	if tag != "" {
		patched = fmt.Sprintf("%s:%s", name, tag)
	}

	// Reject overrides that produce an unparsable reference before the
	// cluster does.
	if _, err := reference.ParseNormalizedNamed(patched); err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("image override produced invalid reference %q", patched), err)
	}

	return patched, nil
}

// PatchImage applies the override to the configured workload image in place.
func (c *Config) PatchImage(o ImageOverride) error {
	if o.IsZero() {
		return nil
	}
	patched, err := o.Apply(c.Image)
	if err != nil {
		return err
	}
	c.Image = patched
	return nil
}
