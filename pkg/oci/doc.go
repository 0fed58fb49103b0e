/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package oci packages rendered manifest bundles as OCI artifacts and
// pushes them to OCI-compliant registries using ORAS.
//
// Output targets are parsed with ParseOutputTarget: targets prefixed with
// "oci://" are registry references, anything else is a local directory.
// Bundles are pushed with the media type
// "application/vnd.nvidia.inference-stack.bundle", which distinguishes
// them from runnable container images.
//
// Authentication uses the standard Docker credential store
// (~/.docker/config.json) via the ORAS credentials package.
package oci
