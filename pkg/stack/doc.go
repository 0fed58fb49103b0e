// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package stack declares the inference stack topology as typed Kubernetes
// objects: a namespace, an NFS-backed PersistentVolume and its claim, a
// single-replica GPU serving Deployment, a fixed NodePort Service, and a
// dependency manifest ConfigMap.
//
// The Config type is the single source of truth. It loads from a YAML file
// (partial configs are filled with defaults), validates the values the
// cluster would reject, applies an optional image-substitution patch, and
// produces either typed objects for the deployer or a rendered
// multi-document YAML aggregate:
//
//	cfg := stack.NewConfig()
//	if err := cfg.PatchImage(stack.ImageOverride{Name: "registry.internal/vllm-openai"}); err != nil {
//	    return err
//	}
//	if err := cfg.Render(os.Stdout); err != nil {
//	    return err
//	}
//
// All reconciliation semantics live in pkg/deployer; this package only
// declares desired state.
package stack
