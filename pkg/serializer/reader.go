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

package serializer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"sigs.k8s.io/yaml"
)

// Deserialize reads data in the given format from r into v, which must be a
// pointer. YAML input is decoded through sigs.k8s.io/yaml so that embedded
// Kubernetes API types, which carry json tags only, map their fields.
func Deserialize(format Format, r io.Reader, v any) error {
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(v); err != nil {
			return fmt.Errorf("failed to decode JSON: %w", err)
		}
	case FormatYAML:
		payload, err := io.ReadAll(r)
		if err != nil {
			return fmt.Errorf("failed to read YAML: %w", err)
		}
		if err := yaml.Unmarshal(payload, v); err != nil {
			return fmt.Errorf("failed to decode YAML: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
	return nil
}

// FromFile loads a typed value from a YAML or JSON file, detecting the
// format from the file extension.
func FromFile[T any](filePath string) (*T, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var v T
	if err := Deserialize(FormatFromPath(filePath), file, &v); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", filePath, err)
	}
	return &v, nil
}
