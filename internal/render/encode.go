/**
# Copyright (c) 2024, NVIDIA CORPORATION.  All rights reserved.
#
# Licensed under the Apache License, Version 2.0 (the "License");
# you may not use this file except in compliance with the License.
# You may obtain a copy of the License at
#
#     http://www.apache.org/licenses/LICENSE-2.0
#
# Unless required by applicable law or agreed to in writing, software
# distributed under the License is distributed on an "AS IS" BASIS,
# WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
# See the License for the specific language governing permissions and
# limitations under the License.
**/
package render

import (
	"encoding/json"
	"fmt"
	"io"

	"sigs.k8s.io/yaml"

	"github.com/ktkim117/gpu-mon-cli/internal/snapshot"
)

// jsonRenderer writes one compact JSON document per frame, so that a stream
// of frames can be consumed line by line.
type jsonRenderer struct{}

func (r *jsonRenderer) Render(w io.Writer, frame *snapshot.Frame) error {
	if err := json.NewEncoder(w).Encode(frame); err != nil {
		return fmt.Errorf("failed to encode frame as JSON: %w", err)
	}
	return nil
}

// yamlRenderer writes each frame as a separate YAML document.
type yamlRenderer struct{}

func (r *yamlRenderer) Render(w io.Writer, frame *snapshot.Frame) error {
	out, err := yaml.Marshal(frame)
	if err != nil {
		return fmt.Errorf("failed to encode frame as YAML: %w", err)
	}
	if _, err := fmt.Fprintf(w, "---\n%s", out); err != nil {
		return err
	}
	return nil
}
