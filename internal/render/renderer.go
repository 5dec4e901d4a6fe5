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
	"fmt"
	"io"
	"os"

	spec "github.com/ktkim117/gpu-mon-cli/api/config/v1"
	"github.com/ktkim117/gpu-mon-cli/internal/snapshot"
)

// Renderer writes a frame to an output.
type Renderer interface {
	Render(w io.Writer, frame *snapshot.Frame) error
}

// Options control how a frame is presented.
type Options struct {
	Thresholds Thresholds
	BarWidth   int
	NoColor    bool
}

// NewOptions builds render Options from the config for output written to out.
func NewOptions(config *spec.Config, out io.Writer) Options {
	return Options{
		Thresholds: Thresholds{
			Warning:  uint32(*config.Flags.Display.TempWarning),
			Critical: uint32(*config.Flags.Display.TempCritical),
		},
		BarWidth: *config.Flags.Display.BarWidth,
		NoColor:  !useColor(*config.Flags.NoColor, IsTerminal(out)),
	}
}

// useColor reports whether output should be coloured. Colour is off for
// non-terminal output and whenever NO_COLOR is set to any non-empty value.
func useColor(noColor bool, terminal bool) bool {
	if noColor || !terminal {
		return false
	}
	return os.Getenv("NO_COLOR") == ""
}

// New returns the Renderer for the specified output format.
func New(format string, opts Options) (Renderer, error) {
	switch format {
	case spec.FormatTable:
		return newTableRenderer(opts), nil
	case spec.FormatJSON:
		return &jsonRenderer{}, nil
	case spec.FormatYAML:
		return &yamlRenderer{}, nil
	}
	return nil, fmt.Errorf("unsupported output format %q", format)
}
