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
	"bytes"
	"io"
	"os"

	"golang.org/x/term"
)

// ANSI control sequences used to redraw in place.
const (
	enterAltScreen = "\x1b[?1049h\x1b[?25l"
	exitAltScreen  = "\x1b[?25h\x1b[?1049l"
	clearScreen    = "\x1b[H\x1b[2J"
)

// Screen draws successive frames to an output. When the output is an
// interactive terminal each frame replaces the previous one in the terminal's
// alternate screen; otherwise frames are appended.
type Screen struct {
	out         io.Writer
	interactive bool
	started     bool
	buf         bytes.Buffer
}

// NewScreen creates a Screen writing to out.
func NewScreen(out io.Writer, interactive bool) *Screen {
	return &Screen{
		out:         out,
		interactive: interactive,
	}
}

// IsTerminal returns true if the writer is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Draw renders a frame with the specified function and writes it out. The
// frame is fully rendered before anything is written so that a failed render
// leaves the previous frame on screen.
func (s *Screen) Draw(render func(w io.Writer) error) error {
	s.buf.Reset()
	if err := render(&s.buf); err != nil {
		return err
	}

	if s.interactive {
		if !s.started {
			if _, err := io.WriteString(s.out, enterAltScreen); err != nil {
				return err
			}
			s.started = true
		}
		if _, err := io.WriteString(s.out, clearScreen); err != nil {
			return err
		}
	}

	_, err := s.out.Write(s.buf.Bytes())
	return err
}

// Close restores the terminal if the alternate screen was entered.
func (s *Screen) Close() error {
	if !s.started {
		return nil
	}
	s.started = false
	_, err := io.WriteString(s.out, exitAltScreen)
	return err
}
