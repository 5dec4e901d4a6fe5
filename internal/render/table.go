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
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/ktkim117/gpu-mon-cli/internal/snapshot"
)

const (
	title            = "GPU Monitor"
	timestampLayout  = "2006-01-02 15:04:05"
	fanNotApplicable = "N/A"
)

var header = []string{"ID", "GPU Name", "Temp", "Fan", "Power (W)", "Memory (MiB)", "GPU Util"}

// palette holds the colours used by the table renderer.
type palette struct {
	title    *color.Color
	id       *color.Color
	name     *color.Color
	power    *color.Color
	memory   *color.Color
	util     *color.Color
	dim      *color.Color
	levels   map[Level]*color.Color
	disabled bool
}

func newPalette(noColor bool) *palette {
	p := &palette{
		title:  color.New(color.FgYellow, color.Bold),
		id:     color.New(color.FgCyan),
		name:   color.New(color.FgMagenta),
		power:  color.New(color.FgYellow),
		memory: color.New(color.FgBlue),
		util:   color.New(color.FgMagenta),
		dim:    color.New(color.Faint),
		levels: map[Level]*color.Color{
			LevelNormal:   color.New(color.FgGreen),
			LevelWarning:  color.New(color.FgYellow),
			LevelCritical: color.New(color.FgRed, color.Bold),
		},
		disabled: noColor,
	}

	all := []*color.Color{p.title, p.id, p.name, p.power, p.memory, p.util, p.dim}
	for _, c := range p.levels {
		all = append(all, c)
	}
	// Options.NoColor already accounts for the terminal and NO_COLOR, so the
	// global color.NoColor is overridden in both directions.
	for _, c := range all {
		if noColor {
			c.DisableColor()
		} else {
			c.EnableColor()
		}
	}
	return p
}

type tableRenderer struct {
	opts    Options
	palette *palette
}

var _ Renderer = (*tableRenderer)(nil)

func newTableRenderer(opts Options) *tableRenderer {
	return &tableRenderer{
		opts:    opts,
		palette: newPalette(opts.NoColor),
	}
}

// Render draws the frame as a table with a title line and a footer caption.
func (r *tableRenderer) Render(w io.Writer, frame *snapshot.Frame) error {
	if _, err := fmt.Fprintln(w, r.palette.title.Sprint(title)); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetRowLine(true)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
	})
	if !r.palette.disabled {
		headerColors := make([]tablewriter.Colors, len(header))
		for i := range headerColors {
			headerColors[i] = tablewriter.Colors{tablewriter.Bold}
		}
		table.SetHeaderColor(headerColors...)
	}

	for _, s := range frame.Snapshots {
		table.Append(r.row(s))
	}

	table.SetCaption(true, r.palette.dim.Sprint(footer(frame)))
	table.Render()

	return nil
}

// row formats a single snapshot. Percentage-like cells hold the value on the
// first line and a progress bar on the second.
func (r *tableRenderer) row(s snapshot.Snapshot) []string {
	p := r.palette
	width := r.opts.BarWidth

	level := r.opts.Thresholds.Classify(s.Temperature)
	temp := p.levels[level].Sprintf("%d°C", s.Temperature)

	fan := p.dim.Sprint(fanNotApplicable)
	if s.FanSpeed != nil {
		fan = fmt.Sprintf("%d%%", *s.FanSpeed)
	}

	power := fmt.Sprintf("%.1fW / %.0fW\n%s", s.PowerUsage, s.PowerLimit, p.power.Sprint(Bar(s.PowerPercent(), width)))
	memory := fmt.Sprintf("%dMiB / %dMiB\n%s", s.MemoryUsed, s.MemoryTotal, p.memory.Sprint(Bar(s.MemoryPercent(), width)))
	util := fmt.Sprintf("%d%%\n%s", s.Utilization, p.util.Sprint(Bar(float64(s.Utilization), width)))

	return []string{
		p.id.Sprint(strconv.Itoa(s.Index)),
		p.name.Sprint(s.Name),
		temp,
		fan,
		power,
		memory,
		util,
	}
}

func footer(frame *snapshot.Frame) string {
	return fmt.Sprintf("NVIDIA Driver: %s | Last updated: %s", frame.DriverVersion, frame.Timestamp.Format(timestampLayout))
}
