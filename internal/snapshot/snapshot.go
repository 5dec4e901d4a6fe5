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
package snapshot

import (
	"errors"
	"fmt"
	"time"

	"github.com/ktkim117/gpu-mon-cli/internal/resource"
)

const (
	bytesPerMiB        = 1024 * 1024
	milliwattsPerWatt  = 1000.0
	driverVersionUnset = "N/A"
)

// Snapshot holds the metric values of one GPU at one refresh tick.
type Snapshot struct {
	Index       int    `json:"index"`
	UUID        string `json:"uuid"`
	Name        string `json:"name"`
	Temperature uint32 `json:"temperatureCelsius"`
	// FanSpeed is nil if the GPU does not report a fan speed.
	FanSpeed    *uint32 `json:"fanSpeedPercent"`
	PowerUsage  float64 `json:"powerUsageWatts"`
	PowerLimit  float64 `json:"powerLimitWatts"`
	MemoryUsed  uint64  `json:"memoryUsedMiB"`
	MemoryTotal uint64  `json:"memoryTotalMiB"`
	Utilization uint32  `json:"utilizationPercent"`
}

// MemoryPercent returns the used memory as a percentage of the total.
func (s Snapshot) MemoryPercent() float64 {
	if s.MemoryTotal == 0 {
		return 0
	}
	return float64(s.MemoryUsed) / float64(s.MemoryTotal) * 100
}

// PowerPercent returns the power draw as a percentage of the enforced limit.
func (s Snapshot) PowerPercent() float64 {
	if s.PowerLimit <= 0 {
		return 0
	}
	return s.PowerUsage / s.PowerLimit * 100
}

// Frame is everything rendered for a single refresh tick.
type Frame struct {
	Snapshots     []Snapshot `json:"gpus"`
	DriverVersion string     `json:"driverVersion"`
	Timestamp     time.Time  `json:"timestamp"`
}

// NewFrame collects a snapshot of every device along with the driver version.
// An empty device list yields an empty frame with the driver version "N/A"
// without querying the manager.
func NewFrame(manager resource.Manager, devices []resource.Device, now time.Time) (*Frame, error) {
	snapshots, err := Collect(devices)
	if err != nil {
		return nil, err
	}

	driverVersion := driverVersionUnset
	if len(devices) > 0 {
		driverVersion, err = manager.GetDriverVersion()
		if err != nil {
			return nil, err
		}
	}

	f := &Frame{
		Snapshots:     snapshots,
		DriverVersion: driverVersion,
		Timestamp:     now,
	}
	return f, nil
}

// Collect queries every device in order and returns one snapshot per device.
// Any query failure other than an unsupported fan speed is returned as an error.
func Collect(devices []resource.Device) ([]Snapshot, error) {
	snapshots := make([]Snapshot, 0, len(devices))
	for i, d := range devices {
		s, err := newSnapshot(d)
		if err != nil {
			return nil, fmt.Errorf("error querying GPU %d: %w", i, err)
		}
		snapshots = append(snapshots, *s)
	}
	return snapshots, nil
}

func newSnapshot(d resource.Device) (*Snapshot, error) {
	var s Snapshot
	var err error

	if s.Index, err = d.GetIndex(); err != nil {
		return nil, fmt.Errorf("index: %w", err)
	}
	if s.UUID, err = d.GetUUID(); err != nil {
		return nil, fmt.Errorf("uuid: %w", err)
	}
	if s.Name, err = d.GetName(); err != nil {
		return nil, fmt.Errorf("name: %w", err)
	}
	if s.Temperature, err = d.GetTemperature(); err != nil {
		return nil, fmt.Errorf("temperature: %w", err)
	}

	fan, err := d.GetFanSpeed()
	switch {
	case errors.Is(err, resource.ErrNotSupported):
	case err != nil:
		return nil, fmt.Errorf("fan speed: %w", err)
	default:
		s.FanSpeed = &fan
	}

	memory, err := d.GetMemoryInfo()
	if err != nil {
		return nil, fmt.Errorf("memory info: %w", err)
	}
	s.MemoryUsed = memory.Used / bytesPerMiB
	s.MemoryTotal = memory.Total / bytesPerMiB

	if s.Utilization, err = d.GetUtilization(); err != nil {
		return nil, fmt.Errorf("utilization: %w", err)
	}

	usage, err := d.GetPowerUsage()
	if err != nil {
		return nil, fmt.Errorf("power usage: %w", err)
	}
	s.PowerUsage = float64(usage) / milliwattsPerWatt

	limit, err := d.GetPowerLimit()
	if err != nil {
		return nil, fmt.Errorf("power limit: %w", err)
	}
	s.PowerLimit = float64(limit) / milliwattsPerWatt

	return &s, nil
}
