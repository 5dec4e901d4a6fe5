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

package resource

import "errors"

// ErrNotSupported is returned by a Device getter when the underlying GPU does
// not expose the requested metric (e.g. fan speed on a passively cooled GPU).
var ErrNotSupported = errors.New("not supported")

// MemoryInfo holds the framebuffer memory counters of a device in bytes.
type MemoryInfo struct {
	Total uint64
	Used  uint64
}

//go:generate moq -stub -out manager_mock.go . Manager

// Manager defines an interface for initialising the vendor library and
// enumerating the devices it reports.
type Manager interface {
	Init() error
	Shutdown() error
	GetDevices() ([]Device, error)
	GetDriverVersion() (string, error)
}

//go:generate moq -stub -out device_mock.go . Device

// Device defines an interface for reading the telemetry of a single GPU.
type Device interface {
	GetIndex() (int, error)
	GetUUID() (string, error)
	GetName() (string, error)
	// GetTemperature returns the core GPU temperature in degrees Celsius.
	GetTemperature() (uint32, error)
	// GetFanSpeed returns the fan speed as a percentage of the maximum.
	GetFanSpeed() (uint32, error)
	GetMemoryInfo() (MemoryInfo, error)
	// GetUtilization returns the percentage of time the GPU was busy over the last sample period.
	GetUtilization() (uint32, error)
	// GetPowerUsage returns the current power draw in milliwatts.
	GetPowerUsage() (uint32, error)
	// GetPowerLimit returns the enforced power limit in milliwatts.
	GetPowerLimit() (uint32, error)
}
