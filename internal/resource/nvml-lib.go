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

import (
	"fmt"

	"github.com/NVIDIA/go-nvlib/pkg/nvlib/device"
	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

type nvmlLib struct {
	nvml.Interface
	devicelib device.Interface
}

var _ Manager = (*nvmlLib)(nil)

// NewNVMLManager creates a new manager that uses NVML to query devices
func NewNVMLManager(nvmllib nvml.Interface, devicelib device.Interface) Manager {
	return &nvmlLib{
		Interface: nvmllib,
		devicelib: devicelib,
	}
}

// Init initialises the library
func (l *nvmlLib) Init() error {
	ret := l.Interface.Init()
	if ret != nvml.SUCCESS {
		return fmt.Errorf("failed to initialize NVML: %w", ret)
	}
	return nil
}

// Shutdown shuts down the library
func (l *nvmlLib) Shutdown() error {
	ret := l.Interface.Shutdown()
	if ret != nvml.SUCCESS {
		return fmt.Errorf("failed to shut down NVML: %w", ret)
	}
	return nil
}

// GetDevices returns the NVML devices for the manager in NVML index order.
func (l *nvmlLib) GetDevices() ([]Device, error) {
	var devices []Device
	err := l.devicelib.VisitDevices(func(i int, d device.Device) error {
		devices = append(devices, nvmlDevice{Device: d})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error visiting devices: %w", err)
	}
	return devices, nil
}

// GetDriverVersion returns the driver version
func (l *nvmlLib) GetDriverVersion() (string, error) {
	v, ret := l.Interface.SystemGetDriverVersion()
	if ret != nvml.SUCCESS {
		return "", fmt.Errorf("error getting driver version: %w", ret)
	}
	return v, nil
}
