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
	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

type nvmlDevice struct {
	nvml.Device
}

var _ Device = (*nvmlDevice)(nil)

// nvmlError converts an NVML return code to an error, mapping
// ERROR_NOT_SUPPORTED to ErrNotSupported.
func nvmlError(ret nvml.Return) error {
	switch ret {
	case nvml.SUCCESS:
		return nil
	case nvml.ERROR_NOT_SUPPORTED:
		return ErrNotSupported
	default:
		return ret
	}
}

// GetIndex returns the NVML index of the device.
func (d nvmlDevice) GetIndex() (int, error) {
	index, ret := d.Device.GetIndex()
	return index, nvmlError(ret)
}

// GetUUID returns the UUID of the device.
func (d nvmlDevice) GetUUID() (string, error) {
	uuid, ret := d.Device.GetUUID()
	return uuid, nvmlError(ret)
}

// GetName returns the device name / model.
func (d nvmlDevice) GetName() (string, error) {
	name, ret := d.Device.GetName()
	return name, nvmlError(ret)
}

// GetTemperature returns the GPU core temperature.
func (d nvmlDevice) GetTemperature() (uint32, error) {
	temp, ret := d.Device.GetTemperature(nvml.TEMPERATURE_GPU)
	return temp, nvmlError(ret)
}

// GetFanSpeed returns the intended fan speed of the device.
func (d nvmlDevice) GetFanSpeed() (uint32, error) {
	speed, ret := d.Device.GetFanSpeed()
	return speed, nvmlError(ret)
}

// GetMemoryInfo returns the total and used framebuffer memory.
func (d nvmlDevice) GetMemoryInfo() (MemoryInfo, error) {
	info, ret := d.Device.GetMemoryInfo()
	if err := nvmlError(ret); err != nil {
		return MemoryInfo{}, err
	}
	return MemoryInfo{Total: info.Total, Used: info.Used}, nil
}

// GetUtilization returns the GPU (not memory) utilization rate.
func (d nvmlDevice) GetUtilization() (uint32, error) {
	rates, ret := d.Device.GetUtilizationRates()
	if err := nvmlError(ret); err != nil {
		return 0, err
	}
	return rates.Gpu, nil
}

// GetPowerUsage returns the current power draw in milliwatts.
func (d nvmlDevice) GetPowerUsage() (uint32, error) {
	power, ret := d.Device.GetPowerUsage()
	return power, nvmlError(ret)
}

// GetPowerLimit returns the enforced power limit in milliwatts.
func (d nvmlDevice) GetPowerLimit() (uint32, error) {
	limit, ret := d.Device.GetEnforcedPowerLimit()
	return limit, nvmlError(ret)
}
