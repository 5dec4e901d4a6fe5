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
package testing

import (
	"fmt"

	"github.com/ktkim117/gpu-mon-cli/internal/resource"
)

// DeviceMock provides an alias that allows for additional functions to be defined.
type DeviceMock struct {
	resource.DeviceMock
}

// NewDeviceMock creates an idle, actively cooled GPU at the specified index for testing.
func NewDeviceMock(index int) *DeviceMock {
	d := DeviceMock{resource.DeviceMock{
		GetIndexFunc: func() (int, error) { return index, nil },
		GetUUIDFunc: func() (string, error) {
			return fmt.Sprintf("GPU-00000000-0000-0000-0000-%012d", index), nil
		},
		GetNameFunc:        func() (string, error) { return "MOCKMODEL", nil },
		GetTemperatureFunc: func() (uint32, error) { return 40, nil },
		GetFanSpeedFunc:    func() (uint32, error) { return 30, nil },
		GetMemoryInfoFunc: func() (resource.MemoryInfo, error) {
			return resource.MemoryInfo{Total: 16 * 1024 * 1024 * 1024}, nil
		},
		GetUtilizationFunc: func() (uint32, error) { return 0, nil },
		GetPowerUsageFunc:  func() (uint32, error) { return 25000, nil },
		GetPowerLimitFunc:  func() (uint32, error) { return 250000, nil },
	}}
	return &d
}

// WithName sets the name reported by the mocked device.
func (d *DeviceMock) WithName(name string) *DeviceMock {
	d.GetNameFunc = func() (string, error) { return name, nil }
	return d
}

// WithTemperature sets the temperature reported by the mocked device.
func (d *DeviceMock) WithTemperature(temp uint32) *DeviceMock {
	d.GetTemperatureFunc = func() (uint32, error) { return temp, nil }
	return d
}

// WithPassiveCooling makes the mocked device report fan speed as not supported.
func (d *DeviceMock) WithPassiveCooling() *DeviceMock {
	d.GetFanSpeedFunc = func() (uint32, error) { return 0, resource.ErrNotSupported }
	return d
}

// WithMemory sets the used and total memory of the mocked device in bytes.
func (d *DeviceMock) WithMemory(used, total uint64) *DeviceMock {
	d.GetMemoryInfoFunc = func() (resource.MemoryInfo, error) {
		return resource.MemoryInfo{Total: total, Used: used}, nil
	}
	return d
}

// WithUtilization sets the utilization reported by the mocked device.
func (d *DeviceMock) WithUtilization(util uint32) *DeviceMock {
	d.GetUtilizationFunc = func() (uint32, error) { return util, nil }
	return d
}

// WithPower sets the power usage and limit of the mocked device in milliwatts.
func (d *DeviceMock) WithPower(usage, limit uint32) *DeviceMock {
	d.GetPowerUsageFunc = func() (uint32, error) { return usage, nil }
	d.GetPowerLimitFunc = func() (uint32, error) { return limit, nil }
	return d
}

// WithErrorOnTemperature makes the temperature query fail.
func (d *DeviceMock) WithErrorOnTemperature(err error) *DeviceMock {
	d.GetTemperatureFunc = func() (uint32, error) { return 0, err }
	return d
}

// ManagerMock provides an alias that allows for additional functions to be defined.
type ManagerMock struct {
	resource.ManagerMock
}

// NewManagerMockWithDevices creates a mocked manager with the specified devices
func NewManagerMockWithDevices(devices ...resource.Device) *ManagerMock {
	manager := ManagerMock{resource.ManagerMock{
		InitFunc:     func() error { return nil },
		ShutdownFunc: func() error { return nil },
		GetDriverVersionFunc: func() (string, error) {
			return "550.54.15", nil
		},
		GetDevicesFunc: func() ([]resource.Device, error) {
			return devices, nil
		},
	}}
	return &manager
}

// WithErrorOnInit sets the Init function for the ManagerMock to error if called.
func (m *ManagerMock) WithErrorOnInit(err error) *ManagerMock {
	m.InitFunc = func() error {
		return err
	}
	return m
}
