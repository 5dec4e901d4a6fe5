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
	"errors"
	"testing"

	"github.com/NVIDIA/go-nvml/pkg/nvml"
	"github.com/NVIDIA/go-nvml/pkg/nvml/mock"
	"github.com/stretchr/testify/require"
)

func TestNvmlDeviceGetters(t *testing.T) {
	d := nvmlDevice{&mock.Device{
		GetIndexFunc: func() (int, nvml.Return) { return 3, nvml.SUCCESS },
		GetUUIDFunc:  func() (string, nvml.Return) { return "GPU-1234", nvml.SUCCESS },
		GetNameFunc:  func() (string, nvml.Return) { return "NVIDIA A100-SXM4-40GB", nvml.SUCCESS },
		GetTemperatureFunc: func(sensor nvml.TemperatureSensors) (uint32, nvml.Return) {
			require.Equal(t, nvml.TEMPERATURE_GPU, sensor)
			return 71, nvml.SUCCESS
		},
		GetFanSpeedFunc: func() (uint32, nvml.Return) { return 45, nvml.SUCCESS },
		GetMemoryInfoFunc: func() (nvml.Memory, nvml.Return) {
			return nvml.Memory{Total: 40 << 30, Free: 30 << 30, Used: 10 << 30}, nvml.SUCCESS
		},
		GetUtilizationRatesFunc: func() (nvml.Utilization, nvml.Return) {
			return nvml.Utilization{Gpu: 87, Memory: 12}, nvml.SUCCESS
		},
		GetPowerUsageFunc:         func() (uint32, nvml.Return) { return 123456, nvml.SUCCESS },
		GetEnforcedPowerLimitFunc: func() (uint32, nvml.Return) { return 400000, nvml.SUCCESS },
	}}

	index, err := d.GetIndex()
	require.NoError(t, err)
	require.Equal(t, 3, index)

	uuid, err := d.GetUUID()
	require.NoError(t, err)
	require.Equal(t, "GPU-1234", uuid)

	name, err := d.GetName()
	require.NoError(t, err)
	require.Equal(t, "NVIDIA A100-SXM4-40GB", name)

	temp, err := d.GetTemperature()
	require.NoError(t, err)
	require.EqualValues(t, 71, temp)

	fan, err := d.GetFanSpeed()
	require.NoError(t, err)
	require.EqualValues(t, 45, fan)

	memory, err := d.GetMemoryInfo()
	require.NoError(t, err)
	require.Equal(t, MemoryInfo{Total: 40 << 30, Used: 10 << 30}, memory)

	util, err := d.GetUtilization()
	require.NoError(t, err)
	require.EqualValues(t, 87, util)

	usage, err := d.GetPowerUsage()
	require.NoError(t, err)
	require.EqualValues(t, 123456, usage)

	limit, err := d.GetPowerLimit()
	require.NoError(t, err)
	require.EqualValues(t, 400000, limit)
}

func TestNvmlError(t *testing.T) {
	testCases := []struct {
		description string
		ret         nvml.Return
		expected    error
	}{
		{
			description: "success is no error",
			ret:         nvml.SUCCESS,
		},
		{
			description: "not supported maps to sentinel",
			ret:         nvml.ERROR_NOT_SUPPORTED,
			expected:    ErrNotSupported,
		},
		{
			description: "other errors are passed through",
			ret:         nvml.ERROR_GPU_IS_LOST,
			expected:    nvml.ERROR_GPU_IS_LOST,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			err := nvmlError(tc.ret)
			if tc.expected == nil {
				require.NoError(t, err)
				return
			}
			require.True(t, errors.Is(err, tc.expected))
		})
	}
}

func TestNvmlDevicePassiveCooling(t *testing.T) {
	d := nvmlDevice{&mock.Device{
		GetFanSpeedFunc: func() (uint32, nvml.Return) { return 0, nvml.ERROR_NOT_SUPPORTED },
	}}

	_, err := d.GetFanSpeed()
	require.ErrorIs(t, err, ErrNotSupported)
}

func TestNvmlLibInitAndDriverVersion(t *testing.T) {
	testCases := []struct {
		description   string
		initRet       nvml.Return
		versionRet    nvml.Return
		expectInitErr bool
		expectVerErr  bool
	}{
		{
			description: "driver loaded",
			initRet:     nvml.SUCCESS,
			versionRet:  nvml.SUCCESS,
		},
		{
			description:   "library not found",
			initRet:       nvml.ERROR_LIBRARY_NOT_FOUND,
			versionRet:    nvml.ERROR_UNINITIALIZED,
			expectInitErr: true,
			expectVerErr:  true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			nvmllib := &mock.Interface{
				InitFunc:     func() nvml.Return { return tc.initRet },
				ShutdownFunc: func() nvml.Return { return nvml.SUCCESS },
				SystemGetDriverVersionFunc: func() (string, nvml.Return) {
					return "550.54.15", tc.versionRet
				},
			}
			m := NewNVMLManager(nvmllib, nil)

			err := m.Init()
			if tc.expectInitErr {
				require.ErrorIs(t, err, tc.initRet)
			} else {
				require.NoError(t, err)
			}

			version, err := m.GetDriverVersion()
			if tc.expectVerErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				require.Equal(t, "550.54.15", version)
			}

			require.NoError(t, m.Shutdown())
		})
	}
}

type platformInfoMock struct {
	hasNvml bool
}

func (p platformInfoMock) HasNvml() (bool, string) {
	if p.hasNvml {
		return true, "found libnvidia-ml.so.1"
	}
	return false, "could not load libnvidia-ml.so.1"
}

func TestNewManager(t *testing.T) {
	_, err := NewManager(platformInfoMock{hasNvml: false}, &mock.Interface{}, nil)
	require.Error(t, err)

	m, err := NewManager(platformInfoMock{hasNvml: true}, &mock.Interface{}, nil)
	require.NoError(t, err)
	require.NotNil(t, m)
}
