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
	"k8s.io/klog/v2"
)

// PlatformInfo reports whether the vendor library is available on this system.
// It is satisfied by the go-nvlib info.Interface.
type PlatformInfo interface {
	HasNvml() (bool, string)
}

// NewManager returns an NVML-backed resource Manager. An error is returned if
// NVML is not available on the system.
func NewManager(infolib PlatformInfo, nvmllib nvml.Interface, devicelib device.Interface) (Manager, error) {
	hasNVML, reason := infolib.HasNvml()
	if !hasNVML {
		klog.V(1).Infof("Detected non-NVML platform: %v", reason)
		return nil, fmt.Errorf("NVML not available: %v", reason)
	}
	klog.V(1).Infof("Detected NVML platform: %v", reason)

	return NewNVMLManager(nvmllib, devicelib), nil
}
