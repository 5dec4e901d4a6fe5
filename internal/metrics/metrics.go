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
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ktkim117/gpu-mon-cli/internal/snapshot"
)

const namespace = "gpu_monitor"

var gpuLabels = []string{"gpu", "uuid", "name"}

// Metrics holds the Prometheus gauges mirroring the latest frame.
// It uses a custom registry to avoid polluting the global default.
type Metrics struct {
	Registry *prometheus.Registry

	Temperature *prometheus.GaugeVec
	FanSpeed    *prometheus.GaugeVec
	PowerUsage  *prometheus.GaugeVec
	PowerLimit  *prometheus.GaugeVec
	MemoryUsed  *prometheus.GaugeVec
	MemoryTotal *prometheus.GaugeVec
	Utilization *prometheus.GaugeVec
	DriverInfo  *prometheus.GaugeVec
}

func newGPUGauge(name, help string) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, gpuLabels)
}

// New creates a Metrics instance with all gauges registered on a custom registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,

		Temperature: newGPUGauge("temperature_celsius", "GPU core temperature in degrees Celsius."),
		FanSpeed:    newGPUGauge("fan_speed_percent", "Fan speed as a percentage of the maximum. Absent for passively cooled GPUs."),
		PowerUsage:  newGPUGauge("power_usage_watts", "Current power draw in watts."),
		PowerLimit:  newGPUGauge("power_limit_watts", "Enforced power limit in watts."),
		MemoryUsed:  newGPUGauge("memory_used_mebibytes", "Framebuffer memory in use in MiB."),
		MemoryTotal: newGPUGauge("memory_total_mebibytes", "Total framebuffer memory in MiB."),
		Utilization: newGPUGauge("utilization_percent", "Percentage of time the GPU was busy over the last sample period."),
		DriverInfo: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "driver_info",
			Help:      "NVIDIA driver version, always 1.",
		}, []string{"version"}),
	}

	reg.MustRegister(
		m.Temperature,
		m.FanSpeed,
		m.PowerUsage,
		m.PowerLimit,
		m.MemoryUsed,
		m.MemoryTotal,
		m.Utilization,
		m.DriverInfo,
	)

	return m
}

// Update replaces every series with the values in the frame.
func (m *Metrics) Update(frame *snapshot.Frame) {
	for _, g := range []*prometheus.GaugeVec{
		m.Temperature, m.FanSpeed, m.PowerUsage, m.PowerLimit,
		m.MemoryUsed, m.MemoryTotal, m.Utilization, m.DriverInfo,
	} {
		g.Reset()
	}

	m.DriverInfo.WithLabelValues(frame.DriverVersion).Set(1)

	for _, s := range frame.Snapshots {
		labels := prometheus.Labels{
			"gpu":  strconv.Itoa(s.Index),
			"uuid": s.UUID,
			"name": s.Name,
		}
		m.Temperature.With(labels).Set(float64(s.Temperature))
		if s.FanSpeed != nil {
			m.FanSpeed.With(labels).Set(float64(*s.FanSpeed))
		}
		m.PowerUsage.With(labels).Set(s.PowerUsage)
		m.PowerLimit.With(labels).Set(s.PowerLimit)
		m.MemoryUsed.With(labels).Set(float64(s.MemoryUsed))
		m.MemoryTotal.With(labels).Set(float64(s.MemoryTotal))
		m.Utilization.With(labels).Set(float64(s.Utilization))
	}
}
