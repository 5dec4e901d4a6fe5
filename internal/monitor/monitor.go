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
package monitor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"
	"time"

	"k8s.io/klog/v2"

	"github.com/ktkim117/gpu-mon-cli/internal/metrics"
	"github.com/ktkim117/gpu-mon-cli/internal/render"
	"github.com/ktkim117/gpu-mon-cli/internal/resource"
	"github.com/ktkim117/gpu-mon-cli/internal/snapshot"
)

// ErrNoDevices is returned by Run when NVML reports no GPUs.
var ErrNoDevices = errors.New("no GPUs found")

// Monitor polls every GPU once per interval and draws the result.
type Monitor struct {
	manager  resource.Manager
	renderer render.Renderer
	screen   *render.Screen
	metrics  *metrics.Metrics
	interval time.Duration
	oneshot  bool
	now      func() time.Time
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithInterval sets the time between refresh ticks.
func WithInterval(interval time.Duration) Option {
	return func(m *Monitor) {
		m.interval = interval
	}
}

// WithOneshot makes Run return after drawing a single frame.
func WithOneshot(oneshot bool) Option {
	return func(m *Monitor) {
		m.oneshot = oneshot
	}
}

// WithMetrics updates the specified metrics on every tick.
func WithMetrics(metrics *metrics.Metrics) Option {
	return func(m *Monitor) {
		m.metrics = metrics
	}
}

// New creates a Monitor.
func New(manager resource.Manager, renderer render.Renderer, screen *render.Screen, opts ...Option) *Monitor {
	m := &Monitor{
		manager:  manager,
		renderer: renderer,
		screen:   screen,
		interval: time.Second,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run initializes NVML, enumerates the GPUs once and then draws a frame every
// interval. It returns when a signal is received, when a watched config file
// changes, or when a query fails. The returned bool is true if the caller
// should reload its configuration and run again. NVML is shut down on every
// return path once it has been initialized.
func (m *Monitor) Run(sigs <-chan os.Signal, configChanged <-chan string) (bool, error) {
	klog.V(1).Info("Initializing NVML")
	if err := m.manager.Init(); err != nil {
		return false, err
	}
	defer func() {
		if err := m.manager.Shutdown(); err != nil {
			klog.Warningf("Error shutting down NVML: %v", err)
		}
	}()

	devices, err := m.manager.GetDevices()
	if err != nil {
		return false, fmt.Errorf("error enumerating GPUs: %w", err)
	}
	if len(devices) == 0 {
		return false, ErrNoDevices
	}
	klog.V(1).Infof("Found %d GPU(s)", len(devices))

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		if err := m.tick(devices); err != nil {
			return false, err
		}

		if m.oneshot {
			return false, nil
		}

		select {
		case <-ticker.C:

		// On SIGHUP trigger a reload of the config.
		// On all other signals, exit the loop and exit the program.
		case s := <-sigs:
			switch s {
			case syscall.SIGHUP:
				klog.V(1).Info("Received SIGHUP, restarting.")
				return true, nil
			default:
				klog.V(1).Infof("Received signal %v, shutting down.", s)
				return false, nil
			}

		case path := <-configChanged:
			klog.V(1).Infof("Config file %v changed, restarting.", path)
			return true, nil
		}
	}
}

// tick performs one poll, render and metrics update.
func (m *Monitor) tick(devices []resource.Device) error {
	frame, err := snapshot.NewFrame(m.manager, devices, m.now())
	if err != nil {
		return err
	}

	err = m.screen.Draw(func(w io.Writer) error {
		return m.renderer.Render(w, frame)
	})
	if err != nil {
		return fmt.Errorf("error drawing frame: %w", err)
	}

	if m.metrics != nil {
		m.metrics.Update(frame)
	}

	return nil
}
