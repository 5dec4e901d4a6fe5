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
	"bytes"
	"errors"
	"flag"
	"io"
	"os"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"k8s.io/klog/v2"

	"github.com/ktkim117/gpu-mon-cli/internal/metrics"
	"github.com/ktkim117/gpu-mon-cli/internal/render"
	"github.com/ktkim117/gpu-mon-cli/internal/resource"
	rt "github.com/ktkim117/gpu-mon-cli/internal/resource/testing"
	"github.com/ktkim117/gpu-mon-cli/internal/snapshot"
)

// recordingRenderer sends rendered frames on a channel, dropping them once
// the buffer is full.
type recordingRenderer struct {
	frames chan *snapshot.Frame
}

func newRecordingRenderer() *recordingRenderer {
	return &recordingRenderer{frames: make(chan *snapshot.Frame, 100)}
}

func (r *recordingRenderer) Render(w io.Writer, frame *snapshot.Frame) error {
	select {
	case r.frames <- frame:
	default:
	}
	return nil
}

func (r *recordingRenderer) waitForFrames(t *testing.T, n int) []*snapshot.Frame {
	var frames []*snapshot.Frame
	for i := 0; i < n; i++ {
		select {
		case f := <-r.frames:
			frames = append(frames, f)
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for frame %d", i)
		}
	}
	return frames
}

type result struct {
	restart bool
	err     error
}

func runAsync(m *Monitor, sigs <-chan os.Signal, changes <-chan string) <-chan result {
	done := make(chan result, 1)
	go func() {
		restart, err := m.Run(sigs, changes)
		done <- result{restart, err}
	}()
	return done
}

func waitForResult(t *testing.T, done <-chan result) result {
	select {
	case r := <-done:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for monitor to stop")
	}
	return result{}
}

func newTestMonitor(manager resource.Manager, renderer render.Renderer, opts ...Option) *Monitor {
	opts = append([]Option{WithInterval(10 * time.Millisecond)}, opts...)
	return New(manager, renderer, render.NewScreen(io.Discard, false), opts...)
}

func TestRunOneshot(t *testing.T) {
	manager := rt.NewManagerMockWithDevices(rt.NewDeviceMock(0), rt.NewDeviceMock(1))
	renderer := newRecordingRenderer()
	m := newTestMonitor(manager, renderer, WithOneshot(true))

	restart, err := m.Run(nil, nil)
	require.NoError(t, err)
	require.False(t, restart)

	require.Len(t, renderer.frames, 1)
	frame := <-renderer.frames
	require.Len(t, frame.Snapshots, 2)
	require.Equal(t, 0, frame.Snapshots[0].Index)
	require.Equal(t, 1, frame.Snapshots[1].Index)

	require.Len(t, manager.InitCalls(), 1)
	require.Len(t, manager.GetDevicesCalls(), 1)
	require.Len(t, manager.ShutdownCalls(), 1)
}

func TestRunStopsOnInterrupt(t *testing.T) {
	testCases := []struct {
		description     string
		signal          os.Signal
		expectedRestart bool
	}{
		{
			description: "SIGINT stops without restart",
			signal:      syscall.SIGINT,
		},
		{
			description: "SIGTERM stops without restart",
			signal:      syscall.SIGTERM,
		},
		{
			description:     "SIGHUP requests restart",
			signal:          syscall.SIGHUP,
			expectedRestart: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			manager := rt.NewManagerMockWithDevices(rt.NewDeviceMock(0))
			renderer := newRecordingRenderer()
			m := newTestMonitor(manager, renderer)

			sigs := make(chan os.Signal, 1)
			done := runAsync(m, sigs, nil)

			renderer.waitForFrames(t, 2)
			sigs <- tc.signal

			r := waitForResult(t, done)
			require.NoError(t, r.err)
			require.Equal(t, tc.expectedRestart, r.restart)
			require.Len(t, manager.InitCalls(), 1)
			require.Len(t, manager.ShutdownCalls(), 1)
			require.Len(t, manager.GetDevicesCalls(), 1, "devices are enumerated once")
		})
	}
}

func TestRunRestartsOnConfigChange(t *testing.T) {
	manager := rt.NewManagerMockWithDevices(rt.NewDeviceMock(0))
	renderer := newRecordingRenderer()
	m := newTestMonitor(manager, renderer, WithInterval(time.Hour))

	changes := make(chan string, 1)
	done := runAsync(m, nil, changes)

	renderer.waitForFrames(t, 1)
	changes <- "/etc/gpu-monitor/config.yaml"

	r := waitForResult(t, done)
	require.NoError(t, r.err)
	require.True(t, r.restart)
	require.Len(t, manager.ShutdownCalls(), 1)
}

func TestRunInitFailure(t *testing.T) {
	manager := rt.NewManagerMockWithDevices(rt.NewDeviceMock(0)).
		WithErrorOnInit(errors.New("libnvidia-ml.so.1 not found"))
	renderer := newRecordingRenderer()
	m := newTestMonitor(manager, renderer)

	_, err := m.Run(nil, nil)
	require.Error(t, err)
	require.Empty(t, manager.ShutdownCalls())
	require.Empty(t, manager.GetDevicesCalls())
	require.Empty(t, renderer.frames)
}

func TestRunNoDevices(t *testing.T) {
	manager := rt.NewManagerMockWithDevices()
	m := newTestMonitor(manager, newRecordingRenderer())

	_, err := m.Run(nil, nil)
	require.ErrorIs(t, err, ErrNoDevices)
	require.Len(t, manager.ShutdownCalls(), 1)
}

func TestRunQueryFailureIsFatal(t *testing.T) {
	var calls atomic.Int32
	device := rt.NewDeviceMock(0)
	device.GetTemperatureFunc = func() (uint32, error) {
		if calls.Add(1) > 2 {
			return 0, errors.New("GPU is lost")
		}
		return 50, nil
	}

	manager := rt.NewManagerMockWithDevices(device)
	renderer := newRecordingRenderer()
	m := newTestMonitor(manager, renderer)

	done := runAsync(m, nil, nil)
	r := waitForResult(t, done)

	require.ErrorContains(t, r.err, "GPU is lost")
	require.False(t, r.restart)
	require.Len(t, renderer.frames, 2)
	require.Len(t, manager.ShutdownCalls(), 1)
}

func TestRunUpdatesMetrics(t *testing.T) {
	manager := rt.NewManagerMockWithDevices(rt.NewDeviceMock(0).WithTemperature(77))
	gauges := metrics.New()
	m := newTestMonitor(manager, newRecordingRenderer(), WithOneshot(true), WithMetrics(gauges))

	_, err := m.Run(nil, nil)
	require.NoError(t, err)
	require.Equal(t, 1, testutil.CollectAndCount(gauges.Temperature))
}

func TestRunIsQuietByDefault(t *testing.T) {
	fs := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(fs)
	require.NoError(t, fs.Set("v", "0"))
	require.NoError(t, fs.Set("logtostderr", "false"))
	var logs bytes.Buffer
	klog.SetOutput(&logs)
	defer func() {
		klog.SetOutput(io.Discard)
		require.NoError(t, fs.Set("logtostderr", "true"))
	}()

	manager := rt.NewManagerMockWithDevices(rt.NewDeviceMock(0))
	m := newTestMonitor(manager, newRecordingRenderer(), WithOneshot(true))

	_, err := m.Run(nil, nil)
	require.NoError(t, err)
	klog.Flush()
	require.Empty(t, logs.String())
}
