/*
 * Copyright (c) 2024, NVIDIA CORPORATION.  All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package v1

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	cli "github.com/urfave/cli/v2"
)

func testFlags() []cli.Flag {
	return []cli.Flag{
		&cli.DurationFlag{Name: FlagInterval, Value: DefaultInterval, EnvVars: []string{"GPU_MONITOR_INTERVAL"}},
		&cli.BoolFlag{Name: FlagOneshot},
		&cli.StringFlag{Name: FlagFormat, Value: DefaultFormat},
		&cli.BoolFlag{Name: FlagNoColor},
		&cli.StringFlag{Name: FlagMetricsAddress},
		&cli.IntFlag{Name: FlagTempWarning, Value: DefaultTempWarning},
		&cli.IntFlag{Name: FlagTempCritical, Value: DefaultTempCritical},
		&cli.IntFlag{Name: FlagBarWidth, Value: DefaultBarWidth},
		&cli.StringFlag{Name: FlagConfigFile},
	}
}

func newTestContext(t *testing.T, flags []cli.Flag, args ...string) *cli.Context {
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range flags {
		require.NoError(t, f.Apply(set))
	}
	require.NoError(t, set.Parse(args))
	return cli.NewContext(&cli.App{Flags: flags}, set, nil)
}

func writeConfigFile(t *testing.T, contents string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestParseConfigFrom(t *testing.T) {
	testCases := []struct {
		description string
		input       string
		expectedErr bool
		expected    *Config
	}{
		{
			description: "empty input defaults the version",
			input:       ``,
			expected:    &Config{Version: Version},
		},
		{
			description: "unknown version is rejected",
			input:       `version: v2`,
			expectedErr: true,
		},
		{
			description: "malformed yaml is rejected",
			input:       `flags: [`,
			expectedErr: true,
		},
		{
			description: "yaml config",
			input: strings.Join([]string{
				`version: v1`,
				`flags:`,
				`  interval: 3s`,
				`  format: yaml`,
				`  display:`,
				`    tempCritical: 85`,
			}, "\n"),
			expected: &Config{
				Version: Version,
				Flags: Flags{CommandLineFlags{
					Interval: ptr(Duration(3 * time.Second)),
					Format:   ptr(FormatYAML),
					Display: &DisplayCommandLineFlags{
						TempCritical: ptr(85),
					},
				}},
			},
		},
		{
			description: "json config",
			input:       `{"version": "v1", "flags": {"oneshot": true}}`,
			expected: &Config{
				Version: Version,
				Flags: Flags{CommandLineFlags{
					Oneshot: ptr(true),
				}},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			config, err := parseConfigFrom(strings.NewReader(tc.input))
			if tc.expectedErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, config)
		})
	}
}

func TestNewConfig(t *testing.T) {
	t.Run("defaults from flags", func(t *testing.T) {
		flags := testFlags()
		c := newTestContext(t, flags)

		config, err := NewConfig(c, flags)
		require.NoError(t, err)
		require.NoError(t, config.Validate())

		require.Equal(t, Duration(DefaultInterval), *config.Flags.Interval)
		require.Equal(t, DefaultFormat, *config.Flags.Format)
		require.False(t, *config.Flags.Oneshot)
		require.Equal(t, "", *config.Flags.MetricsAddress)
		require.Equal(t, DefaultTempWarning, *config.Flags.Display.TempWarning)
		require.Equal(t, DefaultTempCritical, *config.Flags.Display.TempCritical)
		require.Equal(t, DefaultBarWidth, *config.Flags.Display.BarWidth)
	})

	t.Run("config file values are kept when flags are not set", func(t *testing.T) {
		path := writeConfigFile(t, "version: v1\nflags:\n  interval: 5s\n  display:\n    barWidth: 40\n")
		flags := testFlags()
		c := newTestContext(t, flags, "--"+FlagConfigFile, path)

		config, err := NewConfig(c, flags)
		require.NoError(t, err)

		require.Equal(t, Duration(5*time.Second), *config.Flags.Interval)
		require.Equal(t, 40, *config.Flags.Display.BarWidth)
		require.Equal(t, DefaultTempWarning, *config.Flags.Display.TempWarning)
	})

	t.Run("command line overrides config file", func(t *testing.T) {
		path := writeConfigFile(t, "version: v1\nflags:\n  interval: 5s\n  format: json\n")
		flags := testFlags()
		c := newTestContext(t, flags, "--"+FlagConfigFile, path, "--"+FlagInterval, "250ms")

		config, err := NewConfig(c, flags)
		require.NoError(t, err)

		require.Equal(t, Duration(250*time.Millisecond), *config.Flags.Interval)
		require.Equal(t, FormatJSON, *config.Flags.Format)
	})

	t.Run("environment overrides config file", func(t *testing.T) {
		t.Setenv("GPU_MONITOR_INTERVAL", "2s")
		path := writeConfigFile(t, "version: v1\nflags:\n  interval: 5s\n")
		flags := testFlags()
		c := newTestContext(t, flags, "--"+FlagConfigFile, path)

		config, err := NewConfig(c, flags)
		require.NoError(t, err)

		require.Equal(t, Duration(2*time.Second), *config.Flags.Interval)
	})

	t.Run("missing config file is an error", func(t *testing.T) {
		flags := testFlags()
		c := newTestContext(t, flags, "--"+FlagConfigFile, filepath.Join(t.TempDir(), "missing.yaml"))

		_, err := NewConfig(c, flags)
		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Version: Version,
			Flags: Flags{CommandLineFlags{
				Interval: ptr(Duration(DefaultInterval)),
				Format:   ptr(DefaultFormat),
				Display: &DisplayCommandLineFlags{
					TempWarning:  ptr(DefaultTempWarning),
					TempCritical: ptr(DefaultTempCritical),
					BarWidth:     ptr(DefaultBarWidth),
				},
			}},
		}
	}

	testCases := []struct {
		description string
		modify      func(*Config)
		expectedErr bool
	}{
		{
			description: "defaults are valid",
			modify:      func(*Config) {},
		},
		{
			description: "zero interval",
			modify:      func(c *Config) { c.Flags.Interval = ptr(Duration(0)) },
			expectedErr: true,
		},
		{
			description: "unknown format",
			modify:      func(c *Config) { c.Flags.Format = ptr("xml") },
			expectedErr: true,
		},
		{
			description: "warning equal to critical",
			modify:      func(c *Config) { c.Flags.Display.TempWarning = ptr(DefaultTempCritical) },
			expectedErr: true,
		},
		{
			description: "bar width too large",
			modify:      func(c *Config) { c.Flags.Display.BarWidth = ptr(MaxBarWidth + 1) },
			expectedErr: true,
		},
		{
			description: "bar width of one",
			modify:      func(c *Config) { c.Flags.Display.BarWidth = ptr(1) },
		},
		{
			description: "missing display section",
			modify:      func(c *Config) { c.Flags.Display = nil },
			expectedErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			config := valid()
			tc.modify(config)
			err := config.Validate()
			if tc.expectedErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}
