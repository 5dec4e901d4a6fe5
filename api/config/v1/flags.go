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
	"fmt"

	cli "github.com/urfave/cli/v2"
)

// prt returns a reference to whatever type is passed into it
func ptr[T any](x T) *T {
	return &x
}

// updateFromCLIFlag conditionally updates the config flag at 'pflag' to the value of the CLI flag with name 'flagName'
func updateFromCLIFlag[T any](pflag **T, c *cli.Context, flagName string) {
	if c.IsSet(flagName) || *pflag == (*T)(nil) {
		switch flag := any(pflag).(type) {
		case **string:
			*flag = ptr(c.String(flagName))
		case **bool:
			*flag = ptr(c.Bool(flagName))
		case **int:
			*flag = ptr(c.Int(flagName))
		case **Duration:
			*flag = ptr(Duration(c.Duration(flagName)))
		default:
			panic(fmt.Errorf("unsupported flag type for %v: %T", flagName, flag))
		}
	}
}

// Flags holds the full list of flags used to configure the GPU monitor.
type Flags struct {
	CommandLineFlags
}

// CommandLineFlags holds the list of command line flags used to configure the GPU monitor.
type CommandLineFlags struct {
	Interval       *Duration                `json:"interval"                 yaml:"interval"`
	Oneshot        *bool                    `json:"oneshot"                  yaml:"oneshot"`
	Format         *string                  `json:"format"                   yaml:"format"`
	NoColor        *bool                    `json:"noColor"                  yaml:"noColor"`
	MetricsAddress *string                  `json:"metricsAddress,omitempty" yaml:"metricsAddress,omitempty"`
	Display        *DisplayCommandLineFlags `json:"display,omitempty"        yaml:"display,omitempty"`
}

// DisplayCommandLineFlags holds the flags that control how a snapshot is rendered.
type DisplayCommandLineFlags struct {
	TempWarning  *int `json:"tempWarning"  yaml:"tempWarning"`
	TempCritical *int `json:"tempCritical" yaml:"tempCritical"`
	BarWidth     *int `json:"barWidth"     yaml:"barWidth"`
}

// UpdateFromCLIFlags updates Flags from settings in the cli Flags if they are set.
func (f *Flags) UpdateFromCLIFlags(c *cli.Context, flags []cli.Flag) {
	for _, flag := range flags {
		for _, n := range flag.Names() {
			// Common flags
			switch n {
			case FlagInterval:
				updateFromCLIFlag(&f.Interval, c, n)
			case FlagOneshot:
				updateFromCLIFlag(&f.Oneshot, c, n)
			case FlagFormat:
				updateFromCLIFlag(&f.Format, c, n)
			case FlagNoColor:
				updateFromCLIFlag(&f.NoColor, c, n)
			case FlagMetricsAddress:
				updateFromCLIFlag(&f.MetricsAddress, c, n)
			}
			// Display specific flags
			if f.Display == nil {
				f.Display = &DisplayCommandLineFlags{}
			}
			switch n {
			case FlagTempWarning:
				updateFromCLIFlag(&f.Display.TempWarning, c, n)
			case FlagTempCritical:
				updateFromCLIFlag(&f.Display.TempCritical, c, n)
			case FlagBarWidth:
				updateFromCLIFlag(&f.Display.BarWidth, c, n)
			}
		}
	}
}
