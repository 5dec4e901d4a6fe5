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

import "time"

// Constants representing the supported output formats
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Defaults used when neither the command line nor a config file set a value.
const (
	DefaultInterval     = time.Second
	DefaultFormat       = FormatTable
	DefaultTempWarning  = 65
	DefaultTempCritical = 80
	DefaultBarWidth     = 20
	MaxBarWidth         = 100
)

// Command line flag names - Common flags
const (
	FlagInterval       = "interval"
	FlagOneshot        = "oneshot"
	FlagFormat         = "format"
	FlagNoColor        = "no-color"
	FlagMetricsAddress = "metrics-address"
	FlagConfigFile     = "config-file"
)

// Command line flag names - Display specific flags
const (
	FlagTempWarning  = "temp-warning"
	FlagTempCritical = "temp-critical"
	FlagBarWidth     = "bar-width"
)
