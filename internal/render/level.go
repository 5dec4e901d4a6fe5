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
package render

// Level is the severity assigned to a temperature reading.
type Level int

// Temperature levels in increasing order of severity.
const (
	LevelNormal Level = iota
	LevelWarning
	LevelCritical
)

func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelCritical:
		return "critical"
	default:
		return "normal"
	}
}

// Thresholds are the temperatures, in degrees Celsius, at which a reading
// becomes a warning or critical.
type Thresholds struct {
	Warning  uint32
	Critical uint32
}

// Classify returns the level of the specified temperature.
func (t Thresholds) Classify(temp uint32) Level {
	switch {
	case temp >= t.Critical:
		return LevelCritical
	case temp >= t.Warning:
		return LevelWarning
	default:
		return LevelNormal
	}
}
