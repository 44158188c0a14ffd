// Profiles Manager - Named profile picker for applications
// Copyright (C) 2026 Cloud Exit B.V.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package config

// Settings is the per-app configuration (settings.yaml). Command-line flags
// take precedence over every field.
type Settings struct {
	Version int `yaml:"version"`
	// Title is shown in the profile picker header. Defaults to the app id.
	Title string `yaml:"title,omitempty"`
	// EnvVar is set to the selected profile name for the launched program.
	EnvVar string `yaml:"env_var,omitempty"`
	// Program is executed after a profile is selected.
	Program string   `yaml:"program,omitempty"`
	Args    []string `yaml:"args,omitempty"`
}

// DefaultSettings returns the settings used when settings.yaml is absent.
func DefaultSettings() *Settings {
	return &Settings{Version: 1}
}

// Merge returns a copy of s with every non-empty field of o applied on top.
func (s Settings) Merge(o Settings) Settings {
	if o.Title != "" {
		s.Title = o.Title
	}
	if o.EnvVar != "" {
		s.EnvVar = o.EnvVar
	}
	if o.Program != "" {
		s.Program = o.Program
	}
	if len(o.Args) > 0 {
		s.Args = o.Args
	}
	return s
}

// DisplayTitle returns the title, falling back to the app id.
func (s Settings) DisplayTitle() string {
	if s.Title != "" {
		return s.Title
	}
	return AppID
}
