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

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadSettings reads and parses settings.yaml.
func LoadSettings() (*Settings, error) {
	return LoadSettingsFrom(SettingsFile())
}

// LoadSettingsFrom reads settings from a specific path.
func LoadSettingsFrom(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := DefaultSettings()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, err
	}
	return s, nil
}

// SaveSettingsTo writes settings to a specific path.
func SaveSettingsTo(s *Settings, path string) error {
	if _, err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadOrDefault loads settings or returns defaults if the file doesn't exist
// or can't be parsed.
func LoadOrDefault() *Settings {
	s, err := LoadSettings()
	if err != nil {
		return DefaultSettings()
	}
	return s
}
