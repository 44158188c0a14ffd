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
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// AppName is the directory under the user config dir that holds every app's profiles.
const AppName = "simple-profiles-manager"

// File names inside an app directory.
const (
	ProfilesFileName = "profiles.json"
	SelectedFileName = "selected-profile"
	SettingsFileName = "settings.yaml"
)

var (
	// Home is the configuration root (~/.config/simple-profiles-manager).
	Home string
	// AppID is the sanitized application id. Set once through SetAppID.
	AppID string
)

// ErrAppIDSet is returned when SetAppID is called a second time.
var ErrAppIDSet = errors.New("app id can only be set once")

// ErrEmptyAppID is returned when an app id sanitizes to nothing.
var ErrEmptyAppID = errors.New("app id is empty")

func init() {
	Home = filepath.Join(xdgConfig(), AppName)
}

func xdgConfig() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	if runtime.GOOS == "windows" {
		if v := os.Getenv("APPDATA"); v != "" {
			return v
		}
	}
	if runtime.GOOS == "darwin" {
		return filepath.Join(homeDir(), "Library", "Application Support")
	}
	return filepath.Join(homeDir(), ".config")
}

func homeDir() string {
	if h := os.Getenv("HOME"); h != "" {
		return h
	}
	h, _ := os.UserHomeDir()
	return h
}

// SanitizeAppID maps an app id to a single safe path component. Separators
// and reserved characters become '_'. An id starting with '.' has every dot
// replaced so it never names a hidden or parent directory.
func SanitizeAppID(appID string) string {
	hidden := strings.HasPrefix(appID, ".")
	var b strings.Builder
	for _, c := range appID {
		switch c {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', 0:
			b.WriteRune('_')
		case '.':
			if hidden {
				b.WriteRune('_')
			} else {
				b.WriteRune(c)
			}
		default:
			b.WriteRune(c)
		}
	}
	return strings.Trim(b.String(), " .")
}

// SetAppID sanitizes and stores the app id used by every storage path.
func SetAppID(appID string) error {
	if AppID != "" {
		return ErrAppIDSet
	}
	id := SanitizeAppID(appID)
	if id == "" {
		return ErrEmptyAppID
	}
	AppID = id
	return nil
}

// AppDir returns the storage directory for the current app id.
func AppDir() string {
	return filepath.Join(Home, AppID)
}

// ProfilesFile returns the path to profiles.json.
func ProfilesFile() string {
	return filepath.Join(AppDir(), ProfilesFileName)
}

// SelectedFile returns the path to the selected-profile marker.
func SelectedFile() string {
	return filepath.Join(AppDir(), SelectedFileName)
}

// SettingsFile returns the path to settings.yaml.
func SettingsFile() string {
	return filepath.Join(AppDir(), SettingsFileName)
}
