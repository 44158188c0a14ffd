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

// Package state persists the profile list and the selected profile name as
// flat files in the app's config directory. Reads fail open: a missing or
// damaged file reads as empty.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloud-exit/profiles-manager/internal/config"
	"github.com/cloud-exit/profiles-manager/internal/ui"
)

// Record is the on-disk form of one profile.
type Record struct {
	Name string `json:"name"`
}

// LoadProfilesFrom reads a profile list from path. Any failure yields an
// empty list.
func LoadProfilesFrom(path string) []Record {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			ui.Debugf("read %s: %v", path, err)
		}
		return []Record{}
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		ui.Debugf("parse %s: %v", path, err)
		return []Record{}
	}
	if records == nil {
		return []Record{}
	}
	return records
}

// SaveProfilesTo overwrites path with records as a JSON array.
func SaveProfilesTo(path string, records []Record) error {
	if records == nil {
		records = []Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode profiles: %w", err)
	}
	return writeFile(path, data)
}

// LoadSelectedFrom reads a selected profile name from path. ok is false when
// the file is missing, unreadable or blank.
func LoadSelectedFrom(path string) (name string, ok bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			ui.Debugf("read %s: %v", path, err)
		}
		return "", false
	}
	name = strings.TrimSpace(string(data))
	return name, name != ""
}

// SaveSelectedTo overwrites path with name.
func SaveSelectedTo(path, name string) error {
	return writeFile(path, []byte(name))
}

// writeFile replaces path in one step: the data goes to a temp file in the
// same directory which is then renamed over the target.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if _, err := config.EnsureDir(dir); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
