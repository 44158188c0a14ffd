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

package profile

import (
	"path/filepath"
	"strings"

	"github.com/cloud-exit/profiles-manager/internal/config"
	"github.com/cloud-exit/profiles-manager/internal/state"
	"github.com/cloud-exit/profiles-manager/internal/ui"
)

// Manager is a List bound to a storage directory. Every mutation rewrites
// profiles.json; Confirm writes selected-profile. Write failures are logged
// at debug level and otherwise ignored.
type Manager struct {
	*List
	dir string
}

// Open loads the profiles of the current app id.
func Open() *Manager {
	return OpenDir(config.AppDir())
}

// OpenDir loads the profiles stored in dir. Missing or damaged files give an
// empty list.
func OpenDir(dir string) *Manager {
	records := state.LoadProfilesFrom(filepath.Join(dir, config.ProfilesFileName))
	names := make([]string, len(records))
	for i, r := range records {
		names[i] = r.Name
	}
	selected, _ := state.LoadSelectedFrom(filepath.Join(dir, config.SelectedFileName))
	return &Manager{List: NewList(names, selected), dir: dir}
}

// Dir returns the storage directory.
func (m *Manager) Dir() string { return m.dir }

func (m *Manager) profilesPath() string {
	return filepath.Join(m.dir, config.ProfilesFileName)
}

func (m *Manager) selectedPath() string {
	return filepath.Join(m.dir, config.SelectedFileName)
}

// Save rewrites profiles.json with the current list.
func (m *Manager) Save() error {
	records := make([]state.Record, m.Len())
	for i, p := range m.profiles {
		records[i] = state.Record{Name: p.Name}
	}
	return state.SaveProfilesTo(m.profilesPath(), records)
}

func (m *Manager) persist() {
	if err := m.Save(); err != nil {
		ui.Debugf("save profiles: %v", err)
	}
}

// Create adds a profile, selects it and saves.
func (m *Manager) Create(name string) (Profile, error) {
	p, err := m.List.Create(name)
	if err != nil {
		return Profile{}, err
	}
	m.persist()
	return p, nil
}

// Rename renames the profile at i and saves. If the renamed profile is the
// one recorded in selected-profile, the record follows the new name.
func (m *Manager) Rename(i int, newName string) (bool, error) {
	old, _ := m.Get(i)
	changed, err := m.List.Rename(i, newName)
	if err != nil || !changed {
		return changed, err
	}
	m.persist()
	if current, ok := state.LoadSelectedFrom(m.selectedPath()); ok && current == old.Name {
		renamed, _ := m.Get(i)
		if err := state.SaveSelectedTo(m.selectedPath(), renamed.Name); err != nil {
			ui.Debugf("save selected profile: %v", err)
		}
	}
	return true, nil
}

// Delete removes the profile at i and saves.
func (m *Manager) Delete(i int) (Profile, error) {
	p, err := m.List.Delete(i)
	if err != nil {
		return Profile{}, err
	}
	m.persist()
	return p, nil
}

// Confirm records the selected profile in selected-profile and returns it.
func (m *Manager) Confirm() (Profile, bool) {
	p, ok := m.Selected()
	if !ok {
		return Profile{}, false
	}
	if err := state.SaveSelectedTo(m.selectedPath(), p.Name); err != nil {
		ui.Debugf("save selected profile: %v", err)
	}
	return p, true
}

// Lookup returns the index of the named profile, trimming the name first.
func (m *Manager) Lookup(name string) (int, error) {
	i := m.Index(strings.TrimSpace(name))
	if i < 0 {
		return -1, &NotFoundError{Name: name}
	}
	return i, nil
}

// Current returns the name recorded in selected-profile when it still names
// a profile in the list.
func (m *Manager) Current() (string, bool) {
	name, ok := state.LoadSelectedFrom(m.selectedPath())
	if !ok || m.Index(name) < 0 {
		return "", false
	}
	return name, true
}
