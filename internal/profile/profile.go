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

// Package profile holds the ordered, uniquely named profile list and binds it
// to the on-disk state.
package profile

import (
	"errors"
	"fmt"
	"strings"
)

// Profile is a named user configuration. The name is its identity.
type Profile struct {
	Name string
}

// ErrEmptyName is returned when a name is blank after trimming.
var ErrEmptyName = errors.New("profile name is empty")

// DuplicateNameError is returned when a name is already taken.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return "a profile with this name already exists: " + e.Name
}

// IndexError is returned for an index outside the list.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("profile index %d out of range (%d profiles)", e.Index, e.Len)
}

// NotFoundError is returned when no profile has the given name.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return "unknown profile: " + e.Name
}

// List is an ordered sequence of uniquely named profiles with an optional
// selection.
type List struct {
	profiles []Profile
	selected int
}

// NewList builds a list from names in order. selected is the name to select;
// when it is empty or absent the last profile is selected. Blank and repeated
// names are dropped.
func NewList(names []string, selected string) *List {
	l := &List{selected: -1}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || l.Index(n) >= 0 {
			continue
		}
		l.profiles = append(l.profiles, Profile{Name: n})
	}
	if len(l.profiles) > 0 {
		l.selected = len(l.profiles) - 1
		if i := l.Index(selected); i >= 0 {
			l.selected = i
		}
	}
	return l
}

// Len returns the number of profiles.
func (l *List) Len() int { return len(l.profiles) }

// Profiles returns a copy of the profiles in order.
func (l *List) Profiles() []Profile {
	out := make([]Profile, len(l.profiles))
	copy(out, l.profiles)
	return out
}

// Names returns the profile names in order.
func (l *List) Names() []string {
	out := make([]string, len(l.profiles))
	for i, p := range l.profiles {
		out[i] = p.Name
	}
	return out
}

// Get returns the profile at i.
func (l *List) Get(i int) (Profile, bool) {
	if i < 0 || i >= len(l.profiles) {
		return Profile{}, false
	}
	return l.profiles[i], true
}

// Index returns the position of the profile with exactly this name, or -1.
func (l *List) Index(name string) int {
	for i, p := range l.profiles {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// SelectedIndex returns the selected position and whether one is selected.
func (l *List) SelectedIndex() (int, bool) {
	if l.selected < 0 || l.selected >= len(l.profiles) {
		return -1, false
	}
	return l.selected, true
}

// Selected returns the selected profile.
func (l *List) Selected() (Profile, bool) {
	i, ok := l.SelectedIndex()
	if !ok {
		return Profile{}, false
	}
	return l.profiles[i], true
}

// Select marks the profile at i as selected.
func (l *List) Select(i int) error {
	if i < 0 || i >= len(l.profiles) {
		return &IndexError{Index: i, Len: len(l.profiles)}
	}
	l.selected = i
	return nil
}

// Validate checks that name, once trimmed, is non-empty and not used by any
// profile other than the one at except. Pass -1 to check against every
// profile. It returns the trimmed name.
func (l *List) Validate(name string, except int) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	if i := l.Index(name); i >= 0 && i != except {
		return "", &DuplicateNameError{Name: name}
	}
	return name, nil
}

// Create appends a profile and selects it.
func (l *List) Create(name string) (Profile, error) {
	name, err := l.Validate(name, -1)
	if err != nil {
		return Profile{}, err
	}
	p := Profile{Name: name}
	l.profiles = append(l.profiles, p)
	l.selected = len(l.profiles) - 1
	return p, nil
}

// Rename changes the name of the profile at i. Renaming to the current name
// succeeds without change; changed reports whether anything was modified.
func (l *List) Rename(i int, newName string) (changed bool, err error) {
	if i < 0 || i >= len(l.profiles) {
		return false, &IndexError{Index: i, Len: len(l.profiles)}
	}
	name, err := l.Validate(newName, i)
	if err != nil {
		return false, err
	}
	if l.profiles[i].Name == name {
		return false, nil
	}
	l.profiles[i].Name = name
	return true, nil
}

// Delete removes the profile at i. The selection moves to the preceding
// profile (the new first one when i was 0), or to none when the list empties.
func (l *List) Delete(i int) (Profile, error) {
	if i < 0 || i >= len(l.profiles) {
		return Profile{}, &IndexError{Index: i, Len: len(l.profiles)}
	}
	removed := l.profiles[i]
	l.profiles = append(l.profiles[:i], l.profiles[i+1:]...)
	if len(l.profiles) == 0 {
		l.selected = -1
	} else {
		l.selected = min(max(i-1, 0), len(l.profiles)-1)
	}
	return removed, nil
}
