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

package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cloud-exit/profiles-manager/internal/profile"
)

// Result is what the picker hands back to the caller.
type Result struct {
	Profile  string
	Selected bool
}

// Run shows the picker in the alternate screen until the user selects a
// profile or quits. Quitting is not an error; Result.Selected is false.
// The picker draws on stderr so the caller can print the result to stdout.
func Run(profiles *profile.Manager, title string, opts ...tea.ProgramOption) (Result, error) {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithOutput(os.Stderr)}, opts...)
	p := tea.NewProgram(New(profiles, title), opts...)

	finalModel, err := p.Run()
	if err != nil {
		return Result{}, fmt.Errorf("profile picker: %w", err)
	}

	m := finalModel.(Model)
	if m.Cancelled() || !m.Selected() {
		return Result{}, nil
	}
	name, _ := m.Profile()
	return Result{Profile: name, Selected: true}, nil
}
