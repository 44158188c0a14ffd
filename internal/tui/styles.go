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
	"os"

	"github.com/charmbracelet/lipgloss"
)

// renderer detects colour support on stderr, where the picker draws.
var renderer = lipgloss.NewRenderer(os.Stderr)

var (
	titleStyle = renderer.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("6"))

	createTitleStyle = renderer.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("2"))

	editTitleStyle = renderer.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("4"))

	subtitleStyle = renderer.NewStyle().
			Foreground(lipgloss.Color("8"))

	rowStyle = renderer.NewStyle().
			Foreground(lipgloss.Color("7")).
			PaddingLeft(1).
			PaddingRight(1)

	selectedRowStyle = renderer.NewStyle().
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("24")).
				Bold(true).
				PaddingLeft(1).
				PaddingRight(1)

	cursorStyle = renderer.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)

	warnStyle = renderer.NewStyle().
			Foreground(lipgloss.Color("3"))

	errorStyle = renderer.NewStyle().
			Foreground(lipgloss.Color("1"))

	dimStyle = renderer.NewStyle().
			Foreground(lipgloss.Color("8"))

	successStyle = renderer.NewStyle().
			Foreground(lipgloss.Color("2")).
			Bold(true)

	boxStyle = renderer.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)

	helpStyle = renderer.NewStyle().
			Foreground(lipgloss.Color("8")).
			MarginTop(1)
)
