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

// Package tui is the interactive profile picker.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cloud-exit/profiles-manager/internal/profile"
)

// mode identifies the current screen.
type mode int

const (
	modeList mode = iota
	modeCreate
	modeEdit
)

// maxVisibleRows caps the list height when the window size is unknown.
const maxVisibleRows = 8

// Model is the root bubbletea model for the picker.
type Model struct {
	title     string
	profiles  *profile.Manager
	mode      mode
	editIndex int
	input     textinput.Model
	width     int
	height    int
	selected  bool
	cancelled bool
}

// New returns a picker over the manager's profiles. It opens on the create
// screen when there are no profiles yet.
func New(profiles *profile.Manager, title string) Model {
	ti := textinput.New()
	ti.Placeholder = "profile-name"
	ti.Prompt = ""
	ti.CharLimit = 128
	ti.Width = 32

	m := Model{
		title:     title,
		profiles:  profiles,
		mode:      modeList,
		editIndex: -1,
		input:     ti,
	}
	if profiles.Len() == 0 {
		m = m.startCreate()
	}
	return m
}

// Init starts the cursor blink when opening on the create screen.
func (m Model) Init() tea.Cmd {
	if m.mode == modeList {
		return nil
	}
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.selected {
			return m, tea.Quit
		}
		if msg.String() == "ctrl+c" {
			m.cancelled = true
			return m, tea.Quit
		}
	}

	switch m.mode {
	case modeCreate:
		return m.updateCreate(msg)
	case modeEdit:
		return m.updateEdit(msg)
	default:
		return m.updateList(msg)
	}
}

func (m Model) View() string {
	if m.selected {
		return m.viewSelected()
	}
	switch m.mode {
	case modeCreate:
		return m.viewCreate()
	case modeEdit:
		return m.viewEdit()
	default:
		return m.viewList()
	}
}

// Selected returns true once the user confirmed a profile.
func (m Model) Selected() bool { return m.selected }

// Cancelled returns true if the user quit without selecting.
func (m Model) Cancelled() bool { return m.cancelled }

// Profile returns the selected profile name, if any.
func (m Model) Profile() (string, bool) {
	p, ok := m.profiles.Selected()
	return p.Name, ok
}

func (m Model) startCreate() Model {
	m.mode = modeCreate
	m.editIndex = -1
	m.input.SetValue("")
	m.input.Focus()
	return m
}

func (m Model) startEdit(i int) Model {
	p, ok := m.profiles.Get(i)
	if !ok {
		return m
	}
	m.mode = modeEdit
	m.editIndex = i
	m.input.SetValue(p.Name)
	m.input.CursorEnd()
	m.input.Focus()
	return m
}

func (m Model) backToList() Model {
	m.mode = modeList
	m.editIndex = -1
	m.input.SetValue("")
	m.input.Blur()
	return m
}

// --- List ---

func (m Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	cur, hasSel := m.profiles.SelectedIndex()
	switch key.String() {
	case "q", "esc":
		m.cancelled = true
		return m, tea.Quit
	case "up", "k":
		if !hasSel {
			cur = m.profiles.Len()
		}
		if cur > 0 {
			m.profiles.Select(cur - 1)
		}
	case "down", "j":
		if !hasSel {
			cur = -1
		}
		if cur < m.profiles.Len()-1 {
			m.profiles.Select(cur + 1)
		}
	case "home", "g":
		if m.profiles.Len() > 0 {
			m.profiles.Select(0)
		}
	case "end", "G":
		if m.profiles.Len() > 0 {
			m.profiles.Select(m.profiles.Len() - 1)
		}
	case "n", "a":
		m = m.startCreate()
		return m, textinput.Blink
	case "e", "r":
		if hasSel {
			m = m.startEdit(cur)
			return m, textinput.Blink
		}
	case "d", "delete", "x":
		if hasSel {
			m.profiles.Delete(cur)
			if m.profiles.Len() == 0 {
				m = m.startCreate()
				return m, textinput.Blink
			}
		}
	case "enter", " ":
		if _, ok := m.profiles.Confirm(); ok {
			m.selected = true
		}
	}
	return m, nil
}

func (m Model) viewList() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("Select or create a profile"))
	b.WriteString("\n\n")

	if m.profiles.Len() == 0 {
		b.WriteString(warnStyle.Render("No profiles found"))
		b.WriteString("\n")
		b.WriteString("Create a new profile to get started\n")
	} else {
		cur, _ := m.profiles.SelectedIndex()
		start, end := visibleRange(cur, m.profiles.Len(), m.visibleRows())
		if start > 0 {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  ↑ %d more", start)))
			b.WriteString("\n")
		}
		for i := start; i < end; i++ {
			p, _ := m.profiles.Get(i)
			if i == cur {
				b.WriteString(cursorStyle.Render("> "))
				b.WriteString(selectedRowStyle.Render(p.Name))
			} else {
				b.WriteString("  ")
				b.WriteString(rowStyle.Render(p.Name))
			}
			b.WriteString("\n")
		}
		if rest := m.profiles.Len() - end; rest > 0 {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  ↓ %d more", rest)))
			b.WriteString("\n")
		}
	}

	help := "n: new"
	if _, ok := m.profiles.SelectedIndex(); ok {
		help = "↑/↓: move  Enter: select  n: new  e: edit  d: delete"
	}
	b.WriteString(helpStyle.Render(help + "  q: quit"))
	return b.String()
}

func (m Model) visibleRows() int {
	if m.height <= 0 {
		return maxVisibleRows
	}
	// title, subtitle, blank, two scroll markers, help margin and line
	return max(m.height-7, 1)
}

// visibleRange returns the window [start, end) of rows to draw so that cur
// stays on screen.
func visibleRange(cur, n, rows int) (int, int) {
	if n <= rows {
		return 0, n
	}
	start := max(cur-rows/2, 0)
	if start+rows > n {
		start = n - rows
	}
	return start, start + rows
}

// --- Create / Edit ---

func (m Model) updateCreate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			if m.profiles.Len() > 0 {
				return m.backToList(), nil
			}
			return m, nil
		case "enter":
			if _, err := m.profiles.Create(m.input.Value()); err != nil {
				return m, nil
			}
			return m.backToList(), nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return m.backToList(), nil
		case "enter":
			if _, err := m.profiles.Rename(m.editIndex, m.input.Value()); err != nil {
				return m, nil
			}
			return m.backToList(), nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// validation returns the problem with the current input, if any.
func (m Model) validation() error {
	_, err := m.profiles.Validate(m.input.Value(), m.editIndex)
	return err
}

func (m Model) viewForm(heading, subtitle, action string, canCancel bool) string {
	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(subtitle))
	b.WriteString("\n\n")
	b.WriteString(boxStyle.Render("Name: " + m.input.View()))
	b.WriteString("\n")

	err := m.validation()
	var dup *profile.DuplicateNameError
	switch {
	case errors.As(err, &dup):
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("A profile with this name already exists"))
		b.WriteString("\n")
	case errors.Is(err, profile.ErrEmptyName):
		b.WriteString(dimStyle.Render("(name required)"))
		b.WriteString("\n")
	}

	help := ""
	if err == nil {
		help = "Enter: " + action
	}
	if canCancel {
		if help != "" {
			help += "  "
		}
		help += "Esc: cancel"
	}
	if help == "" {
		help = "Type a name"
	}
	b.WriteString(helpStyle.Render(help))
	return b.String()
}

func (m Model) viewCreate() string {
	return m.viewForm(
		createTitleStyle.Render("New Profile"),
		"Enter a name for your new profile",
		"create",
		m.profiles.Len() > 0,
	)
}

func (m Model) viewEdit() string {
	return m.viewForm(
		editTitleStyle.Render("Edit Profile"),
		"Modify the profile name",
		"save",
		true,
	)
}

// --- Selected ---

func (m Model) viewSelected() string {
	var b strings.Builder
	b.WriteString(successStyle.Render("Profile Selected!"))
	b.WriteString("\n\n")
	if name, ok := m.Profile(); ok {
		b.WriteString(boxStyle.Render(name))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("Press any key to continue"))
	return b.String()
}
