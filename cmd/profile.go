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

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/cloud-exit/profiles-manager/internal/config"
	"github.com/cloud-exit/profiles-manager/internal/profile"
	"github.com/cloud-exit/profiles-manager/internal/ui"
	"github.com/spf13/cobra"
)

// ErrNoProfiles is returned when an operation needs at least one profile.
var ErrNoProfiles = errors.New("no profiles found. Create one with 'profiles-manager add <name>'")

// ErrNoSelection is returned by current when nothing has been selected.
var ErrNoSelection = errors.New("no profile selected")

// ErrLaunchArgs is returned when launch gets more than one name before --.
var ErrLaunchArgs = errors.New("launch takes at most one profile name; program arguments go after --")

var (
	listPlain bool
	deleteYes bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		return listProfiles(ui.Stdout, profile.Open(), listPlain)
	},
}

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := addProfile(profile.Open(), args[0])
		if err != nil {
			return err
		}
		ui.Successf("Created profile '%s'", p.Name)
		return nil
	},
}

var renameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename a profile",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		changed, err := renameProfile(profile.Open(), args[0], args[1])
		if err != nil {
			return err
		}
		if !changed {
			ui.Infof("Profile '%s' unchanged", args[0])
			return nil
		}
		ui.Successf("Renamed profile '%s'", args[0])
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:     "delete <name>",
	Aliases: []string{"rm"},
	Short:   "Delete a profile",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m := profile.Open()
		i, err := lookupProfile(m, args[0])
		if err != nil {
			return err
		}
		if !deleteYes {
			if !ui.Interactive() {
				return fmt.Errorf("refusing to delete without confirmation; pass --yes")
			}
			if !confirmDelete(args[0]) {
				ui.Info("Cancelled.")
				return nil
			}
		}
		p, err := m.Delete(i)
		if err != nil {
			return err
		}
		ui.Successf("Deleted profile '%s'", p.Name)
		return nil
	},
}

var selectCmd = &cobra.Command{
	Use:   "select <name>",
	Short: "Mark a profile as selected",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := selectProfile(profile.Open(), args[0])
		if err != nil {
			return err
		}
		ui.Successf("Selected profile '%s'", p.Name)
		return nil
	},
}

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Print the selected profile name",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, ok := profile.Open().Current()
		if !ok {
			return ErrNoSelection
		}
		fmt.Fprintln(ui.Stdout, name)
		return nil
	},
}

var pickCmd = &cobra.Command{
	Use:   "pick [-- program args...]",
	Short: "Choose a profile with a quick prompt",
	Long:  "Choose a profile from a single select prompt instead of the full picker, then hand it on like the root command.",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := effectiveSettings(args)
		if err != nil {
			return err
		}
		if !ui.Interactive() {
			return ErrNotInteractive
		}
		m := profile.Open()
		name, err := promptProfile(m, settings.DisplayTitle())
		if errors.Is(err, huh.ErrUserAborted) {
			ui.Warn("No profile selected.")
			return nil
		}
		if err != nil {
			return err
		}
		p, err := selectProfile(m, name)
		if err != nil {
			return err
		}
		return handoff(p.Name, settings)
	},
}

var launchCmd = &cobra.Command{
	Use:   "launch [name] [-- program args...]",
	Short: "Launch the program with a profile without showing the picker",
	Long:  "Launch the configured program with the named profile, or with the selected one when no name is given.",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, args, err := splitLaunchArgs(args, cmd.ArgsLenAtDash())
		if err != nil {
			return err
		}
		settings, err := effectiveSettings(args)
		if err != nil {
			return err
		}
		m := profile.Open()
		if name == "" {
			current, ok := m.Current()
			if !ok {
				return ErrNoSelection
			}
			name = current
		}
		p, err := selectProfile(m, name)
		if err != nil {
			return err
		}
		return handoff(p.Name, settings)
	},
}

func init() {
	listCmd.Flags().BoolVar(&listPlain, "plain", false, "Print names only, one per line")
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Don't ask for confirmation")
	addSettingsFlags(pickCmd, &flagSettings)
	addSettingsFlags(launchCmd, &flagSettings)

	rootCmd.AddCommand(listCmd, addCmd, renameCmd, deleteCmd, selectCmd, currentCmd, pickCmd, launchCmd)
}

func listProfiles(w io.Writer, m *profile.Manager, plain bool) error {
	if plain {
		for _, n := range m.Names() {
			fmt.Fprintln(w, n)
		}
		return nil
	}
	if m.Len() == 0 {
		fmt.Fprintln(w, "No profiles found.")
		fmt.Fprintln(w, "Create one with: profiles-manager --app-id "+config.AppID+" add <name>")
		return nil
	}
	current, _ := m.Current()
	fmt.Fprintf(w, "  %-10s %s\n", "SELECTED", "PROFILE")
	fmt.Fprintf(w, "  %-10s %s\n", "────────", "───────")
	for _, n := range m.Names() {
		marker := ""
		if n == current {
			marker = "*"
		}
		fmt.Fprintf(w, "  %-10s %s\n", marker, n)
	}
	return nil
}

// splitLaunchArgs separates the optional profile name from the program
// arguments. dash is the number of args before --, or -1 without one.
func splitLaunchArgs(args []string, dash int) (string, []string, error) {
	before := dash
	if before < 0 {
		before = len(args)
	}
	switch before {
	case 0:
		return "", args, nil
	case 1:
		return args[0], args[1:], nil
	default:
		return "", nil, ErrLaunchArgs
	}
}

// lookupProfile is Manager.Lookup with a hint on how to list valid names.
func lookupProfile(m *profile.Manager, name string) (int, error) {
	i, err := m.Lookup(name)
	if err != nil {
		return -1, fmt.Errorf("%w. Run 'profiles-manager --app-id %s list' for valid names", err, config.AppID)
	}
	return i, nil
}

func addProfile(m *profile.Manager, name string) (profile.Profile, error) {
	return m.Create(name)
}

func renameProfile(m *profile.Manager, oldName, newName string) (bool, error) {
	i, err := lookupProfile(m, oldName)
	if err != nil {
		return false, err
	}
	return m.Rename(i, newName)
}

func selectProfile(m *profile.Manager, name string) (profile.Profile, error) {
	i, err := lookupProfile(m, name)
	if err != nil {
		return profile.Profile{}, err
	}
	if err := m.Select(i); err != nil {
		return profile.Profile{}, err
	}
	p, _ := m.Confirm()
	return p, nil
}

func confirmDelete(name string) bool {
	var confirm bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete profile '%s'?", name)).
				Affirmative("Delete").
				Negative("Cancel").
				Value(&confirm),
		),
	).WithOutput(os.Stderr).Run()
	return err == nil && confirm
}

// promptProfile asks for a profile with a huh select, starting on the
// current selection.
func promptProfile(m *profile.Manager, title string) (string, error) {
	if m.Len() == 0 {
		return "", ErrNoProfiles
	}
	var choice string
	if p, ok := m.Selected(); ok {
		choice = p.Name
	}
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Description("Select a profile").
				Options(profileOptions(m)...).
				Value(&choice),
		),
	).WithOutput(os.Stderr).Run()
	if err != nil {
		return "", err
	}
	return choice, nil
}

func profileOptions(m *profile.Manager) []huh.Option[string] {
	current, _ := m.Current()
	options := make([]huh.Option[string], 0, m.Len())
	for _, n := range m.Names() {
		label := n
		if n == current {
			label += " (current)"
		}
		options = append(options, huh.NewOption(label, n))
	}
	return options
}
