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
	"fmt"
	"io"

	"github.com/cloud-exit/profiles-manager/internal/config"
	"github.com/cloud-exit/profiles-manager/internal/launch"
	"github.com/cloud-exit/profiles-manager/internal/ui"
	"github.com/spf13/cobra"
)

var (
	settingsSet   config.Settings
	settingsClear bool
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the saved settings for this app id",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the saved settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		printSettings(ui.Stdout, config.LoadOrDefault())
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [flags] [-- program args...]",
	Short: "Save defaults used when the flags are not given",
	RunE: func(cmd *cobra.Command, args []string) error {
		update := settingsSet
		update.Args = args
		s, err := updateSettings(config.SettingsFile(), update, settingsClear)
		if err != nil {
			return err
		}
		ui.Successf("Saved %s", config.SettingsFile())
		printSettings(ui.Stdout, s)
		return nil
	},
}

func init() {
	addSettingsFlags(settingsSetCmd, &settingsSet)
	settingsSetCmd.Flags().BoolVar(&settingsClear, "clear", false, "Reset every setting before applying the flags")

	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

// updateSettings applies update to the settings stored at path and saves them.
func updateSettings(path string, update config.Settings, reset bool) (*config.Settings, error) {
	if err := launch.ValidateEnvVar(update.EnvVar); err != nil {
		return nil, err
	}
	current := config.DefaultSettings()
	if !reset {
		if s, err := config.LoadSettingsFrom(path); err == nil {
			current = s
		}
	}
	merged := current.Merge(update)
	if err := config.SaveSettingsTo(&merged, path); err != nil {
		return nil, fmt.Errorf("save settings: %w", err)
	}
	return &merged, nil
}

func printSettings(w io.Writer, s *config.Settings) {
	show := func(v string) string {
		if v == "" {
			return ui.Dim + "(not set)" + ui.NC
		}
		return v
	}
	fmt.Fprintf(w, "  %-10s %s\n", "title", show(s.DisplayTitle()))
	fmt.Fprintf(w, "  %-10s %s\n", "env_var", show(s.EnvVar))
	fmt.Fprintf(w, "  %-10s %s\n", "program", show(s.Program))
	fmt.Fprintf(w, "  %-10s %v\n", "args", s.Args)
}
