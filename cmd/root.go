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
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cloud-exit/profiles-manager/internal/config"
	"github.com/cloud-exit/profiles-manager/internal/launch"
	"github.com/cloud-exit/profiles-manager/internal/profile"
	"github.com/cloud-exit/profiles-manager/internal/tui"
	"github.com/cloud-exit/profiles-manager/internal/ui"
	"github.com/spf13/cobra"
)

// Version is set by ldflags at build time.
var Version = "0.1.0"

// skipAppIDCommands don't touch any app's storage.
var skipAppIDCommands = map[string]bool{
	"version":          true,
	"help":             true,
	"completion":       true,
	"__complete":       true,
	"__completeNoDesc": true,
}

// ErrNotInteractive is returned when the picker is started without a terminal.
var ErrNotInteractive = errors.New("the profile picker needs an interactive terminal; use 'select' or 'current' from scripts")

// argsAfterDash accepts positional arguments only after --, so a mistyped
// subcommand is reported instead of being passed to the program.
func argsAfterDash(cmd *cobra.Command, args []string) error {
	if len(args) > 0 && cmd.ArgsLenAtDash() != 0 {
		return fmt.Errorf("unknown command %q for %q; program arguments go after --", args[0], cmd.CommandPath())
	}
	return nil
}

// flagSettings collects the root command's settings flags.
var flagSettings config.Settings

var rootCmd = &cobra.Command{
	Use:   "profiles-manager --app-id ID [flags] [-- program args...]",
	Short: "A simple profile manager for applications",
	Long: `Profiles Manager keeps a list of named profiles per application, lets you
pick one in a terminal UI and hands the choice to the next program through an
environment variable.`,
	Args:          argsAfterDash,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		v, _ := cmd.Flags().GetBool("verbose")
		ui.Verbose = v

		if skipAppIDCommands[cmd.Name()] {
			return nil
		}
		appID, _ := cmd.Flags().GetString("app-id")
		if appID == "" {
			return fmt.Errorf("required flag \"app-id\" not set")
		}
		if err := config.SetAppID(appID); err != nil {
			return fmt.Errorf("invalid app id %q: %w", appID, err)
		}
		ui.Debugf("storage: %s", config.AppDir())
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := effectiveSettings(args)
		if err != nil {
			return err
		}
		if !ui.Interactive() {
			return ErrNotInteractive
		}
		return pickAndHandoff(profile.Open(), settings)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("profiles-manager version %s\n", Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringP("app-id", "a", "", "Application ID (used for the storage directory)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	addSettingsFlags(rootCmd, &flagSettings)

	rootCmd.AddCommand(versionCmd)

	rootCmd.SetVersionTemplate("profiles-manager version {{.Version}}\n")
	rootCmd.Version = Version
}

// addSettingsFlags registers --title, --env-var and --program on cmd.
func addSettingsFlags(cmd *cobra.Command, s *config.Settings) {
	cmd.Flags().StringVarP(&s.Title, "title", "t", "", "Title shown in the picker (defaults to the app id)")
	cmd.Flags().StringVarP(&s.EnvVar, "env-var", "e", "", "Environment variable to set with the selected profile name")
	cmd.Flags().StringVarP(&s.Program, "program", "p", "", "Program to execute after profile selection (full path)")
}

// effectiveSettings layers the command-line flags over settings.yaml.
// Positional args (after --) replace the configured program args. The env
// var name is checked whichever layer it came from.
func effectiveSettings(args []string) (config.Settings, error) {
	flags := flagSettings
	flags.Args = args
	saved, err := config.LoadSettings()
	if err != nil {
		if !os.IsNotExist(err) {
			ui.Warnf("Ignoring %s: %v", config.SettingsFile(), err)
		}
		saved = config.DefaultSettings()
	}
	s := saved.Merge(flags)
	if err := launch.ValidateEnvVar(s.EnvVar); err != nil {
		return config.Settings{}, err
	}
	return s, nil
}

// pickAndHandoff runs the picker over m and hands the chosen profile on.
// Only the handoff writes to stdout.
func pickAndHandoff(m *profile.Manager, s config.Settings, opts ...tea.ProgramOption) error {
	res, err := tui.Run(m, s.DisplayTitle(), opts...)
	if err != nil {
		return err
	}
	if !res.Selected {
		ui.Warn("No profile selected.")
		return nil
	}
	return handoff(res.Profile, s)
}

// handoff passes the chosen profile on: run the program if one is set,
// otherwise print an export line for the env var, otherwise print the name.
func handoff(name string, s config.Settings) error {
	if err := launch.ValidateEnvVar(s.EnvVar); err != nil {
		return err
	}
	switch {
	case s.Program != "":
		code, err := launch.Program(launch.Options{
			Profile: name,
			EnvVar:  s.EnvVar,
			Program: s.Program,
			Args:    s.Args,
		})
		if err != nil {
			return err
		}
		if code != 0 {
			os.Exit(code)
		}
	case s.EnvVar != "":
		fmt.Fprintln(ui.Stdout, launch.ExportLine(s.EnvVar, name))
	default:
		fmt.Fprintln(ui.Stdout, name)
	}
	return nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.Error(err.Error())
	}
}
