// Profiles Manager - Named profile picker for applications
// Copyright (C) 2026 Cloud Exit B.V.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package cmd

import (
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cloud-exit/profiles-manager/internal/config"
	"github.com/cloud-exit/profiles-manager/internal/launch"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useHome points the storage root at a fresh directory for one test.
func useHome(t *testing.T) {
	t.Helper()
	oldHome, oldID := config.Home, config.AppID
	t.Cleanup(func() { config.Home, config.AppID = oldHome, oldID })
	config.Home = t.TempDir()
}

// execute runs the command tree with args and returns what it printed to
// stdout. Flag state left over from earlier runs is cleared first.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	config.AppID = ""
	flagSettings = config.Settings{}
	settingsSet, settingsClear = config.Settings{}, false
	listPlain, deleteYes = false, false
	resetFlags(rootCmd)
	t.Cleanup(func() { flagSettings = config.Settings{} })

	out := captureStdout(t)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores flag defaults and forgets where -- was seen in the
// previous parse.
func resetFlags(c *cobra.Command) {
	c.Flags().Init(c.Name(), pflag.ContinueOnError)
	c.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func TestRoot_RejectsUnknownCommand(t *testing.T) {
	useHome(t)
	_, err := execute(t, "-a", "demo", "lsit")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown command "lsit"`)
}

func TestRoot_RequiresAppID(t *testing.T) {
	useHome(t)
	_, err := execute(t, "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "app-id")
}

func TestRoot_RejectsInvalidEnvVar(t *testing.T) {
	useHome(t)
	_, err := execute(t, "-a", "demo", "-e", "X=1; touch /tmp/x; Y")
	var e *launch.InvalidEnvVarError
	assert.ErrorAs(t, err, &e)
}

func TestPick_RejectsInvalidEnvVar(t *testing.T) {
	useHome(t)
	_, err := execute(t, "-a", "demo", "add", "work")
	require.NoError(t, err)

	out, err := execute(t, "-a", "demo", "pick", "--env-var", "X=1; touch /tmp/x; Y")
	var e *launch.InvalidEnvVarError
	assert.ErrorAs(t, err, &e)
	assert.Empty(t, out)
}

func TestLaunch_RejectsInvalidEnvVar(t *testing.T) {
	useHome(t)
	_, err := execute(t, "-a", "demo", "add", "work")
	require.NoError(t, err)

	out, err := execute(t, "-a", "demo", "launch", "work", "--env-var", "X=1; touch /tmp/x; Y")
	var e *launch.InvalidEnvVarError
	assert.ErrorAs(t, err, &e)
	assert.Empty(t, out)
}

func TestLaunch_RejectsInvalidEnvVarFromSettingsFile(t *testing.T) {
	useHome(t)
	_, err := execute(t, "-a", "demo", "add", "work")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(config.SettingsFile(), []byte("env_var: \"X=1; Y\"\n"), 0644))

	out, err := execute(t, "-a", "demo", "launch", "work")
	var e *launch.InvalidEnvVarError
	assert.ErrorAs(t, err, &e)
	assert.Empty(t, out)
}

func TestLaunch_NamedProfile(t *testing.T) {
	useHome(t)
	_, err := execute(t, "-a", "demo", "add", "a")
	require.NoError(t, err)
	_, err = execute(t, "-a", "demo", "add", "b")
	require.NoError(t, err)

	out, err := execute(t, "-a", "demo", "launch", "a", "-e", "GAME_PROFILE")
	require.NoError(t, err)
	assert.Equal(t, "export GAME_PROFILE='a'\n", out)

	out, err = execute(t, "-a", "demo", "current")
	require.NoError(t, err)
	assert.Equal(t, "a\n", out)
}

func TestLaunch_FallsBackToCurrent(t *testing.T) {
	useHome(t)
	_, err := execute(t, "-a", "demo", "add", "a")
	require.NoError(t, err)
	_, err = execute(t, "-a", "demo", "add", "b")
	require.NoError(t, err)
	_, err = execute(t, "-a", "demo", "select", "a")
	require.NoError(t, err)

	out, err := execute(t, "-a", "demo", "launch", "--")
	require.NoError(t, err)
	assert.Equal(t, "a\n", out)
}

func TestLaunch_NoSelection(t *testing.T) {
	useHome(t)
	_, err := execute(t, "-a", "demo", "add", "a")
	require.NoError(t, err)

	_, err = execute(t, "-a", "demo", "launch")
	assert.ErrorIs(t, err, ErrNoSelection)
}

func TestLaunch_TooManyNames(t *testing.T) {
	useHome(t)
	_, err := execute(t, "-a", "demo", "add", "a")
	require.NoError(t, err)

	_, err = execute(t, "-a", "demo", "launch", "a", "b")
	assert.ErrorIs(t, err, ErrLaunchArgs)

	_, err = execute(t, "-a", "demo", "launch", "a", "b", "--", "x")
	assert.ErrorIs(t, err, ErrLaunchArgs)
}

func TestLaunch_UnknownProfileHint(t *testing.T) {
	useHome(t)
	_, err := execute(t, "-a", "demo", "launch", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown profile: nope")
	assert.Contains(t, err.Error(), "profiles-manager --app-id demo list")
}

func TestLaunch_PassesArgsAfterDash(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not found")
	}
	useHome(t)
	_, err = execute(t, "-a", "demo", "add", "work")
	require.NoError(t, err)

	target := filepath.Join(t.TempDir(), "out")
	_, err = execute(t, "-a", "demo", "launch", "work", "-p", sh, "--",
		"-c", `printf '%s %s' "$PROFILE_MANAGER_PROFILE" "$1" > "$0"`, target, "extra")
	require.NoError(t, err)

	data, err := readFile(target)
	require.NoError(t, err)
	assert.Equal(t, "work extra", data)
}

func TestSplitLaunchArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		dash     int
		wantName string
		wantRest []string
		wantErr  bool
	}{
		{"nothing", nil, -1, "", nil, false},
		{"name only", []string{"work"}, -1, "work", []string{}, false},
		{"name and args", []string{"work", "-x"}, 1, "work", []string{"-x"}, false},
		{"args only", []string{"-x", "y"}, 0, "", []string{"-x", "y"}, false},
		{"two names", []string{"a", "b"}, -1, "", nil, true},
		{"two names before dash", []string{"a", "b", "c"}, 2, "", nil, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			name, rest, err := splitLaunchArgs(tc.args, tc.dash)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrLaunchArgs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantName, name)
			assert.Equal(t, tc.wantRest, rest)
		})
	}
}

func TestPickAndHandoff_StdoutHoldsOnlyTheExport(t *testing.T) {
	m := seeded(t, "work")
	out := captureStdout(t)

	err := pickAndHandoff(m, config.Settings{EnvVar: "GAME_PROFILE"},
		tea.WithInput(strings.NewReader("\r\r")),
		tea.WithOutput(io.Discard),
	)
	require.NoError(t, err)
	assert.Equal(t, "export GAME_PROFILE='work'\n", out.String())
}

func TestPickAndHandoff_CancelPrintsNothing(t *testing.T) {
	m := seeded(t, "work")
	out := captureStdout(t)

	err := pickAndHandoff(m, config.Settings{EnvVar: "GAME_PROFILE"},
		tea.WithInput(strings.NewReader("\x03")),
		tea.WithOutput(io.Discard),
	)
	require.NoError(t, err)
	assert.Empty(t, out.String())
}

func TestHandoff_RejectsInvalidEnvVar(t *testing.T) {
	out := captureStdout(t)
	err := handoff("work", config.Settings{EnvVar: "X=1; touch /tmp/x; Y"})
	var e *launch.InvalidEnvVarError
	assert.ErrorAs(t, err, &e)
	assert.Empty(t, out.String())
}
